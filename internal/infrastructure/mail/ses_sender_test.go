package mail_test

import (
	"context"
	"errors"
	"testing"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/ses"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/invoiceless/internal/infrastructure/mail"
	"github.com/jhoicas/invoiceless/pkg/logger"
)

type fakeSES struct {
	in  *ses.SendRawEmailInput
	err error
}

func (f *fakeSES) SendRawEmail(_ context.Context, in *ses.SendRawEmailInput, _ ...func(*ses.Options)) (*ses.SendRawEmailOutput, error) {
	f.in = in
	if f.err != nil {
		return nil, f.err
	}
	return &ses.SendRawEmailOutput{MessageId: aws.String("msg-001")}, nil
}

func TestSESSender_EnviaElMensajeCrudo(t *testing.T) {
	client := &fakeSES{}
	sender := mail.NewSESSender(client, logger.Nop())

	err := sender.Send(context.Background(),
		[]byte("raw-mime"),
		"billing@acme.example",
		[]string{"a@cliente.example", "b@cliente.example"},
		"",
	)
	require.NoError(t, err)

	in := client.in
	require.NotNil(t, in)
	assert.Equal(t, []byte("raw-mime"), in.RawMessage.Data)
	assert.Equal(t, "billing@acme.example", aws.ToString(in.Source))
	assert.Equal(t, []string{"a@cliente.example", "b@cliente.example"}, in.Destinations)
	assert.Nil(t, in.SourceArn, "sin ARN verificado no debe viajar SourceArn")
}

func TestSESSender_ConARNVerificado(t *testing.T) {
	client := &fakeSES{}
	sender := mail.NewSESSender(client, logger.Nop())

	err := sender.Send(context.Background(), []byte("raw"), "p@acme.example",
		[]string{"c@cliente.example"},
		"arn:aws:ses:us-east-1:123456789012:identity/acme.example",
	)
	require.NoError(t, err)

	assert.Equal(t, "arn:aws:ses:us-east-1:123456789012:identity/acme.example",
		aws.ToString(client.in.SourceArn))
}

func TestSESSender_ErrorDeTransporteSePropaga(t *testing.T) {
	client := &fakeSES{err: errors.New("MessageRejected: Email address is not verified")}
	sender := mail.NewSESSender(client, logger.Nop())

	err := sender.Send(context.Background(), []byte("raw"), "p@acme.example",
		[]string{"c@cliente.example"}, "")

	assert.EqualError(t, err, "MessageRejected: Email address is not verified")
}
