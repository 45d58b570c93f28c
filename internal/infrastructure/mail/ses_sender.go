package mail

import (
	"context"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/ses"
	"github.com/aws/aws-sdk-go-v2/service/ses/types"

	"github.com/jhoicas/invoiceless/pkg/logger"
)

// SESAPI operaciones de SES que usa el sender. Interfaz angosta sobre el
// cliente del SDK para poder sustituirlo por un doble en los tests.
type SESAPI interface {
	SendRawEmail(ctx context.Context, params *ses.SendRawEmailInput, optFns ...func(*ses.Options)) (*ses.SendRawEmailOutput, error)
}

// SESSender implementa invoicing.Sender sobre Amazon SES. Los errores de
// transporte o autorización se propagan sin envolver.
type SESSender struct {
	client SESAPI
	log    *logger.Logger
}

// NewSESSender construye el sender.
func NewSESSender(client SESAPI, log *logger.Logger) *SESSender {
	return &SESSender{client: client, log: log}
}

// Send transmite el mensaje MIME crudo. senderARN, si no está vacío, viaja
// como SourceArn (identidad verificada autorizada para el remitente).
func (s *SESSender) Send(ctx context.Context, rawMessage []byte, from string, to []string, senderARN string) error {
	in := &ses.SendRawEmailInput{
		RawMessage:   &types.RawMessage{Data: rawMessage},
		Source:       aws.String(from),
		Destinations: to,
	}
	if senderARN != "" {
		in.SourceArn = aws.String(senderARN)
	}

	out, err := s.client.SendRawEmail(ctx, in)
	if err != nil {
		return err
	}
	s.log.Debug().
		Str("message_id", aws.ToString(out.MessageId)).
		Str("from", from).
		Int("recipients", len(to)).
		Msg("correo de factura enviado")
	return nil
}
