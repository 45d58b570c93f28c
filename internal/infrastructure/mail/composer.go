// Package mail arma y transmite el correo de la factura: composición MIME con
// gomail y envío por Amazon SES.
package mail

import (
	"bytes"
	"fmt"
	"io"

	gomail "gopkg.in/gomail.v2"

	"github.com/jhoicas/invoiceless/internal/domain/entity"
)

const (
	attachmentName = "invoice.pdf"
	bodyText       = "Hi -- please find attached your monthly invoice."
)

// GomailComposer implementa invoicing.Composer: construye el mensaje MIME
// multiparte (texto + PDF adjunto) y lo serializa en crudo para que el
// transporte lo entregue tal cual.
type GomailComposer struct{}

// NewGomailComposer construye el compositor.
func NewGomailComposer() *GomailComposer {
	return &GomailComposer{}
}

// Compose arma el mensaje para la factura dada con el PDF ya renderizado.
// El asunto lleva el mismo número de factura que aparece en el PDF.
func (c *GomailComposer) Compose(inv *entity.Invoice, pdf []byte) ([]byte, error) {
	m := gomail.NewMessage()
	m.SetHeader("Subject", "Invoice - "+inv.Number)
	m.SetAddressHeader("From", inv.Config.AgreementInfo.ProviderEmail, inv.Config.ServiceProviderInfo.Name)
	m.SetHeader("To", inv.Config.AgreementInfo.ClientEmails...)
	m.SetBody("text/plain", bodyText)
	m.Attach(attachmentName, gomail.SetCopyFunc(func(w io.Writer) error {
		_, err := w.Write(pdf)
		return err
	}))

	var buf bytes.Buffer
	if _, err := m.WriteTo(&buf); err != nil {
		return nil, fmt.Errorf("mail: serialize message: %w", err)
	}
	return buf.Bytes(), nil
}
