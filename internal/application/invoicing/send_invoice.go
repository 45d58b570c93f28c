// Package invoicing orquesta las tres tuberías del servicio: enviar una
// factura ahora, programar una factura recurrente y cancelar la programación.
// Cada petición se procesa de forma síncrona y sin estado compartido; si un
// paso falla, los restantes no se ejecutan.
package invoicing

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/jhoicas/invoiceless/internal/domain"
	"github.com/jhoicas/invoiceless/internal/domain/entity"
	"github.com/jhoicas/invoiceless/internal/domain/invoice"
)

// SendInvoiceUseCase tubería de envío inmediato:
// parsear → validar → normalizar → renderizar PDF → componer correo → enviar.
type SendInvoiceUseCase struct {
	renderer Renderer
	composer Composer
	sender   Sender
	now      func() time.Time
}

// NewSendInvoiceUseCase construye el caso de uso inyectando los colaboradores.
func NewSendInvoiceUseCase(renderer Renderer, composer Composer, sender Sender) *SendInvoiceUseCase {
	return &SendInvoiceUseCase{
		renderer: renderer,
		composer: composer,
		sender:   sender,
		now:      time.Now,
	}
}

// Send ejecuta la tubería completa sobre el cuerpo crudo de la petición.
func (uc *SendInvoiceUseCase) Send(ctx context.Context, rawBody []byte) error {
	cfg, err := parseConfig(rawBody)
	if err != nil {
		return err
	}
	if err := invoice.Validate(cfg); err != nil {
		return err
	}

	inv := invoice.Normalize(cfg, uc.now())

	pdf, err := uc.renderer.Render(ctx, inv)
	if err != nil {
		return err
	}
	raw, err := uc.composer.Compose(inv, pdf)
	if err != nil {
		return err
	}
	return uc.sender.Send(ctx,
		raw,
		cfg.AgreementInfo.ProviderEmail,
		cfg.AgreementInfo.ClientEmails,
		cfg.AgreementInfo.VerifiedSenderARN,
	)
}

// parseConfig decodifica el cuerpo JSON de la petición.
func parseConfig(rawBody []byte) (*entity.InvoiceConfig, error) {
	var cfg entity.InvoiceConfig
	if err := json.Unmarshal(rawBody, &cfg); err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrMalformedBody, err)
	}
	return &cfg, nil
}
