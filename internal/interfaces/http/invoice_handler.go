package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/invoiceless/internal/application/invoicing"
	"github.com/jhoicas/invoiceless/pkg/logger"
)

// InvoiceHandler maneja las peticiones HTTP de facturación. Es el único punto
// de recuperación: todo error de las tuberías se registra aquí con detalle
// completo y se convierte en una respuesta 400 con el mensaje como cuerpo.
// Nunca deja caer el proceso.
type InvoiceHandler struct {
	send       *invoicing.SendInvoiceUseCase
	schedule   *invoicing.ScheduleUseCase
	unschedule *invoicing.UnscheduleUseCase
	log        *logger.Logger
}

// NewInvoiceHandler construye el handler.
func NewInvoiceHandler(
	send *invoicing.SendInvoiceUseCase,
	schedule *invoicing.ScheduleUseCase,
	unschedule *invoicing.UnscheduleUseCase,
	log *logger.Logger,
) *InvoiceHandler {
	return &InvoiceHandler{
		send:       send,
		schedule:   schedule,
		unschedule: unschedule,
		log:        log,
	}
}

// SendNow valida la configuración, renderiza el PDF y envía el correo.
// POST /invoices
func (h *InvoiceHandler) SendNow(c *fiber.Ctx) error {
	if err := h.send.Send(c.Context(), c.Body()); err != nil {
		return h.fail(c, err)
	}
	return ok(c)
}

// Schedule crea la programación recurrente del cliente.
// POST /invoices/scheduled
func (h *InvoiceHandler) Schedule(c *fiber.Ctx) error {
	if err := h.schedule.Schedule(c.Context(), c.Body()); err != nil {
		return h.fail(c, err)
	}
	return ok(c)
}

// Unschedule elimina la programación recurrente del cliente.
// DELETE /invoices/scheduled/:client_id
func (h *InvoiceHandler) Unschedule(c *fiber.Ctx) error {
	clientID := c.Params("client_id")
	if err := h.unschedule.Unschedule(c.Context(), clientID); err != nil {
		return h.fail(c, err)
	}
	return ok(c)
}

// ok responde 200 con cuerpo vacío.
func ok(c *fiber.Ctx) error {
	return c.Status(fiber.StatusOK).Send(nil)
}

// fail registra el error con todo el detalle y responde 400 con el mensaje.
// Sin distinción de clases de error hacia el llamador: siempre 400.
func (h *InvoiceHandler) fail(c *fiber.Ctx, err error) error {
	h.log.Error().
		Err(err).
		Str("request_id", RequestID(c)).
		Str("method", c.Method()).
		Str("path", c.Path()).
		Msg("petición de facturación fallida")
	return c.Status(fiber.StatusBadRequest).SendString(err.Error())
}
