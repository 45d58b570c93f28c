package http

import (
	"fmt"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"github.com/jhoicas/invoiceless/internal/application/invoicing"
	"github.com/jhoicas/invoiceless/internal/domain"
	"github.com/jhoicas/invoiceless/pkg/logger"
)

const requestIDKey = "request_id"

// RouterDeps dependencias para el router.
type RouterDeps struct {
	SendInvoice *invoicing.SendInvoiceUseCase
	Schedule    *invoicing.ScheduleUseCase
	Unschedule  *invoicing.UnscheduleUseCase
	Log         *logger.Logger
}

// Router registra las rutas de la API. Tabla estática:
//
//	POST   /invoices                        → enviar ahora
//	POST   /invoices/scheduled              → programar recurrente
//	DELETE /invoices/scheduled/:client_id   → cancelar programación
//
// Cualquier otra combinación (método, ruta) responde 400 con un mensaje de
// ruta no encontrada — el contrato expone un único código de fallo.
func Router(app *fiber.App, deps RouterDeps) {
	app.Use(requestIDMiddleware())

	handler := NewInvoiceHandler(deps.SendInvoice, deps.Schedule, deps.Unschedule, deps.Log)

	invoices := app.Group("/invoices")
	invoices.Post("/", handler.SendNow)
	invoices.Post("/scheduled", handler.Schedule)
	invoices.Delete("/scheduled/:client_id", handler.Unschedule)

	// Catch-all: debe registrarse al final, después de todas las rutas.
	app.Use(func(c *fiber.Ctx) error {
		err := fmt.Errorf("%w: %s %s", domain.ErrRouteNotFound, c.Method(), c.Path())
		deps.Log.Error().
			Err(err).
			Str(requestIDKey, RequestID(c)).
			Msg("ruta desconocida")
		return c.Status(fiber.StatusBadRequest).SendString(err.Error())
	})
}

// requestIDMiddleware asigna un identificador a cada petición para
// correlacionar los registros del punto de recuperación.
func requestIDMiddleware() fiber.Handler {
	return func(c *fiber.Ctx) error {
		id := uuid.NewString()
		c.Locals(requestIDKey, id)
		c.Set("X-Request-ID", id)
		return c.Next()
	}
}

// RequestID devuelve el identificador asignado a la petición.
func RequestID(c *fiber.Ctx) string {
	if id, okID := c.Locals(requestIDKey).(string); okID {
		return id
	}
	return ""
}
