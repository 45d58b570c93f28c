package invoicing

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/jhoicas/invoiceless/internal/domain"
	"github.com/jhoicas/invoiceless/internal/domain/invoice"
)

// callbackEvent es la carga que el scheduler externo entrega al dispararse la
// regla: una petición con la misma forma que POST /invoices, de modo que el
// temporizador re-invoca la tubería de envío con la configuración original.
type callbackEvent struct {
	Path       string `json:"path"`
	HTTPMethod string `json:"httpMethod"`
	Body       string `json:"body"`
}

// ScheduleUseCase tubería de programación recurrente: parsear → validar →
// exigir schedule_expression → crear la regla → adjuntar el destino.
type ScheduleUseCase struct {
	schedules ScheduleManager
}

// NewScheduleUseCase construye el caso de uso.
func NewScheduleUseCase(schedules ScheduleManager) *ScheduleUseCase {
	return &ScheduleUseCase{schedules: schedules}
}

// Schedule crea la programación recurrente para el cliente de la
// configuración. A lo sumo una programación por cliente: si ya existe una
// regla, CreateRule falla con domain.ErrDuplicateSchedule y el destino no se
// adjunta.
func (uc *ScheduleUseCase) Schedule(ctx context.Context, rawBody []byte) error {
	cfg, err := parseConfig(rawBody)
	if err != nil {
		return err
	}
	if err := invoice.Validate(cfg); err != nil {
		return err
	}
	if cfg.ScheduleExpression == "" {
		return domain.ErrMissingSchedule
	}

	clientID := cfg.ClientInfo.ClientID

	body, err := json.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("serialize invoice config: %w", err)
	}
	payload, err := json.Marshal(callbackEvent{
		Path:       "/invoices",
		HTTPMethod: "POST",
		Body:       string(body),
	})
	if err != nil {
		return fmt.Errorf("serialize callback payload: %w", err)
	}

	if err := uc.schedules.CreateRule(ctx, clientID, cfg.ScheduleExpression); err != nil {
		return err
	}
	return uc.schedules.AttachTarget(ctx, clientID, payload)
}

// UnscheduleUseCase tubería de cancelación: quitar el destino y después la
// regla. El orden importa — el scheduler rechaza borrar una regla que aún
// tiene destinos vivos.
type UnscheduleUseCase struct {
	schedules ScheduleManager
}

// NewUnscheduleUseCase construye el caso de uso.
func NewUnscheduleUseCase(schedules ScheduleManager) *UnscheduleUseCase {
	return &UnscheduleUseCase{schedules: schedules}
}

// Unschedule elimina la programación recurrente del cliente. No es
// idempotente: si el cliente no tiene programación, el error del scheduler se
// propaga al llamador.
func (uc *UnscheduleUseCase) Unschedule(ctx context.Context, clientID string) error {
	if err := uc.schedules.RemoveTarget(ctx, clientID); err != nil {
		return err
	}
	return uc.schedules.RemoveRule(ctx, clientID)
}
