// Package scheduler administra las reglas de factura recurrente sobre Amazon
// EventBridge: una regla por cliente, con un destino que re-invoca la tubería
// de envío al dispararse.
package scheduler

import (
	"context"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/eventbridge"
	"github.com/aws/aws-sdk-go-v2/service/eventbridge/types"

	"github.com/jhoicas/invoiceless/internal/domain"
	"github.com/jhoicas/invoiceless/pkg/logger"
)

const ruleDescription = "Recurring Invoices for Client"

// EventBridgeAPI operaciones de EventBridge que usa el manager. Interfaz
// angosta sobre el cliente del SDK para poder sustituirlo en los tests.
type EventBridgeAPI interface {
	ListRules(ctx context.Context, params *eventbridge.ListRulesInput, optFns ...func(*eventbridge.Options)) (*eventbridge.ListRulesOutput, error)
	PutRule(ctx context.Context, params *eventbridge.PutRuleInput, optFns ...func(*eventbridge.Options)) (*eventbridge.PutRuleOutput, error)
	PutTargets(ctx context.Context, params *eventbridge.PutTargetsInput, optFns ...func(*eventbridge.Options)) (*eventbridge.PutTargetsOutput, error)
	RemoveTargets(ctx context.Context, params *eventbridge.RemoveTargetsInput, optFns ...func(*eventbridge.Options)) (*eventbridge.RemoveTargetsOutput, error)
	DeleteRule(ctx context.Context, params *eventbridge.DeleteRuleInput, optFns ...func(*eventbridge.Options)) (*eventbridge.DeleteRuleOutput, error)
}

// Config del manager: el rol con el que EventBridge ejecuta la regla y el ARN
// de la función que recibe el callback al dispararse.
type Config struct {
	RoleARN   string
	TargetARN string
}

// EventBridgeManager implementa invoicing.ScheduleManager.
type EventBridgeManager struct {
	client EventBridgeAPI
	cfg    Config
	log    *logger.Logger
}

// NewEventBridgeManager construye el manager.
func NewEventBridgeManager(client EventBridgeAPI, cfg Config, log *logger.Logger) *EventBridgeManager {
	return &EventBridgeManager{client: client, cfg: cfg, log: log}
}

// RuleName deriva el nombre de la regla del cliente. Determinista: nombrar la
// regla por el client_id es lo que garantiza a-lo-sumo-una programación por
// cliente.
func RuleName(clientID string) string {
	return "invoiceless-recurring-" + clientID
}

// CreateRule crea la regla recurrente del cliente con la expresión dada.
// Falla con domain.ErrDuplicateSchedule si el cliente ya tiene una regla.
func (m *EventBridgeManager) CreateRule(ctx context.Context, clientID, scheduleExpression string) error {
	name := RuleName(clientID)

	existing, err := m.client.ListRules(ctx, &eventbridge.ListRulesInput{
		NamePrefix: aws.String(name),
	})
	if err != nil {
		return err
	}
	if len(existing.Rules) > 0 {
		return domain.ErrDuplicateSchedule
	}

	out, err := m.client.PutRule(ctx, &eventbridge.PutRuleInput{
		Name:               aws.String(name),
		ScheduleExpression: aws.String(scheduleExpression),
		State:              types.RuleStateEnabled,
		Description:        aws.String(ruleDescription),
		RoleArn:            aws.String(m.cfg.RoleARN),
	})
	if err != nil {
		return err
	}
	m.log.Debug().
		Str("rule", name).
		Str("rule_arn", aws.ToString(out.RuleArn)).
		Str("schedule", scheduleExpression).
		Msg("regla recurrente creada")
	return nil
}

// AttachTarget adjunta a la regla del cliente el destino que re-invoca la
// tubería de envío con el payload dado.
func (m *EventBridgeManager) AttachTarget(ctx context.Context, clientID string, payload []byte) error {
	name := RuleName(clientID)

	out, err := m.client.PutTargets(ctx, &eventbridge.PutTargetsInput{
		Rule: aws.String(name),
		Targets: []types.Target{
			{
				Id:    aws.String(name),
				Arn:   aws.String(m.cfg.TargetARN),
				Input: aws.String(string(payload)),
			},
		},
	})
	if err != nil {
		return err
	}
	if out.FailedEntryCount > 0 {
		return fmt.Errorf("scheduler: %d target entries failed for rule %s", out.FailedEntryCount, name)
	}
	m.log.Debug().Str("rule", name).Msg("destino adjuntado a la regla")
	return nil
}

// RemoveTarget quita el destino de la regla del cliente. Debe ejecutarse
// antes de RemoveRule: EventBridge rechaza borrar reglas con destinos vivos.
func (m *EventBridgeManager) RemoveTarget(ctx context.Context, clientID string) error {
	name := RuleName(clientID)

	out, err := m.client.RemoveTargets(ctx, &eventbridge.RemoveTargetsInput{
		Rule: aws.String(name),
		Ids:  []string{name},
	})
	if err != nil {
		return err
	}
	if out.FailedEntryCount > 0 {
		return fmt.Errorf("scheduler: %d target entries failed to remove for rule %s", out.FailedEntryCount, name)
	}
	m.log.Debug().Str("rule", name).Msg("destino de la regla eliminado")
	return nil
}

// RemoveRule borra la regla del cliente.
func (m *EventBridgeManager) RemoveRule(ctx context.Context, clientID string) error {
	name := RuleName(clientID)

	if _, err := m.client.DeleteRule(ctx, &eventbridge.DeleteRuleInput{
		Name: aws.String(name),
	}); err != nil {
		return err
	}
	m.log.Debug().Str("rule", name).Msg("regla recurrente eliminada")
	return nil
}
