package invoicing

import (
	"context"

	"github.com/jhoicas/invoiceless/internal/domain/entity"
)

// Puertos hacia los colaboradores externos. Los casos de uso reciben estas
// interfaces por constructor (nada de clientes globales), así los tests los
// sustituyen por dobles.

// Renderer genera el documento PDF de la factura y devuelve sus bytes.
type Renderer interface {
	Render(ctx context.Context, inv *entity.Invoice) ([]byte, error)
}

// Composer arma el mensaje MIME multiparte (texto + PDF adjunto) listo para
// entregar al servicio de correo.
type Composer interface {
	Compose(inv *entity.Invoice, pdf []byte) ([]byte, error)
}

// Sender transmite un mensaje ya compuesto. senderARN, si no está vacío, es
// la identidad verificada desde la que se autoriza el envío.
type Sender interface {
	Send(ctx context.Context, rawMessage []byte, from string, to []string, senderARN string) error
}

// ScheduleManager administra las reglas de temporizador recurrentes del
// cliente en el scheduler externo. CreateRule falla con
// domain.ErrDuplicateSchedule si el cliente ya tiene una regla activa.
// RemoveTarget y RemoveRule NO son idempotentes: quitar un recurso
// inexistente propaga el error del colaborador tal cual.
type ScheduleManager interface {
	CreateRule(ctx context.Context, clientID, scheduleExpression string) error
	AttachTarget(ctx context.Context, clientID string, payload []byte) error
	RemoveTarget(ctx context.Context, clientID string) error
	RemoveRule(ctx context.Context, clientID string) error
}
