package invoice

import (
	"fmt"
	"time"

	"github.com/jhoicas/invoiceless/internal/domain/entity"
)

// Number deriva el número de factura: client_id concatenado con el año y el
// mes en curso (mes sin cero a la izquierda). Misma entrada en el mismo mes,
// mismo número — las facturas recurrentes mensuales obtienen un número nuevo
// cada mes sin guardar nada.
func Number(clientID string, now time.Time) string {
	return fmt.Sprintf("%s%d%d", clientID, now.Year(), int(now.Month()))
}

// Normalize convierte una configuración ya validada en la factura a emitir:
// calcula el número, la fecha de emisión y el vencimiento (emisión + net días)
// una sola vez. El renderizador y el compositor de correo reciben estos
// valores ya fijados; un cambio de mes a mitad de la tubería no puede
// producir dos números distintos.
func Normalize(cfg *entity.InvoiceConfig, now time.Time) *entity.Invoice {
	return &entity.Invoice{
		Config:    cfg,
		Number:    Number(cfg.ClientInfo.ClientID, now),
		IssueDate: now,
		DueDate:   now.AddDate(0, 0, cfg.AgreementInfo.NetDays()),
	}
}
