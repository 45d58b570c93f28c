package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// InvoiceConfig es la única entidad de dominio: describe proveedor, cliente,
// términos del acuerdo y líneas de detalle de una factura. Se construye
// parseando el cuerpo JSON de la petición, se valida una sola vez y después
// ningún componente la muta.
type InvoiceConfig struct {
	ScheduleExpression  string               `json:"schedule_expression,omitempty"`
	ServiceProviderInfo *ServiceProviderInfo `json:"service_provider_info,omitempty"`
	ClientInfo          *ClientInfo          `json:"client_info,omitempty"`
	AgreementInfo       *AgreementInfo       `json:"agreement_info,omitempty"`
	LineItems           []LineItem           `json:"line_items,omitempty"`
}

// ServiceProviderInfo datos del emisor de la factura. Solo el nombre es
// obligatorio; la dirección es opcional.
type ServiceProviderInfo struct {
	Name     string `json:"name"`
	Street   string `json:"street,omitempty"`
	City     string `json:"city,omitempty"`
	State    string `json:"state,omitempty"`
	Country  string `json:"country,omitempty"`
	PostCode string `json:"post_code,omitempty"`
}

// ClientInfo datos del cliente facturado. ClientID es la llave de tenant:
// nombra la regla recurrente y deriva el número de factura.
type ClientInfo struct {
	ClientID string `json:"client_id"`
	Name     string `json:"name"`
	Street   string `json:"street,omitempty"`
	City     string `json:"city,omitempty"`
	State    string `json:"state,omitempty"`
	Country  string `json:"country,omitempty"`
	PostCode string `json:"post_code,omitempty"`
}

// AgreementInfo términos del acuerdo de facturación. Net es el plazo de pago
// en días (nil = 30 por defecto). VerifiedSenderARN autoriza el envío desde
// una identidad verificada ajena.
type AgreementInfo struct {
	Net               *int     `json:"net,omitempty"`
	ClientEmails      []string `json:"client_emails"`
	ProviderEmail     string   `json:"provider_email"`
	VerifiedSenderARN string   `json:"verified_sender_arn,omitempty"`
}

// LineItem una línea de detalle de la factura.
type LineItem struct {
	Name        string          `json:"name"`
	Description string          `json:"description,omitempty"`
	Units       int             `json:"units"`
	UnitPrice   decimal.Decimal `json:"unit_price"`
}

// Amount devuelve el importe de la línea (unidades × precio unitario).
func (li LineItem) Amount() decimal.Decimal {
	return li.UnitPrice.Mul(decimal.NewFromInt(int64(li.Units)))
}

// NetDays devuelve el plazo de pago efectivo en días.
func (a *AgreementInfo) NetDays() int {
	if a == nil || a.Net == nil {
		return 30
	}
	return *a.Net
}

// Invoice es la configuración ya validada y normalizada: número de factura y
// fechas calculados UNA sola vez, de modo que el PDF y el correo usan
// exactamente los mismos valores aunque el mes cambie entre ambos pasos.
type Invoice struct {
	Config    *InvoiceConfig
	Number    string
	IssueDate time.Time
	DueDate   time.Time
}

// Total devuelve la suma de los importes de todas las líneas.
func (i *Invoice) Total() decimal.Decimal {
	total := decimal.Zero
	for _, li := range i.Config.LineItems {
		total = total.Add(li.Amount())
	}
	return total
}
