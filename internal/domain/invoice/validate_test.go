package invoice_test

import (
	"errors"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/invoiceless/internal/domain"
	"github.com/jhoicas/invoiceless/internal/domain/entity"
	"github.com/jhoicas/invoiceless/internal/domain/invoice"
)

// ──────────────────────────────────────────────────────────────────────────────
// Helpers de test
// ──────────────────────────────────────────────────────────────────────────────

// validConfig devuelve la configuración mínima válida: una línea, un correo de
// cliente, sin net explícito.
func validConfig() *entity.InvoiceConfig {
	return &entity.InvoiceConfig{
		ServiceProviderInfo: &entity.ServiceProviderInfo{Name: "Acme Consulting"},
		ClientInfo:          &entity.ClientInfo{ClientID: "42", Name: "Cliente SA"},
		AgreementInfo: &entity.AgreementInfo{
			ClientEmails:  []string{"facturas@cliente.example"},
			ProviderEmail: "billing@acme.example",
		},
		LineItems: []entity.LineItem{
			{Name: "Consultoría", Units: 10, UnitPrice: decimal.NewFromFloat(150.00)},
		},
	}
}

// schemaErr extrae el *domain.SchemaError o falla el test.
func schemaErr(t *testing.T, err error) *domain.SchemaError {
	t.Helper()
	require.Error(t, err)
	var se *domain.SchemaError
	require.ErrorAs(t, err, &se, "el error debe ser un SchemaError")
	return se
}

// paths devuelve las rutas de campo de las violaciones, en orden.
func paths(se *domain.SchemaError) []string {
	out := make([]string, 0, len(se.Violations))
	for _, v := range se.Violations {
		out = append(out, v.Path)
	}
	return out
}

// ──────────────────────────────────────────────────────────────────────────────
// Configuración válida
// ──────────────────────────────────────────────────────────────────────────────

func TestValidate_ConfigMinimaValida(t *testing.T) {
	assert.NoError(t, invoice.Validate(validConfig()))
}

func TestValidate_ConfigCompletaValida(t *testing.T) {
	cfg := validConfig()
	net := 45
	cfg.AgreementInfo.Net = &net
	cfg.AgreementInfo.VerifiedSenderARN = "arn:aws:ses:us-east-1:123456789012:identity/acme.example"
	cfg.ServiceProviderInfo.Street = "Calle 1 #2-3"
	cfg.ServiceProviderInfo.City = "Bogotá"
	cfg.ClientInfo.Country = "CO"
	cfg.LineItems = append(cfg.LineItems, entity.LineItem{
		Name:        "Soporte",
		Description: "Soporte mensual",
		Units:       1,
		UnitPrice:   decimal.NewFromFloat(0.01), // el mínimo permitido
	})

	assert.NoError(t, invoice.Validate(cfg))
}

// Validar dos veces la misma configuración debe producir exactamente el mismo
// resultado (idempotencia).
func TestValidate_Idempotente(t *testing.T) {
	cfg := validConfig()
	cfg.ClientInfo.ClientID = ""
	cfg.AgreementInfo.ProviderEmail = ""

	se1 := schemaErr(t, invoice.Validate(cfg))
	se2 := schemaErr(t, invoice.Validate(cfg))

	assert.Equal(t, se1.Violations, se2.Violations,
		"dos validaciones de la misma configuración deben dar las mismas violaciones")
	assert.Equal(t, se1.Error(), se2.Error())
}

// ──────────────────────────────────────────────────────────────────────────────
// Campos requeridos
// ──────────────────────────────────────────────────────────────────────────────

func TestValidate_CamposRequeridos(t *testing.T) {
	cases := []struct {
		name     string
		mutate   func(cfg *entity.InvoiceConfig)
		wantPath string
	}{
		{
			name:     "sin client_emails",
			mutate:   func(cfg *entity.InvoiceConfig) { cfg.AgreementInfo.ClientEmails = nil },
			wantPath: "agreement_info.client_emails",
		},
		{
			name:     "sin provider_email",
			mutate:   func(cfg *entity.InvoiceConfig) { cfg.AgreementInfo.ProviderEmail = "" },
			wantPath: "agreement_info.provider_email",
		},
		{
			name:     "sin client_id",
			mutate:   func(cfg *entity.InvoiceConfig) { cfg.ClientInfo.ClientID = "" },
			wantPath: "client_info.client_id",
		},
		{
			name:     "sin nombre del cliente",
			mutate:   func(cfg *entity.InvoiceConfig) { cfg.ClientInfo.Name = "" },
			wantPath: "client_info.name",
		},
		{
			name:     "sin nombre del proveedor",
			mutate:   func(cfg *entity.InvoiceConfig) { cfg.ServiceProviderInfo.Name = "" },
			wantPath: "service_provider_info.name",
		},
		{
			name:     "sin bloque agreement_info",
			mutate:   func(cfg *entity.InvoiceConfig) { cfg.AgreementInfo = nil },
			wantPath: "agreement_info",
		},
		{
			name:     "sin bloque client_info",
			mutate:   func(cfg *entity.InvoiceConfig) { cfg.ClientInfo = nil },
			wantPath: "client_info",
		},
		{
			name:     "sin bloque service_provider_info",
			mutate:   func(cfg *entity.InvoiceConfig) { cfg.ServiceProviderInfo = nil },
			wantPath: "service_provider_info",
		},
		{
			name:     "sin line_items",
			mutate:   func(cfg *entity.InvoiceConfig) { cfg.LineItems = nil },
			wantPath: "line_items",
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			cfg := validConfig()
			tc.mutate(cfg)

			se := schemaErr(t, invoice.Validate(cfg))
			assert.Contains(t, paths(se), tc.wantPath,
				"la violación debe nombrar el campo %s", tc.wantPath)
			assert.Contains(t, se.Error(), tc.wantPath,
				"el mensaje debe nombrar el campo que falta")
		})
	}
}

// line_items presente pero vacío es válido: el formato exige el campo, no un
// mínimo de líneas.
func TestValidate_LineItemsVacioEsValido(t *testing.T) {
	cfg := validConfig()
	cfg.LineItems = []entity.LineItem{}
	assert.NoError(t, invoice.Validate(cfg))
}

// ──────────────────────────────────────────────────────────────────────────────
// Líneas de detalle
// ──────────────────────────────────────────────────────────────────────────────

func TestValidate_LineaSinUnidades(t *testing.T) {
	cfg := validConfig()
	cfg.LineItems[0].Units = 0

	se := schemaErr(t, invoice.Validate(cfg))
	assert.Contains(t, paths(se), "line_items.0.units")
}

func TestValidate_LineaConPrecioMenorAlMinimo(t *testing.T) {
	cfg := validConfig()
	cfg.LineItems[0].UnitPrice = decimal.NewFromFloat(0.009)

	se := schemaErr(t, invoice.Validate(cfg))
	assert.Contains(t, paths(se), "line_items.0.unit_price")
}

func TestValidate_LineaSinNombre(t *testing.T) {
	cfg := validConfig()
	cfg.LineItems[0].Name = ""

	se := schemaErr(t, invoice.Validate(cfg))
	assert.Contains(t, paths(se), "line_items.0.name")
}

// ──────────────────────────────────────────────────────────────────────────────
// Correos del cliente
// ──────────────────────────────────────────────────────────────────────────────

func TestValidate_ClientEmailsDuplicados(t *testing.T) {
	cfg := validConfig()
	cfg.AgreementInfo.ClientEmails = []string{"a@cliente.example", "a@cliente.example"}

	se := schemaErr(t, invoice.Validate(cfg))
	assert.Contains(t, paths(se), "agreement_info.client_emails.1",
		"la segunda aparición del correo es la duplicada")
}

func TestValidate_ClientEmailsVacios(t *testing.T) {
	cfg := validConfig()
	cfg.AgreementInfo.ClientEmails = []string{}

	se := schemaErr(t, invoice.Validate(cfg))
	assert.Contains(t, paths(se), "agreement_info.client_emails")
}

// ──────────────────────────────────────────────────────────────────────────────
// Plazo de pago (net)
// ──────────────────────────────────────────────────────────────────────────────

func TestValidate_NetFueraDeRango(t *testing.T) {
	for _, net := range []int{0, -5, 121, 500} {
		cfg := validConfig()
		n := net
		cfg.AgreementInfo.Net = &n

		se := schemaErr(t, invoice.Validate(cfg))
		assert.Contains(t, paths(se), "agreement_info.net",
			"net=%d debe estar fuera del rango permitido", net)
	}
}

func TestValidate_NetEnLosBordes(t *testing.T) {
	for _, net := range []int{1, 120} {
		cfg := validConfig()
		n := net
		cfg.AgreementInfo.Net = &n
		assert.NoError(t, invoice.Validate(cfg), "net=%d es válido", net)
	}
}

// ──────────────────────────────────────────────────────────────────────────────
// Orden determinista de las violaciones
// ──────────────────────────────────────────────────────────────────────────────

func TestValidate_RecolectaTodasLasViolacionesOrdenadas(t *testing.T) {
	cfg := validConfig()
	cfg.ServiceProviderInfo.Name = ""
	cfg.ClientInfo.ClientID = ""
	cfg.AgreementInfo.ProviderEmail = ""
	cfg.LineItems[0].Units = 0

	se := schemaErr(t, invoice.Validate(cfg))
	require.Len(t, se.Violations, 4, "deben reportarse las cuatro violaciones, no solo la primera")

	got := paths(se)
	assert.Equal(t, []string{
		"agreement_info.provider_email",
		"client_info.client_id",
		"line_items.0.units",
		"service_provider_info.name",
	}, got, "las violaciones deben venir ordenadas por la ruta del campo")
}

func TestValidate_ConfigNula(t *testing.T) {
	err := invoice.Validate(nil)
	var se *domain.SchemaError
	assert.True(t, errors.As(err, &se))
}
