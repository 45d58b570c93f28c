// Package invoice contiene la lógica pura de facturación: validación
// estructural de la configuración y derivación del número de factura y sus
// fechas. Sin I/O, sin estado — todo determinista.
package invoice

import (
	"fmt"
	"sort"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/invoiceless/internal/domain"
	"github.com/jhoicas/invoiceless/internal/domain/entity"
)

var minUnitPrice = decimal.NewFromFloat(0.01)

const (
	minNet = 1
	maxNet = 120
)

// Validate verifica la configuración contra el formato fijo de factura.
// Recolecta TODAS las violaciones (no solo la primera) y las ordena por la
// ruta del campo, de modo que el mensaje de error es determinista. Retorna
// *domain.SchemaError si hay al menos una violación, nil si no.
//
// Validar dos veces la misma configuración produce el mismo resultado.
func Validate(cfg *entity.InvoiceConfig) error {
	var vs []domain.Violation
	add := func(path, reason string) {
		vs = append(vs, domain.Violation{Path: path, Reason: reason})
	}

	if cfg == nil {
		add("", "invoice config is required")
		return &domain.SchemaError{Violations: vs}
	}

	// service_provider_info
	if cfg.ServiceProviderInfo == nil {
		add("service_provider_info", "is required")
	} else if cfg.ServiceProviderInfo.Name == "" {
		add("service_provider_info.name", "is required")
	}

	// client_info
	if cfg.ClientInfo == nil {
		add("client_info", "is required")
	} else {
		if cfg.ClientInfo.ClientID == "" {
			add("client_info.client_id", "is required")
		}
		if cfg.ClientInfo.Name == "" {
			add("client_info.name", "is required")
		}
	}

	// agreement_info
	if cfg.AgreementInfo == nil {
		add("agreement_info", "is required")
	} else {
		ag := cfg.AgreementInfo
		if len(ag.ClientEmails) == 0 {
			add("agreement_info.client_emails", "must contain at least one email")
		} else {
			seen := make(map[string]bool, len(ag.ClientEmails))
			for i, email := range ag.ClientEmails {
				if email == "" {
					add(fmt.Sprintf("agreement_info.client_emails.%d", i), "must not be empty")
					continue
				}
				if seen[email] {
					add(fmt.Sprintf("agreement_info.client_emails.%d", i), "is a duplicate")
				}
				seen[email] = true
			}
		}
		if ag.ProviderEmail == "" {
			add("agreement_info.provider_email", "is required")
		}
		if ag.Net != nil && (*ag.Net < minNet || *ag.Net > maxNet) {
			add("agreement_info.net", fmt.Sprintf("must be between %d and %d days", minNet, maxNet))
		}
	}

	// line_items
	if cfg.LineItems == nil {
		add("line_items", "is required")
	}
	for i, li := range cfg.LineItems {
		if li.Name == "" {
			add(fmt.Sprintf("line_items.%d.name", i), "is required")
		}
		if li.Units < 1 {
			add(fmt.Sprintf("line_items.%d.units", i), "must be at least 1")
		}
		if li.UnitPrice.LessThan(minUnitPrice) {
			add(fmt.Sprintf("line_items.%d.unit_price", i), "must be at least 0.01")
		}
	}

	if len(vs) == 0 {
		return nil
	}
	sort.Slice(vs, func(a, b int) bool {
		if vs[a].Path != vs[b].Path {
			return vs[a].Path < vs[b].Path
		}
		return vs[a].Reason < vs[b].Reason
	})
	return &domain.SchemaError{Violations: vs}
}
