// Package pdf implementa la representación gráfica de la factura con Maroto v2.
//
// Layout de la página A4:
//
//	┌─────────────────────────────────────────────────────────────┐
//	│  HEADER: Nombre del proveedor  │  N° Factura + Fechas       │
//	│  ─────────────────────────────────────────────────────────  │
//	│  FROM: dirección del proveedor                              │
//	│  BILL TO: cliente + dirección                               │
//	│  ─────────────────────────────────────────────────────────  │
//	│  TABLA: Qty | Description | Unit Price | Amount             │
//	│  ─────────────────────────────────────────────────────────  │
//	│  TOTAL DUE                                                  │
//	│  FOOTER: "Thanks for your business!" + email del proveedor  │
//	└─────────────────────────────────────────────────────────────┘
package pdf

import (
	"context"
	"fmt"
	"os"
	"strings"

	maroto "github.com/johnfercher/maroto/v2"
	"github.com/johnfercher/maroto/v2/pkg/components/col"
	"github.com/johnfercher/maroto/v2/pkg/components/line"
	"github.com/johnfercher/maroto/v2/pkg/components/row"
	"github.com/johnfercher/maroto/v2/pkg/components/text"
	"github.com/johnfercher/maroto/v2/pkg/config"
	"github.com/johnfercher/maroto/v2/pkg/consts/align"
	"github.com/johnfercher/maroto/v2/pkg/consts/fontstyle"
	"github.com/johnfercher/maroto/v2/pkg/consts/pagesize"
	"github.com/johnfercher/maroto/v2/pkg/core"
	"github.com/johnfercher/maroto/v2/pkg/props"

	"github.com/jhoicas/invoiceless/internal/domain/entity"
)

// ── Paleta de colores ─────────────────────────────────────────────────────────

var (
	colorPrimary = &props.Color{Red: 0, Green: 70, Blue: 127}
	colorGray    = &props.Color{Red: 100, Green: 100, Blue: 100}
)

const dateLayout = "02/01/2006"

// ── Renderer ──────────────────────────────────────────────────────────────────

// MarotoInvoiceRenderer implementa invoicing.Renderer usando Maroto v2.
// Si pdfPath no está vacío, además deja una copia del documento en esa ruta
// (una sola invocación por instancia; invocaciones concurrentes en el mismo
// sistema de archivos pisarían el archivo).
type MarotoInvoiceRenderer struct {
	pdfPath string
}

// NewMarotoInvoiceRenderer construye el renderizador.
func NewMarotoInvoiceRenderer(pdfPath string) *MarotoInvoiceRenderer {
	return &MarotoInvoiceRenderer{pdfPath: pdfPath}
}

// Render genera el PDF de la factura y devuelve sus bytes.
func (r *MarotoInvoiceRenderer) Render(_ context.Context, inv *entity.Invoice) ([]byte, error) {
	provider := inv.Config.ServiceProviderInfo
	client := inv.Config.ClientInfo

	cfg := config.NewBuilder().
		WithPageSize(pagesize.A4).
		WithLeftMargin(10).WithRightMargin(10).
		WithTopMargin(10).WithBottomMargin(10).
		WithDefaultFont(&props.Font{Family: "helvetica", Size: 9}).
		WithTitle("Invoice "+inv.Number, true).
		WithAuthor(provider.Name, true).
		Build()

	m := maroto.New(cfg)

	m.AddRows(headerRow(inv))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.5}))
	m.AddRows(providerRow(provider))
	m.AddRows(clientRow(client))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.3}))

	m.AddRows(tableHeaderRow())
	for _, tr := range tableDetailRows(inv.Config.LineItems) {
		m.AddRows(tr)
	}

	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.3}))
	m.AddRows(totalRow(inv))

	m.AddRows(line.NewRow(3))
	m.AddRows(bottomTipRow(inv.Config.AgreementInfo.ProviderEmail))

	doc, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("pdf: generate document: %w", err)
	}
	pdfBytes := doc.GetBytes()

	if r.pdfPath != "" {
		if err := os.WriteFile(r.pdfPath, pdfBytes, 0o644); err != nil {
			return nil, fmt.Errorf("pdf: write %s: %w", r.pdfPath, err)
		}
	}
	return pdfBytes, nil
}

// ── Secciones ─────────────────────────────────────────────────────────────────

// headerRow: nombre del proveedor (izq) y número de factura + fechas (der).
func headerRow(inv *entity.Invoice) core.Row {
	return row.New(20).Add(
		col.New(7).Add(
			text.New(inv.Config.ServiceProviderInfo.Name, props.Text{
				Style: fontstyle.Bold, Size: 13, Color: colorPrimary, Top: 1,
			}),
		),
		col.New(5).Add(
			text.New("INVOICE", props.Text{
				Style: fontstyle.Bold, Size: 8, Align: align.Right,
				Color: colorPrimary, Top: 1,
			}),
			text.New("# "+inv.Number, props.Text{
				Style: fontstyle.Bold, Size: 12, Align: align.Right, Top: 6,
			}),
			text.New("Issued: "+inv.IssueDate.Format(dateLayout), props.Text{
				Size: 8, Align: align.Right, Top: 13, Color: colorGray,
			}),
			text.New("Due: "+inv.DueDate.Format(dateLayout), props.Text{
				Size: 8, Align: align.Right, Top: 17, Color: colorGray,
			}),
		),
	)
}

// providerRow: bloque de dirección del emisor.
func providerRow(p *entity.ServiceProviderInfo) core.Row {
	return row.New(12).Add(
		col.New(12).Add(
			text.New("FROM", props.Text{
				Style: fontstyle.Bold, Size: 8, Color: colorPrimary, Top: 1,
			}),
			text.New(addressLine(p.Street, p.City, p.State, p.Country, p.PostCode), props.Text{
				Size: 8, Top: 7, Color: colorGray,
			}),
		),
	)
}

// clientRow: bloque del cliente facturado.
func clientRow(c *entity.ClientInfo) core.Row {
	return row.New(16).Add(
		col.New(12).Add(
			text.New("BILL TO", props.Text{
				Style: fontstyle.Bold, Size: 8, Color: colorPrimary, Top: 1,
			}),
			text.New(c.Name, props.Text{
				Style: fontstyle.Bold, Size: 10, Top: 6,
			}),
			text.New(addressLine(c.Street, c.City, c.State, c.Country, c.PostCode), props.Text{
				Size: 8, Top: 12, Color: colorGray,
			}),
		),
	)
}

// tableHeaderRow: cabecera de la tabla de líneas.
func tableHeaderRow() core.Row {
	h := func(label string, size int, a align.Type) core.Col {
		return col.New(size).Add(text.New(label, props.Text{
			Style: fontstyle.Bold, Size: 8, Align: a,
			Color: colorPrimary, Top: 2, Left: 1, Right: 1,
		}))
	}
	return row.New(8).Add(
		h("Qty", 1, align.Center),
		h("Description", 6, align.Left),
		h("Unit Price", 2, align.Right),
		h("Amount", 3, align.Right),
	)
}

// tableDetailRows: una fila por línea de la factura.
func tableDetailRows(items []entity.LineItem) []core.Row {
	result := make([]core.Row, 0, len(items))
	for _, li := range items {
		desc := li.Name
		if li.Description != "" {
			desc += " — " + li.Description
		}
		result = append(result, row.New(7).Add(
			col.New(1).Add(text.New(
				fmt.Sprintf("%d", li.Units),
				props.Text{Size: 8, Align: align.Center, Top: 1},
			)),
			col.New(6).Add(text.New(
				desc,
				props.Text{Size: 8, Align: align.Left, Top: 1, Left: 1},
			)),
			col.New(2).Add(text.New(
				"$"+li.UnitPrice.StringFixed(2),
				props.Text{Size: 8, Align: align.Right, Top: 1, Right: 1},
			)),
			col.New(3).Add(text.New(
				"$"+li.Amount().StringFixed(2),
				props.Text{Size: 8, Align: align.Right, Top: 1, Right: 1},
			)),
		))
	}
	return result
}

// totalRow: total a pagar alineado a la derecha.
func totalRow(inv *entity.Invoice) core.Row {
	return row.New(10).Add(
		col.New(6),
		col.New(3).Add(text.New("TOTAL DUE:", props.Text{
			Style: fontstyle.Bold, Size: 10, Align: align.Right,
			Color: colorPrimary, Right: 2, Top: 2,
		})),
		col.New(3).Add(text.New("$"+inv.Total().StringFixed(2), props.Text{
			Style: fontstyle.Bold, Size: 10, Align: align.Right,
			Color: colorPrimary, Right: 1, Top: 2,
		})),
	)
}

// bottomTipRow: nota de cierre con el correo de contacto del proveedor.
func bottomTipRow(providerEmail string) core.Row {
	return row.New(14).Add(
		col.New(12).Add(
			text.New("Thanks for your business!", props.Text{
				Style: fontstyle.Bold, Size: 9, Top: 2,
			}),
			text.New("Email: "+providerEmail, props.Text{
				Size: 8, Top: 7, Color: colorGray,
			}),
			text.New("Don't hesitate to contact us for any questions.", props.Text{
				Size: 8, Top: 11, Color: colorGray,
			}),
		),
	)
}

// ── helpers ───────────────────────────────────────────────────────────────────

// addressLine une las partes no vacías de la dirección en una sola línea.
func addressLine(parts ...string) string {
	nonEmpty := make([]string, 0, len(parts))
	for _, p := range parts {
		if p != "" {
			nonEmpty = append(nonEmpty, p)
		}
	}
	if len(nonEmpty) == 0 {
		return "—"
	}
	return strings.Join(nonEmpty, ", ")
}
