// Package pdf genera el estado de cuenta de una propiedad en A4.
//
// Layout:
//
//	┌─────────────────────────────────────────────────────────────┐
//	│  HEADER: Braian.rent + propietario  │  Fecha de emisión     │
//	│  ─────────────────────────────────────────────────────────  │
//	│  NIERUCHOMOŚĆ: dirección, ciudad, código postal             │
//	│  NAJEMCA: nombre + contacto (o "brak")                      │
//	│  UMOWY: periodo | renta | estado, la más reciente primero   │
//	│  ─────────────────────────────────────────────────────────  │
//	│  PŁATNOŚĆ: vencimiento | importe | pagado | estado          │
//	│  ─────────────────────────────────────────────────────────  │
//	│  TABLA DOCUMENTOS: tipo | vence | estado                    │
//	│  FOOTER: QR al panel                                        │
//	└─────────────────────────────────────────────────────────────┘
package pdf

import (
	"context"
	"fmt"

	maroto "github.com/johnfercher/maroto/v2"
	"github.com/johnfercher/maroto/v2/pkg/components/code"
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

	"github.com/braian-rent/braian-api/internal/application/ports"
	"github.com/braian-rent/braian-api/internal/domain/entity"
	"github.com/braian-rent/braian-api/internal/domain/rental"
)

// ── Paleta de colores ─────────────────────────────────────────────────────────

var (
	colorPrimary = &props.Color{Red: 37, Green: 99, Blue: 235}
	colorGray    = &props.Color{Red: 100, Green: 100, Blue: 100}
	colorRed     = &props.Color{Red: 185, Green: 28, Blue: 28}
	colorYellow  = &props.Color{Red: 161, Green: 98, Blue: 7}
	colorGreen   = &props.Color{Red: 21, Green: 128, Blue: 61}
)

var _ ports.StatementRenderer = (*StatementGenerator)(nil)

// StatementGenerator implementa ports.StatementRenderer usando Maroto v2.
type StatementGenerator struct{}

// NewStatementGenerator construye el generador.
func NewStatementGenerator() *StatementGenerator { return &StatementGenerator{} }

// RenderStatement genera el PDF y devuelve sus bytes.
func (g *StatementGenerator) RenderStatement(_ context.Context, data ports.StatementData) ([]byte, error) {
	if data.Property == nil {
		return nil, fmt.Errorf("pdf: propiedad vacía")
	}
	cfg := config.NewBuilder().
		WithPageSize(pagesize.A4).
		WithLeftMargin(12).WithRightMargin(12).
		WithTopMargin(12).WithBottomMargin(12).
		WithDefaultFont(&props.Font{Family: "helvetica", Size: 9}).
		WithTitle("Braian.rent - zestawienie nieruchomości", true).
		WithAuthor(data.OwnerName, true).
		Build()

	m := maroto.New(cfg)

	m.AddRows(headerRow(data))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.5}))
	m.AddRows(propertyRow(data.Property))
	m.AddRows(tenantRow(data.Property.Tenant))
	m.AddRows(leaseRows(data)...)
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.3}))
	m.AddRows(paymentRows(data)...)
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.3}))
	m.AddRows(documentsHeaderRow())
	m.AddRows(documentRows(data)...)

	if data.DashboardURL != "" {
		m.AddRows(line.NewRow(4))
		m.AddRows(footerRow(data.DashboardURL))
	}

	doc, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("pdf: generar documento: %w", err)
	}
	return doc.GetBytes(), nil
}

// ── Secciones ─────────────────────────────────────────────────────────────────

func headerRow(data ports.StatementData) core.Row {
	return row.New(16).Add(
		col.New(7).Add(
			text.New("Braian.rent", props.Text{
				Style: fontstyle.Bold, Size: 14, Color: colorPrimary, Top: 1,
			}),
			text.New("Właściciel: "+nonEmpty(data.OwnerName, "-"), props.Text{
				Size: 9, Top: 9, Color: colorGray,
			}),
		),
		col.New(5).Add(
			text.New("ZESTAWIENIE NIERUCHOMOŚCI", props.Text{
				Style: fontstyle.Bold, Size: 8, Align: align.Right, Color: colorPrimary, Top: 1,
			}),
			text.New("Data: "+rental.FormatDate(data.GeneratedAt, data.Location), props.Text{
				Size: 8, Align: align.Right, Top: 8, Color: colorGray,
			}),
		),
	)
}

func propertyRow(p *entity.PropertyDetails) core.Row {
	return row.New(14).Add(
		col.New(12).Add(
			text.New("NIERUCHOMOŚĆ", props.Text{
				Style: fontstyle.Bold, Size: 8, Color: colorPrimary, Top: 1,
			}),
			text.New(fmt.Sprintf("%s, %s %s", p.Address, p.PostalCode, p.City), props.Text{
				Style: fontstyle.Bold, Size: 10, Top: 7,
			}),
		),
	)
}

func tenantRow(t *entity.TenantContact) core.Row {
	if t == nil {
		return row.New(12).Add(col.New(12).Add(
			text.New("NAJEMCA", props.Text{Style: fontstyle.Bold, Size: 8, Color: colorPrimary, Top: 1}),
			text.New("Brak aktywnej umowy najmu", props.Text{Size: 9, Top: 6, Color: colorGray}),
		))
	}
	return row.New(14).Add(
		col.New(2).Add(text.New(rental.Initials(t.Name), props.Text{
			Style: fontstyle.Bold, Size: 16, Align: align.Center, Color: colorPrimary, Top: 4,
		})),
		col.New(10).Add(
			text.New("NAJEMCA", props.Text{Style: fontstyle.Bold, Size: 8, Color: colorPrimary, Top: 1}),
			text.New(t.Name, props.Text{Style: fontstyle.Bold, Size: 10, Top: 5}),
			text.New(fmt.Sprintf("Tel: %s   |   Email: %s", nonEmpty(t.Phone, "-"), nonEmpty(t.Email, "-")),
				props.Text{Size: 8, Top: 10, Color: colorGray}),
		),
	)
}

func leaseRows(data ports.StatementData) []core.Row {
	title := row.New(6).Add(col.New(12).Add(
		text.New("HISTORIA UMÓW", props.Text{Style: fontstyle.Bold, Size: 8, Color: colorPrimary, Top: 1}),
	))
	if len(data.Leases) == 0 {
		return []core.Row{title, row.New(7).Add(col.New(12).Add(
			text.New("Brak umów najmu", props.Text{Size: 8, Top: 1, Color: colorGray}),
		))}
	}
	result := []core.Row{title}
	for _, l := range data.Leases {
		label, c := "Zakończona", colorGray
		switch {
		case l.IsActiveAt(data.GeneratedAt):
			label, c = "Aktywna", colorGreen
		case l.StartDate.After(data.GeneratedAt):
			label, c = "Przyszła", colorYellow
		}
		period := rental.FormatDate(l.StartDate, data.Location) + " - " + rental.FormatDate(l.EndDate, data.Location)
		result = append(result, row.New(6).Add(
			col.New(6).Add(text.New(period, props.Text{Size: 8, Top: 1, Left: 1})),
			col.New(3).Add(text.New(rental.FormatAmount(l.RentAmount)+" zł", props.Text{Size: 8, Align: align.Center, Top: 1})),
			col.New(3).Add(text.New(label, props.Text{Size: 8, Align: align.Right, Top: 1, Right: 1, Color: c})),
		))
	}
	return result
}

func paymentRows(data ports.StatementData) []core.Row {
	p := data.Property.CurrentPayment
	title := row.New(6).Add(col.New(12).Add(
		text.New("BIEŻĄCE PŁATNOŚCI", props.Text{Style: fontstyle.Bold, Size: 8, Color: colorPrimary, Top: 1}),
	))
	if p == nil {
		return []core.Row{title, row.New(8).Add(col.New(12).Add(
			text.New("Brak płatności w tym miesiącu", props.Text{Size: 9, Top: 1, Color: colorGray}),
		))}
	}
	badge := rental.PaymentStatusBadge(p.Status)
	paid := "-"
	if p.AmountPaid != nil {
		paid = rental.FormatAmount(*p.AmountPaid) + " zł"
	}
	cell := func(label, value string, c *props.Color) core.Col {
		return col.New(3).Add(
			text.New(label, props.Text{Size: 7, Top: 1, Color: colorGray}),
			text.New(value, props.Text{Style: fontstyle.Bold, Size: 10, Top: 5, Color: c}),
		)
	}
	return []core.Row{title, row.New(12).Add(
		cell("Termin płatności", rental.FormatDate(p.DueDate, data.Location), nil),
		cell("Kwota", rental.FormatAmount(p.AmountDue)+" zł", nil),
		cell("Opłacono", paid, nil),
		cell("Status", badge.Label, statusColor(badge.Color)),
	)}
}

func documentsHeaderRow() core.Row {
	h := func(label string, size int, a align.Type) core.Col {
		return col.New(size).Add(text.New(label, props.Text{
			Style: fontstyle.Bold, Size: 8, Align: a, Color: colorPrimary, Top: 2, Left: 1, Right: 1,
		}))
	}
	return row.New(8).Add(
		h("Dokument", 6, align.Left),
		h("Ważny do", 3, align.Center),
		h("Status", 3, align.Right),
	)
}

func documentRows(data ports.StatementData) []core.Row {
	docs := data.Property.Documents
	if len(docs) == 0 {
		return []core.Row{row.New(7).Add(col.New(12).Add(
			text.New("Brak dokumentów", props.Text{Size: 8, Top: 1, Left: 1, Color: colorGray}),
		))}
	}
	result := make([]core.Row, 0, len(docs))
	for _, d := range docs {
		status := rental.EvaluateDocument(d, data.GeneratedAt)
		expires := "-"
		if d.ExpiresAt != nil {
			expires = rental.FormatDate(*d.ExpiresAt, data.Location)
		}
		result = append(result, row.New(7).Add(
			col.New(6).Add(text.New(rental.DocumentLabel(d.Type), props.Text{Size: 8, Top: 1, Left: 1})),
			col.New(3).Add(text.New(expires, props.Text{Size: 8, Align: align.Center, Top: 1})),
			col.New(3).Add(text.New(status.Label(), props.Text{
				Size: 8, Align: align.Right, Top: 1, Right: 1, Color: statusColor(status.Color()),
			})),
		))
	}
	return result
}

func footerRow(url string) core.Row {
	return row.New(36).Add(
		col.New(3).Add(code.NewQr(url, props.Rect{Percent: 95, Center: true})),
		col.New(9).Add(
			text.New("Zeskanuj kod, aby otworzyć panel nieruchomości.", props.Text{
				Size: 8, Top: 4, Left: 3, Color: colorGray,
			}),
			text.New(url, props.Text{Size: 7, Top: 10, Left: 3, Color: colorPrimary}),
		),
	)
}

// ── helpers ───────────────────────────────────────────────────────────────────

func statusColor(c string) *props.Color {
	switch c {
	case "red":
		return colorRed
	case "yellow":
		return colorYellow
	case "green":
		return colorGreen
	}
	return nil
}

func nonEmpty(s, fallback string) string {
	if s != "" {
		return s
	}
	return fallback
}
