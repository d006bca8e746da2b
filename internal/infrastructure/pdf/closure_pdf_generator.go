// Package pdf genera el comprobante de cierre de caja con Maroto v2.
//
// Layout de la página A4:
//
//	┌─────────────────────────────────────────────────────────────┐
//	│  HEADER: Empresa + RUT       │  CIERRE DE CAJA + Fecha      │
//	│  SUCURSAL: Nombre / Dirección / Período                      │
//	│  ─────────────────────────────────────────────────────────  │
//	│  TABLA: Medio de pago | N° pagos | Total                     │
//	│  ─────────────────────────────────────────────────────────  │
//	│  TOTALES: Esperado / Contado / Diferencia                    │
//	│  FOOTER: QR con id del cierre + observaciones + firma        │
//	└─────────────────────────────────────────────────────────────┘
package pdf

import (
	"context"
	"fmt"
	"strconv"

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
	"github.com/shopspring/decimal"
	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/jhoicas/dental-clinic-api/internal/application/cashier"
	"github.com/jhoicas/dental-clinic-api/internal/domain/entity"
)

var _ cashier.ClosurePDFGenerator = (*MarotoPDFGenerator)(nil)

// ── Paleta de colores ─────────────────────────────────────────────────────────

var (
	colorPrimary = &props.Color{Red: 0, Green: 96, Blue: 128}
	colorGray    = &props.Color{Red: 100, Green: 100, Blue: 100}
	colorWhite   = &props.Color{Red: 255, Green: 255, Blue: 255}
	colorDanger  = &props.Color{Red: 170, Green: 30, Blue: 30}
)

// printer formatea montos con separador de miles local (es-CL: 1.234.567).
var printer = message.NewPrinter(language.MustParse("es-CL"))

// ── Generator ─────────────────────────────────────────────────────────────────

// MarotoPDFGenerator implementa cashier.ClosurePDFGenerator usando Maroto v2.
type MarotoPDFGenerator struct{}

// NewMarotoPDFGenerator construye el generador.
func NewMarotoPDFGenerator() *MarotoPDFGenerator { return &MarotoPDFGenerator{} }

// GenerateClosurePDF genera el comprobante y devuelve sus bytes. branch puede ser nil.
func (g *MarotoPDFGenerator) GenerateClosurePDF(
	_ context.Context,
	closure *entity.CashRegisterClosure,
	company *entity.Company,
	branch *entity.Branch,
) ([]byte, error) {
	cfg := config.NewBuilder().
		WithPageSize(pagesize.A4).
		WithLeftMargin(10).WithRightMargin(10).
		WithTopMargin(10).WithBottomMargin(10).
		WithDefaultFont(&props.Font{Family: "helvetica", Size: 9}).
		WithTitle("Cierre de caja", true).
		WithAuthor(company.Name(), true).
		Build()

	m := maroto.New(cfg)

	m.AddRows(headerRow(closure, company))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.5}))
	m.AddRows(branchRow(closure, branch))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.3}))

	m.AddRows(tableHeaderRow())
	m.AddRows(tableLineRows(closure.Lines)...)

	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.3}))
	m.AddRows(totalsRow(closure))

	m.AddRows(line.NewRow(3))
	m.AddRows(footerRows(closure)...)

	doc, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("pdf: generar documento: %w", err)
	}
	return doc.GetBytes(), nil
}

// ── Secciones ─────────────────────────────────────────────────────────────────

// headerRow: empresa + RUT (izq) y título + fecha de cierre (der).
func headerRow(c *entity.CashRegisterClosure, company *entity.Company) core.Row {
	return row.New(18).Add(
		col.New(7).Add(
			text.New(company.Name(), props.Text{
				Style: fontstyle.Bold, Size: 13, Color: colorPrimary, Top: 1,
			}),
			text.New("RUT: "+company.TaxID, props.Text{
				Size: 9, Top: 9, Color: colorGray,
			}),
		),
		col.New(5).Add(
			text.New("CIERRE DE CAJA", props.Text{
				Style: fontstyle.Bold, Size: 12, Align: align.Right, Color: colorPrimary, Top: 1,
			}),
			text.New("Cerrado: "+c.ClosedAt.Format("02/01/2006 15:04"), props.Text{
				Size: 8, Align: align.Right, Top: 9, Color: colorGray,
			}),
		),
	)
}

// branchRow: sucursal y período del cierre.
func branchRow(c *entity.CashRegisterClosure, b *entity.Branch) core.Row {
	name, address := "Todas las sucursales", ""
	if b != nil {
		name, address = b.Name, b.Address
	}
	return row.New(14).Add(
		col.New(12).Add(
			text.New("SUCURSAL", props.Text{
				Style: fontstyle.Bold, Size: 8, Color: colorPrimary, Top: 1,
			}),
			text.New(fmt.Sprintf("%s   |   %s", name, nonEmpty(address, "—")), props.Text{
				Size: 9, Top: 6,
			}),
			text.New(fmt.Sprintf("Período: %s — %s",
				c.PeriodFrom.Format("02/01/2006 15:04"),
				c.PeriodTo.Format("02/01/2006 15:04"),
			), props.Text{Size: 8, Top: 11, Color: colorGray}),
		),
	)
}

// tableHeaderRow: cabecera de la tabla por medio de pago.
func tableHeaderRow() core.Row {
	h := func(label string, size int, a align.Type) core.Col {
		return col.New(size).Add(text.New(label, props.Text{
			Style: fontstyle.Bold, Size: 8, Align: a,
			Color: colorWhite, Top: 2, Left: 1, Right: 1,
		}))
	}
	return row.New(8).Add(
		h("Medio de pago", 6, align.Left),
		h("N° pagos", 2, align.Center),
		h("Total", 4, align.Right),
	).WithStyle(&props.Cell{BackgroundColor: colorPrimary})
}

// tableLineRows: una fila por medio de pago.
func tableLineRows(lines []entity.CashRegisterClosureLine) []core.Row {
	if len(lines) == 0 {
		return []core.Row{row.New(8).Add(col.New(12).Add(
			text.New("Sin pagos en el período", props.Text{Size: 8, Align: align.Center, Top: 2, Color: colorGray}),
		))}
	}
	result := make([]core.Row, 0, len(lines))
	for _, l := range lines {
		result = append(result, row.New(7).Add(
			col.New(6).Add(text.New(l.PaymentMethodName, props.Text{Size: 8, Top: 1, Left: 1})),
			col.New(2).Add(text.New(strconv.Itoa(l.PaymentsCount), props.Text{Size: 8, Align: align.Center, Top: 1})),
			col.New(4).Add(text.New(formatMoney(l.Total), props.Text{Size: 8, Align: align.Right, Top: 1, Right: 1})),
		))
	}
	return result
}

// totalsRow: esperado, contado y diferencia (en rojo si hay faltante).
func totalsRow(c *entity.CashRegisterClosure) core.Row {
	label := func(s string) core.Component {
		return text.New(s, props.Text{Style: fontstyle.Bold, Size: 9, Align: align.Right, Right: 2})
	}
	value := func(s string, color *props.Color) core.Component {
		return text.New(s, props.Text{Size: 9, Align: align.Right, Right: 1, Color: color})
	}
	diffColor := colorPrimary
	if c.Difference.IsNegative() {
		diffColor = colorDanger
	}
	return row.New(20).Add(
		col.New(6),
		col.New(3).Add(
			label("Total esperado:"),
			label("Total contado:"),
			label("Diferencia:"),
		),
		col.New(3).Add(
			value(formatMoney(c.ExpectedTotal), nil),
			value(formatMoney(c.CountedTotal), nil),
			value(formatMoney(c.Difference), diffColor),
		),
	)
}

// footerRows: QR con el id del cierre, observaciones y línea de firma.
func footerRows(c *entity.CashRegisterClosure) []core.Row {
	rows := []core.Row{
		row.New(35).Add(
			col.New(3).Add(code.NewQr("cierre:"+c.ID, props.Rect{Percent: 95, Center: true})),
			col.New(9).Add(
				text.New(fmt.Sprintf("Pagos incluidos: %d", c.PaymentsCount), props.Text{
					Style: fontstyle.Bold, Size: 9, Top: 2, Left: 3,
				}),
				text.New("Observaciones: "+nonEmpty(c.Notes, "—"), props.Text{
					Size: 8, Top: 9, Left: 3, Color: colorGray,
				}),
				text.New("Id: "+c.ID, props.Text{Size: 6.5, Top: 28, Left: 3, Color: colorGray}),
			),
		),
	}
	rows = append(rows,
		row.New(15),
		row.New(6).Add(
			col.New(4),
			col.New(4).Add(line.New(props.Line{Color: colorGray, Thickness: 0.3})),
			col.New(4),
		),
		row.New(6).Add(col.New(12).Add(
			text.New("Firma responsable", props.Text{Size: 8, Align: align.Center, Color: colorGray}),
		)),
	)
	return rows
}

// ── helpers ───────────────────────────────────────────────────────────────────

func nonEmpty(s, fallback string) string {
	if s != "" {
		return s
	}
	return fallback
}

// formatMoney redondea a pesos y agrega separador de miles. Ej: 25000 → "$25.000".
func formatMoney(d decimal.Decimal) string {
	n := d.Round(0).IntPart()
	if n < 0 {
		return printer.Sprintf("-$%d", -n)
	}
	return printer.Sprintf("$%d", n)
}
