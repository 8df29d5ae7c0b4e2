// Package pdf genera el comprobante PDF de una venta del vivero.
//
// Layout de la página A4:
//
//	┌─────────────────────────────────────────────────────────────┐
//	│  HEADER: Vivero Da Vinci     │  Venta N° + Fecha            │
//	│  CLIENTE / ATENDIDO POR                                     │
//	│  TABLA: Cant | Producto | P.Unit | Subtotal                 │
//	│  TOTAL                                                      │
//	│  FOOTER: QR con id y total + leyenda                        │
//	└─────────────────────────────────────────────────────────────┘
package pdf

import (
	"fmt"
	"strings"

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

	"github.com/viverodavinci/vivero-api/internal/application/sales"
	"github.com/viverodavinci/vivero-api/internal/domain/entity"
)

var (
	colorPrimary = &props.Color{Red: 34, Green: 102, Blue: 51}
	colorGray    = &props.Color{Red: 100, Green: 100, Blue: 100}
)

var _ sales.ReceiptPDFGenerator = (*ReceiptGenerator)(nil)

// ReceiptGenerator implementa sales.ReceiptPDFGenerator usando Maroto v2.
type ReceiptGenerator struct {
	storeName string
}

// NewReceiptGenerator construye el generador; storeName aparece en la cabecera.
func NewReceiptGenerator(storeName string) *ReceiptGenerator {
	if storeName == "" {
		storeName = "Vivero Da Vinci"
	}
	return &ReceiptGenerator{storeName: storeName}
}

// Generate arma el PDF de la venta y devuelve sus bytes.
func (g *ReceiptGenerator) Generate(sale *entity.Sale) ([]byte, error) {
	cfg := config.NewBuilder().
		WithPageSize(pagesize.A4).
		WithLeftMargin(12).WithRightMargin(12).
		WithTopMargin(10).WithBottomMargin(10).
		WithDefaultFont(&props.Font{Family: "helvetica", Size: 9}).
		WithTitle(fmt.Sprintf("Venta %d", sale.ID), true).
		WithAuthor(g.storeName, true).
		Build()

	m := maroto.New(cfg)
	m.AddRows(g.headerRow(sale))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.5}))
	m.AddRows(partiesRow(sale))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.3}))
	m.AddRows(tableHeaderRow())
	m.AddRows(lineRows(sale.Lines)...)
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.3}))
	m.AddRows(totalRow(sale.Total))
	m.AddRows(line.NewRow(4))
	m.AddRows(footerRow(sale))

	doc, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("pdf: generar documento: %w", err)
	}
	return doc.GetBytes(), nil
}

func (g *ReceiptGenerator) headerRow(sale *entity.Sale) core.Row {
	return row.New(18).Add(
		col.New(7).Add(
			text.New(g.storeName, props.Text{Style: fontstyle.Bold, Size: 14, Color: colorPrimary, Top: 1}),
			text.New("Comprobante de venta", props.Text{Size: 9, Top: 10, Color: colorGray}),
		),
		col.New(5).Add(
			text.New(fmt.Sprintf("Venta N° %d", sale.ID), props.Text{
				Style: fontstyle.Bold, Size: 12, Align: align.Right, Top: 2,
			}),
			text.New("Fecha: "+sale.CreatedAt.Format("02/01/2006 15:04"), props.Text{
				Size: 8, Align: align.Right, Top: 10, Color: colorGray,
			}),
		),
	)
}

func partiesRow(sale *entity.Sale) core.Row {
	block := func(title, name, email string) core.Col {
		return col.New(6).Add(
			text.New(title, props.Text{Style: fontstyle.Bold, Size: 8, Color: colorPrimary, Top: 1}),
			text.New(nonEmpty(name, "-"), props.Text{Style: fontstyle.Bold, Size: 10, Top: 6}),
			text.New(nonEmpty(email, "-"), props.Text{Size: 8, Top: 12, Color: colorGray}),
		)
	}
	return row.New(18).Add(
		block("CLIENTE", sale.ClientName, sale.ClientEmail),
		block("ATENDIDO POR", sale.EmployeeName, sale.EmployeeEmail),
	)
}

func tableHeaderRow() core.Row {
	h := func(label string, size int, a align.Type) core.Col {
		return col.New(size).Add(text.New(label, props.Text{
			Style: fontstyle.Bold, Size: 8, Align: a, Color: colorPrimary, Top: 2, Left: 1, Right: 1,
		}))
	}
	return row.New(8).Add(
		h("Cant.", 1, align.Center),
		h("Producto", 6, align.Left),
		h("Precio Unit.", 2, align.Right),
		h("Subtotal", 3, align.Right),
	)
}

func lineRows(lines []entity.SaleLine) []core.Row {
	out := make([]core.Row, 0, len(lines))
	for _, l := range lines {
		out = append(out, row.New(7).Add(
			col.New(1).Add(text.New(fmt.Sprintf("%d", l.Quantity), props.Text{Size: 8, Align: align.Center, Top: 1})),
			col.New(6).Add(text.New(nonEmpty(l.ProductName, fmt.Sprintf("Producto %d", l.ProductID)),
				props.Text{Size: 8, Top: 1, Left: 1})),
			col.New(2).Add(text.New("$"+formatMoney(l.UnitPrice), props.Text{Size: 8, Align: align.Right, Top: 1, Right: 1})),
			col.New(3).Add(text.New("$"+formatMoney(l.Subtotal()), props.Text{Size: 8, Align: align.Right, Top: 1, Right: 1})),
		))
	}
	return out
}

func totalRow(total decimal.Decimal) core.Row {
	return row.New(10).Add(
		col.New(6),
		col.New(3).Add(text.New("TOTAL:", props.Text{
			Style: fontstyle.Bold, Size: 11, Align: align.Right, Color: colorPrimary, Top: 2, Right: 2,
		})),
		col.New(3).Add(text.New("$"+formatMoney(total), props.Text{
			Style: fontstyle.Bold, Size: 11, Align: align.Right, Color: colorPrimary, Top: 2, Right: 1,
		})),
	)
}

func footerRow(sale *entity.Sale) core.Row {
	qr := fmt.Sprintf("VENTA:%d;TOTAL:%s;FECHA:%s", sale.ID, sale.Total.StringFixed(2), sale.CreatedAt.UTC().Format("2006-01-02T15:04:05Z"))
	return row.New(36).Add(
		col.New(3).Add(code.NewQr(qr, props.Rect{Percent: 95, Center: true})),
		col.New(9).Add(
			text.New("Gracias por su compra.", props.Text{Style: fontstyle.Bold, Size: 10, Top: 6, Left: 3, Color: colorPrimary}),
			text.New("Este comprobante no reemplaza la factura electrónica.", props.Text{Size: 7, Top: 14, Left: 3, Color: colorGray}),
		),
	)
}

func nonEmpty(s, fallback string) string {
	if s != "" {
		return s
	}
	return fallback
}

// formatMoney formatea con puntos de miles y coma decimal: 1234.5 -> "1.234,50".
func formatMoney(d decimal.Decimal) string {
	s := d.StringFixed(2)
	neg := strings.HasPrefix(s, "-")
	s = strings.TrimPrefix(s, "-")
	intPart, frac, _ := strings.Cut(s, ".")

	n := len(intPart)
	buf := make([]byte, 0, n+n/3)
	for i, c := range []byte(intPart) {
		if i > 0 && (n-i)%3 == 0 {
			buf = append(buf, '.')
		}
		buf = append(buf, c)
	}
	out := string(buf) + "," + frac
	if neg {
		return "-" + out
	}
	return out
}
