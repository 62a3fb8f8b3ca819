// Package pdf genera el reporte de productos con stock bajo.
//
// Layout de la página A4:
//
//	┌─────────────────────────────────────────────────────────────┐
//	│  HEADER: Título + tenant      │  Fecha + generado por        │
//	│  ─────────────────────────────────────────────────────────  │
//	│  RESUMEN: umbral / productos en alerta / valor inventario    │
//	│  ─────────────────────────────────────────────────────────  │
//	│  TABLA: SKU | Producto | Cantidad | Mínimo | Reorden         │
//	│  ─────────────────────────────────────────────────────────  │
//	│  FOOTER: leyenda                                             │
//	└─────────────────────────────────────────────────────────────┘
package pdf

import (
	"context"
	"fmt"

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
	"github.com/shopspring/decimal"
	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/jhoicas/invorya-dashboard/internal/application/dto"
)

// ── Paleta de colores ─────────────────────────────────────────────────────────

var (
	colorPrimary = &props.Color{Red: 0, Green: 70, Blue: 127}
	colorGray    = &props.Color{Red: 100, Green: 100, Blue: 100}
	colorAlert   = &props.Color{Red: 180, Green: 40, Blue: 30}
)

// ── Generator ─────────────────────────────────────────────────────────────────

// LowStockGenerator implementa dashboard.PDFGenerator usando Maroto v2.
type LowStockGenerator struct {
	printer *message.Printer
}

// NewLowStockGenerator tag define el formato de números (ej. language.Spanish).
func NewLowStockGenerator(tag language.Tag) *LowStockGenerator {
	return &LowStockGenerator{printer: message.NewPrinter(tag)}
}

// GenerateLowStockPDF genera el PDF y devuelve sus bytes.
func (g *LowStockGenerator) GenerateLowStockPDF(_ context.Context, report *dto.LowStockReport) ([]byte, error) {
	if report == nil {
		return nil, fmt.Errorf("pdf: reporte nil")
	}

	cfg := config.NewBuilder().
		WithPageSize(pagesize.A4).
		WithLeftMargin(10).WithRightMargin(10).
		WithTopMargin(10).WithBottomMargin(10).
		WithDefaultFont(&props.Font{Family: "helvetica", Size: 9}).
		WithTitle("Reporte de stock bajo", true).
		WithAuthor(nonEmpty(report.GeneratedBy, "Invorya"), true).
		Build()

	m := maroto.New(cfg)

	m.AddRows(g.headerRow(report))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.5}))
	m.AddRows(g.summaryRow(report))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.3}))

	m.AddRows(tableHeaderRow())
	if len(report.Items) == 0 {
		m.AddRows(row.New(10).Add(col.New(12).Add(
			text.New("No hay productos por debajo del umbral.", props.Text{
				Size: 9, Align: align.Center, Color: colorGray, Top: 3,
			}),
		)))
	}
	for _, r := range g.tableRows(report.Items) {
		m.AddRows(r)
	}

	m.AddRows(line.NewRow(3))
	m.AddRows(line.NewRow(1, props.Line{Color: colorGray, Thickness: 0.3}))
	m.AddRows(footerRow())

	doc, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("pdf: generar documento: %w", err)
	}
	return doc.GetBytes(), nil
}

// ── Secciones ─────────────────────────────────────────────────────────────────

func (g *LowStockGenerator) headerRow(r *dto.LowStockReport) core.Row {
	return row.New(18).Add(
		col.New(7).Add(
			text.New("REPORTE DE STOCK BAJO", props.Text{
				Style: fontstyle.Bold, Size: 13, Color: colorPrimary, Top: 1,
			}),
			text.New("Tenant: "+nonEmpty(r.TenantID, "—"), props.Text{
				Size: 9, Top: 9, Color: colorGray,
			}),
		),
		col.New(5).Add(
			text.New("Fecha: "+r.GeneratedAt.Format("02/01/2006 15:04"), props.Text{
				Size: 8, Align: align.Right, Top: 2, Color: colorGray,
			}),
			text.New("Generado por: "+nonEmpty(r.GeneratedBy, "—"), props.Text{
				Size: 8, Align: align.Right, Top: 8, Color: colorGray,
			}),
		),
	)
}

func (g *LowStockGenerator) summaryRow(r *dto.LowStockReport) core.Row {
	threshold := "por defecto del servidor"
	if r.Threshold > 0 {
		threshold = g.printer.Sprintf("%d", r.Threshold)
	}
	value, products := "—", "—"
	if r.Value != nil {
		value = "$" + g.money(r.Value.TotalValue)
		products = g.printer.Sprintf("%d", r.Value.ProductCount)
	}

	cell := func(label, v string, c *props.Color) core.Col {
		return col.New(3).Add(
			text.New(label, props.Text{Style: fontstyle.Bold, Size: 8, Color: colorPrimary, Top: 1}),
			text.New(v, props.Text{Style: fontstyle.Bold, Size: 11, Top: 6, Color: c}),
		)
	}
	return row.New(16).Add(
		cell("UMBRAL", threshold, nil),
		cell("EN ALERTA", g.printer.Sprintf("%d", len(r.Items)), colorAlert),
		cell("PRODUCTOS", products, nil),
		cell("VALOR INVENTARIO", value, nil),
	)
}

func tableHeaderRow() core.Row {
	h := func(label string, size int, a align.Type) core.Col {
		return col.New(size).Add(text.New(label, props.Text{
			Style: fontstyle.Bold, Size: 8, Align: a,
			Color: colorPrimary, Top: 2, Left: 1, Right: 1,
		}))
	}
	return row.New(8).Add(
		h("SKU", 2, align.Left),
		h("Producto", 5, align.Left),
		h("Cantidad", 2, align.Right),
		h("Mínimo", 1, align.Right),
		h("Reorden", 2, align.Right),
	)
}

func (g *LowStockGenerator) tableRows(items []dto.LowStockItem) []core.Row {
	result := make([]core.Row, 0, len(items))
	for _, it := range items {
		qtyColor := colorGray
		if it.CurrentQuantity.LessThan(decimal.NewFromInt(int64(it.MinStockLevel))) {
			qtyColor = colorAlert
		}
		result = append(result, row.New(7).Add(
			col.New(2).Add(text.New(it.ProductSKU, props.Text{Size: 8, Top: 1, Left: 1})),
			col.New(5).Add(text.New(it.ProductName, props.Text{Size: 8, Top: 1, Left: 1})),
			col.New(2).Add(text.New(g.quantity(it.CurrentQuantity), props.Text{
				Size: 8, Align: align.Right, Top: 1, Right: 1, Color: qtyColor,
			})),
			col.New(1).Add(text.New(g.printer.Sprintf("%d", it.MinStockLevel), props.Text{
				Size: 8, Align: align.Right, Top: 1, Right: 1,
			})),
			col.New(2).Add(text.New(g.printer.Sprintf("%d", it.ReorderPoint), props.Text{
				Size: 8, Align: align.Right, Top: 1, Right: 1,
			})),
		))
	}
	return result
}

func footerRow() core.Row {
	return row.New(8).Add(col.New(12).Add(
		text.New(
			"Productos cuya cantidad disponible está en o por debajo del umbral indicado. "+
				"Las cantidades corresponden al momento de generación del reporte.",
			props.Text{Size: 6.5, Color: colorGray, Top: 2},
		),
	))
}

// ── helpers ───────────────────────────────────────────────────────────────────

func nonEmpty(s, fallback string) string {
	if s != "" {
		return s
	}
	return fallback
}

// money redondea a pesos enteros con separador de miles del locale.
func (g *LowStockGenerator) money(d decimal.Decimal) string {
	return g.printer.Sprintf("%d", d.Round(0).IntPart())
}

// quantity entero si no tiene fracción, si no dos decimales.
func (g *LowStockGenerator) quantity(d decimal.Decimal) string {
	if d.Equal(d.Truncate(0)) {
		return g.printer.Sprintf("%d", d.IntPart())
	}
	f, _ := d.Round(2).Float64()
	return g.printer.Sprintf("%.2f", f)
}
