// Package pdf genera los documentos imprimibles del cliente con Maroto v2:
// el reporte de inventario (contraparte del CSV exportado) y la etiqueta QR
// por producto que reemplaza la ventana de impresión del navegador.
package pdf

import (
	"fmt"
	"time"

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
	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/number"

	"github.com/jhoicas/stockpro-cli/internal/application/reports"
	"github.com/jhoicas/stockpro-cli/internal/domain/entity"
	"github.com/jhoicas/stockpro-cli/internal/domain/inventory"
)

// ── Paleta de colores ─────────────────────────────────────────────────────────

var (
	colorPrimary = &props.Color{Red: 16, Green: 185, Blue: 129}
	colorGray    = &props.Color{Red: 100, Green: 100, Blue: 100}
	colorAlert   = &props.Color{Red: 245, Green: 158, Blue: 11}
)

// esPrinter formatea números con separadores en español.
var esPrinter = message.NewPrinter(language.Spanish)

// ── Generator ─────────────────────────────────────────────────────────────────

// MarotoReportGenerator genera los PDF del cliente usando Maroto v2.
type MarotoReportGenerator struct{}

// NewMarotoReportGenerator construye el generador.
func NewMarotoReportGenerator() *MarotoReportGenerator { return &MarotoReportGenerator{} }

// InventoryReport genera el reporte de inventario imprimible: mismas columnas
// y misma regla de estado que la exportación CSV.
func (g *MarotoReportGenerator) InventoryReport(
	products []entity.Product,
	categories []entity.Category,
	now time.Time,
) ([]byte, error) {
	cfg := config.NewBuilder().
		WithPageSize(pagesize.A4).
		WithLeftMargin(10).WithRightMargin(10).
		WithTopMargin(10).WithBottomMargin(10).
		WithDefaultFont(&props.Font{Family: "helvetica", Size: 9}).
		WithTitle("Reporte de Inventario", true).
		Build()

	m := maroto.New(cfg)

	m.AddRows(reportHeaderRow(now, len(products)))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.5}))
	m.AddRows(summaryRow(products))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.3}))

	m.AddRows(tableHeaderRow())
	for _, r := range productRows(products, categories) {
		m.AddRows(r)
	}

	doc, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("pdf: generar reporte: %w", err)
	}
	return doc.GetBytes(), nil
}

// ProductLabel genera la etiqueta imprimible con el QR que enlaza al detalle
// del producto.
func (g *MarotoReportGenerator) ProductLabel(product entity.Product, detailURL string) ([]byte, error) {
	cfg := config.NewBuilder().
		WithPageSize(pagesize.A5).
		WithLeftMargin(15).WithRightMargin(15).
		WithTopMargin(20).WithBottomMargin(15).
		WithDefaultFont(&props.Font{Family: "helvetica", Size: 10}).
		WithTitle("Etiqueta QR - "+product.Name, true).
		Build()

	m := maroto.New(cfg)

	m.AddRows(
		row.New(90).Add(
			col.New(12).Add(code.NewQr(detailURL, props.Rect{
				Percent: 90,
				Center:  true,
			})),
		),
		row.New(12).Add(col.New(12).Add(
			text.New(product.Name, props.Text{
				Style: fontstyle.Bold, Size: 16, Align: align.Center, Top: 2,
			}),
		)),
		row.New(7).Add(col.New(12).Add(
			text.New("SKU: "+product.SKU, props.Text{
				Size: 10, Align: align.Center, Color: colorGray,
			}),
		)),
		row.New(7).Add(col.New(12).Add(
			text.New("Escanea para ver detalles en StockPro", props.Text{
				Size: 9, Align: align.Center, Color: colorGray, Top: 2,
			}),
		)),
	)

	doc, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("pdf: generar etiqueta: %w", err)
	}
	return doc.GetBytes(), nil
}

// ── Secciones ─────────────────────────────────────────────────────────────────

func reportHeaderRow(now time.Time, totalProducts int) core.Row {
	return row.New(16).Add(
		col.New(7).Add(
			text.New("Reporte de Inventario", props.Text{
				Style: fontstyle.Bold, Size: 14, Color: colorPrimary, Top: 1,
			}),
			text.New("StockPro", props.Text{Size: 9, Top: 10, Color: colorGray}),
		),
		col.New(5).Add(
			text.New("Fecha: "+now.Format("02/01/2006"), props.Text{
				Size: 9, Align: align.Right, Top: 2, Color: colorGray,
			}),
			text.New(fmt.Sprintf("Productos: %d", totalProducts), props.Text{
				Size: 9, Align: align.Right, Top: 8, Color: colorGray,
			}),
		),
	)
}

// summaryRow valor total y alertas, derivados del motor de inventario.
func summaryRow(products []entity.Product) core.Row {
	totalValue, _ := inventory.InventoryValue(products).Float64()
	lowCount := inventory.LowStockCount(products)

	alertColor := colorGray
	if lowCount > 0 {
		alertColor = colorAlert
	}

	return row.New(10).Add(
		col.New(6).Add(
			text.New("Valor del inventario: $"+formatNumber(totalValue), props.Text{
				Style: fontstyle.Bold, Size: 10, Top: 2,
			}),
		),
		col.New(6).Add(
			text.New(fmt.Sprintf("Productos en stock bajo: %d", lowCount), props.Text{
				Style: fontstyle.Bold, Size: 10, Top: 2, Align: align.Right, Color: alertColor,
			}),
		),
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
		h("Nombre", 3, align.Left),
		h("SKU", 2, align.Left),
		h("Categoría", 2, align.Left),
		h("Precio", 2, align.Right),
		h("Stock", 1, align.Right),
		h("Umbral", 1, align.Right),
		h("Estado", 1, align.Center),
	)
}

func productRows(products []entity.Product, categories []entity.Category) []core.Row {
	result := make([]core.Row, 0, len(products))
	for _, p := range products {
		status := "Normal"
		statusColor := colorGray
		if inventory.IsLowStock(p) {
			status = reports.LowStockLabel
			statusColor = colorAlert
		}
		price, _ := p.Price.Float64()

		result = append(result, row.New(6).Add(
			col.New(3).Add(text.New(p.Name, props.Text{Size: 8, Top: 1, Left: 1})),
			col.New(2).Add(text.New(p.SKU, props.Text{Size: 8, Top: 1, Left: 1})),
			col.New(2).Add(text.New(
				reports.CategoryName(p.CategoryID, categories),
				props.Text{Size: 8, Top: 1, Left: 1},
			)),
			col.New(2).Add(text.New(
				"$"+formatNumber(price),
				props.Text{Size: 8, Align: align.Right, Top: 1, Right: 1},
			)),
			col.New(1).Add(text.New(
				fmt.Sprintf("%d", p.CurrentStock),
				props.Text{Size: 8, Align: align.Right, Top: 1, Right: 1},
			)),
			col.New(1).Add(text.New(
				fmt.Sprintf("%d", inventory.EffectiveThreshold(p)),
				props.Text{Size: 8, Align: align.Right, Top: 1, Right: 1},
			)),
			col.New(1).Add(text.New(status, props.Text{
				Size: 7, Align: align.Center, Top: 1, Color: statusColor,
			})),
		))
	}
	return result
}

// formatNumber formatea con separadores de miles en español y 2 decimales.
func formatNumber(f float64) string {
	return esPrinter.Sprintf("%v", number.Decimal(f, number.MinFractionDigits(2), number.MaxFractionDigits(2)))
}
