// Package reports contiene proyecciones read-only sobre productos, categorías
// y movimientos ya cargados en memoria: datos para gráficos, resumen del
// dashboard y exportación. Ninguna función de este paquete hace red ni muta
// estado; la clasificación de stock delega siempre en domain/inventory.
package reports

import (
	"github.com/shopspring/decimal"

	"github.com/jhoicas/stockpro-cli/internal/application/dto"
	"github.com/jhoicas/stockpro-cli/internal/domain/entity"
	"github.com/jhoicas/stockpro-cli/internal/domain/inventory"
)

// Colores de presentación de los gráficos.
const (
	defaultCategoryColor = "#3b82f6" // categoría sin color asignado
	healthyColor         = "#10b981"
	lowStockColor        = "#f59e0b"
)

// Etiquetas de la distribución de estado de stock.
const (
	HealthyLabel  = "Stock Saludable"
	LowStockLabel = "Stock Bajo"
)

func categoryColor(c entity.Category) string {
	if c.ColorHex == "" {
		return defaultCategoryColor
	}
	return c.ColorHex
}

// ValueByCategory suma price * currentStock por categoría, en el orden de las
// categorías recibidas. Las categorías con valor cero se omiten del resultado
// (no se devuelven con 0) para no producir segmentos vacíos en el gráfico.
func ValueByCategory(products []entity.Product, categories []entity.Category) []dto.ValueSlice {
	var out []dto.ValueSlice
	for _, c := range categories {
		total := decimal.Zero
		for _, p := range products {
			if p.CategoryID == c.ID {
				total = total.Add(p.Price.Mul(decimal.NewFromInt(int64(p.CurrentStock))))
			}
		}
		if total.GreaterThan(decimal.Zero) {
			out = append(out, dto.ValueSlice{Name: c.Name, Value: total, Color: categoryColor(c)})
		}
	}
	return out
}

// CountByCategory cuenta productos por categoría, con la misma regla de
// omisión de ceros que ValueByCategory.
func CountByCategory(products []entity.Product, categories []entity.Category) []dto.CountSlice {
	var out []dto.CountSlice
	for _, c := range categories {
		n := 0
		for _, p := range products {
			if p.CategoryID == c.ID {
				n++
			}
		}
		if n > 0 {
			out = append(out, dto.CountSlice{Name: c.Name, Value: n, Color: categoryColor(c)})
		}
	}
	return out
}

// StockStatusDistribution divide los productos en sanos y en stock bajo usando
// el predicado del motor de inventario. Los cubos con cero se omiten.
func StockStatusDistribution(products []entity.Product) []dto.CountSlice {
	low := inventory.LowStockCount(products)
	healthy := len(products) - low

	var out []dto.CountSlice
	if healthy > 0 {
		out = append(out, dto.CountSlice{Name: HealthyLabel, Value: healthy, Color: healthyColor})
	}
	if low > 0 {
		out = append(out, dto.CountSlice{Name: LowStockLabel, Value: low, Color: lowStockColor})
	}
	return out
}

// DashboardStats resumen del dashboard, derivado de las mismas reglas que el
// resto de reportes para que todos los conteos coincidan siempre.
func DashboardStats(products []entity.Product) dto.DashboardStats {
	return dto.DashboardStats{
		TotalProducts:  len(products),
		InventoryValue: inventory.InventoryValue(products),
		LowStockItems:  inventory.LowStockCount(products),
	}
}

// CategoryName resuelve el nombre de una categoría referenciada por un
// producto. Una referencia colgante (categoría eliminada) degrada a "N/A",
// nunca a error.
func CategoryName(categoryID string, categories []entity.Category) string {
	for _, c := range categories {
		if c.ID == categoryID {
			return c.Name
		}
	}
	return "N/A"
}
