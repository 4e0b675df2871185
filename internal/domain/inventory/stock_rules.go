// Package inventory contiene las reglas de consistencia de stock (servicio de
// dominio): clasificación de stock bajo, valoración del inventario y la
// invariante del libro de movimientos. Toda insignia, alerta o reporte que
// necesite saber si un producto está en stock bajo debe pasar por IsLowStock;
// no se re-deriva la regla en ningún otro punto.
package inventory

import (
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/stockpro-cli/internal/domain"
	"github.com/jhoicas/stockpro-cli/internal/domain/entity"
)

// DefaultMinStockThreshold umbral aplicado cuando el backend omite el campo.
const DefaultMinStockThreshold = 5

// EffectiveThreshold devuelve el umbral mínimo a usar para el producto:
// el del registro, o DefaultMinStockThreshold si viene ausente.
func EffectiveThreshold(p entity.Product) int {
	if p.MinStockThreshold == nil {
		return DefaultMinStockThreshold
	}
	return *p.MinStockThreshold
}

// IsLowStock reporta si el producto está en stock bajo:
// CurrentStock <= umbral efectivo. Única fuente de verdad de la regla.
func IsLowStock(p entity.Product) bool {
	return p.CurrentStock <= EffectiveThreshold(p)
}

// LowStockCount cuenta los productos en stock bajo. Dashboard, badge lateral y
// reportes usan este mismo conteo para que los tres siempre coincidan.
func LowStockCount(products []entity.Product) int {
	n := 0
	for _, p := range products {
		if IsLowStock(p) {
			n++
		}
	}
	return n
}

// InventoryValue suma price * currentStock sobre todos los productos.
// Campos numéricos ausentes valen cero (son agregados de presentación,
// no registros contables).
func InventoryValue(products []entity.Product) decimal.Decimal {
	total := decimal.Zero
	for _, p := range products {
		total = total.Add(p.Price.Mul(decimal.NewFromInt(int64(p.CurrentStock))))
	}
	return total
}

// VerifyMovement valida la invariante del libro sobre un movimiento ya creado:
// cantidad >= 1 y StockAfter - StockBefore == Quantity para entradas,
// StockBefore - StockAfter == Quantity para salidas. El backend es quien
// garantiza esto al crear; la verificación local es solo de diagnóstico.
func VerifyMovement(m entity.StockMovement) error {
	if m.Quantity < 1 {
		return fmt.Errorf("%w: la cantidad debe ser al menos 1", domain.ErrInvalidInput)
	}
	switch m.Type {
	case entity.MovementEntry:
		if m.StockAfter-m.StockBefore != m.Quantity {
			return fmt.Errorf("%w: entrada inconsistente (antes=%d, después=%d, cantidad=%d)",
				domain.ErrConflict, m.StockBefore, m.StockAfter, m.Quantity)
		}
	case entity.MovementExit:
		if m.StockBefore-m.StockAfter != m.Quantity {
			return fmt.Errorf("%w: salida inconsistente (antes=%d, después=%d, cantidad=%d)",
				domain.ErrConflict, m.StockBefore, m.StockAfter, m.Quantity)
		}
	default:
		return fmt.Errorf("%w: tipo de movimiento desconocido (%d)", domain.ErrInvalidInput, m.Type)
	}
	return nil
}
