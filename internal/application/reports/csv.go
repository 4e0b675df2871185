package reports

import (
	"strconv"
	"strings"
	"time"

	"github.com/jhoicas/stockpro-cli/internal/domain/entity"
	"github.com/jhoicas/stockpro-cli/internal/domain/inventory"
)

// utf8BOM marca de orden de bytes que antecede al CSV para que las hojas de
// cálculo detecten UTF-8.
const utf8BOM = "\ufeff"

var csvHeaders = []string{"Nombre", "SKU", "Categoría", "Precio", "Stock Actual", "Umbral Mínimo", "Estado"}

// quoteField entrecomilla un campo textual doblando las comillas internas,
// según el quoting CSV estándar; las comas dentro del campo quedan literales.
func quoteField(s string) string {
	return `"` + strings.ReplaceAll(s, `"`, `""`) + `"`
}

// ExportCSV produce el payload CSV del inventario: una fila por producto, con
// los campos textuales entrecomillados y los numéricos sin comillas, filas
// unidas con \n y el conjunto precedido por el BOM UTF-8. El precio se formatea
// a 2 decimales y el estado sale del mismo predicado de stock bajo que el
// resto del sistema.
func ExportCSV(products []entity.Product, categories []entity.Category) []byte {
	var b strings.Builder
	b.WriteString(utf8BOM)
	b.WriteString(strings.Join(csvHeaders, ","))

	for _, p := range products {
		status := "Normal"
		if inventory.IsLowStock(p) {
			status = LowStockLabel
		}
		row := []string{
			quoteField(p.Name),
			quoteField(p.SKU),
			quoteField(CategoryName(p.CategoryID, categories)),
			p.Price.StringFixed(2),
			strconv.Itoa(p.CurrentStock),
			strconv.Itoa(inventory.EffectiveThreshold(p)),
			quoteField(status),
		}
		b.WriteString("\n")
		b.WriteString(strings.Join(row, ","))
	}
	return []byte(b.String())
}

// CSVFileName nombre del archivo de exportación: Reporte_Inventario_<fecha ISO>.csv.
func CSVFileName(t time.Time) string {
	return "Reporte_Inventario_" + t.Format("2006-01-02") + ".csv"
}
