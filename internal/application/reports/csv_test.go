package reports_test

import (
	"encoding/csv"
	"strings"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/stockpro-cli/internal/application/reports"
	"github.com/jhoicas/stockpro-cli/internal/domain/entity"
)

func TestExportCSV_EmpiezaConBOM(t *testing.T) {
	out := reports.ExportCSV(nil, nil)
	assert.True(t, strings.HasPrefix(string(out), "\ufeff"),
		"el payload debe iniciar con el BOM UTF-8 para las hojas de cálculo")
}

func TestExportCSV_Cabeceras(t *testing.T) {
	out := string(reports.ExportCSV(nil, nil))
	assert.Equal(t, "\ufeffNombre,SKU,Categoría,Precio,Stock Actual,Umbral Mínimo,Estado", out,
		"sin productos solo va la fila de cabeceras")
}

func TestExportCSV_FilaCompleta(t *testing.T) {
	categories := []entity.Category{{ID: "c1", Name: "Bebidas"}}
	threshold := 10
	products := []entity.Product{{
		Name:              "Café molido",
		SKU:               "CAF-001",
		CategoryID:        "c1",
		Price:             decimal.NewFromFloat(12.5),
		CurrentStock:      3,
		MinStockThreshold: &threshold,
	}}

	out := string(reports.ExportCSV(products, categories))

	lines := strings.Split(strings.TrimPrefix(out, "\ufeff"), "\n")
	require.Len(t, lines, 2)
	assert.Equal(t, `"Café molido","CAF-001","Bebidas",12.50,3,10,"Stock Bajo"`, lines[1])
}

func TestExportCSV_ComillasDobladas_RoundTrip(t *testing.T) {
	// Un nombre con comillas debe salir con las comillas dobladas y un parser
	// CSV estándar debe devolver el texto original.
	products := []entity.Product{{
		Name:         `He said "hi"`,
		SKU:          "X-1",
		CategoryID:   "desconocida",
		Price:        decimal.NewFromInt(1),
		CurrentStock: 100,
	}}

	out := string(reports.ExportCSV(products, nil))

	assert.Contains(t, out, `"He said ""hi"""`)

	r := csv.NewReader(strings.NewReader(strings.TrimPrefix(out, "\ufeff")))
	records, err := r.ReadAll()
	require.NoError(t, err)
	require.Len(t, records, 2)
	assert.Equal(t, `He said "hi"`, records[1][0])
	assert.Equal(t, "N/A", records[1][2], "categoría irresoluble degrada a N/A")
}

func TestExportCSV_ComasDentroDelCampoQuedanLiterales(t *testing.T) {
	products := []entity.Product{{
		Name:         "Arroz, bulto 25kg",
		SKU:          "ARR-25",
		Price:        decimal.NewFromInt(90),
		CurrentStock: 40,
	}}

	out := string(reports.ExportCSV(products, nil))

	r := csv.NewReader(strings.NewReader(strings.TrimPrefix(out, "\ufeff")))
	records, err := r.ReadAll()
	require.NoError(t, err)
	assert.Equal(t, "Arroz, bulto 25kg", records[1][0])
}

func TestExportCSV_UmbralAusenteExportaElDefault(t *testing.T) {
	products := []entity.Product{{
		Name:         "Sal",
		SKU:          "SAL-1",
		Price:        decimal.NewFromInt(2),
		CurrentStock: 50,
	}}

	out := string(reports.ExportCSV(products, nil))

	lines := strings.Split(out, "\n")
	require.Len(t, lines, 2)
	assert.Contains(t, lines[1], ",5,", "el umbral ausente se exporta como el default 5")
	assert.Contains(t, lines[1], `"Normal"`)
}

func TestCSVFileName(t *testing.T) {
	ts := time.Date(2025, 11, 20, 18, 30, 0, 0, time.UTC)
	assert.Equal(t, "Reporte_Inventario_2025-11-20.csv", reports.CSVFileName(ts))
}
