package dto

import "github.com/shopspring/decimal"

// ValueSlice segmento de un gráfico de valores monetarios por categoría.
type ValueSlice struct {
	Name  string          `json:"name"`
	Value decimal.Decimal `json:"value"`
	Color string          `json:"color"`
}

// CountSlice segmento de un gráfico de conteos (productos por categoría,
// distribución de estado de stock).
type CountSlice struct {
	Name  string `json:"name"`
	Value int    `json:"value"`
	Color string `json:"color"`
}

// DashboardStats resumen del dashboard. Los tres campos se derivan de las
// mismas reglas del motor de inventario que usan los reportes.
type DashboardStats struct {
	TotalProducts  int             `json:"totalProducts"`
	InventoryValue decimal.Decimal `json:"inventoryValue"`
	LowStockItems  int             `json:"lowStockItems"`
}
