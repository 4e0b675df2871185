package entity

import "github.com/shopspring/decimal"

// Product representa un producto del catálogo tal como lo expone el backend.
// MinStockThreshold es puntero porque el backend puede omitir el campo; un
// umbral ausente no es lo mismo que un umbral 0 (ver inventory.EffectiveThreshold).
type Product struct {
	ID                string
	Name              string
	SKU               string // código asignado por el usuario, distinto del ID
	CategoryID        string
	Price             decimal.Decimal
	CurrentStock      int
	MinStockThreshold *int
	ImageURL          string // URL absoluta ya resuelta contra el origen del backend
}
