package entity

import "time"

// MovementType tipo de movimiento de stock. El backend lo serializa como
// entero: 0 = entrada, 1 = salida. Es una enumeración cerrada de dos valores.
type MovementType int

const (
	MovementEntry MovementType = 0 // entrada
	MovementExit  MovementType = 1 // salida
)

// IsValid reporta si el valor pertenece a la enumeración.
func (t MovementType) IsValid() bool {
	return t == MovementEntry || t == MovementExit
}

// Label etiqueta de presentación del tipo de movimiento.
func (t MovementType) Label() string {
	if t == MovementEntry {
		return "Entrada"
	}
	return "Salida"
}

// StockMovement es una entrada del libro de movimientos: inmutable, solo se
// crea, nunca se edita ni elimina. El backend es la única autoridad de
// secuenciación y de los snapshots StockBefore/StockAfter.
type StockMovement struct {
	ID          string
	ProductID   string
	ProductName string // denormalizado para presentación
	UserID      string
	UserName    string // denormalizado para presentación
	Type        MovementType
	Quantity    int
	Reason      string
	StockBefore int
	StockAfter  int
	Date        time.Time
}
