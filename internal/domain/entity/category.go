package entity

// Category representa una categoría de productos. Los productos guardan la
// referencia (CategoryID); una categoría puede eliminarse dejando referencias
// colgantes, que los consumidores deben degradar a "desconocida", nunca a error.
type Category struct {
	ID       string
	Name     string
	ColorHex string // color de presentación, ej. "#3b82f6"
}
