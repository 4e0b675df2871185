package repository

import (
	"context"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/stockpro-cli/internal/domain/entity"
)

// ProductFilter filtros soportados por el listado de productos del backend.
// Los campos vacíos/nil no se envían.
type ProductFilter struct {
	Search     string
	CategoryID string
	LowStock   *bool
}

// ImageFile archivo de imagen a subir con el producto (multipart ImageFile).
type ImageFile struct {
	Name    string
	Content []byte
}

// ProductForm datos para crear o reemplazar un producto. El backend no tiene
// semántica de patch parcial: Update reemplaza el registro completo.
// ImageFile e ImageURL son excluyentes; si ambos vienen se prefiere el archivo.
type ProductForm struct {
	Name              string
	SKU               string
	CategoryID        string
	Price             decimal.Decimal
	CurrentStock      int
	MinStockThreshold int
	ImageURL          string
	ImageFile         *ImageFile
}

// ProductRepository puerto de acceso al recurso /products del backend.
type ProductRepository interface {
	List(ctx context.Context, filter ProductFilter) ([]entity.Product, error)
	GetByID(ctx context.Context, id string) (*entity.Product, error)
	Create(ctx context.Context, form ProductForm) (*entity.Product, error)
	Update(ctx context.Context, id string, form ProductForm) (*entity.Product, error)
	Delete(ctx context.Context, id string) error
}
