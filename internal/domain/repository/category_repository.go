package repository

import (
	"context"

	"github.com/jhoicas/stockpro-cli/internal/domain/entity"
)

// CategoryForm datos para crear o reemplazar una categoría.
type CategoryForm struct {
	Name     string
	ColorHex string
}

// CategoryRepository puerto de acceso al recurso /categories del backend.
type CategoryRepository interface {
	List(ctx context.Context) ([]entity.Category, error)
	Create(ctx context.Context, form CategoryForm) (*entity.Category, error)
	Update(ctx context.Context, id string, form CategoryForm) (*entity.Category, error)
	Delete(ctx context.Context, id string) error
}
