package repository

import (
	"context"
	"time"

	"github.com/jhoicas/stockpro-cli/internal/domain/entity"
)

// MovementAppend solicitud de anotación en el libro de movimientos. El backend
// calcula StockBefore/StockAfter y muta el stock del producto; el cliente nunca
// lo hace localmente.
type MovementAppend struct {
	ProductID string
	Quantity  int
	Type      entity.MovementType
	Reason    string
	Date      time.Time
	Reference string // identificador generado por el cliente, para trazabilidad
}

// StockMovementRepository puerto de acceso al recurso /stockmovements.
// El libro es append-only: no hay Update ni Delete.
type StockMovementRepository interface {
	List(ctx context.Context) ([]entity.StockMovement, error)
	Create(ctx context.Context, in MovementAppend) (*entity.StockMovement, error)
}
