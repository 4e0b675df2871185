package inventory

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/jhoicas/stockpro-cli/internal/domain"
	"github.com/jhoicas/stockpro-cli/internal/domain/entity"
	"github.com/jhoicas/stockpro-cli/internal/domain/repository"
)

// RegisterMovementInput entrada para anotar un movimiento en el libro.
type RegisterMovementInput struct {
	ProductID string
	Quantity  int
	Type      entity.MovementType
	Reason    string
}

// RegisterMovement valida la entrada y anota el movimiento en el backend.
//
// Reglas:
//   - cantidad >= 1 y tipo conocido, o ErrInvalidInput sin tocar la red;
//   - una salida que exceda el stock actual no se bloquea localmente: el
//     backend es quien la rechaza y su error se devuelve tal cual;
//   - no hay mutación local de stock en ningún caso. Tras un alta exitosa el
//     caller debe invalidar su listado de productos y re-consultar, porque
//     StockAfter lo calcula el servidor.
func (uc *MovementUseCase) RegisterMovement(ctx context.Context, in RegisterMovementInput) (*entity.StockMovement, error) {
	if in.ProductID == "" {
		return nil, fmt.Errorf("%w: falta el producto", domain.ErrInvalidInput)
	}
	if in.Quantity < 1 {
		return nil, fmt.Errorf("%w: la cantidad debe ser al menos 1", domain.ErrInvalidInput)
	}
	if !in.Type.IsValid() {
		return nil, fmt.Errorf("%w: tipo de movimiento desconocido (%d)", domain.ErrInvalidInput, in.Type)
	}

	mov, err := uc.movements.Create(ctx, repository.MovementAppend{
		ProductID: in.ProductID,
		Quantity:  in.Quantity,
		Type:      in.Type,
		Reason:    in.Reason,
		Date:      uc.now().UTC().Truncate(time.Second),
		Reference: uuid.New().String(),
	})
	if err != nil {
		return nil, err
	}
	return mov, nil
}
