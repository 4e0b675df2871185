// Package inventory contiene los casos de uso del libro de movimientos:
// anotación de entradas/salidas y consultas de presentación sobre el historial.
package inventory

import (
	"context"
	"sort"
	"time"

	"github.com/jhoicas/stockpro-cli/internal/domain/entity"
	"github.com/jhoicas/stockpro-cli/internal/domain/repository"
)

// MovementUseCase casos de uso sobre /stockmovements.
type MovementUseCase struct {
	movements repository.StockMovementRepository
	now       func() time.Time
}

// NewMovementUseCase construye el caso de uso. now es inyectable para tests;
// nil usa time.Now.
func NewMovementUseCase(movements repository.StockMovementRepository, now func() time.Time) *MovementUseCase {
	if now == nil {
		now = time.Now
	}
	return &MovementUseCase{movements: movements, now: now}
}

// ListMovements devuelve el historial completo ordenado por fecha descendente
// (los más recientes primero), como lo presenta la vista de inventario.
func (uc *MovementUseCase) ListMovements(ctx context.Context) ([]entity.StockMovement, error) {
	movements, err := uc.movements.List(ctx)
	if err != nil {
		return nil, err
	}
	sort.SliceStable(movements, func(i, j int) bool {
		return movements[i].Date.After(movements[j].Date)
	})
	return movements, nil
}

// RecentActivity devuelve los n movimientos más recientes (widget del dashboard).
func (uc *MovementUseCase) RecentActivity(ctx context.Context, n int) ([]entity.StockMovement, error) {
	movements, err := uc.ListMovements(ctx)
	if err != nil {
		return nil, err
	}
	if len(movements) > n {
		movements = movements[:n]
	}
	return movements, nil
}

// CountByType cuenta los movimientos de un tipo dentro de un historial ya
// cargado (tarjetas "Entradas"/"Salidas" de la vista de inventario).
func CountByType(movements []entity.StockMovement, t entity.MovementType) int {
	n := 0
	for _, m := range movements {
		if m.Type == t {
			n++
		}
	}
	return n
}
