package inventory_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	appinv "github.com/jhoicas/stockpro-cli/internal/application/inventory"
	"github.com/jhoicas/stockpro-cli/internal/domain"
	"github.com/jhoicas/stockpro-cli/internal/domain/entity"
	"github.com/jhoicas/stockpro-cli/internal/domain/repository"
)

// spyMovements registra cada append para verificar qué llegó (o no) a la red.
type spyMovements struct {
	appends []repository.MovementAppend
	list    []entity.StockMovement
	created *entity.StockMovement
	err     error
}

func (s *spyMovements) List(_ context.Context) ([]entity.StockMovement, error) {
	return s.list, s.err
}

func (s *spyMovements) Create(_ context.Context, in repository.MovementAppend) (*entity.StockMovement, error) {
	s.appends = append(s.appends, in)
	if s.err != nil {
		return nil, s.err
	}
	return s.created, nil
}

func fixedNow() time.Time {
	return time.Date(2025, 11, 20, 15, 4, 5, 0, time.UTC)
}

func TestRegisterMovement_CantidadCeroRechazadaSinLlamadaDeRed(t *testing.T) {
	spy := &spyMovements{}
	uc := appinv.NewMovementUseCase(spy, fixedNow)

	_, err := uc.RegisterMovement(context.Background(), appinv.RegisterMovementInput{
		ProductID: "p-1",
		Quantity:  0,
		Type:      entity.MovementEntry,
		Reason:    "compra",
	})

	assert.ErrorIs(t, err, domain.ErrInvalidInput)
	assert.Empty(t, spy.appends, "con cantidad 0 no debe salir ninguna petición")
}

func TestRegisterMovement_CantidadNegativaRechazada(t *testing.T) {
	spy := &spyMovements{}
	uc := appinv.NewMovementUseCase(spy, fixedNow)

	_, err := uc.RegisterMovement(context.Background(), appinv.RegisterMovementInput{
		ProductID: "p-1",
		Quantity:  -3,
		Type:      entity.MovementExit,
	})

	assert.ErrorIs(t, err, domain.ErrInvalidInput)
	assert.Empty(t, spy.appends)
}

func TestRegisterMovement_TipoDesconocidoRechazado(t *testing.T) {
	spy := &spyMovements{}
	uc := appinv.NewMovementUseCase(spy, fixedNow)

	_, err := uc.RegisterMovement(context.Background(), appinv.RegisterMovementInput{
		ProductID: "p-1",
		Quantity:  2,
		Type:      entity.MovementType(9),
	})

	assert.ErrorIs(t, err, domain.ErrInvalidInput)
	assert.Empty(t, spy.appends)
}

func TestRegisterMovement_ArmaPayloadDeEntrada(t *testing.T) {
	spy := &spyMovements{created: &entity.StockMovement{
		ID: "m-1", ProductID: "p-1", Type: entity.MovementEntry,
		Quantity: 7, StockBefore: 3, StockAfter: 10,
	}}
	uc := appinv.NewMovementUseCase(spy, fixedNow)

	mov, err := uc.RegisterMovement(context.Background(), appinv.RegisterMovementInput{
		ProductID: "p-1",
		Quantity:  7,
		Type:      entity.MovementEntry,
		Reason:    "reposición proveedor",
	})

	require.NoError(t, err)
	require.Len(t, spy.appends, 1)
	got := spy.appends[0]
	assert.Equal(t, "p-1", got.ProductID)
	assert.Equal(t, 7, got.Quantity)
	assert.Equal(t, entity.MovementEntry, got.Type)
	assert.Equal(t, "reposición proveedor", got.Reason)
	assert.Equal(t, fixedNow(), got.Date)
	assert.NotEmpty(t, got.Reference, "cada intento lleva referencia de cliente")
	assert.Equal(t, "m-1", mov.ID)
}

func TestRegisterMovement_SalidaMayorAlStockNoSeBloqueaLocalmente(t *testing.T) {
	// El cliente no conoce el stock real; la salida viaja y es el backend quien
	// decide. Su rechazo se devuelve sin traducir.
	spy := &spyMovements{err: domain.ErrConflict}
	uc := appinv.NewMovementUseCase(spy, fixedNow)

	_, err := uc.RegisterMovement(context.Background(), appinv.RegisterMovementInput{
		ProductID: "p-1",
		Quantity:  999,
		Type:      entity.MovementExit,
		Reason:    "venta",
	})

	require.Len(t, spy.appends, 1, "la petición debe haberse emitido")
	assert.ErrorIs(t, err, domain.ErrConflict)
}

func TestRegisterMovement_FalloRemotoNoDejaEstadoParcial(t *testing.T) {
	spy := &spyMovements{err: domain.ErrRemote}
	uc := appinv.NewMovementUseCase(spy, fixedNow)

	mov, err := uc.RegisterMovement(context.Background(), appinv.RegisterMovementInput{
		ProductID: "p-1",
		Quantity:  1,
		Type:      entity.MovementEntry,
	})

	assert.Nil(t, mov)
	assert.ErrorIs(t, err, domain.ErrRemote)
}

func TestListMovements_OrdenaPorFechaDescendente(t *testing.T) {
	base := fixedNow()
	spy := &spyMovements{list: []entity.StockMovement{
		{ID: "viejo", Date: base.Add(-48 * time.Hour)},
		{ID: "nuevo", Date: base},
		{ID: "medio", Date: base.Add(-24 * time.Hour)},
	}}
	uc := appinv.NewMovementUseCase(spy, fixedNow)

	movements, err := uc.ListMovements(context.Background())

	require.NoError(t, err)
	require.Len(t, movements, 3)
	assert.Equal(t, "nuevo", movements[0].ID)
	assert.Equal(t, "medio", movements[1].ID)
	assert.Equal(t, "viejo", movements[2].ID)
}

func TestRecentActivity_DevuelveLosNPrimeros(t *testing.T) {
	base := fixedNow()
	var list []entity.StockMovement
	for i := 0; i < 8; i++ {
		list = append(list, entity.StockMovement{
			ID:   string(rune('a' + i)),
			Date: base.Add(-time.Duration(i) * time.Hour),
		})
	}
	uc := appinv.NewMovementUseCase(&spyMovements{list: list}, fixedNow)

	recent, err := uc.RecentActivity(context.Background(), 5)

	require.NoError(t, err)
	assert.Len(t, recent, 5)
	assert.Equal(t, "a", recent[0].ID, "el más reciente primero")
}

func TestCountByType(t *testing.T) {
	movements := []entity.StockMovement{
		{Type: entity.MovementEntry},
		{Type: entity.MovementExit},
		{Type: entity.MovementEntry},
	}
	assert.Equal(t, 2, appinv.CountByType(movements, entity.MovementEntry))
	assert.Equal(t, 1, appinv.CountByType(movements, entity.MovementExit))
}
