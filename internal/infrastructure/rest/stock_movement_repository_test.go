package rest_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/stockpro-cli/internal/domain/entity"
	"github.com/jhoicas/stockpro-cli/internal/domain/inventory"
	"github.com/jhoicas/stockpro-cli/internal/domain/repository"
	"github.com/jhoicas/stockpro-cli/internal/infrastructure/rest"
)

func TestListMovements_DecodificaElHistorial(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/stockmovements", r.URL.Path)
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`[
			{"id":"m1","productId":"p1","productName":"Café","userId":"ana@acme.co","userName":"Ana",
			 "movementType":0,"quantity":5,"reason":"compra","stockBefore":10,"stockAfter":15,
			 "movementDate":"2025-11-20T10:30:00Z"},
			{"id":"m2","productId":"p1","productName":"Café","userId":"ana@acme.co","userName":"Ana",
			 "movementType":1,"quantity":3,"reason":"venta","stockBefore":15,"stockAfter":12,
			 "movementDate":"2025-11-21T08:00:00"}
		]`))
	}))
	defer srv.Close()

	repo := rest.NewStockMovementRepository(newClient(t, srv, "tok"))
	movements, err := repo.List(context.Background())

	require.NoError(t, err)
	require.Len(t, movements, 2)

	assert.Equal(t, entity.MovementEntry, movements[0].Type)
	assert.Equal(t, time.Date(2025, 11, 20, 10, 30, 0, 0, time.UTC), movements[0].Date)
	require.NoError(t, inventory.VerifyMovement(movements[0]), "entrada consistente")

	assert.Equal(t, entity.MovementExit, movements[1].Type)
	assert.False(t, movements[1].Date.IsZero(), "la fecha sin zona horaria de .NET también se parsea")
	require.NoError(t, inventory.VerifyMovement(movements[1]), "salida consistente")
}

func TestListMovements_FechaIlegibleNoDescartaLaFila(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`[{"id":"m1","movementType":0,"quantity":1,"stockBefore":0,"stockAfter":1,"movementDate":"ayer"}]`))
	}))
	defer srv.Close()

	repo := rest.NewStockMovementRepository(newClient(t, srv, "tok"))
	movements, err := repo.List(context.Background())

	require.NoError(t, err)
	require.Len(t, movements, 1)
	assert.True(t, movements[0].Date.IsZero())
}

func TestCreateMovement_CuerpoDeLaPeticion(t *testing.T) {
	var gotBody map[string]any
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		require.NoError(t, json.NewDecoder(r.Body).Decode(&gotBody))
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"id":"m-nuevo","productId":"p1","movementType":1,"quantity":4,
			"stockBefore":10,"stockAfter":6,"movementDate":"2025-11-20T15:04:05Z"}`))
	}))
	defer srv.Close()

	repo := rest.NewStockMovementRepository(newClient(t, srv, "tok"))
	date := time.Date(2025, 11, 20, 15, 4, 5, 0, time.UTC)
	mov, err := repo.Create(context.Background(), repository.MovementAppend{
		ProductID: "p1",
		Quantity:  4,
		Type:      entity.MovementExit,
		Reason:    "venta mostrador",
		Date:      date,
		Reference: "ref-123",
	})

	require.NoError(t, err)
	assert.Equal(t, "p1", gotBody["productId"])
	assert.Equal(t, float64(4), gotBody["quantity"])
	assert.Equal(t, float64(1), gotBody["movementType"], "salida viaja como 1")
	assert.Equal(t, "venta mostrador", gotBody["reason"])
	assert.Equal(t, "2025-11-20T15:04:05Z", gotBody["date"])
	assert.Equal(t, "ref-123", gotBody["clientReference"])

	// El backend devuelve los snapshots; el cliente solo los transporta.
	assert.Equal(t, 10, mov.StockBefore)
	assert.Equal(t, 6, mov.StockAfter)
	require.NoError(t, inventory.VerifyMovement(*mov))
}
