package rest_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/stockpro-cli/internal/domain/repository"
	"github.com/jhoicas/stockpro-cli/internal/infrastructure/rest"
)

func TestCategorias_ListYCreate(t *testing.T) {
	var gotBody map[string]any
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		switch r.Method {
		case http.MethodGet:
			_, _ = w.Write([]byte(`[{"id":"c1","name":"Bebidas","colorHex":"#111111"}]`))
		case http.MethodPost:
			require.NoError(t, json.NewDecoder(r.Body).Decode(&gotBody))
			_, _ = w.Write([]byte(`{"id":"c2","name":"Snacks","colorHex":"#222222"}`))
		}
	}))
	defer srv.Close()

	repo := rest.NewCategoryRepository(newClient(t, srv, "tok"))

	categories, err := repo.List(context.Background())
	require.NoError(t, err)
	require.Len(t, categories, 1)
	assert.Equal(t, "Bebidas", categories[0].Name)
	assert.Equal(t, "#111111", categories[0].ColorHex)

	created, err := repo.Create(context.Background(), repository.CategoryForm{Name: "Snacks", ColorHex: "#222222"})
	require.NoError(t, err)
	assert.Equal(t, "c2", created.ID)
	assert.Equal(t, "Snacks", gotBody["name"])
	assert.Equal(t, "#222222", gotBody["colorHex"])
}

func TestCategorias_UpdateYDelete(t *testing.T) {
	var paths []string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		paths = append(paths, r.Method+" "+r.URL.Path)
		w.Header().Set("Content-Type", "application/json")
		if r.Method == http.MethodPut {
			_, _ = w.Write([]byte(`{"id":"c1","name":"Bebidas frías","colorHex":"#333333"}`))
			return
		}
		w.WriteHeader(http.StatusNoContent)
	}))
	defer srv.Close()

	repo := rest.NewCategoryRepository(newClient(t, srv, "tok"))

	updated, err := repo.Update(context.Background(), "c1", repository.CategoryForm{Name: "Bebidas frías", ColorHex: "#333333"})
	require.NoError(t, err)
	assert.Equal(t, "Bebidas frías", updated.Name)

	require.NoError(t, repo.Delete(context.Background(), "c1"))
	assert.Equal(t, []string{"PUT /categories/c1", "DELETE /categories/c1"}, paths)
}
