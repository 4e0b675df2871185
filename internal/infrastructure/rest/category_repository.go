package rest

import (
	"context"
	"net/http"
	"net/url"

	"github.com/jhoicas/stockpro-cli/internal/domain/entity"
	"github.com/jhoicas/stockpro-cli/internal/domain/repository"
)

// CategoryRepository implementa repository.CategoryRepository contra /categories.
type CategoryRepository struct {
	client *Client
}

// NewCategoryRepository construye el gateway de categorías.
func NewCategoryRepository(client *Client) *CategoryRepository {
	return &CategoryRepository{client: client}
}

type categoryPayload struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	ColorHex string `json:"colorHex"`
}

func (p categoryPayload) toEntity() entity.Category {
	return entity.Category{ID: p.ID, Name: p.Name, ColorHex: p.ColorHex}
}

type categoryForm struct {
	Name     string `json:"name"`
	ColorHex string `json:"colorHex"`
}

// List consulta GET /categories.
func (r *CategoryRepository) List(ctx context.Context) ([]entity.Category, error) {
	var payload []categoryPayload
	if err := r.client.getJSON(ctx, "/categories", nil, &payload); err != nil {
		return nil, err
	}
	categories := make([]entity.Category, 0, len(payload))
	for _, c := range payload {
		categories = append(categories, c.toEntity())
	}
	return categories, nil
}

// Create envía POST /categories.
func (r *CategoryRepository) Create(ctx context.Context, form repository.CategoryForm) (*entity.Category, error) {
	var payload categoryPayload
	err := r.client.sendJSON(ctx, http.MethodPost, "/categories",
		categoryForm{Name: form.Name, ColorHex: form.ColorHex}, &payload)
	if err != nil {
		return nil, err
	}
	c := payload.toEntity()
	return &c, nil
}

// Update envía PUT /categories/{id}.
func (r *CategoryRepository) Update(ctx context.Context, id string, form repository.CategoryForm) (*entity.Category, error) {
	var payload categoryPayload
	err := r.client.sendJSON(ctx, http.MethodPut, "/categories/"+url.PathEscape(id),
		categoryForm{Name: form.Name, ColorHex: form.ColorHex}, &payload)
	if err != nil {
		return nil, err
	}
	c := payload.toEntity()
	return &c, nil
}

// Delete envía DELETE /categories/{id}. El backend permite eliminar categorías
// aún referenciadas por productos; esas referencias colgantes las degradan los
// consumidores, no este gateway.
func (r *CategoryRepository) Delete(ctx context.Context, id string) error {
	return r.client.delete(ctx, "/categories/"+url.PathEscape(id))
}
