package rest

import (
	"bytes"
	"context"
	"fmt"
	"mime/multipart"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/stockpro-cli/internal/domain/entity"
	"github.com/jhoicas/stockpro-cli/internal/domain/repository"
)

// ProductRepository implementa repository.ProductRepository contra /products.
type ProductRepository struct {
	client *Client
}

// NewProductRepository construye el gateway de productos.
func NewProductRepository(client *Client) *ProductRepository {
	return &ProductRepository{client: client}
}

// productPayload forma cruda del backend. El decoder de encoding/json empareja
// claves sin distinguir mayúsculas, así que los alias PascalCase del backend
// .NET (Name, Price, CurrentStock, ...) caen en los mismos campos; solo las
// variantes con nombre realmente distinto (image / imagePath) necesitan campo
// propio.
type productPayload struct {
	ID                string          `json:"id"`
	Name              string          `json:"name"`
	SKU               string          `json:"sku"`
	CategoryID        string          `json:"categoryId"`
	Price             decimal.Decimal `json:"price"`
	CurrentStock      int             `json:"currentStock"`
	MinStockThreshold *int            `json:"minStockThreshold"`
	ImageURL          string          `json:"imageUrl"`
	Image             string          `json:"image"`
	ImagePath         string          `json:"imagePath"`
}

// toEntity resuelve el payload a la forma canónica, incluida la imagen.
func (p productPayload) toEntity(origin string) entity.Product {
	return entity.Product{
		ID:                p.ID,
		Name:              p.Name,
		SKU:               p.SKU,
		CategoryID:        p.CategoryID,
		Price:             p.Price,
		CurrentStock:      p.CurrentStock,
		MinStockThreshold: p.MinStockThreshold,
		ImageURL:          resolveImageURL(origin, p.ImageURL, p.Image, p.ImagePath),
	}
}

// resolveImageURL elige la primera variante no vacía y la normaliza: descarta
// el placeholder literal "string" que emite el backend, y antepone el origen
// cuando la ruta es relativa.
func resolveImageURL(origin string, candidates ...string) string {
	for _, c := range candidates {
		if c == "" || c == "string" {
			continue
		}
		if strings.HasPrefix(c, "http://") || strings.HasPrefix(c, "https://") {
			return c
		}
		return origin + "/" + strings.TrimPrefix(c, "/")
	}
	return ""
}

// List consulta GET /products con los filtros opcionales search, categoryId y
// lowStock.
func (r *ProductRepository) List(ctx context.Context, filter repository.ProductFilter) ([]entity.Product, error) {
	query := url.Values{}
	if filter.Search != "" {
		query.Set("search", filter.Search)
	}
	if filter.CategoryID != "" {
		query.Set("categoryId", filter.CategoryID)
	}
	if filter.LowStock != nil {
		query.Set("lowStock", strconv.FormatBool(*filter.LowStock))
	}

	var payload []productPayload
	if err := r.client.getJSON(ctx, "/products", query, &payload); err != nil {
		return nil, err
	}
	products := make([]entity.Product, 0, len(payload))
	for _, p := range payload {
		products = append(products, p.toEntity(r.client.BaseURL()))
	}
	return products, nil
}

// GetByID consulta GET /products/{id}.
func (r *ProductRepository) GetByID(ctx context.Context, id string) (*entity.Product, error) {
	var payload productPayload
	if err := r.client.getJSON(ctx, "/products/"+url.PathEscape(id), nil, &payload); err != nil {
		return nil, err
	}
	p := payload.toEntity(r.client.BaseURL())
	return &p, nil
}

// Create envía POST /products como formulario multipart.
func (r *ProductRepository) Create(ctx context.Context, form repository.ProductForm) (*entity.Product, error) {
	return r.send(ctx, http.MethodPost, "/products", form)
}

// Update envía PUT /products/{id} como formulario multipart; es un reemplazo
// completo del registro, no un patch.
func (r *ProductRepository) Update(ctx context.Context, id string, form repository.ProductForm) (*entity.Product, error) {
	return r.send(ctx, http.MethodPut, "/products/"+url.PathEscape(id), form)
}

// Delete envía DELETE /products/{id}.
func (r *ProductRepository) Delete(ctx context.Context, id string) error {
	return r.client.delete(ctx, "/products/"+url.PathEscape(id))
}

func (r *ProductRepository) send(ctx context.Context, method, path string, form repository.ProductForm) (*entity.Product, error) {
	body, contentType, err := encodeProductForm(form)
	if err != nil {
		return nil, err
	}
	var payload productPayload
	if err := r.client.sendForm(ctx, method, path, contentType, body, &payload); err != nil {
		return nil, err
	}
	p := payload.toEntity(r.client.BaseURL())
	return &p, nil
}

// encodeProductForm arma el multipart con los nombres de campo PascalCase que
// espera el backend. ImageFile tiene prioridad sobre ImageUrl.
func encodeProductForm(form repository.ProductForm) (*bytes.Buffer, string, error) {
	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)

	fields := map[string]string{
		"Name":              form.Name,
		"SKU":               form.SKU,
		"CategoryId":        form.CategoryID,
		"Price":             form.Price.String(),
		"CurrentStock":      strconv.Itoa(form.CurrentStock),
		"MinStockThreshold": strconv.Itoa(form.MinStockThreshold),
	}
	for name, value := range fields {
		if err := w.WriteField(name, value); err != nil {
			return nil, "", fmt.Errorf("campo %s: %w", name, err)
		}
	}

	switch {
	case form.ImageFile != nil:
		part, err := w.CreateFormFile("ImageFile", form.ImageFile.Name)
		if err != nil {
			return nil, "", err
		}
		if _, err := part.Write(form.ImageFile.Content); err != nil {
			return nil, "", err
		}
	case form.ImageURL != "":
		if err := w.WriteField("ImageUrl", form.ImageURL); err != nil {
			return nil, "", err
		}
	}

	if err := w.Close(); err != nil {
		return nil, "", err
	}
	return &buf, w.FormDataContentType(), nil
}
