package rest

import (
	"context"
	"net/http"
	"time"

	"github.com/jhoicas/stockpro-cli/internal/domain/entity"
	"github.com/jhoicas/stockpro-cli/internal/domain/repository"
)

// StockMovementRepository implementa repository.StockMovementRepository contra
// /stockmovements. El recurso es append-only.
type StockMovementRepository struct {
	client *Client
}

// NewStockMovementRepository construye el gateway de movimientos.
func NewStockMovementRepository(client *Client) *StockMovementRepository {
	return &StockMovementRepository{client: client}
}

type movementPayload struct {
	ID           string `json:"id"`
	ProductID    string `json:"productId"`
	ProductName  string `json:"productName"`
	UserID       string `json:"userId"`
	UserName     string `json:"userName"`
	MovementType int    `json:"movementType"`
	Quantity     int    `json:"quantity"`
	Reason       string `json:"reason"`
	StockBefore  int    `json:"stockBefore"`
	StockAfter   int    `json:"stockAfter"`
	MovementDate string `json:"movementDate"`
}

// formatos de fecha observados en el backend, del más al menos específico
var movementDateLayouts = []string{
	time.RFC3339Nano,
	time.RFC3339,
	"2006-01-02T15:04:05.999999999", // sin zona, emitido por DateTime de .NET
	"2006-01-02T15:04:05",
}

func parseMovementDate(s string) time.Time {
	for _, layout := range movementDateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t
		}
	}
	// Fecha ilegible: el movimiento se conserva con fecha cero en lugar de
	// descartar la fila del historial.
	return time.Time{}
}

func (p movementPayload) toEntity() entity.StockMovement {
	return entity.StockMovement{
		ID:          p.ID,
		ProductID:   p.ProductID,
		ProductName: p.ProductName,
		UserID:      p.UserID,
		UserName:    p.UserName,
		Type:        entity.MovementType(p.MovementType),
		Quantity:    p.Quantity,
		Reason:      p.Reason,
		StockBefore: p.StockBefore,
		StockAfter:  p.StockAfter,
		Date:        parseMovementDate(p.MovementDate),
	}
}

// movementCreateBody cuerpo de POST /stockmovements.
type movementCreateBody struct {
	ProductID       string `json:"productId"`
	Quantity        int    `json:"quantity"`
	MovementType    int    `json:"movementType"`
	Reason          string `json:"reason"`
	Date            string `json:"date"`
	ClientReference string `json:"clientReference,omitempty"`
}

// List consulta GET /stockmovements.
func (r *StockMovementRepository) List(ctx context.Context) ([]entity.StockMovement, error) {
	var payload []movementPayload
	if err := r.client.getJSON(ctx, "/stockmovements", nil, &payload); err != nil {
		return nil, err
	}
	movements := make([]entity.StockMovement, 0, len(payload))
	for _, m := range payload {
		movements = append(movements, m.toEntity())
	}
	return movements, nil
}

// Create envía POST /stockmovements. El backend calcula los snapshots
// StockBefore/StockAfter y devuelve el movimiento completo.
func (r *StockMovementRepository) Create(ctx context.Context, in repository.MovementAppend) (*entity.StockMovement, error) {
	body := movementCreateBody{
		ProductID:       in.ProductID,
		Quantity:        in.Quantity,
		MovementType:    int(in.Type),
		Reason:          in.Reason,
		Date:            in.Date.Format(time.RFC3339),
		ClientReference: in.Reference,
	}
	var payload movementPayload
	if err := r.client.sendJSON(ctx, http.MethodPost, "/stockmovements", body, &payload); err != nil {
		return nil, err
	}
	m := payload.toEntity()
	return &m, nil
}
