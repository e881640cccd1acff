package repository

import (
	"context"
	"time"

	"github.com/jhoicas/Almacen-api/internal/domain/entity"
)

// MovementFilter criterios para consultar el libro. From/To nil = sin límite.
type MovementFilter struct {
	ProductIDs []string // vacío = todos
	Type       string   // vacío = ambos
	From       *time.Time
	To         *time.Time
}

// StockMovementRepository puerto del libro de existencias (solo inserción y lectura).
type StockMovementRepository interface {
	// Create inserta el movimiento; asigna ID, Seq y CreatedAt (hora del servidor).
	Create(ctx context.Context, movement *entity.StockMovement) error
	GetByID(ctx context.Context, id string) (*entity.StockMovement, error)
	// List devuelve los movimientos ordenados por (created_at, seq) ascendente.
	List(ctx context.Context, filter MovementFilter) ([]*entity.StockMovement, error)
	// LastByProduct devuelve el último movimiento del producto o nil.
	LastByProduct(ctx context.Context, productID string) (*entity.StockMovement, error)
}
