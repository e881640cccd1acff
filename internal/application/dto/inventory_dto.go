package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// RegisterMovementRequest body para POST /api/inventory/inputs y /outputs.
type RegisterMovementRequest struct {
	ProductID string          `json:"product_id" validate:"required,uuid"`
	Quantity  decimal.Decimal `json:"quantity"`
}

// MovementResponse salida de un movimiento del libro.
type MovementResponse struct {
	ID             string          `json:"id"`
	ProductID      string          `json:"product_id"`
	Type           string          `json:"type"`
	Quantity       decimal.Decimal `json:"quantity"`
	RunningBalance decimal.Decimal `json:"running_balance"`
	CreatedAt      time.Time       `json:"created_at"`
	CreatedBy      string          `json:"created_by"`
}

// MovementListResponse historial de movimientos.
type MovementListResponse struct {
	Total int                `json:"total"`
	Items []MovementResponse `json:"items"`
}

// LedgerCheckResponse resultado de verificar el libro de un producto.
type LedgerCheckResponse struct {
	ProductID       string          `json:"product_id"`
	Quantity        decimal.Decimal `json:"quantity"`
	LastBalance     decimal.Decimal `json:"last_balance"`
	Movements       int             `json:"movements"`
	Consistent      bool            `json:"consistent"`
	Inconsistencies []string        `json:"inconsistencies,omitempty"`
}
