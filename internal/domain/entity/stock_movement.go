package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Tipos de movimiento del libro de existencias.
const (
	MovementTypeIN  = "IN"  // entrada
	MovementTypeOUT = "OUT" // salida
)

// StockMovement registro inmutable del libro de existencias (entrada o salida).
// Quantity siempre es positiva; el sentido lo da Type. RunningBalance es el saldo
// del producto inmediatamente después del movimiento.
type StockMovement struct {
	ID             string
	Seq            int64 // orden de inserción; desempata movimientos con el mismo CreatedAt
	ProductID      string
	Type           string
	Quantity       decimal.Decimal
	RunningBalance decimal.Decimal
	CreatedAt      time.Time
	CreatedBy      string // UserID
}

// IsInput indica si el movimiento es una entrada.
func (m *StockMovement) IsInput() bool { return m.Type == MovementTypeIN }

// BalanceBefore devuelve el saldo previo al movimiento.
func (m *StockMovement) BalanceBefore() decimal.Decimal {
	if m.IsInput() {
		return m.RunningBalance.Sub(m.Quantity)
	}
	return m.RunningBalance.Add(m.Quantity)
}

// Before ordena por (CreatedAt, Seq).
func (m *StockMovement) Before(other *StockMovement) bool {
	if !m.CreatedAt.Equal(other.CreatedAt) {
		return m.CreatedAt.Before(other.CreatedAt)
	}
	return m.Seq < other.Seq
}
