package inventory

import (
	"fmt"

	"github.com/jhoicas/Almacen-api/internal/domain"
	"github.com/jhoicas/Almacen-api/internal/domain/entity"
	"github.com/shopspring/decimal"
)

// QuantityScale decimales admitidos en cantidades (columna NUMERIC(12,2)).
const QuantityScale = 2

// ValidateQuantity exige cantidad > 0 con como máximo QuantityScale decimales.
func ValidateQuantity(qty decimal.Decimal) error {
	if !qty.IsPositive() {
		return domain.ErrInvalidQuantity
	}
	if !qty.Equal(qty.Truncate(QuantityScale)) {
		return domain.ErrInvalidQuantity
	}
	return nil
}

// NextBalance calcula el saldo resultante de aplicar un movimiento al saldo actual.
// Una salida mayor que el saldo devuelve ErrInsufficientStock.
func NextBalance(current decimal.Decimal, movementType string, qty decimal.Decimal) (decimal.Decimal, error) {
	if err := ValidateQuantity(qty); err != nil {
		return decimal.Zero, err
	}
	switch movementType {
	case entity.MovementTypeIN:
		return current.Add(qty), nil
	case entity.MovementTypeOUT:
		if qty.GreaterThan(current) {
			return decimal.Zero, domain.ErrInsufficientStock
		}
		return current.Sub(qty), nil
	}
	return decimal.Zero, domain.ErrInvalidInput
}

// CheckChain verifica que cada RunningBalance sea el anterior ± la cantidad.
// movements debe venir ordenado por (CreatedAt, Seq) y empezar en el primer movimiento del producto.
func CheckChain(movements []*entity.StockMovement) error {
	prev := decimal.Zero
	for i, m := range movements {
		want, err := NextBalance(prev, m.Type, m.Quantity)
		if err != nil {
			return fmt.Errorf("inventory: movimiento %d (%s): %w", i, m.ID, err)
		}
		if !want.Equal(m.RunningBalance) {
			return fmt.Errorf("inventory: movimiento %d (%s): saldo %s, esperado %s", i, m.ID, m.RunningBalance, want)
		}
		prev = m.RunningBalance
	}
	return nil
}
