package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Product representa un producto del almacén.
// Quantity es el saldo materializado: solo lo modifica el motor de movimientos.
type Product struct {
	ID           string
	Name         string
	Description  string
	CategoryID   string // vacío si no tiene categoría
	CategoryName string // solo lectura (join)
	UnitID       string // vacío si no tiene unidad
	UnitName     string // solo lectura (join)
	Price        decimal.Decimal
	Quantity     decimal.Decimal
	Code         string // EAN-13, único
	IsDeleted    bool
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
