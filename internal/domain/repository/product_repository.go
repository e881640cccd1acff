package repository

import (
	"context"

	"github.com/jhoicas/Almacen-api/internal/domain/entity"
	"github.com/shopspring/decimal"
)

// Campos de ordenamiento admitidos por ProductFilter.OrderBy.
const (
	OrderByCategory = "category"
	OrderByName     = "name"
	OrderByPrice    = "price"
	OrderByQuantity = "quantity"
)

// ProductFilter criterios de selección de productos (se combinan con AND).
type ProductFilter struct {
	CategoryID     string
	Search         string // subcadena sin distinguir mayúsculas sobre código, nombre y categoría
	OrderBy        string
	IncludeDeleted bool
	Limit          int // 0 = sin límite
	Offset         int
}

// ProductRepository define el puerto de persistencia para Product (DIP).
type ProductRepository interface {
	Create(ctx context.Context, product *entity.Product) error
	GetByID(ctx context.Context, id string) (*entity.Product, error)
	GetByCode(ctx context.Context, code string) (*entity.Product, error)
	// GetForUpdate bloquea la fila del producto hasta el fin de la transacción (SELECT FOR UPDATE).
	GetForUpdate(ctx context.Context, id string) (*entity.Product, error)
	CodeExists(ctx context.Context, code string) (bool, error)
	Update(ctx context.Context, product *entity.Product) error
	// UpdateQuantity solo la usa el motor de movimientos.
	UpdateQuantity(ctx context.Context, productID string, quantity decimal.Decimal) error
	SoftDelete(ctx context.Context, id string) error
	List(ctx context.Context, filter ProductFilter) ([]*entity.Product, error)
}
