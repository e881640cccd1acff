package inventory

import (
	"context"

	"github.com/jhoicas/Almacen-api/internal/application/dto"
	"github.com/jhoicas/Almacen-api/internal/domain/repository"
)

// TxRunner ejecuta una función dentro de una transacción de BD, pasando repositorios atados a esa tx.
// Garantiza atomicidad del libro: o se escriben movimiento y saldo, o ninguno.
type TxRunner interface {
	Run(ctx context.Context, fn func(
		ctx context.Context,
		movRepo repository.StockMovementRepository,
		productRepo repository.ProductRepository,
	) error) error
}

// ReportCache guarda reportes ya calculados. Invalidate se llama tras cada movimiento confirmado.
type ReportCache interface {
	GetOrBuild(ctx context.Context, key string, build func(context.Context) ([]dto.ReportRow, error)) ([]dto.ReportRow, error)
	Invalidate(ctx context.Context) error
}
