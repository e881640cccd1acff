package repository

import (
	"context"

	"github.com/jhoicas/Almacen-api/internal/domain/entity"
)

// ReportCodeRepository guarda el historial de contraseñas de reporte; la vigente es la última.
type ReportCodeRepository interface {
	Create(ctx context.Context, code *entity.ReportCode) error
	Latest(ctx context.Context) (*entity.ReportCode, error)
}
