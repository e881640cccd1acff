package usecase

import (
	"context"

	"github.com/rs/zerolog/log"

	"github.com/jhoicas/Almacen-api/internal/application/inventory"
)

// invalidateReports descarta los reportes en caché: precio, nombre, categoría y unidad salen en cada fila.
// Un fallo solo se registra; el cambio ya quedó confirmado.
func invalidateReports(ctx context.Context, cache inventory.ReportCache) {
	if cache == nil {
		return
	}
	if err := cache.Invalidate(ctx); err != nil {
		log.Warn().Err(err).Msg("no se pudo invalidar la caché de reportes")
	}
}
