package usecase

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Almacen-api/internal/application/dto"
	"github.com/jhoicas/Almacen-api/internal/application/inventory"
	"github.com/jhoicas/Almacen-api/internal/infrastructure/cache"
	"github.com/jhoicas/Almacen-api/internal/infrastructure/memory"
)

func TestCatalogChanges_InvalidateCachedReport(t *testing.T) {
	ctx := context.Background()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })
	reportCache := cache.NewReportCache(client, time.Minute, nil)

	s := memory.New()
	categories := NewCategoryUseCase(s.Categories(), reportCache)
	units := NewUnitUseCase(s.Units(), reportCache)
	products := NewProductUseCase(s, s.Products(), s.Categories(), s.Units(), nil, reportCache)
	movements := inventory.NewRegisterMovementUseCase(s, s.Products(), s.Movements(), reportCache, nil)
	reports := inventory.NewReportUseCase(s.Products(), s.Movements(), s.ReportCodes(), reportCache, nil)

	cat, err := categories.Create(ctx, dto.CatalogRequest{Name: "Harinas"})
	require.NoError(t, err)
	unit, err := units.Create(ctx, dto.CatalogRequest{Name: "kg"})
	require.NoError(t, err)
	p, err := products.Create(ctx, dto.CreateProductRequest{Name: "Harina", CategoryID: cat.ID, UnitID: unit.ID, Price: decimal.NewFromInt(2)})
	require.NoError(t, err)
	_, err = movements.RecordInput(ctx, p.ID, decimal.NewFromInt(10), "u1")
	require.NoError(t, err)

	report := func() dto.ReportRow {
		t.Helper()
		rows, err := reports.GenerateReport(ctx, inventory.ReportFilter{})
		require.NoError(t, err)
		require.Len(t, rows, 1)
		return rows[0]
	}

	row := report()
	assert.True(t, decimal.NewFromInt(20).Equal(row.GoodsInPrice))
	assert.Equal(t, "Harina", row.ProductName)

	name := "Harina integral"
	price := decimal.NewFromInt(5)
	_, err = products.Update(ctx, p.ID, dto.UpdateProductRequest{Name: &name, Price: &price})
	require.NoError(t, err)
	row = report()
	assert.True(t, decimal.NewFromInt(50).Equal(row.GoodsInPrice), "precio nuevo: %s", row.GoodsInPrice)
	assert.Equal(t, "Harina integral", row.ProductName)

	_, err = categories.Update(ctx, cat.ID, dto.CatalogRequest{Name: "Harinas finas"})
	require.NoError(t, err)
	assert.Equal(t, "Harinas finas", report().CategoryName)

	_, err = units.Update(ctx, unit.ID, dto.CatalogRequest{Name: "kilogramo"})
	require.NoError(t, err)
	assert.Equal(t, "kilogramo", report().ProductUnit)

	require.NoError(t, categories.Delete(ctx, cat.ID))
	assert.Empty(t, report().CategoryName)

	require.NoError(t, units.Delete(ctx, unit.ID))
	assert.Empty(t, report().ProductUnit)
}
