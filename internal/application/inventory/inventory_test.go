package inventory_test

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/jhoicas/Almacen-api/internal/application/dto"
	"github.com/jhoicas/Almacen-api/internal/application/inventory"
	"github.com/jhoicas/Almacen-api/internal/domain"
	"github.com/jhoicas/Almacen-api/internal/domain/entity"
	"github.com/jhoicas/Almacen-api/internal/domain/repository"
	"github.com/jhoicas/Almacen-api/internal/infrastructure/memory"
)

const userID = "user-1"

type clock struct {
	mu sync.Mutex
	t  time.Time
}

func (c *clock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.t
}

func (c *clock) Set(t time.Time) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.t = t
}

type fixture struct {
	store    *memory.Store
	clock    *clock
	ledger   *inventory.RegisterMovementUseCase
	reports  *inventory.ReportUseCase
	products repository.ProductRepository
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	c := &clock{t: time.Date(2024, 3, 1, 9, 0, 0, 0, time.UTC)}
	s := memory.NewWithClock(c.Now)
	return &fixture{
		store:    s,
		clock:    c,
		ledger:   inventory.NewRegisterMovementUseCase(s, s.Products(), s.Movements(), nil, nil),
		reports:  inventory.NewReportUseCase(s.Products(), s.Movements(), s.ReportCodes(), nil, nil),
		products: s.Products(),
	}
}

func (f *fixture) product(t *testing.T, name, code string, price int64) *entity.Product {
	t.Helper()
	p := &entity.Product{Name: name, Code: code, Price: decimal.NewFromInt(price)}
	require.NoError(t, f.products.Create(context.Background(), p))
	return p
}

func dec(s string) decimal.Decimal { return decimal.RequireFromString(s) }

func TestRecordInput_UpdatesQuantity(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	p := f.product(t, "Harina", "4006381333931", 2)

	mov, err := f.ledger.RecordInput(ctx, p.ID, dec("10.5"), userID)
	require.NoError(t, err)
	assert.Equal(t, entity.MovementTypeIN, mov.Type)
	assert.True(t, mov.RunningBalance.Equal(dec("10.5")))
	assert.Equal(t, userID, mov.CreatedBy)

	got, err := f.products.GetByID(ctx, p.ID)
	require.NoError(t, err)
	assert.True(t, got.Quantity.Equal(mov.RunningBalance))
}

func TestRecordOutput_InsufficientStockWritesNothing(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	p := f.product(t, "Azúcar", "4006381333931", 1)
	_, err := f.ledger.RecordInput(ctx, p.ID, dec("3"), userID)
	require.NoError(t, err)

	_, err = f.ledger.RecordOutput(ctx, p.ID, dec("3.01"), userID)
	require.ErrorIs(t, err, domain.ErrInsufficientStock)

	got, err := f.products.GetByID(ctx, p.ID)
	require.NoError(t, err)
	assert.True(t, got.Quantity.Equal(dec("3")))
	list, err := f.ledger.ListMovements(ctx, p.ID, "")
	require.NoError(t, err)
	assert.Equal(t, 1, list.Total)

	mov, err := f.ledger.RecordOutput(ctx, p.ID, dec("3"), userID)
	require.NoError(t, err)
	assert.True(t, mov.RunningBalance.IsZero())
}

func TestRecord_InvalidQuantity(t *testing.T) {
	f := newFixture(t)
	p := f.product(t, "Sal", "4006381333931", 1)
	for _, q := range []string{"0", "-1", "1.005"} {
		_, err := f.ledger.RecordInput(context.Background(), p.ID, dec(q), userID)
		assert.ErrorIs(t, err, domain.ErrInvalidQuantity, q)
	}
}

func TestRecord_ProductNotFound(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	_, err := f.ledger.RecordInput(ctx, "no-existe", dec("1"), userID)
	assert.ErrorIs(t, err, domain.ErrProductNotFound)

	p := f.product(t, "Aceite", "4006381333931", 1)
	require.NoError(t, f.products.SoftDelete(ctx, p.ID))
	_, err = f.ledger.RecordInput(ctx, p.ID, dec("1"), userID)
	assert.ErrorIs(t, err, domain.ErrProductNotFound)
}

func TestRecord_RequiresUser(t *testing.T) {
	f := newFixture(t)
	p := f.product(t, "Café", "4006381333931", 1)
	_, err := f.ledger.RecordInput(context.Background(), p.ID, dec("1"), "")
	assert.ErrorIs(t, err, domain.ErrUnauthorized)
}

func TestRecord_ConcurrentMovementsKeepChain(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	p := f.product(t, "Fideos", "4006381333931", 1)
	_, err := f.ledger.RecordInput(ctx, p.ID, dec("20"), userID)
	require.NoError(t, err)

	var wg sync.WaitGroup
	for i := 0; i < 40; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			if i%2 == 0 {
				_, _ = f.ledger.RecordInput(ctx, p.ID, dec("1"), userID)
				return
			}
			_, _ = f.ledger.RecordOutput(ctx, p.ID, dec("1"), userID)
		}(i)
	}
	wg.Wait()

	check, err := f.ledger.VerifyProduct(ctx, p.ID)
	require.NoError(t, err)
	assert.True(t, check.Consistent, check.Inconsistencies)
	assert.Equal(t, 41, check.Movements)
	assert.True(t, check.Quantity.Equal(dec("20")))
}

func TestGenerateReport_Window(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	p := f.product(t, "Arroz", "4006381333931", 2)
	f.product(t, "Sin movimientos", "5901234123457", 9)

	f.clock.Set(time.Date(2024, 3, 1, 10, 0, 0, 0, time.UTC))
	_, err := f.ledger.RecordInput(ctx, p.ID, dec("10"), userID)
	require.NoError(t, err)
	f.clock.Set(time.Date(2024, 3, 2, 10, 0, 0, 0, time.UTC))
	_, err = f.ledger.RecordOutput(ctx, p.ID, dec("3"), userID)
	require.NoError(t, err)

	rows, err := f.reports.GenerateReport(ctx, inventory.ReportFilter{})
	require.NoError(t, err)
	require.Len(t, rows, 1)
	r := rows[0]
	assert.Equal(t, p.ID, r.ProductID)
	assert.True(t, r.BeginningQuantity.IsZero())
	assert.True(t, r.GoodsInQuantity.Equal(dec("10")))
	assert.True(t, r.GoodsOutQuantity.Equal(dec("3")))
	assert.True(t, r.EndingQuantity.Equal(dec("7")))
	assert.True(t, r.GoodsInPrice.Equal(dec("20")))
	assert.True(t, r.EndingPrice.Equal(dec("14")))

	filter, err := inventory.ParseReportFilter(dto.ReportQuery{Date: "2024-03-02"}, time.UTC)
	require.NoError(t, err)
	rows, err = f.reports.GenerateReport(ctx, filter)
	require.NoError(t, err)
	require.Len(t, rows, 1)
	r = rows[0]
	assert.True(t, r.BeginningQuantity.Equal(dec("10")))
	assert.True(t, r.GoodsInQuantity.IsZero())
	assert.True(t, r.GoodsOutQuantity.Equal(dec("3")))
	assert.True(t, r.EndingQuantity.Equal(dec("7")))

	filter, err = inventory.ParseReportFilter(dto.ReportQuery{StartDate: "2024-03-05", EndDate: "2024-03-06"}, time.UTC)
	require.NoError(t, err)
	rows, err = f.reports.GenerateReport(ctx, filter)
	require.NoError(t, err)
	assert.Empty(t, rows)
}

func TestGenerateReport_FiltersAndOrder(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	dairy := &entity.Category{Name: "Lácteos"}
	grains := &entity.Category{Name: "Granos"}
	require.NoError(t, f.store.Categories().Create(ctx, dairy))
	require.NoError(t, f.store.Categories().Create(ctx, grains))

	stock := func(name, code, categoryID string, price int64, qty string) {
		p := &entity.Product{Name: name, Code: code, CategoryID: categoryID, Price: decimal.NewFromInt(price)}
		require.NoError(t, f.products.Create(ctx, p))
		_, err := f.ledger.RecordInput(ctx, p.ID, dec(qty), userID)
		require.NoError(t, err)
	}
	stock("Queso", "1000000000009", dairy.ID, 30, "5")
	stock("Arroz", "2000000000008", grains.ID, 10, "20")
	stock("Leche", "3000000000007", dairy.ID, 4, "12")
	stock("Sal", "4000000000006", "", 1, "8")

	tests := []struct {
		name  string
		query dto.ReportQuery
		want  []string
	}{
		{"por nombre", dto.ReportQuery{OrderBy: "name"}, []string{"Arroz", "Leche", "Queso", "Sal"}},
		{"por precio", dto.ReportQuery{OrderBy: "price"}, []string{"Sal", "Leche", "Arroz", "Queso"}},
		{"por cantidad", dto.ReportQuery{OrderBy: "quantity"}, []string{"Queso", "Sal", "Leche", "Arroz"}},
		{"por categoría, sin categoría al final", dto.ReportQuery{OrderBy: "category"}, []string{"Arroz", "Leche", "Queso", "Sal"}},
		{"categoría", dto.ReportQuery{CategoryID: grains.ID}, []string{"Arroz"}},
		{"búsqueda por nombre de categoría", dto.ReportQuery{Search: "LÁCTEOS", OrderBy: "name"}, []string{"Leche", "Queso"}},
		{"búsqueda por código", dto.ReportQuery{Search: "400000"}, []string{"Sal"}},
		{"categoría y búsqueda", dto.ReportQuery{CategoryID: dairy.ID, Search: "que"}, []string{"Queso"}},
		{"categoría y búsqueda sin cruce", dto.ReportQuery{CategoryID: grains.ID, Search: "queso"}, []string{}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			filter, err := inventory.ParseReportFilter(tt.query, time.UTC)
			require.NoError(t, err)
			rows, err := f.reports.GenerateReport(ctx, filter)
			require.NoError(t, err)
			got := make([]string, 0, len(rows))
			for _, r := range rows {
				got = append(got, r.ProductName)
			}
			assert.Equal(t, tt.want, got)
		})
	}

	rows, err := f.reports.GenerateReport(ctx, inventory.ReportFilter{OrderBy: "category"})
	require.NoError(t, err)
	require.Len(t, rows, 4)
	assert.Equal(t, "Granos", rows[0].CategoryName)
	assert.Equal(t, "", rows[3].CategoryName)
}

func TestGenerateReport_EndDateIncludesWholeDay(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	p := f.product(t, "Azúcar", "4006381333931", 3)

	f.clock.Set(time.Date(2024, 3, 2, 0, 0, 0, 0, time.UTC))
	_, err := f.ledger.RecordInput(ctx, p.ID, dec("10"), userID)
	require.NoError(t, err)
	f.clock.Set(time.Date(2024, 3, 2, 23, 59, 59, 0, time.UTC))
	_, err = f.ledger.RecordOutput(ctx, p.ID, dec("4"), userID)
	require.NoError(t, err)
	f.clock.Set(time.Date(2024, 3, 3, 0, 0, 0, 0, time.UTC))
	_, err = f.ledger.RecordOutput(ctx, p.ID, dec("1"), userID)
	require.NoError(t, err)

	filter, err := inventory.ParseReportFilter(dto.ReportQuery{StartDate: "2024-03-01", EndDate: "2024-03-02"}, time.UTC)
	require.NoError(t, err)
	rows, err := f.reports.GenerateReport(ctx, filter)
	require.NoError(t, err)
	require.Len(t, rows, 1)
	r := rows[0]
	assert.True(t, r.GoodsInQuantity.Equal(dec("10")))
	assert.True(t, r.GoodsOutQuantity.Equal(dec("4")), "salida de las 23:59:59 %s", r.GoodsOutQuantity)
	assert.True(t, r.EndingQuantity.Equal(dec("6")))
	assert.True(t, r.GoodsOutPrice.Equal(dec("12")))
}

func TestVerifyProduct_DetectsQuantityDrift(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	p := f.product(t, "Avena", "4006381333931", 2)
	_, err := f.ledger.RecordInput(ctx, p.ID, dec("8"), userID)
	require.NoError(t, err)
	_, err = f.ledger.RecordOutput(ctx, p.ID, dec("3"), userID)
	require.NoError(t, err)

	check, err := f.ledger.VerifyProduct(ctx, p.ID)
	require.NoError(t, err)
	assert.True(t, check.Consistent, check.Inconsistencies)
	assert.True(t, check.LastBalance.Equal(dec("5")))

	require.NoError(t, f.products.UpdateQuantity(ctx, p.ID, dec("99")))
	check, err = f.ledger.VerifyProduct(ctx, p.ID)
	require.NoError(t, err)
	assert.False(t, check.Consistent)
	assert.True(t, check.LastBalance.Equal(dec("5")))
	assert.Len(t, check.Inconsistencies, 1)

	_, err = f.ledger.VerifyProduct(ctx, "no-existe")
	assert.ErrorIs(t, err, domain.ErrProductNotFound)
}

func TestGenerateReport_Idempotent(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	p := f.product(t, "Leche", "4006381333931", 3)
	_, err := f.ledger.RecordInput(ctx, p.ID, dec("4"), userID)
	require.NoError(t, err)

	first, err := f.reports.GenerateReport(ctx, inventory.ReportFilter{})
	require.NoError(t, err)
	second, err := f.reports.GenerateReport(ctx, inventory.ReportFilter{})
	require.NoError(t, err)
	assert.Equal(t, first, second)

	got, err := f.products.GetByID(ctx, p.ID)
	require.NoError(t, err)
	assert.True(t, got.Quantity.Equal(dec("4")))
}

func TestGenerateReport_IncludesSoftDeletedWithMovements(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	p := f.product(t, "Galletas", "4006381333931", 1)
	_, err := f.ledger.RecordInput(ctx, p.ID, dec("2"), userID)
	require.NoError(t, err)
	require.NoError(t, f.products.SoftDelete(ctx, p.ID))

	rows, err := f.reports.GenerateReport(ctx, inventory.ReportFilter{})
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, "Galletas", rows[0].ProductName)
}

func TestGenerateSharedReport(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	p := f.product(t, "Atún", "4006381333931", 5)
	_, err := f.ledger.RecordInput(ctx, p.ID, dec("1"), userID)
	require.NoError(t, err)

	_, err = f.reports.GenerateSharedReport(ctx, "1234")
	assert.ErrorIs(t, err, domain.ErrUnauthorized)

	hash, err := bcrypt.GenerateFromPassword([]byte("1234"), bcrypt.MinCost)
	require.NoError(t, err)
	require.NoError(t, f.store.ReportCodes().Create(ctx, &entity.ReportCode{PasswordHash: string(hash), CreatedBy: userID}))

	_, err = f.reports.GenerateSharedReport(ctx, "9999")
	assert.ErrorIs(t, err, domain.ErrUnauthorized)

	rows, err := f.reports.GenerateSharedReport(ctx, "1234")
	require.NoError(t, err)
	assert.Len(t, rows, 1)
}

func TestParseReportFilter(t *testing.T) {
	loc := time.FixedZone("COT", -5*3600)
	tests := []struct {
		name    string
		q       dto.ReportQuery
		wantErr bool
		bounded bool
	}{
		{name: "sin fechas", q: dto.ReportQuery{}},
		{name: "día", q: dto.ReportQuery{Date: "2024-01-10"}, bounded: true},
		{name: "rango", q: dto.ReportQuery{StartDate: "2024-01-01", EndDate: "2024-01-31"}, bounded: true},
		{name: "solo inicio", q: dto.ReportQuery{StartDate: "2024-01-01"}, wantErr: true},
		{name: "solo fin", q: dto.ReportQuery{EndDate: "2024-01-01"}, wantErr: true},
		{name: "invertido", q: dto.ReportQuery{StartDate: "2024-02-01", EndDate: "2024-01-01"}, wantErr: true},
		{name: "formato", q: dto.ReportQuery{Date: "10/01/2024"}, wantErr: true},
		{name: "date y rango", q: dto.ReportQuery{Date: "2024-01-10", StartDate: "2024-01-01", EndDate: "2024-01-31"}, wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f, err := inventory.ParseReportFilter(tt.q, loc)
			if tt.wantErr {
				assert.ErrorIs(t, err, domain.ErrInvalidDateRange)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.bounded, f.From != nil && f.To != nil)
		})
	}

	f, err := inventory.ParseReportFilter(dto.ReportQuery{Date: "2024-01-10"}, loc)
	require.NoError(t, err)
	assert.Equal(t, time.Date(2024, 1, 10, 0, 0, 0, 0, loc), *f.From)
	assert.Equal(t, time.Date(2024, 1, 10, 23, 59, 59, 999999000, loc), *f.To)
}
