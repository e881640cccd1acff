package inventory

import (
	"context"
	"errors"

	"github.com/shopspring/decimal"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"golang.org/x/crypto/bcrypt"

	"github.com/jhoicas/Almacen-api/internal/application/dto"
	"github.com/jhoicas/Almacen-api/internal/domain"
	"github.com/jhoicas/Almacen-api/internal/domain/entity"
	"github.com/jhoicas/Almacen-api/internal/domain/inventory"
	"github.com/jhoicas/Almacen-api/internal/domain/repository"
	"github.com/jhoicas/Almacen-api/pkg/logger"
)

// ReportUseCase arma el reporte de existencias por producto a partir del libro.
// Solo lee: nunca modifica productos ni movimientos.
type ReportUseCase struct {
	productRepo    repository.ProductRepository
	movRepo        repository.StockMovementRepository
	reportCodeRepo repository.ReportCodeRepository
	cache          ReportCache
	log            *logger.Logger
}

// NewReportUseCase construye el caso de uso. cache y log son opcionales.
func NewReportUseCase(
	productRepo repository.ProductRepository,
	movRepo repository.StockMovementRepository,
	reportCodeRepo repository.ReportCodeRepository,
	cache ReportCache,
	log *logger.Logger,
) *ReportUseCase {
	if log == nil {
		log = logger.Nop()
	}
	return &ReportUseCase{
		productRepo:    productRepo,
		movRepo:        movRepo,
		reportCodeRepo: reportCodeRepo,
		cache:          cache,
		log:            log,
	}
}

// GenerateReport reporte para usuarios autenticados con todos los filtros.
func (uc *ReportUseCase) GenerateReport(ctx context.Context, filter ReportFilter) ([]dto.ReportRow, error) {
	ctx, span := tracer.Start(ctx, "inventory.generate_report")
	defer span.End()
	span.SetAttributes(
		attribute.String("report.category", filter.CategoryID),
		attribute.String("report.order_by", filter.OrderBy),
		attribute.Bool("report.bounded", filter.From != nil),
	)

	var (
		rows []dto.ReportRow
		err  error
	)
	if uc.cache != nil {
		rows, err = uc.cache.GetOrBuild(ctx, filter.CacheKey(), func(ctx context.Context) ([]dto.ReportRow, error) {
			return uc.build(ctx, filter)
		})
	} else {
		rows, err = uc.build(ctx, filter)
	}
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return nil, err
	}
	span.SetAttributes(attribute.Int("report.rows", len(rows)))
	return rows, nil
}

// GenerateSharedReport reporte con la contraseña compartida: sin filtros, todos los productos.
func (uc *ReportUseCase) GenerateSharedReport(ctx context.Context, password string) ([]dto.ReportRow, error) {
	if err := uc.checkReportPassword(ctx, password); err != nil {
		return nil, err
	}
	return uc.GenerateReport(ctx, ReportFilter{})
}

func (uc *ReportUseCase) checkReportPassword(ctx context.Context, password string) error {
	if password == "" || uc.reportCodeRepo == nil {
		return domain.ErrUnauthorized
	}
	code, err := uc.reportCodeRepo.Latest(ctx)
	if err != nil {
		return err
	}
	if code == nil {
		return domain.ErrUnauthorized
	}
	if err := bcrypt.CompareHashAndPassword([]byte(code.PasswordHash), []byte(password)); err != nil {
		if errors.Is(err, bcrypt.ErrMismatchedHashAndPassword) {
			uc.log.Warn().Msg("contraseña de reporte incorrecta")
			return domain.ErrUnauthorized
		}
		return err
	}
	return nil
}

func (uc *ReportUseCase) build(ctx context.Context, filter ReportFilter) ([]dto.ReportRow, error) {
	products, err := uc.productRepo.List(ctx, repository.ProductFilter{
		CategoryID:     filter.CategoryID,
		Search:         filter.Search,
		OrderBy:        filter.OrderBy,
		IncludeDeleted: true,
	})
	if err != nil {
		return nil, err
	}
	rows := make([]dto.ReportRow, 0, len(products))
	if len(products) == 0 {
		return rows, nil
	}

	ids := make([]string, len(products))
	for i, p := range products {
		ids[i] = p.ID
	}
	inputs, err := uc.listByProduct(ctx, ids, entity.MovementTypeIN, filter)
	if err != nil {
		return nil, err
	}
	outputs, err := uc.listByProduct(ctx, ids, entity.MovementTypeOUT, filter)
	if err != nil {
		return nil, err
	}

	for _, p := range products {
		s := inventory.Summarize(inputs[p.ID], outputs[p.ID])
		if s.IsZero() {
			continue
		}
		rows = append(rows, toReportRow(p, s))
	}
	return rows, nil
}

// listByProduct agrupa por producto conservando el orden (CreatedAt, Seq) del repositorio.
func (uc *ReportUseCase) listByProduct(ctx context.Context, ids []string, movementType string, filter ReportFilter) (map[string][]*entity.StockMovement, error) {
	list, err := uc.movRepo.List(ctx, repository.MovementFilter{
		ProductIDs: ids,
		Type:       movementType,
		From:       filter.From,
		To:         filter.To,
	})
	if err != nil {
		return nil, err
	}
	out := make(map[string][]*entity.StockMovement, len(ids))
	for _, m := range list {
		out[m.ProductID] = append(out[m.ProductID], m)
	}
	return out, nil
}

func toReportRow(p *entity.Product, s inventory.PeriodSummary) dto.ReportRow {
	price := func(q decimal.Decimal) decimal.Decimal { return q.Mul(p.Price).Round(2) }
	return dto.ReportRow{
		ProductID:         p.ID,
		ProductName:       p.Name,
		ProductCode:       p.Code,
		ProductUnit:       p.UnitName,
		CategoryName:      p.CategoryName,
		BeginningQuantity: s.Beginning,
		BeginningPrice:    price(s.Beginning),
		GoodsInQuantity:   s.GoodsIn,
		GoodsInPrice:      price(s.GoodsIn),
		GoodsOutQuantity:  s.GoodsOut,
		GoodsOutPrice:     price(s.GoodsOut),
		EndingQuantity:    s.Ending,
		EndingPrice:       price(s.Ending),
	}
}
