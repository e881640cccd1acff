package usecase

import (
	"context"
	"errors"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/Almacen-api/internal/application/dto"
	"github.com/jhoicas/Almacen-api/internal/application/inventory"
	"github.com/jhoicas/Almacen-api/internal/domain"
	"github.com/jhoicas/Almacen-api/internal/domain/barcode"
	"github.com/jhoicas/Almacen-api/internal/domain/entity"
	"github.com/jhoicas/Almacen-api/internal/domain/repository"
)

// createRetries transacciones de alta que se reintentan si UNIQUE(code) rechaza el código.
const createRetries = 3

// ProductUseCase casos de uso CRUD para productos. Quantity se maneja vía movimientos
// y Code lo asigna el generador EAN-13.
type ProductUseCase struct {
	txRunner     inventory.TxRunner
	repo         repository.ProductRepository
	categoryRepo repository.CategoryRepository
	unitRepo     repository.UnitRepository
	generator    *barcode.Generator
	cache        inventory.ReportCache
}

// NewProductUseCase construye el caso de uso. generator nil usa barcode.NewGenerator(); cache es opcional.
func NewProductUseCase(
	txRunner inventory.TxRunner,
	repo repository.ProductRepository,
	categoryRepo repository.CategoryRepository,
	unitRepo repository.UnitRepository,
	generator *barcode.Generator,
	cache inventory.ReportCache,
) *ProductUseCase {
	if generator == nil {
		generator = barcode.NewGenerator()
	}
	return &ProductUseCase{
		txRunner:     txRunner,
		repo:         repo,
		categoryRepo: categoryRepo,
		unitRepo:     unitRepo,
		generator:    generator,
		cache:        cache,
	}
}

// Create crea un producto con cantidad 0. El código se genera y se inserta en la misma transacción.
func (uc *ProductUseCase) Create(ctx context.Context, in dto.CreateProductRequest) (*dto.ProductResponse, error) {
	if in.Price.IsNegative() {
		return nil, domain.ErrInvalidInput
	}
	if err := uc.checkRefs(ctx, in.CategoryID, in.UnitID); err != nil {
		return nil, err
	}

	var created *entity.Product
	for attempt := 0; attempt < createRetries; attempt++ {
		err := uc.txRunner.Run(ctx, func(ctx context.Context, _ repository.StockMovementRepository, productRepo repository.ProductRepository) error {
			code, err := uc.generator.GenerateUnique(ctx, productRepo.CodeExists)
			if err != nil {
				return err
			}
			p := &entity.Product{
				Name:        in.Name,
				Description: in.Description,
				CategoryID:  in.CategoryID,
				UnitID:      in.UnitID,
				Price:       in.Price,
				Quantity:    decimal.Zero,
				Code:        code,
			}
			if err := productRepo.Create(ctx, p); err != nil {
				return err
			}
			created = p
			return nil
		})
		if errors.Is(err, domain.ErrDuplicate) {
			continue
		}
		if err != nil {
			return nil, err
		}
		invalidateReports(ctx, uc.cache)
		return uc.GetByID(ctx, created.ID)
	}
	return nil, domain.ErrBarcodeExhausted
}

// GetByID obtiene un producto por ID (incluye los eliminados).
func (uc *ProductUseCase) GetByID(ctx context.Context, id string) (*dto.ProductResponse, error) {
	product, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, domain.ErrProductNotFound
	}
	return toProductResponse(product), nil
}

// GetByCode busca por código EAN-13.
func (uc *ProductUseCase) GetByCode(ctx context.Context, code string) (*dto.ProductResponse, error) {
	product, err := uc.repo.GetByCode(ctx, code)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, domain.ErrProductNotFound
	}
	return toProductResponse(product), nil
}

// Update actualiza un producto. No permite modificar Quantity ni Code.
func (uc *ProductUseCase) Update(ctx context.Context, id string, in dto.UpdateProductRequest) (*dto.ProductResponse, error) {
	product, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if product == nil || product.IsDeleted {
		return nil, domain.ErrProductNotFound
	}
	if in.Name != nil {
		product.Name = *in.Name
	}
	if in.Description != nil {
		product.Description = *in.Description
	}
	if in.Price != nil {
		if in.Price.IsNegative() {
			return nil, domain.ErrInvalidInput
		}
		product.Price = *in.Price
	}
	if in.CategoryID != nil {
		product.CategoryID = *in.CategoryID
	}
	if in.UnitID != nil {
		product.UnitID = *in.UnitID
	}
	if err := uc.checkRefs(ctx, product.CategoryID, product.UnitID); err != nil {
		return nil, err
	}
	if err := uc.repo.Update(ctx, product); err != nil {
		return nil, err
	}
	invalidateReports(ctx, uc.cache)
	return uc.GetByID(ctx, id)
}

// List lista productos con filtros y paginación.
func (uc *ProductUseCase) List(ctx context.Context, filter repository.ProductFilter) (*dto.ProductListResponse, error) {
	list, err := uc.repo.List(ctx, filter)
	if err != nil {
		return nil, err
	}
	items := make([]dto.ProductResponse, 0, len(list))
	for _, p := range list {
		items = append(items, *toProductResponse(p))
	}
	return &dto.ProductListResponse{
		Items: items,
		Page:  dto.PageResponse{Limit: filter.Limit, Offset: filter.Offset},
	}, nil
}

// Delete marca el producto como eliminado; su historial sigue en los reportes.
func (uc *ProductUseCase) Delete(ctx context.Context, id string) error {
	if err := uc.repo.SoftDelete(ctx, id); err != nil {
		return err
	}
	invalidateReports(ctx, uc.cache)
	return nil
}

func (uc *ProductUseCase) checkRefs(ctx context.Context, categoryID, unitID string) error {
	if categoryID != "" && uc.categoryRepo != nil {
		c, err := uc.categoryRepo.GetByID(ctx, categoryID)
		if err != nil {
			return err
		}
		if c == nil {
			return domain.ErrInvalidInput
		}
	}
	if unitID != "" && uc.unitRepo != nil {
		u, err := uc.unitRepo.GetByID(ctx, unitID)
		if err != nil {
			return err
		}
		if u == nil {
			return domain.ErrInvalidInput
		}
	}
	return nil
}

func toProductResponse(p *entity.Product) *dto.ProductResponse {
	if p == nil {
		return nil
	}
	return &dto.ProductResponse{
		ID:           p.ID,
		Name:         p.Name,
		Description:  p.Description,
		CategoryID:   p.CategoryID,
		CategoryName: p.CategoryName,
		UnitID:       p.UnitID,
		UnitName:     p.UnitName,
		Price:        p.Price,
		Quantity:     p.Quantity,
		Code:         p.Code,
		IsDeleted:    p.IsDeleted,
		CreatedAt:    p.CreatedAt,
		UpdatedAt:    p.UpdatedAt,
	}
}
