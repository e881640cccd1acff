package usecase

import (
	"context"
	"strings"

	"github.com/jhoicas/Almacen-api/internal/application/dto"
	"github.com/jhoicas/Almacen-api/internal/application/inventory"
	"github.com/jhoicas/Almacen-api/internal/domain"
	"github.com/jhoicas/Almacen-api/internal/domain/entity"
	"github.com/jhoicas/Almacen-api/internal/domain/repository"
)

// CategoryUseCase CRUD de categorías.
type CategoryUseCase struct {
	repo  repository.CategoryRepository
	cache inventory.ReportCache
}

func NewCategoryUseCase(repo repository.CategoryRepository, cache inventory.ReportCache) *CategoryUseCase {
	return &CategoryUseCase{repo: repo, cache: cache}
}

func (uc *CategoryUseCase) Create(ctx context.Context, in dto.CatalogRequest) (*dto.CatalogResponse, error) {
	c := &entity.Category{Name: strings.TrimSpace(in.Name)}
	if c.Name == "" {
		return nil, domain.ErrInvalidInput
	}
	if err := uc.repo.Create(ctx, c); err != nil {
		return nil, err
	}
	invalidateReports(ctx, uc.cache)
	return &dto.CatalogResponse{ID: c.ID, Name: c.Name, CreatedAt: c.CreatedAt, UpdatedAt: c.UpdatedAt}, nil
}

func (uc *CategoryUseCase) GetByID(ctx context.Context, id string) (*dto.CatalogResponse, error) {
	c, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if c == nil {
		return nil, domain.ErrNotFound
	}
	return &dto.CatalogResponse{ID: c.ID, Name: c.Name, CreatedAt: c.CreatedAt, UpdatedAt: c.UpdatedAt}, nil
}

func (uc *CategoryUseCase) Update(ctx context.Context, id string, in dto.CatalogRequest) (*dto.CatalogResponse, error) {
	c := &entity.Category{ID: id, Name: strings.TrimSpace(in.Name)}
	if c.Name == "" {
		return nil, domain.ErrInvalidInput
	}
	if err := uc.repo.Update(ctx, c); err != nil {
		return nil, err
	}
	invalidateReports(ctx, uc.cache)
	return &dto.CatalogResponse{ID: c.ID, Name: c.Name, CreatedAt: c.CreatedAt, UpdatedAt: c.UpdatedAt}, nil
}

func (uc *CategoryUseCase) List(ctx context.Context) ([]dto.CatalogResponse, error) {
	list, err := uc.repo.List(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]dto.CatalogResponse, 0, len(list))
	for _, c := range list {
		out = append(out, dto.CatalogResponse{ID: c.ID, Name: c.Name, CreatedAt: c.CreatedAt, UpdatedAt: c.UpdatedAt})
	}
	return out, nil
}

// Delete los productos de la categoría quedan sin categoría.
func (uc *CategoryUseCase) Delete(ctx context.Context, id string) error {
	if err := uc.repo.Delete(ctx, id); err != nil {
		return err
	}
	invalidateReports(ctx, uc.cache)
	return nil
}

// UnitUseCase CRUD de unidades de medida.
type UnitUseCase struct {
	repo  repository.UnitRepository
	cache inventory.ReportCache
}

func NewUnitUseCase(repo repository.UnitRepository, cache inventory.ReportCache) *UnitUseCase {
	return &UnitUseCase{repo: repo, cache: cache}
}

func (uc *UnitUseCase) Create(ctx context.Context, in dto.CatalogRequest) (*dto.CatalogResponse, error) {
	u := &entity.Unit{Name: strings.TrimSpace(in.Name)}
	if u.Name == "" {
		return nil, domain.ErrInvalidInput
	}
	if err := uc.repo.Create(ctx, u); err != nil {
		return nil, err
	}
	invalidateReports(ctx, uc.cache)
	return &dto.CatalogResponse{ID: u.ID, Name: u.Name, CreatedAt: u.CreatedAt, UpdatedAt: u.UpdatedAt}, nil
}

func (uc *UnitUseCase) GetByID(ctx context.Context, id string) (*dto.CatalogResponse, error) {
	u, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if u == nil {
		return nil, domain.ErrNotFound
	}
	return &dto.CatalogResponse{ID: u.ID, Name: u.Name, CreatedAt: u.CreatedAt, UpdatedAt: u.UpdatedAt}, nil
}

func (uc *UnitUseCase) Update(ctx context.Context, id string, in dto.CatalogRequest) (*dto.CatalogResponse, error) {
	u := &entity.Unit{ID: id, Name: strings.TrimSpace(in.Name)}
	if u.Name == "" {
		return nil, domain.ErrInvalidInput
	}
	if err := uc.repo.Update(ctx, u); err != nil {
		return nil, err
	}
	invalidateReports(ctx, uc.cache)
	return &dto.CatalogResponse{ID: u.ID, Name: u.Name, CreatedAt: u.CreatedAt, UpdatedAt: u.UpdatedAt}, nil
}

func (uc *UnitUseCase) List(ctx context.Context) ([]dto.CatalogResponse, error) {
	list, err := uc.repo.List(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]dto.CatalogResponse, 0, len(list))
	for _, u := range list {
		out = append(out, dto.CatalogResponse{ID: u.ID, Name: u.Name, CreatedAt: u.CreatedAt, UpdatedAt: u.UpdatedAt})
	}
	return out, nil
}

func (uc *UnitUseCase) Delete(ctx context.Context, id string) error {
	if err := uc.repo.Delete(ctx, id); err != nil {
		return err
	}
	invalidateReports(ctx, uc.cache)
	return nil
}
