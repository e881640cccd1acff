package memory

import (
	"context"
	"sort"
	"strings"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"golang.org/x/text/cases"

	"github.com/jhoicas/Almacen-api/internal/domain"
	"github.com/jhoicas/Almacen-api/internal/domain/entity"
	"github.com/jhoicas/Almacen-api/internal/domain/repository"
)

type productRepo struct {
	s *Store
}

func (r *productRepo) Create(ctx context.Context, p *entity.Product) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, other := range r.s.products {
		if other.Code == p.Code {
			return domain.ErrDuplicate
		}
	}
	if p.ID == "" {
		p.ID = uuid.New().String()
	}
	now := r.s.now()
	p.CreatedAt, p.UpdatedAt = now, now
	r.s.products[p.ID] = *p
	return nil
}

// GetByID retorna (nil, nil) si no existe.
func (r *productRepo) GetByID(ctx context.Context, id string) (*entity.Product, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	p, ok := r.s.products[id]
	if !ok {
		return nil, nil
	}
	return r.s.withNames(p), nil
}

func (r *productRepo) GetByCode(ctx context.Context, code string) (*entity.Product, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	for _, p := range r.s.products {
		if p.Code == code {
			return r.s.withNames(p), nil
		}
	}
	return nil, nil
}

// GetForUpdate en memoria el bloqueo lo da Store.Run.
func (r *productRepo) GetForUpdate(ctx context.Context, id string) (*entity.Product, error) {
	return r.GetByID(ctx, id)
}

func (r *productRepo) CodeExists(ctx context.Context, code string) (bool, error) {
	p, err := r.GetByCode(ctx, code)
	return p != nil, err
}

// Update no toca Quantity ni Code.
func (r *productRepo) Update(ctx context.Context, p *entity.Product) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	cur, ok := r.s.products[p.ID]
	if !ok {
		return domain.ErrProductNotFound
	}
	cur.Name = p.Name
	cur.Description = p.Description
	cur.CategoryID = p.CategoryID
	cur.UnitID = p.UnitID
	cur.Price = p.Price
	cur.UpdatedAt = r.s.now()
	r.s.products[p.ID] = cur
	p.UpdatedAt = cur.UpdatedAt
	return nil
}

func (r *productRepo) UpdateQuantity(ctx context.Context, productID string, quantity decimal.Decimal) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	cur, ok := r.s.products[productID]
	if !ok {
		return domain.ErrProductNotFound
	}
	cur.Quantity = quantity
	cur.UpdatedAt = r.s.now()
	r.s.products[productID] = cur
	return nil
}

func (r *productRepo) SoftDelete(ctx context.Context, id string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	cur, ok := r.s.products[id]
	if !ok || cur.IsDeleted {
		return domain.ErrProductNotFound
	}
	cur.IsDeleted = true
	cur.UpdatedAt = r.s.now()
	r.s.products[id] = cur
	return nil
}

func (r *productRepo) List(ctx context.Context, f repository.ProductFilter) ([]*entity.Product, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	fold := cases.Fold()
	search := fold.String(strings.TrimSpace(f.Search))
	out := make([]*entity.Product, 0, len(r.s.products))
	for _, stored := range r.s.products {
		if stored.IsDeleted && !f.IncludeDeleted {
			continue
		}
		if f.CategoryID != "" && stored.CategoryID != f.CategoryID {
			continue
		}
		p := r.s.withNames(stored)
		if search != "" &&
			!strings.Contains(fold.String(p.Code), search) &&
			!strings.Contains(fold.String(p.Name), search) &&
			!strings.Contains(fold.String(p.CategoryName), search) {
			continue
		}
		out = append(out, p)
	}

	sort.SliceStable(out, func(i, j int) bool { return lessProduct(out[i], out[j], f.OrderBy) })

	if f.Offset > 0 {
		if f.Offset >= len(out) {
			return []*entity.Product{}, nil
		}
		out = out[f.Offset:]
	}
	if f.Limit > 0 && f.Limit < len(out) {
		out = out[:f.Limit]
	}
	return out, nil
}

// lessProduct mismo orden que la consulta SQL: campo pedido, luego nombre e id.
// Sin categoría va al final.
func lessProduct(a, b *entity.Product, orderBy string) bool {
	switch orderBy {
	case repository.OrderByCategory:
		if a.CategoryName != b.CategoryName {
			if a.CategoryName == "" || b.CategoryName == "" {
				return b.CategoryName == ""
			}
			return a.CategoryName < b.CategoryName
		}
	case repository.OrderByPrice:
		if !a.Price.Equal(b.Price) {
			return a.Price.LessThan(b.Price)
		}
	case repository.OrderByQuantity:
		if !a.Quantity.Equal(b.Quantity) {
			return a.Quantity.LessThan(b.Quantity)
		}
	case repository.OrderByName:
	default:
		if !a.CreatedAt.Equal(b.CreatedAt) {
			return a.CreatedAt.Before(b.CreatedAt)
		}
		return a.ID < b.ID
	}
	if a.Name != b.Name {
		return a.Name < b.Name
	}
	return a.ID < b.ID
}

// withNames resuelve CategoryName y UnitName como lo haría el join. Requiere mu tomado.
func (s *Store) withNames(p entity.Product) *entity.Product {
	p.CategoryName, p.UnitName = "", ""
	if c, ok := s.categories[p.CategoryID]; ok {
		p.CategoryName = c.Name
	}
	if u, ok := s.units[p.UnitID]; ok {
		p.UnitName = u.Name
	}
	return &p
}
