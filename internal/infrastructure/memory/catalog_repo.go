package memory

import (
	"context"
	"sort"
	"strings"

	"github.com/google/uuid"

	"github.com/jhoicas/Almacen-api/internal/domain"
	"github.com/jhoicas/Almacen-api/internal/domain/entity"
)

type categoryRepo struct {
	s *Store
}

func (r *categoryRepo) Create(ctx context.Context, c *entity.Category) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, other := range r.s.categories {
		if strings.EqualFold(other.Name, c.Name) {
			return domain.ErrDuplicate
		}
	}
	c.ID = uuid.New().String()
	now := r.s.now()
	c.CreatedAt, c.UpdatedAt = now, now
	r.s.categories[c.ID] = *c
	return nil
}

func (r *categoryRepo) GetByID(ctx context.Context, id string) (*entity.Category, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	c, ok := r.s.categories[id]
	if !ok {
		return nil, nil
	}
	return &c, nil
}

func (r *categoryRepo) Update(ctx context.Context, c *entity.Category) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	cur, ok := r.s.categories[c.ID]
	if !ok {
		return domain.ErrNotFound
	}
	for id, other := range r.s.categories {
		if id != c.ID && strings.EqualFold(other.Name, c.Name) {
			return domain.ErrDuplicate
		}
	}
	cur.Name = c.Name
	cur.UpdatedAt = r.s.now()
	r.s.categories[c.ID] = cur
	*c = cur
	return nil
}

func (r *categoryRepo) List(ctx context.Context) ([]*entity.Category, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	out := make([]*entity.Category, 0, len(r.s.categories))
	for _, c := range r.s.categories {
		c := c
		out = append(out, &c)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

// Delete deja sin categoría a los productos que la referencian.
func (r *categoryRepo) Delete(ctx context.Context, id string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.categories[id]; !ok {
		return domain.ErrNotFound
	}
	delete(r.s.categories, id)
	for pid, p := range r.s.products {
		if p.CategoryID == id {
			p.CategoryID = ""
			r.s.products[pid] = p
		}
	}
	return nil
}

type unitRepo struct {
	s *Store
}

func (r *unitRepo) Create(ctx context.Context, u *entity.Unit) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, other := range r.s.units {
		if strings.EqualFold(other.Name, u.Name) {
			return domain.ErrDuplicate
		}
	}
	u.ID = uuid.New().String()
	now := r.s.now()
	u.CreatedAt, u.UpdatedAt = now, now
	r.s.units[u.ID] = *u
	return nil
}

func (r *unitRepo) GetByID(ctx context.Context, id string) (*entity.Unit, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	u, ok := r.s.units[id]
	if !ok {
		return nil, nil
	}
	return &u, nil
}

func (r *unitRepo) Update(ctx context.Context, u *entity.Unit) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	cur, ok := r.s.units[u.ID]
	if !ok {
		return domain.ErrNotFound
	}
	for id, other := range r.s.units {
		if id != u.ID && strings.EqualFold(other.Name, u.Name) {
			return domain.ErrDuplicate
		}
	}
	cur.Name = u.Name
	cur.UpdatedAt = r.s.now()
	r.s.units[u.ID] = cur
	*u = cur
	return nil
}

func (r *unitRepo) List(ctx context.Context) ([]*entity.Unit, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	out := make([]*entity.Unit, 0, len(r.s.units))
	for _, u := range r.s.units {
		u := u
		out = append(out, &u)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

func (r *unitRepo) Delete(ctx context.Context, id string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.units[id]; !ok {
		return domain.ErrNotFound
	}
	delete(r.s.units, id)
	for pid, p := range r.s.products {
		if p.UnitID == id {
			p.UnitID = ""
			r.s.products[pid] = p
		}
	}
	return nil
}
