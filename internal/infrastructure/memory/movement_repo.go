package memory

import (
	"context"
	"sort"

	"github.com/google/uuid"

	"github.com/jhoicas/Almacen-api/internal/domain/entity"
	"github.com/jhoicas/Almacen-api/internal/domain/repository"
)

type movementRepo struct {
	s *Store
}

func (r *movementRepo) Create(ctx context.Context, m *entity.StockMovement) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	r.s.seq++
	m.ID = uuid.New().String()
	m.Seq = r.s.seq
	m.CreatedAt = r.s.now()
	r.s.movements = append(r.s.movements, *m)
	return nil
}

func (r *movementRepo) GetByID(ctx context.Context, id string) (*entity.StockMovement, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	for _, m := range r.s.movements {
		if m.ID == id {
			return &m, nil
		}
	}
	return nil, nil
}

func (r *movementRepo) List(ctx context.Context, f repository.MovementFilter) ([]*entity.StockMovement, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	var ids map[string]struct{}
	if len(f.ProductIDs) > 0 {
		ids = make(map[string]struct{}, len(f.ProductIDs))
		for _, id := range f.ProductIDs {
			ids[id] = struct{}{}
		}
	}
	out := make([]*entity.StockMovement, 0)
	for _, m := range r.s.movements {
		if ids != nil {
			if _, ok := ids[m.ProductID]; !ok {
				continue
			}
		}
		if f.Type != "" && m.Type != f.Type {
			continue
		}
		if f.From != nil && m.CreatedAt.Before(*f.From) {
			continue
		}
		if f.To != nil && m.CreatedAt.After(*f.To) {
			continue
		}
		m := m
		out = append(out, &m)
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].Before(out[j]) })
	return out, nil
}

func (r *movementRepo) LastByProduct(ctx context.Context, productID string) (*entity.StockMovement, error) {
	list, err := r.List(ctx, repository.MovementFilter{ProductIDs: []string{productID}})
	if err != nil || len(list) == 0 {
		return nil, err
	}
	return list[len(list)-1], nil
}
