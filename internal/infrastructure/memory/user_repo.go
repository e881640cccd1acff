package memory

import (
	"context"
	"sort"

	"github.com/google/uuid"

	"github.com/jhoicas/Almacen-api/internal/domain"
	"github.com/jhoicas/Almacen-api/internal/domain/entity"
)

type userRepo struct {
	s *Store
}

func (r *userRepo) Create(ctx context.Context, u *entity.User) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, other := range r.s.users {
		if other.Username == u.Username {
			return domain.ErrUsernameAlreadyExists
		}
	}
	if u.ID == "" {
		u.ID = uuid.New().String()
	}
	now := r.s.now()
	u.CreatedAt, u.UpdatedAt = now, now
	r.s.users[u.ID] = *u
	return nil
}

func (r *userRepo) GetByID(ctx context.Context, id string) (*entity.User, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	u, ok := r.s.users[id]
	if !ok {
		return nil, nil
	}
	return &u, nil
}

func (r *userRepo) GetByUsername(ctx context.Context, username string) (*entity.User, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	for _, u := range r.s.users {
		if u.Username == username {
			return &u, nil
		}
	}
	return nil, nil
}

func (r *userRepo) Update(ctx context.Context, u *entity.User) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.users[u.ID]; !ok {
		return domain.ErrUserNotFound
	}
	u.UpdatedAt = r.s.now()
	r.s.users[u.ID] = *u
	return nil
}

func (r *userRepo) ListByRole(ctx context.Context, role string) ([]*entity.User, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	out := make([]*entity.User, 0)
	for _, u := range r.s.users {
		if role == "" || u.Role == role {
			u := u
			out = append(out, &u)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Username < out[j].Username })
	return out, nil
}

type reportCodeRepo struct {
	s *Store
}

func (r *reportCodeRepo) Create(ctx context.Context, c *entity.ReportCode) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	c.ID = uuid.New().String()
	c.CreatedAt = r.s.now()
	r.s.reportCodes = append(r.s.reportCodes, *c)
	return nil
}

func (r *reportCodeRepo) Latest(ctx context.Context) (*entity.ReportCode, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	if len(r.s.reportCodes) == 0 {
		return nil, nil
	}
	c := r.s.reportCodes[len(r.s.reportCodes)-1]
	return &c, nil
}
