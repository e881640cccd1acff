package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/Almacen-api/internal/domain"
	"github.com/jhoicas/Almacen-api/internal/domain/entity"
	"github.com/jhoicas/Almacen-api/internal/domain/repository"
)

var (
	_ repository.CategoryRepository = (*CategoryRepo)(nil)
	_ repository.UnitRepository     = (*UnitRepo)(nil)
)

// catalogTable CRUD común de tablas (id, name, created_at, updated_at).
type catalogTable struct {
	q     Querier
	table string
}

// create devuelve la fila como Category; Unit comparte la misma forma.
func (t catalogTable) create(ctx context.Context, name string) (entity.Category, error) {
	row := entity.Category{ID: uuid.New().String(), Name: name}
	err := t.q.QueryRow(ctx,
		`INSERT INTO `+t.table+` (id, name) VALUES ($1, $2) RETURNING created_at, updated_at`,
		row.ID, row.Name,
	).Scan(&row.CreatedAt, &row.UpdatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return row, domain.ErrDuplicate
		}
		return row, fmt.Errorf("insert %s: %w", t.table, err)
	}
	return row, nil
}

func (t catalogTable) get(ctx context.Context, id string) (*entity.Category, error) {
	var c entity.Category
	err := t.q.QueryRow(ctx,
		`SELECT id, name, created_at, updated_at FROM `+t.table+` WHERE id = $1`, id,
	).Scan(&c.ID, &c.Name, &c.CreatedAt, &c.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) || isInvalidText(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get %s: %w", t.table, err)
	}
	return &c, nil
}

func (t catalogTable) update(ctx context.Context, id, name string) (*entity.Category, error) {
	c := entity.Category{ID: id, Name: name}
	err := t.q.QueryRow(ctx,
		`UPDATE `+t.table+` SET name = $2, updated_at = now() WHERE id = $1 RETURNING created_at, updated_at`,
		id, name,
	).Scan(&c.CreatedAt, &c.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) || isInvalidText(err) {
			return nil, domain.ErrNotFound
		}
		if isUniqueViolation(err) {
			return nil, domain.ErrDuplicate
		}
		return nil, fmt.Errorf("update %s: %w", t.table, err)
	}
	return &c, nil
}

func (t catalogTable) list(ctx context.Context) ([]entity.Category, error) {
	rows, err := t.q.Query(ctx, `SELECT id, name, created_at, updated_at FROM `+t.table+` ORDER BY name`)
	if err != nil {
		return nil, fmt.Errorf("list %s: %w", t.table, err)
	}
	defer rows.Close()
	var out []entity.Category
	for rows.Next() {
		var c entity.Category
		if err := rows.Scan(&c.ID, &c.Name, &c.CreatedAt, &c.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan %s: %w", t.table, err)
		}
		out = append(out, c)
	}
	return out, rows.Err()
}

// delete las FK de products son ON DELETE SET NULL.
func (t catalogTable) delete(ctx context.Context, id string) error {
	cmd, err := t.q.Exec(ctx, `DELETE FROM `+t.table+` WHERE id = $1`, id)
	if err != nil {
		if isInvalidText(err) {
			return domain.ErrNotFound
		}
		return fmt.Errorf("delete %s: %w", t.table, err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// CategoryRepo categorías sobre PostgreSQL.
type CategoryRepo struct {
	t catalogTable
}

func NewCategoryRepository(q Querier) *CategoryRepo {
	return &CategoryRepo{t: catalogTable{q: q, table: "categories"}}
}

func (r *CategoryRepo) Create(ctx context.Context, c *entity.Category) error {
	row, err := r.t.create(ctx, c.Name)
	if err != nil {
		return err
	}
	*c = row
	return nil
}

func (r *CategoryRepo) GetByID(ctx context.Context, id string) (*entity.Category, error) {
	return r.t.get(ctx, id)
}

func (r *CategoryRepo) Update(ctx context.Context, c *entity.Category) error {
	row, err := r.t.update(ctx, c.ID, c.Name)
	if err != nil {
		return err
	}
	*c = *row
	return nil
}

func (r *CategoryRepo) List(ctx context.Context) ([]*entity.Category, error) {
	rows, err := r.t.list(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]*entity.Category, len(rows))
	for i := range rows {
		out[i] = &rows[i]
	}
	return out, nil
}

func (r *CategoryRepo) Delete(ctx context.Context, id string) error {
	return r.t.delete(ctx, id)
}

// UnitRepo unidades de medida sobre PostgreSQL.
type UnitRepo struct {
	t catalogTable
}

func NewUnitRepository(q Querier) *UnitRepo {
	return &UnitRepo{t: catalogTable{q: q, table: "units"}}
}

func (r *UnitRepo) Create(ctx context.Context, u *entity.Unit) error {
	row, err := r.t.create(ctx, u.Name)
	if err != nil {
		return err
	}
	*u = entity.Unit(row)
	return nil
}

func (r *UnitRepo) GetByID(ctx context.Context, id string) (*entity.Unit, error) {
	c, err := r.t.get(ctx, id)
	if err != nil || c == nil {
		return nil, err
	}
	u := entity.Unit(*c)
	return &u, nil
}

func (r *UnitRepo) Update(ctx context.Context, u *entity.Unit) error {
	row, err := r.t.update(ctx, u.ID, u.Name)
	if err != nil {
		return err
	}
	*u = entity.Unit(*row)
	return nil
}

func (r *UnitRepo) List(ctx context.Context) ([]*entity.Unit, error) {
	rows, err := r.t.list(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]*entity.Unit, len(rows))
	for i := range rows {
		u := entity.Unit(rows[i])
		out[i] = &u
	}
	return out, nil
}

func (r *UnitRepo) Delete(ctx context.Context, id string) error {
	return r.t.delete(ctx, id)
}
