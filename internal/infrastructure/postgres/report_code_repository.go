package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/Almacen-api/internal/domain/entity"
	"github.com/jhoicas/Almacen-api/internal/domain/repository"
)

var _ repository.ReportCodeRepository = (*ReportCodeRepo)(nil)

// ReportCodeRepo historial de contraseñas de reporte.
type ReportCodeRepo struct {
	q Querier
}

func NewReportCodeRepository(q Querier) *ReportCodeRepo {
	return &ReportCodeRepo{q: q}
}

func (r *ReportCodeRepo) Create(ctx context.Context, c *entity.ReportCode) error {
	c.ID = uuid.New().String()
	err := r.q.QueryRow(ctx,
		`INSERT INTO report_codes (id, password_hash, created_by) VALUES ($1, $2, $3) RETURNING created_at`,
		c.ID, c.PasswordHash, nullable(c.CreatedBy),
	).Scan(&c.CreatedAt)
	if err != nil {
		return fmt.Errorf("insert report code: %w", err)
	}
	return nil
}

// Latest la contraseña vigente o nil si nunca se definió.
func (r *ReportCodeRepo) Latest(ctx context.Context) (*entity.ReportCode, error) {
	var c entity.ReportCode
	err := r.q.QueryRow(ctx, `
		SELECT id, password_hash, COALESCE(created_by::text, ''), created_at
		FROM report_codes ORDER BY created_at DESC, id DESC LIMIT 1`,
	).Scan(&c.ID, &c.PasswordHash, &c.CreatedBy, &c.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("latest report code: %w", err)
	}
	return &c, nil
}
