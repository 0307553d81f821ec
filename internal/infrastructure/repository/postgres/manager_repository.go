package postgres

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"
	"github.com/riskibarqy/matchday/internal/domain/manager"
	qb "github.com/riskibarqy/matchday/internal/platform/querybuilder"
)

type ManagerRepository struct {
	db *sqlx.DB
}

func NewManagerRepository(db *sqlx.DB) *ManagerRepository {
	return &ManagerRepository{db: db}
}

func (r *ManagerRepository) ListByName(ctx context.Context, limit int) ([]manager.Manager, error) {
	query, args, err := qb.Select(managerColumns...).From("managers").
		OrderBy("name").
		Limit(limit).
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build list managers by name query: %w", err)
	}
	return r.list(ctx, query, args)
}

func (r *ManagerRepository) ListAll(ctx context.Context) ([]manager.Manager, error) {
	query, args, err := qb.Select(managerColumns...).From("managers").
		OrderBy("slug").
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build list managers query: %w", err)
	}
	return r.list(ctx, query, args)
}

func (r *ManagerRepository) list(ctx context.Context, query string, args []any) ([]manager.Manager, error) {
	var rows []managerTableModel
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("select managers: %w", err)
	}

	out := make([]manager.Manager, 0, len(rows))
	for _, row := range rows {
		out = append(out, managerFromRow(row))
	}
	return out, nil
}

func (r *ManagerRepository) GetBySlug(ctx context.Context, slug string) (manager.Manager, bool, error) {
	query, args, err := qb.Select(managerColumns...).From("managers").
		Where(qb.Eq("slug", slug)).
		OrderBy("manager_id").
		Limit(1).
		ToSQL()
	if err != nil {
		return manager.Manager{}, false, fmt.Errorf("build get manager by slug query: %w", err)
	}

	var row managerTableModel
	if err := r.db.GetContext(ctx, &row, query, args...); err != nil {
		if isNotFound(err) {
			return manager.Manager{}, false, nil
		}
		return manager.Manager{}, false, fmt.Errorf("get manager by slug=%s: %w", slug, err)
	}
	return managerFromRow(row), true, nil
}

func (r *ManagerRepository) Upsert(ctx context.Context, item manager.Manager) error {
	if err := item.Validate(); err != nil {
		return err
	}

	query, args, err := qb.InsertModel("managers", managerTableModel{
		ManagerID:     item.ID,
		Slug:          item.Slug,
		Name:          item.Name,
		ShortName:     nullString(item.ShortName),
		Nationality:   nullString(item.Nationality),
		TeamID:        nullInt64(item.TeamID),
		TeamName:      nullString(item.TeamName),
		DateOfBirthTS: nullInt64(item.DateOfBirthTS),
		ImageURL:      nullString(item.ImageURL),
		UpdatedAt:     timeOrNow(item.UpdatedAt),
	}, `ON CONFLICT (manager_id) DO UPDATE SET
    name = EXCLUDED.name,
    short_name = EXCLUDED.short_name,
    nationality = EXCLUDED.nationality,
    team_id = EXCLUDED.team_id,
    team_name = EXCLUDED.team_name,
    date_of_birth_ts = EXCLUDED.date_of_birth_ts,
    image_url = COALESCE(EXCLUDED.image_url, managers.image_url),
    updated_at = EXCLUDED.updated_at`)
	if err != nil {
		return fmt.Errorf("build upsert manager query: %w", err)
	}
	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("upsert manager id=%d: %w", item.ID, err)
	}
	return nil
}
