package postgres

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"
	"github.com/riskibarqy/matchday/internal/domain/venue"
	qb "github.com/riskibarqy/matchday/internal/platform/querybuilder"
)

type VenueRepository struct {
	db *sqlx.DB
}

func NewVenueRepository(db *sqlx.DB) *VenueRepository {
	return &VenueRepository{db: db}
}

func (r *VenueRepository) ListByCapacity(ctx context.Context, limit int) ([]venue.Venue, error) {
	query, args, err := qb.Select(venueColumns...).From("venues").
		OrderBy("capacity DESC NULLS LAST", "name").
		Limit(limit).
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build list venues by capacity query: %w", err)
	}
	return r.list(ctx, query, args)
}

func (r *VenueRepository) ListAll(ctx context.Context) ([]venue.Venue, error) {
	query, args, err := qb.Select(venueColumns...).From("venues").
		OrderBy("slug").
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build list venues query: %w", err)
	}
	return r.list(ctx, query, args)
}

func (r *VenueRepository) list(ctx context.Context, query string, args []any) ([]venue.Venue, error) {
	var rows []venueTableModel
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("select venues: %w", err)
	}

	out := make([]venue.Venue, 0, len(rows))
	for _, row := range rows {
		out = append(out, venueFromRow(row))
	}
	return out, nil
}

func (r *VenueRepository) GetBySlug(ctx context.Context, slug string) (venue.Venue, bool, error) {
	query, args, err := qb.Select(venueColumns...).From("venues").
		Where(qb.Eq("slug", slug)).
		OrderBy("venue_id").
		Limit(1).
		ToSQL()
	if err != nil {
		return venue.Venue{}, false, fmt.Errorf("build get venue by slug query: %w", err)
	}

	var row venueTableModel
	if err := r.db.GetContext(ctx, &row, query, args...); err != nil {
		if isNotFound(err) {
			return venue.Venue{}, false, nil
		}
		return venue.Venue{}, false, fmt.Errorf("get venue by slug=%s: %w", slug, err)
	}
	return venueFromRow(row), true, nil
}

func (r *VenueRepository) Upsert(ctx context.Context, item venue.Venue) error {
	if err := item.Validate(); err != nil {
		return err
	}

	query, args, err := qb.InsertModel("venues", venueToRow(item), `ON CONFLICT (venue_id) DO UPDATE SET
    name = EXCLUDED.name,
    city = EXCLUDED.city,
    country = EXCLUDED.country,
    capacity = EXCLUDED.capacity,
    surface = EXCLUDED.surface,
    address = COALESCE(EXCLUDED.address, venues.address),
    latitude = COALESCE(EXCLUDED.latitude, venues.latitude),
    longitude = COALESCE(EXCLUDED.longitude, venues.longitude),
    image_url = COALESCE(EXCLUDED.image_url, venues.image_url),
    updated_at = EXCLUDED.updated_at`)
	if err != nil {
		return fmt.Errorf("build upsert venue query: %w", err)
	}
	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("upsert venue id=%d: %w", item.ID, err)
	}
	return nil
}
