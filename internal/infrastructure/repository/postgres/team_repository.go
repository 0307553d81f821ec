package postgres

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"
	"github.com/riskibarqy/matchday/internal/domain/team"
	qb "github.com/riskibarqy/matchday/internal/platform/querybuilder"
)

type TeamRepository struct {
	db *sqlx.DB
}

func NewTeamRepository(db *sqlx.DB) *TeamRepository {
	return &TeamRepository{db: db}
}

func (r *TeamRepository) GetByID(ctx context.Context, teamID int64) (team.Team, bool, error) {
	query, args, err := qb.Select(teamColumns...).From("teams").
		Where(qb.Eq("team_id", teamID)).
		Limit(1).
		ToSQL()
	if err != nil {
		return team.Team{}, false, fmt.Errorf("build get team by id query: %w", err)
	}

	var row teamTableModel
	if err := r.db.GetContext(ctx, &row, query, args...); err != nil {
		if isNotFound(err) {
			return team.Team{}, false, nil
		}
		return team.Team{}, false, fmt.Errorf("get team by id=%d: %w", teamID, err)
	}

	return team.Team{
		ID:             row.TeamID,
		Slug:           row.Slug,
		Name:           row.Name,
		ShortName:      row.ShortName.String,
		Country:        row.Country.String,
		FoundedYear:    nullInt32ToPtr(row.FoundedYear),
		VenueID:        nullInt64ToPtr(row.VenueID),
		ManagerID:      nullInt64ToPtr(row.ManagerID),
		PrimaryColor:   row.PrimaryColor.String,
		SecondaryColor: row.SecondaryColor.String,
		ImageURL:       row.ImageURL.String,
		UpdatedAt:      row.UpdatedAt,
	}, true, nil
}

func (r *TeamRepository) Upsert(ctx context.Context, item team.Team) error {
	if err := item.Validate(); err != nil {
		return err
	}

	query, args, err := qb.InsertModel("teams", teamTableModel{
		TeamID:         item.ID,
		Slug:           item.Slug,
		Name:           item.Name,
		ShortName:      nullString(item.ShortName),
		Country:        nullString(item.Country),
		FoundedYear:    nullInt32(item.FoundedYear),
		VenueID:        nullInt64(item.VenueID),
		ManagerID:      nullInt64(item.ManagerID),
		PrimaryColor:   nullString(item.PrimaryColor),
		SecondaryColor: nullString(item.SecondaryColor),
		ImageURL:       nullString(item.ImageURL),
		UpdatedAt:      timeOrNow(item.UpdatedAt),
	}, `ON CONFLICT (team_id) DO UPDATE SET
    slug = EXCLUDED.slug,
    name = EXCLUDED.name,
    short_name = EXCLUDED.short_name,
    country = EXCLUDED.country,
    founded_year = EXCLUDED.founded_year,
    venue_id = EXCLUDED.venue_id,
    manager_id = EXCLUDED.manager_id,
    primary_color = EXCLUDED.primary_color,
    secondary_color = EXCLUDED.secondary_color,
    image_url = EXCLUDED.image_url,
    updated_at = EXCLUDED.updated_at`)
	if err != nil {
		return fmt.Errorf("build upsert team query: %w", err)
	}
	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("upsert team id=%d: %w", item.ID, err)
	}
	return nil
}
