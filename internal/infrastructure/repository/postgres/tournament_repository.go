package postgres

import (
	"context"
	"fmt"

	sonic "github.com/bytedance/sonic"
	"github.com/jmoiron/sqlx"
	"github.com/riskibarqy/matchday/internal/domain/tournament"
	qb "github.com/riskibarqy/matchday/internal/platform/querybuilder"
)

type TournamentRepository struct {
	db *sqlx.DB
}

func NewTournamentRepository(db *sqlx.DB) *TournamentRepository {
	return &TournamentRepository{db: db}
}

func (r *TournamentRepository) GetBySlug(ctx context.Context, slug string) (tournament.Tournament, bool, error) {
	query, args, err := qb.Select(tournamentColumns...).From("tournaments").
		Where(qb.Eq("slug", slug)).
		Limit(1).
		ToSQL()
	if err != nil {
		return tournament.Tournament{}, false, fmt.Errorf("build get tournament by slug query: %w", err)
	}

	var row tournamentTableModel
	if err := r.db.GetContext(ctx, &row, query, args...); err != nil {
		if isNotFound(err) {
			return tournament.Tournament{}, false, nil
		}
		return tournament.Tournament{}, false, fmt.Errorf("get tournament by slug=%s: %w", slug, err)
	}

	var seasons []tournament.Season
	if len(row.Seasons) > 0 {
		if err := sonic.Unmarshal(row.Seasons, &seasons); err != nil {
			return tournament.Tournament{}, false, fmt.Errorf("decode seasons of tournament=%d: %w", row.TournamentID, err)
		}
	}

	return tournament.Tournament{
		ID:              row.TournamentID,
		Slug:            row.Slug,
		Name:            row.Name,
		Country:         row.Country.String,
		LogoURL:         row.LogoURL.String,
		CurrentSeasonID: nullInt64ToPtr(row.CurrentSeasonID),
		Seasons:         seasons,
		UpdatedAt:       row.UpdatedAt,
	}, true, nil
}

func (r *TournamentRepository) Upsert(ctx context.Context, item tournament.Tournament) error {
	if err := item.Validate(); err != nil {
		return err
	}

	seasons := item.Seasons
	if seasons == nil {
		seasons = []tournament.Season{}
	}
	rawSeasons, err := sonic.MarshalString(seasons)
	if err != nil {
		return fmt.Errorf("encode seasons of tournament=%d: %w", item.ID, err)
	}

	query, args, err := qb.InsertModel("tournaments", tournamentInsertModel{
		TournamentID:    item.ID,
		Slug:            item.Slug,
		Name:            item.Name,
		Country:         nullString(item.Country),
		LogoURL:         nullString(item.LogoURL),
		CurrentSeasonID: nullInt64(item.CurrentSeasonID),
		Seasons:         rawSeasons,
		UpdatedAt:       timeOrNow(item.UpdatedAt),
	}, `ON CONFLICT (tournament_id) DO UPDATE SET
    slug = EXCLUDED.slug,
    name = EXCLUDED.name,
    country = EXCLUDED.country,
    logo_url = EXCLUDED.logo_url,
    current_season_id = EXCLUDED.current_season_id,
    seasons = EXCLUDED.seasons,
    updated_at = EXCLUDED.updated_at`)
	if err != nil {
		return fmt.Errorf("build upsert tournament query: %w", err)
	}
	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("upsert tournament id=%d: %w", item.ID, err)
	}
	return nil
}

func (r *TournamentRepository) GetStandings(ctx context.Context, tournamentID, seasonID int64) (tournament.Standings, bool, error) {
	query, args, err := qb.Select("tournament_id", "season_id", "standings", "updated_at").
		From("tournament_standings").
		Where(
			qb.Eq("tournament_id", tournamentID),
			qb.Eq("season_id", seasonID),
		).
		Limit(1).
		ToSQL()
	if err != nil {
		return tournament.Standings{}, false, fmt.Errorf("build get standings query: %w", err)
	}

	var row standingsTableModel
	if err := r.db.GetContext(ctx, &row, query, args...); err != nil {
		if isNotFound(err) {
			return tournament.Standings{}, false, nil
		}
		return tournament.Standings{}, false, fmt.Errorf("get standings tournament=%d season=%d: %w", tournamentID, seasonID, err)
	}

	var tables []tournament.Table
	if err := sonic.Unmarshal(row.Standings, &tables); err != nil {
		return tournament.Standings{}, false, fmt.Errorf("decode standings tournament=%d season=%d: %w", tournamentID, seasonID, err)
	}

	return tournament.Standings{
		TournamentID: row.TournamentID,
		SeasonID:     row.SeasonID,
		Tables:       tables,
		UpdatedAt:    row.UpdatedAt,
	}, true, nil
}

func (r *TournamentRepository) UpsertStandings(ctx context.Context, item tournament.Standings) error {
	if item.TournamentID <= 0 || item.SeasonID <= 0 {
		return fmt.Errorf("standings require tournament and season ids")
	}

	tables := item.Tables
	if tables == nil {
		tables = []tournament.Table{}
	}
	raw, err := sonic.MarshalString(tables)
	if err != nil {
		return fmt.Errorf("encode standings tournament=%d: %w", item.TournamentID, err)
	}

	query, args, err := qb.InsertModel("tournament_standings", standingsInsertModel{
		TournamentID: item.TournamentID,
		SeasonID:     item.SeasonID,
		Standings:    raw,
		UpdatedAt:    timeOrNow(item.UpdatedAt),
	}, `ON CONFLICT (tournament_id, season_id) DO UPDATE SET
    standings = EXCLUDED.standings,
    updated_at = EXCLUDED.updated_at`)
	if err != nil {
		return fmt.Errorf("build upsert standings query: %w", err)
	}
	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("upsert standings tournament=%d season=%d: %w", item.TournamentID, item.SeasonID, err)
	}
	return nil
}
