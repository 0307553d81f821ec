package postgres

import (
	"context"
	"fmt"
	"strings"

	"github.com/jmoiron/sqlx"
	"github.com/riskibarqy/matchday/internal/domain/match"
	qb "github.com/riskibarqy/matchday/internal/platform/querybuilder"
)

type MatchRepository struct {
	db *sqlx.DB
}

func NewMatchRepository(db *sqlx.DB) *MatchRepository {
	return &MatchRepository{db: db}
}

func (r *MatchRepository) ListRecent(ctx context.Context, limit int) ([]match.Match, error) {
	query, args, err := qb.Select(matchColumns...).From("matches").
		OrderBy("kickoff_at DESC").
		Limit(limit).
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build list recent matches query: %w", err)
	}
	return r.list(ctx, query, args)
}

func (r *MatchRepository) ListByLeague(ctx context.Context, leagueName string, limit int) ([]match.Match, error) {
	query, args, err := qb.Select(matchColumns...).From("matches").
		Where(qb.Expr("league ILIKE ?", "%"+escapeLike(strings.TrimSpace(leagueName))+"%")).
		OrderBy("kickoff_at ASC").
		Limit(limit).
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build list matches by league query: %w", err)
	}
	return r.list(ctx, query, args)
}

func (r *MatchRepository) ListWithVideo(ctx context.Context) ([]match.Match, error) {
	query, args, err := qb.Select(matchColumns...).From("matches").
		Where(qb.Expr("scorebat_embed IS NOT NULL AND scorebat_embed <> ''")).
		OrderBy("kickoff_at DESC").
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build list matches with video query: %w", err)
	}
	return r.list(ctx, query, args)
}

func (r *MatchRepository) list(ctx context.Context, query string, args []any) ([]match.Match, error) {
	var rows []matchTableModel
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("select matches: %w", err)
	}

	out := make([]match.Match, 0, len(rows))
	for _, row := range rows {
		out = append(out, matchFromRow(row))
	}
	return out, nil
}

func (r *MatchRepository) Upsert(ctx context.Context, item match.Match) error {
	if err := item.Validate(); err != nil {
		return err
	}

	query, args, err := qb.InsertModel("matches", matchToRow(item), `ON CONFLICT (event_id) DO UPDATE SET
    slug = EXCLUDED.slug,
    home_team = EXCLUDED.home_team,
    away_team = EXCLUDED.away_team,
    league = EXCLUDED.league,
    tournament_id = COALESCE(EXCLUDED.tournament_id, matches.tournament_id),
    round = COALESCE(EXCLUDED.round, matches.round),
    kickoff_at = EXCLUDED.kickoff_at,
    status = EXCLUDED.status,
    home_score = EXCLUDED.home_score,
    away_score = EXCLUDED.away_score,
    scorebat_embed = COALESCE(EXCLUDED.scorebat_embed, matches.scorebat_embed),
    updated_at = EXCLUDED.updated_at`)
	if err != nil {
		return fmt.Errorf("build upsert match query: %w", err)
	}
	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("upsert match event_id=%d: %w", *item.EventID, err)
	}
	return nil
}

func escapeLike(value string) string {
	replacer := strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)
	return replacer.Replace(value)
}
