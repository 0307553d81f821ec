package postgres

import (
	"database/sql"
	"time"

	"github.com/riskibarqy/matchday/internal/domain/match"
)

type matchTableModel struct {
	Slug          string         `db:"slug"`
	EventID       sql.NullInt64  `db:"event_id"`
	HomeTeam      string         `db:"home_team"`
	AwayTeam      string         `db:"away_team"`
	League        sql.NullString `db:"league"`
	TournamentID  sql.NullInt64  `db:"tournament_id"`
	Round         sql.NullInt32  `db:"round"`
	KickoffAt     time.Time      `db:"kickoff_at"`
	Status        string         `db:"status"`
	HomeScore     sql.NullInt32  `db:"home_score"`
	AwayScore     sql.NullInt32  `db:"away_score"`
	ScorebatEmbed sql.NullString `db:"scorebat_embed"`
	UpdatedAt     time.Time      `db:"updated_at"`
}

var matchColumns = []string{
	"slug", "event_id", "home_team", "away_team", "league", "tournament_id", "round",
	"kickoff_at", "status", "home_score", "away_score", "scorebat_embed", "updated_at",
}

func matchFromRow(row matchTableModel) match.Match {
	return match.Match{
		Slug:          row.Slug,
		EventID:       nullInt64ToPtr(row.EventID),
		HomeTeam:      row.HomeTeam,
		AwayTeam:      row.AwayTeam,
		League:        row.League.String,
		TournamentID:  nullInt64ToPtr(row.TournamentID),
		Round:         nullInt32ToPtr(row.Round),
		KickoffAt:     row.KickoffAt.UTC(),
		Status:        row.Status,
		HomeScore:     nullInt32ToPtr(row.HomeScore),
		AwayScore:     nullInt32ToPtr(row.AwayScore),
		ScorebatEmbed: row.ScorebatEmbed.String,
		UpdatedAt:     row.UpdatedAt,
	}
}

func matchToRow(item match.Match) matchTableModel {
	status := item.Status
	if status == "" {
		status = match.StatusScheduled
	}
	return matchTableModel{
		Slug:          item.Slug,
		EventID:       nullInt64(item.EventID),
		HomeTeam:      item.HomeTeam,
		AwayTeam:      item.AwayTeam,
		League:        nullString(item.League),
		TournamentID:  nullInt64(item.TournamentID),
		Round:         nullInt32(item.Round),
		KickoffAt:     item.KickoffAt.UTC(),
		Status:        status,
		HomeScore:     nullInt32(item.HomeScore),
		AwayScore:     nullInt32(item.AwayScore),
		ScorebatEmbed: nullString(item.ScorebatEmbed),
		UpdatedAt:     timeOrNow(item.UpdatedAt),
	}
}
