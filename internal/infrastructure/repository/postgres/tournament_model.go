package postgres

import (
	"database/sql"
	"time"
)

type tournamentTableModel struct {
	TournamentID    int64          `db:"tournament_id"`
	Slug            string         `db:"slug"`
	Name            string         `db:"name"`
	Country         sql.NullString `db:"country"`
	LogoURL         sql.NullString `db:"logo_url"`
	CurrentSeasonID sql.NullInt64  `db:"current_season_id"`
	Seasons         []byte         `db:"seasons"`
	UpdatedAt       time.Time      `db:"updated_at"`
}

type tournamentInsertModel struct {
	TournamentID    int64          `db:"tournament_id"`
	Slug            string         `db:"slug"`
	Name            string         `db:"name"`
	Country         sql.NullString `db:"country"`
	LogoURL         sql.NullString `db:"logo_url"`
	CurrentSeasonID sql.NullInt64  `db:"current_season_id"`
	Seasons         string         `db:"seasons"`
	UpdatedAt       time.Time      `db:"updated_at"`
}

var tournamentColumns = []string{
	"tournament_id", "slug", "name", "country", "logo_url", "current_season_id", "seasons", "updated_at",
}

type standingsTableModel struct {
	TournamentID int64     `db:"tournament_id"`
	SeasonID     int64     `db:"season_id"`
	Standings    []byte    `db:"standings"`
	UpdatedAt    time.Time `db:"updated_at"`
}

type standingsInsertModel struct {
	TournamentID int64     `db:"tournament_id"`
	SeasonID     int64     `db:"season_id"`
	Standings    string    `db:"standings"`
	UpdatedAt    time.Time `db:"updated_at"`
}
