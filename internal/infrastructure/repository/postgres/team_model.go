package postgres

import (
	"database/sql"
	"time"
)

type teamTableModel struct {
	TeamID         int64          `db:"team_id"`
	Slug           string         `db:"slug"`
	Name           string         `db:"name"`
	ShortName      sql.NullString `db:"short_name"`
	Country        sql.NullString `db:"country"`
	FoundedYear    sql.NullInt32  `db:"founded_year"`
	VenueID        sql.NullInt64  `db:"venue_id"`
	ManagerID      sql.NullInt64  `db:"manager_id"`
	PrimaryColor   sql.NullString `db:"primary_color"`
	SecondaryColor sql.NullString `db:"secondary_color"`
	ImageURL       sql.NullString `db:"image_url"`
	UpdatedAt      time.Time      `db:"updated_at"`
}

var teamColumns = []string{
	"team_id", "slug", "name", "short_name", "country", "founded_year",
	"venue_id", "manager_id", "primary_color", "secondary_color", "image_url", "updated_at",
}
