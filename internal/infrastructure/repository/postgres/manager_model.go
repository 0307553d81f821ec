package postgres

import (
	"database/sql"
	"time"

	"github.com/riskibarqy/matchday/internal/domain/manager"
)

type managerTableModel struct {
	ManagerID     int64          `db:"manager_id"`
	Slug          string         `db:"slug"`
	Name          string         `db:"name"`
	ShortName     sql.NullString `db:"short_name"`
	Nationality   sql.NullString `db:"nationality"`
	TeamID        sql.NullInt64  `db:"team_id"`
	TeamName      sql.NullString `db:"team_name"`
	DateOfBirthTS sql.NullInt64  `db:"date_of_birth_ts"`
	ImageURL      sql.NullString `db:"image_url"`
	UpdatedAt     time.Time      `db:"updated_at"`
}

var managerColumns = []string{
	"manager_id", "slug", "name", "short_name", "nationality", "team_id",
	"team_name", "date_of_birth_ts", "image_url", "updated_at",
}

func managerFromRow(row managerTableModel) manager.Manager {
	return manager.Manager{
		ID:            row.ManagerID,
		Slug:          row.Slug,
		Name:          row.Name,
		ShortName:     row.ShortName.String,
		Nationality:   row.Nationality.String,
		TeamID:        nullInt64ToPtr(row.TeamID),
		TeamName:      row.TeamName.String,
		DateOfBirthTS: nullInt64ToPtr(row.DateOfBirthTS),
		ImageURL:      row.ImageURL.String,
		UpdatedAt:     row.UpdatedAt,
	}
}
