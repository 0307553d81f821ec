package postgres

import (
	"database/sql"
	"time"

	"github.com/riskibarqy/matchday/internal/domain/venue"
)

type venueTableModel struct {
	VenueID   int64           `db:"venue_id"`
	Slug      string          `db:"slug"`
	Name      string          `db:"name"`
	City      sql.NullString  `db:"city"`
	Country   sql.NullString  `db:"country"`
	Capacity  sql.NullInt32   `db:"capacity"`
	Surface   sql.NullString  `db:"surface"`
	Address   sql.NullString  `db:"address"`
	Latitude  sql.NullFloat64 `db:"latitude"`
	Longitude sql.NullFloat64 `db:"longitude"`
	ImageURL  sql.NullString  `db:"image_url"`
	UpdatedAt time.Time       `db:"updated_at"`
}

var venueColumns = []string{
	"venue_id", "slug", "name", "city", "country", "capacity", "surface",
	"address", "latitude", "longitude", "image_url", "updated_at",
}

func venueFromRow(row venueTableModel) venue.Venue {
	return venue.Venue{
		ID:        row.VenueID,
		Slug:      row.Slug,
		Name:      row.Name,
		City:      row.City.String,
		Country:   row.Country.String,
		Capacity:  nullInt32ToPtr(row.Capacity),
		Surface:   row.Surface.String,
		Address:   row.Address.String,
		Latitude:  nullFloat64ToPtr(row.Latitude),
		Longitude: nullFloat64ToPtr(row.Longitude),
		ImageURL:  row.ImageURL.String,
		UpdatedAt: row.UpdatedAt,
	}
}

func venueToRow(item venue.Venue) venueTableModel {
	return venueTableModel{
		VenueID:   item.ID,
		Slug:      item.Slug,
		Name:      item.Name,
		City:      nullString(item.City),
		Country:   nullString(item.Country),
		Capacity:  nullInt32(item.Capacity),
		Surface:   nullString(item.Surface),
		Address:   nullString(item.Address),
		Latitude:  nullFloat64(item.Latitude),
		Longitude: nullFloat64(item.Longitude),
		ImageURL:  nullString(item.ImageURL),
		UpdatedAt: timeOrNow(item.UpdatedAt),
	}
}
