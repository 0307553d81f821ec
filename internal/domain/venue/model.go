package venue

import (
	"fmt"
	"time"
)

// Venue is a stadium profile keyed by the upstream venue id.
type Venue struct {
	ID        int64
	Slug      string
	Name      string
	City      string
	Country   string
	Capacity  *int
	Surface   string
	Address   string
	Latitude  *float64
	Longitude *float64
	ImageURL  string
	UpdatedAt time.Time
}

func (v Venue) Validate() error {
	if v.ID <= 0 {
		return fmt.Errorf("venue id is required")
	}
	if v.Slug == "" {
		return fmt.Errorf("venue slug is required")
	}
	if v.Name == "" {
		return fmt.Errorf("venue name is required")
	}

	return nil
}
