package team

import (
	"fmt"
	"time"
)

// Team is a football club mirrored from the upstream provider.
type Team struct {
	ID             int64
	Slug           string
	Name           string
	ShortName      string
	Country        string
	FoundedYear    *int
	VenueID        *int64
	ManagerID      *int64
	PrimaryColor   string
	SecondaryColor string
	ImageURL       string
	UpdatedAt      time.Time
}

func (t Team) Validate() error {
	if t.ID <= 0 {
		return fmt.Errorf("team id is required")
	}
	if t.Slug == "" {
		return fmt.Errorf("team slug is required")
	}
	if t.Name == "" {
		return fmt.Errorf("team name is required")
	}

	return nil
}
