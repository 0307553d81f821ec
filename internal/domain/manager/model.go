package manager

import (
	"fmt"
	"time"
)

// Manager is a head coach profile keyed by the upstream manager id.
type Manager struct {
	ID          int64
	Slug        string
	Name        string
	ShortName   string
	Nationality string
	TeamID      *int64
	TeamName    string
	// DateOfBirthTS is a unix timestamp in seconds.
	DateOfBirthTS *int64
	ImageURL      string
	UpdatedAt     time.Time
}

func (m Manager) Validate() error {
	if m.ID <= 0 {
		return fmt.Errorf("manager id is required")
	}
	if m.Slug == "" {
		return fmt.Errorf("manager slug is required")
	}
	if m.Name == "" {
		return fmt.Errorf("manager name is required")
	}

	return nil
}
