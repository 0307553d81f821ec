package match

import (
	"fmt"
	"time"
)

const (
	StatusScheduled  = "scheduled"
	StatusInProgress = "inprogress"
	StatusFinished   = "finished"
)

// Match is a cached fixture row keyed by the upstream event id. Slug names
// the watch page and carries the event id so rematches get their own page.
type Match struct {
	Slug          string
	EventID       *int64
	HomeTeam      string
	AwayTeam      string
	League        string
	TournamentID  *int64
	Round         *int
	KickoffAt     time.Time
	Status        string
	HomeScore     *int
	AwayScore     *int
	ScorebatEmbed string
	UpdatedAt     time.Time
}

func (m Match) Validate() error {
	if m.EventID == nil || *m.EventID <= 0 {
		return fmt.Errorf("match event id is required")
	}
	if m.Slug == "" {
		return fmt.Errorf("match slug is required")
	}
	if m.HomeTeam == "" || m.AwayTeam == "" {
		return fmt.Errorf("match teams are required")
	}
	if m.KickoffAt.IsZero() {
		return fmt.Errorf("match kickoff is required")
	}

	return nil
}

func (m Match) HasScore() bool {
	return m.HomeScore != nil && m.AwayScore != nil
}

func (m Match) HasVideo() bool {
	return m.ScorebatEmbed != ""
}
