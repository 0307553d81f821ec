package tournament

import (
	"fmt"
	"time"
)

// Tournament is a unique tournament (league or cup) with its known seasons.
type Tournament struct {
	ID              int64
	Slug            string
	Name            string
	Country         string
	LogoURL         string
	CurrentSeasonID *int64
	Seasons         []Season
	UpdatedAt       time.Time
}

type Season struct {
	ID   int64  `json:"id"`
	Name string `json:"name,omitempty"`
	Year string `json:"year,omitempty"`
}

func (t Tournament) Validate() error {
	if t.ID <= 0 {
		return fmt.Errorf("tournament id is required")
	}
	if t.Slug == "" {
		return fmt.Errorf("tournament slug is required")
	}
	if t.Name == "" {
		return fmt.Errorf("tournament name is required")
	}

	return nil
}

// CurrentSeason picks the running season from a newest-first list. The
// first entry is usually next season's placeholder, so the second one wins
// when present.
func CurrentSeason(seasons []Season) (Season, bool) {
	switch {
	case len(seasons) >= 2 && seasons[1].ID > 0:
		return seasons[1], true
	case len(seasons) >= 1 && seasons[0].ID > 0:
		return seasons[0], true
	default:
		return Season{}, false
	}
}

// Standings is the cached table snapshot of one tournament season. Rows keep
// upstream order.
type Standings struct {
	TournamentID int64
	SeasonID     int64
	Tables       []Table
	UpdatedAt    time.Time
}

type Table struct {
	Type string `json:"type"`
	Name string `json:"name,omitempty"`
	Rows []Row  `json:"rows"`
}

type Row struct {
	Position       int    `json:"position"`
	TeamID         int64  `json:"teamId"`
	TeamName       string `json:"teamName"`
	TeamSlug       string `json:"teamSlug,omitempty"`
	Matches        int    `json:"matches"`
	Wins           int    `json:"wins"`
	Draws          int    `json:"draws"`
	Losses         int    `json:"losses"`
	ScoresFor      int    `json:"scoresFor"`
	ScoresAgainst  int    `json:"scoresAgainst"`
	Points         int    `json:"points"`
	// GoalDifference is signed text such as "+8", "0" or "-3".
	GoalDifference string `json:"goalDifference"`
}
