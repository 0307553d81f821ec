package sofascore

import (
	sonic "github.com/bytedance/sonic"
)

type Sport struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
	Slug string `json:"slug"`
}

type Country struct {
	Alpha2 string `json:"alpha2"`
	Name   string `json:"name"`
}

type Category struct {
	ID    int64  `json:"id"`
	Name  string `json:"name"`
	Slug  string `json:"slug"`
	Flag  string `json:"flag"`
	Sport *Sport `json:"sport,omitempty"`
}

type TeamRef struct {
	ID        int64    `json:"id"`
	Name      string   `json:"name"`
	Slug      string   `json:"slug"`
	ShortName string   `json:"shortName"`
	NameCode  string   `json:"nameCode"`
	Country   *Country `json:"country,omitempty"`
}

type Status struct {
	Code        int    `json:"code"`
	Description string `json:"description"`
	Type        string `json:"type"`
}

type EventTime struct {
	CurrentPeriodStartTimestamp int64 `json:"currentPeriodStartTimestamp"`
}

type Score struct {
	Current    *int `json:"current,omitempty"`
	Display    *int `json:"display,omitempty"`
	Period1    *int `json:"period1,omitempty"`
	Period2    *int `json:"period2,omitempty"`
	Normaltime *int `json:"normaltime,omitempty"`
}

type UniqueTournament struct {
	ID       int64     `json:"id"`
	Name     string    `json:"name"`
	Slug     string    `json:"slug"`
	Category *Category `json:"category,omitempty"`
}

type Tournament struct {
	ID               int64             `json:"id"`
	Name             string            `json:"name"`
	Slug             string            `json:"slug"`
	Category         *Category         `json:"category,omitempty"`
	UniqueTournament *UniqueTournament `json:"uniqueTournament,omitempty"`
}

type RoundInfo struct {
	Round int `json:"round"`
}

type City struct {
	Name string `json:"name"`
}

type Coordinates struct {
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
}

type Venue struct {
	ID               int64        `json:"id"`
	Name             string       `json:"name"`
	Slug             string       `json:"slug"`
	Capacity         *int         `json:"capacity,omitempty"`
	Surface          string       `json:"surface"`
	City             *City        `json:"city,omitempty"`
	Country          *Country     `json:"country,omitempty"`
	VenueCoordinates *Coordinates `json:"venueCoordinates,omitempty"`
}

type Event struct {
	ID             int64       `json:"id"`
	Slug           string      `json:"slug"`
	CustomID       string      `json:"customId"`
	StartTimestamp int64       `json:"startTimestamp"`
	Status         Status      `json:"status"`
	Time           *EventTime  `json:"time,omitempty"`
	HomeTeam       TeamRef     `json:"homeTeam"`
	AwayTeam       TeamRef     `json:"awayTeam"`
	HomeScore      *Score      `json:"homeScore,omitempty"`
	AwayScore      *Score      `json:"awayScore,omitempty"`
	Tournament     *Tournament `json:"tournament,omitempty"`
	RoundInfo      *RoundInfo  `json:"roundInfo,omitempty"`
	Venue          *Venue      `json:"venue,omitempty"`
}

type ScheduledEvents struct {
	Events []Event `json:"events"`
}

type EventDetail struct {
	Event Event `json:"event"`
}

type LineupPlayer struct {
	Player      Player `json:"player"`
	ShirtNumber int    `json:"shirtNumber"`
	Position    string `json:"position"`
	Substitute  bool   `json:"substitute"`
}

type TeamLineup struct {
	Formation string         `json:"formation"`
	Players   []LineupPlayer `json:"players"`
}

type Lineups struct {
	Confirmed bool       `json:"confirmed"`
	Home      TeamLineup `json:"home"`
	Away      TeamLineup `json:"away"`
}

type Incident struct {
	ID            int64   `json:"id"`
	IncidentType  string  `json:"incidentType"`
	IncidentClass string  `json:"incidentClass"`
	Time          int     `json:"time"`
	AddedTime     *int    `json:"addedTime,omitempty"`
	IsHome        bool    `json:"isHome"`
	Text          string  `json:"text"`
	HomeScore     *int    `json:"homeScore,omitempty"`
	AwayScore     *int    `json:"awayScore,omitempty"`
	Player        *Player `json:"player,omitempty"`
}

type Incidents struct {
	Incidents []Incident `json:"incidents"`
}

type StatisticsItem struct {
	Name string `json:"name"`
	Home string `json:"home"`
	Away string `json:"away"`
	Key  string `json:"key"`
}

type StatisticsGroup struct {
	GroupName       string           `json:"groupName"`
	StatisticsItems []StatisticsItem `json:"statisticsItems"`
}

type PeriodStatistics struct {
	Period string            `json:"period"`
	Groups []StatisticsGroup `json:"groups"`
}

type Statistics struct {
	Statistics []PeriodStatistics `json:"statistics"`
}

type Duel struct {
	HomeWins int `json:"homeWins"`
	AwayWins int `json:"awayWins"`
	Draws    int `json:"draws"`
}

type H2H struct {
	TeamDuel    *Duel `json:"teamDuel,omitempty"`
	ManagerDuel *Duel `json:"managerDuel,omitempty"`
}

type GraphPoint struct {
	Minute float64 `json:"minute"`
	Value  int     `json:"value"`
}

type MomentumGraph struct {
	GraphPoints []GraphPoint `json:"graphPoints"`
	PeriodTime  int          `json:"periodTime"`
	PeriodCount int          `json:"periodCount"`
}

type PlayerCoordinates struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

type Shot struct {
	Player            Player             `json:"player"`
	IsHome            bool               `json:"isHome"`
	ShotType          string             `json:"shotType"`
	Situation         string             `json:"situation"`
	XG                *float64           `json:"xg,omitempty"`
	Time              int                `json:"time"`
	PlayerCoordinates *PlayerCoordinates `json:"playerCoordinates,omitempty"`
}

type Shotmap struct {
	Shotmap []Shot `json:"shotmap"`
}

type AveragePosition struct {
	Player      Player  `json:"player"`
	AverageX    float64 `json:"averageX"`
	AverageY    float64 `json:"averageY"`
	PointsCount int     `json:"pointsCount"`
}

type AveragePositions struct {
	Home []AveragePosition `json:"home"`
	Away []AveragePosition `json:"away"`
}

type Manager struct {
	ID                   int64    `json:"id"`
	Name                 string   `json:"name"`
	Slug                 string   `json:"slug"`
	ShortName            string   `json:"shortName"`
	Country              *Country `json:"country,omitempty"`
	DateOfBirthTimestamp *int64   `json:"dateOfBirthTimestamp,omitempty"`
}

type TeamColors struct {
	Primary   string `json:"primary"`
	Secondary string `json:"secondary"`
}

type Team struct {
	ID                      int64       `json:"id"`
	Name                    string      `json:"name"`
	Slug                    string      `json:"slug"`
	ShortName               string      `json:"shortName"`
	NameCode                string      `json:"nameCode"`
	Country                 *Country    `json:"country,omitempty"`
	FoundationDateTimestamp *int64      `json:"foundationDateTimestamp,omitempty"`
	Venue                   *Venue      `json:"venue,omitempty"`
	Manager                 *Manager    `json:"manager,omitempty"`
	TeamColors              *TeamColors `json:"teamColors,omitempty"`
}

// TeamDetail wraps a team. Some upstream builds return the team object
// without the "team" key, so decoding falls back to the whole body.
type TeamDetail struct {
	Team Team `json:"team"`
}

func (d *TeamDetail) UnmarshalJSON(data []byte) error {
	var wrapped struct {
		Team *Team `json:"team"`
	}
	if err := sonic.Unmarshal(data, &wrapped); err != nil {
		return err
	}
	if wrapped.Team != nil {
		d.Team = *wrapped.Team
		return nil
	}
	return sonic.Unmarshal(data, &d.Team)
}

type TeamPlayer struct {
	Player Player `json:"player"`
}

type TeamPlayers struct {
	Players []TeamPlayer `json:"players"`
}

type Transfer struct {
	ID                     int64    `json:"id"`
	Player                 *Player  `json:"player,omitempty"`
	TransferDateTimestamp  int64    `json:"transferDateTimestamp"`
	TransferFrom           *TeamRef `json:"transferFrom,omitempty"`
	TransferTo             *TeamRef `json:"transferTo,omitempty"`
	TransferFeeDescription string   `json:"transferFeeDescription"`
	Type                   int      `json:"type"`
}

type TeamTransfers struct {
	TransfersIn  []Transfer `json:"transfersIn"`
	TransfersOut []Transfer `json:"transfersOut"`
}

type Player struct {
	ID                   int64    `json:"id"`
	Name                 string   `json:"name"`
	Slug                 string   `json:"slug"`
	ShortName            string   `json:"shortName"`
	Position             string   `json:"position"`
	Height               *int     `json:"height,omitempty"`
	DateOfBirthTimestamp *int64   `json:"dateOfBirthTimestamp,omitempty"`
	Country              *Country `json:"country,omitempty"`
	Team                 *TeamRef `json:"team,omitempty"`
	ProposedMarketValue  *int64   `json:"proposedMarketValue,omitempty"`
	PreferredFoot        string   `json:"preferredFoot"`
	ShirtNumber          *int     `json:"shirtNumber,omitempty"`
}

// PlayerDetail wraps a player with the same key fallback as TeamDetail.
type PlayerDetail struct {
	Player Player `json:"player"`
}

func (d *PlayerDetail) UnmarshalJSON(data []byte) error {
	var wrapped struct {
		Player *Player `json:"player"`
	}
	if err := sonic.Unmarshal(data, &wrapped); err != nil {
		return err
	}
	if wrapped.Player != nil {
		d.Player = *wrapped.Player
		return nil
	}
	return sonic.Unmarshal(data, &d.Player)
}

// PlayerTransfers accepts both the "transferHistory" and "transfers" keys.
type PlayerTransfers struct {
	TransferHistory []Transfer `json:"transferHistory"`
	Transfers       []Transfer `json:"transfers"`
}

func (t PlayerTransfers) All() []Transfer {
	if len(t.TransferHistory) > 0 {
		return t.TransferHistory
	}
	return t.Transfers
}

type PlayerStatistics struct {
	Statistics map[string]float64 `json:"statistics"`
	Team       *TeamRef           `json:"team,omitempty"`
}

type TournamentDetails struct {
	UniqueTournament UniqueTournament `json:"uniqueTournament"`
}

type Season struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
	Year string `json:"year"`
}

type TournamentSeasons struct {
	Seasons []Season `json:"seasons"`
}

type StandingRow struct {
	Position      int     `json:"position"`
	Team          TeamRef `json:"team"`
	Points        int     `json:"points"`
	Matches       int     `json:"matches"`
	Wins          int     `json:"wins"`
	Draws         int     `json:"draws"`
	Losses        int     `json:"losses"`
	ScoresFor     int     `json:"scoresFor"`
	ScoresAgainst int     `json:"scoresAgainst"`
}

type StandingTable struct {
	Type string        `json:"type"`
	Name string        `json:"name"`
	Rows []StandingRow `json:"rows"`
}

type Standings struct {
	Standings []StandingTable `json:"standings"`
}

type SearchEntity struct {
	ID       int64     `json:"id"`
	Name     string    `json:"name"`
	Slug     string    `json:"slug"`
	Score    float64   `json:"score"`
	Sport    *Sport    `json:"sport,omitempty"`
	Category *Category `json:"category,omitempty"`
}

type SearchResult struct {
	Type   string       `json:"type"`
	Score  float64      `json:"score"`
	Entity SearchEntity `json:"entity"`
}

type SearchResults struct {
	Results []SearchResult `json:"results"`
}

type Categories struct {
	Categories []Category `json:"categories"`
}

// LiveScore is the compact live view of one event.
type LiveScore struct {
	HomeScore int    `json:"homeScore"`
	AwayScore int    `json:"awayScore"`
	Status    string `json:"status"`
	Minute    int    `json:"minute"`
	IsRunning bool   `json:"isRunning"`
}

type Image struct {
	Body        []byte
	ContentType string
}
