package sofascore

import (
	"fmt"
	"net/url"
	"strings"

	crerr "github.com/cockroachdb/errors"
)

// Variant selects the upstream wire shape.
type Variant string

const (
	// VariantLegacy talks to the self-hosted proxy: query-parameter paths and
	// a {success, data} envelope.
	VariantLegacy Variant = "legacy"
	// VariantStandard talks to the vendor API directly with RESTful paths.
	VariantStandard Variant = "standard"
)

func ParseVariant(raw string) (Variant, error) {
	switch Variant(strings.ToLower(strings.TrimSpace(raw))) {
	case VariantLegacy:
		return VariantLegacy, nil
	case VariantStandard:
		return VariantStandard, nil
	default:
		return "", fmt.Errorf("unknown sofascore variant %q", raw)
	}
}

// Operation is a logical upstream call, independent of wire shape.
type Operation int

const (
	OpScheduledEvents Operation = iota + 1
	OpEvent
	OpLineups
	OpIncidents
	OpStatistics
	OpH2H
	OpMomentumGraph
	OpShotmap
	OpAveragePositions
	OpTeam
	OpTeamPlayers
	OpTeamTransfers
	OpPlayer
	OpPlayerTransfers
	OpPlayerStatistics
	OpTournamentDetails
	OpTournamentSeasons
	OpStandings
	OpSearch
	OpCategories
	OpTeamImage
)

var operationNames = map[Operation]string{
	OpScheduledEvents:   "scheduled_events",
	OpEvent:             "event",
	OpLineups:           "lineups",
	OpIncidents:         "incidents",
	OpStatistics:        "statistics",
	OpH2H:               "h2h",
	OpMomentumGraph:     "momentum_graph",
	OpShotmap:           "shotmap",
	OpAveragePositions:  "average_positions",
	OpTeam:              "team",
	OpTeamPlayers:       "team_players",
	OpTeamTransfers:     "team_transfers",
	OpPlayer:            "player",
	OpPlayerTransfers:   "player_transfers",
	OpPlayerStatistics:  "player_statistics",
	OpTournamentDetails: "tournament_details",
	OpTournamentSeasons: "tournament_seasons",
	OpStandings:         "standings",
	OpSearch:            "search",
	OpCategories:        "categories",
	OpTeamImage:         "team_image",
}

func (o Operation) String() string {
	if name, ok := operationNames[o]; ok {
		return name
	}
	return fmt.Sprintf("operation(%d)", int(o))
}

// Operations lists every operation a resolver must handle.
func Operations() []Operation {
	out := make([]Operation, 0, len(operationNames))
	for op := OpScheduledEvents; op <= OpTeamImage; op++ {
		out = append(out, op)
	}
	return out
}

// Params carries the identifiers an operation may need. Only the fields an
// operation uses are validated.
type Params struct {
	ID           string
	TournamentID string
	SeasonID     string
	Date         string
	Sport        string
	Query        string
}

// QueryParam keeps query values in the order the upstream documents them.
type QueryParam struct {
	Key   string
	Value string
}

// Endpoint is a concrete upstream path plus query.
type Endpoint struct {
	Path  string
	Query []QueryParam
}

// String renders path and query, URL-encoding every value.
func (e Endpoint) String() string {
	if len(e.Query) == 0 {
		return e.Path
	}
	var b strings.Builder
	b.WriteString(e.Path)
	for i, param := range e.Query {
		if i == 0 {
			b.WriteByte('?')
		} else {
			b.WriteByte('&')
		}
		b.WriteString(url.QueryEscape(param.Key))
		b.WriteByte('=')
		b.WriteString(url.QueryEscape(param.Value))
	}
	return b.String()
}

// EndpointResolver maps a logical operation to the wire shape of one variant.
type EndpointResolver interface {
	Resolve(op Operation, p Params) (Endpoint, error)
}

func NewResolver(v Variant) EndpointResolver {
	if v == VariantStandard {
		return StandardResolver{}
	}
	return LegacyResolver{}
}

// LegacyResolver targets the self-hosted proxy.
type LegacyResolver struct{}

func (LegacyResolver) Resolve(op Operation, p Params) (Endpoint, error) {
	if err := validateParams(op, p); err != nil {
		return Endpoint{}, err
	}

	switch op {
	case OpScheduledEvents:
		return query("/football/events/scheduled", "date", p.Date), nil
	case OpEvent:
		return query("/football/event/details", "id", p.ID), nil
	case OpLineups:
		return query("/football/event/lineups", "id", p.ID), nil
	case OpIncidents:
		return query("/football/event/incidents", "id", p.ID), nil
	case OpTeam:
		return query("/football/team/details", "team_id", p.ID), nil
	case OpPlayer:
		return query("/football/player/data", "id", p.ID), nil
	case OpPlayerTransfers:
		return query("/football/player/transfers", "id", p.ID), nil
	case OpPlayerStatistics:
		return query("/football/player/statistics",
			"id", p.ID,
			"season_id", p.SeasonID,
			"tournament_id", p.TournamentID,
		), nil
	case OpTournamentDetails:
		return query("/football/tournament/details", "tournament_id", p.TournamentID), nil
	case OpTournamentSeasons:
		return query("/football/tournament/seasons", "tournament_id", p.TournamentID), nil
	case OpStandings:
		return query("/football/tournament/standings",
			"tournament_id", p.TournamentID,
			"season_id", p.SeasonID,
		), nil
	case OpCategories:
		return Endpoint{Path: "/football/categories"}, nil
	case OpTeamImage:
		return query("/images/team/download/full", "team_id", p.ID), nil
	default:
		return sharedEndpoint(op, p)
	}
}

// StandardResolver targets the vendor API directly.
type StandardResolver struct{}

func (StandardResolver) Resolve(op Operation, p Params) (Endpoint, error) {
	if err := validateParams(op, p); err != nil {
		return Endpoint{}, err
	}

	switch op {
	case OpScheduledEvents:
		return Endpoint{Path: "/sport/" + segment(sportOrDefault(p.Sport)) + "/scheduled-events/" + segment(p.Date)}, nil
	case OpEvent:
		return Endpoint{Path: "/event/" + segment(p.ID)}, nil
	case OpLineups:
		return Endpoint{Path: "/event/" + segment(p.ID) + "/lineups"}, nil
	case OpIncidents:
		return Endpoint{Path: "/event/" + segment(p.ID) + "/incidents"}, nil
	case OpTeam:
		return Endpoint{Path: "/team/" + segment(p.ID)}, nil
	case OpPlayer:
		return Endpoint{Path: "/player/" + segment(p.ID)}, nil
	case OpPlayerTransfers:
		return Endpoint{Path: "/player/" + segment(p.ID) + "/transfer-history"}, nil
	case OpPlayerStatistics:
		return Endpoint{Path: fmt.Sprintf("/player/%s/unique-tournament/%s/season/%s/statistics/overall",
			segment(p.ID), segment(p.TournamentID), segment(p.SeasonID))}, nil
	case OpTournamentDetails:
		return Endpoint{Path: "/unique-tournament/" + segment(p.TournamentID)}, nil
	case OpTournamentSeasons:
		return Endpoint{Path: "/unique-tournament/" + segment(p.TournamentID) + "/seasons"}, nil
	case OpStandings:
		return Endpoint{Path: fmt.Sprintf("/unique-tournament/%s/season/%s/standings/total",
			segment(p.TournamentID), segment(p.SeasonID))}, nil
	case OpCategories:
		return Endpoint{Path: "/sport/football/categories"}, nil
	case OpTeamImage:
		return Endpoint{Path: "/team/" + segment(p.ID) + "/image"}, nil
	default:
		return sharedEndpoint(op, p)
	}
}

// sharedEndpoint covers operations whose shape is the same on both variants.
func sharedEndpoint(op Operation, p Params) (Endpoint, error) {
	switch op {
	case OpStatistics:
		return Endpoint{Path: "/event/" + segment(p.ID) + "/statistics"}, nil
	case OpH2H:
		return Endpoint{Path: "/event/" + segment(p.ID) + "/h2h"}, nil
	case OpMomentumGraph:
		return Endpoint{Path: "/event/" + segment(p.ID) + "/graph"}, nil
	case OpShotmap:
		return Endpoint{Path: "/event/" + segment(p.ID) + "/shotmap"}, nil
	case OpAveragePositions:
		return Endpoint{Path: "/event/" + segment(p.ID) + "/average-positions"}, nil
	case OpTeamPlayers:
		return Endpoint{Path: "/team/" + segment(p.ID) + "/players"}, nil
	case OpTeamTransfers:
		return Endpoint{Path: "/team/" + segment(p.ID) + "/transfers"}, nil
	case OpSearch:
		return query("/search/all", "q", p.Query), nil
	default:
		return Endpoint{}, crerr.Wrapf(ErrInvalidParams, "unsupported operation %s", op)
	}
}

func validateParams(op Operation, p Params) error {
	missing := func(field string) error {
		return crerr.Wrapf(ErrInvalidParams, "%s requires %s", op, field)
	}

	switch op {
	case OpScheduledEvents:
		if strings.TrimSpace(p.Date) == "" {
			return missing("date")
		}
	case OpPlayerStatistics:
		if strings.TrimSpace(p.ID) == "" {
			return missing("id")
		}
		if strings.TrimSpace(p.TournamentID) == "" {
			return missing("tournament id")
		}
		if strings.TrimSpace(p.SeasonID) == "" {
			return missing("season id")
		}
	case OpTournamentDetails, OpTournamentSeasons:
		if strings.TrimSpace(p.TournamentID) == "" {
			return missing("tournament id")
		}
	case OpStandings:
		if strings.TrimSpace(p.TournamentID) == "" {
			return missing("tournament id")
		}
		if strings.TrimSpace(p.SeasonID) == "" {
			return missing("season id")
		}
	case OpSearch:
		if strings.TrimSpace(p.Query) == "" {
			return missing("query")
		}
	case OpCategories:
	default:
		if strings.TrimSpace(p.ID) == "" {
			return missing("id")
		}
	}
	return nil
}

func query(path string, kv ...string) Endpoint {
	out := Endpoint{Path: path, Query: make([]QueryParam, 0, len(kv)/2)}
	for i := 0; i+1 < len(kv); i += 2 {
		out.Query = append(out.Query, QueryParam{Key: kv[i], Value: strings.TrimSpace(kv[i+1])})
	}
	return out
}

func segment(v string) string {
	return url.PathEscape(strings.TrimSpace(v))
}

func sportOrDefault(sport string) string {
	if strings.TrimSpace(sport) == "" {
		return "football"
	}
	return sport
}
