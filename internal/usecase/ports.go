package usecase

import (
	"context"
	"time"

	"github.com/riskibarqy/matchday/external/indexnow"
	"github.com/riskibarqy/matchday/external/sofascore"
)

// The interfaces below are the slices of the upstream adapter each service
// reads from. *sofascore.Client satisfies all of them.

type ScheduleSource interface {
	Fetch(ctx context.Context, op sofascore.Operation, p sofascore.Params) ([]byte, error)
	ScheduledEvents(ctx context.Context, date time.Time) (*sofascore.ScheduledEvents, error)
}

type MatchCenterSource interface {
	Event(ctx context.Context, eventID string) (*sofascore.EventDetail, error)
	Lineups(ctx context.Context, eventID string) (*sofascore.Lineups, error)
	Incidents(ctx context.Context, eventID string) (*sofascore.Incidents, error)
	Statistics(ctx context.Context, eventID string) (*sofascore.Statistics, error)
	H2H(ctx context.Context, eventID string) (*sofascore.H2H, error)
	MomentumGraph(ctx context.Context, eventID string) (*sofascore.MomentumGraph, error)
	Shotmap(ctx context.Context, eventID string) (*sofascore.Shotmap, error)
	AveragePositions(ctx context.Context, eventID string) (*sofascore.AveragePositions, error)
	FetchLiveScore(ctx context.Context, eventID string) (*sofascore.LiveScore, error)
}

type ImageSource interface {
	TeamImage(ctx context.Context, teamID string) (*sofascore.Image, error)
}

type LeagueSource interface {
	Categories(ctx context.Context) (*sofascore.Categories, error)
	TournamentSeasons(ctx context.Context, tournamentID int64) (*sofascore.TournamentSeasons, error)
	Standings(ctx context.Context, tournamentID, seasonID int64) (*sofascore.Standings, error)
	ResolveTournamentID(ctx context.Context, slug string) (int64, error)
}

type PlayerSource interface {
	Player(ctx context.Context, playerID string) (*sofascore.PlayerDetail, error)
	PlayerTransfers(ctx context.Context, playerID string) (*sofascore.PlayerTransfers, error)
}

type SeedSource interface {
	TournamentDetails(ctx context.Context, tournamentID int64) (*sofascore.TournamentDetails, error)
	TournamentSeasons(ctx context.Context, tournamentID int64) (*sofascore.TournamentSeasons, error)
	Standings(ctx context.Context, tournamentID, seasonID int64) (*sofascore.Standings, error)
	Team(ctx context.Context, teamID string) (*sofascore.TeamDetail, error)
	ScheduledEvents(ctx context.Context, date time.Time) (*sofascore.ScheduledEvents, error)
}

type URLNotifier interface {
	Notify(ctx context.Context, urls []string) ([]indexnow.Result, error)
}
