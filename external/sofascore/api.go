package sofascore

import (
	"context"
	"strconv"
	"time"
)

// ScheduledEvents lists football events on the given UTC day.
func (c *Client) ScheduledEvents(ctx context.Context, date time.Time) (*ScheduledEvents, error) {
	return decode[ScheduledEvents](ctx, c, OpScheduledEvents, Params{
		Date:  date.UTC().Format("2006-01-02"),
		Sport: "football",
	})
}

func (c *Client) Event(ctx context.Context, eventID string) (*EventDetail, error) {
	return decode[EventDetail](ctx, c, OpEvent, Params{ID: eventID})
}

func (c *Client) Lineups(ctx context.Context, eventID string) (*Lineups, error) {
	return decode[Lineups](ctx, c, OpLineups, Params{ID: eventID})
}

func (c *Client) Incidents(ctx context.Context, eventID string) (*Incidents, error) {
	return decode[Incidents](ctx, c, OpIncidents, Params{ID: eventID})
}

func (c *Client) Statistics(ctx context.Context, eventID string) (*Statistics, error) {
	return decode[Statistics](ctx, c, OpStatistics, Params{ID: eventID})
}

func (c *Client) H2H(ctx context.Context, eventID string) (*H2H, error) {
	return decode[H2H](ctx, c, OpH2H, Params{ID: eventID})
}

func (c *Client) MomentumGraph(ctx context.Context, eventID string) (*MomentumGraph, error) {
	return decode[MomentumGraph](ctx, c, OpMomentumGraph, Params{ID: eventID})
}

func (c *Client) Shotmap(ctx context.Context, eventID string) (*Shotmap, error) {
	return decode[Shotmap](ctx, c, OpShotmap, Params{ID: eventID})
}

func (c *Client) AveragePositions(ctx context.Context, eventID string) (*AveragePositions, error) {
	return decode[AveragePositions](ctx, c, OpAveragePositions, Params{ID: eventID})
}

func (c *Client) Team(ctx context.Context, teamID string) (*TeamDetail, error) {
	return decode[TeamDetail](ctx, c, OpTeam, Params{ID: teamID})
}

func (c *Client) TeamPlayers(ctx context.Context, teamID string) (*TeamPlayers, error) {
	return decode[TeamPlayers](ctx, c, OpTeamPlayers, Params{ID: teamID})
}

func (c *Client) TeamTransfers(ctx context.Context, teamID string) (*TeamTransfers, error) {
	return decode[TeamTransfers](ctx, c, OpTeamTransfers, Params{ID: teamID})
}

func (c *Client) Player(ctx context.Context, playerID string) (*PlayerDetail, error) {
	return decode[PlayerDetail](ctx, c, OpPlayer, Params{ID: playerID})
}

func (c *Client) PlayerTransfers(ctx context.Context, playerID string) (*PlayerTransfers, error) {
	return decode[PlayerTransfers](ctx, c, OpPlayerTransfers, Params{ID: playerID})
}

func (c *Client) PlayerStatistics(ctx context.Context, playerID, tournamentID, seasonID string) (*PlayerStatistics, error) {
	return decode[PlayerStatistics](ctx, c, OpPlayerStatistics, Params{
		ID:           playerID,
		TournamentID: tournamentID,
		SeasonID:     seasonID,
	})
}

func (c *Client) TournamentDetails(ctx context.Context, tournamentID int64) (*TournamentDetails, error) {
	return decode[TournamentDetails](ctx, c, OpTournamentDetails, Params{TournamentID: formatID(tournamentID)})
}

func (c *Client) TournamentSeasons(ctx context.Context, tournamentID int64) (*TournamentSeasons, error) {
	return decode[TournamentSeasons](ctx, c, OpTournamentSeasons, Params{TournamentID: formatID(tournamentID)})
}

func (c *Client) Standings(ctx context.Context, tournamentID, seasonID int64) (*Standings, error) {
	return decode[Standings](ctx, c, OpStandings, Params{
		TournamentID: formatID(tournamentID),
		SeasonID:     formatID(seasonID),
	})
}

func (c *Client) Search(ctx context.Context, query string) (*SearchResults, error) {
	return decode[SearchResults](ctx, c, OpSearch, Params{Query: query})
}

func (c *Client) Categories(ctx context.Context) (*Categories, error) {
	return decode[Categories](ctx, c, OpCategories, Params{})
}

func formatID(id int64) string {
	if id <= 0 {
		return ""
	}
	return strconv.FormatInt(id, 10)
}
