package usecase

import (
	"context"
	"strconv"
	"sync"
	"time"

	crerr "github.com/cockroachdb/errors"
	"github.com/riskibarqy/matchday/external/indexnow"
	"github.com/riskibarqy/matchday/external/sofascore"
)

type seasonKey struct {
	tournamentID int64
	seasonID     int64
}

// fakeSource serves canned upstream payloads keyed by id. A missing entry
// fails the way the adapter does for an upstream 404.
type fakeSource struct {
	mu    sync.Mutex
	calls []string

	raw        []byte
	rawErr     error
	categories *sofascore.Categories
	details    map[int64]*sofascore.TournamentDetails
	seasons    map[int64]*sofascore.TournamentSeasons
	standings  map[seasonKey]*sofascore.Standings
	teams      map[string]*sofascore.TeamDetail
	players    map[string]*sofascore.PlayerDetail
	transfers  map[string]*sofascore.PlayerTransfers
	events     map[string]*sofascore.EventDetail
	scheduled  *sofascore.ScheduledEvents
	resolved   map[string]int64
	images     map[string]*sofascore.Image
	failAll    error
}

func newFakeSource() *fakeSource {
	return &fakeSource{
		details:   make(map[int64]*sofascore.TournamentDetails),
		seasons:   make(map[int64]*sofascore.TournamentSeasons),
		standings: make(map[seasonKey]*sofascore.Standings),
		teams:     make(map[string]*sofascore.TeamDetail),
		players:   make(map[string]*sofascore.PlayerDetail),
		transfers: make(map[string]*sofascore.PlayerTransfers),
		events:    make(map[string]*sofascore.EventDetail),
		resolved:  make(map[string]int64),
		images:    make(map[string]*sofascore.Image),
	}
}

func (f *fakeSource) record(call string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls = append(f.calls, call)
	return f.failAll
}

func (f *fakeSource) callCount(prefix string) int {
	f.mu.Lock()
	defer f.mu.Unlock()
	n := 0
	for _, call := range f.calls {
		if len(call) >= len(prefix) && call[:len(prefix)] == prefix {
			n++
		}
	}
	return n
}

func lookup[K comparable, V any](f *fakeSource, call string, items map[K]*V, key K) (*V, error) {
	if err := f.record(call); err != nil {
		return nil, err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	item, ok := items[key]
	if !ok {
		return nil, crerr.Wrapf(sofascore.ErrNotFound, "fake %s", call)
	}
	return item, nil
}

func (f *fakeSource) Fetch(_ context.Context, op sofascore.Operation, p sofascore.Params) ([]byte, error) {
	if err := f.record("fetch:" + op.String() + ":" + p.Date); err != nil {
		return nil, err
	}
	return f.raw, f.rawErr
}

func (f *fakeSource) ScheduledEvents(_ context.Context, date time.Time) (*sofascore.ScheduledEvents, error) {
	if err := f.record("scheduled:" + date.Format(time.DateOnly)); err != nil {
		return nil, err
	}
	if f.scheduled == nil {
		return nil, crerr.Wrap(sofascore.ErrNotFound, "fake scheduled events")
	}
	return f.scheduled, nil
}

func (f *fakeSource) Event(_ context.Context, eventID string) (*sofascore.EventDetail, error) {
	return lookup(f, "event:"+eventID, f.events, eventID)
}

func (f *fakeSource) Lineups(_ context.Context, eventID string) (*sofascore.Lineups, error) {
	if err := f.record("lineups:" + eventID); err != nil {
		return nil, err
	}
	return &sofascore.Lineups{Confirmed: true}, nil
}

func (f *fakeSource) Incidents(_ context.Context, eventID string) (*sofascore.Incidents, error) {
	if err := f.record("incidents:" + eventID); err != nil {
		return nil, err
	}
	return &sofascore.Incidents{}, nil
}

func (f *fakeSource) Statistics(_ context.Context, eventID string) (*sofascore.Statistics, error) {
	_ = f.record("statistics:" + eventID)
	return nil, crerr.Wrap(sofascore.ErrNotFound, "fake statistics")
}

func (f *fakeSource) H2H(_ context.Context, eventID string) (*sofascore.H2H, error) {
	if err := f.record("h2h:" + eventID); err != nil {
		return nil, err
	}
	return &sofascore.H2H{TeamDuel: &sofascore.Duel{HomeWins: 3, AwayWins: 1, Draws: 2}}, nil
}

func (f *fakeSource) MomentumGraph(_ context.Context, eventID string) (*sofascore.MomentumGraph, error) {
	if err := f.record("momentum:" + eventID); err != nil {
		return nil, err
	}
	return &sofascore.MomentumGraph{GraphPoints: []sofascore.GraphPoint{{Minute: 1, Value: 10}}}, nil
}

func (f *fakeSource) Shotmap(_ context.Context, eventID string) (*sofascore.Shotmap, error) {
	if err := f.record("shotmap:" + eventID); err != nil {
		return nil, err
	}
	return &sofascore.Shotmap{}, nil
}

func (f *fakeSource) AveragePositions(_ context.Context, eventID string) (*sofascore.AveragePositions, error) {
	if err := f.record("positions:" + eventID); err != nil {
		return nil, err
	}
	return &sofascore.AveragePositions{}, nil
}

func (f *fakeSource) FetchLiveScore(_ context.Context, eventID string) (*sofascore.LiveScore, error) {
	if err := f.record("live:" + eventID); err != nil {
		return nil, err
	}
	return &sofascore.LiveScore{HomeScore: 1, AwayScore: 0, Status: "1st half", Minute: 12, IsRunning: true}, nil
}

func (f *fakeSource) TeamImage(_ context.Context, teamID string) (*sofascore.Image, error) {
	return lookup(f, "image:"+teamID, f.images, teamID)
}

func (f *fakeSource) Categories(_ context.Context) (*sofascore.Categories, error) {
	if err := f.record("categories"); err != nil {
		return nil, err
	}
	if f.categories == nil {
		return nil, crerr.Wrap(sofascore.ErrNotFound, "fake categories")
	}
	return f.categories, nil
}

func (f *fakeSource) TournamentDetails(_ context.Context, tournamentID int64) (*sofascore.TournamentDetails, error) {
	return lookup(f, "details:"+strconv.FormatInt(tournamentID, 10), f.details, tournamentID)
}

func (f *fakeSource) TournamentSeasons(_ context.Context, tournamentID int64) (*sofascore.TournamentSeasons, error) {
	return lookup(f, "seasons:"+strconv.FormatInt(tournamentID, 10), f.seasons, tournamentID)
}

func (f *fakeSource) Standings(_ context.Context, tournamentID, seasonID int64) (*sofascore.Standings, error) {
	call := "standings:" + strconv.FormatInt(tournamentID, 10) + ":" + strconv.FormatInt(seasonID, 10)
	return lookup(f, call, f.standings, seasonKey{tournamentID: tournamentID, seasonID: seasonID})
}

func (f *fakeSource) ResolveTournamentID(_ context.Context, slug string) (int64, error) {
	if err := f.record("resolve:" + slug); err != nil {
		return 0, err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	id, ok := f.resolved[slug]
	if !ok {
		return 0, crerr.Wrap(sofascore.ErrNotFound, "fake resolve")
	}
	return id, nil
}

func (f *fakeSource) Team(_ context.Context, teamID string) (*sofascore.TeamDetail, error) {
	return lookup(f, "team:"+teamID, f.teams, teamID)
}

func (f *fakeSource) Player(_ context.Context, playerID string) (*sofascore.PlayerDetail, error) {
	return lookup(f, "player:"+playerID, f.players, playerID)
}

func (f *fakeSource) PlayerTransfers(_ context.Context, playerID string) (*sofascore.PlayerTransfers, error) {
	return lookup(f, "transfers:"+playerID, f.transfers, playerID)
}

type fakeNotifier struct {
	mu   sync.Mutex
	urls [][]string
	err  error
}

func (n *fakeNotifier) Notify(_ context.Context, urls []string) ([]indexnow.Result, error) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.urls = append(n.urls, urls)
	if n.err != nil {
		return nil, n.err
	}
	return []indexnow.Result{{Endpoint: "https://api.indexnow.org/indexnow", Success: true, Status: 200}}, nil
}

var (
	_ ScheduleSource    = (*fakeSource)(nil)
	_ MatchCenterSource = (*fakeSource)(nil)
	_ ImageSource       = (*fakeSource)(nil)
	_ LeagueSource      = (*fakeSource)(nil)
	_ PlayerSource      = (*fakeSource)(nil)
	_ SeedSource        = (*fakeSource)(nil)
	_ URLNotifier       = (*fakeNotifier)(nil)
)
