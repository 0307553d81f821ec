package usecase

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/jonboulle/clockwork"
	"github.com/riskibarqy/matchday/external/sofascore"
	"github.com/riskibarqy/matchday/internal/domain/football"
	"github.com/riskibarqy/matchday/internal/platform/logging"
	"github.com/sourcegraph/conc"
)

// EmptyEvents is served whenever the upstream schedule is unavailable.
var EmptyEvents = []byte(`{"events":[]}`)

// MatchCenter bundles everything the match page shows. Any part the
// upstream could not deliver stays nil.
type MatchCenter struct {
	Event            sofascore.Event
	Lineups          *sofascore.Lineups
	Incidents        *sofascore.Incidents
	Statistics       *sofascore.Statistics
	H2H              *sofascore.H2H
	Momentum         *sofascore.MomentumGraph
	Shotmap          *sofascore.Shotmap
	AveragePositions *sofascore.AveragePositions
	Minute           int
	IsLive           bool
	JSONLD           SportsEventLD
}

type MatchService struct {
	schedule ScheduleSource
	center   MatchCenterSource
	clock    clockwork.Clock
	logger   *logging.Logger
}

func NewMatchService(schedule ScheduleSource, center MatchCenterSource, clock clockwork.Clock, logger *logging.Logger) *MatchService {
	if clock == nil {
		clock = clockwork.NewRealClock()
	}
	if logger == nil {
		logger = logging.Default()
	}

	return &MatchService{
		schedule: schedule,
		center:   center,
		clock:    clock,
		logger:   logger,
	}
}

// Fixtures returns the raw upstream schedule for a YYYY-MM-DD date, today
// (UTC) when empty. Upstream absence is not an error.
func (s *MatchService) Fixtures(ctx context.Context, date string) ([]byte, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.MatchService.Fixtures")
	defer span.End()

	date = strings.TrimSpace(date)
	if date == "" {
		date = s.clock.Now().UTC().Format(time.DateOnly)
	}
	if err := validateVar("date", date, "datetime=2006-01-02"); err != nil {
		return nil, err
	}

	raw, err := s.schedule.Fetch(ctx, sofascore.OpScheduledEvents, sofascore.Params{Date: date, Sport: "football"})
	if err != nil {
		s.logger.WarnContext(ctx, "fixtures unavailable, serving empty schedule", "date", date, "error", err)
		return EmptyEvents, nil
	}
	return raw, nil
}

func (s *MatchService) LiveScore(ctx context.Context, eventID string) (*sofascore.LiveScore, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.MatchService.LiveScore")
	defer span.End()

	eventID = strings.TrimSpace(eventID)
	if err := validateVar("event id", eventID, "required,digits"); err != nil {
		return nil, err
	}

	score, err := s.center.FetchLiveScore(ctx, eventID)
	if err != nil {
		return nil, upstreamError("live score event="+eventID, err)
	}
	return score, nil
}

// MatchCenter loads the event and its detail panels concurrently. Only the
// event itself is required.
func (s *MatchService) MatchCenter(ctx context.Context, eventID string, baseURL string) (*MatchCenter, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.MatchService.MatchCenter")
	defer span.End()

	eventID = eventIDFromPath(eventID)
	if err := validateVar("event id", eventID, "required,digits"); err != nil {
		return nil, err
	}

	var (
		out      MatchCenter
		detail   *sofascore.EventDetail
		eventErr error
		wg       conc.WaitGroup
	)
	wg.Go(func() { detail, eventErr = s.center.Event(ctx, eventID) })
	wg.Go(func() { out.Lineups = optional(s.center.Lineups(ctx, eventID)) })
	wg.Go(func() { out.Incidents = optional(s.center.Incidents(ctx, eventID)) })
	wg.Go(func() { out.Statistics = optional(s.center.Statistics(ctx, eventID)) })
	wg.Go(func() { out.H2H = optional(s.center.H2H(ctx, eventID)) })
	wg.Go(func() { out.Momentum = optional(s.center.MomentumGraph(ctx, eventID)) })
	wg.Go(func() { out.Shotmap = optional(s.center.Shotmap(ctx, eventID)) })
	wg.Go(func() { out.AveragePositions = optional(s.center.AveragePositions(ctx, eventID)) })
	wg.Wait()

	if eventErr != nil {
		return nil, upstreamError("match center event="+eventID, eventErr)
	}
	if detail == nil {
		return nil, fmt.Errorf("%w: event=%s", ErrNotFound, eventID)
	}

	now := s.clock.Now()
	event := detail.Event
	out.Event = event
	out.IsLive = event.Status.Type == football.StatusInProgress
	if out.IsLive && event.Time != nil && event.Time.CurrentPeriodStartTimestamp > 0 {
		out.Minute = football.MatchMinute(time.Unix(event.Time.CurrentPeriodStartTimestamp, 0), now, event.Status.Type, event.Status.Code)
	}
	out.JSONLD = matchEventLD(event, baseURL)

	return &out, nil
}

// optional drops the error of a panel fetch; callers render a missing panel
// as empty.
func optional[T any](value *T, err error) *T {
	if err != nil {
		return nil
	}
	return value
}

// eventIDFromPath accepts "12345" as well as "12345-arsenal-vs-chelsea".
func eventIDFromPath(raw string) string {
	raw = strings.TrimSpace(raw)
	if head, _, ok := strings.Cut(raw, "-"); ok {
		return head
	}
	return raw
}

func matchEventLD(event sofascore.Event, baseURL string) SportsEventLD {
	name := event.HomeTeam.Name + " vs " + event.AwayTeam.Name
	ld := SportsEventLD{
		Context:  schemaContext,
		Type:     "SportsEvent",
		Name:     name,
		Sport:    "Football",
		HomeTeam: &SportsTeamLD{Type: "SportsTeam", Name: event.HomeTeam.Name},
		AwayTeam: &SportsTeamLD{Type: "SportsTeam", Name: event.AwayTeam.Name},
	}
	if event.Tournament != nil {
		ld.Description = name + " in the " + event.Tournament.Name
	}
	if event.StartTimestamp > 0 {
		ld.StartDate = time.Unix(event.StartTimestamp, 0).UTC().Format(time.RFC3339)
	}
	if baseURL != "" {
		path := strconv.FormatInt(event.ID, 10)
		if event.Slug != "" {
			path += "-" + event.Slug
		}
		ld.URL = strings.TrimRight(baseURL, "/") + "/m/" + path
	}
	switch event.Status.Type {
	case "finished":
		ld.EventStatus = "https://schema.org/EventCompleted"
	case "postponed":
		ld.EventStatus = "https://schema.org/EventPostponed"
	case "canceled":
		ld.EventStatus = "https://schema.org/EventCancelled"
	default:
		ld.EventStatus = "https://schema.org/EventScheduled"
	}
	return ld
}
