package sofascore

import (
	"context"
	"strings"
	"time"

	crerr "github.com/cockroachdb/errors"
	"github.com/riskibarqy/matchday/internal/domain/football"
)

// FetchLiveScore condenses an event into the score line shown by the live
// widget. An empty id fails with ErrInvalidParams before any I/O.
func (c *Client) FetchLiveScore(ctx context.Context, eventID string) (*LiveScore, error) {
	if strings.TrimSpace(eventID) == "" {
		return nil, crerr.Wrap(ErrInvalidParams, "live score requires an event id")
	}

	detail, err := c.Event(ctx, eventID)
	if err != nil {
		return nil, err
	}
	return liveScoreFromEvent(detail.Event, c.now()), nil
}

func liveScoreFromEvent(event Event, now time.Time) *LiveScore {
	var periodStart time.Time
	if event.Time != nil && event.Time.CurrentPeriodStartTimestamp > 0 {
		periodStart = time.Unix(event.Time.CurrentPeriodStartTimestamp, 0)
	}

	status := strings.TrimSpace(event.Status.Description)
	if status == "" {
		status = football.UnknownStatus
	}

	return &LiveScore{
		HomeScore: event.HomeScore.CurrentOrZero(),
		AwayScore: event.AwayScore.CurrentOrZero(),
		Status:    status,
		Minute:    football.MatchMinute(periodStart, now, event.Status.Type, event.Status.Code),
		IsRunning: event.Status.Type == football.StatusInProgress,
	}
}

// CurrentOrZero is nil safe.
func (s *Score) CurrentOrZero() int {
	if s == nil || s.Current == nil {
		return 0
	}
	return *s.Current
}
