package usecase

import (
	"context"
	"fmt"
	"time"

	"github.com/riskibarqy/matchday/internal/domain/football"
	"github.com/riskibarqy/matchday/internal/domain/match"
	"github.com/riskibarqy/matchday/internal/platform/logging"
)

const (
	feedMatchLimit  = 100
	liveTitlePrefix = "🔴 LIVE: "
)

// FeedItem is one match as shown in the RSS and Atom feeds. Description
// feeds RSS, Summary feeds Atom.
type FeedItem struct {
	Slug        string
	Title       string
	League      string
	KickoffAt   time.Time
	Description string
	Summary     string
	IsLive      bool
}

type FeedService struct {
	matches match.Repository
	logger  *logging.Logger
}

func NewFeedService(matches match.Repository, logger *logging.Logger) *FeedService {
	if logger == nil {
		logger = logging.Default()
	}

	return &FeedService{matches: matches, logger: logger}
}

// Recent returns the last 100 matches by kickoff, newest first. A store
// failure yields an empty feed.
func (s *FeedService) Recent(ctx context.Context, now time.Time) []FeedItem {
	ctx, span := startUsecaseSpan(ctx, "usecase.FeedService.Recent")
	defer span.End()

	items, err := s.matches.ListRecent(ctx, feedMatchLimit)
	if err != nil {
		s.logger.ErrorContext(ctx, "feed matches unavailable", "error", err)
		return []FeedItem{}
	}

	out := make([]FeedItem, 0, len(items))
	for _, item := range items {
		out = append(out, feedItem(item, now))
	}
	return out
}

func feedItem(m match.Match, now time.Time) FeedItem {
	title := m.HomeTeam + " vs " + m.AwayTeam
	out := FeedItem{
		Slug:      m.Slug,
		League:    m.League,
		KickoffAt: m.KickoffAt,
		Summary:   m.League + " match",
	}

	switch {
	case football.IsLive(m.KickoffAt, now):
		out.IsLive = true
		out.Title = liveTitlePrefix + title
		out.Description = fmt.Sprintf("Watch %s vs %s live now in the %s!", m.HomeTeam, m.AwayTeam, m.League)
		out.Summary = fmt.Sprintf("Watch %s vs %s live now!", m.HomeTeam, m.AwayTeam)
	case football.IsPast(m.KickoffAt, now) && m.HasScore():
		out.Title = fmt.Sprintf("%s: %d-%d", title, *m.HomeScore, *m.AwayScore)
		out.Description = fmt.Sprintf("Final score: %s %d - %d %s. Watch highlights now.", m.HomeTeam, *m.HomeScore, *m.AwayScore, m.AwayTeam)
		out.Summary = fmt.Sprintf("Final: %s %d - %d %s", m.HomeTeam, *m.HomeScore, *m.AwayScore, m.AwayTeam)
	default:
		out.Title = title
		out.Description = fmt.Sprintf("Upcoming %s match. %s vs %s on %s.", m.League, m.HomeTeam, m.AwayTeam, m.KickoffAt.UTC().Format("Jan 2, 2006"))
	}
	return out
}
