package usecase

import (
	"context"
	"math"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/riskibarqy/matchday/internal/domain/football"
	"github.com/riskibarqy/matchday/internal/domain/manager"
	"github.com/riskibarqy/matchday/internal/domain/match"
	"github.com/riskibarqy/matchday/internal/domain/venue"
	"github.com/riskibarqy/matchday/internal/platform/logging"
)

const (
	ChangeAlways = "always"
	ChangeHourly = "hourly"
	ChangeDaily  = "daily"
	ChangeWeekly = "weekly"
)

type SitemapEntry struct {
	Loc        string
	LastMod    time.Time
	ChangeFreq string
	Priority   float64
}

type SitemapService struct {
	venues   venue.Repository
	managers manager.Repository
	matches  match.Repository
	logger   *logging.Logger
}

func NewSitemapService(venues venue.Repository, managers manager.Repository, matches match.Repository, logger *logging.Logger) *SitemapService {
	if logger == nil {
		logger = logging.Default()
	}

	return &SitemapService{
		venues:   venues,
		managers: managers,
		matches:  matches,
		logger:   logger,
	}
}

func (s *SitemapService) Venues(ctx context.Context, baseURL string, now time.Time) []SitemapEntry {
	ctx, span := startUsecaseSpan(ctx, "usecase.SitemapService.Venues")
	defer span.End()

	base := strings.TrimRight(baseURL, "/")
	entries := []SitemapEntry{{Loc: base + "/venues", LastMod: now, ChangeFreq: ChangeWeekly, Priority: 0.7}}

	items, err := s.venues.ListAll(ctx)
	if err != nil {
		s.logger.ErrorContext(ctx, "venues sitemap query failed", "error", err)
		return entries
	}
	for _, item := range items {
		entries = append(entries, SitemapEntry{
			Loc:        base + "/venues/" + item.Slug,
			LastMod:    lastModOr(item.UpdatedAt, now),
			ChangeFreq: ChangeWeekly,
			Priority:   0.6,
		})
	}
	return entries
}

func (s *SitemapService) Managers(ctx context.Context, baseURL string, now time.Time) []SitemapEntry {
	ctx, span := startUsecaseSpan(ctx, "usecase.SitemapService.Managers")
	defer span.End()

	base := strings.TrimRight(baseURL, "/")
	entries := []SitemapEntry{{Loc: base + "/managers", LastMod: now, ChangeFreq: ChangeWeekly, Priority: 0.7}}

	items, err := s.managers.ListAll(ctx)
	if err != nil {
		s.logger.ErrorContext(ctx, "managers sitemap query failed", "error", err)
		return entries
	}
	for _, item := range items {
		entries = append(entries, SitemapEntry{
			Loc:        base + "/managers/" + item.Slug,
			LastMod:    lastModOr(item.UpdatedAt, now),
			ChangeFreq: ChangeWeekly,
			Priority:   0.6,
		})
	}
	return entries
}

// Video lists watch and match-center pages of matches with highlight
// embeds, ordered by priority. The highlights index is always present.
func (s *SitemapService) Video(ctx context.Context, baseURL string, now time.Time) []SitemapEntry {
	ctx, span := startUsecaseSpan(ctx, "usecase.SitemapService.Video")
	defer span.End()

	base := strings.TrimRight(baseURL, "/")
	var entries []SitemapEntry

	items, err := s.matches.ListWithVideo(ctx)
	if err != nil {
		s.logger.ErrorContext(ctx, "video sitemap query failed", "error", err)
		items = nil
	}
	for _, item := range items {
		if !item.HasVideo() {
			continue
		}
		priority, freq := videoPriority(item.KickoffAt, now)
		lastMod := item.KickoffAt
		if football.IsLive(item.KickoffAt, now) {
			lastMod = now
		}

		entries = append(entries, SitemapEntry{
			Loc:        base + "/watch/" + item.Slug,
			LastMod:    lastMod,
			ChangeFreq: freq,
			Priority:   priority,
		})
		if item.EventID != nil && *item.EventID > 0 {
			entries = append(entries, SitemapEntry{
				Loc:        base + "/m/" + strconv.FormatInt(*item.EventID, 10) + "-" + item.Slug,
				LastMod:    lastMod,
				ChangeFreq: freq,
				Priority:   math.Min(roundPriority(priority+0.05), 1.0),
			})
		}
	}

	entries = append(entries, SitemapEntry{Loc: base + "/highlights", LastMod: now, ChangeFreq: ChangeHourly, Priority: 0.85})
	sort.SliceStable(entries, func(i, j int) bool {
		return entries[i].Priority > entries[j].Priority
	})
	return entries
}

// videoPriority ranks by recency: live, then same UTC day, then within a
// week of now (upcoming included), then everything else.
func videoPriority(kickoff, now time.Time) (float64, string) {
	switch {
	case football.IsLive(kickoff, now):
		return 0.95, ChangeAlways
	case football.SameUTCDay(kickoff, now):
		return 0.9, ChangeHourly
	case now.Sub(kickoff) <= 7*24*time.Hour:
		return 0.8, ChangeDaily
	default:
		return 0.6, ChangeWeekly
	}
}

func roundPriority(p float64) float64 {
	return math.Round(p*100) / 100
}

func lastModOr(updatedAt, now time.Time) time.Time {
	if updatedAt.IsZero() {
		return now
	}
	return updatedAt
}

// Robots renders robots.txt allowing everything and listing every sitemap.
func Robots(baseURL string) string {
	base := strings.TrimRight(baseURL, "/")
	paths := []string{
		"/sitemap.xml",
		"/sitemaps/leagues",
		"/sitemaps/teams",
		"/sitemaps/matches",
		"/sitemaps/country",
		"/sitemaps/tournaments",
		"/sitemaps/players",
		"/sitemaps/video",
		"/sitemaps/venues",
		"/sitemaps/managers",
	}

	var b strings.Builder
	b.WriteString("User-agent: *\nAllow: /\n\n")
	for _, path := range paths {
		b.WriteString("Sitemap: " + base + path + "\n")
	}
	return b.String()
}
