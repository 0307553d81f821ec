package usecase

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/riskibarqy/matchday/internal/domain/manager"
	"github.com/riskibarqy/matchday/internal/domain/match"
	"github.com/riskibarqy/matchday/internal/domain/venue"
	"github.com/riskibarqy/matchday/internal/infrastructure/repository/memory"
	matchmock "github.com/riskibarqy/matchday/internal/mocks/domain/match"
	"github.com/riskibarqy/matchday/internal/platform/logging"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func mustDate(t *testing.T, value string) time.Time {
	t.Helper()
	parsed, err := time.Parse(time.DateOnly, value)
	if err != nil {
		t.Fatalf("parse date %q: %v", value, err)
	}
	return parsed
}

func TestFeedService_RecentClassifiesMatches(t *testing.T) {
	t.Parallel()

	now := time.Date(2025, 10, 18, 15, 0, 0, 0, time.UTC)
	matches := memory.NewMatchRepository([]match.Match{
		{Slug: "live", HomeTeam: "Arsenal", AwayTeam: "Fulham", League: "Premier League", KickoffAt: now.Add(-30 * time.Minute)},
		{Slug: "final", HomeTeam: "Leeds", AwayTeam: "Spurs", League: "Premier League", KickoffAt: now.Add(-5 * time.Hour), HomeScore: intPtr(2), AwayScore: intPtr(1)},
		{Slug: "unscored", HomeTeam: "Wolves", AwayTeam: "Brighton", League: "Premier League", KickoffAt: now.Add(-6 * time.Hour)},
		{Slug: "upcoming", HomeTeam: "Milan", AwayTeam: "Inter", League: "Serie A", KickoffAt: time.Date(2025, 10, 19, 18, 45, 0, 0, time.UTC)},
	})
	items := NewFeedService(matches, logging.NewNop()).Recent(context.Background(), now)
	require.Len(t, items, 4)

	bySlug := make(map[string]FeedItem, len(items))
	for _, item := range items {
		bySlug[item.Slug] = item
	}
	require.Equal(t, "upcoming", items[0].Slug)

	live := bySlug["live"]
	require.True(t, live.IsLive)
	require.Equal(t, "🔴 LIVE: Arsenal vs Fulham", live.Title)
	require.Equal(t, "Watch Arsenal vs Fulham live now in the Premier League!", live.Description)
	require.Equal(t, "Watch Arsenal vs Fulham live now!", live.Summary)

	final := bySlug["final"]
	require.Equal(t, "Leeds vs Spurs: 2-1", final.Title)
	require.Equal(t, "Final score: Leeds 2 - 1 Spurs. Watch highlights now.", final.Description)
	require.Equal(t, "Final: Leeds 2 - 1 Spurs", final.Summary)

	unscored := bySlug["unscored"]
	require.Equal(t, "Wolves vs Brighton", unscored.Title)
	require.True(t, strings.HasPrefix(unscored.Description, "Upcoming Premier League match."))

	upcoming := bySlug["upcoming"]
	require.Equal(t, "Upcoming Serie A match. Milan vs Inter on Oct 19, 2025.", upcoming.Description)
	require.Equal(t, "Serie A match", upcoming.Summary)
}

func TestFeedService_StoreFailureYieldsEmptyFeed(t *testing.T) {
	t.Parallel()

	matches := matchmock.NewRepository(t)
	matches.On("ListRecent", mock.Anything, 100).Return(nil, errors.New("db down")).Once()

	items := NewFeedService(matches, logging.NewNop()).Recent(context.Background(), time.Now())
	require.NotNil(t, items)
	require.Empty(t, items)
}

func TestSitemapService_VenuesAndManagers(t *testing.T) {
	t.Parallel()

	now := time.Date(2025, 10, 18, 0, 0, 0, 0, time.UTC)
	updated := now.Add(-48 * time.Hour)
	venues := memory.NewVenueRepository([]venue.Venue{
		{ID: 1, Slug: "anfield", Name: "Anfield", UpdatedAt: updated},
		{ID: 2, Slug: "old-trafford", Name: "Old Trafford"},
	})
	managers := memory.NewManagerRepository([]manager.Manager{{ID: 1, Slug: "arne-slot", Name: "Arne Slot"}})
	service := NewSitemapService(venues, managers, memory.NewMatchRepository(nil), logging.NewNop())

	entries := service.Venues(context.Background(), "https://example.test/", now)
	require.Len(t, entries, 3)
	require.Equal(t, SitemapEntry{Loc: "https://example.test/venues", LastMod: now, ChangeFreq: ChangeWeekly, Priority: 0.7}, entries[0])
	require.Equal(t, "https://example.test/venues/anfield", entries[1].Loc)
	require.Equal(t, updated, entries[1].LastMod)
	require.Equal(t, now, entries[2].LastMod)
	require.Equal(t, 0.6, entries[2].Priority)

	entries = service.Managers(context.Background(), "https://example.test", now)
	require.Len(t, entries, 2)
	require.Equal(t, "https://example.test/managers/arne-slot", entries[1].Loc)
}

func TestSitemapService_VideoPriorities(t *testing.T) {
	t.Parallel()

	now := time.Date(2025, 10, 18, 20, 0, 0, 0, time.UTC)
	embed := "<iframe></iframe>"
	matches := memory.NewMatchRepository([]match.Match{
		{Slug: "live", HomeTeam: "A", AwayTeam: "B", KickoffAt: now.Add(-time.Hour), ScorebatEmbed: embed, EventID: int64Ptr(11)},
		{Slug: "today", HomeTeam: "C", AwayTeam: "D", KickoffAt: time.Date(2025, 10, 18, 9, 0, 0, 0, time.UTC), ScorebatEmbed: embed},
		{Slug: "recent", HomeTeam: "E", AwayTeam: "F", KickoffAt: now.Add(-72 * time.Hour), ScorebatEmbed: embed, EventID: int64Ptr(13)},
		{Slug: "old", HomeTeam: "G", AwayTeam: "H", KickoffAt: now.Add(-30 * 24 * time.Hour), ScorebatEmbed: embed},
		{Slug: "no-video", HomeTeam: "I", AwayTeam: "J", KickoffAt: now},
	})
	service := NewSitemapService(memory.NewVenueRepository(nil), memory.NewManagerRepository(nil), matches, logging.NewNop())

	entries := service.Video(context.Background(), "https://example.test", now)
	got := make(map[string]SitemapEntry, len(entries))
	for _, entry := range entries {
		got[entry.Loc] = entry
	}
	require.Len(t, entries, 7)

	require.Equal(t, 0.95, got["https://example.test/watch/live"].Priority)
	require.Equal(t, ChangeAlways, got["https://example.test/watch/live"].ChangeFreq)
	require.Equal(t, now, got["https://example.test/watch/live"].LastMod)
	require.Equal(t, 1.0, got["https://example.test/m/11-live"].Priority)
	require.Equal(t, 0.9, got["https://example.test/watch/today"].Priority)
	require.Equal(t, 0.8, got["https://example.test/watch/recent"].Priority)
	require.Equal(t, 0.85, got["https://example.test/m/13-recent"].Priority)
	require.Equal(t, now.Add(-72*time.Hour), got["https://example.test/m/13-recent"].LastMod)
	require.Equal(t, 0.6, got["https://example.test/watch/old"].Priority)
	require.Equal(t, ChangeWeekly, got["https://example.test/watch/old"].ChangeFreq)
	require.Equal(t, 0.85, got["https://example.test/highlights"].Priority)

	for i := 1; i < len(entries); i++ {
		if entries[i].Priority > entries[i-1].Priority {
			t.Fatalf("entries not sorted by priority at %d: %v > %v", i, entries[i].Priority, entries[i-1].Priority)
		}
	}
	require.Equal(t, "https://example.test/m/11-live", entries[0].Loc)
}

func TestVideoPriorityBoostsUpcomingWeek(t *testing.T) {
	t.Parallel()

	now := time.Date(2025, 10, 18, 12, 0, 0, 0, time.UTC)
	priority, freq := videoPriority(now.Add(72*time.Hour), now)
	require.Equal(t, 0.8, priority)
	require.Equal(t, ChangeDaily, freq)
}

func TestRobotsListsEverySitemap(t *testing.T) {
	t.Parallel()

	body := Robots("https://example.test/")
	require.True(t, strings.HasPrefix(body, "User-agent: *\nAllow: /\n"))
	for _, path := range []string{"/sitemap.xml", "/sitemaps/video", "/sitemaps/venues", "/sitemaps/managers", "/sitemaps/players"} {
		require.Contains(t, body, "Sitemap: https://example.test"+path+"\n")
	}
	require.Equal(t, 10, strings.Count(body, "Sitemap: "))
}
