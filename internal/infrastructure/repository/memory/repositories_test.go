package memory

import (
	"context"
	"testing"
	"time"

	"github.com/riskibarqy/matchday/internal/domain/match"
	"github.com/riskibarqy/matchday/internal/domain/venue"
)

func kickoff(day int) time.Time {
	return time.Date(2025, 3, day, 15, 0, 0, 0, time.UTC)
}

func TestMatchRepositoryListByLeague(t *testing.T) {
	ctx := context.Background()
	repo := NewMatchRepository([]match.Match{
		{Slug: "arsenal-vs-chelsea", HomeTeam: "Arsenal", AwayTeam: "Chelsea", League: "Premier League", KickoffAt: kickoff(9)},
		{Slug: "liverpool-vs-everton", HomeTeam: "Liverpool", AwayTeam: "Everton", League: "English Premier League", KickoffAt: kickoff(2)},
		{Slug: "inter-vs-milan", HomeTeam: "Inter", AwayTeam: "Milan", League: "Serie A", KickoffAt: kickoff(5)},
	})

	items, err := repo.ListByLeague(ctx, "premier league", 20)
	if err != nil {
		t.Fatalf("list by league: %v", err)
	}
	if len(items) != 2 {
		t.Fatalf("expected 2 matches, got %d", len(items))
	}
	if items[0].Slug != "liverpool-vs-everton" {
		t.Fatalf("expected kickoff ascending, got %s first", items[0].Slug)
	}

	recent, err := repo.ListRecent(ctx, 1)
	if err != nil {
		t.Fatalf("list recent: %v", err)
	}
	if len(recent) != 1 || recent[0].Slug != "arsenal-vs-chelsea" {
		t.Fatalf("unexpected recent matches: %+v", recent)
	}
}

func TestMatchRepositoryUpsertKeepsVideo(t *testing.T) {
	ctx := context.Background()
	repo := NewMatchRepository(nil)

	eventID := int64(7)
	base := match.Match{Slug: "a-vs-b-7", EventID: &eventID, HomeTeam: "A", AwayTeam: "B", KickoffAt: kickoff(1), ScorebatEmbed: "<iframe></iframe>"}
	if err := repo.Upsert(ctx, base); err != nil {
		t.Fatalf("upsert: %v", err)
	}
	base.ScorebatEmbed = ""
	base.Status = match.StatusFinished
	if err := repo.Upsert(ctx, base); err != nil {
		t.Fatalf("second upsert: %v", err)
	}

	videos, err := repo.ListWithVideo(ctx)
	if err != nil {
		t.Fatalf("list with video: %v", err)
	}
	if len(videos) != 1 || videos[0].Status != match.StatusFinished {
		t.Fatalf("unexpected videos: %+v", videos)
	}

	if err := repo.Upsert(ctx, match.Match{Slug: "broken"}); err == nil {
		t.Fatalf("expected validation error")
	}
}

func TestMatchRepositoryKeysByEventID(t *testing.T) {
	ctx := context.Background()
	repo := NewMatchRepository(nil)

	first, second := int64(111), int64(222)
	league := match.Match{Slug: "arsenal-vs-fulham-111", EventID: &first, HomeTeam: "Arsenal", AwayTeam: "Fulham", League: "Premier League", KickoffAt: kickoff(1)}
	cup := match.Match{Slug: "arsenal-vs-fulham-222", EventID: &second, HomeTeam: "Arsenal", AwayTeam: "Fulham", League: "EFL Cup", KickoffAt: kickoff(8)}
	for _, item := range []match.Match{league, cup} {
		if err := repo.Upsert(ctx, item); err != nil {
			t.Fatalf("upsert %s: %v", item.Slug, err)
		}
	}

	league.Status = match.StatusFinished
	if err := repo.Upsert(ctx, league); err != nil {
		t.Fatalf("re-upsert: %v", err)
	}

	recent, err := repo.ListRecent(ctx, 10)
	if err != nil {
		t.Fatalf("list recent: %v", err)
	}
	if len(recent) != 2 {
		t.Fatalf("expected both events kept, got %+v", recent)
	}
	if recent[1].League != "Premier League" || recent[1].Status != match.StatusFinished {
		t.Fatalf("unexpected league match: %+v", recent[1])
	}

	if err := repo.Upsert(ctx, match.Match{Slug: "no-event", HomeTeam: "A", AwayTeam: "B", KickoffAt: kickoff(2)}); err == nil {
		t.Fatalf("expected missing event id to be rejected")
	}
}

func TestVenueRepositoryCapacityOrder(t *testing.T) {
	ctx := context.Background()
	small, big := 20000, 80000
	repo := NewVenueRepository([]venue.Venue{
		{ID: 1, Slug: "unknown", Name: "Unknown Ground"},
		{ID: 2, Slug: "small", Name: "Small Park", Capacity: &small},
		{ID: 3, Slug: "big", Name: "Big Arena", Capacity: &big},
	})

	items, err := repo.ListByCapacity(ctx, 200)
	if err != nil {
		t.Fatalf("list by capacity: %v", err)
	}
	got := []string{items[0].Slug, items[1].Slug, items[2].Slug}
	want := []string{"big", "small", "unknown"}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("unexpected order %v, want %v", got, want)
		}
	}
}
