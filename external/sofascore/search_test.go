package sofascore

import (
	"context"
	"net/http"
	"testing"

	crerr "github.com/cockroachdb/errors"
)

func footballSport() *Sport { return &Sport{Slug: "football"} }

func TestSelectTournamentPrefersExactSlug(t *testing.T) {
	t.Parallel()

	results := []SearchResult{
		{Type: "uniqueTournament", Score: 900, Entity: SearchEntity{ID: 9, Slug: "premier-league-2", Sport: footballSport()}},
		{Type: "team", Score: 1000, Entity: SearchEntity{ID: 1, Slug: "premier-league", Sport: footballSport()}},
		{Type: "uniqueTournament", Score: 500, Entity: SearchEntity{ID: 5, Slug: "premier-league", Category: &Category{Sport: footballSport()}}},
		{Type: "uniqueTournament", Score: 2000, Entity: SearchEntity{ID: 7, Slug: "premier-league", Sport: &Sport{Slug: "basketball"}}},
	}

	id, ok := selectTournament(results, "premier-league")
	if !ok || id != 5 {
		t.Fatalf("expected exact slug id 5, got %d ok=%v", id, ok)
	}
}

func TestSelectTournamentSlugMatchIsCaseSensitive(t *testing.T) {
	t.Parallel()

	results := []SearchResult{
		{Type: "uniqueTournament", Score: 800, Entity: SearchEntity{ID: 11, Slug: "ligue-1", Sport: footballSport()}},
		{Type: "uniqueTournament", Score: 300, Entity: SearchEntity{ID: 12, Slug: "Ligue-1", Sport: footballSport()}},
	}

	id, ok := selectTournament(results, "Ligue-1")
	if !ok || id != 12 {
		t.Fatalf("expected exact-case slug id 12, got %d ok=%v", id, ok)
	}

	id, ok = selectTournament(results[1:], "ligue-1")
	if !ok || id != 12 {
		t.Fatalf("expected best score fallback id 12, got %d ok=%v", id, ok)
	}

	results[1].Score = 900
	id, ok = selectTournament(results, "ligue-1")
	if !ok || id != 11 {
		t.Fatalf("expected lower-case slug id 11 over higher scored Ligue-1, got %d ok=%v", id, ok)
	}
}

func TestSelectTournamentFallsBackToBestScore(t *testing.T) {
	t.Parallel()

	results := []SearchResult{
		{Type: "uniqueTournament", Entity: SearchEntity{ID: 3, Slug: "serie-a-women", Score: 10, Sport: footballSport()}},
		{Type: "uniqueTournament", Score: 40, Entity: SearchEntity{ID: 23, Slug: "serie-a-brazil", Sport: footballSport()}},
		{Type: "uniqueTournament", Score: 40, Entity: SearchEntity{ID: 24, Slug: "serie-a-ecuador", Sport: footballSport()}},
	}

	id, ok := selectTournament(results, "serie-a")
	if !ok || id != 23 {
		t.Fatalf("expected stable first best score id 23, got %d ok=%v", id, ok)
	}

	if _, ok := selectTournament(nil, "serie-a"); ok {
		t.Fatalf("expected no candidate for empty results")
	}
}

func TestResolveTournamentID(t *testing.T) {
	t.Parallel()

	doer := jsonDoer(http.StatusOK, `{"success":true,"data":{"results":[
		{"type":"uniqueTournament","score":300,"entity":{"id":9,"slug":"laliga-2","sport":{"slug":"football"}}},
		{"type":"uniqueTournament","score":100,"entity":{"id":8,"slug":"laliga","category":{"sport":{"slug":"football"}}}}
	]}}`)
	client := newTestClient(t, VariantLegacy, "http://upstream.test", doer)

	id, err := client.ResolveTournamentID(context.Background(), "laliga")
	if err != nil {
		t.Fatalf("resolve: %v", err)
	}
	if id != 8 {
		t.Fatalf("expected id 8, got %d", id)
	}
	if got := doer.requests[0].URL; got != "http://upstream.test/search/all?q=laliga" {
		t.Fatalf("unexpected search url %q", got)
	}

	empty := newTestClient(t, VariantStandard, "http://upstream.test", jsonDoer(http.StatusOK, `{"results":[]}`))
	if _, err := empty.ResolveTournamentID(context.Background(), "laliga"); !crerr.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}
