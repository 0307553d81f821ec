package memory

import (
	"context"
	"sort"
	"strings"
	"sync"

	"github.com/riskibarqy/matchday/internal/domain/match"
)

// MatchRepository keys rows by upstream event id. Seeded rows without one get
// a negative placeholder key.
type MatchRepository struct {
	mu    sync.RWMutex
	items map[int64]match.Match
}

func NewMatchRepository(matches []match.Match) *MatchRepository {
	items := make(map[int64]match.Match, len(matches))
	for i, item := range matches {
		key := int64(-(i + 1))
		if item.EventID != nil {
			key = *item.EventID
		}
		items[key] = item
	}

	return &MatchRepository{items: items}
}

func (r *MatchRepository) ListRecent(_ context.Context, limit int) ([]match.Match, error) {
	out := r.filter(func(match.Match) bool { return true })
	sort.SliceStable(out, func(i, j int) bool { return out[i].KickoffAt.After(out[j].KickoffAt) })
	return applyLimit(out, limit), nil
}

func (r *MatchRepository) ListByLeague(_ context.Context, leagueName string, limit int) ([]match.Match, error) {
	needle := strings.ToLower(strings.TrimSpace(leagueName))
	out := r.filter(func(item match.Match) bool {
		return strings.Contains(strings.ToLower(item.League), needle)
	})
	sort.SliceStable(out, func(i, j int) bool { return out[i].KickoffAt.Before(out[j].KickoffAt) })
	return applyLimit(out, limit), nil
}

func (r *MatchRepository) ListWithVideo(_ context.Context) ([]match.Match, error) {
	out := r.filter(match.Match.HasVideo)
	sort.SliceStable(out, func(i, j int) bool { return out[i].KickoffAt.After(out[j].KickoffAt) })
	return out, nil
}

func (r *MatchRepository) Upsert(_ context.Context, item match.Match) error {
	if err := item.Validate(); err != nil {
		return err
	}
	if item.Status == "" {
		item.Status = match.StatusScheduled
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	key := *item.EventID
	if existing, ok := r.items[key]; ok {
		if item.TournamentID == nil {
			item.TournamentID = existing.TournamentID
		}
		if item.Round == nil {
			item.Round = existing.Round
		}
		if item.ScorebatEmbed == "" {
			item.ScorebatEmbed = existing.ScorebatEmbed
		}
	}
	r.items[key] = item
	return nil
}

func (r *MatchRepository) filter(keep func(match.Match) bool) []match.Match {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]match.Match, 0, len(r.items))
	for _, item := range r.items {
		if keep(item) {
			out = append(out, item)
		}
	}
	// map order is random; slug order keeps ties deterministic.
	sort.Slice(out, func(i, j int) bool { return out[i].Slug < out[j].Slug })
	return out
}
