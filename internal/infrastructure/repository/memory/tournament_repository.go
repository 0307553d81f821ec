package memory

import (
	"context"
	"fmt"
	"sync"

	"github.com/riskibarqy/matchday/internal/domain/tournament"
)

type standingsKey struct {
	tournamentID int64
	seasonID     int64
}

type TournamentRepository struct {
	mu        sync.RWMutex
	items     map[int64]tournament.Tournament
	standings map[standingsKey]tournament.Standings
}

func NewTournamentRepository(tournaments []tournament.Tournament) *TournamentRepository {
	items := make(map[int64]tournament.Tournament, len(tournaments))
	for _, item := range tournaments {
		items[item.ID] = item
	}

	return &TournamentRepository{
		items:     items,
		standings: make(map[standingsKey]tournament.Standings),
	}
}

func (r *TournamentRepository) GetBySlug(_ context.Context, slug string) (tournament.Tournament, bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, item := range r.items {
		if item.Slug == slug {
			return item, true, nil
		}
	}

	return tournament.Tournament{}, false, nil
}

func (r *TournamentRepository) Upsert(_ context.Context, item tournament.Tournament) error {
	if err := item.Validate(); err != nil {
		return err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	item.Seasons = append([]tournament.Season(nil), item.Seasons...)
	r.items[item.ID] = item
	return nil
}

func (r *TournamentRepository) GetStandings(_ context.Context, tournamentID, seasonID int64) (tournament.Standings, bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	item, ok := r.standings[standingsKey{tournamentID: tournamentID, seasonID: seasonID}]
	return item, ok, nil
}

func (r *TournamentRepository) UpsertStandings(_ context.Context, item tournament.Standings) error {
	if item.TournamentID <= 0 || item.SeasonID <= 0 {
		return fmt.Errorf("standings require tournament and season ids")
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	item.Tables = append([]tournament.Table(nil), item.Tables...)
	r.standings[standingsKey{tournamentID: item.TournamentID, seasonID: item.SeasonID}] = item
	return nil
}
