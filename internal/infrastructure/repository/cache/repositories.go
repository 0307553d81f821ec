// Package cache decorates the read-mostly catalog repositories with the
// process-local TTL store. Writes invalidate the whole family they touch.
package cache

import (
	"context"
	"fmt"
	"slices"
	"strconv"

	"github.com/riskibarqy/matchday/internal/domain/manager"
	"github.com/riskibarqy/matchday/internal/domain/tournament"
	"github.com/riskibarqy/matchday/internal/domain/venue"
	basecache "github.com/riskibarqy/matchday/internal/platform/cache"
)

type VenueRepository struct {
	next   venue.Repository
	lists  basecache.Typed[[]venue.Venue]
	bySlug basecache.Typed[venue.Venue]
}

func NewVenueRepository(next venue.Repository, store *basecache.Store) *VenueRepository {
	return &VenueRepository{
		next:   next,
		lists:  basecache.NewTyped[[]venue.Venue](store, "venue:list:"),
		bySlug: basecache.NewTyped[venue.Venue](store, "venue:slug:"),
	}
}

func (r *VenueRepository) ListByCapacity(ctx context.Context, limit int) ([]venue.Venue, error) {
	items, err := r.lists.Load(ctx, "capacity:"+strconv.Itoa(limit), func(ctx context.Context) ([]venue.Venue, error) {
		return r.next.ListByCapacity(ctx, limit)
	})
	return slices.Clone(items), err
}

func (r *VenueRepository) ListAll(ctx context.Context) ([]venue.Venue, error) {
	items, err := r.lists.Load(ctx, "all", r.next.ListAll)
	return slices.Clone(items), err
}

func (r *VenueRepository) GetBySlug(ctx context.Context, slug string) (venue.Venue, bool, error) {
	return r.bySlug.Lookup(ctx, slug, func(ctx context.Context) (venue.Venue, bool, error) {
		return r.next.GetBySlug(ctx, slug)
	})
}

func (r *VenueRepository) Upsert(ctx context.Context, item venue.Venue) error {
	if err := r.next.Upsert(ctx, item); err != nil {
		return err
	}
	r.lists.Invalidate(ctx)
	r.bySlug.Invalidate(ctx)
	return nil
}

type ManagerRepository struct {
	next   manager.Repository
	lists  basecache.Typed[[]manager.Manager]
	bySlug basecache.Typed[manager.Manager]
}

func NewManagerRepository(next manager.Repository, store *basecache.Store) *ManagerRepository {
	return &ManagerRepository{
		next:   next,
		lists:  basecache.NewTyped[[]manager.Manager](store, "manager:list:"),
		bySlug: basecache.NewTyped[manager.Manager](store, "manager:slug:"),
	}
}

func (r *ManagerRepository) ListByName(ctx context.Context, limit int) ([]manager.Manager, error) {
	items, err := r.lists.Load(ctx, "name:"+strconv.Itoa(limit), func(ctx context.Context) ([]manager.Manager, error) {
		return r.next.ListByName(ctx, limit)
	})
	return slices.Clone(items), err
}

func (r *ManagerRepository) ListAll(ctx context.Context) ([]manager.Manager, error) {
	items, err := r.lists.Load(ctx, "all", r.next.ListAll)
	return slices.Clone(items), err
}

func (r *ManagerRepository) GetBySlug(ctx context.Context, slug string) (manager.Manager, bool, error) {
	return r.bySlug.Lookup(ctx, slug, func(ctx context.Context) (manager.Manager, bool, error) {
		return r.next.GetBySlug(ctx, slug)
	})
}

func (r *ManagerRepository) Upsert(ctx context.Context, item manager.Manager) error {
	if err := r.next.Upsert(ctx, item); err != nil {
		return err
	}
	r.lists.Invalidate(ctx)
	r.bySlug.Invalidate(ctx)
	return nil
}

type TournamentRepository struct {
	next      tournament.Repository
	bySlug    basecache.Typed[tournament.Tournament]
	standings basecache.Typed[tournament.Standings]
}

func NewTournamentRepository(next tournament.Repository, store *basecache.Store) *TournamentRepository {
	return &TournamentRepository{
		next:      next,
		bySlug:    basecache.NewTyped[tournament.Tournament](store, "tournament:slug:"),
		standings: basecache.NewTyped[tournament.Standings](store, "tournament:standings:"),
	}
}

func (r *TournamentRepository) GetBySlug(ctx context.Context, slug string) (tournament.Tournament, bool, error) {
	return r.bySlug.Lookup(ctx, slug, func(ctx context.Context) (tournament.Tournament, bool, error) {
		return r.next.GetBySlug(ctx, slug)
	})
}

func (r *TournamentRepository) Upsert(ctx context.Context, item tournament.Tournament) error {
	if err := r.next.Upsert(ctx, item); err != nil {
		return err
	}
	r.bySlug.Invalidate(ctx)
	return nil
}

func (r *TournamentRepository) GetStandings(ctx context.Context, tournamentID, seasonID int64) (tournament.Standings, bool, error) {
	return r.standings.Lookup(ctx, seasonKey(tournamentID, seasonID), func(ctx context.Context) (tournament.Standings, bool, error) {
		return r.next.GetStandings(ctx, tournamentID, seasonID)
	})
}

func (r *TournamentRepository) UpsertStandings(ctx context.Context, item tournament.Standings) error {
	if err := r.next.UpsertStandings(ctx, item); err != nil {
		return err
	}
	r.standings.Forget(ctx, seasonKey(item.TournamentID, item.SeasonID))
	return nil
}

func seasonKey(tournamentID, seasonID int64) string {
	return fmt.Sprintf("%d:%d", tournamentID, seasonID)
}
