package memory

import (
	"context"
	"sort"
	"sync"

	"github.com/riskibarqy/matchday/internal/domain/venue"
)

type VenueRepository struct {
	mu    sync.RWMutex
	items map[int64]venue.Venue
}

func NewVenueRepository(venues []venue.Venue) *VenueRepository {
	items := make(map[int64]venue.Venue, len(venues))
	for _, item := range venues {
		items[item.ID] = item
	}

	return &VenueRepository{items: items}
}

func (r *VenueRepository) ListByCapacity(_ context.Context, limit int) ([]venue.Venue, error) {
	out := r.snapshot()
	sort.SliceStable(out, func(i, j int) bool {
		a, b := out[i].Capacity, out[j].Capacity
		switch {
		case a == nil && b == nil:
			return out[i].Name < out[j].Name
		case a == nil:
			return false
		case b == nil:
			return true
		case *a != *b:
			return *a > *b
		default:
			return out[i].Name < out[j].Name
		}
	})

	return applyLimit(out, limit), nil
}

func (r *VenueRepository) ListAll(_ context.Context) ([]venue.Venue, error) {
	out := r.snapshot()
	sort.Slice(out, func(i, j int) bool { return out[i].Slug < out[j].Slug })
	return out, nil
}

func (r *VenueRepository) GetBySlug(_ context.Context, slug string) (venue.Venue, bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var (
		found venue.Venue
		ok    bool
	)
	for _, item := range r.items {
		if item.Slug != slug {
			continue
		}
		if !ok || item.ID < found.ID {
			found, ok = item, true
		}
	}

	return found, ok, nil
}

func (r *VenueRepository) Upsert(_ context.Context, item venue.Venue) error {
	if err := item.Validate(); err != nil {
		return err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if existing, ok := r.items[item.ID]; ok {
		if item.Address == "" {
			item.Address = existing.Address
		}
		if item.Latitude == nil {
			item.Latitude = existing.Latitude
		}
		if item.Longitude == nil {
			item.Longitude = existing.Longitude
		}
		if item.ImageURL == "" {
			item.ImageURL = existing.ImageURL
		}
	}
	r.items[item.ID] = item
	return nil
}

func (r *VenueRepository) snapshot() []venue.Venue {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]venue.Venue, 0, len(r.items))
	for _, item := range r.items {
		out = append(out, item)
	}
	return out
}

func applyLimit[T any](items []T, limit int) []T {
	if limit > 0 && len(items) > limit {
		return items[:limit]
	}
	return items
}
