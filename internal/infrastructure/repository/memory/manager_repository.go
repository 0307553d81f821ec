package memory

import (
	"context"
	"sort"
	"sync"

	"github.com/riskibarqy/matchday/internal/domain/manager"
)

type ManagerRepository struct {
	mu    sync.RWMutex
	items map[int64]manager.Manager
}

func NewManagerRepository(managers []manager.Manager) *ManagerRepository {
	items := make(map[int64]manager.Manager, len(managers))
	for _, item := range managers {
		items[item.ID] = item
	}

	return &ManagerRepository{items: items}
}

func (r *ManagerRepository) ListByName(_ context.Context, limit int) ([]manager.Manager, error) {
	out := r.snapshot()
	sort.Slice(out, func(i, j int) bool {
		if out[i].Name == out[j].Name {
			return out[i].ID < out[j].ID
		}
		return out[i].Name < out[j].Name
	})

	return applyLimit(out, limit), nil
}

func (r *ManagerRepository) ListAll(_ context.Context) ([]manager.Manager, error) {
	out := r.snapshot()
	sort.Slice(out, func(i, j int) bool { return out[i].Slug < out[j].Slug })
	return out, nil
}

func (r *ManagerRepository) GetBySlug(_ context.Context, slug string) (manager.Manager, bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var (
		found manager.Manager
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

func (r *ManagerRepository) Upsert(_ context.Context, item manager.Manager) error {
	if err := item.Validate(); err != nil {
		return err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	r.items[item.ID] = item
	return nil
}

func (r *ManagerRepository) snapshot() []manager.Manager {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]manager.Manager, 0, len(r.items))
	for _, item := range r.items {
		out = append(out, item)
	}
	return out
}
