// Package cache is a process-local TTL store used to decorate read-mostly
// repositories.
package cache

import (
	"context"
	"errors"
	"strings"
	"sync"
	"time"

	"github.com/jonboulle/clockwork"
	"golang.org/x/sync/singleflight"
)

type item struct {
	value   any
	expires time.Time // zero means never
}

// Store holds values until ttl elapses on its clock. Concurrent misses for
// one key share a single load.
type Store struct {
	ttl   time.Duration
	clock clockwork.Clock
	group singleflight.Group

	mu    sync.RWMutex
	items map[string]item
}

func NewStore(ttl time.Duration) *Store {
	return NewStoreWithClock(ttl, nil)
}

// NewStoreWithClock keeps entries forever when ttl <= 0.
func NewStoreWithClock(ttl time.Duration, clock clockwork.Clock) *Store {
	if clock == nil {
		clock = clockwork.NewRealClock()
	}
	return &Store{ttl: ttl, clock: clock, items: make(map[string]item)}
}

func (s *Store) Get(_ context.Context, key string) (any, bool) {
	s.mu.RLock()
	it, ok := s.items[key]
	s.mu.RUnlock()
	if !ok || s.stale(it) {
		return nil, false
	}
	return it.value, true
}

func (s *Store) Set(_ context.Context, key string, value any) {
	it := item{value: value}
	if s.ttl > 0 {
		it.expires = s.clock.Now().Add(s.ttl)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.sweep()
	s.items[key] = it
}

func (s *Store) Delete(_ context.Context, key string) {
	s.mu.Lock()
	delete(s.items, key)
	s.mu.Unlock()
}

// DeletePrefix drops every key under prefix, e.g. "venue:" after an upsert.
func (s *Store) DeletePrefix(_ context.Context, prefix string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for key := range s.items {
		if strings.HasPrefix(key, prefix) {
			delete(s.items, key)
		}
	}
}

// GetOrLoad returns the cached value or runs loader. Loader errors are not
// cached.
func (s *Store) GetOrLoad(ctx context.Context, key string, loader func(context.Context) (any, error)) (any, error) {
	if loader == nil {
		return nil, errors.New("cache: loader is required")
	}
	if v, ok := s.Get(ctx, key); ok {
		return v, nil
	}

	v, err, _ := s.group.Do(key, func() (any, error) {
		if v, ok := s.Get(ctx, key); ok {
			return v, nil
		}
		v, err := loader(ctx)
		if err != nil {
			return nil, err
		}
		s.Set(ctx, key, v)
		return v, nil
	})
	return v, err
}

func (s *Store) stale(it item) bool {
	return !it.expires.IsZero() && !s.clock.Now().Before(it.expires)
}

// sweep drops expired entries. Callers hold mu.
func (s *Store) sweep() {
	if s.ttl <= 0 {
		return
	}
	for key, it := range s.items {
		if s.stale(it) {
			delete(s.items, key)
		}
	}
}
