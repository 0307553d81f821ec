package cache

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/jonboulle/clockwork"
)

func TestStore_GetOrLoad_SharesConcurrentLoads(t *testing.T) {
	t.Parallel()

	store := NewStore(time.Minute)
	var calls atomic.Int32

	loader := func(context.Context) (any, error) {
		calls.Add(1)
		time.Sleep(20 * time.Millisecond)
		return "premier-league", nil
	}

	const workers = 32
	start := make(chan struct{})
	var wg sync.WaitGroup
	wg.Add(workers)
	errCh := make(chan error, workers)

	for i := 0; i < workers; i++ {
		go func() {
			defer wg.Done()
			<-start
			v, err := store.GetOrLoad(context.Background(), "tournament:slug:premier-league", loader)
			if err != nil {
				errCh <- err
				return
			}
			if got, _ := v.(string); got != "premier-league" {
				errCh <- errUnexpectedValue
			}
		}()
	}

	close(start)
	wg.Wait()
	close(errCh)
	for err := range errCh {
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
	}

	if got := calls.Load(); got != 1 {
		t.Fatalf("loader called %d times, want 1", got)
	}
}

func TestStore_GetOrLoad_UsesCachedValueAfterFirstLoad(t *testing.T) {
	t.Parallel()

	store := NewStore(time.Minute)
	var calls atomic.Int32

	loader := func(context.Context) (any, error) {
		calls.Add(1)
		return "cached", nil
	}

	if _, err := store.GetOrLoad(context.Background(), "k", loader); err != nil {
		t.Fatalf("first GetOrLoad error: %v", err)
	}
	if _, err := store.GetOrLoad(context.Background(), "k", loader); err != nil {
		t.Fatalf("second GetOrLoad error: %v", err)
	}

	if got := calls.Load(); got != 1 {
		t.Fatalf("loader called %d times, want 1", got)
	}
}

func TestStore_ExpiresWithClock(t *testing.T) {
	t.Parallel()

	clock := clockwork.NewFakeClockAt(time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC))
	store := NewStoreWithClock(5*time.Minute, clock)
	ctx := context.Background()

	store.Set(ctx, "venue:list", []string{"anfield"})
	clock.Advance(4 * time.Minute)
	if _, ok := store.Get(ctx, "venue:list"); !ok {
		t.Fatalf("expected entry before ttl")
	}

	clock.Advance(time.Minute)
	if _, ok := store.Get(ctx, "venue:list"); ok {
		t.Fatalf("expected entry to expire at ttl")
	}
}

func TestStore_GetOrLoad_DoesNotCacheErrors(t *testing.T) {
	t.Parallel()

	store := NewStore(time.Minute)
	var calls atomic.Int32
	failing := func(context.Context) (any, error) {
		calls.Add(1)
		return nil, errors.New("db down")
	}

	for i := 0; i < 2; i++ {
		if _, err := store.GetOrLoad(context.Background(), "manager:list", failing); err == nil {
			t.Fatalf("expected loader error")
		}
	}
	if got := calls.Load(); got != 2 {
		t.Fatalf("loader called %d times, want 2", got)
	}
}

func TestStore_DeletePrefix(t *testing.T) {
	t.Parallel()

	store := NewStore(0)
	ctx := context.Background()
	store.Set(ctx, "venue:list", 1)
	store.Set(ctx, "venue:slug:anfield", 2)
	store.Set(ctx, "manager:list", 3)

	store.DeletePrefix(ctx, "venue:")

	if _, ok := store.Get(ctx, "venue:slug:anfield"); ok {
		t.Fatalf("expected venue keys to be dropped")
	}
	if _, ok := store.Get(ctx, "manager:list"); !ok {
		t.Fatalf("expected manager key to remain")
	}
}

func TestStore_NoTTLKeepsEntries(t *testing.T) {
	t.Parallel()

	clock := clockwork.NewFakeClock()
	store := NewStoreWithClock(0, clock)
	store.Set(context.Background(), "tournament:slug:laliga", 8)

	clock.Advance(365 * 24 * time.Hour)
	if v, ok := store.Get(context.Background(), "tournament:slug:laliga"); !ok || v != 8 {
		t.Fatalf("expected entry to survive without ttl, got %v %v", v, ok)
	}
}

func TestTyped_LookupCachesMisses(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	venues := NewTyped[string](NewStore(time.Minute), "venue:slug:")
	var calls atomic.Int32
	loader := func(context.Context) (string, bool, error) {
		calls.Add(1)
		return "", false, nil
	}

	for i := 0; i < 2; i++ {
		_, found, err := venues.Lookup(ctx, "nowhere", loader)
		if err != nil || found {
			t.Fatalf("expected cached miss, got found=%v err=%v", found, err)
		}
	}
	if got := calls.Load(); got != 1 {
		t.Fatalf("loader called %d times, want 1", got)
	}

	venues.Invalidate(ctx)
	if _, _, err := venues.Lookup(ctx, "nowhere", loader); err != nil {
		t.Fatalf("lookup after invalidate: %v", err)
	}
	if got := calls.Load(); got != 2 {
		t.Fatalf("expected reload after invalidate, got %d calls", got)
	}
}

func TestTyped_LoadPropagatesError(t *testing.T) {
	t.Parallel()

	lists := NewTyped[[]int](NewStore(time.Minute), "venue:list:")
	_, err := lists.Load(context.Background(), "all", func(context.Context) ([]int, error) {
		return nil, errors.New("db down")
	})
	if err == nil {
		t.Fatalf("expected loader error")
	}
}

var errUnexpectedValue = errors.New("unexpected loaded value")
