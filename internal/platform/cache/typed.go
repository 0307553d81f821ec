package cache

import "context"

// Typed is a view of a Store for one value type under one key prefix.
type Typed[T any] struct {
	store  *Store
	prefix string
}

func NewTyped[T any](store *Store, prefix string) Typed[T] {
	return Typed[T]{store: store, prefix: prefix}
}

func (t Typed[T]) Load(ctx context.Context, key string, loader func(context.Context) (T, error)) (T, error) {
	v, err := t.store.GetOrLoad(ctx, t.prefix+key, func(ctx context.Context) (any, error) {
		return loader(ctx)
	})
	if err != nil {
		var zero T
		return zero, err
	}
	out, _ := v.(T)
	return out, nil
}

type lookup[T any] struct {
	value T
	found bool
}

// Lookup caches misses as well as hits.
func (t Typed[T]) Lookup(ctx context.Context, key string, loader func(context.Context) (T, bool, error)) (T, bool, error) {
	v, err := t.store.GetOrLoad(ctx, t.prefix+key, func(ctx context.Context) (any, error) {
		value, found, err := loader(ctx)
		if err != nil {
			return nil, err
		}
		return lookup[T]{value: value, found: found}, nil
	})
	if err != nil {
		var zero T
		return zero, false, err
	}
	l, _ := v.(lookup[T])
	return l.value, l.found, nil
}

func (t Typed[T]) Forget(ctx context.Context, key string) {
	t.store.Delete(ctx, t.prefix+key)
}

// Invalidate drops every key of this view.
func (t Typed[T]) Invalidate(ctx context.Context) {
	t.store.DeletePrefix(ctx, t.prefix)
}
