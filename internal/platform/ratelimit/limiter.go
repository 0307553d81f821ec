// Package ratelimit implements fixed-window request limits keyed by client.
package ratelimit

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/jonboulle/clockwork"
	"github.com/redis/go-redis/v9"
)

// Decision is the outcome of one Allow call.
type Decision struct {
	Allowed    bool
	Remaining  int
	RetryAfter time.Duration
}

type Limiter interface {
	Allow(ctx context.Context, key string) (Decision, error)
}

// RedisLimiter counts hits with INCR and starts the window with EXPIRE on the
// first hit, so every instance shares one counter per key.
type RedisLimiter struct {
	client *redis.Client
	prefix string
	limit  int
	window time.Duration
}

func NewRedisLimiter(client *redis.Client, prefix string, limit int, window time.Duration) *RedisLimiter {
	if prefix == "" {
		prefix = "ratelimit:"
	}
	return &RedisLimiter{
		client: client,
		prefix: prefix,
		limit:  limit,
		window: window,
	}
}

// NewRedisClient parses a redis:// url and pings the server once.
func NewRedisClient(ctx context.Context, rawURL string) (*redis.Client, error) {
	opts, err := redis.ParseURL(rawURL)
	if err != nil {
		return nil, fmt.Errorf("parse redis url: %w", err)
	}

	client := redis.NewClient(opts)
	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("ping redis: %w", err)
	}
	return client, nil
}

func (l *RedisLimiter) Allow(ctx context.Context, key string) (Decision, error) {
	redisKey := l.prefix + key

	count, err := l.client.Incr(ctx, redisKey).Result()
	if err != nil {
		return Decision{}, fmt.Errorf("incr rate limit key: %w", err)
	}
	if count == 1 {
		if err := l.client.Expire(ctx, redisKey, l.window).Err(); err != nil {
			return Decision{}, fmt.Errorf("expire rate limit key: %w", err)
		}
	}

	if int(count) <= l.limit {
		return Decision{Allowed: true, Remaining: l.limit - int(count)}, nil
	}

	ttl, err := l.client.PTTL(ctx, redisKey).Result()
	if err != nil || ttl <= 0 {
		ttl = l.window
	}
	return Decision{RetryAfter: ttl}, nil
}

type window struct {
	start time.Time
	count int
}

// MemoryLimiter is the single-instance fallback used when no redis url is
// configured.
type MemoryLimiter struct {
	mu      sync.Mutex
	clock   clockwork.Clock
	limit   int
	window  time.Duration
	windows map[string]window
	lastGC  time.Time
}

func NewMemoryLimiter(limit int, windowSize time.Duration, clock clockwork.Clock) *MemoryLimiter {
	if clock == nil {
		clock = clockwork.NewRealClock()
	}
	return &MemoryLimiter{
		clock:   clock,
		limit:   limit,
		window:  windowSize,
		windows: make(map[string]window),
		lastGC:  clock.Now(),
	}
}

func (l *MemoryLimiter) Allow(_ context.Context, key string) (Decision, error) {
	now := l.clock.Now()

	l.mu.Lock()
	defer l.mu.Unlock()

	l.collect(now)

	w, ok := l.windows[key]
	if !ok || !now.Before(w.start.Add(l.window)) {
		w = window{start: now}
	}
	w.count++
	l.windows[key] = w

	if w.count <= l.limit {
		return Decision{Allowed: true, Remaining: l.limit - w.count}, nil
	}
	return Decision{RetryAfter: w.start.Add(l.window).Sub(now)}, nil
}

// collect drops expired windows at most once per window length.
func (l *MemoryLimiter) collect(now time.Time) {
	if now.Sub(l.lastGC) < l.window {
		return
	}
	for key, w := range l.windows {
		if !now.Before(w.start.Add(l.window)) {
			delete(l.windows, key)
		}
	}
	l.lastGC = now
}
