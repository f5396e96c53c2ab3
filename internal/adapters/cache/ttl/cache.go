package ttl

import (
	"context"
	"sync"
	"time"

	"github.com/bnema/matchday-bot/internal/ports"
)

// Metrics receives cache events. NoopMetrics is used when none is configured.
type Metrics interface {
	Hit()
	Miss()
	Expire()
}

type NoopMetrics struct{}

func (NoopMetrics) Hit()    {}
func (NoopMetrics) Miss()   {}
func (NoopMetrics) Expire() {}

type entry[T any] struct {
	value    T
	storedAt time.Time
}

// Cache maps string keys to values that expire ttl after they were stored. Expired entries are
// dropped lazily on Get and by Sweep.
type Cache[T any] struct {
	ttl     time.Duration
	clock   ports.Clock
	metrics Metrics

	mu      sync.RWMutex
	entries map[string]entry[T]
}

type Option[T any] func(*Cache[T])

func WithClock[T any](clock ports.Clock) Option[T] {
	return func(c *Cache[T]) {
		if clock != nil {
			c.clock = clock
		}
	}
}

func WithMetrics[T any](metrics Metrics) Option[T] {
	return func(c *Cache[T]) {
		if metrics != nil {
			c.metrics = metrics
		}
	}
}

func New[T any](ttl time.Duration, opts ...Option[T]) *Cache[T] {
	c := &Cache[T]{
		ttl:     ttl,
		clock:   ports.SystemClock{},
		metrics: NoopMetrics{},
		entries: map[string]entry[T]{},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

func (c *Cache[T]) TTL() time.Duration {
	return c.ttl
}

func (c *Cache[T]) Get(key string) (T, bool) {
	now := c.clock.Now()

	c.mu.RLock()
	ent, ok := c.entries[key]
	c.mu.RUnlock()

	var zero T
	if !ok {
		c.metrics.Miss()
		return zero, false
	}

	if c.expired(ent, now) {
		c.mu.Lock()
		// A concurrent Set may have refreshed the key since the read lock was released.
		if current, ok := c.entries[key]; ok && c.expired(current, now) {
			delete(c.entries, key)
		}
		c.mu.Unlock()

		c.metrics.Expire()
		c.metrics.Miss()
		return zero, false
	}

	c.metrics.Hit()
	return ent.value, true
}

func (c *Cache[T]) Set(key string, value T) {
	now := c.clock.Now()

	c.mu.Lock()
	c.entries[key] = entry[T]{value: value, storedAt: now}
	c.mu.Unlock()
}

func (c *Cache[T]) Delete(key string) {
	c.mu.Lock()
	delete(c.entries, key)
	c.mu.Unlock()
}

// Sweep removes every entry older than the TTL and returns how many were removed.
func (c *Cache[T]) Sweep(now time.Time) int {
	c.mu.Lock()
	defer c.mu.Unlock()

	removed := 0
	for key, ent := range c.entries {
		if c.expired(ent, now) {
			delete(c.entries, key)
			removed++
		}
	}

	for i := 0; i < removed; i++ {
		c.metrics.Expire()
	}

	return removed
}

// Len counts stored entries, expired ones included until they are swept.
func (c *Cache[T]) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()

	return len(c.entries)
}

// Run sweeps every interval until ctx is done.
func (c *Cache[T]) Run(ctx context.Context, interval time.Duration) {
	if interval <= 0 {
		return
	}

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			c.Sweep(c.clock.Now())
		}
	}
}

func (c *Cache[T]) expired(ent entry[T], now time.Time) bool {
	return now.Sub(ent.storedAt) > c.ttl
}
