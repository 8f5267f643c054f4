// Package cache provides a time-boxed in-memory memo for expensive pipeline
// results, keyed by tag.
package cache

import (
	"context"
	"log"
	"sync"
	"time"
)

// Default TTLs for the two caches the service runs.
const (
	DefaultReportTTL   = 600 * time.Second
	DefaultSnapshotTTL = 60 * time.Second
)

type entry[T any] struct {
	value     T
	createdAt time.Time
	expiresAt time.Time
}

// Cache memoizes computed values per tag with a fixed TTL. Computation is
// best-effort single-flight: concurrent cold requests may each run the
// compute function, but only the first stored result is retained for the
// freshness window.
type Cache[T any] struct {
	mu      sync.RWMutex
	entries map[string]entry[T]
	ttl     time.Duration
	now     func() time.Time
}

// New creates a cache with the given TTL.
func New[T any](ttl time.Duration) *Cache[T] {
	return NewWithClock[T](ttl, time.Now)
}

// NewWithClock creates a cache with an injected clock.
func NewWithClock[T any](ttl time.Duration, now func() time.Time) *Cache[T] {
	return &Cache[T]{
		entries: make(map[string]entry[T]),
		ttl:     ttl,
		now:     now,
	}
}

// Lookup returns the unexpired value for tag, if any.
func (c *Cache[T]) Lookup(tag string) (T, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	e, ok := c.entries[tag]
	if !ok || !c.now().Before(e.expiresAt) {
		var zero T
		return zero, false
	}
	return e.value, true
}

// GetOrCompute returns the cached value for tag or computes and stores a new
// one. The second return value reports whether the result came from cache.
func (c *Cache[T]) GetOrCompute(ctx context.Context, tag string, compute func(context.Context) (T, error)) (T, bool, error) {
	if v, ok := c.Lookup(tag); ok {
		return v, true, nil
	}

	log.Printf("[Cache] Miss for tag %q, computing...", tag)
	v, err := compute(ctx)
	if err != nil {
		var zero T
		return zero, false, err
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	// A concurrent computation may have finished first; its result owns
	// this freshness window.
	if e, ok := c.entries[tag]; ok && c.now().Before(e.expiresAt) {
		log.Printf("[Cache] Discarding duplicate computation for tag %q", tag)
		return e.value, false, nil
	}

	c.store(tag, v)
	return v, false, nil
}

// ForceFresh always recomputes and replaces the cached value for tag.
func (c *Cache[T]) ForceFresh(ctx context.Context, tag string, compute func(context.Context) (T, error)) (T, error) {
	log.Printf("[Cache] Forced refresh for tag %q", tag)
	v, err := compute(ctx)
	if err != nil {
		var zero T
		return zero, err
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	c.store(tag, v)
	return v, nil
}

// Invalidate expires the entry for tag. Returns whether an entry existed.
func (c *Cache[T]) Invalidate(tag string) bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	_, ok := c.entries[tag]
	if ok {
		delete(c.entries, tag)
		log.Printf("[Cache] Invalidated tag %q", tag)
	}
	return ok
}

// InvalidateAll expires every entry and returns the cleared tags.
func (c *Cache[T]) InvalidateAll() []string {
	c.mu.Lock()
	defer c.mu.Unlock()

	tags := make([]string, 0, len(c.entries))
	for tag := range c.entries {
		tags = append(tags, tag)
	}
	c.entries = make(map[string]entry[T])

	if len(tags) > 0 {
		log.Printf("[Cache] Invalidated %d tags", len(tags))
	}
	return tags
}

// store must be called with the write lock held.
func (c *Cache[T]) store(tag string, v T) {
	now := c.now()
	c.entries[tag] = entry[T]{
		value:     v,
		createdAt: now,
		expiresAt: now.Add(c.ttl),
	}
}
