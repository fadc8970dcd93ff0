/*
Package ttlcache provides a small keyed cache whose entries are valid for a
fixed time-to-live window since they were stored.

Each domain service in this repository keys one of these caches by its query
parameters so that repeat reads within the TTL window are served without a
network round trip. Concurrent fetches for the same key share a single loader
invocation via singleflight.
*/
package ttlcache

import (
	"context"
	"fmt"
	"sync"
	"time"

	"golang.org/x/sync/singleflight"
)

type entry[V any] struct {
	value     V
	fetchedAt time.Time
}

// Cache is a keyed TTL cache safe for concurrent use.
//
// A TTL of zero (or negative) disables expiry entirely; entries then live
// until explicitly invalidated. That mode exists for values keyed by identity
// rather than query, such as per-user carts.
type Cache[K comparable, V any] struct {
	// Now supplies the clock. Exposed so tests can pin time around the
	// TTL boundary. Defaults to time.Now.
	Now func() time.Time

	ttl   time.Duration
	group singleflight.Group

	mu      sync.RWMutex
	entries map[K]entry[V]
}

// New creates a cache whose entries are valid while now - fetchedAt < ttl.
func New[K comparable, V any](ttl time.Duration) *Cache[K, V] {
	return &Cache[K, V]{
		Now:     time.Now,
		ttl:     ttl,
		entries: make(map[K]entry[V]),
	}
}

// Get returns the cached value for key if a valid entry exists.
func (c *Cache[K, V]) Get(key K) (V, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	e, ok := c.entries[key]
	if !ok || !c.valid(e) {
		var zero V
		return zero, false
	}
	return e.value, true
}

// Put stores value under key with fetchedAt = now, replacing any prior entry.
func (c *Cache[K, V]) Put(key K, value V) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries[key] = entry[V]{value: value, fetchedAt: c.Now()}
}

// Invalidate evicts the entry for key, if any.
func (c *Cache[K, V]) Invalidate(key K) {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.entries, key)
}

// Clear evicts every entry.
func (c *Cache[K, V]) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries = make(map[K]entry[V])
}

// Len reports the number of stored entries, valid or not.
func (c *Cache[K, V]) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.entries)
}

// Fetch returns the cached value for key when a valid entry exists, otherwise
// it invokes loader, stores the result, and returns it.
//
// Concurrent Fetch calls for the same key are deduplicated: one loader runs
// and every caller receives its result. Loader errors are returned to all
// waiters and nothing is cached.
func (c *Cache[K, V]) Fetch(ctx context.Context, key K, loader func(ctx context.Context) (V, error)) (V, error) {
	if v, ok := c.Get(key); ok {
		return v, nil
	}

	out, err, _ := c.group.Do(fmt.Sprint(key), func() (any, error) {
		// A concurrent flight may have populated the entry between the
		// miss above and this callback running.
		if v, ok := c.Get(key); ok {
			return v, nil
		}

		v, err := loader(ctx)
		if err != nil {
			return nil, err
		}

		c.Put(key, v)
		return v, nil
	})
	if err != nil {
		var zero V
		return zero, err
	}

	return out.(V), nil
}

func (c *Cache[K, V]) valid(e entry[V]) bool {
	if c.ttl <= 0 {
		return true
	}
	return c.Now().Sub(e.fetchedAt) < c.ttl
}
