// Package cache provides a small in-memory TTL cache.
//
// Entries are pure functions of their key, so concurrent writers racing on the
// same key are harmless; the map itself is guarded by a mutex. Expired entries
// are dropped lazily on access, there is no background sweep.
package cache

import (
	"sync"
	"time"
)

// Clock abstracts time.Now so tests can control expiry.
type Clock interface {
	Now() time.Time
}

// RealClock is the production Clock backed by time.Now.
type RealClock struct{}

// Now returns the current wall-clock time.
func (RealClock) Now() time.Time { return time.Now() }

type entry[V any] struct {
	value     V
	expiresAt time.Time
}

// TTL is a string-keyed cache whose entries expire after a per-entry duration.
type TTL[V any] struct {
	mu      sync.RWMutex
	entries map[string]entry[V]
	clock   Clock
}

// New creates a TTL cache. A nil clock uses RealClock.
func New[V any](clock Clock) *TTL[V] {
	if clock == nil {
		clock = RealClock{}
	}
	return &TTL[V]{
		entries: make(map[string]entry[V]),
		clock:   clock,
	}
}

// Get returns the live value for key. Expired entries are evicted and reported
// as absent; a past-expiry value is never returned.
func (c *TTL[V]) Get(key string) (V, bool) {
	c.mu.RLock()
	e, ok := c.entries[key]
	c.mu.RUnlock()

	if !ok {
		var zero V
		return zero, false
	}
	if !c.clock.Now().Before(e.expiresAt) {
		c.mu.Lock()
		// Re-check under the write lock; a fresher entry may have landed.
		if cur, still := c.entries[key]; still && !c.clock.Now().Before(cur.expiresAt) {
			delete(c.entries, key)
		}
		c.mu.Unlock()
		var zero V
		return zero, false
	}
	return e.value, true
}

// Set stores value under key for ttl. Last writer wins.
func (c *TTL[V]) Set(key string, value V, ttl time.Duration) {
	c.mu.Lock()
	c.entries[key] = entry[V]{
		value:     value,
		expiresAt: c.clock.Now().Add(ttl),
	}
	c.mu.Unlock()
}

// Len returns the number of stored entries, expired ones included.
func (c *TTL[V]) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.entries)
}
