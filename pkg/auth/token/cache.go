// Package token implements the Token Validator + Cache component: bounded,
// time-windowed memoization of upstream introspection results.
package token

import (
	"sync"
	"time"

	lru "github.com/hashicorp/golang-lru/v2"

	"github.com/oauthgw/prgateway/pkg/auth"
)

// cacheEntry is the unit the cache stores. It is never mutated after
// insertion — a refreshed validation replaces the entry outright.
type cacheEntry struct {
	principal  auth.Principal
	admittedAt time.Time
}

// Cache is a thread-safe, bounded LRU cache of validated Principals keyed
// by raw bearer token, with a uniform per-entry time-to-live checked lazily
// on read. The lock guarding the underlying LRU map is held only across
// the lookup/insert step — callers must never call Get/Set while holding
// it themselves, and the cache itself never performs network IO.
type Cache struct {
	mu       sync.Mutex
	lru      *lru.Cache[string, *cacheEntry]
	capacity int
	ttl      time.Duration
}

// NewCache builds a Cache with the given capacity C and TTL T. Both must be
// positive.
func NewCache(capacity int, ttl time.Duration) (*Cache, error) {
	backing, err := lru.New[string, *cacheEntry](capacity)
	if err != nil {
		return nil, err
	}
	return &Cache{lru: backing, capacity: capacity, ttl: ttl}, nil
}

// Get returns the cached Principal for token if an entry exists and is
// still fresh (admitted within the last TTL). A stale or absent entry
// reports ok=false; the caller must re-introspect.
func (c *Cache) Get(token string) (auth.Principal, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	entry, found := c.lru.Get(token)
	if !found {
		return auth.Principal{}, false
	}
	if time.Since(entry.admittedAt) >= c.ttl {
		return auth.Principal{}, false
	}
	return entry.principal, true
}

// Set inserts or replaces the entry for token, evicting the
// least-recently-used entry first if the cache is at capacity. Racing
// concurrent writers for the same token are permitted; entries are
// value-idempotent so the last writer winning is harmless.
func (c *Cache) Set(token string, principal auth.Principal) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.lru.Add(token, &cacheEntry{principal: principal, admittedAt: time.Now()})
}

// Stats reports the only observable side-channel the spec allows for
// operational monitoring: current size and configured capacity.
type Stats struct {
	Size     int
	Capacity int
}

// CacheStats returns the cache's current size and capacity.
func (c *Cache) CacheStats() Stats {
	c.mu.Lock()
	defer c.mu.Unlock()

	return Stats{Size: c.lru.Len(), Capacity: c.capacity}
}
