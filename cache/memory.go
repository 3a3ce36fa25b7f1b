package cache

import (
	"sync"
	"time"
)

type cacheEntry struct {
	value  string
	stored time.Time
}

// InMemoryCache is a thread-safe map cache with an optional TTL.
type InMemoryCache struct {
	mu    sync.RWMutex
	items map[string]cacheEntry
	ttl   time.Duration
	now   func() time.Time
}

// NewInMemoryCache creates a cache whose entries expire after ttl.
// A ttl of 0 or less disables expiry.
func NewInMemoryCache(ttl time.Duration) *InMemoryCache {
	if ttl < 0 {
		ttl = 0
	}
	return &InMemoryCache{
		items: make(map[string]cacheEntry),
		ttl:   ttl,
		now:   time.Now,
	}
}

func (c *InMemoryCache) expired(e cacheEntry, at time.Time) bool {
	return c.ttl > 0 && at.Sub(e.stored) > c.ttl
}

// Get returns the value for key unless it is missing or expired.
func (c *InMemoryCache) Get(key string) (string, bool) {
	c.mu.RLock()
	entry, ok := c.items[key]
	c.mu.RUnlock()
	if !ok {
		return "", false
	}

	if c.expired(entry, c.now()) {
		c.mu.Lock()
		// Re-check: a concurrent Set may have refreshed the entry.
		if cur, ok := c.items[key]; ok && c.expired(cur, c.now()) {
			delete(c.items, key)
		}
		c.mu.Unlock()
		return "", false
	}
	return entry.value, true
}

// Set stores a value.
func (c *InMemoryCache) Set(key string, value string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.items[key] = cacheEntry{value: value, stored: c.now()}
	return nil
}

// Len returns the number of entries, expired ones included.
func (c *InMemoryCache) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.items)
}

// Prune drops expired entries and returns how many were removed.
func (c *InMemoryCache) Prune() int {
	if c.ttl == 0 {
		return 0
	}
	c.mu.Lock()
	defer c.mu.Unlock()

	at := c.now()
	removed := 0
	for k, e := range c.items {
		if c.expired(e, at) {
			delete(c.items, k)
			removed++
		}
	}
	return removed
}

// Clear removes all entries.
func (c *InMemoryCache) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.items = make(map[string]cacheEntry)
}

// Entries returns all non-expired entries.
func (c *InMemoryCache) Entries() map[string]string {
	c.mu.RLock()
	defer c.mu.RUnlock()

	at := c.now()
	out := make(map[string]string, len(c.items))
	for k, e := range c.items {
		if c.expired(e, at) {
			continue
		}
		out[k] = e.value
	}
	return out
}

var _ EnumerableCache = (*InMemoryCache)(nil)
