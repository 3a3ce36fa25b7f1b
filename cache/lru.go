package cache

import (
	"fmt"

	lru "github.com/hashicorp/golang-lru/v2"
)

// DefaultLRUSize bounds the per-run cache when no size is configured.
const DefaultLRUSize = 10000

// LRUCache is a bounded, thread-safe cache that evicts the least recently used entry.
type LRUCache struct {
	inner *lru.Cache[string, string]
}

// NewLRUCache creates an LRU cache holding at most size entries.
// A size of 0 or less uses DefaultLRUSize.
func NewLRUCache(size int) (*LRUCache, error) {
	if size <= 0 {
		size = DefaultLRUSize
	}
	inner, err := lru.New[string, string](size)
	if err != nil {
		return nil, fmt.Errorf("creating LRU cache: %w", err)
	}
	return &LRUCache{inner: inner}, nil
}

// Get retrieves a value and marks it recently used.
func (c *LRUCache) Get(key string) (string, bool) {
	return c.inner.Get(key)
}

// Set stores a value, evicting the oldest entry when full.
func (c *LRUCache) Set(key string, value string) error {
	c.inner.Add(key, value)
	return nil
}

// Len returns the number of cached entries.
func (c *LRUCache) Len() int {
	return c.inner.Len()
}

// Clear removes all entries.
func (c *LRUCache) Clear() {
	c.inner.Purge()
}

// Entries returns a copy of every cached entry.
func (c *LRUCache) Entries() map[string]string {
	keys := c.inner.Keys()
	out := make(map[string]string, len(keys))
	for _, k := range keys {
		if v, ok := c.inner.Peek(k); ok {
			out[k] = v
		}
	}
	return out
}

var _ EnumerableCache = (*LRUCache)(nil)
