package cache

import (
	"sync"
	"testing"
	"time"
)

// fakeClock is advanced by hand so TTL tests do not sleep.
type fakeClock struct {
	mu sync.Mutex
	t  time.Time
}

func (f *fakeClock) Now() time.Time {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.t
}

func (f *fakeClock) Advance(d time.Duration) {
	f.mu.Lock()
	f.t = f.t.Add(d)
	f.mu.Unlock()
}

func newClockedCache(ttl time.Duration) (*InMemoryCache, *fakeClock) {
	clock := &fakeClock{t: time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)}
	c := NewInMemoryCache(ttl)
	c.now = clock.Now
	return c, clock
}

func TestInMemoryCache_GetSet(t *testing.T) {
	c := NewInMemoryCache(time.Hour)

	if err := c.Set("key1", "دجاج"); err != nil {
		t.Fatalf("Set failed: %v", err)
	}

	val, ok := c.Get("key1")
	if !ok {
		t.Error("Get should return true for existing key")
	}
	if val != "دجاج" {
		t.Errorf("Get returned %q, want %q", val, "دجاج")
	}

	val, ok = c.Get("nonexistent")
	if ok {
		t.Error("Get should return false for missing key")
	}
	if val != "" {
		t.Errorf("Get should return empty string for missing key, got %q", val)
	}
}

func TestInMemoryCache_TTL(t *testing.T) {
	c, clock := newClockedCache(time.Minute)

	c.Set("key1", "value1")

	if val, ok := c.Get("key1"); !ok || val != "value1" {
		t.Error("Value should be available immediately after set")
	}

	clock.Advance(61 * time.Second)

	val, ok := c.Get("key1")
	if ok {
		t.Error("Value should be expired after TTL")
	}
	if val != "" {
		t.Errorf("Expired value should return empty string, got %q", val)
	}
	if c.Len() != 0 {
		t.Errorf("Expired entry should be evicted on read, Len = %d", c.Len())
	}
}

func TestInMemoryCache_NoTTL(t *testing.T) {
	c, clock := newClockedCache(0)

	c.Set("key1", "value1")
	clock.Advance(1000 * time.Hour)

	if val, ok := c.Get("key1"); !ok || val != "value1" {
		t.Error("Value should be available with no TTL")
	}
}

func TestInMemoryCache_Prune(t *testing.T) {
	c, clock := newClockedCache(time.Minute)

	c.Set("old1", "a")
	c.Set("old2", "b")
	clock.Advance(30 * time.Second)
	c.Set("fresh", "c")
	clock.Advance(45 * time.Second)

	if removed := c.Prune(); removed != 2 {
		t.Errorf("Prune removed %d, want 2", removed)
	}
	if c.Len() != 1 {
		t.Errorf("Len after prune = %d, want 1", c.Len())
	}
	if _, ok := c.Get("fresh"); !ok {
		t.Error("fresh entry should survive prune")
	}
}

func TestInMemoryCache_Overwrite(t *testing.T) {
	c := NewInMemoryCache(time.Hour)

	c.Set("key1", "value1")
	c.Set("key1", "value2")

	val, ok := c.Get("key1")
	if !ok {
		t.Error("Key should exist")
	}
	if val != "value2" {
		t.Errorf("Value should be overwritten, got %q, want %q", val, "value2")
	}
}

func TestInMemoryCache_Len(t *testing.T) {
	c := NewInMemoryCache(time.Hour)

	if c.Len() != 0 {
		t.Errorf("Empty cache should have length 0, got %d", c.Len())
	}

	c.Set("key1", "value1")
	c.Set("key2", "value2")

	if c.Len() != 2 {
		t.Errorf("Cache should have length 2, got %d", c.Len())
	}
}

func TestInMemoryCache_Clear(t *testing.T) {
	c := NewInMemoryCache(time.Hour)

	c.Set("key1", "value1")
	c.Set("key2", "value2")
	c.Clear()

	if c.Len() != 0 {
		t.Errorf("Cleared cache should have length 0, got %d", c.Len())
	}
	if _, ok := c.Get("key1"); ok {
		t.Error("Cleared cache should not contain any keys")
	}
}

func TestInMemoryCache_EntriesSkipsExpired(t *testing.T) {
	c, clock := newClockedCache(time.Minute)

	c.Set("old", "a")
	clock.Advance(2 * time.Minute)
	c.Set("new", "b")

	got := c.Entries()
	if len(got) != 1 || got["new"] != "b" {
		t.Errorf("Entries() = %v, want only new", got)
	}
}

func TestInMemoryCache_Concurrent(t *testing.T) {
	c := NewInMemoryCache(time.Hour)
	var wg sync.WaitGroup

	for i := 0; i < 100; i++ {
		wg.Add(2)
		go func(i int) {
			defer wg.Done()
			c.Set(string(rune('a'+i%26)), "value")
		}(i)
		go func(i int) {
			defer wg.Done()
			c.Get(string(rune('a' + i%26)))
		}(i)
	}

	wg.Wait()
	if c.Len() > 26 {
		t.Errorf("Len = %d, want at most 26", c.Len())
	}
}

var _ TranslationCache = (*InMemoryCache)(nil)
