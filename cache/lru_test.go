package cache

import (
	"fmt"
	"sync"
	"testing"
)

func TestLRUCache_GetSet(t *testing.T) {
	c, err := NewLRUCache(4)
	if err != nil {
		t.Fatalf("NewLRUCache failed: %v", err)
	}

	c.Set("k", "شاي")
	if val, ok := c.Get("k"); !ok || val != "شاي" {
		t.Errorf("Get(k) = %q, %v", val, ok)
	}
	if _, ok := c.Get("missing"); ok {
		t.Error("Get should miss for unknown key")
	}
}

func TestLRUCache_EvictsLeastRecentlyUsed(t *testing.T) {
	c, _ := NewLRUCache(2)

	c.Set("a", "1")
	c.Set("b", "2")
	c.Get("a") // a is now most recent
	c.Set("c", "3")

	if _, ok := c.Get("b"); ok {
		t.Error("b should have been evicted")
	}
	if _, ok := c.Get("a"); !ok {
		t.Error("a should survive eviction")
	}
	if c.Len() != 2 {
		t.Errorf("Len = %d, want 2", c.Len())
	}
}

func TestLRUCache_DefaultSize(t *testing.T) {
	c, err := NewLRUCache(0)
	if err != nil {
		t.Fatalf("NewLRUCache(0) failed: %v", err)
	}
	for i := 0; i < 100; i++ {
		c.Set(fmt.Sprintf("k%d", i), "v")
	}
	if c.Len() != 100 {
		t.Errorf("Len = %d, want 100", c.Len())
	}
}

func TestLRUCache_EntriesAndClear(t *testing.T) {
	c, _ := NewLRUCache(8)
	c.Set("a", "1")
	c.Set("b", "2")

	got := c.Entries()
	if len(got) != 2 || got["a"] != "1" || got["b"] != "2" {
		t.Errorf("Entries() = %v", got)
	}

	c.Clear()
	if c.Len() != 0 {
		t.Errorf("Len after Clear = %d", c.Len())
	}
}

func TestLRUCache_Concurrent(t *testing.T) {
	c, _ := NewLRUCache(16)
	var wg sync.WaitGroup
	for i := 0; i < 64; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			key := fmt.Sprintf("k%d", i%32)
			c.Set(key, "v")
			c.Get(key)
		}(i)
	}
	wg.Wait()
	if c.Len() > 16 {
		t.Errorf("Len = %d exceeds capacity", c.Len())
	}
}

var _ TranslationCache = (*LRUCache)(nil)
