package main

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/ZaguanLabs/menuval/cache"
	"github.com/ZaguanLabs/menuval/internal/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestBuildCache_Kind(t *testing.T) {
	tests := []struct {
		name string
		cfg  config.CacheConfig
		want any
	}{
		{"bounded", config.CacheConfig{Size: 100, TTL: time.Hour}, &cache.LRUCache{}},
		{"unbounded with ttl", config.CacheConfig{Size: 0, TTL: time.Hour}, &cache.InMemoryCache{}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			a := &app{cfg: &config.Config{Cache: tt.cfg}, logger: zap.NewNop()}
			c, persist, err := a.buildCache(t.Context())
			require.NoError(t, err)
			defer persist()
			assert.IsType(t, tt.want, c)
		})
	}
}

func TestBuildCache_InMemoryPersists(t *testing.T) {
	file := filepath.Join(t.TempDir(), "cache.json")
	a := &app{
		cfg:    &config.Config{Cache: config.CacheConfig{Size: 0, TTL: time.Hour, File: file}},
		logger: zap.NewNop(),
	}

	c, persist, err := a.buildCache(t.Context())
	require.NoError(t, err)
	require.NoError(t, c.Set("k:en:ar", "شاي"))
	persist()

	data, err := os.ReadFile(file)
	require.NoError(t, err)
	assert.Contains(t, string(data), "شاي")

	// A fresh run reloads the saved entry.
	c2, _, err := a.buildCache(t.Context())
	require.NoError(t, err)
	got, ok := c2.Get("k:en:ar")
	assert.True(t, ok)
	assert.Equal(t, "شاي", got)
}
