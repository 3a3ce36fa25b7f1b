package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/ZaguanLabs/menuval"
	"github.com/ZaguanLabs/menuval/cache"
	"github.com/ZaguanLabs/menuval/internal/config"
	"github.com/ZaguanLabs/menuval/provider"
	"github.com/ZaguanLabs/menuval/source"
	"go.uber.org/zap"
)

// runtime holds everything a command needs to process items.
type runtime struct {
	proc  *menuval.Processor
	cache menuval.TranslationCache
	close func()
}

func (a *app) buildSource(ctx context.Context) (menuval.ConfigSource, error) {
	c := a.cfg.Source
	return source.New(ctx, source.Options{
		Kind:            c.Kind,
		SpreadsheetID:   c.SpreadsheetID,
		CredentialsFile: c.CredentialsFile,
		APIKey:          c.APIKey,
		Path:            c.Path,
	})
}

func (a *app) buildProvider(ctx context.Context) (menuval.Provider, error) {
	c := a.cfg.Provider

	var p menuval.Provider
	switch strings.ToLower(c.Kind) {
	case "google":
		g, err := provider.NewGoogleProvider(ctx, provider.GoogleConfig{
			APIKey:          c.APIKey,
			CredentialsFile: c.CredentialsFile,
			Model:           c.Model,
		})
		if err != nil {
			return nil, err
		}
		p = g
	case "openai":
		if c.APIKey == "" {
			return nil, errors.New("OpenAI API key required (--api-key or MENUVAL_PROVIDER_API_KEY)")
		}
		p = provider.NewOpenAIProvider(provider.OpenAIConfig{
			APIKey:  c.APIKey,
			Model:   c.Model,
			BaseURL: c.BaseURL,
		})
	case "mock":
		p = provider.NewMockProvider()
	default:
		return nil, nil
	}

	retry := menuval.DefaultRetryConfig()
	retry.MaxRetries = c.MaxRetries
	return menuval.ProviderStack{
		Retry:         retry,
		RatePerMinute: c.RatePerMinute,
		MaxInFlight:   c.Concurrency,
	}.Wrap(p), nil
}

// localCache is a process-local cache that can be saved to cache.file.
type localCache interface {
	cache.EnumerableCache
	Len() int
}

// newLocalCache picks the bounded LRU cache, or with cache.size 0 an
// unbounded map whose entries expire after cache.ttl.
func newLocalCache(c config.CacheConfig) (localCache, error) {
	if c.Size == 0 {
		return cache.NewInMemoryCache(c.TTL), nil
	}
	return cache.NewLRUCache(c.Size)
}

// buildCache returns the translation cache and a function that persists it.
func (a *app) buildCache(ctx context.Context) (menuval.TranslationCache, func(), error) {
	c := a.cfg.Cache

	if c.RedisURL != "" {
		rc, err := cache.NewRedisCache(ctx, cache.RedisConfig{URL: c.RedisURL, TTL: c.TTL})
		if err != nil {
			return nil, nil, err
		}
		return rc, func() { _ = rc.Close() }, nil
	}

	lc, err := newLocalCache(c)
	if err != nil {
		return nil, nil, err
	}
	if c.File == "" {
		return lc, func() {}, nil
	}

	if _, statErr := os.Stat(c.File); statErr == nil {
		res, err := cache.NewImporter(lc).ImportFromFile(c.File)
		if err != nil {
			return nil, nil, fmt.Errorf("loading cache file: %w", err)
		}
		a.logger.Info("translation cache loaded",
			zap.String("file", c.File),
			zap.Int("entries", res.Imported),
			zap.Int("failed", res.Failed),
		)
	}

	persist := func() {
		if mc, ok := lc.(*cache.InMemoryCache); ok {
			if n := mc.Prune(); n > 0 {
				a.logger.Debug("expired cache entries dropped", zap.Int("entries", n))
			}
		}
		meta := map[string]string{"version": menuval.FullVersion()}
		if err := cache.NewExporter(lc).ExportToFile(c.File, meta); err != nil {
			a.logger.Warn("saving translation cache failed", zap.String("file", c.File), zap.Error(err))
			return
		}
		a.logger.Debug("translation cache saved", zap.String("file", c.File), zap.Int("entries", lc.Len()))
	}
	return lc, persist, nil
}

func (a *app) buildRuntime(ctx context.Context) (*runtime, error) {
	policy, err := menuval.ParseConflictPolicy(a.cfg.Terminology.Conflicts)
	if err != nil {
		return nil, err
	}

	src, err := a.buildSource(ctx)
	if err != nil {
		return nil, err
	}
	p, err := a.buildProvider(ctx)
	if err != nil {
		return nil, err
	}
	tc, closeCache, err := a.buildCache(ctx)
	if err != nil {
		return nil, err
	}

	store := menuval.NewSnapshotStore(src,
		menuval.WithSnapshotTTL(a.cfg.Snapshot.TTL),
		menuval.WithFetchTimeout(a.cfg.Source.Timeout),
		menuval.WithTermOptions(menuval.WithConflictPolicy(policy)),
		menuval.WithStoreLogger(a.logger),
	)

	proc := menuval.NewProcessor(store, p,
		menuval.WithCache(tc),
		menuval.WithCallTimeout(a.cfg.Provider.Timeout),
		menuval.WithLogger(a.logger),
		menuval.WithWorkers(a.cfg.Workers),
	)
	return &runtime{proc: proc, cache: tc, close: closeCache}, nil
}

func (a *app) summary(format string, args ...any) {
	if !a.quiet {
		fmt.Fprintf(a.stderr, format, args...)
	}
}

func (a *app) printReport(r menuval.BatchReport) {
	a.summary("\nDone in %v\n", r.Elapsed.Round(time.Millisecond))
	a.summary("  Rows:          %d\n", r.Total)
	if r.Valid+r.Invalid > 0 {
		a.summary("  Valid:         %d\n", r.Valid)
		a.summary("  Invalid:       %d\n", r.Invalid)
	}
	if r.Translated+r.TranslationErrors > 0 {
		a.summary("  Translated:    %d\n", r.Translated)
		a.summary("  Failed:        %d\n", r.TranslationErrors)
		a.summary("  Provider:      %d calls, %d cached, %d errors\n", r.Provider.Calls, r.Provider.CacheHits, r.Provider.Errors)
	}
	if r.InputErrors > 0 {
		a.summary("  Input errors:  %d\n", r.InputErrors)
	}
	if r.Degraded {
		a.summary("  WARNING: configuration could not be loaded; only built-in rules applied\n")
	}
}
