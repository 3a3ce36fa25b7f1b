package menuval

import (
	"context"
	"regexp"
	"strings"
	"sync/atomic"
	"time"

	"go.uber.org/zap"
)

// DefaultCallTimeout bounds a single provider attempt.
const DefaultCallTimeout = 10 * time.Second

// Provider is the interface for machine translation backends.
type Provider interface {
	Translate(ctx context.Context, req TranslateRequest) (string, error)
}

// TranslateRequest contains the parameters for one translation call.
type TranslateRequest struct {
	Text       string
	SourceLang Language // LangAuto lets the provider detect it
	TargetLang Language
}

// TranslationCache is the interface for translation caching.
type TranslationCache interface {
	Get(key string) (string, bool)
	Set(key string, value string) error
}

// echoPrefix matches a category label a provider sometimes repeats in front of the answer.
var echoPrefix = regexp.MustCompile(`(?i)^\s*(?:food item|food|dish|item|طعام|طبق|صنف|عنصر)(?:[\s\p{P}]+|$)`)

// StripEcho removes a leading "Food:", "Dish -", "طعام:" style label.
func StripEcho(s string) string {
	return strings.TrimSpace(echoPrefix.ReplaceAllString(s, ""))
}

// Resolution is the outcome of resolving one word or phrase.
type Resolution struct {
	Text   string
	Tag    SourceTag
	Err    error // last provider error when Tag is TagError
	Cached bool
}

// ResolverConfig configures a Resolver.
type ResolverConfig struct {
	Cache   TranslationCache // optional, keyed per text and language pair
	Timeout time.Duration    // per attempt (default: DefaultCallTimeout)
	Logger  *zap.Logger
}

// ResolverStats counts provider traffic.
type ResolverStats struct {
	Calls     int64 `json:"calls"`
	CacheHits int64 `json:"cache_hits"`
	Errors    int64 `json:"errors"`
}

// Resolver translates single words through a Provider with a food-domain
// prompt, falling back to the bare word.
type Resolver struct {
	provider Provider
	cache    TranslationCache
	timeout  time.Duration
	logger   *zap.Logger

	calls     atomic.Int64
	cacheHits atomic.Int64
	errors    atomic.Int64
}

// NewResolver creates a resolver. A nil provider resolves everything as NotFound.
func NewResolver(provider Provider, cfg ResolverConfig) *Resolver {
	r := &Resolver{
		provider: provider,
		cache:    cfg.Cache,
		timeout:  cfg.Timeout,
		logger:   cfg.Logger,
	}
	if r.timeout <= 0 {
		r.timeout = DefaultCallTimeout
	}
	if r.logger == nil {
		r.logger = zap.NewNop()
	}
	return r
}

// Stats returns a copy of the traffic counters.
func (r *Resolver) Stats() ResolverStats {
	return ResolverStats{
		Calls:     r.calls.Load(),
		CacheHits: r.cacheHits.Load(),
		Errors:    r.errors.Load(),
	}
}

func promptPrefix(source Language) string {
	if source == LangArabic {
		return "Food item: "
	}
	return "Food: "
}

// ResolveWord translates word from source to target. It never fails: on
// provider errors the word comes back unchanged with TagError, and when the
// provider answers without changing the word the tag is TagNotFound.
func (r *Resolver) ResolveWord(ctx context.Context, word string, source, target Language) Resolution {
	w := strings.TrimSpace(word)
	if w == "" {
		return Resolution{Text: "", Tag: TagNone}
	}

	if source != LangEnglish && (strings.Contains(w, "توفى") || strings.Contains(w, "توفي")) {
		return Resolution{Text: "Toffee", Tag: TagTerminology}
	}

	if r == nil || r.provider == nil {
		return Resolution{Text: w, Tag: TagNotFound}
	}

	key := CacheKey(HashText(w), source, target)
	if r.cache != nil {
		if cached, ok := r.cache.Get(key); ok {
			r.cacheHits.Add(1)
			return Resolution{Text: cached, Tag: TagGoogle, Cached: true}
		}
	}

	var (
		lastErr  error
		answered bool
	)
	for _, prompt := range []string{promptPrefix(source) + w, w} {
		if err := ctx.Err(); err != nil {
			return Resolution{Text: w, Tag: TagError, Err: err}
		}

		out, err := r.attempt(ctx, prompt, target)
		if err != nil {
			r.errors.Add(1)
			lastErr = err
			r.logger.Debug("provider attempt failed", zap.String("text", prompt), zap.Error(err))
			continue
		}
		answered = true

		clean := StripEcho(out)
		if clean == "" || strings.EqualFold(clean, w) {
			continue
		}

		if r.cache != nil {
			if err := r.cache.Set(key, clean); err != nil {
				r.logger.Warn("translation cache write failed", zap.Error(err))
			}
		}
		return Resolution{Text: clean, Tag: TagGoogle}
	}

	if !answered {
		return Resolution{Text: w, Tag: TagError, Err: lastErr}
	}
	return Resolution{Text: w, Tag: TagNotFound}
}

func (r *Resolver) attempt(ctx context.Context, text string, target Language) (string, error) {
	r.calls.Add(1)
	actx, cancel := context.WithTimeout(ctx, r.timeout)
	defer cancel()

	return r.provider.Translate(actx, TranslateRequest{
		Text:       text,
		SourceLang: LangAuto,
		TargetLang: target,
	})
}
