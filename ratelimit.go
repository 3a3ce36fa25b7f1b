package menuval

import (
	"context"
	"time"

	"golang.org/x/time/rate"
)

// DefaultRequestsPerMinute applies when a RateLimitConfig leaves the rate unset.
const DefaultRequestsPerMinute = 60

// RateLimitConfig configures provider rate limiting.
type RateLimitConfig struct {
	RequestsPerMinute int // default: DefaultRequestsPerMinute
	BurstSize         int // default: a tenth of RequestsPerMinute, at least 1
}

func (c RateLimitConfig) withDefaults() RateLimitConfig {
	if c.RequestsPerMinute <= 0 {
		c.RequestsPerMinute = DefaultRequestsPerMinute
	}
	if c.BurstSize <= 0 {
		c.BurstSize = max(1, c.RequestsPerMinute/10)
	}
	return c
}

// RateLimiter is a token bucket shared by every worker of a run, so a batch
// stays under the provider's per-minute quota however many rows run at once.
type RateLimiter struct {
	limiter *rate.Limiter
	cfg     RateLimitConfig
}

// NewRateLimiter creates a rate limiter that starts with a full bucket.
func NewRateLimiter(cfg RateLimitConfig) *RateLimiter {
	cfg = cfg.withDefaults()
	every := time.Minute / time.Duration(cfg.RequestsPerMinute)
	return &RateLimiter{
		limiter: rate.NewLimiter(rate.Every(every), cfg.BurstSize),
		cfg:     cfg,
	}
}

// Wait blocks until a token is available. It fails early when ctx is done or
// its deadline would pass before the token arrives.
func (r *RateLimiter) Wait(ctx context.Context) error {
	return r.limiter.Wait(ctx)
}

// TryAcquire takes a token if one is available without blocking.
func (r *RateLimiter) TryAcquire() bool {
	return r.limiter.Allow()
}

// Available returns the current number of tokens in the bucket.
func (r *RateLimiter) Available() float64 {
	return r.limiter.Tokens()
}

// Config returns the effective configuration.
func (r *RateLimiter) Config() RateLimitConfig {
	return r.cfg
}

// RateLimitedProvider wraps a Provider with rate limiting.
type RateLimitedProvider struct {
	provider Provider
	limiter  *RateLimiter
}

// NewRateLimitedProvider creates a rate-limited provider.
func NewRateLimitedProvider(provider Provider, cfg RateLimitConfig) *RateLimitedProvider {
	return &RateLimitedProvider{
		provider: provider,
		limiter:  NewRateLimiter(cfg),
	}
}

// Translate waits for a token, then calls the wrapped provider.
func (p *RateLimitedProvider) Translate(ctx context.Context, req TranslateRequest) (string, error) {
	if err := p.limiter.Wait(ctx); err != nil {
		return "", &ProviderError{Message: "rate limit wait cancelled", Cause: err}
	}
	return p.provider.Translate(ctx, req)
}

// Limiter returns the underlying rate limiter for inspection.
func (p *RateLimitedProvider) Limiter() *RateLimiter {
	return p.limiter
}
