package menuval

import (
	"context"

	"golang.org/x/sync/semaphore"
)

// DefaultMaxInFlight caps concurrent provider calls across all workers.
const DefaultMaxInFlight = 4

// ConcurrencyLimitedProvider wraps a Provider with a global cap on calls in flight.
type ConcurrencyLimitedProvider struct {
	provider Provider
	sem      *semaphore.Weighted
}

// NewConcurrencyLimitedProvider allows at most n concurrent calls (default: DefaultMaxInFlight).
func NewConcurrencyLimitedProvider(provider Provider, n int) *ConcurrencyLimitedProvider {
	if n <= 0 {
		n = DefaultMaxInFlight
	}
	return &ConcurrencyLimitedProvider{
		provider: provider,
		sem:      semaphore.NewWeighted(int64(n)),
	}
}

// Translate implements Provider, waiting for a free slot first.
func (p *ConcurrencyLimitedProvider) Translate(ctx context.Context, req TranslateRequest) (string, error) {
	if err := p.sem.Acquire(ctx, 1); err != nil {
		return "", &ProviderError{
			Message:   "concurrency slot wait cancelled",
			Cause:     err,
			Retryable: false,
		}
	}
	defer p.sem.Release(1)

	return p.provider.Translate(ctx, req)
}

// ProviderStack describes the decorators applied by Wrap.
type ProviderStack struct {
	Retry         RetryConfig
	RatePerMinute int // 0 disables rate limiting
	MaxInFlight   int
}

// Wrap decorates p with concurrency limiting, rate limiting and retries.
// Retries sit outermost so each retry waits for its own token and slot.
func (s ProviderStack) Wrap(p Provider) Provider {
	if p == nil {
		return nil
	}
	p = NewConcurrencyLimitedProvider(p, s.MaxInFlight)
	if s.RatePerMinute > 0 {
		p = NewRateLimitedProvider(p, RateLimitConfig{RequestsPerMinute: s.RatePerMinute})
	}
	if s.Retry.MaxRetries > 0 {
		p = NewRetryableProvider(p, s.Retry)
	}
	return p
}
