package menuval

import (
	"context"
	"errors"
	"time"
)

// RetryConfig bounds how often a failed provider or source call is repeated.
type RetryConfig struct {
	MaxRetries int           // attempts after the first one
	BaseDelay  time.Duration // wait before the first retry, doubled each time
	MaxDelay   time.Duration // upper bound for any single wait
}

// DefaultRetryConfig keeps the budget small: a menu run issues many short calls.
func DefaultRetryConfig() RetryConfig {
	return RetryConfig{
		MaxRetries: 2,
		BaseDelay:  500 * time.Millisecond,
		MaxDelay:   5 * time.Second,
	}
}

// Delay returns the wait before retry number attempt (zero-based).
func (c RetryConfig) Delay(attempt int) time.Duration {
	if c.BaseDelay <= 0 {
		return 0
	}
	d := c.BaseDelay
	for i := 0; i < attempt; i++ {
		d *= 2
		if c.MaxDelay > 0 && d >= c.MaxDelay {
			return c.MaxDelay
		}
	}
	if c.MaxDelay > 0 && d > c.MaxDelay {
		return c.MaxDelay
	}
	return d
}

// RetryFunc is a function that can be retried.
type RetryFunc[T any] func() (T, error)

// WithRetry calls fn until it succeeds, fails with a permanent error, or the
// retry budget runs out. The last error is returned in the latter case.
func WithRetry[T any](ctx context.Context, cfg RetryConfig, fn RetryFunc[T]) (T, error) {
	var zero T
	for attempt := 0; ; attempt++ {
		if err := ctx.Err(); err != nil {
			return zero, err
		}

		result, err := fn()
		if err == nil {
			return result, nil
		}
		if !IsRetryable(err) || attempt >= cfg.MaxRetries {
			return zero, err
		}

		if err := sleepCtx(ctx, cfg.Delay(attempt)); err != nil {
			return zero, err
		}
	}
}

func sleepCtx(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}

// retryable is implemented by errors that know whether a repeat may succeed.
type retryable interface {
	retryable() bool
}

// IsRetryable reports whether err, or any error it wraps, is marked retryable.
// An explicit flag wins over a wrapped deadline so that client timeouts are
// retried. Cancellation and unknown errors are permanent.
func IsRetryable(err error) bool {
	var r retryable
	if errors.As(err, &r) {
		return r.retryable()
	}
	return false
}

// RetryableProvider retries transient failures of the wrapped Provider.
type RetryableProvider struct {
	provider Provider
	config   RetryConfig
}

// NewRetryableProvider wraps provider with cfg's retry budget.
func NewRetryableProvider(provider Provider, cfg RetryConfig) *RetryableProvider {
	return &RetryableProvider{provider: provider, config: cfg}
}

// Translate implements Provider.
func (p *RetryableProvider) Translate(ctx context.Context, req TranslateRequest) (string, error) {
	return WithRetry(ctx, p.config, func() (string, error) {
		return p.provider.Translate(ctx, req)
	})
}
