package resilience

import (
	"context"
	"math"
	"math/rand"
	"time"

	"github.com/kbukum/storefront/httpclient"
)

// RetryConfig configures retry behavior.
type RetryConfig struct {
	// MaxAttempts is the maximum number of attempts (including the first).
	MaxAttempts int
	// InitialBackoff is the initial delay between retries.
	InitialBackoff time.Duration
	// MaxBackoff is the maximum delay between retries.
	MaxBackoff time.Duration
	// BackoffFactor is the multiplier for exponential backoff.
	BackoffFactor float64
	// Jitter adds randomness to backoff (0.0 to 1.0).
	Jitter float64
	// RetryIf decides whether a failed outcome is retried.
	RetryIf func(httpclient.Response) bool
	// OnRetry is called before each retry.
	OnRetry func(attempt int, resp httpclient.Response, backoff time.Duration)
}

// DefaultRetryConfig returns sensible defaults.
func DefaultRetryConfig() RetryConfig {
	return RetryConfig{
		MaxAttempts:    3,
		InitialBackoff: 200 * time.Millisecond,
		MaxBackoff:     5 * time.Second,
		BackoffFactor:  2.0,
		Jitter:         0.1,
		RetryIf:        httpclient.IsRetryable,
	}
}

func (cfg *RetryConfig) applyDefaults() {
	if cfg.MaxAttempts <= 0 {
		cfg.MaxAttempts = 3
	}
	if cfg.InitialBackoff <= 0 {
		cfg.InitialBackoff = 200 * time.Millisecond
	}
	if cfg.MaxBackoff <= 0 {
		cfg.MaxBackoff = 5 * time.Second
	}
	if cfg.BackoffFactor <= 0 {
		cfg.BackoffFactor = 2.0
	}
	if cfg.RetryIf == nil {
		cfg.RetryIf = httpclient.IsRetryable
	}
}

// RetryCall runs fn until it succeeds, returns a non-retryable outcome, or
// MaxAttempts is reached, and returns the last outcome. If ctx ends while
// waiting, the last outcome is returned without another attempt.
func RetryCall[T any](ctx context.Context, cfg RetryConfig, fn func(context.Context) httpclient.APIResponse[T]) httpclient.APIResponse[T] {
	var last httpclient.APIResponse[T]
	retry(ctx, cfg, func() httpclient.Response {
		last = fn(ctx)
		return httpclient.Response{Error: last.Error, Status: last.Status}
	})
	return last
}

// RetryResponse is RetryCall for untyped client calls.
func RetryResponse(ctx context.Context, cfg RetryConfig, fn func(context.Context) httpclient.Response) httpclient.Response {
	var last httpclient.Response
	retry(ctx, cfg, func() httpclient.Response {
		last = fn(ctx)
		return last
	})
	return last
}

func retry(ctx context.Context, cfg RetryConfig, attempt func() httpclient.Response) {
	cfg.applyDefaults()

	for n := 1; n <= cfg.MaxAttempts; n++ {
		resp := attempt()
		if resp.IsSuccess() || !cfg.RetryIf(resp) {
			return
		}

		// Don't sleep after the last attempt
		if n == cfg.MaxAttempts {
			return
		}

		backoff := calculateBackoff(n, cfg)
		if cfg.OnRetry != nil {
			cfg.OnRetry(n, resp, backoff)
		}

		timer := time.NewTimer(backoff)
		select {
		case <-ctx.Done():
			timer.Stop()
			return
		case <-timer.C:
		}
	}
}

// calculateBackoff calculates the backoff duration for an attempt.
func calculateBackoff(attempt int, cfg RetryConfig) time.Duration {
	// Exponential backoff: initial * factor^(attempt-1)
	backoffFloat := float64(cfg.InitialBackoff) * math.Pow(cfg.BackoffFactor, float64(attempt-1))

	if cfg.Jitter > 0 {
		jitterRange := backoffFloat * cfg.Jitter
		backoffFloat += (rand.Float64()*2 - 1) * jitterRange
	}

	if backoffFloat > float64(cfg.MaxBackoff) {
		backoffFloat = float64(cfg.MaxBackoff)
	}
	if backoffFloat < 0 {
		backoffFloat = float64(cfg.InitialBackoff)
	}
	return time.Duration(backoffFloat)
}
