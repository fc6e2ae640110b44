package ai

import (
	"context"
	"errors"
	"math"
	"math/rand/v2"
	"time"
)

// retrier re-issues failed Generate calls with exponential backoff.
type retrier struct {
	next Provider
	cfg  RetryConfig
}

// WithRetry wraps a provider in retry middleware. Throttling, outages
// and plain network errors are retried up to MaxAttempts; an unusable
// draft gets exactly one more chance; truncation and context errors are
// returned immediately.
func WithRetry(p Provider, cfg RetryConfig) Provider {
	return &retrier{next: p, cfg: cfg}
}

type retryClass int

const (
	retryNever retryClass = iota
	retryOnce
	retryAlways
)

// classify sorts an error into its retry class.
func classify(err error) retryClass {
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return retryNever
	}

	var truncated *TruncatedError
	if errors.As(err, &truncated) {
		// The same request would hit the same token ceiling.
		return retryNever
	}

	var bad *BadDraftError
	if errors.As(err, &bad) {
		return retryOnce
	}

	return retryAlways
}

func (r *retrier) Generate(ctx context.Context, req Request) (*Response, error) {
	badDraftRetried := false

	for attempt := 0; ; attempt++ {
		resp, err := r.next.Generate(ctx, req)
		if err == nil {
			return resp, nil
		}

		switch classify(err) {
		case retryNever:
			return nil, err
		case retryOnce:
			if badDraftRetried {
				return nil, err
			}
			badDraftRetried = true
		}

		if attempt+1 >= r.cfg.MaxAttempts {
			return nil, err
		}

		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-time.After(r.delay(attempt, err)):
		}
	}
}

func (r *retrier) ModelID() string { return r.next.ModelID() }

// delay picks the wait before the next attempt. A throttled error with a
// server-provided Retry-After wins over the computed backoff.
func (r *retrier) delay(attempt int, err error) time.Duration {
	var throttled *ThrottledError
	if errors.As(err, &throttled) && throttled.RetryAfter > 0 {
		return throttled.RetryAfter
	}

	d := float64(r.cfg.InitialWait) * math.Pow(r.cfg.Multiplier, float64(attempt))
	d = math.Min(d, float64(r.cfg.MaxWait))

	// ±20% jitter.
	d *= 1 + 0.2*(2*rand.Float64()-1)
	if d < 0 {
		d = 0
	}
	return time.Duration(d)
}
