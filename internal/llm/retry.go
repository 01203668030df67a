package llm

import (
	"context"
	"errors"
	"math"
	"math/rand/v2"
	"time"
)

// RetryProvider retries transient failures with exponential backoff.
type RetryProvider struct {
	inner  Provider
	config RetryConfig

	// sleep waits for d or until ctx is done.
	sleep func(ctx context.Context, d time.Duration) error
	// jitter returns a factor in [-1, 1).
	jitter func() float64
}

// WithRetry wraps p with retries.
func WithRetry(p Provider, cfg RetryConfig) *RetryProvider {
	if cfg.MaxAttempts < 1 {
		cfg.MaxAttempts = 1
	}
	return &RetryProvider{
		inner:  p,
		config: cfg,
		sleep:  sleepCtx,
		jitter: func() float64 { return 2*rand.Float64() - 1 },
	}
}

func (r *RetryProvider) ModelID() string { return r.inner.ModelID() }

func (r *RetryProvider) Name() string {
	if n, ok := r.inner.(Named); ok {
		return n.Name()
	}
	return ""
}

func (r *RetryProvider) Generate(ctx context.Context, req Request) (*Response, error) {
	var lastErr error
	invalidRetried := false

	for attempt := 0; attempt < r.config.MaxAttempts; attempt++ {
		resp, err := r.inner.Generate(ctx, req)
		if err == nil {
			return resp, nil
		}
		lastErr = err

		if !retryable(err, &invalidRetried) || attempt == r.config.MaxAttempts-1 {
			break
		}
		if err := r.sleep(ctx, r.backoff(attempt, err)); err != nil {
			return nil, err
		}
	}
	return nil, lastErr
}

// retryable reports whether err is worth another attempt. An invalid
// response is retried once.
func retryable(err error, invalidRetried *bool) bool {
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return false
	}
	var maxTok *ErrMaxTokensExceeded
	if errors.As(err, &maxTok) {
		return false
	}
	var invalid *ErrInvalidResponse
	if errors.As(err, &invalid) {
		if *invalidRetried {
			return false
		}
		*invalidRetried = true
	}
	return true
}

// backoff returns the wait before the retry following attempt, honoring a
// rate limit's RetryAfter.
func (r *RetryProvider) backoff(attempt int, err error) time.Duration {
	var rl *ErrRateLimit
	if errors.As(err, &rl) && rl.RetryAfter > 0 {
		return rl.RetryAfter
	}

	wait := float64(r.config.InitialWait) * math.Pow(r.config.Multiplier, float64(attempt))
	wait = math.Min(wait, float64(r.config.MaxWait))
	wait += wait * 0.2 * r.jitter()
	return time.Duration(math.Max(wait, 0))
}

func sleepCtx(ctx context.Context, d time.Duration) error {
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}
