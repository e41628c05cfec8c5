package fallback

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/evolvingai/relay/pkg/providers"
)

// Policy bounds retries against a single provider. Retries apply only to
// transient failures; permanent ones surface immediately so the orchestrator
// can move to the next candidate without burning the retry budget.
type Policy struct {
	// MaxAttempts is the total number of attempts including the first
	MaxAttempts int

	// BackoffBase is the wait before the first retry
	BackoffBase time.Duration

	// BackoffCap bounds the exponential growth of the wait
	BackoffCap time.Duration
}

// DefaultPolicy matches the production defaults: three attempts with an
// exponential wait that starts at 4s and never exceeds 10s.
func DefaultPolicy() Policy {
	return Policy{
		MaxAttempts: 3,
		BackoffBase: 4 * time.Second,
		BackoffCap:  10 * time.Second,
	}
}

// Backoff returns the wait before the given retry (attempt 1 is the wait
// after the first failure): base doubling each retry, capped.
func (p Policy) Backoff(attempt int) time.Duration {
	d := p.BackoffBase
	for i := 1; i < attempt; i++ {
		d *= 2
		if d >= p.BackoffCap {
			return p.BackoffCap
		}
	}
	if d > p.BackoffCap {
		return p.BackoffCap
	}
	return d
}

// Do runs fn under the policy. It returns fn's first success, or the error
// of the final attempt. Context cancellation during a backoff wait returns
// ctx.Err() immediately.
func (p Policy) Do(ctx context.Context, provider string, fn func(ctx context.Context) error) error {
	maxAttempts := p.MaxAttempts
	if maxAttempts < 1 {
		maxAttempts = 1
	}

	var lastErr error
	for attempt := 1; attempt <= maxAttempts; attempt++ {
		lastErr = fn(ctx)
		if lastErr == nil {
			return nil
		}

		if errors.Is(lastErr, context.Canceled) || errors.Is(lastErr, context.DeadlineExceeded) {
			return lastErr
		}
		if !providers.IsTransient(lastErr) {
			return lastErr
		}
		if attempt == maxAttempts {
			break
		}

		wait := p.Backoff(attempt)
		slog.Debug("retrying after transient failure",
			"provider", provider,
			"attempt", attempt,
			"wait", wait,
			"error", lastErr,
		)

		timer := time.NewTimer(wait)
		select {
		case <-ctx.Done():
			timer.Stop()
			return ctx.Err()
		case <-timer.C:
		}
	}
	return lastErr
}
