package fallback

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/evolvingai/relay/pkg/providers"
)

func TestBackoffGrowth(t *testing.T) {
	p := DefaultPolicy()

	tests := []struct {
		attempt int
		want    time.Duration
	}{
		{1, 4 * time.Second},
		{2, 8 * time.Second},
		{3, 10 * time.Second}, // capped
		{4, 10 * time.Second},
	}
	for _, tt := range tests {
		if got := p.Backoff(tt.attempt); got != tt.want {
			t.Errorf("Backoff(%d) = %s, want %s", tt.attempt, got, tt.want)
		}
	}
}

func TestDoRetriesTransientToCeiling(t *testing.T) {
	policy := Policy{MaxAttempts: 3, BackoffBase: time.Millisecond, BackoffCap: 2 * time.Millisecond}

	calls := 0
	err := policy.Do(context.Background(), "openai", func(ctx context.Context) error {
		calls++
		return &providers.ServerError{Provider: "openai", StatusCode: 500}
	})

	if calls != 3 {
		t.Errorf("calls = %d, want 3", calls)
	}
	var srvErr *providers.ServerError
	if !errors.As(err, &srvErr) {
		t.Errorf("expected the last ServerError, got %v", err)
	}
}

func TestDoPermanentErrorNoRetry(t *testing.T) {
	policy := Policy{MaxAttempts: 3, BackoffBase: time.Millisecond, BackoffCap: 2 * time.Millisecond}

	calls := 0
	err := policy.Do(context.Background(), "openai", func(ctx context.Context) error {
		calls++
		return &providers.AuthError{Provider: "openai", Message: "bad key"}
	})

	if calls != 1 {
		t.Errorf("calls = %d, want 1 (permanent errors never retry)", calls)
	}
	var authErr *providers.AuthError
	if !errors.As(err, &authErr) {
		t.Errorf("expected AuthError, got %v", err)
	}
}

func TestDoSucceedsAfterTransientFailure(t *testing.T) {
	policy := Policy{MaxAttempts: 3, BackoffBase: time.Millisecond, BackoffCap: 2 * time.Millisecond}

	calls := 0
	err := policy.Do(context.Background(), "openai", func(ctx context.Context) error {
		calls++
		if calls < 2 {
			return &providers.RateLimitError{Provider: "openai"}
		}
		return nil
	})

	if err != nil {
		t.Errorf("Do() error = %v", err)
	}
	if calls != 2 {
		t.Errorf("calls = %d, want 2", calls)
	}
}

func TestDoContextCancelledDuringBackoff(t *testing.T) {
	policy := Policy{MaxAttempts: 3, BackoffBase: time.Minute, BackoffCap: time.Minute}

	ctx, cancel := context.WithCancel(context.Background())

	calls := 0
	done := make(chan error, 1)
	go func() {
		done <- policy.Do(ctx, "openai", func(ctx context.Context) error {
			calls++
			return &providers.ServerError{Provider: "openai", StatusCode: 503}
		})
	}()

	time.Sleep(20 * time.Millisecond)
	cancel()

	select {
	case err := <-done:
		if !errors.Is(err, context.Canceled) {
			t.Errorf("expected context.Canceled, got %v", err)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("Do() did not return after cancellation")
	}
	if calls != 1 {
		t.Errorf("calls = %d, want 1", calls)
	}
}
