package providers

import (
	"errors"
	"fmt"
	"testing"
	"time"
)

func TestIsTransient(t *testing.T) {
	tests := []struct {
		name      string
		err       error
		transient bool
	}{
		{
			name:      "rate limit is transient",
			err:       &RateLimitError{Provider: "openai", RetryAfter: 2 * time.Second},
			transient: true,
		},
		{
			name:      "timeout is transient",
			err:       &TimeoutError{Provider: "anthropic", Timeout: 60 * time.Second},
			transient: true,
		},
		{
			name:      "server error is transient",
			err:       &ServerError{Provider: "zai", StatusCode: 503},
			transient: true,
		},
		{
			name:      "transport error is transient",
			err:       &TransportError{Provider: "openrouter", Cause: errors.New("connection refused")},
			transient: true,
		},
		{
			name:      "auth error is permanent",
			err:       &AuthError{Provider: "openai", Message: "invalid api key"},
			transient: false,
		},
		{
			name:      "bad request is permanent",
			err:       &BadRequestError{Provider: "openai", StatusCode: 400},
			transient: false,
		},
		{
			name:      "model not found is permanent",
			err:       &ModelNotFoundError{Provider: "openai", Model: "gpt-99"},
			transient: false,
		},
		{
			name:      "parse error is permanent",
			err:       &ParseError{Provider: "zai", Cause: errors.New("empty body")},
			transient: false,
		},
		{
			name:      "config error is permanent",
			err:       &ConfigError{Provider: "openai", Field: "api_key"},
			transient: false,
		},
		{
			name:      "plain error is permanent",
			err:       errors.New("something else"),
			transient: false,
		},
		{
			name:      "nil is permanent",
			err:       nil,
			transient: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := IsTransient(tt.err); got != tt.transient {
				t.Errorf("IsTransient(%v) = %v, want %v", tt.err, got, tt.transient)
			}
		})
	}
}

func TestIsTransientWrapped(t *testing.T) {
	wrapped := fmt.Errorf("generation failed: %w", &ServerError{Provider: "openai", StatusCode: 500})
	if !IsTransient(wrapped) {
		t.Error("expected wrapped ServerError to be transient")
	}

	wrappedPermanent := fmt.Errorf("generation failed: %w", &AuthError{Provider: "openai"})
	if IsTransient(wrappedPermanent) {
		t.Error("expected wrapped AuthError to be permanent")
	}
}

func TestTransportErrorUnwrap(t *testing.T) {
	cause := errors.New("dial tcp: connection refused")
	err := &TransportError{Provider: "openai", Cause: cause}
	if !errors.Is(err, cause) {
		t.Error("expected TransportError to unwrap to its cause")
	}
}
