package providers

import (
	"errors"
	"fmt"
	"time"
)

// AuthError reports a rejected credential (HTTP 401 or 403). Permanent.
type AuthError struct {
	// Provider is the name of the provider that rejected authentication
	Provider string

	// Message is the error message from the provider
	Message string
}

// Error implements the error interface.
func (e *AuthError) Error() string {
	return fmt.Sprintf("provider %q authentication failed: %s", e.Provider, e.Message)
}

// RateLimitError reports a rate limit rejection (HTTP 429). Transient.
type RateLimitError struct {
	// Provider is the name of the provider that rate limited the request
	Provider string

	// RetryAfter is the duration to wait before retrying (if provided)
	RetryAfter time.Duration

	// Message is the error message from the provider
	Message string
}

// Error implements the error interface.
func (e *RateLimitError) Error() string {
	if e.RetryAfter > 0 {
		return fmt.Sprintf("provider %q rate limit exceeded (retry after %s): %s",
			e.Provider, e.RetryAfter, e.Message)
	}
	return fmt.Sprintf("provider %q rate limit exceeded: %s", e.Provider, e.Message)
}

// TimeoutError reports a request that exceeded its deadline. Transient.
type TimeoutError struct {
	// Provider is the name of the provider where the timeout occurred
	Provider string

	// Timeout is the configured timeout duration
	Timeout time.Duration
}

// Error implements the error interface.
func (e *TimeoutError) Error() string {
	return fmt.Sprintf("provider %q request timeout after %s", e.Provider, e.Timeout)
}

// ServerError reports a backend-side failure (HTTP 5xx). Transient.
type ServerError struct {
	// Provider is the name of the provider that returned the error
	Provider string

	// StatusCode is the HTTP status code
	StatusCode int

	// Message is the error body returned by the provider
	Message string
}

// Error implements the error interface.
func (e *ServerError) Error() string {
	return fmt.Sprintf("provider %q server error (status %d): %s", e.Provider, e.StatusCode, e.Message)
}

// TransportError reports a network-level failure before any HTTP status was
// received (connection refused, DNS, reset). Transient.
type TransportError struct {
	// Provider is the name of the provider being contacted
	Provider string

	// Cause is the underlying network error
	Cause error
}

// Error implements the error interface.
func (e *TransportError) Error() string {
	return fmt.Sprintf("provider %q transport error: %v", e.Provider, e.Cause)
}

// Unwrap returns the underlying error for error chain support.
func (e *TransportError) Unwrap() error {
	return e.Cause
}

// BadRequestError reports a request the backend rejected as malformed
// (HTTP 400/404/422). Permanent.
type BadRequestError struct {
	// Provider is the name of the provider that rejected the request
	Provider string

	// StatusCode is the HTTP status code
	StatusCode int

	// Message is the error body returned by the provider
	Message string
}

// Error implements the error interface.
func (e *BadRequestError) Error() string {
	return fmt.Sprintf("provider %q rejected request (status %d): %s", e.Provider, e.StatusCode, e.Message)
}

// ModelNotFoundError reports a model the provider does not serve. Permanent.
type ModelNotFoundError struct {
	// Provider is the name of the provider
	Provider string

	// Model is the requested model identifier
	Model string
}

// Error implements the error interface.
func (e *ModelNotFoundError) Error() string {
	return fmt.Sprintf("provider %q does not support model %q", e.Provider, e.Model)
}

// ParseError reports a malformed or empty provider response. Permanent.
type ParseError struct {
	// Provider is the name of the provider that returned the response
	Provider string

	// RawResponse is the raw body that failed to parse
	RawResponse string

	// Cause is the underlying parse error
	Cause error
}

// Error implements the error interface.
func (e *ParseError) Error() string {
	return fmt.Sprintf("provider %q response parse error: %v", e.Provider, e.Cause)
}

// Unwrap returns the underlying error for error chain support.
func (e *ParseError) Unwrap() error {
	return e.Cause
}

// ConfigError reports invalid adapter configuration. A provider with a
// configuration error is excluded from the registry and never retried.
type ConfigError struct {
	// Provider is the name of the provider with invalid configuration
	Provider string

	// Field is the configuration field that is invalid
	Field string

	// Message describes the configuration error
	Message string
}

// Error implements the error interface.
func (e *ConfigError) Error() string {
	return fmt.Sprintf("provider %q configuration error for field %q: %s",
		e.Provider, e.Field, e.Message)
}

// IsTransient reports whether err is a retriable failure: rate limiting,
// timeout, 5xx, or a network-level transport error. Everything else —
// authentication, malformed requests, unknown models, parse failures,
// configuration errors — is permanent and must not be retried.
func IsTransient(err error) bool {
	var (
		rateLimit *RateLimitError
		timeout   *TimeoutError
		server    *ServerError
		transport *TransportError
	)
	switch {
	case errors.As(err, &rateLimit),
		errors.As(err, &timeout),
		errors.As(err, &server),
		errors.As(err, &transport):
		return true
	}
	return false
}
