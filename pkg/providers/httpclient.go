package providers

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"time"
)

// HTTPClient is the shared HTTP layer embedded by the concrete adapters.
// It owns a long-lived pooled http.Client, applies the configured timeout to
// every outbound call, and maps failures to the typed errors in this package.
//
// It performs exactly one attempt per call; retry lives in pkg/fallback.
type HTTPClient struct {
	config Config
	client *http.Client
}

// NewHTTPClient creates the shared HTTP layer for an adapter.
func NewHTTPClient(config Config) *HTTPClient {
	if config.Timeout == 0 {
		config.Timeout = 60 * time.Second
	}
	if config.MaxIdleConns == 0 {
		config.MaxIdleConns = 100
	}
	if config.MaxIdleConnsPerHost == 0 {
		config.MaxIdleConnsPerHost = 10
	}
	if config.IdleConnTimeout == 0 {
		config.IdleConnTimeout = 90 * time.Second
	}

	transport := &http.Transport{
		MaxIdleConns:        config.MaxIdleConns,
		MaxIdleConnsPerHost: config.MaxIdleConnsPerHost,
		IdleConnTimeout:     config.IdleConnTimeout,
		ForceAttemptHTTP2:   true,
	}

	return &HTTPClient{
		config: config,
		client: &http.Client{
			Transport: transport,
			Timeout:   config.Timeout,
		},
	}
}

// Config returns the adapter configuration.
func (c *HTTPClient) Config() Config {
	return c.config
}

// Name returns the provider's configured name.
func (c *HTTPClient) Name() string {
	return c.config.Name
}

// Model returns the default model identifier.
func (c *HTTPClient) Model() string {
	return c.config.Model
}

// Close releases idle connections in the pool.
func (c *HTTPClient) Close() error {
	c.client.CloseIdleConnections()
	return nil
}

// DoJSON sends one JSON request and decodes the response body into respBody.
// Non-2xx statuses and network failures come back as typed errors.
func (c *HTTPClient) DoJSON(ctx context.Context, method, url string, reqBody, respBody any, headers map[string]string) error {
	var bodyReader io.Reader
	if reqBody != nil {
		payload, err := json.Marshal(reqBody)
		if err != nil {
			return fmt.Errorf("failed to marshal request: %w", err)
		}
		bodyReader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, url, bodyReader)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	for key, value := range headers {
		req.Header.Set(key, value)
	}
	if req.Header.Get("Content-Type") == "" && reqBody != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	slog.Debug("sending request to provider",
		"provider", c.config.Name,
		"method", method,
		"url", url,
	)

	resp, err := c.client.Do(req)
	if err != nil {
		return c.classifyTransportError(ctx, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return &ParseError{
			Provider: c.config.Name,
			Cause:    fmt.Errorf("failed to read response: %w", err),
		}
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return c.classifyStatusError(resp, body)
	}

	if respBody != nil && len(body) > 0 {
		if err := json.Unmarshal(body, respBody); err != nil {
			return &ParseError{
				Provider:    c.config.Name,
				RawResponse: string(body),
				Cause:       fmt.Errorf("failed to unmarshal response: %w", err),
			}
		}
	}

	return nil
}

// classifyTransportError maps a failed round trip to a typed error.
func (c *HTTPClient) classifyTransportError(ctx context.Context, err error) error {
	if ctx.Err() != nil {
		// Caller cancelled or the outer deadline expired; propagate the
		// context error unchanged so cancellation stays distinguishable.
		return ctx.Err()
	}
	if errors.Is(err, context.DeadlineExceeded) || isClientTimeout(err) {
		return &TimeoutError{
			Provider: c.config.Name,
			Timeout:  c.config.Timeout,
		}
	}
	return &TransportError{
		Provider: c.config.Name,
		Cause:    err,
	}
}

// classifyStatusError maps a non-2xx response to a typed error.
func (c *HTTPClient) classifyStatusError(resp *http.Response, body []byte) error {
	message := string(body)

	switch resp.StatusCode {
	case http.StatusUnauthorized, http.StatusForbidden:
		return &AuthError{
			Provider: c.config.Name,
			Message:  message,
		}

	case http.StatusTooManyRequests:
		return &RateLimitError{
			Provider:   c.config.Name,
			RetryAfter: parseRetryAfter(resp.Header.Get("Retry-After")),
			Message:    message,
		}

	case http.StatusBadRequest, http.StatusNotFound, http.StatusUnprocessableEntity:
		return &BadRequestError{
			Provider:   c.config.Name,
			StatusCode: resp.StatusCode,
			Message:    message,
		}
	}

	if resp.StatusCode >= 500 {
		return &ServerError{
			Provider:   c.config.Name,
			StatusCode: resp.StatusCode,
			Message:    message,
		}
	}

	return &BadRequestError{
		Provider:   c.config.Name,
		StatusCode: resp.StatusCode,
		Message:    message,
	}
}

// isClientTimeout reports whether err is an http.Client timeout.
func isClientTimeout(err error) bool {
	type timeout interface {
		Timeout() bool
	}
	var t timeout
	return errors.As(err, &t) && t.Timeout()
}

// parseRetryAfter parses the Retry-After header value.
// It supports both delay-seconds and HTTP-date formats.
func parseRetryAfter(header string) time.Duration {
	if header == "" {
		return 0
	}

	var seconds int
	if _, err := fmt.Sscanf(header, "%d", &seconds); err == nil {
		return time.Duration(seconds) * time.Second
	}

	if t, err := http.ParseTime(header); err == nil {
		return time.Until(t)
	}

	return 0
}
