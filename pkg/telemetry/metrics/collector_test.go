package metrics

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"

	"github.com/evolvingai/relay/pkg/availability"
	"github.com/evolvingai/relay/pkg/providers"
)

// The collector feeds the health gauge from background sweeps too.
var _ availability.HealthObserver = (*Collector)(nil)

func TestObserveAttemptOutcomes(t *testing.T) {
	c := NewCollector(Options{})

	c.ObserveAttempt("openai", true, 200*time.Millisecond, nil)
	c.ObserveAttempt("openai", true, time.Second, &providers.ServerError{Provider: "openai", StatusCode: 500})
	c.ObserveAttempt("anthropic", false, 0, errors.New("unavailable"))

	if got := testutil.ToFloat64(c.attemptsTotal.WithLabelValues("openai", "success")); got != 1 {
		t.Errorf("success count = %v", got)
	}
	if got := testutil.ToFloat64(c.attemptsTotal.WithLabelValues("openai", "failure")); got != 1 {
		t.Errorf("failure count = %v", got)
	}
	if got := testutil.ToFloat64(c.attemptsTotal.WithLabelValues("anthropic", "unavailable")); got != 1 {
		t.Errorf("unavailable count = %v", got)
	}
	if got := testutil.ToFloat64(c.errorsTotal.WithLabelValues("openai", "server")); got != 1 {
		t.Errorf("server error count = %v", got)
	}
	if got := testutil.ToFloat64(c.providerHealth.WithLabelValues("openai")); got != 1 {
		t.Errorf("openai health = %v", got)
	}
	if got := testutil.ToFloat64(c.providerHealth.WithLabelValues("anthropic")); got != 0 {
		t.Errorf("anthropic health = %v", got)
	}
}

func TestErrorKindMapping(t *testing.T) {
	tests := []struct {
		err  error
		want string
	}{
		{&providers.AuthError{}, "auth"},
		{&providers.RateLimitError{}, "rate_limit"},
		{&providers.TimeoutError{}, "timeout"},
		{&providers.ServerError{}, "server"},
		{&providers.TransportError{Cause: errors.New("x")}, "transport"},
		{&providers.BadRequestError{}, "bad_request"},
		{&providers.ModelNotFoundError{}, "model_not_found"},
		{&providers.ParseError{Cause: errors.New("x")}, "parse"},
		{errors.New("mystery"), "other"},
	}
	for _, tt := range tests {
		if got := errorKind(tt.err); got != tt.want {
			t.Errorf("errorKind(%T) = %q, want %q", tt.err, got, tt.want)
		}
	}
}

func TestSetProviderHealth(t *testing.T) {
	c := NewCollector(Options{})

	c.SetProviderHealth("zai", true)
	if got := testutil.ToFloat64(c.providerHealth.WithLabelValues("zai")); got != 1 {
		t.Errorf("health = %v, want 1", got)
	}
	c.SetProviderHealth("zai", false)
	if got := testutil.ToFloat64(c.providerHealth.WithLabelValues("zai")); got != 0 {
		t.Errorf("health = %v, want 0", got)
	}
}

func TestHandlerServesMetrics(t *testing.T) {
	c := NewCollector(Options{Namespace: "relay"})
	c.ObserveAttempt("openai", true, time.Second, nil)

	req := httptest.NewRequest(http.MethodGet, "/metrics", nil)
	rec := httptest.NewRecorder()
	c.Handler().ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	body := rec.Body.String()
	if !strings.Contains(body, "relay_provider_attempts_total") {
		t.Error("attempts counter missing from exposition")
	}
	if !strings.Contains(body, "relay_provider_attempt_duration_seconds") {
		t.Error("latency histogram missing from exposition")
	}
}
