package metrics

import (
	"errors"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"

	"github.com/evolvingai/relay/pkg/providers"
)

// Options configures metric naming and histogram resolution.
type Options struct {
	// Namespace prefixes every metric name (default "relay")
	Namespace string

	// LatencyBuckets are the histogram buckets in seconds
	LatencyBuckets []float64
}

// defaultLatencyBuckets span fast probe failures to slow generations.
var defaultLatencyBuckets = []float64{0.1, 0.25, 0.5, 1, 2, 5, 10, 30}

// Collector owns all relay metrics and the registry they live in.
type Collector struct {
	registry *prometheus.Registry

	// attemptsTotal counts candidate attempts by provider and outcome
	attemptsTotal *prometheus.CounterVec

	// attemptDuration tracks attempt latency by provider
	attemptDuration *prometheus.HistogramVec

	// providerHealth is 1 when the provider's last probe succeeded
	providerHealth *prometheus.GaugeVec

	// errorsTotal counts failures by provider and error kind
	errorsTotal *prometheus.CounterVec
}

// NewCollector creates a collector with its own registry, including the
// standard Go runtime and process collectors.
func NewCollector(opts Options) *Collector {
	if opts.Namespace == "" {
		opts.Namespace = "relay"
	}
	if len(opts.LatencyBuckets) == 0 {
		opts.LatencyBuckets = defaultLatencyBuckets
	}

	c := &Collector{
		registry: prometheus.NewRegistry(),

		attemptsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: opts.Namespace,
				Name:      "provider_attempts_total",
				Help:      "Candidate attempts by provider and outcome",
			},
			[]string{"provider", "outcome"},
		),

		attemptDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: opts.Namespace,
				Name:      "provider_attempt_duration_seconds",
				Help:      "Attempt latency by provider, including retries",
				Buckets:   opts.LatencyBuckets,
			},
			[]string{"provider"},
		),

		providerHealth: prometheus.NewGaugeVec(
			prometheus.GaugeOpts{
				Namespace: opts.Namespace,
				Name:      "provider_healthy",
				Help:      "1 if the provider's last probe succeeded, 0 otherwise",
			},
			[]string{"provider"},
		),

		errorsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: opts.Namespace,
				Name:      "provider_errors_total",
				Help:      "Provider failures by error kind",
			},
			[]string{"provider", "kind"},
		),
	}

	c.registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		c.attemptsTotal,
		c.attemptDuration,
		c.providerHealth,
		c.errorsTotal,
	)

	return c
}

// Registry returns the underlying Prometheus registry.
func (c *Collector) Registry() *prometheus.Registry {
	return c.registry
}

// ObserveAttempt records one candidate attempt. It satisfies the
// orchestrator's AttemptObserver interface.
func (c *Collector) ObserveAttempt(provider string, available bool, latency time.Duration, err error) {
	if !available {
		c.attemptsTotal.WithLabelValues(provider, "unavailable").Inc()
		c.providerHealth.WithLabelValues(provider).Set(0)
		return
	}

	c.attemptDuration.WithLabelValues(provider).Observe(latency.Seconds())

	if err == nil {
		c.attemptsTotal.WithLabelValues(provider, "success").Inc()
		c.providerHealth.WithLabelValues(provider).Set(1)
		return
	}

	c.attemptsTotal.WithLabelValues(provider, "failure").Inc()
	c.errorsTotal.WithLabelValues(provider, errorKind(err)).Inc()
}

// SetProviderHealth records a probe verdict outside the request path, used
// by the background sweeper.
func (c *Collector) SetProviderHealth(provider string, healthy bool) {
	v := 0.0
	if healthy {
		v = 1.0
	}
	c.providerHealth.WithLabelValues(provider).Set(v)
}

// errorKind maps the typed error taxonomy to a bounded label set. Unknown
// errors collapse to "other" to keep cardinality fixed.
func errorKind(err error) string {
	switch {
	case isA[*providers.AuthError](err):
		return "auth"
	case isA[*providers.RateLimitError](err):
		return "rate_limit"
	case isA[*providers.TimeoutError](err):
		return "timeout"
	case isA[*providers.ServerError](err):
		return "server"
	case isA[*providers.TransportError](err):
		return "transport"
	case isA[*providers.BadRequestError](err):
		return "bad_request"
	case isA[*providers.ModelNotFoundError](err):
		return "model_not_found"
	case isA[*providers.ParseError](err):
		return "parse"
	default:
		return "other"
	}
}

func isA[T error](err error) bool {
	var target T
	return errors.As(err, &target)
}
