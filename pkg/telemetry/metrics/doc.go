// Package metrics exposes Prometheus metrics for the relay: per-attempt
// request counts and latency, provider health gauges, and error counts by
// error kind.
//
// The Collector owns a private prometheus.Registry so tests can create many
// collectors without duplicate-registration panics. It implements the
// orchestrator's AttemptObserver interface, so wiring it up is one
// AddObserver call.
package metrics
