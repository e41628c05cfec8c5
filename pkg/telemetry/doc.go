// Package telemetry groups the relay's observability concerns.
//
//   - logging: slog setup with credential redaction
//   - metrics: Prometheus metrics for attempts, latency, and provider health
package telemetry
