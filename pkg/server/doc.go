// Package server is the HTTP front door for the relay.
//
// Routes:
//
//	POST /v1/generate  — orchestrated text generation
//	GET  /healthz      — liveness plus provider count
//	GET  /providers    — configured providers and cached availability
//	GET  /metrics      — Prometheus scrape endpoint (when enabled)
//
// Exhaustion is not an HTTP error: /v1/generate answers 200 with the error
// field set when every provider failed, mirroring the orchestrator's
// result-value contract. 5xx is reserved for faults in the relay itself.
package server
