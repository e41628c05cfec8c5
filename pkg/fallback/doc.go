// Package fallback turns a set of independent provider adapters into one
// resilient text-generation call.
//
// The orchestrator walks an ordered candidate list: the explicitly requested
// provider first if the caller named one, then the configured priority order.
// Each candidate is availability-checked, then attempted under the retry
// policy. Transient failures (rate limits, timeouts, 5xx, network errors)
// are retried with exponential backoff; permanent failures move straight to
// the next candidate. Only when every candidate has been tried does the
// caller see an ExhaustedError — and even then as a value in the Result, so
// callers can report partial diagnostics instead of a bare failure.
package fallback
