// Package providers defines the provider adapter abstraction for the relay.
//
// A Provider translates a provider-agnostic GenerationRequest into one
// backend's wire format, sends it with an explicit timeout, and normalizes
// the response to plain text. Adapters classify failures with the typed
// errors in this package so the retry and fallback layers can distinguish
// transient causes (rate limits, timeouts, 5xx, network) from permanent ones
// (bad credentials, malformed requests, unknown models).
//
// Concrete adapters live in the subpackages openai, anthropic, openrouter,
// and zai. They embed the shared HTTP client from this package and differ
// only in endpoint layout, authentication headers, option allow-lists, and
// how a system prompt is carried.
//
// Adapters perform exactly one attempt per call. Retry is owned by
// pkg/fallback so that probing and retry budgets stay independent.
package providers
