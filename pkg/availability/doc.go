// Package availability caches provider health so the orchestrator can skip
// backends that are known to be down without paying a network round trip per
// request.
//
// A probe result is trusted for a TTL (60 seconds by default). Within the
// TTL, Check answers from the cache; after it expires, the next Check probes
// again. Invalidate drops the whole cache, which the registry reload path
// uses so stale verdicts never outlive a credential change. An optional cron
// sweeper re-probes every provider in the background to keep the cache warm.
package availability
