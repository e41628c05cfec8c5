package availability

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/evolvingai/relay/pkg/providers"
)

// Record is the cached outcome of the most recent probe of one provider.
type Record struct {
	// Provider is the provider name
	Provider string

	// Available reports whether the last probe succeeded
	Available bool

	// LastError holds the failure message of the last probe, empty on success
	LastError string

	// LastChecked is when the last probe completed
	LastChecked time.Time

	// Latency is how long the last probe took
	Latency time.Duration
}

// Tracker caches probe results with a TTL.
type Tracker struct {
	ttl          time.Duration
	probeTimeout time.Duration
	logger       *slog.Logger

	// now is swappable for tests
	now func() time.Time

	mu      sync.RWMutex
	records map[string]Record
}

const (
	defaultTTL          = 60 * time.Second
	defaultProbeTimeout = 10 * time.Second
)

// NewTracker creates a tracker. Zero ttl or probeTimeout fall back to the
// defaults (60s and 10s).
func NewTracker(ttl, probeTimeout time.Duration, logger *slog.Logger) *Tracker {
	if ttl <= 0 {
		ttl = defaultTTL
	}
	if probeTimeout <= 0 {
		probeTimeout = defaultProbeTimeout
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Tracker{
		ttl:          ttl,
		probeTimeout: probeTimeout,
		logger:       logger,
		now:          time.Now,
		records:      make(map[string]Record),
	}
}

// Check reports whether the provider looks healthy. A cached verdict younger
// than the TTL is returned without network traffic; otherwise the provider is
// probed under the tracker's probe timeout and the result cached. A probe
// failure marks the provider unavailable but never fails the caller: the
// orchestrator treats unavailable as "skip", not "abort".
func (t *Tracker) Check(ctx context.Context, p providers.Provider) bool {
	name := p.Name()

	t.mu.RLock()
	rec, ok := t.records[name]
	t.mu.RUnlock()

	if ok && t.now().Sub(rec.LastChecked) < t.ttl {
		return rec.Available
	}

	return t.Probe(ctx, p)
}

// Probe probes the provider unconditionally and caches the result,
// bypassing any cached verdict.
func (t *Tracker) Probe(ctx context.Context, p providers.Provider) bool {
	name := p.Name()

	probeCtx, cancel := context.WithTimeout(ctx, t.probeTimeout)
	defer cancel()

	start := t.now()
	err := p.Probe(probeCtx)
	elapsed := t.now().Sub(start)

	rec := Record{
		Provider:    name,
		Available:   err == nil,
		LastChecked: t.now(),
		Latency:     elapsed,
	}
	if err != nil {
		rec.LastError = err.Error()
		t.logger.Warn("provider probe failed",
			"provider", name,
			"latency_ms", elapsed.Milliseconds(),
			"error", err,
		)
	} else {
		t.logger.Debug("provider probe succeeded",
			"provider", name,
			"latency_ms", elapsed.Milliseconds(),
		)
	}

	t.mu.Lock()
	t.records[name] = rec
	t.mu.Unlock()

	return rec.Available
}

// Invalidate drops every cached verdict. The next Check of each provider
// probes again.
func (t *Tracker) Invalidate() {
	t.mu.Lock()
	t.records = make(map[string]Record)
	t.mu.Unlock()
}

// Record returns the cached record for a provider, if any.
func (t *Tracker) Record(name string) (Record, bool) {
	t.mu.RLock()
	defer t.mu.RUnlock()
	rec, ok := t.records[name]
	return rec, ok
}

// Records returns a snapshot of all cached records keyed by provider name.
func (t *Tracker) Records() map[string]Record {
	t.mu.RLock()
	defer t.mu.RUnlock()
	out := make(map[string]Record, len(t.records))
	for name, rec := range t.records {
		out[name] = rec
	}
	return out
}
