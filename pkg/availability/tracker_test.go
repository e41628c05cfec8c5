package availability

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/evolvingai/relay/pkg/providers"
)

// fakeProvider is a controllable Provider for tracker tests.
type fakeProvider struct {
	name string

	mu       sync.Mutex
	probeErr error
	probes   int
}

func (f *fakeProvider) GenerateText(ctx context.Context, req *providers.GenerationRequest) (string, error) {
	return "", errors.New("not used")
}

func (f *fakeProvider) Probe(ctx context.Context) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.probes++
	return f.probeErr
}

func (f *fakeProvider) setProbeErr(err error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.probeErr = err
}

func (f *fakeProvider) probeCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.probes
}

func (f *fakeProvider) Name() string  { return f.name }
func (f *fakeProvider) Model() string { return "fake-model" }
func (f *fakeProvider) Close() error  { return nil }

func TestCheckProbesOnFirstUse(t *testing.T) {
	tracker := NewTracker(time.Minute, time.Second, nil)
	p := &fakeProvider{name: "openai"}

	if !tracker.Check(context.Background(), p) {
		t.Error("expected healthy provider to check available")
	}
	if p.probeCount() != 1 {
		t.Errorf("probes = %d, want 1", p.probeCount())
	}

	rec, ok := tracker.Record("openai")
	if !ok || !rec.Available || rec.LastError != "" {
		t.Errorf("record = %+v", rec)
	}
}

func TestCheckUsesCacheWithinTTL(t *testing.T) {
	tracker := NewTracker(time.Minute, time.Second, nil)
	p := &fakeProvider{name: "openai"}

	tracker.Check(context.Background(), p)
	// A failure after caching must stay invisible until the TTL lapses.
	p.setProbeErr(errors.New("down"))

	if !tracker.Check(context.Background(), p) {
		t.Error("expected cached verdict inside the TTL")
	}
	if p.probeCount() != 1 {
		t.Errorf("probes = %d, want 1 (cache hit expected)", p.probeCount())
	}
}

func TestCheckReprobesAfterTTL(t *testing.T) {
	tracker := NewTracker(time.Minute, time.Second, nil)
	p := &fakeProvider{name: "openai"}

	now := time.Now()
	tracker.now = func() time.Time { return now }

	tracker.Check(context.Background(), p)

	p.setProbeErr(errors.New("down"))
	now = now.Add(2 * time.Minute)

	if tracker.Check(context.Background(), p) {
		t.Error("expected re-probe after TTL to see the failure")
	}
	if p.probeCount() != 2 {
		t.Errorf("probes = %d, want 2", p.probeCount())
	}

	rec, _ := tracker.Record("openai")
	if rec.Available || rec.LastError != "down" {
		t.Errorf("record = %+v", rec)
	}
}

func TestInvalidateDropsCache(t *testing.T) {
	tracker := NewTracker(time.Minute, time.Second, nil)
	p := &fakeProvider{name: "openai"}

	tracker.Check(context.Background(), p)
	tracker.Invalidate()

	if _, ok := tracker.Record("openai"); ok {
		t.Error("expected no record after Invalidate")
	}

	tracker.Check(context.Background(), p)
	if p.probeCount() != 2 {
		t.Errorf("probes = %d, want 2 after invalidation", p.probeCount())
	}
}

func TestRecordsSnapshot(t *testing.T) {
	tracker := NewTracker(time.Minute, time.Second, nil)
	a := &fakeProvider{name: "a"}
	b := &fakeProvider{name: "b", probeErr: errors.New("broken")}

	tracker.Check(context.Background(), a)
	tracker.Check(context.Background(), b)

	records := tracker.Records()
	if len(records) != 2 {
		t.Fatalf("records = %d, want 2", len(records))
	}
	if !records["a"].Available || records["b"].Available {
		t.Errorf("records = %+v", records)
	}

	// The snapshot is a copy; mutating it must not affect the tracker.
	delete(records, "a")
	if _, ok := tracker.Record("a"); !ok {
		t.Error("snapshot mutation leaked into the tracker")
	}
}

func TestProbeTimeoutApplied(t *testing.T) {
	tracker := NewTracker(time.Minute, 50*time.Millisecond, nil)

	slow := &ctxWatchingProvider{name: "slow"}
	start := time.Now()
	if tracker.Probe(context.Background(), slow) {
		t.Error("expected timed-out probe to report unavailable")
	}
	if elapsed := time.Since(start); elapsed > 2*time.Second {
		t.Errorf("probe timeout not applied, took %s", elapsed)
	}
}

// ctxWatchingProvider blocks in Probe until the context expires.
type ctxWatchingProvider struct {
	name string
}

func (p *ctxWatchingProvider) GenerateText(ctx context.Context, req *providers.GenerationRequest) (string, error) {
	return "", errors.New("not used")
}

func (p *ctxWatchingProvider) Probe(ctx context.Context) error {
	<-ctx.Done()
	return ctx.Err()
}

func (p *ctxWatchingProvider) Name() string  { return p.name }
func (p *ctxWatchingProvider) Model() string { return "fake-model" }
func (p *ctxWatchingProvider) Close() error  { return nil }
