package availability

import (
	"context"
	"fmt"
	"log/slog"
	"sync"

	"github.com/robfig/cron/v3"

	"github.com/evolvingai/relay/pkg/providers"
)

// ProviderSource yields the current provider set. The registry satisfies
// this; taking an interface keeps the sweeper decoupled from reload timing —
// each sweep sees whatever adapters are live at that moment.
type ProviderSource interface {
	Providers() map[string]providers.Provider
}

// HealthObserver receives the verdict of each background probe. The metrics
// collector satisfies this, so the health gauge stays current between
// requests instead of only moving on request-path attempts.
type HealthObserver interface {
	SetProviderHealth(provider string, healthy bool)
}

// Sweeper re-probes every provider on a cron schedule so cached verdicts
// stay warm and the status endpoint reflects reality between requests.
type Sweeper struct {
	tracker  *Tracker
	source   ProviderSource
	schedule string
	observer HealthObserver
	cron     *cron.Cron
	logger   *slog.Logger

	mu      sync.Mutex
	running bool
}

// NewSweeper creates a sweeper with the given cron schedule
// (e.g. "*/1 * * * *" for every minute). An empty schedule disables it.
func NewSweeper(tracker *Tracker, source ProviderSource, schedule string) *Sweeper {
	return &Sweeper{
		tracker:  tracker,
		source:   source,
		schedule: schedule,
		cron:     cron.New(),
		logger:   slog.Default().With("component", "availability.sweeper"),
	}
}

// SetHealthObserver registers an optional observer notified with the verdict
// of every background probe. Register before Start.
func (s *Sweeper) SetHealthObserver(obs HealthObserver) {
	s.observer = obs
}

// Start begins background sweeping. If no schedule is configured it does
// nothing. The sweeper stops itself when ctx is cancelled.
func (s *Sweeper) Start(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.schedule == "" {
		s.logger.Info("sweep schedule not configured, skipping sweeper")
		return nil
	}

	if _, err := cron.ParseStandard(s.schedule); err != nil {
		return fmt.Errorf("invalid cron schedule %q: %w", s.schedule, err)
	}

	if _, err := s.cron.AddFunc(s.schedule, func() {
		s.sweep(ctx)
	}); err != nil {
		return fmt.Errorf("failed to schedule availability sweep: %w", err)
	}

	s.cron.Start()
	s.running = true

	s.logger.Info("availability sweeper started", "schedule", s.schedule)

	go func() {
		<-ctx.Done()
		s.Stop()
	}()

	return nil
}

// Stop halts scheduled sweeps. An in-flight sweep finishes.
func (s *Sweeper) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.running {
		return
	}
	s.cron.Stop()
	s.running = false
	s.logger.Info("availability sweeper stopped")
}

// sweep probes all current providers sequentially. Probes are rare and
// cheap, and sequential sweeping avoids bursting every backend at once.
func (s *Sweeper) sweep(ctx context.Context) {
	if ctx.Err() != nil {
		return
	}

	current := s.source.Providers()
	healthy := 0
	for name, p := range current {
		up := s.tracker.Probe(ctx, p)
		if up {
			healthy++
		}
		if s.observer != nil {
			s.observer.SetProviderHealth(name, up)
		}
	}

	s.logger.Debug("availability sweep complete",
		"providers", len(current),
		"healthy", healthy,
	)
}
