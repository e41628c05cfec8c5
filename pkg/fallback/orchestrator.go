package fallback

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/evolvingai/relay/pkg/providers"
)

// ProviderGetter resolves a provider name to a live adapter. The registry
// satisfies this.
type ProviderGetter interface {
	Get(name string) (providers.Provider, error)
	Has(name string) bool
}

// HealthChecker answers whether a provider looks healthy, from cache or by
// probing. The availability tracker satisfies this.
type HealthChecker interface {
	Check(ctx context.Context, p providers.Provider) bool
}

// AttemptObserver receives one event per candidate attempt. Observer
// failures never affect the orchestration result.
type AttemptObserver interface {
	// ObserveAttempt is called after each candidate finishes: skipped
	// because unavailable (available=false, err describes the skip), failed
	// after retries, or succeeded (err=nil).
	ObserveAttempt(provider string, available bool, latency time.Duration, err error)
}

// Result is the terminal outcome of one orchestrated generation. Exactly one
// of Text or Err is meaningful: on success Text is set and Err is nil, on
// exhaustion Text is empty and Err holds an *ExhaustedError. Expected
// failures travel inside the Result, never as a returned error.
type Result struct {
	// Text is the generated text on success
	Text string

	// Provider is the name of the provider that produced Text
	Provider string

	// Err is non-nil only when every candidate failed
	Err error
}

// ExhaustedError reports that every candidate provider was tried and none
// succeeded. It is a normal return value carried inside Result, not a fault.
type ExhaustedError struct {
	// Attempts maps each tried provider to its failure description
	Attempts []AttemptRecord

	// LastErr is the error from the final candidate
	LastErr error
}

// AttemptRecord is one line of the exhaustion diagnostic.
type AttemptRecord struct {
	Provider string
	Reason   string
}

// Error implements the error interface.
func (e *ExhaustedError) Error() string {
	if len(e.Attempts) == 0 {
		return "no providers configured for text generation"
	}
	parts := make([]string, 0, len(e.Attempts))
	for _, a := range e.Attempts {
		parts = append(parts, fmt.Sprintf("%s: %s", a.Provider, a.Reason))
	}
	return fmt.Sprintf("all %d provider(s) failed: %s", len(e.Attempts), strings.Join(parts, "; "))
}

// Unwrap returns the error from the final candidate.
func (e *ExhaustedError) Unwrap() error {
	return e.LastErr
}

// Orchestrator drives candidate selection, availability checks, retry, and
// fallback for one generation call.
type Orchestrator struct {
	registry  ProviderGetter
	health    HealthChecker
	policy    Policy
	priority  []string
	observers []AttemptObserver
	logger    *slog.Logger
}

// New creates an orchestrator. priority is the fallback order used when the
// caller names no provider; it is copied.
func New(reg ProviderGetter, health HealthChecker, policy Policy, priority []string) *Orchestrator {
	return &Orchestrator{
		registry: reg,
		health:   health,
		policy:   policy,
		priority: append([]string(nil), priority...),
		logger:   slog.Default().With("component", "fallback.orchestrator"),
	}
}

// AddObserver registers an attempt observer. Not safe to call concurrently
// with Generate; register observers during startup.
func (o *Orchestrator) AddObserver(obs AttemptObserver) {
	if obs != nil {
		o.observers = append(o.observers, obs)
	}
}

// SetPriority replaces the fallback order, for configuration reloads.
func (o *Orchestrator) SetPriority(priority []string) {
	o.priority = append([]string(nil), priority...)
}

// Generate walks the candidate list until one provider returns text. The
// explicitly requested provider, if any, is tried first; if it is down or
// fails, the failure is recorded and the priority list is tried in order —
// the explicit choice is never silently substituted, and never abandons the
// fallback chain either.
//
// Generate returns an error only for caller mistakes or context
// cancellation. All provider-side failure is reported inside the Result.
func (o *Orchestrator) Generate(ctx context.Context, req *providers.GenerationRequest) (*Result, error) {
	if req == nil {
		return nil, fmt.Errorf("nil generation request")
	}
	if req.Prompt == "" && len(req.Messages) == 0 {
		return nil, fmt.Errorf("generation request needs a prompt or messages")
	}

	candidates := o.candidates(req.Provider)
	if len(candidates) == 0 {
		// Zero network calls on an empty candidate list.
		return &Result{Err: &ExhaustedError{}}, nil
	}

	var attempts []AttemptRecord
	var lastErr error

	for _, name := range candidates {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		p, err := o.registry.Get(name)
		if err != nil {
			// Candidate list is filtered against the registry, but a
			// refresh can race it. Treat as a failed candidate.
			attempts = append(attempts, AttemptRecord{Provider: name, Reason: err.Error()})
			lastErr = err
			continue
		}

		if !o.health.Check(ctx, p) {
			o.logger.Info("skipping unavailable provider", "provider", name)
			skipErr := fmt.Errorf("provider %q unavailable at last probe", name)
			o.notify(name, false, 0, skipErr)
			attempts = append(attempts, AttemptRecord{Provider: name, Reason: "unavailable"})
			lastErr = skipErr
			continue
		}

		start := time.Now()
		var text string
		err = o.policy.Do(ctx, name, func(ctx context.Context) error {
			var genErr error
			text, genErr = p.GenerateText(ctx, req)
			return genErr
		})
		latency := time.Since(start)

		if err == nil {
			o.notify(name, true, latency, nil)
			o.logger.Info("generation succeeded",
				"provider", name,
				"model", p.Model(),
				"latency_ms", latency.Milliseconds(),
			)
			return &Result{Text: text, Provider: name}, nil
		}

		if ctx.Err() != nil {
			return nil, ctx.Err()
		}

		o.notify(name, true, latency, err)
		o.logger.Warn("provider failed, trying next candidate",
			"provider", name,
			"latency_ms", latency.Milliseconds(),
			"error", err,
		)
		attempts = append(attempts, AttemptRecord{Provider: name, Reason: err.Error()})
		lastErr = err
	}

	return &Result{Err: &ExhaustedError{Attempts: attempts, LastErr: lastErr}}, nil
}

// candidates builds the ordered candidate list: the explicit provider first
// when given, then the priority list, duplicates removed, filtered to
// providers the registry actually built.
func (o *Orchestrator) candidates(explicit string) []string {
	seen := make(map[string]bool, len(o.priority)+1)
	var out []string

	add := func(name string) {
		if name == "" || seen[name] {
			return
		}
		seen[name] = true
		if !o.registry.Has(name) {
			if explicit == name {
				o.logger.Warn("explicitly requested provider is not configured", "provider", name)
			}
			return
		}
		out = append(out, name)
	}

	add(explicit)
	for _, name := range o.priority {
		add(name)
	}
	return out
}

// notify fans an attempt event out to all observers. A panicking observer is
// contained; orchestration never fails because a sink did.
func (o *Orchestrator) notify(provider string, available bool, latency time.Duration, err error) {
	for _, obs := range o.observers {
		func() {
			defer func() {
				if r := recover(); r != nil {
					o.logger.Error("attempt observer panicked",
						"provider", provider,
						"panic", r,
					)
				}
			}()
			obs.ObserveAttempt(provider, available, latency, err)
		}()
	}
}
