package registry

import (
	"fmt"
	"log/slog"
	"sync"
	"sync/atomic"

	"github.com/evolvingai/relay/pkg/config"
	"github.com/evolvingai/relay/pkg/providers"
	"github.com/evolvingai/relay/pkg/telemetry/logging"
	"github.com/evolvingai/relay/pkg/providers/anthropic"
	"github.com/evolvingai/relay/pkg/providers/openai"
	"github.com/evolvingai/relay/pkg/providers/openrouter"
	"github.com/evolvingai/relay/pkg/providers/zai"
)

// NotConfiguredError reports a request for a provider that was never
// successfully built: unknown name, missing or placeholder credential, or a
// construction failure.
type NotConfiguredError struct {
	// Provider is the requested provider name
	Provider string
}

// Error implements the error interface.
func (e *NotConfiguredError) Error() string {
	return fmt.Sprintf("provider %q is not configured", e.Provider)
}

// Registry owns the adapter map. The map itself is immutable once stored;
// Refresh replaces it wholesale rather than mutating it in place.
type Registry struct {
	// adapters holds a map[string]providers.Provider
	adapters atomic.Value

	// refreshMu serializes Refresh calls; reads never take it.
	refreshMu sync.Mutex
}

// New builds a registry from the configuration. Providers with placeholder
// credentials are excluded; providers that fail to build are logged and
// skipped rather than failing the whole registry, matching the graceful
// degradation the orchestrator promises.
func New(cfg *config.Config) *Registry {
	r := &Registry{}
	r.adapters.Store(buildAdapters(cfg))
	return r
}

// Get returns the adapter for name, or a *NotConfiguredError.
func (r *Registry) Get(name string) (providers.Provider, error) {
	adapters := r.load()
	p, ok := adapters[name]
	if !ok {
		return nil, &NotConfiguredError{Provider: name}
	}
	return p, nil
}

// Has reports whether the named provider was successfully built.
func (r *Registry) Has(name string) bool {
	_, ok := r.load()[name]
	return ok
}

// Names returns the names of all built providers, in no particular order.
func (r *Registry) Names() []string {
	adapters := r.load()
	names := make([]string, 0, len(adapters))
	for name := range adapters {
		names = append(names, name)
	}
	return names
}

// Providers returns a copy of the adapter map, safe for the caller to range
// over while a refresh happens.
func (r *Registry) Providers() map[string]providers.Provider {
	adapters := r.load()
	out := make(map[string]providers.Provider, len(adapters))
	for name, p := range adapters {
		out[name] = p
	}
	return out
}

// Refresh discards the current adapter map and swaps in a brand-new one
// built from cfg. In-flight requests holding an old adapter finish against
// it; only idle connections of replaced adapters are released.
func (r *Registry) Refresh(cfg *config.Config) {
	r.refreshMu.Lock()
	defer r.refreshMu.Unlock()

	old := r.load()
	fresh := buildAdapters(cfg)
	r.adapters.Store(fresh)

	for name, p := range old {
		if err := p.Close(); err != nil {
			slog.Error("error closing replaced provider", "provider", name, "error", err)
		}
	}

	slog.Info("provider registry refreshed",
		"providers", len(fresh),
	)
}

// Close releases all adapters.
func (r *Registry) Close() error {
	r.refreshMu.Lock()
	defer r.refreshMu.Unlock()

	adapters := r.load()
	r.adapters.Store(map[string]providers.Provider{})

	var firstErr error
	for name, p := range adapters {
		if err := p.Close(); err != nil && firstErr == nil {
			firstErr = fmt.Errorf("failed to close provider %q: %w", name, err)
		}
	}
	return firstErr
}

func (r *Registry) load() map[string]providers.Provider {
	return r.adapters.Load().(map[string]providers.Provider)
}

// buildAdapters constructs the adapter map for a configuration. It is a pure
// function of cfg: the returned map is complete before anyone can see it.
func buildAdapters(cfg *config.Config) map[string]providers.Provider {
	adapters := make(map[string]providers.Provider, len(cfg.Providers))

	for name, pc := range cfg.Providers {
		if config.IsPlaceholder(pc.APIKey) {
			slog.Info("provider excluded: credential missing or placeholder", "provider", name)
			continue
		}

		adapterCfg := providers.Config{
			Name:    name,
			APIKey:  pc.APIKey,
			Model:   pc.Model,
			BaseURL: pc.BaseURL,
			Timeout: pc.Timeout,
		}

		p, err := buildAdapter(name, adapterCfg)
		if err != nil {
			slog.Error("failed to build provider", "provider", name, "error", err)
			continue
		}
		adapters[name] = p
		slog.Info("provider built",
			"provider", name,
			"api_key", logging.RedactKey(pc.APIKey),
		)
	}

	return adapters
}

// buildAdapter dispatches on the provider name.
func buildAdapter(name string, cfg providers.Config) (providers.Provider, error) {
	switch name {
	case "openai":
		return openai.NewProvider(cfg)
	case "anthropic":
		return anthropic.NewProvider(cfg)
	case "openrouter":
		return openrouter.NewProvider(cfg)
	case "zai":
		return zai.NewProvider(cfg)
	default:
		return nil, &providers.ConfigError{
			Provider: name,
			Field:    "name",
			Message:  "unsupported provider (supported: openai, anthropic, openrouter, zai)",
		}
	}
}
