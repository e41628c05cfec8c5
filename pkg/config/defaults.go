package config

import "time"

// Default provider priority, from most to least preferred. The order is
// opinionated but configurable through fallback.priority.
var defaultPriority = []string{"anthropic", "openrouter", "zai", "openai"}

// ApplyDefaults fills unset fields with their documented defaults.
func ApplyDefaults(cfg *Config) {
	// Server
	if cfg.Server.ListenAddress == "" {
		cfg.Server.ListenAddress = "127.0.0.1:8080"
	}
	if cfg.Server.ReadTimeout == 0 {
		cfg.Server.ReadTimeout = 30 * time.Second
	}
	if cfg.Server.WriteTimeout == 0 {
		cfg.Server.WriteTimeout = 300 * time.Second
	}
	if cfg.Server.IdleTimeout == 0 {
		cfg.Server.IdleTimeout = 120 * time.Second
	}
	if cfg.Server.ShutdownTimeout == 0 {
		cfg.Server.ShutdownTimeout = 30 * time.Second
	}

	// Providers
	if cfg.Providers == nil {
		cfg.Providers = make(map[string]ProviderConfig)
	}
	for name, provider := range cfg.Providers {
		if provider.Timeout == 0 {
			provider.Timeout = 60 * time.Second
		}
		cfg.Providers[name] = provider
	}

	// Request defaults
	if cfg.Defaults.Temperature == 0 {
		cfg.Defaults.Temperature = 0.7
	}
	if cfg.Defaults.MaxTokens == 0 {
		cfg.Defaults.MaxTokens = 2048
	}

	// Fallback
	if len(cfg.Fallback.Priority) == 0 {
		cfg.Fallback.Priority = append([]string(nil), defaultPriority...)
	}
	if cfg.Fallback.MaxAttempts == 0 {
		cfg.Fallback.MaxAttempts = 3
	}
	if cfg.Fallback.BackoffBase == 0 {
		cfg.Fallback.BackoffBase = 4 * time.Second
	}
	if cfg.Fallback.BackoffCap == 0 {
		cfg.Fallback.BackoffCap = 10 * time.Second
	}

	// Availability
	if cfg.Availability.TTL == 0 {
		cfg.Availability.TTL = 60 * time.Second
	}
	if cfg.Availability.ProbeTimeout == 0 {
		cfg.Availability.ProbeTimeout = 10 * time.Second
	}

	// Metrics
	if cfg.Metrics.Path == "" {
		cfg.Metrics.Path = "/metrics"
	}
	if cfg.Metrics.Namespace == "" {
		cfg.Metrics.Namespace = "relay"
	}
	if len(cfg.Metrics.LatencyBuckets) == 0 {
		// Tuned for text-generation latencies (100ms - 30s)
		cfg.Metrics.LatencyBuckets = []float64{0.1, 0.25, 0.5, 1.0, 2.0, 5.0, 10.0, 30.0}
	}

	// Logging
	if cfg.Logging.Level == "" {
		cfg.Logging.Level = "info"
	}
	if cfg.Logging.Format == "" {
		cfg.Logging.Format = "text"
	}
}

// Default returns a fully defaulted configuration with no providers, with
// metrics enabled. Useful for tests and for `relay validate` output.
func Default() *Config {
	cfg := &Config{
		Metrics: MetricsConfig{Enabled: true},
	}
	ApplyDefaults(cfg)
	return cfg
}
