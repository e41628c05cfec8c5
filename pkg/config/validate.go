package config

import (
	"fmt"
	"strings"
)

// knownProviders are the provider names the registry can build adapters for.
var knownProviders = map[string]bool{
	"openai":     true,
	"anthropic":  true,
	"openrouter": true,
	"zai":        true,
}

// Validate checks the configuration for errors that would surface later as
// confusing runtime failures. It returns the first problem found.
func Validate(cfg *Config) error {
	if cfg.Server.ListenAddress == "" {
		return fmt.Errorf("server.listen_address must not be empty")
	}
	if !strings.Contains(cfg.Server.ListenAddress, ":") {
		return fmt.Errorf("server.listen_address %q must be host:port", cfg.Server.ListenAddress)
	}

	for name, provider := range cfg.Providers {
		if !knownProviders[name] {
			return fmt.Errorf("providers: unknown provider %q (supported: openai, anthropic, openrouter, zai)", name)
		}
		if provider.Timeout < 0 {
			return fmt.Errorf("providers.%s.timeout must not be negative", name)
		}
	}

	for _, name := range cfg.Fallback.Priority {
		if !knownProviders[name] {
			return fmt.Errorf("fallback.priority: unknown provider %q", name)
		}
	}

	if cfg.Fallback.MaxAttempts < 1 {
		return fmt.Errorf("fallback.max_attempts must be at least 1, got %d", cfg.Fallback.MaxAttempts)
	}
	if cfg.Fallback.BackoffBase < 0 || cfg.Fallback.BackoffCap < 0 {
		return fmt.Errorf("fallback backoff durations must not be negative")
	}
	if cfg.Fallback.BackoffCap < cfg.Fallback.BackoffBase {
		return fmt.Errorf("fallback.backoff_cap (%s) must not be below backoff_base (%s)",
			cfg.Fallback.BackoffCap, cfg.Fallback.BackoffBase)
	}

	if cfg.Defaults.Temperature < 0 || cfg.Defaults.Temperature > 2 {
		return fmt.Errorf("defaults.temperature must be in [0, 2], got %g", cfg.Defaults.Temperature)
	}
	if cfg.Defaults.MaxTokens < 1 {
		return fmt.Errorf("defaults.max_tokens must be positive, got %d", cfg.Defaults.MaxTokens)
	}

	if cfg.Availability.TTL < 0 {
		return fmt.Errorf("availability.ttl must not be negative")
	}
	if cfg.Availability.ProbeTimeout <= 0 {
		return fmt.Errorf("availability.probe_timeout must be positive")
	}

	switch cfg.Logging.Level {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("logging.level must be one of debug, info, warn, error; got %q", cfg.Logging.Level)
	}
	switch cfg.Logging.Format {
	case "text", "json":
	default:
		return fmt.Errorf("logging.format must be text or json, got %q", cfg.Logging.Format)
	}

	return nil
}
