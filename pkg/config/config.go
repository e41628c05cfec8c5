package config

import "time"

// Config is the root configuration for the relay.
type Config struct {
	// Server contains the HTTP front door configuration.
	Server ServerConfig `yaml:"server"`

	// Providers contains configuration for each text-generation backend.
	// Keys are provider names ("openai", "anthropic", "openrouter", "zai").
	Providers map[string]ProviderConfig `yaml:"providers"`

	// Defaults contains request-level defaults applied when a caller leaves
	// the corresponding field unset.
	Defaults DefaultsConfig `yaml:"defaults"`

	// Fallback contains candidate ordering and retry/backoff settings.
	Fallback FallbackConfig `yaml:"fallback"`

	// Availability contains liveness-probe settings.
	Availability AvailabilityConfig `yaml:"availability"`

	// Metrics contains Prometheus exposition settings.
	Metrics MetricsConfig `yaml:"metrics"`

	// Logging contains structured-logging settings.
	Logging LoggingConfig `yaml:"logging"`

	// Watch enables hot reload: the config file is watched and a change
	// atomically refreshes the provider registry.
	Watch bool `yaml:"watch"`
}

// ServerConfig contains configuration for the HTTP front door.
type ServerConfig struct {
	// ListenAddress is the host:port the server binds.
	// Default: "127.0.0.1:8080"
	ListenAddress string `yaml:"listen_address"`

	// ReadTimeout is the maximum duration for reading a request.
	// Default: 30s
	ReadTimeout time.Duration `yaml:"read_timeout"`

	// WriteTimeout is the maximum duration for writing a response. It must
	// cover a full fallback chain, so it defaults well above the provider
	// timeout. Default: 300s
	WriteTimeout time.Duration `yaml:"write_timeout"`

	// IdleTimeout is the keep-alive idle limit. Default: 120s
	IdleTimeout time.Duration `yaml:"idle_timeout"`

	// ShutdownTimeout bounds graceful shutdown. Default: 30s
	ShutdownTimeout time.Duration `yaml:"shutdown_timeout"`
}

// ProviderConfig contains configuration for one provider.
type ProviderConfig struct {
	// APIKey is the authentication credential. A placeholder value (see
	// IsPlaceholder) excludes the provider from the candidate list.
	APIKey string `yaml:"api_key"`

	// Model is the default model identifier for this provider.
	// Adapter-specific defaults apply when empty.
	Model string `yaml:"model"`

	// BaseURL overrides the provider's default API endpoint.
	BaseURL string `yaml:"base_url"`

	// Timeout is the per-request connect/read timeout. Default: 60s
	Timeout time.Duration `yaml:"timeout"`
}

// DefaultsConfig contains request-level defaults.
type DefaultsConfig struct {
	// Temperature applies when the caller leaves it unset. Default: 0.7
	Temperature float64 `yaml:"temperature"`

	// MaxTokens applies when the caller leaves it unset. Default: 2048
	MaxTokens int `yaml:"max_tokens"`
}

// FallbackConfig contains candidate ordering and retry settings.
type FallbackConfig struct {
	// Priority is the fixed candidate order tried for each request.
	// Default: [anthropic, openrouter, zai, openai]
	Priority []string `yaml:"priority"`

	// MaxAttempts is the per-provider retry ceiling for transient errors.
	// Default: 3
	MaxAttempts int `yaml:"max_attempts"`

	// BackoffBase is the first retry delay. Default: 4s
	BackoffBase time.Duration `yaml:"backoff_base"`

	// BackoffCap bounds the exponential backoff. Default: 10s
	BackoffCap time.Duration `yaml:"backoff_cap"`
}

// AvailabilityConfig contains liveness-probe settings.
type AvailabilityConfig struct {
	// TTL is how long a probe outcome stays cached before a candidate is
	// probed again. Default: 60s
	TTL time.Duration `yaml:"ttl"`

	// ProbeTimeout bounds a single probe. Default: 10s
	ProbeTimeout time.Duration `yaml:"probe_timeout"`

	// SweepSchedule is an optional cron expression for the background
	// sweeper that keeps availability records warm (e.g., "@every 1m").
	// Empty disables the sweeper.
	SweepSchedule string `yaml:"sweep_schedule"`
}

// MetricsConfig contains Prometheus exposition settings.
type MetricsConfig struct {
	// Enabled controls whether metrics are collected and served.
	// Default: true
	Enabled bool `yaml:"enabled"`

	// Path is the exposition endpoint path. Default: "/metrics"
	Path string `yaml:"path"`

	// Namespace is the metric name prefix. Default: "relay"
	Namespace string `yaml:"namespace"`

	// LatencyBuckets are the histogram buckets for attempt latency, in
	// seconds. Defaults are tuned for text-generation latencies.
	LatencyBuckets []float64 `yaml:"latency_buckets"`
}

// LoggingConfig contains structured-logging settings.
type LoggingConfig struct {
	// Level is one of debug, info, warn, error. Default: "info"
	Level string `yaml:"level"`

	// Format is "text" or "json". Default: "text"
	Format string `yaml:"format"`
}
