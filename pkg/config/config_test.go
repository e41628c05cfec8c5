package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatalf("write config: %v", err)
	}
	return path
}

func TestLoadAppliesDefaults(t *testing.T) {
	path := writeConfig(t, `
providers:
  openai:
    api_key: sk-test
`)

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if cfg.Server.ListenAddress != "127.0.0.1:8080" {
		t.Errorf("ListenAddress = %q", cfg.Server.ListenAddress)
	}
	if cfg.Fallback.MaxAttempts != 3 {
		t.Errorf("MaxAttempts = %d", cfg.Fallback.MaxAttempts)
	}
	if cfg.Fallback.BackoffBase != 4*time.Second || cfg.Fallback.BackoffCap != 10*time.Second {
		t.Errorf("backoff = %s/%s", cfg.Fallback.BackoffBase, cfg.Fallback.BackoffCap)
	}
	if cfg.Availability.TTL != time.Minute {
		t.Errorf("TTL = %s", cfg.Availability.TTL)
	}
	want := []string{"anthropic", "openrouter", "zai", "openai"}
	if len(cfg.Fallback.Priority) != len(want) {
		t.Fatalf("Priority = %v", cfg.Fallback.Priority)
	}
	for i, name := range want {
		if cfg.Fallback.Priority[i] != name {
			t.Errorf("Priority[%d] = %q, want %q", i, cfg.Fallback.Priority[i], name)
		}
	}
	if cfg.Providers["openai"].Timeout != 60*time.Second {
		t.Errorf("provider timeout = %s", cfg.Providers["openai"].Timeout)
	}
	if !cfg.Metrics.Enabled {
		t.Error("metrics should default to enabled")
	}
}

func TestLoadInvalidValues(t *testing.T) {
	tests := []struct {
		name string
		yaml string
	}{
		{
			name: "unknown provider",
			yaml: "providers:\n  mystery:\n    api_key: x\n",
		},
		{
			name: "unknown provider in priority",
			yaml: "fallback:\n  priority: [mystery]\n",
		},
		{
			name: "bad temperature",
			yaml: "defaults:\n  temperature: 9.5\n",
		},
		{
			name: "backoff cap below base",
			yaml: "fallback:\n  backoff_base: 20s\n  backoff_cap: 5s\n",
		},
		{
			name: "bad log level",
			yaml: "logging:\n  level: loud\n",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := Load(writeConfig(t, tt.yaml)); err == nil {
				t.Error("expected validation error")
			}
		})
	}
}

func TestLoadMissingFile(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "absent.yaml")); err == nil {
		t.Error("expected error for missing file")
	}
}

func TestEnvOverrides(t *testing.T) {
	path := writeConfig(t, `
providers:
  openai:
    api_key: sk-from-file
`)

	t.Setenv("RELAY_PROVIDERS_OPENAI_API_KEY", "sk-from-env")
	t.Setenv("RELAY_PROVIDERS_ANTHROPIC_API_KEY", "ant-from-env")
	t.Setenv("RELAY_FALLBACK_PRIORITY", "openai, anthropic")
	t.Setenv("RELAY_SERVER_LISTEN_ADDRESS", "0.0.0.0:9090")
	t.Setenv("RELAY_LOGGING_LEVEL", "debug")

	cfg, err := LoadWithEnvOverrides(path)
	if err != nil {
		t.Fatalf("LoadWithEnvOverrides() error = %v", err)
	}

	if cfg.Providers["openai"].APIKey != "sk-from-env" {
		t.Errorf("env override lost: %q", cfg.Providers["openai"].APIKey)
	}
	// A provider absent from the file can arrive purely via environment.
	if cfg.Providers["anthropic"].APIKey != "ant-from-env" {
		t.Errorf("env-only provider missing: %+v", cfg.Providers["anthropic"])
	}
	if cfg.Providers["anthropic"].Timeout != 60*time.Second {
		t.Errorf("env-only provider timeout = %s", cfg.Providers["anthropic"].Timeout)
	}
	if len(cfg.Fallback.Priority) != 2 || cfg.Fallback.Priority[0] != "openai" {
		t.Errorf("Priority = %v", cfg.Fallback.Priority)
	}
	if cfg.Server.ListenAddress != "0.0.0.0:9090" {
		t.Errorf("ListenAddress = %q", cfg.Server.ListenAddress)
	}
	if cfg.Logging.Level != "debug" {
		t.Errorf("Level = %q", cfg.Logging.Level)
	}
}

func TestIsPlaceholder(t *testing.T) {
	tests := []struct {
		value string
		want  bool
	}{
		{"", true},
		{"   ", true},
		{"your_openai_api_key_here", true},
		{"YOUR_ANTHROPIC_API_KEY_HERE", true},
		{"changeme", true},
		{"sk-live-abc123", false},
		{"your_key", false}, // no _here suffix
	}
	for _, tt := range tests {
		if got := IsPlaceholder(tt.value); got != tt.want {
			t.Errorf("IsPlaceholder(%q) = %v, want %v", tt.value, got, tt.want)
		}
	}
}

func TestConfiguredProviders(t *testing.T) {
	cfg := Default()
	cfg.Providers = map[string]ProviderConfig{
		"openai":    {APIKey: "sk-real"},
		"anthropic": {APIKey: "your_anthropic_api_key_here"},
		"zai":       {APIKey: ""},
	}

	configured := cfg.ConfiguredProviders()
	if len(configured) != 1 || configured[0] != "openai" {
		t.Errorf("ConfiguredProviders() = %v", configured)
	}
}
