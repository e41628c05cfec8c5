package registry

import (
	"bytes"
	"errors"
	"log/slog"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/evolvingai/relay/pkg/config"
)

func testConfig(keys map[string]string) *config.Config {
	cfg := config.Default()
	for name, key := range keys {
		cfg.Providers[name] = config.ProviderConfig{
			APIKey:  key,
			Timeout: 5 * time.Second,
		}
	}
	return cfg
}

func TestNewSkipsPlaceholderCredentials(t *testing.T) {
	r := New(testConfig(map[string]string{
		"openai":    "sk-real",
		"anthropic": "your_anthropic_api_key_here",
		"zai":       "",
	}))
	defer r.Close()

	if !r.Has("openai") {
		t.Error("expected openai to be built")
	}
	if r.Has("anthropic") {
		t.Error("placeholder credential must exclude anthropic")
	}
	if r.Has("zai") {
		t.Error("empty credential must exclude zai")
	}
	if got := len(r.Names()); got != 1 {
		t.Errorf("Names() has %d entries, want 1", got)
	}
}

func TestBuildLogsRedactedCredential(t *testing.T) {
	var buf bytes.Buffer
	prev := slog.Default()
	slog.SetDefault(slog.New(slog.NewTextHandler(&buf, nil)))
	defer slog.SetDefault(prev)

	r := New(testConfig(map[string]string{"openai": "sk-live-abcdef123456"}))
	defer r.Close()

	out := buf.String()
	if strings.Contains(out, "sk-live-abcdef123456") {
		t.Errorf("raw API key leaked into logs: %s", out)
	}
	if !strings.Contains(out, "****3456") {
		t.Errorf("redacted key missing from build log: %s", out)
	}
}

func TestGetUnknownProvider(t *testing.T) {
	r := New(testConfig(nil))
	defer r.Close()

	_, err := r.Get("anthropic")
	var ncErr *NotConfiguredError
	if !errors.As(err, &ncErr) {
		t.Fatalf("expected NotConfiguredError, got %v", err)
	}
	if ncErr.Provider != "anthropic" {
		t.Errorf("Provider = %q", ncErr.Provider)
	}
}

func TestRefreshSwapsAdapters(t *testing.T) {
	r := New(testConfig(map[string]string{"openai": "sk-one"}))
	defer r.Close()

	before, err := r.Get("openai")
	if err != nil {
		t.Fatalf("Get() error = %v", err)
	}

	r.Refresh(testConfig(map[string]string{
		"openai":    "sk-two",
		"anthropic": "sk-ant",
	}))

	after, err := r.Get("openai")
	if err != nil {
		t.Fatalf("Get() after refresh error = %v", err)
	}
	if before == after {
		t.Error("refresh must replace adapters wholesale, not reuse them")
	}
	if !r.Has("anthropic") {
		t.Error("provider added by refresh is missing")
	}
}

func TestRefreshRemovesProviders(t *testing.T) {
	r := New(testConfig(map[string]string{
		"openai":    "sk-real",
		"anthropic": "sk-ant",
	}))
	defer r.Close()

	// Credential rotated to a placeholder: provider drops out.
	r.Refresh(testConfig(map[string]string{
		"openai":    "sk-real",
		"anthropic": "your_anthropic_api_key_here",
	}))

	if r.Has("anthropic") {
		t.Error("expected anthropic to be removed after refresh")
	}
	if !r.Has("openai") {
		t.Error("expected openai to survive refresh")
	}
}

func TestConcurrentRefreshAndReads(t *testing.T) {
	r := New(testConfig(map[string]string{"openai": "sk-0", "zai": "zk-0"}))
	defer r.Close()

	var wg sync.WaitGroup
	stop := make(chan struct{})

	// Readers: every read must see a complete map with working adapters.
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for {
				select {
				case <-stop:
					return
				default:
				}
				for name, p := range r.Providers() {
					if p.Name() != name {
						t.Errorf("adapter %q reports name %q", name, p.Name())
						return
					}
				}
				if p, err := r.Get("openai"); err == nil && p.Model() == "" {
					t.Error("read a partially built adapter")
					return
				}
			}
		}()
	}

	for i := 0; i < 50; i++ {
		r.Refresh(testConfig(map[string]string{"openai": "sk-1", "zai": "zk-1"}))
	}
	close(stop)
	wg.Wait()
}

func TestCloseEmptiesRegistry(t *testing.T) {
	r := New(testConfig(map[string]string{"openai": "sk-real"}))

	if err := r.Close(); err != nil {
		t.Fatalf("Close() error = %v", err)
	}
	if len(r.Names()) != 0 {
		t.Error("expected empty registry after Close")
	}
}
