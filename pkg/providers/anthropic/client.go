package anthropic

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/evolvingai/relay/pkg/providers"
)

const (
	defaultBaseURL = "https://api.anthropic.com"

	// apiVersion is the Messages API version header value.
	apiVersion = "2023-06-01"
)

// allowedOptions is the extra-option allow-list for the Anthropic API.
var allowedOptions = providers.NewOptionAllowList(
	"stop_sequences",
	"top_p",
	"top_k",
)

// Provider is the Anthropic provider adapter.
type Provider struct {
	*providers.HTTPClient
}

// NewProvider creates a new Anthropic provider instance.
func NewProvider(config providers.Config) (*Provider, error) {
	if config.Name == "" {
		return nil, &providers.ConfigError{
			Provider: "anthropic",
			Field:    "name",
			Message:  "provider name is required",
		}
	}
	if config.APIKey == "" {
		return nil, &providers.ConfigError{
			Provider: config.Name,
			Field:    "api_key",
			Message:  "API key is required for Anthropic",
		}
	}
	if config.BaseURL == "" {
		config.BaseURL = defaultBaseURL
	}
	if config.Model == "" {
		config.Model = "claude-3-5-sonnet-20241022"
	}

	p := &Provider{
		HTTPClient: providers.NewHTTPClient(config),
	}

	slog.Info("Anthropic provider initialized",
		"provider", config.Name,
		"base_url", config.BaseURL,
		"model", config.Model,
	)

	return p, nil
}

// GenerateText sends one messages request to Anthropic.
func (p *Provider) GenerateText(ctx context.Context, req *providers.GenerationRequest) (string, error) {
	opts := providers.FilterOptions(p.Name(), allowedOptions, req.Options)
	wireReq := BuildRequest(p.Model(), req, opts)

	url := fmt.Sprintf("%s/v1/messages", p.Config().BaseURL)

	var wireResp Response
	if err := p.DoJSON(ctx, "POST", url, wireReq, &wireResp, p.headers()); err != nil {
		return "", err
	}

	text, err := ExtractText(p.Name(), &wireResp)
	if err != nil {
		return "", err
	}

	slog.Debug("completion request succeeded",
		"provider", p.Name(),
		"model", wireResp.Model,
		"tokens", wireResp.Usage.InputTokens+wireResp.Usage.OutputTokens,
	)

	return text, nil
}

// Probe sends a one-token generation as the liveness check. The Messages API
// has no free listing endpoint, so this is the cheapest request it accepts.
func (p *Provider) Probe(ctx context.Context) error {
	wireReq := &Request{
		Model:     p.Model(),
		MaxTokens: 1,
		Messages: []Message{
			{Role: providers.RoleUser, Content: "ping"},
		},
	}

	url := fmt.Sprintf("%s/v1/messages", p.Config().BaseURL)

	var wireResp Response
	return p.DoJSON(ctx, "POST", url, wireReq, &wireResp, p.headers())
}

func (p *Provider) headers() map[string]string {
	return map[string]string{
		"x-api-key":         p.Config().APIKey,
		"anthropic-version": apiVersion,
		"Content-Type":      "application/json",
	}
}
