package openrouter

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/evolvingai/relay/pkg/providers"
	"github.com/evolvingai/relay/pkg/providers/openai"
)

const defaultBaseURL = "https://openrouter.ai/api/v1"

// allowedOptions is the extra-option allow-list for the OpenRouter API.
var allowedOptions = providers.NewOptionAllowList(
	"stop",
	"top_p",
	"frequency_penalty",
	"presence_penalty",
)

// Provider is the OpenRouter provider adapter.
type Provider struct {
	*providers.HTTPClient
}

// NewProvider creates a new OpenRouter provider instance.
func NewProvider(config providers.Config) (*Provider, error) {
	if config.Name == "" {
		return nil, &providers.ConfigError{
			Provider: "openrouter",
			Field:    "name",
			Message:  "provider name is required",
		}
	}
	if config.APIKey == "" {
		return nil, &providers.ConfigError{
			Provider: config.Name,
			Field:    "api_key",
			Message:  "API key is required for OpenRouter",
		}
	}
	if config.BaseURL == "" {
		config.BaseURL = defaultBaseURL
	}
	if config.Model == "" {
		config.Model = "anthropic/claude-3-haiku"
	}

	p := &Provider{
		HTTPClient: providers.NewHTTPClient(config),
	}

	slog.Info("OpenRouter provider initialized",
		"provider", config.Name,
		"base_url", config.BaseURL,
		"model", config.Model,
	)

	return p, nil
}

// GenerateText sends one chat completion request to OpenRouter.
func (p *Provider) GenerateText(ctx context.Context, req *providers.GenerationRequest) (string, error) {
	opts := providers.FilterOptions(p.Name(), allowedOptions, req.Options)
	wireReq := openai.BuildRequest(p.Model(), req, opts)

	url := fmt.Sprintf("%s/chat/completions", p.Config().BaseURL)

	var wireResp openai.Response
	if err := p.DoJSON(ctx, "POST", url, wireReq, &wireResp, p.headers()); err != nil {
		return "", err
	}

	text, err := openai.ExtractText(p.Name(), &wireResp)
	if err != nil {
		return "", err
	}

	slog.Debug("completion request succeeded",
		"provider", p.Name(),
		"model", wireResp.Model,
		"tokens", wireResp.Usage.TotalTokens,
	)

	return text, nil
}

// Probe lists models as a minimal liveness check.
func (p *Provider) Probe(ctx context.Context) error {
	url := fmt.Sprintf("%s/models", p.Config().BaseURL)

	var resp openai.ModelsResponse
	return p.DoJSON(ctx, "GET", url, nil, &resp, p.headers())
}

func (p *Provider) headers() map[string]string {
	return map[string]string{
		"Authorization": "Bearer " + p.Config().APIKey,
		"Content-Type":  "application/json",
		// OpenRouter attribution headers
		"HTTP-Referer": "https://github.com/evolvingai/relay",
		"X-Title":      "relay",
	}
}
