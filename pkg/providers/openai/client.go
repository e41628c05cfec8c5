package openai

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/evolvingai/relay/pkg/providers"
)

const defaultBaseURL = "https://api.openai.com/v1"

// allowedOptions is the extra-option allow-list for the OpenAI API.
// Anything else is dropped before dispatch.
var allowedOptions = providers.NewOptionAllowList(
	"stop",
	"presence_penalty",
	"frequency_penalty",
	"logit_bias",
	"user",
)

// Provider is the OpenAI provider adapter.
type Provider struct {
	*providers.HTTPClient
}

// NewProvider creates a new OpenAI provider instance.
func NewProvider(config providers.Config) (*Provider, error) {
	if config.Name == "" {
		return nil, &providers.ConfigError{
			Provider: "openai",
			Field:    "name",
			Message:  "provider name is required",
		}
	}
	if config.APIKey == "" {
		return nil, &providers.ConfigError{
			Provider: config.Name,
			Field:    "api_key",
			Message:  "API key is required for OpenAI",
		}
	}
	if config.BaseURL == "" {
		config.BaseURL = defaultBaseURL
	}
	if config.Model == "" {
		config.Model = "gpt-4"
	}

	p := &Provider{
		HTTPClient: providers.NewHTTPClient(config),
	}

	slog.Info("OpenAI provider initialized",
		"provider", config.Name,
		"base_url", config.BaseURL,
		"model", config.Model,
	)

	return p, nil
}

// GenerateText sends one chat completion request to OpenAI.
func (p *Provider) GenerateText(ctx context.Context, req *providers.GenerationRequest) (string, error) {
	opts := providers.FilterOptions(p.Name(), allowedOptions, req.Options)
	wireReq := BuildRequest(p.Model(), req, opts)

	url := fmt.Sprintf("%s/chat/completions", p.Config().BaseURL)

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
		"tokens", wireResp.Usage.TotalTokens,
	)

	return text, nil
}

// Probe lists models as a minimal liveness check. A single GET with no
// generation cost, which is as cheap as this API gets.
func (p *Provider) Probe(ctx context.Context) error {
	url := fmt.Sprintf("%s/models", p.Config().BaseURL)

	var resp ModelsResponse
	return p.DoJSON(ctx, "GET", url, nil, &resp, p.headers())
}

func (p *Provider) headers() map[string]string {
	return map[string]string{
		"Authorization": "Bearer " + p.Config().APIKey,
		"Content-Type":  "application/json",
	}
}
