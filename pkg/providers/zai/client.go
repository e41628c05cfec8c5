package zai

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/evolvingai/relay/pkg/providers"
	"github.com/evolvingai/relay/pkg/providers/openai"
)

// defaultBaseURL is the Z.AI coding endpoint (international).
const defaultBaseURL = "https://api.z.ai/api/coding/paas/v4"

// allowedOptions is the extra-option allow-list for the Z.AI API.
var allowedOptions = providers.NewOptionAllowList(
	"top_p",
	"stop",
)

// Provider is the Z.AI provider adapter.
type Provider struct {
	*providers.HTTPClient
}

// Response is a chat-completions response extended with the GLM
// reasoning_content field.
type Response struct {
	ID      string       `json:"id"`
	Model   string       `json:"model"`
	Choices []Choice     `json:"choices"`
	Usage   openai.Usage `json:"usage"`
}

// Choice is a completion choice with GLM extensions.
type Choice struct {
	Index        int           `json:"index"`
	Message      ChoiceMessage `json:"message"`
	FinishReason string        `json:"finish_reason"`
}

// ChoiceMessage carries both content and reasoning_content.
type ChoiceMessage struct {
	Role             string `json:"role"`
	Content          string `json:"content"`
	ReasoningContent string `json:"reasoning_content"`
}

// NewProvider creates a new Z.AI provider instance.
func NewProvider(config providers.Config) (*Provider, error) {
	if config.Name == "" {
		return nil, &providers.ConfigError{
			Provider: "zai",
			Field:    "name",
			Message:  "provider name is required",
		}
	}
	if config.APIKey == "" {
		return nil, &providers.ConfigError{
			Provider: config.Name,
			Field:    "api_key",
			Message:  "API key is required for Z.AI",
		}
	}
	if config.BaseURL == "" {
		config.BaseURL = defaultBaseURL
	}
	if config.Model == "" {
		config.Model = "glm-4.7"
	}

	p := &Provider{
		HTTPClient: providers.NewHTTPClient(config),
	}

	slog.Info("Z.AI provider initialized",
		"provider", config.Name,
		"base_url", config.BaseURL,
		"model", config.Model,
	)

	return p, nil
}

// GenerateText sends one chat completion request to Z.AI.
// When the content field is empty, the GLM reasoning_content field is used
// instead.
func (p *Provider) GenerateText(ctx context.Context, req *providers.GenerationRequest) (string, error) {
	opts := providers.FilterOptions(p.Name(), allowedOptions, req.Options)
	wireReq := openai.BuildRequest(p.Model(), req, opts)

	url := fmt.Sprintf("%s/chat/completions", p.Config().BaseURL)

	var wireResp Response
	if err := p.DoJSON(ctx, "POST", url, wireReq, &wireResp, p.headers()); err != nil {
		return "", err
	}

	if len(wireResp.Choices) == 0 {
		return "", &providers.ParseError{
			Provider: p.Name(),
			Cause:    errors.New("no choices in response"),
		}
	}

	msg := wireResp.Choices[0].Message
	text := msg.Content
	if text == "" {
		text = msg.ReasoningContent
	}
	if text == "" {
		return "", &providers.ParseError{
			Provider: p.Name(),
			Cause:    errors.New("empty content and reasoning_content in response"),
		}
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
	}
}
