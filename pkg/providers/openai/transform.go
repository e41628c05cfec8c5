package openai

import (
	"errors"

	"github.com/evolvingai/relay/pkg/providers"
)

// Request is an OpenAI chat completion request. Exported for reuse by the
// OpenRouter and Z.AI adapters, which speak the same format.
type Request struct {
	Model    string    `json:"model"`
	Messages []Message `json:"messages"`
	// Temperature is always emitted: 0 is a deliberate request for
	// deterministic sampling, not an unset field.
	Temperature      float64        `json:"temperature"`
	MaxTokens        int            `json:"max_tokens,omitempty"`
	TopP             float64        `json:"top_p,omitempty"`
	Stop             []string       `json:"stop,omitempty"`
	PresencePenalty  float64        `json:"presence_penalty,omitempty"`
	FrequencyPenalty float64        `json:"frequency_penalty,omitempty"`
	LogitBias        map[string]any `json:"logit_bias,omitempty"`
	User             string         `json:"user,omitempty"`
	N                int            `json:"n,omitempty"`
}

// Message is a message in chat-completions format.
type Message struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// Response is an OpenAI chat completion response.
type Response struct {
	ID      string   `json:"id"`
	Object  string   `json:"object"`
	Created int64    `json:"created"`
	Model   string   `json:"model"`
	Choices []Choice `json:"choices"`
	Usage   Usage    `json:"usage"`
}

// Choice is a completion choice.
type Choice struct {
	Index        int     `json:"index"`
	Message      Message `json:"message"`
	FinishReason string  `json:"finish_reason"`
}

// Usage is token accounting in chat-completions format.
type Usage struct {
	PromptTokens     int `json:"prompt_tokens"`
	CompletionTokens int `json:"completion_tokens"`
	TotalTokens      int `json:"total_tokens"`
}

// ModelsResponse is the response of the models listing endpoint, used by the
// liveness probe.
type ModelsResponse struct {
	Object string `json:"object"`
	Data   []struct {
		ID string `json:"id"`
	} `json:"data"`
}

// BuildRequest transforms a provider-agnostic request into chat-completions
// format. The system prompt becomes a leading system-role message; the rest
// of the conversation keeps its order exactly. Extra options must already be
// filtered through the adapter's allow-list.
func BuildRequest(model string, req *providers.GenerationRequest, opts map[string]any) *Request {
	conversation := req.Conversation()

	out := &Request{
		Model:       model,
		Messages:    make([]Message, len(conversation)),
		Temperature: req.Temperature,
		MaxTokens:   req.MaxTokens,
		N:           1,
	}
	for i, msg := range conversation {
		out.Messages[i] = Message{Role: msg.Role, Content: msg.Content}
	}

	if stop, ok := providers.OptionStrings(opts, "stop"); ok {
		out.Stop = stop
	}
	if v, ok := providers.OptionFloat(opts, "top_p"); ok {
		out.TopP = v
	}
	if v, ok := providers.OptionFloat(opts, "presence_penalty"); ok {
		out.PresencePenalty = v
	}
	if v, ok := providers.OptionFloat(opts, "frequency_penalty"); ok {
		out.FrequencyPenalty = v
	}
	if v, ok := opts["logit_bias"]; ok {
		if bias, isMap := v.(map[string]any); isMap {
			out.LogitBias = bias
		}
	}
	if v, ok := providers.OptionString(opts, "user"); ok {
		out.User = v
	}

	return out
}

// ExtractText pulls the generated text out of a chat-completions response.
func ExtractText(provider string, resp *Response) (string, error) {
	if len(resp.Choices) == 0 {
		return "", &providers.ParseError{
			Provider: provider,
			Cause:    errors.New("no choices in response"),
		}
	}
	return resp.Choices[0].Message.Content, nil
}
