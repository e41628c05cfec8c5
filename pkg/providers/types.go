package providers

import "time"

// Message role constants.
const (
	RoleSystem    = "system"
	RoleUser      = "user"
	RoleAssistant = "assistant"
)

// Message is a single role-tagged entry in a conversation.
// It is provider-agnostic and transformed to each backend's format.
type Message struct {
	// Role identifies the sender (system, user, assistant).
	Role string `json:"role"`

	// Content is the message text.
	Content string `json:"content"`
}

// GenerationRequest is a provider-agnostic text-generation request.
// Either Prompt or Messages must be set; when both are set, Messages wins.
type GenerationRequest struct {
	// Prompt is a single user prompt for the simple variant.
	Prompt string `json:"prompt,omitempty"`

	// Messages is an ordered conversation for the chat variant.
	Messages []Message `json:"messages,omitempty"`

	// SystemPrompt is an optional system instruction. Adapters fold it into
	// whatever channel the backend supports for system content.
	SystemPrompt string `json:"system_prompt,omitempty"`

	// Temperature controls sampling randomness.
	Temperature float64 `json:"temperature,omitempty"`

	// MaxTokens bounds the generated output length.
	MaxTokens int `json:"max_tokens,omitempty"`

	// Provider optionally pins the request to a named provider. The
	// orchestrator tries it first but never silently substitutes it when it
	// is unavailable.
	Provider string `json:"provider,omitempty"`

	// Options carries extra per-provider parameters. Keys outside the target
	// adapter's allow-list are dropped before dispatch.
	Options map[string]any `json:"options,omitempty"`
}

// Conversation returns the canonical ordered message list for the request:
// the optional system prompt first, then either the explicit messages or the
// single prompt as a user message. Message order is preserved exactly.
func (r *GenerationRequest) Conversation() []Message {
	msgs := make([]Message, 0, len(r.Messages)+2)
	if r.SystemPrompt != "" {
		msgs = append(msgs, Message{Role: RoleSystem, Content: r.SystemPrompt})
	}
	if len(r.Messages) > 0 {
		msgs = append(msgs, r.Messages...)
		return msgs
	}
	return append(msgs, Message{Role: RoleUser, Content: r.Prompt})
}

// Config contains the configuration one adapter instance needs.
// It is immutable after construction; a configuration change replaces the
// adapter wholesale via the registry, never mutates it in place.
type Config struct {
	// Name is the provider identifier (e.g., "openai", "anthropic").
	Name string

	// APIKey is the authentication credential.
	APIKey string

	// Model is the default model identifier sent to the backend.
	Model string

	// BaseURL is the API endpoint base URL.
	BaseURL string

	// Timeout is the per-request connect/read timeout.
	Timeout time.Duration

	// MaxIdleConns is the connection pool size.
	MaxIdleConns int

	// MaxIdleConnsPerHost is the per-host connection pool size.
	MaxIdleConnsPerHost int

	// IdleConnTimeout is how long an idle connection stays pooled.
	IdleConnTimeout time.Duration
}
