package anthropic

import (
	"errors"
	"strings"

	"github.com/evolvingai/relay/pkg/providers"
)

// defaultMaxTokens is supplied when the caller leaves MaxTokens unset,
// because the Messages API rejects requests without it.
const defaultMaxTokens = 4096

// Request is an Anthropic messages request.
type Request struct {
	Model     string    `json:"model"`
	Messages  []Message `json:"messages"`
	System    string    `json:"system,omitempty"`
	MaxTokens int       `json:"max_tokens"`
	// Temperature is always emitted: 0 is a deliberate request for
	// deterministic sampling, not an unset field.
	Temperature   float64  `json:"temperature"`
	TopP          float64  `json:"top_p,omitempty"`
	TopK          int      `json:"top_k,omitempty"`
	StopSequences []string `json:"stop_sequences,omitempty"`
}

// Message is a message in Anthropic format.
type Message struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// Response is an Anthropic messages response.
type Response struct {
	ID         string         `json:"id"`
	Type       string         `json:"type"`
	Role       string         `json:"role"`
	Content    []ContentBlock `json:"content"`
	Model      string         `json:"model"`
	StopReason string         `json:"stop_reason"`
	Usage      Usage          `json:"usage"`
}

// ContentBlock is a content block in an Anthropic response.
type ContentBlock struct {
	Type string `json:"type"`
	Text string `json:"text,omitempty"`
}

// Usage is token accounting in Anthropic format.
type Usage struct {
	InputTokens  int `json:"input_tokens"`
	OutputTokens int `json:"output_tokens"`
}

// BuildRequest transforms a provider-agnostic request into Anthropic format.
//
// Leading system-role messages fold into the dedicated system field (joined
// with newlines when there are several). The remaining messages keep their
// order exactly; a stray system-role message after the conversation has
// started is forwarded as user content, since the Messages API has no system
// role.
func BuildRequest(model string, req *providers.GenerationRequest, opts map[string]any) *Request {
	conversation := req.Conversation()

	out := &Request{
		Model:       model,
		Messages:    make([]Message, 0, len(conversation)),
		MaxTokens:   req.MaxTokens,
		Temperature: req.Temperature,
	}
	if out.MaxTokens == 0 {
		out.MaxTokens = defaultMaxTokens
	}

	var system []string
	leading := true
	for _, msg := range conversation {
		if msg.Role == providers.RoleSystem {
			if leading {
				system = append(system, msg.Content)
				continue
			}
			out.Messages = append(out.Messages, Message{
				Role:    providers.RoleUser,
				Content: msg.Content,
			})
			continue
		}
		leading = false
		out.Messages = append(out.Messages, Message{
			Role:    msg.Role,
			Content: msg.Content,
		})
	}
	out.System = strings.Join(system, "\n")

	if stop, ok := providers.OptionStrings(opts, "stop_sequences"); ok {
		out.StopSequences = stop
	}
	if v, ok := providers.OptionFloat(opts, "top_p"); ok {
		out.TopP = v
	}
	if v, ok := providers.OptionInt(opts, "top_k"); ok {
		out.TopK = v
	}

	return out
}

// ExtractText concatenates the text blocks of an Anthropic response.
func ExtractText(provider string, resp *Response) (string, error) {
	var text strings.Builder
	for _, block := range resp.Content {
		if block.Type == "text" {
			text.WriteString(block.Text)
		}
	}
	if text.Len() == 0 {
		return "", &providers.ParseError{
			Provider: provider,
			Cause:    errors.New("no text content in response"),
		}
	}
	return text.String(), nil
}
