package providers

import (
	"reflect"
	"testing"
)

func TestConversationFromPrompt(t *testing.T) {
	req := &GenerationRequest{Prompt: "hello"}

	got := req.Conversation()
	want := []Message{{Role: RoleUser, Content: "hello"}}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("Conversation() = %v, want %v", got, want)
	}
}

func TestConversationSystemPromptFirst(t *testing.T) {
	req := &GenerationRequest{
		SystemPrompt: "be brief",
		Messages: []Message{
			{Role: RoleUser, Content: "hi"},
			{Role: RoleAssistant, Content: "hello"},
			{Role: RoleUser, Content: "bye"},
		},
	}

	got := req.Conversation()
	if len(got) != 4 {
		t.Fatalf("expected 4 messages, got %d", len(got))
	}
	if got[0].Role != RoleSystem || got[0].Content != "be brief" {
		t.Errorf("expected system prompt first, got %+v", got[0])
	}
	// Message order preserved exactly after the system prompt.
	if !reflect.DeepEqual(got[1:], req.Messages) {
		t.Errorf("message order changed: %v", got[1:])
	}
}

func TestConversationMessagesWinOverPrompt(t *testing.T) {
	req := &GenerationRequest{
		Prompt:   "ignored",
		Messages: []Message{{Role: RoleUser, Content: "used"}},
	}

	got := req.Conversation()
	if len(got) != 1 || got[0].Content != "used" {
		t.Errorf("expected messages to take precedence over prompt, got %v", got)
	}
}
