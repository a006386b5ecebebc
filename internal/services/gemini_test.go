package services

import (
	"testing"

	"github.com/google/generative-ai-go/genai"

	"github.com/jwebster45206/treasure-hunt/pkg/chat"
)

func TestToGeminiContents(t *testing.T) {
	messages := []chat.ChatMessage{
		{Role: chat.ChatRoleSystem, Content: "You are playing a game."},
		{Role: chat.ChatRoleUser, Content: "You are in a clearing."},
		{Role: chat.ChatRoleAgent, Content: "go north"},
		{Role: chat.ChatRoleUser, Content: "You went north."},
	}

	system, history, last, err := toGeminiContents(messages)
	if err != nil {
		t.Fatalf("toGeminiContents failed: %v", err)
	}
	if system != "You are playing a game." {
		t.Errorf("Unexpected system instruction %q", system)
	}
	if len(history) != 2 {
		t.Fatalf("Expected 2 history entries, got %d", len(history))
	}
	if history[0].Role != geminiRoleUser || history[1].Role != geminiRoleModel {
		t.Errorf("Unexpected roles %q, %q", history[0].Role, history[1].Role)
	}
	if text, ok := history[1].Parts[0].(genai.Text); !ok || string(text) != "go north" {
		t.Errorf("Unexpected history part %v", history[1].Parts[0])
	}
	if last.Role != geminiRoleUser {
		t.Errorf("Expected last message role user, got %q", last.Role)
	}
	if text, ok := last.Parts[0].(genai.Text); !ok || string(text) != "You went north." {
		t.Errorf("Unexpected last part %v", last.Parts[0])
	}
}

func TestToGeminiContents_Errors(t *testing.T) {
	tests := []struct {
		name     string
		messages []chat.ChatMessage
	}{
		{name: "empty", messages: nil},
		{name: "only system", messages: []chat.ChatMessage{{Role: chat.ChatRoleSystem, Content: "rules"}}},
		{name: "ends with agent", messages: []chat.ChatMessage{
			{Role: chat.ChatRoleUser, Content: "You are in a clearing."},
			{Role: chat.ChatRoleAgent, Content: "go north"},
		}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, _, _, err := toGeminiContents(tt.messages); err == nil {
				t.Error("Expected error, got nil")
			}
		})
	}
}

func TestGeminiResponseText(t *testing.T) {
	resp := &genai.GenerateContentResponse{
		Candidates: []*genai.Candidate{{
			Content: &genai.Content{Parts: []genai.Part{genai.Text("go "), genai.Text("west")}},
		}},
	}
	if got := geminiResponseText(resp); got != "go west" {
		t.Errorf("Expected 'go west', got %q", got)
	}
	if got := geminiResponseText(&genai.GenerateContentResponse{}); got != "" {
		t.Errorf("Expected empty text, got %q", got)
	}
	if got := geminiResponseText(nil); got != "" {
		t.Errorf("Expected empty text for nil response, got %q", got)
	}
}
