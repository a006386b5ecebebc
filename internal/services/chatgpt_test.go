package services

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/jwebster45206/treasure-hunt/pkg/chat"
)

func newTestChatGPTService(serverURL string) *ChatGPTService {
	svc := NewChatGPTService("test-key", "gpt-test", 0.7, slog.New(slog.NewTextHandler(io.Discard, nil)))
	svc.baseURL = serverURL
	return svc
}

func TestChatGPTService_Chat(t *testing.T) {
	var captured ChatGPTRequest
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/chat/completions" {
			t.Errorf("Unexpected path %s", r.URL.Path)
		}
		if got := r.Header.Get("Authorization"); got != "Bearer test-key" {
			t.Errorf("Unexpected Authorization header %q", got)
		}
		if err := json.NewDecoder(r.Body).Decode(&captured); err != nil {
			t.Fatalf("Failed to decode request: %v", err)
		}
		_, _ = w.Write([]byte(`{
			"id": "chatcmpl-1",
			"model": "gpt-test",
			"choices": [{"index": 0, "message": {"role": "assistant", "content": "go north"}, "finish_reason": "stop"}],
			"usage": {"total_tokens": 42}
		}`))
	}))
	defer server.Close()

	svc := newTestChatGPTService(server.URL)
	messages := []chat.ChatMessage{
		{Role: chat.ChatRoleSystem, Content: "You are playing a game."},
		{Role: chat.ChatRoleUser, Content: "You are in a clearing."},
	}

	resp, err := svc.Chat(context.Background(), messages)
	if err != nil {
		t.Fatalf("Chat failed: %v", err)
	}
	if resp.Message != "go north" {
		t.Errorf("Expected 'go north', got %q", resp.Message)
	}
	if captured.Model != "gpt-test" {
		t.Errorf("Expected model gpt-test, got %q", captured.Model)
	}
	if captured.Temperature != 0.7 {
		t.Errorf("Expected temperature 0.7, got %v", captured.Temperature)
	}
	if captured.MaxTokens != DefaultMaxTokens {
		t.Errorf("Expected max_tokens %d, got %d", DefaultMaxTokens, captured.MaxTokens)
	}
	if len(captured.Messages) != 2 || captured.Messages[0].Role != chat.ChatRoleSystem {
		t.Errorf("System message not passed through: %+v", captured.Messages)
	}
}

func TestChatGPTService_ChatErrors(t *testing.T) {
	tests := []struct {
		name       string
		status     int
		body       string
		errContain string
	}{
		{
			name:       "http error",
			status:     http.StatusTooManyRequests,
			body:       `{"error":{"message":"rate limited"}}`,
			errContain: "status 429",
		},
		{
			name:       "api error in body",
			status:     http.StatusOK,
			body:       `{"error":{"message":"bad model","type":"invalid_request_error"}}`,
			errContain: "bad model",
		},
		{
			name:       "no choices",
			status:     http.StatusOK,
			body:       `{"choices":[]}`,
			errContain: "no choices",
		},
		{
			name:       "empty content",
			status:     http.StatusOK,
			body:       `{"choices":[{"message":{"role":"assistant","content":""}}]}`,
			errContain: "no text content",
		},
		{
			name:       "refusal",
			status:     http.StatusOK,
			body:       `{"choices":[{"message":{"role":"assistant","content":"","refusal":"no"}}]}`,
			errContain: "refused",
		},
		{
			name:       "malformed json",
			status:     http.StatusOK,
			body:       `{not json`,
			errContain: "unmarshal",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tt.status)
				_, _ = w.Write([]byte(tt.body))
			}))
			defer server.Close()

			svc := newTestChatGPTService(server.URL)
			_, err := svc.Chat(context.Background(), []chat.ChatMessage{{Role: chat.ChatRoleUser, Content: "hi"}})
			if err == nil {
				t.Fatal("Expected error, got nil")
			}
			if !strings.Contains(err.Error(), tt.errContain) {
				t.Errorf("Expected error containing %q, got %v", tt.errContain, err)
			}
		})
	}
}

func TestChatGPTService_NoMessages(t *testing.T) {
	svc := newTestChatGPTService("http://127.0.0.1:0")
	if _, err := svc.Chat(context.Background(), nil); err == nil {
		t.Error("Expected error for empty messages")
	}
}

func TestChatGPTService_IsModelReady(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet || r.URL.Path != "/models" {
			t.Errorf("Unexpected request %s %s", r.Method, r.URL.Path)
		}
		_, _ = w.Write([]byte(`{"object":"list","data":[{"id":"gpt-test"},{"id":"gpt-other"}]}`))
	}))
	defer server.Close()

	svc := newTestChatGPTService(server.URL)

	ready, err := svc.IsModelReady(context.Background(), "gpt-test")
	if err != nil || !ready {
		t.Errorf("Expected gpt-test to be ready, got ready=%v err=%v", ready, err)
	}

	ready, err = svc.IsModelReady(context.Background(), "gpt-missing")
	if err != nil || ready {
		t.Errorf("Expected gpt-missing to be unavailable, got ready=%v err=%v", ready, err)
	}
}
