package services

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"slices"
	"time"

	"github.com/jwebster45206/treasure-hunt/pkg/chat"
)

const (
	chatGPTBaseURL = "https://api.openai.com/v1"
)

// ChatGPTService implements LLMService for OpenAI's chat completions API
type ChatGPTService struct {
	apiKey      string
	modelName   string
	temperature float64
	baseURL     string
	httpClient  *http.Client
	logger      *slog.Logger
}

// ChatGPTRequest represents the request structure for the chat completions API
type ChatGPTRequest struct {
	Model       string             `json:"model"`
	Messages    []chat.ChatMessage `json:"messages"`
	Temperature float64            `json:"temperature"`
	MaxTokens   int                `json:"max_tokens,omitempty"`
}

// ChatGPTChoice represents a single choice in the chat completions response
type ChatGPTChoice struct {
	Index   int `json:"index"`
	Message struct {
		Role    string `json:"role"`
		Content string `json:"content"`
		Refusal string `json:"refusal,omitempty"`
	} `json:"message"`
	FinishReason string `json:"finish_reason"`
}

// ChatGPTResponse represents the response structure for the chat completions API
type ChatGPTResponse struct {
	ID      string          `json:"id"`
	Object  string          `json:"object"`
	Created int64           `json:"created"`
	Model   string          `json:"model"`
	Choices []ChatGPTChoice `json:"choices"`
	Usage   struct {
		PromptTokens     int `json:"prompt_tokens"`
		CompletionTokens int `json:"completion_tokens"`
		TotalTokens      int `json:"total_tokens"`
	} `json:"usage,omitempty"`
	Error *ChatGPTError `json:"error,omitempty"`
}

type ChatGPTError struct {
	Message string `json:"message"`
	Type    string `json:"type"`
	Code    string `json:"code"`
}

// ChatGPTModelsResponse represents the response from the ChatGPT models endpoint
type ChatGPTModelsResponse struct {
	Object string `json:"object"`
	Data   []struct {
		ID      string `json:"id"`
		OwnedBy string `json:"owned_by"`
	} `json:"data"`
	Error *ChatGPTError `json:"error,omitempty"`
}

// NewChatGPTService creates a new ChatGPT service
func NewChatGPTService(apiKey string, modelName string, temperature float64, logger *slog.Logger) *ChatGPTService {
	return &ChatGPTService{
		apiKey:      apiKey,
		modelName:   modelName,
		temperature: temperature,
		baseURL:     chatGPTBaseURL,
		httpClient: &http.Client{
			Timeout: 90 * time.Second,
		},
		logger: logger,
	}
}

// InitModel initializes the model (ChatGPT doesn't require explicit model initialization)
func (c *ChatGPTService) InitModel(ctx context.Context, modelName string) error {
	return nil
}

// IsModelReady checks that the API key can see the model.
func (c *ChatGPTService) IsModelReady(ctx context.Context, modelName string) (bool, error) {
	models, err := c.ListModels(ctx)
	if err != nil {
		return false, err
	}
	return slices.Contains(models, modelName), nil
}

// ListModels retrieves available models from ChatGPT
func (c *ChatGPTService) ListModels(ctx context.Context) ([]string, error) {
	body, err := c.do(ctx, http.MethodGet, "/models", nil)
	if err != nil {
		return nil, err
	}

	var modelsResp ChatGPTModelsResponse
	if err := json.Unmarshal(body, &modelsResp); err != nil {
		return nil, fmt.Errorf("failed to unmarshal response: %w", err)
	}
	if modelsResp.Error != nil {
		return nil, fmt.Errorf("API error: %s", modelsResp.Error.Message)
	}

	modelNames := make([]string, 0, len(modelsResp.Data))
	for _, model := range modelsResp.Data {
		modelNames = append(modelNames, model.ID)
	}
	return modelNames, nil
}

// Chat generates a chat response using the chat completions API
func (c *ChatGPTService) Chat(ctx context.Context, messages []chat.ChatMessage) (*chat.ChatResponse, error) {
	if len(messages) == 0 {
		return nil, fmt.Errorf("no messages provided")
	}

	reqBody, err := json.Marshal(ChatGPTRequest{
		Model:       c.modelName,
		Messages:    messages,
		Temperature: c.temperature,
		MaxTokens:   DefaultMaxTokens,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to marshal request: %w", err)
	}

	body, err := c.do(ctx, http.MethodPost, "/chat/completions", reqBody)
	if err != nil {
		return nil, err
	}

	var chatGPTResp ChatGPTResponse
	if err := json.Unmarshal(body, &chatGPTResp); err != nil {
		return nil, fmt.Errorf("failed to unmarshal response: %w", err)
	}
	if chatGPTResp.Error != nil {
		return nil, fmt.Errorf("API error: %s", chatGPTResp.Error.Message)
	}
	if len(chatGPTResp.Choices) == 0 {
		return nil, fmt.Errorf("no choices returned from API")
	}

	choice := chatGPTResp.Choices[0]
	if choice.Message.Refusal != "" {
		return nil, fmt.Errorf("model refused to respond: %s", choice.Message.Refusal)
	}
	if choice.Message.Content == "" {
		return nil, fmt.Errorf("no text content found in response")
	}

	c.logger.Debug("ChatGPT response received",
		"model", chatGPTResp.Model,
		"total_tokens", chatGPTResp.Usage.TotalTokens,
		"finish_reason", choice.FinishReason)

	return &chat.ChatResponse{
		Message: choice.Message.Content,
	}, nil
}

func (c *ChatGPTService) do(ctx context.Context, method, path string, payload []byte) ([]byte, error) {
	var reqBody io.Reader
	if payload != nil {
		reqBody = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reqBody)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+c.apiKey)
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("request failed: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("API request failed with status %d: %s", resp.StatusCode, string(body))
	}
	return body, nil
}
