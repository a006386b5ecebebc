package services

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/google/generative-ai-go/genai"
	"google.golang.org/api/option"

	"github.com/jwebster45206/treasure-hunt/pkg/chat"
)

const (
	geminiRoleUser  = "user"
	geminiRoleModel = "model"
)

// GeminiService implements LLMService for Google Gemini
type GeminiService struct {
	client      *genai.Client
	modelName   string
	temperature float64
	logger      *slog.Logger
}

func NewGeminiService(ctx context.Context, apiKey string, modelName string, temperature float64, logger *slog.Logger) (*GeminiService, error) {
	client, err := genai.NewClient(ctx, option.WithAPIKey(apiKey))
	if err != nil {
		return nil, fmt.Errorf("failed to create Gemini client: %w", err)
	}
	return &GeminiService{
		client:      client,
		modelName:   modelName,
		temperature: temperature,
		logger:      logger,
	}, nil
}

func (g *GeminiService) Close() error {
	return g.client.Close()
}

func (g *GeminiService) InitModel(ctx context.Context, modelName string) error {
	return nil
}

func (g *GeminiService) IsModelReady(ctx context.Context, modelName string) (bool, error) {
	if _, err := g.client.GenerativeModel(modelName).Info(ctx); err != nil {
		return false, err
	}
	return true, nil
}

// Chat replays the conversation as chat history and sends the final
// message. Gemini requires the sent message to come from the user.
func (g *GeminiService) Chat(ctx context.Context, messages []chat.ChatMessage) (*chat.ChatResponse, error) {
	systemPrompt, history, last, err := toGeminiContents(messages)
	if err != nil {
		return nil, err
	}

	model := g.client.GenerativeModel(g.modelName)
	model.SetTemperature(float32(g.temperature))
	model.SetMaxOutputTokens(DefaultMaxTokens)
	if systemPrompt != "" {
		model.SystemInstruction = genai.NewUserContent(genai.Text(systemPrompt))
	}

	session := model.StartChat()
	session.History = history

	resp, err := session.SendMessage(ctx, last.Parts...)
	if err != nil {
		return nil, fmt.Errorf("gemini request failed: %w", err)
	}

	text := geminiResponseText(resp)
	if text == "" {
		return nil, fmt.Errorf("no content returned from Gemini")
	}

	if resp.UsageMetadata != nil {
		g.logger.Debug("Gemini response received",
			"model", g.modelName,
			"total_tokens", resp.UsageMetadata.TotalTokenCount)
	}

	return &chat.ChatResponse{
		Message: text,
	}, nil
}

// toGeminiContents converts chat messages into a system instruction, the
// prior history and the message to send.
func toGeminiContents(messages []chat.ChatMessage) (string, []*genai.Content, *genai.Content, error) {
	systemPrompt, conversation := splitChatMessages(messages)
	if len(conversation) == 0 {
		return "", nil, nil, fmt.Errorf("no messages provided")
	}

	lastMsg := conversation[len(conversation)-1]
	if lastMsg.Role != chat.ChatRoleUser {
		return "", nil, nil, fmt.Errorf("last message must have role %q, got %q", chat.ChatRoleUser, lastMsg.Role)
	}

	history := make([]*genai.Content, 0, len(conversation)-1)
	for _, msg := range conversation[:len(conversation)-1] {
		role := geminiRoleUser
		if msg.Role == chat.ChatRoleAgent {
			role = geminiRoleModel
		}
		history = append(history, &genai.Content{
			Role:  role,
			Parts: []genai.Part{genai.Text(msg.Content)},
		})
	}

	last := &genai.Content{
		Role:  geminiRoleUser,
		Parts: []genai.Part{genai.Text(lastMsg.Content)},
	}
	return systemPrompt, history, last, nil
}

func geminiResponseText(resp *genai.GenerateContentResponse) string {
	if resp == nil || len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil {
		return ""
	}
	var sb strings.Builder
	for _, part := range resp.Candidates[0].Content.Parts {
		if text, ok := part.(genai.Text); ok {
			sb.WriteString(string(text))
		}
	}
	return sb.String()
}
