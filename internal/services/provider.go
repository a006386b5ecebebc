package services

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/jwebster45206/treasure-hunt/internal/config"
)

// NewFromConfig builds the LLM service selected by cfg.LLMProvider. The
// returned close function releases any client the provider holds.
func NewFromConfig(ctx context.Context, cfg *config.Config, logger *slog.Logger) (LLMService, func() error, error) {
	noop := func() error { return nil }

	switch cfg.LLMProvider {
	case config.ProviderOpenAI:
		return NewChatGPTService(cfg.OpenAIAPIKey, cfg.ModelName, cfg.Temperature, logger), noop, nil
	case config.ProviderAnthropic:
		return NewAnthropicService(cfg.AnthropicAPIKey, cfg.ModelName, cfg.Temperature, logger), noop, nil
	case config.ProviderGemini:
		svc, err := NewGeminiService(ctx, cfg.GeminiAPIKey, cfg.ModelName, cfg.Temperature, logger)
		if err != nil {
			return nil, nil, err
		}
		return svc, svc.Close, nil
	default:
		return nil, nil, fmt.Errorf("unsupported LLM provider %q", cfg.LLMProvider)
	}
}
