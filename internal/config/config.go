package config

import (
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"strings"
	"time"
)

const (
	ProviderOpenAI    = "openai"
	ProviderAnthropic = "anthropic"
	ProviderGemini    = "gemini"
)

var defaultModels = map[string]string{
	ProviderOpenAI:    "gpt-3.5-turbo",
	ProviderAnthropic: "claude-3-5-haiku-latest",
	ProviderGemini:    "gemini-2.5-flash",
}

type Config struct {
	Port        string
	Environment string
	LogLevel    slog.Level

	LLMProvider     string
	ModelName       string
	Temperature     float64
	OpenAIAPIKey    string
	AnthropicAPIKey string
	GeminiAPIKey    string
	AgentTimeout    time.Duration

	RedisURL     string
	GameStateTTL time.Duration
}

// Load reads the configuration from environment variables. It fails when
// the selected LLM provider has no API key.
func Load() (*Config, error) {
	cfg := &Config{
		Port:            getEnv("PORT", "8080"),
		Environment:     getEnv("ENVIRONMENT", "development"),
		LogLevel:        parseLogLevel(getEnv("LOG_LEVEL", "info")),
		LLMProvider:     strings.ToLower(getEnv("LLM_PROVIDER", ProviderOpenAI)),
		ModelName:       os.Getenv("MODEL_NAME"),
		OpenAIAPIKey:    os.Getenv("OPENAI_API_KEY"),
		AnthropicAPIKey: os.Getenv("ANTHROPIC_API_KEY"),
		GeminiAPIKey:    os.Getenv("GEMINI_API_KEY"),
		RedisURL:        getEnv("REDIS_URL", "localhost:6379"),
	}

	var err error
	if cfg.Temperature, err = strconv.ParseFloat(getEnv("LLM_TEMPERATURE", "0.7"), 64); err != nil {
		return nil, fmt.Errorf("invalid LLM_TEMPERATURE: %w", err)
	}
	if cfg.GameStateTTL, err = time.ParseDuration(getEnv("GAMESTATE_TTL", "1h")); err != nil {
		return nil, fmt.Errorf("invalid GAMESTATE_TTL: %w", err)
	}
	if cfg.AgentTimeout, err = time.ParseDuration(getEnv("AGENT_TIMEOUT", "30s")); err != nil {
		return nil, fmt.Errorf("invalid AGENT_TIMEOUT: %w", err)
	}

	if cfg.ModelName == "" {
		cfg.ModelName = defaultModels[cfg.LLMProvider]
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) validate() error {
	switch c.LLMProvider {
	case ProviderOpenAI:
		if c.OpenAIAPIKey == "" {
			return fmt.Errorf("OPENAI_API_KEY is required when using the %s provider", c.LLMProvider)
		}
	case ProviderAnthropic:
		if c.AnthropicAPIKey == "" {
			return fmt.Errorf("ANTHROPIC_API_KEY is required when using the %s provider", c.LLMProvider)
		}
	case ProviderGemini:
		if c.GeminiAPIKey == "" {
			return fmt.Errorf("GEMINI_API_KEY is required when using the %s provider", c.LLMProvider)
		}
	default:
		return fmt.Errorf("unsupported LLM_PROVIDER %q (supported: %s, %s, %s)",
			c.LLMProvider, ProviderOpenAI, ProviderAnthropic, ProviderGemini)
	}
	return nil
}

func parseLogLevel(level string) slog.Level {
	switch strings.ToLower(level) {
	case "debug":
		return slog.LevelDebug
	case "info":
		return slog.LevelInfo
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
