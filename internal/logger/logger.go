package logger

import (
	"io"
	"log/slog"
	"os"

	"github.com/jwebster45206/treasure-hunt/internal/config"
)

// Setup configures the global slog logger based on environment
func Setup(cfg *config.Config) *slog.Logger {
	return New(os.Stdout, cfg.Environment, cfg.LogLevel)
}

// New builds a logger writing to w: JSON in production, text otherwise.
// It also becomes the default slog logger.
func New(w io.Writer, environment string, level slog.Level) *slog.Logger {
	var handler slog.Handler

	opts := &slog.HandlerOptions{
		Level: level,
	}

	if environment == "production" {
		handler = slog.NewJSONHandler(w, opts)
	} else {
		handler = slog.NewTextHandler(w, opts)
	}

	logger := slog.New(handler)
	slog.SetDefault(logger)

	return logger
}

// WithGameState adds the session id to logger context
func WithGameState(logger *slog.Logger, id string) *slog.Logger {
	return logger.With("gamestate_id", id)
}

// WithError adds error to logger context
func WithError(logger *slog.Logger, err error) *slog.Logger {
	return logger.With("error", err.Error())
}
