package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/jwebster45206/treasure-hunt/internal/agent"
	"github.com/jwebster45206/treasure-hunt/internal/config"
	"github.com/jwebster45206/treasure-hunt/internal/handlers"
	"github.com/jwebster45206/treasure-hunt/internal/logger"
	"github.com/jwebster45206/treasure-hunt/internal/middleware"
	"github.com/jwebster45206/treasure-hunt/internal/services"
	"github.com/jwebster45206/treasure-hunt/internal/storage"
	"github.com/jwebster45206/treasure-hunt/pkg/world"
)

func main() {
	if err := world.Validate(); err != nil {
		log.Fatal(err)
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatal(err)
	}

	log := logger.Setup(cfg)

	log.Info("Starting Treasure Hunt API",
		"port", cfg.Port,
		"environment", cfg.Environment,
		"llm_provider", cfg.LLMProvider,
		"model_name", cfg.ModelName)

	llmService, closeLLM, err := services.NewFromConfig(context.Background(), cfg, log)
	if err != nil {
		log.Error("Failed to create LLM service", "error", err, "provider", cfg.LLMProvider)
		os.Exit(1)
	}
	defer func() {
		if err := closeLLM(); err != nil {
			log.Error("Error closing LLM client", "error", err)
		}
	}()

	redisStorage, err := storage.NewRedisStorage(cfg.RedisURL, cfg.GameStateTTL, log)
	if err != nil {
		log.Error("Failed to create storage", "error", err)
		os.Exit(1)
	}
	storageCtx, storageCancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer storageCancel()

	if err := redisStorage.WaitForConnection(storageCtx, 10, 2*time.Second); err != nil {
		log.Error("Failed to connect to storage", "error", err)
		os.Exit(1)
	}
	log.Info("Storage connection established successfully")

	initCtx, initCancel := context.WithTimeout(context.Background(), time.Minute)
	defer initCancel()
	if err := llmService.InitModel(initCtx, cfg.ModelName); err != nil {
		log.Error("Failed to initialize LLM model", "error", err, "model", cfg.ModelName)
		os.Exit(1)
	}

	processor := agent.NewTurnProcessor(redisStorage, agent.NewLLMPlayer(llmService), cfg.AgentTimeout, log)

	mux := http.NewServeMux()

	mux.Handle("/", handlers.NewUIHandler(log))
	mux.Handle("/health", handlers.NewHealthHandler(redisStorage, llmService, cfg.ModelName, log))

	gameStateHandler := handlers.NewGameStateHandler(cfg.ModelName, redisStorage, log)
	mux.Handle("/v1/gamestate", gameStateHandler)
	mux.Handle("/v1/gamestate/", gameStateHandler)

	mux.Handle("/v1/action", handlers.NewActionHandler(processor, log))
	mux.Handle("/v1/agent/turn", handlers.NewAgentHandler(processor, log))

	server := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      middleware.Logger(mux),
		ReadTimeout:  15 * time.Second,
		WriteTimeout: cfg.AgentTimeout + 15*time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		log.Info("Server starting", "addr", server.Addr)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Error("Server failed to start", "error", err)
			os.Exit(1)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("Server is shutting down...")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer shutdownCancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Error("Server forced to shutdown", "error", err)
	}

	if err := redisStorage.Close(); err != nil {
		log.Error("Error closing storage connection", "error", err)
	}

	log.Info("Server exited")
}
