package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"log/slog"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/jwebster45206/treasure-hunt/internal/agent"
	"github.com/jwebster45206/treasure-hunt/internal/config"
	"github.com/jwebster45206/treasure-hunt/internal/logger"
	"github.com/jwebster45206/treasure-hunt/internal/services"
	"github.com/jwebster45206/treasure-hunt/pkg/state"
	"github.com/jwebster45206/treasure-hunt/pkg/world"
)

const (
	playerLLM      = "llm"
	playerScripted = "scripted"
)

func main() {
	playerKind := flag.String("player", playerLLM, "who plays: llm or scripted")
	script := flag.String("script", strings.Join(agent.Walkthrough, ","), "comma separated actions for the scripted player")
	maxTurns := flag.Int("max-turns", 20, "give up after this many turns")
	outPath := flag.String("out", "", "write the YAML transcript to this file instead of stdout")
	flag.Parse()

	if err := world.Validate(); err != nil {
		log.Fatal(err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	var (
		player    agent.Player
		modelName string
		log       *slog.Logger
	)

	switch *playerKind {
	case playerLLM:
		cfg, err := config.Load()
		if err != nil {
			fmt.Fprintf(os.Stderr, "Failed to load config: %v\n", err)
			os.Exit(1)
		}
		log = logger.New(os.Stderr, cfg.Environment, cfg.LogLevel)

		llmService, closeLLM, err := services.NewFromConfig(ctx, cfg, log)
		if err != nil {
			log.Error("Failed to create LLM service", "error", err, "provider", cfg.LLMProvider)
			os.Exit(1)
		}
		defer func() { _ = closeLLM() }()

		if err := llmService.InitModel(ctx, cfg.ModelName); err != nil {
			log.Error("Failed to initialize LLM model", "error", err, "model", cfg.ModelName)
			os.Exit(1)
		}
		player = agent.NewLLMPlayer(llmService)
		modelName = cfg.ModelName

	case playerScripted:
		log = logger.New(os.Stderr, os.Getenv("ENVIRONMENT"), slog.LevelInfo)
		player = agent.NewScriptedPlayer(splitScript(*script)...)

	default:
		fmt.Fprintf(os.Stderr, "Unknown player %q (supported: %s, %s)\n", *playerKind, playerLLM, playerScripted)
		os.Exit(2)
	}

	gs := state.NewGameState(modelName)
	transcript := &Transcript{Player: *playerKind, Model: modelName}

	log.Info("Starting simulated game", "gamestate_id", gs.ID.String(), "player", *playerKind, "max_turns", *maxTurns)
	played, runErr := agent.Run(ctx, gs, player, *maxTurns, func(result *agent.TurnResult) {
		transcript.record(result)
		log.Info("Turn played",
			"turn", len(transcript.Steps),
			"text", result.Text,
			"action", result.Outcome.Action.String(),
			"reward", result.Outcome.Reward)
	})
	if runErr != nil {
		logger.WithError(log, runErr).Error("Simulation stopped early", "turns", played)
	}
	transcript.finish(gs, runErr)

	out := os.Stdout
	if *outPath != "" {
		f, err := os.Create(*outPath)
		if err != nil {
			log.Error("Failed to create transcript file", "error", err, "path", *outPath)
			os.Exit(1)
		}
		defer func() { _ = f.Close() }()
		out = f
	}
	if err := transcript.Write(out); err != nil {
		log.Error("Failed to write transcript", "error", err)
		os.Exit(1)
	}

	log.Info("Simulation finished", "result", transcript.Result, "turns", gs.Turns, "total_reward", gs.TotalReward)
	if runErr != nil {
		os.Exit(1)
	}
}

func splitScript(script string) []string {
	var actions []string
	for _, part := range strings.Split(script, ",") {
		if part = strings.TrimSpace(part); part != "" {
			actions = append(actions, part)
		}
	}
	return actions
}
