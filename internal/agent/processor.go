package agent

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/jwebster45206/treasure-hunt/internal/logger"
	"github.com/jwebster45206/treasure-hunt/internal/storage"
	"github.com/jwebster45206/treasure-hunt/pkg/prompts"
	"github.com/jwebster45206/treasure-hunt/pkg/state"
)

// ErrGameStateNotFound is returned when the session id is unknown.
var ErrGameStateNotFound = errors.New("game state not found")

// TurnProcessor loads a session, plays one turn and saves it back.
// It's used by both the action and the agent turn handlers.
type TurnProcessor struct {
	storage      storage.Storage
	player       Player
	timeout      time.Duration
	historyLimit int
	logger       *slog.Logger
}

// NewTurnProcessor creates a new turn processor. A zero timeout means the
// player call is bounded only by the caller's context.
func NewTurnProcessor(store storage.Storage, player Player, timeout time.Duration, logger *slog.Logger) *TurnProcessor {
	return &TurnProcessor{
		storage:      store,
		player:       player,
		timeout:      timeout,
		historyLimit: prompts.DefaultHistoryLimit,
		logger:       logger,
	}
}

// ProcessAgentTurn asks the player for the next action on session id.
// Nothing is saved when the player fails.
func (p *TurnProcessor) ProcessAgentTurn(ctx context.Context, id uuid.UUID) (*state.GameState, *TurnResult, error) {
	gs, err := p.load(ctx, id)
	if err != nil {
		return nil, nil, err
	}
	log := logger.WithGameState(p.logger, id.String())

	turnCtx := ctx
	if p.timeout > 0 {
		var cancel context.CancelFunc
		turnCtx, cancel = context.WithTimeout(ctx, p.timeout)
		defer cancel()
	}

	log.Debug("Requesting agent action", "turn", gs.Turns+1, "location", gs.Location)
	result, err := Turn(turnCtx, gs, p.player, p.historyLimit)
	if err != nil {
		if errors.Is(err, ErrPlayerFailed) {
			logger.WithError(log, err).Warn("Agent turn failed")
		}
		return gs, nil, err
	}

	if err := p.storage.SaveGameState(ctx, gs.ID, gs); err != nil {
		return nil, nil, fmt.Errorf("failed to save game state: %w", err)
	}

	log.Info("Agent turn applied",
		"action", result.Outcome.Action.String(),
		"reward", result.Outcome.Reward,
		"game_over", result.Outcome.GameOver)
	return gs, result, nil
}

// ProcessAction applies text to session id as if the agent had sent it.
// Sending an action to a finished game returns the game-over feedback.
func (p *TurnProcessor) ProcessAction(ctx context.Context, id uuid.UUID, text string) (*state.GameState, *TurnResult, error) {
	gs, err := p.load(ctx, id)
	if err != nil {
		return nil, nil, err
	}

	wasOver := gs.GameOver
	result := &TurnResult{Text: text, Outcome: gs.TakeAction(text)}
	if wasOver {
		return gs, result, nil
	}

	if err := p.storage.SaveGameState(ctx, gs.ID, gs); err != nil {
		return nil, nil, fmt.Errorf("failed to save game state: %w", err)
	}

	logger.WithGameState(p.logger, id.String()).Info("Action applied",
		"action", result.Outcome.Action.String(),
		"reward", result.Outcome.Reward,
		"game_over", result.Outcome.GameOver)
	return gs, result, nil
}

func (p *TurnProcessor) load(ctx context.Context, id uuid.UUID) (*state.GameState, error) {
	gs, err := p.storage.LoadGameState(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to load game state: %w", err)
	}
	if gs == nil {
		return nil, fmt.Errorf("%w: %s", ErrGameStateNotFound, id)
	}
	return gs, nil
}
