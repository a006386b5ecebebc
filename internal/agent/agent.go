// Package agent drives the treasure hunt with a pluggable player: one turn
// at a time for the API, or a whole game for the simulator.
package agent

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"

	"github.com/jwebster45206/treasure-hunt/internal/services"
	"github.com/jwebster45206/treasure-hunt/pkg/chat"
	"github.com/jwebster45206/treasure-hunt/pkg/prompts"
	"github.com/jwebster45206/treasure-hunt/pkg/state"
)

var (
	// ErrGameOver is returned when a turn is requested for a finished game.
	ErrGameOver = errors.New("game is over")

	// ErrPlayerFailed wraps any error from a Player. The game state is
	// unchanged when it is returned.
	ErrPlayerFailed = errors.New("player failed to produce an action")

	// ErrOutOfActions is returned by a ScriptedPlayer with nothing left to say.
	ErrOutOfActions = errors.New("scripted player has no actions left")
)

// Player proposes the next action given the conversation so far.
type Player interface {
	NextAction(ctx context.Context, messages []chat.ChatMessage) (string, error)
}

// LLMPlayer asks a language model for each action.
type LLMPlayer struct {
	llm services.LLMService
}

func NewLLMPlayer(llm services.LLMService) *LLMPlayer {
	return &LLMPlayer{llm: llm}
}

func (p *LLMPlayer) NextAction(ctx context.Context, messages []chat.ChatMessage) (string, error) {
	resp, err := p.llm.Chat(ctx, messages)
	if err != nil {
		return "", err
	}
	return resp.Message, nil
}

// ScriptedPlayer replays a fixed list of actions.
type ScriptedPlayer struct {
	mu      sync.Mutex
	actions []string
}

func NewScriptedPlayer(actions ...string) *ScriptedPlayer {
	return &ScriptedPlayer{actions: actions}
}

func (p *ScriptedPlayer) NextAction(ctx context.Context, _ []chat.ChatMessage) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	p.mu.Lock()
	defer p.mu.Unlock()
	if len(p.actions) == 0 {
		return "", ErrOutOfActions
	}
	next := p.actions[0]
	p.actions = p.actions[1:]
	return next, nil
}

// Walkthrough is the shortest winning sequence from the clearing.
var Walkthrough = []string{
	"go north",
	"go north",
	"pick up shiny key",
	"go south",
	"go south",
	"go east",
	"go east",
	"open chest",
}

// TurnResult is what one agent turn produced.
type TurnResult struct {
	Text    string
	Outcome state.Outcome
}

// Turn asks the player for one action and applies it to gs.
func Turn(ctx context.Context, gs *state.GameState, player Player, historyLimit int) (*TurnResult, error) {
	if gs.GameOver {
		return nil, ErrGameOver
	}

	messages, err := prompts.BuildMessages(gs, historyLimit)
	if err != nil {
		return nil, fmt.Errorf("failed to build messages: %w", err)
	}

	text, err := player.NextAction(ctx, messages)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrPlayerFailed, err)
	}
	text = strings.TrimSpace(text)

	return &TurnResult{
		Text:    text,
		Outcome: gs.TakeAction(text),
	}, nil
}

// Run plays until the game ends or maxTurns turns have been taken, calling
// onTurn after each one. A game still running after maxTurns is given up.
// Returns the number of turns played.
func Run(ctx context.Context, gs *state.GameState, player Player, maxTurns int, onTurn func(*TurnResult)) (int, error) {
	played := 0
	for !gs.GameOver && played < maxTurns {
		result, err := Turn(ctx, gs, player, prompts.DefaultHistoryLimit)
		if err != nil {
			return played, err
		}
		played++
		if onTurn != nil {
			onTurn(result)
		}
	}
	if !gs.GameOver {
		gs.GiveUp()
	}
	return played, nil
}
