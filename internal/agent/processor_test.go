package agent

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jwebster45206/treasure-hunt/internal/storage"
	"github.com/jwebster45206/treasure-hunt/pkg/state"
	"github.com/jwebster45206/treasure-hunt/pkg/world"
)

func newTestProcessor(t *testing.T, player Player) (*TurnProcessor, *storage.MockStorage, *state.GameState) {
	t.Helper()
	store := storage.NewMockStorage()
	gs := state.NewGameState("test")
	require.NoError(t, store.SaveGameState(context.Background(), gs.ID, gs))
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	return NewTurnProcessor(store, player, time.Second, logger), store, gs
}

func TestProcessAgentTurn(t *testing.T) {
	p, store, gs := newTestProcessor(t, NewScriptedPlayer("go north"))
	ctx := context.Background()

	updated, result, err := p.ProcessAgentTurn(ctx, gs.ID)
	require.NoError(t, err)
	assert.Equal(t, "go north", result.Text)
	assert.Equal(t, world.ForestPath, updated.Location)

	stored, err := store.LoadGameState(ctx, gs.ID)
	require.NoError(t, err)
	assert.Equal(t, world.ForestPath, stored.Location)
	assert.Equal(t, 1, stored.Turns)
}

func TestProcessAgentTurn_NotFound(t *testing.T) {
	p, _, _ := newTestProcessor(t, NewScriptedPlayer("go north"))

	_, _, err := p.ProcessAgentTurn(context.Background(), uuid.New())
	assert.ErrorIs(t, err, ErrGameStateNotFound)
}

func TestProcessAgentTurn_PlayerFailureNotSaved(t *testing.T) {
	p, store, gs := newTestProcessor(t, failingPlayer{err: errors.New("401 unauthorized")})
	saves := store.SaveCalls

	_, _, err := p.ProcessAgentTurn(context.Background(), gs.ID)
	assert.ErrorIs(t, err, ErrPlayerFailed)
	assert.Equal(t, saves, store.SaveCalls)
}

func TestProcessAgentTurn_GameOver(t *testing.T) {
	p, store, gs := newTestProcessor(t, NewScriptedPlayer("go north"))
	ctx := context.Background()
	gs.GiveUp()
	require.NoError(t, store.SaveGameState(ctx, gs.ID, gs))

	_, _, err := p.ProcessAgentTurn(ctx, gs.ID)
	assert.ErrorIs(t, err, ErrGameOver)
}

func TestProcessAgentTurn_SaveError(t *testing.T) {
	p, store, gs := newTestProcessor(t, NewScriptedPlayer("go north"))
	store.SetSaveError(errors.New("redis down"))

	_, _, err := p.ProcessAgentTurn(context.Background(), gs.ID)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to save game state")
}

func TestProcessAction(t *testing.T) {
	p, store, gs := newTestProcessor(t, nil)
	ctx := context.Background()

	for _, text := range Walkthrough {
		_, _, err := p.ProcessAction(ctx, gs.ID, text)
		require.NoError(t, err)
	}

	stored, err := store.LoadGameState(ctx, gs.ID)
	require.NoError(t, err)
	assert.True(t, stored.Win)
	assert.Equal(t, len(Walkthrough), stored.Turns)

	saves := store.SaveCalls
	updated, result, err := p.ProcessAction(ctx, gs.ID, "go north")
	require.NoError(t, err)
	assert.Equal(t, state.GameOverMessage, result.Outcome.Feedback)
	assert.True(t, result.Outcome.GameOver)
	assert.Equal(t, len(Walkthrough), updated.Turns)
	assert.Equal(t, saves, store.SaveCalls)
}
