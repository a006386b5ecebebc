package main

import (
	"bytes"
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"github.com/jwebster45206/treasure-hunt/internal/agent"
	"github.com/jwebster45206/treasure-hunt/pkg/state"
	"github.com/jwebster45206/treasure-hunt/pkg/world"
)

func TestSplitScript(t *testing.T) {
	assert.Equal(t, []string{"go north", "go west"}, splitScript(" go north, ,go west ,"))
	assert.Nil(t, splitScript(""))
}

func TestTranscript_Walkthrough(t *testing.T) {
	gs := state.NewGameState("")
	transcript := &Transcript{Player: playerScripted}

	_, err := agent.Run(context.Background(), gs, agent.NewScriptedPlayer(agent.Walkthrough...), 20, transcript.record)
	require.NoError(t, err)
	transcript.finish(gs, nil)

	var buf bytes.Buffer
	require.NoError(t, transcript.Write(&buf))

	var decoded Transcript
	require.NoError(t, yaml.Unmarshal(buf.Bytes(), &decoded))

	assert.Equal(t, string(state.StatusWon), decoded.Result)
	assert.Equal(t, len(agent.Walkthrough), decoded.Turns)
	assert.Equal(t, state.WinReward, decoded.TotalReward)
	assert.Equal(t, world.MountainPass, decoded.Location)
	require.Len(t, decoded.Steps, len(agent.Walkthrough))
	assert.Equal(t, "go(north)", decoded.Steps[0].Action)
	assert.Equal(t, state.WinMessage, decoded.Steps[len(decoded.Steps)-1].Feedback)
	assert.Empty(t, decoded.Error)
}

func TestTranscript_GiveUpWithError(t *testing.T) {
	gs := state.NewGameState("")
	transcript := &Transcript{Player: playerScripted}

	_, err := agent.Run(context.Background(), gs, agent.NewScriptedPlayer("go north"), 5, transcript.record)
	require.ErrorIs(t, err, agent.ErrOutOfActions)
	transcript.finish(gs, err)

	assert.Equal(t, string(state.StatusPlaying), transcript.Result)
	assert.Equal(t, 1, transcript.Turns)
	assert.Contains(t, transcript.Error, "no actions left")
}
