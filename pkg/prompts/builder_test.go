package prompts

import (
	"testing"

	"github.com/jwebster45206/treasure-hunt/pkg/chat"
	"github.com/jwebster45206/treasure-hunt/pkg/state"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuilder_RequiresGameState(t *testing.T) {
	_, err := New().Build()
	assert.EqualError(t, err, "gamestate is required")
}

func TestBuilder_NewGame(t *testing.T) {
	gs := state.NewGameState("")

	msgs, err := BuildMessages(gs, DefaultHistoryLimit)
	require.NoError(t, err)
	require.Len(t, msgs, 3)

	assert.Equal(t, chat.ChatMessage{Role: chat.ChatRoleSystem, Content: SystemPrompt}, msgs[0])
	assert.Equal(t, chat.ChatMessage{Role: chat.ChatRoleUser, Content: gs.Describe()}, msgs[1])
	assert.Equal(t, chat.ChatMessage{Role: chat.ChatRoleSystem, Content: ActionReminder}, msgs[2])
}

func TestBuilder_HistoryWindow(t *testing.T) {
	gs := state.NewGameState("")
	for i := 0; i < 6; i++ {
		gs.TakeAction("dance")
	}
	require.Len(t, gs.ChatHistory, 13)

	tests := []struct {
		name     string
		limit    int
		expected int // history messages in the output
	}{
		{"unlimited", 0, 13},
		{"larger than history", 50, 13},
		{"even limit starts on agent message and is trimmed", 4, 3},
		{"odd limit", 5, 5},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			msgs, err := New().WithGameState(gs).WithHistoryLimit(tt.limit).WithoutReminder().Build()
			require.NoError(t, err)
			require.Len(t, msgs, 1+tt.expected)
			assert.Equal(t, chat.ChatRoleUser, msgs[1].Role)
			assert.Equal(t, gs.ChatHistory[len(gs.ChatHistory)-1], msgs[len(msgs)-1])
		})
	}
}

func TestBuilder_EmptyHistoryFallsBackToDescription(t *testing.T) {
	gs := state.NewGameState("")
	gs.ChatHistory = nil

	msgs, err := New().WithGameState(gs).WithoutReminder().Build()
	require.NoError(t, err)
	require.Len(t, msgs, 2)
	assert.Equal(t, gs.Describe(), msgs[1].Content)
}
