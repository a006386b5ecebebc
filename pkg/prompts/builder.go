package prompts

import (
	"fmt"

	"github.com/jwebster45206/treasure-hunt/pkg/chat"
	"github.com/jwebster45206/treasure-hunt/pkg/state"
)

// Builder constructs the chat messages sent to the agent for its next move.
type Builder struct {
	gs           *state.GameState
	historyLimit int
	reminder     bool
	messages     []chat.ChatMessage
}

// New creates a new prompt builder with default settings.
func New() *Builder {
	return &Builder{
		historyLimit: DefaultHistoryLimit,
		reminder:     true,
		messages:     make([]chat.ChatMessage, 0),
	}
}

func (b *Builder) WithGameState(gs *state.GameState) *Builder {
	b.gs = gs
	return b
}

// WithHistoryLimit sets the chat history window size. Zero or less sends
// the whole history.
func (b *Builder) WithHistoryLimit(limit int) *Builder {
	b.historyLimit = limit
	return b
}

// WithoutReminder drops the trailing action reminder.
func (b *Builder) WithoutReminder() *Builder {
	b.reminder = false
	return b
}

// Build constructs and returns the final message array for LLM consumption.
func (b *Builder) Build() ([]chat.ChatMessage, error) {
	if b.gs == nil {
		return nil, fmt.Errorf("gamestate is required")
	}

	b.messages = make([]chat.ChatMessage, 0)
	b.messages = append(b.messages, chat.ChatMessage{
		Role:    chat.ChatRoleSystem,
		Content: SystemPrompt,
	})

	history := b.window()
	if len(history) == 0 {
		// A session always opens with its description; rebuild it if the
		// history was lost.
		history = []chat.ChatMessage{{Role: chat.ChatRoleUser, Content: b.gs.Describe()}}
	}
	b.messages = append(b.messages, history...)

	if b.reminder {
		b.messages = append(b.messages, chat.ChatMessage{
			Role:    chat.ChatRoleSystem,
			Content: ActionReminder,
		})
	}
	return b.messages, nil
}

// window returns the tail of the history, trimmed so that it starts with
// an environment message rather than one of the agent's own moves.
func (b *Builder) window() []chat.ChatMessage {
	history := b.gs.ChatHistory
	if b.historyLimit > 0 && len(history) > b.historyLimit {
		history = history[len(history)-b.historyLimit:]
	}
	for len(history) > 0 && history[0].Role != chat.ChatRoleUser {
		history = history[1:]
	}
	return history
}

// BuildMessages is a convenience function for the common case.
func BuildMessages(gs *state.GameState, historyLimit int) ([]chat.ChatMessage, error) {
	return New().
		WithGameState(gs).
		WithHistoryLimit(historyLimit).
		Build()
}
