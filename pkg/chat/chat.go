package chat

import (
	"fmt"

	"github.com/google/uuid"
)

const (
	ChatRoleUser   = "user"      // Game environment: descriptions and feedback
	ChatRoleAgent  = "assistant" // The agent playing the game
	ChatRoleSystem = "system"    // Instructions
)

// ChatMessage represents a single chat message in the conversation
// sent to the LLM.
type ChatMessage struct {
	Role    string `json:"role"` // "user", "assistant", "system"
	Content string `json:"content"`
}

// ChatResponse is the text an LLM produced for one request.
type ChatResponse struct {
	Message string `json:"message"`
}

// ActionRequest is the body of POST /v1/action: text to apply as if the
// agent had produced it.
type ActionRequest struct {
	GameStateID uuid.UUID `json:"gamestate_id"`
	Message     string    `json:"message"`
}

func (r *ActionRequest) Validate() error {
	if r.GameStateID == uuid.Nil {
		return fmt.Errorf("gamestate_id is required")
	}
	if r.Message == "" {
		return fmt.Errorf("message cannot be empty")
	}
	return nil
}

// AgentTurnRequest is the body of POST /v1/agent/turn.
type AgentTurnRequest struct {
	GameStateID uuid.UUID `json:"gamestate_id"`
}

func (r *AgentTurnRequest) Validate() error {
	if r.GameStateID == uuid.Nil {
		return fmt.Errorf("gamestate_id is required")
	}
	return nil
}
