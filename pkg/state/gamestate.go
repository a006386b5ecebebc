package state

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jwebster45206/treasure-hunt/pkg/chat"
	"github.com/jwebster45206/treasure-hunt/pkg/world"
)

// Status is the coarse progress of a session.
type Status string

const (
	StatusPlaying Status = "playing"
	StatusWon     Status = "won"
	StatusLost    Status = "lost"
)

// LogEntry is one line of the game log shown to spectators.
type LogEntry struct {
	Action   string `json:"action"`
	Feedback string `json:"feedback"`
	Reward   int    `json:"reward,omitempty"`
}

// Game log markers appended when a game ends.
const (
	GameOverLogAction   = "--- Game Over ---"
	GameOverLogFeedback = "Game finished."
)

// GameState is one treasure hunt session: the player, the items left in the
// world, and the conversation with the agent playing it.
type GameState struct {
	ID        uuid.UUID    `json:"id"`
	ModelName string       `json:"model_name,omitempty"`
	Location  string       `json:"location"`
	Inventory []string     `json:"inventory"` // Pickup order
	World     *world.World `json:"world"`

	GameOver      bool `json:"game_over"`
	Win           bool `json:"win"`
	Lost          bool `json:"lost"`
	TreasureFound bool `json:"treasure_found"`

	Turns       int `json:"turns"`
	TotalReward int `json:"total_reward"`

	ChatHistory []chat.ChatMessage `json:"chat_history,omitempty"`
	Log         []LogEntry         `json:"log,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// NewGameState starts a session at the clearing.
func NewGameState(modelName string) *GameState {
	now := time.Now()
	gs := &GameState{
		ID:        uuid.New(),
		ModelName: modelName,
		CreatedAt: now,
		UpdatedAt: now,
	}
	gs.Reset()
	return gs
}

// Reset puts the player back at the start with nothing in hand and every
// item back in place. The session keeps its id. Returns the opening description.
func (gs *GameState) Reset() string {
	gs.Location = world.Start
	gs.Inventory = []string{}
	gs.World = world.New()
	gs.GameOver = false
	gs.Win = false
	gs.Lost = false
	gs.TreasureFound = false
	gs.Turns = 0
	gs.TotalReward = 0
	gs.Log = nil

	desc := gs.Describe()
	gs.ChatHistory = []chat.ChatMessage{{Role: chat.ChatRoleUser, Content: desc}}
	return desc
}

// Validate checks a session loaded from outside, e.g. from storage.
func (gs *GameState) Validate() error {
	if gs.ID == uuid.Nil {
		return fmt.Errorf("gamestate has no id")
	}
	if _, ok := world.Lookup(gs.Location); !ok {
		return fmt.Errorf("gamestate %s is at unknown location %q", gs.ID, gs.Location)
	}
	if gs.World == nil {
		return fmt.Errorf("gamestate %s has no world", gs.ID)
	}
	return nil
}

// Describe returns the current location's description, followed by the
// inventory when the player holds anything.
func (gs *GameState) Describe() string {
	loc, _ := world.Lookup(gs.Location)
	desc := loc.Description
	if len(gs.Inventory) > 0 {
		desc += fmt.Sprintf("\n\nIn your inventory: %s.", strings.Join(gs.Inventory, ", "))
	}
	return desc
}

// Status reports whether the session is still playing, won or lost.
func (gs *GameState) Status() Status {
	switch {
	case gs.Win:
		return StatusWon
	case gs.Lost:
		return StatusLost
	default:
		return StatusPlaying
	}
}

// ItemsHere returns the items at the player's location.
func (gs *GameState) ItemsHere() []string {
	return gs.World.ItemsAt(gs.Location)
}

// GiveUp ends the game as lost. It does nothing once the game is over.
func (gs *GameState) GiveUp() {
	if gs.GameOver {
		return
	}
	gs.Lost = true
	gs.GameOver = true
	gs.Log = append(gs.Log, LogEntry{Action: GameOverLogAction, Feedback: GameOverLogFeedback})
}
