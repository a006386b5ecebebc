package state

import (
	"fmt"
	"slices"

	"github.com/jwebster45206/treasure-hunt/pkg/action"
	"github.com/jwebster45206/treasure-hunt/pkg/chat"
	"github.com/jwebster45206/treasure-hunt/pkg/world"
)

// WinReward is the only nonzero reward in the game.
const WinReward = 100

const (
	GameOverMessage   = "The game is over. Please start a new game."
	UnknownMessage    = "I don't understand that action. Please be specific, like 'go north', 'pick up shiny key', or 'open chest'. Remember to use these exact phrases."
	WinMessage        = "You used the shiny shiny key to open the old wooden chest! Inside, you find a dazzling pile of gold and jewels! **YOU WIN!**"
	LockedMessage     = "The chest is locked. You need a key."
	NoChestMessage    = "There is no chest here to open."
	ChestHeavyMessage = "You can't pick up the entire chest. You need to open it."
)

// Outcome is the result of applying one action.
type Outcome struct {
	Action   action.Action `json:"action"`
	Feedback string        `json:"feedback"`
	Reward   int           `json:"reward"`
	GameOver bool          `json:"game_over"`
}

// TakeAction parses the agent's text, applies it, and records the turn in
// the game log and chat history. Calls after the game is over change nothing.
func (gs *GameState) TakeAction(text string) Outcome {
	a := action.Parse(text, gs.ItemsHere())
	if gs.GameOver {
		return gs.Apply(a)
	}

	out := gs.Apply(a)

	gs.Turns++
	gs.TotalReward += out.Reward
	gs.Log = append(gs.Log, LogEntry{Action: text, Feedback: out.Feedback, Reward: out.Reward})
	gs.ChatHistory = append(gs.ChatHistory,
		chat.ChatMessage{Role: chat.ChatRoleAgent, Content: text},
		chat.ChatMessage{Role: chat.ChatRoleUser, Content: out.Feedback},
	)
	if out.GameOver {
		gs.Log = append(gs.Log, LogEntry{Action: GameOverLogAction, Feedback: GameOverLogFeedback})
	}
	return out
}

// Apply runs one action against the session. It never fails; anything it
// cannot make sense of gets the unknown-action guidance.
func (gs *GameState) Apply(a action.Action) Outcome {
	out := Outcome{Action: a}
	if gs.GameOver {
		out.Feedback = GameOverMessage
		out.GameOver = true
		return out
	}

	switch a.Kind {
	case action.KindGo:
		out.Feedback = gs.move(a.Target)
	case action.KindPickUp:
		out.Feedback = gs.pickUp(a.Target)
	case action.KindOpen:
		out.Feedback, out.Reward = gs.open(a.Target)
	default:
		out.Feedback = UnknownMessage
	}

	out.GameOver = gs.GameOver
	return out
}

func (gs *GameState) move(direction string) string {
	loc, _ := world.Lookup(gs.Location)
	dest, ok := loc.Exit(direction)
	if !ok {
		return fmt.Sprintf("You cannot go %s from here. Try a different direction.", direction)
	}
	gs.Location = dest
	return fmt.Sprintf("You went %s. %s", direction, gs.Describe())
}

func (gs *GameState) pickUp(item string) string {
	switch item {
	case world.OldWoodenChest:
		return ChestHeavyMessage
	case world.ShinyKey:
		if err := gs.World.RemoveItem(gs.Location, item); err == nil {
			gs.Inventory = append(gs.Inventory, item)
			return fmt.Sprintf("You picked up the %s.\nThis might be useful.", item)
		}
	}
	return fmt.Sprintf("There is no %s here to pick up.", item)
}

func (gs *GameState) open(target string) (string, int) {
	if target != action.ChestTarget {
		return UnknownMessage, 0
	}
	if gs.Location != world.MountainPass {
		return NoChestMessage, 0
	}
	if !slices.Contains(gs.Inventory, world.ShinyKey) {
		return LockedMessage, 0
	}
	gs.GameOver = true
	gs.Win = true
	gs.TreasureFound = true
	return WinMessage, WinReward
}
