package action

import (
	"fmt"
	"slices"
	"strings"

	"github.com/jwebster45206/treasure-hunt/pkg/world"
)

// Kind names the sort of action the parser recognised.
type Kind string

const (
	KindGo      Kind = "go"
	KindPickUp  Kind = "pick_up"
	KindOpen    Kind = "open"
	KindUnknown Kind = "unknown"
)

// ChestTarget is the only target of an open action.
const ChestTarget = "chest"

// Action is one parsed instruction from the agent.
type Action struct {
	Kind   Kind   `json:"kind"`
	Target string `json:"target,omitempty"`
}

// String renders the action as kind(target), or just kind without a target.
func (a Action) String() string {
	if a.Target == "" {
		return string(a.Kind)
	}
	return fmt.Sprintf("%s(%s)", a.Kind, a.Target)
}

// Directions are tested in this order; the first one found wins.
var directions = []string{world.North, world.South, world.East, world.West}

// Parse turns free text into an Action by plain substring matching.
// itemsHere are the items at the player's location; they let "shiny item"
// stand in for the key when the key is actually there.
//
// Parsing is deliberately crude. "don't go north" still means go north,
// and when several directions appear the earliest in the list above wins.
// The open rule checks for "chest" a second time; that check can never
// fail but is part of the rule.
func Parse(text string, itemsHere []string) Action {
	s := strings.ToLower(text)

	for _, dir := range directions {
		if strings.Contains(s, "go "+dir) {
			return Action{Kind: KindGo, Target: dir}
		}
	}

	if strings.Contains(s, "pick up") || strings.Contains(s, "take") {
		switch {
		case strings.Contains(s, world.ShinyKey):
			return Action{Kind: KindPickUp, Target: world.ShinyKey}
		case strings.Contains(s, "shiny item") && slices.Contains(itemsHere, world.ShinyKey):
			return Action{Kind: KindPickUp, Target: world.ShinyKey}
		case strings.Contains(s, world.OldWoodenChest):
			return Action{Kind: KindPickUp, Target: world.OldWoodenChest}
		}
	}

	if strings.Contains(s, "open chest") && strings.Contains(s, ChestTarget) {
		return Action{Kind: KindOpen, Target: ChestTarget}
	}

	return Action{Kind: KindUnknown}
}
