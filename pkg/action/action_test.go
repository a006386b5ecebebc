package action

import (
	"testing"

	"github.com/jwebster45206/treasure-hunt/pkg/world"
	"github.com/stretchr/testify/assert"
)

func TestParse(t *testing.T) {
	keyHere := []string{world.ShinyKey}

	tests := []struct {
		name      string
		input     string
		itemsHere []string
		expected  Action
	}{
		{"go north", "go north", nil, Action{KindGo, world.North}},
		{"go south mixed case", "I will Go SOUTH now.", nil, Action{KindGo, world.South}},
		{"go east", "go east", nil, Action{KindGo, world.East}},
		{"go west", "go west", nil, Action{KindGo, world.West}},
		{"north beats later directions", "go west, then go north", nil, Action{KindGo, world.North}},
		{"south beats east", "go east or go south", nil, Action{KindGo, world.South}},
		{"no negation handling", "don't go north", nil, Action{KindGo, world.North}},
		{"direction beats pick up", "pick up shiny key and go south", nil, Action{KindGo, world.South}},
		{"bare direction is unknown", "north", nil, Action{Kind: KindUnknown}},

		{"pick up shiny key", "pick up shiny key", nil, Action{KindPickUp, world.ShinyKey}},
		{"take shiny key", "Take the Shiny Key", nil, Action{KindPickUp, world.ShinyKey}},
		{"shiny item with key present", "pick up the shiny item", keyHere, Action{KindPickUp, world.ShinyKey}},
		{"shiny item without key present", "pick up the shiny item", nil, Action{Kind: KindUnknown}},
		{"pick up chest", "pick up old wooden chest", nil, Action{KindPickUp, world.OldWoodenChest}},
		{"key beats chest", "take shiny key to old wooden chest", nil, Action{KindPickUp, world.ShinyKey}},
		{"take matches inside words", "mistake shiny key", nil, Action{KindPickUp, world.ShinyKey}},
		{"pick up nothing known falls to open", "pick up the rock and open chest", nil, Action{KindOpen, ChestTarget}},
		{"shiny key without verb", "shiny key", nil, Action{Kind: KindUnknown}},

		{"open chest", "open chest", nil, Action{KindOpen, ChestTarget}},
		{"open chest shouted", "OPEN CHEST!", nil, Action{KindOpen, ChestTarget}},
		{"open the chest does not match", "open the chest", nil, Action{Kind: KindUnknown}},
		{"pick up chest beats open", "pick up old wooden chest or open chest", nil, Action{KindPickUp, world.OldWoodenChest}},

		{"dance", "I will dance", nil, Action{Kind: KindUnknown}},
		{"empty", "", nil, Action{Kind: KindUnknown}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, Parse(tt.input, tt.itemsHere))
		})
	}
}

func TestAction_String(t *testing.T) {
	assert.Equal(t, "go(north)", Action{KindGo, world.North}.String())
	assert.Equal(t, "unknown", Action{Kind: KindUnknown}.String())
}
