package main

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/jwebster45206/treasure-hunt/internal/agent"
	"github.com/jwebster45206/treasure-hunt/pkg/state"
)

func TestStatusAndInventoryLabels(t *testing.T) {
	gs := state.NewGameState("foo_model")
	assert.Equal(t, "", statusLabel(gs))
	assert.Equal(t, "Empty", inventoryLabel(gs.Inventory))
	assert.Equal(t, "shiny key, lamp", inventoryLabel([]string{"shiny key", "lamp"}))

	gs.GiveUp()
	assert.Equal(t, "LOST", statusLabel(gs))

	won := state.NewGameState("foo_model")
	for _, text := range agent.Walkthrough {
		won.TakeAction(text)
	}
	assert.Equal(t, "WIN", statusLabel(won))
}

func TestWriteMetadata(t *testing.T) {
	gs := state.NewGameState("foo_model")
	gs.TakeAction("go north")

	meta := writeMetadata(gs, "You went north.", 40)
	assert.Contains(t, meta, "Forest Path")
	assert.Contains(t, meta, "Empty")
	assert.Contains(t, meta, "Turns: 1")
	assert.Contains(t, meta, "You went north.")
	assert.NotContains(t, meta, "WIN")
}

func TestFormatLogText_MostRecentFirst(t *testing.T) {
	gs := state.NewGameState("foo_model")
	gs.TakeAction("go north")
	gs.TakeAction("go west")

	text := formatLogText(gs)
	assert.Less(t, strings.Index(text, "> go west"), strings.Index(text, "> go north"))
}
