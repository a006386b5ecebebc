package world

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidate(t *testing.T) {
	require.NoError(t, Validate())
}

func TestLookup_Topology(t *testing.T) {
	tests := []struct {
		id    string
		exits map[string]string
	}{
		{Clearing, map[string]string{North: ForestPath, East: Riverbank}},
		{ForestPath, map[string]string{North: DarkCave, South: Clearing}},
		{DarkCave, map[string]string{South: ForestPath}},
		{Riverbank, map[string]string{West: Clearing, East: MountainPass}},
		{MountainPass, map[string]string{West: Riverbank}},
	}

	for _, tt := range tests {
		t.Run(tt.id, func(t *testing.T) {
			loc, ok := Lookup(tt.id)
			require.True(t, ok)
			assert.Equal(t, tt.id, loc.ID)
			assert.Equal(t, tt.exits, loc.Exits)
			assert.NotEmpty(t, loc.Description)
		})
	}

	assert.Len(t, LocationIDs(), 5)
	_, ok := Lookup("castle")
	assert.False(t, ok)
}

func TestLookup_ReturnsCopy(t *testing.T) {
	loc, _ := Lookup(Clearing)
	loc.Exits[West] = DarkCave

	again, _ := Lookup(Clearing)
	_, ok := again.Exit(West)
	assert.False(t, ok, "mutating a returned location must not change the map")
}

func TestNew_StartingItems(t *testing.T) {
	w := New()
	assert.Equal(t, []string{ShinyKey}, w.ItemsAt(DarkCave))
	assert.Equal(t, []string{OldWoodenChest}, w.ItemsAt(MountainPass))
	assert.Empty(t, w.ItemsAt(Clearing))
	assert.True(t, w.HasItem(DarkCave, ShinyKey))
	assert.False(t, w.HasItem(Clearing, ShinyKey))
}

func TestRemoveItem(t *testing.T) {
	w := New()

	require.NoError(t, w.RemoveItem(DarkCave, ShinyKey))
	assert.Empty(t, w.ItemsAt(DarkCave))

	err := w.RemoveItem(DarkCave, ShinyKey)
	assert.ErrorIs(t, err, ErrItemNotFound)
	assert.Empty(t, w.ItemsAt(DarkCave))

	err = w.RemoveItem("castle", ShinyKey)
	assert.ErrorIs(t, err, ErrUnknownLocation)
}

func TestWorlds_AreIndependent(t *testing.T) {
	a := New()
	b := New()

	require.NoError(t, a.RemoveItem(DarkCave, ShinyKey))
	assert.False(t, a.HasItem(DarkCave, ShinyKey))
	assert.True(t, b.HasItem(DarkCave, ShinyKey))

	c := New()
	assert.True(t, c.HasItem(DarkCave, ShinyKey), "new worlds start from the fixed map")
}

func TestWorld_Location(t *testing.T) {
	w := New()
	loc, err := w.Location(Riverbank)
	require.NoError(t, err)
	dest, ok := loc.Exit(East)
	assert.True(t, ok)
	assert.Equal(t, MountainPass, dest)

	_, err = w.Location("nowhere")
	assert.ErrorIs(t, err, ErrUnknownLocation)
}

func TestDisplayName(t *testing.T) {
	assert.Equal(t, "Forest Path", DisplayName(ForestPath))
	assert.Equal(t, "Clearing", DisplayName(Clearing))
	assert.Equal(t, "Mountain Pass", DisplayName(MountainPass))
}
