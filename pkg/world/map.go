package world

import (
	"fmt"
	"maps"
	"slices"
)

type locationSpec struct {
	description string
	exits       map[string]string
	items       []string
}

// The map is fixed. Nothing outside this file can reach these values
// except through copies.
var locations = map[string]locationSpec{
	Clearing: {
		description: "You are in a sunny forest clearing. Sunlight filters through the leaves. Paths lead NORTH and EAST.",
		exits:       map[string]string{North: ForestPath, East: Riverbank},
	},
	ForestPath: {
		description: "A narrow, winding path through dense trees. You hear distant animal sounds. It leads NORTH to a dark cave and SOUTH back to the clearing.",
		exits:       map[string]string{North: DarkCave, South: Clearing},
	},
	DarkCave: {
		description: "It's cold and damp in this dark cave. You can barely see a glint of something shiny on the ground. The only exit is SOUTH.",
		exits:       map[string]string{South: ForestPath},
		items:       []string{ShinyKey},
	},
	Riverbank: {
		description: "You're by a gently flowing river. The water looks cool and inviting. Paths lead WEST back to the clearing and EAST towards rugged mountains.",
		exits:       map[string]string{West: Clearing, East: MountainPass},
	},
	MountainPass: {
		description: "You're on a steep mountain pass. The wind howls around you. Ahead, you see an old, wooden CHEST. The path leads WEST.",
		exits:       map[string]string{West: Riverbank},
		items:       []string{OldWoodenChest},
	},
}

// LocationIDs returns every location id in sorted order.
func LocationIDs() []string {
	return slices.Sorted(maps.Keys(locations))
}

// Lookup returns a copy of the location with the given id.
func Lookup(id string) (Location, bool) {
	spec, ok := locations[id]
	if !ok {
		return Location{}, false
	}
	return Location{
		ID:          id,
		Description: spec.description,
		Exits:       maps.Clone(spec.exits),
	}, true
}

// Validate checks that the start location exists and that every exit
// leads somewhere on the map.
func Validate() error {
	if _, ok := locations[Start]; !ok {
		return fmt.Errorf("start location %q is not on the map", Start)
	}
	for _, id := range LocationIDs() {
		for dir, dest := range locations[id].exits {
			if _, ok := locations[dest]; !ok {
				return fmt.Errorf("exit %s from %s leads to unknown location %q", dir, id, dest)
			}
		}
	}
	return nil
}
