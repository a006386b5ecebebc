package world

import (
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// Location ids.
const (
	Clearing     = "clearing"
	ForestPath   = "forest_path"
	DarkCave     = "dark_cave"
	Riverbank    = "riverbank"
	MountainPass = "mountain_pass"

	Start = Clearing
)

// Item names.
const (
	ShinyKey       = "shiny key"
	OldWoodenChest = "old wooden chest"
)

// Directions understood by the map.
const (
	North = "north"
	South = "south"
	East  = "east"
	West  = "west"
)

// Location is a node in the map. Its fields never change at runtime;
// items present in a location are tracked per session by World.
type Location struct {
	ID          string            `json:"id"`
	Description string            `json:"description"`
	Exits       map[string]string `json:"exits"` // Direction → Location ID
}

// Exit returns the destination of the exit in the given direction.
func (l Location) Exit(direction string) (string, bool) {
	dest, ok := l.Exits[direction]
	return dest, ok
}

var titleCaser = cases.Title(language.English)

// DisplayName renders a location id for humans, e.g. "forest_path" → "Forest Path".
func DisplayName(id string) string {
	return titleCaser.String(strings.ReplaceAll(id, "_", " "))
}
