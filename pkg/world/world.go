package world

import (
	"errors"
	"fmt"
	"slices"
)

var (
	ErrUnknownLocation = errors.New("unknown location")
	ErrItemNotFound    = errors.New("item not found")
)

// World holds the items currently lying in each location for one session.
// The topology comes from the fixed map; only item placement lives here.
// Each session must own its own World.
type World struct {
	Items map[string][]string `json:"items"` // Location ID → items present
}

// New returns a World with every item in its starting place.
func New() *World {
	w := &World{Items: make(map[string][]string, len(locations))}
	for id, spec := range locations {
		w.Items[id] = slices.Clone(spec.items)
	}
	return w
}

// Location returns the location with the given id.
func (w *World) Location(id string) (Location, error) {
	loc, ok := Lookup(id)
	if !ok {
		return Location{}, fmt.Errorf("%w: %s", ErrUnknownLocation, id)
	}
	return loc, nil
}

// ItemsAt returns a copy of the items present at a location.
func (w *World) ItemsAt(id string) []string {
	return slices.Clone(w.Items[id])
}

// HasItem reports whether the item is present at the location.
func (w *World) HasItem(id, item string) bool {
	return slices.Contains(w.Items[id], item)
}

// RemoveItem takes an item out of a location. Removing an item that is not
// there returns ErrItemNotFound and leaves the world unchanged.
func (w *World) RemoveItem(id, item string) error {
	if _, ok := locations[id]; !ok {
		return fmt.Errorf("%w: %s", ErrUnknownLocation, id)
	}
	i := slices.Index(w.Items[id], item)
	if i < 0 {
		return fmt.Errorf("%w: %q at %s", ErrItemNotFound, item, id)
	}
	w.Items[id] = slices.Delete(w.Items[id], i, i+1)
	return nil
}
