package models

import (
	"errors"
	"fmt"
)

// Item is a collectible placed on a level grid.
type Item struct {
	Name string   `yaml:"name"`
	Pos  Position `yaml:"pos"`
}

// Level describes one curriculum level as seen by the verification pipeline.
type Level struct {
	Name            string     // Display name, also the solutions table key
	Width           int        // Grid width in cells
	Height          int        // Grid height in cells
	Start           Position   // Robot start position
	Items           []Item     // Collectibles
	Doors           []Position // Closed doors
	Blockers        []Position // Impassable cells
	CompletionFlag  string     // Declarative completion predicate, may be empty
	FallbackMarkers []string   // Literals checked when the flag is absent or unrecognised
	Hint            string     // Instructions shown to the player
}

// Validate checks that the level has a name and a usable layout.
func (l *Level) Validate() error {
	if l.Name == "" {
		return errors.New("level name is required")
	}
	if l.Width <= 0 || l.Height <= 0 {
		return fmt.Errorf("level %q: grid must be at least 1x1, got %dx%d", l.Name, l.Width, l.Height)
	}
	if !l.InBounds(l.Start) {
		return fmt.Errorf("level %q: start %s is outside the %dx%d grid", l.Name, l.Start, l.Width, l.Height)
	}
	for _, item := range l.Items {
		if !l.InBounds(item.Pos) {
			return fmt.Errorf("level %q: item %q at %s is outside the grid", l.Name, item.Name, item.Pos)
		}
	}
	return nil
}

// InBounds reports whether p lies inside the level grid.
func (l *Level) InBounds(p Position) bool {
	return p.X >= 0 && p.Y >= 0 && p.X < l.Width && p.Y < l.Height
}
