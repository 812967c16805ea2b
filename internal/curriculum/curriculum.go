// Package curriculum holds the built-in level catalog.
package curriculum

import (
	"fmt"

	"github.com/harrison/levelverify/internal/models"
)

// Levels returns a fresh copy of the built-in levels in play order.
func Levels() []models.Level {
	out := make([]models.Level, len(levels))
	for i, l := range levels {
		l.Items = append([]models.Item(nil), l.Items...)
		l.Doors = append([]models.Position(nil), l.Doors...)
		l.Blockers = append([]models.Position(nil), l.Blockers...)
		l.FallbackMarkers = append([]string(nil), l.FallbackMarkers...)
		out[i] = l
	}
	return out
}

// Find returns the built-in level with the given name.
func Find(name string) (models.Level, bool) {
	for _, l := range Levels() {
		if l.Name == name {
			return l, true
		}
	}
	return models.Level{}, false
}

// Validate checks every level and rejects duplicate names, which would make
// the solutions table ambiguous.
func Validate(ls []models.Level) error {
	seen := make(map[string]int, len(ls))
	for i := range ls {
		if err := ls[i].Validate(); err != nil {
			return fmt.Errorf("level %d: %w", i, err)
		}
		if prev, ok := seen[ls[i].Name]; ok {
			return fmt.Errorf("level %d: name %q already used by level %d", i, ls[i].Name, prev)
		}
		seen[ls[i].Name] = i
	}
	return nil
}

func pos(x, y int) models.Position { return models.Position{X: x, Y: y} }

var levels = []models.Level{
	{
		Name:   "Hello Rust",
		Width:  12,
		Height: 8,
		Start:  pos(1, 1),
		Items: []models.Item{
			{Name: "hello_world_tip", Pos: pos(3, 1)},
			{Name: "goal_item", Pos: pos(10, 6)},
		},
		Blockers:        []models.Position{pos(5, 3), pos(6, 3), pos(7, 3)},
		CompletionFlag:  "println:Hello, Rust!",
		FallbackMarkers: []string{"Hello, Rust!"},
		Hint:            "Use println! to print a message to the console.",
	},
	{
		Name:   "Functions and Loops",
		Width:  6,
		Height: 6,
		Start:  pos(0, 0),
		Items: []models.Item{
			{Name: "key", Pos: pos(2, 0)},
			{Name: "goal_item", Pos: pos(4, 3)},
		},
		CompletionFlag: "items_collected:2",
		Hint:           "Move next to each item and call grab().",
	},
	{
		Name:           "Primitives",
		Width:          8,
		Height:         6,
		Start:          pos(1, 1),
		Blockers:       []models.Position{pos(4, 2)},
		CompletionFlag: "println_exact:Total: 42",
		Hint:           "Bind numbers with let and print them with {} placeholders.",
	},
	{
		Name:   "Bindings and Mutability",
		Width:  8,
		Height: 6,
		Start:  pos(1, 1),
		Items: []models.Item{
			{Name: "gem", Pos: pos(4, 1)},
		},
		CompletionFlag: "items_collected:1",
		Hint:           "Store a direction in a binding and reuse it in move().",
	},
	{
		Name:   "Doors and Scanning",
		Width:  8,
		Height: 6,
		Start:  pos(1, 1),
		Items: []models.Item{
			{Name: "scanner", Pos: pos(5, 1)},
		},
		Doors:           []models.Position{pos(3, 1)},
		Blockers:        []models.Position{pos(3, 0), pos(3, 2)},
		CompletionFlag:  "items_collected:1",
		FallbackMarkers: []string{"Grabbed: scanner"},
		Hint:            "Scan ahead, open the door next to you, then grab the scanner.",
	},
	{
		Name:            "Understanding Errors",
		Width:           8,
		Height:          6,
		Start:           pos(1, 1),
		Blockers:        []models.Position{pos(6, 4)},
		CompletionFlag:  "eprintln:This is an error message!",
		FallbackMarkers: []string{"error message"},
		Hint:            "eprintln! writes to standard error.",
	},
	{
		Name:   "Flow Control",
		Width:  10,
		Height: 8,
		Start:  pos(1, 1),
		Items: []models.Item{
			{Name: "goal_item", Pos: pos(4, 3)},
		},
		Blockers:       []models.Position{pos(2, 4), pos(6, 2), pos(7, 5)},
		CompletionFlag: "println:Conditional movement complete!",
		Hint:           "Use if blocks to decide which moves to make.",
	},
}
