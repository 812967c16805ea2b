// Package world holds the mutable simulated state a solution acts on: the
// robot position, the turn counter, the collected inventory and the grid.
package world

import (
	"sort"

	"github.com/harrison/levelverify/internal/models"
)

// World is the simulated state of one execution session. It is not safe for
// concurrent use; a session owns it while actions are being applied.
type World struct {
	Position models.Position
	Turns    uint

	grid      *Grid
	inventory []string
	logging   bool
	history   []string
}

// New builds a world from cfg with the robot at the configured start.
func New(cfg Config) *World {
	w := &World{}
	w.Reset(cfg)
	return w
}

// Reset discards all state and reinitialises the world from cfg.
func (w *World) Reset(cfg Config) {
	if cfg.Width <= 0 || cfg.Height <= 0 {
		def := DefaultConfig()
		cfg.Width, cfg.Height = def.Width, def.Height
	}
	w.Position = cfg.Start
	w.Turns = 0
	w.grid = newGrid(cfg)
	w.inventory = nil
	w.logging = cfg.EnableLogging
	w.history = nil
}

// Grid returns the level grid.
func (w *World) Grid() *Grid { return w.grid }

// Inventory returns the collected item names in pickup order.
func (w *World) Inventory() []string {
	return append([]string(nil), w.inventory...)
}

// ItemsCollected returns the number of collected items.
func (w *World) ItemsCollected() int { return len(w.inventory) }

// HasItem reports whether an item with the given name was collected.
func (w *World) HasItem(name string) bool {
	for _, n := range w.inventory {
		if n == name {
			return true
		}
	}
	return false
}

// Collect adds an item to the inventory. Names already held are ignored.
func (w *World) Collect(name string) {
	if w.HasItem(name) {
		return
	}
	w.inventory = append(w.inventory, name)
}

// Record appends an action outcome to the world history when logging is on.
func (w *World) Record(outcome string) {
	if !w.logging || outcome == "" {
		return
	}
	w.history = append(w.history, outcome)
}

// History returns the recorded action outcomes.
func (w *World) History() []string {
	return append([]string(nil), w.history...)
}

// Grid is the static layout of a level plus the bookkeeping actions change:
// open doors, collected items and cells revealed by scanning.
type Grid struct {
	width    int
	height   int
	blockers map[models.Position]bool
	doors    map[models.Position]bool // value is true once opened
	items    []models.Item
	revealed map[models.Position]bool
}

func newGrid(cfg Config) *Grid {
	g := &Grid{
		width:    cfg.Width,
		height:   cfg.Height,
		blockers: make(map[models.Position]bool, len(cfg.Blockers)),
		doors:    make(map[models.Position]bool, len(cfg.Doors)),
		items:    append([]models.Item(nil), cfg.Items...),
		revealed: make(map[models.Position]bool),
	}
	for _, p := range cfg.Blockers {
		g.blockers[p] = true
	}
	for _, p := range cfg.Doors {
		g.doors[p] = false
	}
	return g
}

// Size returns the grid width and height.
func (g *Grid) Size() (int, int) { return g.width, g.height }

// InBounds reports whether p is on the grid.
func (g *Grid) InBounds(p models.Position) bool {
	return p.X >= 0 && p.Y >= 0 && p.X < g.width && p.Y < g.height
}

// IsBlocked reports whether p holds an impassable object.
func (g *Grid) IsBlocked(p models.Position) bool { return g.blockers[p] }

// IsClosedDoor reports whether p holds a door that has not been opened.
func (g *Grid) IsClosedDoor(p models.Position) bool {
	open, ok := g.doors[p]
	return ok && !open
}

// OpenDoor opens the door at p. It returns false when p holds no closed door.
func (g *Grid) OpenDoor(p models.Position) bool {
	if !g.IsClosedDoor(p) {
		return false
	}
	g.doors[p] = true
	return true
}

// ItemsAt returns the names of uncollected items lying on p.
func (g *Grid) ItemsAt(p models.Position) []string {
	var names []string
	for _, it := range g.items {
		if it.Pos == p {
			names = append(names, it.Name)
		}
	}
	return names
}

// TakeWithin removes and returns every item within Manhattan distance r of p,
// in layout order.
func (g *Grid) TakeWithin(p models.Position, r int) []string {
	var taken []string
	kept := g.items[:0]
	for _, it := range g.items {
		if it.Pos.Distance(p) <= r {
			taken = append(taken, it.Name)
			continue
		}
		kept = append(kept, it)
	}
	g.items = kept
	return taken
}

// Remaining returns the uncollected items.
func (g *Grid) Remaining() []models.Item {
	return append([]models.Item(nil), g.items...)
}

// Reveal marks p as seen by a scan. It returns true when p was not
// revealed before.
func (g *Grid) Reveal(p models.Position) bool {
	if !g.InBounds(p) || g.revealed[p] {
		return false
	}
	g.revealed[p] = true
	return true
}

// IsRevealed reports whether p was scanned.
func (g *Grid) IsRevealed(p models.Position) bool { return g.revealed[p] }

// Revealed returns the scanned cells ordered by row then column.
func (g *Grid) Revealed() []models.Position {
	cells := make([]models.Position, 0, len(g.revealed))
	for p := range g.revealed {
		cells = append(cells, p)
	}
	sort.Slice(cells, func(i, j int) bool {
		if cells[i].Y != cells[j].Y {
			return cells[i].Y < cells[j].Y
		}
		return cells[i].X < cells[j].X
	})
	return cells
}
