package executor

import (
	"fmt"
	"strings"

	"github.com/harrison/levelverify/internal/models"
	"github.com/harrison/levelverify/internal/world"
)

// Robot tool ranges.
const (
	ScanRange = 2
	GrabRange = 1
)

// ApplyAction applies one action to w and returns its outcome text. It never
// fails: actions it cannot carry out produce a descriptive outcome, and
// unrecognised actions produce an empty one. Every call costs exactly one
// turn.
func ApplyAction(w *world.World, a models.Action) string {
	w.Turns++
	outcome := apply(w, a)
	w.Record(outcome)
	return outcome
}

func apply(w *world.World, a models.Action) string {
	switch a.Kind {
	case models.ActionMove:
		return applyMove(w, a.Direction)
	case models.ActionScan:
		return applyScan(w, a.Direction)
	case models.ActionGrab:
		return applyGrab(w)
	case models.ActionOpenDoor:
		return applyOpenDoor(w)
	case models.ActionWait:
		return "Wait executed"
	default:
		return ""
	}
}

func applyMove(w *world.World, d models.Direction) string {
	if d == models.DirectionNone {
		return ""
	}
	grid := w.Grid()
	target := w.Position.Step(d)
	switch {
	case !grid.InBounds(target):
		return fmt.Sprintf("Move blocked by boundary at %s", target)
	case grid.IsBlocked(target):
		return fmt.Sprintf("Unknown Object Blocking Function at %s", target)
	case grid.IsClosedDoor(target):
		return fmt.Sprintf("Move blocked by closed door at %s", target)
	}
	w.Position = target
	return "Move executed"
}

func applyScan(w *world.World, d models.Direction) string {
	if d == models.DirectionNone {
		return ""
	}
	grid := w.Grid()
	var lines []string
	revealed := false
	p := w.Position
	for step := 0; step < ScanRange; step++ {
		p = p.Step(d)
		if !grid.InBounds(p) {
			break
		}
		if grid.IsBlocked(p) || grid.IsClosedDoor(p) {
			lines = append(lines, fmt.Sprintf("Scan blocked at %s", p))
			return strings.Join(lines, "\n")
		}
		if grid.Reveal(p) {
			revealed = true
		}
		for _, name := range grid.ItemsAt(p) {
			lines = append(lines, fmt.Sprintf("Scan found %s at %s", name, p))
		}
	}
	if revealed {
		lines = append(lines, "Scan complete.")
	} else {
		lines = append(lines, "Scan found nothing.")
	}
	return strings.Join(lines, "\n")
}

func applyGrab(w *world.World) string {
	taken := w.Grid().TakeWithin(w.Position, GrabRange)
	if len(taken) == 0 {
		return "Nothing to grab"
	}
	for _, name := range taken {
		w.Collect(name)
	}
	return "Grabbed: " + strings.Join(taken, ", ")
}

func applyOpenDoor(w *world.World) string {
	grid := w.Grid()
	var opened []string
	for _, d := range models.Directions {
		p := w.Position.Step(d)
		if grid.OpenDoor(p) {
			opened = append(opened, fmt.Sprintf("Door opened at %s", p))
		}
	}
	if len(opened) == 0 {
		return "No door nearby"
	}
	return strings.Join(opened, "\n")
}
