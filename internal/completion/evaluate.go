package completion

import (
	"strings"

	"github.com/harrison/levelverify/internal/models"
	"github.com/harrison/levelverify/internal/world"
)

// Evaluate reports whether result and w satisfy flag. It has no side effects.
// A nil world is treated as one with an empty inventory.
func Evaluate(flag models.CompletionFlag, result models.ExecutionResult, w *world.World) bool {
	switch flag.Kind {
	case models.FlagPrintContains:
		return anyLine(result.Stdout(), func(s string) bool { return strings.Contains(s, flag.Value) })
	case models.FlagPrintExact:
		return anyLine(result.Stdout(), func(s string) bool { return trimNewline(s) == flag.Value })
	case models.FlagErrorContains:
		return anyLine(result.Stderr(), func(s string) bool { return strings.Contains(s, flag.Value) })
	case models.FlagErrorExact:
		return anyLine(result.Stderr(), func(s string) bool { return trimNewline(s) == flag.Value })
	case models.FlagItemsCollected:
		return flag.Valid && itemsCollected(w) >= flag.Count
	case models.FlagMovesMade:
		return flag.Valid && int(result.TurnsTaken) >= flag.Count
	case models.FlagAnyPrint:
		return len(result.Stdout()) > 0
	case models.FlagAnyError:
		return len(result.Stderr()) > 0
	case models.FlagAnyItem:
		return itemsCollected(w) > 0
	default:
		_, ok := matchMarker(flag.Markers, result)
		return ok
	}
}

// matchMarker checks each marker in order against stdout, then stderr, then
// robot action texts, and returns the first marker found.
func matchMarker(markers []string, result models.ExecutionResult) (string, bool) {
	streams := [][]string{
		result.Stdout(),
		result.Stderr(),
		result.Texts(models.EventRobotAction),
	}
	for _, marker := range markers {
		if marker == "" {
			continue
		}
		for _, lines := range streams {
			if anyLine(lines, func(s string) bool { return strings.Contains(s, marker) }) {
				return marker, true
			}
		}
	}
	return "", false
}

func anyLine(lines []string, match func(string) bool) bool {
	for _, l := range lines {
		if match(l) {
			return true
		}
	}
	return false
}

func itemsCollected(w *world.World) int {
	if w == nil {
		return 0
	}
	return w.ItemsCollected()
}

func trimNewline(s string) string {
	return strings.TrimRight(s, "\r\n")
}
