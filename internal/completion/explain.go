package completion

import (
	"fmt"
	"strings"

	"github.com/sergi/go-diff/diffmatchpatch"

	"github.com/harrison/levelverify/internal/models"
	"github.com/harrison/levelverify/internal/world"
)

// Explain describes why flag is or is not satisfied. For print flags it
// shows a diff between the expected text and the closest captured line,
// with deletions as [-text-] and insertions as {+text+}.
func Explain(flag models.CompletionFlag, result models.ExecutionResult, w *world.World) string {
	if Evaluate(flag, result, w) {
		return "satisfied"
	}
	switch flag.Kind {
	case models.FlagPrintContains, models.FlagPrintExact:
		return explainLines("stdout", flag.Value, result.Stdout())
	case models.FlagErrorContains, models.FlagErrorExact:
		return explainLines("stderr", flag.Value, result.Stderr())
	case models.FlagItemsCollected:
		if !flag.Valid {
			return fmt.Sprintf("malformed item count in flag %q", flag.Raw)
		}
		return fmt.Sprintf("collected %d of %d items", itemsCollected(w), flag.Count)
	case models.FlagMovesMade:
		if !flag.Valid {
			return fmt.Sprintf("malformed move count in flag %q", flag.Raw)
		}
		return fmt.Sprintf("made %d of %d moves", result.TurnsTaken, flag.Count)
	case models.FlagAnyPrint:
		return "nothing was printed to stdout"
	case models.FlagAnyError:
		return "nothing was printed to stderr"
	case models.FlagAnyItem:
		return "no items were collected"
	default:
		if len(flag.Markers) == 0 {
			if flag.Raw != "" {
				return fmt.Sprintf("unrecognised flag %q and no fallback markers", flag.Raw)
			}
			return "level has no completion flag and no fallback markers"
		}
		return fmt.Sprintf("none of %q appeared in the output", flag.Markers)
	}
}

func explainLines(stream, want string, lines []string) string {
	if len(lines) == 0 {
		return fmt.Sprintf("expected %s %q but nothing was printed", stream, want)
	}

	dmp := diffmatchpatch.New()
	var best []diffmatchpatch.Diff
	bestDistance := -1
	for _, line := range lines {
		diffs := dmp.DiffMain(want, line, false)
		diffs = dmp.DiffCleanupSemantic(diffs)
		if d := dmp.DiffLevenshtein(diffs); bestDistance < 0 || d < bestDistance {
			best, bestDistance = diffs, d
		}
	}
	return fmt.Sprintf("expected %s %q, closest line: %s", stream, want, renderDiff(best))
}

func renderDiff(diffs []diffmatchpatch.Diff) string {
	var b strings.Builder
	for _, d := range diffs {
		switch d.Type {
		case diffmatchpatch.DiffEqual:
			b.WriteString(d.Text)
		case diffmatchpatch.DiffDelete:
			b.WriteString("[-" + d.Text + "-]")
		case diffmatchpatch.DiffInsert:
			b.WriteString("{+" + d.Text + "+}")
		}
	}
	return b.String()
}
