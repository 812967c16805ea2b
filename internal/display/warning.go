package display

import (
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"
)

// Warning represents a user-facing warning message
type Warning struct {
	Title      string   // Main warning title
	Message    string   // Detailed explanation (optional)
	Items      []string // Related levels or files (optional)
	ItemLabel  string   // Singular noun for Items, "level" when empty
	Suggestion string   // Action to take (optional)
}

// Display shows a formatted warning in yellow
func (w Warning) Display(out io.Writer) {
	var b strings.Builder

	fmt.Fprintf(&b, "⚠️  Warning: %s\n", w.Title)
	if w.Message != "" {
		fmt.Fprintf(&b, "    %s\n", w.Message)
	}

	if len(w.Items) > 0 {
		label := w.ItemLabel
		if label == "" {
			label = "level"
		}
		if len(w.Items) == 1 {
			fmt.Fprintf(&b, "    Affected %s:\n", label)
		} else {
			fmt.Fprintf(&b, "    Affected %ss:\n", label)
		}
		for i, item := range w.Items {
			fmt.Fprintf(&b, "      %d. %s\n", i+1, item)
		}
	}

	if w.Suggestion != "" {
		fmt.Fprintf(&b, "    Suggestion:\n    %s\n", w.Suggestion)
	}

	fmt.Fprint(out, color.YellowString("%s", b.String()))
}

// WarnMissingSolutions creates a warning for levels the solutions table
// does not cover. Those levels fail with "No solution found".
func WarnMissingSolutions(levels []string) Warning {
	return Warning{
		Title:      "Levels without a solution",
		Message:    "These levels will be recorded as failures.",
		Items:      levels,
		Suggestion: "Add a \"## <level name>\" section with a rust code block to the solutions file",
	}
}
