package display

import (
	"fmt"
	"io"

	"github.com/fatih/color"
)

// ProgressIndicator prints one line per checked level.
type ProgressIndicator struct {
	writer  io.Writer
	total   int
	current int
}

// NewProgressIndicator creates a new progress indicator
func NewProgressIndicator(w io.Writer, total int) *ProgressIndicator {
	return &ProgressIndicator{
		writer: w,
		total:  total,
	}
}

// Start displays the header message
func (p *ProgressIndicator) Start() {
	fmt.Fprintf(p.writer, "Checking %d levels:\n", p.total)
}

// Step displays "[N/Total] name: detail" in cyan.
func (p *ProgressIndicator) Step(name, detail string) {
	p.current++
	line := fmt.Sprintf("  [%d/%d] %s", p.current, p.total, name)
	if detail != "" {
		line += ": " + detail
	}
	fmt.Fprintln(p.writer, color.CyanString("%s", line))
}

// Complete displays the success message with a green checkmark
func (p *ProgressIndicator) Complete() {
	fmt.Fprintf(p.writer, "%s Checked %d levels\n", color.GreenString("✓"), p.current)
}
