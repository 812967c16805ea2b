package display

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/harrison/levelverify/internal/models"
)

// WriteSummary writes one line per outcome (index, name, verdict, duration
// and error) followed by the "N passed, M failed" tally.
func WriteSummary(w io.Writer, report models.Report) error {
	var b strings.Builder

	if report.RunID != "" {
		fmt.Fprintf(&b, "Level verification run %s\n", report.RunID)
	}

	nameWidth := 0
	for _, o := range report.Outcomes {
		nameWidth = max(nameWidth, len(o.LevelName))
	}

	for _, o := range report.Outcomes {
		verdict := "PASS"
		if !o.Success {
			verdict = "FAIL"
		}
		line := fmt.Sprintf("  [%d] %-*s  %s  %6s", o.LevelIndex, nameWidth, o.LevelName, verdict, formatSeconds(o.Duration))
		if o.Error != "" {
			line += "  " + o.Error
		}
		b.WriteString(strings.TrimRight(line, " "))
		b.WriteByte('\n')
	}

	fmt.Fprintf(&b, "%d passed, %d failed\n", report.Passed, report.Failed)

	_, err := io.WriteString(w, b.String())
	return err
}

func formatSeconds(d time.Duration) string {
	return fmt.Sprintf("%.1fs", d.Seconds())
}
