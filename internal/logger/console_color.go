package logger

import (
	"fmt"
	"time"

	"github.com/fatih/color"
	"github.com/harrison/levelverify/internal/models"
)

// colorScheme defines consistent colors for summary output.
// Green: passes
// Red: failures
// Yellow: slow levels
// Cyan: labels
type colorScheme struct {
	success *color.Color
	fail    *color.Color
	warn    *color.Color
	label   *color.Color
	value   *color.Color
}

func newColorScheme() *colorScheme {
	return &colorScheme{
		success: color.New(color.FgGreen),
		fail:    color.New(color.FgRed),
		warn:    color.New(color.FgYellow),
		label:   color.New(color.FgCyan),
		value:   color.New(color.FgWhite),
	}
}

// formatColorizedMetric formats "label: value" with a cyan label. Failing
// metrics are red throughout.
func formatColorizedMetric(label string, value interface{}, failing bool, scheme *colorScheme) string {
	if failing {
		return scheme.fail.Sprintf("%s: %v", label, value)
	}
	return fmt.Sprintf("%s: %s", scheme.label.Sprint(label), scheme.value.Sprintf("%v", value))
}

// slowLevelThreshold marks passing levels that took long enough to be worth
// a second look.
const slowLevelThreshold = 30 * time.Second

// formatColorizedVerdict renders PASS in green (yellow when slow) and FAIL in red.
func formatColorizedVerdict(o models.LevelTestOutcome, scheme *colorScheme) string {
	switch {
	case !o.Success:
		return scheme.fail.Sprint("FAIL")
	case o.Duration >= slowLevelThreshold:
		return scheme.warn.Sprint("PASS")
	default:
		return scheme.success.Sprint("PASS")
	}
}
