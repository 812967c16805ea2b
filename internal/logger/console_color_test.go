package logger

import (
	"strings"
	"testing"
	"time"

	"github.com/fatih/color"
	"github.com/harrison/levelverify/internal/models"
)

func withColor(t *testing.T) {
	t.Helper()
	prev := color.NoColor
	color.NoColor = false
	t.Cleanup(func() { color.NoColor = prev })
}

func TestFormatColorizedVerdict(t *testing.T) {
	withColor(t)
	scheme := newColorScheme()

	tests := []struct {
		name    string
		outcome models.LevelTestOutcome
		text    string
		code    string
	}{
		{"pass", models.LevelTestOutcome{Success: true, Duration: time.Second}, "PASS", "\x1b[32m"},
		{"slow pass", models.LevelTestOutcome{Success: true, Duration: time.Minute}, "PASS", "\x1b[33m"},
		{"fail", models.LevelTestOutcome{Error: "boom"}, "FAIL", "\x1b[31m"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := formatColorizedVerdict(tt.outcome, scheme)
			if !strings.Contains(got, tt.text) || !strings.Contains(got, tt.code) {
				t.Errorf("formatColorizedVerdict() = %q, want %q colored with %q", got, tt.text, tt.code)
			}
		})
	}
}

func TestFormatColorizedMetric(t *testing.T) {
	withColor(t)
	scheme := newColorScheme()

	got := formatColorizedMetric("Passed", 3, false, scheme)
	if !strings.Contains(got, "\x1b[36mPassed") {
		t.Errorf("expected cyan label, got %q", got)
	}

	got = formatColorizedMetric("Failed", 1, true, scheme)
	if !strings.Contains(got, "\x1b[31mFailed: 1") {
		t.Errorf("expected red failing metric, got %q", got)
	}
}
