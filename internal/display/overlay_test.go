package display

import (
	"testing"
	"time"

	"github.com/charmbracelet/x/ansi"
	"github.com/stretchr/testify/assert"

	"github.com/harrison/levelverify/internal/executor"
	"github.com/harrison/levelverify/internal/models"
)

func TestRenderOverlay(t *testing.T) {
	tests := []struct {
		name     string
		snapshot executor.Snapshot
		contains []string
		excludes []string
	}{
		{
			name: "typing",
			snapshot: executor.Snapshot{
				RunID: "0123456789abcdef", State: models.StateInputtingSolution,
				LevelIndex: 1, LevelName: "Functions and Loops", LevelCount: 7,
				Typed: 50, SolutionLength: 100, Passed: 1,
			},
			contains: []string{"TEST MODE 01234567", "Typing solution into editor...", "Level 2/7: Functions and Loops", "[##########..........] 50%", "Passed: 1", "Failed: 0"},
		},
		{
			name: "waiting",
			snapshot: executor.Snapshot{
				State: models.StateWaitingForCompletion, LevelName: "Hello Rust", LevelCount: 1,
				Pending: true, StateElapsed: 1500 * time.Millisecond,
			},
			contains: []string{"Waiting for completion...", "running for 1.5s"},
			excludes: []string{"Typing ["},
		},
		{
			name:     "done",
			snapshot: executor.Snapshot{State: models.StateTestsComplete, LevelCount: 3, Passed: 2, Failed: 1},
			contains: []string{"All levels tested!", "Passed: 2", "Failed: 1"},
			excludes: []string{"Level "},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			view := ansi.Strip(RenderOverlay(tt.snapshot))
			for _, want := range tt.contains {
				assert.Contains(t, view, want)
			}
			for _, unwanted := range tt.excludes {
				assert.NotContains(t, view, unwanted)
			}
		})
	}
}

func TestTypingBar(t *testing.T) {
	assert.Equal(t, "[....................]", typingBar(0))
	assert.Equal(t, "[####################]", typingBar(100))
	assert.Equal(t, "[####################]", typingBar(150))
}
