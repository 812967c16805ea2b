package display

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/harrison/levelverify/internal/executor"
	"github.com/harrison/levelverify/internal/models"
)

var (
	overlayBox = lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color("63")).
		Padding(0, 1)
	stateStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("212"))
	passStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("42"))
	failStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("196"))
	dimStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("244"))
)

// typingBarWidth is the width of the typing progress bar in cells.
const typingBarWidth = 20

// RenderOverlay draws the orchestrator status box: state description, level,
// typing progress while the solution is being entered, and the tally.
func RenderOverlay(s executor.Snapshot) string {
	lines := []string{
		"TEST MODE " + dimStyle.Render(shortRunID(s.RunID)),
		stateStyle.Render(s.State.Description()),
	}

	if s.LevelCount > 0 && s.State != models.StateTestsComplete {
		lines = append(lines, fmt.Sprintf("Level %d/%d: %s", s.LevelIndex+1, s.LevelCount, s.LevelName))
	}

	if s.State == models.StateInputtingSolution {
		lines = append(lines, fmt.Sprintf("Typing %s %d%%", typingBar(s.TypingProgress()), s.TypingProgress()))
	}
	if s.Pending {
		lines = append(lines, dimStyle.Render(fmt.Sprintf("running for %.1fs", s.StateElapsed.Seconds())))
	}

	lines = append(lines, fmt.Sprintf("%s  %s",
		passStyle.Render(fmt.Sprintf("Passed: %d", s.Passed)),
		failStyle.Render(fmt.Sprintf("Failed: %d", s.Failed)),
	))

	return overlayBox.Render(strings.Join(lines, "\n"))
}

func typingBar(percent int) string {
	filled := max(0, min(typingBarWidth, percent*typingBarWidth/100))
	return "[" + strings.Repeat("#", filled) + strings.Repeat(".", typingBarWidth-filled) + "]"
}

func shortRunID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}
