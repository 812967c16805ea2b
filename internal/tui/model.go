// Package tui drives an orchestrator from a bubbletea program and draws the
// editor buffer, captured output and the status overlay.
package tui

import (
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/harrison/levelverify/internal/display"
	"github.com/harrison/levelverify/internal/executor"
	"github.com/harrison/levelverify/internal/models"
)

// Driver is the part of the orchestrator the program ticks and reads.
type Driver interface {
	Tick(dt time.Duration)
	Done() bool
	Snapshot() executor.Snapshot
}

// Screen is the part of the game the program draws.
type Screen interface {
	Code() string
	CursorLineCol() (int, int)
	Level() (models.Level, bool)
	StdoutLines() []string
	StderrLines() []string
	Inventory() []string
	LastSummary() string
}

type tickMsg time.Time

// Model is the bubbletea model. It ticks the driver once per frame with the
// wall-clock time since the previous frame.
type Model struct {
	driver      Driver
	screen      Screen
	interval    time.Duration
	last        time.Time
	width       int
	height      int
	interrupted bool
}

// New creates a Model ticking every interval.
func New(driver Driver, screen Screen, interval time.Duration) Model {
	if interval <= 0 {
		interval = time.Second / 30
	}
	return Model{
		driver:   driver,
		screen:   screen,
		interval: interval,
		width:    100,
		height:   30,
	}
}

// Interrupted reports whether the user quit before the run finished.
func (m Model) Interrupted() bool {
	return m.interrupted
}

func (m Model) tick() tea.Cmd {
	return tea.Tick(m.interval, func(t time.Time) tea.Msg { return tickMsg(t) })
}

// Init starts the frame clock.
func (m Model) Init() tea.Cmd {
	return m.tick()
}

// Update handles frames, resizes and quit keys.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tickMsg:
		now := time.Time(msg)
		if !m.last.IsZero() {
			m.driver.Tick(now.Sub(m.last))
		} else {
			m.driver.Tick(0)
		}
		m.last = now
		if m.driver.Done() {
			return m, tea.Quit
		}
		return m, m.tick()
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c", "esc":
			m.interrupted = !m.driver.Done()
			return m, tea.Quit
		}
	}
	return m, nil
}

var (
	titleStyle  = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("212"))
	editorStyle = lipgloss.NewStyle().Border(lipgloss.NormalBorder()).Padding(0, 1)
	outputStyle = lipgloss.NewStyle().Border(lipgloss.NormalBorder()).Padding(0, 1)
	cursorStyle = lipgloss.NewStyle().Reverse(true)
	errStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("196"))
	hintStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("244"))
)

// View draws the editor on the left and output plus overlay on the right.
func (m Model) View() string {
	leftWidth := max(30, m.width*3/5-4)
	rightWidth := max(24, m.width-leftWidth-8)

	header := titleStyle.Render("levelverify")
	if level, ok := m.screen.Level(); ok {
		header += "  " + level.Name
		if level.Hint != "" {
			header += "  " + hintStyle.Render(level.Hint)
		}
	}

	editor := editorStyle.Width(leftWidth).Render(m.renderEditor(max(5, m.height-8)))
	right := lipgloss.JoinVertical(lipgloss.Left,
		display.RenderOverlay(m.driver.Snapshot()),
		outputStyle.Width(rightWidth).Render(m.renderOutput()),
	)

	return lipgloss.JoinVertical(lipgloss.Left,
		header,
		lipgloss.JoinHorizontal(lipgloss.Top, editor, right),
		hintStyle.Render("q: quit"),
	)
}

// renderEditor shows the buffer with the cursor cell highlighted, scrolled
// so the cursor line stays visible.
func (m Model) renderEditor(rows int) string {
	lines := strings.Split(m.screen.Code(), "\n")
	line, col := m.screen.CursorLineCol()

	cur := []rune(lines[line])
	if col < len(cur) {
		lines[line] = string(cur[:col]) + cursorStyle.Render(string(cur[col])) + string(cur[col+1:])
	} else {
		lines[line] = string(cur) + cursorStyle.Render(" ")
	}

	start := max(0, line-rows+1)
	end := min(len(lines), start+rows)
	numbered := make([]string, 0, end-start)
	for i := start; i < end; i++ {
		numbered = append(numbered, fmt.Sprintf("%3d  %s", i+1, lines[i]))
	}
	return strings.Join(numbered, "\n")
}

func (m Model) renderOutput() string {
	var b strings.Builder
	b.WriteString("Program Output\n")
	for _, l := range m.screen.StdoutLines() {
		b.WriteString("  " + l + "\n")
	}
	if stderr := m.screen.StderrLines(); len(stderr) > 0 {
		b.WriteString("Error Output\n")
		for _, l := range stderr {
			b.WriteString("  " + errStyle.Render(l) + "\n")
		}
	}
	if summary := m.screen.LastSummary(); summary != "" {
		b.WriteString("Robot Action Results\n")
		for _, l := range strings.Split(summary, "\n") {
			b.WriteString("  " + l + "\n")
		}
	}
	if items := m.screen.Inventory(); len(items) > 0 {
		b.WriteString("Inventory: " + strings.Join(items, ", ") + "\n")
	}
	return strings.TrimSuffix(b.String(), "\n")
}
