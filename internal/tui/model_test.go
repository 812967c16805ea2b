package tui

import (
	"context"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/x/ansi"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/harrison/levelverify/internal/executor"
	"github.com/harrison/levelverify/internal/game"
	"github.com/harrison/levelverify/internal/models"
	"github.com/harrison/levelverify/internal/world"
)

type fakeDriver struct {
	ticks []time.Duration
	done  bool
}

func (d *fakeDriver) Tick(dt time.Duration) { d.ticks = append(d.ticks, dt) }
func (d *fakeDriver) Done() bool            { return d.done }
func (d *fakeDriver) Snapshot() executor.Snapshot {
	return executor.Snapshot{State: models.StateInputtingSolution, LevelName: "Hello Rust", LevelCount: 1, Typed: 1, SolutionLength: 4}
}

func newScreen(t *testing.T) *game.Game {
	t.Helper()
	g := game.New(world.DefaultConfig())
	g.LoadLevel(models.Level{Name: "Hello Rust", Width: 4, Height: 4, Hint: "Say hello."})
	return g
}

func TestUpdateTicksWithElapsedTime(t *testing.T) {
	driver := &fakeDriver{}
	m := New(driver, newScreen(t), 10*time.Millisecond)

	start := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	next, cmd := m.Update(tickMsg(start))
	require.NotNil(t, cmd)
	next, _ = next.Update(tickMsg(start.Add(40 * time.Millisecond)))

	assert.Equal(t, []time.Duration{0, 40 * time.Millisecond}, driver.ticks)
	assert.False(t, next.(Model).Interrupted())
}

func TestUpdateQuitsWhenDone(t *testing.T) {
	driver := &fakeDriver{done: true}
	m := New(driver, newScreen(t), time.Millisecond)

	_, cmd := m.Update(tickMsg(time.Now()))
	require.NotNil(t, cmd)
	assert.Equal(t, tea.Quit(), cmd())
}

func TestQuitKeyMarksInterrupted(t *testing.T) {
	m := New(&fakeDriver{}, newScreen(t), time.Millisecond)

	next, cmd := m.Update(tea.KeyMsg{Type: tea.KeyCtrlC})
	require.NotNil(t, cmd)
	assert.True(t, next.(Model).Interrupted())

	done := New(&fakeDriver{done: true}, newScreen(t), time.Millisecond)
	next, _ = done.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'q'}})
	assert.False(t, next.(Model).Interrupted(), "quitting after the run is not an interruption")
}

func TestView(t *testing.T) {
	screen := newScreen(t)
	for _, r := range "fn main() {\n    println!(\"hi\");\n}" {
		screen.TypeRune(r)
	}
	screen.Execute(context.Background(), screen.Code())

	m := New(&fakeDriver{}, screen, time.Millisecond)
	next, _ := m.Update(tea.WindowSizeMsg{Width: 120, Height: 30})
	view := ansi.Strip(next.View())

	for _, want := range []string{
		"levelverify  Hello Rust",
		"Say hello.",
		"1  fn main() {",
		"2      println!(\"hi\");",
		"Program Output",
		"hi",
		"Typing solution into editor...",
		"q: quit",
	} {
		assert.Contains(t, view, want)
	}
}
