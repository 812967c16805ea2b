// Package game is the host the orchestrator drives: an editor buffer in
// front of a fresh execution session per level.
package game

import (
	"context"
	"strings"
	"sync"

	"github.com/harrison/levelverify/internal/executor"
	"github.com/harrison/levelverify/internal/models"
	"github.com/harrison/levelverify/internal/world"
)

// Game holds the loaded level, the editor buffer and the output of the
// last execution. It is safe for concurrent use: Execute runs on the
// orchestrator's worker while the UI reads the buffer.
type Game struct {
	base world.Config
	opts []executor.SessionOption

	mu      sync.RWMutex
	level   models.Level
	loaded  bool
	session *executor.Session
	code    []rune
	cursor  int
	stdout  []string
	stderr  []string
	items   []string
	last    *models.ExecutionResult
}

// New creates a Game. base supplies the grid for levels without their own
// layout; opts are applied to every session the game creates.
func New(base world.Config, opts ...executor.SessionOption) *Game {
	return &Game{
		base:    base,
		opts:    opts,
		session: executor.NewSession(base, opts...),
	}
}

// LoadLevel shows a level, clears the editor and starts a fresh session.
// A run still in flight keeps writing to the session it started with.
func (g *Game) LoadLevel(level models.Level) {
	g.mu.Lock()
	defer g.mu.Unlock()

	g.level = level
	g.loaded = true
	g.session = executor.NewSession(world.ConfigForLevel(level, g.base), g.opts...)
	g.code = nil
	g.cursor = 0
	g.stdout = nil
	g.stderr = nil
	g.items = nil
	g.last = nil
}

// TypeRune inserts r at the cursor and advances the cursor.
func (g *Game) TypeRune(r rune) {
	g.mu.Lock()
	defer g.mu.Unlock()

	g.code = append(g.code, 0)
	copy(g.code[g.cursor+1:], g.code[g.cursor:])
	g.code[g.cursor] = r
	g.cursor++
}

// Code returns the editor buffer.
func (g *Game) Code() string {
	g.mu.RLock()
	defer g.mu.RUnlock()
	return string(g.code)
}

// Cursor returns the cursor position in runes.
func (g *Game) Cursor() int {
	g.mu.RLock()
	defer g.mu.RUnlock()
	return g.cursor
}

// CursorLineCol returns the zero-based line and column of the cursor.
func (g *Game) CursorLineCol() (int, int) {
	g.mu.RLock()
	defer g.mu.RUnlock()

	line, col := 0, 0
	for _, r := range g.code[:g.cursor] {
		if r == '\n' {
			line++
			col = 0
			continue
		}
		col++
	}
	return line, col
}

// Execute runs code against the loaded level. Output is kept only if the
// level has not changed while the session ran.
func (g *Game) Execute(ctx context.Context, code string) models.ExecutionResult {
	g.mu.RLock()
	session := g.session
	g.mu.RUnlock()

	result := session.Run(ctx, code)

	g.mu.Lock()
	defer g.mu.Unlock()
	if g.session == session {
		g.stdout = append(g.stdout, result.Stdout()...)
		g.stderr = append(g.stderr, result.Stderr()...)
		g.items = session.World().Inventory()
		g.last = &result
	}
	return result
}

// World returns the world of the current level's session.
func (g *Game) World() *world.World {
	g.mu.RLock()
	defer g.mu.RUnlock()
	return g.session.World()
}

// Level returns the loaded level and whether one has been loaded.
func (g *Game) Level() (models.Level, bool) {
	g.mu.RLock()
	defer g.mu.RUnlock()
	return g.level, g.loaded
}

// StdoutLines returns the captured standard output of the current level.
func (g *Game) StdoutLines() []string {
	g.mu.RLock()
	defer g.mu.RUnlock()
	return append([]string(nil), g.stdout...)
}

// StderrLines returns the captured standard error of the current level.
func (g *Game) StderrLines() []string {
	g.mu.RLock()
	defer g.mu.RUnlock()
	return append([]string(nil), g.stderr...)
}

// LastResult returns the most recent execution of the current level.
func (g *Game) LastResult() (models.ExecutionResult, bool) {
	g.mu.RLock()
	defer g.mu.RUnlock()
	if g.last == nil {
		return models.ExecutionResult{}, false
	}
	return *g.last, true
}

// LastSummary returns the robot action summary of the last execution, or
// an empty string when nothing notable happened.
func (g *Game) LastSummary() string {
	result, ok := g.LastResult()
	if !ok {
		return ""
	}
	return strings.Join(result.Texts(models.EventRobotAction), "\n")
}

// Inventory returns the items collected by the last execution of the
// current level. Unlike World it never touches a session that is running.
func (g *Game) Inventory() []string {
	g.mu.RLock()
	defer g.mu.RUnlock()
	return append([]string(nil), g.items...)
}

var _ executor.Host = (*Game)(nil)
