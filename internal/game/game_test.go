package game

import (
	"context"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/harrison/levelverify/internal/executor"
	"github.com/harrison/levelverify/internal/models"
	"github.com/harrison/levelverify/internal/world"
)

func typeString(g *Game, s string) {
	for _, r := range s {
		g.TypeRune(r)
	}
}

func testLevel() models.Level {
	return models.Level{
		Name:   "Gem",
		Width:  5,
		Height: 3,
		Start:  models.Position{X: 0, Y: 0},
		Items:  []models.Item{{Name: "gem", Pos: models.Position{X: 2, Y: 0}}},
	}
}

func TestTypeRune(t *testing.T) {
	g := New(world.DefaultConfig())
	g.LoadLevel(testLevel())

	typeString(g, "fn main() {\n    println!(\"héllo 🦀\");\n}")
	assert.Equal(t, "fn main() {\n    println!(\"héllo 🦀\");\n}", g.Code())
	assert.Equal(t, len([]rune(g.Code())), g.Cursor())

	line, col := g.CursorLineCol()
	assert.Equal(t, 2, line)
	assert.Equal(t, 1, col)
}

func TestLoadLevelResets(t *testing.T) {
	g := New(world.DefaultConfig())
	g.LoadLevel(testLevel())
	typeString(g, `move("right"); grab();`)
	g.Execute(context.Background(), g.Code())
	require.NotEmpty(t, g.Inventory())

	next := testLevel()
	next.Name = "Next"
	g.LoadLevel(next)

	assert.Empty(t, g.Code())
	assert.Zero(t, g.Cursor())
	assert.Empty(t, g.Inventory())
	assert.Empty(t, g.StdoutLines())
	_, ok := g.LastResult()
	assert.False(t, ok)
	assert.Zero(t, g.World().ItemsCollected())

	level, loaded := g.Level()
	assert.True(t, loaded)
	assert.Equal(t, "Next", level.Name)
}

func TestExecuteCapturesOutput(t *testing.T) {
	g := New(world.DefaultConfig())
	g.LoadLevel(testLevel())

	result := g.Execute(context.Background(), `fn main() {
    println!("first");
    eprintln!("oops");
    move("right");
    grab();
}`)

	assert.True(t, result.Success)
	assert.Equal(t, []string{"first"}, g.StdoutLines())
	assert.Equal(t, []string{"oops"}, g.StderrLines())
	assert.Equal(t, []string{"gem"}, g.Inventory())
	assert.Equal(t, models.Position{X: 1, Y: 0}, g.World().Position)
	assert.Contains(t, g.LastSummary(), "Grabbed: gem")

	// Output accumulates across executions of the same level.
	g.Execute(context.Background(), `println!("second");`)
	assert.Equal(t, []string{"first", "second"}, g.StdoutLines())
}

func TestExecuteUsesLevelGeometry(t *testing.T) {
	g := New(world.DefaultConfig())
	g.LoadLevel(testLevel())

	result := g.Execute(context.Background(), `move("down"); move("down"); move("down");`)
	assert.Equal(t, models.Position{X: 0, Y: 2}, result.FinalPosition)
	assert.Contains(t, g.LastSummary(), "Move blocked by boundary at (0, 3)")
}

// gateChecker blocks inside a session run until released.
type gateChecker struct {
	entered chan struct{}
	release chan struct{}
}

func (c *gateChecker) Check(ctx context.Context, source string) []models.SyntaxProblem {
	close(c.entered)
	<-c.release
	return nil
}

func TestExecuteAfterLevelChangeIsDropped(t *testing.T) {
	gate := &gateChecker{entered: make(chan struct{}), release: make(chan struct{})}
	g := New(world.DefaultConfig(), executor.WithSyntaxChecker(gate))
	g.LoadLevel(testLevel())

	var wg sync.WaitGroup
	var result models.ExecutionResult
	wg.Add(1)
	go func() {
		defer wg.Done()
		result = g.Execute(context.Background(), `println!("late");`)
	}()

	<-gate.entered
	next := testLevel()
	next.Name = "Next"
	g.LoadLevel(next)
	close(gate.release)
	wg.Wait()

	assert.Equal(t, []string{"late"}, result.Stdout())
	assert.Empty(t, g.StdoutLines(), "output of an orphaned run must not reach the new level")
	_, ok := g.LastResult()
	assert.False(t, ok)
}
