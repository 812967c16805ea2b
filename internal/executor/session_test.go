package executor

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel/attribute"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"

	"github.com/harrison/levelverify/internal/extract"
	"github.com/harrison/levelverify/internal/models"
	"github.com/harrison/levelverify/internal/world"
)

func sessionConfig() world.Config {
	cfg := world.DefaultConfig()
	cfg.Items = []models.Item{{Name: "key", Pos: pos(2, 1)}}
	return cfg
}

func TestSession_Run(t *testing.T) {
	source := `fn main() {
    println!("Hi");
    eprintln!("bad");
    move("right");
    grab();
    move("left");
    panic!("ignored");
}`
	s := NewSession(sessionConfig())
	result := s.Run(context.Background(), source)

	assert.True(t, result.Success)
	assert.Empty(t, result.Error)
	assert.Equal(t, uint(3), result.TurnsTaken)
	assert.Equal(t, pos(1, 1), result.FinalPosition)
	assert.Equal(t, "[Move{right}, Grab, Move{left}]", result.RawTrace)
	assert.Equal(t, []models.OutputEvent{
		models.StdoutEvent("Hi"),
		models.StderrEvent("bad"),
		models.RobotActionEvent("Grabbed: key"),
	}, result.Events)
	assert.Equal(t, []string{"key"}, s.World().Inventory())
}

func TestSession_RobotSummaryJoinsNonTrivialOutcomes(t *testing.T) {
	s := NewSession(world.DefaultConfig())
	result := s.Run(context.Background(), `move("up"); move("up"); grab(); wait(); move("north");`)

	require.Len(t, result.Events, 1)
	assert.Equal(t, models.EventRobotAction, result.Events[0].Kind)
	assert.Equal(t, "Move blocked by boundary at (1, -1)\nNothing to grab", result.Events[0].Text)
	assert.Equal(t, uint(5), result.TurnsTaken)
}

func TestSession_NoRobotSummaryForRoutineOutcomes(t *testing.T) {
	s := NewSession(world.DefaultConfig())
	result := s.Run(context.Background(), `move("right"); wait();`)
	assert.Empty(t, result.Events)
}

func TestSession_ZeroActions(t *testing.T) {
	s := NewSession(world.DefaultConfig())
	result := s.Run(context.Background(), `let x = 5;`)

	assert.True(t, result.Success)
	assert.Equal(t, uint(0), result.TurnsTaken)
	assert.Equal(t, pos(1, 1), result.FinalPosition)
	assert.Empty(t, result.Events)
	assert.Equal(t, "[]", result.RawTrace)
}

func TestSession_ResetsWorldBetweenRuns(t *testing.T) {
	s := NewSession(sessionConfig())
	s.Run(context.Background(), `move("right"); grab();`)
	result := s.Run(context.Background(), `move("down");`)

	assert.Equal(t, uint(1), result.TurnsTaken)
	assert.Equal(t, pos(1, 2), result.FinalPosition)
	assert.Empty(t, s.World().Inventory())
}

func TestSession_CancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	s := NewSession(world.DefaultConfig())
	result := s.Run(ctx, `println!("still printed"); move("right");`)

	assert.False(t, result.Success)
	assert.Contains(t, result.Error, "execution cancelled")
	assert.Equal(t, uint(0), result.TurnsTaken)
	assert.Equal(t, []string{"still printed"}, result.Stdout())
}

type stubChecker struct {
	problems []models.SyntaxProblem
	calls    int
}

func (c *stubChecker) Check(ctx context.Context, source string) []models.SyntaxProblem {
	c.calls++
	return c.problems
}

func TestSession_SyntaxChecker(t *testing.T) {
	t.Run("problems reject the source", func(t *testing.T) {
		checker := &stubChecker{problems: []models.SyntaxProblem{
			{Line: 1, Column: 3, Message: "unexpected token"},
			{Line: 2, Column: 1, Message: "missing ;"},
		}}
		s := NewSession(world.DefaultConfig(), WithSyntaxChecker(checker))
		result := s.Run(context.Background(), `move("right")`)

		assert.False(t, result.Success)
		assert.Equal(t, "syntax: line 1, column 3: unexpected token (and 1 more)", result.Error)
		assert.Equal(t, uint(0), result.TurnsTaken)
		assert.Empty(t, result.Events)
	})

	t.Run("clean source runs", func(t *testing.T) {
		checker := &stubChecker{}
		s := NewSession(world.DefaultConfig(), WithSyntaxChecker(checker))
		result := s.Run(context.Background(), `move("right");`)

		assert.True(t, result.Success)
		assert.Equal(t, 1, checker.calls)
		assert.Equal(t, uint(1), result.TurnsTaken)
	})
}

func TestSession_UsesCache(t *testing.T) {
	cache, err := extract.NewCache(4)
	require.NoError(t, err)

	s := NewSession(world.DefaultConfig(), WithCache(cache))
	first := s.Run(context.Background(), `move("right");`)
	second := s.Run(context.Background(), `move("right");`)

	assert.Equal(t, first, second)
	hits, misses := cache.Stats()
	assert.Equal(t, uint64(1), hits)
	assert.Equal(t, uint64(1), misses)
}

func TestSession_Span(t *testing.T) {
	recorder := tracetest.NewSpanRecorder()
	provider := sdktrace.NewTracerProvider(sdktrace.WithSpanProcessor(recorder))
	defer func() { _ = provider.Shutdown(context.Background()) }()

	s := NewSession(world.DefaultConfig(), WithTracer(provider.Tracer("test")))
	s.Run(context.Background(), `move("right"); println!("x");`)

	spans := recorder.Ended()
	require.Len(t, spans, 1)
	assert.Equal(t, "session.run", spans[0].Name())
	assert.Contains(t, spans[0].Attributes(), attribute.Int("levelverify.actions", 1))
	assert.Contains(t, spans[0].Attributes(), attribute.Int("levelverify.prints", 1))
}

func TestPrintEvents(t *testing.T) {
	got := printEvents([]string{"stdout: a", "stderr: b", "panic: c", "info: d", "stdout:e"})
	assert.Equal(t, []models.OutputEvent{models.StdoutEvent("a"), models.StderrEvent("b")}, got)
}
