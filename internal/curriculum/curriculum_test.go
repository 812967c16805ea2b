package curriculum

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/harrison/levelverify/internal/completion"
	"github.com/harrison/levelverify/internal/executor"
	"github.com/harrison/levelverify/internal/models"
	"github.com/harrison/levelverify/internal/solutions"
	"github.com/harrison/levelverify/internal/world"
)

func TestLevelsAreValid(t *testing.T) {
	ls := Levels()
	require.NotEmpty(t, ls)
	require.NoError(t, Validate(ls))

	for _, l := range ls {
		t.Run(l.Name, func(t *testing.T) {
			names := make(map[string]bool)
			for _, item := range l.Items {
				assert.False(t, names[item.Name], "duplicate item %q", item.Name)
				names[item.Name] = true
			}
			flag := completion.ParseFlag(l.CompletionFlag, l.FallbackMarkers)
			assert.NotEqual(t, models.FlagNone, flag.Kind, "built-in levels carry a recognised flag")
			assert.True(t, flag.Valid)
		})
	}
}

func TestLevelsReturnsCopies(t *testing.T) {
	a := Levels()
	a[0].Items[0].Name = "changed"
	a[0].Name = "changed"

	b := Levels()
	assert.Equal(t, "Hello Rust", b[0].Name)
	assert.Equal(t, "hello_world_tip", b[0].Items[0].Name)
}

func TestFind(t *testing.T) {
	l, ok := Find("Doors and Scanning")
	require.True(t, ok)
	assert.Equal(t, []models.Position{{X: 3, Y: 1}}, l.Doors)

	_, ok = Find("Nope")
	assert.False(t, ok)
}

func TestValidateRejects(t *testing.T) {
	tests := []struct {
		name   string
		levels []models.Level
		errMsg string
	}{
		{
			name:   "duplicate names",
			levels: []models.Level{{Name: "A", Width: 1, Height: 1}, {Name: "A", Width: 1, Height: 1}},
			errMsg: `name "A" already used by level 0`,
		},
		{
			name:   "empty grid",
			levels: []models.Level{{Name: "A"}},
			errMsg: "grid must be at least 1x1",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := Validate(tt.levels)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.errMsg)
		})
	}
}

// TestBuiltinSolutionsPass runs every reference solution through a session
// and checks the level's completion flag against the result.
func TestBuiltinSolutionsPass(t *testing.T) {
	table := solutions.Builtin()
	require.Empty(t, table.Missing(Levels()), "every built-in level needs a reference solution")

	for _, level := range Levels() {
		t.Run(level.Name, func(t *testing.T) {
			code, ok := table.Solution(level.Name)
			require.True(t, ok)

			session := executor.NewSession(world.ConfigForLevel(level, world.DefaultConfig()))
			result := session.Run(context.Background(), code)
			flag := completion.ParseFlag(level.CompletionFlag, level.FallbackMarkers)

			assert.True(t, completion.Evaluate(flag, result, session.World()),
				"%s: %s", level.Name, completion.Explain(flag, result, session.World()))
		})
	}
}

func TestEmptySolutionsFail(t *testing.T) {
	for _, level := range Levels() {
		t.Run(level.Name, func(t *testing.T) {
			session := executor.NewSession(world.ConfigForLevel(level, world.DefaultConfig()))
			result := session.Run(context.Background(), "fn main() {}")
			flag := completion.ParseFlag(level.CompletionFlag, level.FallbackMarkers)

			assert.False(t, completion.Evaluate(flag, result, session.World()))
		})
	}
}

func TestDoorsLevelNeedsTheDoorOpened(t *testing.T) {
	level, ok := Find("Doors and Scanning")
	require.True(t, ok)

	session := executor.NewSession(world.ConfigForLevel(level, world.DefaultConfig()))
	result := session.Run(context.Background(), `fn main() {
    move("right");
    move("right");
    move("right");
    grab();
}`)

	assert.Equal(t, models.Position{X: 2, Y: 1}, result.FinalPosition)
	assert.Zero(t, session.World().ItemsCollected())
	assert.Contains(t, result.Texts(models.EventRobotAction)[0], "Move blocked by closed door at (3, 1)")
}
