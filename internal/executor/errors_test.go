package executor

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLevelError_Error(t *testing.T) {
	tests := []struct {
		name string
		err  *LevelError
		want string
	}{
		{
			name: "missing solution",
			err:  NewLevelError("Level 2", 1, ErrMissingSolution, ""),
			want: "No solution found for level Level 2",
		},
		{
			name: "timeout with detail",
			err:  NewLevelError("L", 0, ErrCompletionTimeout, "collected 0 of 2 items"),
			want: "completion timeout: collected 0 of 2 items",
		},
		{
			name: "cause only",
			err:  NewLevelError("L", 0, ErrExecutionCancelled, ""),
			want: "level L: execution cancelled",
		},
		{
			name: "message only",
			err:  NewLevelError("L", 0, nil, "syntax: line 1, column 1: bad"),
			want: "syntax: line 1, column 1: bad",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.err.Error())
		})
	}
}

func TestLevelError_Unwrap(t *testing.T) {
	err := fmt.Errorf("verify: %w", NewLevelError("L", 3, ErrMissingSolution, ""))

	assert.True(t, IsMissingSolution(err))
	assert.False(t, IsTimeout(err))

	var levelErr *LevelError
	if assert.True(t, errors.As(err, &levelErr)) {
		assert.Equal(t, 3, levelErr.LevelIndex)
		assert.False(t, levelErr.Timestamp.IsZero())
	}
}
