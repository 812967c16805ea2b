package executor

import (
	"errors"
	"fmt"
	"time"
)

// Failure causes recorded in level outcomes. None of them stop a run.
var (
	// ErrMissingSolution means the solutions table has no entry for a level.
	ErrMissingSolution = errors.New("no solution found")
	// ErrCompletionTimeout means the completion flag was not satisfied in time.
	ErrCompletionTimeout = errors.New("completion timeout")
	// ErrExecutionCancelled means the session context ended before all actions ran.
	ErrExecutionCancelled = errors.New("execution cancelled")
	// ErrSyntax means the syntax checker rejected the solution.
	ErrSyntax = errors.New("syntax")
	// ErrExecutionPanic means the host panicked while executing a solution.
	ErrExecutionPanic = errors.New("execution panicked")
)

// LevelError describes why a level failed verification.
// Its Error text is what the outcome log records.
type LevelError struct {
	LevelName  string    // Display name of the level
	LevelIndex int       // Curriculum index
	Message    string    // Human-readable detail
	Err        error     // One of the sentinel errors above
	Timestamp  time.Time // When the failure was recorded
}

// NewLevelError creates a LevelError with the current timestamp.
func NewLevelError(name string, index int, err error, msg string) *LevelError {
	return &LevelError{
		LevelName:  name,
		LevelIndex: index,
		Message:    msg,
		Err:        err,
		Timestamp:  time.Now(),
	}
}

// Error implements the error interface.
func (e *LevelError) Error() string {
	switch {
	case errors.Is(e.Err, ErrMissingSolution):
		return fmt.Sprintf("No solution found for level %s", e.LevelName)
	case e.Message == "":
		return fmt.Sprintf("level %s: %v", e.LevelName, e.Err)
	case e.Err == nil:
		return e.Message
	default:
		return fmt.Sprintf("%v: %s", e.Err, e.Message)
	}
}

// Unwrap returns the sentinel cause.
func (e *LevelError) Unwrap() error {
	return e.Err
}

// IsMissingSolution reports whether err was caused by a missing solution.
func IsMissingSolution(err error) bool {
	return errors.Is(err, ErrMissingSolution)
}

// IsTimeout reports whether err was caused by the completion timeout.
func IsTimeout(err error) bool {
	return errors.Is(err, ErrCompletionTimeout)
}
