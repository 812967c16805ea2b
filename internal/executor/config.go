package executor

import (
	"errors"
	"fmt"
	"time"

	"github.com/harrison/levelverify/internal/models"
)

// OrchestratorConfig holds the pacing of the level test state machine.
type OrchestratorConfig struct {
	StartLevel        int           // Index of the first level to verify
	MaxLevels         int           // Cap on levels attempted; <= 0 means all
	TypingRate        float64       // Characters typed per second; <= 0 types instantly
	LoadDelay         time.Duration // Loading -> InputtingSolution
	ExecuteDelay      time.Duration // ExecutingCode -> session start
	CompletionTimeout time.Duration // WaitingForCompletion ceiling
	CompleteDelay     time.Duration // LevelComplete -> NextLevel
	NextLevelDelay    time.Duration // NextLevel -> Loading or TestsComplete
	ExecutionTimeout  time.Duration // Context deadline for one session; 0 disables
}

// DefaultOrchestratorConfig returns the standard pacing: 1s load, 20 chars/s
// typing, 1s before execution, 5s completion timeout, 2s on the completed
// level and 0.5s between levels.
func DefaultOrchestratorConfig() OrchestratorConfig {
	return OrchestratorConfig{
		TypingRate:        20,
		LoadDelay:         time.Second,
		ExecuteDelay:      time.Second,
		CompletionTimeout: 5 * time.Second,
		CompleteDelay:     2 * time.Second,
		NextLevelDelay:    500 * time.Millisecond,
		ExecutionTimeout:  5 * time.Second,
	}
}

// Validate checks the configuration for impossible values.
func (c OrchestratorConfig) Validate() error {
	if c.StartLevel < 0 {
		return fmt.Errorf("start level must be >= 0, got %d", c.StartLevel)
	}
	if c.TypingRate < 0 {
		return fmt.Errorf("typing rate must be >= 0, got %v", c.TypingRate)
	}
	durations := map[string]time.Duration{
		"load delay":         c.LoadDelay,
		"execute delay":      c.ExecuteDelay,
		"completion timeout": c.CompletionTimeout,
		"complete delay":     c.CompleteDelay,
		"next level delay":   c.NextLevelDelay,
		"execution timeout":  c.ExecutionTimeout,
	}
	for name, d := range durations {
		if d < 0 {
			return fmt.Errorf("%s must be >= 0, got %s", name, d)
		}
	}
	if c.CompletionTimeout == 0 {
		return errors.New("completion timeout must be > 0")
	}
	return nil
}

// levelRange returns the half-open range of level indices a run attempts.
func (c OrchestratorConfig) levelRange(count int) (int, int) {
	start := c.StartLevel
	if start > count {
		start = count
	}
	end := count
	if c.MaxLevels > 0 && start+c.MaxLevels < end {
		end = start + c.MaxLevels
	}
	return start, end
}

// TypingDuration is the time needed to type n characters.
func (c OrchestratorConfig) TypingDuration(n int) time.Duration {
	if c.TypingRate <= 0 || n <= 0 {
		return 0
	}
	return time.Duration(float64(n) / c.TypingRate * float64(time.Second))
}

// MaxRunDuration is the longest a run over levels can take, excluding the
// at most one frame each state may overshoot its threshold by.
func (c OrchestratorConfig) MaxRunDuration(levels []models.Level, solutions SolutionSource) time.Duration {
	start, end := c.levelRange(len(levels))
	var total time.Duration
	for _, level := range levels[start:end] {
		code, ok := lookupSolution(solutions, level.Name)
		if !ok {
			total += c.NextLevelDelay
			continue
		}
		total += c.LoadDelay + c.TypingDuration(len([]rune(code))) + c.ExecuteDelay +
			c.CompletionTimeout + c.CompleteDelay + c.NextLevelDelay
	}
	return total
}

func lookupSolution(solutions SolutionSource, name string) (string, bool) {
	if solutions == nil {
		return "", false
	}
	return solutions.Solution(name)
}
