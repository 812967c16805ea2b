package models

import "time"

// ExecutionResult is the outcome of running one solution through one
// execution session. It is built once and not modified afterwards.
type ExecutionResult struct {
	Success       bool          // Whether the session ran to completion
	FinalPosition Position      // Robot position after the last action
	TurnsTaken    uint          // Number of actions applied
	Events        []OutputEvent // Print-derived events, then at most one RobotAction summary
	RawTrace      string        // Debug rendering of the extracted action list
	Error         string        // Failure description, empty on success
}

// Texts returns the text of every event of the given kind, in order.
func (r *ExecutionResult) Texts(kind EventKind) []string {
	if r == nil {
		return nil
	}
	var out []string
	for _, e := range r.Events {
		if e.Kind == kind {
			out = append(out, e.Text)
		}
	}
	return out
}

// Stdout returns the captured standard output lines.
func (r *ExecutionResult) Stdout() []string { return r.Texts(EventStdout) }

// Stderr returns the captured standard error lines.
func (r *ExecutionResult) Stderr() []string { return r.Texts(EventStderr) }

// LevelTestOutcome is the permanent record of one level verification attempt.
type LevelTestOutcome struct {
	LevelName  string        // Display name of the level
	LevelIndex int           // Index of the level in the curriculum
	Success    bool          // Whether the completion flag was satisfied
	Error      string        // Failure reason, empty on success
	Duration   time.Duration // Time from level load to the outcome being recorded
}

// Report aggregates the outcome log of a pipeline run.
type Report struct {
	RunID    string             // Unique identifier of the run
	Outcomes []LevelTestOutcome // One entry per attempted level, in index order
	Passed   int                // Number of successful outcomes
	Failed   int                // Number of failed outcomes
	Duration time.Duration      // Total run time
}

// NewReport tallies the outcome log into a Report.
func NewReport(runID string, outcomes []LevelTestOutcome, duration time.Duration) Report {
	report := Report{
		RunID:    runID,
		Outcomes: append([]LevelTestOutcome(nil), outcomes...),
		Duration: duration,
	}
	for _, o := range outcomes {
		if o.Success {
			report.Passed++
		} else {
			report.Failed++
		}
	}
	return report
}

// FailedOutcomes returns the outcomes that did not pass.
func (r Report) FailedOutcomes() []LevelTestOutcome {
	var failed []LevelTestOutcome
	for _, o := range r.Outcomes {
		if !o.Success {
			failed = append(failed, o)
		}
	}
	return failed
}
