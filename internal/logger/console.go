// Package logger provides logging implementations for level verification runs.
//
// The logger package records the orchestrator's progress at the level,
// state and summary granularity. Implementations are thread-safe and support
// various output destinations (console, file, etc.).
package logger

import (
	"fmt"
	"io"
	"os"
	"strings"
	"sync"
	"time"

	"github.com/fatih/color"
	"github.com/harrison/levelverify/internal/models"
	"github.com/mattn/go-isatty"
)

// ConsoleLogger logs verification progress to a writer with timestamps and thread safety.
// All output is prefixed with [HH:MM:SS] timestamps.
// It supports log level filtering to control message verbosity.
// Color output is automatically enabled for terminal output (os.Stdout/os.Stderr).
type ConsoleLogger struct {
	writer      io.Writer
	threshold   severity
	mutex       sync.Mutex
	colorOutput bool
}

// NewConsoleLogger creates a ConsoleLogger that writes to the provided io.Writer.
// If writer is nil, messages are silently discarded.
// Valid levels: trace, debug, info, warn, error (case-insensitive).
// If logLevel is empty or invalid, defaults to "info".
func NewConsoleLogger(writer io.Writer, logLevel string) *ConsoleLogger {
	return &ConsoleLogger{
		writer:      writer,
		threshold:   parseSeverity(logLevel),
		colorOutput: isTerminal(writer),
	}
}

// isTerminal reports whether w is a TTY stdout/stderr that should get colors.
// NO_COLOR disables colors through fatih/color.
func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	if !ok || (f != os.Stdout && f != os.Stderr) {
		return false
	}
	if color.NoColor {
		return false
	}
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}

func (cl *ConsoleLogger) enabled(s severity) bool {
	return cl.writer != nil && s >= cl.threshold
}

// LogTrace logs a trace-level message (most verbose).
func (cl *ConsoleLogger) LogTrace(message string) {
	cl.logAt(sevTrace, message)
}

// LogDebug logs a debug-level message.
func (cl *ConsoleLogger) LogDebug(message string) {
	cl.logAt(sevDebug, message)
}

// LogInfo logs an info-level message.
func (cl *ConsoleLogger) LogInfo(message string) {
	cl.logAt(sevInfo, message)
}

// LogWarn logs a warning-level message.
func (cl *ConsoleLogger) LogWarn(message string) {
	cl.logAt(sevWarn, message)
}

// LogError logs an error-level message.
// Format: "[HH:MM:SS] [ERROR] <message>"
func (cl *ConsoleLogger) LogError(message string) {
	cl.logAt(sevError, message)
}

func (cl *ConsoleLogger) logAt(s severity, message string) {
	if !cl.enabled(s) {
		return
	}

	tag := s.String()
	if cl.colorOutput {
		tag = s.colored()
	}
	cl.write(fmt.Sprintf("[%s] [%s] %s\n", timestamp(), tag, message))
}

func (cl *ConsoleLogger) write(s string) {
	cl.mutex.Lock()
	defer cl.mutex.Unlock()
	cl.writer.Write([]byte(s))
}

// LogLevelStart logs that a level was loaded, at INFO level.
// Format: "[HH:MM:SS] Level <index>: <name> (<w>x<h>, <flag>)"
func (cl *ConsoleLogger) LogLevelStart(index int, level models.Level) {
	if !cl.enabled(sevInfo) {
		return
	}

	name := level.Name
	if cl.colorOutput {
		name = color.New(color.Bold).Sprint(name)
	}
	cl.write(fmt.Sprintf("[%s] Level %d: %s (%dx%d, %s)\n",
		timestamp(), index, name, level.Width, level.Height, flagLabel(level)))
}

// LogStateChange logs an orchestrator transition at DEBUG level.
func (cl *ConsoleLogger) LogStateChange(index int, from, to models.OrchestratorState) {
	if !cl.enabled(sevDebug) {
		return
	}
	cl.write(fmt.Sprintf("[%s] Level %d: %s -> %s\n", timestamp(), index, from, to))
}

// LogLevelOutcome logs the verdict for one level at INFO level.
// Format: "[HH:MM:SS] Level <index> (<name>): PASS (<duration>)"
func (cl *ConsoleLogger) LogLevelOutcome(outcome models.LevelTestOutcome) {
	if !cl.enabled(sevInfo) {
		return
	}

	verdict := outcomeVerdict(outcome)
	if cl.colorOutput {
		verdict = formatColorizedVerdict(outcome, newColorScheme())
	}

	msg := fmt.Sprintf("[%s] Level %d (%s): %s (%s)", timestamp(), outcome.LevelIndex, outcome.LevelName, verdict, formatDuration(outcome.Duration))
	if outcome.Error != "" {
		msg += " - " + outcome.Error
	}
	cl.write(msg + "\n")
}

// LogSummary logs the run summary with pass/fail statistics at INFO level.
func (cl *ConsoleLogger) LogSummary(report models.Report) {
	if !cl.enabled(sevInfo) {
		return
	}

	ts := timestamp()
	scheme := newColorScheme()
	var b strings.Builder

	header := "=== Verification Summary ==="
	if cl.colorOutput {
		header = color.New(color.Bold).Sprint(header)
	}
	fmt.Fprintf(&b, "[%s] %s\n", ts, header)

	stats := []struct {
		label string
		value interface{}
		fail  bool
	}{
		{"Total levels", len(report.Outcomes), false},
		{"Passed", report.Passed, false},
		{"Failed", report.Failed, report.Failed > 0},
		{"Duration", formatDuration(report.Duration), false},
	}
	for _, s := range stats {
		line := fmt.Sprintf("%s: %v", s.label, s.value)
		if cl.colorOutput {
			line = formatColorizedMetric(s.label, s.value, s.fail, scheme)
		}
		fmt.Fprintf(&b, "[%s] %s\n", ts, line)
	}

	if failed := report.FailedOutcomes(); len(failed) > 0 {
		fmt.Fprintf(&b, "[%s] Failed levels:\n", ts)
		for _, o := range failed {
			name := o.LevelName
			if cl.colorOutput {
				name = scheme.fail.Sprint(name)
			}
			fmt.Fprintf(&b, "[%s]   - Level %d %s: %s\n", ts, o.LevelIndex, name, o.Error)
		}
	}

	cl.write(b.String())
}

// LogProgress logs how many of the planned levels have an outcome.
// Format: "[HH:MM:SS] Progress: [=====     ] 2/4 (50%)"
func (cl *ConsoleLogger) LogProgress(done, total int) {
	if !cl.enabled(sevInfo) {
		return
	}

	pb := NewProgressBar(total, 10, cl.colorOutput)
	pb.Update(done)
	cl.write(fmt.Sprintf("[%s] Progress: %s\n", timestamp(), pb.Render()))
}

func flagLabel(level models.Level) string {
	if level.CompletionFlag == "" {
		return "no flag"
	}
	return level.CompletionFlag
}

func outcomeVerdict(o models.LevelTestOutcome) string {
	if o.Success {
		return "PASS"
	}
	return "FAIL"
}

// timestamp returns the current time formatted as "15:04:05" (HH:MM:SS).
func timestamp() string {
	return time.Now().Format("15:04:05")
}

// formatDuration converts a time.Duration to a human-readable string.
// Examples: "250ms", "5s", "1m30s", "2h15m"
func formatDuration(d time.Duration) string {
	switch {
	case d >= time.Hour:
		hours := d / time.Hour
		minutes := (d % time.Hour) / time.Minute
		if minutes == 0 {
			return fmt.Sprintf("%dh", hours)
		}
		return fmt.Sprintf("%dh%dm", hours, minutes)
	case d >= time.Minute:
		minutes := d / time.Minute
		seconds := (d % time.Minute) / time.Second
		if seconds == 0 {
			return fmt.Sprintf("%dm", minutes)
		}
		return fmt.Sprintf("%dm%ds", minutes, seconds)
	case d >= time.Second:
		return fmt.Sprintf("%.1fs", d.Seconds())
	default:
		return fmt.Sprintf("%dms", d.Milliseconds())
	}
}

// NoOpLogger is a Logger implementation that discards all log messages.
// Useful for testing or when logging is disabled.
type NoOpLogger struct{}

// NewNoOpLogger creates a NoOpLogger instance.
func NewNoOpLogger() *NoOpLogger {
	return &NoOpLogger{}
}

func (n *NoOpLogger) LogDebug(string) {
}

func (n *NoOpLogger) LogInfo(string) {
}

func (n *NoOpLogger) LogWarn(string) {
}

func (n *NoOpLogger) LogError(string) {
}

func (n *NoOpLogger) LogLevelStart(int, models.Level) {
}

func (n *NoOpLogger) LogStateChange(int, models.OrchestratorState, models.OrchestratorState) {
}

func (n *NoOpLogger) LogLevelOutcome(models.LevelTestOutcome) {
}

func (n *NoOpLogger) LogSummary(models.Report) {
}
