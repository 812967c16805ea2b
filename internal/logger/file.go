package logger

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/harrison/levelverify/internal/models"
)

// FileLogger logs orchestrator events to files in a log directory.
// It creates a timestamped run log, one detail file per verified level under
// levels/, and maintains a latest.log symlink pointing to the most recent run.
// It is thread-safe and implements the executor.Logger interface.
type FileLogger struct {
	logDir    string
	runLog    *os.File
	runFile   string
	levelsDir string
	threshold severity
	mu        sync.Mutex
}

// NewFileLogger creates a FileLogger writing to .levelverify/logs/ at info level.
func NewFileLogger() (*FileLogger, error) {
	return NewFileLoggerWithDirAndLevel(filepath.Join(".levelverify", "logs"), "info")
}

// NewFileLoggerWithDirAndLevel creates a FileLogger with a custom log directory and log level.
func NewFileLoggerWithDirAndLevel(logDir string, logLevel string) (*FileLogger, error) {
	levelsDir := filepath.Join(logDir, "levels")
	if err := os.MkdirAll(levelsDir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create log directory: %w", err)
	}

	// run-YYYYMMDD-HHMMSS.log
	runFile := filepath.Join(logDir, fmt.Sprintf("run-%s.log", time.Now().Format("20060102-150405")))
	file, err := os.OpenFile(runFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
	if err != nil {
		return nil, fmt.Errorf("failed to create run log file: %w", err)
	}

	symlinkPath := filepath.Join(logDir, "latest.log")
	if _, err := os.Lstat(symlinkPath); err == nil {
		if err := os.Remove(symlinkPath); err != nil {
			file.Close()
			return nil, fmt.Errorf("failed to remove old symlink: %w", err)
		}
	}
	if err := os.Symlink(filepath.Base(runFile), symlinkPath); err != nil {
		file.Close()
		return nil, fmt.Errorf("failed to create symlink: %w", err)
	}

	logger := &FileLogger{
		logDir:    logDir,
		runLog:    file,
		runFile:   runFile,
		levelsDir: levelsDir,
		threshold: parseSeverity(logLevel),
	}

	logger.writeRunLog("=== Level Verification Run Log ===\n")
	logger.writeRunLog(fmt.Sprintf("Started at: %s\n\n", time.Now().Format(time.RFC3339)))

	return logger, nil
}

// RunFile returns the path of the current run log.
func (fl *FileLogger) RunFile() string {
	return fl.runFile
}

func (fl *FileLogger) enabled(s severity) bool {
	return s >= fl.threshold
}

// LogTrace logs a trace-level message (most verbose).
func (fl *FileLogger) LogTrace(message string) {
	fl.logAt(sevTrace, message)
}

// LogDebug logs a debug-level message.
func (fl *FileLogger) LogDebug(message string) {
	fl.logAt(sevDebug, message)
}

// LogInfo logs an info-level message.
func (fl *FileLogger) LogInfo(message string) {
	fl.logAt(sevInfo, message)
}

// LogWarn logs a warning-level message.
func (fl *FileLogger) LogWarn(message string) {
	fl.logAt(sevWarn, message)
}

// LogError logs an error-level message.
func (fl *FileLogger) LogError(message string) {
	fl.logAt(sevError, message)
}

func (fl *FileLogger) logAt(s severity, message string) {
	if !fl.enabled(s) {
		return
	}
	fl.writeRunLog(fmt.Sprintf("[%s] [%s] %s\n", timestamp(), s, message))
}

// LogLevelStart logs the level layout at INFO level.
func (fl *FileLogger) LogLevelStart(index int, level models.Level) {
	if !fl.enabled(sevInfo) {
		return
	}

	itemLabel := "items"
	if len(level.Items) == 1 {
		itemLabel = "item"
	}
	fl.writeRunLog(fmt.Sprintf(
		"[%s] Starting level %d: %s (%dx%d grid, %d %s, flag %q)\n",
		timestamp(),
		index,
		level.Name,
		level.Width,
		level.Height,
		len(level.Items),
		itemLabel,
		level.CompletionFlag,
	))
}

// LogStateChange logs an orchestrator transition at TRACE level. The run
// log keeps the full state trail only when asked for.
func (fl *FileLogger) LogStateChange(index int, from, to models.OrchestratorState) {
	if !fl.enabled(sevTrace) {
		return
	}
	fl.writeRunLog(fmt.Sprintf("[%s] Level %d: %s -> %s\n", timestamp(), index, from, to))
}

// LogLevelOutcome writes the verdict to the run log and a detail file to
// levels/level-<index>.log. The detail file is written regardless of the
// configured level.
func (fl *FileLogger) LogLevelOutcome(outcome models.LevelTestOutcome) {
	if fl.enabled(sevInfo) {
		msg := fmt.Sprintf("[%s] Level %d (%s) %s in %.1fs", timestamp(), outcome.LevelIndex, outcome.LevelName, outcomeVerdict(outcome), outcome.Duration.Seconds())
		if outcome.Error != "" {
			msg += ": " + outcome.Error
		}
		fl.writeRunLog(msg + "\n")
	}

	if err := fl.writeLevelLog(outcome); err != nil {
		fl.logAt(sevWarn, err.Error())
	}
}

func (fl *FileLogger) writeLevelLog(outcome models.LevelTestOutcome) error {
	fl.mu.Lock()
	defer fl.mu.Unlock()

	path := filepath.Join(fl.levelsDir, fmt.Sprintf("level-%d.log", outcome.LevelIndex))
	var b strings.Builder
	fmt.Fprintf(&b, "=== Level %d: %s ===\n", outcome.LevelIndex, outcome.LevelName)
	fmt.Fprintf(&b, "Result: %s\n", outcomeVerdict(outcome))
	fmt.Fprintf(&b, "Duration: %.1fs\n", outcome.Duration.Seconds())
	if outcome.Error != "" {
		fmt.Fprintf(&b, "\nError:\n%s\n", outcome.Error)
	}
	fmt.Fprintf(&b, "\nCompleted at: %s\n", time.Now().Format(time.RFC3339))

	if err := os.WriteFile(path, []byte(b.String()), 0644); err != nil {
		return fmt.Errorf("failed to write level log: %w", err)
	}
	return nil
}

// LogSummary logs the run summary at INFO level.
func (fl *FileLogger) LogSummary(report models.Report) {
	if !fl.enabled(sevInfo) {
		return
	}

	ts := timestamp()
	status := "SUCCESS"
	if report.Failed > 0 {
		if report.Passed == 0 {
			status = "FAILED"
		} else {
			status = "PARTIAL"
		}
	}

	fl.writeRunLog(fmt.Sprintf(
		"\n[%s] === VERIFICATION SUMMARY ===\n"+
			"[%s] Run ID:       %s\n"+
			"[%s] Levels:       %d\n"+
			"[%s] Passed:       %d\n"+
			"[%s] Failed:       %d\n"+
			"[%s] Total time:   %.1fs\n"+
			"[%s] Status:       %s (%d/%d levels passed)\n"+
			"[%s] Completed at: %s\n",
		ts, ts, report.RunID,
		ts, len(report.Outcomes),
		ts, report.Passed,
		ts, report.Failed,
		ts, report.Duration.Seconds(),
		ts, status, report.Passed, len(report.Outcomes),
		ts, time.Now().Format(time.RFC3339),
	))
}

// Close flushes and closes the run log file.
func (fl *FileLogger) Close() error {
	fl.mu.Lock()
	defer fl.mu.Unlock()

	if fl.runLog != nil {
		if err := fl.runLog.Sync(); err != nil {
			return fmt.Errorf("failed to sync run log: %w", err)
		}
		if err := fl.runLog.Close(); err != nil {
			return fmt.Errorf("failed to close run log: %w", err)
		}
		fl.runLog = nil
	}
	return nil
}

func (fl *FileLogger) writeRunLog(message string) {
	fl.mu.Lock()
	defer fl.mu.Unlock()

	if fl.runLog != nil {
		fl.runLog.WriteString(message)
		fl.runLog.Sync()
	}
}
