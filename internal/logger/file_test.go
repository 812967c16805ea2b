package logger

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/harrison/levelverify/internal/models"
)

func newTestFileLogger(t *testing.T, level string) (*FileLogger, string) {
	t.Helper()
	logDir := t.TempDir()
	logger, err := NewFileLoggerWithDirAndLevel(logDir, level)
	if err != nil {
		t.Fatalf("NewFileLoggerWithDirAndLevel() error = %v", err)
	}
	t.Cleanup(func() { logger.Close() })
	return logger, logDir
}

func readLog(t *testing.T, path string) string {
	t.Helper()
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read %s: %v", path, err)
	}
	return string(data)
}

// TestLogDirectoryCreation verifies the default .levelverify/logs/ directory is created
func TestLogDirectoryCreation(t *testing.T) {
	tmpDir := t.TempDir()
	t.Chdir(tmpDir)

	logger, err := NewFileLogger()
	if err != nil {
		t.Fatalf("NewFileLogger() error = %v", err)
	}
	defer logger.Close()

	for _, dir := range []string{
		filepath.Join(tmpDir, ".levelverify", "logs"),
		filepath.Join(tmpDir, ".levelverify", "logs", "levels"),
	} {
		if _, err := os.Stat(dir); os.IsNotExist(err) {
			t.Errorf("Expected directory %s to exist", dir)
		}
	}
}

func TestRunLogHeaderAndSymlink(t *testing.T) {
	logger, logDir := newTestFileLogger(t, "info")

	if !strings.HasPrefix(filepath.Base(logger.RunFile()), "run-") {
		t.Errorf("unexpected run file name %q", logger.RunFile())
	}

	target, err := os.Readlink(filepath.Join(logDir, "latest.log"))
	if err != nil {
		t.Fatalf("Readlink(latest.log) error = %v", err)
	}
	if target != filepath.Base(logger.RunFile()) {
		t.Errorf("latest.log -> %q, want %q", target, filepath.Base(logger.RunFile()))
	}

	if content := readLog(t, logger.RunFile()); !strings.Contains(content, "=== Level Verification Run Log ===") {
		t.Errorf("missing header in run log:\n%s", content)
	}
}

// TestSymlinkReplaced verifies a second logger repoints latest.log.
func TestSymlinkReplaced(t *testing.T) {
	logDir := t.TempDir()
	if err := os.WriteFile(filepath.Join(logDir, "run-old.log"), nil, 0644); err != nil {
		t.Fatal(err)
	}
	if err := os.Symlink("run-old.log", filepath.Join(logDir, "latest.log")); err != nil {
		t.Fatal(err)
	}

	logger, err := NewFileLoggerWithDirAndLevel(logDir, "info")
	if err != nil {
		t.Fatalf("NewFileLoggerWithDirAndLevel() error = %v", err)
	}
	defer logger.Close()

	target, _ := os.Readlink(filepath.Join(logDir, "latest.log"))
	if target == "run-old.log" {
		t.Errorf("latest.log still points at the old run")
	}
}

func TestFileLoggerLevelEvents(t *testing.T) {
	logger, logDir := newTestFileLogger(t, "trace")

	level := models.Level{Name: "Doors and Scanning", Width: 6, Height: 6, CompletionFlag: "items_collected:1", Items: []models.Item{{Name: "key"}}}
	logger.LogLevelStart(4, level)
	logger.LogStateChange(4, models.StateLoading, models.StateInputtingSolution)
	logger.LogLevelOutcome(models.LevelTestOutcome{
		LevelName:  level.Name,
		LevelIndex: 4,
		Error:      "completion timeout: execution did not finish within 5s",
		Duration:   5200 * time.Millisecond,
	})
	logger.LogSummary(models.NewReport("run-xyz", []models.LevelTestOutcome{{LevelIndex: 4, Error: "x"}}, 6*time.Second))

	runLog := readLog(t, logger.RunFile())
	for _, want := range []string{
		`Starting level 4: Doors and Scanning (6x6 grid, 1 item, flag "items_collected:1")`,
		"Level 4: " + models.StateLoading.String() + " -> " + models.StateInputtingSolution.String(),
		"Level 4 (Doors and Scanning) FAIL in 5.2s: completion timeout",
		"=== VERIFICATION SUMMARY ===",
		"Run ID:       run-xyz",
		"Status:       FAILED (0/1 levels passed)",
	} {
		if !strings.Contains(runLog, want) {
			t.Errorf("expected %q in run log:\n%s", want, runLog)
		}
	}

	levelLog := readLog(t, filepath.Join(logDir, "levels", "level-4.log"))
	for _, want := range []string{
		"=== Level 4: Doors and Scanning ===",
		"Result: FAIL",
		"Duration: 5.2s",
		"completion timeout: execution did not finish within 5s",
	} {
		if !strings.Contains(levelLog, want) {
			t.Errorf("expected %q in level log:\n%s", want, levelLog)
		}
	}
}

func TestFileLoggerStateChangesNeedTrace(t *testing.T) {
	logger, _ := newTestFileLogger(t, "debug")
	logger.LogStateChange(0, models.StateLoading, models.StateInputtingSolution)

	if strings.Contains(readLog(t, logger.RunFile()), "->") {
		t.Errorf("state changes should only be written at trace level")
	}
}

func TestFileLoggerSummaryStatus(t *testing.T) {
	tests := []struct {
		name     string
		outcomes []models.LevelTestOutcome
		want     string
	}{
		{"all pass", []models.LevelTestOutcome{{Success: true}, {Success: true}}, "SUCCESS (2/2 levels passed)"},
		{"partial", []models.LevelTestOutcome{{Success: true}, {Error: "x"}}, "PARTIAL (1/2 levels passed)"},
		{"empty run", nil, "SUCCESS (0/0 levels passed)"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			logger, _ := newTestFileLogger(t, "info")
			logger.LogSummary(models.NewReport("r", tt.outcomes, time.Second))
			if content := readLog(t, logger.RunFile()); !strings.Contains(content, tt.want) {
				t.Errorf("expected %q in run log:\n%s", tt.want, content)
			}
		})
	}
}

func TestFileLoggerCloseTwice(t *testing.T) {
	logger, _ := newTestFileLogger(t, "info")
	if err := logger.Close(); err != nil {
		t.Fatalf("first Close() error = %v", err)
	}
	if err := logger.Close(); err != nil {
		t.Errorf("second Close() error = %v", err)
	}
	// Writes after close are dropped.
	logger.LogInfo("after close")
}
