package logger

import (
	"bytes"
	"os"
	"strings"
	"testing"
)

// TestLogLevelFiltering verifies that messages are filtered based on log level
func TestLogLevelFiltering(t *testing.T) {
	tests := []struct {
		name         string
		logLevel     string
		messageLevel string
		shouldAppear bool
	}{
		{name: "trace sees trace", logLevel: "trace", messageLevel: "trace", shouldAppear: true},
		{name: "trace sees error", logLevel: "trace", messageLevel: "error", shouldAppear: true},
		{name: "debug blocks trace", logLevel: "debug", messageLevel: "trace", shouldAppear: false},
		{name: "debug sees debug", logLevel: "debug", messageLevel: "debug", shouldAppear: true},
		{name: "info blocks debug", logLevel: "info", messageLevel: "debug", shouldAppear: false},
		{name: "info sees info", logLevel: "info", messageLevel: "info", shouldAppear: true},
		{name: "info sees warn", logLevel: "info", messageLevel: "warn", shouldAppear: true},
		{name: "warn blocks info", logLevel: "warn", messageLevel: "info", shouldAppear: false},
		{name: "warn sees error", logLevel: "warn", messageLevel: "error", shouldAppear: true},
		{name: "error blocks warn", logLevel: "error", messageLevel: "warn", shouldAppear: false},
		{name: "error sees error", logLevel: "error", messageLevel: "error", shouldAppear: true},
		{name: "invalid level defaults to info", logLevel: "loud", messageLevel: "debug", shouldAppear: false},
		{name: "level is case-insensitive", logLevel: " DEBUG ", messageLevel: "debug", shouldAppear: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			buf := &bytes.Buffer{}
			logger := NewConsoleLogger(buf, tt.logLevel)

			logAt(logger, tt.messageLevel, "the message")

			appeared := strings.Contains(buf.String(), "the message")
			if appeared != tt.shouldAppear {
				t.Errorf("level %q message at %q: appeared = %v, want %v (output %q)",
					tt.logLevel, tt.messageLevel, appeared, tt.shouldAppear, buf.String())
			}
		})
	}
}

func TestFileLoggerLevelFiltering(t *testing.T) {
	logDir := t.TempDir()
	logger, err := NewFileLoggerWithDirAndLevel(logDir, "warn")
	if err != nil {
		t.Fatalf("NewFileLoggerWithDirAndLevel() error = %v", err)
	}

	logger.LogInfo("quiet info")
	logger.LogWarn("loud warning")
	if err := logger.Close(); err != nil {
		t.Fatalf("Close() error = %v", err)
	}

	data, err := os.ReadFile(logger.RunFile())
	if err != nil {
		t.Fatalf("read run log: %v", err)
	}
	content := string(data)
	if strings.Contains(content, "quiet info") {
		t.Errorf("info message should be filtered at warn level")
	}
	if !strings.Contains(content, "[WARN] loud warning") {
		t.Errorf("expected warn message in run log, got:\n%s", content)
	}
}

type leveled interface {
	LogTrace(string)
	LogDebug(string)
	LogInfo(string)
	LogWarn(string)
	LogError(string)
}

func logAt(l leveled, level, msg string) {
	switch level {
	case "trace":
		l.LogTrace(msg)
	case "debug":
		l.LogDebug(msg)
	case "info":
		l.LogInfo(msg)
	case "warn":
		l.LogWarn(msg)
	case "error":
		l.LogError(msg)
	}
}

func TestParseSeverity(t *testing.T) {
	tests := map[string]severity{
		"trace":   sevTrace,
		"DEBUG":   sevDebug,
		" warn ":  sevWarn,
		"Error":   sevError,
		"":        sevInfo,
		"verbose": sevInfo,
	}
	for name, want := range tests {
		if got := parseSeverity(name); got != want {
			t.Errorf("parseSeverity(%q) = %v, want %v", name, got, want)
		}
	}
}
