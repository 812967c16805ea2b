package executor

import "fmt"

// Nil-safe logging helpers. Sessions and the orchestrator accept a nil Logger
// and use these instead of guarding every call.

func gracefulDebug(logger Logger, format string, args ...interface{}) {
	if logger != nil {
		logger.LogDebug(fmt.Sprintf(format, args...))
	}
}

func gracefulInfo(logger Logger, format string, args ...interface{}) {
	if logger != nil {
		logger.LogInfo(fmt.Sprintf(format, args...))
	}
}

func gracefulWarn(logger Logger, format string, args ...interface{}) {
	if logger != nil {
		logger.LogWarn(fmt.Sprintf(format, args...))
	}
}
