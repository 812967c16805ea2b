package logger

import "github.com/harrison/levelverify/internal/models"

// Logger is the set of events a verification run reports.
type Logger interface {
	LogDebug(message string)
	LogInfo(message string)
	LogWarn(message string)
	LogError(message string)
	LogLevelStart(index int, level models.Level)
	LogStateChange(index int, from, to models.OrchestratorState)
	LogLevelOutcome(outcome models.LevelTestOutcome)
	LogSummary(report models.Report)
}

// MultiLogger fans every event out to each of its loggers in order.
// Nil entries are skipped.
type MultiLogger []Logger

func (m MultiLogger) each(fn func(Logger)) {
	for _, l := range m {
		if l != nil {
			fn(l)
		}
	}
}

func (m MultiLogger) LogDebug(message string) { m.each(func(l Logger) { l.LogDebug(message) }) }
func (m MultiLogger) LogInfo(message string)  { m.each(func(l Logger) { l.LogInfo(message) }) }
func (m MultiLogger) LogWarn(message string)  { m.each(func(l Logger) { l.LogWarn(message) }) }
func (m MultiLogger) LogError(message string) { m.each(func(l Logger) { l.LogError(message) }) }

func (m MultiLogger) LogLevelStart(index int, level models.Level) {
	m.each(func(l Logger) { l.LogLevelStart(index, level) })
}

func (m MultiLogger) LogStateChange(index int, from, to models.OrchestratorState) {
	m.each(func(l Logger) { l.LogStateChange(index, from, to) })
}

func (m MultiLogger) LogLevelOutcome(outcome models.LevelTestOutcome) {
	m.each(func(l Logger) { l.LogLevelOutcome(outcome) })
}

func (m MultiLogger) LogSummary(report models.Report) {
	m.each(func(l Logger) { l.LogSummary(report) })
}
