package logger

import (
	"strings"

	"github.com/fatih/color"
)

// severity orders log levels. A logger drops messages below its threshold.
type severity int

const (
	sevTrace severity = iota
	sevDebug
	sevInfo
	sevWarn
	sevError
)

var severityNames = []string{"TRACE", "DEBUG", "INFO", "WARN", "ERROR"}

var severityColors = []color.Attribute{color.FgHiBlack, color.FgCyan, color.FgBlue, color.FgYellow, color.FgRed}

// parseSeverity maps a level name, case-insensitively, to its severity.
// Empty and unknown names mean info.
func parseSeverity(name string) severity {
	name = strings.ToUpper(strings.TrimSpace(name))
	for i, n := range severityNames {
		if n == name {
			return severity(i)
		}
	}
	return sevInfo
}

func (s severity) String() string { return severityNames[s] }

func (s severity) colored() string {
	return color.New(severityColors[s]).Sprint(severityNames[s])
}
