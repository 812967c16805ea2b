package models

import (
	"fmt"
	"strings"
)

// ActionKind identifies the semantic robot command an Action represents.
type ActionKind int

const (
	ActionUnknown ActionKind = iota
	ActionMove
	ActionScan
	ActionGrab
	ActionOpenDoor
	ActionWait
)

func (k ActionKind) String() string {
	switch k {
	case ActionMove:
		return "Move"
	case ActionScan:
		return "Scan"
	case ActionGrab:
		return "Grab"
	case ActionOpenDoor:
		return "OpenDoor"
	case ActionWait:
		return "Wait"
	default:
		return "Unknown"
	}
}

// Action is one robot command recovered from source text. Actions are
// created by the extractor and never modified afterwards.
type Action struct {
	Kind      ActionKind
	Direction Direction // only meaningful for Move and Scan
	Raw       string    // the matched call text, e.g. `move("right")`
}

// String renders the action the way it appears in a session's raw trace.
func (a Action) String() string {
	switch a.Kind {
	case ActionMove, ActionScan:
		return fmt.Sprintf("%s{%s}", a.Kind, a.Direction)
	default:
		return a.Kind.String()
	}
}

// Trace renders an ordered action list as a debug string.
func Trace(actions []Action) string {
	parts := make([]string, len(actions))
	for i, a := range actions {
		parts[i] = a.String()
	}
	return "[" + strings.Join(parts, ", ") + "]"
}
