package models

// EventKind classifies a captured output event.
type EventKind int

const (
	EventStdout EventKind = iota
	EventStderr
	EventPanic
	EventRobotAction
	EventInfo
)

func (k EventKind) String() string {
	switch k {
	case EventStdout:
		return "stdout"
	case EventStderr:
		return "stderr"
	case EventPanic:
		return "panic"
	case EventRobotAction:
		return "robot"
	case EventInfo:
		return "info"
	default:
		return "unknown"
	}
}

// OutputEvent is one message captured while running a solution.
type OutputEvent struct {
	Kind EventKind
	Text string
}

// Title is the heading the game shows above this kind of message.
func (e OutputEvent) Title() string {
	switch e.Kind {
	case EventStdout:
		return "Program Output"
	case EventStderr:
		return "Error Output"
	case EventPanic:
		return "Panic"
	case EventRobotAction:
		return "Robot Action Results"
	default:
		return "Info"
	}
}

// StdoutEvent builds a Stdout event.
func StdoutEvent(text string) OutputEvent { return OutputEvent{Kind: EventStdout, Text: text} }

// StderrEvent builds a Stderr event.
func StderrEvent(text string) OutputEvent { return OutputEvent{Kind: EventStderr, Text: text} }

// RobotActionEvent builds a RobotAction event.
func RobotActionEvent(text string) OutputEvent {
	return OutputEvent{Kind: EventRobotAction, Text: text}
}
