package models

// OrchestratorState is the phase the level test orchestrator is in.
type OrchestratorState int

const (
	StateLoading OrchestratorState = iota
	StateInputtingSolution
	StateExecutingCode
	StateWaitingForCompletion
	StateLevelComplete
	StateNextLevel
	StateTestsComplete
)

func (s OrchestratorState) String() string {
	switch s {
	case StateLoading:
		return "Loading"
	case StateInputtingSolution:
		return "InputtingSolution"
	case StateExecutingCode:
		return "ExecutingCode"
	case StateWaitingForCompletion:
		return "WaitingForCompletion"
	case StateLevelComplete:
		return "LevelComplete"
	case StateNextLevel:
		return "NextLevel"
	case StateTestsComplete:
		return "TestsComplete"
	default:
		return "Unknown"
	}
}

// Description is the overlay text shown while in the state.
func (s OrchestratorState) Description() string {
	switch s {
	case StateLoading:
		return "Loading level..."
	case StateInputtingSolution:
		return "Typing solution into editor..."
	case StateExecutingCode:
		return "Executing code..."
	case StateWaitingForCompletion:
		return "Waiting for completion..."
	case StateLevelComplete:
		return "Level completed!"
	case StateNextLevel:
		return "Loading next level..."
	case StateTestsComplete:
		return "All levels tested!"
	default:
		return ""
	}
}
