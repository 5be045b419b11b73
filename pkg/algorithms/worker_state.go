package algorithms

import "fmt"

// State is a position in the worker's per-round state machine
type State int

const (
	StateWaitCompute State = iota
	StateCompute
	StateWaitStore
	StateStore
	StateWaitCheck
	StateExit
)

func (s State) String() string {
	switch s {
	case StateWaitCompute:
		return "WaitCompute"
	case StateCompute:
		return "Compute"
	case StateWaitStore:
		return "WaitStore"
	case StateStore:
		return "Store"
	case StateWaitCheck:
		return "WaitCheck"
	case StateExit:
		return "Exit"
	default:
		return fmt.Sprintf("State(%d)", int(s))
	}
}

// StabilityCheck selects what a worker compares its fresh votes against
type StabilityCheck string

const (
	// StabilityTwoRound compares against the labels overwritten by the previous
	// store, i.e. the votes from two rounds back. Period-two oscillations
	// therefore count as stable.
	StabilityTwoRound StabilityCheck = "two-round"
	// StabilityOneRound compares against the currently committed labels
	StabilityOneRound StabilityCheck = "one-round"
)

// StabilityChecks lists the accepted stability check names
var StabilityChecks = []string{string(StabilityTwoRound), string(StabilityOneRound)}

func (s StabilityCheck) valid() bool {
	return s == StabilityTwoRound || s == StabilityOneRound
}
