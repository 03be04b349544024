package interpreter

// State is the lifecycle position of a run
type State int

const (
	// StatePending means no step has been attempted yet
	StatePending State = iota
	// StateRunning means a step is in progress
	StateRunning
	// StateCompleted means every step succeeded
	StateCompleted
	// StateAborted means a step failed and the run stopped
	StateAborted
)

func (s State) String() string {
	switch s {
	case StatePending:
		return "pending"
	case StateRunning:
		return "running"
	case StateCompleted:
		return "completed"
	case StateAborted:
		return "aborted"
	default:
		return "unknown"
	}
}

// Terminal reports whether no further transition can happen
func (s State) Terminal() bool {
	return s == StateCompleted || s == StateAborted
}
