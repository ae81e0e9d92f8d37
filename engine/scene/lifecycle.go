package scene

import (
	"sync"

	"github.com/pkg/errors"
)

// State is the lifecycle stage of a Scene.
type State int

const (
	// StateUninitialized is the state before Initialize succeeds.
	StateUninitialized State = iota
	// StateInitialized means every GPU resource exists but no frame has been drawn.
	StateInitialized
	// StateRunning is entered on the first Tick.
	StateRunning
	// StateShuttingDown is terminal; GPU resources have been released.
	StateShuttingDown
)

// ErrInvalidTransition is returned when a lifecycle step is requested from the wrong state.
var ErrInvalidTransition = errors.New("invalid lifecycle transition")

var stateNames = map[State]string{
	StateUninitialized: "uninitialized",
	StateInitialized:   "initialized",
	StateRunning:       "running",
	StateShuttingDown:  "shutting_down",
}

// String returns the lower-case name of the state.
func (s State) String() string {
	if name, ok := stateNames[s]; ok {
		return name
	}
	return "unknown"
}

// validTransitions lists the states reachable from each state.
var validTransitions = map[State][]State{
	StateUninitialized: {StateInitialized},
	StateInitialized:   {StateRunning, StateShuttingDown},
	StateRunning:       {StateShuttingDown},
}

// lifecycle guards the state machine shared by every Scene implementation.
type lifecycle struct {
	mu    sync.Mutex
	state State
}

func (l *lifecycle) State() State {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.state
}

// transition moves to the target state or returns ErrInvalidTransition.
func (l *lifecycle) transition(to State) error {
	l.mu.Lock()
	defer l.mu.Unlock()
	for _, next := range validTransitions[l.state] {
		if next == to {
			l.state = to
			return nil
		}
	}
	return errors.Wrapf(ErrInvalidTransition, "%s -> %s", l.state, to)
}
