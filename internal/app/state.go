package app

import (
	"fmt"
	"sync"
)

// State is the application lifecycle state.
type State int

const (
	StateStopped State = iota
	StateStarting
	StateRunning
	StateStopping
)

func (s State) String() string {
	switch s {
	case StateStopped:
		return "stopped"
	case StateStarting:
		return "starting"
	case StateRunning:
		return "running"
	case StateStopping:
		return "stopping"
	default:
		return "unknown"
	}
}

// validTransitions encodes stopped -> starting -> running -> stopping ->
// stopped. A failed startup moves starting -> stopping directly so teardown
// runs through the same path.
var validTransitions = map[State][]State{
	StateStopped:  {StateStarting},
	StateStarting: {StateRunning, StateStopping},
	StateRunning:  {StateStopping},
	StateStopping: {StateStopped},
}

// Lifecycle is a guarded state machine. An invalid transition is a
// programming error and is surfaced, never silently absorbed.
type Lifecycle struct {
	mu    sync.Mutex
	state State
}

func NewLifecycle() *Lifecycle {
	return &Lifecycle{state: StateStopped}
}

func (l *Lifecycle) State() State {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.state
}

func (l *Lifecycle) To(next State) error {
	l.mu.Lock()
	defer l.mu.Unlock()
	for _, allowed := range validTransitions[l.state] {
		if allowed == next {
			l.state = next
			return nil
		}
	}
	return fmt.Errorf("app: invalid lifecycle transition %s -> %s", l.state, next)
}
