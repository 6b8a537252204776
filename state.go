package singleton

import (
	"sync/atomic"
)

// State represents the initialization state of a [Singleton].
//
// State Machine:
//
//	StateUninitialized (0) → StateInitializing (1) [first access, via CAS]
//	StateInitializing (1) → StateInitialized (2)   [constructor returned]
//	StateInitialized (2) → (terminal)
//
// There are no backward transitions. In particular, a constructor that
// panics leaves the state at StateInitializing, permanently, see [NewLazy].
type State uint32

const (
	// StateUninitialized indicates no constructor has started.
	StateUninitialized State = 0
	// StateInitializing indicates an accessor claimed construction, but has
	// not yet published a value.
	StateInitializing State = 1
	// StateInitialized indicates the value is constructed and visible.
	StateInitialized State = 2
)

// String returns a human-readable representation of the state.
func (s State) String() string {
	switch s {
	case StateUninitialized:
		return "Uninitialized"
	case StateInitializing:
		return "Initializing"
	case StateInitialized:
		return "Initialized"
	default:
		return "Unknown"
	}
}

// stateCell is a lock-free state machine with cache-line padding.
//
// Cache-line padding prevents false sharing between cores, which matters
// because the cell is polled in a busy loop while another goroutine runs the
// constructor.
type stateCell struct { // betteralign:ignore
	_ [64]byte      // Cache line padding (before value) //nolint:unused
	v atomic.Uint32 // State value
	_ [60]byte      // Pad to complete cache line (64 - 4 = 60) //nolint:unused
}

// Load returns the current state atomically.
func (s *stateCell) Load() State {
	return State(s.v.Load())
}

// Store atomically stores a new state, without transition validation.
// Callers only Store irreversible states; use TryTransition for claims.
func (s *stateCell) Store(state State) {
	s.v.Store(uint32(state))
}

// TryTransition attempts to atomically transition from one state to another.
// Returns true if the transition was successful.
func (s *stateCell) TryTransition(from, to State) bool {
	return s.v.CompareAndSwap(uint32(from), uint32(to))
}

// Initialized returns true if the current state is terminal (Initialized).
func (s *stateCell) Initialized() bool {
	return s.Load() == StateInitialized
}
