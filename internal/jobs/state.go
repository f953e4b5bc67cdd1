// Package jobs provides job ID generation, lifecycle management, and the
// in-memory job store.
package jobs

import (
	"errors"
	"fmt"
	"sync"
)

// State represents the lifecycle state of an enrichment job.
type State int

const (
	// StateProcessing - Providers are being collected, no report yet.
	StateProcessing State = iota
	// StateAwaitingVision - A degraded report exists, a vision call is in flight.
	StateAwaitingVision
	// StateComplete - Final report produced. Terminal.
	StateComplete
	// StateFailed - Job failed before any report could be produced.
	// This is a terminal state. "Silence > bad data"
	StateFailed
)

// String returns the string representation of the state.
func (s State) String() string {
	switch s {
	case StateProcessing:
		return "PROCESSING"
	case StateAwaitingVision:
		return "AWAITING_VISION"
	case StateComplete:
		return "COMPLETE"
	case StateFailed:
		return "FAILED"
	default:
		return fmt.Sprintf("UNKNOWN(%d)", s)
	}
}

// IsTerminal returns true if the state is terminal (COMPLETE or FAILED).
func (s State) IsTerminal() bool {
	return s == StateComplete || s == StateFailed
}

// Errors for invalid state transitions.
var (
	ErrJobFinished      = errors.New("job already finished")
	ErrVisionNotPending = errors.New("no vision call pending for this job")
)

// Lifecycle manages the state machine for a single job.
// Thread-safe for concurrent access.
//
// State transitions:
//
//	PROCESSING → AWAITING_VISION → COMPLETE
//	     │               │
//	     └───────────────┴── Fail() ──→ FAILED
//
// Rules:
//   - PROCESSING: can move to AWAITING_VISION (vision dispatched) or COMPLETE
//   - AWAITING_VISION: a degraded report exists; can complete or fail
//   - COMPLETE: Complete() is idempotent, everything else is rejected
//   - FAILED: all transitions are rejected
type Lifecycle struct {
	mu    sync.RWMutex
	jobId string
	state State
}

// NewLifecycle creates a new job lifecycle in PROCESSING state.
func NewLifecycle(jobId string) *Lifecycle {
	return &Lifecycle{
		jobId: jobId,
		state: StateProcessing,
	}
}

// JobId returns the job ID.
func (l *Lifecycle) JobId() string {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return l.jobId
}

// State returns the current state.
func (l *Lifecycle) State() State {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return l.state
}

// IsFinished returns true if the job is in a terminal state.
func (l *Lifecycle) IsFinished() bool {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return l.state.IsTerminal()
}

// IsAwaitingVision returns true if a vision call is still in flight.
func (l *Lifecycle) IsAwaitingVision() bool {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return l.state == StateAwaitingVision
}

// AwaitVision transitions PROCESSING → AWAITING_VISION after a degraded
// report was produced with a vision call still pending.
func (l *Lifecycle) AwaitVision() error {
	l.mu.Lock()
	defer l.mu.Unlock()

	switch l.state {
	case StateProcessing:
		l.state = StateAwaitingVision
		return nil
	case StateAwaitingVision:
		return ErrVisionNotPending
	case StateComplete, StateFailed:
		return ErrJobFinished
	default:
		return fmt.Errorf("unexpected state: %v", l.state)
	}
}

// Complete transitions the job to COMPLETE. Idempotent: completing an
// already-complete job is a no-op. Completing a failed job is rejected.
//
// Returns true only for the call that performed the transition, so
// concurrent completions resolve to exactly one winner and terminal
// side effects (metrics, events) run once.
func (l *Lifecycle) Complete() (bool, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	switch l.state {
	case StateProcessing, StateAwaitingVision:
		l.state = StateComplete
		return true, nil
	case StateComplete:
		return false, nil
	case StateFailed:
		return false, ErrJobFinished
	default:
		return false, fmt.Errorf("unexpected state: %v", l.state)
	}
}

// Fail transitions the job to FAILED.
// Use when no report can be produced at all. "Silence > bad data" - a job
// that already holds a degraded report completes with it instead of failing.
//
// Returns true if the job was failed, false if already in a terminal state.
func (l *Lifecycle) Fail() bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.state.IsTerminal() {
		return false // Already in terminal state
	}
	l.state = StateFailed
	return true
}
