// Package production contains the pure business logic for production
// runs: sufficiency analysis, preview assembly, the run state machine,
// and output item naming. This is part of the Functional Core - no I/O,
// only pure functions.
package production

import "time"

// RunStatus represents the possible states of a production run.
type RunStatus string

const (
	StatusInProgress RunStatus = "in_progress"
	StatusCompleted  RunStatus = "completed"
	StatusFailed     RunStatus = "failed"
)

// IsTerminal reports whether a run status is terminal. Terminal runs are
// never mutated again; a fresh run must be started instead.
func IsTerminal(s RunStatus) bool {
	return s == StatusCompleted || s == StatusFailed
}

// StatusTransitionResult contains the result of a status transition.
type StatusTransitionResult struct {
	NewStatus   RunStatus
	CompletedAt *time.Time // Set when transitioning to a terminal status
}

// ApplyStatusTransition applies a status transition and returns the result.
// Terminal transitions record the completion time; the caller passes the
// current time to enable testing.
func ApplyStatusTransition(newStatus RunStatus, now time.Time) StatusTransitionResult {
	result := StatusTransitionResult{NewStatus: newStatus}
	if IsTerminal(newStatus) {
		result.CompletedAt = &now
	}
	return result
}

// InitialStatus returns the status for a freshly created run. A run is
// created directly in progress; there is no persisted draft state.
func InitialStatus() RunStatus {
	return StatusInProgress
}
