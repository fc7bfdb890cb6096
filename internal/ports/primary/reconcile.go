package primary

import (
	"context"
	"time"
)

// ReconcileService defines the primary port for the orphaned-run sweep.
// The engine performs no in-process rollback; runs stranded in_progress
// by a partial failure are converged to failed here instead.
type ReconcileService interface {
	// Sweep marks orphaned in_progress runs as failed and reports what
	// it touched.
	Sweep(ctx context.Context, req SweepRequest) (*SweepResult, error)
}

// SweepRequest contains parameters for a reconciliation sweep.
type SweepRequest struct {
	// OlderThan is the minimum age before an in_progress run with
	// ingredient rows is considered stale. Runs with zero ingredient
	// rows are swept regardless of age.
	OlderThan time.Duration
}

// SweepResult reports the outcome of a sweep.
type SweepResult struct {
	Examined     int
	MarkedFailed int
	FailedRunIDs []string
}
