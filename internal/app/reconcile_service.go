package app

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/example/prepline/internal/ports/primary"
	"github.com/example/prepline/internal/ports/secondary"
)

// failureReasonOrphaned is recorded on runs converged to failed by the
// sweep. Kept stable so operators can filter on it.
const failureReasonOrphaned = "orphaned by interrupted execution"

// sweepConcurrency bounds parallel MarkFailed calls during a sweep.
const sweepConcurrency = 4

// ReconcileServiceImpl implements the ReconcileService interface.
type ReconcileServiceImpl struct {
	runRepo secondary.ProductionRunRepository

	now func() time.Time
}

// NewReconcileService creates a new ReconcileService with injected dependencies.
func NewReconcileService(runRepo secondary.ProductionRunRepository) *ReconcileServiceImpl {
	return &ReconcileServiceImpl{
		runRepo: runRepo,
		now:     time.Now,
	}
}

// Sweep finds in_progress runs stranded by a partial failure and marks
// them failed. A run that completes between listing and marking is
// skipped, not an error; the conditional update in the store guarantees
// a terminal run is never overwritten.
func (s *ReconcileServiceImpl) Sweep(ctx context.Context, req primary.SweepRequest) (*primary.SweepResult, error) {
	cutoff := s.now().Add(-req.OlderThan)

	orphans, err := s.runRepo.ListOrphans(ctx, cutoff)
	if err != nil {
		return nil, fmt.Errorf("failed to list orphaned runs: %w", err)
	}

	result := &primary.SweepResult{Examined: len(orphans)}

	var mu sync.Mutex
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(sweepConcurrency)

	for _, run := range orphans {
		run := run
		g.Go(func() error {
			err := s.runRepo.MarkFailed(gctx, run.ID, s.now(), failureReasonOrphaned)
			if errors.Is(err, secondary.ErrRunNotInProgress) {
				// Raced a concurrent completion or another sweep.
				return nil
			}
			if err != nil {
				return fmt.Errorf("failed to mark run %s: %w", run.ID, err)
			}

			mu.Lock()
			result.MarkedFailed++
			result.FailedRunIDs = append(result.FailedRunIDs, run.ID)
			mu.Unlock()
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return result, nil
}

// Ensure ReconcileServiceImpl implements the interface
var _ primary.ReconcileService = (*ReconcileServiceImpl)(nil)
