package secondary

import (
	"context"
	"errors"
)

// ErrRunNotInProgress indicates CompleteRun was invoked on a run that is
// not in_progress. A completed run returning this lets callers resolve an
// ambiguous earlier completion by re-checking run status instead of
// blindly recompleting.
var ErrRunNotInProgress = errors.New("run is not in progress")

// InventoryLedger defines the secondary port for atomic stock mutation.
// This is the sole strong consistency boundary of the engine: CompleteRun
// either applies every deduction, the output credit, the movement trail,
// and the run's terminal status as one unit of work, or applies nothing.
type InventoryLedger interface {
	// CompleteRun atomically completes a production run. No partial
	// result is ever reported; on error the store is unchanged.
	CompleteRun(ctx context.Context, req CompleteRunRequest) error
}

// CompleteRunRequest carries everything the ledger needs to complete a
// run in one unit of work.
type CompleteRunRequest struct {
	RunID         string
	OutputItemID  string
	YieldQuantity float64
	YieldUnit     string
	Consumption   []ConsumptionLine
}

// ConsumptionLine is one native-unit stock deduction.
type ConsumptionLine struct {
	ItemID   string
	Quantity float64
	Unit     string
}
