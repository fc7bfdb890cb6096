package sqlite

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/example/prepline/internal/ports/secondary"
)

// Ledger implements secondary.InventoryLedger with SQLite. CompleteRun is
// the engine's sole atomic step: every deduction, the output credit, the
// movement trail, and the run's terminal status commit as one
// transaction, or nothing does.
//
// Policy: stock is allowed to go negative. Insufficiency is advisory at
// preview time; the ledger records whatever the kitchen actually did.
type Ledger struct {
	db *sql.DB
}

// NewLedger creates a new SQLite inventory ledger.
func NewLedger(db *sql.DB) *Ledger {
	return &Ledger{db: db}
}

// CompleteRun atomically completes a production run.
func (l *Ledger) CompleteRun(ctx context.Context, req secondary.CompleteRunRequest) error {
	tx, err := l.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin completion: %w", err)
	}
	defer tx.Rollback()

	// Re-check status inside the transaction. A run completed by an
	// earlier ambiguous attempt surfaces as ErrRunNotInProgress, which
	// callers resolve by re-reading the run instead of recompleting.
	var status string
	err = tx.QueryRowContext(ctx,
		"SELECT status FROM production_runs WHERE id = ?", req.RunID,
	).Scan(&status)
	if err == sql.ErrNoRows {
		return fmt.Errorf("run %s: %w", req.RunID, secondary.ErrNotFound)
	}
	if err != nil {
		return fmt.Errorf("failed to check run status: %w", err)
	}
	if status != "in_progress" {
		return fmt.Errorf("run %s has status %s: %w", req.RunID, status, secondary.ErrRunNotInProgress)
	}

	// Deduct every ingredient and record the movement at its current
	// unit cost.
	for _, line := range req.Consumption {
		if err := l.moveStock(ctx, tx, req.RunID, line.ItemID, -line.Quantity, line.Unit); err != nil {
			return err
		}
	}

	// Credit the output item with the yield.
	if err := l.moveStock(ctx, tx, req.RunID, req.OutputItemID, req.YieldQuantity, req.YieldUnit); err != nil {
		return err
	}

	// Mark the run completed.
	_, err = tx.ExecContext(ctx,
		"UPDATE production_runs SET status = 'completed', completed_at = CURRENT_TIMESTAMP WHERE id = ?",
		req.RunID,
	)
	if err != nil {
		return fmt.Errorf("failed to complete run: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit completion: %w", err)
	}
	return nil
}

// moveStock applies one signed stock mutation and writes its audit row.
func (l *Ledger) moveStock(ctx context.Context, tx *sql.Tx, runID, itemID string, quantity float64, unit string) error {
	result, err := tx.ExecContext(ctx,
		"UPDATE items SET stock_level = stock_level + ?, updated_at = CURRENT_TIMESTAMP WHERE id = ?",
		quantity, itemID,
	)
	if err != nil {
		return fmt.Errorf("failed to move stock for %s: %w", itemID, err)
	}
	rowsAffected, _ := result.RowsAffected()
	if rowsAffected == 0 {
		return fmt.Errorf("item %s: %w", itemID, secondary.ErrNotFound)
	}

	_, err = tx.ExecContext(ctx,
		`INSERT INTO stock_movements (run_id, item_id, quantity, unit, unit_cost)
		 SELECT ?, id, ?, ?, COALESCE(cost_per_unit, 0) FROM items WHERE id = ?`,
		runID, quantity, unit, itemID,
	)
	if err != nil {
		return fmt.Errorf("failed to record movement for %s: %w", itemID, err)
	}

	return nil
}

// Ensure Ledger implements the interface
var _ secondary.InventoryLedger = (*Ledger)(nil)
