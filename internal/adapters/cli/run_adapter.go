package cli

import (
	"context"
	"fmt"
	"io"

	"github.com/example/prepline/internal/ports/primary"
)

// RunAdapter is a thin adapter that translates CLI operations to
// ProductionService run queries and the reconciliation sweep.
type RunAdapter struct {
	production primary.ProductionService
	reconcile  primary.ReconcileService
	out        io.Writer
}

// NewRunAdapter creates a new RunAdapter with the given services.
func NewRunAdapter(production primary.ProductionService, reconcile primary.ReconcileService, out io.Writer) *RunAdapter {
	return &RunAdapter{
		production: production,
		reconcile:  reconcile,
		out:        out,
	}
}

// List lists runs with optional filters.
func (a *RunAdapter) List(ctx context.Context, recipeID, status string, limit int) error {
	runs, err := a.production.ListRuns(ctx, primary.RunFilters{
		RecipeID: recipeID,
		Status:   status,
		Limit:    limit,
	})
	if err != nil {
		return fmt.Errorf("failed to list runs: %w", err)
	}

	if len(runs) == 0 {
		fmt.Fprintln(a.out, "No runs found")
		return nil
	}

	fmt.Fprintf(a.out, "\n%-10s %-10s %-12s %-15s %s\n", "ID", "RECIPE", "STATUS", "CREATED BY", "CREATED")
	fmt.Fprintln(a.out, "────────────────────────────────────────────────────────────────")
	for _, r := range runs {
		fmt.Fprintf(a.out, "%-10s %-10s %-12s %-15s %s\n", r.ID, r.RecipeID, r.Status, r.CreatedBy, r.CreatedAt)
	}
	fmt.Fprintln(a.out)

	return nil
}

// Show displays one run with its consumption rows.
func (a *RunAdapter) Show(ctx context.Context, runID string) error {
	run, err := a.production.GetRun(ctx, runID)
	if err != nil {
		return err
	}

	fmt.Fprintf(a.out, "\nRun:     %s\n", run.ID)
	fmt.Fprintf(a.out, "Recipe:  %s\n", run.RecipeID)
	fmt.Fprintf(a.out, "Status:  %s\n", run.Status)
	fmt.Fprintf(a.out, "Yield:   %g %s\n", run.YieldQuantity, run.YieldUnit)
	fmt.Fprintf(a.out, "By:      %s\n", run.CreatedBy)
	fmt.Fprintf(a.out, "Created: %s\n", run.CreatedAt)
	if run.CompletedAt != "" {
		fmt.Fprintf(a.out, "Ended:   %s\n", run.CompletedAt)
	}
	if run.FailureReason != "" {
		fmt.Fprintf(a.out, "Reason:  %s\n", run.FailureReason)
	}

	rows, err := a.production.GetRunIngredients(ctx, runID)
	if err != nil {
		return err
	}
	if len(rows) == 0 {
		fmt.Fprintln(a.out, "\n(no consumption rows recorded)")
		return nil
	}

	fmt.Fprintf(a.out, "\n%-10s %12s %12s %10s\n", "ITEM", "EXPECTED", "ACTUAL", "VARIANCE")
	for _, row := range rows {
		fmt.Fprintf(a.out, "%-10s %12s %12s %9.1f%%\n",
			row.ItemID,
			formatQty(row.ExpectedQty, row.Unit),
			formatQty(row.ActualQty, row.Unit),
			row.VariancePercent)
	}
	fmt.Fprintln(a.out)

	return nil
}

// Sweep runs the orphaned-run reconciliation and reports what it touched.
func (a *RunAdapter) Sweep(ctx context.Context, req primary.SweepRequest) error {
	result, err := a.reconcile.Sweep(ctx, req)
	if err != nil {
		return fmt.Errorf("sweep failed: %w", err)
	}

	if result.Examined == 0 {
		fmt.Fprintln(a.out, "✓ No orphaned runs")
		return nil
	}

	fmt.Fprintf(a.out, "✓ Examined %d orphaned run(s), marked %d failed\n", result.Examined, result.MarkedFailed)
	for _, id := range result.FailedRunIDs {
		fmt.Fprintf(a.out, "  - %s\n", id)
	}
	return nil
}
