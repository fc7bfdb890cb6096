// Package cli provides thin CLI adapters that translate between CLI concerns
// and application services. Adapters handle output formatting but delegate
// all business logic to services.
package cli

import (
	"context"
	"fmt"
	"io"

	"github.com/example/prepline/internal/ports/primary"
)

// CookAdapter is a thin adapter that translates CLI operations to the
// preview and production services. It depends only on the primary port
// interfaces, enabling easy testing with mocks.
type CookAdapter struct {
	previews   primary.PreviewService
	production primary.ProductionService
	out        io.Writer
}

// NewCookAdapter creates a new CookAdapter with the given services.
func NewCookAdapter(previews primary.PreviewService, production primary.ProductionService, out io.Writer) *CookAdapter {
	return &CookAdapter{
		previews:   previews,
		production: production,
		out:        out,
	}
}

// Preview renders the deduction preview for a recipe and returns it so
// the command layer can decide whether to prompt before executing.
func (a *CookAdapter) Preview(ctx context.Context, recipeID string) (*primary.Preview, error) {
	preview, err := a.previews.BuildPreview(ctx, recipeID)
	if err != nil {
		return nil, err
	}

	fmt.Fprintf(a.out, "\nRecipe: %s (%s)\n", preview.RecipeName, preview.RecipeID)
	if preview.OutputItemID != "" {
		name := preview.OutputItemName
		if name == "" {
			name = preview.OutputItemID
		}
		fmt.Fprintf(a.out, "Output: %s → %g %s\n", name, preview.OutputQuantity, preview.OutputUnit)
	} else {
		fmt.Fprintf(a.out, "Output: (new item will be created) → %g %s\n", preview.OutputQuantity, preview.OutputUnit)
	}

	fmt.Fprintf(a.out, "\n%-10s %-20s %12s %12s %10s %8s\n", "ITEM", "NAME", "NEEDED", "ON HAND", "COST", "")
	fmt.Fprintln(a.out, "────────────────────────────────────────────────────────────────────────────")
	for _, line := range preview.Lines {
		if line.ItemMissing {
			fmt.Fprintf(a.out, "%-10s %-20s %12s %12s %10s %8s\n",
				line.ItemID, "(missing)", formatQty(line.Quantity, line.Unit), "-", "-", "MISSING")
			continue
		}
		flags := ""
		if !line.Sufficient {
			flags = "SHORT"
		}
		if !line.Verified {
			if flags != "" {
				flags += ","
			}
			flags += "UNCONV"
		}
		fmt.Fprintf(a.out, "%-10s %-20s %12s %12s %10s %8s\n",
			line.ItemID,
			line.ItemName,
			formatQty(line.Deduction, line.NativeUnit),
			formatQty(line.CurrentStock, line.NativeUnit),
			fmt.Sprintf("$%.2f", line.LineCost),
			flags)
	}
	fmt.Fprintln(a.out, "────────────────────────────────────────────────────────────────────────────")
	fmt.Fprintf(a.out, "%-44s %10s\n", "Estimated batch cost", fmt.Sprintf("$%.2f", preview.TotalCost))

	if preview.HasMissingItems {
		fmt.Fprintln(a.out, "\n✗ Some ingredient items do not exist; cook will be rejected")
	}
	if preview.HasInsufficientStock {
		fmt.Fprintln(a.out, "\n! Stock is insufficient for at least one ingredient (cook still allowed)")
	}
	if preview.HasUnverifiedConversion {
		fmt.Fprintln(a.out, "! Some conversions could not be verified; quantities carried as-is")
	}
	fmt.Fprintln(a.out)

	return preview, nil
}

// Execute runs the quick cook and renders the outcome.
func (a *CookAdapter) Execute(ctx context.Context, recipeID string) error {
	result, err := a.production.ExecuteQuickCook(ctx, primary.ExecuteRequest{RecipeID: recipeID})
	if err != nil {
		return err
	}

	if !result.Success {
		if result.RunID != "" {
			fmt.Fprintf(a.out, "✗ Cook failed at %s (run %s left for reconciliation): %s\n",
				result.FailedStage, result.RunID, result.Message)
		} else {
			fmt.Fprintf(a.out, "✗ Cook failed at %s: %s\n", result.FailedStage, result.Message)
		}
		return fmt.Errorf("cook failed at stage %s", result.FailedStage)
	}

	fmt.Fprintf(a.out, "✓ Run %s completed: produced %g %s of %s (%s)\n",
		result.RunID, result.ProducedQuantity, result.ProducedUnit, result.OutputItemName, result.OutputItemID)
	fmt.Fprintf(a.out, "  Batch cost $%.2f\n", result.TotalCost)
	if result.HadInsufficientStock {
		fmt.Fprintln(a.out, "  ! Completed against insufficient stock; check levels")
	}
	if result.HadUnverifiedConversion {
		fmt.Fprintln(a.out, "  ! One or more conversions were unverified")
	}
	return nil
}

// Resolve resolves or creates the output item without cooking.
func (a *CookAdapter) Resolve(ctx context.Context, recipeID string) error {
	resolved, err := a.production.ResolveOutput(ctx, recipeID)
	if err != nil {
		return err
	}

	switch {
	case resolved.Created:
		fmt.Fprintf(a.out, "✓ Created output item %s: %s\n", resolved.ItemID, resolved.ItemName)
	case resolved.Adopted:
		fmt.Fprintf(a.out, "✓ Adopted existing item %s: %s\n", resolved.ItemID, resolved.ItemName)
	default:
		fmt.Fprintf(a.out, "✓ Recipe already linked to %s\n", resolved.ItemID)
	}
	if !resolved.LinkPersisted {
		fmt.Fprintln(a.out, "! Recipe link could not be saved; the next cook will adopt the same item")
	}
	return nil
}

func formatQty(qty float64, unit string) string {
	return fmt.Sprintf("%g %s", qty, unit)
}
