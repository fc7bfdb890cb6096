package cli

import (
	"context"
	"fmt"
	"io"

	"github.com/example/prepline/internal/ports/primary"
)

// CatalogAdapter is a thin adapter for item and recipe reads plus the
// manual output link.
type CatalogAdapter struct {
	inventory primary.InventoryService
	recipes   primary.RecipeService
	out       io.Writer
}

// NewCatalogAdapter creates a new CatalogAdapter with the given services.
func NewCatalogAdapter(inventory primary.InventoryService, recipes primary.RecipeService, out io.Writer) *CatalogAdapter {
	return &CatalogAdapter{
		inventory: inventory,
		recipes:   recipes,
		out:       out,
	}
}

// ListItems lists inventory items with an optional name filter.
func (a *CatalogAdapter) ListItems(ctx context.Context, nameContains string, limit int) error {
	items, err := a.inventory.ListItems(ctx, primary.ItemFilters{
		NameContains: nameContains,
		Limit:        limit,
	})
	if err != nil {
		return fmt.Errorf("failed to list items: %w", err)
	}

	if len(items) == 0 {
		fmt.Fprintln(a.out, "No items found")
		return nil
	}

	fmt.Fprintf(a.out, "\n%-10s %-25s %-8s %12s %10s\n", "ID", "NAME", "UNIT", "STOCK", "COST/UNIT")
	fmt.Fprintln(a.out, "────────────────────────────────────────────────────────────────────")
	for _, item := range items {
		fmt.Fprintf(a.out, "%-10s %-25s %-8s %12g %10s\n",
			item.ID, item.Name, item.NativeUnit, item.StockLevel, fmt.Sprintf("$%.2f", item.CostPerUnit))
	}
	fmt.Fprintln(a.out)

	return nil
}

// ShowItem displays details for a single item.
func (a *CatalogAdapter) ShowItem(ctx context.Context, itemID string) error {
	item, err := a.inventory.GetItem(ctx, itemID)
	if err != nil {
		return err
	}

	fmt.Fprintf(a.out, "\nItem:   %s\n", item.ID)
	fmt.Fprintf(a.out, "Name:   %s\n", item.Name)
	if item.ExternalCode != "" {
		fmt.Fprintf(a.out, "Code:   %s\n", item.ExternalCode)
	}
	fmt.Fprintf(a.out, "Unit:   %s\n", item.NativeUnit)
	fmt.Fprintf(a.out, "Stock:  %g %s\n", item.StockLevel, item.NativeUnit)
	fmt.Fprintf(a.out, "Cost:   $%.2f per %s\n", item.CostPerUnit, item.NativeUnit)
	if item.ShelfLifeDays > 0 {
		fmt.Fprintf(a.out, "Shelf:  %d days\n", item.ShelfLifeDays)
	}
	if item.Description != "" {
		fmt.Fprintf(a.out, "Notes:  %s\n", item.Description)
	}
	fmt.Fprintln(a.out)

	return nil
}

// ListRecipes lists recipes with an optional name filter.
func (a *CatalogAdapter) ListRecipes(ctx context.Context, nameContains string, limit int) error {
	recipes, err := a.recipes.ListRecipes(ctx, primary.RecipeFilters{
		NameContains: nameContains,
		Limit:        limit,
	})
	if err != nil {
		return fmt.Errorf("failed to list recipes: %w", err)
	}

	if len(recipes) == 0 {
		fmt.Fprintln(a.out, "No recipes found")
		return nil
	}

	fmt.Fprintf(a.out, "\n%-10s %-25s %-12s %s\n", "ID", "NAME", "YIELD", "OUTPUT ITEM")
	fmt.Fprintln(a.out, "────────────────────────────────────────────────────────────────")
	for _, r := range recipes {
		output := r.OutputItemID
		if output == "" {
			output = "(unlinked)"
		}
		fmt.Fprintf(a.out, "%-10s %-25s %-12s %s\n",
			r.ID, r.Name, formatQty(r.YieldQuantity, r.YieldUnit), output)
	}
	fmt.Fprintln(a.out)

	return nil
}

// ShowRecipe displays a recipe with its bill of materials.
func (a *CatalogAdapter) ShowRecipe(ctx context.Context, recipeID string) error {
	recipe, err := a.recipes.GetRecipe(ctx, recipeID)
	if err != nil {
		return err
	}

	fmt.Fprintf(a.out, "\nRecipe: %s\n", recipe.ID)
	fmt.Fprintf(a.out, "Name:   %s\n", recipe.Name)
	fmt.Fprintf(a.out, "Yield:  %g %s\n", recipe.YieldQuantity, recipe.YieldUnit)
	if recipe.OutputItemID != "" {
		fmt.Fprintf(a.out, "Output: %s\n", recipe.OutputItemID)
	} else {
		fmt.Fprintln(a.out, "Output: (unlinked; first cook will create or adopt an item)")
	}
	if recipe.ShelfLifeDays > 0 {
		fmt.Fprintf(a.out, "Shelf:  %d days\n", recipe.ShelfLifeDays)
	}

	fmt.Fprintf(a.out, "\n%-10s %12s  %s\n", "ITEM", "QUANTITY", "NOTE")
	for _, ing := range recipe.Ingredients {
		fmt.Fprintf(a.out, "%-10s %12s  %s\n", ing.ItemID, formatQty(ing.Quantity, ing.Unit), ing.Note)
	}
	fmt.Fprintln(a.out)

	return nil
}

// LinkOutput links an existing item as a recipe's output.
func (a *CatalogAdapter) LinkOutput(ctx context.Context, recipeID, itemID string) error {
	if err := a.recipes.LinkOutput(ctx, recipeID, itemID); err != nil {
		return err
	}
	fmt.Fprintf(a.out, "✓ Linked %s as the output of %s\n", itemID, recipeID)
	return nil
}
