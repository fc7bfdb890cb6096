// Package primary defines the primary ports (driving adapters) for the
// application. These are the interfaces through which the outside world
// drives the production engine.
package primary

import "context"

// PreviewService defines the primary port for cook previews.
// Previews are pure reads: they may be requested repeatedly and
// concurrently without side effects.
type PreviewService interface {
	// BuildPreview assembles the read-only preview for a recipe against
	// current stock. Validation conditions (no ingredients, no yield)
	// come back as typed errors; advisory conditions (insufficient
	// stock, unverified conversions, missing items) come back as flags
	// on the preview so a partial preview can still be rendered.
	BuildPreview(ctx context.Context, recipeID string) (*Preview, error)
}

// Preview is the operator-facing projection of a prospective cook.
type Preview struct {
	RecipeID                string
	RecipeName              string
	Lines                   []PreviewLine
	OutputItemID            string // Empty when the recipe has no linked output item yet
	OutputItemName          string
	OutputQuantity          float64
	OutputUnit              string
	HasInsufficientStock    bool
	HasUnverifiedConversion bool
	HasMissingItems         bool
	TotalCost               float64
}

// PreviewLine is one per-ingredient deduction row.
type PreviewLine struct {
	ItemID       string
	ItemName     string
	Quantity     float64 // In the recipe unit
	Unit         string
	NativeUnit   string
	Deduction    float64 // In the item's native unit
	Verified     bool
	CurrentStock float64
	Sufficient   bool
	LineCost     float64
	ItemMissing  bool
}
