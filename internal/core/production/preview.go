// Package production contains the pure business logic for production
// runs. This file contains sufficiency analysis and preview assembly.
package production

import "github.com/example/prepline/internal/core/measure"

// RecipeInput is the recipe shape the preview assembler consumes.
// All values are pre-fetched by the caller - no I/O in this package.
type RecipeInput struct {
	ID             string
	Name           string
	YieldQuantity  float64
	YieldUnit      measure.Unit
	OutputItemID   string // Empty when the recipe has no linked output item
	OutputItemName string
	Ingredients    []IngredientInput
}

// IngredientInput is a single bill-of-materials line.
type IngredientInput struct {
	ItemID   string
	Quantity float64
	Unit     measure.Unit
}

// StockSnapshot is the caller-supplied state of one inventory item at
// preview time.
type StockSnapshot struct {
	ItemID      string
	Name        string
	NativeUnit  measure.Unit
	StockLevel  float64
	CostPerUnit float64 // Zero when the item has no cost on file
}

// DeductionLine is one per-ingredient row of a preview.
type DeductionLine struct {
	ItemID       string
	ItemName     string
	Quantity     float64 // In the recipe unit
	Unit         measure.Unit
	NativeUnit   measure.Unit
	Deduction    float64 // In the item's native unit
	Verified     bool    // False when the unit pair had no conversion factor
	CurrentStock float64
	Sufficient   bool
	LineCost     float64
	ItemMissing  bool // True when no snapshot was supplied for the item
}

// Preview is the read-only projection shown to an operator before a
// cook is committed. It is ephemeral and never persisted.
type Preview struct {
	RecipeID                string
	RecipeName              string
	Lines                   []DeductionLine
	OutputItemID            string
	OutputItemName          string
	OutputQuantity          float64
	OutputUnit              measure.Unit
	HasInsufficientStock    bool
	HasUnverifiedConversion bool
	HasMissingItems         bool
	TotalCost               float64
}

// BuildPreview assembles a preview from a recipe and the current stock
// snapshots. Pure composition: nothing is mutated and nothing blocks.
//
// A missing snapshot produces a partial row (ItemMissing, counted as
// insufficient) rather than failing, so the caller can still render the
// rest of the preview. Insufficiency and unverified conversions are
// advisory flags, never errors - the ledger is the final arbiter on
// execution.
func BuildPreview(recipe RecipeInput, stocks map[string]StockSnapshot) Preview {
	preview := Preview{
		RecipeID:       recipe.ID,
		RecipeName:     recipe.Name,
		OutputItemID:   recipe.OutputItemID,
		OutputItemName: recipe.OutputItemName,
		OutputQuantity: recipe.YieldQuantity,
		OutputUnit:     recipe.YieldUnit,
		Lines:          make([]DeductionLine, 0, len(recipe.Ingredients)),
	}

	for _, ing := range recipe.Ingredients {
		snapshot, found := stocks[ing.ItemID]
		if !found {
			preview.Lines = append(preview.Lines, DeductionLine{
				ItemID:      ing.ItemID,
				Quantity:    ing.Quantity,
				Unit:        ing.Unit,
				ItemMissing: true,
			})
			preview.HasMissingItems = true
			preview.HasInsufficientStock = true
			continue
		}

		conv := measure.Convert(ing.Quantity, ing.Unit, snapshot.NativeUnit)
		line := DeductionLine{
			ItemID:       ing.ItemID,
			ItemName:     snapshot.Name,
			Quantity:     ing.Quantity,
			Unit:         ing.Unit,
			NativeUnit:   snapshot.NativeUnit,
			Deduction:    conv.Quantity,
			Verified:     conv.Verified,
			CurrentStock: snapshot.StockLevel,
			Sufficient:   snapshot.StockLevel >= conv.Quantity,
			LineCost:     measure.Cost(conv.Quantity, snapshot.CostPerUnit),
		}

		preview.Lines = append(preview.Lines, line)
		preview.TotalCost += line.LineCost
		if !line.Sufficient {
			preview.HasInsufficientStock = true
		}
		if !line.Verified {
			preview.HasUnverifiedConversion = true
		}
	}

	return preview
}

// ConsumptionList extracts the (item, native deduction) pairs the ledger
// needs for atomic completion. Missing items are skipped; callers must
// not execute a preview that has HasMissingItems set.
func (p Preview) ConsumptionList() []Consumption {
	list := make([]Consumption, 0, len(p.Lines))
	for _, line := range p.Lines {
		if line.ItemMissing {
			continue
		}
		list = append(list, Consumption{
			ItemID:   line.ItemID,
			Quantity: line.Deduction,
			Unit:     line.NativeUnit,
		})
	}
	return list
}

// Consumption is one ledger deduction: a native-unit quantity of an item.
type Consumption struct {
	ItemID   string
	Quantity float64
	Unit     measure.Unit
}
