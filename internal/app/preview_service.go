package app

import (
	"context"
	"fmt"

	"github.com/example/prepline/internal/core/measure"
	"github.com/example/prepline/internal/core/production"
	"github.com/example/prepline/internal/ports/primary"
	"github.com/example/prepline/internal/ports/secondary"
)

// PreviewServiceImpl implements the PreviewService interface.
type PreviewServiceImpl struct {
	recipeRepo    secondary.RecipeRepository
	inventoryRepo secondary.InventoryRepository
}

// NewPreviewService creates a new PreviewService with injected dependencies.
func NewPreviewService(
	recipeRepo secondary.RecipeRepository,
	inventoryRepo secondary.InventoryRepository,
) *PreviewServiceImpl {
	return &PreviewServiceImpl{
		recipeRepo:    recipeRepo,
		inventoryRepo: inventoryRepo,
	}
}

// BuildPreview assembles the read-only preview for a recipe.
func (s *PreviewServiceImpl) BuildPreview(ctx context.Context, recipeID string) (*primary.Preview, error) {
	preview, recipe, err := assemblePreview(ctx, s.recipeRepo, s.inventoryRepo, recipeID)
	if err != nil {
		return nil, err
	}

	result := corePreviewToPort(preview)

	// Best-effort output item name for display; a dangling link renders
	// as the bare ID rather than failing the preview.
	if recipe.OutputItemID != "" {
		if item, err := s.inventoryRepo.GetByID(ctx, recipe.OutputItemID); err == nil {
			result.OutputItemName = item.Name
		}
	}

	return result, nil
}

// assemblePreview is the shared read path for previews and execution:
// fetch the recipe, evaluate the cook guard, snapshot stock, and run the
// pure assembler. Returns the core preview plus the fetched recipe.
func assemblePreview(
	ctx context.Context,
	recipeRepo secondary.RecipeRepository,
	inventoryRepo secondary.InventoryRepository,
	recipeID string,
) (production.Preview, *secondary.RecipeRecord, error) {
	recipe, err := recipeRepo.GetByID(ctx, recipeID)
	if err != nil {
		return production.Preview{}, nil, fmt.Errorf("recipe not found: %w", err)
	}

	guard := production.CanCook(production.CookContext{
		RecipeID:        recipe.ID,
		IngredientCount: len(recipe.Ingredients),
		YieldQuantity:   recipe.YieldQuantity,
		YieldUnit:       measure.Unit(recipe.YieldUnit),
	})
	if !guard.Allowed {
		return production.Preview{}, nil, guard.Error()
	}

	ids := make([]string, len(recipe.Ingredients))
	for i, ing := range recipe.Ingredients {
		ids[i] = ing.ItemID
	}

	items, err := inventoryRepo.GetByIDs(ctx, ids)
	if err != nil {
		return production.Preview{}, nil, fmt.Errorf("failed to snapshot stock: %w", err)
	}

	input := production.RecipeInput{
		ID:            recipe.ID,
		Name:          recipe.Name,
		YieldQuantity: recipe.YieldQuantity,
		YieldUnit:     measure.Unit(recipe.YieldUnit),
		OutputItemID:  recipe.OutputItemID,
		Ingredients:   make([]production.IngredientInput, len(recipe.Ingredients)),
	}
	for i, ing := range recipe.Ingredients {
		input.Ingredients[i] = production.IngredientInput{
			ItemID:   ing.ItemID,
			Quantity: ing.Quantity,
			Unit:     measure.Unit(ing.Unit),
		}
	}

	stocks := make(map[string]production.StockSnapshot, len(items))
	for id, item := range items {
		stocks[id] = production.StockSnapshot{
			ItemID:      item.ID,
			Name:        item.Name,
			NativeUnit:  measure.Unit(item.NativeUnit),
			StockLevel:  item.StockLevel,
			CostPerUnit: item.CostPerUnit,
		}
	}

	return production.BuildPreview(input, stocks), recipe, nil
}

// corePreviewToPort maps the pure preview to the port DTO.
func corePreviewToPort(p production.Preview) *primary.Preview {
	result := &primary.Preview{
		RecipeID:                p.RecipeID,
		RecipeName:              p.RecipeName,
		Lines:                   make([]primary.PreviewLine, len(p.Lines)),
		OutputItemID:            p.OutputItemID,
		OutputItemName:          p.OutputItemName,
		OutputQuantity:          p.OutputQuantity,
		OutputUnit:              string(p.OutputUnit),
		HasInsufficientStock:    p.HasInsufficientStock,
		HasUnverifiedConversion: p.HasUnverifiedConversion,
		HasMissingItems:         p.HasMissingItems,
		TotalCost:               p.TotalCost,
	}
	for i, line := range p.Lines {
		result.Lines[i] = primary.PreviewLine{
			ItemID:       line.ItemID,
			ItemName:     line.ItemName,
			Quantity:     line.Quantity,
			Unit:         string(line.Unit),
			NativeUnit:   string(line.NativeUnit),
			Deduction:    line.Deduction,
			Verified:     line.Verified,
			CurrentStock: line.CurrentStock,
			Sufficient:   line.Sufficient,
			LineCost:     line.LineCost,
			ItemMissing:  line.ItemMissing,
		}
	}
	return result
}

// Ensure PreviewServiceImpl implements the interface
var _ primary.PreviewService = (*PreviewServiceImpl)(nil)
