package app

import (
	"context"
	"fmt"

	"github.com/example/prepline/internal/ports/primary"
	"github.com/example/prepline/internal/ports/secondary"
)

// RecipeServiceImpl implements the RecipeService interface.
type RecipeServiceImpl struct {
	recipeRepo    secondary.RecipeRepository
	inventoryRepo secondary.InventoryRepository
}

// NewRecipeService creates a new RecipeService with injected dependencies.
func NewRecipeService(
	recipeRepo secondary.RecipeRepository,
	inventoryRepo secondary.InventoryRepository,
) *RecipeServiceImpl {
	return &RecipeServiceImpl{
		recipeRepo:    recipeRepo,
		inventoryRepo: inventoryRepo,
	}
}

// GetRecipe retrieves a recipe with its ingredient list.
func (s *RecipeServiceImpl) GetRecipe(ctx context.Context, recipeID string) (*primary.Recipe, error) {
	record, err := s.recipeRepo.GetByID(ctx, recipeID)
	if err != nil {
		return nil, fmt.Errorf("recipe not found: %w", err)
	}
	return recordToRecipe(record), nil
}

// ListRecipes lists recipes with optional filters.
func (s *RecipeServiceImpl) ListRecipes(ctx context.Context, filters primary.RecipeFilters) ([]*primary.Recipe, error) {
	records, err := s.recipeRepo.List(ctx, secondary.RecipeFilters{
		NameContains: filters.NameContains,
		Limit:        filters.Limit,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to list recipes: %w", err)
	}

	recipes := make([]*primary.Recipe, len(records))
	for i, r := range records {
		recipes[i] = recordToRecipe(r)
	}
	return recipes, nil
}

// LinkOutput manually links an existing item as a recipe's output. The
// item must already exist; linking never creates one.
func (s *RecipeServiceImpl) LinkOutput(ctx context.Context, recipeID, itemID string) error {
	if _, err := s.inventoryRepo.GetByID(ctx, itemID); err != nil {
		return fmt.Errorf("item not found: %w", err)
	}
	if err := s.recipeRepo.SetOutputItem(ctx, recipeID, itemID); err != nil {
		return fmt.Errorf("failed to link output item: %w", err)
	}
	return nil
}

func recordToRecipe(r *secondary.RecipeRecord) *primary.Recipe {
	recipe := &primary.Recipe{
		ID:            r.ID,
		Name:          r.Name,
		YieldQuantity: r.YieldQuantity,
		YieldUnit:     r.YieldUnit,
		OutputItemID:  r.OutputItemID,
		ShelfLifeDays: r.ShelfLifeDays,
		Ingredients:   make([]primary.RecipeIngredient, len(r.Ingredients)),
		CreatedAt:     r.CreatedAt,
	}
	for i, ing := range r.Ingredients {
		recipe.Ingredients[i] = primary.RecipeIngredient{
			ItemID:   ing.ItemID,
			Quantity: ing.Quantity,
			Unit:     ing.Unit,
			Note:     ing.Note,
		}
	}
	return recipe
}

// Ensure RecipeServiceImpl implements the interface
var _ primary.RecipeService = (*RecipeServiceImpl)(nil)
