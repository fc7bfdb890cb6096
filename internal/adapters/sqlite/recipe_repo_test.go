package sqlite_test

import (
	"context"
	"errors"
	"testing"

	"github.com/example/prepline/internal/adapters/sqlite"
	"github.com/example/prepline/internal/ports/secondary"
)

func TestRecipeRepository_GetByID(t *testing.T) {
	db := setupTestDB(t)
	repo := sqlite.NewRecipeRepository(db)
	ctx := context.Background()

	seedItem(t, db, "ITEM-001", "Tomatoes", "lb", 40, 2.00)
	seedItem(t, db, "ITEM-002", "Garlic", "lb", 6, 4.00)
	seedRecipe(t, db, "RCP-001", "House Marinara", 1, "gal")
	seedRecipeIngredient(t, db, "RCP-001", 2, "ITEM-002", 0.5, "lb")
	seedRecipeIngredient(t, db, "RCP-001", 1, "ITEM-001", 5, "lb")

	recipe, err := repo.GetByID(ctx, "RCP-001")
	if err != nil {
		t.Fatalf("GetByID failed: %v", err)
	}

	if recipe.Name != "House Marinara" {
		t.Errorf("Name = %s, want House Marinara", recipe.Name)
	}
	if recipe.YieldQuantity != 1 || recipe.YieldUnit != "gal" {
		t.Errorf("yield = %v %s, want 1 gal", recipe.YieldQuantity, recipe.YieldUnit)
	}
	if recipe.OutputItemID != "" {
		t.Errorf("OutputItemID = %s, want empty", recipe.OutputItemID)
	}

	// Ingredients come back in position order regardless of insert order.
	if len(recipe.Ingredients) != 2 {
		t.Fatalf("expected 2 ingredients, got %d", len(recipe.Ingredients))
	}
	if recipe.Ingredients[0].ItemID != "ITEM-001" || recipe.Ingredients[1].ItemID != "ITEM-002" {
		t.Errorf("ingredients out of order: %s, %s", recipe.Ingredients[0].ItemID, recipe.Ingredients[1].ItemID)
	}
}

func TestRecipeRepository_GetByID_NotFound(t *testing.T) {
	db := setupTestDB(t)
	repo := sqlite.NewRecipeRepository(db)

	_, err := repo.GetByID(context.Background(), "RCP-999")
	if !errors.Is(err, secondary.ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
}

func TestRecipeRepository_SetOutputItem(t *testing.T) {
	db := setupTestDB(t)
	repo := sqlite.NewRecipeRepository(db)
	ctx := context.Background()

	seedItem(t, db, "ITEM-001", "House Marinara", "gal", 0, 0)
	seedRecipe(t, db, "RCP-001", "House Marinara", 1, "gal")

	if err := repo.SetOutputItem(ctx, "RCP-001", "ITEM-001"); err != nil {
		t.Fatalf("SetOutputItem failed: %v", err)
	}

	recipe, err := repo.GetByID(ctx, "RCP-001")
	if err != nil {
		t.Fatalf("GetByID failed: %v", err)
	}
	if recipe.OutputItemID != "ITEM-001" {
		t.Errorf("OutputItemID = %s, want ITEM-001", recipe.OutputItemID)
	}
}

func TestRecipeRepository_SetOutputItem_UnknownItem(t *testing.T) {
	db := setupTestDB(t)
	repo := sqlite.NewRecipeRepository(db)

	seedRecipe(t, db, "RCP-001", "House Marinara", 1, "gal")

	err := repo.SetOutputItem(context.Background(), "RCP-001", "ITEM-404")
	if !errors.Is(err, secondary.ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
}

func TestRecipeRepository_SetOutputItem_UnknownRecipe(t *testing.T) {
	db := setupTestDB(t)
	repo := sqlite.NewRecipeRepository(db)

	seedItem(t, db, "ITEM-001", "House Marinara", "gal", 0, 0)

	err := repo.SetOutputItem(context.Background(), "RCP-404", "ITEM-001")
	if !errors.Is(err, secondary.ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
}

func TestRecipeRepository_List(t *testing.T) {
	db := setupTestDB(t)
	repo := sqlite.NewRecipeRepository(db)
	ctx := context.Background()

	seedRecipe(t, db, "RCP-001", "House Marinara", 1, "gal")
	seedRecipe(t, db, "RCP-002", "Chicken Stock", 8, "qt")

	all, err := repo.List(ctx, secondary.RecipeFilters{})
	if err != nil {
		t.Fatalf("List failed: %v", err)
	}
	if len(all) != 2 {
		t.Fatalf("expected 2 recipes, got %d", len(all))
	}
	// Ordered by name.
	if all[0].ID != "RCP-002" {
		t.Errorf("expected Chicken Stock first, got %s", all[0].Name)
	}

	filtered, err := repo.List(ctx, secondary.RecipeFilters{NameContains: "marinara"})
	if err != nil {
		t.Fatalf("List filtered failed: %v", err)
	}
	if len(filtered) != 1 || filtered[0].ID != "RCP-001" {
		t.Errorf("unexpected filtered result: %+v", filtered)
	}
}
