package app

import (
	"context"
	"errors"
	"testing"

	"github.com/example/prepline/internal/ports/secondary"
)

func TestRecipeService_GetRecipe(t *testing.T) {
	recipes := newMockRecipeRepo()
	items := newMockInventoryRepo()
	fixtureMarinara(recipes, items)
	svc := NewRecipeService(recipes, items)

	recipe, err := svc.GetRecipe(context.Background(), "RCP-001")
	if err != nil {
		t.Fatalf("GetRecipe failed: %v", err)
	}
	if recipe.Name != "House Marinara" || len(recipe.Ingredients) != 2 {
		t.Errorf("unexpected recipe: %+v", recipe)
	}
}

func TestRecipeService_LinkOutput(t *testing.T) {
	recipes := newMockRecipeRepo()
	items := newMockInventoryRepo()
	fixtureMarinara(recipes, items)
	items.addItem(&secondary.ItemRecord{ID: "ITEM-050", Name: "Marinara Batch", NativeUnit: "gal"})
	svc := NewRecipeService(recipes, items)

	if err := svc.LinkOutput(context.Background(), "RCP-001", "ITEM-050"); err != nil {
		t.Fatalf("LinkOutput failed: %v", err)
	}
	if recipes.linkedItems["RCP-001"] != "ITEM-050" {
		t.Error("expected link persisted")
	}
}

func TestRecipeService_LinkOutput_UnknownItem(t *testing.T) {
	recipes := newMockRecipeRepo()
	items := newMockInventoryRepo()
	fixtureMarinara(recipes, items)
	svc := NewRecipeService(recipes, items)

	err := svc.LinkOutput(context.Background(), "RCP-001", "ITEM-404")
	if !errors.Is(err, secondary.ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
}
