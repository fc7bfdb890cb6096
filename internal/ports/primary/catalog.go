package primary

import "context"

// InventoryService defines the primary port for read-only item access.
// Item stock is never written through this port; the ledger owns stock.
type InventoryService interface {
	// GetItem retrieves an item by ID.
	GetItem(ctx context.Context, itemID string) (*Item, error)

	// ListItems lists items with optional filters.
	ListItems(ctx context.Context, filters ItemFilters) ([]*Item, error)
}

// RecipeService defines the primary port for recipe reads plus the one
// recipe write the engine owns: the output-item link.
type RecipeService interface {
	// GetRecipe retrieves a recipe with its ingredient list.
	GetRecipe(ctx context.Context, recipeID string) (*Recipe, error)

	// ListRecipes lists recipes with optional filters.
	ListRecipes(ctx context.Context, filters RecipeFilters) ([]*Recipe, error)

	// LinkOutput manually links an existing item as a recipe's output.
	LinkOutput(ctx context.Context, recipeID, itemID string) error
}

// Item represents an inventory item at the port boundary.
type Item struct {
	ID            string
	Name          string
	ExternalCode  string
	NativeUnit    string
	StockLevel    float64
	CostPerUnit   float64
	Description   string
	ShelfLifeDays int
	CreatedAt     string
}

// ItemFilters contains filter options for listing items.
type ItemFilters struct {
	NameContains string
	Limit        int
}

// Recipe represents a recipe at the port boundary.
type Recipe struct {
	ID            string
	Name          string
	YieldQuantity float64
	YieldUnit     string
	OutputItemID  string
	ShelfLifeDays int
	Ingredients   []RecipeIngredient
	CreatedAt     string
}

// RecipeIngredient is one bill-of-materials line.
type RecipeIngredient struct {
	ItemID   string
	Quantity float64
	Unit     string
	Note     string
}

// RecipeFilters contains filter options for listing recipes.
type RecipeFilters struct {
	NameContains string
	Limit        int
}
