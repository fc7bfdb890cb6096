// Package secondary defines the secondary ports (driven adapters) for the
// application. These are the interfaces through which the engine drives
// the inventory store; the ledger port in ledger.go is the only one with
// an atomicity guarantee.
package secondary

import (
	"context"
	"errors"
	"time"
)

// Sentinel errors shared by all persistence adapters. Callers branch on
// these with errors.Is; anything else is treated as transient.
var (
	// ErrNotFound indicates the requested record does not exist.
	ErrNotFound = errors.New("not found")

	// ErrDuplicateName indicates an item create hit the unique index on
	// the normalized name. The output resolver treats this as "someone
	// else created it" and re-fetches.
	ErrDuplicateName = errors.New("item name already exists")
)

// InventoryRepository defines the secondary port for inventory item reads
// and the single write the engine performs directly (output item create).
// Stock levels themselves are mutated only through the ledger port.
type InventoryRepository interface {
	// GetByID retrieves one item. Returns ErrNotFound when absent.
	GetByID(ctx context.Context, id string) (*ItemRecord, error)

	// GetByIDs retrieves a snapshot of the given items, keyed by ID.
	// Missing IDs are simply absent from the map, not an error.
	GetByIDs(ctx context.Context, ids []string) (map[string]*ItemRecord, error)

	// FindByName retrieves an item by case-insensitive exact name match.
	// Returns ErrNotFound when no item matches.
	FindByName(ctx context.Context, name string) (*ItemRecord, error)

	// Create persists a new item and fills in the generated ID.
	// Returns ErrDuplicateName on a normalized-name collision.
	Create(ctx context.Context, item *ItemRecord) error

	// List retrieves items matching the given filters.
	List(ctx context.Context, filters ItemFilters) ([]*ItemRecord, error)
}

// ItemRecord represents an inventory item as stored in persistence.
type ItemRecord struct {
	ID            string
	Name          string
	ExternalCode  string
	NativeUnit    string
	StockLevel    float64
	CostPerUnit   float64 // Zero when no cost is on file
	Description   string  // Empty string means null
	ShelfLifeDays int     // Zero means none recorded
	CreatedAt     string
	UpdatedAt     string
}

// ItemFilters contains filter options for querying items.
type ItemFilters struct {
	NameContains string
	Limit        int
}

// RecipeRepository defines the secondary port for recipe reads and the
// output-item link write. Recipe editing itself belongs to the
// out-of-scope CRUD surface.
type RecipeRepository interface {
	// GetByID retrieves a recipe with its ordered ingredient list.
	// Returns ErrNotFound when the recipe does not exist.
	GetByID(ctx context.Context, id string) (*RecipeRecord, error)

	// List retrieves recipes matching the given filters, without
	// ingredient lists.
	List(ctx context.Context, filters RecipeFilters) ([]*RecipeRecord, error)

	// SetOutputItem persists the output-item reference on a recipe.
	SetOutputItem(ctx context.Context, recipeID, itemID string) error
}

// RecipeRecord represents a recipe as stored in persistence.
type RecipeRecord struct {
	ID            string
	Name          string
	YieldQuantity float64
	YieldUnit     string
	OutputItemID  string // Empty string means no linked output item
	ShelfLifeDays int    // Zero means none recorded
	Ingredients   []*RecipeIngredientRecord
	CreatedAt     string
	UpdatedAt     string
}

// RecipeIngredientRecord is one bill-of-materials line of a recipe.
type RecipeIngredientRecord struct {
	ItemID   string
	Quantity float64
	Unit     string
	Note     string // Empty string means null
}

// RecipeFilters contains filter options for querying recipes.
type RecipeFilters struct {
	NameContains string
	Limit        int
}

// ProductionRunRepository defines the secondary port for production run
// persistence. Runs reach a terminal status either through the ledger's
// atomic completion or through MarkFailed.
type ProductionRunRepository interface {
	// Create persists a new run and fills in the generated ID.
	Create(ctx context.Context, run *RunRecord) error

	// GetByID retrieves a run without its ingredient rows.
	// Returns ErrNotFound when the run does not exist.
	GetByID(ctx context.Context, id string) (*RunRecord, error)

	// AddIngredients bulk-inserts the planned consumption rows for a run.
	AddIngredients(ctx context.Context, runID string, rows []*RunIngredientRecord) error

	// GetIngredients retrieves the consumption rows for a run.
	GetIngredients(ctx context.Context, runID string) ([]*RunIngredientRecord, error)

	// List retrieves runs matching the given filters, newest first.
	List(ctx context.Context, filters RunFilters) ([]*RunRecord, error)

	// ListOrphans retrieves in_progress runs that need reconciliation:
	// runs with no ingredient rows, or runs created before the cutoff.
	ListOrphans(ctx context.Context, before time.Time) ([]*RunRecord, error)

	// MarkFailed transitions a run to failed with the given completion
	// time and reason. Returns ErrNotFound for unknown runs.
	MarkFailed(ctx context.Context, id string, completedAt time.Time, reason string) error
}

// RunRecord represents a production run as stored in persistence.
type RunRecord struct {
	ID            string
	RecipeID      string
	Status        string
	YieldQuantity float64
	YieldUnit     string
	CreatedBy     string
	FailureReason string // Empty string means null
	CreatedAt     string
	CompletedAt   string // Empty string means null
}

// RunIngredientRecord is one planned/actual consumption row of a run.
// For quick cook, actual always equals expected and variance is zero.
type RunIngredientRecord struct {
	ItemID          string
	ExpectedQty     float64
	ActualQty       float64
	Unit            string
	VariancePercent float64
}

// RunFilters contains filter options for querying runs.
type RunFilters struct {
	RecipeID string
	Status   string
	Limit    int
}
