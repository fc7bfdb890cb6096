package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/example/prepline/internal/core/production"
	"github.com/example/prepline/internal/ports/secondary"
)

// RecipeRepository implements secondary.RecipeRepository with SQLite.
type RecipeRepository struct {
	db *sql.DB
}

// NewRecipeRepository creates a new SQLite recipe repository.
func NewRecipeRepository(db *sql.DB) *RecipeRepository {
	return &RecipeRepository{db: db}
}

const recipeColumns = `id, name, yield_quantity, yield_unit, COALESCE(output_item_id, ''),
	COALESCE(shelf_life_days, 0), created_at, updated_at`

func scanRecipe(row interface{ Scan(...any) error }) (*secondary.RecipeRecord, error) {
	var createdAt, updatedAt time.Time
	record := &secondary.RecipeRecord{}
	err := row.Scan(
		&record.ID, &record.Name, &record.YieldQuantity, &record.YieldUnit,
		&record.OutputItemID, &record.ShelfLifeDays, &createdAt, &updatedAt,
	)
	if err != nil {
		return nil, err
	}
	record.CreatedAt = createdAt.Format(time.RFC3339)
	record.UpdatedAt = updatedAt.Format(time.RFC3339)
	return record, nil
}

// GetByID retrieves a recipe with its ordered ingredient list.
func (r *RecipeRepository) GetByID(ctx context.Context, id string) (*secondary.RecipeRecord, error) {
	row := r.db.QueryRowContext(ctx,
		"SELECT "+recipeColumns+" FROM recipes WHERE id = ?", id,
	)

	record, err := scanRecipe(row)
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("recipe %s: %w", id, secondary.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get recipe: %w", err)
	}

	rows, err := r.db.QueryContext(ctx,
		`SELECT item_id, quantity, unit, COALESCE(note, '')
		 FROM recipe_ingredients WHERE recipe_id = ? ORDER BY position`,
		id,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to get recipe ingredients: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		ing := &secondary.RecipeIngredientRecord{}
		if err := rows.Scan(&ing.ItemID, &ing.Quantity, &ing.Unit, &ing.Note); err != nil {
			return nil, fmt.Errorf("failed to scan recipe ingredient: %w", err)
		}
		record.Ingredients = append(record.Ingredients, ing)
	}

	return record, rows.Err()
}

// List retrieves recipes matching the given filters, without ingredients.
func (r *RecipeRepository) List(ctx context.Context, filters secondary.RecipeFilters) ([]*secondary.RecipeRecord, error) {
	query := "SELECT " + recipeColumns + " FROM recipes WHERE 1=1"
	args := []any{}

	if filters.NameContains != "" {
		query += " AND LOWER(name) LIKE ?"
		args = append(args, "%"+production.NormalizeName(filters.NameContains)+"%")
	}

	query += " ORDER BY name"

	if filters.Limit > 0 {
		query += " LIMIT ?"
		args = append(args, filters.Limit)
	}

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list recipes: %w", err)
	}
	defer rows.Close()

	var recipes []*secondary.RecipeRecord
	for rows.Next() {
		record, err := scanRecipe(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan recipe: %w", err)
		}
		recipes = append(recipes, record)
	}

	return recipes, rows.Err()
}

// SetOutputItem persists the output-item reference on a recipe.
func (r *RecipeRepository) SetOutputItem(ctx context.Context, recipeID, itemID string) error {
	// Verify the item exists so a bad link fails loudly here rather than
	// at the next cook.
	var exists int
	err := r.db.QueryRowContext(ctx,
		"SELECT COUNT(*) FROM items WHERE id = ?", itemID,
	).Scan(&exists)
	if err != nil {
		return fmt.Errorf("failed to verify item: %w", err)
	}
	if exists == 0 {
		return fmt.Errorf("item %s: %w", itemID, secondary.ErrNotFound)
	}

	result, err := r.db.ExecContext(ctx,
		"UPDATE recipes SET output_item_id = ?, updated_at = CURRENT_TIMESTAMP WHERE id = ?",
		itemID, recipeID,
	)
	if err != nil {
		return fmt.Errorf("failed to link output item: %w", err)
	}

	rowsAffected, _ := result.RowsAffected()
	if rowsAffected == 0 {
		return fmt.Errorf("recipe %s: %w", recipeID, secondary.ErrNotFound)
	}

	return nil
}

// Ensure RecipeRepository implements the interface
var _ secondary.RecipeRepository = (*RecipeRepository)(nil)
