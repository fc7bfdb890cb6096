package db

import (
	"database/sql"
	"fmt"
	"time"
)

// SeedFixtures populates the database with demo kitchen data: a small
// pantry plus two prep recipes, one of them with no output item linked
// so the resolver path can be exercised end to end.
func SeedFixtures(database *sql.DB) error {
	now := time.Now().Format(time.RFC3339)

	items := []struct {
		id, name, norm, code, unit string
		stock, cost                float64
	}{
		{"ITEM-001", "Tomatoes", "tomatoes", "produce-tomatoes", "lb", 40, 2.00},
		{"ITEM-002", "Garlic", "garlic", "produce-garlic", "lb", 6, 4.00},
		{"ITEM-003", "Olive Oil", "olive oil", "dry-olive-oil", "ml", 3000, 0.012},
		{"ITEM-004", "Yellow Onions", "yellow onions", "produce-onions", "lb", 25, 1.10},
		{"ITEM-005", "Chicken Bones", "chicken bones", "protein-chx-bones", "lb", 18, 0.80},
		{"ITEM-006", "Kosher Salt", "kosher salt", "dry-kosher-salt", "g", 5000, 0.002},
	}
	for _, it := range items {
		if _, err := database.Exec(
			"INSERT INTO items (id, name, name_norm, external_code, native_unit, stock_level, cost_per_unit, created_at) VALUES (?, ?, ?, ?, ?, ?, ?, ?)",
			it.id, it.name, it.norm, it.code, it.unit, it.stock, it.cost, now,
		); err != nil {
			return fmt.Errorf("seed items: %w", err)
		}
	}

	recipes := []struct {
		id, name, unit string
		yield          float64
		shelfLife      int
	}{
		{"RCP-001", "House Marinara", "gal", 1, 5},
		{"RCP-002", "Chicken Stock", "qt", 8, 4},
	}
	for _, r := range recipes {
		if _, err := database.Exec(
			"INSERT INTO recipes (id, name, yield_quantity, yield_unit, shelf_life_days, created_at) VALUES (?, ?, ?, ?, ?, ?)",
			r.id, r.name, r.yield, r.unit, r.shelfLife, now,
		); err != nil {
			return fmt.Errorf("seed recipes: %w", err)
		}
	}

	ingredients := []struct {
		recipeID     string
		position     int
		itemID, unit string
		qty          float64
		note         string
	}{
		{"RCP-001", 1, "ITEM-001", "lb", 5, "crushed"},
		{"RCP-001", 2, "ITEM-002", "lb", 0.5, ""},
		{"RCP-001", 3, "ITEM-003", "cup", 0.5, ""},
		{"RCP-001", 4, "ITEM-006", "tbsp", 1, ""},
		{"RCP-002", 1, "ITEM-005", "lb", 10, "roasted"},
		{"RCP-002", 2, "ITEM-004", "lb", 2, "quartered"},
		{"RCP-002", 3, "ITEM-006", "tbsp", 2, ""},
	}
	for _, ing := range ingredients {
		var note sql.NullString
		if ing.note != "" {
			note = sql.NullString{String: ing.note, Valid: true}
		}
		if _, err := database.Exec(
			"INSERT INTO recipe_ingredients (recipe_id, position, item_id, quantity, unit, note) VALUES (?, ?, ?, ?, ?, ?)",
			ing.recipeID, ing.position, ing.itemID, ing.qty, ing.unit, note,
		); err != nil {
			return fmt.Errorf("seed recipe ingredients: %w", err)
		}
	}

	return nil
}
