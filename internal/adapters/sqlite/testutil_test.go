// Package sqlite_test contains integration tests for the SQLite adapters.
//
// # Schema Protection
//
// This file is the SINGLE POINT where the database schema is loaded for
// tests. All test setup uses db.GetSchemaSQL() so tests run against the
// authoritative schema; repository code referencing a column that does
// not exist there fails immediately with "no such column". Do not
// hardcode CREATE TABLE statements in test files.
package sqlite_test

import (
	"database/sql"
	"testing"

	_ "github.com/mattn/go-sqlite3"

	"github.com/example/prepline/internal/db"
)

// setupTestDB creates an in-memory database with the authoritative schema.
func setupTestDB(t *testing.T) *sql.DB {
	t.Helper()

	testDB, err := sql.Open("sqlite3", ":memory:")
	if err != nil {
		t.Fatalf("failed to open test db: %v", err)
	}

	if _, err := testDB.Exec("PRAGMA foreign_keys = ON"); err != nil {
		t.Fatalf("failed to enable foreign keys: %v", err)
	}

	_, err = testDB.Exec(db.GetSchemaSQL())
	if err != nil {
		t.Fatalf("failed to create schema: %v", err)
	}

	t.Cleanup(func() {
		testDB.Close()
	})

	return testDB
}

// seedItem inserts a test item and returns its ID.
func seedItem(t *testing.T, db *sql.DB, id, name, unit string, stock, cost float64) string {
	t.Helper()
	if id == "" {
		id = "ITEM-001"
	}
	if name == "" {
		name = "Tomatoes"
	}
	if unit == "" {
		unit = "lb"
	}
	norm := normName(name)
	_, err := db.Exec(
		"INSERT INTO items (id, name, name_norm, native_unit, stock_level, cost_per_unit) VALUES (?, ?, ?, ?, ?, ?)",
		id, name, norm, unit, stock, cost,
	)
	if err != nil {
		t.Fatalf("failed to seed item: %v", err)
	}
	return id
}

// normName lowercases a seeded name the way the engine normalizes it.
// Kept deliberately simple; tests seed single-spaced names.
func normName(name string) string {
	out := make([]rune, 0, len(name))
	for _, r := range name {
		if r >= 'A' && r <= 'Z' {
			r += 'a' - 'A'
		}
		out = append(out, r)
	}
	return string(out)
}

// seedRecipe inserts a test recipe and returns its ID.
func seedRecipe(t *testing.T, db *sql.DB, id, name string, yieldQty float64, yieldUnit string) string {
	t.Helper()
	if id == "" {
		id = "RCP-001"
	}
	if name == "" {
		name = "House Marinara"
	}
	if yieldQty == 0 {
		yieldQty = 1
	}
	if yieldUnit == "" {
		yieldUnit = "gal"
	}
	_, err := db.Exec(
		"INSERT INTO recipes (id, name, yield_quantity, yield_unit) VALUES (?, ?, ?, ?)",
		id, name, yieldQty, yieldUnit,
	)
	if err != nil {
		t.Fatalf("failed to seed recipe: %v", err)
	}
	return id
}

// seedRecipeIngredient inserts one bill-of-materials line.
func seedRecipeIngredient(t *testing.T, db *sql.DB, recipeID string, position int, itemID string, qty float64, unit string) {
	t.Helper()
	_, err := db.Exec(
		"INSERT INTO recipe_ingredients (recipe_id, position, item_id, quantity, unit) VALUES (?, ?, ?, ?, ?)",
		recipeID, position, itemID, qty, unit,
	)
	if err != nil {
		t.Fatalf("failed to seed recipe ingredient: %v", err)
	}
}

// seedRun inserts a test run and returns its ID.
func seedRun(t *testing.T, db *sql.DB, id, recipeID, status string) string {
	t.Helper()
	if id == "" {
		id = "RUN-001"
	}
	if recipeID == "" {
		recipeID = "RCP-001"
	}
	if status == "" {
		status = "in_progress"
	}
	_, err := db.Exec(
		"INSERT INTO production_runs (id, recipe_id, status, yield_quantity, yield_unit, created_by) VALUES (?, ?, ?, 1, 'gal', 'test-chef')",
		id, recipeID, status,
	)
	if err != nil {
		t.Fatalf("failed to seed run: %v", err)
	}
	return id
}
