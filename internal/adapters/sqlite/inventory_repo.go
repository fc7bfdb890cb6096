// Package sqlite contains SQLite implementations of the secondary ports.
package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/mattn/go-sqlite3"

	"github.com/example/prepline/internal/core/production"
	"github.com/example/prepline/internal/ports/secondary"
)

// InventoryRepository implements secondary.InventoryRepository with SQLite.
type InventoryRepository struct {
	db *sql.DB
}

// NewInventoryRepository creates a new SQLite inventory repository.
func NewInventoryRepository(db *sql.DB) *InventoryRepository {
	return &InventoryRepository{db: db}
}

const itemColumns = `id, name, COALESCE(external_code, ''), native_unit, stock_level,
	COALESCE(cost_per_unit, 0), COALESCE(description, ''), COALESCE(shelf_life_days, 0), created_at, updated_at`

func scanItem(row interface{ Scan(...any) error }) (*secondary.ItemRecord, error) {
	var createdAt, updatedAt time.Time
	record := &secondary.ItemRecord{}
	err := row.Scan(
		&record.ID, &record.Name, &record.ExternalCode, &record.NativeUnit,
		&record.StockLevel, &record.CostPerUnit, &record.Description,
		&record.ShelfLifeDays, &createdAt, &updatedAt,
	)
	if err != nil {
		return nil, err
	}
	record.CreatedAt = createdAt.Format(time.RFC3339)
	record.UpdatedAt = updatedAt.Format(time.RFC3339)
	return record, nil
}

// GetByID retrieves an item by its ID.
func (r *InventoryRepository) GetByID(ctx context.Context, id string) (*secondary.ItemRecord, error) {
	row := r.db.QueryRowContext(ctx,
		"SELECT "+itemColumns+" FROM items WHERE id = ?", id,
	)

	record, err := scanItem(row)
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("item %s: %w", id, secondary.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get item: %w", err)
	}
	return record, nil
}

// GetByIDs retrieves a stock snapshot for the given items, keyed by ID.
// IDs with no matching item are absent from the result.
func (r *InventoryRepository) GetByIDs(ctx context.Context, ids []string) (map[string]*secondary.ItemRecord, error) {
	result := make(map[string]*secondary.ItemRecord, len(ids))
	if len(ids) == 0 {
		return result, nil
	}

	placeholders := strings.TrimSuffix(strings.Repeat("?,", len(ids)), ",")
	args := make([]any, len(ids))
	for i, id := range ids {
		args[i] = id
	}

	rows, err := r.db.QueryContext(ctx,
		"SELECT "+itemColumns+" FROM items WHERE id IN ("+placeholders+")", args...,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to snapshot items: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		record, err := scanItem(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan item: %w", err)
		}
		result[record.ID] = record
	}

	return result, rows.Err()
}

// FindByName retrieves an item by case-insensitive exact name match.
func (r *InventoryRepository) FindByName(ctx context.Context, name string) (*secondary.ItemRecord, error) {
	row := r.db.QueryRowContext(ctx,
		"SELECT "+itemColumns+" FROM items WHERE name_norm = ?",
		production.NormalizeName(name),
	)

	record, err := scanItem(row)
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("item named %q: %w", name, secondary.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to find item by name: %w", err)
	}
	return record, nil
}

// Create persists a new item. The ID is generated by finding the max
// existing numeric suffix; a collision on the normalized name surfaces
// as ErrDuplicateName so the resolver can converge on the winner.
func (r *InventoryRepository) Create(ctx context.Context, item *secondary.ItemRecord) error {
	var maxID int
	err := r.db.QueryRowContext(ctx,
		"SELECT COALESCE(MAX(CAST(SUBSTR(id, 6) AS INTEGER)), 0) FROM items",
	).Scan(&maxID)
	if err != nil {
		return fmt.Errorf("failed to generate item ID: %w", err)
	}

	id := production.GenerateItemID(maxID)

	var cost sql.NullFloat64
	if item.CostPerUnit != 0 {
		cost = sql.NullFloat64{Float64: item.CostPerUnit, Valid: true}
	}
	var description sql.NullString
	if item.Description != "" {
		description = sql.NullString{String: item.Description, Valid: true}
	}
	var shelfLife sql.NullInt64
	if item.ShelfLifeDays != 0 {
		shelfLife = sql.NullInt64{Int64: int64(item.ShelfLifeDays), Valid: true}
	}

	_, err = r.db.ExecContext(ctx,
		`INSERT INTO items (id, name, name_norm, external_code, native_unit, stock_level, cost_per_unit, description, shelf_life_days)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		id, item.Name, production.NormalizeName(item.Name), item.ExternalCode,
		item.NativeUnit, item.StockLevel, cost, description, shelfLife,
	)
	if err != nil {
		var sqliteErr sqlite3.Error
		if errors.As(err, &sqliteErr) && sqliteErr.ExtendedCode == sqlite3.ErrConstraintUnique {
			return fmt.Errorf("item named %q: %w", item.Name, secondary.ErrDuplicateName)
		}
		return fmt.Errorf("failed to create item: %w", err)
	}

	item.ID = id
	return nil
}

// List retrieves items matching the given filters, by name.
func (r *InventoryRepository) List(ctx context.Context, filters secondary.ItemFilters) ([]*secondary.ItemRecord, error) {
	query := "SELECT " + itemColumns + " FROM items WHERE 1=1"
	args := []any{}

	if filters.NameContains != "" {
		query += " AND name_norm LIKE ?"
		args = append(args, "%"+production.NormalizeName(filters.NameContains)+"%")
	}

	query += " ORDER BY name"

	if filters.Limit > 0 {
		query += " LIMIT ?"
		args = append(args, filters.Limit)
	}

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list items: %w", err)
	}
	defer rows.Close()

	var items []*secondary.ItemRecord
	for rows.Next() {
		record, err := scanItem(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan item: %w", err)
		}
		items = append(items, record)
	}

	return items, rows.Err()
}

// Ensure InventoryRepository implements the interface
var _ secondary.InventoryRepository = (*InventoryRepository)(nil)
