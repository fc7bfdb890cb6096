package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/example/prepline/internal/core/production"
	"github.com/example/prepline/internal/ports/secondary"
)

// RunRepository implements secondary.ProductionRunRepository with SQLite.
type RunRepository struct {
	db *sql.DB
}

// NewRunRepository creates a new SQLite production run repository.
func NewRunRepository(db *sql.DB) *RunRepository {
	return &RunRepository{db: db}
}

const runColumns = `id, recipe_id, status, yield_quantity, yield_unit, created_by,
	COALESCE(failure_reason, ''), created_at, completed_at`

func scanRun(row interface{ Scan(...any) error }) (*secondary.RunRecord, error) {
	var createdAt time.Time
	var completedAt sql.NullTime
	record := &secondary.RunRecord{}
	err := row.Scan(
		&record.ID, &record.RecipeID, &record.Status, &record.YieldQuantity,
		&record.YieldUnit, &record.CreatedBy, &record.FailureReason,
		&createdAt, &completedAt,
	)
	if err != nil {
		return nil, err
	}
	record.CreatedAt = createdAt.Format(time.RFC3339)
	if completedAt.Valid {
		record.CompletedAt = completedAt.Time.Format(time.RFC3339)
	}
	return record, nil
}

// Create persists a new run in its initial status.
func (r *RunRepository) Create(ctx context.Context, run *secondary.RunRecord) error {
	// Verify recipe exists
	var exists int
	err := r.db.QueryRowContext(ctx,
		"SELECT COUNT(*) FROM recipes WHERE id = ?", run.RecipeID,
	).Scan(&exists)
	if err != nil {
		return fmt.Errorf("failed to verify recipe: %w", err)
	}
	if exists == 0 {
		return fmt.Errorf("recipe %s: %w", run.RecipeID, secondary.ErrNotFound)
	}

	var maxID int
	err = r.db.QueryRowContext(ctx,
		"SELECT COALESCE(MAX(CAST(SUBSTR(id, 5) AS INTEGER)), 0) FROM production_runs",
	).Scan(&maxID)
	if err != nil {
		return fmt.Errorf("failed to generate run ID: %w", err)
	}

	id := production.GenerateRunID(maxID)

	_, err = r.db.ExecContext(ctx,
		`INSERT INTO production_runs (id, recipe_id, status, yield_quantity, yield_unit, created_by)
		 VALUES (?, ?, ?, ?, ?, ?)`,
		id, run.RecipeID, run.Status, run.YieldQuantity, run.YieldUnit, run.CreatedBy,
	)
	if err != nil {
		return fmt.Errorf("failed to create run: %w", err)
	}

	run.ID = id
	return nil
}

// GetByID retrieves a run by its ID, without ingredient rows.
func (r *RunRepository) GetByID(ctx context.Context, id string) (*secondary.RunRecord, error) {
	row := r.db.QueryRowContext(ctx,
		"SELECT "+runColumns+" FROM production_runs WHERE id = ?", id,
	)

	record, err := scanRun(row)
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("run %s: %w", id, secondary.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get run: %w", err)
	}
	return record, nil
}

// AddIngredients bulk-inserts the planned consumption rows for a run.
// All rows are written in one transaction so a run either has its full
// plan or none of it.
func (r *RunRepository) AddIngredients(ctx context.Context, runID string, rows []*secondary.RunIngredientRecord) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	for _, row := range rows {
		_, err := tx.ExecContext(ctx,
			`INSERT INTO production_run_ingredients (run_id, item_id, expected_qty, actual_qty, unit, variance_percent)
			 VALUES (?, ?, ?, ?, ?, ?)`,
			runID, row.ItemID, row.ExpectedQty, row.ActualQty, row.Unit, row.VariancePercent,
		)
		if err != nil {
			return fmt.Errorf("failed to add run ingredient: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit run ingredients: %w", err)
	}
	return nil
}

// GetIngredients retrieves the consumption rows for a run.
func (r *RunRepository) GetIngredients(ctx context.Context, runID string) ([]*secondary.RunIngredientRecord, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT item_id, expected_qty, actual_qty, unit, variance_percent
		 FROM production_run_ingredients WHERE run_id = ?`,
		runID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to get run ingredients: %w", err)
	}
	defer rows.Close()

	var records []*secondary.RunIngredientRecord
	for rows.Next() {
		record := &secondary.RunIngredientRecord{}
		err := rows.Scan(&record.ItemID, &record.ExpectedQty, &record.ActualQty, &record.Unit, &record.VariancePercent)
		if err != nil {
			return nil, fmt.Errorf("failed to scan run ingredient: %w", err)
		}
		records = append(records, record)
	}

	return records, rows.Err()
}

// List retrieves runs matching the given filters, newest first.
func (r *RunRepository) List(ctx context.Context, filters secondary.RunFilters) ([]*secondary.RunRecord, error) {
	query := "SELECT " + runColumns + " FROM production_runs WHERE 1=1"
	args := []any{}

	if filters.RecipeID != "" {
		query += " AND recipe_id = ?"
		args = append(args, filters.RecipeID)
	}
	if filters.Status != "" {
		query += " AND status = ?"
		args = append(args, filters.Status)
	}

	query += " ORDER BY created_at DESC"

	if filters.Limit > 0 {
		query += " LIMIT ?"
		args = append(args, filters.Limit)
	}

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list runs: %w", err)
	}
	defer rows.Close()

	var runs []*secondary.RunRecord
	for rows.Next() {
		record, err := scanRun(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan run: %w", err)
		}
		runs = append(runs, record)
	}

	return runs, rows.Err()
}

// ListOrphans retrieves in_progress runs needing reconciliation: any run
// with zero ingredient rows (stranded by a failed plan insert), or any
// in_progress run created before the cutoff.
func (r *RunRepository) ListOrphans(ctx context.Context, before time.Time) ([]*secondary.RunRecord, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT `+runColumns+` FROM production_runs
		 WHERE status = 'in_progress'
		   AND (created_at < ?
		        OR id NOT IN (SELECT DISTINCT run_id FROM production_run_ingredients))
		 ORDER BY created_at`,
		before.UTC(),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list orphaned runs: %w", err)
	}
	defer rows.Close()

	var runs []*secondary.RunRecord
	for rows.Next() {
		record, err := scanRun(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan run: %w", err)
		}
		runs = append(runs, record)
	}

	return runs, rows.Err()
}

// MarkFailed transitions an in_progress run to failed. Terminal runs are
// never re-entered; marking one fails with ErrRunNotInProgress.
func (r *RunRepository) MarkFailed(ctx context.Context, id string, completedAt time.Time, reason string) error {
	var failureReason sql.NullString
	if reason != "" {
		failureReason = sql.NullString{String: reason, Valid: true}
	}

	result, err := r.db.ExecContext(ctx,
		`UPDATE production_runs SET status = 'failed', completed_at = ?, failure_reason = ?
		 WHERE id = ? AND status = 'in_progress'`,
		completedAt.UTC(), failureReason, id,
	)
	if err != nil {
		return fmt.Errorf("failed to mark run failed: %w", err)
	}

	rowsAffected, _ := result.RowsAffected()
	if rowsAffected == 0 {
		var exists int
		if err := r.db.QueryRowContext(ctx,
			"SELECT COUNT(*) FROM production_runs WHERE id = ?", id,
		).Scan(&exists); err != nil {
			return fmt.Errorf("failed to verify run: %w", err)
		}
		if exists == 0 {
			return fmt.Errorf("run %s: %w", id, secondary.ErrNotFound)
		}
		return fmt.Errorf("run %s: %w", id, secondary.ErrRunNotInProgress)
	}

	return nil
}

// Ensure RunRepository implements the interface
var _ secondary.ProductionRunRepository = (*RunRepository)(nil)
