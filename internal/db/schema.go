package db

// SchemaSQL is the complete schema for fresh prepline installs.
//
// # Schema Drift Protection
//
// This is the SINGLE SOURCE OF TRUTH for the database schema. All
// repository and ledger tests create their database from GetSchemaSQL(),
// so a repository referencing a column that does not exist here fails
// immediately with "no such column" at test time. Do not hardcode
// CREATE TABLE statements in test files.
//
// The unique index on items.name_norm is load-bearing: the output
// resolver relies on a constraint violation to detect a concurrent
// create of the same finished-goods item and converge instead of
// duplicating.
const SchemaSQL = `
-- Inventory items. Stock levels are written only by the ledger
-- completion transaction; the engine otherwise only creates items.
CREATE TABLE IF NOT EXISTS items (
	id TEXT PRIMARY KEY,
	name TEXT NOT NULL,
	name_norm TEXT NOT NULL UNIQUE,
	external_code TEXT,
	native_unit TEXT NOT NULL,
	stock_level REAL NOT NULL DEFAULT 0,
	cost_per_unit REAL,
	description TEXT,
	shelf_life_days INTEGER,
	created_at DATETIME DEFAULT CURRENT_TIMESTAMP,
	updated_at DATETIME DEFAULT CURRENT_TIMESTAMP
);

-- Prep recipes (bill of materials + target yield)
CREATE TABLE IF NOT EXISTS recipes (
	id TEXT PRIMARY KEY,
	name TEXT NOT NULL,
	yield_quantity REAL NOT NULL,
	yield_unit TEXT NOT NULL,
	output_item_id TEXT REFERENCES items(id),
	shelf_life_days INTEGER,
	created_at DATETIME DEFAULT CURRENT_TIMESTAMP,
	updated_at DATETIME DEFAULT CURRENT_TIMESTAMP
);

CREATE TABLE IF NOT EXISTS recipe_ingredients (
	recipe_id TEXT NOT NULL REFERENCES recipes(id) ON DELETE CASCADE,
	position INTEGER NOT NULL,
	item_id TEXT NOT NULL REFERENCES items(id),
	quantity REAL NOT NULL CHECK(quantity > 0),
	unit TEXT NOT NULL,
	note TEXT,
	PRIMARY KEY (recipe_id, position)
);

-- Production runs. Terminal rows (completed/failed) are never mutated.
CREATE TABLE IF NOT EXISTS production_runs (
	id TEXT PRIMARY KEY,
	recipe_id TEXT NOT NULL REFERENCES recipes(id),
	status TEXT NOT NULL CHECK(status IN ('in_progress', 'completed', 'failed')) DEFAULT 'in_progress',
	yield_quantity REAL NOT NULL,
	yield_unit TEXT NOT NULL,
	created_by TEXT NOT NULL,
	failure_reason TEXT,
	created_at DATETIME DEFAULT CURRENT_TIMESTAMP,
	completed_at DATETIME
);

CREATE TABLE IF NOT EXISTS production_run_ingredients (
	run_id TEXT NOT NULL REFERENCES production_runs(id) ON DELETE CASCADE,
	item_id TEXT NOT NULL REFERENCES items(id),
	expected_qty REAL NOT NULL,
	actual_qty REAL NOT NULL,
	unit TEXT NOT NULL,
	variance_percent REAL NOT NULL DEFAULT 0,
	PRIMARY KEY (run_id, item_id)
);

-- Costed audit trail. One row per deduction and per credit, written
-- inside the ledger completion transaction. Negative quantity is a
-- deduction, positive a credit; unit_cost snapshots the item cost at
-- movement time.
CREATE TABLE IF NOT EXISTS stock_movements (
	id INTEGER PRIMARY KEY AUTOINCREMENT,
	run_id TEXT REFERENCES production_runs(id),
	item_id TEXT NOT NULL REFERENCES items(id),
	quantity REAL NOT NULL,
	unit TEXT NOT NULL,
	unit_cost REAL NOT NULL DEFAULT 0,
	created_at DATETIME DEFAULT CURRENT_TIMESTAMP
);

CREATE INDEX IF NOT EXISTS idx_runs_status ON production_runs(status);
CREATE INDEX IF NOT EXISTS idx_movements_run ON stock_movements(run_id);
`

// GetSchemaSQL returns the authoritative schema for tests and InitSchema.
func GetSchemaSQL() string {
	return SchemaSQL
}

// InitSchema creates all tables if they do not exist.
func InitSchema() error {
	database, err := GetDB()
	if err != nil {
		return err
	}

	if _, err := database.Exec(SchemaSQL); err != nil {
		return err
	}

	return nil
}
