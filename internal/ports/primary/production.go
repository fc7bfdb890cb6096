package primary

import "context"

// ProductionService defines the primary port for executing quick cooks
// and inspecting production runs.
type ProductionService interface {
	// ExecuteQuickCook runs the full write path for a recipe: resolve
	// the output item, create the run, persist planned consumption, and
	// invoke the ledger's atomic completion.
	//
	// Validation and lookup failures before any write surface as
	// errors. From output resolution onward, failures are reported on
	// the result (Success=false with the failing stage) so callers can
	// see any run that was left behind for reconciliation.
	ExecuteQuickCook(ctx context.Context, req ExecuteRequest) (*ExecuteResult, error)

	// ResolveOutput resolves or creates the finished-goods item for a
	// recipe without executing a run. Idempotent on the happy path.
	ResolveOutput(ctx context.Context, recipeID string) (*ResolvedOutput, error)

	// GetRun retrieves a run by ID.
	GetRun(ctx context.Context, runID string) (*Run, error)

	// GetRunIngredients retrieves the consumption rows of a run.
	GetRunIngredients(ctx context.Context, runID string) ([]*RunIngredient, error)

	// ListRuns lists runs with optional filters, newest first.
	ListRuns(ctx context.Context, filters RunFilters) ([]*Run, error)
}

// ExecuteRequest contains parameters for executing a quick cook.
type ExecuteRequest struct {
	RecipeID string
}

// Stage identifies the orchestration step at which an execution failed.
type Stage string

const (
	StageResolveOutput      Stage = "resolve_output"
	StageCreateRun          Stage = "create_run"
	StagePersistIngredients Stage = "persist_ingredients"
	StageCompleteRun        Stage = "complete_run"
)

// ExecuteResult contains the outcome of a quick cook.
type ExecuteResult struct {
	Success                 bool
	RunID                   string // Set once the run row exists, even on failure
	OutputItemID            string
	OutputItemName          string
	ProducedQuantity        float64
	ProducedUnit            string
	TotalCost               float64
	HadInsufficientStock    bool   // Advisory flag carried from the preview
	HadUnverifiedConversion bool   // Advisory flag carried from the preview
	FailedStage             Stage  // Empty on success
	Message                 string // Human-readable failure message, empty on success
}

// ResolvedOutput contains the outcome of output resolution.
type ResolvedOutput struct {
	ItemID        string
	ItemName      string
	Created       bool // True when a new item was created for this recipe
	Adopted       bool // True when an existing unlinked item was adopted by name
	LinkPersisted bool // False when the recipe link write failed; resolution still succeeded
}

// Run represents a production run at the port boundary.
type Run struct {
	ID            string
	RecipeID      string
	Status        string
	YieldQuantity float64
	YieldUnit     string
	CreatedBy     string
	FailureReason string
	CreatedAt     string
	CompletedAt   string
}

// RunIngredient is one consumption row of a run.
type RunIngredient struct {
	ItemID          string
	ExpectedQty     float64
	ActualQty       float64
	Unit            string
	VariancePercent float64
}

// RunFilters contains filter options for listing runs.
type RunFilters struct {
	RecipeID string
	Status   string
	Limit    int
}
