package app

import (
	"context"
	"errors"
	"fmt"
	"math/rand"
	"time"

	"github.com/example/prepline/internal/core/production"
	"github.com/example/prepline/internal/ports/primary"
	"github.com/example/prepline/internal/ports/secondary"
)

// ProductionServiceImpl implements the ProductionService interface.
// It is the write-path orchestrator: a linear chain of store calls with
// the ledger completion as the only atomic step. No in-process state is
// held across invocations.
type ProductionServiceImpl struct {
	recipeRepo    secondary.RecipeRepository
	inventoryRepo secondary.InventoryRepository
	runRepo       secondary.ProductionRunRepository
	ledger        secondary.InventoryLedger
	actors        secondary.ActorProvider

	// Injected for deterministic tests.
	now   func() time.Time
	nonce func() uint32
}

// NewProductionService creates a new ProductionService with injected dependencies.
func NewProductionService(
	recipeRepo secondary.RecipeRepository,
	inventoryRepo secondary.InventoryRepository,
	runRepo secondary.ProductionRunRepository,
	ledger secondary.InventoryLedger,
	actors secondary.ActorProvider,
) *ProductionServiceImpl {
	return &ProductionServiceImpl{
		recipeRepo:    recipeRepo,
		inventoryRepo: inventoryRepo,
		runRepo:       runRepo,
		ledger:        ledger,
		actors:        actors,
		now:           time.Now,
		nonce:         rand.Uint32,
	}
}

// ExecuteQuickCook runs the full write path for a recipe.
//
// Validation failures (unknown recipe, no ingredients, no yield, missing
// ingredient items) surface as errors before any write. From output
// resolution onward, failures are encoded on the result with the failing
// stage so callers can see any run left behind for reconciliation.
func (s *ProductionServiceImpl) ExecuteQuickCook(ctx context.Context, req primary.ExecuteRequest) (*primary.ExecuteResult, error) {
	// 1. Assemble the preview; this also runs the cook guard.
	preview, recipe, err := assemblePreview(ctx, s.recipeRepo, s.inventoryRepo, req.RecipeID)
	if err != nil {
		return nil, err
	}
	if preview.HasMissingItems {
		return nil, fmt.Errorf("recipe %s references ingredient items that do not exist", recipe.ID)
	}

	// 2. Operator identity for the audit trail.
	identity, err := s.actors.CurrentActor(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to get operator identity: %w", err)
	}

	result := &primary.ExecuteResult{
		HadInsufficientStock:    preview.HasInsufficientStock,
		HadUnverifiedConversion: preview.HasUnverifiedConversion,
		ProducedQuantity:        recipe.YieldQuantity,
		ProducedUnit:            recipe.YieldUnit,
		TotalCost:               preview.TotalCost,
	}

	// 3. Resolve or create the finished-goods item. Aborts before any
	// run exists, so a failure here leaves no partial state.
	resolved, err := s.resolveOutput(ctx, recipe)
	if err != nil {
		result.FailedStage = primary.StageResolveOutput
		result.Message = err.Error()
		return result, nil
	}
	result.OutputItemID = resolved.ItemID
	result.OutputItemName = resolved.ItemName

	// 4. Create the run row. Failure here is fatal with no side effects.
	run := &secondary.RunRecord{
		RecipeID:      recipe.ID,
		Status:        string(production.InitialStatus()),
		YieldQuantity: recipe.YieldQuantity,
		YieldUnit:     recipe.YieldUnit,
		CreatedBy:     identity.Name,
	}
	if err := s.runRepo.Create(ctx, run); err != nil {
		result.FailedStage = primary.StageCreateRun
		result.Message = fmt.Sprintf("failed to create run: %v", err)
		return result, nil
	}
	result.RunID = run.ID

	// 5. Persist planned consumption: expected = actual = recipe
	// quantity, variance zero. On failure the run stays dangling
	// in_progress with no rows; the reconciler converges it to failed.
	// No auto-retry at this layer.
	rows := make([]*secondary.RunIngredientRecord, len(recipe.Ingredients))
	for i, ing := range recipe.Ingredients {
		rows[i] = &secondary.RunIngredientRecord{
			ItemID:          ing.ItemID,
			ExpectedQty:     ing.Quantity,
			ActualQty:       ing.Quantity,
			Unit:            ing.Unit,
			VariancePercent: 0,
		}
	}
	if err := s.runRepo.AddIngredients(ctx, run.ID, rows); err != nil {
		result.FailedStage = primary.StagePersistIngredients
		result.Message = fmt.Sprintf("failed to persist run ingredients: %v", err)
		return result, nil
	}

	// 6. The sole atomic step: the ledger deducts every input and
	// credits the output as one unit of work.
	completion := secondary.CompleteRunRequest{
		RunID:         run.ID,
		OutputItemID:  resolved.ItemID,
		YieldQuantity: recipe.YieldQuantity,
		YieldUnit:     recipe.YieldUnit,
		Consumption:   consumptionLines(preview),
	}
	if err := s.ledger.CompleteRun(ctx, completion); err != nil {
		// The outcome of an issued completion can be ambiguous (timeout,
		// or a retry racing an earlier attempt). Re-check run status
		// rather than blindly recompleting.
		if current, checkErr := s.runRepo.GetByID(ctx, run.ID); checkErr == nil &&
			current.Status == string(production.StatusCompleted) {
			result.Success = true
			return result, nil
		}
		result.FailedStage = primary.StageCompleteRun
		result.Message = fmt.Sprintf("ledger completion failed: %v", err)
		return result, nil
	}

	result.Success = true
	return result, nil
}

// ResolveOutput resolves or creates the finished-goods item for a recipe
// without executing a run.
func (s *ProductionServiceImpl) ResolveOutput(ctx context.Context, recipeID string) (*primary.ResolvedOutput, error) {
	recipe, err := s.recipeRepo.GetByID(ctx, recipeID)
	if err != nil {
		return nil, fmt.Errorf("recipe not found: %w", err)
	}
	return s.resolveOutput(ctx, recipe)
}

// resolveOutput implements the idempotent resolve-or-create algorithm:
// linked item wins, then adoption by exact name, then creation. A create
// losing the race to a concurrent run converges on the winner via the
// unique name constraint.
func (s *ProductionServiceImpl) resolveOutput(ctx context.Context, recipe *secondary.RecipeRecord) (*primary.ResolvedOutput, error) {
	// Fast path: already linked, no writes.
	if recipe.OutputItemID != "" {
		resolved := &primary.ResolvedOutput{ItemID: recipe.OutputItemID, LinkPersisted: true}
		if item, err := s.inventoryRepo.GetByID(ctx, recipe.OutputItemID); err == nil {
			resolved.ItemName = item.Name
		}
		return resolved, nil
	}

	// Adopt an existing item whose name matches the recipe exactly.
	item, err := s.inventoryRepo.FindByName(ctx, recipe.Name)
	if err == nil {
		return s.linkOutput(ctx, recipe.ID, item, false), nil
	}
	if !errors.Is(err, secondary.ErrNotFound) {
		return nil, fmt.Errorf("failed to search for output item: %w", err)
	}

	// Create the finished-goods item. Stock starts at zero and cost
	// unknown; the ledger credits it on completion.
	created := &secondary.ItemRecord{
		Name:          recipe.Name,
		ExternalCode:  production.OutputCode(recipe.Name, s.now(), s.nonce()),
		NativeUnit:    recipe.YieldUnit,
		StockLevel:    0,
		CostPerUnit:   0,
		Description:   fmt.Sprintf("Created by prepline for recipe %s", recipe.ID),
		ShelfLifeDays: recipe.ShelfLifeDays,
	}
	err = s.inventoryRepo.Create(ctx, created)
	if errors.Is(err, secondary.ErrDuplicateName) {
		// Lost the create race: someone else made it, converge on theirs.
		winner, findErr := s.inventoryRepo.FindByName(ctx, recipe.Name)
		if findErr != nil {
			return nil, fmt.Errorf("failed to converge on concurrently created item: %w", findErr)
		}
		return s.linkOutput(ctx, recipe.ID, winner, false), nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to create output item: %w", err)
	}

	resolved := s.linkOutput(ctx, recipe.ID, created, true)
	return resolved, nil
}

// linkOutput persists the output link best-effort. A failed link is
// non-fatal for this run - the unique name index makes the next run
// adopt the same item - but it is reported so callers can surface it.
func (s *ProductionServiceImpl) linkOutput(ctx context.Context, recipeID string, item *secondary.ItemRecord, created bool) *primary.ResolvedOutput {
	resolved := &primary.ResolvedOutput{
		ItemID:        item.ID,
		ItemName:      item.Name,
		Created:       created,
		Adopted:       !created,
		LinkPersisted: true,
	}
	if err := s.recipeRepo.SetOutputItem(ctx, recipeID, item.ID); err != nil {
		resolved.LinkPersisted = false
	}
	return resolved
}

// GetRun retrieves a run by ID.
func (s *ProductionServiceImpl) GetRun(ctx context.Context, runID string) (*primary.Run, error) {
	record, err := s.runRepo.GetByID(ctx, runID)
	if err != nil {
		return nil, fmt.Errorf("run not found: %w", err)
	}
	return recordToRun(record), nil
}

// GetRunIngredients retrieves the consumption rows of a run.
func (s *ProductionServiceImpl) GetRunIngredients(ctx context.Context, runID string) ([]*primary.RunIngredient, error) {
	records, err := s.runRepo.GetIngredients(ctx, runID)
	if err != nil {
		return nil, fmt.Errorf("failed to get run ingredients: %w", err)
	}
	rows := make([]*primary.RunIngredient, len(records))
	for i, r := range records {
		rows[i] = &primary.RunIngredient{
			ItemID:          r.ItemID,
			ExpectedQty:     r.ExpectedQty,
			ActualQty:       r.ActualQty,
			Unit:            r.Unit,
			VariancePercent: r.VariancePercent,
		}
	}
	return rows, nil
}

// ListRuns lists runs with optional filters.
func (s *ProductionServiceImpl) ListRuns(ctx context.Context, filters primary.RunFilters) ([]*primary.Run, error) {
	records, err := s.runRepo.List(ctx, secondary.RunFilters{
		RecipeID: filters.RecipeID,
		Status:   filters.Status,
		Limit:    filters.Limit,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to list runs: %w", err)
	}

	runs := make([]*primary.Run, len(records))
	for i, r := range records {
		runs[i] = recordToRun(r)
	}
	return runs, nil
}

// Helper functions

func consumptionLines(preview production.Preview) []secondary.ConsumptionLine {
	list := preview.ConsumptionList()
	lines := make([]secondary.ConsumptionLine, len(list))
	for i, c := range list {
		lines[i] = secondary.ConsumptionLine{
			ItemID:   c.ItemID,
			Quantity: c.Quantity,
			Unit:     string(c.Unit),
		}
	}
	return lines
}

func recordToRun(r *secondary.RunRecord) *primary.Run {
	return &primary.Run{
		ID:            r.ID,
		RecipeID:      r.RecipeID,
		Status:        r.Status,
		YieldQuantity: r.YieldQuantity,
		YieldUnit:     r.YieldUnit,
		CreatedBy:     r.CreatedBy,
		FailureReason: r.FailureReason,
		CreatedAt:     r.CreatedAt,
		CompletedAt:   r.CompletedAt,
	}
}

// Ensure ProductionServiceImpl implements the interface
var _ primary.ProductionService = (*ProductionServiceImpl)(nil)
