package app

import (
	"context"
	"errors"
	"math"
	"testing"
	"time"

	"github.com/example/prepline/internal/core/production"
	"github.com/example/prepline/internal/ports/primary"
	"github.com/example/prepline/internal/ports/secondary"
)

func newTestProductionService(
	recipes *mockRecipeRepo,
	items *mockInventoryRepo,
	runs *mockRunRepo,
	ledger *mockLedger,
) *ProductionServiceImpl {
	ledger.runRepo = runs
	svc := NewProductionService(recipes, items, runs, ledger, &mockActorProvider{name: "chef-dana"})
	svc.now = func() time.Time { return time.Date(2026, 3, 14, 9, 30, 0, 0, time.UTC) }
	svc.nonce = func() uint32 { return 0xBEEF }
	return svc
}

func TestProductionService_ExecuteQuickCook(t *testing.T) {
	recipes := newMockRecipeRepo()
	items := newMockInventoryRepo()
	runs := newMockRunRepo()
	ledger := &mockLedger{}
	fixtureMarinara(recipes, items)
	svc := newTestProductionService(recipes, items, runs, ledger)

	result, err := svc.ExecuteQuickCook(context.Background(), primary.ExecuteRequest{RecipeID: "RCP-001"})
	if err != nil {
		t.Fatalf("ExecuteQuickCook failed: %v", err)
	}

	if !result.Success {
		t.Fatalf("expected success, got stage %s: %s", result.FailedStage, result.Message)
	}
	if result.RunID != "RUN-001" {
		t.Errorf("expected RUN-001, got %s", result.RunID)
	}
	if math.Abs(result.TotalCost-12.00) > 1e-9 {
		t.Errorf("expected total cost 12.00, got %v", result.TotalCost)
	}
	if result.ProducedQuantity != 1 || result.ProducedUnit != "gal" {
		t.Errorf("expected yield 1 gal, got %v %s", result.ProducedQuantity, result.ProducedUnit)
	}
	if result.OutputItemName != "House Marinara" {
		t.Errorf("expected output item named after recipe, got %q", result.OutputItemName)
	}

	// Output item was created and linked back to the recipe.
	output, err := items.GetByID(context.Background(), result.OutputItemID)
	if err != nil {
		t.Fatalf("output item not created: %v", err)
	}
	if output.NativeUnit != "gal" {
		t.Errorf("expected output native unit gal, got %s", output.NativeUnit)
	}
	if output.ShelfLifeDays != 5 {
		t.Errorf("expected shelf life inherited from recipe, got %d", output.ShelfLifeDays)
	}
	if recipes.linkedItems["RCP-001"] != result.OutputItemID {
		t.Error("expected recipe linked to output item")
	}

	// The run row carries the operator and reached completed.
	run := runs.runs["RUN-001"]
	if run.CreatedBy != "chef-dana" {
		t.Errorf("expected creator chef-dana, got %s", run.CreatedBy)
	}
	if run.Status != string(production.StatusCompleted) {
		t.Errorf("expected run completed, got %s", run.Status)
	}

	// Consumption rows stored in recipe units, actual equals expected.
	rows := runs.ingredients["RUN-001"]
	if len(rows) != 2 {
		t.Fatalf("expected 2 consumption rows, got %d", len(rows))
	}
	for _, row := range rows {
		if row.ExpectedQty != row.ActualQty || row.VariancePercent != 0 {
			t.Errorf("row %s: expected=%v actual=%v variance=%v", row.ItemID, row.ExpectedQty, row.ActualQty, row.VariancePercent)
		}
	}

	// The ledger got native-unit deductions plus the output credit.
	if len(ledger.requests) != 1 {
		t.Fatalf("expected 1 ledger call, got %d", len(ledger.requests))
	}
	req := ledger.requests[0]
	if req.OutputItemID != result.OutputItemID || req.YieldQuantity != 1 {
		t.Errorf("unexpected ledger request: %+v", req)
	}
	if len(req.Consumption) != 2 || req.Consumption[0].Quantity != 5 || req.Consumption[1].Quantity != 0.5 {
		t.Errorf("unexpected consumption lines: %+v", req.Consumption)
	}
}

func TestProductionService_ExecuteQuickCook_InsufficientStockStillExecutes(t *testing.T) {
	recipes := newMockRecipeRepo()
	items := newMockInventoryRepo()
	runs := newMockRunRepo()
	ledger := &mockLedger{}
	fixtureMarinara(recipes, items)
	items.items["ITEM-001"].StockLevel = 3 // recipe needs 5
	svc := newTestProductionService(recipes, items, runs, ledger)

	result, err := svc.ExecuteQuickCook(context.Background(), primary.ExecuteRequest{RecipeID: "RCP-001"})
	if err != nil {
		t.Fatalf("ExecuteQuickCook failed: %v", err)
	}
	if !result.Success {
		t.Fatalf("insufficiency is advisory, expected success: %s", result.Message)
	}
	if !result.HadInsufficientStock {
		t.Error("expected HadInsufficientStock flag on the result")
	}
}

func TestProductionService_ExecuteQuickCook_MissingItemRejected(t *testing.T) {
	recipes := newMockRecipeRepo()
	items := newMockInventoryRepo()
	runs := newMockRunRepo()
	recipe := fixtureMarinara(recipes, items)
	recipe.Ingredients[0].ItemID = "ITEM-404"
	svc := newTestProductionService(recipes, items, runs, &mockLedger{})

	_, err := svc.ExecuteQuickCook(context.Background(), primary.ExecuteRequest{RecipeID: "RCP-001"})
	if err == nil {
		t.Fatal("expected error for missing ingredient item")
	}
	if len(runs.runs) != 0 {
		t.Error("no run may exist after a pre-write rejection")
	}
}

func TestProductionService_ExecuteQuickCook_IngredientPersistFailureLeavesRunDangling(t *testing.T) {
	recipes := newMockRecipeRepo()
	items := newMockInventoryRepo()
	runs := newMockRunRepo()
	ledger := &mockLedger{}
	fixtureMarinara(recipes, items)
	runs.addIngredientsErr = errors.New("disk full")
	svc := newTestProductionService(recipes, items, runs, ledger)

	result, err := svc.ExecuteQuickCook(context.Background(), primary.ExecuteRequest{RecipeID: "RCP-001"})
	if err != nil {
		t.Fatalf("stage failures are reported on the result, not as errors: %v", err)
	}

	if result.Success {
		t.Fatal("expected failure result")
	}
	if result.FailedStage != primary.StagePersistIngredients {
		t.Errorf("expected stage %s, got %s", primary.StagePersistIngredients, result.FailedStage)
	}
	if result.RunID == "" {
		t.Error("expected the dangling run ID on the result")
	}
	// No rollback: the run stays in_progress for the reconciler.
	if runs.runs[result.RunID].Status != string(production.StatusInProgress) {
		t.Errorf("expected run left in_progress, got %s", runs.runs[result.RunID].Status)
	}
	if len(ledger.requests) != 0 {
		t.Error("ledger must not be invoked after an earlier stage fails")
	}
}

func TestProductionService_ExecuteQuickCook_LedgerFailure(t *testing.T) {
	recipes := newMockRecipeRepo()
	items := newMockInventoryRepo()
	runs := newMockRunRepo()
	ledger := &mockLedger{completeErr: errors.New("database is locked")}
	fixtureMarinara(recipes, items)
	svc := newTestProductionService(recipes, items, runs, ledger)

	result, err := svc.ExecuteQuickCook(context.Background(), primary.ExecuteRequest{RecipeID: "RCP-001"})
	if err != nil {
		t.Fatalf("stage failures are reported on the result, not as errors: %v", err)
	}
	if result.Success || result.FailedStage != primary.StageCompleteRun {
		t.Errorf("expected complete_run failure, got success=%v stage=%s", result.Success, result.FailedStage)
	}
	if runs.runs[result.RunID].Status != string(production.StatusInProgress) {
		t.Error("expected run left in_progress after failed completion")
	}
}

func TestProductionService_ExecuteQuickCook_AmbiguousCompletionRecovered(t *testing.T) {
	recipes := newMockRecipeRepo()
	items := newMockInventoryRepo()
	runs := newMockRunRepo()
	// The completion errors out but the status flip actually landed.
	ledger := &mockLedger{completeErr: errors.New("connection reset"), completeAnyway: true}
	fixtureMarinara(recipes, items)
	svc := newTestProductionService(recipes, items, runs, ledger)

	result, err := svc.ExecuteQuickCook(context.Background(), primary.ExecuteRequest{RecipeID: "RCP-001"})
	if err != nil {
		t.Fatalf("ExecuteQuickCook failed: %v", err)
	}
	if !result.Success {
		t.Errorf("expected success after status re-check, got stage %s", result.FailedStage)
	}
}

func TestProductionService_ResolveOutput_Idempotent(t *testing.T) {
	recipes := newMockRecipeRepo()
	items := newMockInventoryRepo()
	fixtureMarinara(recipes, items)
	svc := newTestProductionService(recipes, items, newMockRunRepo(), &mockLedger{})

	first, err := svc.ResolveOutput(context.Background(), "RCP-001")
	if err != nil {
		t.Fatalf("first resolve failed: %v", err)
	}
	if !first.Created || first.Adopted {
		t.Errorf("first resolve should create: %+v", first)
	}

	second, err := svc.ResolveOutput(context.Background(), "RCP-001")
	if err != nil {
		t.Fatalf("second resolve failed: %v", err)
	}
	if second.ItemID != first.ItemID {
		t.Errorf("resolution not idempotent: %s vs %s", first.ItemID, second.ItemID)
	}
	if second.Created {
		t.Error("second resolve must not create")
	}
}

func TestProductionService_ResolveOutput_AdoptsByName(t *testing.T) {
	recipes := newMockRecipeRepo()
	items := newMockInventoryRepo()
	fixtureMarinara(recipes, items)
	// Pre-existing unlinked item whose name matches case-insensitively.
	items.addItem(&secondary.ItemRecord{ID: "ITEM-077", Name: "house marinara", NativeUnit: "gal"})
	svc := newTestProductionService(recipes, items, newMockRunRepo(), &mockLedger{})

	resolved, err := svc.ResolveOutput(context.Background(), "RCP-001")
	if err != nil {
		t.Fatalf("ResolveOutput failed: %v", err)
	}
	if !resolved.Adopted || resolved.Created {
		t.Errorf("expected adoption: %+v", resolved)
	}
	if resolved.ItemID != "ITEM-077" {
		t.Errorf("expected ITEM-077 adopted, got %s", resolved.ItemID)
	}
	if recipes.linkedItems["RCP-001"] != "ITEM-077" {
		t.Error("expected adopted item linked to recipe")
	}
}

func TestProductionService_ResolveOutput_ConvergesOnLostCreateRace(t *testing.T) {
	recipes := newMockRecipeRepo()
	items := newMockInventoryRepo()
	fixtureMarinara(recipes, items)
	items.loseCreateRace = true
	svc := newTestProductionService(recipes, items, newMockRunRepo(), &mockLedger{})

	resolved, err := svc.ResolveOutput(context.Background(), "RCP-001")
	if err != nil {
		t.Fatalf("ResolveOutput failed: %v", err)
	}
	if resolved.Created {
		t.Error("losing the race must report adoption, not creation")
	}
	winner, err := items.FindByName(context.Background(), "House Marinara")
	if err != nil {
		t.Fatalf("winner item missing: %v", err)
	}
	if resolved.ItemID != winner.ID {
		t.Errorf("expected convergence on %s, got %s", winner.ID, resolved.ItemID)
	}
}

func TestProductionService_GetRunIngredients(t *testing.T) {
	recipes := newMockRecipeRepo()
	items := newMockInventoryRepo()
	runs := newMockRunRepo()
	ledger := &mockLedger{}
	fixtureMarinara(recipes, items)
	svc := newTestProductionService(recipes, items, runs, ledger)

	result, err := svc.ExecuteQuickCook(context.Background(), primary.ExecuteRequest{RecipeID: "RCP-001"})
	if err != nil || !result.Success {
		t.Fatalf("setup cook failed: %v %+v", err, result)
	}

	rows, err := svc.GetRunIngredients(context.Background(), result.RunID)
	if err != nil {
		t.Fatalf("GetRunIngredients failed: %v", err)
	}
	if len(rows) != 2 || rows[0].ItemID != "ITEM-001" {
		t.Errorf("unexpected rows: %+v", rows)
	}
}
