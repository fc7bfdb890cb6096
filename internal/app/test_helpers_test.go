package app

import (
	"context"
	"sync"
	"time"

	"github.com/example/prepline/internal/core/production"
	"github.com/example/prepline/internal/ports/secondary"
)

// ============================================================================
// Mock Implementations
// ============================================================================

// mockInventoryRepo implements secondary.InventoryRepository for testing.
type mockInventoryRepo struct {
	mu        sync.Mutex
	items     map[string]*secondary.ItemRecord
	nextID    int
	getErr    error
	findErr   error
	createErr error
	listErr   error
	// When true, the first Create returns ErrDuplicateName and inserts the
	// item under a different ID, simulating a lost create race.
	loseCreateRace bool
}

func newMockInventoryRepo() *mockInventoryRepo {
	return &mockInventoryRepo{
		items:  make(map[string]*secondary.ItemRecord),
		nextID: 1,
	}
}

func (m *mockInventoryRepo) addItem(item *secondary.ItemRecord) {
	m.items[item.ID] = item
}

func (m *mockInventoryRepo) GetByID(ctx context.Context, id string) (*secondary.ItemRecord, error) {
	if m.getErr != nil {
		return nil, m.getErr
	}
	item, ok := m.items[id]
	if !ok {
		return nil, secondary.ErrNotFound
	}
	return item, nil
}

func (m *mockInventoryRepo) GetByIDs(ctx context.Context, ids []string) (map[string]*secondary.ItemRecord, error) {
	if m.getErr != nil {
		return nil, m.getErr
	}
	result := make(map[string]*secondary.ItemRecord)
	for _, id := range ids {
		if item, ok := m.items[id]; ok {
			result[id] = item
		}
	}
	return result, nil
}

func (m *mockInventoryRepo) FindByName(ctx context.Context, name string) (*secondary.ItemRecord, error) {
	if m.findErr != nil {
		return nil, m.findErr
	}
	norm := production.NormalizeName(name)
	for _, item := range m.items {
		if production.NormalizeName(item.Name) == norm {
			return item, nil
		}
	}
	return nil, secondary.ErrNotFound
}

func (m *mockInventoryRepo) Create(ctx context.Context, item *secondary.ItemRecord) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.createErr != nil {
		return m.createErr
	}
	if m.loseCreateRace {
		m.loseCreateRace = false
		winner := *item
		winner.ID = m.generateID()
		m.items[winner.ID] = &winner
		return secondary.ErrDuplicateName
	}
	norm := production.NormalizeName(item.Name)
	for _, existing := range m.items {
		if production.NormalizeName(existing.Name) == norm {
			return secondary.ErrDuplicateName
		}
	}
	item.ID = m.generateID()
	m.items[item.ID] = item
	return nil
}

func (m *mockInventoryRepo) generateID() string {
	for {
		id := production.GenerateItemID(m.nextID - 1)
		m.nextID++
		if _, exists := m.items[id]; !exists {
			return id
		}
	}
}

func (m *mockInventoryRepo) List(ctx context.Context, filters secondary.ItemFilters) ([]*secondary.ItemRecord, error) {
	if m.listErr != nil {
		return nil, m.listErr
	}
	var result []*secondary.ItemRecord
	for _, item := range m.items {
		result = append(result, item)
	}
	return result, nil
}

// mockRecipeRepo implements secondary.RecipeRepository for testing.
type mockRecipeRepo struct {
	recipes      map[string]*secondary.RecipeRecord
	getErr       error
	listErr      error
	setOutputErr error
	linkedItems  map[string]string // recipeID -> itemID
}

func newMockRecipeRepo() *mockRecipeRepo {
	return &mockRecipeRepo{
		recipes:     make(map[string]*secondary.RecipeRecord),
		linkedItems: make(map[string]string),
	}
}

func (m *mockRecipeRepo) GetByID(ctx context.Context, id string) (*secondary.RecipeRecord, error) {
	if m.getErr != nil {
		return nil, m.getErr
	}
	recipe, ok := m.recipes[id]
	if !ok {
		return nil, secondary.ErrNotFound
	}
	return recipe, nil
}

func (m *mockRecipeRepo) List(ctx context.Context, filters secondary.RecipeFilters) ([]*secondary.RecipeRecord, error) {
	if m.listErr != nil {
		return nil, m.listErr
	}
	var result []*secondary.RecipeRecord
	for _, r := range m.recipes {
		result = append(result, r)
	}
	return result, nil
}

func (m *mockRecipeRepo) SetOutputItem(ctx context.Context, recipeID, itemID string) error {
	if m.setOutputErr != nil {
		return m.setOutputErr
	}
	recipe, ok := m.recipes[recipeID]
	if !ok {
		return secondary.ErrNotFound
	}
	recipe.OutputItemID = itemID
	m.linkedItems[recipeID] = itemID
	return nil
}

// mockRunRepo implements secondary.ProductionRunRepository for testing.
type mockRunRepo struct {
	mu                sync.Mutex
	runs              map[string]*secondary.RunRecord
	ingredients       map[string][]*secondary.RunIngredientRecord
	nextID            int
	createErr         error
	addIngredientsErr error
	getErr            error
	listErr           error
	markFailedErr     error
	orphans           []*secondary.RunRecord
	markFailedCalls   []string
}

func newMockRunRepo() *mockRunRepo {
	return &mockRunRepo{
		runs:        make(map[string]*secondary.RunRecord),
		ingredients: make(map[string][]*secondary.RunIngredientRecord),
		nextID:      1,
	}
}

func (m *mockRunRepo) Create(ctx context.Context, run *secondary.RunRecord) error {
	if m.createErr != nil {
		return m.createErr
	}
	run.ID = production.GenerateRunID(m.nextID - 1)
	m.nextID++
	m.runs[run.ID] = run
	return nil
}

func (m *mockRunRepo) GetByID(ctx context.Context, id string) (*secondary.RunRecord, error) {
	if m.getErr != nil {
		return nil, m.getErr
	}
	run, ok := m.runs[id]
	if !ok {
		return nil, secondary.ErrNotFound
	}
	return run, nil
}

func (m *mockRunRepo) AddIngredients(ctx context.Context, runID string, rows []*secondary.RunIngredientRecord) error {
	if m.addIngredientsErr != nil {
		return m.addIngredientsErr
	}
	m.ingredients[runID] = rows
	return nil
}

func (m *mockRunRepo) GetIngredients(ctx context.Context, runID string) ([]*secondary.RunIngredientRecord, error) {
	return m.ingredients[runID], nil
}

func (m *mockRunRepo) List(ctx context.Context, filters secondary.RunFilters) ([]*secondary.RunRecord, error) {
	if m.listErr != nil {
		return nil, m.listErr
	}
	var result []*secondary.RunRecord
	for _, r := range m.runs {
		if filters.Status != "" && r.Status != filters.Status {
			continue
		}
		result = append(result, r)
	}
	return result, nil
}

func (m *mockRunRepo) ListOrphans(ctx context.Context, before time.Time) ([]*secondary.RunRecord, error) {
	if m.listErr != nil {
		return nil, m.listErr
	}
	return m.orphans, nil
}

func (m *mockRunRepo) MarkFailed(ctx context.Context, id string, completedAt time.Time, reason string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.markFailedErr != nil {
		return m.markFailedErr
	}
	run, ok := m.runs[id]
	if !ok {
		return secondary.ErrNotFound
	}
	if run.Status != string(production.StatusInProgress) {
		return secondary.ErrRunNotInProgress
	}
	run.Status = string(production.StatusFailed)
	run.FailureReason = reason
	m.markFailedCalls = append(m.markFailedCalls, id)
	return nil
}

// mockLedger implements secondary.InventoryLedger for testing.
type mockLedger struct {
	completeErr error
	requests    []secondary.CompleteRunRequest
	// runRepo, when set, lets a successful completion flip the run status
	// the way the real ledger does.
	runRepo *mockRunRepo
	// completeAnyway marks the run completed even when completeErr is
	// returned, simulating an ambiguous outcome.
	completeAnyway bool
}

func (m *mockLedger) CompleteRun(ctx context.Context, req secondary.CompleteRunRequest) error {
	m.requests = append(m.requests, req)
	if m.completeErr != nil {
		if m.completeAnyway && m.runRepo != nil {
			if run, ok := m.runRepo.runs[req.RunID]; ok {
				run.Status = string(production.StatusCompleted)
			}
		}
		return m.completeErr
	}
	if m.runRepo != nil {
		if run, ok := m.runRepo.runs[req.RunID]; ok {
			run.Status = string(production.StatusCompleted)
		}
	}
	return nil
}

// mockActorProvider implements secondary.ActorProvider for testing.
type mockActorProvider struct {
	name string
	err  error
}

func (m *mockActorProvider) CurrentActor(ctx context.Context) (*secondary.Actor, error) {
	if m.err != nil {
		return nil, m.err
	}
	name := m.name
	if name == "" {
		name = "test-operator"
	}
	return &secondary.Actor{Name: name}, nil
}

// ============================================================================
// Fixture builders
// ============================================================================

func fixtureMarinara(recipes *mockRecipeRepo, items *mockInventoryRepo) *secondary.RecipeRecord {
	items.addItem(&secondary.ItemRecord{
		ID: "ITEM-001", Name: "Tomatoes", NativeUnit: "lb", StockLevel: 40, CostPerUnit: 2.00,
	})
	items.addItem(&secondary.ItemRecord{
		ID: "ITEM-002", Name: "Garlic", NativeUnit: "lb", StockLevel: 6, CostPerUnit: 4.00,
	})
	recipe := &secondary.RecipeRecord{
		ID:            "RCP-001",
		Name:          "House Marinara",
		YieldQuantity: 1,
		YieldUnit:     "gal",
		ShelfLifeDays: 5,
		Ingredients: []*secondary.RecipeIngredientRecord{
			{ItemID: "ITEM-001", Quantity: 5, Unit: "lb"},
			{ItemID: "ITEM-002", Quantity: 0.5, Unit: "lb"},
		},
	}
	recipes.recipes[recipe.ID] = recipe
	return recipe
}
