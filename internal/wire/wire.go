// Package wire provides dependency injection for the prepline application.
// It creates singleton services with lazy initialization.
package wire

import (
	"io"
	"log"
	"os"
	"sync"

	cliadapter "github.com/example/prepline/internal/adapters/cli"
	"github.com/example/prepline/internal/adapters/persistence"
	"github.com/example/prepline/internal/adapters/sqlite"
	"github.com/example/prepline/internal/app"
	"github.com/example/prepline/internal/db"
	"github.com/example/prepline/internal/ports/primary"
)

var (
	previewService   primary.PreviewService
	productionServ   primary.ProductionService
	reconcileService primary.ReconcileService
	inventoryService primary.InventoryService
	recipeService    primary.RecipeService
	once             sync.Once
)

// PreviewService returns the singleton PreviewService instance.
func PreviewService() primary.PreviewService {
	once.Do(initServices)
	return previewService
}

// ProductionService returns the singleton ProductionService instance.
func ProductionService() primary.ProductionService {
	once.Do(initServices)
	return productionServ
}

// ReconcileService returns the singleton ReconcileService instance.
func ReconcileService() primary.ReconcileService {
	once.Do(initServices)
	return reconcileService
}

// InventoryService returns the singleton InventoryService instance.
func InventoryService() primary.InventoryService {
	once.Do(initServices)
	return inventoryService
}

// RecipeService returns the singleton RecipeService instance.
func RecipeService() primary.RecipeService {
	once.Do(initServices)
	return recipeService
}

// initServices initializes all services and their dependencies.
// This is called once via sync.Once.
func initServices() {
	database, err := db.GetDB()
	if err != nil {
		log.Fatalf("failed to initialize database: %v", err)
	}

	// Repository adapters (secondary ports) with injected DB
	inventoryRepo := sqlite.NewInventoryRepository(database)
	recipeRepo := sqlite.NewRecipeRepository(database)
	runRepo := sqlite.NewRunRepository(database)
	ledger := sqlite.NewLedger(database)
	actors := persistence.NewActorProvider()

	// Services (primary port implementations)
	previewService = app.NewPreviewService(recipeRepo, inventoryRepo)
	productionServ = app.NewProductionService(recipeRepo, inventoryRepo, runRepo, ledger, actors)
	reconcileService = app.NewReconcileService(runRepo)
	inventoryService = app.NewInventoryService(inventoryRepo)
	recipeService = app.NewRecipeService(recipeRepo, inventoryRepo)
}

// CookAdapter returns a new CookAdapter writing to stdout.
// Each call creates a new adapter (adapters are stateless translators).
func CookAdapter() *cliadapter.CookAdapter {
	return CookAdapterWithOutput(os.Stdout)
}

// CookAdapterWithOutput returns a new CookAdapter writing to the given output.
// This variant allows testing or alternate output destinations.
func CookAdapterWithOutput(out io.Writer) *cliadapter.CookAdapter {
	once.Do(initServices)
	return cliadapter.NewCookAdapter(previewService, productionServ, out)
}

// RunAdapter returns a new RunAdapter writing to stdout.
func RunAdapter() *cliadapter.RunAdapter {
	return RunAdapterWithOutput(os.Stdout)
}

// RunAdapterWithOutput returns a new RunAdapter writing to the given output.
func RunAdapterWithOutput(out io.Writer) *cliadapter.RunAdapter {
	once.Do(initServices)
	return cliadapter.NewRunAdapter(productionServ, reconcileService, out)
}

// CatalogAdapter returns a new CatalogAdapter writing to stdout.
func CatalogAdapter() *cliadapter.CatalogAdapter {
	return CatalogAdapterWithOutput(os.Stdout)
}

// CatalogAdapterWithOutput returns a new CatalogAdapter writing to the given output.
func CatalogAdapterWithOutput(out io.Writer) *cliadapter.CatalogAdapter {
	once.Do(initServices)
	return cliadapter.NewCatalogAdapter(inventoryService, recipeService, out)
}
