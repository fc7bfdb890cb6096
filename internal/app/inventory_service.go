package app

import (
	"context"
	"fmt"

	"github.com/example/prepline/internal/ports/primary"
	"github.com/example/prepline/internal/ports/secondary"
)

// InventoryServiceImpl implements the InventoryService interface.
type InventoryServiceImpl struct {
	inventoryRepo secondary.InventoryRepository
}

// NewInventoryService creates a new InventoryService with injected dependencies.
func NewInventoryService(inventoryRepo secondary.InventoryRepository) *InventoryServiceImpl {
	return &InventoryServiceImpl{inventoryRepo: inventoryRepo}
}

// GetItem retrieves an item by ID.
func (s *InventoryServiceImpl) GetItem(ctx context.Context, itemID string) (*primary.Item, error) {
	record, err := s.inventoryRepo.GetByID(ctx, itemID)
	if err != nil {
		return nil, fmt.Errorf("item not found: %w", err)
	}
	return recordToItem(record), nil
}

// ListItems lists items with optional filters.
func (s *InventoryServiceImpl) ListItems(ctx context.Context, filters primary.ItemFilters) ([]*primary.Item, error) {
	records, err := s.inventoryRepo.List(ctx, secondary.ItemFilters{
		NameContains: filters.NameContains,
		Limit:        filters.Limit,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to list items: %w", err)
	}

	items := make([]*primary.Item, len(records))
	for i, r := range records {
		items[i] = recordToItem(r)
	}
	return items, nil
}

func recordToItem(r *secondary.ItemRecord) *primary.Item {
	return &primary.Item{
		ID:            r.ID,
		Name:          r.Name,
		ExternalCode:  r.ExternalCode,
		NativeUnit:    r.NativeUnit,
		StockLevel:    r.StockLevel,
		CostPerUnit:   r.CostPerUnit,
		Description:   r.Description,
		ShelfLifeDays: r.ShelfLifeDays,
		CreatedAt:     r.CreatedAt,
	}
}

// Ensure InventoryServiceImpl implements the interface
var _ primary.InventoryService = (*InventoryServiceImpl)(nil)
