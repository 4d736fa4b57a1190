package workflow

import (
	"context"

	"github.com/reliefhub/reliefhub-backend/internal/api"
	"github.com/reliefhub/reliefhub-backend/internal/apperr"
	"github.com/reliefhub/reliefhub-backend/internal/authz"
	"github.com/reliefhub/reliefhub-backend/internal/inventory"
	"github.com/reliefhub/reliefhub-backend/internal/models"
	"github.com/reliefhub/reliefhub-backend/internal/validate"
)

// GetInventory returns the full item list of a camp, or NotFound when the
// camp has no inventory row.
func (c *Coordinator) GetInventory(ctx context.Context, id models.Identity, campID string) (*api.InventoryView, error) {
	if err := authz.RequireRole(id, models.RoleCollector, models.RoleCampOfficial, models.RoleDonor); err != nil {
		return nil, err
	}
	inv, err := c.store.GetInventory(ctx, campID)
	if err != nil {
		return nil, err
	}
	view := c.inventoryView(ctx, *inv)
	return &view, nil
}

// ReplaceInventoryItems swaps a camp's entire item list. Only the official
// assigned to that camp may do it; every item is restamped, changed or not.
func (c *Coordinator) ReplaceInventoryItems(ctx context.Context, id models.Identity, campID string, items []api.InventoryItemPayload) (*api.InventoryView, error) {
	if err := authz.RequireRole(id, models.RoleCampOfficial); err != nil {
		return nil, err
	}
	if id.AssignedCamp != campID {
		return nil, apperr.Forbidden("Not authorized to update this inventory")
	}
	if err := validate.InventoryItems(items); err != nil {
		return nil, err
	}

	inv, err := c.store.GetInventory(ctx, campID)
	if err != nil {
		return nil, err
	}
	inventory.Replace(inv, items, id.UserID, c.now())
	if err := c.store.SaveInventory(ctx, *inv); err != nil {
		return nil, err
	}
	view := c.inventoryView(ctx, *inv)
	return &view, nil
}

// LowStockAlerts flattens every item at or below its minimum threshold
// across all camps. Collector only.
func (c *Coordinator) LowStockAlerts(ctx context.Context, id models.Identity) ([]api.LowStockAlert, error) {
	if err := authz.RequireRole(id, models.RoleCollector); err != nil {
		return nil, err
	}
	inventories, err := c.store.ListInventories(ctx)
	if err != nil {
		return nil, err
	}
	camps, err := c.store.ListCamps(ctx)
	if err != nil {
		return nil, err
	}
	byID := make(map[string]models.Camp, len(camps))
	for _, camp := range camps {
		byID[camp.CampID] = camp
	}
	return inventory.Alerts(inventories, byID), nil
}
