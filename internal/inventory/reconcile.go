// Package inventory implements whole-list inventory replacement and the
// low-stock derivation shared by camp views and the cross-camp alert scan.
package inventory

import (
	"github.com/reliefhub/reliefhub-backend/internal/api"
	"github.com/reliefhub/reliefhub-backend/internal/models"
)

// defaultMinThreshold applies when an item payload does not carry one.
const defaultMinThreshold = 10

// Replace swaps the entire item list of inv. Every item gets the same
// lastUpdated stamp, changed or not; no partial patching. Concurrent
// replaces are last-write-wins.
func Replace(inv *models.Inventory, items []api.InventoryItemPayload, updatedBy, now string) {
	next := make([]models.InventoryItem, 0, len(items))
	for _, it := range items {
		threshold := it.MinThreshold
		if threshold == 0 {
			threshold = defaultMinThreshold
		}
		next = append(next, models.InventoryItem{
			Name:         it.Name,
			Quantity:     it.Quantity,
			Unit:         it.Unit,
			Category:     models.SupplyCategory(it.Category),
			MinThreshold: threshold,
			LastUpdated:  now,
		})
	}
	inv.Items = next
	inv.LastUpdatedBy = updatedBy
	inv.UpdatedAt = now
}

// IsLow reports whether an item sits at or below its minimum threshold.
func IsLow(it models.InventoryItem) bool {
	return it.Quantity <= it.MinThreshold
}

// Alerts flattens the low-stock predicate across all camps' inventories.
// Linear in camps times items, which is fine at this scale.
func Alerts(inventories []models.Inventory, camps map[string]models.Camp) []api.LowStockAlert {
	var out []api.LowStockAlert
	for _, inv := range inventories {
		camp := camps[inv.CampID]
		for _, it := range inv.Items {
			if !IsLow(it) {
				continue
			}
			out = append(out, api.LowStockAlert{
				CampName:        camp.CampName,
				CampLocation:    camp.Location,
				ItemName:        it.Name,
				CurrentQuantity: it.Quantity,
				MinThreshold:    it.MinThreshold,
				Unit:            it.Unit,
				Category:        string(it.Category),
			})
		}
	}
	return out
}
