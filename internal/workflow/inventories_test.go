package workflow_test

import (
	"context"
	"testing"

	"github.com/reliefhub/reliefhub-backend/internal/api"
	"github.com/reliefhub/reliefhub-backend/internal/apperr"
)

func TestReplaceInventoryItems(t *testing.T) {
	ctx := context.Background()

	t.Run("assigned official replaces the whole list", func(t *testing.T) {
		f := newFixture(t)
		campID := f.createCamp(t, "North Camp")
		me := official(campID)

		got, err := f.co.ReplaceInventoryItems(ctx, me, campID, []api.InventoryItemPayload{
			{Name: "Rice", Quantity: 80, Unit: "kg", Category: "Food", MinThreshold: 20},
			{Name: "Water", Quantity: 300, Unit: "liters", Category: "Food", MinThreshold: 50},
		})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if len(got.Items) != 2 {
			t.Fatalf("got %d items, want 2", len(got.Items))
		}
		if got.LastUpdatedBy.UserID != me.UserID {
			t.Errorf("lastUpdatedBy = %q, want %q", got.LastUpdatedBy.UserID, me.UserID)
		}
		for _, it := range got.Items {
			if it.LastUpdated != got.UpdatedAt {
				t.Errorf("item %s lastUpdated = %q, want the replace stamp %q", it.Name, it.LastUpdated, got.UpdatedAt)
			}
		}

		// Second replace drops the line that is absent from the payload.
		got, err = f.co.ReplaceInventoryItems(ctx, me, campID, []api.InventoryItemPayload{
			{Name: "Rice", Quantity: 60, Unit: "kg", Category: "Food", MinThreshold: 20},
		})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if len(got.Items) != 1 || got.Items[0].Name != "Rice" {
			t.Errorf("items = %+v, want only Rice", got.Items)
		}
	})

	t.Run("official of another camp is forbidden", func(t *testing.T) {
		f := newFixture(t)
		campID := f.createCamp(t, "North Camp")
		_, err := f.co.ReplaceInventoryItems(ctx, official("other-camp"), campID, nil)
		wantKind(t, err, apperr.KindForbidden)
	})

	t.Run("collector and donor are forbidden", func(t *testing.T) {
		f := newFixture(t)
		campID := f.createCamp(t, "North Camp")
		_, err := f.co.ReplaceInventoryItems(ctx, collector, campID, nil)
		wantKind(t, err, apperr.KindForbidden)
		_, err = f.co.ReplaceInventoryItems(ctx, donor, campID, nil)
		wantKind(t, err, apperr.KindForbidden)
	})

	t.Run("bad category is rejected before any write", func(t *testing.T) {
		f := newFixture(t)
		campID := f.createCamp(t, "North Camp")
		me := official(campID)
		_, err := f.co.ReplaceInventoryItems(ctx, me, campID, []api.InventoryItemPayload{
			{Name: "Rice", Quantity: 10, Unit: "kg", Category: "Grains"},
		})
		wantKind(t, err, apperr.KindValidation)

		inv, err := f.co.GetInventory(ctx, me, campID)
		if err != nil {
			t.Fatalf("getInventory: %v", err)
		}
		if len(inv.Items) != 0 {
			t.Errorf("inventory has %d items after rejected replace, want 0", len(inv.Items))
		}
	})
}

func TestGetInventory(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)

	_, err := f.co.GetInventory(ctx, donor, "no-such-camp")
	wantKind(t, err, apperr.KindNotFound)
}

func TestLowStockAlerts(t *testing.T) {
	ctx := context.Background()

	t.Run("flattens low lines across camps", func(t *testing.T) {
		f := newFixture(t)
		north := f.createCamp(t, "North Camp")
		south := f.createCamp(t, "South Camp")

		_, err := f.co.ReplaceInventoryItems(ctx, official(north), north, []api.InventoryItemPayload{
			{Name: "Rice", Quantity: 5, Unit: "kg", Category: "Food", MinThreshold: 20},
			{Name: "Water", Quantity: 500, Unit: "liters", Category: "Food", MinThreshold: 50},
		})
		if err != nil {
			t.Fatalf("replace north: %v", err)
		}
		// No explicit threshold: the default of 10 applies, so 8 is low.
		_, err = f.co.ReplaceInventoryItems(ctx, official(south), south, []api.InventoryItemPayload{
			{Name: "Bandages", Quantity: 8, Unit: "packs", Category: "Medical"},
		})
		if err != nil {
			t.Fatalf("replace south: %v", err)
		}

		alerts, err := f.co.LowStockAlerts(ctx, collector)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if len(alerts) != 2 {
			t.Fatalf("got %d alerts, want 2", len(alerts))
		}
		byItem := make(map[string]string)
		for _, a := range alerts {
			byItem[a.ItemName] = a.CampName
		}
		if byItem["Rice"] != "North Camp" {
			t.Errorf("Rice alert camp = %q, want North Camp", byItem["Rice"])
		}
		if byItem["Bandages"] != "South Camp" {
			t.Errorf("Bandages alert camp = %q, want South Camp", byItem["Bandages"])
		}
	})

	t.Run("collector only", func(t *testing.T) {
		f := newFixture(t)
		_, err := f.co.LowStockAlerts(ctx, donor)
		wantKind(t, err, apperr.KindForbidden)
		_, err = f.co.LowStockAlerts(ctx, official("camp-x"))
		wantKind(t, err, apperr.KindForbidden)
	})
}
