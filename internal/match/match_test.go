package match_test

import (
	"fmt"
	"testing"

	"github.com/reliefhub/reliefhub-backend/internal/match"
	"github.com/reliefhub/reliefhub-backend/internal/models"
)

func approvedRequest(id, campID, createdAt string, urgency models.Urgency, items ...models.SupplyItem) models.Request {
	return models.Request{
		RequestID: id,
		CampID:    campID,
		Status:    models.RequestApproved,
		Urgency:   urgency,
		Items:     items,
		CreatedAt: createdAt,
	}
}

func deliveredDonation(campID string, items ...models.SupplyItem) models.Donation {
	return models.Donation{
		CampID: campID,
		Status: models.DonationDelivered,
		Items:  items,
	}
}

func TestUnfulfilledUrgent(t *testing.T) {
	names := map[string]string{"camp-1": "North Camp", "camp-2": "South Camp"}

	t.Run("covered request is suppressed case-insensitively", func(t *testing.T) {
		requests := []models.Request{
			approvedRequest("req-1", "camp-1", "2025-03-01T00:00:00Z", models.UrgencyHigh,
				models.SupplyItem{Name: "Rice", Quantity: 50, Unit: "kg"}),
		}
		donations := []models.Donation{
			deliveredDonation("camp-1", models.SupplyItem{Name: "rice", Quantity: 60, Unit: "KG"}),
		}
		got := match.UnfulfilledUrgent(requests, donations, names)
		if len(got) != 0 {
			t.Fatalf("got %d summaries, want 0", len(got))
		}
	})

	t.Run("short delivery keeps the request open", func(t *testing.T) {
		requests := []models.Request{
			approvedRequest("req-1", "camp-1", "2025-03-01T00:00:00Z", models.UrgencyHigh,
				models.SupplyItem{Name: "Rice", Quantity: 50, Unit: "kg"}),
		}
		donations := []models.Donation{
			deliveredDonation("camp-1", models.SupplyItem{Name: "rice", Quantity: 40, Unit: "kg"}),
		}
		got := match.UnfulfilledUrgent(requests, donations, names)
		if len(got) != 1 {
			t.Fatalf("got %d summaries, want 1", len(got))
		}
		if got[0].RequestID != "req-1" {
			t.Errorf("requestID = %q, want req-1", got[0].RequestID)
		}
	})

	t.Run("unit mismatch keeps the request open", func(t *testing.T) {
		requests := []models.Request{
			approvedRequest("req-1", "camp-1", "2025-03-01T00:00:00Z", models.UrgencyCritical,
				models.SupplyItem{Name: "Water", Quantity: 100, Unit: "liters"}),
		}
		donations := []models.Donation{
			deliveredDonation("camp-1", models.SupplyItem{Name: "Water", Quantity: 200, Unit: "bottles"}),
		}
		got := match.UnfulfilledUrgent(requests, donations, names)
		if len(got) != 1 {
			t.Fatalf("got %d summaries, want 1", len(got))
		}
	})

	t.Run("delivery to another camp does not count", func(t *testing.T) {
		requests := []models.Request{
			approvedRequest("req-1", "camp-1", "2025-03-01T00:00:00Z", models.UrgencyHigh,
				models.SupplyItem{Name: "Blankets", Quantity: 20, Unit: "pieces"}),
		}
		donations := []models.Donation{
			deliveredDonation("camp-2", models.SupplyItem{Name: "Blankets", Quantity: 50, Unit: "pieces"}),
		}
		got := match.UnfulfilledUrgent(requests, donations, names)
		if len(got) != 1 {
			t.Fatalf("got %d summaries, want 1", len(got))
		}
	})

	t.Run("pending and in-transit donations do not suppress", func(t *testing.T) {
		requests := []models.Request{
			approvedRequest("req-1", "camp-1", "2025-03-01T00:00:00Z", models.UrgencyHigh,
				models.SupplyItem{Name: "Rice", Quantity: 50, Unit: "kg"}),
		}
		donations := []models.Donation{
			{CampID: "camp-1", Status: models.DonationPending, Items: []models.SupplyItem{{Name: "Rice", Quantity: 500, Unit: "kg"}}},
			{CampID: "camp-1", Status: models.DonationInTransit, Items: []models.SupplyItem{{Name: "Rice", Quantity: 500, Unit: "kg"}}},
		}
		got := match.UnfulfilledUrgent(requests, donations, names)
		if len(got) != 1 {
			t.Fatalf("got %d summaries, want 1", len(got))
		}
	})

	t.Run("one covered item suppresses a multi-item request", func(t *testing.T) {
		requests := []models.Request{
			approvedRequest("req-1", "camp-1", "2025-03-01T00:00:00Z", models.UrgencyHigh,
				models.SupplyItem{Name: "Rice", Quantity: 50, Unit: "kg"},
				models.SupplyItem{Name: "Tents", Quantity: 10, Unit: "pieces"}),
		}
		donations := []models.Donation{
			deliveredDonation("camp-1", models.SupplyItem{Name: "Tents", Quantity: 10, Unit: "pieces"}),
		}
		got := match.UnfulfilledUrgent(requests, donations, names)
		if len(got) != 0 {
			t.Fatalf("got %d summaries, want 0", len(got))
		}
	})

	t.Run("only approved high or critical qualify", func(t *testing.T) {
		requests := []models.Request{
			approvedRequest("req-low", "camp-1", "2025-03-05T00:00:00Z", models.UrgencyLow,
				models.SupplyItem{Name: "Soap", Quantity: 5, Unit: "boxes"}),
			approvedRequest("req-medium", "camp-1", "2025-03-05T00:00:00Z", models.UrgencyMedium,
				models.SupplyItem{Name: "Soap", Quantity: 5, Unit: "boxes"}),
			{
				RequestID: "req-pending", CampID: "camp-1", Status: models.RequestPending,
				Urgency: models.UrgencyCritical, CreatedAt: "2025-03-05T00:00:00Z",
				Items: []models.SupplyItem{{Name: "Soap", Quantity: 5, Unit: "boxes"}},
			},
			{
				RequestID: "req-fulfilled", CampID: "camp-1", Status: models.RequestFulfilled,
				Urgency: models.UrgencyHigh, CreatedAt: "2025-03-05T00:00:00Z",
				Items: []models.SupplyItem{{Name: "Soap", Quantity: 5, Unit: "boxes"}},
			},
			approvedRequest("req-ok", "camp-1", "2025-03-05T00:00:00Z", models.UrgencyHigh,
				models.SupplyItem{Name: "Soap", Quantity: 5, Unit: "boxes"}),
		}
		got := match.UnfulfilledUrgent(requests, nil, names)
		if len(got) != 1 {
			t.Fatalf("got %d summaries, want 1", len(got))
		}
		if got[0].RequestID != "req-ok" {
			t.Errorf("requestID = %q, want req-ok", got[0].RequestID)
		}
	})

	t.Run("newest first and capped at ten", func(t *testing.T) {
		var requests []models.Request
		for i := 1; i <= 12; i++ {
			requests = append(requests, approvedRequest(
				fmt.Sprintf("req-%02d", i), "camp-1",
				fmt.Sprintf("2025-03-%02dT00:00:00Z", i),
				models.UrgencyHigh,
				models.SupplyItem{Name: "Rice", Quantity: 10, Unit: "kg"},
			))
		}
		got := match.UnfulfilledUrgent(requests, nil, names)
		if len(got) != 10 {
			t.Fatalf("got %d summaries, want 10", len(got))
		}
		if got[0].RequestID != "req-12" {
			t.Errorf("first = %q, want req-12", got[0].RequestID)
		}
		if got[9].RequestID != "req-03" {
			t.Errorf("last = %q, want req-03", got[9].RequestID)
		}
	})

	t.Run("projects the first item and resolves camp name", func(t *testing.T) {
		requests := []models.Request{
			approvedRequest("req-1", "camp-2", "2025-03-01T00:00:00Z", models.UrgencyCritical,
				models.SupplyItem{Name: "Bandages", Quantity: 200, Unit: "packs"},
				models.SupplyItem{Name: "Antiseptic", Quantity: 30, Unit: "bottles"}),
		}
		got := match.UnfulfilledUrgent(requests, nil, names)
		if len(got) != 1 {
			t.Fatalf("got %d summaries, want 1", len(got))
		}
		s := got[0]
		if s.ItemName != "Bandages" || s.Quantity != 200 || s.Unit != "packs" {
			t.Errorf("projection = %+v, want first item Bandages/200/packs", s)
		}
		if s.CampName != "South Camp" {
			t.Errorf("campName = %q, want South Camp", s.CampName)
		}
		if s.Urgency != "Critical" {
			t.Errorf("urgency = %q, want Critical", s.Urgency)
		}
	})
}
