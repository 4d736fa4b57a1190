package workflow_test

import (
	"context"
	"testing"
	"time"

	"github.com/reliefhub/reliefhub-backend/internal/api"
	"github.com/reliefhub/reliefhub-backend/internal/apperr"
	"github.com/reliefhub/reliefhub-backend/internal/models"
)

func TestCreateRequest(t *testing.T) {
	ctx := context.Background()

	t.Run("request lands on the official's assigned camp", func(t *testing.T) {
		f := newFixture(t)
		campID := f.createCamp(t, "North Camp")

		view := f.createRequest(t, official(campID), "High")
		if view.Camp.CampID != campID {
			t.Errorf("camp = %q, want %q", view.Camp.CampID, campID)
		}
		if view.Status != "Pending" {
			t.Errorf("status = %q, want Pending", view.Status)
		}
		if view.ReviewedBy != nil {
			t.Errorf("reviewedBy = %+v before any review, want nil", view.ReviewedBy)
		}
	})

	t.Run("official without a camp cannot raise", func(t *testing.T) {
		f := newFixture(t)
		unassigned := models.Identity{UserID: "official-x", Role: models.RoleCampOfficial}
		_, err := f.co.CreateRequest(ctx, unassigned, api.CreateSupplyRequest{
			Title:   "Supplies needed",
			Type:    "Food",
			Urgency: "High",
			Items:   []api.SupplyItemPayload{{Name: "Rice", Quantity: 50, Unit: "kg"}},
		})
		wantKind(t, err, apperr.KindValidation)
	})

	t.Run("other roles are forbidden", func(t *testing.T) {
		f := newFixture(t)
		req := api.CreateSupplyRequest{
			Title:   "Supplies needed",
			Type:    "Food",
			Urgency: "High",
			Items:   []api.SupplyItemPayload{{Name: "Rice", Quantity: 50, Unit: "kg"}},
		}
		_, err := f.co.CreateRequest(ctx, collector, req)
		wantKind(t, err, apperr.KindForbidden)
		_, err = f.co.CreateRequest(ctx, donor, req)
		wantKind(t, err, apperr.KindForbidden)
	})
}

func TestListRequests(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	north := f.createCamp(t, "North Camp")
	south := f.createCamp(t, "South Camp")

	f.createRequest(t, official(north), "High")
	f.clock.Advance(time.Minute)
	southern := f.createRequest(t, official(south), "Low")

	t.Run("official sees only their camp", func(t *testing.T) {
		got, err := f.co.ListRequests(ctx, official(south))
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if len(got) != 1 {
			t.Fatalf("got %d requests, want 1", len(got))
		}
		if got[0].RequestID != southern.RequestID {
			t.Errorf("request = %q, want %q", got[0].RequestID, southern.RequestID)
		}
	})

	t.Run("collector sees every camp newest first", func(t *testing.T) {
		got, err := f.co.ListRequests(ctx, collector)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if len(got) != 2 {
			t.Fatalf("got %d requests, want 2", len(got))
		}
		if got[0].RequestID != southern.RequestID {
			t.Errorf("first = %q, want the newer request", got[0].RequestID)
		}
	})
}

func TestUpdateRequestStatus(t *testing.T) {
	ctx := context.Background()

	t.Run("collector approves and is recorded as reviewer", func(t *testing.T) {
		f := newFixture(t)
		campID := f.createCamp(t, "North Camp")
		r := f.createRequest(t, official(campID), "High")

		got, err := f.co.UpdateRequestStatus(ctx, collector, r.RequestID, "Approved")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if got.Status != "Approved" {
			t.Errorf("status = %q, want Approved", got.Status)
		}
		if got.ReviewedBy == nil || got.ReviewedBy.UserID != collector.UserID {
			t.Errorf("reviewedBy = %+v, want %q", got.ReviewedBy, collector.UserID)
		}
	})

	t.Run("rejecting also records the reviewer", func(t *testing.T) {
		f := newFixture(t)
		campID := f.createCamp(t, "North Camp")
		r := f.createRequest(t, official(campID), "High")

		got, err := f.co.UpdateRequestStatus(ctx, collector, r.RequestID, "Rejected")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if got.ReviewedBy == nil || got.ReviewedBy.UserID != collector.UserID {
			t.Errorf("reviewedBy = %+v, want %q", got.ReviewedBy, collector.UserID)
		}
	})

	t.Run("pending cannot jump to fulfilled", func(t *testing.T) {
		f := newFixture(t)
		campID := f.createCamp(t, "North Camp")
		r := f.createRequest(t, official(campID), "High")
		_, err := f.co.UpdateRequestStatus(ctx, collector, r.RequestID, "Fulfilled")
		wantKind(t, err, apperr.KindInvalidTransition)
	})

	t.Run("officials and donors are forbidden", func(t *testing.T) {
		f := newFixture(t)
		campID := f.createCamp(t, "North Camp")
		r := f.createRequest(t, official(campID), "High")
		_, err := f.co.UpdateRequestStatus(ctx, official(campID), r.RequestID, "Approved")
		wantKind(t, err, apperr.KindForbidden)
		_, err = f.co.UpdateRequestStatus(ctx, donor, r.RequestID, "Approved")
		wantKind(t, err, apperr.KindForbidden)
	})

	t.Run("missing request", func(t *testing.T) {
		f := newFixture(t)
		_, err := f.co.UpdateRequestStatus(ctx, collector, "no-such-request", "Approved")
		wantKind(t, err, apperr.KindNotFound)
	})
}

func TestDeleteRequest(t *testing.T) {
	ctx := context.Background()

	t.Run("raiser deletes their own request", func(t *testing.T) {
		f := newFixture(t)
		campID := f.createCamp(t, "North Camp")
		raiser := official(campID)
		r := f.createRequest(t, raiser, "High")

		if _, err := f.co.DeleteRequest(ctx, raiser, r.RequestID); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		_, err := f.co.GetRequest(ctx, collector, r.RequestID)
		wantKind(t, err, apperr.KindNotFound)
	})

	t.Run("collector deletes anyone's request", func(t *testing.T) {
		f := newFixture(t)
		campID := f.createCamp(t, "North Camp")
		r := f.createRequest(t, official(campID), "High")
		if _, err := f.co.DeleteRequest(ctx, collector, r.RequestID); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
	})

	t.Run("another official is forbidden", func(t *testing.T) {
		f := newFixture(t)
		campID := f.createCamp(t, "North Camp")
		r := f.createRequest(t, official(campID), "High")
		_, err := f.co.DeleteRequest(ctx, official("other-camp"), r.RequestID)
		wantKind(t, err, apperr.KindForbidden)
	})

	t.Run("missing request", func(t *testing.T) {
		f := newFixture(t)
		_, err := f.co.DeleteRequest(ctx, collector, "no-such-request")
		wantKind(t, err, apperr.KindNotFound)
	})
}

func TestUrgentUnfulfilled(t *testing.T) {
	ctx := context.Background()

	t.Run("approved urgent requests surface until delivery covers them", func(t *testing.T) {
		f := newFixture(t)
		campID := f.createCamp(t, "North Camp")
		r := f.createRequest(t, official(campID), "High",
			api.SupplyItemPayload{Name: "Rice", Quantity: 50, Unit: "kg"})
		if _, err := f.co.UpdateRequestStatus(ctx, collector, r.RequestID, "Approved"); err != nil {
			t.Fatalf("approve: %v", err)
		}

		got, err := f.co.UrgentUnfulfilled(ctx, donor)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if len(got) != 1 {
			t.Fatalf("got %d summaries, want 1", len(got))
		}
		if got[0].CampName != "North Camp" || got[0].ItemName != "Rice" {
			t.Errorf("summary = %+v", got[0])
		}

		// A matching donation suppresses the request only once delivered.
		d := f.createDonation(t, donor, campID,
			api.SupplyItemPayload{Name: "rice", Quantity: 60, Unit: "KG"})
		got, err = f.co.UrgentUnfulfilled(ctx, donor)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if len(got) != 1 {
			t.Fatalf("pending donation suppressed the request: got %d, want 1", len(got))
		}

		f.deliver(t, d.DonationID)
		got, err = f.co.UrgentUnfulfilled(ctx, donor)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if len(got) != 0 {
			t.Fatalf("delivered cover left %d summaries, want 0", len(got))
		}
	})

	t.Run("pending requests stay hidden", func(t *testing.T) {
		f := newFixture(t)
		campID := f.createCamp(t, "North Camp")
		f.createRequest(t, official(campID), "Critical")

		got, err := f.co.UrgentUnfulfilled(ctx, donor)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if len(got) != 0 {
			t.Fatalf("got %d summaries for a still-pending request, want 0", len(got))
		}
	})
}
