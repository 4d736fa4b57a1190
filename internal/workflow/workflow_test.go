package workflow_test

import (
	"context"
	"testing"

	"github.com/reliefhub/reliefhub-backend/internal/api"
	"github.com/reliefhub/reliefhub-backend/internal/apperr"
	"github.com/reliefhub/reliefhub-backend/internal/models"
	"github.com/reliefhub/reliefhub-backend/internal/store"
	"github.com/reliefhub/reliefhub-backend/internal/testutil"
	"github.com/reliefhub/reliefhub-backend/internal/workflow"
)

var (
	collector = models.Identity{UserID: "collector-1", Role: models.RoleCollector}
	donor     = models.Identity{UserID: "donor-1", Role: models.RoleDonor}
)

func official(campID string) models.Identity {
	return models.Identity{UserID: "official-" + campID, Role: models.RoleCampOfficial, AssignedCamp: campID}
}

// fixture wires a Coordinator to the in-memory store with a fixed clock and
// sequential ids.
type fixture struct {
	co    *workflow.Coordinator
	store *store.MemoryStore
	clock *testutil.StubClock
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	s := store.NewMemoryStore()
	clock := testutil.FixedClock()
	return &fixture{
		co:    workflow.NewCoordinator(s, clock, testutil.NewStubIDGenerator()),
		store: s,
		clock: clock,
	}
}

func (f *fixture) createCamp(t *testing.T, name string) string {
	t.Helper()
	view, err := f.co.CreateCamp(context.Background(), collector, api.CreateCampRequest{
		CampName: name,
		Location: "Ridge Valley",
		Strength: 250,
	})
	if err != nil {
		t.Fatalf("createCamp(%s): %v", name, err)
	}
	return view.CampID
}

func (f *fixture) createDonation(t *testing.T, by models.Identity, campID string, items ...api.SupplyItemPayload) *api.DonationView {
	t.Helper()
	if len(items) == 0 {
		items = []api.SupplyItemPayload{{Name: "Rice", Quantity: 50, Unit: "kg"}}
	}
	view, err := f.co.CreateDonation(context.Background(), by, api.CreateDonationRequest{
		CampID:       campID,
		Items:        items,
		DonationType: "Food",
	})
	if err != nil {
		t.Fatalf("createDonation: %v", err)
	}
	return view
}

func (f *fixture) createRequest(t *testing.T, by models.Identity, urgency string, items ...api.SupplyItemPayload) *api.RequestView {
	t.Helper()
	if len(items) == 0 {
		items = []api.SupplyItemPayload{{Name: "Rice", Quantity: 50, Unit: "kg"}}
	}
	view, err := f.co.CreateRequest(context.Background(), by, api.CreateSupplyRequest{
		Title:   "Supplies needed",
		Type:    "Food",
		Items:   items,
		Urgency: urgency,
	})
	if err != nil {
		t.Fatalf("createRequest: %v", err)
	}
	return view
}

// deliver walks a donation through its full lifecycle to Delivered.
func (f *fixture) deliver(t *testing.T, donationID string) {
	t.Helper()
	ctx := context.Background()
	if _, err := f.co.UpdateDonationStatus(ctx, collector, donationID, "In Transit"); err != nil {
		t.Fatalf("move to In Transit: %v", err)
	}
	if _, err := f.co.UpdateDonationStatus(ctx, collector, donationID, "Delivered"); err != nil {
		t.Fatalf("move to Delivered: %v", err)
	}
}

func wantKind(t *testing.T, err error, kind apperr.Kind) {
	t.Helper()
	if err == nil {
		t.Fatal("expected error, got nil")
	}
	if got := apperr.KindOf(err); got != kind {
		t.Fatalf("error kind = %v, want %v (err: %v)", got, kind, err)
	}
}
