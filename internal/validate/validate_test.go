package validate_test

import (
	"testing"

	"github.com/reliefhub/reliefhub-backend/internal/api"
	"github.com/reliefhub/reliefhub-backend/internal/apperr"
	"github.com/reliefhub/reliefhub-backend/internal/validate"
)

func fieldMessages(t *testing.T, err error) map[string]string {
	t.Helper()
	if err == nil {
		t.Fatal("expected a validation error, got nil")
	}
	if apperr.KindOf(err) != apperr.KindValidation {
		t.Fatalf("kind = %v, want KindValidation", apperr.KindOf(err))
	}
	out := make(map[string]string)
	for _, f := range apperr.FieldsOf(err) {
		out[f.Field] = f.Message
	}
	return out
}

func TestCamp(t *testing.T) {
	t.Run("valid", func(t *testing.T) {
		err := validate.Camp(api.CreateCampRequest{CampName: "North Camp", Location: "Ridge Valley", Strength: 250})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
	})

	t.Run("collects every missing field", func(t *testing.T) {
		fields := fieldMessages(t, validate.Camp(api.CreateCampRequest{CampName: "  ", Strength: 0}))
		if fields["camp_name"] != "Camp name is required" {
			t.Errorf("camp_name message = %q", fields["camp_name"])
		}
		if fields["location"] != "Location is required" {
			t.Errorf("location message = %q", fields["location"])
		}
		if fields["strength"] != "Strength must be a positive number" {
			t.Errorf("strength message = %q", fields["strength"])
		}
	})
}

func TestOfficial(t *testing.T) {
	valid := api.RegisterOfficialRequest{
		Username: "ravi", Email: "ravi@example.org", Password: "secret1", CampID: "camp-1",
	}

	t.Run("valid", func(t *testing.T) {
		if err := validate.Official(valid); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
	})

	cases := []struct {
		name   string
		mutate func(*api.RegisterOfficialRequest)
		field  string
	}{
		{"short username", func(r *api.RegisterOfficialRequest) { r.Username = "ab" }, "username"},
		{"bad email", func(r *api.RegisterOfficialRequest) { r.Email = "not-an-email" }, "email"},
		{"email without domain dot", func(r *api.RegisterOfficialRequest) { r.Email = "a@b" }, "email"},
		{"short password", func(r *api.RegisterOfficialRequest) { r.Password = "12345" }, "password"},
		{"missing camp", func(r *api.RegisterOfficialRequest) { r.CampID = "" }, "camp_id"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			req := valid
			tc.mutate(&req)
			fields := fieldMessages(t, validate.Official(req))
			if _, ok := fields[tc.field]; !ok {
				t.Errorf("expected a message for field %q, got %v", tc.field, fields)
			}
		})
	}
}

func TestDonation(t *testing.T) {
	valid := api.CreateDonationRequest{
		CampID:       "camp-1",
		DonationType: "Food",
		Items:        []api.SupplyItemPayload{{Name: "Rice", Quantity: 50, Unit: "kg"}},
	}

	t.Run("valid", func(t *testing.T) {
		if err := validate.Donation(valid); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
	})

	t.Run("unknown donation type", func(t *testing.T) {
		req := valid
		req.DonationType = "Gadgets"
		fields := fieldMessages(t, validate.Donation(req))
		if fields["donation_type"] != "Valid donation type is required" {
			t.Errorf("donation_type message = %q", fields["donation_type"])
		}
	})

	t.Run("empty items", func(t *testing.T) {
		req := valid
		req.Items = nil
		fields := fieldMessages(t, validate.Donation(req))
		if fields["items"] != "At least one item is required" {
			t.Errorf("items message = %q", fields["items"])
		}
	})

	t.Run("zero quantity item", func(t *testing.T) {
		req := valid
		req.Items = []api.SupplyItemPayload{{Name: "Rice", Quantity: 0, Unit: "kg"}}
		fields := fieldMessages(t, validate.Donation(req))
		if fields["items"] != "All items must have name, quantity, and unit" {
			t.Errorf("items message = %q", fields["items"])
		}
	})
}

func TestSupplyRequest(t *testing.T) {
	valid := api.CreateSupplyRequest{
		Title:   "Winter supplies",
		Type:    "Clothing",
		Urgency: "High",
		Items:   []api.SupplyItemPayload{{Name: "Blankets", Quantity: 100, Unit: "pieces"}},
	}

	t.Run("valid", func(t *testing.T) {
		if err := validate.SupplyRequest(valid); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
	})

	t.Run("unknown urgency", func(t *testing.T) {
		req := valid
		req.Urgency = "Panic"
		fields := fieldMessages(t, validate.SupplyRequest(req))
		if fields["urgency"] != "Valid urgency level is required" {
			t.Errorf("urgency message = %q", fields["urgency"])
		}
	})

	t.Run("missing title and type", func(t *testing.T) {
		req := valid
		req.Title = ""
		req.Type = ""
		fields := fieldMessages(t, validate.SupplyRequest(req))
		if len(fields) != 2 {
			t.Errorf("got %d field errors, want 2: %v", len(fields), fields)
		}
	})
}

func TestInventoryItems(t *testing.T) {
	t.Run("empty list is allowed", func(t *testing.T) {
		if err := validate.InventoryItems(nil); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
	})

	t.Run("zero quantity is allowed", func(t *testing.T) {
		err := validate.InventoryItems([]api.InventoryItemPayload{
			{Name: "Rice", Quantity: 0, Unit: "kg", Category: "Food"},
		})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
	})

	t.Run("negative quantity rejected", func(t *testing.T) {
		err := validate.InventoryItems([]api.InventoryItemPayload{
			{Name: "Rice", Quantity: -1, Unit: "kg", Category: "Food"},
		})
		fields := fieldMessages(t, err)
		if fields["items"] != "All items must have name, quantity, unit, and category" {
			t.Errorf("items message = %q", fields["items"])
		}
	})

	t.Run("unknown category rejected", func(t *testing.T) {
		err := validate.InventoryItems([]api.InventoryItemPayload{
			{Name: "Rice", Quantity: 10, Unit: "kg", Category: "Grains"},
		})
		fields := fieldMessages(t, err)
		if fields["items"] != "Valid category is required for item Rice" {
			t.Errorf("items message = %q", fields["items"])
		}
	})

	t.Run("negative threshold rejected", func(t *testing.T) {
		err := validate.InventoryItems([]api.InventoryItemPayload{
			{Name: "Rice", Quantity: 10, Unit: "kg", Category: "Food", MinThreshold: -5},
		})
		fields := fieldMessages(t, err)
		if fields["items"] != "Minimum threshold cannot be negative" {
			t.Errorf("items message = %q", fields["items"])
		}
	})
}
