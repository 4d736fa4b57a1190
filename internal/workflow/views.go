package workflow

import (
	"context"

	"github.com/reliefhub/reliefhub-backend/internal/api"
	"github.com/reliefhub/reliefhub-backend/internal/models"
)

// userRef resolves a user id to a display reference. A missing or unreadable
// user degrades to an id-only reference instead of failing the read.
func (c *Coordinator) userRef(ctx context.Context, userID string) api.UserRef {
	if userID == "" {
		return api.UserRef{}
	}
	u, err := c.store.GetUser(ctx, userID)
	if err != nil {
		return api.UserRef{UserID: userID}
	}
	return api.UserRef{UserID: u.UserID, Username: u.Username}
}

// campRef resolves a camp id to a display reference.
func (c *Coordinator) campRef(ctx context.Context, campID string) api.CampRef {
	camp, err := c.store.GetCamp(ctx, campID)
	if err != nil {
		return api.CampRef{CampID: campID}
	}
	return api.CampRef{CampID: camp.CampID, CampName: camp.CampName, Location: camp.Location}
}

// campView builds the response shape for a camp, resolving user references.
func (c *Coordinator) campView(ctx context.Context, camp models.Camp) api.CampView {
	officials := make([]api.UserRef, 0, len(camp.AssignedOfficials))
	for _, id := range camp.AssignedOfficials {
		officials = append(officials, c.userRef(ctx, id))
	}
	return api.CampView{
		CampID:            camp.CampID,
		CampName:          camp.CampName,
		Location:          camp.Location,
		Strength:          camp.Strength,
		AssignedOfficials: officials,
		Description:       camp.Description,
		Status:            string(camp.Status),
		CreatedBy:         c.userRef(ctx, camp.CreatedBy),
		CreatedAt:         camp.CreatedAt,
		UpdatedAt:         camp.UpdatedAt,
	}
}

// donationView builds the response shape for a donation.
func (c *Coordinator) donationView(ctx context.Context, d models.Donation) api.DonationView {
	return api.DonationView{
		DonationID:   d.DonationID,
		Donor:        c.userRef(ctx, d.DonorID),
		Camp:         c.campRef(ctx, d.CampID),
		Items:        api.SupplyItemPayloads(d.Items),
		DonationType: string(d.DonationType),
		Status:       string(d.Status),
		TrackingID:   d.TrackingID,
		Message:      d.Message,
		CreatedAt:    d.CreatedAt,
		UpdatedAt:    d.UpdatedAt,
	}
}

// requestView builds the response shape for a supply request.
func (c *Coordinator) requestView(ctx context.Context, r models.Request) api.RequestView {
	view := api.RequestView{
		RequestID:   r.RequestID,
		Title:       r.Title,
		Type:        string(r.Type),
		Items:       api.SupplyItemPayloads(r.Items),
		Urgency:     string(r.Urgency),
		Status:      string(r.Status),
		RaisedBy:    c.userRef(ctx, r.RaisedBy),
		Camp:        c.campRef(ctx, r.CampID),
		Description: r.Description,
		CreatedAt:   r.CreatedAt,
		UpdatedAt:   r.UpdatedAt,
	}
	if r.ReviewedBy != "" {
		ref := c.userRef(ctx, r.ReviewedBy)
		view.ReviewedBy = &ref
	}
	return view
}

// inventoryView builds the response shape for a camp inventory.
func (c *Coordinator) inventoryView(ctx context.Context, inv models.Inventory) api.InventoryView {
	items := make([]api.InventoryItemView, 0, len(inv.Items))
	for _, it := range inv.Items {
		items = append(items, api.InventoryItemView{
			Name:         it.Name,
			Quantity:     it.Quantity,
			Unit:         it.Unit,
			Category:     string(it.Category),
			MinThreshold: it.MinThreshold,
			LastUpdated:  it.LastUpdated,
		})
	}
	return api.InventoryView{
		Camp:          c.campRef(ctx, inv.CampID),
		Items:         items,
		LastUpdatedBy: c.userRef(ctx, inv.LastUpdatedBy),
		UpdatedAt:     inv.UpdatedAt,
	}
}
