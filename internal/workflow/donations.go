package workflow

import (
	"context"
	"sort"

	"github.com/reliefhub/reliefhub-backend/internal/api"
	"github.com/reliefhub/reliefhub-backend/internal/apperr"
	"github.com/reliefhub/reliefhub-backend/internal/authz"
	"github.com/reliefhub/reliefhub-backend/internal/models"
	"github.com/reliefhub/reliefhub-backend/internal/status"
	"github.com/reliefhub/reliefhub-backend/internal/validate"
)

// CreateDonation records a new donation. Donor only. Status is forced to
// Pending regardless of client input, and the tracking number is assigned
// here, exactly once.
func (c *Coordinator) CreateDonation(ctx context.Context, id models.Identity, req api.CreateDonationRequest) (*api.DonationView, error) {
	if err := authz.RequireRole(id, models.RoleDonor); err != nil {
		return nil, err
	}
	if err := validate.Donation(req); err != nil {
		return nil, err
	}
	if _, err := c.store.GetCamp(ctx, req.CampID); err != nil {
		return nil, err
	}

	now := c.now()
	donation := models.Donation{
		DonationID:   c.ids.New(),
		DonorID:      id.UserID,
		CampID:       req.CampID,
		Items:        api.SupplyItems(req.Items),
		DonationType: models.SupplyCategory(req.DonationType),
		Status:       models.DonationPending,
		TrackingID:   c.newTrackingID(),
		Message:      req.Message,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := c.store.CreateDonation(ctx, donation); err != nil {
		return nil, err
	}
	view := c.donationView(ctx, donation)
	return &view, nil
}

// ListDonations returns donations newest first: a donor sees only their
// own, staff roles see everything.
func (c *Coordinator) ListDonations(ctx context.Context, id models.Identity) ([]api.DonationView, error) {
	if err := authz.RequireRole(id, models.RoleCollector, models.RoleCampOfficial, models.RoleDonor); err != nil {
		return nil, err
	}

	var donations []models.Donation
	var err error
	if id.Role == models.RoleDonor {
		donations, err = c.store.ListDonationsByDonor(ctx, id.UserID)
	} else {
		donations, err = c.store.ListDonations(ctx)
	}
	if err != nil {
		return nil, err
	}
	sort.SliceStable(donations, func(i, j int) bool {
		return donations[i].CreatedAt > donations[j].CreatedAt
	})
	out := make([]api.DonationView, 0, len(donations))
	for _, d := range donations {
		out = append(out, c.donationView(ctx, d))
	}
	return out, nil
}

// GetDonation returns one donation by id.
func (c *Coordinator) GetDonation(ctx context.Context, id models.Identity, donationID string) (*api.DonationView, error) {
	if err := authz.RequireRole(id, models.RoleCollector, models.RoleCampOfficial, models.RoleDonor); err != nil {
		return nil, err
	}
	d, err := c.store.GetDonation(ctx, donationID)
	if err != nil {
		return nil, err
	}
	view := c.donationView(ctx, *d)
	return &view, nil
}

// UpdateDonationStatus moves a donation along its lifecycle. Collector and
// camp officials only; illegal transitions are rejected.
func (c *Coordinator) UpdateDonationStatus(ctx context.Context, id models.Identity, donationID, target string) (*api.DonationView, error) {
	if err := authz.RequireRole(id, models.RoleCollector, models.RoleCampOfficial); err != nil {
		return nil, err
	}
	if !status.DonationStatusOK(target) {
		return nil, apperr.Validation(apperr.FieldError{Field: "status", Message: "Valid status is required"})
	}

	d, err := c.store.GetDonation(ctx, donationID)
	if err != nil {
		return nil, err
	}
	if err := status.TransitionDonation(d, models.DonationStatus(target)); err != nil {
		return nil, err
	}
	d.UpdatedAt = c.now()
	if err := c.store.SaveDonation(ctx, *d); err != nil {
		return nil, err
	}
	view := c.donationView(ctx, *d)
	return &view, nil
}

// TrackDonation is the public tracking lookup; no identity required.
func (c *Coordinator) TrackDonation(ctx context.Context, trackingID string) (*api.DonationView, error) {
	d, err := c.store.GetDonationByTracking(ctx, trackingID)
	if err != nil {
		return nil, err
	}
	view := c.donationView(ctx, *d)
	return &view, nil
}

// AuthorizeReceiptUpload checks that the caller may attach a delivery
// receipt to the donation: a collector, or the official assigned to the
// donation's camp.
func (c *Coordinator) AuthorizeReceiptUpload(ctx context.Context, id models.Identity, donationID string) (*models.Donation, error) {
	if err := authz.RequireRole(id, models.RoleCollector, models.RoleCampOfficial); err != nil {
		return nil, err
	}
	d, err := c.store.GetDonation(ctx, donationID)
	if err != nil {
		return nil, err
	}
	if id.Role == models.RoleCampOfficial && id.AssignedCamp != d.CampID {
		return nil, apperr.Forbidden("Not authorized to attach receipts for this camp")
	}
	return d, nil
}

// FinalizeReceipt stamps the uploaded receipt document onto the donation.
// Called by the S3 event consumer after the object lands.
func (c *Coordinator) FinalizeReceipt(ctx context.Context, donationID string, receipt models.Receipt) error {
	d, err := c.store.GetDonation(ctx, donationID)
	if err != nil {
		return err
	}
	d.Receipt = &receipt
	d.UpdatedAt = c.now()
	return c.store.SaveDonation(ctx, *d)
}
