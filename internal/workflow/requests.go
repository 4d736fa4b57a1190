package workflow

import (
	"context"
	"sort"

	"github.com/reliefhub/reliefhub-backend/internal/api"
	"github.com/reliefhub/reliefhub-backend/internal/apperr"
	"github.com/reliefhub/reliefhub-backend/internal/authz"
	"github.com/reliefhub/reliefhub-backend/internal/match"
	"github.com/reliefhub/reliefhub-backend/internal/models"
	"github.com/reliefhub/reliefhub-backend/internal/status"
	"github.com/reliefhub/reliefhub-backend/internal/validate"
)

// CreateRequest raises a supply request. Camp officials only; the camp is
// always the official's assigned camp, never client-supplied.
func (c *Coordinator) CreateRequest(ctx context.Context, id models.Identity, req api.CreateSupplyRequest) (*api.RequestView, error) {
	if err := authz.RequireRole(id, models.RoleCampOfficial); err != nil {
		return nil, err
	}
	if err := validate.SupplyRequest(req); err != nil {
		return nil, err
	}
	if id.AssignedCamp == "" {
		return nil, apperr.Validation(apperr.FieldError{Field: "camp_id", Message: "No camp assigned to this official"})
	}

	now := c.now()
	request := models.Request{
		RequestID:   c.ids.New(),
		Title:       req.Title,
		Type:        models.SupplyCategory(req.Type),
		Items:       api.SupplyItems(req.Items),
		Urgency:     models.Urgency(req.Urgency),
		Status:      models.RequestPending,
		RaisedBy:    id.UserID,
		CampID:      id.AssignedCamp,
		Description: req.Description,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if err := c.store.CreateRequest(ctx, request); err != nil {
		return nil, err
	}
	view := c.requestView(ctx, request)
	return &view, nil
}

// ListRequests returns requests newest first. Camp officials see only their
// own camp's requests; collectors and donors see everything.
func (c *Coordinator) ListRequests(ctx context.Context, id models.Identity) ([]api.RequestView, error) {
	if err := authz.RequireRole(id, models.RoleCollector, models.RoleCampOfficial, models.RoleDonor); err != nil {
		return nil, err
	}

	var requests []models.Request
	var err error
	if id.Role == models.RoleCampOfficial && id.AssignedCamp != "" {
		requests, err = c.store.ListRequestsByCamp(ctx, id.AssignedCamp)
	} else {
		requests, err = c.store.ListRequests(ctx)
	}
	if err != nil {
		return nil, err
	}
	sort.SliceStable(requests, func(i, j int) bool {
		return requests[i].CreatedAt > requests[j].CreatedAt
	})
	out := make([]api.RequestView, 0, len(requests))
	for _, r := range requests {
		out = append(out, c.requestView(ctx, r))
	}
	return out, nil
}

// GetRequest returns one request by id.
func (c *Coordinator) GetRequest(ctx context.Context, id models.Identity, requestID string) (*api.RequestView, error) {
	if err := authz.RequireRole(id, models.RoleCollector, models.RoleCampOfficial, models.RoleDonor); err != nil {
		return nil, err
	}
	r, err := c.store.GetRequest(ctx, requestID)
	if err != nil {
		return nil, err
	}
	view := c.requestView(ctx, *r)
	return &view, nil
}

// UpdateRequestStatus moves a request along its lifecycle. Collector only;
// the acting collector is recorded as the reviewer on every transition.
func (c *Coordinator) UpdateRequestStatus(ctx context.Context, id models.Identity, requestID, target string) (*api.RequestView, error) {
	if err := authz.RequireRole(id, models.RoleCollector); err != nil {
		return nil, err
	}
	if !status.RequestStatusOK(target) {
		return nil, apperr.Validation(apperr.FieldError{Field: "status", Message: "Valid status is required"})
	}

	r, err := c.store.GetRequest(ctx, requestID)
	if err != nil {
		return nil, err
	}
	if err := status.TransitionRequest(r, models.RequestStatus(target), id.UserID); err != nil {
		return nil, err
	}
	r.UpdatedAt = c.now()
	if err := c.store.SaveRequest(ctx, *r); err != nil {
		return nil, err
	}
	view := c.requestView(ctx, *r)
	return &view, nil
}

// DeleteRequest removes a request. Allowed for the original raiser and for
// any collector.
func (c *Coordinator) DeleteRequest(ctx context.Context, id models.Identity, requestID string) (*api.MessageResponse, error) {
	if err := authz.RequireRole(id, models.RoleCollector, models.RoleCampOfficial, models.RoleDonor); err != nil {
		return nil, err
	}
	r, err := c.store.GetRequest(ctx, requestID)
	if err != nil {
		return nil, err
	}
	if r.RaisedBy != id.UserID && id.Role != models.RoleCollector {
		return nil, apperr.Forbidden("Not authorized to delete this request")
	}
	if err := c.store.DeleteRequest(ctx, requestID); err != nil {
		return nil, err
	}
	return &api.MessageResponse{Message: "Request deleted successfully"}, nil
}

// UrgentUnfulfilled lists the still-open urgent requests donors should see:
// Approved, High or Critical urgency, not already covered by a delivered
// donation, newest first, at most ten.
func (c *Coordinator) UrgentUnfulfilled(ctx context.Context, id models.Identity) ([]api.UrgentRequestSummary, error) {
	if err := authz.RequireRole(id, models.RoleCollector, models.RoleCampOfficial, models.RoleDonor); err != nil {
		return nil, err
	}

	requests, err := c.store.ListRequests(ctx)
	if err != nil {
		return nil, err
	}
	donations, err := c.store.ListDonations(ctx)
	if err != nil {
		return nil, err
	}
	camps, err := c.store.ListCamps(ctx)
	if err != nil {
		return nil, err
	}
	names := make(map[string]string, len(camps))
	for _, camp := range camps {
		names[camp.CampID] = camp.CampName
	}
	return match.UnfulfilledUrgent(requests, donations, names), nil
}
