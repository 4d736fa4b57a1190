package workflow

import (
	"context"
	"sort"

	"github.com/reliefhub/reliefhub-backend/internal/api"
	"github.com/reliefhub/reliefhub-backend/internal/authz"
	"github.com/reliefhub/reliefhub-backend/internal/models"
	"github.com/reliefhub/reliefhub-backend/internal/validate"
)

// CreateCamp registers a new relief camp and provisions its empty inventory
// in the same atomic-in-effect write. Collector only.
func (c *Coordinator) CreateCamp(ctx context.Context, id models.Identity, req api.CreateCampRequest) (*api.CampView, error) {
	if err := authz.RequireRole(id, models.RoleCollector); err != nil {
		return nil, err
	}
	if err := validate.Camp(req); err != nil {
		return nil, err
	}

	now := c.now()
	camp := models.Camp{
		CampID:            c.ids.New(),
		CampName:          req.CampName,
		Location:          req.Location,
		Strength:          req.Strength,
		AssignedOfficials: []string{},
		Description:       req.Description,
		Status:            models.CampActive,
		CreatedBy:         id.UserID,
		CreatedAt:         now,
		UpdatedAt:         now,
	}
	inv := models.Inventory{
		CampID:        camp.CampID,
		Items:         []models.InventoryItem{},
		LastUpdatedBy: id.UserID,
		CreatedAt:     now,
		UpdatedAt:     now,
	}

	if err := c.store.CreateCamp(ctx, camp, inv); err != nil {
		return nil, err
	}
	view := c.campView(ctx, camp)
	return &view, nil
}

// ListCamps returns every camp, newest first. Any authenticated role.
func (c *Coordinator) ListCamps(ctx context.Context, id models.Identity) ([]api.CampView, error) {
	if err := authz.RequireRole(id, models.RoleCollector, models.RoleCampOfficial, models.RoleDonor); err != nil {
		return nil, err
	}
	camps, err := c.store.ListCamps(ctx)
	if err != nil {
		return nil, err
	}
	sort.SliceStable(camps, func(i, j int) bool {
		return camps[i].CreatedAt > camps[j].CreatedAt
	})
	out := make([]api.CampView, 0, len(camps))
	for _, camp := range camps {
		out = append(out, c.campView(ctx, camp))
	}
	return out, nil
}

// GetCamp returns one camp with its officials resolved.
func (c *Coordinator) GetCamp(ctx context.Context, id models.Identity, campID string) (*api.CampView, error) {
	if err := authz.RequireRole(id, models.RoleCollector, models.RoleCampOfficial, models.RoleDonor); err != nil {
		return nil, err
	}
	camp, err := c.store.GetCamp(ctx, campID)
	if err != nil {
		return nil, err
	}
	view := c.campView(ctx, *camp)
	return &view, nil
}
