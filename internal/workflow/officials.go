package workflow

import (
	"context"

	"github.com/reliefhub/reliefhub-backend/internal/api"
	"github.com/reliefhub/reliefhub-backend/internal/apperr"
	"github.com/reliefhub/reliefhub-backend/internal/authz"
	"github.com/reliefhub/reliefhub-backend/internal/models"
	"github.com/reliefhub/reliefhub-backend/internal/validate"
)

// RegisterOfficial creates a camp-official account bound to exactly one
// camp and appends it to that camp's roster. Collector only. A uniqueness
// conflict leaves both the user table and the camp roster untouched.
func (c *Coordinator) RegisterOfficial(ctx context.Context, id models.Identity, req api.RegisterOfficialRequest) (*api.MessageResponse, error) {
	if err := authz.RequireRole(id, models.RoleCollector); err != nil {
		return nil, err
	}
	if err := validate.Official(req); err != nil {
		return nil, err
	}

	// Camp existence gates the whole registration.
	if _, err := c.store.GetCamp(ctx, req.CampID); err != nil {
		return nil, err
	}

	hash, err := authz.HashPassword(req.Password)
	if err != nil {
		return nil, apperr.Internal(err)
	}

	official := models.User{
		UserID:       c.ids.New(),
		Username:     req.Username,
		Email:        req.Email,
		PasswordHash: hash,
		Role:         models.RoleCampOfficial,
		PhoneNumber:  req.PhoneNumber,
		AssignedCamp: req.CampID,
		CreatedAt:    c.now(),
	}

	if err := c.store.CreateOfficial(ctx, official, req.CampID); err != nil {
		return nil, err
	}
	return &api.MessageResponse{Message: "Camp official registered successfully"}, nil
}

// EnsureDefaultCollector creates the bootstrap Collector account if no user
// with that username exists yet. Returns true when the account was created.
func (c *Coordinator) EnsureDefaultCollector(ctx context.Context, username, email, password string) (bool, error) {
	_, err := c.store.GetUserByUsername(ctx, username)
	if err == nil {
		return false, nil
	}
	if !apperr.IsNotFound(err) {
		return false, err
	}

	hash, err := authz.HashPassword(password)
	if err != nil {
		return false, apperr.Internal(err)
	}
	collector := models.User{
		UserID:       c.ids.New(),
		Username:     username,
		Email:        email,
		PasswordHash: hash,
		Role:         models.RoleCollector,
		CreatedAt:    c.now(),
	}
	if err := c.store.CreateUser(ctx, collector); err != nil {
		if apperr.IsConflict(err) {
			// Lost a race with another bootstrap; the account exists.
			return false, nil
		}
		return false, err
	}
	return true, nil
}
