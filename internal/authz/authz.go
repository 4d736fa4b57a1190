// Package authz extracts the authenticated identity from API Gateway
// requests and enforces role gates.
package authz

import (
	"strings"

	"github.com/aws/aws-lambda-go/events"

	"github.com/reliefhub/reliefhub-backend/internal/apperr"
	"github.com/reliefhub/reliefhub-backend/internal/models"
)

// Dev bypass headers, honored only when DEV_BYPASS_AUTH=true.
const (
	devSubHeader  = "x-user-sub"
	devRoleHeader = "x-user-role"
	devCampHeader = "x-user-camp"
)

// JWT claim keys populated by the Cognito user pool.
const (
	claimRole = "custom:role"
	claimCamp = "custom:camp"
)

// headerLookup returns the value of a header key from a map.
func headerLookup(h map[string]string, key string) string {
	if len(h) == 0 {
		return ""
	}
	lk := strings.ToLower(key)
	for k, v := range h {
		if strings.ToLower(k) == lk {
			return v
		}
	}
	return ""
}

// validRole reports whether r is one of the three known roles.
func validRole(r models.Role) bool {
	switch r {
	case models.RoleCollector, models.RoleCampOfficial, models.RoleDonor:
		return true
	}
	return false
}

// FromRequest extracts the caller identity from an HTTP API (v2) request.
// Absence of a usable identity yields Unauthenticated.
func FromRequest(req events.APIGatewayV2HTTPRequest, devBypass bool) (models.Identity, error) {
	if devBypass {
		if sub := strings.TrimSpace(headerLookup(req.Headers, devSubHeader)); sub != "" {
			id := models.Identity{
				UserID:       sub,
				Role:         models.Role(strings.TrimSpace(headerLookup(req.Headers, devRoleHeader))),
				AssignedCamp: strings.TrimSpace(headerLookup(req.Headers, devCampHeader)),
			}
			if !validRole(id.Role) {
				return models.Identity{}, apperr.Unauthenticated("unknown role")
			}
			return id, nil
		}
	}

	auth := req.RequestContext.Authorizer
	if auth == nil || auth.JWT == nil || auth.JWT.Claims == nil {
		return models.Identity{}, apperr.Unauthenticated("authentication required")
	}
	claims := auth.JWT.Claims

	id := models.Identity{
		UserID:       claims["sub"],
		Role:         models.Role(claims[claimRole]),
		AssignedCamp: claims[claimCamp],
	}
	if id.UserID == "" {
		return models.Identity{}, apperr.Unauthenticated("authentication required")
	}
	if !validRole(id.Role) {
		return models.Identity{}, apperr.Unauthenticated("unknown role")
	}
	return id, nil
}

// RequireRole fails with Forbidden unless the identity holds one of the
// given roles.
func RequireRole(id models.Identity, roles ...models.Role) error {
	for _, r := range roles {
		if id.Role == r {
			return nil
		}
	}
	return apperr.Forbidden("access denied")
}
