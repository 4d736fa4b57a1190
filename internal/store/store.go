// Package store defines the repository boundary between the core workflows
// and the document store. Implementations must keep query syntax out of the
// core: every method takes and returns fully-resolved value objects.
package store

import (
	"context"

	"github.com/reliefhub/reliefhub-backend/internal/models"
)

// Store is the persistence contract for all entities. Missing records are
// reported as apperr NotFound, uniqueness violations as apperr Conflict;
// anything else is an internal fault.
type Store interface {
	// CreateUser persists a user, enforcing username and email uniqueness.
	CreateUser(ctx context.Context, u models.User) error
	// CreateOfficial persists a camp official and appends the user id to
	// the camp's assigned officials in one atomic-in-effect write.
	CreateOfficial(ctx context.Context, u models.User, campID string) error
	GetUser(ctx context.Context, userID string) (*models.User, error)
	GetUserByUsername(ctx context.Context, username string) (*models.User, error)

	// CreateCamp persists a camp together with its empty inventory; the
	// pairing is atomic-in-effect.
	CreateCamp(ctx context.Context, c models.Camp, inv models.Inventory) error
	GetCamp(ctx context.Context, campID string) (*models.Camp, error)
	ListCamps(ctx context.Context) ([]models.Camp, error)

	GetInventory(ctx context.Context, campID string) (*models.Inventory, error)
	// SaveInventory replaces the stored inventory for its camp.
	SaveInventory(ctx context.Context, inv models.Inventory) error
	ListInventories(ctx context.Context) ([]models.Inventory, error)

	// CreateDonation persists a donation, enforcing tracking id uniqueness.
	CreateDonation(ctx context.Context, d models.Donation) error
	GetDonation(ctx context.Context, donationID string) (*models.Donation, error)
	GetDonationByTracking(ctx context.Context, trackingID string) (*models.Donation, error)
	// SaveDonation overwrites an existing donation record.
	SaveDonation(ctx context.Context, d models.Donation) error
	ListDonations(ctx context.Context) ([]models.Donation, error)
	ListDonationsByDonor(ctx context.Context, donorID string) ([]models.Donation, error)

	CreateRequest(ctx context.Context, r models.Request) error
	GetRequest(ctx context.Context, requestID string) (*models.Request, error)
	// SaveRequest overwrites an existing request record.
	SaveRequest(ctx context.Context, r models.Request) error
	DeleteRequest(ctx context.Context, requestID string) error
	ListRequests(ctx context.Context) ([]models.Request, error)
	ListRequestsByCamp(ctx context.Context, campID string) ([]models.Request, error)
}
