package store

import (
	"context"
	"sync"

	"github.com/reliefhub/reliefhub-backend/internal/apperr"
	"github.com/reliefhub/reliefhub-backend/internal/models"
)

// MemoryStore is an in-memory Store used by unit tests and local runs.
// All records are copied in and out, so callers never share slices with
// the store.
type MemoryStore struct {
	mu          sync.Mutex
	users       map[string]models.User
	camps       map[string]models.Camp
	inventories map[string]models.Inventory // keyed by camp id
	donations   map[string]models.Donation
	requests    map[string]models.Request

	usernames   map[string]string // username -> user id
	emails      map[string]string // email -> user id
	trackingIDs map[string]string // tracking id -> donation id
}

// NewMemoryStore creates an empty in-memory store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		users:       make(map[string]models.User),
		camps:       make(map[string]models.Camp),
		inventories: make(map[string]models.Inventory),
		donations:   make(map[string]models.Donation),
		requests:    make(map[string]models.Request),
		usernames:   make(map[string]string),
		emails:      make(map[string]string),
		trackingIDs: make(map[string]string),
	}
}

// CreateUser persists a user, enforcing username and email uniqueness.
func (m *MemoryStore) CreateUser(_ context.Context, u models.User) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.createUserLocked(u)
}

func (m *MemoryStore) createUserLocked(u models.User) error {
	if _, taken := m.usernames[u.Username]; taken {
		return apperr.Conflict("Username or email already exists")
	}
	if _, taken := m.emails[u.Email]; taken {
		return apperr.Conflict("Username or email already exists")
	}
	m.users[u.UserID] = u
	m.usernames[u.Username] = u.UserID
	m.emails[u.Email] = u.UserID
	return nil
}

// CreateOfficial persists an official and appends them to the camp roster
// as one atomic step.
func (m *MemoryStore) CreateOfficial(_ context.Context, u models.User, campID string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	camp, ok := m.camps[campID]
	if !ok {
		return apperr.NotFound("Camp not found")
	}
	if err := m.createUserLocked(u); err != nil {
		return err
	}
	camp.AssignedOfficials = append(append([]string(nil), camp.AssignedOfficials...), u.UserID)
	m.camps[campID] = camp
	return nil
}

// GetUser returns the user with the given id.
func (m *MemoryStore) GetUser(_ context.Context, userID string) (*models.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	u, ok := m.users[userID]
	if !ok {
		return nil, apperr.NotFound("User not found")
	}
	return &u, nil
}

// GetUserByUsername returns the user with the given username.
func (m *MemoryStore) GetUserByUsername(_ context.Context, username string) (*models.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	id, ok := m.usernames[username]
	if !ok {
		return nil, apperr.NotFound("User not found")
	}
	u := m.users[id]
	return &u, nil
}

// CreateCamp persists the camp and its empty inventory together.
func (m *MemoryStore) CreateCamp(_ context.Context, c models.Camp, inv models.Inventory) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, exists := m.camps[c.CampID]; exists {
		return apperr.Conflict("Camp already exists")
	}
	m.camps[c.CampID] = c
	m.inventories[inv.CampID] = copyInventory(inv)
	return nil
}

// GetCamp returns the camp with the given id.
func (m *MemoryStore) GetCamp(_ context.Context, campID string) (*models.Camp, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	c, ok := m.camps[campID]
	if !ok {
		return nil, apperr.NotFound("Camp not found")
	}
	c.AssignedOfficials = append([]string(nil), c.AssignedOfficials...)
	return &c, nil
}

// ListCamps returns every camp.
func (m *MemoryStore) ListCamps(_ context.Context) ([]models.Camp, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]models.Camp, 0, len(m.camps))
	for _, c := range m.camps {
		c.AssignedOfficials = append([]string(nil), c.AssignedOfficials...)
		out = append(out, c)
	}
	return out, nil
}

// GetInventory returns the inventory of the given camp.
func (m *MemoryStore) GetInventory(_ context.Context, campID string) (*models.Inventory, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	inv, ok := m.inventories[campID]
	if !ok {
		return nil, apperr.NotFound("Inventory not found")
	}
	cp := copyInventory(inv)
	return &cp, nil
}

// SaveInventory replaces the stored inventory for its camp.
func (m *MemoryStore) SaveInventory(_ context.Context, inv models.Inventory) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.inventories[inv.CampID]; !ok {
		return apperr.NotFound("Inventory not found")
	}
	m.inventories[inv.CampID] = copyInventory(inv)
	return nil
}

// ListInventories returns every camp inventory.
func (m *MemoryStore) ListInventories(_ context.Context) ([]models.Inventory, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]models.Inventory, 0, len(m.inventories))
	for _, inv := range m.inventories {
		out = append(out, copyInventory(inv))
	}
	return out, nil
}

// CreateDonation persists a donation, enforcing tracking id uniqueness.
func (m *MemoryStore) CreateDonation(_ context.Context, d models.Donation) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, taken := m.trackingIDs[d.TrackingID]; taken {
		return apperr.Conflict("Tracking id already exists")
	}
	m.donations[d.DonationID] = copyDonation(d)
	m.trackingIDs[d.TrackingID] = d.DonationID
	return nil
}

// GetDonation returns the donation with the given id.
func (m *MemoryStore) GetDonation(_ context.Context, donationID string) (*models.Donation, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	d, ok := m.donations[donationID]
	if !ok {
		return nil, apperr.NotFound("Donation not found")
	}
	cp := copyDonation(d)
	return &cp, nil
}

// GetDonationByTracking returns the donation carrying the given tracking id.
func (m *MemoryStore) GetDonationByTracking(_ context.Context, trackingID string) (*models.Donation, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	id, ok := m.trackingIDs[trackingID]
	if !ok {
		return nil, apperr.NotFound("Donation not found")
	}
	cp := copyDonation(m.donations[id])
	return &cp, nil
}

// SaveDonation overwrites an existing donation record.
func (m *MemoryStore) SaveDonation(_ context.Context, d models.Donation) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.donations[d.DonationID]; !ok {
		return apperr.NotFound("Donation not found")
	}
	m.donations[d.DonationID] = copyDonation(d)
	return nil
}

// ListDonations returns every donation.
func (m *MemoryStore) ListDonations(_ context.Context) ([]models.Donation, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]models.Donation, 0, len(m.donations))
	for _, d := range m.donations {
		out = append(out, copyDonation(d))
	}
	return out, nil
}

// ListDonationsByDonor returns the donations submitted by one donor.
func (m *MemoryStore) ListDonationsByDonor(_ context.Context, donorID string) ([]models.Donation, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []models.Donation
	for _, d := range m.donations {
		if d.DonorID == donorID {
			out = append(out, copyDonation(d))
		}
	}
	return out, nil
}

// CreateRequest persists a supply request.
func (m *MemoryStore) CreateRequest(_ context.Context, r models.Request) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.requests[r.RequestID] = copyRequest(r)
	return nil
}

// GetRequest returns the request with the given id.
func (m *MemoryStore) GetRequest(_ context.Context, requestID string) (*models.Request, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	r, ok := m.requests[requestID]
	if !ok {
		return nil, apperr.NotFound("Request not found")
	}
	cp := copyRequest(r)
	return &cp, nil
}

// SaveRequest overwrites an existing request record.
func (m *MemoryStore) SaveRequest(_ context.Context, r models.Request) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.requests[r.RequestID]; !ok {
		return apperr.NotFound("Request not found")
	}
	m.requests[r.RequestID] = copyRequest(r)
	return nil
}

// DeleteRequest removes a request record.
func (m *MemoryStore) DeleteRequest(_ context.Context, requestID string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.requests[requestID]; !ok {
		return apperr.NotFound("Request not found")
	}
	delete(m.requests, requestID)
	return nil
}

// ListRequests returns every request.
func (m *MemoryStore) ListRequests(_ context.Context) ([]models.Request, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]models.Request, 0, len(m.requests))
	for _, r := range m.requests {
		out = append(out, copyRequest(r))
	}
	return out, nil
}

// ListRequestsByCamp returns the requests raised for one camp.
func (m *MemoryStore) ListRequestsByCamp(_ context.Context, campID string) ([]models.Request, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []models.Request
	for _, r := range m.requests {
		if r.CampID == campID {
			out = append(out, copyRequest(r))
		}
	}
	return out, nil
}

func copyInventory(inv models.Inventory) models.Inventory {
	inv.Items = append([]models.InventoryItem(nil), inv.Items...)
	return inv
}

func copyDonation(d models.Donation) models.Donation {
	d.Items = append([]models.SupplyItem(nil), d.Items...)
	if d.Receipt != nil {
		r := *d.Receipt
		d.Receipt = &r
	}
	return d
}

func copyRequest(r models.Request) models.Request {
	r.Items = append([]models.SupplyItem(nil), r.Items...)
	return r
}
