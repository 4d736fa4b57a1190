// Package workflow orchestrates the role-gated operations of the relief
// coordination service: camp provisioning, official registration, donations,
// supply requests and inventory upkeep. All store access goes through the
// repository contract; no query syntax leaks in here.
package workflow

import (
	"time"

	"github.com/oklog/ulid/v2"

	"github.com/reliefhub/reliefhub-backend/internal/store"
)

// trackingPrefix is kept from the legacy tracking-number format so
// previously printed slips stay recognizable.
const trackingPrefix = "RH-"

// Clock abstracts time retrieval so business logic is deterministic in tests.
type Clock interface {
	Now() time.Time
}

// RealClock returns the actual current time.
type RealClock struct{}

func (RealClock) Now() time.Time { return time.Now() }

// IDGenerator abstracts unique ID generation so tests are deterministic.
type IDGenerator interface {
	New() string
}

// ULIDGenerator produces ULIDs: sortable by creation time with 80 bits of
// entropy, which also closes the tracking-number collision window the old
// timestamp-plus-three-digits scheme had.
type ULIDGenerator struct{}

func (ULIDGenerator) New() string { return ulid.Make().String() }

// Coordinator carries the collaborators every workflow needs.
type Coordinator struct {
	store store.Store
	clock Clock
	ids   IDGenerator
}

// New creates a Coordinator with production collaborators.
func New(s store.Store) *Coordinator {
	return NewCoordinator(s, RealClock{}, ULIDGenerator{})
}

// NewCoordinator creates a Coordinator with explicit clock and id sources.
func NewCoordinator(s store.Store, clock Clock, ids IDGenerator) *Coordinator {
	return &Coordinator{store: s, clock: clock, ids: ids}
}

// now returns the current time in the ISO8601 shape stored on records.
func (c *Coordinator) now() string {
	return c.clock.Now().UTC().Format(time.RFC3339)
}

// newTrackingID generates a donation tracking number. Assigned exactly once,
// at creation.
func (c *Coordinator) newTrackingID() string {
	return trackingPrefix + c.ids.New()
}
