// Package status defines the donation and request lifecycle machines.
// Transitions are enforced strictly; a target that is not reachable from the
// current state is rejected rather than silently accepted.
package status

import (
	"github.com/reliefhub/reliefhub-backend/internal/apperr"
	"github.com/reliefhub/reliefhub-backend/internal/models"
)

// donationNext maps each donation state to the states reachable from it.
// Delivered and Rejected are terminal.
var donationNext = map[models.DonationStatus][]models.DonationStatus{
	models.DonationPending:   {models.DonationInTransit, models.DonationRejected},
	models.DonationInTransit: {models.DonationDelivered, models.DonationRejected},
	models.DonationDelivered: {},
	models.DonationRejected:  {},
}

// requestNext maps each request state to the states reachable from it.
// Rejected and Fulfilled are terminal.
var requestNext = map[models.RequestStatus][]models.RequestStatus{
	models.RequestPending:   {models.RequestApproved, models.RequestRejected},
	models.RequestApproved:  {models.RequestFulfilled},
	models.RequestRejected:  {},
	models.RequestFulfilled: {},
}

// DonationStatusOK reports whether s is a known donation status.
func DonationStatusOK(s string) bool {
	_, ok := donationNext[models.DonationStatus(s)]
	return ok
}

// RequestStatusOK reports whether s is a known request status.
func RequestStatusOK(s string) bool {
	_, ok := requestNext[models.RequestStatus(s)]
	return ok
}

// TransitionDonation checks that target is reachable from the donation's
// current status and applies it. The caller stamps timestamps.
func TransitionDonation(d *models.Donation, target models.DonationStatus) error {
	for _, next := range donationNext[d.Status] {
		if next == target {
			d.Status = target
			return nil
		}
	}
	return apperr.InvalidTransition("cannot move donation from %s to %s", d.Status, target)
}

// TransitionRequest checks that target is reachable from the request's
// current status and applies it, stamping the reviewer. The reviewer is
// recorded on every transition, rejections included.
func TransitionRequest(r *models.Request, target models.RequestStatus, reviewerID string) error {
	for _, next := range requestNext[r.Status] {
		if next == target {
			r.Status = target
			r.ReviewedBy = reviewerID
			return nil
		}
	}
	return apperr.InvalidTransition("cannot move request from %s to %s", r.Status, target)
}
