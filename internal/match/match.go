// Package match derives the still-open urgent requests to surface to
// donors, suppressing requests already covered by delivered donations.
package match

import (
	"sort"
	"strings"

	"github.com/reliefhub/reliefhub-backend/internal/api"
	"github.com/reliefhub/reliefhub-backend/internal/models"
)

// maxResults caps the donor-facing urgent list.
const maxResults = 10

// UnfulfilledUrgent filters requests down to Approved ones with High or
// Critical urgency that no delivered donation to the same camp already
// covers, newest first, capped at 10 entries, projected to first-item
// summaries. campNames resolves camp id to display name.
func UnfulfilledUrgent(requests []models.Request, donations []models.Donation, campNames map[string]string) []api.UrgentRequestSummary {
	delivered := deliveredByCamp(donations)

	var open []models.Request
	for _, r := range requests {
		if r.Status != models.RequestApproved {
			continue
		}
		if r.Urgency != models.UrgencyHigh && r.Urgency != models.UrgencyCritical {
			continue
		}
		if isFulfilled(r, delivered[r.CampID]) {
			continue
		}
		open = append(open, r)
	}

	sort.SliceStable(open, func(i, j int) bool {
		return open[i].CreatedAt > open[j].CreatedAt
	})
	if len(open) > maxResults {
		open = open[:maxResults]
	}

	out := make([]api.UrgentRequestSummary, 0, len(open))
	for _, r := range open {
		if len(r.Items) == 0 {
			continue
		}
		first := r.Items[0]
		out = append(out, api.UrgentRequestSummary{
			RequestID: r.RequestID,
			ItemName:  first.Name,
			Quantity:  first.Quantity,
			Unit:      first.Unit,
			CampID:    r.CampID,
			CampName:  campNames[r.CampID],
			Urgency:   string(r.Urgency),
		})
	}
	return out
}

// deliveredByCamp groups delivered donations by camp id; other statuses are
// ignored.
func deliveredByCamp(donations []models.Donation) map[string][]models.Donation {
	grouped := make(map[string][]models.Donation)
	for _, d := range donations {
		if d.Status != models.DonationDelivered {
			continue
		}
		grouped[d.CampID] = append(grouped[d.CampID], d)
	}
	return grouped
}

// isFulfilled reports whether any single request item is covered by a
// delivered donation item: names and units match case-insensitively and the
// donated quantity reaches the requested quantity. One covered item
// suppresses the whole request; quantities are never decremented or
// reserved.
func isFulfilled(r models.Request, delivered []models.Donation) bool {
	for _, want := range r.Items {
		for _, d := range delivered {
			for _, got := range d.Items {
				if itemCovers(got, want) {
					return true
				}
			}
		}
	}
	return false
}

// itemCovers reports whether a donated item satisfies a requested item.
func itemCovers(donated, requested models.SupplyItem) bool {
	return strings.EqualFold(donated.Name, requested.Name) &&
		strings.EqualFold(donated.Unit, requested.Unit) &&
		donated.Quantity >= requested.Quantity
}
