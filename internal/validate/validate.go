// Package validate checks request payloads before any mutation happens,
// reporting field-level messages.
package validate

import (
	"strings"

	"github.com/reliefhub/reliefhub-backend/internal/api"
	"github.com/reliefhub/reliefhub-backend/internal/apperr"
	"github.com/reliefhub/reliefhub-backend/internal/models"
)

// supplyCategories are the accepted donation/request/inventory categories.
var supplyCategories = map[models.SupplyCategory]bool{
	models.CategoryFood:     true,
	models.CategoryMedical:  true,
	models.CategoryClothing: true,
	models.CategoryShelter:  true,
	models.CategoryOther:    true,
}

// urgencyLevels are the accepted request urgencies.
var urgencyLevels = map[models.Urgency]bool{
	models.UrgencyLow:      true,
	models.UrgencyMedium:   true,
	models.UrgencyHigh:     true,
	models.UrgencyCritical: true,
}

// CategoryOK reports whether c is a known supply category.
func CategoryOK(c string) bool {
	return supplyCategories[models.SupplyCategory(c)]
}

// UrgencyOK reports whether u is a known urgency level.
func UrgencyOK(u string) bool {
	return urgencyLevels[models.Urgency(u)]
}

// Camp validates a camp creation payload.
func Camp(req api.CreateCampRequest) error {
	var fields []apperr.FieldError
	if strings.TrimSpace(req.CampName) == "" {
		fields = append(fields, apperr.FieldError{Field: "camp_name", Message: "Camp name is required"})
	}
	if strings.TrimSpace(req.Location) == "" {
		fields = append(fields, apperr.FieldError{Field: "location", Message: "Location is required"})
	}
	if req.Strength < 1 {
		fields = append(fields, apperr.FieldError{Field: "strength", Message: "Strength must be a positive number"})
	}
	if len(fields) > 0 {
		return apperr.Validation(fields...)
	}
	return nil
}

// Official validates a camp-official registration payload.
func Official(req api.RegisterOfficialRequest) error {
	var fields []apperr.FieldError
	if len(strings.TrimSpace(req.Username)) < 3 {
		fields = append(fields, apperr.FieldError{Field: "username", Message: "Username must be at least 3 characters"})
	}
	if !emailOK(req.Email) {
		fields = append(fields, apperr.FieldError{Field: "email", Message: "Valid email is required"})
	}
	if len(req.Password) < 6 {
		fields = append(fields, apperr.FieldError{Field: "password", Message: "Password must be at least 6 characters"})
	}
	if strings.TrimSpace(req.CampID) == "" {
		fields = append(fields, apperr.FieldError{Field: "camp_id", Message: "Camp ID is required"})
	}
	if len(fields) > 0 {
		return apperr.Validation(fields...)
	}
	return nil
}

// Donation validates a donation creation payload.
func Donation(req api.CreateDonationRequest) error {
	var fields []apperr.FieldError
	if strings.TrimSpace(req.CampID) == "" {
		fields = append(fields, apperr.FieldError{Field: "camp_id", Message: "Camp ID is required"})
	}
	if !CategoryOK(req.DonationType) {
		fields = append(fields, apperr.FieldError{Field: "donation_type", Message: "Valid donation type is required"})
	}
	fields = append(fields, supplyItems(req.Items)...)
	if len(fields) > 0 {
		return apperr.Validation(fields...)
	}
	return nil
}

// SupplyRequest validates a request creation payload.
func SupplyRequest(req api.CreateSupplyRequest) error {
	var fields []apperr.FieldError
	if strings.TrimSpace(req.Title) == "" {
		fields = append(fields, apperr.FieldError{Field: "title", Message: "Title is required"})
	}
	if !CategoryOK(req.Type) {
		fields = append(fields, apperr.FieldError{Field: "type", Message: "Valid type is required"})
	}
	if !UrgencyOK(req.Urgency) {
		fields = append(fields, apperr.FieldError{Field: "urgency", Message: "Valid urgency level is required"})
	}
	fields = append(fields, supplyItems(req.Items)...)
	if len(fields) > 0 {
		return apperr.Validation(fields...)
	}
	return nil
}

// InventoryItems validates a whole-list inventory replace payload. Zero
// quantity is allowed; a missing category is not.
func InventoryItems(items []api.InventoryItemPayload) error {
	var fields []apperr.FieldError
	for _, it := range items {
		if strings.TrimSpace(it.Name) == "" || it.Quantity < 0 || strings.TrimSpace(it.Unit) == "" || strings.TrimSpace(it.Category) == "" {
			fields = append(fields, apperr.FieldError{Field: "items", Message: "All items must have name, quantity, unit, and category"})
			break
		}
		if !CategoryOK(it.Category) {
			fields = append(fields, apperr.FieldError{Field: "items", Message: "Valid category is required for item " + it.Name})
			break
		}
		if it.MinThreshold < 0 {
			fields = append(fields, apperr.FieldError{Field: "items", Message: "Minimum threshold cannot be negative"})
			break
		}
	}
	if len(fields) > 0 {
		return apperr.Validation(fields...)
	}
	return nil
}

// supplyItems checks that at least one item is present and that each item
// carries name, quantity and unit.
func supplyItems(items []api.SupplyItemPayload) []apperr.FieldError {
	if len(items) == 0 {
		return []apperr.FieldError{{Field: "items", Message: "At least one item is required"}}
	}
	for _, it := range items {
		if strings.TrimSpace(it.Name) == "" || it.Quantity < 1 || strings.TrimSpace(it.Unit) == "" {
			return []apperr.FieldError{{Field: "items", Message: "All items must have name, quantity, and unit"}}
		}
	}
	return nil
}

// emailOK does a minimal shape check: something@something.something.
func emailOK(email string) bool {
	email = strings.TrimSpace(email)
	at := strings.Index(email, "@")
	if at < 1 || at == len(email)-1 {
		return false
	}
	domain := email[at+1:]
	dot := strings.Index(domain, ".")
	return dot > 0 && dot < len(domain)-1
}
