// Package api contains types for the API requests and responses.
package api

import "github.com/reliefhub/reliefhub-backend/internal/models"

// SupplyItemPayload is one donation or request line as sent by clients.
type SupplyItemPayload struct {
	Name     string `json:"name"`
	Quantity int    `json:"quantity"`
	Unit     string `json:"unit"`
}

// InventoryItemPayload is one inventory line as sent by camp officials.
type InventoryItemPayload struct {
	Name         string `json:"name"`
	Quantity     int    `json:"quantity"`
	Unit         string `json:"unit"`
	Category     string `json:"category"`
	MinThreshold int    `json:"min_threshold"`
}

// CreateCampRequest is the payload for creating a camp.
type CreateCampRequest struct {
	CampName    string `json:"camp_name"`
	Location    string `json:"location"`
	Strength    int    `json:"strength"`
	Description string `json:"description"`
}

// RegisterOfficialRequest is the payload for registering a camp official.
type RegisterOfficialRequest struct {
	Username    string `json:"username"`
	Email       string `json:"email"`
	Password    string `json:"password"`
	CampID      string `json:"camp_id"`
	PhoneNumber string `json:"phone_number"`
}

// CreateDonationRequest is the payload for submitting a donation.
type CreateDonationRequest struct {
	CampID       string              `json:"camp_id"`
	Items        []SupplyItemPayload `json:"items"`
	DonationType string              `json:"donation_type"`
	Message      string              `json:"message"`
}

// CreateSupplyRequest is the payload for raising a supply request.
type CreateSupplyRequest struct {
	Title       string              `json:"title"`
	Type        string              `json:"type"`
	Items       []SupplyItemPayload `json:"items"`
	Urgency     string              `json:"urgency"`
	Description string              `json:"description"`
}

// UpdateStatusRequest is the payload for donation and request status changes.
type UpdateStatusRequest struct {
	Status string `json:"status"`
}

// ReplaceInventoryRequest is the payload for a whole-list inventory replace.
type ReplaceInventoryRequest struct {
	Items []InventoryItemPayload `json:"items"`
}

// ReceiptPresignRequest is the payload for requesting a delivery-receipt
// upload URL.
type ReceiptPresignRequest struct {
	ContentType string `json:"content_type"`
}

// ReceiptPresignResponse carries the presigned receipt upload URL.
type ReceiptPresignResponse struct {
	DonationID    string            `json:"donation_id"`
	S3Key         string            `json:"s3_key"`
	PresignedURL  string            `json:"presigned_url"`
	ExpiresIn     int               `json:"expires_in"`
	ContentType   string            `json:"content_type"`
	UploadHeaders map[string]string `json:"upload_headers"`
}

// MessageResponse is a plain success message.
type MessageResponse struct {
	Message string `json:"message"`
}

// UserRef is a resolved reference to a user, the read-side replacement for
// document-store population.
type UserRef struct {
	UserID   string `json:"user_id"`
	Username string `json:"username"`
}

// CampRef is a resolved reference to a camp.
type CampRef struct {
	CampID   string `json:"camp_id"`
	CampName string `json:"camp_name"`
	Location string `json:"location"`
}

// CampView is the response shape for a camp.
type CampView struct {
	CampID            string    `json:"camp_id"`
	CampName          string    `json:"camp_name"`
	Location          string    `json:"location"`
	Strength          int       `json:"strength"`
	AssignedOfficials []UserRef `json:"assigned_officials"`
	Description       string    `json:"description,omitempty"`
	Status            string    `json:"status"`
	CreatedBy         UserRef   `json:"created_by"`
	CreatedAt         string    `json:"created_at"`
	UpdatedAt         string    `json:"updated_at"`
}

// DonationView is the response shape for a donation.
type DonationView struct {
	DonationID   string              `json:"donation_id"`
	Donor        UserRef             `json:"donor"`
	Camp         CampRef             `json:"camp"`
	Items        []SupplyItemPayload `json:"items"`
	DonationType string              `json:"donation_type"`
	Status       string              `json:"status"`
	TrackingID   string              `json:"tracking_id"`
	Message      string              `json:"message,omitempty"`
	CreatedAt    string              `json:"created_at"`
	UpdatedAt    string              `json:"updated_at"`
}

// RequestView is the response shape for a supply request.
type RequestView struct {
	RequestID   string              `json:"request_id"`
	Title       string              `json:"title"`
	Type        string              `json:"type"`
	Items       []SupplyItemPayload `json:"items"`
	Urgency     string              `json:"urgency"`
	Status      string              `json:"status"`
	RaisedBy    UserRef             `json:"raised_by"`
	Camp        CampRef             `json:"camp"`
	ReviewedBy  *UserRef            `json:"reviewed_by,omitempty"`
	Description string              `json:"description,omitempty"`
	CreatedAt   string              `json:"created_at"`
	UpdatedAt   string              `json:"updated_at"`
}

// InventoryItemView is one inventory line in responses.
type InventoryItemView struct {
	Name         string `json:"name"`
	Quantity     int    `json:"quantity"`
	Unit         string `json:"unit"`
	Category     string `json:"category"`
	MinThreshold int    `json:"min_threshold"`
	LastUpdated  string `json:"last_updated"`
}

// InventoryView is the response shape for a camp inventory.
type InventoryView struct {
	Camp          CampRef             `json:"camp"`
	Items         []InventoryItemView `json:"items"`
	LastUpdatedBy UserRef             `json:"last_updated_by"`
	UpdatedAt     string              `json:"updated_at"`
}

// UrgentRequestSummary is the flat projection served to donors: the first
// item of a still-open urgent request.
type UrgentRequestSummary struct {
	RequestID string `json:"request_id"`
	ItemName  string `json:"item_name"`
	Quantity  int    `json:"quantity"`
	Unit      string `json:"unit"`
	CampID    string `json:"camp_id"`
	CampName  string `json:"camp_name"`
	Urgency   string `json:"urgency"`
}

// LowStockAlert is one flattened low-stock line across camps.
type LowStockAlert struct {
	CampName        string `json:"camp_name"`
	CampLocation    string `json:"camp_location"`
	ItemName        string `json:"item_name"`
	CurrentQuantity int    `json:"current_quantity"`
	MinThreshold    int    `json:"min_threshold"`
	Unit            string `json:"unit"`
	Category        string `json:"category"`
}

// SupplyItems converts item payloads to model items.
func SupplyItems(in []SupplyItemPayload) []models.SupplyItem {
	out := make([]models.SupplyItem, 0, len(in))
	for _, it := range in {
		out = append(out, models.SupplyItem{Name: it.Name, Quantity: it.Quantity, Unit: it.Unit})
	}
	return out
}

// SupplyItemPayloads converts model items back to the wire shape.
func SupplyItemPayloads(in []models.SupplyItem) []SupplyItemPayload {
	out := make([]SupplyItemPayload, 0, len(in))
	for _, it := range in {
		out = append(out, SupplyItemPayload{Name: it.Name, Quantity: it.Quantity, Unit: it.Unit})
	}
	return out
}
