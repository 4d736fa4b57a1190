// Package models defines the data models used in the application.
package models

// Role identifies what a user is allowed to do.
type Role string

// Possible values for Role
const (
	RoleCollector    Role = "Collector"
	RoleCampOfficial Role = "CampOfficial"
	RoleDonor        Role = "Donor"
)

// DonationStatus represents the delivery state of a donation.
type DonationStatus string

// Possible values for DonationStatus
const (
	DonationPending   DonationStatus = "Pending"
	DonationInTransit DonationStatus = "In Transit"
	DonationDelivered DonationStatus = "Delivered"
	DonationRejected  DonationStatus = "Rejected"
)

// RequestStatus represents the review state of a supply request.
type RequestStatus string

// Possible values for RequestStatus
const (
	RequestPending   RequestStatus = "Pending"
	RequestApproved  RequestStatus = "Approved"
	RequestFulfilled RequestStatus = "Fulfilled"
	RequestRejected  RequestStatus = "Rejected"
)

// Urgency represents how badly a request is needed.
type Urgency string

// Possible values for Urgency
const (
	UrgencyLow      Urgency = "Low"
	UrgencyMedium   Urgency = "Medium"
	UrgencyHigh     Urgency = "High"
	UrgencyCritical Urgency = "Critical"
)

// SupplyCategory classifies donations, requests and inventory items.
type SupplyCategory string

// Possible values for SupplyCategory
const (
	CategoryFood     SupplyCategory = "Food"
	CategoryMedical  SupplyCategory = "Medical"
	CategoryClothing SupplyCategory = "Clothing"
	CategoryShelter  SupplyCategory = "Shelter"
	CategoryOther    SupplyCategory = "Other"
)

// CampStatus represents whether a camp is operating.
type CampStatus string

// Possible values for CampStatus
const (
	CampActive   CampStatus = "Active"
	CampInactive CampStatus = "Inactive"
)

// User represents an account. Officials carry exactly one assigned camp.
type User struct {
	// DynamoDB keys
	PK string `dynamodbav:"PK"` // USER#<userID>
	SK string `dynamodbav:"SK"` // PROFILE

	UserID       string `dynamodbav:"user_id"`
	Username     string `dynamodbav:"username"`
	Email        string `dynamodbav:"email"`
	PasswordHash string `dynamodbav:"password_hash"`
	Role         Role   `dynamodbav:"role"`
	PhoneNumber  string `dynamodbav:"phone_number,omitempty"`
	AssignedCamp string `dynamodbav:"assigned_camp,omitempty"`
	CreatedAt    string `dynamodbav:"created_at"` // ISO8601
}

// Camp represents a relief site. AssignedOfficials is a back-reference only;
// user lifecycle is not owned here.
type Camp struct {
	PK string `dynamodbav:"PK"` // CAMP#<campID>
	SK string `dynamodbav:"SK"` // PROFILE

	CampID            string     `dynamodbav:"camp_id"`
	CampName          string     `dynamodbav:"camp_name"`
	Location          string     `dynamodbav:"location"`
	Strength          int        `dynamodbav:"strength"`
	AssignedOfficials []string   `dynamodbav:"assigned_officials"`
	Description       string     `dynamodbav:"description,omitempty"`
	Status            CampStatus `dynamodbav:"status"`
	CreatedBy         string     `dynamodbav:"created_by"`
	CreatedAt         string     `dynamodbav:"created_at"`
	UpdatedAt         string     `dynamodbav:"updated_at"`
}

// InventoryItem is one stocked line in a camp inventory.
type InventoryItem struct {
	Name         string         `dynamodbav:"name"`
	Quantity     int            `dynamodbav:"quantity"`
	Unit         string         `dynamodbav:"unit"`
	Category     SupplyCategory `dynamodbav:"category"`
	MinThreshold int            `dynamodbav:"min_threshold"`
	LastUpdated  string         `dynamodbav:"last_updated"`
}

// Inventory holds the full stock list of one camp. At most one per camp,
// provisioned alongside the camp itself.
type Inventory struct {
	PK string `dynamodbav:"PK"` // CAMP#<campID>
	SK string `dynamodbav:"SK"` // INVENTORY

	CampID        string          `dynamodbav:"camp_id"`
	Items         []InventoryItem `dynamodbav:"items"`
	LastUpdatedBy string          `dynamodbav:"last_updated_by"`
	CreatedAt     string          `dynamodbav:"created_at"`
	UpdatedAt     string          `dynamodbav:"updated_at"`
}

// SupplyItem is one line of a donation or request.
type SupplyItem struct {
	Name     string `dynamodbav:"name"`
	Quantity int    `dynamodbav:"quantity"`
	Unit     string `dynamodbav:"unit"`
}

// Receipt records a delivery-receipt document uploaded for a donation.
type Receipt struct {
	S3Key      string `dynamodbav:"s3_key"`
	SizeBytes  int64  `dynamodbav:"size_bytes"`
	ETag       string `dynamodbav:"etag"`
	UploadedAt string `dynamodbav:"uploaded_at"`
}

// Donation represents a tracked donation to a camp. The item list is
// immutable after creation; only status and receipt fields change.
type Donation struct {
	PK string `dynamodbav:"PK"` // DON#<donationID>
	SK string `dynamodbav:"SK"` // PROFILE

	DonationID   string         `dynamodbav:"donation_id"`
	DonorID      string         `dynamodbav:"donor_id"`
	CampID       string         `dynamodbav:"camp_id"`
	Items        []SupplyItem   `dynamodbav:"items"`
	DonationType SupplyCategory `dynamodbav:"donation_type"`
	Status       DonationStatus `dynamodbav:"status"`
	TrackingID   string         `dynamodbav:"tracking_id"`
	Message      string         `dynamodbav:"message,omitempty"`
	Receipt      *Receipt       `dynamodbav:"receipt,omitempty"`
	CreatedAt    string         `dynamodbav:"created_at"`
	UpdatedAt    string         `dynamodbav:"updated_at"`
}

// Request represents a supply request raised by a camp official.
// ReviewedBy is stamped by the collector on every status change,
// rejections included.
type Request struct {
	PK string `dynamodbav:"PK"` // REQ#<requestID>
	SK string `dynamodbav:"SK"` // PROFILE

	RequestID   string         `dynamodbav:"request_id"`
	Title       string         `dynamodbav:"title"`
	Type        SupplyCategory `dynamodbav:"type"`
	Items       []SupplyItem   `dynamodbav:"items"`
	Urgency     Urgency        `dynamodbav:"urgency"`
	Status      RequestStatus  `dynamodbav:"status"`
	RaisedBy    string         `dynamodbav:"raised_by"`
	CampID      string         `dynamodbav:"camp_id"`
	ReviewedBy  string         `dynamodbav:"reviewed_by,omitempty"`
	Description string         `dynamodbav:"description,omitempty"`
	CreatedAt   string         `dynamodbav:"created_at"`
	UpdatedAt   string         `dynamodbav:"updated_at"`
}

// Identity is the authenticated caller context threaded into every core
// operation. AssignedCamp is set only for camp officials.
type Identity struct {
	UserID       string
	Role         Role
	AssignedCamp string
}
