package ddb

import (
	"fmt"
	"time"
)

// Single-table key scheme. Profile records live under an entity-prefixed PK
// with a fixed SK; uniqueness guards are their own items so conditional puts
// can enforce them transactionally.
const (
	skProfile   = "PROFILE"
	skInventory = "INVENTORY"
	skGuard     = "GUARD"
)

// UserKeys constructs the keys of a user profile record.
func UserKeys(userID string) (pk, sk string) {
	return fmt.Sprintf("USER#%s", userID), skProfile
}

// CampKeys constructs the keys of a camp profile record.
func CampKeys(campID string) (pk, sk string) {
	return fmt.Sprintf("CAMP#%s", campID), skProfile
}

// InventoryKeys constructs the keys of a camp inventory record. Inventory
// shares the camp partition, one record per camp.
func InventoryKeys(campID string) (pk, sk string) {
	return fmt.Sprintf("CAMP#%s", campID), skInventory
}

// DonationKeys constructs the keys of a donation profile record.
func DonationKeys(donationID string) (pk, sk string) {
	return fmt.Sprintf("DON#%s", donationID), skProfile
}

// RequestKeys constructs the keys of a request profile record.
func RequestKeys(requestID string) (pk, sk string) {
	return fmt.Sprintf("REQ#%s", requestID), skProfile
}

// UsernameGuardKeys constructs the keys of a username uniqueness guard.
func UsernameGuardKeys(username string) (pk, sk string) {
	return fmt.Sprintf("UNIQ#username#%s", username), skGuard
}

// EmailGuardKeys constructs the keys of an email uniqueness guard.
func EmailGuardKeys(email string) (pk, sk string) {
	return fmt.Sprintf("UNIQ#email#%s", email), skGuard
}

// TrackingGuardKeys constructs the keys of a tracking-id lookup guard.
func TrackingGuardKeys(trackingID string) (pk, sk string) {
	return fmt.Sprintf("TRACK#%s", trackingID), skGuard
}

// NowISO returns the current time in ISO8601 format.
func NowISO() string { return time.Now().UTC().Format(time.RFC3339) }
