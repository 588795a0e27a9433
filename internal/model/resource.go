package model

import "time"

// Resource verification statuses. A resource starts at pending and is
// moved to verified or rejected by an admin decision that also stamps
// VerifiedBy.
const (
    ResourcePending  = "pending"
    ResourceVerified = "verified"
    ResourceRejected = "rejected"
)

// ValidResourceStatus reports whether s belongs to the closed status set.
func ValidResourceStatus(s string) bool {
    return s == ResourcePending || s == ResourceVerified || s == ResourceRejected
}

// Resource represents a piece of equipment listed for rental, one row
// in the `resources` table. It is owned by exactly one user with the
// owner role.
//
// Fields:
//  ID          – primary key identifier.
//  OwnerID     – user ID of the listing owner.
//  Name        – equipment name.
//  Type        – free-form tag such as "tractor".
//  Description – optional free text (nullable).
//  PricePerDay – non-negative rental price per day.
//  Capacity    – optional free-form capacity string (nullable).
//  Location    – free-form location string.
//  Latitude    – optional, range [-90, 90] (nullable).
//  Longitude   – optional, range [-180, 180] (nullable).
//  ImageURL    – optional image link (nullable).
//  Status      – pending, verified or rejected.
//  VerifiedBy  – admin user ID that decided the status (nullable).
//  CreatedAt   – timestamp of creation.
type Resource struct {
    ID          uint64    `json:"id"`          // resources.id
    OwnerID     uint64    `json:"ownerId"`     // resources.owner_id
    Name        string    `json:"name"`        // resources.name
    Type        string    `json:"type"`        // resources.type
    Description *string   `json:"description"` // resources.description (nullable)
    PricePerDay float64   `json:"pricePerDay"` // resources.price_per_day
    Capacity    *string   `json:"capacity"`    // resources.capacity (nullable)
    Location    string    `json:"location"`    // resources.location
    Latitude    *float64  `json:"latitude"`    // resources.latitude (nullable)
    Longitude   *float64  `json:"longitude"`   // resources.longitude (nullable)
    ImageURL    *string   `json:"imageUrl"`    // resources.image_url (nullable)
    Status      string    `json:"status"`      // resources.status
    VerifiedBy  *uint64   `json:"verifiedBy"`  // resources.verified_by (nullable)
    CreatedAt   time.Time `json:"createdAt"`   // resources.created_at
}
