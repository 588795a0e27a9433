package model

import "time"

// Booking rental statuses. pending is the initial state; completed and
// cancelled are terminal.
const (
    BookingPending   = "pending"
    BookingConfirmed = "confirmed"
    BookingCompleted = "completed"
    BookingCancelled = "cancelled"
)

// ValidBookingStatus reports whether s belongs to the closed status set.
func ValidBookingStatus(s string) bool {
    switch s {
    case BookingPending, BookingConfirmed, BookingCompleted, BookingCancelled:
        return true
    }
    return false
}

// Booking records a farmer's reservation of a resource for a date
// range. OwnerID is a denormalized copy of the resource owner at
// booking time and is not re-derived afterwards. TotalPrice is stored
// verbatim as supplied by the caller.
//
// Fields:
//  ID         – primary key identifier.
//  FarmerID   – user who requested the rental.
//  ResourceID – booked resource.
//  OwnerID    – resource owner at booking time (denormalized).
//  StartDate  – calendar date YYYY-MM-DD.
//  EndDate    – calendar date YYYY-MM-DD, never before StartDate.
//  TotalPrice – caller-computed total, stored as-is.
//  Status     – pending, confirmed, completed or cancelled.
//  CropType   – optional free text (nullable).
//  FarmStage  – optional free text (nullable).
//  CropWeight – optional free text (nullable).
//  CreatedAt  – timestamp of creation.
type Booking struct {
    ID         uint64    `json:"id"`         // bookings.id
    FarmerID   uint64    `json:"farmerId"`   // bookings.farmer_id
    ResourceID uint64    `json:"resourceId"` // bookings.resource_id
    OwnerID    uint64    `json:"ownerId"`    // bookings.owner_id
    StartDate  string    `json:"startDate"`  // bookings.start_date
    EndDate    string    `json:"endDate"`    // bookings.end_date
    TotalPrice float64   `json:"totalPrice"` // bookings.total_price
    Status     string    `json:"status"`     // bookings.status
    CropType   *string   `json:"cropType"`   // bookings.crop_type (nullable)
    FarmStage  *string   `json:"farmStage"`  // bookings.farm_stage (nullable)
    CropWeight *string   `json:"cropWeight"` // bookings.crop_weight (nullable)
    CreatedAt  time.Time `json:"createdAt"`  // bookings.created_at
}
