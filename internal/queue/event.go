// Package queue defines message payloads exchanged over the message
// broker and the background consumer that records booking and
// verification activity.
package queue

// BookingStatusChangedEvent is published after a booking transition
// commits. It carries enough context for downstream consumers to log
// or notify without querying the primary database.
type BookingStatusChangedEvent struct {
    EventID    string  `json:"event_id"`
    BookingID  uint64  `json:"booking_id"`
    ResourceID uint64  `json:"resource_id"`
    FarmerID   uint64  `json:"farmer_id"`
    OwnerID    uint64  `json:"owner_id"`
    FromStatus string  `json:"from_status"`
    ToStatus   string  `json:"to_status"`
    TotalPrice float64 `json:"total_price"`
    ChangedAt  string  `json:"changed_at"`
}

// ResourceVerifiedEvent is published when an admin decides a pending
// resource listing.
type ResourceVerifiedEvent struct {
    EventID    string `json:"event_id"`
    ResourceID uint64 `json:"resource_id"`
    OwnerID    uint64 `json:"owner_id"`
    VerifiedBy uint64 `json:"verified_by"`
    Status     string `json:"status"`
    DecidedAt  string `json:"decided_at"`
}
