package model

import "time"

// ChatMessage is one entry in a booking's append-only message log.
// Messages are never edited or deleted and are read back in
// created-at ascending order.
type ChatMessage struct {
    ID        uint64    `json:"id"`        // chat_messages.id
    BookingID uint64    `json:"bookingId"` // chat_messages.booking_id
    SenderID  uint64    `json:"senderId"`  // chat_messages.sender_id
    Message   string    `json:"message"`   // chat_messages.message
    CreatedAt time.Time `json:"createdAt"` // chat_messages.created_at
}
