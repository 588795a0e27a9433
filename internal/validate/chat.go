package validate

import "strings"

// ChatSend is the normalized input for appending a chat message.
type ChatSend struct {
    BookingID uint64
    SenderID  uint64
    Message   string
}

// ChatSendInput validates a chat append body. The message must be
// non-empty after trimming; a whitespace-only message is EMPTY_MESSAGE,
// distinct from a missing one.
func ChatSendInput(b Body) (*ChatSend, *Rejection) {
    if !b.presentID("bookingId") {
        return nil, reject("MISSING_BOOKING_ID", "Booking ID is required")
    }
    if !b.presentID("senderId") {
        return nil, reject("MISSING_SENDER_ID", "Sender ID is required")
    }
    raw, ok := b["message"]
    if !ok || isNull(raw) {
        return nil, reject("MISSING_MESSAGE", "Message is required")
    }
    msg, ok := asString(raw)
    if !ok || msg == "" {
        return nil, reject("MISSING_MESSAGE", "Message is required")
    }
    msg = strings.TrimSpace(msg)
    if msg == "" {
        return nil, reject("EMPTY_MESSAGE", "Message cannot be empty")
    }
    bookingID, ok := asID(b["bookingId"])
    if !ok {
        return nil, reject("INVALID_BOOKING_ID", "Invalid booking ID")
    }
    senderID, ok := asID(b["senderId"])
    if !ok {
        return nil, reject("INVALID_SENDER_ID", "Invalid sender ID")
    }
    return &ChatSend{BookingID: bookingID, SenderID: senderID, Message: msg}, nil
}
