// Package lifecycle defines the status state machines for resources
// (verification workflow) and bookings (rental workflow). The engine
// is pure: it judges transitions, and the repository layer persists
// them conditionally so a lost race surfaces as a conflict instead of
// a silent overwrite.
package lifecycle

import "github.com/agrigo/equipment-rental/internal/model"

// BookingTransition is the verdict on a requested booking status
// change.
type BookingTransition int

const (
    // TransitionAllowed means the engine permits the change.
    TransitionAllowed BookingTransition = iota
    // TransitionNoop means the requested status equals the current
    // one; the write may proceed but changes nothing.
    TransitionNoop
    // TransitionDenied means the change violates the state machine
    // and must be rejected.
    TransitionDenied
)

// bookingEdges holds the legal forward transitions of the rental
// workflow. completed and cancelled are terminal.
var bookingEdges = map[string]map[string]bool{
    model.BookingPending: {
        model.BookingConfirmed: true,
        model.BookingCancelled: true,
    },
    model.BookingConfirmed: {
        model.BookingCompleted: true,
        model.BookingCancelled: true,
    },
}

// CheckBooking judges a booking status change from current to next.
// Both arguments must already be valid status values.
func CheckBooking(current, next string) BookingTransition {
    if current == next {
        return TransitionNoop
    }
    if bookingEdges[current][next] {
        return TransitionAllowed
    }
    return TransitionDenied
}

// BookingTerminal reports whether no transition leaves the status.
func BookingTerminal(status string) bool {
    return status == model.BookingCompleted || status == model.BookingCancelled
}

// ResourceDecision reports whether a resource status set is a
// verification decision (pending → verified/rejected) that must carry
// the deciding admin's identifier. A status set on an already-decided
// resource is permitted as an unchecked overwrite for compatibility
// with existing clients.
func ResourceDecision(current, next string) bool {
    return current == model.ResourcePending &&
        (next == model.ResourceVerified || next == model.ResourceRejected)
}
