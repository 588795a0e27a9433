package handler

import (
    "context"

    "github.com/agrigo/equipment-rental/internal/model"
    "github.com/agrigo/equipment-rental/internal/queue"
    "github.com/agrigo/equipment-rental/internal/repository"
)

// Store ports consumed by the handlers. The repository types satisfy
// them; tests substitute in-memory fakes. Constructing handlers from
// these interfaces keeps storage an explicit dependency instead of a
// process-wide handle.

type UserStore interface {
    Create(ctx context.Context, u *model.User) error
    GetByID(ctx context.Context, id uint64) (model.User, error)
    GetByEmail(ctx context.Context, email string) (model.User, error)
    GetByFirebaseUID(ctx context.Context, uid string) (model.User, error)
    List(ctx context.Context, f repository.UserFilter) ([]model.User, error)
}

type ResourceStore interface {
    Create(ctx context.Context, r *model.Resource) error
    GetByID(ctx context.Context, id uint64) (model.Resource, error)
    List(ctx context.Context, f repository.ResourceFilter) ([]model.Resource, error)
    Update(ctx context.Context, id uint64, fields map[string]any) error
    Delete(ctx context.Context, id uint64) error
}

type BookingStore interface {
    Create(ctx context.Context, b *model.Booking) error
    GetByID(ctx context.Context, id uint64) (model.Booking, error)
    List(ctx context.Context, f repository.BookingFilter) ([]model.Booking, error)
    Update(ctx context.Context, id uint64, fields map[string]any) error
    UpdateFromStatus(ctx context.Context, id uint64, expected string, fields map[string]any) error
    CountActiveByResource(ctx context.Context, resourceID uint64) (int, error)
    Delete(ctx context.Context, id uint64) error
}

type ChatStore interface {
    Create(ctx context.Context, m *model.ChatMessage) error
    ListByBooking(ctx context.Context, bookingID uint64, limit, offset int) ([]model.ChatMessage, error)
}

// EventPublisher forwards domain events to the message broker.
// Publishing is best-effort; handlers ignore the returned error so a
// broker outage never fails the request.
type EventPublisher interface {
    PublishBookingStatusChanged(ctx context.Context, ev queue.BookingStatusChangedEvent) error
    PublishResourceVerified(ctx context.Context, ev queue.ResourceVerifiedEvent) error
}
