package handler

import (
	"context"
	"sort"
	"strings"
	"time"

	"github.com/agrigo/equipment-rental/internal/model"
	"github.com/agrigo/equipment-rental/internal/queue"
	"github.com/agrigo/equipment-rental/internal/repository"
)

// In-memory stores mirroring the repository semantics closely enough
// for handler tests: same sentinel errors, same forced initial
// statuses, same ordering.

type memUsers struct {
	seq   uint64
	items []model.User
}

func (m *memUsers) Create(_ context.Context, u *model.User) error {
	for _, ex := range m.items {
		if ex.Email == u.Email || ex.FirebaseUID == u.FirebaseUID {
			return repository.ErrDuplicate
		}
	}
	m.seq++
	u.ID = m.seq
	u.CreatedAt = time.Now().UTC()
	m.items = append(m.items, *u)
	return nil
}

func (m *memUsers) GetByID(_ context.Context, id uint64) (model.User, error) {
	for _, u := range m.items {
		if u.ID == id {
			return u, nil
		}
	}
	return model.User{}, repository.ErrNotFound
}

func (m *memUsers) GetByEmail(_ context.Context, email string) (model.User, error) {
	for _, u := range m.items {
		if u.Email == email {
			return u, nil
		}
	}
	return model.User{}, repository.ErrNotFound
}

func (m *memUsers) GetByFirebaseUID(_ context.Context, uid string) (model.User, error) {
	for _, u := range m.items {
		if u.FirebaseUID == uid {
			return u, nil
		}
	}
	return model.User{}, repository.ErrNotFound
}

func (m *memUsers) List(_ context.Context, f repository.UserFilter) ([]model.User, error) {
	out := []model.User{}
	for _, u := range m.items {
		if f.Role != "" && u.Role != f.Role {
			continue
		}
		if f.Search != "" &&
			!strings.Contains(strings.ToLower(u.Name), strings.ToLower(f.Search)) &&
			!strings.Contains(strings.ToLower(u.Email), strings.ToLower(f.Search)) {
			continue
		}
		out = append(out, u)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return page(out, f.Limit, f.Offset), nil
}

type memResources struct {
	seq   uint64
	items []model.Resource
}

func (m *memResources) Create(_ context.Context, r *model.Resource) error {
	m.seq++
	r.ID = m.seq
	r.Status = model.ResourcePending
	r.VerifiedBy = nil
	r.CreatedAt = time.Now().UTC()
	m.items = append(m.items, *r)
	return nil
}

func (m *memResources) GetByID(_ context.Context, id uint64) (model.Resource, error) {
	for _, r := range m.items {
		if r.ID == id {
			return r, nil
		}
	}
	return model.Resource{}, repository.ErrNotFound
}

func (m *memResources) List(_ context.Context, f repository.ResourceFilter) ([]model.Resource, error) {
	out := []model.Resource{}
	for _, r := range m.items {
		if f.Status != "" && r.Status != f.Status {
			continue
		}
		if f.Type != "" && r.Type != f.Type {
			continue
		}
		if f.OwnerID != nil && r.OwnerID != *f.OwnerID {
			continue
		}
		if f.Search != "" &&
			!strings.Contains(strings.ToLower(r.Name), strings.ToLower(f.Search)) &&
			!strings.Contains(strings.ToLower(r.Location), strings.ToLower(f.Search)) {
			continue
		}
		out = append(out, r)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID > out[j].ID })
	return page(out, f.Limit, f.Offset), nil
}

func (m *memResources) Update(_ context.Context, id uint64, fields map[string]any) error {
	for i := range m.items {
		if m.items[i].ID != id {
			continue
		}
		applyResourceFields(&m.items[i], fields)
		return nil
	}
	return repository.ErrNotFound
}

func (m *memResources) Delete(_ context.Context, id uint64) error {
	for i := range m.items {
		if m.items[i].ID == id {
			m.items = append(m.items[:i], m.items[i+1:]...)
			return nil
		}
	}
	return repository.ErrNotFound
}

func applyResourceFields(r *model.Resource, fields map[string]any) {
	for col, v := range fields {
		switch col {
		case "name":
			r.Name = v.(string)
		case "type":
			r.Type = v.(string)
		case "price_per_day":
			r.PricePerDay = v.(float64)
		case "location":
			r.Location = v.(string)
		case "description":
			r.Description = strField(v)
		case "capacity":
			r.Capacity = strField(v)
		case "image_url":
			r.ImageURL = strField(v)
		case "latitude":
			r.Latitude = floatField(v)
		case "longitude":
			r.Longitude = floatField(v)
		case "status":
			r.Status = v.(string)
		case "verified_by":
			if v == nil {
				r.VerifiedBy = nil
			} else {
				id := v.(uint64)
				r.VerifiedBy = &id
			}
		case "owner_id":
			r.OwnerID = v.(uint64)
		}
	}
}

type memBookings struct {
	seq   uint64
	items []model.Booking
}

func (m *memBookings) Create(_ context.Context, b *model.Booking) error {
	m.seq++
	b.ID = m.seq
	b.Status = model.BookingPending
	b.CreatedAt = time.Now().UTC()
	m.items = append(m.items, *b)
	return nil
}

func (m *memBookings) GetByID(_ context.Context, id uint64) (model.Booking, error) {
	for _, b := range m.items {
		if b.ID == id {
			return b, nil
		}
	}
	return model.Booking{}, repository.ErrNotFound
}

func (m *memBookings) List(_ context.Context, f repository.BookingFilter) ([]model.Booking, error) {
	out := []model.Booking{}
	for _, b := range m.items {
		if f.FarmerID != nil && b.FarmerID != *f.FarmerID {
			continue
		}
		if f.OwnerID != nil && b.OwnerID != *f.OwnerID {
			continue
		}
		if f.ResourceID != nil && b.ResourceID != *f.ResourceID {
			continue
		}
		if f.Status != "" && b.Status != f.Status {
			continue
		}
		out = append(out, b)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return page(out, f.Limit, f.Offset), nil
}

func (m *memBookings) Update(_ context.Context, id uint64, fields map[string]any) error {
	for i := range m.items {
		if m.items[i].ID == id {
			applyBookingFields(&m.items[i], fields)
			return nil
		}
	}
	return repository.ErrNotFound
}

func (m *memBookings) UpdateFromStatus(_ context.Context, id uint64, expected string, fields map[string]any) error {
	for i := range m.items {
		if m.items[i].ID != id {
			continue
		}
		if m.items[i].Status != expected {
			return repository.ErrConflict
		}
		applyBookingFields(&m.items[i], fields)
		return nil
	}
	return repository.ErrConflict
}

func (m *memBookings) CountActiveByResource(_ context.Context, resourceID uint64) (int, error) {
	n := 0
	for _, b := range m.items {
		if b.ResourceID == resourceID &&
			(b.Status == model.BookingPending || b.Status == model.BookingConfirmed) {
			n++
		}
	}
	return n, nil
}

func (m *memBookings) Delete(_ context.Context, id uint64) error {
	for i := range m.items {
		if m.items[i].ID == id {
			m.items = append(m.items[:i], m.items[i+1:]...)
			return nil
		}
	}
	return repository.ErrNotFound
}

func applyBookingFields(b *model.Booking, fields map[string]any) {
	for col, v := range fields {
		switch col {
		case "farmer_id":
			b.FarmerID = v.(uint64)
		case "resource_id":
			b.ResourceID = v.(uint64)
		case "owner_id":
			b.OwnerID = v.(uint64)
		case "start_date":
			b.StartDate = v.(string)
		case "end_date":
			b.EndDate = v.(string)
		case "total_price":
			b.TotalPrice = v.(float64)
		case "status":
			b.Status = v.(string)
		case "crop_type":
			b.CropType = strField(v)
		case "farm_stage":
			b.FarmStage = strField(v)
		case "crop_weight":
			b.CropWeight = strField(v)
		}
	}
}

type memChat struct {
	seq   uint64
	items []model.ChatMessage
}

func (m *memChat) Create(_ context.Context, msg *model.ChatMessage) error {
	m.seq++
	msg.ID = m.seq
	msg.CreatedAt = time.Now().UTC()
	m.items = append(m.items, *msg)
	return nil
}

func (m *memChat) ListByBooking(_ context.Context, bookingID uint64, limit, offset int) ([]model.ChatMessage, error) {
	out := []model.ChatMessage{}
	for _, msg := range m.items {
		if msg.BookingID == bookingID {
			out = append(out, msg)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].CreatedAt.Equal(out[j].CreatedAt) {
			return out[i].ID < out[j].ID
		}
		return out[i].CreatedAt.Before(out[j].CreatedAt)
	})
	return page(out, limit, offset), nil
}

// fakeEvents records published events.
type fakeEvents struct {
	bookingEvents  []queue.BookingStatusChangedEvent
	resourceEvents []queue.ResourceVerifiedEvent
}

func (f *fakeEvents) PublishBookingStatusChanged(_ context.Context, ev queue.BookingStatusChangedEvent) error {
	f.bookingEvents = append(f.bookingEvents, ev)
	return nil
}

func (f *fakeEvents) PublishResourceVerified(_ context.Context, ev queue.ResourceVerifiedEvent) error {
	f.resourceEvents = append(f.resourceEvents, ev)
	return nil
}

func page[T any](items []T, limit, offset int) []T {
	if offset >= len(items) {
		return []T{}
	}
	items = items[offset:]
	if limit > 0 && limit < len(items) {
		items = items[:limit]
	}
	return items
}

func strField(v any) *string {
	if v == nil {
		return nil
	}
	s := v.(string)
	return &s
}

func floatField(v any) *float64 {
	if v == nil {
		return nil
	}
	f := v.(float64)
	return &f
}
