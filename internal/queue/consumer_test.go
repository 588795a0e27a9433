package queue

import (
	"encoding/json"
	"strings"
	"testing"
)

func TestBookingLogLine(t *testing.T) {
	body, _ := json.Marshal(BookingStatusChangedEvent{
		EventID:    "ev-1",
		BookingID:  7,
		ResourceID: 3,
		FarmerID:   2,
		OwnerID:    5,
		FromStatus: "pending",
		ToStatus:   "confirmed",
		TotalPrice: 400,
		ChangedAt:  "2026-03-01T10:00:00Z",
	})
	line, err := bookingLogLine(body)
	if err != nil {
		t.Fatalf("bookingLogLine: %v", err)
	}
	want := "[2026-03-01T10:00:00Z] Booking pending -> confirmed | booking_id=7 | resource_id=3 | farmer_id=2 | owner_id=5 | total=400.00\n"
	if line != want {
		t.Errorf("line = %q, want %q", line, want)
	}
}

func TestResourceLogLine(t *testing.T) {
	body, _ := json.Marshal(ResourceVerifiedEvent{
		EventID:    "ev-2",
		ResourceID: 3,
		OwnerID:    5,
		VerifiedBy: 1,
		Status:     "verified",
		DecidedAt:  "2026-03-01T11:00:00Z",
	})
	line, err := resourceLogLine(body)
	if err != nil {
		t.Fatalf("resourceLogLine: %v", err)
	}
	if !strings.HasPrefix(line, "[2026-03-01T11:00:00Z] Resource verified |") {
		t.Errorf("unexpected line %q", line)
	}
	if !strings.Contains(line, "verified_by=1") || !strings.HasSuffix(line, "\n") {
		t.Errorf("unexpected line %q", line)
	}
}

func TestLogLine_BadPayload(t *testing.T) {
	if _, err := bookingLogLine([]byte("not json")); err == nil {
		t.Error("bookingLogLine must reject a malformed payload")
	}
	if _, err := resourceLogLine([]byte("{")); err == nil {
		t.Error("resourceLogLine must reject a malformed payload")
	}
}
