package models

import "time"

// NATS subjects
const (
	EventBookingCreated       = "booking.created"
	EventBookingCancelled     = "booking.cancelled"
	EventBookingStatusChanged = "booking.status_changed"
	EventSeatReleaseFailed    = "seat_release.failed"
)

// BookingCreatedEvent is published after a booking fully commits
type BookingCreatedEvent struct {
	BookingID   string    `json:"booking_id"`
	ShowID      string    `json:"show_id"`
	UserID      string    `json:"user_id"`
	Seats       []string  `json:"seats"`
	AmountCents int64     `json:"amount_cents"`
	Timestamp   time.Time `json:"timestamp"`
}

// BookingCancelledEvent is published when a booking is cancelled
type BookingCancelledEvent struct {
	BookingID string    `json:"booking_id"`
	ShowID    string    `json:"show_id"`
	Seats     []string  `json:"seats"`
	Reason    string    `json:"reason"`
	Timestamp time.Time `json:"timestamp"`
}

// BookingStatusChangedEvent is published on administrative status overrides
type BookingStatusChangedEvent struct {
	BookingID string    `json:"booking_id"`
	OldStatus string    `json:"old_status"`
	NewStatus string    `json:"new_status"`
	Timestamp time.Time `json:"timestamp"`
}

// SeatReleaseFailedEvent marks seats that stayed booked after their booking
// was cancelled. The reconciliation worker retries the release until the
// inventory is consistent again.
type SeatReleaseFailedEvent struct {
	BookingID string    `json:"booking_id"`
	ShowID    string    `json:"show_id"`
	Seats     []string  `json:"seats"`
	Error     string    `json:"error"`
	Timestamp time.Time `json:"timestamp"`
}
