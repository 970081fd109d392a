package errors

import (
	"errors"
	"fmt"
	"strings"
)

var ErrShowNotFound = errors.New("show not found")
var ErrBookingNotFound = errors.New("booking not found")
var ErrMovieNotFound = errors.New("movie not found")
var ErrTheaterNotFound = errors.New("theater not found")
var ErrForbidden = errors.New("operation is forbidden for user")
var ErrAlreadyCancelled = errors.New("booking is already cancelled")
var ErrCapacityExceeded = errors.New("not enough seats available")
var ErrShowHasBookings = errors.New("show has active bookings")
var ErrCatalogInUse = errors.New("resource is referenced by scheduled shows")

// ErrTransientConflict is returned when the reservation path exhausted its
// retries on serialization failures. Safe for the client to retry.
var ErrTransientConflict = errors.New("transient conflict, retry the request")

// SeatConflictError reports which of the requested seats are already booked.
// A request that conflicts on any seat reserves none of its seats.
type SeatConflictError struct {
	Seats []string
}

func (e *SeatConflictError) Error() string {
	return fmt.Sprintf("seats already booked: %s", strings.Join(e.Seats, ", "))
}

// ValidationError reports a malformed request (empty or duplicate seat list,
// bad seat label, invalid status value).
type ValidationError struct {
	Msg string
}

func (e *ValidationError) Error() string {
	return e.Msg
}

func NewValidation(format string, args ...any) *ValidationError {
	return &ValidationError{Msg: fmt.Sprintf(format, args...)}
}

// IntegrityError marks a persistent inconsistency between the show inventory
// and the booking ledger: a compensation failed and seats may be stranded.
// It must be logged and alerted, never swallowed.
type IntegrityError struct {
	BookingID string
	ShowID    string
	Seats     []string
	Err       error
}

func (e *IntegrityError) Error() string {
	return fmt.Sprintf("reservation integrity error for show %s seats %v: %v", e.ShowID, e.Seats, e.Err)
}

func (e *IntegrityError) Unwrap() error { return e.Err }
