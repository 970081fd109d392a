package service

import (
	"context"
	"time"

	apperr "cinebook/internal/errors"
	"cinebook/internal/logger"
	"cinebook/internal/metrics"
	"cinebook/internal/models"

	"github.com/google/uuid"
)

// Inventory is the show seat-occupancy store. ReserveSeats must be
// serializable per show: of two concurrent requests for the same seat,
// exactly one wins. ReleaseSeats only touches seats still owned by
// bookingID, so retried releases never evict a later owner.
type Inventory interface {
	GetByID(ctx context.Context, id string) (*models.Show, error)
	Availability(ctx context.Context, showID string) (*models.Availability, error)
	ReserveSeats(ctx context.Context, showID string, seatIDs []string, bookingID string) (*models.Reservation, error)
	ReleaseSeats(ctx context.Context, showID string, seatIDs []string, bookingID string) error
}

// Ledger is the durable booking record store. Cancel is conditional: it
// fails with ErrAlreadyCancelled when the booking is already cancelled, so
// concurrent cancels have exactly one winner.
type Ledger interface {
	Append(ctx context.Context, booking *models.Booking) error
	GetByID(ctx context.Context, id string) (*models.Booking, error)
	ListByUser(ctx context.Context, userID string) ([]models.Booking, error)
	ListAll(ctx context.Context, status string) ([]models.Booking, error)
	UpdateStatus(ctx context.Context, id, status string) (*models.Booking, error)
	Cancel(ctx context.Context, id string) (*models.Booking, error)
	Delete(ctx context.Context, id string) error
}

// Publisher emits domain events; failures are logged, never fatal
type Publisher interface {
	Publish(subject string, data interface{}) error
}

// IdempotencyStore maps client retry keys to committed booking ids
type IdempotencyStore interface {
	LookupIdempotencyKey(ctx context.Context, key string) (string, bool, error)
	StoreIdempotencyKey(ctx context.Context, key, bookingID string) error
}

// CommitState tags the outcome of a createBooking attempt
type CommitState int

const (
	// CommitOK: inventory and ledger both updated
	CommitOK CommitState = iota
	// CommitCompensated: ledger append failed, seats were released again
	CommitCompensated
	// CommitIntegrityError: compensation failed too, inventory and ledger
	// disagree until reconciled
	CommitIntegrityError
)

// ReservationService orchestrates booking creation and cancellation as a
// logical transaction across the show inventory and the booking ledger.
type ReservationService struct {
	inventory Inventory
	ledger    Ledger
	publisher Publisher
	idem      IdempotencyStore
}

func NewReservationService(inventory Inventory, ledger Ledger, publisher Publisher, idem IdempotencyStore) *ReservationService {
	return &ReservationService{
		inventory: inventory,
		ledger:    ledger,
		publisher: publisher,
		idem:      idem,
	}
}

func validateSeatIDs(seatIDs []string, show *models.Show) error {
	if len(seatIDs) == 0 {
		return apperr.NewValidation("seat_ids must not be empty")
	}
	seen := make(map[string]struct{}, len(seatIDs))
	for _, seat := range seatIDs {
		if _, dup := seen[seat]; dup {
			return apperr.NewValidation("duplicate seat id %q", seat)
		}
		seen[seat] = struct{}{}
		if !models.SeatInLayout(seat, show.SeatRows, show.SeatsPerRow) {
			return apperr.NewValidation("seat %q does not exist on screen %s", seat, show.Screen)
		}
	}
	return nil
}

// CreateBooking reserves the seats and appends the ledger record. The
// amount is frozen from the price read under the reservation lock. If the
// ledger append fails after the seats were reserved, the reservation is
// compensated by releasing the same seats; if that fails too the error
// escalates to an integrity error that must be reconciled.
func (s *ReservationService) CreateBooking(ctx context.Context, userID, showID string, seatIDs []string, paymentMethod, idemKey string) (*models.Booking, error) {
	booking, state, err := s.createBooking(ctx, userID, showID, seatIDs, paymentMethod, idemKey)

	switch state {
	case CommitCompensated:
		metrics.Compensations.Inc()
	case CommitIntegrityError:
		metrics.IntegrityErrors.Inc()
	}

	return booking, err
}

func (s *ReservationService) createBooking(ctx context.Context, userID, showID string, seatIDs []string, paymentMethod, idemKey string) (*models.Booking, CommitState, error) {
	log := logger.WithContext(ctx)

	// Replay detection for client retries
	if idemKey != "" && s.idem != nil {
		if id, found, err := s.idem.LookupIdempotencyKey(ctx, idemKey); err != nil {
			log.Warn("Idempotency lookup failed, proceeding without replay check",
				"error", err, "idempotency_key", idemKey)
		} else if found {
			existing, err := s.ledger.GetByID(ctx, id)
			if err != nil {
				return nil, CommitOK, err
			}
			if existing != nil {
				log.Info("Replayed booking for idempotency key",
					"booking_id", existing.ID, "idempotency_key", idemKey)
				return existing, CommitOK, nil
			}
		}
	}

	show, err := s.inventory.GetByID(ctx, showID)
	if err != nil {
		return nil, CommitOK, err
	}
	if show == nil {
		return nil, CommitOK, apperr.ErrShowNotFound
	}

	if err := validateSeatIDs(seatIDs, show); err != nil {
		return nil, CommitOK, err
	}

	bookingID := uuid.New().String()

	reservation, err := s.inventory.ReserveSeats(ctx, showID, seatIDs, bookingID)
	if err != nil {
		if _, conflict := err.(*apperr.SeatConflictError); conflict {
			metrics.SeatConflicts.Inc()
		}
		return nil, CommitOK, err
	}

	// Price frozen at reservation time; later admin edits never change the
	// amount of an existing booking.
	booking := &models.Booking{
		ID:               bookingID,
		UserID:           userID,
		ShowID:           showID,
		Seats:            seatIDs,
		TotalAmountCents: int64(len(seatIDs)) * reservation.PriceCents,
		PaymentMethod:    paymentMethod,
		Status:           models.BookingConfirmed,
	}

	if err := s.ledger.Append(ctx, booking); err != nil {
		log.Error("Ledger append failed after seats reserved, compensating",
			"error", err, "booking_id", bookingID, "show_id", showID)

		if relErr := s.inventory.ReleaseSeats(ctx, showID, seatIDs, bookingID); relErr != nil {
			intErr := &apperr.IntegrityError{
				BookingID: bookingID,
				ShowID:    showID,
				Seats:     seatIDs,
				Err:       relErr,
			}
			log.Error("Compensation failed, inventory and ledger inconsistent",
				"error", relErr, "booking_id", bookingID, "show_id", showID, "seats", seatIDs)
			s.publishReleaseFailed(bookingID, showID, seatIDs, relErr)
			return nil, CommitIntegrityError, intErr
		}

		return nil, CommitCompensated, apperr.ErrTransientConflict
	}

	if idemKey != "" && s.idem != nil {
		if err := s.idem.StoreIdempotencyKey(ctx, idemKey, bookingID); err != nil {
			log.Warn("Failed to store idempotency key", "error", err, "idempotency_key", idemKey)
		}
	}

	metrics.BookingsCreated.Inc()

	if err := s.publisher.Publish(models.EventBookingCreated, models.BookingCreatedEvent{
		BookingID:   booking.ID,
		ShowID:      booking.ShowID,
		UserID:      booking.UserID,
		Seats:       booking.Seats,
		AmountCents: booking.TotalAmountCents,
		Timestamp:   time.Now(),
	}); err != nil {
		log.Error("Failed to publish booking created event", "error", err, "booking_id", booking.ID)
	}

	return booking, CommitOK, nil
}

// GetBooking returns one booking, visible to its owner or any admin
func (s *ReservationService) GetBooking(ctx context.Context, userID string, isAdmin bool, bookingID string) (*models.Booking, error) {
	booking, err := s.ledger.GetByID(ctx, bookingID)
	if err != nil {
		return nil, err
	}
	if booking == nil {
		return nil, apperr.ErrBookingNotFound
	}
	if booking.UserID != userID && !isAdmin {
		return nil, apperr.ErrForbidden
	}
	return booking, nil
}

// ListUserBookings returns the caller's bookings, newest first
func (s *ReservationService) ListUserBookings(ctx context.Context, userID string) ([]models.Booking, error) {
	return s.ledger.ListByUser(ctx, userID)
}

// ListAllBookings returns every booking, optionally filtered by status
func (s *ReservationService) ListAllBookings(ctx context.Context, status string) ([]models.Booking, error) {
	if status != "" && !validStatus(status) {
		return nil, apperr.NewValidation("invalid status %q", status)
	}
	return s.ledger.ListAll(ctx, status)
}

// CancelBooking marks the booking cancelled and releases its seats. The
// booking must belong to userID unless the caller is an admin. A failed
// seat release does not fail the call: the cancellation is the user-visible
// outcome, and a seat_release.failed event hands the stuck seats to the
// reconciliation worker.
func (s *ReservationService) CancelBooking(ctx context.Context, userID string, isAdmin bool, bookingID string) (*models.Booking, error) {
	booking, err := s.ledger.GetByID(ctx, bookingID)
	if err != nil {
		return nil, err
	}
	if booking == nil {
		return nil, apperr.ErrBookingNotFound
	}
	if booking.UserID != userID && !isAdmin {
		return nil, apperr.ErrForbidden
	}
	if booking.Status == models.BookingCancelled {
		return nil, apperr.ErrAlreadyCancelled
	}

	// Conditional update: a concurrent cancel that won the race surfaces
	// here as AlreadyCancelled with no second release.
	updated, err := s.ledger.Cancel(ctx, bookingID)
	if err != nil {
		return nil, err
	}

	s.releaseBookingSeats(ctx, booking, "user cancellation")
	metrics.BookingsCancelled.Inc()

	if err := s.publisher.Publish(models.EventBookingCancelled, models.BookingCancelledEvent{
		BookingID: booking.ID,
		ShowID:    booking.ShowID,
		Seats:     booking.Seats,
		Reason:    "user cancellation",
		Timestamp: time.Now(),
	}); err != nil {
		logger.WithContext(ctx).Error("Failed to publish booking cancelled event",
			"error", err, "booking_id", booking.ID)
	}

	return updated, nil
}

// AdminSetStatus overrides a booking's status. pending -> confirmed has no
// inventory side effect (seats are reserved at creation); transitions to
// cancelled release the seats. cancelled is terminal.
func (s *ReservationService) AdminSetStatus(ctx context.Context, bookingID, newStatus string) (*models.Booking, error) {
	if newStatus != models.BookingConfirmed && newStatus != models.BookingCancelled {
		return nil, apperr.NewValidation("status must be %q or %q", models.BookingConfirmed, models.BookingCancelled)
	}

	booking, err := s.ledger.GetByID(ctx, bookingID)
	if err != nil {
		return nil, err
	}
	if booking == nil {
		return nil, apperr.ErrBookingNotFound
	}
	if booking.Status == models.BookingCancelled {
		if newStatus == models.BookingCancelled {
			return nil, apperr.ErrAlreadyCancelled
		}
		return nil, apperr.NewValidation("cancelled bookings cannot change status")
	}
	if booking.Status == newStatus {
		return booking, nil
	}

	var updated *models.Booking
	if newStatus == models.BookingCancelled {
		updated, err = s.ledger.Cancel(ctx, bookingID)
		if err != nil {
			return nil, err
		}
		s.releaseBookingSeats(ctx, booking, "admin cancellation")
		metrics.BookingsCancelled.Inc()
	} else {
		updated, err = s.ledger.UpdateStatus(ctx, bookingID, newStatus)
		if err != nil {
			return nil, err
		}
	}

	if err := s.publisher.Publish(models.EventBookingStatusChanged, models.BookingStatusChangedEvent{
		BookingID: booking.ID,
		OldStatus: booking.Status,
		NewStatus: newStatus,
		Timestamp: time.Now(),
	}); err != nil {
		logger.WithContext(ctx).Error("Failed to publish status changed event",
			"error", err, "booking_id", booking.ID)
	}

	return updated, nil
}

// AdminDeleteBooking hard-deletes the ledger record. Seats of a
// non-cancelled booking are released first so a purge never strands
// inventory.
func (s *ReservationService) AdminDeleteBooking(ctx context.Context, bookingID string) error {
	booking, err := s.ledger.GetByID(ctx, bookingID)
	if err != nil {
		return err
	}
	if booking == nil {
		return apperr.ErrBookingNotFound
	}

	if booking.Status != models.BookingCancelled {
		s.releaseBookingSeats(ctx, booking, "admin purge")
	}

	return s.ledger.Delete(ctx, bookingID)
}

// releaseBookingSeats returns the booking's seats to availability. On
// failure the seats are handed to the reconciliation worker; a stuck
// booked seat is a data-integrity defect, not a user-facing error.
func (s *ReservationService) releaseBookingSeats(ctx context.Context, booking *models.Booking, reason string) {
	if err := s.inventory.ReleaseSeats(ctx, booking.ShowID, booking.Seats, booking.ID); err != nil {
		logger.WithContext(ctx).Error("Failed to release seats, scheduling reconciliation",
			"error", err, "booking_id", booking.ID, "show_id", booking.ShowID,
			"seats", booking.Seats, "reason", reason)
		s.publishReleaseFailed(booking.ID, booking.ShowID, booking.Seats, err)
	}
}

func (s *ReservationService) publishReleaseFailed(bookingID, showID string, seats []string, cause error) {
	if err := s.publisher.Publish(models.EventSeatReleaseFailed, models.SeatReleaseFailedEvent{
		BookingID: bookingID,
		ShowID:    showID,
		Seats:     seats,
		Error:     cause.Error(),
		Timestamp: time.Now(),
	}); err != nil {
		logger.Get().Error("Failed to publish seat release failed event",
			"error", err, "booking_id", bookingID, "show_id", showID, "seats", seats)
	}
}

func validStatus(status string) bool {
	switch status {
	case models.BookingPending, models.BookingConfirmed, models.BookingCancelled:
		return true
	}
	return false
}
