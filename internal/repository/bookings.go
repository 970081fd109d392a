package repository

import (
	"context"
	"database/sql"

	"cinebook/internal/database"
	apperr "cinebook/internal/errors"
	"cinebook/internal/models"
)

// BookingRepository is the durable ledger of reservations. Records are
// written by the reservation engine and read-shared by the listing views.
type BookingRepository struct {
	db *database.DB
}

func NewBookingRepository(db *database.DB) *BookingRepository {
	return &BookingRepository{db: db}
}

// Append stores a new booking and its seat list in one transaction
func (r *BookingRepository) Append(ctx context.Context, booking *models.Booking) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	query := `
		INSERT INTO bookings (id, user_id, show_id, total_amount_cents, payment_method, status)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING created_at, updated_at`

	err = tx.QueryRowContext(ctx, query,
		booking.ID,
		booking.UserID,
		booking.ShowID,
		booking.TotalAmountCents,
		booking.PaymentMethod,
		booking.Status,
	).Scan(&booking.CreatedAt, &booking.UpdatedAt)
	if err != nil {
		return err
	}

	seatQuery := `INSERT INTO booking_seats (booking_id, seat_id) VALUES ($1, $2)`
	for _, seat := range booking.Seats {
		if _, err := tx.ExecContext(ctx, seatQuery, booking.ID, seat); err != nil {
			return err
		}
	}

	return tx.Commit()
}

func (r *BookingRepository) GetByID(ctx context.Context, id string) (*models.Booking, error) {
	booking := &models.Booking{}
	query := `
		SELECT id, user_id, show_id, total_amount_cents, payment_method, status, created_at, updated_at
		FROM bookings
		WHERE id = $1`

	err := r.db.QueryRowContext(ctx, query, id).Scan(
		&booking.ID,
		&booking.UserID,
		&booking.ShowID,
		&booking.TotalAmountCents,
		&booking.PaymentMethod,
		&booking.Status,
		&booking.CreatedAt,
		&booking.UpdatedAt,
	)

	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	booking.Seats, err = r.getSeats(ctx, booking.ID)
	return booking, err
}

func (r *BookingRepository) getSeats(ctx context.Context, bookingID string) ([]string, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT seat_id FROM booking_seats WHERE booking_id = $1 ORDER BY seat_id`, bookingID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var seats []string
	for rows.Next() {
		var seat string
		if err := rows.Scan(&seat); err != nil {
			return nil, err
		}
		seats = append(seats, seat)
	}

	return seats, rows.Err()
}

// ListByUser returns the user's bookings, newest first, all statuses
func (r *BookingRepository) ListByUser(ctx context.Context, userID string) ([]models.Booking, error) {
	query := `
		SELECT id, user_id, show_id, total_amount_cents, payment_method, status, created_at, updated_at
		FROM bookings
		WHERE user_id = $1
		ORDER BY created_at DESC`

	return r.list(ctx, query, userID)
}

// ListAll returns every booking, newest first, optionally filtered by status
func (r *BookingRepository) ListAll(ctx context.Context, status string) ([]models.Booking, error) {
	if status != "" {
		query := `
			SELECT id, user_id, show_id, total_amount_cents, payment_method, status, created_at, updated_at
			FROM bookings
			WHERE status = $1
			ORDER BY created_at DESC`
		return r.list(ctx, query, status)
	}

	query := `
		SELECT id, user_id, show_id, total_amount_cents, payment_method, status, created_at, updated_at
		FROM bookings
		ORDER BY created_at DESC`
	return r.list(ctx, query)
}

func (r *BookingRepository) list(ctx context.Context, query string, args ...interface{}) ([]models.Booking, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var bookings []models.Booking
	for rows.Next() {
		var booking models.Booking
		err := rows.Scan(
			&booking.ID,
			&booking.UserID,
			&booking.ShowID,
			&booking.TotalAmountCents,
			&booking.PaymentMethod,
			&booking.Status,
			&booking.CreatedAt,
			&booking.UpdatedAt,
		)
		if err != nil {
			return nil, err
		}
		bookings = append(bookings, booking)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	for i := range bookings {
		if bookings[i].Seats, err = r.getSeats(ctx, bookings[i].ID); err != nil {
			return nil, err
		}
	}

	return bookings, nil
}

// UpdateStatus sets a booking's status and returns the updated record
func (r *BookingRepository) UpdateStatus(ctx context.Context, id, status string) (*models.Booking, error) {
	query := `UPDATE bookings SET status = $1, updated_at = NOW() WHERE id = $2`
	result, err := r.db.ExecContext(ctx, query, status, id)
	if err != nil {
		return nil, err
	}
	n, err := result.RowsAffected()
	if err != nil {
		return nil, err
	}
	if n == 0 {
		return nil, apperr.ErrBookingNotFound
	}

	return r.GetByID(ctx, id)
}

// Cancel marks the booking cancelled and returns the updated record. The
// status check runs inside the UPDATE, so of two concurrent cancels exactly
// one succeeds and the other gets ErrAlreadyCancelled.
func (r *BookingRepository) Cancel(ctx context.Context, id string) (*models.Booking, error) {
	query := `UPDATE bookings SET status = 'cancelled', updated_at = NOW() WHERE id = $1 AND status <> 'cancelled'`
	result, err := r.db.ExecContext(ctx, query, id)
	if err != nil {
		return nil, err
	}
	n, err := result.RowsAffected()
	if err != nil {
		return nil, err
	}
	if n == 0 {
		booking, err := r.GetByID(ctx, id)
		if err != nil {
			return nil, err
		}
		if booking == nil {
			return nil, apperr.ErrBookingNotFound
		}
		return nil, apperr.ErrAlreadyCancelled
	}

	return r.GetByID(ctx, id)
}

// Delete hard-deletes a booking record. Inventory reconciliation is the
// engine's responsibility, not the ledger's.
func (r *BookingRepository) Delete(ctx context.Context, id string) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM bookings WHERE id = $1`, id)
	if err != nil {
		return err
	}
	n, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return apperr.ErrBookingNotFound
	}
	return nil
}

// CountActiveByShow counts non-cancelled bookings referencing a show.
// Show deletion is blocked while this is non-zero.
func (r *BookingRepository) CountActiveByShow(ctx context.Context, showID string) (int, error) {
	var count int
	query := `SELECT COUNT(*) FROM bookings WHERE show_id = $1 AND status <> 'cancelled'`
	err := r.db.QueryRowContext(ctx, query, showID).Scan(&count)
	return count, err
}
