package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"cinebook/internal/database"
	apperr "cinebook/internal/errors"
	"cinebook/internal/models"

	"github.com/lib/pq"
)

// reserveRetries bounds retries on serialization failures before the
// operation surfaces a transient conflict to the caller.
const reserveRetries = 3

// ShowRepository is the single source of truth for show seat occupancy.
// All seat-set mutations run inside a transaction that takes a row lock on
// the show, so reserve/release sequences are serialized per show. The
// (show_id, seat_id) primary key on show_seats backstops the at-most-one-
// owner invariant at the database level.
type ShowRepository struct {
	db *database.DB
}

func NewShowRepository(db *database.DB) *ShowRepository {
	return &ShowRepository{db: db}
}

func (r *ShowRepository) Create(ctx context.Context, show *models.Show) error {
	query := `
		INSERT INTO shows (id, movie_id, theater_id, screen, show_date, show_time,
		                   price_cents, total_seats, available_seats)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		RETURNING created_at, updated_at`

	return r.db.QueryRowContext(ctx, query,
		show.ID,
		show.MovieID,
		show.TheaterID,
		show.Screen,
		show.Date,
		show.Time,
		show.PriceCents,
		show.TotalSeats,
		show.AvailableSeats,
	).Scan(&show.CreatedAt, &show.UpdatedAt)
}

func (r *ShowRepository) GetByID(ctx context.Context, id string) (*models.Show, error) {
	show := &models.Show{}
	query := `
		SELECT s.id, s.movie_id, s.theater_id, s.screen, s.show_date, s.show_time,
		       s.price_cents, s.total_seats, s.available_seats, s.version,
		       sc.seat_rows, sc.seats_per_row, s.created_at, s.updated_at
		FROM shows s
		JOIN screens sc ON sc.theater_id = s.theater_id AND sc.name = s.screen
		WHERE s.id = $1`

	err := r.db.QueryRowContext(ctx, query, id).Scan(
		&show.ID,
		&show.MovieID,
		&show.TheaterID,
		&show.Screen,
		&show.Date,
		&show.Time,
		&show.PriceCents,
		&show.TotalSeats,
		&show.AvailableSeats,
		&show.Version,
		&show.SeatRows,
		&show.SeatsPerRow,
		&show.CreatedAt,
		&show.UpdatedAt,
	)

	if err == sql.ErrNoRows {
		return nil, nil
	}

	return show, err
}

func (r *ShowRepository) List(ctx context.Context, filter models.ListShowsFilter) ([]models.Show, error) {
	var shows []models.Show
	var args []interface{}
	argIndex := 1

	query := `
		SELECT s.id, s.movie_id, s.theater_id, s.screen, s.show_date, s.show_time,
		       s.price_cents, s.total_seats, s.available_seats, s.version,
		       sc.seat_rows, sc.seats_per_row, s.created_at, s.updated_at
		FROM shows s
		JOIN screens sc ON sc.theater_id = s.theater_id AND sc.name = s.screen
		WHERE 1=1`

	if filter.MovieID != "" {
		query += fmt.Sprintf(" AND s.movie_id = $%d", argIndex)
		args = append(args, filter.MovieID)
		argIndex++
	}

	if filter.TheaterID != "" {
		query += fmt.Sprintf(" AND s.theater_id = $%d", argIndex)
		args = append(args, filter.TheaterID)
		argIndex++
	}

	if filter.Date != nil {
		query += fmt.Sprintf(" AND s.show_date = $%d", argIndex)
		args = append(args, filter.Date.Format("2006-01-02"))
		argIndex++
	}

	query += " ORDER BY s.show_date, s.show_time"

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var show models.Show
		err := rows.Scan(
			&show.ID,
			&show.MovieID,
			&show.TheaterID,
			&show.Screen,
			&show.Date,
			&show.Time,
			&show.PriceCents,
			&show.TotalSeats,
			&show.AvailableSeats,
			&show.Version,
			&show.SeatRows,
			&show.SeatsPerRow,
			&show.CreatedAt,
			&show.UpdatedAt,
		)
		if err != nil {
			return nil, err
		}
		shows = append(shows, show)
	}

	return shows, rows.Err()
}

// Update applies administrative edits to schedule and price. Capacity and
// the booked set are owned by ReserveSeats/ReleaseSeats and not touched here.
func (r *ShowRepository) Update(ctx context.Context, show *models.Show) error {
	query := `
		UPDATE shows
		SET show_date = $1, show_time = $2, price_cents = $3, updated_at = NOW()
		WHERE id = $4`

	result, err := r.db.ExecContext(ctx, query, show.Date, show.Time, show.PriceCents, show.ID)
	if err != nil {
		return err
	}
	n, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return apperr.ErrShowNotFound
	}
	return nil
}

func (r *ShowRepository) Delete(ctx context.Context, id string) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM shows WHERE id = $1`, id)
	if err != nil {
		return err
	}
	n, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return apperr.ErrShowNotFound
	}
	return nil
}

// Availability returns the show's capacity, booked seat set and available
// count. Both reads run in one transaction and the count derives from the
// returned set, so the response is never a torn view of a concurrent
// reservation.
func (r *ShowRepository) Availability(ctx context.Context, showID string) (*models.Availability, error) {
	av := &models.Availability{ShowID: showID, BookedSeats: []string{}}

	tx, err := r.db.BeginTx(ctx, &sql.TxOptions{ReadOnly: true})
	if err != nil {
		return nil, err
	}
	defer tx.Rollback()

	query := `SELECT total_seats, price_cents FROM shows WHERE id = $1`
	err = tx.QueryRowContext(ctx, query, showID).Scan(&av.Capacity, &av.PriceCents)
	if err == sql.ErrNoRows {
		return nil, apperr.ErrShowNotFound
	}
	if err != nil {
		return nil, err
	}

	rows, err := tx.QueryContext(ctx,
		`SELECT seat_id FROM show_seats WHERE show_id = $1 ORDER BY seat_id`, showID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var seat string
		if err := rows.Scan(&seat); err != nil {
			return nil, err
		}
		av.BookedSeats = append(av.BookedSeats, seat)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	rows.Close()

	av.AvailableCount = av.Capacity - len(av.BookedSeats)
	return av, tx.Commit()
}

// ReserveSeats atomically adds seatIDs to the show's booked set. It succeeds
// only if every requested seat is free and the available count covers the
// request; a request that conflicts on any seat reserves none of its seats.
// Serialization failures are retried a bounded number of times, then
// surfaced as a transient conflict.
func (r *ShowRepository) ReserveSeats(ctx context.Context, showID string, seatIDs []string, bookingID string) (*models.Reservation, error) {
	var lastErr error
	for attempt := 0; attempt < reserveRetries; attempt++ {
		res, err := r.reserveSeatsTx(ctx, showID, seatIDs, bookingID)
		if err == nil || !isSerializationError(err) {
			return res, err
		}
		lastErr = err
		time.Sleep(time.Duration(attempt+1) * 10 * time.Millisecond)
	}
	return nil, fmt.Errorf("%w: %v", apperr.ErrTransientConflict, lastErr)
}

func (r *ShowRepository) reserveSeatsTx(ctx context.Context, showID string, seatIDs []string, bookingID string) (*models.Reservation, error) {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, err
	}
	defer tx.Rollback()

	// Row lock on the show serializes concurrent reservations per show.
	var priceCents int64
	var totalSeats, availableSeats int
	lockQuery := `SELECT price_cents, total_seats, available_seats FROM shows WHERE id = $1 FOR UPDATE`
	err = tx.QueryRowContext(ctx, lockQuery, showID).Scan(&priceCents, &totalSeats, &availableSeats)
	if err == sql.ErrNoRows {
		return nil, apperr.ErrShowNotFound
	}
	if err != nil {
		return nil, err
	}

	// Seat-level conflict check: requests for disjoint seat sets must both
	// succeed, so a pure counter comparison is not enough.
	conflictQuery := `SELECT seat_id FROM show_seats WHERE show_id = $1 AND seat_id = ANY($2) ORDER BY seat_id`
	rows, err := tx.QueryContext(ctx, conflictQuery, showID, pq.Array(seatIDs))
	if err != nil {
		return nil, err
	}
	var conflicts []string
	for rows.Next() {
		var seat string
		if err := rows.Scan(&seat); err != nil {
			rows.Close()
			return nil, err
		}
		conflicts = append(conflicts, seat)
	}
	rows.Close()
	if err := rows.Err(); err != nil {
		return nil, err
	}
	if len(conflicts) > 0 {
		return nil, &apperr.SeatConflictError{Seats: conflicts}
	}

	// Unreachable when the seat-level check passed, kept as a defensive
	// invariant check.
	if availableSeats < len(seatIDs) {
		return nil, apperr.ErrCapacityExceeded
	}

	insertQuery := `INSERT INTO show_seats (show_id, seat_id, booking_id) VALUES ($1, $2, $3)`
	for _, seat := range seatIDs {
		if _, err := tx.ExecContext(ctx, insertQuery, showID, seat, bookingID); err != nil {
			return nil, err
		}
	}

	updateQuery := `
		UPDATE shows
		SET available_seats = available_seats - $1, version = version + 1, updated_at = NOW()
		WHERE id = $2`
	if _, err := tx.ExecContext(ctx, updateQuery, len(seatIDs), showID); err != nil {
		return nil, err
	}

	if err := tx.Commit(); err != nil {
		return nil, err
	}

	return &models.Reservation{
		ShowID:     showID,
		Seats:      seatIDs,
		PriceCents: priceCents,
		Capacity:   totalSeats,
	}, nil
}

// ReleaseSeats removes seatIDs from the show's booked set and credits the
// available count by the number of seats actually removed. Only seats still
// owned by bookingID are touched: the release paths retry (reconciliation
// worker redeliveries, compensation), and an unscoped delete replayed after
// the seats were re-sold would evict the new owner. Seats not owned by the
// booking are ignored, so the operation is idempotent.
func (r *ShowRepository) ReleaseSeats(ctx context.Context, showID string, seatIDs []string, bookingID string) error {
	if len(seatIDs) == 0 {
		return nil
	}

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	lockQuery := `SELECT 1 FROM shows WHERE id = $1 FOR UPDATE`
	var one int
	err = tx.QueryRowContext(ctx, lockQuery, showID).Scan(&one)
	if err == sql.ErrNoRows {
		return apperr.ErrShowNotFound
	}
	if err != nil {
		return err
	}

	deleteQuery := `DELETE FROM show_seats WHERE show_id = $1 AND seat_id = ANY($2) AND booking_id = $3`
	result, err := tx.ExecContext(ctx, deleteQuery, showID, pq.Array(seatIDs), bookingID)
	if err != nil {
		return err
	}
	removed, err := result.RowsAffected()
	if err != nil {
		return err
	}

	if removed > 0 {
		updateQuery := `
			UPDATE shows
			SET available_seats = available_seats + $1, version = version + 1, updated_at = NOW()
			WHERE id = $2`
		if _, err := tx.ExecContext(ctx, updateQuery, removed, showID); err != nil {
			return err
		}
	}

	return tx.Commit()
}

func isSerializationError(err error) bool {
	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		// serialization_failure and deadlock_detected
		return pqErr.Code == "40001" || pqErr.Code == "40P01"
	}
	return false
}

func isForeignKeyViolation(err error) bool {
	var pqErr *pq.Error
	return errors.As(err, &pqErr) && pqErr.Code == "23503"
}
