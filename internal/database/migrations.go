package database

import (
	"fmt"
	"log/slog"
)

func (db *DB) RunMigrations() error {
	slog.Info("Running database migrations...")

	migrations := []string{
		createMoviesTable,
		createTheatersTable,
		createScreensTable,
		createShowsTable,
		createShowSeatsTable,
		createBookingsTable,
		createBookingSeatsTable,
		createShowsDateIndex,
		createBookingsUserIndex,
	}

	for i, migration := range migrations {
		if _, err := db.Exec(migration); err != nil {
			return fmt.Errorf("migration %d failed: %w", i+1, err)
		}
	}

	slog.Info("All migrations completed successfully")
	return nil
}

const createMoviesTable = `
CREATE TABLE IF NOT EXISTS movies (
    id UUID PRIMARY KEY,
    title VARCHAR(500) NOT NULL,
    description TEXT NOT NULL,
    genre VARCHAR(100) NOT NULL,
    duration_min INTEGER NOT NULL,
    rating NUMERIC(3,1) NOT NULL DEFAULT 0 CHECK (rating >= 0 AND rating <= 10),
    release_date DATE NOT NULL,
    poster_url TEXT NOT NULL,
    trailer_url TEXT,
    director VARCHAR(255) NOT NULL,
    cast_members TEXT[] NOT NULL DEFAULT '{}',
    language VARCHAR(50) NOT NULL,
    now_showing BOOLEAN NOT NULL DEFAULT TRUE,
    coming_soon BOOLEAN NOT NULL DEFAULT FALSE,
    created_at TIMESTAMP NOT NULL DEFAULT NOW(),
    updated_at TIMESTAMP NOT NULL DEFAULT NOW()
);`

const createTheatersTable = `
CREATE TABLE IF NOT EXISTS theaters (
    id UUID PRIMARY KEY,
    name VARCHAR(255) NOT NULL,
    location VARCHAR(255) NOT NULL,
    address TEXT NOT NULL,
    created_at TIMESTAMP NOT NULL DEFAULT NOW(),
    updated_at TIMESTAMP NOT NULL DEFAULT NOW()
);`

const createScreensTable = `
CREATE TABLE IF NOT EXISTS screens (
    theater_id UUID NOT NULL REFERENCES theaters(id) ON DELETE CASCADE,
    name VARCHAR(100) NOT NULL,
    seat_rows INTEGER NOT NULL CHECK (seat_rows BETWEEN 1 AND 26),
    seats_per_row INTEGER NOT NULL CHECK (seats_per_row BETWEEN 1 AND 99),

    PRIMARY KEY (theater_id, name)
);`

const createShowsTable = `
CREATE TABLE IF NOT EXISTS shows (
    id UUID PRIMARY KEY,
    movie_id UUID NOT NULL REFERENCES movies(id),
    theater_id UUID NOT NULL REFERENCES theaters(id),
    screen VARCHAR(100) NOT NULL,
    show_date DATE NOT NULL,
    show_time VARCHAR(5) NOT NULL,
    price_cents BIGINT NOT NULL CHECK (price_cents > 0),
    total_seats INTEGER NOT NULL CHECK (total_seats > 0),
    available_seats INTEGER NOT NULL,
    version BIGINT NOT NULL DEFAULT 0,
    created_at TIMESTAMP NOT NULL DEFAULT NOW(),
    updated_at TIMESTAMP NOT NULL DEFAULT NOW(),

    CHECK (available_seats >= 0 AND available_seats <= total_seats)
);`

const createShowSeatsTable = `
CREATE TABLE IF NOT EXISTS show_seats (
    show_id UUID NOT NULL REFERENCES shows(id) ON DELETE CASCADE,
    seat_id VARCHAR(4) NOT NULL,
    booking_id UUID NOT NULL,
    reserved_at TIMESTAMP NOT NULL DEFAULT NOW(),

    PRIMARY KEY (show_id, seat_id)
);`

const createBookingsTable = `
CREATE TABLE IF NOT EXISTS bookings (
    id UUID PRIMARY KEY,
    user_id VARCHAR(255) NOT NULL,
    show_id UUID NOT NULL REFERENCES shows(id) ON DELETE CASCADE,
    total_amount_cents BIGINT NOT NULL CHECK (total_amount_cents > 0),
    payment_method VARCHAR(50) NOT NULL DEFAULT '',
    status VARCHAR(20) NOT NULL DEFAULT 'confirmed',
    created_at TIMESTAMP NOT NULL DEFAULT NOW(),
    updated_at TIMESTAMP NOT NULL DEFAULT NOW(),

    CHECK (status IN ('pending', 'confirmed', 'cancelled'))
);`

const createBookingSeatsTable = `
CREATE TABLE IF NOT EXISTS booking_seats (
    booking_id UUID NOT NULL REFERENCES bookings(id) ON DELETE CASCADE,
    seat_id VARCHAR(4) NOT NULL,

    PRIMARY KEY (booking_id, seat_id)
);`

const createShowsDateIndex = `
CREATE INDEX IF NOT EXISTS shows_date_idx ON shows (show_date, show_time);`

const createBookingsUserIndex = `
CREATE INDEX IF NOT EXISTS bookings_user_idx ON bookings (user_id, created_at DESC);`
