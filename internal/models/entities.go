package models

import (
	"time"
)

// Booking status values. Cancelled is terminal.
const (
	BookingPending   = "pending"
	BookingConfirmed = "confirmed"
	BookingCancelled = "cancelled"
)

// Movie represents a film in the catalog
type Movie struct {
	ID          string    `json:"id" db:"id"`
	Title       string    `json:"title" db:"title"`
	Description string    `json:"description" db:"description"`
	Genre       string    `json:"genre" db:"genre"`
	DurationMin int       `json:"duration_min" db:"duration_min"`
	Rating      float64   `json:"rating" db:"rating"`
	ReleaseDate time.Time `json:"release_date" db:"release_date"`
	PosterURL   string    `json:"poster_url" db:"poster_url"`
	TrailerURL  *string   `json:"trailer_url,omitempty" db:"trailer_url"`
	Director    string    `json:"director" db:"director"`
	CastMembers []string  `json:"cast" db:"cast_members"`
	Language    string    `json:"language" db:"language"`
	NowShowing  bool      `json:"now_showing" db:"now_showing"`
	ComingSoon  bool      `json:"coming_soon" db:"coming_soon"`
	CreatedAt   time.Time `json:"created_at" db:"created_at"`
	UpdatedAt   time.Time `json:"updated_at" db:"updated_at"`
}

// Theater represents a cinema location with one or more screens
type Theater struct {
	ID        string    `json:"id" db:"id"`
	Name      string    `json:"name" db:"name"`
	Location  string    `json:"location" db:"location"`
	Address   string    `json:"address" db:"address"`
	Screens   []Screen  `json:"screens,omitempty"` // Not from the theaters table, filled separately
	CreatedAt time.Time `json:"created_at" db:"created_at"`
	UpdatedAt time.Time `json:"updated_at" db:"updated_at"`
}

// Screen describes one auditorium and its fixed seat layout. Seats are
// named row letter plus column number ("A1" .. up to SeatRows x SeatsPerRow).
type Screen struct {
	TheaterID   string `json:"-" db:"theater_id"`
	Name        string `json:"name" db:"name"`
	SeatRows    int    `json:"seat_rows" db:"seat_rows"`
	SeatsPerRow int    `json:"seats_per_row" db:"seats_per_row"`
}

// Capacity returns the number of seats in the screen layout
func (s Screen) Capacity() int {
	return s.SeatRows * s.SeatsPerRow
}

// Show represents one scheduled screening. AvailableSeats is kept
// consistent with the booked-seat set by the inventory layer and never
// goes negative.
type Show struct {
	ID             string    `json:"id" db:"id"`
	MovieID        string    `json:"movie_id" db:"movie_id"`
	TheaterID      string    `json:"theater_id" db:"theater_id"`
	Screen         string    `json:"screen" db:"screen"`
	Date           time.Time `json:"date" db:"show_date"`
	Time           string    `json:"time" db:"show_time"`
	PriceCents     int64     `json:"price_cents" db:"price_cents"`
	TotalSeats     int       `json:"total_seats" db:"total_seats"`
	AvailableSeats int       `json:"available_seats" db:"available_seats"`
	SeatRows       int       `json:"seat_rows" db:"seat_rows"`
	SeatsPerRow    int       `json:"seats_per_row" db:"seats_per_row"`
	Version        int64     `json:"-" db:"version"`
	CreatedAt      time.Time `json:"created_at" db:"created_at"`
	UpdatedAt      time.Time `json:"updated_at" db:"updated_at"`
}

// Booking represents one user's reservation for one show. The amount is
// computed from the show price at booking time and frozen.
type Booking struct {
	ID               string    `json:"id" db:"id"`
	UserID           string    `json:"user_id" db:"user_id"`
	ShowID           string    `json:"show_id" db:"show_id"`
	Seats            []string  `json:"seats"` // Not from the bookings table, filled from booking_seats
	TotalAmountCents int64     `json:"total_amount_cents" db:"total_amount_cents"`
	PaymentMethod    string    `json:"payment_method" db:"payment_method"`
	Status           string    `json:"status" db:"status"`
	CreatedAt        time.Time `json:"created_at" db:"created_at"`
	UpdatedAt        time.Time `json:"updated_at" db:"updated_at"`
}

// Availability is the seat occupancy view of a show
type Availability struct {
	ShowID         string   `json:"show_id"`
	Capacity       int      `json:"capacity"`
	BookedSeats    []string `json:"booked_seats"`
	AvailableCount int      `json:"available_count"`
	PriceCents     int64    `json:"price_cents"`
}

// Reservation reports the show state read under lock when seats were
// reserved. The engine freezes the booking amount from PriceCents.
type Reservation struct {
	ShowID     string
	Seats      []string
	PriceCents int64
	Capacity   int
}
