package models

import "time"

// CreateBookingRequest is the body of POST /api/shows/:id/bookings
type CreateBookingRequest struct {
	SeatIDs       []string `json:"seat_ids" binding:"required"`
	PaymentMethod string   `json:"payment_method"`
}

// UpdateBookingStatusRequest is the body of PATCH /api/bookings/:id/status
type UpdateBookingStatusRequest struct {
	Status string `json:"status" binding:"required"`
}

// CreateShowRequest is the body of POST /api/shows
type CreateShowRequest struct {
	MovieID    string `json:"movie_id" binding:"required"`
	TheaterID  string `json:"theater_id" binding:"required"`
	Screen     string `json:"screen" binding:"required"`
	Date       string `json:"date" binding:"required"` // YYYY-MM-DD
	Time       string `json:"time" binding:"required"` // HH:MM
	PriceCents int64  `json:"price_cents" binding:"required"`
}

// UpdateShowRequest is the body of PUT /api/shows/:id. Zero values leave
// the corresponding field unchanged.
type UpdateShowRequest struct {
	Date       string `json:"date"`
	Time       string `json:"time"`
	PriceCents int64  `json:"price_cents"`
}

// CreateMovieRequest is the body of POST /api/movies
type CreateMovieRequest struct {
	Title       string   `json:"title" binding:"required"`
	Description string   `json:"description" binding:"required"`
	Genre       string   `json:"genre" binding:"required"`
	DurationMin int      `json:"duration_min" binding:"required"`
	Rating      float64  `json:"rating"`
	ReleaseDate string   `json:"release_date" binding:"required"` // YYYY-MM-DD
	PosterURL   string   `json:"poster_url" binding:"required"`
	TrailerURL  string   `json:"trailer_url"`
	Director    string   `json:"director" binding:"required"`
	CastMembers []string `json:"cast"`
	Language    string   `json:"language" binding:"required"`
	NowShowing  bool     `json:"now_showing"`
	ComingSoon  bool     `json:"coming_soon"`
}

// CreateTheaterRequest is the body of POST /api/theaters
type CreateTheaterRequest struct {
	Name     string                `json:"name" binding:"required"`
	Location string                `json:"location" binding:"required"`
	Address  string                `json:"address" binding:"required"`
	Screens  []CreateScreenRequest `json:"screens" binding:"required"`
}

// CreateScreenRequest describes one screen and its seat layout
type CreateScreenRequest struct {
	Name        string `json:"name" binding:"required"`
	SeatRows    int    `json:"seat_rows" binding:"required"`
	SeatsPerRow int    `json:"seats_per_row" binding:"required"`
}

// ListShowsFilter narrows GET /api/shows
type ListShowsFilter struct {
	MovieID   string
	TheaterID string
	Date      *time.Time
}

// ListMoviesFilter narrows GET /api/movies
type ListMoviesFilter struct {
	Type     string // "now-showing" or "coming-soon"
	Genre    string
	Language string
}
