package service

import (
	"context"
	"time"

	"cinebook/internal/cache"
	apperr "cinebook/internal/errors"
	"cinebook/internal/logger"
	"cinebook/internal/models"

	"github.com/google/uuid"
)

// ShowStore is the show persistence surface the lifecycle operations need
type ShowStore interface {
	Create(ctx context.Context, show *models.Show) error
	GetByID(ctx context.Context, id string) (*models.Show, error)
	List(ctx context.Context, filter models.ListShowsFilter) ([]models.Show, error)
	Update(ctx context.Context, show *models.Show) error
	Delete(ctx context.Context, id string) error
	Availability(ctx context.Context, showID string) (*models.Availability, error)
}

// MovieFinder resolves catalog movies for show scheduling
type MovieFinder interface {
	GetByID(ctx context.Context, id string) (*models.Movie, error)
}

// TheaterFinder resolves theaters and their screen layouts
type TheaterFinder interface {
	GetByID(ctx context.Context, id string) (*models.Theater, error)
	GetScreen(ctx context.Context, theaterID, name string) (*models.Screen, error)
}

// ActiveBookingCounter reports how many non-cancelled bookings reference a
// show; deletion is blocked while any exist.
type ActiveBookingCounter interface {
	CountActiveByShow(ctx context.Context, showID string) (int, error)
}

// ShowService serves show browsing and availability, and the
// administrative show lifecycle.
type ShowService struct {
	shows    ShowStore
	movies   MovieFinder
	theaters TheaterFinder
	bookings ActiveBookingCounter
	cache    *cache.Client
}

func NewShowService(shows ShowStore, movies MovieFinder, theaters TheaterFinder, bookings ActiveBookingCounter, cacheClient *cache.Client) *ShowService {
	return &ShowService{
		shows:    shows,
		movies:   movies,
		theaters: theaters,
		bookings: bookings,
		cache:    cacheClient,
	}
}

func (s *ShowService) List(ctx context.Context, filter models.ListShowsFilter) ([]models.Show, error) {
	return s.shows.List(ctx, filter)
}

// ListByTheater returns the theater's schedule, optionally narrowed by
// movie and date. Unknown theaters fail with NotFound rather than an
// empty list.
func (s *ShowService) ListByTheater(ctx context.Context, theaterID string, filter models.ListShowsFilter) ([]models.Show, error) {
	theater, err := s.theaters.GetByID(ctx, theaterID)
	if err != nil {
		return nil, err
	}
	if theater == nil {
		return nil, apperr.ErrTheaterNotFound
	}

	filter.TheaterID = theaterID
	return s.shows.List(ctx, filter)
}

func (s *ShowService) Get(ctx context.Context, id string) (*models.Show, error) {
	show, err := s.shows.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if show == nil {
		return nil, apperr.ErrShowNotFound
	}
	return show, nil
}

// Availability returns the show's seat occupancy, served from the cache
// when a fresh snapshot exists.
func (s *ShowService) Availability(ctx context.Context, showID string) (*models.Availability, []byte, error) {
	if raw, err := s.cache.GetAvailabilityRaw(ctx, showID); err == nil {
		return nil, raw, nil
	}

	av, err := s.shows.Availability(ctx, showID)
	if err != nil {
		return nil, nil, err
	}

	s.cache.SetAvailability(ctx, showID, av)
	return av, nil, nil
}

// InvalidateAvailability drops the cached snapshot after a seat mutation
func (s *ShowService) InvalidateAvailability(ctx context.Context, showID string) {
	s.cache.InvalidateAvailability(ctx, showID)
}

// Create schedules a new show. The movie, theater and screen must exist;
// capacity comes from the screen layout and every seat starts available.
func (s *ShowService) Create(ctx context.Context, req *models.CreateShowRequest) (*models.Show, error) {
	movie, err := s.movies.GetByID(ctx, req.MovieID)
	if err != nil {
		return nil, err
	}
	if movie == nil {
		return nil, apperr.ErrMovieNotFound
	}

	theater, err := s.theaters.GetByID(ctx, req.TheaterID)
	if err != nil {
		return nil, err
	}
	if theater == nil {
		return nil, apperr.ErrTheaterNotFound
	}

	screen, err := s.theaters.GetScreen(ctx, req.TheaterID, req.Screen)
	if err != nil {
		return nil, err
	}
	if screen == nil {
		return nil, apperr.NewValidation("theater has no screen %q", req.Screen)
	}

	date, err := time.Parse("2006-01-02", req.Date)
	if err != nil {
		return nil, apperr.NewValidation("date must be YYYY-MM-DD")
	}
	if _, err := time.Parse("15:04", req.Time); err != nil {
		return nil, apperr.NewValidation("time must be HH:MM")
	}
	if req.PriceCents <= 0 {
		return nil, apperr.NewValidation("price_cents must be positive")
	}

	capacity := screen.Capacity()
	show := &models.Show{
		ID:             uuid.New().String(),
		MovieID:        req.MovieID,
		TheaterID:      req.TheaterID,
		Screen:         req.Screen,
		Date:           date,
		Time:           req.Time,
		PriceCents:     req.PriceCents,
		TotalSeats:     capacity,
		AvailableSeats: capacity,
		SeatRows:       screen.SeatRows,
		SeatsPerRow:    screen.SeatsPerRow,
	}

	if err := s.shows.Create(ctx, show); err != nil {
		return nil, err
	}

	logger.WithContext(ctx).Info("Show created",
		"show_id", show.ID, "movie_id", show.MovieID, "capacity", capacity)
	return show, nil
}

// Update edits schedule and price. Existing bookings keep their frozen
// amounts; only future reservations see the new price.
func (s *ShowService) Update(ctx context.Context, id string, req *models.UpdateShowRequest) (*models.Show, error) {
	show, err := s.shows.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if show == nil {
		return nil, apperr.ErrShowNotFound
	}

	if req.Date != "" {
		date, err := time.Parse("2006-01-02", req.Date)
		if err != nil {
			return nil, apperr.NewValidation("date must be YYYY-MM-DD")
		}
		show.Date = date
	}
	if req.Time != "" {
		if _, err := time.Parse("15:04", req.Time); err != nil {
			return nil, apperr.NewValidation("time must be HH:MM")
		}
		show.Time = req.Time
	}
	if req.PriceCents != 0 {
		if req.PriceCents < 0 {
			return nil, apperr.NewValidation("price_cents must be positive")
		}
		show.PriceCents = req.PriceCents
	}

	if err := s.shows.Update(ctx, show); err != nil {
		return nil, err
	}
	return show, nil
}

// Delete removes a show. Blocked while non-cancelled bookings reference it
// so cancellation flows stay able to release seats.
func (s *ShowService) Delete(ctx context.Context, id string) error {
	show, err := s.shows.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if show == nil {
		return apperr.ErrShowNotFound
	}

	active, err := s.bookings.CountActiveByShow(ctx, id)
	if err != nil {
		return err
	}
	if active > 0 {
		return apperr.ErrShowHasBookings
	}

	if err := s.shows.Delete(ctx, id); err != nil {
		return err
	}

	s.cache.InvalidateAvailability(ctx, id)
	return nil
}
