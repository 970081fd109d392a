package service

import (
	"context"
	"time"

	apperr "cinebook/internal/errors"
	"cinebook/internal/models"
	"cinebook/internal/repository"

	"github.com/google/uuid"
)

// CatalogService manages the movie and theater catalog
type CatalogService struct {
	movies   *repository.MovieRepository
	theaters *repository.TheaterRepository
}

func NewCatalogService(repos *repository.Repositories) *CatalogService {
	return &CatalogService{
		movies:   repos.Movies,
		theaters: repos.Theaters,
	}
}

func (s *CatalogService) ListMovies(ctx context.Context, filter models.ListMoviesFilter) ([]models.Movie, error) {
	return s.movies.List(ctx, filter)
}

func (s *CatalogService) GetMovie(ctx context.Context, id string) (*models.Movie, error) {
	movie, err := s.movies.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if movie == nil {
		return nil, apperr.ErrMovieNotFound
	}
	return movie, nil
}

func (s *CatalogService) CreateMovie(ctx context.Context, req *models.CreateMovieRequest) (*models.Movie, error) {
	releaseDate, err := time.Parse("2006-01-02", req.ReleaseDate)
	if err != nil {
		return nil, apperr.NewValidation("release_date must be YYYY-MM-DD")
	}
	if req.Rating < 0 || req.Rating > 10 {
		return nil, apperr.NewValidation("rating must be between 0 and 10")
	}

	movie := &models.Movie{
		ID:          uuid.New().String(),
		Title:       req.Title,
		Description: req.Description,
		Genre:       req.Genre,
		DurationMin: req.DurationMin,
		Rating:      req.Rating,
		ReleaseDate: releaseDate,
		PosterURL:   req.PosterURL,
		Director:    req.Director,
		CastMembers: req.CastMembers,
		Language:    req.Language,
		NowShowing:  req.NowShowing,
		ComingSoon:  req.ComingSoon,
	}
	if req.TrailerURL != "" {
		movie.TrailerURL = &req.TrailerURL
	}
	if movie.CastMembers == nil {
		movie.CastMembers = []string{}
	}

	if err := s.movies.Create(ctx, movie); err != nil {
		return nil, err
	}
	return movie, nil
}

func (s *CatalogService) UpdateMovie(ctx context.Context, id string, req *models.CreateMovieRequest) (*models.Movie, error) {
	movie, err := s.GetMovie(ctx, id)
	if err != nil {
		return nil, err
	}

	releaseDate, err := time.Parse("2006-01-02", req.ReleaseDate)
	if err != nil {
		return nil, apperr.NewValidation("release_date must be YYYY-MM-DD")
	}

	movie.Title = req.Title
	movie.Description = req.Description
	movie.Genre = req.Genre
	movie.DurationMin = req.DurationMin
	movie.Rating = req.Rating
	movie.ReleaseDate = releaseDate
	movie.PosterURL = req.PosterURL
	movie.Director = req.Director
	movie.CastMembers = req.CastMembers
	movie.Language = req.Language
	movie.NowShowing = req.NowShowing
	movie.ComingSoon = req.ComingSoon
	movie.TrailerURL = nil
	if req.TrailerURL != "" {
		movie.TrailerURL = &req.TrailerURL
	}
	if movie.CastMembers == nil {
		movie.CastMembers = []string{}
	}

	if err := s.movies.Update(ctx, movie); err != nil {
		return nil, err
	}
	return movie, nil
}

func (s *CatalogService) DeleteMovie(ctx context.Context, id string) error {
	return s.movies.Delete(ctx, id)
}

func (s *CatalogService) ListTheaters(ctx context.Context) ([]models.Theater, error) {
	return s.theaters.List(ctx)
}

func (s *CatalogService) GetTheater(ctx context.Context, id string) (*models.Theater, error) {
	theater, err := s.theaters.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if theater == nil {
		return nil, apperr.ErrTheaterNotFound
	}
	return theater, nil
}

func (s *CatalogService) CreateTheater(ctx context.Context, req *models.CreateTheaterRequest) (*models.Theater, error) {
	if len(req.Screens) == 0 {
		return nil, apperr.NewValidation("theater needs at least one screen")
	}

	theater := &models.Theater{
		ID:       uuid.New().String(),
		Name:     req.Name,
		Location: req.Location,
		Address:  req.Address,
	}
	seen := make(map[string]struct{}, len(req.Screens))
	for _, sc := range req.Screens {
		if _, dup := seen[sc.Name]; dup {
			return nil, apperr.NewValidation("duplicate screen name %q", sc.Name)
		}
		seen[sc.Name] = struct{}{}
		if sc.SeatRows < 1 || sc.SeatRows > 26 {
			return nil, apperr.NewValidation("screen %q: seat_rows must be 1..26", sc.Name)
		}
		if sc.SeatsPerRow < 1 || sc.SeatsPerRow > 99 {
			return nil, apperr.NewValidation("screen %q: seats_per_row must be 1..99", sc.Name)
		}
		theater.Screens = append(theater.Screens, models.Screen{
			Name:        sc.Name,
			SeatRows:    sc.SeatRows,
			SeatsPerRow: sc.SeatsPerRow,
		})
	}

	if err := s.theaters.Create(ctx, theater); err != nil {
		return nil, err
	}
	return theater, nil
}

func (s *CatalogService) UpdateTheater(ctx context.Context, id string, req *models.CreateTheaterRequest) (*models.Theater, error) {
	theater, err := s.GetTheater(ctx, id)
	if err != nil {
		return nil, err
	}

	theater.Name = req.Name
	theater.Location = req.Location
	theater.Address = req.Address

	if err := s.theaters.Update(ctx, theater); err != nil {
		return nil, err
	}
	return theater, nil
}

func (s *CatalogService) DeleteTheater(ctx context.Context, id string) error {
	return s.theaters.Delete(ctx, id)
}
