package repository

import (
	"context"
	"database/sql"
	"fmt"

	"cinebook/internal/database"
	apperr "cinebook/internal/errors"
	"cinebook/internal/models"

	"github.com/lib/pq"
)

type MovieRepository struct {
	db *database.DB
}

func NewMovieRepository(db *database.DB) *MovieRepository {
	return &MovieRepository{db: db}
}

const movieColumns = `id, title, description, genre, duration_min, rating, release_date,
	poster_url, trailer_url, director, cast_members, language, now_showing, coming_soon,
	created_at, updated_at`

func (r *MovieRepository) Create(ctx context.Context, movie *models.Movie) error {
	query := `
		INSERT INTO movies (id, title, description, genre, duration_min, rating, release_date,
		                    poster_url, trailer_url, director, cast_members, language,
		                    now_showing, coming_soon)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14)
		RETURNING created_at, updated_at`

	return r.db.QueryRowContext(ctx, query,
		movie.ID,
		movie.Title,
		movie.Description,
		movie.Genre,
		movie.DurationMin,
		movie.Rating,
		movie.ReleaseDate,
		movie.PosterURL,
		movie.TrailerURL,
		movie.Director,
		pq.Array(movie.CastMembers),
		movie.Language,
		movie.NowShowing,
		movie.ComingSoon,
	).Scan(&movie.CreatedAt, &movie.UpdatedAt)
}

func (r *MovieRepository) GetByID(ctx context.Context, id string) (*models.Movie, error) {
	query := `SELECT ` + movieColumns + ` FROM movies WHERE id = $1`
	movie, err := scanMovie(r.db.QueryRowContext(ctx, query, id))
	if err == sql.ErrNoRows {
		return nil, nil
	}
	return movie, err
}

func (r *MovieRepository) List(ctx context.Context, filter models.ListMoviesFilter) ([]models.Movie, error) {
	var args []interface{}
	argIndex := 1

	query := `SELECT ` + movieColumns + ` FROM movies WHERE 1=1`

	switch filter.Type {
	case "now-showing":
		query += " AND now_showing = TRUE"
	case "coming-soon":
		query += " AND coming_soon = TRUE"
	}

	if filter.Genre != "" {
		query += fmt.Sprintf(" AND genre = $%d", argIndex)
		args = append(args, filter.Genre)
		argIndex++
	}

	if filter.Language != "" {
		query += fmt.Sprintf(" AND language = $%d", argIndex)
		args = append(args, filter.Language)
		argIndex++
	}

	query += " ORDER BY release_date DESC"

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var movies []models.Movie
	for rows.Next() {
		movie, err := scanMovie(rows)
		if err != nil {
			return nil, err
		}
		movies = append(movies, *movie)
	}

	return movies, rows.Err()
}

func (r *MovieRepository) Update(ctx context.Context, movie *models.Movie) error {
	query := `
		UPDATE movies
		SET title = $1, description = $2, genre = $3, duration_min = $4, rating = $5,
		    release_date = $6, poster_url = $7, trailer_url = $8, director = $9,
		    cast_members = $10, language = $11, now_showing = $12, coming_soon = $13,
		    updated_at = NOW()
		WHERE id = $14`

	result, err := r.db.ExecContext(ctx, query,
		movie.Title,
		movie.Description,
		movie.Genre,
		movie.DurationMin,
		movie.Rating,
		movie.ReleaseDate,
		movie.PosterURL,
		movie.TrailerURL,
		movie.Director,
		pq.Array(movie.CastMembers),
		movie.Language,
		movie.NowShowing,
		movie.ComingSoon,
		movie.ID,
	)
	if err != nil {
		return err
	}
	n, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return apperr.ErrMovieNotFound
	}
	return nil
}

func (r *MovieRepository) Delete(ctx context.Context, id string) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM movies WHERE id = $1`, id)
	if err != nil {
		if isForeignKeyViolation(err) {
			return apperr.ErrCatalogInUse
		}
		return err
	}
	n, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return apperr.ErrMovieNotFound
	}
	return nil
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanMovie(row rowScanner) (*models.Movie, error) {
	movie := &models.Movie{}
	err := row.Scan(
		&movie.ID,
		&movie.Title,
		&movie.Description,
		&movie.Genre,
		&movie.DurationMin,
		&movie.Rating,
		&movie.ReleaseDate,
		&movie.PosterURL,
		&movie.TrailerURL,
		&movie.Director,
		pq.Array(&movie.CastMembers),
		&movie.Language,
		&movie.NowShowing,
		&movie.ComingSoon,
		&movie.CreatedAt,
		&movie.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return movie, nil
}
