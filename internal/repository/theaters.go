package repository

import (
	"context"
	"database/sql"

	"cinebook/internal/database"
	apperr "cinebook/internal/errors"
	"cinebook/internal/models"
)

type TheaterRepository struct {
	db *database.DB
}

func NewTheaterRepository(db *database.DB) *TheaterRepository {
	return &TheaterRepository{db: db}
}

// Create stores a theater and its screens in one transaction
func (r *TheaterRepository) Create(ctx context.Context, theater *models.Theater) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	query := `
		INSERT INTO theaters (id, name, location, address)
		VALUES ($1, $2, $3, $4)
		RETURNING created_at, updated_at`

	err = tx.QueryRowContext(ctx, query,
		theater.ID,
		theater.Name,
		theater.Location,
		theater.Address,
	).Scan(&theater.CreatedAt, &theater.UpdatedAt)
	if err != nil {
		return err
	}

	screenQuery := `INSERT INTO screens (theater_id, name, seat_rows, seats_per_row) VALUES ($1, $2, $3, $4)`
	for _, screen := range theater.Screens {
		if _, err := tx.ExecContext(ctx, screenQuery, theater.ID, screen.Name, screen.SeatRows, screen.SeatsPerRow); err != nil {
			return err
		}
	}

	return tx.Commit()
}

func (r *TheaterRepository) GetByID(ctx context.Context, id string) (*models.Theater, error) {
	theater := &models.Theater{}
	query := `SELECT id, name, location, address, created_at, updated_at FROM theaters WHERE id = $1`

	err := r.db.QueryRowContext(ctx, query, id).Scan(
		&theater.ID,
		&theater.Name,
		&theater.Location,
		&theater.Address,
		&theater.CreatedAt,
		&theater.UpdatedAt,
	)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	theater.Screens, err = r.getScreens(ctx, id)
	return theater, err
}

// GetScreen returns one screen's layout, or nil if the theater has no
// screen by that name.
func (r *TheaterRepository) GetScreen(ctx context.Context, theaterID, name string) (*models.Screen, error) {
	screen := &models.Screen{}
	query := `SELECT theater_id, name, seat_rows, seats_per_row FROM screens WHERE theater_id = $1 AND name = $2`

	err := r.db.QueryRowContext(ctx, query, theaterID, name).Scan(
		&screen.TheaterID,
		&screen.Name,
		&screen.SeatRows,
		&screen.SeatsPerRow,
	)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	return screen, err
}

func (r *TheaterRepository) getScreens(ctx context.Context, theaterID string) ([]models.Screen, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT theater_id, name, seat_rows, seats_per_row FROM screens WHERE theater_id = $1 ORDER BY name`, theaterID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var screens []models.Screen
	for rows.Next() {
		var screen models.Screen
		if err := rows.Scan(&screen.TheaterID, &screen.Name, &screen.SeatRows, &screen.SeatsPerRow); err != nil {
			return nil, err
		}
		screens = append(screens, screen)
	}

	return screens, rows.Err()
}

func (r *TheaterRepository) List(ctx context.Context) ([]models.Theater, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT id, name, location, address, created_at, updated_at FROM theaters ORDER BY name`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var theaters []models.Theater
	for rows.Next() {
		var theater models.Theater
		err := rows.Scan(
			&theater.ID,
			&theater.Name,
			&theater.Location,
			&theater.Address,
			&theater.CreatedAt,
			&theater.UpdatedAt,
		)
		if err != nil {
			return nil, err
		}
		theaters = append(theaters, theater)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	for i := range theaters {
		if theaters[i].Screens, err = r.getScreens(ctx, theaters[i].ID); err != nil {
			return nil, err
		}
	}

	return theaters, nil
}

func (r *TheaterRepository) Update(ctx context.Context, theater *models.Theater) error {
	query := `UPDATE theaters SET name = $1, location = $2, address = $3, updated_at = NOW() WHERE id = $4`
	result, err := r.db.ExecContext(ctx, query, theater.Name, theater.Location, theater.Address, theater.ID)
	if err != nil {
		return err
	}
	n, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return apperr.ErrTheaterNotFound
	}
	return nil
}

func (r *TheaterRepository) Delete(ctx context.Context, id string) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM theaters WHERE id = $1`, id)
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
		return apperr.ErrTheaterNotFound
	}
	return nil
}
