package repository

import (
	"cinebook/internal/database"
)

type Repositories struct {
	Movies   *MovieRepository
	Theaters *TheaterRepository
	Shows    *ShowRepository
	Bookings *BookingRepository
}

func NewRepositories(db *database.DB) *Repositories {
	return &Repositories{
		Movies:   NewMovieRepository(db),
		Theaters: NewTheaterRepository(db),
		Shows:    NewShowRepository(db),
		Bookings: NewBookingRepository(db),
	}
}
