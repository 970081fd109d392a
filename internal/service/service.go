package service

import (
	"cinebook/internal/cache"
	"cinebook/internal/messaging"
	"cinebook/internal/repository"
)

type Services struct {
	Catalog      *CatalogService
	Shows        *ShowService
	Reservations *ReservationService
}

func NewServices(repos *repository.Repositories, natsClient *messaging.NATSClient, cacheClient *cache.Client) *Services {
	return &Services{
		Catalog:      NewCatalogService(repos),
		Shows:        NewShowService(repos.Shows, repos.Movies, repos.Theaters, repos.Bookings, cacheClient),
		Reservations: NewReservationService(repos.Shows, repos.Bookings, natsClient, cacheClient),
	}
}
