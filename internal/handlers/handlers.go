package handlers

import (
	"errors"
	"log/slog"
	"net/http"

	apperr "cinebook/internal/errors"
	"cinebook/internal/service"

	"github.com/gin-gonic/gin"
)

type Handlers struct {
	services *service.Services
}

func NewHandlers(services *service.Services) *Handlers {
	return &Handlers{services: services}
}

// handleServiceError translates the service error taxonomy to HTTP.
// Conflict responses name the unavailable seats so the client can
// re-render seat selection without a full reload; everything else gets a
// generic retry-safe message.
func (h *Handlers) handleServiceError(c *gin.Context, err error, logMsg string) {
	var seatConflict *apperr.SeatConflictError
	var validation *apperr.ValidationError
	var integrity *apperr.IntegrityError

	switch {
	case errors.Is(err, apperr.ErrShowNotFound),
		errors.Is(err, apperr.ErrBookingNotFound),
		errors.Is(err, apperr.ErrMovieNotFound),
		errors.Is(err, apperr.ErrTheaterNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})

	case errors.As(err, &seatConflict):
		c.JSON(http.StatusConflict, gin.H{
			"error":             "Some seats are already booked",
			"conflicting_seats": seatConflict.Seats,
		})

	case errors.Is(err, apperr.ErrCapacityExceeded),
		errors.Is(err, apperr.ErrAlreadyCancelled),
		errors.Is(err, apperr.ErrShowHasBookings),
		errors.Is(err, apperr.ErrCatalogInUse):
		c.JSON(http.StatusConflict, gin.H{"error": err.Error()})

	case errors.Is(err, apperr.ErrTransientConflict):
		c.JSON(http.StatusConflict, gin.H{"error": "Temporary conflict, please retry"})

	case errors.Is(err, apperr.ErrForbidden):
		c.JSON(http.StatusForbidden, gin.H{"error": "Not authorized"})

	case errors.As(err, &validation):
		c.JSON(http.StatusBadRequest, gin.H{"error": validation.Msg})

	case errors.As(err, &integrity):
		slog.Error("Reservation integrity error", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Reservation failed, please retry"})

	default:
		slog.Error(logMsg, "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": logMsg})
	}
}

// Health - GET /health
func (h *Handlers) Health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":  "ok",
		"service": "cinebook-api",
	})
}
