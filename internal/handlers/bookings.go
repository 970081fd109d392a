package handlers

import (
	"net/http"

	"cinebook/internal/middleware"
	"cinebook/internal/models"

	"github.com/gin-gonic/gin"
)

// CreateBooking - POST /api/shows/:id/bookings
// An Idempotency-Key header makes retries of the same request return the
// original booking instead of reserving twice.
func (h *Handlers) CreateBooking(c *gin.Context) {
	userID, ok := middleware.UserIDFromContext(c.Request.Context())
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Authentication required"})
		return
	}

	var req models.CreateBookingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body: " + err.Error()})
		return
	}

	showID := c.Param("id")
	idemKey := c.GetHeader("Idempotency-Key")

	booking, err := h.services.Reservations.CreateBooking(
		c.Request.Context(), userID, showID, req.SeatIDs, req.PaymentMethod, idemKey)
	if err != nil {
		h.handleServiceError(c, err, "Failed to create booking")
		return
	}

	h.services.Shows.InvalidateAvailability(c.Request.Context(), showID)

	c.JSON(http.StatusCreated, booking)
}

// GetBooking - GET /api/bookings/:id
func (h *Handlers) GetBooking(c *gin.Context) {
	userID, ok := middleware.UserIDFromContext(c.Request.Context())
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Authentication required"})
		return
	}

	booking, err := h.services.Reservations.GetBooking(
		c.Request.Context(), userID, middleware.IsAdminFromContext(c.Request.Context()), c.Param("id"))
	if err != nil {
		h.handleServiceError(c, err, "Failed to get booking")
		return
	}

	c.JSON(http.StatusOK, booking)
}

// ListMyBookings - GET /api/bookings/mine
func (h *Handlers) ListMyBookings(c *gin.Context) {
	userID, ok := middleware.UserIDFromContext(c.Request.Context())
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Authentication required"})
		return
	}

	bookings, err := h.services.Reservations.ListUserBookings(c.Request.Context(), userID)
	if err != nil {
		h.handleServiceError(c, err, "Failed to list bookings")
		return
	}

	c.JSON(http.StatusOK, gin.H{"bookings": bookings, "count": len(bookings)})
}

// CancelBooking - PUT /api/bookings/:id/cancel
func (h *Handlers) CancelBooking(c *gin.Context) {
	userID, ok := middleware.UserIDFromContext(c.Request.Context())
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Authentication required"})
		return
	}

	booking, err := h.services.Reservations.CancelBooking(
		c.Request.Context(), userID, middleware.IsAdminFromContext(c.Request.Context()), c.Param("id"))
	if err != nil {
		h.handleServiceError(c, err, "Failed to cancel booking")
		return
	}

	h.services.Shows.InvalidateAvailability(c.Request.Context(), booking.ShowID)

	c.JSON(http.StatusOK, booking)
}

// ListAllBookings - GET /api/bookings (admin)
func (h *Handlers) ListAllBookings(c *gin.Context) {
	bookings, err := h.services.Reservations.ListAllBookings(c.Request.Context(), c.Query("status"))
	if err != nil {
		h.handleServiceError(c, err, "Failed to list bookings")
		return
	}

	c.JSON(http.StatusOK, gin.H{"bookings": bookings, "count": len(bookings)})
}

// UpdateBookingStatus - PATCH /api/bookings/:id/status (admin)
func (h *Handlers) UpdateBookingStatus(c *gin.Context) {
	var req models.UpdateBookingStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body: " + err.Error()})
		return
	}

	booking, err := h.services.Reservations.AdminSetStatus(c.Request.Context(), c.Param("id"), req.Status)
	if err != nil {
		h.handleServiceError(c, err, "Failed to update booking status")
		return
	}

	h.services.Shows.InvalidateAvailability(c.Request.Context(), booking.ShowID)

	c.JSON(http.StatusOK, booking)
}

// DeleteBooking - DELETE /api/bookings/:id (admin)
func (h *Handlers) DeleteBooking(c *gin.Context) {
	booking, err := h.services.Reservations.GetBooking(
		c.Request.Context(), "", true, c.Param("id"))
	if err != nil {
		h.handleServiceError(c, err, "Failed to delete booking")
		return
	}

	if err := h.services.Reservations.AdminDeleteBooking(c.Request.Context(), booking.ID); err != nil {
		h.handleServiceError(c, err, "Failed to delete booking")
		return
	}

	h.services.Shows.InvalidateAvailability(c.Request.Context(), booking.ShowID)

	c.JSON(http.StatusOK, gin.H{"message": "Booking deleted"})
}
