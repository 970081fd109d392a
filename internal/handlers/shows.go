package handlers

import (
	"net/http"
	"time"

	"cinebook/internal/models"

	"github.com/gin-gonic/gin"
)

// ListShows - GET /api/shows?movie_id=&theater_id=&date=
func (h *Handlers) ListShows(c *gin.Context) {
	filter := models.ListShowsFilter{
		MovieID:   c.Query("movie_id"),
		TheaterID: c.Query("theater_id"),
	}
	if raw := c.Query("date"); raw != "" {
		date, err := time.Parse("2006-01-02", raw)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "date must be YYYY-MM-DD"})
			return
		}
		filter.Date = &date
	}

	shows, err := h.services.Shows.List(c.Request.Context(), filter)
	if err != nil {
		h.handleServiceError(c, err, "Failed to list shows")
		return
	}

	c.JSON(http.StatusOK, gin.H{"shows": shows, "count": len(shows)})
}

// GetShow - GET /api/shows/:id
func (h *Handlers) GetShow(c *gin.Context) {
	show, err := h.services.Shows.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.handleServiceError(c, err, "Failed to get show")
		return
	}

	c.JSON(http.StatusOK, show)
}

// GetAvailability - GET /api/shows/:id/availability
// Serves the cached JSON body directly on a cache hit.
func (h *Handlers) GetAvailability(c *gin.Context) {
	availability, raw, err := h.services.Shows.Availability(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.handleServiceError(c, err, "Failed to get availability")
		return
	}

	if raw != nil {
		c.Data(http.StatusOK, "application/json", raw)
		return
	}

	c.JSON(http.StatusOK, availability)
}

// CreateShow - POST /api/shows (admin)
func (h *Handlers) CreateShow(c *gin.Context) {
	var req models.CreateShowRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body: " + err.Error()})
		return
	}

	show, err := h.services.Shows.Create(c.Request.Context(), &req)
	if err != nil {
		h.handleServiceError(c, err, "Failed to create show")
		return
	}

	c.JSON(http.StatusCreated, show)
}

// UpdateShow - PUT /api/shows/:id (admin)
func (h *Handlers) UpdateShow(c *gin.Context) {
	var req models.UpdateShowRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body: " + err.Error()})
		return
	}

	show, err := h.services.Shows.Update(c.Request.Context(), c.Param("id"), &req)
	if err != nil {
		h.handleServiceError(c, err, "Failed to update show")
		return
	}

	h.services.Shows.InvalidateAvailability(c.Request.Context(), show.ID)

	c.JSON(http.StatusOK, show)
}

// DeleteShow - DELETE /api/shows/:id (admin)
// Refused while the show still has non-cancelled bookings.
func (h *Handlers) DeleteShow(c *gin.Context) {
	showID := c.Param("id")

	if err := h.services.Shows.Delete(c.Request.Context(), showID); err != nil {
		h.handleServiceError(c, err, "Failed to delete show")
		return
	}

	h.services.Shows.InvalidateAvailability(c.Request.Context(), showID)

	c.JSON(http.StatusOK, gin.H{"message": "Show deleted"})
}
