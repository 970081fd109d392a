package handlers

import (
	"net/http"
	"time"

	"cinebook/internal/models"

	"github.com/gin-gonic/gin"
)

// ListTheaters - GET /api/theaters
func (h *Handlers) ListTheaters(c *gin.Context) {
	theaters, err := h.services.Catalog.ListTheaters(c.Request.Context())
	if err != nil {
		h.handleServiceError(c, err, "Failed to list theaters")
		return
	}

	c.JSON(http.StatusOK, gin.H{"theaters": theaters, "count": len(theaters)})
}

// GetTheater - GET /api/theaters/:id
func (h *Handlers) GetTheater(c *gin.Context) {
	theater, err := h.services.Catalog.GetTheater(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.handleServiceError(c, err, "Failed to get theater")
		return
	}

	c.JSON(http.StatusOK, theater)
}

// ListTheaterShows - GET /api/theaters/:id/shows?movie_id=&date=
func (h *Handlers) ListTheaterShows(c *gin.Context) {
	filter := models.ListShowsFilter{
		MovieID: c.Query("movie_id"),
	}
	if raw := c.Query("date"); raw != "" {
		date, err := time.Parse("2006-01-02", raw)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "date must be YYYY-MM-DD"})
			return
		}
		filter.Date = &date
	}

	shows, err := h.services.Shows.ListByTheater(c.Request.Context(), c.Param("id"), filter)
	if err != nil {
		h.handleServiceError(c, err, "Failed to list theater shows")
		return
	}

	c.JSON(http.StatusOK, gin.H{"shows": shows, "count": len(shows)})
}

// CreateTheater - POST /api/theaters (admin)
func (h *Handlers) CreateTheater(c *gin.Context) {
	var req models.CreateTheaterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body: " + err.Error()})
		return
	}

	theater, err := h.services.Catalog.CreateTheater(c.Request.Context(), &req)
	if err != nil {
		h.handleServiceError(c, err, "Failed to create theater")
		return
	}

	c.JSON(http.StatusCreated, theater)
}

// UpdateTheater - PUT /api/theaters/:id (admin)
func (h *Handlers) UpdateTheater(c *gin.Context) {
	var req models.CreateTheaterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body: " + err.Error()})
		return
	}

	theater, err := h.services.Catalog.UpdateTheater(c.Request.Context(), c.Param("id"), &req)
	if err != nil {
		h.handleServiceError(c, err, "Failed to update theater")
		return
	}

	c.JSON(http.StatusOK, theater)
}

// DeleteTheater - DELETE /api/theaters/:id (admin)
func (h *Handlers) DeleteTheater(c *gin.Context) {
	if err := h.services.Catalog.DeleteTheater(c.Request.Context(), c.Param("id")); err != nil {
		h.handleServiceError(c, err, "Failed to delete theater")
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Theater deleted"})
}
