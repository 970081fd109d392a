package handlers

import (
	"net/http"

	"cinebook/internal/models"

	"github.com/gin-gonic/gin"
)

// ListMovies - GET /api/movies?type=&genre=&language=
func (h *Handlers) ListMovies(c *gin.Context) {
	filter := models.ListMoviesFilter{
		Type:     c.Query("type"),
		Genre:    c.Query("genre"),
		Language: c.Query("language"),
	}

	movies, err := h.services.Catalog.ListMovies(c.Request.Context(), filter)
	if err != nil {
		h.handleServiceError(c, err, "Failed to list movies")
		return
	}

	c.JSON(http.StatusOK, gin.H{"movies": movies, "count": len(movies)})
}

// GetMovie - GET /api/movies/:id
func (h *Handlers) GetMovie(c *gin.Context) {
	movie, err := h.services.Catalog.GetMovie(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.handleServiceError(c, err, "Failed to get movie")
		return
	}

	c.JSON(http.StatusOK, movie)
}

// CreateMovie - POST /api/movies (admin)
func (h *Handlers) CreateMovie(c *gin.Context) {
	var req models.CreateMovieRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body: " + err.Error()})
		return
	}

	movie, err := h.services.Catalog.CreateMovie(c.Request.Context(), &req)
	if err != nil {
		h.handleServiceError(c, err, "Failed to create movie")
		return
	}

	c.JSON(http.StatusCreated, movie)
}

// UpdateMovie - PUT /api/movies/:id (admin)
func (h *Handlers) UpdateMovie(c *gin.Context) {
	var req models.CreateMovieRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body: " + err.Error()})
		return
	}

	movie, err := h.services.Catalog.UpdateMovie(c.Request.Context(), c.Param("id"), &req)
	if err != nil {
		h.handleServiceError(c, err, "Failed to update movie")
		return
	}

	c.JSON(http.StatusOK, movie)
}

// DeleteMovie - DELETE /api/movies/:id (admin)
func (h *Handlers) DeleteMovie(c *gin.Context) {
	if err := h.services.Catalog.DeleteMovie(c.Request.Context(), c.Param("id")); err != nil {
		h.handleServiceError(c, err, "Failed to delete movie")
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Movie deleted"})
}
