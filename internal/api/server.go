package api

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"cinebook/internal/config"
	"cinebook/internal/handlers"
	"cinebook/internal/middleware"
	"cinebook/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Server is the HTTP front of the reservation service
type Server struct {
	cfg        *config.Config
	router     *gin.Engine
	httpServer *http.Server
}

func NewServer(cfg *config.Config, services *service.Services) *Server {
	gin.SetMode(cfg.GinMode)

	router := gin.New()
	router.Use(middleware.Recovery())
	router.Use(middleware.CORS())
	router.Use(middleware.Logger())
	router.Use(middleware.Metrics())

	h := handlers.NewHandlers(services)
	registerRoutes(router, h, cfg)

	return &Server{
		cfg:    cfg,
		router: router,
		httpServer: &http.Server{
			Addr:         ":" + cfg.Port,
			Handler:      router,
			ReadTimeout:  cfg.RequestTimeout,
			WriteTimeout: cfg.RequestTimeout,
			IdleTimeout:  2 * cfg.RequestTimeout,
		},
	}
}

func registerRoutes(router *gin.Engine, h *handlers.Handlers, cfg *config.Config) {
	router.GET("/health", h.Health)
	router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	api := router.Group("/api")

	// Public catalog and availability reads
	api.GET("/movies", h.ListMovies)
	api.GET("/movies/:id", h.GetMovie)
	api.GET("/theaters", h.ListTheaters)
	api.GET("/theaters/:id", h.GetTheater)
	api.GET("/theaters/:id/shows", h.ListTheaterShows)
	api.GET("/shows", h.ListShows)
	api.GET("/shows/:id", h.GetShow)
	api.GET("/shows/:id/availability", h.GetAvailability)

	// Authenticated booking operations
	auth := api.Group("")
	auth.Use(middleware.Auth(cfg.Auth.JWTSecret, cfg.Auth.Issuer))
	{
		auth.POST("/shows/:id/bookings", h.CreateBooking)
		auth.GET("/bookings/mine", h.ListMyBookings)
		auth.GET("/bookings/:id", h.GetBooking)
		auth.PUT("/bookings/:id/cancel", h.CancelBooking)
	}

	// Admin catalog management and booking overrides
	admin := api.Group("")
	admin.Use(middleware.Auth(cfg.Auth.JWTSecret, cfg.Auth.Issuer), middleware.RequireAdmin())
	{
		admin.GET("/bookings", h.ListAllBookings)
		admin.PATCH("/bookings/:id/status", h.UpdateBookingStatus)
		admin.DELETE("/bookings/:id", h.DeleteBooking)

		admin.POST("/movies", h.CreateMovie)
		admin.PUT("/movies/:id", h.UpdateMovie)
		admin.DELETE("/movies/:id", h.DeleteMovie)

		admin.POST("/theaters", h.CreateTheater)
		admin.PUT("/theaters/:id", h.UpdateTheater)
		admin.DELETE("/theaters/:id", h.DeleteTheater)

		admin.POST("/shows", h.CreateShow)
		admin.PUT("/shows/:id", h.UpdateShow)
		admin.DELETE("/shows/:id", h.DeleteShow)
	}
}

// Start blocks serving HTTP until the listener fails or Shutdown is called
func (s *Server) Start() error {
	slog.Info("HTTP server starting", "port", s.cfg.Port)

	if err := s.httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return err
	}
	return nil
}

// Shutdown drains in-flight requests before returning
func (s *Server) Shutdown(ctx context.Context) error {
	slog.Info("HTTP server shutting down")

	shutdownCtx, cancel := context.WithTimeout(ctx, 15*time.Second)
	defer cancel()

	return s.httpServer.Shutdown(shutdownCtx)
}

// Router exposes the gin engine for tests
func (s *Server) Router() *gin.Engine {
	return s.router
}
