// Package http provides the HTTP server, routing and shared middleware.
package http

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-contrib/requestid"
	"github.com/gin-gonic/gin"

	registrationHTTP "github.com/allisson/rsvp/internal/registration/http"
)

// RouterConfig carries everything the router needs: handlers, per-group rate
// limit middlewares and the optional cross-cutting middlewares.
type RouterConfig struct {
	Logger *slog.Logger

	RegistrationHandler *registrationHTTP.RegistrationHandler
	AdminHandler        *registrationHTTP.AdminHandler

	// Per-group rate limit middlewares. All are required.
	CreateRateLimit gin.HandlerFunc
	ViewRateLimit   gin.HandlerFunc
	ManageRateLimit gin.HandlerFunc
	ResendRateLimit gin.HandlerFunc
	AdminRateLimit  gin.HandlerFunc

	AdminAuth gin.HandlerFunc

	// MetricsMiddleware is optional; nil disables HTTP metrics.
	MetricsMiddleware gin.HandlerFunc

	CORSEnabled      bool
	CORSAllowOrigins string

	// DB backs the readiness probe.
	DB *sql.DB
}

// Server represents the API HTTP server.
type Server struct {
	server *http.Server
	logger *slog.Logger
}

// NewServer creates the API server with all routes mounted.
func NewServer(host string, port int, cfg RouterConfig) *Server {
	router := newRouter(cfg)

	return &Server{
		logger: cfg.Logger,
		server: &http.Server{
			Addr:         fmt.Sprintf("%s:%d", host, port),
			Handler:      router,
			ReadTimeout:  15 * time.Second,
			WriteTimeout: 15 * time.Second,
			IdleTimeout:  60 * time.Second,
		},
	}
}

// newRouter builds the Gin engine and mounts all routes.
func newRouter(cfg RouterConfig) *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(requestid.New())
	router.Use(CustomLoggerMiddleware(cfg.Logger))

	if corsMiddleware := createCORSMiddleware(cfg.CORSEnabled, cfg.CORSAllowOrigins, cfg.Logger); corsMiddleware != nil {
		router.Use(corsMiddleware)
	}

	if cfg.MetricsMiddleware != nil {
		router.Use(cfg.MetricsMiddleware)
	}

	router.GET("/health", healthHandler)
	router.GET("/ready", readinessHandler(cfg.DB))

	v1 := router.Group("/v1")
	{
		v1.POST("/registrations", cfg.CreateRateLimit, cfg.RegistrationHandler.CreateHandler)
		v1.POST("/registrations/resend-link", cfg.ResendRateLimit, cfg.RegistrationHandler.ResendHandler)

		manage := v1.Group("/registrations/manage")
		{
			manage.GET("/:token", cfg.ViewRateLimit, cfg.RegistrationHandler.GetHandler)
			manage.PATCH("/:token", cfg.ManageRateLimit, cfg.RegistrationHandler.UpdateHandler)
			manage.DELETE("/:token", cfg.ManageRateLimit, cfg.RegistrationHandler.CancelHandler)
		}

		// The rate limit runs before authentication so key guessing burns the
		// admin window, not the database.
		admin := v1.Group("/admin", cfg.AdminRateLimit, cfg.AdminAuth)
		{
			admin.GET("/registrations", cfg.AdminHandler.ListHandler)
		}
	}

	return router
}

// healthHandler reports process liveness.
func healthHandler(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "healthy"})
}

// readinessHandler reports readiness by pinging the database.
func readinessHandler(db *sql.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		if db != nil {
			ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
			defer cancel()

			if err := db.PingContext(ctx); err != nil {
				c.JSON(http.StatusServiceUnavailable, gin.H{"status": "not ready"})
				return
			}
		}

		c.JSON(http.StatusOK, gin.H{"status": "ready"})
	}
}

// GetHandler returns the http.Handler for testing purposes.
func (s *Server) GetHandler() http.Handler {
	return s.server.Handler
}

// Start starts the HTTP server.
func (s *Server) Start(ctx context.Context) error {
	s.logger.Info("starting http server", slog.String("addr", s.server.Addr))

	if err := s.server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return fmt.Errorf("failed to start server: %w", err)
	}

	return nil
}

// Shutdown gracefully shuts down the HTTP server.
func (s *Server) Shutdown(ctx context.Context) error {
	s.logger.Info("shutting down http server")
	return s.server.Shutdown(ctx)
}
