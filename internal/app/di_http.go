package app

import (
	"context"
	"fmt"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/allisson/rsvp/internal/http"
	"github.com/allisson/rsvp/internal/metrics"
	"github.com/allisson/rsvp/internal/ratelimit"
	registrationHTTP "github.com/allisson/rsvp/internal/registration/http"
)

// initHTTPServer assembles the API server: handlers, per-group rate limiters
// and cross-cutting middleware.
func (c *Container) initHTTPServer() (*http.Server, error) {
	logger := c.Logger()

	db, err := c.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get database for http server: %w", err)
	}

	registrationUseCase, err := c.RegistrationUseCase()
	if err != nil {
		return nil, fmt.Errorf("failed to get registration use case for http server: %w", err)
	}

	adminUseCase, err := c.AdminUseCase()
	if err != nil {
		return nil, fmt.Errorf("failed to get admin use case for http server: %w", err)
	}

	businessMetrics, err := c.BusinessMetrics()
	if err != nil {
		return nil, fmt.Errorf("failed to get business metrics for http server: %w", err)
	}

	var metricsMiddleware gin.HandlerFunc
	provider, err := c.MetricsProvider()
	if err != nil {
		return nil, fmt.Errorf("failed to get metrics provider for http server: %w", err)
	}
	if provider != nil {
		metricsMiddleware = metrics.HTTPMetricsMiddleware(provider.MeterProvider(), c.config.MetricsNamespace)
	}

	registrationHandler := registrationHTTP.NewRegistrationHandler(registrationUseCase, logger)
	adminHandler := registrationHTTP.NewAdminHandler(adminUseCase, logger)

	routerConfig := http.RouterConfig{
		Logger:              logger,
		RegistrationHandler: registrationHandler,
		AdminHandler:        adminHandler,
		CreateRateLimit: c.rateLimitMiddleware(
			"create", c.config.RateLimitCreateMax, c.config.RateLimitCreateWindow, businessMetrics),
		ViewRateLimit: c.rateLimitMiddleware(
			"view", c.config.RateLimitViewMax, c.config.RateLimitViewWindow, businessMetrics),
		ManageRateLimit: c.rateLimitMiddleware(
			"manage", c.config.RateLimitManageMax, c.config.RateLimitManageWindow, businessMetrics),
		ResendRateLimit: c.rateLimitMiddleware(
			"resend", c.config.RateLimitResendMax, c.config.RateLimitResendWindow, businessMetrics),
		AdminRateLimit: c.rateLimitMiddleware(
			"admin", c.config.RateLimitAdminMax, c.config.RateLimitAdminWindow, businessMetrics),
		AdminAuth:         registrationHTTP.AdminAuthMiddleware(c.config.AdminAPIKeyHash, logger),
		MetricsMiddleware: metricsMiddleware,
		CORSEnabled:       c.config.CORSEnabled,
		CORSAllowOrigins:  c.config.CORSAllowOrigins,
		DB:                db,
	}

	return http.NewServer(c.config.ServerHost, c.config.ServerPort, routerConfig), nil
}

// rateLimitMiddleware builds one endpoint-group limiter and its middleware.
// Update and cancel share a single middleware instance (the "manage" group),
// so their attempts drain the same window.
func (c *Container) rateLimitMiddleware(
	group string,
	maxAttempts int,
	window time.Duration,
	businessMetrics metrics.BusinessMetrics,
) gin.HandlerFunc {
	opts := []ratelimit.Option{ratelimit.WithClock(c.Clock())}
	if !c.config.RateLimitEnabled {
		logRateLimitOverride(c.Logger(), group)
		opts = append(opts, ratelimit.Disabled())
	}

	limiter := ratelimit.New(maxAttempts, window, opts...)

	// Stale window cleanup runs for the process lifetime.
	go limiter.CleanupStale(context.Background(), 5*time.Minute)

	return registrationHTTP.RateLimitMiddleware(group, limiter, businessMetrics, c.Logger())
}
