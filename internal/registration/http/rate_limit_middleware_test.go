package http

import (
	"net/http"
	"net/http/httptest"
	"strconv"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/allisson/rsvp/internal/metrics"
	"github.com/allisson/rsvp/internal/ratelimit"
)

func newRateLimitedRouter(group string, limiter *ratelimit.Limiter) *gin.Engine {
	router := gin.New()
	router.POST("/v1/registrations",
		RateLimitMiddleware(group, limiter, metrics.NewNoOpBusinessMetrics(), testLogger()),
		func(c *gin.Context) { c.Status(http.StatusCreated) },
	)
	return router
}

func TestRateLimitMiddleware_AllowsWithinWindow(t *testing.T) {
	limiter := ratelimit.New(5, time.Hour)
	router := newRateLimitedRouter("create", limiter)

	for i := range 5 {
		recorder := perform(router, http.MethodPost, "/v1/registrations", "")
		assert.Equal(t, http.StatusCreated, recorder.Code)

		remaining, err := strconv.Atoi(recorder.Header().Get("X-RateLimit-Remaining"))
		require.NoError(t, err)
		assert.Equal(t, 4-i, remaining)
	}
}

func TestRateLimitMiddleware_DeniesWhenExhausted(t *testing.T) {
	limiter := ratelimit.New(1, time.Hour)
	router := newRateLimitedRouter("create", limiter)

	first := perform(router, http.MethodPost, "/v1/registrations", "")
	assert.Equal(t, http.StatusCreated, first.Code)

	second := perform(router, http.MethodPost, "/v1/registrations", "")
	assert.Equal(t, http.StatusTooManyRequests, second.Code)
	assert.Contains(t, second.Body.String(), "rate_limited")

	retryAfter, err := strconv.Atoi(second.Header().Get("Retry-After"))
	require.NoError(t, err)
	assert.GreaterOrEqual(t, retryAfter, 1)
}

func TestRateLimitMiddleware_GroupsAreIsolated(t *testing.T) {
	// One shared limiter instance still keeps per-group windows separate
	// because the group is part of the hashed identifier.
	limiter := ratelimit.New(1, time.Hour)

	createRouter := newRateLimitedRouter("create", limiter)
	viewRouter := newRateLimitedRouter("view", limiter)

	first := perform(createRouter, http.MethodPost, "/v1/registrations", "")
	require.Equal(t, http.StatusCreated, first.Code)

	exhausted := perform(createRouter, http.MethodPost, "/v1/registrations", "")
	require.Equal(t, http.StatusTooManyRequests, exhausted.Code)

	otherGroup := perform(viewRouter, http.MethodPost, "/v1/registrations", "")
	assert.Equal(t, http.StatusCreated, otherGroup.Code)
}

func TestRateLimitMiddleware_Disabled(t *testing.T) {
	limiter := ratelimit.New(1, time.Hour, ratelimit.Disabled())
	router := newRateLimitedRouter("create", limiter)

	for range 10 {
		recorder := perform(router, http.MethodPost, "/v1/registrations", "")
		assert.Equal(t, http.StatusCreated, recorder.Code)
	}
}

func TestHashIdentifier(t *testing.T) {
	a := hashIdentifier("create", "10.0.0.1")
	b := hashIdentifier("create", "10.0.0.1")
	c := hashIdentifier("view", "10.0.0.1")
	d := hashIdentifier("create", "10.0.0.2")

	assert.Equal(t, a, b)
	assert.NotEqual(t, a, c)
	assert.NotEqual(t, a, d)

	// The limiter key never contains the raw client address.
	assert.NotContains(t, a, "10.0.0.1")
	assert.Len(t, a, 64)
}

func TestRateLimitMiddleware_AbortStopsHandler(t *testing.T) {
	limiter := ratelimit.New(1, time.Hour)

	handlerCalls := 0
	router := gin.New()
	router.POST("/v1/registrations",
		RateLimitMiddleware("create", limiter, metrics.NewNoOpBusinessMetrics(), testLogger()),
		func(c *gin.Context) {
			handlerCalls++
			c.Status(http.StatusCreated)
		},
	)

	req := httptest.NewRequest(http.MethodPost, "/v1/registrations", nil)
	for range 3 {
		recorder := httptest.NewRecorder()
		router.ServeHTTP(recorder, req)
	}

	assert.Equal(t, 1, handlerCalls)
}
