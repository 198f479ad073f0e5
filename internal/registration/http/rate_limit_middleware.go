package http

import (
	"crypto/sha256"
	"encoding/hex"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/allisson/rsvp/internal/metrics"
	"github.com/allisson/rsvp/internal/ratelimit"
)

// RateLimitMiddleware enforces a per-IP fixed-window limit for one endpoint
// group. The client IP is hashed before it reaches the limiter, so limiter
// state never holds raw addresses.
//
// Returns 429 Too Many Requests with a Retry-After header when the window is
// exhausted; otherwise sets X-RateLimit-Remaining and continues.
func RateLimitMiddleware(
	group string,
	limiter *ratelimit.Limiter,
	businessMetrics metrics.BusinessMetrics,
	logger *slog.Logger,
) gin.HandlerFunc {
	return func(c *gin.Context) {
		identifier := hashIdentifier(group, c.ClientIP())

		result := limiter.Check(identifier)
		businessMetrics.RecordRateLimitDecision(c.Request.Context(), group, result.Allowed)

		if !result.Allowed {
			retryAfter := int(time.Until(result.ResetAt).Seconds())
			if retryAfter < 1 {
				retryAfter = 1
			}

			logger.Debug("rate limit exceeded",
				slog.String("group", group),
				slog.Int("retry_after", retryAfter))

			c.Header("Retry-After", strconv.Itoa(retryAfter))
			c.JSON(http.StatusTooManyRequests, gin.H{
				"error":   "rate_limited",
				"message": "Too many requests, try again later",
			})
			c.Abort()
			return
		}

		c.Header("X-RateLimit-Remaining", strconv.Itoa(result.Remaining))
		c.Next()
	}
}

// hashIdentifier derives the limiter key from the endpoint group and the
// client IP. Including the group keeps groups isolated even when limiter
// instances are shared.
func hashIdentifier(group, clientIP string) string {
	sum := sha256.Sum256([]byte(group + ":" + clientIP))
	return hex.EncodeToString(sum[:])
}
