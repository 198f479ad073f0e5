package metrics

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func TestHTTPMetricsMiddleware(t *testing.T) {
	provider, err := NewProvider("rsvp")
	require.NoError(t, err)

	router := gin.New()
	router.Use(HTTPMetricsMiddleware(provider.MeterProvider(), "rsvp"))
	router.GET("/v1/registrations/manage/:token", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"message": "ok"})
	})

	req := httptest.NewRequest(http.MethodGet, "/v1/registrations/manage/super-secret-raw-token", nil)
	recorder := httptest.NewRecorder()
	router.ServeHTTP(recorder, req)
	require.Equal(t, http.StatusOK, recorder.Code)

	body := scrape(t, provider)
	assert.Contains(t, body, "rsvp_http_requests_total")
	// Labels carry the route pattern, never the raw token from the path.
	assert.Contains(t, body, "/v1/registrations/manage/:token")
	assert.NotContains(t, body, "super-secret-raw-token")
}

func TestHTTPMetricsMiddleware_UnmatchedRoute(t *testing.T) {
	provider, err := NewProvider("rsvp")
	require.NoError(t, err)

	router := gin.New()
	router.Use(HTTPMetricsMiddleware(provider.MeterProvider(), "rsvp"))

	req := httptest.NewRequest(http.MethodGet, "/nope", nil)
	recorder := httptest.NewRecorder()
	router.ServeHTTP(recorder, req)
	require.Equal(t, http.StatusNotFound, recorder.Code)

	body := scrape(t, provider)
	assert.Contains(t, body, `path="unknown"`)
}
