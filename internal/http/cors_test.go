package http

import (
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreateCORSMiddleware_Disabled(t *testing.T) {
	assert.Nil(t, createCORSMiddleware(false, "https://events.example.com", testLogger()))
}

func TestCreateCORSMiddleware_NoOrigins(t *testing.T) {
	assert.Nil(t, createCORSMiddleware(true, "", testLogger()))
	assert.Nil(t, createCORSMiddleware(true, " , ,", testLogger()))
}

func TestCreateCORSMiddleware_AllowedOrigin(t *testing.T) {
	middleware := createCORSMiddleware(true, "https://events.example.com", testLogger())
	require.NotNil(t, middleware)

	router := gin.New()
	router.Use(middleware)
	router.GET("/health", func(c *gin.Context) { c.Status(http.StatusOK) })

	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	req.Header.Set("Origin", "https://events.example.com")

	recorder := httptest.NewRecorder()
	router.ServeHTTP(recorder, req)

	assert.Equal(t, http.StatusOK, recorder.Code)
	assert.Equal(t, "https://events.example.com",
		recorder.Header().Get("Access-Control-Allow-Origin"))
}

func TestCreateCORSMiddleware_Preflight(t *testing.T) {
	middleware := createCORSMiddleware(true, "https://events.example.com", testLogger())
	require.NotNil(t, middleware)

	router := gin.New()
	router.Use(middleware)
	router.PATCH("/v1/registrations/manage/:token", func(c *gin.Context) { c.Status(http.StatusOK) })

	req := httptest.NewRequest(http.MethodOptions, "/v1/registrations/manage/abc", nil)
	req.Header.Set("Origin", "https://events.example.com")
	req.Header.Set("Access-Control-Request-Method", "PATCH")

	recorder := httptest.NewRecorder()
	router.ServeHTTP(recorder, req)

	assert.Equal(t, http.StatusNoContent, recorder.Code)
	assert.Contains(t, recorder.Header().Get("Access-Control-Allow-Methods"), "PATCH")
}

func TestParseOrigins(t *testing.T) {
	assert.Nil(t, parseOrigins(""))
	assert.Equal(t, []string{"https://a.example.com"}, parseOrigins("https://a.example.com"))
	assert.Equal(t,
		[]string{"https://a.example.com", "https://b.example.com"},
		parseOrigins(" https://a.example.com , https://b.example.com "),
	)
	assert.Empty(t, parseOrigins(" , "))
}

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}
