package metrics

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func scrape(t *testing.T, provider *Provider) string {
	t.Helper()

	recorder := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/metrics", nil)
	provider.Handler().ServeHTTP(recorder, req)
	require.Equal(t, http.StatusOK, recorder.Code)

	body, err := io.ReadAll(recorder.Body)
	require.NoError(t, err)
	return string(body)
}

func TestNewBusinessMetrics(t *testing.T) {
	provider, err := NewProvider("rsvp")
	require.NoError(t, err)

	businessMetrics, err := NewBusinessMetrics(provider.MeterProvider(), "rsvp")
	require.NoError(t, err)
	assert.NotNil(t, businessMetrics)
}

func TestBusinessMetrics_RecordOperation(t *testing.T) {
	provider, err := NewProvider("rsvp")
	require.NoError(t, err)

	businessMetrics, err := NewBusinessMetrics(provider.MeterProvider(), "rsvp")
	require.NoError(t, err)

	ctx := context.Background()
	businessMetrics.RecordOperation(ctx, "registration", "register", "success")
	businessMetrics.RecordOperation(ctx, "registration", "register", "error")

	body := scrape(t, provider)
	assert.Contains(t, body, "rsvp_operations_total")
	assert.Contains(t, body, `operation="register"`)
}

func TestBusinessMetrics_RecordDuration(t *testing.T) {
	provider, err := NewProvider("rsvp")
	require.NoError(t, err)

	businessMetrics, err := NewBusinessMetrics(provider.MeterProvider(), "rsvp")
	require.NoError(t, err)

	businessMetrics.RecordDuration(context.Background(),
		"registration", "update_by_token", 42*time.Millisecond, "success")

	body := scrape(t, provider)
	assert.Contains(t, body, "rsvp_operation_duration_seconds")
}

func TestBusinessMetrics_RecordRateLimitDecision(t *testing.T) {
	provider, err := NewProvider("rsvp")
	require.NoError(t, err)

	businessMetrics, err := NewBusinessMetrics(provider.MeterProvider(), "rsvp")
	require.NoError(t, err)

	ctx := context.Background()
	businessMetrics.RecordRateLimitDecision(ctx, "create", true)
	businessMetrics.RecordRateLimitDecision(ctx, "create", false)

	body := scrape(t, provider)
	assert.Contains(t, body, "rsvp_rate_limit_decisions_total")
	assert.Contains(t, body, `decision="allowed"`)
	assert.Contains(t, body, `decision="denied"`)
}

func TestNoOpBusinessMetrics(t *testing.T) {
	businessMetrics := NewNoOpBusinessMetrics()
	ctx := context.Background()

	// All recorders are safe no-ops.
	businessMetrics.RecordOperation(ctx, "registration", "register", "success")
	businessMetrics.RecordDuration(ctx, "registration", "register", time.Second, "success")
	businessMetrics.RecordRateLimitDecision(ctx, "create", false)
}
