package handlers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/resonata-labs/resonata-api/internal/store"
	"github.com/resonata-labs/resonata-api/internal/synth"
)

func get(t *testing.T, r *gin.Engine, path string) (int, map[string]any) {
	t.Helper()

	req := httptest.NewRequest(http.MethodGet, path, nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	var resp map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	return w.Code, resp
}

func TestHealthCheckReportsCapabilities(t *testing.T) {
	gin.SetMode(gin.TestMode)

	h := NewHealthHandler(nil, synth.NewEngine(4000), nil)
	r := gin.New()
	r.GET("/health", h.HealthCheck)

	code, resp := get(t, r, "/health")
	require.Equal(t, http.StatusOK, code)
	assert.Equal(t, "healthy", resp["status"])

	synthesis := resp["synthesis"].(map[string]any)
	assert.Equal(t, true, synthesis["additive"])
	assert.Equal(t, false, synthesis["fluidsynth"])

	st := resp["store"].(map[string]any)
	assert.Equal(t, "disabled", st["status"])
}

func TestMetricsReportsServiceCapabilities(t *testing.T) {
	gin.SetMode(gin.TestMode)

	h := NewMetricsHandler("dev", nil, synth.NewEngine(4000), nil)
	r := gin.New()
	r.GET("/api/metrics", h.GetMetrics)

	code, resp := get(t, r, "/api/metrics")
	require.Equal(t, http.StatusOK, code)
	assert.Equal(t, "dev", resp["version"])

	service := resp["service"].(map[string]any)
	assert.Equal(t, true, service["additive_synth"])
	assert.Equal(t, false, service["fluidsynth"])
	assert.Equal(t, float64(4000), service["sample_rate"])
	assert.Equal(t, false, service["store_available"])
}

func TestStyleProfileEndpoint(t *testing.T) {
	gin.SetMode(gin.TestMode)

	r := gin.New()
	r.GET("/api/style-profile", StyleProfile)

	code, resp := get(t, r, "/api/style-profile")
	require.Equal(t, http.StatusOK, code)
	assert.Equal(t, "Chopin", resp["composer"])
	assert.Contains(t, resp["typicalKeys"], "D minor")
	assert.NotEmpty(t, resp["harmonicMovements"])
}

func TestAnalyticsWithoutStore(t *testing.T) {
	gin.SetMode(gin.TestMode)

	r := gin.New()
	r.GET("/api/analytics", NewAnalyticsHandler(nil).GetAnalytics)

	code, resp := get(t, r, "/api/analytics")
	assert.Equal(t, http.StatusServiceUnavailable, code)
	assert.Equal(t, false, resp["success"])
}

func TestAnalyticsWithStore(t *testing.T) {
	gin.SetMode(gin.TestMode)

	st, err := store.OpenInMemory()
	require.NoError(t, err)
	t.Cleanup(func() { _ = st.Close() })
	st.IncrStat("generate_requests")

	r := gin.New()
	r.GET("/api/analytics", NewAnalyticsHandler(st).GetAnalytics)

	code, resp := get(t, r, "/api/analytics")
	require.Equal(t, http.StatusOK, code)
	assert.Equal(t, true, resp["success"])

	stats := resp["stats"].(map[string]any)
	assert.Equal(t, float64(1), stats["generate_requests"])
}
