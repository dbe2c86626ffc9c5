package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/resonata-labs/resonata-api/internal/store"
)

// AnalyticsHandler exposes usage counters from the embedded store
type AnalyticsHandler struct {
	store *store.Store
}

// NewAnalyticsHandler creates a new analytics handler
func NewAnalyticsHandler(st *store.Store) *AnalyticsHandler {
	return &AnalyticsHandler{store: st}
}

// GetAnalytics handles GET /api/analytics
func (h *AnalyticsHandler) GetAnalytics(c *gin.Context) {
	if !h.store.Available() {
		c.JSON(http.StatusServiceUnavailable, gin.H{
			"success": false,
			"error":   "Analytics unavailable without persistent store",
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"stats":   h.store.Stats(),
	})
}
