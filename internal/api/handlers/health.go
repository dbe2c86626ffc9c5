package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/resonata-labs/resonata-api/internal/store"
	"github.com/resonata-labs/resonata-api/internal/synth"
)

// HealthHandler reports service and capability status
type HealthHandler struct {
	store  *store.Store
	engine *synth.Engine
	fluid  *synth.FluidSynth
}

// NewHealthHandler creates a new health handler
func NewHealthHandler(st *store.Store, engine *synth.Engine, fluid *synth.FluidSynth) *HealthHandler {
	return &HealthHandler{store: st, engine: engine, fluid: fluid}
}

// HealthCheck returns the health status of the API
func (h *HealthHandler) HealthCheck(c *gin.Context) {
	storeStatus := "disabled"
	if h.store.Available() {
		storeStatus = "available"
	}

	c.JSON(http.StatusOK, gin.H{
		"status": "healthy",
		"synthesis": gin.H{
			"additive":   h.engine.Available(),
			"fluidsynth": h.fluid.Available(),
		},
		"store": gin.H{
			"status": storeStatus,
		},
	})
}
