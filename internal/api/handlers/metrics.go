package handlers

import (
	"fmt"
	"net/http"
	"runtime"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/resonata-labs/resonata-api/internal/store"
	"github.com/resonata-labs/resonata-api/internal/synth"
)

type MetricsHandler struct {
	startTime time.Time
	version   string
	store     *store.Store
	engine    *synth.Engine
	fluid     *synth.FluidSynth
}

func NewMetricsHandler(version string, st *store.Store, engine *synth.Engine, fluid *synth.FluidSynth) *MetricsHandler {
	return &MetricsHandler{
		startTime: time.Now(),
		version:   version,
		store:     st,
		engine:    engine,
		fluid:     fluid,
	}
}

const (
	secondsPerMinute = 60
	secondsPerHour   = 3600
)

// formatUptime formats the uptime duration with seconds rounded to 2 decimal places
func formatUptime(d time.Duration) string {
	hours := int(d.Hours())
	minutes := int(d.Minutes()) % secondsPerMinute
	seconds := d.Seconds() - float64(hours*secondsPerHour) - float64(minutes*secondsPerMinute)

	if hours > 0 {
		return fmt.Sprintf("%dh%dm%.2fs", hours, minutes, seconds)
	}
	if minutes > 0 {
		return fmt.Sprintf("%dm%.2fs", minutes, seconds)
	}
	return fmt.Sprintf("%.2fs", seconds)
}

type MetricsResponse struct {
	Status    string         `json:"status"`
	Uptime    string         `json:"uptime"`
	Timestamp string         `json:"timestamp"`
	Version   string         `json:"version"`
	StartTime string         `json:"start_time"`
	System    SystemMetrics  `json:"system"`
	Service   ServiceMetrics `json:"service"`
}

// ServiceMetrics reports the rendering and persistence capabilities this
// instance is running with.
type ServiceMetrics struct {
	AdditiveSynth  bool `json:"additive_synth"`
	Fluidsynth     bool `json:"fluidsynth"`
	SampleRate     int  `json:"sample_rate"`
	StoreAvailable bool `json:"store_available"`
}

type SystemMetrics struct {
	GoVersion    string `json:"go_version"`
	NumGoroutine int    `json:"num_goroutine"`
	MemAllocMB   uint64 `json:"mem_alloc_mb"`
	MemTotalMB   uint64 `json:"mem_total_mb"`
	NumGC        uint32 `json:"num_gc"`
}

const (
	bytesToMB = 1024 * 1024
)

func (h *MetricsHandler) GetMetrics(c *gin.Context) {
	var m runtime.MemStats
	runtime.ReadMemStats(&m)

	uptime := time.Since(h.startTime)

	metrics := MetricsResponse{
		Status:    "healthy",
		Uptime:    formatUptime(uptime),
		Timestamp: time.Now().UTC().Format(time.RFC3339),
		Version:   h.version,
		StartTime: h.startTime.UTC().Format(time.RFC3339),
		System: SystemMetrics{
			GoVersion:    runtime.Version(),
			NumGoroutine: runtime.NumGoroutine(),
			MemAllocMB:   m.Alloc / bytesToMB,
			MemTotalMB:   m.TotalAlloc / bytesToMB,
			NumGC:        m.NumGC,
		},
		Service: ServiceMetrics{
			AdditiveSynth:  h.engine.Available(),
			Fluidsynth:     h.fluid.Available(),
			SampleRate:     h.engine.SampleRate(),
			StoreAvailable: h.store.Available(),
		},
	}

	c.JSON(http.StatusOK, metrics)
}
