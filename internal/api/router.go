package api

import (
	"github.com/gin-gonic/gin"

	"github.com/resonata-labs/resonata-api/internal/advisor"
	"github.com/resonata-labs/resonata-api/internal/api/handlers"
	apimiddleware "github.com/resonata-labs/resonata-api/internal/api/middleware"
	"github.com/resonata-labs/resonata-api/internal/config"
	"github.com/resonata-labs/resonata-api/internal/metrics"
	"github.com/resonata-labs/resonata-api/internal/store"
	"github.com/resonata-labs/resonata-api/internal/synth"
)

// Deps carries the shared services the routes need.
type Deps struct {
	Config    *config.Config
	Advisor   *advisor.Service
	Store     *store.Store
	Engine    *synth.Engine
	Fluid     *synth.FluidSynth
	CWMetrics *metrics.Client
	Version   string
}

func SetupRouter(deps Deps) *gin.Engine {
	router := gin.New()

	// Recovery middleware (must be first)
	router.Use(apimiddleware.RecoverWithSentry())

	// Sentry middleware for error tracking
	router.Use(apimiddleware.SentryMiddleware())

	// Request tracking and structured logging
	router.Use(apimiddleware.RequestTracking(deps.CWMetrics))

	// CORS middleware
	router.Use(apimiddleware.CORS())

	// Health check
	healthHandler := handlers.NewHealthHandler(deps.Store, deps.Engine, deps.Fluid)
	router.GET("/health", healthHandler.HealthCheck)
	router.GET("/api/health", healthHandler.HealthCheck)

	// Runtime metrics endpoint
	metricsHandler := handlers.NewMetricsHandler(deps.Version, deps.Store, deps.Engine, deps.Fluid)
	router.GET("/api/metrics", metricsHandler.GetMetrics)

	// Generation (rate limited)
	generationHandler := handlers.NewGenerationHandler(
		deps.Config, deps.Advisor, deps.Store, deps.Engine, deps.Fluid, deps.CWMetrics)
	router.POST("/api/generate", apimiddleware.RateLimit(deps.Store), generationHandler.Generate)

	// Artifacts
	artifactHandler := handlers.NewArtifactHandler(deps.Config)
	router.GET("/api/download/:id", artifactHandler.Download)
	router.GET("/api/audio/:id", artifactHandler.Audio)

	// Style profile
	router.GET("/api/style-profile", handlers.StyleProfile)

	// Analytics
	analyticsHandler := handlers.NewAnalyticsHandler(deps.Store)
	router.GET("/api/analytics", analyticsHandler.GetAnalytics)

	return router
}
