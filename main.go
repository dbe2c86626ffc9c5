package main

import (
	"context"
	"log"
	"time"

	"github.com/getsentry/sentry-go"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"

	"github.com/resonata-labs/resonata-api/internal/advisor"
	"github.com/resonata-labs/resonata-api/internal/api"
	"github.com/resonata-labs/resonata-api/internal/config"
	"github.com/resonata-labs/resonata-api/internal/llm"
	"github.com/resonata-labs/resonata-api/internal/metrics"
	"github.com/resonata-labs/resonata-api/internal/observability"
	"github.com/resonata-labs/resonata-api/internal/store"
	"github.com/resonata-labs/resonata-api/internal/synth"
)

const (
	sentryFlushTimeout    = 2 * time.Second
	environmentProduction = "production"
)

// releaseVersion is set via ldflags during build
var releaseVersion = "dev"

// GetVersion returns the current release version
func GetVersion() string {
	return releaseVersion
}

func main() {
	// Load environment variables
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using environment variables")
	}

	// Load configuration
	cfg := config.Load()

	// Initialize Sentry
	if cfg.SentryDSN != "" {
		if err := sentry.Init(sentry.ClientOptions{
			Dsn:              cfg.SentryDSN,
			Environment:      cfg.Environment,
			Release:          "resonata-api@" + releaseVersion,
			EnableTracing:    true,
			TracesSampleRate: 1.0, // 100% sampling for now, adjust based on volume
			EnableLogs:       true,
			Debug:            cfg.Environment != environmentProduction,
			BeforeSend: func(event *sentry.Event, _ *sentry.EventHint) *sentry.Event {
				// Filter out sensitive data
				if event.Request != nil {
					event.Request.Headers = filterSensitiveHeaders(event.Request.Headers)
				}
				return event
			},
		}); err != nil {
			log.Printf("Failed to initialize Sentry: %v", err)
		} else {
			log.Printf("✅ Sentry initialized (environment: %s, release: %s)", cfg.Environment, releaseVersion)
			// Flush on shutdown
			defer sentry.Flush(sentryFlushTimeout)
		}
	} else {
		log.Println("⚠️  Sentry not configured (SENTRY_DSN not set)")
	}

	ctx := context.Background()

	// Open the embedded store. It is optional: without it caching, rate
	// limiting, and analytics degrade gracefully.
	var st *store.Store
	if cfg.StoreDir != "" {
		opened, err := store.Open(cfg.StoreDir)
		if err != nil {
			sentry.CaptureException(err)
			log.Printf("⚠️  Store unavailable, continuing without persistence: %v", err)
		} else {
			st = opened
			defer st.Close()
			log.Printf("✅ Store opened at %s", cfg.StoreDir)
		}
	} else {
		log.Println("⚠️  Store not configured (STORE_DIR not set)")
	}

	// Initialize Langfuse tracing
	observability.InitializeLangfuse(ctx, cfg)

	// CloudWatch metrics (production only)
	cwMetrics, err := metrics.NewClient(ctx, cfg.Environment)
	if err != nil {
		log.Printf("⚠️  CloudWatch metrics unavailable: %v", err)
	}

	// Advisory and synthesis services
	factory := llm.NewProviderFactory(cfg.MistralAPIKey, cfg.GeminiAPIKey)
	advisorService := advisor.NewService(factory, st, cfg, cwMetrics)
	engine := synth.NewEngine(cfg.SampleRate)
	fluid := synth.NewFluidSynth(cfg.SoundfontPath)
	if fluid.Available() {
		log.Println("✅ Fluidsynth rendering path available")
	}

	// Set Gin mode
	if cfg.Environment == environmentProduction {
		gin.SetMode(gin.ReleaseMode)
	}

	// Initialize router
	router := api.SetupRouter(api.Deps{
		Config:    cfg,
		Advisor:   advisorService,
		Store:     st,
		Engine:    engine,
		Fluid:     fluid,
		CWMetrics: cwMetrics,
		Version:   GetVersion(),
	})

	log.Printf("🚀 Starting server on port %s", cfg.Port)
	if err := router.Run(":" + cfg.Port); err != nil {
		sentry.CaptureException(err)
		log.Fatal("Failed to start server:", err)
	}
}

func filterSensitiveHeaders(headers map[string]string) map[string]string {
	filtered := make(map[string]string)
	sensitiveKeys := map[string]bool{
		"authorization": true,
		"cookie":        true,
		"x-api-key":     true,
	}

	for k, v := range headers {
		if sensitiveKeys[k] {
			filtered[k] = "[REDACTED]"
		} else {
			filtered[k] = v
		}
	}
	return filtered
}
