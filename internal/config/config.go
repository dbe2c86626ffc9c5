package config

import (
	"os"
	"strconv"
)

// Config holds the application configuration
// Note: This is a stateless configuration - no database or auth secrets needed.
// Generated artifacts live on local disk and the embedded store is optional.
type Config struct {
	// Environment
	Environment string
	Port        string

	// LLM API Keys
	MistralAPIKey string // Mistral API key for structural-plan advisory
	GeminiAPIKey  string // Google Gemini API key (alternate advisory provider)

	// Advisory provider selection
	AdvisorProvider string // "mistral" or "gemini"

	// Storage
	StoreDir    string // embedded key-value store directory; empty disables persistence
	ArtifactDir string // where generated MIDI/WAV files are written

	// Synthesis
	SampleRate    int    // output sample rate for the additive synthesizer
	SoundfontPath string // optional soundfont for the external fluidsynth path

	// Observability
	SentryDSN         string // Sentry DSN for error tracking
	LangfusePublicKey string // Langfuse public key
	LangfuseSecretKey string // Langfuse secret key
	LangfuseHost      string // Langfuse host URL (cloud or self-hosted)
	LangfuseEnabled   bool   // Feature flag for Langfuse
}

func Load() *Config {
	return &Config{
		Environment:       getEnv("ENVIRONMENT", "development"),
		Port:              getEnv("PORT", "8080"),
		MistralAPIKey:     getEnv("MISTRAL_API_KEY", ""),
		GeminiAPIKey:      getEnv("GEMINI_API_KEY", ""),
		AdvisorProvider:   getEnv("ADVISOR_PROVIDER", "mistral"),
		StoreDir:          getEnv("STORE_DIR", ""),
		ArtifactDir:       getEnv("ARTIFACT_DIR", "generated"),
		SampleRate:        getEnvInt("SAMPLE_RATE", 44100),
		SoundfontPath:     getEnv("SOUNDFONT_PATH", ""),
		SentryDSN:         getEnv("SENTRY_DSN", ""),
		LangfusePublicKey: getEnv("LANGFUSE_PUBLIC_KEY", ""),
		LangfuseSecretKey: getEnv("LANGFUSE_SECRET_KEY", ""),
		LangfuseHost:      getEnv("LANGFUSE_HOST", "https://cloud.langfuse.com"),
		LangfuseEnabled:   getEnv("LANGFUSE_ENABLED", "false") == "true",
	}
}

func getEnv(key, defaultValue string) string {
	value := os.Getenv(key)
	if value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if n, err := strconv.Atoi(value); err == nil && n > 0 {
			return n
		}
	}
	return defaultValue
}

// IsProduction returns true when running with production telemetry enabled
func (c *Config) IsProduction() bool {
	return c.Environment == "production"
}
