package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv("ENVIRONMENT", "")
	t.Setenv("PORT", "")
	t.Setenv("ADVISOR_PROVIDER", "")
	t.Setenv("ARTIFACT_DIR", "")
	t.Setenv("SAMPLE_RATE", "")
	t.Setenv("STORE_DIR", "")

	cfg := Load()
	assert.Equal(t, "development", cfg.Environment)
	assert.Equal(t, "8080", cfg.Port)
	assert.Equal(t, "mistral", cfg.AdvisorProvider)
	assert.Equal(t, "generated", cfg.ArtifactDir)
	assert.Equal(t, 44100, cfg.SampleRate)
	assert.Empty(t, cfg.StoreDir)
	assert.False(t, cfg.IsProduction())
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv("ENVIRONMENT", "production")
	t.Setenv("SAMPLE_RATE", "22050")
	t.Setenv("ADVISOR_PROVIDER", "gemini")

	cfg := Load()
	assert.True(t, cfg.IsProduction())
	assert.Equal(t, 22050, cfg.SampleRate)
	assert.Equal(t, "gemini", cfg.AdvisorProvider)
}

func TestLoadRejectsBadSampleRate(t *testing.T) {
	t.Setenv("SAMPLE_RATE", "not-a-number")
	assert.Equal(t, 44100, Load().SampleRate)

	t.Setenv("SAMPLE_RATE", "-1")
	assert.Equal(t, 44100, Load().SampleRate)
}
