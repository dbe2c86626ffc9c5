package handlers

import (
	"encoding/json"
	"errors"
	"io"
	"math/rand"
	"net/http"
	"os"
	"path/filepath"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/resonata-labs/resonata-api/internal/advisor"
	"github.com/resonata-labs/resonata-api/internal/composer"
	"github.com/resonata-labs/resonata-api/internal/config"
	"github.com/resonata-labs/resonata-api/internal/logger"
	"github.com/resonata-labs/resonata-api/internal/metrics"
	"github.com/resonata-labs/resonata-api/internal/midi"
	"github.com/resonata-labs/resonata-api/internal/models"
	"github.com/resonata-labs/resonata-api/internal/store"
	"github.com/resonata-labs/resonata-api/internal/synth"
)

const (
	defaultMood       = "melancholic"
	defaultInnovation = 0.3
)

// GenerationRequest is the body of POST /api/generate
type GenerationRequest struct {
	Mood            string   `json:"mood"`
	InnovationLevel *float64 `json:"innovationLevel"`
	Seed            *int64   `json:"seed"`
}

// GenerationHandler composes a piece and renders its artifacts
type GenerationHandler struct {
	cfg       *config.Config
	advisor   *advisor.Service
	store     *store.Store
	engine    *synth.Engine
	fluid     *synth.FluidSynth
	cwMetrics *metrics.Client
}

// NewGenerationHandler creates a new generation handler
func NewGenerationHandler(
	cfg *config.Config,
	adv *advisor.Service,
	st *store.Store,
	engine *synth.Engine,
	fluid *synth.FluidSynth,
	cwMetrics *metrics.Client,
) *GenerationHandler {
	return &GenerationHandler{
		cfg:       cfg,
		advisor:   adv,
		store:     st,
		engine:    engine,
		fluid:     fluid,
		cwMetrics: cwMetrics,
	}
}

// Generate handles POST /api/generate
func (h *GenerationHandler) Generate(c *gin.Context) {
	startTime := time.Now()

	// An empty body is allowed; everything has a default.
	var req GenerationRequest
	if err := c.ShouldBindJSON(&req); err != nil && !errors.Is(err, io.EOF) {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"error":   "Invalid request body",
		})
		return
	}

	mood := req.Mood
	if mood == "" {
		mood = defaultMood
	}
	innovation := defaultInnovation
	if req.InnovationLevel != nil {
		innovation = *req.InnovationLevel
	}
	if innovation < 0 {
		innovation = 0
	}
	if innovation > 1 {
		innovation = 1
	}

	h.store.IncrStat("generate_requests")

	// Per-request randomness: an explicit seed makes the piece reproducible.
	seed := time.Now().UnixNano()
	if req.Seed != nil {
		seed = *req.Seed
	}
	rng := rand.New(rand.NewSource(seed))

	ctx := c.Request.Context()
	plan, planSource := h.advisor.GetPlan(ctx, mood, innovation)

	piece, err := composer.Compose(plan, innovation, rng)
	if err != nil {
		logger.Error("Composition failed", err, logger.Fields{
			"request_id": c.GetString("request_id"),
			"mood":       mood,
		})
		h.store.IncrStat("generate_failures")
		h.cwMetrics.RecordGenerationDuration(time.Since(startTime), false)
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error":   "Composition produced no events",
		})
		return
	}

	pieceID := uuid.New().String()
	timeline := piece.Timeline()

	if err := os.MkdirAll(h.cfg.ArtifactDir, 0o755); err != nil {
		logger.Error("Failed to create artifact directory", err, nil)
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error":   "Artifact storage unavailable",
		})
		return
	}

	// The MIDI file is always written; it doubles as the fluidsynth input.
	midiPath := filepath.Join(h.cfg.ArtifactDir, pieceID+".mid")
	if err := midi.WriteFile(midiPath, piece.Tempo, timeline); err != nil {
		logger.Error("Failed to write MIDI artifact", err, logger.Fields{"piece_id": pieceID})
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error":   "Failed to write MIDI artifact",
		})
		return
	}

	wavPath := filepath.Join(h.cfg.ArtifactDir, pieceID+".wav")
	audioAvailable := h.renderAudio(c, piece, midiPath, wavPath)

	metadata := models.PieceMetadata{
		ID:             pieceID,
		Key:            piece.Key.Name(),
		Tempo:          piece.Tempo,
		Mood:           mood,
		Innovation:     innovation,
		PlanSource:     planSource,
		Measures:       piece.Measures,
		TotalBeats:     piece.TotalBeats(),
		AudioAvailable: audioAvailable,
		CreatedAt:      time.Now().UTC(),
	}
	if metaJSON, err := json.Marshal(metadata); err == nil {
		h.store.PutPiece(pieceID, metaJSON)
	}
	h.store.IncrStat("pieces_generated")

	h.cwMetrics.RecordGenerationDuration(time.Since(startTime), true)

	logger.Info("Piece generated", logger.Fields{
		"request_id":  c.GetString("request_id"),
		"piece_id":    pieceID,
		"mood":        mood,
		"key":         metadata.Key,
		"plan_source": planSource,
		"duration_ms": time.Since(startTime).Milliseconds(),
	})

	resp := gin.H{
		"success":        true,
		"pieceId":        pieceID,
		"midiPath":       "/api/download/" + pieceID,
		"audioAvailable": audioAvailable,
		"key":            metadata.Key,
		"tempo":          metadata.Tempo,
		"plan_source":    planSource,
	}
	if audioAvailable {
		resp["audioPath"] = "/api/audio/" + pieceID
	}
	c.JSON(http.StatusOK, resp)
}

// renderAudio tries the in-process additive synthesizer first, then the
// external fluidsynth path. Returns whether a WAV was produced.
func (h *GenerationHandler) renderAudio(c *gin.Context, piece *composer.Piece, midiPath, wavPath string) bool {
	samples, err := h.engine.RenderPCM(piece)
	if err == nil {
		if err := synth.WriteWAVFile(wavPath, samples, h.engine.SampleRate()); err == nil {
			h.recordSynthesis("additive")
			return true
		}
		logger.Warn("Failed to write WAV artifact", logger.Fields{"error": err.Error()})
	} else {
		logger.Warn("Additive synthesis unavailable", logger.Fields{"error": err.Error()})
	}

	if h.fluid.Available() {
		err := h.fluid.Render(c.Request.Context(), midiPath, wavPath)
		if err == nil {
			h.recordSynthesis("fluidsynth")
			return true
		}
		logger.Warn("Fluidsynth rendering failed", logger.Fields{"error": err.Error()})
	}

	return false
}

var synthMetrics = metrics.NewSentryMetrics()

// recordSynthesis reports which rendering path produced the audio, to both
// Sentry and CloudWatch.
func (h *GenerationHandler) recordSynthesis(path string) {
	synthMetrics.RecordSynthesisPath(path, true)
	h.cwMetrics.RecordSynthesisPath(path)
}
