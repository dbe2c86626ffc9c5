package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/resonata-labs/resonata-api/internal/advisor"
	"github.com/resonata-labs/resonata-api/internal/config"
	"github.com/resonata-labs/resonata-api/internal/llm"
	"github.com/resonata-labs/resonata-api/internal/metrics"
	"github.com/resonata-labs/resonata-api/internal/synth"
)

// testRouter wires the generation and artifact handlers against a temp
// artifact dir, no store, and no advisory provider, so every plan comes
// from the built-in fallback. CloudWatch runs in its disabled mode so the
// metric call sites are exercised without AWS.
func testRouter(t *testing.T) (*gin.Engine, *config.Config) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	cfg := &config.Config{
		ArtifactDir:     t.TempDir(),
		SampleRate:      4000,
		AdvisorProvider: "mistral",
	}
	cwMetrics, err := metrics.NewClient(context.Background(), "test")
	require.NoError(t, err)

	adv := advisor.NewService(llm.NewProviderFactory("", ""), nil, cfg, cwMetrics)
	engine := synth.NewEngine(cfg.SampleRate)

	gen := NewGenerationHandler(cfg, adv, nil, engine, nil, cwMetrics)
	art := NewArtifactHandler(cfg)

	r := gin.New()
	r.POST("/api/generate", gen.Generate)
	r.GET("/api/download/:id", art.Download)
	r.GET("/api/audio/:id", art.Audio)
	return r, cfg
}

func doGenerate(t *testing.T, r *gin.Engine, body string) (int, map[string]any) {
	t.Helper()

	var reader *bytes.Reader
	if body == "" {
		reader = bytes.NewReader(nil)
	} else {
		reader = bytes.NewReader([]byte(body))
	}
	req := httptest.NewRequest(http.MethodPost, "/api/generate", reader)
	req.Header.Set("Content-Type", "application/json")

	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	var resp map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	return w.Code, resp
}

func TestGenerateProducesArtifacts(t *testing.T) {
	r, cfg := testRouter(t)

	code, resp := doGenerate(t, r, `{"mood":"calm","innovationLevel":0.4,"seed":42}`)
	require.Equal(t, http.StatusOK, code)
	assert.Equal(t, true, resp["success"])

	pieceID, ok := resp["pieceId"].(string)
	require.True(t, ok)
	_, err := uuid.Parse(pieceID)
	require.NoError(t, err)

	// No provider keys, so the built-in plan decides key and tempo.
	assert.Equal(t, "fallback", resp["plan_source"])
	assert.Equal(t, "D minor", resp["key"])
	assert.Equal(t, float64(70), resp["tempo"])

	assert.Equal(t, "/api/download/"+pieceID, resp["midiPath"])
	assert.Equal(t, true, resp["audioAvailable"])
	assert.Equal(t, "/api/audio/"+pieceID, resp["audioPath"])

	_, err = os.Stat(filepath.Join(cfg.ArtifactDir, pieceID+".mid"))
	assert.NoError(t, err)
	_, err = os.Stat(filepath.Join(cfg.ArtifactDir, pieceID+".wav"))
	assert.NoError(t, err)
}

func TestGenerateEmptyBodyUsesDefaults(t *testing.T) {
	r, _ := testRouter(t)

	code, resp := doGenerate(t, r, "")
	require.Equal(t, http.StatusOK, code)
	assert.Equal(t, true, resp["success"])
}

func TestGenerateRejectsMalformedBody(t *testing.T) {
	r, _ := testRouter(t)

	code, resp := doGenerate(t, r, `{"mood":`)
	assert.Equal(t, http.StatusBadRequest, code)
	assert.Equal(t, false, resp["success"])
}

func TestGenerateSeedIsReproducible(t *testing.T) {
	r, cfg := testRouter(t)

	_, first := doGenerate(t, r, `{"seed":7}`)
	_, second := doGenerate(t, r, `{"seed":7}`)

	firstMIDI, err := os.ReadFile(filepath.Join(cfg.ArtifactDir, first["pieceId"].(string)+".mid"))
	require.NoError(t, err)
	secondMIDI, err := os.ReadFile(filepath.Join(cfg.ArtifactDir, second["pieceId"].(string)+".mid"))
	require.NoError(t, err)

	assert.Equal(t, firstMIDI, secondMIDI)
}

func TestDownloadValidatesPieceID(t *testing.T) {
	r, _ := testRouter(t)

	req := httptest.NewRequest(http.MethodGet, "/api/download/not-a-uuid", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestDownloadMissingArtifact(t *testing.T) {
	r, _ := testRouter(t)

	req := httptest.NewRequest(http.MethodGet, "/api/download/"+uuid.New().String(), nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestDownloadServesMIDI(t *testing.T) {
	r, _ := testRouter(t)

	_, resp := doGenerate(t, r, `{"seed":3}`)
	pieceID := resp["pieceId"].(string)

	req := httptest.NewRequest(http.MethodGet, "/api/download/"+pieceID, nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "audio/midi", w.Header().Get("Content-Type"))
	assert.Equal(t, "MThd", string(w.Body.Bytes()[0:4]))
}

func TestAudioServesWAV(t *testing.T) {
	r, _ := testRouter(t)

	_, resp := doGenerate(t, r, `{"seed":3}`)
	pieceID := resp["pieceId"].(string)

	req := httptest.NewRequest(http.MethodGet, "/api/audio/"+pieceID, nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "audio/wav", w.Header().Get("Content-Type"))
	assert.Equal(t, "RIFF", string(w.Body.Bytes()[0:4]))
}
