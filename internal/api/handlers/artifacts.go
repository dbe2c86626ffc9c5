package handlers

import (
	"net/http"
	"os"
	"path/filepath"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/resonata-labs/resonata-api/internal/config"
)

// ArtifactHandler serves generated MIDI and WAV files
type ArtifactHandler struct {
	cfg *config.Config
}

// NewArtifactHandler creates a new artifact handler
func NewArtifactHandler(cfg *config.Config) *ArtifactHandler {
	return &ArtifactHandler{cfg: cfg}
}

// Download handles GET /api/download/:id (MIDI)
func (h *ArtifactHandler) Download(c *gin.Context) {
	h.serve(c, ".mid", "audio/midi")
}

// Audio handles GET /api/audio/:id (WAV)
func (h *ArtifactHandler) Audio(c *gin.Context) {
	h.serve(c, ".wav", "audio/wav")
}

// serve validates the piece ID and streams the artifact. The UUID parse
// doubles as path sanitization: nothing outside the artifact dir is
// reachable.
func (h *ArtifactHandler) serve(c *gin.Context, ext, contentType string) {
	id := c.Param("id")
	if _, err := uuid.Parse(id); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"error":   "Invalid piece ID",
		})
		return
	}

	path := filepath.Join(h.cfg.ArtifactDir, id+ext)
	if _, err := os.Stat(path); err != nil {
		c.JSON(http.StatusNotFound, gin.H{
			"success": false,
			"error":   "Artifact not found",
		})
		return
	}

	c.Header("Content-Type", contentType)
	c.Header("Content-Disposition", "attachment; filename="+id+ext)
	c.File(path)
}
