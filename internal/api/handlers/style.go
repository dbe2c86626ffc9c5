package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/resonata-labs/resonata-api/internal/composer"
)

// StyleProfile handles GET /api/style-profile
func StyleProfile(c *gin.Context) {
	c.JSON(http.StatusOK, composer.DefaultStyleProfile())
}
