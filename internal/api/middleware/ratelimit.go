package middleware

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/resonata-labs/resonata-api/internal/logger"
	"github.com/resonata-labs/resonata-api/internal/store"
)

const (
	generateRateLimit  = 20
	generateRateWindow = time.Minute
)

// RateLimit enforces a fixed-window per-IP limit backed by the embedded
// store. Fails open: without a store every request passes.
func RateLimit(st *store.Store) gin.HandlerFunc {
	return func(c *gin.Context) {
		if !st.Allow(c.ClientIP(), generateRateLimit, generateRateWindow) {
			logger.Warn("Rate limit exceeded", logger.Fields{
				"request_id": c.GetString("request_id"),
				"client_ip":  c.ClientIP(),
			})
			c.JSON(http.StatusTooManyRequests, gin.H{
				"success": false,
				"error":   "Rate limit exceeded. Please wait before generating again.",
			})
			c.Abort()
			return
		}
		c.Next()
	}
}
