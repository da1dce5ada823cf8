package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/corpindex/company-search/services"
)

// RequestSizeLimitMiddleware limits request body size to prevent memory
// exhaustion from oversized bulk payloads.
func RequestSizeLimitMiddleware(maxSize int64) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, maxSize)
		c.Next()
	}
}

// EngineAvailabilityMiddleware rejects requests with 503 when no engine is
// wired, so a half-initialized server never reaches a handler.
func EngineAvailabilityMiddleware(engine services.Engine) gin.HandlerFunc {
	return func(c *gin.Context) {
		if engine == nil {
			SendError(c, http.StatusServiceUnavailable, ErrorCodeEngineUnavailable,
				"Search engine is not available")
			c.Abort()
			return
		}
		c.Next()
	}
}

// CORSMiddleware adds CORS headers for cross-origin requests.
func CORSMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Header("Access-Control-Allow-Origin", "*")
		c.Header("Access-Control-Allow-Methods", "GET, POST, PATCH, DELETE, OPTIONS")
		c.Header("Access-Control-Allow-Headers", "Content-Type, Authorization, "+maxResultsHeader)

		if c.Request.Method == http.MethodOptions {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}
		c.Next()
	}
}
