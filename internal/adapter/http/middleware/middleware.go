package middleware

import (
	"crypto/subtle"
	"net/http"
	"time"

	"safenode/pkg/apperror"
	"safenode/pkg/response"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
)

// BearerAuth guards the internal ops routes with a static operator token.
// The comparison is constant-time. An empty configured token locks the
// routes entirely, so a blank credential can never match a blank config.
func BearerAuth(token string, log zerolog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		if token == "" {
			response.Error(c, apperror.ErrUnauthorized())
			c.Abort()
			return
		}
		authHeader := c.GetHeader("Authorization")
		if len(authHeader) < 8 || authHeader[:7] != "Bearer " {
			response.Error(c, apperror.ErrUnauthorized())
			c.Abort()
			return
		}
		presented := authHeader[7:]
		if subtle.ConstantTimeCompare([]byte(presented), []byte(token)) != 1 {
			log.Warn().Str("client_ip", c.ClientIP()).Msg("rejected ops request with bad token")
			response.Error(c, apperror.ErrUnauthorized())
			c.Abort()
			return
		}
		c.Next()
	}
}

// RequestLogger creates a middleware that logs every HTTP request.
func RequestLogger(log zerolog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		latency := time.Since(start)
		status := c.Writer.Status()

		event := log.Info()
		if status >= http.StatusInternalServerError {
			event = log.Error()
		} else if status >= http.StatusBadRequest {
			event = log.Warn()
		}

		event.
			Str("method", c.Request.Method).
			Str("path", c.Request.URL.Path).
			Int("status", status).
			Dur("latency", latency).
			Str("client_ip", c.ClientIP()).
			Msg("http request")
	}
}

// Recovery creates a panic recovery middleware.
func Recovery(log zerolog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		defer func() {
			if r := recover(); r != nil {
				log.Error().Interface("panic", r).Str("path", c.Request.URL.Path).Msg("panic recovered")
				c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{
					"error_code": "SYS_001",
					"message":    "Internal server error",
				})
			}
		}()
		c.Next()
	}
}
