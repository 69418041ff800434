package middleware

import (
	"net/http"

	"bookassist/services/ratelimit"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

const RateLimitMessage = "Rate limit exceeded. Try again soon."

// AssistantRateLimit rejects clients that are over quota before the body is read.
func AssistantRateLimit(limiter *ratelimit.Limiter, logger *zap.Logger) gin.HandlerFunc {
	if logger == nil {
		logger = zap.NewNop()
	}
	return func(c *gin.Context) {
		id := ClientIdentity(c)
		c.Set(clientIDKey, id)
		if !limiter.Allow(id) {
			logger.Warn("Rate limit exceeded",
				zap.String("client", id),
				zap.String("request_id", GetRequestID(c.Request.Context())),
			)
			c.AbortWithStatusJSON(http.StatusTooManyRequests, gin.H{"error": RateLimitMessage})
			return
		}
		c.Next()
	}
}
