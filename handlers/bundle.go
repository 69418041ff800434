// File: handlers/bundle.go
package handlers

import (
	"bookassist/services/ratelimit"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// HandlerBundle groups endpoint handlers and the state their routes need.
type HandlerBundle struct {
	Logger *zap.Logger

	// Per-client limiter guarding the assistant endpoint.
	AssistantLimiter *ratelimit.Limiter

	// AI endpoints
	AssistantHandler gin.HandlerFunc
}
