package handlers

import (
	"context"
	"errors"
	"io"
	"net/http"
	"time"

	"bookassist/middleware"
	"bookassist/models"
	ai "bookassist/services/intelligence"
	"bookassist/utils"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

const (
	msgInvalidBody    = "Invalid JSON body"
	msgMissingMessage = "Message is required"
)

// AssistantHandler serves POST /api/ai/assistant.
type AssistantHandler struct {
	Assistant    ai.AssistantService
	MaxServices  int
	MaxBodyBytes int64
	Logger       *zap.Logger
}

func NewAssistantHandler(svc ai.AssistantService, maxServices int, maxBodyBytes int64, logger *zap.Logger) *AssistantHandler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &AssistantHandler{
		Assistant:    svc,
		MaxServices:  maxServices,
		MaxBodyBytes: maxBodyBytes,
		Logger:       logger,
	}
}

// HandleAssistantRequest validates the body and always answers 200 with a
// reply once validation passes; provider failures are absorbed upstream.
func (h *AssistantHandler) HandleAssistantRequest(c *gin.Context) {
	start := time.Now()

	var body io.Reader = c.Request.Body
	if h.MaxBodyBytes > 0 {
		body = http.MaxBytesReader(c.Writer, c.Request.Body, h.MaxBodyBytes)
	}
	raw, err := io.ReadAll(body)
	if err != nil {
		h.Logger.Warn("HandleAssistantRequest: failed to read body", zap.Error(err))
		utils.JSONError(c, http.StatusBadRequest, msgInvalidBody)
		return
	}

	req, err := ai.ParseRequest(raw, h.MaxServices)
	switch {
	case errors.Is(err, ai.ErrInvalidBody):
		utils.JSONError(c, http.StatusBadRequest, msgInvalidBody)
		return
	case errors.Is(err, ai.ErrMissingMessage):
		utils.JSONError(c, http.StatusBadRequest, msgMissingMessage)
		return
	case err != nil:
		h.Logger.Error("HandleAssistantRequest: unexpected parse error", zap.Error(err))
		utils.JSONError(c, http.StatusBadRequest, msgInvalidBody)
		return
	}

	// The provider call is bounded by its own deadline only, not by the
	// caller hanging up.
	ctx := context.WithoutCancel(c.Request.Context())
	reply := h.Assistant.Suggest(ctx, req)

	h.Logger.Info("assistant reply",
		zap.String("origin", string(reply.Origin)),
		zap.String("reason", reply.Reason),
		zap.String("client", middleware.GetClientID(c)),
		zap.String("request_id", middleware.GetRequestID(c.Request.Context())),
		zap.Int("services", len(req.Services)),
		zap.Duration("latency", time.Since(start)),
	)
	c.JSON(http.StatusOK, models.SuggestionResponse{Reply: reply.Text})
}
