// File: services/intelligence/interface.go
package ai

import (
	"context"
	"errors"
	"strings"
	"time"

	"bookassist/models"

	"go.uber.org/zap"
	"golang.org/x/time/rate"
)

const DefaultTimeout = 20 * time.Second

// Origin tells where a reply came from.
type Origin string

const (
	OriginUpstream Origin = "upstream"
	OriginLocal    Origin = "local"
)

// Reasons for answering locally.
const (
	ReasonNoKey         = "no_key"
	ReasonThrottled     = "throttled"
	ReasonUpstreamError = "upstream_error"
	ReasonTimeout       = "timeout"
	ReasonEmptyReply    = "empty_reply"
)

// Reply is the assistant answer plus how it was produced. Only Text is
// returned to callers; Origin and Reason are for logs.
type Reply struct {
	Text   string
	Origin Origin
	Reason string
}

// AssistantService turns a sanitized request into a reply. It never fails.
type AssistantService interface {
	Suggest(ctx context.Context, req models.SuggestionRequest) Reply
}

// DefaultAssistantService asks the generator first and answers locally on
// any problem.
type DefaultAssistantService struct {
	generator Generator
	apiKey    func() string
	timeout   time.Duration
	throttle  *rate.Limiter
	logger    *zap.Logger
}

type Option func(*DefaultAssistantService)

func WithTimeout(d time.Duration) Option {
	return func(s *DefaultAssistantService) {
		if d > 0 {
			s.timeout = d
		}
	}
}

// WithThrottle caps provider calls across all clients; nil disables it.
func WithThrottle(l *rate.Limiter) Option {
	return func(s *DefaultAssistantService) {
		s.throttle = l
	}
}

func WithLogger(l *zap.Logger) Option {
	return func(s *DefaultAssistantService) {
		if l != nil {
			s.logger = l
		}
	}
}

// NewDefaultAssistantService wires a generator and a credential lookup.
// apiKey is called once per request; an empty key skips the provider.
func NewDefaultAssistantService(gen Generator, apiKey func() string, opts ...Option) *DefaultAssistantService {
	s := &DefaultAssistantService{
		generator: gen,
		apiKey:    apiKey,
		timeout:   DefaultTimeout,
		logger:    zap.NewNop(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *DefaultAssistantService) Suggest(ctx context.Context, req models.SuggestionRequest) Reply {
	key := ""
	if s.apiKey != nil {
		key = strings.TrimSpace(s.apiKey())
	}
	if key == "" || s.generator == nil {
		return s.local(req, ReasonNoKey)
	}
	if s.throttle != nil && !s.throttle.Allow() {
		return s.local(req, ReasonThrottled)
	}

	callCtx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	text, err := s.generator.Generate(callCtx, key, BuildPrompt(req))
	switch {
	case err != nil && (errors.Is(err, context.DeadlineExceeded) || errors.Is(callCtx.Err(), context.DeadlineExceeded)):
		s.logger.Warn("assistant upstream timed out", zap.Duration("timeout", s.timeout), zap.Error(err))
		return s.local(req, ReasonTimeout)
	case errors.Is(err, ErrEmptyResponse):
		return s.local(req, ReasonEmptyReply)
	case err != nil:
		s.logger.Warn("assistant upstream failed", zap.Error(err))
		return s.local(req, ReasonUpstreamError)
	case strings.TrimSpace(text) == "":
		return s.local(req, ReasonEmptyReply)
	}
	return Reply{Text: text, Origin: OriginUpstream}
}

func (s *DefaultAssistantService) local(req models.SuggestionRequest, reason string) Reply {
	return Reply{
		Text:   LocalSuggest(req.Message, req.Services, req.Categories),
		Origin: OriginLocal,
		Reason: reason,
	}
}
