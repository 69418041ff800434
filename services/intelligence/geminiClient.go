// File: services/intelligence/geminiClient.go
package ai

import (
	"context"
	"errors"
	"fmt"
	"strings"

	genai "github.com/google/generative-ai-go/genai"
	"google.golang.org/api/option"
)

const DefaultGeminiModel = "gemini-1.5-flash"

// ErrEmptyResponse means the provider answered without any usable text.
var ErrEmptyResponse = errors.New("gemini returned no text")

// Generator produces free text for an ordered list of prompt segments.
type Generator interface {
	Generate(ctx context.Context, apiKey string, segments []string) (string, error)
}

// GeminiGenerator calls the Gemini API. A client is built per call because
// the key is read fresh for every request.
type GeminiGenerator struct {
	Model    string
	Endpoint string // optional override, e.g. a regional or proxy endpoint
}

func NewGeminiGenerator(model, endpoint string) *GeminiGenerator {
	if model == "" {
		model = DefaultGeminiModel
	}
	return &GeminiGenerator{Model: model, Endpoint: endpoint}
}

func (g *GeminiGenerator) Generate(ctx context.Context, apiKey string, segments []string) (string, error) {
	opts := []option.ClientOption{option.WithAPIKey(apiKey)}
	if g.Endpoint != "" {
		opts = append(opts, option.WithEndpoint(g.Endpoint))
	}
	client, err := genai.NewClient(ctx, opts...)
	if err != nil {
		return "", fmt.Errorf("create gemini client: %w", err)
	}
	defer client.Close()

	parts := make([]genai.Part, 0, len(segments))
	for _, s := range segments {
		parts = append(parts, genai.Text(s))
	}

	resp, err := client.GenerativeModel(g.Model).GenerateContent(ctx, parts...)
	if err != nil {
		return "", fmt.Errorf("gemini generate error: %w", err)
	}
	return ExtractText(resp)
}

// ExtractText joins the text parts of the first candidate in order.
func ExtractText(resp *genai.GenerateContentResponse) (string, error) {
	if resp == nil || len(resp.Candidates) == 0 {
		return "", ErrEmptyResponse
	}
	cand := resp.Candidates[0]
	if cand == nil || cand.Content == nil {
		return "", ErrEmptyResponse
	}

	var sb strings.Builder
	for _, part := range cand.Content.Parts {
		if textPart, ok := part.(genai.Text); ok {
			sb.WriteString(string(textPart))
		}
	}
	text := sb.String()
	if strings.TrimSpace(text) == "" {
		return "", ErrEmptyResponse
	}
	return text, nil
}
