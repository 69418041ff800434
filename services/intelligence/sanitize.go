package ai

import (
	"bytes"
	"encoding/json"
	"errors"
	"strings"

	"bookassist/models"
)

const (
	MaxMessageChars     = 2000
	MaxServices         = 30
	MaxCategories       = 50
	MaxDescriptionChars = 400
	MaxPricingNoteChars = 120
)

var (
	ErrInvalidBody    = errors.New("invalid JSON body")
	ErrMissingMessage = errors.New("message is required")
)

// ParseRequest validates an untrusted assistant body and bounds every field.
// maxServices is clamped to [1, MaxServices].
func ParseRequest(body []byte, maxServices int) (models.SuggestionRequest, error) {
	if !json.Valid(body) {
		return models.SuggestionRequest{}, ErrInvalidBody
	}
	if maxServices <= 0 || maxServices > MaxServices {
		maxServices = MaxServices
	}

	// Anything other than an object behaves like an empty one.
	fields := map[string]json.RawMessage{}
	if trimmed := bytes.TrimSpace(body); len(trimmed) > 0 && trimmed[0] == '{' {
		if err := json.Unmarshal(trimmed, &fields); err != nil {
			return models.SuggestionRequest{}, ErrInvalidBody
		}
	}

	req := models.SuggestionRequest{
		Message:    clip(strings.TrimSpace(toText(fields["message"])), MaxMessageChars),
		Services:   sanitizeServices(fields["services"], maxServices),
		Categories: sanitizeCategories(fields["categories"]),
	}
	if req.Message == "" {
		return req, ErrMissingMessage
	}
	return req, nil
}

func sanitizeServices(raw json.RawMessage, limit int) []models.ServiceSummary {
	var items []json.RawMessage
	if err := json.Unmarshal(raw, &items); err != nil {
		return []models.ServiceSummary{}
	}
	if len(items) > limit {
		items = items[:limit]
	}

	out := make([]models.ServiceSummary, 0, len(items))
	for _, item := range items {
		var f map[string]json.RawMessage
		if err := json.Unmarshal(item, &f); err != nil || f == nil {
			out = append(out, models.ServiceSummary{})
			continue
		}
		var id json.RawMessage
		if v, ok := f["id"]; ok && string(v) != "null" {
			id = v
		}
		out = append(out, models.ServiceSummary{
			ID:          id,
			Name:        toText(f["name"]),
			Category:    firstText(f, "category", "category_name"),
			Description: clip(toText(f["description"]), MaxDescriptionChars),
			PricingNote: clip(firstText(f, "pricing_note", "price_range"), MaxPricingNoteChars),
		})
	}
	return out
}

func sanitizeCategories(raw json.RawMessage) []string {
	var items []json.RawMessage
	if err := json.Unmarshal(raw, &items); err != nil {
		return []string{}
	}
	if len(items) > MaxCategories {
		items = items[:MaxCategories]
	}
	out := make([]string, 0, len(items))
	for _, item := range items {
		out = append(out, toText(item))
	}
	return out
}

// firstText returns the first non-empty text among the given keys.
func firstText(f map[string]json.RawMessage, keys ...string) string {
	for _, k := range keys {
		if s := toText(f[k]); s != "" {
			return s
		}
	}
	return ""
}

// toText coerces a JSON value to text: strings unquoted, null and missing
// values empty, everything else in its compact JSON form.
func toText(raw json.RawMessage) string {
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 || string(raw) == "null" {
		return ""
	}
	if raw[0] == '"' {
		var s string
		if err := json.Unmarshal(raw, &s); err == nil {
			return s
		}
	}
	var buf bytes.Buffer
	if err := json.Compact(&buf, raw); err != nil {
		return string(raw)
	}
	return buf.String()
}

// clip keeps the first n characters of s.
func clip(s string, n int) string {
	if len(s) <= n {
		return s
	}
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n])
}
