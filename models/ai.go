package models

import "encoding/json"

// ServiceSummary is the slice of a catalogue service the assistant works with.
type ServiceSummary struct {
	ID          json.RawMessage `json:"id,omitempty"` // passed through untouched
	Name        string          `json:"name"`
	Category    string          `json:"category"`
	Description string          `json:"description"`  // at most 400 characters
	PricingNote string          `json:"pricing_note"` // at most 120 characters
}

// SuggestionRequest is the sanitized body of an assistant request.
// All fields are bounded and never nil after sanitizing.
type SuggestionRequest struct {
	Message    string           `json:"message"`
	Services   []ServiceSummary `json:"services"`
	Categories []string         `json:"categories"`
}

// SuggestionResponse is what the assistant endpoint returns on success.
type SuggestionResponse struct {
	Reply string `json:"reply"`
}
