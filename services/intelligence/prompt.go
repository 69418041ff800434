package ai

import (
	"encoding/json"

	"bookassist/models"
)

const systemInstruction = `You are the booking assistant for a home and event services marketplace.
Using only the services listed below, reply in plain text with:
1. The service you suggest and a short reason it fits the request.
2. What the user should enter when booking (date, address, quantities, notes).
3. The steps to book it on the booking page.
If nothing fits, suggest the closest service and say why.`

// BuildPrompt returns the ordered text segments of the single user turn sent
// to the provider.
func BuildPrompt(req models.SuggestionRequest) []string {
	return []string{
		systemInstruction,
		"User message: " + req.Message,
		"Services: " + mustJSON(req.Services),
		"Categories: " + mustJSON(req.Categories),
	}
}

// mustJSON never fails for the sanitized request types.
func mustJSON(v any) string {
	b, err := json.Marshal(v)
	if err != nil {
		return "[]"
	}
	return string(b)
}
