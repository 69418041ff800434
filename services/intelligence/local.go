package ai

import (
	"fmt"
	"regexp"
	"sort"
	"strings"

	"bookassist/models"
)

// BookingPath is where every reply sends the user to finish booking.
const BookingPath = "/booking"

// Terms worth 2 points each when present in both the message and the service.
var domainKeywords = []string{
	"clean", "cleaning", "deep",
	"move", "moving", "pack", "packing",
	"event", "wedding",
	"office", "house", "home", "apartment", "kitchen", "bathroom",
	"construction", "post-construction", "sanitize",
}

var (
	movingPattern   = regexp.MustCompile(`move|moving|pack|truck`)
	cleaningPattern = regexp.MustCompile(`clean|sanitiz|deep`)
	eventPattern    = regexp.MustCompile(`event|wedding|party|corporate`)
	quantityPattern = regexp.MustCompile(`\b\d+\s*(?:people|persons?|cleaners?|movers?)\b`)
)

const (
	keywordPoints  = 2
	patternPoints  = 3
	quantityPoints = 1
	maxTop         = 3
)

// ScoredCandidate pairs a service with its relevance to the message.
type ScoredCandidate struct {
	Service models.ServiceSummary
	Score   int
}

// DetectQuantity returns the first "<n> people|cleaners|movers" phrase in message.
func DetectQuantity(message string) (string, bool) {
	m := quantityPattern.FindString(strings.ToLower(message))
	return m, m != ""
}

// ScoreServices scores every service against message and returns them
// highest first. Equal scores keep their input order.
func ScoreServices(message string, services []models.ServiceSummary) []ScoredCandidate {
	msg := strings.ToLower(message)
	_, hasQuantity := DetectQuantity(msg)

	scored := make([]ScoredCandidate, 0, len(services))
	for _, svc := range services {
		scored = append(scored, ScoredCandidate{
			Service: svc,
			Score:   scoreService(msg, svc, hasQuantity),
		})
	}
	sort.SliceStable(scored, func(i, j int) bool {
		return scored[i].Score > scored[j].Score
	})
	return scored
}

// scoreService expects msg already lower-cased.
func scoreService(msg string, svc models.ServiceSummary, hasQuantity bool) int {
	haystack := strings.ToLower(svc.Name + " " + svc.Category + " " + svc.Description)

	score := 0
	for _, term := range domainKeywords {
		if strings.Contains(msg, term) && strings.Contains(haystack, term) {
			score += keywordPoints
		}
	}
	if strings.Contains(msg, "move") && movingPattern.MatchString(haystack) {
		score += patternPoints
	}
	if strings.Contains(msg, "clean") && cleaningPattern.MatchString(haystack) {
		score += patternPoints
	}
	if strings.Contains(msg, "event") && eventPattern.MatchString(haystack) {
		score += patternPoints
	}
	if hasQuantity {
		score += quantityPoints
	}
	return score
}

// topCandidates keeps up to three positively scored services. With none,
// the first service in catalogue order stands in.
func topCandidates(scored []ScoredCandidate, services []models.ServiceSummary) []models.ServiceSummary {
	var top []models.ServiceSummary
	for _, c := range scored {
		if c.Score <= 0 || len(top) == maxTop {
			break
		}
		top = append(top, c.Service)
	}
	if len(top) == 0 && len(services) > 0 {
		top = append(top, services[0])
	}
	return top
}

// LocalSuggest builds a deterministic reply from keyword scoring alone.
// It is used whenever the generative provider is unavailable.
func LocalSuggest(message string, services []models.ServiceSummary, categories []string) string {
	top := topCandidates(ScoreServices(message, services), services)
	qty, hasQty := DetectQuantity(message)

	var lines []string
	if len(top) > 0 {
		best := top[0]
		lines = append(lines, "Best match: "+withCategory(best))
		if d := strings.TrimSpace(best.Description); d != "" {
			lines = append(lines, "Why: "+d)
		}
		if p := strings.TrimSpace(best.PricingNote); p != "" {
			lines = append(lines, "Pricing: "+p)
		}
	} else {
		lines = append(lines, "Here are some options to get you started.")
		if cats := nonEmpty(categories, maxTop+2); len(cats) > 0 {
			lines = append(lines, "Categories we cover: "+strings.Join(cats, ", "))
		}
	}
	if hasQty {
		lines = append(lines, fmt.Sprintf("Note: you mentioned %q. Add it in the notes/quantity field when you book.", qty))
	}

	lines = append(lines, "")
	lines = append(lines, bookingSteps(top)...)
	lines = append(lines, "")

	if len(top) > 1 {
		lines = append(lines, "Other options:")
		for _, alt := range top[1:] {
			lines = append(lines, "- "+withCategory(alt))
		}
		lines = append(lines, "")
	}

	lines = append(lines, "Book now: "+BookingPath)
	return strings.Join(lines, "\n")
}

func bookingSteps(top []models.ServiceSummary) []string {
	pick := "2. Choose the service that best fits your needs."
	if len(top) > 0 && strings.TrimSpace(top[0].Name) != "" {
		pick = fmt.Sprintf("2. Choose %q from the service list.", top[0].Name)
	}
	return []string{
		"How to book:",
		"1. Open the booking page.",
		pick,
		"3. Pick your preferred date and time.",
		"4. Enter your address and contact details.",
		"5. Add quantities or special requests in the notes field.",
		"6. Review the price and confirm your booking.",
	}
}

func withCategory(svc models.ServiceSummary) string {
	name := strings.TrimSpace(svc.Name)
	if name == "" {
		name = "this service"
	}
	if c := strings.TrimSpace(svc.Category); c != "" {
		return name + " (" + c + ")"
	}
	return name
}

func nonEmpty(values []string, limit int) []string {
	var out []string
	for _, v := range values {
		if v = strings.TrimSpace(v); v != "" {
			out = append(out, v)
			if len(out) == limit {
				break
			}
		}
	}
	return out
}
