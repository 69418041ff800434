package ai

import (
	"strings"
	"testing"

	"bookassist/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func catalogue() []models.ServiceSummary {
	return []models.ServiceSummary{
		{Name: "Deep Cleaning", Category: "Cleaning", Description: "Top to bottom clean with sanitizing.", PricingNote: "From $120"},
		{Name: "Residential Moving", Category: "Moving", Description: "truck and packing crew"},
		{Name: "Event Staffing", Category: "Events", Description: "Wedding and corporate party crews"},
		{Name: "Office Cleaning", Category: "Cleaning", Description: "After-hours office cleaning"},
	}
}

func TestScoreServices_MovingRequest(t *testing.T) {
	services := []models.ServiceSummary{
		{Name: "Deep Cleaning", Category: "Cleaning", Description: "..."},
		{Name: "Residential Moving", Category: "Moving", Description: "truck and packing crew"},
	}
	msg := "I need help packing and moving my apartment"

	scored := ScoreServices(msg, services)
	require.Len(t, scored, 2)
	assert.Equal(t, "Residential Moving", scored[0].Service.Name)
	assert.Greater(t, scored[0].Score, scored[1].Score)

	reply := LocalSuggest(msg, services, nil)
	assert.True(t, strings.HasPrefix(reply, "Best match: Residential Moving (Moving)"), reply)
}

func TestScoreServices_PatternBonusesStack(t *testing.T) {
	svc := models.ServiceSummary{Name: "Move Out Clean", Category: "Cleaning", Description: "deep clean when you move"}

	// clean, deep, move keywords (3*2) + move pattern (3) + clean pattern (3).
	scored := ScoreServices("deep clean after my move", []models.ServiceSummary{svc})
	assert.Equal(t, 12, scored[0].Score)
}

func TestScoreServices_QuantityBonusIsUniform(t *testing.T) {
	services := []models.ServiceSummary{{Name: "A"}, {Name: "B"}}

	scored := ScoreServices("need 4 people", services)
	for _, c := range scored {
		assert.Equal(t, 1, c.Score)
	}
	assert.Equal(t, "A", scored[0].Service.Name, "ties keep input order")
}

func TestScoreServices_StableOnTies(t *testing.T) {
	services := []models.ServiceSummary{
		{Name: "First", Description: "nothing"},
		{Name: "Kitchen One", Description: "kitchen"},
		{Name: "Second", Description: "nothing"},
		{Name: "Kitchen Two", Description: "kitchen"},
	}

	scored := ScoreServices("my kitchen", services)
	names := make([]string, len(scored))
	for i, c := range scored {
		names[i] = c.Service.Name
	}
	assert.Equal(t, []string{"Kitchen One", "Kitchen Two", "First", "Second"}, names)
}

func TestDetectQuantity(t *testing.T) {
	cases := map[string]string{
		"I need 3 movers":            "3 movers",
		"we are 12 people":           "12 people",
		"send 2 cleaners please":     "2 cleaners",
		"just 1 person":              "1 person",
		"book 5movers":               "5movers",
		"a 3 bedroom house":          "",
		"I need movers":              "",
		"Need 10 Cleaners on Friday": "10 cleaners",
	}
	for msg, want := range cases {
		got, ok := DetectQuantity(msg)
		assert.Equal(t, want, got, msg)
		assert.Equal(t, want != "", ok, msg)
	}
}

func TestLocalSuggest_QuantityNote(t *testing.T) {
	reply := LocalSuggest("I need 3 movers", catalogue(), nil)
	assert.Contains(t, reply, `Note: you mentioned "3 movers".`)
	assert.Contains(t, reply, "notes/quantity field")
}

func TestLocalSuggest_Layout(t *testing.T) {
	reply := LocalSuggest("deep clean for my office", catalogue(), nil)

	want := strings.Join([]string{
		"Best match: Deep Cleaning (Cleaning)",
		"Why: Top to bottom clean with sanitizing.",
		"Pricing: From $120",
		"",
		"How to book:",
		"1. Open the booking page.",
		`2. Choose "Deep Cleaning" from the service list.`,
		"3. Pick your preferred date and time.",
		"4. Enter your address and contact details.",
		"5. Add quantities or special requests in the notes field.",
		"6. Review the price and confirm your booking.",
		"",
		"Other options:",
		"- Office Cleaning (Cleaning)",
		"",
		"Book now: /booking",
	}, "\n")
	assert.Equal(t, want, reply)
}

func TestLocalSuggest_FallsBackToFirstService(t *testing.T) {
	reply := LocalSuggest("something unrelated", catalogue(), nil)
	assert.True(t, strings.HasPrefix(reply, "Best match: Deep Cleaning (Cleaning)"), reply)
	assert.NotContains(t, reply, "Other options:")
}

func TestLocalSuggest_NoServices(t *testing.T) {
	reply := LocalSuggest("anything", nil, []string{"Cleaning", " ", "Moving"})

	assert.True(t, strings.HasPrefix(reply, "Here are some options to get you started.\nCategories we cover: Cleaning, Moving\n\nHow to book:"), reply)
	assert.Contains(t, reply, "2. Choose the service that best fits your needs.")
	assert.True(t, strings.HasSuffix(reply, "\n\nBook now: /booking"), reply)
}

func TestLocalSuggest_OmitsEmptySections(t *testing.T) {
	reply := LocalSuggest("hello", []models.ServiceSummary{{Name: "Window Washing"}}, nil)
	assert.NotContains(t, reply, "Why:")
	assert.NotContains(t, reply, "Pricing:")
	assert.NotContains(t, reply, "Note:")
	assert.NotContains(t, reply, "\n\n\n")
	assert.True(t, strings.HasPrefix(reply, "Best match: Window Washing\n\nHow to book:"), reply)
}

func TestLocalSuggest_AtMostTwoAlternates(t *testing.T) {
	services := []models.ServiceSummary{
		{Name: "A", Description: "home"},
		{Name: "B", Description: "home"},
		{Name: "C", Description: "home"},
		{Name: "D", Description: "home"},
	}
	reply := LocalSuggest("clean my home", services, nil)
	assert.Contains(t, reply, "- B\n- C\n")
	assert.NotContains(t, reply, "- D")
}

func TestLocalSuggest_Deterministic(t *testing.T) {
	msg := "I need 2 cleaners for a wedding event at my house"
	first := LocalSuggest(msg, catalogue(), []string{"Cleaning", "Events"})
	for i := 0; i < 20; i++ {
		assert.Equal(t, first, LocalSuggest(msg, catalogue(), []string{"Cleaning", "Events"}))
	}
	assert.Contains(t, first, "Book now: /booking")
}
