package itinerary

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/travelmind-ai/travelmind-server/internal/types"
)

const sampleResponse = `Day 1:
9:00 AM: Visit Anjuna Beach - Enjoy sunrise and morning walk (₹200, 3 hours)
Location: Anjuna Beach, North Goa
Details: Beautiful sunrise views and beach cafes for breakfast

1:00 PM: Explore Fort Aguada - Historical Portuguese fort tour (₹300, 2 hours)
Location: Fort Aguada, Candolim

6:00 PM: Sunset at Baga Beach - Beach activities and dinner (₹800, 4 hours)

Day 2:
Morning: Dudhsagar Falls day trip - Jeep safari and swimming (₹1500, half day)
2:00 PM: Lunch at local shack - Goan fish curry (₹400, 1 hour)
`

func TestParseItineraryText(t *testing.T) {
	t.Run("TwoDays", func(t *testing.T) {
		plans := parseItineraryText(sampleResponse, 2, types.EnrichmentContext{})

		assert.Len(t, plans, 2)
		assert.Equal(t, 1, plans[0].Day)
		assert.Len(t, plans[0].Activities, 3)
		assert.Equal(t, 2, plans[1].Day)
		assert.Len(t, plans[1].Activities, 2)

		first := plans[0].Activities[0]
		assert.Equal(t, "9:00 AM", first.TimeSlot)
		assert.Contains(t, first.Name, "Visit Anjuna Beach")
		assert.Equal(t, 200, first.Cost)
		assert.Equal(t, "3 hours", first.Duration)
	})

	t.Run("DaysBeyondRequestedAreDropped", func(t *testing.T) {
		plans := parseItineraryText(sampleResponse, 1, types.EnrichmentContext{})

		assert.Len(t, plans, 1)
		assert.Equal(t, 1, plans[0].Day)
	})

	t.Run("UnstructuredTextYieldsNothing", func(t *testing.T) {
		plans := parseItineraryText("I cannot help with that request.", 3, types.EnrichmentContext{})
		assert.Empty(t, plans)
	})

	t.Run("EnrichmentMarkers", func(t *testing.T) {
		enrich := types.EnrichmentContext{
			Influencers: []types.InfluencerRecommendation{
				{Place: "Fort Aguada", Tip: "Go before 10 AM to avoid crowds"},
			},
			Videos: []types.VideoReference{
				{VideoID: "abc123", Title: "Goa Travel Vlog", Locations: []string{"Baga Beach"}},
			},
		}
		plans := parseItineraryText(sampleResponse, 2, enrich)

		fort := plans[0].Activities[1]
		assert.True(t, fort.InfluencerRecommended)
		assert.Equal(t, "Go before 10 AM to avoid crowds", fort.Tip)

		baga := plans[0].Activities[2]
		assert.True(t, baga.YouTubeRecommended)
		assert.Equal(t, "abc123", baga.VideoID)
		assert.Equal(t, "Goa Travel Vlog", baga.VideoTitle)

		assert.False(t, plans[0].Activities[0].InfluencerRecommended)
	})
}

func TestExtractCost(t *testing.T) {
	cases := []struct {
		in   string
		want int
	}{
		{"Visit fort (₹300, 2 hours)", 300},
		{"Lunch ₹1,200 at shack", 1200},
		{"Entry Rs. 50 per head", 50},
		{"costs INR 2500 for two", 2500},
		{"500 rupees entry", 500},
		{"Free walking tour", 0},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, extractCost(tc.in), tc.in)
	}
}

func TestExtractDuration(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"tour (₹300, 2 hours)", "2 hours"},
		{"safari, 2-3 hours total", "2-3 hours"},
		{"quick stop, 45 minutes", "45 minutes"},
		{"plan a half day here", "4 hours"},
		{"full day excursion", "8 hours"},
		{"no timing given", ""},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, extractDuration(tc.in), tc.in)
	}
}

func TestParseIntentResponse(t *testing.T) {
	response := `MODIFICATION_TYPE: add_theme
SPECIFIC_CHANGES: add more food experiences
NEW_THEMES: food, culture
BUDGET_ADJUSTMENT: increase by 20%
DAY_FOCUS: all
ACTIVITY_DISTRIBUTION: even
ACCOMMODATION_PREFERENCE: maintain
ADDITIONAL_CONTEXT: vegetarian options preferred`

	intent := parseIntentResponse(response)

	assert.Equal(t, "add_theme", intent["modification_type"])
	assert.Equal(t, "food, culture", intent["new_themes"])
	assert.Equal(t, "increase by 20%", intent["budget_adjustment"])
	assert.Equal(t, "maintain", intent["accommodation_preference"])
	assert.Empty(t, parseIntentResponse("no structure here at all"))
}

func TestTemplateDayPlans(t *testing.T) {
	plans := templateDayPlans("Goa", 3, 15000, nil)

	assert.Len(t, plans, 3)
	for i, day := range plans {
		assert.Equal(t, i+1, day.Day)
		assert.Len(t, day.Activities, 3)
	}
	// 30/40/30 split of the 5000 daily budget
	assert.Equal(t, 1500, plans[0].Activities[0].Cost)
	assert.Equal(t, 2000, plans[0].Activities[1].Cost)
	assert.Equal(t, 1500, plans[0].Activities[2].Cost)
}

func TestExtractAttractions(t *testing.T) {
	text := "You should visit Charminar, then explore Golconda Fort and see Hussain Sagar Lake."
	attractions := extractAttractions(text, "Hyderabad")

	assert.NotEmpty(t, attractions)
	assert.Contains(t, attractions, "Charminar")

	fallback := extractAttractions("", "Pune")
	assert.Contains(t, fallback, "Pune City Center")
}
