package itinerary

import (
	"fmt"
	"strings"

	"github.com/travelmind-ai/travelmind-server/internal/types"
)

const (
	maxPromptInfluencerTips = 5
	maxPromptVideos         = 3
	maxLocationsPerVideo    = 2
)

// buildItineraryPrompt assembles the generation prompt for one trip request,
// folding in influencer tips and vlog locations so the model favours places
// we have supporting data for.
func buildItineraryPrompt(req types.TripRequest, style string, enrich types.EnrichmentContext) string {
	themeStr := "general exploration"
	if len(req.Themes) > 0 {
		themeStr = strings.Join(req.Themes, ", ")
	}
	dailyBudget := req.DailyBudget()

	var tips []string
	for i, rec := range enrich.Influencers {
		if i >= maxPromptInfluencerTips {
			break
		}
		tips = append(tips, fmt.Sprintf("- %s: %s (Budget: %s, Best time: %s)",
			rec.Place, rec.Tip, rec.BudgetRange, rec.BestTime))
	}
	tipBlock := "No local recommendations available"
	if len(tips) > 0 {
		tipBlock = strings.Join(tips, "\n")
	}

	var highlights []string
	for i, video := range enrich.Videos {
		if i >= maxPromptVideos {
			break
		}
		for j, loc := range video.Locations {
			if j >= maxLocationsPerVideo {
				break
			}
			highlights = append(highlights, fmt.Sprintf("- %s (Featured in: %s)", loc, video.Title))
		}
	}
	highlightBlock := "No video recommendations available"
	if len(highlights) > 0 {
		highlightBlock = strings.Join(highlights, "\n")
	}

	var b strings.Builder
	fmt.Fprintf(&b, "Create a detailed %d-day %s travel itinerary for %s.\n\n",
		req.DurationDays, style, req.Destination)
	fmt.Fprintf(&b, "REQUIREMENTS:\n")
	fmt.Fprintf(&b, "- Total Budget: ₹%d (₹%d per day)\n", req.Budget, dailyBudget)
	fmt.Fprintf(&b, "- Style: %s (adjust luxury level accordingly)\n", titleCase(style))
	fmt.Fprintf(&b, "- Themes: %s\n\n", themeStr)
	fmt.Fprintf(&b, "LOCAL EXPERT RECOMMENDATIONS:\n%s\n\n", tipBlock)
	fmt.Fprintf(&b, "POPULAR ATTRACTIONS (from travel vlogs):\n%s\n\n", highlightBlock)
	b.WriteString(`FORMAT EXACTLY LIKE THIS:

Day 1:
9:00 AM: Visit Anjuna Beach - Enjoy sunrise and morning walk (₹200, 3 hours)
Location: Anjuna Beach, North Goa
Details: Beautiful sunrise views, morning yoga, beach cafes for breakfast

1:00 PM: Explore Fort Aguada - Historical Portuguese fort tour (₹300, 2 hours)
Location: Fort Aguada, Candolim
Details: 17th-century fort, lighthouse, panoramic sea views

6:00 PM: Sunset at Baga Beach - Beach activities and dinner (₹800, 4 hours)
Location: Baga Beach, North Goa
Details: Water sports, beach shacks, famous nightlife area

Day 2:
`)
	fmt.Fprintf(&b, "[Continue same format for all %d days]\n\n", req.DurationDays)
	fmt.Fprintf(&b, `COST GUIDELINES (%s):
- Economical: Activities ₹100-500, Food ₹200-400, Hotels ₹1000-2000
- Balanced: Activities ₹300-800, Food ₹400-800, Hotels ₹2000-4000
- Luxury: Activities ₹500-1500, Food ₹800-2000, Hotels ₹4000-8000

Include specific place names, exact costs in ₹, and detailed descriptions for each activity.
`, style)

	return b.String()
}

// buildIntentPrompt asks the model to classify a natural language change
// request into the fixed key/value schema parseIntentResponse expects.
func buildIntentPrompt(it *types.Itinerary, userRequest string) string {
	var b strings.Builder
	b.WriteString("Analyze this travel itinerary modification request and extract the key parameters for regeneration.\n\n")
	fmt.Fprintf(&b, "CURRENT ITINERARY SUMMARY:\n%s\n", summarizeItinerary(it))
	fmt.Fprintf(&b, "USER MODIFICATION REQUEST: %q\n\n", userRequest)
	b.WriteString(`Please analyze the user's intent and provide a structured response with these parameters:

1. MODIFICATION_TYPE: (redistribute_activities, add_theme, change_budget, modify_day, change_accommodation, add_activities, remove_activities, change_focus)
2. SPECIFIC_CHANGES: What exactly needs to be changed
3. NEW_THEMES: Any new themes to add (adventure, food, culture, nature, luxury, budget, etc.)
4. BUDGET_ADJUSTMENT: (increase, decrease, maintain) and percentage if applicable
5. DAY_FOCUS: Specific day number if mentioned, or "all" for general changes
6. ACTIVITY_DISTRIBUTION: (even, front_loaded, back_loaded, maintain)
7. ACCOMMODATION_PREFERENCE: (budget, standard, luxury, maintain)
8. ADDITIONAL_CONTEXT: Any other specific requirements

Respond in this exact format:
MODIFICATION_TYPE: [type]
SPECIFIC_CHANGES: [description]
NEW_THEMES: [themes separated by commas]
BUDGET_ADJUSTMENT: [adjustment]
DAY_FOCUS: [day or all]
ACTIVITY_DISTRIBUTION: [distribution]
ACCOMMODATION_PREFERENCE: [preference]
ADDITIONAL_CONTEXT: [context]
`)
	return b.String()
}

// buildModificationPrompt assembles the regeneration prompt for step two of a
// modification, carrying both the original itinerary text and the analyzed
// intent.
func buildModificationPrompt(it *types.Itinerary, intent map[string]string, userRequest string, adjustedBudget int, budgetType string, themes []string) string {
	themeStr := "general exploration"
	if len(themes) > 0 {
		themeStr = strings.Join(themes, ", ")
	}
	dailyBudget := 0
	if it.DurationDays > 0 {
		dailyBudget = adjustedBudget / it.DurationDays
	}

	var b strings.Builder
	b.WriteString("You are an expert travel planner. I need you to modify an existing travel itinerary based on specific user feedback.\n\n")
	fmt.Fprintf(&b, "ORIGINAL ITINERARY:\n%s\n", itineraryToText(it))
	b.WriteString("MODIFICATION REQUIREMENTS:\n")
	fmt.Fprintf(&b, "MODIFICATION REQUEST: %s\n", userRequest)
	fmt.Fprintf(&b, "MODIFICATION TYPE: %s\n", intent["modification_type"])
	fmt.Fprintf(&b, "SPECIFIC CHANGES NEEDED: %s\n", valueOr(intent, "specific_changes", "General improvements"))
	fmt.Fprintf(&b, "BUDGET ADJUSTMENT: %s\n", valueOr(intent, "budget_adjustment", "maintain"))
	fmt.Fprintf(&b, "ACCOMMODATION LEVEL: %s\n", valueOr(intent, "accommodation_preference", "maintain"))
	fmt.Fprintf(&b, "ACTIVITY DISTRIBUTION: %s\n\n", valueOr(intent, "activity_distribution", "maintain"))
	b.WriteString("NEW PARAMETERS:\n")
	fmt.Fprintf(&b, "- Destination: %s\n", it.Destination)
	fmt.Fprintf(&b, "- Duration: %d days\n", it.DurationDays)
	fmt.Fprintf(&b, "- Budget: ₹%d (₹%d per day)\n", adjustedBudget, dailyBudget)
	fmt.Fprintf(&b, "- Style: %s\n", budgetType)
	fmt.Fprintf(&b, "- Themes: %s\n\n", themeStr)
	b.WriteString(`INSTRUCTIONS:
1. Analyze the user's modification request carefully
2. Create a NEW itinerary that addresses their specific concerns
3. Keep the same destination and duration
4. Adjust activities, timing, and budget allocation based on their feedback
5. Maintain the quality and completeness of the original itinerary

FORMAT EXACTLY LIKE THIS:

Day 1:
9:00 AM: Visit Charminar - Historic monument and bustling market (₹200, 3 hours)
Location: Charminar, Old City
Details: Explore the iconic 16th-century monument and surrounding Laad Bazaar

[Continue for all days...]

IMPORTANT:
- Address the specific modification request in your new itinerary
- Include realistic costs in ₹ and timing
- Provide detailed descriptions for each activity
`)
	return b.String()
}

// summarizeItinerary renders a short per-day overview used in the intent
// analysis prompt.
func summarizeItinerary(it *types.Itinerary) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Destination: %s\n", it.Destination)
	fmt.Fprintf(&b, "Duration: %d days\n", it.DurationDays)
	fmt.Fprintf(&b, "Budget: ₹%d\n", it.Budget)
	budgetType := it.BudgetType
	if budgetType == "" {
		budgetType = "Standard"
	}
	fmt.Fprintf(&b, "Budget Type: %s\n\n", budgetType)
	for _, day := range it.DailyPlans {
		fmt.Fprintf(&b, "Day %d: %d activities\n", day.Day, len(day.Activities))
	}
	return b.String()
}

// itineraryToText renders the full itinerary back into the day/time text
// format so the regeneration prompt can quote it.
func itineraryToText(it *types.Itinerary) string {
	var b strings.Builder
	for _, day := range it.DailyPlans {
		fmt.Fprintf(&b, "Day %d:\n", day.Day)
		for _, act := range day.Activities {
			fmt.Fprintf(&b, "%s: %s - %s - ₹%d\n", act.TimeSlot, act.Name, act.Duration, act.Cost)
			if act.Details != "" && act.Details != act.Name {
				fmt.Fprintf(&b, "Details: %s\n", act.Details)
			}
		}
		b.WriteString("\n")
	}
	return b.String()
}

func titleCase(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}

func valueOr(m map[string]string, key, fallback string) string {
	if v, ok := m[key]; ok && v != "" {
		return v
	}
	return fallback
}
