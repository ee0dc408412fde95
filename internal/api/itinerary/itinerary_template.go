package itinerary

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/travelmind-ai/travelmind-server/internal/types"
)

var attractionRes = []*regexp.Regexp{
	regexp.MustCompile(`(?i)visit\s+([A-Z][a-zA-Z\s]+?)(?:[\s,.\n])`),
	regexp.MustCompile(`(?i)explore\s+([A-Z][a-zA-Z\s]+?)(?:[\s,.\n])`),
	regexp.MustCompile(`(?i)see\s+([A-Z][a-zA-Z\s]+?)(?:[\s,.\n])`),
	regexp.MustCompile(`([A-Z][a-zA-Z\s]+?)\s+(?:Fort|Palace|Temple|Museum|Market|Beach|Lake|Garden)`),
}

// extractAttractions scrapes plausible attraction names out of free-form
// model text so the template plans can still name real places.
func extractAttractions(text, destination string) []string {
	var attractions []string
	seen := make(map[string]bool)

	for _, re := range attractionRes {
		for _, m := range re.FindAllStringSubmatch(text, -1) {
			name := strings.TrimSpace(m[1])
			if len(name) <= 3 || len(name) >= 30 {
				continue
			}
			key := strings.ToLower(name)
			if !seen[key] {
				seen[key] = true
				attractions = append(attractions, name)
			}
		}
	}

	if len(attractions) == 0 {
		attractions = []string{
			destination + " City Center",
			destination + " Market",
			destination + " Heritage Sites",
		}
	}
	if len(attractions) > 9 {
		attractions = attractions[:9]
	}
	return attractions
}

// templateDayPlans builds a deterministic morning/afternoon/evening schedule
// for each day, spending roughly 30/40/30 percent of the daily budget.
func templateDayPlans(destination string, duration, budget int, attractions []string) []types.DayPlan {
	if len(attractions) == 0 {
		attractions = extractAttractions("", destination)
	}
	dailyBudget := 0
	if duration > 0 {
		dailyBudget = budget / duration
	}

	pick := func(idx int, fallback string) string {
		if idx < len(attractions) {
			return attractions[idx]
		}
		return fallback
	}

	plans := make([]types.DayPlan, 0, duration)
	for day := 1; day <= duration; day++ {
		base := (day - 1) * 3
		morning := pick(base, "Explore "+destination)
		afternoon := pick(base+1, "Local markets in "+destination)
		evening := pick(base+2, "Evening entertainment in "+destination)

		plans = append(plans, types.DayPlan{
			Day: day,
			Activities: []types.Activity{
				{
					TimeSlot: "9:00 AM",
					Name:     "Visit " + morning,
					Place:    morning,
					Duration: "3 hours",
					Cost:     dailyBudget * 3 / 10,
					Details:  fmt.Sprintf("Morning exploration of %s with local sightseeing and photography", morning),
				},
				{
					TimeSlot: "2:00 PM",
					Name:     "Explore " + afternoon,
					Place:    afternoon,
					Duration: "4 hours",
					Cost:     dailyBudget * 4 / 10,
					Details:  fmt.Sprintf("Afternoon visit to %s with cultural experiences and local cuisine", afternoon),
				},
				{
					TimeSlot: "7:00 PM",
					Name:     "Experience " + evening,
					Place:    evening,
					Duration: "3 hours",
					Cost:     dailyBudget * 3 / 10,
					Details:  fmt.Sprintf("Evening activities at %s with dinner and local nightlife", evening),
				},
			},
		})
	}
	return plans
}
