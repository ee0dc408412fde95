package itinerary

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/travelmind-ai/travelmind-server/internal/types"
)

var (
	dayHeaderRe = regexp.MustCompile(`(?i)Day\s*(\d+)[:.]?`)

	timeSlotRes = []*regexp.Regexp{
		regexp.MustCompile(`(?i)(\d{1,2}:\d{2}\s*(?:AM|PM))`),
		regexp.MustCompile(`(?i)(\d{1,2}\s*(?:AM|PM))`),
		regexp.MustCompile(`(?i)(Morning|Afternoon|Evening|Night)`),
		regexp.MustCompile(`(?i)(\d{1,2}-\d{1,2}\s*(?:AM|PM))`),
	}

	costRes = []*regexp.Regexp{
		regexp.MustCompile(`₹(\d+(?:,\d+)*)`),
		regexp.MustCompile(`(?i)Rs\.?\s*(\d+(?:,\d+)*)`),
		regexp.MustCompile(`(?i)INR\s*(\d+(?:,\d+)*)`),
		regexp.MustCompile(`(?i)(\d+(?:,\d+)*)\s*(?:rupees|rs|inr)`),
	}

	durationRangeRe = regexp.MustCompile(`(?i)(\d+)-(\d+)\s*hours?`)
	durationHourRe  = regexp.MustCompile(`(?i)(\d+)\s*(?:hours?|hrs?|h\b)`)
	durationMinRe   = regexp.MustCompile(`(?i)(\d+)\s*(?:minutes?|mins?)`)
	halfDayRe       = regexp.MustCompile(`(?i)half\s*day`)
	fullDayRe       = regexp.MustCompile(`(?i)(?:full|whole)\s*day`)

	placeRes = []*regexp.Regexp{
		regexp.MustCompile(`Location:\s*([A-Z][a-zA-Z\s,]+?)(?:\n|$)`),
		regexp.MustCompile(`(?:at|in)\s+([A-Z][a-zA-Z\s]+?)(?:\s*[,.\n]|$)`),
		regexp.MustCompile(`(?i)(?:visit|explore)\s+([A-Z][a-zA-Z\s]+?)(?:\s*[,.\n|]|$)`),
		regexp.MustCompile(`([A-Z][a-zA-Z\s]+?)\s+(?:Beach|Fort|Temple|Market|Palace|Garden|Museum)`),
	}
)

// parseItineraryText turns the model's "Day X:" text into day plans. Days
// beyond wantDays are dropped; a response with no recognizable day blocks
// yields an empty slice so the caller can fall back.
func parseItineraryText(text string, wantDays int, enrich types.EnrichmentContext) []types.DayPlan {
	headers := dayHeaderRe.FindAllStringSubmatchIndex(text, -1)
	var plans []types.DayPlan

	for i, h := range headers {
		dayNum, err := strconv.Atoi(text[h[2]:h[3]])
		if err != nil || dayNum > wantDays {
			continue
		}
		start := h[1]
		end := len(text)
		if i+1 < len(headers) {
			end = headers[i+1][0]
		}
		activities := extractActivities(text[start:end], enrich)
		if len(activities) > 0 {
			plans = append(plans, types.DayPlan{Day: dayNum, Activities: activities})
		}
	}
	return plans
}

// extractActivities walks one day's lines, opening a new activity at each
// time indicator and folding following lines into the current one's details.
func extractActivities(dayText string, enrich types.EnrichmentContext) []types.Activity {
	var activities []types.Activity
	var current *types.Activity

	for _, line := range strings.Split(dayText, "\n") {
		line = strings.TrimSpace(line)
		if len(line) < 3 {
			continue
		}

		slot := matchTimeSlot(line)
		if slot != "" {
			if current != nil && current.Name != "" {
				activities = append(activities, *current)
			}
			name := strings.Trim(strings.Replace(line, slot, "", 1), " :-")
			current = &types.Activity{
				TimeSlot: slot,
				Name:     name,
				Duration: extractDuration(line),
				Cost:     extractCost(line),
				Place:    extractPlace(line),
				Details:  line,
			}
			markEnrichment(current, line, enrich)
			continue
		}

		if current != nil {
			current.Details += " " + line
			if current.Place == "" {
				current.Place = extractPlace(line)
			}
			if current.Cost == 0 {
				current.Cost = extractCost(line)
			}
			markEnrichment(current, line, enrich)
		}
	}
	if current != nil && current.Name != "" {
		activities = append(activities, *current)
	}

	for i := range activities {
		if activities[i].TimeSlot == "" {
			activities[i].TimeSlot = "9:00 AM"
		}
		if activities[i].Duration == "" {
			activities[i].Duration = "2 hours"
		}
	}
	return activities
}

func matchTimeSlot(line string) string {
	for _, re := range timeSlotRes {
		if m := re.FindStringSubmatch(line); m != nil {
			return m[1]
		}
	}
	return ""
}

// extractCost pulls the first rupee amount out of a line, 0 when absent.
func extractCost(text string) int {
	for _, re := range costRes {
		if m := re.FindStringSubmatch(text); m != nil {
			n, err := strconv.Atoi(strings.ReplaceAll(m[1], ",", ""))
			if err == nil {
				return n
			}
		}
	}
	return 0
}

func extractDuration(text string) string {
	if m := durationRangeRe.FindStringSubmatch(text); m != nil {
		return m[1] + "-" + m[2] + " hours"
	}
	if m := durationHourRe.FindStringSubmatch(text); m != nil {
		return m[1] + " hours"
	}
	if m := durationMinRe.FindStringSubmatch(text); m != nil {
		return m[1] + " minutes"
	}
	if halfDayRe.MatchString(text) {
		return "4 hours"
	}
	if fullDayRe.MatchString(text) {
		return "8 hours"
	}
	return ""
}

func extractPlace(text string) string {
	for _, re := range placeRes {
		if m := re.FindStringSubmatch(text); m != nil {
			place := strings.TrimSpace(m[1])
			if len(place) > 2 && len(place) < 50 {
				return place
			}
		}
	}
	return ""
}

// markEnrichment flags the activity when the line mentions a recommended
// place or a location featured in a fetched video.
func markEnrichment(act *types.Activity, line string, enrich types.EnrichmentContext) {
	lower := strings.ToLower(line)

	if !act.InfluencerRecommended {
		for _, rec := range enrich.Influencers {
			if rec.Place != "" && strings.Contains(lower, strings.ToLower(rec.Place)) {
				act.InfluencerRecommended = true
				act.Tip = rec.Tip
				break
			}
		}
	}

	if !act.YouTubeRecommended {
	videos:
		for _, video := range enrich.Videos {
			for _, loc := range video.Locations {
				if loc != "" && strings.Contains(lower, strings.ToLower(loc)) {
					act.YouTubeRecommended = true
					act.VideoTitle = video.Title
					act.VideoID = video.VideoID
					break videos
				}
			}
		}
	}
}

// parseIntentResponse reads the "KEY: value" lines of an intent analysis
// reply into a lowercase snake_case map. Unknown keys pass through.
func parseIntentResponse(response string) map[string]string {
	intent := make(map[string]string)
	for _, line := range strings.Split(response, "\n") {
		key, value, ok := strings.Cut(line, ":")
		if !ok {
			continue
		}
		key = strings.ReplaceAll(strings.ToLower(strings.TrimSpace(key)), " ", "_")
		key = strings.TrimLeft(key, "0123456789._")
		value = strings.Trim(strings.TrimSpace(value), "[]")
		if key != "" {
			intent[key] = value
		}
	}
	return intent
}
