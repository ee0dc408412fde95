package types

import (
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
)

// TripRequest carries the user's trip parameters. It is validated once on
// intake and treated as immutable afterwards.
type TripRequest struct {
	Origin        string    `json:"origin,omitempty" example:"Delhi"`
	Destination   string    `json:"destination" example:"Goa"`
	StartDate     time.Time `json:"start_date,omitempty"`
	DurationDays  int       `json:"duration_days" example:"3"`
	Budget        int       `json:"budget" example:"15000"` // total budget in rupees
	Themes        []string  `json:"themes,omitempty" example:"Adventure,Food"`
	TransportMode string    `json:"transport_mode,omitempty" example:"Flight"`
	Language      string    `json:"language,omitempty" example:"English"`
}

var (
	ErrEmptyDestination = errors.New("destination must not be empty")
	ErrInvalidDuration  = errors.New("duration must be at least one day")
	ErrNegativeBudget   = errors.New("budget must not be negative")
)

// Validate checks basic shape validity of the request.
func (r *TripRequest) Validate() error {
	if strings.TrimSpace(r.Destination) == "" {
		return ErrEmptyDestination
	}
	if r.DurationDays < 1 {
		return ErrInvalidDuration
	}
	if r.Budget < 0 {
		return ErrNegativeBudget
	}
	return nil
}

// DailyBudget splits the total budget evenly across the trip days.
func (r *TripRequest) DailyBudget() int {
	if r.DurationDays == 0 {
		return 0
	}
	return r.Budget / r.DurationDays
}

// Activity is a single scheduled item inside a day plan.
type Activity struct {
	TimeSlot  string `json:"time"`
	Name      string `json:"activity"`
	Place     string `json:"place,omitempty"`
	Cost      int    `json:"cost"`
	Duration  string `json:"duration"`
	Details   string `json:"details,omitempty"`
	Transport string `json:"transport,omitempty"`

	// Enrichment markers, set when the activity matches stored or fetched
	// recommendations.
	InfluencerRecommended bool   `json:"influencer_recommended,omitempty"`
	Tip                   string `json:"tip,omitempty"`
	YouTubeRecommended    bool   `json:"youtube_recommended,omitempty"`
	VideoTitle            string `json:"video_title,omitempty"`
	VideoID               string `json:"video_id,omitempty"`
}

// DayPlan holds the ordered activities for one day of the trip.
type DayPlan struct {
	Day        int        `json:"day"`
	Activities []Activity `json:"activities"`
}

// DataSources reports which enrichment inputs contributed to an itinerary.
type DataSources struct {
	InfluencerRecommendations int  `json:"influencer_recommendations"`
	YouTubeContent            int  `json:"youtube_content"`
	TemplateBased             bool `json:"template_based"`
	AIPowered                 bool `json:"ai_powered"`
}

// Itinerary is the day-by-day output produced for a trip request. It lives
// for the session only unless explicitly shared.
type Itinerary struct {
	ID            uuid.UUID   `json:"id"`
	Destination   string      `json:"destination"`
	DurationDays  int         `json:"duration_days"`
	Budget        int         `json:"budget"`
	BudgetType    string      `json:"budget_type,omitempty"` // Budget-Friendly | Standard | Premium
	TotalCost     int         `json:"total_cost"`
	ExceedsBudget bool        `json:"exceeds_budget,omitempty"`
	DailyPlans    []DayPlan   `json:"daily_plans"`
	DataSources   DataSources `json:"data_sources"`
	CreatedAt     time.Time   `json:"created_at"`

	// ModificationApplied echoes the last natural language change request
	// applied to this itinerary, if any.
	ModificationApplied string `json:"modification_applied,omitempty"`
}

// SumCosts recomputes the total activity cost across all days.
func (i *Itinerary) SumCosts() int {
	total := 0
	for _, day := range i.DailyPlans {
		for _, act := range day.Activities {
			total += act.Cost
		}
	}
	return total
}
