package types

import (
	"time"

	"github.com/google/uuid"
)

// Feedback is a user's rating of a generated itinerary, appended to the
// warehouse for later aggregation.
type Feedback struct {
	ItineraryID    uuid.UUID `json:"itinerary_id"`
	Destination    string    `json:"destination"`
	Rating         int       `json:"rating"` // 1..5
	Comments       string    `json:"comments,omitempty"`
	LikedPlaces    []string  `json:"liked_places,omitempty"`
	DislikedPlaces []string  `json:"disliked_places,omitempty"`
	BudgetAccuracy int       `json:"budget_accuracy,omitempty"` // 1..5
	Timestamp      time.Time `json:"timestamp"`
}

// DestinationInsight is one aggregated row of feedback for a destination.
type DestinationInsight struct {
	LikedPlaces         []string `json:"liked_places"`
	RecommendationCount int      `json:"recommendation_count"`
	AvgRating           float64  `json:"avg_rating"`
	BudgetAccuracyScore float64  `json:"budget_accuracy_score"`
}

// SharedItinerary is an itinerary persisted under a share code so another
// session can load it.
type SharedItinerary struct {
	ShareCode string    `json:"share_code"`
	Itinerary Itinerary `json:"itinerary"`
	CreatedAt time.Time `json:"created_at"`
}
