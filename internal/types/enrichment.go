package types

import "time"

// InfluencerRecommendation is a pre-curated travel tip stored in the
// analytics warehouse. Read-only from the application's perspective.
type InfluencerRecommendation struct {
	Platform    string  `json:"platform" bigquery:"platform"`
	Influencer  string  `json:"influencer" bigquery:"influencer_name"`
	Place       string  `json:"place" bigquery:"place_name"`
	Tip         string  `json:"tip" bigquery:"recommendation"`
	Category    string  `json:"category" bigquery:"category"`
	BudgetRange string  `json:"budget_range" bigquery:"budget_range"`
	BestTime    string  `json:"best_time" bigquery:"best_time"`
	Latitude    float64 `json:"latitude" bigquery:"latitude"`
	Longitude   float64 `json:"longitude" bigquery:"longitude"`
}

// VideoReference is one travel video fetched for a destination.
type VideoReference struct {
	VideoID      string    `json:"video_id"`
	Title        string    `json:"title"`
	Channel      string    `json:"channel"`
	ThumbnailURL string    `json:"thumbnail_url,omitempty"`
	PublishedAt  time.Time `json:"published_at,omitempty"`
	Locations    []string  `json:"locations,omitempty"`
	ViewCount    uint64    `json:"view_count"`
	LikeCount    uint64    `json:"like_count"`
}

// WatchURL returns the public watch link for the video.
func (v VideoReference) WatchURL() string {
	return "https://youtube.com/watch?v=" + v.VideoID
}

// EnrichmentContext bundles the auxiliary inputs handed to the prompt
// builder alongside the trip request.
type EnrichmentContext struct {
	Influencers []InfluencerRecommendation `json:"influencer_recommendations"`
	Videos      []VideoReference           `json:"youtube_content"`
}

// Geocoding and places results from the maps service.

type Coordinates struct {
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
}

type GeocodedPlace struct {
	Query            string      `json:"query"`
	FormattedAddress string      `json:"formatted_address"`
	Location         Coordinates `json:"location"`
}

type Attraction struct {
	Name     string      `json:"name"`
	Location Coordinates `json:"location"`
	Rating   float32     `json:"rating,omitempty"`
	Vicinity string      `json:"vicinity,omitempty"`
}

// RouteSummary is the condensed first route between two points.
type RouteSummary struct {
	Origin      string `json:"origin"`
	Destination string `json:"destination"`
	Distance    string `json:"distance"`
	Duration    string `json:"duration"`
	Summary     string `json:"summary,omitempty"`
}
