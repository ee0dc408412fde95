package router

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"

	"github.com/travelmind-ai/travelmind-server/internal/api/feedback"
	"github.com/travelmind-ai/travelmind-server/internal/api/influencer"
	"github.com/travelmind-ai/travelmind-server/internal/api/itinerary"
	"github.com/travelmind-ai/travelmind-server/internal/api/maps"
	"github.com/travelmind-ai/travelmind-server/internal/api/share"
	"github.com/travelmind-ai/travelmind-server/internal/api/youtube"
)

// Config contains the handlers the router wires up.
type Config struct {
	ItineraryHandler  *itinerary.ItineraryHandler
	MapsHandler       *maps.MapsHandler
	YouTubeHandler    *youtube.YouTubeHandler
	InfluencerHandler *influencer.InfluencerHandler
	FeedbackHandler   *feedback.FeedbackHandler
	ShareHandler      *share.ShareHandler
}

// SetupRouter initializes and configures the main application router.
// Server-wide middleware (logger, requestID, recoverer) are expected to be
// applied before mounting this router in main.go.
func SetupRouter(cfg *Config) chi.Router {
	r := chi.NewRouter()

	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"http://localhost:5173", "http://localhost:3000"},
		AllowedMethods:   []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		ExposedHeaders:   []string{"Link"},
		AllowCredentials: true,
		MaxAge:           300,
	}))

	r.Get("/ping", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("pong"))
	})

	r.Route("/api/v1", func(r chi.Router) {
		r.Post("/itineraries", cfg.ItineraryHandler.GenerateItinerary)
		r.Post("/itineraries/options", cfg.ItineraryHandler.GenerateItineraryOptions)
		r.Post("/itineraries/modify", cfg.ItineraryHandler.ModifyItinerary)

		r.Get("/geocode", cfg.MapsHandler.Geocode)
		r.Get("/attractions", cfg.MapsHandler.NearbyAttractions)
		r.Get("/routes", cfg.MapsHandler.RouteInfo)

		r.Get("/videos", cfg.YouTubeHandler.GetTravelContent)
		r.Get("/influencers", cfg.InfluencerHandler.GetRecommendations)

		r.Post("/feedback", cfg.FeedbackHandler.StoreFeedback)
		r.Get("/feedback/insights", cfg.FeedbackHandler.DestinationInsights)

		r.Post("/share", cfg.ShareHandler.ShareItinerary)
		r.Get("/share/{code}", cfg.ShareHandler.LoadSharedItinerary)
	})

	return r
}
