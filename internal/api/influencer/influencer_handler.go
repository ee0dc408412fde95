package influencer

import (
	"log/slog"
	"net/http"

	"go.opentelemetry.io/otel"
	semconv "go.opentelemetry.io/otel/semconv/v1.26.0"
	"go.opentelemetry.io/otel/trace"

	"github.com/travelmind-ai/travelmind-server/internal/api"
)

type InfluencerHandler struct {
	influencerService Service
	logger            *slog.Logger
}

func NewInfluencerHandler(influencerService Service, logger *slog.Logger) *InfluencerHandler {
	return &InfluencerHandler{
		influencerService: influencerService,
		logger:            logger,
	}
}

// GetRecommendations returns stored recommendations for ?destination=.
// No stored rows means an empty list, not an error.
func (h *InfluencerHandler) GetRecommendations(w http.ResponseWriter, r *http.Request) {
	ctx, span := otel.Tracer("InfluencerHandler").Start(r.Context(), "GetRecommendations", trace.WithAttributes(
		semconv.HTTPRequestMethodKey.String(r.Method),
		semconv.HTTPRouteKey.String("/influencers"),
	))
	defer span.End()

	l := h.logger.With(slog.String("handler", "GetRecommendations"))

	destination := r.URL.Query().Get("destination")
	if destination == "" {
		api.ErrorResponse(w, r, http.StatusBadRequest, "destination query parameter is required")
		return
	}

	recommendations, err := h.influencerService.GetRecommendations(ctx, destination)
	if err != nil {
		l.ErrorContext(ctx, "Failed to fetch recommendations", slog.Any("error", err))
		api.ErrorResponse(w, r, http.StatusInternalServerError, "failed to fetch recommendations")
		return
	}

	api.WriteJSONResponse(w, r, http.StatusOK, recommendations)
}
