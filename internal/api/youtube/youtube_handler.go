package youtube

import (
	"log/slog"
	"net/http"

	"go.opentelemetry.io/otel"
	semconv "go.opentelemetry.io/otel/semconv/v1.26.0"
	"go.opentelemetry.io/otel/trace"

	"github.com/travelmind-ai/travelmind-server/internal/api"
)

type YouTubeHandler struct {
	youtubeService Service
	logger         *slog.Logger
}

func NewYouTubeHandler(youtubeService Service, logger *slog.Logger) *YouTubeHandler {
	return &YouTubeHandler{
		youtubeService: youtubeService,
		logger:         logger,
	}
}

// GetTravelContent returns cached or freshly fetched travel videos for
// ?destination=.
func (h *YouTubeHandler) GetTravelContent(w http.ResponseWriter, r *http.Request) {
	ctx, span := otel.Tracer("YouTubeHandler").Start(r.Context(), "GetTravelContent", trace.WithAttributes(
		semconv.HTTPRequestMethodKey.String(r.Method),
		semconv.HTTPRouteKey.String("/videos"),
	))
	defer span.End()

	l := h.logger.With(slog.String("handler", "GetTravelContent"))

	destination := r.URL.Query().Get("destination")
	if destination == "" {
		api.ErrorResponse(w, r, http.StatusBadRequest, "destination query parameter is required")
		return
	}

	videos, err := h.youtubeService.GetTravelContent(ctx, destination)
	if err != nil {
		l.ErrorContext(ctx, "Failed to fetch travel content", slog.Any("error", err))
		api.ErrorResponse(w, r, http.StatusBadGateway, "video search failed")
		return
	}

	api.WriteJSONResponse(w, r, http.StatusOK, videos)
}
