package feedback

import (
	"errors"
	"log/slog"
	"net/http"

	"go.opentelemetry.io/otel"
	semconv "go.opentelemetry.io/otel/semconv/v1.26.0"
	"go.opentelemetry.io/otel/trace"

	"github.com/travelmind-ai/travelmind-server/internal/api"
	"github.com/travelmind-ai/travelmind-server/internal/types"
)

type FeedbackHandler struct {
	feedbackService Service
	logger          *slog.Logger
}

func NewFeedbackHandler(feedbackService Service, logger *slog.Logger) *FeedbackHandler {
	return &FeedbackHandler{
		feedbackService: feedbackService,
		logger:          logger,
	}
}

// StoreFeedback accepts a feedback body and appends it to the warehouse.
func (h *FeedbackHandler) StoreFeedback(w http.ResponseWriter, r *http.Request) {
	ctx, span := otel.Tracer("FeedbackHandler").Start(r.Context(), "StoreFeedback", trace.WithAttributes(
		semconv.HTTPRequestMethodKey.String(r.Method),
		semconv.HTTPRouteKey.String("/feedback"),
	))
	defer span.End()

	l := h.logger.With(slog.String("handler", "StoreFeedback"))

	var fb types.Feedback
	if err := api.DecodeJSONBody(w, r, &fb); err != nil {
		l.ErrorContext(ctx, "Failed to decode request body", slog.Any("error", err))
		api.ErrorResponse(w, r, http.StatusBadRequest, err.Error())
		return
	}

	if err := h.feedbackService.StoreFeedback(ctx, fb); err != nil {
		if errors.Is(err, ErrInvalidFeedback) {
			api.ErrorResponse(w, r, http.StatusBadRequest, err.Error())
			return
		}
		l.ErrorContext(ctx, "Failed to store feedback", slog.Any("error", err))
		api.ErrorResponse(w, r, http.StatusInternalServerError, "failed to store feedback")
		return
	}

	l.InfoContext(ctx, "Feedback stored", slog.String("destination", fb.Destination))
	api.WriteJSONResponse(w, r, http.StatusCreated, map[string]string{"message": "feedback stored"})
}

// DestinationInsights returns aggregated feedback for ?destination=.
func (h *FeedbackHandler) DestinationInsights(w http.ResponseWriter, r *http.Request) {
	ctx, span := otel.Tracer("FeedbackHandler").Start(r.Context(), "DestinationInsights", trace.WithAttributes(
		semconv.HTTPRequestMethodKey.String(r.Method),
		semconv.HTTPRouteKey.String("/feedback/insights"),
	))
	defer span.End()

	l := h.logger.With(slog.String("handler", "DestinationInsights"))

	destination := r.URL.Query().Get("destination")
	if destination == "" {
		api.ErrorResponse(w, r, http.StatusBadRequest, "destination query parameter is required")
		return
	}

	insights, err := h.feedbackService.DestinationInsights(ctx, destination)
	if err != nil {
		l.ErrorContext(ctx, "Failed to fetch insights", slog.Any("error", err))
		api.ErrorResponse(w, r, http.StatusInternalServerError, "failed to fetch insights")
		return
	}

	api.WriteJSONResponse(w, r, http.StatusOK, insights)
}
