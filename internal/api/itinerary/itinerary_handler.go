package itinerary

import (
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"go.opentelemetry.io/otel"
	semconv "go.opentelemetry.io/otel/semconv/v1.26.0"
	"go.opentelemetry.io/otel/trace"

	"github.com/travelmind-ai/travelmind-server/internal/api"
	"github.com/travelmind-ai/travelmind-server/internal/types"
)

type ItineraryHandler struct {
	itineraryService Service
	logger           *slog.Logger
}

func NewItineraryHandler(itineraryService Service, logger *slog.Logger) *ItineraryHandler {
	return &ItineraryHandler{
		itineraryService: itineraryService,
		logger:           logger,
	}
}

func isValidationError(err error) bool {
	return errors.Is(err, types.ErrEmptyDestination) ||
		errors.Is(err, types.ErrInvalidDuration) ||
		errors.Is(err, types.ErrNegativeBudget)
}

// GenerateItinerary handles POST /itineraries.
func (h *ItineraryHandler) GenerateItinerary(w http.ResponseWriter, r *http.Request) {
	ctx, span := otel.Tracer("ItineraryHandler").Start(r.Context(), "GenerateItinerary", trace.WithAttributes(
		semconv.HTTPRequestMethodKey.String(r.Method),
		semconv.HTTPRouteKey.String("/itineraries"),
	))
	defer span.End()

	l := h.logger.With(slog.String("handler", "GenerateItinerary"))

	var req types.TripRequest
	if err := api.DecodeJSONBody(w, r, &req); err != nil {
		l.ErrorContext(ctx, "Failed to decode request body", slog.Any("error", err))
		api.ErrorResponse(w, r, http.StatusBadRequest, err.Error())
		return
	}

	itinerary, err := h.itineraryService.GenerateItinerary(ctx, req)
	if err != nil {
		if isValidationError(err) {
			api.ErrorResponse(w, r, http.StatusBadRequest, err.Error())
			return
		}
		l.ErrorContext(ctx, "Failed to generate itinerary", slog.Any("error", err))
		api.ErrorResponse(w, r, http.StatusInternalServerError, "failed to generate itinerary")
		return
	}

	api.WriteJSONResponse(w, r, http.StatusOK, itinerary)
}

// itineraryOptionsResponse pairs the generated tiers with the pick closest
// under the requested budget.
type itineraryOptionsResponse struct {
	Options     []*types.Itinerary `json:"options"`
	Recommended *types.Itinerary   `json:"recommended,omitempty"`
}

// GenerateItineraryOptions handles POST /itineraries/options.
func (h *ItineraryHandler) GenerateItineraryOptions(w http.ResponseWriter, r *http.Request) {
	ctx, span := otel.Tracer("ItineraryHandler").Start(r.Context(), "GenerateItineraryOptions", trace.WithAttributes(
		semconv.HTTPRequestMethodKey.String(r.Method),
		semconv.HTTPRouteKey.String("/itineraries/options"),
	))
	defer span.End()

	l := h.logger.With(slog.String("handler", "GenerateItineraryOptions"))

	var req types.TripRequest
	if err := api.DecodeJSONBody(w, r, &req); err != nil {
		l.ErrorContext(ctx, "Failed to decode request body", slog.Any("error", err))
		api.ErrorResponse(w, r, http.StatusBadRequest, err.Error())
		return
	}

	options, err := h.itineraryService.GenerateItineraryOptions(ctx, req)
	if err != nil {
		if isValidationError(err) {
			api.ErrorResponse(w, r, http.StatusBadRequest, err.Error())
			return
		}
		l.ErrorContext(ctx, "Failed to generate itinerary options", slog.Any("error", err))
		api.ErrorResponse(w, r, http.StatusInternalServerError, "failed to generate itinerary options")
		return
	}

	api.WriteJSONResponse(w, r, http.StatusOK, itineraryOptionsResponse{
		Options:     options,
		Recommended: SelectBestOption(options, req.Budget),
	})
}

// modifyItineraryRequest is the body of POST /itineraries/modify.
type modifyItineraryRequest struct {
	Itinerary *types.Itinerary `json:"itinerary"`
	Request   string           `json:"request"`
}

// ModifyItinerary handles POST /itineraries/modify.
func (h *ItineraryHandler) ModifyItinerary(w http.ResponseWriter, r *http.Request) {
	ctx, span := otel.Tracer("ItineraryHandler").Start(r.Context(), "ModifyItinerary", trace.WithAttributes(
		semconv.HTTPRequestMethodKey.String(r.Method),
		semconv.HTTPRouteKey.String("/itineraries/modify"),
	))
	defer span.End()

	l := h.logger.With(slog.String("handler", "ModifyItinerary"))

	var req modifyItineraryRequest
	if err := api.DecodeJSONBody(w, r, &req); err != nil {
		l.ErrorContext(ctx, "Failed to decode request body", slog.Any("error", err))
		api.ErrorResponse(w, r, http.StatusBadRequest, err.Error())
		return
	}
	if req.Itinerary == nil || len(req.Itinerary.DailyPlans) == 0 {
		api.ErrorResponse(w, r, http.StatusBadRequest, "itinerary with daily plans is required")
		return
	}
	if strings.TrimSpace(req.Request) == "" {
		api.ErrorResponse(w, r, http.StatusBadRequest, "modification request is required")
		return
	}

	modified, err := h.itineraryService.ModifyItinerary(ctx, req.Itinerary, req.Request)
	if err != nil {
		l.ErrorContext(ctx, "Failed to modify itinerary", slog.Any("error", err))
		api.ErrorResponse(w, r, http.StatusBadGateway, "failed to modify itinerary")
		return
	}

	api.WriteJSONResponse(w, r, http.StatusOK, modified)
}
