package maps

import (
	"errors"
	"log/slog"
	"net/http"

	"go.opentelemetry.io/otel"
	semconv "go.opentelemetry.io/otel/semconv/v1.26.0"
	"go.opentelemetry.io/otel/trace"

	"github.com/travelmind-ai/travelmind-server/internal/api"
)

type MapsHandler struct {
	mapsService Service
	logger      *slog.Logger
}

func NewMapsHandler(mapsService Service, logger *slog.Logger) *MapsHandler {
	return &MapsHandler{
		mapsService: mapsService,
		logger:      logger,
	}
}

// Geocode resolves ?place= to coordinates.
func (h *MapsHandler) Geocode(w http.ResponseWriter, r *http.Request) {
	ctx, span := otel.Tracer("MapsHandler").Start(r.Context(), "Geocode", trace.WithAttributes(
		semconv.HTTPRequestMethodKey.String(r.Method),
		semconv.HTTPRouteKey.String("/geocode"),
	))
	defer span.End()

	l := h.logger.With(slog.String("handler", "Geocode"))

	place := r.URL.Query().Get("place")
	if place == "" {
		l.ErrorContext(ctx, "Place query parameter is required")
		api.ErrorResponse(w, r, http.StatusBadRequest, "place query parameter is required")
		return
	}

	geocoded, err := h.mapsService.Geocode(ctx, place)
	if err != nil {
		if errors.Is(err, ErrPlaceNotFound) {
			api.ErrorResponse(w, r, http.StatusNotFound, "place not found: "+place)
			return
		}
		l.ErrorContext(ctx, "Failed to geocode place", slog.Any("error", err))
		api.ErrorResponse(w, r, http.StatusBadGateway, "geocoding failed")
		return
	}

	api.WriteJSONResponse(w, r, http.StatusOK, geocoded)
}

// NearbyAttractions lists tourist attractions around ?place=.
func (h *MapsHandler) NearbyAttractions(w http.ResponseWriter, r *http.Request) {
	ctx, span := otel.Tracer("MapsHandler").Start(r.Context(), "NearbyAttractions", trace.WithAttributes(
		semconv.HTTPRequestMethodKey.String(r.Method),
		semconv.HTTPRouteKey.String("/attractions"),
	))
	defer span.End()

	l := h.logger.With(slog.String("handler", "NearbyAttractions"))

	place := r.URL.Query().Get("place")
	if place == "" {
		api.ErrorResponse(w, r, http.StatusBadRequest, "place query parameter is required")
		return
	}

	attractions, err := h.mapsService.NearbyAttractions(ctx, place)
	if err != nil {
		if errors.Is(err, ErrPlaceNotFound) {
			api.ErrorResponse(w, r, http.StatusNotFound, "place not found: "+place)
			return
		}
		l.ErrorContext(ctx, "Failed to fetch nearby attractions", slog.Any("error", err))
		api.ErrorResponse(w, r, http.StatusBadGateway, "nearby search failed")
		return
	}

	api.WriteJSONResponse(w, r, http.StatusOK, attractions)
}

// RouteInfo summarises the first driving route from ?origin= to ?destination=.
func (h *MapsHandler) RouteInfo(w http.ResponseWriter, r *http.Request) {
	ctx, span := otel.Tracer("MapsHandler").Start(r.Context(), "RouteInfo", trace.WithAttributes(
		semconv.HTTPRequestMethodKey.String(r.Method),
		semconv.HTTPRouteKey.String("/routes"),
	))
	defer span.End()

	l := h.logger.With(slog.String("handler", "RouteInfo"))

	origin := r.URL.Query().Get("origin")
	destination := r.URL.Query().Get("destination")
	if origin == "" || destination == "" {
		api.ErrorResponse(w, r, http.StatusBadRequest, "origin and destination query parameters are required")
		return
	}

	route, err := h.mapsService.RouteInfo(ctx, origin, destination)
	if err != nil {
		if errors.Is(err, ErrPlaceNotFound) {
			api.ErrorResponse(w, r, http.StatusNotFound, "no route between "+origin+" and "+destination)
			return
		}
		l.ErrorContext(ctx, "Failed to fetch route info", slog.Any("error", err))
		api.ErrorResponse(w, r, http.StatusBadGateway, "directions lookup failed")
		return
	}

	api.WriteJSONResponse(w, r, http.StatusOK, route)
}
