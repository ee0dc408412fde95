package share

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"go.opentelemetry.io/otel"
	semconv "go.opentelemetry.io/otel/semconv/v1.26.0"
	"go.opentelemetry.io/otel/trace"

	"github.com/travelmind-ai/travelmind-server/internal/api"
	"github.com/travelmind-ai/travelmind-server/internal/types"
)

type ShareHandler struct {
	shareService Service
	logger       *slog.Logger
}

func NewShareHandler(shareService Service, logger *slog.Logger) *ShareHandler {
	return &ShareHandler{
		shareService: shareService,
		logger:       logger,
	}
}

// ShareItinerary persists the posted itinerary and returns its share code.
func (h *ShareHandler) ShareItinerary(w http.ResponseWriter, r *http.Request) {
	ctx, span := otel.Tracer("ShareHandler").Start(r.Context(), "ShareItinerary", trace.WithAttributes(
		semconv.HTTPRequestMethodKey.String(r.Method),
		semconv.HTTPRouteKey.String("/share"),
	))
	defer span.End()

	l := h.logger.With(slog.String("handler", "ShareItinerary"))

	var itinerary types.Itinerary
	if err := api.DecodeJSONBody(w, r, &itinerary); err != nil {
		l.ErrorContext(ctx, "Failed to decode request body", slog.Any("error", err))
		api.ErrorResponse(w, r, http.StatusBadRequest, err.Error())
		return
	}

	code, err := h.shareService.ShareItinerary(ctx, itinerary)
	if err != nil {
		l.ErrorContext(ctx, "Failed to share itinerary", slog.Any("error", err))
		api.ErrorResponse(w, r, http.StatusInternalServerError, "failed to share itinerary")
		return
	}

	api.WriteJSONResponse(w, r, http.StatusCreated, map[string]string{"share_code": code})
}

// LoadSharedItinerary loads a shared itinerary by its {code} URL parameter.
func (h *ShareHandler) LoadSharedItinerary(w http.ResponseWriter, r *http.Request) {
	ctx, span := otel.Tracer("ShareHandler").Start(r.Context(), "LoadSharedItinerary", trace.WithAttributes(
		semconv.HTTPRequestMethodKey.String(r.Method),
		semconv.HTTPRouteKey.String("/share/{code}"),
	))
	defer span.End()

	l := h.logger.With(slog.String("handler", "LoadSharedItinerary"))

	code := chi.URLParam(r, "code")
	if code == "" {
		api.ErrorResponse(w, r, http.StatusBadRequest, "share code is required")
		return
	}

	shared, err := h.shareService.LoadSharedItinerary(ctx, code)
	if err != nil {
		if errors.Is(err, ErrShareCodeNotFound) {
			api.ErrorResponse(w, r, http.StatusNotFound, "shared itinerary not found")
			return
		}
		l.ErrorContext(ctx, "Failed to load shared itinerary", slog.Any("error", err))
		api.ErrorResponse(w, r, http.StatusInternalServerError, "failed to load shared itinerary")
		return
	}

	api.WriteJSONResponse(w, r, http.StatusOK, shared)
}
