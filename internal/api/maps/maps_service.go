package maps

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	gmaps "googlemaps.github.io/maps"

	"github.com/travelmind-ai/travelmind-server/internal/types"
)

// ErrPlaceNotFound is returned when geocoding yields zero results. Callers
// never receive a fallback coordinate.
var ErrPlaceNotFound = errors.New("place not found")

var _ Service = (*ServiceImpl)(nil)

// Service defines the geocoding and places contract.
type Service interface {
	Geocode(ctx context.Context, place string) (*types.GeocodedPlace, error)
	NearbyAttractions(ctx context.Context, place string) ([]types.Attraction, error)
	RouteInfo(ctx context.Context, origin, destination string) (*types.RouteSummary, error)
}

// Client is the subset of the Google Maps client used by the service.
type Client interface {
	Geocode(ctx context.Context, r *gmaps.GeocodingRequest) ([]gmaps.GeocodingResult, error)
	NearbySearch(ctx context.Context, r *gmaps.NearbySearchRequest) (gmaps.PlacesSearchResponse, error)
	Directions(ctx context.Context, r *gmaps.DirectionsRequest) ([]gmaps.Route, []gmaps.GeocodedWaypoint, error)
}

type ServiceImpl struct {
	client         Client
	nearbyRadiusM  uint
	maxAttractions int
	logger         *slog.Logger
}

func NewServiceImpl(client Client, nearbyRadiusM uint, maxAttractions int, logger *slog.Logger) *ServiceImpl {
	if nearbyRadiusM == 0 {
		nearbyRadiusM = 5000
	}
	return &ServiceImpl{
		client:         client,
		nearbyRadiusM:  nearbyRadiusM,
		maxAttractions: maxAttractions,
		logger:         logger,
	}
}

// NewClient constructs the real Google Maps client from an API key.
func NewClient(apiKey string) (*gmaps.Client, error) {
	if apiKey == "" {
		return nil, fmt.Errorf("maps API key is required")
	}
	return gmaps.NewClient(gmaps.WithAPIKey(apiKey))
}

// Geocode resolves a place name to coordinates.
func (s *ServiceImpl) Geocode(ctx context.Context, place string) (*types.GeocodedPlace, error) {
	ctx, span := otel.Tracer("MapsService").Start(ctx, "Geocode")
	defer span.End()
	span.SetAttributes(attribute.String("maps.place", place))

	results, err := s.client.Geocode(ctx, &gmaps.GeocodingRequest{Address: place})
	if err != nil {
		s.logger.ErrorContext(ctx, "Geocoding call failed", slog.String("place", place), slog.Any("error", err))
		span.RecordError(err)
		span.SetStatus(codes.Error, "geocoding call failed")
		return nil, fmt.Errorf("geocoding %q: %w", place, err)
	}
	if len(results) == 0 {
		span.SetStatus(codes.Error, "no results")
		return nil, fmt.Errorf("geocoding %q: %w", place, ErrPlaceNotFound)
	}

	first := results[0]
	return &types.GeocodedPlace{
		Query:            place,
		FormattedAddress: first.FormattedAddress,
		Location: types.Coordinates{
			Latitude:  first.Geometry.Location.Lat,
			Longitude: first.Geometry.Location.Lng,
		},
	}, nil
}

// NearbyAttractions geocodes the place and lists tourist attractions around it.
func (s *ServiceImpl) NearbyAttractions(ctx context.Context, place string) ([]types.Attraction, error) {
	ctx, span := otel.Tracer("MapsService").Start(ctx, "NearbyAttractions")
	defer span.End()

	geocoded, err := s.Geocode(ctx, place)
	if err != nil {
		return nil, err
	}

	resp, err := s.client.NearbySearch(ctx, &gmaps.NearbySearchRequest{
		Location: &gmaps.LatLng{Lat: geocoded.Location.Latitude, Lng: geocoded.Location.Longitude},
		Radius:   s.nearbyRadiusM,
		Type:     gmaps.PlaceTypeTouristAttraction,
	})
	if err != nil {
		s.logger.ErrorContext(ctx, "Nearby search failed", slog.String("place", place), slog.Any("error", err))
		span.RecordError(err)
		return nil, fmt.Errorf("nearby search for %q: %w", place, err)
	}

	attractions := make([]types.Attraction, 0, len(resp.Results))
	for _, result := range resp.Results {
		attractions = append(attractions, types.Attraction{
			Name: result.Name,
			Location: types.Coordinates{
				Latitude:  result.Geometry.Location.Lat,
				Longitude: result.Geometry.Location.Lng,
			},
			Rating:   result.Rating,
			Vicinity: result.Vicinity,
		})
		if s.maxAttractions > 0 && len(attractions) >= s.maxAttractions {
			break
		}
	}
	span.SetAttributes(attribute.Int("maps.attractions.count", len(attractions)))
	return attractions, nil
}

// RouteInfo returns the first driving route between two points.
func (s *ServiceImpl) RouteInfo(ctx context.Context, origin, destination string) (*types.RouteSummary, error) {
	ctx, span := otel.Tracer("MapsService").Start(ctx, "RouteInfo")
	defer span.End()

	routes, _, err := s.client.Directions(ctx, &gmaps.DirectionsRequest{
		Origin:        origin,
		Destination:   destination,
		Mode:          gmaps.TravelModeDriving,
		DepartureTime: "now",
	})
	if err != nil {
		s.logger.ErrorContext(ctx, "Directions call failed", slog.Any("error", err))
		span.RecordError(err)
		return nil, fmt.Errorf("directions %s -> %s: %w", origin, destination, err)
	}
	if len(routes) == 0 || len(routes[0].Legs) == 0 {
		return nil, fmt.Errorf("directions %s -> %s: %w", origin, destination, ErrPlaceNotFound)
	}

	leg := routes[0].Legs[0]
	return &types.RouteSummary{
		Origin:      origin,
		Destination: destination,
		Distance:    leg.Distance.HumanReadable,
		Duration:    leg.Duration.String(),
		Summary:     routes[0].Summary,
	}, nil
}
