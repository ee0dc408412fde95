package maps

import (
	"context"
	"errors"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	gmaps "googlemaps.github.io/maps"
)

// MockMapsClient is a mock implementation of the Client interface
type MockMapsClient struct {
	mock.Mock
}

func (m *MockMapsClient) Geocode(ctx context.Context, r *gmaps.GeocodingRequest) ([]gmaps.GeocodingResult, error) {
	args := m.Called(ctx, r)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]gmaps.GeocodingResult), args.Error(1)
}

func (m *MockMapsClient) NearbySearch(ctx context.Context, r *gmaps.NearbySearchRequest) (gmaps.PlacesSearchResponse, error) {
	args := m.Called(ctx, r)
	return args.Get(0).(gmaps.PlacesSearchResponse), args.Error(1)
}

func (m *MockMapsClient) Directions(ctx context.Context, r *gmaps.DirectionsRequest) ([]gmaps.Route, []gmaps.GeocodedWaypoint, error) {
	args := m.Called(ctx, r)
	if args.Get(0) == nil {
		return nil, nil, args.Error(2)
	}
	return args.Get(0).([]gmaps.Route), nil, args.Error(2)
}

func goaResult() gmaps.GeocodingResult {
	var r gmaps.GeocodingResult
	r.FormattedAddress = "Goa, India"
	r.Geometry.Location = gmaps.LatLng{Lat: 15.2993, Lng: 74.124}
	return r
}

func TestGeocode(t *testing.T) {
	ctx := context.Background()
	logger := slog.Default()

	t.Run("Success", func(t *testing.T) {
		mockClient := new(MockMapsClient)
		mockClient.On("Geocode", mock.Anything, mock.Anything).Return([]gmaps.GeocodingResult{goaResult()}, nil).Once()

		service := NewServiceImpl(mockClient, 0, 0, logger)
		place, err := service.Geocode(ctx, "Goa")

		assert.NoError(t, err)
		assert.Equal(t, "Goa", place.Query)
		assert.Equal(t, "Goa, India", place.FormattedAddress)
		assert.InDelta(t, 15.2993, place.Location.Latitude, 0.0001)
		mockClient.AssertExpectations(t)
	})

	t.Run("ZeroResults", func(t *testing.T) {
		mockClient := new(MockMapsClient)
		mockClient.On("Geocode", mock.Anything, mock.Anything).Return([]gmaps.GeocodingResult{}, nil).Once()

		service := NewServiceImpl(mockClient, 0, 0, logger)
		place, err := service.Geocode(ctx, "Nowhereville XYZ")

		assert.Nil(t, place)
		assert.ErrorIs(t, err, ErrPlaceNotFound)
	})

	t.Run("UpstreamError", func(t *testing.T) {
		mockClient := new(MockMapsClient)
		mockClient.On("Geocode", mock.Anything, mock.Anything).Return(nil, errors.New("quota exceeded")).Once()

		service := NewServiceImpl(mockClient, 0, 0, logger)
		_, err := service.Geocode(ctx, "Goa")

		assert.Error(t, err)
		assert.NotErrorIs(t, err, ErrPlaceNotFound)
	})
}

func TestNearbyAttractions(t *testing.T) {
	ctx := context.Background()
	logger := slog.Default()

	searchResponse := func(names ...string) gmaps.PlacesSearchResponse {
		var resp gmaps.PlacesSearchResponse
		for _, name := range names {
			var r gmaps.PlacesSearchResult
			r.Name = name
			r.Rating = 4.5
			r.Vicinity = "North Goa"
			resp.Results = append(resp.Results, r)
		}
		return resp
	}

	t.Run("Success", func(t *testing.T) {
		mockClient := new(MockMapsClient)
		mockClient.On("Geocode", mock.Anything, mock.Anything).Return([]gmaps.GeocodingResult{goaResult()}, nil).Once()
		mockClient.On("NearbySearch", mock.Anything, mock.MatchedBy(func(r *gmaps.NearbySearchRequest) bool {
			return r.Radius == 5000 && r.Type == gmaps.PlaceTypeTouristAttraction
		})).Return(searchResponse("Fort Aguada", "Anjuna Beach"), nil).Once()

		service := NewServiceImpl(mockClient, 0, 0, logger)
		attractions, err := service.NearbyAttractions(ctx, "Goa")

		assert.NoError(t, err)
		assert.Len(t, attractions, 2)
		assert.Equal(t, "Fort Aguada", attractions[0].Name)
		mockClient.AssertExpectations(t)
	})

	t.Run("CappedAtMaxAttractions", func(t *testing.T) {
		mockClient := new(MockMapsClient)
		mockClient.On("Geocode", mock.Anything, mock.Anything).Return([]gmaps.GeocodingResult{goaResult()}, nil).Once()
		mockClient.On("NearbySearch", mock.Anything, mock.Anything).
			Return(searchResponse("A", "B", "C", "D"), nil).Once()

		service := NewServiceImpl(mockClient, 0, 2, logger)
		attractions, err := service.NearbyAttractions(ctx, "Goa")

		assert.NoError(t, err)
		assert.Len(t, attractions, 2)
	})

	t.Run("GeocodeFailurePropagates", func(t *testing.T) {
		mockClient := new(MockMapsClient)
		mockClient.On("Geocode", mock.Anything, mock.Anything).Return([]gmaps.GeocodingResult{}, nil).Once()

		service := NewServiceImpl(mockClient, 0, 0, logger)
		_, err := service.NearbyAttractions(ctx, "Nowhereville XYZ")

		assert.ErrorIs(t, err, ErrPlaceNotFound)
		mockClient.AssertNotCalled(t, "NearbySearch")
	})
}

func TestRouteInfo(t *testing.T) {
	ctx := context.Background()
	logger := slog.Default()

	t.Run("Success", func(t *testing.T) {
		route := gmaps.Route{Summary: "NH 48"}
		route.Legs = []*gmaps.Leg{{
			Distance: gmaps.Distance{HumanReadable: "590 km", Meters: 590000},
			Duration: 10 * time.Hour,
		}}

		mockClient := new(MockMapsClient)
		mockClient.On("Directions", mock.Anything, mock.Anything).Return([]gmaps.Route{route}, nil, nil).Once()

		service := NewServiceImpl(mockClient, 0, 0, logger)
		summary, err := service.RouteInfo(ctx, "Mumbai", "Goa")

		assert.NoError(t, err)
		assert.Equal(t, "590 km", summary.Distance)
		assert.Equal(t, "NH 48", summary.Summary)
	})

	t.Run("NoRoutes", func(t *testing.T) {
		mockClient := new(MockMapsClient)
		mockClient.On("Directions", mock.Anything, mock.Anything).Return([]gmaps.Route{}, nil, nil).Once()

		service := NewServiceImpl(mockClient, 0, 0, logger)
		_, err := service.RouteInfo(ctx, "Mumbai", "Atlantis")

		assert.ErrorIs(t, err, ErrPlaceNotFound)
	})
}
