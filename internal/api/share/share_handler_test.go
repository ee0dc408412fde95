package share

import (
	"bytes"
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/travelmind-ai/travelmind-server/internal/types"
)

// MockShareService is a mock implementation of the Service interface
type MockShareService struct {
	mock.Mock
}

func (m *MockShareService) ShareItinerary(ctx context.Context, itinerary types.Itinerary) (string, error) {
	args := m.Called(ctx, itinerary)
	return args.String(0), args.Error(1)
}

func (m *MockShareService) LoadSharedItinerary(ctx context.Context, shareCode string) (*types.SharedItinerary, error) {
	args := m.Called(ctx, shareCode)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*types.SharedItinerary), args.Error(1)
}

func newShareRouter(handler *ShareHandler) chi.Router {
	r := chi.NewRouter()
	r.Post("/share", handler.ShareItinerary)
	r.Get("/share/{code}", handler.LoadSharedItinerary)
	return r
}

func TestShareItineraryHandler(t *testing.T) {
	t.Run("Created", func(t *testing.T) {
		mockService := new(MockShareService)
		mockService.On("ShareItinerary", mock.Anything, mock.Anything).Return("ABCDEF234567", nil).Once()

		handler := NewShareHandler(mockService, slog.Default())
		body, _ := json.Marshal(sampleItinerary())
		req := httptest.NewRequest(http.MethodPost, "/share", bytes.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
		rec := httptest.NewRecorder()

		newShareRouter(handler).ServeHTTP(rec, req)

		assert.Equal(t, http.StatusCreated, rec.Code)
		var resp map[string]string
		assert.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
		assert.Equal(t, "ABCDEF234567", resp["share_code"])
	})

	t.Run("BadBody", func(t *testing.T) {
		handler := NewShareHandler(new(MockShareService), slog.Default())
		req := httptest.NewRequest(http.MethodPost, "/share", bytes.NewReader([]byte("{not json")))
		req.Header.Set("Content-Type", "application/json")
		rec := httptest.NewRecorder()

		newShareRouter(handler).ServeHTTP(rec, req)

		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})
}

func TestLoadSharedItineraryHandler(t *testing.T) {
	t.Run("Found", func(t *testing.T) {
		mockService := new(MockShareService)
		shared := &types.SharedItinerary{ShareCode: "ABCDEF234567", Itinerary: sampleItinerary()}
		mockService.On("LoadSharedItinerary", mock.Anything, "ABCDEF234567").Return(shared, nil).Once()

		handler := NewShareHandler(mockService, slog.Default())
		req := httptest.NewRequest(http.MethodGet, "/share/ABCDEF234567", nil)
		rec := httptest.NewRecorder()

		newShareRouter(handler).ServeHTTP(rec, req)

		assert.Equal(t, http.StatusOK, rec.Code)
		var resp types.SharedItinerary
		assert.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
		assert.Equal(t, "ABCDEF234567", resp.ShareCode)
		assert.Equal(t, "Goa", resp.Itinerary.Destination)
	})

	t.Run("NotFound", func(t *testing.T) {
		mockService := new(MockShareService)
		mockService.On("LoadSharedItinerary", mock.Anything, "UNKNOWNCODE2").Return(nil, ErrShareCodeNotFound).Once()

		handler := NewShareHandler(mockService, slog.Default())
		req := httptest.NewRequest(http.MethodGet, "/share/UNKNOWNCODE2", nil)
		rec := httptest.NewRecorder()

		newShareRouter(handler).ServeHTTP(rec, req)

		assert.Equal(t, http.StatusNotFound, rec.Code)
	})
}
