package itinerary

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"google.golang.org/genai"

	"github.com/travelmind-ai/travelmind-server/internal/types"
)

// MockGenerator is a mock implementation of the ContentGenerator interface
type MockGenerator struct {
	mock.Mock
}

func (m *MockGenerator) GenerateContent(ctx context.Context, prompt string) (string, error) {
	args := m.Called(ctx, prompt)
	return args.String(0), args.Error(1)
}

func (m *MockGenerator) GenerateWithConfig(ctx context.Context, prompt string, config *genai.GenerateContentConfig) (string, error) {
	args := m.Called(ctx, prompt, config)
	return args.String(0), args.Error(1)
}

func (m *MockGenerator) Model() string {
	return "gemini-test"
}

// MockInfluencerFetcher is a mock implementation of the InfluencerFetcher interface
type MockInfluencerFetcher struct {
	mock.Mock
}

func (m *MockInfluencerFetcher) GetRecommendations(ctx context.Context, destination string) ([]types.InfluencerRecommendation, error) {
	args := m.Called(ctx, destination)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]types.InfluencerRecommendation), args.Error(1)
}

// MockVideoFetcher is a mock implementation of the VideoFetcher interface
type MockVideoFetcher struct {
	mock.Mock
}

func (m *MockVideoFetcher) GetTravelContent(ctx context.Context, destination string) ([]types.VideoReference, error) {
	args := m.Called(ctx, destination)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]types.VideoReference), args.Error(1)
}

// modelResponse fabricates a parseable reply covering the given day count.
func modelResponse(days int) string {
	var b strings.Builder
	for d := 1; d <= days; d++ {
		fmt.Fprintf(&b, "Day %d:\n", d)
		fmt.Fprintf(&b, "9:00 AM: Visit Anjuna Beach - sunrise walk (₹500, 3 hours)\n")
		fmt.Fprintf(&b, "2:00 PM: Explore Fort Aguada - fort tour (₹1000, 2 hours)\n")
		fmt.Fprintf(&b, "7:00 PM: Dinner at beach shack - seafood (₹1500, 2 hours)\n\n")
	}
	return b.String()
}

func newTestService(gen ContentGenerator, inf InfluencerFetcher, vids VideoFetcher) *ServiceImpl {
	return NewItineraryService(gen, inf, vids, 0.10, nil, slog.Default())
}

func TestGenerateItinerary(t *testing.T) {
	ctx := context.Background()
	req := types.TripRequest{
		Destination:  "Goa",
		DurationDays: 3,
		Budget:       15000,
		Themes:       []string{"Adventure"},
	}

	t.Run("Success", func(t *testing.T) {
		mockGen := new(MockGenerator)
		mockInf := new(MockInfluencerFetcher)
		mockVids := new(MockVideoFetcher)

		mockInf.On("GetRecommendations", mock.Anything, "Goa").Return([]types.InfluencerRecommendation{
			{Place: "Fort Aguada", Tip: "Go early", Influencer: "traveler_x"},
		}, nil).Once()
		mockVids.On("GetTravelContent", mock.Anything, "Goa").Return([]types.VideoReference{
			{VideoID: "v1", Title: "Goa Vlog", Locations: []string{"Anjuna Beach"}},
		}, nil).Once()
		mockGen.On("GenerateContent", mock.Anything, mock.Anything).Return(modelResponse(3), nil).Once()

		service := newTestService(mockGen, mockInf, mockVids)
		it, err := service.GenerateItinerary(ctx, req)

		assert.NoError(t, err)
		assert.Len(t, it.DailyPlans, 3)
		for _, day := range it.DailyPlans {
			assert.NotEmpty(t, day.Activities)
		}
		assert.True(t, it.DataSources.AIPowered)
		assert.False(t, it.DataSources.TemplateBased)
		assert.Equal(t, 1, it.DataSources.InfluencerRecommendations)
		assert.Equal(t, 1, it.DataSources.YouTubeContent)
		assert.Equal(t, it.SumCosts(), it.TotalCost)
		assert.Equal(t, "Standard", it.BudgetType)
		mockGen.AssertExpectations(t)
		mockInf.AssertExpectations(t)
		mockVids.AssertExpectations(t)
	})

	t.Run("ModelFailureFallsBackToTemplate", func(t *testing.T) {
		mockGen := new(MockGenerator)
		mockInf := new(MockInfluencerFetcher)
		mockVids := new(MockVideoFetcher)

		mockInf.On("GetRecommendations", mock.Anything, "Goa").Return([]types.InfluencerRecommendation{}, nil).Once()
		mockVids.On("GetTravelContent", mock.Anything, "Goa").Return([]types.VideoReference{}, nil).Once()
		mockGen.On("GenerateContent", mock.Anything, mock.Anything).Return("", errors.New("quota exhausted")).Once()

		service := newTestService(mockGen, mockInf, mockVids)
		it, err := service.GenerateItinerary(ctx, req)

		assert.NoError(t, err)
		assert.Len(t, it.DailyPlans, 3)
		assert.True(t, it.DataSources.TemplateBased)
		assert.False(t, it.DataSources.AIPowered)
		for _, day := range it.DailyPlans {
			assert.Len(t, day.Activities, 3)
		}
	})

	t.Run("EnrichmentFailureStillGenerates", func(t *testing.T) {
		mockGen := new(MockGenerator)
		mockInf := new(MockInfluencerFetcher)
		mockVids := new(MockVideoFetcher)

		mockInf.On("GetRecommendations", mock.Anything, "Goa").Return(nil, errors.New("bigquery unavailable")).Once()
		mockVids.On("GetTravelContent", mock.Anything, "Goa").Return(nil, errors.New("quota exceeded")).Once()
		mockGen.On("GenerateContent", mock.Anything, mock.Anything).Return(modelResponse(3), nil).Once()

		service := newTestService(mockGen, mockInf, mockVids)
		it, err := service.GenerateItinerary(ctx, req)

		assert.NoError(t, err)
		assert.Len(t, it.DailyPlans, 3)
		assert.Zero(t, it.DataSources.InfluencerRecommendations)
		assert.Zero(t, it.DataSources.YouTubeContent)
	})

	t.Run("ShortResponseIsPadded", func(t *testing.T) {
		mockGen := new(MockGenerator)
		mockGen.On("GenerateContent", mock.Anything, mock.Anything).Return(modelResponse(2), nil).Once()

		service := newTestService(mockGen, nil, nil)
		it, err := service.GenerateItinerary(ctx, req)

		assert.NoError(t, err)
		assert.Len(t, it.DailyPlans, 3)
		assert.Equal(t, 3, it.DailyPlans[2].Day)
		assert.NotEmpty(t, it.DailyPlans[2].Activities)
	})

	t.Run("ExceedsBudgetFlag", func(t *testing.T) {
		mockGen := new(MockGenerator)
		mockGen.On("GenerateContent", mock.Anything, mock.Anything).Return(modelResponse(3), nil).Once()

		service := newTestService(mockGen, nil, nil)
		tight := req
		tight.Budget = 5000 // parsed total is 9000, margin is 10%
		it, err := service.GenerateItinerary(ctx, tight)

		assert.NoError(t, err)
		assert.True(t, it.ExceedsBudget)
	})

	t.Run("InvalidRequest", func(t *testing.T) {
		service := newTestService(new(MockGenerator), nil, nil)

		_, err := service.GenerateItinerary(ctx, types.TripRequest{DurationDays: 3, Budget: 1000})
		assert.ErrorIs(t, err, types.ErrEmptyDestination)

		_, err = service.GenerateItinerary(ctx, types.TripRequest{Destination: "Goa", Budget: 1000})
		assert.ErrorIs(t, err, types.ErrInvalidDuration)

		_, err = service.GenerateItinerary(ctx, types.TripRequest{Destination: "Goa", DurationDays: 2, Budget: -5})
		assert.ErrorIs(t, err, types.ErrNegativeBudget)
	})
}

func TestGenerateItineraryOptions(t *testing.T) {
	ctx := context.Background()
	req := types.TripRequest{Destination: "Goa", DurationDays: 2, Budget: 10000}

	t.Run("ThreeTiers", func(t *testing.T) {
		mockGen := new(MockGenerator)
		mockGen.On("GenerateContent", mock.Anything, mock.Anything).Return(modelResponse(2), nil).Times(3)

		service := newTestService(mockGen, nil, nil)
		options, err := service.GenerateItineraryOptions(ctx, req)

		assert.NoError(t, err)
		assert.Len(t, options, 3)
		assert.Equal(t, "Budget-Friendly", options[0].BudgetType)
		assert.Equal(t, 8000, options[0].Budget)
		assert.Equal(t, "Standard", options[1].BudgetType)
		assert.Equal(t, 10000, options[1].Budget)
		assert.Equal(t, "Premium", options[2].BudgetType)
		assert.Equal(t, 13000, options[2].Budget)
		mockGen.AssertExpectations(t)
	})

	t.Run("AllTiersFailYieldsTemplates", func(t *testing.T) {
		mockGen := new(MockGenerator)
		mockGen.On("GenerateContent", mock.Anything, mock.Anything).Return("", errors.New("model offline")).Times(3)

		service := newTestService(mockGen, nil, nil)
		options, err := service.GenerateItineraryOptions(ctx, req)

		assert.NoError(t, err)
		assert.Len(t, options, 3)
		for _, opt := range options {
			assert.True(t, opt.DataSources.TemplateBased)
			assert.Len(t, opt.DailyPlans, 2)
		}
	})
}

func TestSelectBestOption(t *testing.T) {
	mk := func(cost int) *types.Itinerary {
		return &types.Itinerary{TotalCost: cost}
	}

	t.Run("ClosestUnderBudget", func(t *testing.T) {
		best := SelectBestOption([]*types.Itinerary{mk(5000), mk(9000), mk(20000)}, 10000)
		assert.Equal(t, 9000, best.TotalCost)
	})

	t.Run("AllOverBudgetPicksCheapest", func(t *testing.T) {
		best := SelectBestOption([]*types.Itinerary{mk(15000), mk(12000)}, 10000)
		assert.Equal(t, 12000, best.TotalCost)
	})

	t.Run("Empty", func(t *testing.T) {
		assert.Nil(t, SelectBestOption(nil, 10000))
	})
}

func TestModifyItinerary(t *testing.T) {
	ctx := context.Background()
	current := &types.Itinerary{
		Destination:  "Goa",
		DurationDays: 2,
		Budget:       10000,
		BudgetType:   "Standard",
		DailyPlans: []types.DayPlan{
			{Day: 1, Activities: []types.Activity{{TimeSlot: "9:00 AM", Name: "Beach walk", Cost: 200, Duration: "2 hours"}}},
			{Day: 2, Activities: []types.Activity{{TimeSlot: "10:00 AM", Name: "Fort visit", Cost: 300, Duration: "3 hours"}}},
		},
	}

	intentResponse := `MODIFICATION_TYPE: change_budget
SPECIFIC_CHANGES: upgrade hotels and dining
NEW_THEMES: luxury
BUDGET_ADJUSTMENT: increase
DAY_FOCUS: all
ACTIVITY_DISTRIBUTION: maintain
ACCOMMODATION_PREFERENCE: luxury
ADDITIONAL_CONTEXT: none`

	t.Run("Success", func(t *testing.T) {
		mockGen := new(MockGenerator)
		mockGen.On("GenerateWithConfig", mock.Anything, mock.Anything, mock.Anything).Return(intentResponse, nil).Once()
		mockGen.On("GenerateContent", mock.Anything, mock.Anything).Return(modelResponse(2), nil).Once()

		service := newTestService(mockGen, nil, nil)
		modified, err := service.ModifyItinerary(ctx, current, "make it more luxurious")

		assert.NoError(t, err)
		assert.Equal(t, "make it more luxurious", modified.ModificationApplied)
		assert.Equal(t, 12000, modified.Budget) // 20% increase
		assert.Equal(t, "Premium", modified.BudgetType)
		assert.Equal(t, "Goa", modified.Destination)
		assert.Len(t, modified.DailyPlans, 2)
		mockGen.AssertExpectations(t)
	})

	t.Run("IntentFailureReturnsOriginal", func(t *testing.T) {
		mockGen := new(MockGenerator)
		mockGen.On("GenerateWithConfig", mock.Anything, mock.Anything, mock.Anything).Return("", errors.New("timeout")).Once()

		service := newTestService(mockGen, nil, nil)
		result, err := service.ModifyItinerary(ctx, current, "add food stops")

		assert.Error(t, err)
		assert.Same(t, current, result)
		assert.Empty(t, result.ModificationApplied)
	})

	t.Run("RegenerationFailureReturnsOriginal", func(t *testing.T) {
		mockGen := new(MockGenerator)
		mockGen.On("GenerateWithConfig", mock.Anything, mock.Anything, mock.Anything).Return(intentResponse, nil).Once()
		mockGen.On("GenerateContent", mock.Anything, mock.Anything).Return("", errors.New("timeout")).Once()

		service := newTestService(mockGen, nil, nil)
		result, err := service.ModifyItinerary(ctx, current, "make it more luxurious")

		assert.Error(t, err)
		assert.Same(t, current, result)
	})

	t.Run("EmptyRequestRejected", func(t *testing.T) {
		service := newTestService(new(MockGenerator), nil, nil)
		result, err := service.ModifyItinerary(ctx, current, "  ")

		assert.Error(t, err)
		assert.Same(t, current, result)
	})
}
