package feedback

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"

	"github.com/travelmind-ai/travelmind-server/internal/types"
)

// ErrInvalidFeedback marks feedback rejected before reaching the warehouse.
var ErrInvalidFeedback = errors.New("invalid feedback")

var _ Service = (*ServiceImpl)(nil)

// Service defines the business logic contract for feedback operations.
type Service interface {
	StoreFeedback(ctx context.Context, fb types.Feedback) error
	DestinationInsights(ctx context.Context, destination string) ([]types.DestinationInsight, error)
}

type ServiceImpl struct {
	logger       *slog.Logger
	feedbackRepo Repository
}

func NewServiceImpl(feedbackRepo Repository, logger *slog.Logger) *ServiceImpl {
	return &ServiceImpl{
		logger:       logger,
		feedbackRepo: feedbackRepo,
	}
}

func (s *ServiceImpl) StoreFeedback(ctx context.Context, fb types.Feedback) error {
	ctx, span := otel.Tracer("FeedbackService").Start(ctx, "StoreFeedback")
	defer span.End()

	if fb.Destination == "" {
		return fmt.Errorf("%w: destination is required", ErrInvalidFeedback)
	}
	if fb.Rating < 1 || fb.Rating > 5 {
		return fmt.Errorf("%w: rating must be between 1 and 5", ErrInvalidFeedback)
	}

	if err := s.feedbackRepo.StoreFeedback(ctx, fb); err != nil {
		s.logger.ErrorContext(ctx, "Repository failed to store feedback", slog.Any("error", err))
		span.RecordError(err)
		return fmt.Errorf("failed to store feedback: %w", err)
	}

	span.SetStatus(codes.Ok, "Feedback stored")
	return nil
}

func (s *ServiceImpl) DestinationInsights(ctx context.Context, destination string) ([]types.DestinationInsight, error) {
	ctx, span := otel.Tracer("FeedbackService").Start(ctx, "DestinationInsights")
	defer span.End()
	span.SetAttributes(attribute.String("destination", destination))

	insights, err := s.feedbackRepo.DestinationInsights(ctx, destination)
	if err != nil {
		s.logger.ErrorContext(ctx, "Repository failed to get insights", slog.Any("error", err))
		span.RecordError(err)
		return nil, fmt.Errorf("failed to get destination insights: %w", err)
	}

	return insights, nil
}
