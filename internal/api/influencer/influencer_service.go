package influencer

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"

	"github.com/travelmind-ai/travelmind-server/internal/types"
)

var _ Service = (*ServiceImpl)(nil)

// Service defines the business logic contract for influencer lookups.
type Service interface {
	GetRecommendations(ctx context.Context, destination string) ([]types.InfluencerRecommendation, error)
}

type ServiceImpl struct {
	logger         *slog.Logger
	influencerRepo Repository
}

func NewServiceImpl(influencerRepo Repository, logger *slog.Logger) *ServiceImpl {
	return &ServiceImpl{
		logger:         logger,
		influencerRepo: influencerRepo,
	}
}

func (s *ServiceImpl) GetRecommendations(ctx context.Context, destination string) ([]types.InfluencerRecommendation, error) {
	ctx, span := otel.Tracer("InfluencerService").Start(ctx, "GetRecommendations")
	defer span.End()
	span.SetAttributes(attribute.String("destination", destination))

	if strings.TrimSpace(destination) == "" {
		return nil, fmt.Errorf("destination is required")
	}

	recommendations, err := s.influencerRepo.GetRecommendations(ctx, destination)
	if err != nil {
		s.logger.ErrorContext(ctx, "Repository failed to get recommendations", slog.Any("error", err))
		span.RecordError(err)
		return nil, fmt.Errorf("failed to get influencer recommendations: %w", err)
	}

	span.SetStatus(codes.Ok, "Recommendations retrieved")
	return recommendations, nil
}
