package share

import (
	"context"
	"crypto/rand"
	"fmt"
	"log/slog"
	"math/big"
	"strings"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"

	"github.com/travelmind-ai/travelmind-server/internal/types"
)

const (
	shareCodeLength  = 12
	shareCodeCharset = "ABCDEFGHJKLMNPQRSTUVWXYZ23456789" // no 0/O/1/I
)

var _ Service = (*ServiceImpl)(nil)

// Service defines the business logic contract for itinerary sharing.
type Service interface {
	ShareItinerary(ctx context.Context, itinerary types.Itinerary) (string, error)
	LoadSharedItinerary(ctx context.Context, shareCode string) (*types.SharedItinerary, error)
}

type ServiceImpl struct {
	logger    *slog.Logger
	shareRepo Repository
}

func NewServiceImpl(shareRepo Repository, logger *slog.Logger) *ServiceImpl {
	return &ServiceImpl{
		logger:    logger,
		shareRepo: shareRepo,
	}
}

// generateShareCode produces a random, unambiguous code.
func generateShareCode() (string, error) {
	var sb strings.Builder
	max := big.NewInt(int64(len(shareCodeCharset)))
	for i := 0; i < shareCodeLength; i++ {
		n, err := rand.Int(rand.Reader, max)
		if err != nil {
			return "", fmt.Errorf("failed to generate share code: %w", err)
		}
		sb.WriteByte(shareCodeCharset[n.Int64()])
	}
	return sb.String(), nil
}

// ShareItinerary persists the itinerary and returns its share code.
func (s *ServiceImpl) ShareItinerary(ctx context.Context, itinerary types.Itinerary) (string, error) {
	ctx, span := otel.Tracer("ShareService").Start(ctx, "ShareItinerary")
	defer span.End()
	span.SetAttributes(attribute.String("itinerary.id", itinerary.ID.String()))

	if len(itinerary.DailyPlans) == 0 {
		return "", fmt.Errorf("cannot share an itinerary without daily plans")
	}

	code, err := generateShareCode()
	if err != nil {
		span.RecordError(err)
		return "", err
	}

	if err := s.shareRepo.SaveSharedItinerary(ctx, code, itinerary); err != nil {
		s.logger.ErrorContext(ctx, "Repository failed to save shared itinerary", slog.Any("error", err))
		span.RecordError(err)
		return "", fmt.Errorf("failed to share itinerary: %w", err)
	}

	span.SetStatus(codes.Ok, "Itinerary shared")
	s.logger.InfoContext(ctx, "Itinerary shared", slog.String("shareCode", code))
	return code, nil
}

// LoadSharedItinerary loads a previously shared itinerary by code. Codes are
// matched case-insensitively.
func (s *ServiceImpl) LoadSharedItinerary(ctx context.Context, shareCode string) (*types.SharedItinerary, error) {
	ctx, span := otel.Tracer("ShareService").Start(ctx, "LoadSharedItinerary")
	defer span.End()

	code := strings.ToUpper(strings.TrimSpace(shareCode))
	if code == "" {
		return nil, fmt.Errorf("share code is required")
	}
	span.SetAttributes(attribute.String("share.code", code))

	shared, err := s.shareRepo.GetSharedItinerary(ctx, code)
	if err != nil {
		span.RecordError(err)
		return nil, err
	}

	span.SetStatus(codes.Ok, "Shared itinerary loaded")
	return shared, nil
}
