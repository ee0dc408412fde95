package feedback

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"cloud.google.com/go/bigquery"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"google.golang.org/api/iterator"

	"github.com/travelmind-ai/travelmind-server/internal/types"
)

var _ Repository = (*BigQueryRepository)(nil)

// Repository defines the feedback persistence and aggregation contract.
type Repository interface {
	StoreFeedback(ctx context.Context, fb types.Feedback) error
	DestinationInsights(ctx context.Context, destination string) ([]types.DestinationInsight, error)
}

// BigQueryRepository appends feedback rows to the warehouse and reads
// aggregated destination insights back.
type BigQueryRepository struct {
	client  *bigquery.Client
	dataset string
	table   string
	logger  *slog.Logger
}

func NewBigQueryRepository(client *bigquery.Client, dataset, table string, logger *slog.Logger) *BigQueryRepository {
	return &BigQueryRepository{
		client:  client,
		dataset: dataset,
		table:   table,
		logger:  logger,
	}
}

type feedbackRow struct {
	ItineraryID    string    `bigquery:"itinerary_id"`
	Destination    string    `bigquery:"destination"`
	Rating         int       `bigquery:"rating"`
	Comments       string    `bigquery:"comments"`
	LikedPlaces    []string  `bigquery:"liked_places"`
	DislikedPlaces []string  `bigquery:"disliked_places"`
	BudgetAccuracy int       `bigquery:"budget_accuracy"`
	Timestamp      time.Time `bigquery:"timestamp"`
}

// StoreFeedback appends one feedback row via the streaming inserter.
func (r *BigQueryRepository) StoreFeedback(ctx context.Context, fb types.Feedback) error {
	ctx, span := otel.Tracer("FeedbackRepo").Start(ctx, "StoreFeedback")
	defer span.End()
	span.SetAttributes(
		attribute.String("db.system", "bigquery"),
		attribute.String("db.sql.table", r.table),
	)

	l := r.logger.With(slog.String("method", "StoreFeedback"), slog.String("destination", fb.Destination))

	ts := fb.Timestamp
	if ts.IsZero() {
		ts = time.Now().UTC()
	}
	row := &feedbackRow{
		ItineraryID:    fb.ItineraryID.String(),
		Destination:    fb.Destination,
		Rating:         fb.Rating,
		Comments:       fb.Comments,
		LikedPlaces:    fb.LikedPlaces,
		DislikedPlaces: fb.DislikedPlaces,
		BudgetAccuracy: fb.BudgetAccuracy,
		Timestamp:      ts,
	}

	inserter := r.client.Dataset(r.dataset).Table(r.table).Inserter()
	if err := inserter.Put(ctx, row); err != nil {
		l.ErrorContext(ctx, "Failed to insert feedback row", slog.Any("error", err))
		span.RecordError(err)
		span.SetStatus(codes.Error, "insert failed")
		return fmt.Errorf("warehouse error storing feedback: %w", err)
	}

	return nil
}

type insightRow struct {
	LikedPlaces         []string `bigquery:"liked_places"`
	RecommendationCount int64    `bigquery:"recommendation_count"`
	AvgRating           float64  `bigquery:"avg_rating"`
	BudgetAccuracyScore float64  `bigquery:"budget_accuracy_score"`
}

// DestinationInsights aggregates stored feedback for a destination.
func (r *BigQueryRepository) DestinationInsights(ctx context.Context, destination string) ([]types.DestinationInsight, error) {
	ctx, span := otel.Tracer("FeedbackRepo").Start(ctx, "DestinationInsights")
	defer span.End()
	span.SetAttributes(attribute.String("destination", destination))

	l := r.logger.With(slog.String("method", "DestinationInsights"), slog.String("destination", destination))

	query := r.client.Query(fmt.Sprintf(`
        SELECT liked_places,
               COUNT(*) AS recommendation_count,
               AVG(rating) AS avg_rating,
               AVG(budget_accuracy) AS budget_accuracy_score
        FROM `+"`%s.%s.%s`"+`
        WHERE destination = @destination
        GROUP BY liked_places
        ORDER BY recommendation_count DESC
        LIMIT 10`, r.client.Project(), r.dataset, r.table))
	query.Parameters = []bigquery.QueryParameter{
		{Name: "destination", Value: destination},
	}

	it, err := query.Read(ctx)
	if err != nil {
		l.ErrorContext(ctx, "Insights query failed", slog.Any("error", err))
		span.RecordError(err)
		return nil, fmt.Errorf("warehouse error fetching insights: %w", err)
	}

	insights := make([]types.DestinationInsight, 0)
	for {
		var row insightRow
		err := it.Next(&row)
		if errors.Is(err, iterator.Done) {
			break
		}
		if err != nil {
			l.ErrorContext(ctx, "Failed to read insight row", slog.Any("error", err))
			span.RecordError(err)
			return nil, fmt.Errorf("warehouse error reading insights: %w", err)
		}
		insights = append(insights, types.DestinationInsight{
			LikedPlaces:         row.LikedPlaces,
			RecommendationCount: int(row.RecommendationCount),
			AvgRating:           row.AvgRating,
			BudgetAccuracyScore: row.BudgetAccuracyScore,
		})
	}

	return insights, nil
}
