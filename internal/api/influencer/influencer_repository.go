package influencer

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"cloud.google.com/go/bigquery"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"google.golang.org/api/iterator"

	"github.com/travelmind-ai/travelmind-server/internal/types"
)

var _ Repository = (*BigQueryRepository)(nil)

// Repository defines read-only access to the stored recommendation rows.
type Repository interface {
	GetRecommendations(ctx context.Context, destination string) ([]types.InfluencerRecommendation, error)
}

// BigQueryRepository reads the curated recommendation table in the
// analytics warehouse. The table is provisioned externally.
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

// recommendationRow mirrors the warehouse schema.
type recommendationRow struct {
	Platform       string  `bigquery:"platform"`
	InfluencerName string  `bigquery:"influencer_name"`
	PlaceName      string  `bigquery:"place_name"`
	Recommendation string  `bigquery:"recommendation"`
	Category       string  `bigquery:"category"`
	BudgetRange    string  `bigquery:"budget_range"`
	BestTime       string  `bigquery:"best_time"`
	Latitude       float64 `bigquery:"latitude"`
	Longitude      float64 `bigquery:"longitude"`
}

// GetRecommendations returns the stored rows for a destination. A
// destination with no rows yields an empty slice, not an error.
func (r *BigQueryRepository) GetRecommendations(ctx context.Context, destination string) ([]types.InfluencerRecommendation, error) {
	ctx, span := otel.Tracer("InfluencerRepo").Start(ctx, "GetRecommendations")
	defer span.End()
	span.SetAttributes(
		attribute.String("db.system", "bigquery"),
		attribute.String("db.sql.table", r.table),
		attribute.String("destination", destination),
	)

	l := r.logger.With(slog.String("method", "GetRecommendations"), slog.String("destination", destination))
	l.DebugContext(ctx, "Querying influencer recommendations")

	query := r.client.Query(fmt.Sprintf(`
        SELECT platform, influencer_name, place_name, recommendation,
               category, budget_range, best_time, latitude, longitude
        FROM %s.%s.%s
        WHERE LOWER(destination) = LOWER(@destination)`,
		quoteIdent(r.client.Project()), quoteIdent(r.dataset), quoteIdent(r.table)))
	query.Parameters = []bigquery.QueryParameter{
		{Name: "destination", Value: destination},
	}

	it, err := query.Read(ctx)
	if err != nil {
		l.ErrorContext(ctx, "Warehouse query failed", slog.Any("error", err))
		span.RecordError(err)
		span.SetStatus(codes.Error, "warehouse query failed")
		return nil, fmt.Errorf("warehouse error fetching recommendations: %w", err)
	}

	recommendations := make([]types.InfluencerRecommendation, 0)
	for {
		var row recommendationRow
		err := it.Next(&row)
		if errors.Is(err, iterator.Done) {
			break
		}
		if err != nil {
			l.ErrorContext(ctx, "Failed to read recommendation row", slog.Any("error", err))
			span.RecordError(err)
			return nil, fmt.Errorf("warehouse error reading recommendations: %w", err)
		}
		recommendations = append(recommendations, types.InfluencerRecommendation{
			Platform:    row.Platform,
			Influencer:  row.InfluencerName,
			Place:       row.PlaceName,
			Tip:         row.Recommendation,
			Category:    row.Category,
			BudgetRange: row.BudgetRange,
			BestTime:    row.BestTime,
			Latitude:    row.Latitude,
			Longitude:   row.Longitude,
		})
	}

	span.SetAttributes(attribute.Int("recommendations.count", len(recommendations)))
	return recommendations, nil
}

// quoteIdent wraps a BigQuery identifier in backticks.
func quoteIdent(ident string) string {
	return "`" + ident + "`"
}
