package share

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	semconv "go.opentelemetry.io/otel/semconv/v1.26.0"

	"github.com/travelmind-ai/travelmind-server/internal/types"
)

// ErrShareCodeNotFound is returned when no itinerary is stored under a code.
var ErrShareCodeNotFound = errors.New("share code not found")

var _ Repository = (*PostgresShareRepository)(nil)

// Repository defines the contract for shared itinerary persistence.
type Repository interface {
	SaveSharedItinerary(ctx context.Context, shareCode string, itinerary types.Itinerary) error
	GetSharedItinerary(ctx context.Context, shareCode string) (*types.SharedItinerary, error)
}

// PgxPool is the subset of pgxpool.Pool used by the repository.
type PgxPool interface {
	Exec(ctx context.Context, sql string, arguments ...any) (pgconn.CommandTag, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

type PostgresShareRepository struct {
	logger *slog.Logger
	pgpool PgxPool
}

func NewPostgresShareRepository(pgpool PgxPool, logger *slog.Logger) *PostgresShareRepository {
	return &PostgresShareRepository{
		logger: logger,
		pgpool: pgpool,
	}
}

// SaveSharedItinerary stores the itinerary payload under the share code.
func (r *PostgresShareRepository) SaveSharedItinerary(ctx context.Context, shareCode string, itinerary types.Itinerary) error {
	ctx, span := otel.Tracer("ShareRepo").Start(ctx, "SaveSharedItinerary")
	defer span.End()
	span.SetAttributes(
		semconv.DBSystemPostgreSQL,
		attribute.String("db.sql.table", "shared_itineraries"),
		attribute.String("share.code", shareCode),
	)

	l := r.logger.With(slog.String("method", "SaveSharedItinerary"), slog.String("shareCode", shareCode))

	payload, err := json.Marshal(itinerary)
	if err != nil {
		l.ErrorContext(ctx, "Failed to marshal itinerary payload", slog.Any("error", err))
		span.RecordError(err)
		return fmt.Errorf("failed to marshal itinerary: %w", err)
	}

	query := `
        INSERT INTO shared_itineraries (share_code, itinerary_id, destination, payload)
        VALUES ($1, $2, $3, $4)`

	_, err = r.pgpool.Exec(ctx, query, shareCode, itinerary.ID, itinerary.Destination, payload)
	if err != nil {
		l.ErrorContext(ctx, "Failed to insert shared itinerary", slog.Any("error", err))
		span.RecordError(err)
		span.SetStatus(codes.Error, "DB insert failed")
		return fmt.Errorf("database error saving shared itinerary: %w", err)
	}

	return nil
}

// GetSharedItinerary loads an itinerary by share code.
func (r *PostgresShareRepository) GetSharedItinerary(ctx context.Context, shareCode string) (*types.SharedItinerary, error) {
	ctx, span := otel.Tracer("ShareRepo").Start(ctx, "GetSharedItinerary")
	defer span.End()
	span.SetAttributes(
		semconv.DBSystemPostgreSQL,
		attribute.String("db.sql.table", "shared_itineraries"),
		attribute.String("share.code", shareCode),
	)

	l := r.logger.With(slog.String("method", "GetSharedItinerary"), slog.String("shareCode", shareCode))

	query := `
        SELECT payload, created_at
        FROM shared_itineraries
        WHERE share_code = $1`

	var payload []byte
	var createdAt time.Time
	err := r.pgpool.QueryRow(ctx, query, shareCode).Scan(&payload, &createdAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			span.SetStatus(codes.Error, "not found")
			return nil, ErrShareCodeNotFound
		}
		l.ErrorContext(ctx, "Failed to query shared itinerary", slog.Any("error", err))
		span.RecordError(err)
		span.SetStatus(codes.Error, "DB query failed")
		return nil, fmt.Errorf("database error fetching shared itinerary: %w", err)
	}

	var itinerary types.Itinerary
	if err := json.Unmarshal(payload, &itinerary); err != nil {
		l.ErrorContext(ctx, "Failed to unmarshal itinerary payload", slog.Any("error", err))
		span.RecordError(err)
		return nil, fmt.Errorf("failed to unmarshal itinerary payload: %w", err)
	}

	return &types.SharedItinerary{
		ShareCode: shareCode,
		Itinerary: itinerary,
		CreatedAt: createdAt,
	}, nil
}
