package share

import (
	"context"
	"encoding/json"
	"log/slog"
	"testing"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/pashagolub/pgxmock/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSaveSharedItinerary(t *testing.T) {
	ctx := context.Background()
	logger := slog.Default()

	t.Run("Success", func(t *testing.T) {
		mockPool, err := pgxmock.NewPool()
		require.NoError(t, err)
		defer mockPool.Close()

		it := sampleItinerary()
		mockPool.ExpectExec("INSERT INTO shared_itineraries").
			WithArgs("ABCDEF234567", it.ID, it.Destination, pgxmock.AnyArg()).
			WillReturnResult(pgxmock.NewResult("INSERT", 1))

		repo := NewPostgresShareRepository(mockPool, logger)
		err = repo.SaveSharedItinerary(ctx, "ABCDEF234567", it)

		assert.NoError(t, err)
		assert.NoError(t, mockPool.ExpectationsWereMet())
	})

	t.Run("InsertFailure", func(t *testing.T) {
		mockPool, err := pgxmock.NewPool()
		require.NoError(t, err)
		defer mockPool.Close()

		mockPool.ExpectExec("INSERT INTO shared_itineraries").
			WithArgs(pgxmock.AnyArg(), pgxmock.AnyArg(), pgxmock.AnyArg(), pgxmock.AnyArg()).
			WillReturnError(assert.AnError)

		repo := NewPostgresShareRepository(mockPool, logger)
		err = repo.SaveSharedItinerary(ctx, "ABCDEF234567", sampleItinerary())

		assert.Error(t, err)
	})
}

func TestGetSharedItinerary(t *testing.T) {
	ctx := context.Background()
	logger := slog.Default()

	t.Run("RoundTrip", func(t *testing.T) {
		mockPool, err := pgxmock.NewPool()
		require.NoError(t, err)
		defer mockPool.Close()

		it := sampleItinerary()
		payload, err := json.Marshal(it)
		require.NoError(t, err)
		createdAt := time.Date(2025, 6, 1, 10, 0, 0, 0, time.UTC)

		mockPool.ExpectQuery("SELECT payload, created_at").
			WithArgs("ABCDEF234567").
			WillReturnRows(pgxmock.NewRows([]string{"payload", "created_at"}).AddRow(payload, createdAt))

		repo := NewPostgresShareRepository(mockPool, logger)
		shared, err := repo.GetSharedItinerary(ctx, "ABCDEF234567")

		assert.NoError(t, err)
		assert.Equal(t, "ABCDEF234567", shared.ShareCode)
		assert.Equal(t, it.ID, shared.Itinerary.ID)
		assert.Equal(t, it.Destination, shared.Itinerary.Destination)
		assert.Len(t, shared.Itinerary.DailyPlans, len(it.DailyPlans))
		assert.Equal(t, createdAt, shared.CreatedAt)
		assert.NoError(t, mockPool.ExpectationsWereMet())
	})

	t.Run("UnknownCode", func(t *testing.T) {
		mockPool, err := pgxmock.NewPool()
		require.NoError(t, err)
		defer mockPool.Close()

		mockPool.ExpectQuery("SELECT payload, created_at").
			WithArgs("UNKNOWNCODE2").
			WillReturnError(pgx.ErrNoRows)

		repo := NewPostgresShareRepository(mockPool, logger)
		shared, err := repo.GetSharedItinerary(ctx, "UNKNOWNCODE2")

		assert.Nil(t, shared)
		assert.ErrorIs(t, err, ErrShareCodeNotFound)
	})

	t.Run("CorruptPayload", func(t *testing.T) {
		mockPool, err := pgxmock.NewPool()
		require.NoError(t, err)
		defer mockPool.Close()

		mockPool.ExpectQuery("SELECT payload, created_at").
			WithArgs("ABCDEF234567").
			WillReturnRows(pgxmock.NewRows([]string{"payload", "created_at"}).AddRow([]byte("{not json"), time.Now()))

		repo := NewPostgresShareRepository(mockPool, logger)
		_, err = repo.GetSharedItinerary(ctx, "ABCDEF234567")

		assert.Error(t, err)
	})
}
