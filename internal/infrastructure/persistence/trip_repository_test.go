package persistence

import (
	"context"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/fieldsales/backend/internal/domain/trip"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func TestGormTripRepository_FindByID(t *testing.T) {
	t.Run("finds existing trip", func(t *testing.T) {
		gormDB, mock, mockDB := newMockDB(t)
		defer mockDB.Close()
		repo := NewGormTripRepository(gormDB)

		tripID := uuid.New()
		now := time.Now()

		rows := sqlmock.NewRows([]string{
			"id", "created_at", "updated_at", "distributor_name", "vehicle_reg", "route",
			"status", "start_odometer", "end_odometer", "total_km",
			"started_at", "ended_at", "duration_minutes", "actual_cash_submission", "notes",
		}).AddRow(
			tripID, now, now, "John Kamau", "KDA 123X", "Thika Road",
			"ONGOING", 12000, 0, 0,
			now, nil, 0, nil, "",
		)

		mock.ExpectQuery(`SELECT \* FROM "trips" WHERE id = \$1`).
			WithArgs(tripID, 1).
			WillReturnRows(rows)

		found, err := repo.FindByID(context.Background(), tripID)
		require.NoError(t, err)
		assert.Equal(t, "John Kamau", found.DistributorName)
		assert.Equal(t, trip.TripStatusOngoing, found.Status)
		assert.Equal(t, 12000, found.StartOdometer)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("maps missing row to trip not found", func(t *testing.T) {
		gormDB, mock, mockDB := newMockDB(t)
		defer mockDB.Close()
		repo := NewGormTripRepository(gormDB)

		tripID := uuid.New()
		mock.ExpectQuery(`SELECT \* FROM "trips" WHERE id = \$1`).
			WithArgs(tripID, 1).
			WillReturnError(gorm.ErrRecordNotFound)

		_, err := repo.FindByID(context.Background(), tripID)
		assert.ErrorIs(t, err, trip.ErrTripNotFound)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}
