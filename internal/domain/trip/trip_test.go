package trip

import (
	"testing"
	"time"

	"github.com/fieldsales/backend/internal/domain/shared"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTripLifecycle(t *testing.T) {
	t.Run("full run computes distance and duration", func(t *testing.T) {
		tr, err := NewTrip("John Kamau", "KDA 123X", "Thika Road")
		require.NoError(t, err)
		assert.Equal(t, TripStatusPending, tr.Status)

		start := time.Date(2026, 8, 20, 7, 0, 0, 0, time.UTC)
		require.NoError(t, tr.Start(12000, start))
		assert.Equal(t, TripStatusOngoing, tr.Status)
		assert.True(t, tr.IsActive())

		end := start.Add(9*time.Hour + 30*time.Minute)
		require.NoError(t, tr.End(12145, end))
		assert.Equal(t, TripStatusEnded, tr.Status)
		assert.Equal(t, 145, tr.TotalKm)
		assert.Equal(t, 570, tr.DurationMinutes)
		assert.False(t, tr.IsActive())
	})

	t.Run("requires distributor name", func(t *testing.T) {
		_, err := NewTrip("", "KDA 123X", "")
		var derr *shared.DomainError
		require.ErrorAs(t, err, &derr)
		assert.Equal(t, "MISSING_DISTRIBUTOR", derr.Code)
	})

	t.Run("cannot start twice", func(t *testing.T) {
		tr, _ := NewTrip("John Kamau", "", "")
		require.NoError(t, tr.Start(100, time.Now()))
		assert.ErrorIs(t, tr.Start(100, time.Now()), shared.ErrInvalidState)
	})

	t.Run("cannot end a pending trip", func(t *testing.T) {
		tr, _ := NewTrip("John Kamau", "", "")
		assert.ErrorIs(t, tr.End(100, time.Now()), shared.ErrInvalidState)
	})

	t.Run("end odometer must exceed start", func(t *testing.T) {
		tr, _ := NewTrip("John Kamau", "", "")
		require.NoError(t, tr.Start(500, time.Now()))

		err := tr.End(500, time.Now())
		var derr *shared.DomainError
		require.ErrorAs(t, err, &derr)
		assert.Equal(t, "INVALID_ODOMETER", derr.Code)
		assert.Equal(t, TripStatusOngoing, tr.Status)
	})
}

func TestRecordCashSubmission(t *testing.T) {
	tr, _ := NewTrip("John Kamau", "", "")

	t.Run("rejected before trip ends", func(t *testing.T) {
		assert.ErrorIs(t, tr.RecordCashSubmission(decimal.NewFromInt(500)), shared.ErrInvalidState)
	})

	t.Run("recorded after trip ends", func(t *testing.T) {
		require.NoError(t, tr.Start(100, time.Now()))
		require.NoError(t, tr.End(150, time.Now().Add(time.Hour)))

		require.NoError(t, tr.RecordCashSubmission(decimal.NewFromInt(820)))
		require.NotNil(t, tr.ActualCashSubmission)
		assert.True(t, tr.ActualCashSubmission.Equal(decimal.NewFromInt(820)))
	})

	t.Run("rejects negative amount", func(t *testing.T) {
		err := tr.RecordCashSubmission(decimal.NewFromInt(-1))
		var derr *shared.DomainError
		require.ErrorAs(t, err, &derr)
		assert.Equal(t, "INVALID_AMOUNT", derr.Code)
	})
}
