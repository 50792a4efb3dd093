package inventory

import (
	"testing"
	"time"

	"github.com/fieldsales/backend/internal/domain/catalog"
	"github.com/fieldsales/backend/internal/domain/shared"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewStockBatch(t *testing.T) {
	snapshot := testSnapshot()

	t.Run("derives manufacture date from shelf life", func(t *testing.T) {
		expiry := time.Date(2026, 9, 15, 13, 45, 0, 0, time.Local)

		batch, err := NewStockBatch(snapshot, 48, expiry)
		require.NoError(t, err)

		assert.Equal(t, time.Date(2026, 9, 15, 0, 0, 0, 0, time.UTC), batch.ExpiryDate)
		assert.Equal(t, time.Date(2026, 9, 1, 0, 0, 0, 0, time.UTC), batch.ManufactureDate)
		assert.Equal(t, snapshot.ProductID, batch.ProductID)
		assert.Equal(t, 48, batch.Quantity)
		assert.NotEmpty(t, batch.ID)
	})

	t.Run("requires product snapshot", func(t *testing.T) {
		_, err := NewStockBatch(catalog.ProductSnapshot{}, 10, time.Now())
		assert.ErrorIs(t, err, ErrMissingProductInfo)
	})

	t.Run("rejects non-positive quantity", func(t *testing.T) {
		_, err := NewStockBatch(snapshot, 0, time.Now())
		assert.ErrorIs(t, err, shared.ErrInvalidQuantity)
	})
}

func TestStockBatchDeduct(t *testing.T) {
	snapshot := testSnapshot()
	batch := testBatch(t, snapshot, 20, time.Date(2026, 9, 1, 0, 0, 0, 0, time.UTC))

	assert.Equal(t, 15, batch.Deduct(15))
	assert.Equal(t, 5, batch.Quantity)

	// capped at what remains, never negative
	assert.Equal(t, 5, batch.Deduct(10))
	assert.Equal(t, 0, batch.Quantity)
	assert.False(t, batch.HasStock())

	assert.Equal(t, 0, batch.Deduct(-1))
}

func TestStockBatchAdd(t *testing.T) {
	snapshot := testSnapshot()
	batch := testBatch(t, snapshot, 5, time.Date(2026, 9, 1, 0, 0, 0, 0, time.UTC))

	require.NoError(t, batch.Add(7))
	assert.Equal(t, 12, batch.Quantity)

	assert.ErrorIs(t, batch.Add(0), shared.ErrInvalidQuantity)
}

func TestStockBatchValue(t *testing.T) {
	snapshot := testSnapshot() // 240 per packet of 12 = 20 per piece
	batch := testBatch(t, snapshot, 10, time.Date(2026, 9, 1, 0, 0, 0, 0, time.UTC))

	assert.True(t, batch.Value().Equal(decimal.NewFromInt(200)), "got %s", batch.Value())
}

func TestStockBatchIsExpired(t *testing.T) {
	snapshot := testSnapshot()
	batch := testBatch(t, snapshot, 10, time.Date(2026, 9, 1, 0, 0, 0, 0, time.UTC))

	assert.False(t, batch.IsExpired(time.Date(2026, 9, 1, 23, 0, 0, 0, time.UTC)))
	assert.True(t, batch.IsExpired(time.Date(2026, 9, 2, 0, 0, 0, 0, time.UTC)))
}
