package inventory

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// StockBatchRepository persists expiry-dated stock batches
type StockBatchRepository interface {
	// FindByProduct returns all batches of a product ordered by expiry
	// date ascending, including zero-quantity rows.
	FindByProduct(ctx context.Context, productID uuid.UUID) ([]*StockBatch, error)

	// FindByProductAndExpiry returns the batch for a product and expiry
	// date, or ErrBatchNotFound.
	FindByProductAndExpiry(ctx context.Context, productID uuid.UUID, expiryDate time.Time) (*StockBatch, error)

	// FindAvailable returns all batches with quantity > 0 across products,
	// ordered by expiry date ascending.
	FindAvailable(ctx context.Context) ([]*StockBatch, error)

	Save(ctx context.Context, batch *StockBatch) error

	// SumQuantityByProduct returns the total on-hand quantity for a product
	SumQuantityByProduct(ctx context.Context, productID uuid.UUID) (int, error)
}
