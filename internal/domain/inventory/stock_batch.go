package inventory

import (
	"time"

	"github.com/fieldsales/backend/internal/domain/catalog"
	"github.com/fieldsales/backend/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// StockBatch is one expiry-dated lot of a product. At most one batch exists
// per (product, expiry date); replenishment with the same expiry merges by
// addition. Quantity is counted in pieces and never goes negative; fully
// drained batches are kept as zero-quantity rows.
type StockBatch struct {
	shared.BaseEntity
	ProductID       uuid.UUID
	Product         catalog.ProductSnapshot
	Quantity        int
	ExpiryDate      time.Time // date only, UTC midnight
	ManufactureDate time.Time // ExpiryDate - shelf life days
}

// NewStockBatch creates a batch for a product. The product snapshot is
// required because the manufacture date derives from its shelf life.
func NewStockBatch(product catalog.ProductSnapshot, quantity int, expiryDate time.Time) (*StockBatch, error) {
	if product.IsZero() {
		return nil, ErrMissingProductInfo
	}
	if quantity <= 0 {
		return nil, shared.ErrInvalidQuantity
	}
	expiry := shared.DateOnly(expiryDate)
	return &StockBatch{
		BaseEntity:      shared.NewBaseEntity(),
		ProductID:       product.ProductID,
		Product:         product,
		Quantity:        quantity,
		ExpiryDate:      expiry,
		ManufactureDate: expiry.AddDate(0, 0, -product.ShelfLifeDays),
	}, nil
}

// Deduct reduces the batch quantity, capped at what the batch holds.
// Returns the amount actually deducted.
func (b *StockBatch) Deduct(quantity int) int {
	if quantity <= 0 {
		return 0
	}
	deducted := quantity
	if deducted > b.Quantity {
		deducted = b.Quantity
	}
	b.Quantity -= deducted
	b.UpdatedAt = time.Now()
	return deducted
}

// Add increases the batch quantity (intake, unsold return, restoration)
func (b *StockBatch) Add(quantity int) error {
	if quantity <= 0 {
		return shared.ErrInvalidQuantity
	}
	b.Quantity += quantity
	b.UpdatedAt = time.Now()
	return nil
}

// HasStock reports whether the batch has available quantity
func (b *StockBatch) HasStock() bool {
	return b.Quantity > 0
}

// IsExpired reports whether the batch expiry date has passed
func (b *StockBatch) IsExpired(now time.Time) bool {
	return b.ExpiryDate.Before(shared.DateOnly(now))
}

// Value returns the batch value at the captured per-piece price
func (b *StockBatch) Value() decimal.Decimal {
	return b.Product.PricePerPiece().Mul(decimal.NewFromInt(int64(b.Quantity)))
}
