package inventory

import (
	"fmt"

	"github.com/fieldsales/backend/internal/domain/shared"
	"github.com/google/uuid"
)

var (
	// ErrMissingProductInfo is returned when replenishment needs a new batch
	// but no product snapshot is available to derive shelf life and price.
	ErrMissingProductInfo = shared.NewDomainError("MISSING_PRODUCT_INFO", "product information required to create a stock batch")

	// ErrBatchNotFound is returned when no batch exists for the requested
	// product and expiry date.
	ErrBatchNotFound = shared.NewDomainError("BATCH_NOT_FOUND", "stock batch not found")
)

// InsufficientStockError reports a depletion request that exceeds the
// total available quantity across all batches of a product. The ledger is
// left untouched when this is returned.
type InsufficientStockError struct {
	ProductID   uuid.UUID
	ProductName string
	Requested   int
	Available   int
}

func (e *InsufficientStockError) Error() string {
	name := e.ProductName
	if name == "" {
		name = e.ProductID.String()
	}
	return fmt.Sprintf("insufficient stock for %s: requested %d, available %d", name, e.Requested, e.Available)
}

// Code implements the coded-error contract used by the HTTP layer
func (e *InsufficientStockError) Code() string {
	return "INSUFFICIENT_STOCK"
}
