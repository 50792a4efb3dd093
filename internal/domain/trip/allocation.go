package trip

import (
	"time"

	"github.com/fieldsales/backend/internal/domain/catalog"
	"github.com/fieldsales/backend/internal/domain/shared"
	"github.com/google/uuid"
)

// Allocation records stock moved from the warehouse onto a trip. The
// product snapshot and source expiry date are captured at allocation time
// so the trip reconciliation and any later restoration do not depend on
// the live catalog or ledger.
type Allocation struct {
	shared.BaseEntity
	TripID           uuid.UUID
	ProductID        uuid.UUID
	Product          catalog.ProductSnapshot
	Quantity         int
	SourceExpiryDate time.Time
	AllocatedBy      string
	AllocatedAt      time.Time
}

// NewAllocation builds an allocation for a trip. The source expiry date is
// the expiry of the first batch the warehouse depletion drew from.
func NewAllocation(tripID uuid.UUID, product catalog.ProductSnapshot, quantity int, sourceExpiry time.Time, allocatedBy string) (*Allocation, error) {
	if product.IsZero() {
		return nil, shared.ErrInvalidInput
	}
	if quantity <= 0 {
		return nil, shared.ErrInvalidQuantity
	}
	return &Allocation{
		BaseEntity:       shared.NewBaseEntity(),
		TripID:           tripID,
		ProductID:        product.ProductID,
		Product:          product,
		Quantity:         quantity,
		SourceExpiryDate: shared.DateOnly(sourceExpiry),
		AllocatedBy:      allocatedBy,
		AllocatedAt:      time.Now(),
	}, nil
}
