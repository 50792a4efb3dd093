package trip

import (
	"context"

	"github.com/fieldsales/backend/internal/domain/shared"
	"github.com/google/uuid"
)

// TripRepository persists trips
type TripRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*Trip, error)
	FindAll(ctx context.Context, filter shared.Filter) (*shared.Paginated[*Trip], error)
	Save(ctx context.Context, trip *Trip) error
}

// AllocationRepository persists trip stock allocations
type AllocationRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*Allocation, error)
	FindByTrip(ctx context.Context, tripID uuid.UUID) ([]*Allocation, error)
	FindByTripAndProduct(ctx context.Context, tripID, productID uuid.UUID) ([]*Allocation, error)
	Save(ctx context.Context, allocation *Allocation) error
	Delete(ctx context.Context, id uuid.UUID) error
}
