package sales

import (
	"context"

	"github.com/google/uuid"
)

// SaleRepository persists sales
type SaleRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*Sale, error)
	FindByTrip(ctx context.Context, tripID uuid.UUID) ([]*Sale, error)
	Save(ctx context.Context, sale *Sale) error
}

// ReturnRepository persists return records
type ReturnRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*ReturnRecord, error)
	FindByTrip(ctx context.Context, tripID uuid.UUID) ([]*ReturnRecord, error)
	Save(ctx context.Context, record *ReturnRecord) error
	Delete(ctx context.Context, id uuid.UUID) error
}
