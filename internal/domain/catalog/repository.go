package catalog

import (
	"context"

	"github.com/fieldsales/backend/internal/domain/shared"
	"github.com/google/uuid"
)

// ProductRepository provides access to the product catalog
type ProductRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*Product, error)
	FindAll(ctx context.Context, filter shared.Filter) (*shared.Paginated[*Product], error)
	Save(ctx context.Context, product *Product) error
	Delete(ctx context.Context, id uuid.UUID) error
	Count(ctx context.Context) (int64, error)
}
