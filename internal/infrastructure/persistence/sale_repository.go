package persistence

import (
	"context"
	"errors"

	"github.com/fieldsales/backend/internal/domain/sales"
	"github.com/fieldsales/backend/internal/domain/shared"
	"github.com/fieldsales/backend/internal/infrastructure/persistence/models"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GormSaleRepository implements SaleRepository using GORM
type GormSaleRepository struct {
	db *gorm.DB
}

// NewGormSaleRepository creates a new GormSaleRepository
func NewGormSaleRepository(db *gorm.DB) *GormSaleRepository {
	return &GormSaleRepository{db: db}
}

// FindByID finds a sale and its items by ID
func (r *GormSaleRepository) FindByID(ctx context.Context, id uuid.UUID) (*sales.Sale, error) {
	var model models.SaleModel
	if err := r.db.WithContext(ctx).Preload("Items").First(&model, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindByTrip returns all sales recorded against a trip
func (r *GormSaleRepository) FindByTrip(ctx context.Context, tripID uuid.UUID) ([]*sales.Sale, error) {
	var modelRows []models.SaleModel
	if err := r.db.WithContext(ctx).
		Preload("Items").
		Where("trip_id = ?", tripID).
		Order("sold_at ASC").
		Find(&modelRows).Error; err != nil {
		return nil, err
	}
	out := make([]*sales.Sale, len(modelRows))
	for i := range modelRows {
		out[i] = modelRows[i].ToDomain()
	}
	return out, nil
}

// Save creates or updates a sale and its items
func (r *GormSaleRepository) Save(ctx context.Context, sale *sales.Sale) error {
	var model models.SaleModel
	model.FromDomain(sale)
	return r.db.WithContext(ctx).Session(&gorm.Session{FullSaveAssociations: true}).Save(&model).Error
}

var _ sales.SaleRepository = (*GormSaleRepository)(nil)
