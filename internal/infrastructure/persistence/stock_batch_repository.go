package persistence

import (
	"context"
	"errors"
	"time"

	"github.com/fieldsales/backend/internal/domain/inventory"
	"github.com/fieldsales/backend/internal/domain/shared"
	"github.com/fieldsales/backend/internal/infrastructure/persistence/models"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GormStockBatchRepository implements StockBatchRepository using GORM
type GormStockBatchRepository struct {
	db *gorm.DB
}

// NewGormStockBatchRepository creates a new GormStockBatchRepository
func NewGormStockBatchRepository(db *gorm.DB) *GormStockBatchRepository {
	return &GormStockBatchRepository{db: db}
}

// FindByProduct returns all batches of a product ordered by expiry date
// ascending, zero-quantity rows included.
func (r *GormStockBatchRepository) FindByProduct(ctx context.Context, productID uuid.UUID) ([]*inventory.StockBatch, error) {
	var modelRows []models.StockBatchModel
	if err := r.db.WithContext(ctx).
		Where("product_id = ?", productID).
		Order("expiry_date ASC").
		Find(&modelRows).Error; err != nil {
		return nil, err
	}
	return toDomainBatches(modelRows), nil
}

// FindByProductAndExpiry returns the batch for a product and expiry date
func (r *GormStockBatchRepository) FindByProductAndExpiry(ctx context.Context, productID uuid.UUID, expiryDate time.Time) (*inventory.StockBatch, error) {
	var model models.StockBatchModel
	if err := r.db.WithContext(ctx).
		Where("product_id = ? AND expiry_date = ?", productID, shared.DateOnly(expiryDate)).
		First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, inventory.ErrBatchNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindAvailable returns every batch with stock, across products, ordered
// by expiry date ascending.
func (r *GormStockBatchRepository) FindAvailable(ctx context.Context) ([]*inventory.StockBatch, error) {
	var modelRows []models.StockBatchModel
	if err := r.db.WithContext(ctx).
		Where("quantity > 0").
		Order("expiry_date ASC").
		Find(&modelRows).Error; err != nil {
		return nil, err
	}
	return toDomainBatches(modelRows), nil
}

// Save creates or updates a batch
func (r *GormStockBatchRepository) Save(ctx context.Context, batch *inventory.StockBatch) error {
	var model models.StockBatchModel
	model.FromDomain(batch)
	return r.db.WithContext(ctx).Save(&model).Error
}

// SumQuantityByProduct returns the total on-hand quantity for a product
func (r *GormStockBatchRepository) SumQuantityByProduct(ctx context.Context, productID uuid.UUID) (int, error) {
	var total int64
	err := r.db.WithContext(ctx).
		Model(&models.StockBatchModel{}).
		Where("product_id = ?", productID).
		Select("COALESCE(SUM(quantity), 0)").
		Scan(&total).Error
	return int(total), err
}

func toDomainBatches(modelRows []models.StockBatchModel) []*inventory.StockBatch {
	batches := make([]*inventory.StockBatch, len(modelRows))
	for i := range modelRows {
		batches[i] = modelRows[i].ToDomain()
	}
	return batches
}

var _ inventory.StockBatchRepository = (*GormStockBatchRepository)(nil)
