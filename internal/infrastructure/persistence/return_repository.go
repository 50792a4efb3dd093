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

// GormReturnRepository implements ReturnRepository using GORM
type GormReturnRepository struct {
	db *gorm.DB
}

// NewGormReturnRepository creates a new GormReturnRepository
func NewGormReturnRepository(db *gorm.DB) *GormReturnRepository {
	return &GormReturnRepository{db: db}
}

// FindByID finds a return record by its ID
func (r *GormReturnRepository) FindByID(ctx context.Context, id uuid.UUID) (*sales.ReturnRecord, error) {
	var model models.ReturnRecordModel
	if err := r.db.WithContext(ctx).First(&model, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindByTrip returns all return records for a trip
func (r *GormReturnRepository) FindByTrip(ctx context.Context, tripID uuid.UUID) ([]*sales.ReturnRecord, error) {
	var modelRows []models.ReturnRecordModel
	if err := r.db.WithContext(ctx).
		Where("trip_id = ?", tripID).
		Order("recorded_at ASC").
		Find(&modelRows).Error; err != nil {
		return nil, err
	}
	out := make([]*sales.ReturnRecord, len(modelRows))
	for i := range modelRows {
		out[i] = modelRows[i].ToDomain()
	}
	return out, nil
}

// Save creates or updates a return record
func (r *GormReturnRepository) Save(ctx context.Context, record *sales.ReturnRecord) error {
	var model models.ReturnRecordModel
	model.FromDomain(record)
	return r.db.WithContext(ctx).Save(&model).Error
}

// Delete removes a return record
func (r *GormReturnRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Delete(&models.ReturnRecordModel{}, "id = ?", id).Error
}

var _ sales.ReturnRepository = (*GormReturnRepository)(nil)
