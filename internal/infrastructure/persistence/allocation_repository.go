package persistence

import (
	"context"
	"errors"

	"github.com/fieldsales/backend/internal/domain/trip"
	"github.com/fieldsales/backend/internal/infrastructure/persistence/models"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GormAllocationRepository implements AllocationRepository using GORM
type GormAllocationRepository struct {
	db *gorm.DB
}

// NewGormAllocationRepository creates a new GormAllocationRepository
func NewGormAllocationRepository(db *gorm.DB) *GormAllocationRepository {
	return &GormAllocationRepository{db: db}
}

// FindByID finds an allocation by its ID
func (r *GormAllocationRepository) FindByID(ctx context.Context, id uuid.UUID) (*trip.Allocation, error) {
	var model models.AllocationModel
	if err := r.db.WithContext(ctx).First(&model, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, trip.ErrAllocationNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindByTrip returns the allocations for a trip in allocation order
func (r *GormAllocationRepository) FindByTrip(ctx context.Context, tripID uuid.UUID) ([]*trip.Allocation, error) {
	var modelRows []models.AllocationModel
	if err := r.db.WithContext(ctx).
		Where("trip_id = ?", tripID).
		Order("allocated_at ASC").
		Find(&modelRows).Error; err != nil {
		return nil, err
	}
	return toDomainAllocations(modelRows), nil
}

// FindByTripAndProduct returns the allocations for one product on a trip
func (r *GormAllocationRepository) FindByTripAndProduct(ctx context.Context, tripID, productID uuid.UUID) ([]*trip.Allocation, error) {
	var modelRows []models.AllocationModel
	if err := r.db.WithContext(ctx).
		Where("trip_id = ? AND product_id = ?", tripID, productID).
		Order("allocated_at ASC").
		Find(&modelRows).Error; err != nil {
		return nil, err
	}
	return toDomainAllocations(modelRows), nil
}

// Save creates or updates an allocation
func (r *GormAllocationRepository) Save(ctx context.Context, allocation *trip.Allocation) error {
	var model models.AllocationModel
	model.FromDomain(allocation)
	return r.db.WithContext(ctx).Save(&model).Error
}

// Delete removes an allocation
func (r *GormAllocationRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Delete(&models.AllocationModel{}, "id = ?", id).Error
}

func toDomainAllocations(modelRows []models.AllocationModel) []*trip.Allocation {
	allocations := make([]*trip.Allocation, len(modelRows))
	for i := range modelRows {
		allocations[i] = modelRows[i].ToDomain()
	}
	return allocations
}

var _ trip.AllocationRepository = (*GormAllocationRepository)(nil)
