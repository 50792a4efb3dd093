package persistence

import (
	"context"
	"errors"

	"github.com/fieldsales/backend/internal/domain/shared"
	"github.com/fieldsales/backend/internal/domain/trip"
	"github.com/fieldsales/backend/internal/infrastructure/persistence/models"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GormTripRepository implements TripRepository using GORM
type GormTripRepository struct {
	db *gorm.DB
}

// NewGormTripRepository creates a new GormTripRepository
func NewGormTripRepository(db *gorm.DB) *GormTripRepository {
	return &GormTripRepository{db: db}
}

// FindByID finds a trip by its ID
func (r *GormTripRepository) FindByID(ctx context.Context, id uuid.UUID) (*trip.Trip, error) {
	var model models.TripModel
	if err := r.db.WithContext(ctx).First(&model, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, trip.ErrTripNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindAll returns trips matching the filter. A "status" filter entry
// narrows by lifecycle state.
func (r *GormTripRepository) FindAll(ctx context.Context, filter shared.Filter) (*shared.Paginated[*trip.Trip], error) {
	query := r.db.WithContext(ctx).Model(&models.TripModel{})
	if status, ok := filter.Filters["status"]; ok {
		query = query.Where("status = ?", status)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, err
	}

	var modelRows []models.TripModel
	if err := applyFilter(query, filter).Find(&modelRows).Error; err != nil {
		return nil, err
	}

	trips := make([]*trip.Trip, len(modelRows))
	for i := range modelRows {
		trips[i] = modelRows[i].ToDomain()
	}
	page := shared.NewPaginated(trips, total, filter.Page, filter.PageSize)
	return &page, nil
}

// Save creates or updates a trip
func (r *GormTripRepository) Save(ctx context.Context, t *trip.Trip) error {
	var model models.TripModel
	model.FromDomain(t)
	return r.db.WithContext(ctx).Save(&model).Error
}

var _ trip.TripRepository = (*GormTripRepository)(nil)
