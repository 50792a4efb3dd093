package persistence

import (
	"context"
	"errors"

	"github.com/fieldsales/backend/internal/domain/finance"
	"github.com/fieldsales/backend/internal/domain/shared"
	"github.com/fieldsales/backend/internal/infrastructure/persistence/models"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GormExpenseRepository implements ExpenseRepository using GORM
type GormExpenseRepository struct {
	db *gorm.DB
}

// NewGormExpenseRepository creates a new GormExpenseRepository
func NewGormExpenseRepository(db *gorm.DB) *GormExpenseRepository {
	return &GormExpenseRepository{db: db}
}

// FindByID finds an expense by its ID
func (r *GormExpenseRepository) FindByID(ctx context.Context, id uuid.UUID) (*finance.Expense, error) {
	var model models.ExpenseModel
	if err := r.db.WithContext(ctx).First(&model, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindByTrip returns all expenses recorded against a trip
func (r *GormExpenseRepository) FindByTrip(ctx context.Context, tripID uuid.UUID) ([]*finance.Expense, error) {
	var modelRows []models.ExpenseModel
	if err := r.db.WithContext(ctx).
		Where("trip_id = ?", tripID).
		Order("recorded_at ASC").
		Find(&modelRows).Error; err != nil {
		return nil, err
	}
	out := make([]*finance.Expense, len(modelRows))
	for i := range modelRows {
		out[i] = modelRows[i].ToDomain()
	}
	return out, nil
}

// Save creates or updates an expense
func (r *GormExpenseRepository) Save(ctx context.Context, expense *finance.Expense) error {
	var model models.ExpenseModel
	model.FromDomain(expense)
	return r.db.WithContext(ctx).Save(&model).Error
}

var _ finance.ExpenseRepository = (*GormExpenseRepository)(nil)
