package finance

import (
	"context"

	"github.com/google/uuid"
)

// ExpenseRepository persists trip expenses
type ExpenseRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*Expense, error)
	FindByTrip(ctx context.Context, tripID uuid.UUID) ([]*Expense, error)
	Save(ctx context.Context, expense *Expense) error
}
