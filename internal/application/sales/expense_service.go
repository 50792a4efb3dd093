package sales

import (
	"context"
	"fmt"

	"github.com/fieldsales/backend/internal/domain/finance"
	"github.com/fieldsales/backend/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// ExpenseInput is an expense-record request
type ExpenseInput struct {
	TripID        uuid.UUID
	Reason        finance.ExpenseReason
	Type          finance.ExpenseType // optional, overrides the reason mapping
	Amount        decimal.Decimal
	PaymentMethod finance.ExpensePayment
	Description   string
	RecordedBy    string
}

// ExpenseService records and reviews trip expenses
type ExpenseService struct {
	expenseRepo finance.ExpenseRepository
}

// NewExpenseService creates a new ExpenseService
func NewExpenseService(expenseRepo finance.ExpenseRepository) *ExpenseService {
	return &ExpenseService{expenseRepo: expenseRepo}
}

// Record writes a pending expense against a trip
func (s *ExpenseService) Record(ctx context.Context, input ExpenseInput) (*finance.Expense, error) {
	expense, err := finance.NewExpense(input.TripID, input.Reason, input.Amount, input.PaymentMethod, input.Description, input.RecordedBy)
	if err != nil {
		return nil, err
	}
	if input.Type != "" {
		if input.Type != finance.ExpenseTypeCompany && input.Type != finance.ExpenseTypePersonal {
			return nil, shared.ErrInvalidInput
		}
		expense.Type = input.Type
	}
	if err := s.expenseRepo.Save(ctx, expense); err != nil {
		return nil, fmt.Errorf("save expense: %w", err)
	}
	return expense, nil
}

// Approve marks a pending expense approved
func (s *ExpenseService) Approve(ctx context.Context, expenseID uuid.UUID) (*finance.Expense, error) {
	return s.review(ctx, expenseID, (*finance.Expense).Approve)
}

// Reject marks a pending expense rejected, removing it from settlement
func (s *ExpenseService) Reject(ctx context.Context, expenseID uuid.UUID) (*finance.Expense, error) {
	return s.review(ctx, expenseID, (*finance.Expense).Reject)
}

func (s *ExpenseService) review(ctx context.Context, expenseID uuid.UUID, transition func(*finance.Expense) error) (*finance.Expense, error) {
	expense, err := s.expenseRepo.FindByID(ctx, expenseID)
	if err != nil {
		return nil, shared.ErrNotFound
	}
	if err := transition(expense); err != nil {
		return nil, err
	}
	if err := s.expenseRepo.Save(ctx, expense); err != nil {
		return nil, fmt.Errorf("save expense: %w", err)
	}
	return expense, nil
}

// ForTrip returns the expenses recorded against a trip
func (s *ExpenseService) ForTrip(ctx context.Context, tripID uuid.UUID) ([]*finance.Expense, error) {
	return s.expenseRepo.FindByTrip(ctx, tripID)
}
