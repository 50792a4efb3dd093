package sales

import (
	"context"
	"testing"

	"github.com/fieldsales/backend/internal/domain/finance"
	"github.com/fieldsales/backend/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type memExpenseRepo struct {
	expenses map[uuid.UUID]*finance.Expense
}

func newMemExpenseRepo() *memExpenseRepo {
	return &memExpenseRepo{expenses: make(map[uuid.UUID]*finance.Expense)}
}

func (r *memExpenseRepo) FindByID(_ context.Context, id uuid.UUID) (*finance.Expense, error) {
	e, ok := r.expenses[id]
	if !ok {
		return nil, shared.ErrNotFound
	}
	return e, nil
}

func (r *memExpenseRepo) FindByTrip(_ context.Context, tripID uuid.UUID) ([]*finance.Expense, error) {
	var out []*finance.Expense
	for _, e := range r.expenses {
		if e.TripID == tripID {
			out = append(out, e)
		}
	}
	return out, nil
}

func (r *memExpenseRepo) Save(_ context.Context, e *finance.Expense) error {
	r.expenses[e.ID] = e
	return nil
}

func TestExpenseService(t *testing.T) {
	ctx := context.Background()
	tripID := uuid.New()

	t.Run("record with explicit type override", func(t *testing.T) {
		svc := NewExpenseService(newMemExpenseRepo())

		expense, err := svc.Record(ctx, ExpenseInput{
			TripID:        tripID,
			Reason:        finance.ExpenseOther,
			Type:          finance.ExpenseTypePersonal,
			Amount:        decimal.NewFromInt(40),
			PaymentMethod: finance.ExpensePaidCash,
			RecordedBy:    "agent-1",
		})
		require.NoError(t, err)
		assert.Equal(t, finance.ExpenseStatusPending, expense.Status)
		assert.Equal(t, finance.ExpenseTypePersonal, expense.EffectiveType())
	})

	t.Run("approve and reject", func(t *testing.T) {
		repo := newMemExpenseRepo()
		svc := NewExpenseService(repo)

		expense, err := svc.Record(ctx, ExpenseInput{
			TripID:        tripID,
			Reason:        finance.ExpenseFuel,
			Amount:        decimal.NewFromInt(100),
			PaymentMethod: finance.ExpensePaidMpesa,
			RecordedBy:    "agent-1",
		})
		require.NoError(t, err)

		approved, err := svc.Approve(ctx, expense.ID)
		require.NoError(t, err)
		assert.Equal(t, finance.ExpenseStatusApproved, approved.Status)

		_, err = svc.Reject(ctx, expense.ID)
		assert.ErrorIs(t, err, shared.ErrInvalidState)
	})

	t.Run("rejects invalid amount", func(t *testing.T) {
		svc := NewExpenseService(newMemExpenseRepo())
		_, err := svc.Record(ctx, ExpenseInput{
			TripID:        tripID,
			Reason:        finance.ExpenseFuel,
			Amount:        decimal.Zero,
			PaymentMethod: finance.ExpensePaidCash,
		})
		require.Error(t, err)
	})
}
