package trip

import (
	"context"
	"fmt"

	"github.com/fieldsales/backend/internal/domain/finance"
	"github.com/fieldsales/backend/internal/domain/sales"
	"github.com/fieldsales/backend/internal/domain/trip"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// SettlementService computes the financial summary of a trip. The
// commission rate is a deployment setting, injected at construction.
type SettlementService struct {
	tripRepo       trip.TripRepository
	reconciliation *ReconciliationService
	saleRepo       sales.SaleRepository
	expenseRepo    finance.ExpenseRepository
	commissionRate decimal.Decimal
}

// NewSettlementService creates a new SettlementService
func NewSettlementService(
	tripRepo trip.TripRepository,
	reconciliation *ReconciliationService,
	saleRepo sales.SaleRepository,
	expenseRepo finance.ExpenseRepository,
	commissionRate decimal.Decimal,
) *SettlementService {
	return &SettlementService{
		tripRepo:       tripRepo,
		reconciliation: reconciliation,
		saleRepo:       saleRepo,
		expenseRepo:    expenseRepo,
		commissionRate: commissionRate,
	}
}

// Summary reconciles the trip and computes its settlement. Valid at any
// point in the trip's life; before the cash submission is recorded the
// variance simply reflects a zero collection.
func (s *SettlementService) Summary(ctx context.Context, tripID uuid.UUID) (*finance.TripSettlement, error) {
	t, err := s.tripRepo.FindByID(ctx, tripID)
	if err != nil {
		return nil, trip.ErrTripNotFound
	}
	positions, err := s.reconciliation.Positions(ctx, tripID)
	if err != nil {
		return nil, err
	}
	tripSales, err := s.saleRepo.FindByTrip(ctx, tripID)
	if err != nil {
		return nil, fmt.Errorf("load sales: %w", err)
	}
	expenses, err := s.expenseRepo.FindByTrip(ctx, tripID)
	if err != nil {
		return nil, fmt.Errorf("load expenses: %w", err)
	}
	return finance.ComputeSettlement(t, positions, tripSales, expenses, s.commissionRate), nil
}
