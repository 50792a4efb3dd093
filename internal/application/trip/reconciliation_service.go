package trip

import (
	"context"
	"fmt"

	appinventory "github.com/fieldsales/backend/internal/application/inventory"
	"github.com/fieldsales/backend/internal/domain/sales"
	"github.com/fieldsales/backend/internal/domain/shared"
	"github.com/fieldsales/backend/internal/domain/trip"
	"github.com/google/uuid"
)

// ReconciliationService derives a trip's stock positions from its
// allocations, sales and returns, and moves leftover stock back into the
// warehouse when a trip is wound down.
type ReconciliationService struct {
	txScope        TransactionScope
	allocationRepo trip.AllocationRepository
	saleRepo       sales.SaleRepository
	returnRepo     sales.ReturnRepository
}

// NewReconciliationService creates a new ReconciliationService
func NewReconciliationService(
	txScope TransactionScope,
	allocationRepo trip.AllocationRepository,
	saleRepo sales.SaleRepository,
	returnRepo sales.ReturnRepository,
) *ReconciliationService {
	return &ReconciliationService{
		txScope:        txScope,
		allocationRepo: allocationRepo,
		saleRepo:       saleRepo,
		returnRepo:     returnRepo,
	}
}

// Positions reconciles the trip's full stock picture
func (s *ReconciliationService) Positions(ctx context.Context, tripID uuid.UUID) ([]*trip.StockPosition, error) {
	allocations, err := s.allocationRepo.FindByTrip(ctx, tripID)
	if err != nil {
		return nil, fmt.Errorf("load allocations: %w", err)
	}
	tripSales, err := s.saleRepo.FindByTrip(ctx, tripID)
	if err != nil {
		return nil, fmt.Errorf("load sales: %w", err)
	}
	tripReturns, err := s.returnRepo.FindByTrip(ctx, tripID)
	if err != nil {
		return nil, fmt.Errorf("load returns: %w", err)
	}
	return trip.BuildPositions(allocations, tripSales, tripReturns), nil
}

// SellableItems returns the products still on the vehicle with remaining
// quantity, the list a trip sale may draw from.
func (s *ReconciliationService) SellableItems(ctx context.Context, tripID uuid.UUID) ([]*trip.StockPosition, error) {
	positions, err := s.Positions(ctx, tripID)
	if err != nil {
		return nil, err
	}
	return trip.SellableItems(positions), nil
}

// ReturnToWarehouse moves every remaining position of an ended trip back
// into warehouse stock at the position's allocation expiry date. All
// increases happen in one transaction.
func (s *ReconciliationService) ReturnToWarehouse(ctx context.Context, tripID uuid.UUID) error {
	positions, err := s.Positions(ctx, tripID)
	if err != nil {
		return err
	}
	return s.txScope.Execute(ctx, func(repos TransactionalRepositories) error {
		t, err := repos.TripRepo().FindByID(ctx, tripID)
		if err != nil {
			return trip.ErrTripNotFound
		}
		if t.Status != trip.TripStatusEnded {
			return shared.ErrInvalidState
		}
		for _, pos := range positions {
			if pos.Remaining <= 0 {
				continue
			}
			if err := appinventory.IncreaseStockTx(ctx, repos.BatchRepo(), repos.ProductRepo(), pos.ProductID, pos.Remaining, pos.ExpiryDate); err != nil {
				return err
			}
		}
		return nil
	})
}
