package sales

import (
	"context"
	"fmt"

	appinventory "github.com/fieldsales/backend/internal/application/inventory"
	apptrip "github.com/fieldsales/backend/internal/application/trip"
	"github.com/fieldsales/backend/internal/domain/sales"
	"github.com/fieldsales/backend/internal/domain/shared"
	"github.com/fieldsales/backend/internal/domain/trip"
	"github.com/google/uuid"
)

// CheckoutLine is one product line of a checkout request
type CheckoutLine struct {
	ProductID uuid.UUID
	Quantity  int
}

// CheckoutInput is a checkout request. TripID nil means a warehouse sale.
type CheckoutInput struct {
	TripID        *uuid.UUID
	CustomerName  string
	Lines         []CheckoutLine
	PaymentMethod sales.PaymentMethod
	SoldBy        string
}

// CheckoutService records sales. Warehouse sales deplete warehouse stock
// in the same transaction; trip sales are validated against the trip's
// remaining positions and leave the warehouse ledger alone.
type CheckoutService struct {
	txScope        TransactionScope
	reconciliation *apptrip.ReconciliationService
}

// NewCheckoutService creates a new CheckoutService
func NewCheckoutService(txScope TransactionScope, reconciliation *apptrip.ReconciliationService) *CheckoutService {
	return &CheckoutService{txScope: txScope, reconciliation: reconciliation}
}

// Checkout prices the lines from the catalog, writes the sale as
// completed, and applies the stock effect appropriate to the sale kind.
func (s *CheckoutService) Checkout(ctx context.Context, input CheckoutInput) (*sales.Sale, error) {
	if len(input.Lines) == 0 {
		return nil, shared.ErrInvalidInput
	}

	if input.TripID != nil {
		if err := s.checkTripStock(ctx, *input.TripID, input.Lines); err != nil {
			return nil, err
		}
	}

	var sale *sales.Sale
	err := s.txScope.Execute(ctx, func(repos TransactionalRepositories) error {
		items := make([]sales.SaleItem, 0, len(input.Lines))
		for _, line := range input.Lines {
			product, err := repos.ProductRepo().FindByID(ctx, line.ProductID)
			if err != nil || product == nil {
				return shared.ErrNotFound
			}
			items = append(items, sales.SaleItem{
				ProductID:   product.ID,
				ProductName: product.Name,
				Quantity:    line.Quantity,
				UnitPrice:   product.Snapshot().PricePerPiece(),
			})
		}

		var err error
		sale, err = sales.NewSale(input.TripID, input.CustomerName, items, input.PaymentMethod, input.SoldBy)
		if err != nil {
			return err
		}
		if err := sale.Complete(); err != nil {
			return err
		}

		if input.TripID == nil {
			for _, line := range input.Lines {
				if _, err := appinventory.ReduceStockTx(ctx, repos.BatchRepo(), line.ProductID, line.Quantity); err != nil {
					return err
				}
			}
		}
		return repos.SaleRepo().Save(ctx, sale)
	})
	if err != nil {
		return nil, err
	}
	return sale, nil
}

// checkTripStock verifies each line fits within the trip's remaining
// position. Lines for products never allocated to the trip are rejected.
func (s *CheckoutService) checkTripStock(ctx context.Context, tripID uuid.UUID, lines []CheckoutLine) error {
	positions, err := s.reconciliation.Positions(ctx, tripID)
	if err != nil {
		return err
	}
	remaining := make(map[uuid.UUID]int, len(positions))
	for _, pos := range positions {
		remaining[pos.ProductID] = pos.Remaining
	}
	for _, line := range lines {
		have, ok := remaining[line.ProductID]
		if !ok {
			return trip.ErrAllocationNotFound
		}
		if line.Quantity > have {
			return fmt.Errorf("%w: trip stock short for product %s", shared.ErrInvalidQuantity, line.ProductID)
		}
	}
	return nil
}

// Get returns a sale by ID
func (s *CheckoutService) Get(ctx context.Context, saleID uuid.UUID) (*sales.Sale, error) {
	var sale *sales.Sale
	err := s.txScope.Execute(ctx, func(repos TransactionalRepositories) error {
		var err error
		sale, err = repos.SaleRepo().FindByID(ctx, saleID)
		if err != nil {
			return shared.ErrNotFound
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return sale, nil
}

// ForTrip returns all sales recorded against a trip
func (s *CheckoutService) ForTrip(ctx context.Context, tripID uuid.UUID) ([]*sales.Sale, error) {
	var out []*sales.Sale
	err := s.txScope.Execute(ctx, func(repos TransactionalRepositories) error {
		var err error
		out, err = repos.SaleRepo().FindByTrip(ctx, tripID)
		return err
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

// Cancel voids a pending sale. Completed sales cannot be cancelled.
func (s *CheckoutService) Cancel(ctx context.Context, saleID uuid.UUID) (*sales.Sale, error) {
	var sale *sales.Sale
	err := s.txScope.Execute(ctx, func(repos TransactionalRepositories) error {
		var err error
		sale, err = repos.SaleRepo().FindByID(ctx, saleID)
		if err != nil {
			return shared.ErrNotFound
		}
		if err := sale.Cancel(); err != nil {
			return err
		}
		return repos.SaleRepo().Save(ctx, sale)
	})
	if err != nil {
		return nil, err
	}
	return sale, nil
}
