package sales

import (
	"context"
	"time"

	appinventory "github.com/fieldsales/backend/internal/application/inventory"
	"github.com/fieldsales/backend/internal/domain/sales"
	"github.com/fieldsales/backend/internal/domain/shared"
	"github.com/google/uuid"
)

// ReturnInput is a return-record request. TripID nil means a warehouse
// return, which moves warehouse stock according to the reason.
type ReturnInput struct {
	TripID     *uuid.UUID
	ProductID  uuid.UUID
	Quantity   int
	Reason     sales.ReturnReason
	ExpiryDate *time.Time
	Notes      string
	RecordedBy string
}

// ReturnsService records and deletes returns, applying their stock
// effects. Trip returns only enter the trip reconciliation; warehouse
// returns move warehouse stock in the same transaction.
type ReturnsService struct {
	txScope TransactionScope
}

// NewReturnsService creates a new ReturnsService
func NewReturnsService(txScope TransactionScope) *ReturnsService {
	return &ReturnsService{txScope: txScope}
}

// Record writes a return record. For warehouse returns an unsold reason
// puts the quantity back into stock at the given expiry date, and every
// replacement reason depletes stock for the replacement handed out.
func (s *ReturnsService) Record(ctx context.Context, input ReturnInput) (*sales.ReturnRecord, error) {
	var record *sales.ReturnRecord
	err := s.txScope.Execute(ctx, func(repos TransactionalRepositories) error {
		product, err := repos.ProductRepo().FindByID(ctx, input.ProductID)
		if err != nil || product == nil {
			return shared.ErrNotFound
		}
		snapshot := product.Snapshot()

		record, err = sales.NewReturnRecord(
			input.TripID, input.ProductID, product.Name, input.Quantity,
			input.Reason, snapshot.PricePerPiece(), input.ExpiryDate,
			input.Notes, input.RecordedBy,
		)
		if err != nil {
			return err
		}

		if input.TripID == nil {
			switch input.Reason.Effect() {
			case sales.StockEffectIncrease:
				if input.ExpiryDate == nil {
					return shared.NewDomainError("MISSING_EXPIRY", "unsold warehouse return requires an expiry date")
				}
				if err := appinventory.IncreaseStockTx(ctx, repos.BatchRepo(), repos.ProductRepo(), input.ProductID, input.Quantity, *input.ExpiryDate); err != nil {
					return err
				}
			case sales.StockEffectDecrease:
				if _, err := appinventory.ReduceStockTx(ctx, repos.BatchRepo(), input.ProductID, input.Quantity); err != nil {
					return err
				}
			}
		}
		return repos.ReturnRepo().Save(ctx, record)
	})
	if err != nil {
		return nil, err
	}
	return record, nil
}

// ForTrip returns all return records for a trip
func (s *ReturnsService) ForTrip(ctx context.Context, tripID uuid.UUID) ([]*sales.ReturnRecord, error) {
	var out []*sales.ReturnRecord
	err := s.txScope.Execute(ctx, func(repos TransactionalRepositories) error {
		var err error
		out, err = repos.ReturnRepo().FindByTrip(ctx, tripID)
		return err
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

// Delete removes a return record, reversing its warehouse stock effect.
// Deleting a warehouse unsold return takes the quantity back out of
// stock; replacement returns are record-only on deletion, matching how
// their stock left as a physical replacement that is not coming back.
func (s *ReturnsService) Delete(ctx context.Context, returnID uuid.UUID) error {
	return s.txScope.Execute(ctx, func(repos TransactionalRepositories) error {
		record, err := repos.ReturnRepo().FindByID(ctx, returnID)
		if err != nil {
			return shared.ErrNotFound
		}
		if !record.IsTripReturn() && record.Reason.Effect() == sales.StockEffectIncrease {
			if _, err := appinventory.ReduceStockTx(ctx, repos.BatchRepo(), record.ProductID, record.Quantity); err != nil {
				return err
			}
		}
		return repos.ReturnRepo().Delete(ctx, record.ID)
	})
}
