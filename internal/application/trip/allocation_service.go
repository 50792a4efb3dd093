package trip

import (
	"context"
	"errors"
	"fmt"

	appinventory "github.com/fieldsales/backend/internal/application/inventory"
	"github.com/fieldsales/backend/internal/domain/inventory"
	"github.com/fieldsales/backend/internal/domain/shared"
	"github.com/fieldsales/backend/internal/domain/trip"
	"github.com/google/uuid"
)

// AllocationLine is one product line of an allocation request
type AllocationLine struct {
	ProductID uuid.UUID
	Quantity  int
}

// AllocationService moves warehouse stock onto trips and back
type AllocationService struct {
	txScope        TransactionScope
	allocationRepo trip.AllocationRepository
}

// NewAllocationService creates a new AllocationService
func NewAllocationService(txScope TransactionScope, allocationRepo trip.AllocationRepository) *AllocationService {
	return &AllocationService{txScope: txScope, allocationRepo: allocationRepo}
}

// Allocate moves the requested quantities from the warehouse onto the
// trip, all lines in one transaction. Availability is checked for every
// line before any stock moves; when any line is short the whole request
// is rejected with an AllocationShortfallError listing each shortfall.
// Each allocation records the expiry date of the first batch its
// depletion drew from.
func (s *AllocationService) Allocate(ctx context.Context, tripID uuid.UUID, lines []AllocationLine, allocatedBy string) ([]*trip.Allocation, error) {
	if len(lines) == 0 {
		return nil, shared.ErrInvalidInput
	}
	var allocations []*trip.Allocation
	err := s.txScope.Execute(ctx, func(repos TransactionalRepositories) error {
		t, err := repos.TripRepo().FindByID(ctx, tripID)
		if err != nil {
			return trip.ErrTripNotFound
		}
		if t.Status == trip.TripStatusEnded {
			return shared.ErrInvalidState
		}

		type plannedLine struct {
			line AllocationLine
			plan *inventory.DepletionPlan
		}
		var plans []plannedLine
		var shortfalls []trip.Shortfall

		for _, line := range lines {
			if line.Quantity <= 0 {
				return shared.ErrInvalidQuantity
			}
			batches, err := repos.BatchRepo().FindByProduct(ctx, line.ProductID)
			if err != nil {
				return fmt.Errorf("load batches: %w", err)
			}
			plan, err := inventory.PlanDepletion(batches, line.Quantity)
			if err != nil {
				var insufficient *inventory.InsufficientStockError
				if errors.As(err, &insufficient) {
					shortfalls = append(shortfalls, trip.Shortfall{
						ProductID:   line.ProductID,
						ProductName: insufficient.ProductName,
						Requested:   insufficient.Requested,
						Available:   insufficient.Available,
					})
					continue
				}
				return err
			}
			plans = append(plans, plannedLine{line: line, plan: plan})
		}
		if len(shortfalls) > 0 {
			return &trip.AllocationShortfallError{Shortfalls: shortfalls}
		}

		for _, p := range plans {
			product, err := repos.ProductRepo().FindByID(ctx, p.line.ProductID)
			if err != nil || product == nil {
				return inventory.ErrMissingProductInfo
			}
			p.plan.Apply()
			for _, d := range p.plan.Deductions {
				if err := repos.BatchRepo().Save(ctx, d.Batch); err != nil {
					return fmt.Errorf("save batch: %w", err)
				}
			}
			alloc, err := trip.NewAllocation(tripID, product.Snapshot(), p.line.Quantity, p.plan.UsedExpiryDates[0], allocatedBy)
			if err != nil {
				return err
			}
			if err := repos.AllocationRepo().Save(ctx, alloc); err != nil {
				return fmt.Errorf("save allocation: %w", err)
			}
			allocations = append(allocations, alloc)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return allocations, nil
}

// Reverse undoes an allocation before the trip starts, restoring its full
// quantity to the warehouse batch with the allocation's source expiry
// date. The restoration uses that single expiry even when the original
// depletion drained more than one batch, and recreates a removed batch
// from the allocation's captured snapshot.
func (s *AllocationService) Reverse(ctx context.Context, allocationID uuid.UUID) error {
	return s.txScope.Execute(ctx, func(repos TransactionalRepositories) error {
		alloc, err := repos.AllocationRepo().FindByID(ctx, allocationID)
		if err != nil {
			return trip.ErrAllocationNotFound
		}
		t, err := repos.TripRepo().FindByID(ctx, alloc.TripID)
		if err != nil {
			return trip.ErrTripNotFound
		}
		if t.Status != trip.TripStatusPending {
			return shared.ErrInvalidState
		}
		if err := appinventory.RestoreStockTx(ctx, repos.BatchRepo(), alloc.Product, alloc.Quantity, alloc.SourceExpiryDate); err != nil {
			return err
		}
		return repos.AllocationRepo().Delete(ctx, alloc.ID)
	})
}

// ForTrip returns the allocations recorded against a trip
func (s *AllocationService) ForTrip(ctx context.Context, tripID uuid.UUID) ([]*trip.Allocation, error) {
	return s.allocationRepo.FindByTrip(ctx, tripID)
}
