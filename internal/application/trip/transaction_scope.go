package trip

import (
	"context"

	"github.com/fieldsales/backend/internal/domain/catalog"
	"github.com/fieldsales/backend/internal/domain/inventory"
	"github.com/fieldsales/backend/internal/domain/trip"
)

// TransactionScope provides transactional access to the repositories a
// trip operation touches. Allocation moves stock out of the warehouse and
// writes allocation rows in the same transaction.
type TransactionScope interface {
	Execute(ctx context.Context, fn func(repos TransactionalRepositories) error) error
}

// TransactionalRepositories provides the repositories scoped to the
// current transaction.
type TransactionalRepositories interface {
	TripRepo() trip.TripRepository
	AllocationRepo() trip.AllocationRepository
	BatchRepo() inventory.StockBatchRepository
	ProductRepo() catalog.ProductRepository
}

// NoOpTransactionScope runs the function without a real transaction
type NoOpTransactionScope struct {
	tripRepo       trip.TripRepository
	allocationRepo trip.AllocationRepository
	batchRepo      inventory.StockBatchRepository
	productRepo    catalog.ProductRepository
}

// NewNoOpTransactionScope creates a NoOpTransactionScope with the given repositories
func NewNoOpTransactionScope(
	tripRepo trip.TripRepository,
	allocationRepo trip.AllocationRepository,
	batchRepo inventory.StockBatchRepository,
	productRepo catalog.ProductRepository,
) *NoOpTransactionScope {
	return &NoOpTransactionScope{
		tripRepo:       tripRepo,
		allocationRepo: allocationRepo,
		batchRepo:      batchRepo,
		productRepo:    productRepo,
	}
}

// Execute runs the function directly
func (s *NoOpTransactionScope) Execute(_ context.Context, fn func(repos TransactionalRepositories) error) error {
	return fn(s)
}

// TripRepo returns the trip repository
func (s *NoOpTransactionScope) TripRepo() trip.TripRepository { return s.tripRepo }

// AllocationRepo returns the allocation repository
func (s *NoOpTransactionScope) AllocationRepo() trip.AllocationRepository { return s.allocationRepo }

// BatchRepo returns the stock batch repository
func (s *NoOpTransactionScope) BatchRepo() inventory.StockBatchRepository { return s.batchRepo }

// ProductRepo returns the product repository
func (s *NoOpTransactionScope) ProductRepo() catalog.ProductRepository { return s.productRepo }

var _ TransactionScope = (*NoOpTransactionScope)(nil)
var _ TransactionalRepositories = (*NoOpTransactionScope)(nil)
