package sales

import (
	"context"

	"github.com/fieldsales/backend/internal/domain/catalog"
	"github.com/fieldsales/backend/internal/domain/inventory"
	"github.com/fieldsales/backend/internal/domain/sales"
)

// TransactionScope provides transactional access to the repositories a
// checkout or return touches. Warehouse sales deplete stock in the same
// transaction that writes the sale.
type TransactionScope interface {
	Execute(ctx context.Context, fn func(repos TransactionalRepositories) error) error
}

// TransactionalRepositories provides the repositories scoped to the
// current transaction.
type TransactionalRepositories interface {
	SaleRepo() sales.SaleRepository
	ReturnRepo() sales.ReturnRepository
	BatchRepo() inventory.StockBatchRepository
	ProductRepo() catalog.ProductRepository
}

// NoOpTransactionScope runs the function without a real transaction
type NoOpTransactionScope struct {
	saleRepo    sales.SaleRepository
	returnRepo  sales.ReturnRepository
	batchRepo   inventory.StockBatchRepository
	productRepo catalog.ProductRepository
}

// NewNoOpTransactionScope creates a NoOpTransactionScope with the given repositories
func NewNoOpTransactionScope(
	saleRepo sales.SaleRepository,
	returnRepo sales.ReturnRepository,
	batchRepo inventory.StockBatchRepository,
	productRepo catalog.ProductRepository,
) *NoOpTransactionScope {
	return &NoOpTransactionScope{
		saleRepo:    saleRepo,
		returnRepo:  returnRepo,
		batchRepo:   batchRepo,
		productRepo: productRepo,
	}
}

// Execute runs the function directly
func (s *NoOpTransactionScope) Execute(_ context.Context, fn func(repos TransactionalRepositories) error) error {
	return fn(s)
}

// SaleRepo returns the sale repository
func (s *NoOpTransactionScope) SaleRepo() sales.SaleRepository { return s.saleRepo }

// ReturnRepo returns the return repository
func (s *NoOpTransactionScope) ReturnRepo() sales.ReturnRepository { return s.returnRepo }

// BatchRepo returns the stock batch repository
func (s *NoOpTransactionScope) BatchRepo() inventory.StockBatchRepository { return s.batchRepo }

// ProductRepo returns the product repository
func (s *NoOpTransactionScope) ProductRepo() catalog.ProductRepository { return s.productRepo }

var _ TransactionScope = (*NoOpTransactionScope)(nil)
var _ TransactionalRepositories = (*NoOpTransactionScope)(nil)
