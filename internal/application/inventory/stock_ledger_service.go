package inventory

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/fieldsales/backend/internal/domain/catalog"
	"github.com/fieldsales/backend/internal/domain/inventory"
	"github.com/fieldsales/backend/internal/domain/shared"
	"github.com/google/uuid"
)

// StockLedgerService manages the warehouse stock ledger: expiry-dated
// batches per product, first-expiry-first-out depletion, and merge-or-create
// replenishment.
type StockLedgerService struct {
	txScope     TransactionScope
	batchRepo   inventory.StockBatchRepository
	productRepo catalog.ProductRepository
}

// NewStockLedgerService creates a new StockLedgerService. The standalone
// repositories serve read paths; mutations go through the transaction scope.
func NewStockLedgerService(txScope TransactionScope, batchRepo inventory.StockBatchRepository, productRepo catalog.ProductRepository) *StockLedgerService {
	return &StockLedgerService{
		txScope:     txScope,
		batchRepo:   batchRepo,
		productRepo: productRepo,
	}
}

// ReduceStock deducts a quantity from a product's batches, draining the
// soonest-expiring batches first. Returns the expiry dates of the batches
// used, in depletion order. If total availability is short the ledger is
// left untouched and an InsufficientStockError is returned.
func (s *StockLedgerService) ReduceStock(ctx context.Context, productID uuid.UUID, quantity int) ([]time.Time, error) {
	var used []time.Time
	err := s.txScope.Execute(ctx, func(repos TransactionalRepositories) error {
		var err error
		used, err = ReduceStockTx(ctx, repos.BatchRepo(), productID, quantity)
		return err
	})
	if err != nil {
		return nil, err
	}
	return used, nil
}

// ReduceStockTx performs a stock reduction against an already-scoped batch
// repository. Exposed so other services can deplete stock inside their own
// transactions.
func ReduceStockTx(ctx context.Context, batchRepo inventory.StockBatchRepository, productID uuid.UUID, quantity int) ([]time.Time, error) {
	batches, err := batchRepo.FindByProduct(ctx, productID)
	if err != nil {
		return nil, fmt.Errorf("load batches: %w", err)
	}
	plan, err := inventory.PlanDepletion(batches, quantity)
	if err != nil {
		return nil, err
	}
	plan.Apply()
	for _, d := range plan.Deductions {
		if err := batchRepo.Save(ctx, d.Batch); err != nil {
			return nil, fmt.Errorf("save batch: %w", err)
		}
	}
	return plan.UsedExpiryDates, nil
}

// IncreaseStock adds a quantity to the batch for (product, expiry date),
// creating the batch when none exists. Creating needs the product on file
// because the manufacture date derives from its shelf life.
func (s *StockLedgerService) IncreaseStock(ctx context.Context, productID uuid.UUID, quantity int, expiryDate time.Time) error {
	return s.txScope.Execute(ctx, func(repos TransactionalRepositories) error {
		return IncreaseStockTx(ctx, repos.BatchRepo(), repos.ProductRepo(), productID, quantity, expiryDate)
	})
}

// IncreaseStockTx performs a stock increase against already-scoped
// repositories.
func IncreaseStockTx(ctx context.Context, batchRepo inventory.StockBatchRepository, productRepo catalog.ProductRepository, productID uuid.UUID, quantity int, expiryDate time.Time) error {
	if quantity <= 0 {
		return shared.ErrInvalidQuantity
	}
	expiry := shared.DateOnly(expiryDate)

	batch, err := batchRepo.FindByProductAndExpiry(ctx, productID, expiry)
	switch {
	case err == nil:
		if err := batch.Add(quantity); err != nil {
			return err
		}
	case errors.Is(err, inventory.ErrBatchNotFound):
		product, perr := productRepo.FindByID(ctx, productID)
		if perr != nil || product == nil {
			return inventory.ErrMissingProductInfo
		}
		batch, err = inventory.NewStockBatch(product.Snapshot(), quantity, expiry)
		if err != nil {
			return err
		}
	default:
		return fmt.Errorf("load batch: %w", err)
	}
	return batchRepo.Save(ctx, batch)
}

// RestoreStockTx puts a quantity back into the batch for (product, expiry
// date), recreating the batch from the caller's captured snapshot when the
// row is gone. Reversal paths use this instead of IncreaseStockTx so a
// recreated batch keeps the price recorded at allocation time rather than
// a live catalog lookup.
func RestoreStockTx(ctx context.Context, batchRepo inventory.StockBatchRepository, snapshot catalog.ProductSnapshot, quantity int, expiryDate time.Time) error {
	if quantity <= 0 {
		return shared.ErrInvalidQuantity
	}
	expiry := shared.DateOnly(expiryDate)

	batch, err := batchRepo.FindByProductAndExpiry(ctx, snapshot.ProductID, expiry)
	switch {
	case err == nil:
		if err := batch.Add(quantity); err != nil {
			return err
		}
	case errors.Is(err, inventory.ErrBatchNotFound):
		batch, err = inventory.NewStockBatch(snapshot, quantity, expiry)
		if err != nil {
			return err
		}
	default:
		return fmt.Errorf("load batch: %w", err)
	}
	return batchRepo.Save(ctx, batch)
}

// CheckAvailability reports whether a product can cover a requested
// quantity and how much is on hand.
func (s *StockLedgerService) CheckAvailability(ctx context.Context, productID uuid.UUID, quantity int) (bool, int, error) {
	available, err := s.batchRepo.SumQuantityByProduct(ctx, productID)
	if err != nil {
		return false, 0, fmt.Errorf("sum quantity: %w", err)
	}
	return available >= quantity, available, nil
}

// TotalQuantity returns the on-hand quantity for a product
func (s *StockLedgerService) TotalQuantity(ctx context.Context, productID uuid.UUID) (int, error) {
	return s.batchRepo.SumQuantityByProduct(ctx, productID)
}

// ProductBatches returns a product's batches ordered by expiry ascending
func (s *StockLedgerService) ProductBatches(ctx context.Context, productID uuid.UUID) ([]*inventory.StockBatch, error) {
	return s.batchRepo.FindByProduct(ctx, productID)
}

// AvailableStock returns every batch that still holds stock, across
// products, ordered by expiry ascending.
func (s *StockLedgerService) AvailableStock(ctx context.Context) ([]*inventory.StockBatch, error) {
	return s.batchRepo.FindAvailable(ctx)
}
