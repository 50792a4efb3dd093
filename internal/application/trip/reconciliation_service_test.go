package trip

import (
	"context"
	"testing"
	"time"

	"github.com/fieldsales/backend/internal/domain/sales"
	"github.com/fieldsales/backend/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type reconFixture struct {
	*allocFixture
	saleRepo   *memSaleRepo
	returnRepo *memReturnRepo
	recon      *ReconciliationService
}

func newReconFixture(t *testing.T) *reconFixture {
	t.Helper()
	base := newAllocFixture(t)
	f := &reconFixture{
		allocFixture: base,
		saleRepo:     newMemSaleRepo(),
		returnRepo:   newMemReturnRepo(),
	}
	scope := NewNoOpTransactionScope(base.tripRepo, base.allocRepo, base.batchRepo, base.productRepo)
	f.recon = NewReconciliationService(scope, base.allocRepo, f.saleRepo, f.returnRepo)
	return f
}

func (f *reconFixture) recordSale(t *testing.T, productID uuid.UUID, qty int) {
	t.Helper()
	sale, err := sales.NewSale(&f.trip.ID, "customer", []sales.SaleItem{{
		ProductID: productID,
		Quantity:  qty,
		UnitPrice: decimal.NewFromInt(20),
	}}, sales.PaymentCash, "agent-1")
	require.NoError(t, err)
	require.NoError(t, sale.Complete())
	require.NoError(t, f.saleRepo.Save(context.Background(), sale))
}

func TestReconciliationPositions(t *testing.T) {
	ctx := context.Background()
	expiry := time.Date(2026, 9, 10, 0, 0, 0, 0, time.UTC)

	f := newReconFixture(t)
	product := f.addProduct(t, "Yogurt 150ml", 100, expiry)

	_, err := f.svc.Allocate(ctx, f.trip.ID, []AllocationLine{{ProductID: product.ID, Quantity: 30}}, "manager")
	require.NoError(t, err)
	f.recordSale(t, product.ID, 10)

	unsold, err := sales.NewReturnRecord(&f.trip.ID, product.ID, product.Name, 5, sales.ReturnUnsold, decimal.NewFromInt(20), &expiry, "", "agent-1")
	require.NoError(t, err)
	require.NoError(t, f.returnRepo.Save(ctx, unsold))
	damaged, err := sales.NewReturnRecord(&f.trip.ID, product.ID, product.Name, 3, sales.ReturnDamaged, decimal.NewFromInt(20), &expiry, "", "agent-1")
	require.NoError(t, err)
	require.NoError(t, f.returnRepo.Save(ctx, damaged))

	positions, err := f.recon.Positions(ctx, f.trip.ID)
	require.NoError(t, err)
	require.Len(t, positions, 1)
	assert.Equal(t, 30, positions[0].Allocated)
	assert.Equal(t, 10, positions[0].Sold)
	assert.Equal(t, 8, positions[0].Returned)
	assert.Equal(t, 22, positions[0].Remaining)

	sellable, err := f.recon.SellableItems(ctx, f.trip.ID)
	require.NoError(t, err)
	assert.Len(t, sellable, 1)
}

func TestReturnToWarehouse(t *testing.T) {
	ctx := context.Background()
	expiry := time.Date(2026, 9, 10, 0, 0, 0, 0, time.UTC)

	t.Run("restores remaining stock at the allocation expiry", func(t *testing.T) {
		f := newReconFixture(t)
		product := f.addProduct(t, "Yogurt 150ml", 100, expiry)

		_, err := f.svc.Allocate(ctx, f.trip.ID, []AllocationLine{{ProductID: product.ID, Quantity: 30}}, "manager")
		require.NoError(t, err)
		f.recordSale(t, product.ID, 12)

		require.NoError(t, f.trip.Start(100, time.Now()))
		require.NoError(t, f.trip.End(150, time.Now().Add(time.Hour)))
		require.NoError(t, f.tripRepo.Save(ctx, f.trip))

		require.NoError(t, f.recon.ReturnToWarehouse(ctx, f.trip.ID))

		total, err := f.batchRepo.SumQuantityByProduct(ctx, product.ID)
		require.NoError(t, err)
		// 100 - 30 allocated + 18 returned
		assert.Equal(t, 88, total)

		batch, err := f.batchRepo.FindByProductAndExpiry(ctx, product.ID, expiry)
		require.NoError(t, err)
		assert.Equal(t, 88, batch.Quantity)
	})

	t.Run("rejected while the trip is still ongoing", func(t *testing.T) {
		f := newReconFixture(t)
		product := f.addProduct(t, "Yogurt 150ml", 100, expiry)
		_, err := f.svc.Allocate(ctx, f.trip.ID, []AllocationLine{{ProductID: product.ID, Quantity: 30}}, "manager")
		require.NoError(t, err)
		require.NoError(t, f.trip.Start(100, time.Now()))
		require.NoError(t, f.tripRepo.Save(ctx, f.trip))

		assert.ErrorIs(t, f.recon.ReturnToWarehouse(ctx, f.trip.ID), shared.ErrInvalidState)
	})
}
