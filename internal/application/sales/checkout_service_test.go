package sales

import (
	"context"
	"sort"
	"testing"
	"time"

	apptrip "github.com/fieldsales/backend/internal/application/trip"
	"github.com/fieldsales/backend/internal/domain/catalog"
	"github.com/fieldsales/backend/internal/domain/inventory"
	"github.com/fieldsales/backend/internal/domain/sales"
	"github.com/fieldsales/backend/internal/domain/shared"
	"github.com/fieldsales/backend/internal/domain/trip"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type memSaleRepo struct {
	sales map[uuid.UUID]*sales.Sale
}

func newMemSaleRepo() *memSaleRepo { return &memSaleRepo{sales: make(map[uuid.UUID]*sales.Sale)} }

func (r *memSaleRepo) FindByID(_ context.Context, id uuid.UUID) (*sales.Sale, error) {
	s, ok := r.sales[id]
	if !ok {
		return nil, shared.ErrNotFound
	}
	return s, nil
}

func (r *memSaleRepo) FindByTrip(_ context.Context, tripID uuid.UUID) ([]*sales.Sale, error) {
	var out []*sales.Sale
	for _, s := range r.sales {
		if s.TripID != nil && *s.TripID == tripID {
			out = append(out, s)
		}
	}
	return out, nil
}

func (r *memSaleRepo) Save(_ context.Context, s *sales.Sale) error {
	r.sales[s.ID] = s
	return nil
}

type memReturnRepo struct {
	records map[uuid.UUID]*sales.ReturnRecord
}

func newMemReturnRepo() *memReturnRepo {
	return &memReturnRepo{records: make(map[uuid.UUID]*sales.ReturnRecord)}
}

func (r *memReturnRepo) FindByID(_ context.Context, id uuid.UUID) (*sales.ReturnRecord, error) {
	rec, ok := r.records[id]
	if !ok {
		return nil, shared.ErrNotFound
	}
	return rec, nil
}

func (r *memReturnRepo) FindByTrip(_ context.Context, tripID uuid.UUID) ([]*sales.ReturnRecord, error) {
	var out []*sales.ReturnRecord
	for _, rec := range r.records {
		if rec.TripID != nil && *rec.TripID == tripID {
			out = append(out, rec)
		}
	}
	return out, nil
}

func (r *memReturnRepo) Save(_ context.Context, rec *sales.ReturnRecord) error {
	r.records[rec.ID] = rec
	return nil
}

func (r *memReturnRepo) Delete(_ context.Context, id uuid.UUID) error {
	delete(r.records, id)
	return nil
}

type memBatchRepo struct {
	batches map[uuid.UUID]*inventory.StockBatch
}

func newMemBatchRepo() *memBatchRepo {
	return &memBatchRepo{batches: make(map[uuid.UUID]*inventory.StockBatch)}
}

func (r *memBatchRepo) FindByProduct(_ context.Context, productID uuid.UUID) ([]*inventory.StockBatch, error) {
	var out []*inventory.StockBatch
	for _, b := range r.batches {
		if b.ProductID == productID {
			out = append(out, b)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ExpiryDate.Before(out[j].ExpiryDate) })
	return out, nil
}

func (r *memBatchRepo) FindByProductAndExpiry(_ context.Context, productID uuid.UUID, expiry time.Time) (*inventory.StockBatch, error) {
	for _, b := range r.batches {
		if b.ProductID == productID && b.ExpiryDate.Equal(expiry) {
			return b, nil
		}
	}
	return nil, inventory.ErrBatchNotFound
}

func (r *memBatchRepo) FindAvailable(_ context.Context) ([]*inventory.StockBatch, error) {
	var out []*inventory.StockBatch
	for _, b := range r.batches {
		if b.HasStock() {
			out = append(out, b)
		}
	}
	return out, nil
}

func (r *memBatchRepo) Save(_ context.Context, b *inventory.StockBatch) error {
	r.batches[b.ID] = b
	return nil
}

func (r *memBatchRepo) SumQuantityByProduct(_ context.Context, productID uuid.UUID) (int, error) {
	total := 0
	for _, b := range r.batches {
		if b.ProductID == productID {
			total += b.Quantity
		}
	}
	return total, nil
}

type memProductRepo struct {
	products map[uuid.UUID]*catalog.Product
}

func newMemProductRepo() *memProductRepo {
	return &memProductRepo{products: make(map[uuid.UUID]*catalog.Product)}
}

func (r *memProductRepo) FindByID(_ context.Context, id uuid.UUID) (*catalog.Product, error) {
	p, ok := r.products[id]
	if !ok {
		return nil, shared.ErrNotFound
	}
	return p, nil
}

func (r *memProductRepo) FindAll(_ context.Context, _ shared.Filter) (*shared.Paginated[*catalog.Product], error) {
	var out []*catalog.Product
	for _, p := range r.products {
		out = append(out, p)
	}
	page := shared.NewPaginated(out, int64(len(out)), 1, 20)
	return &page, nil
}

func (r *memProductRepo) Save(_ context.Context, p *catalog.Product) error {
	r.products[p.ID] = p
	return nil
}

func (r *memProductRepo) Delete(_ context.Context, id uuid.UUID) error {
	delete(r.products, id)
	return nil
}

func (r *memProductRepo) Count(_ context.Context) (int64, error) { return int64(len(r.products)), nil }

type memTripRepo struct {
	trips map[uuid.UUID]*trip.Trip
}

func newMemTripRepo() *memTripRepo { return &memTripRepo{trips: make(map[uuid.UUID]*trip.Trip)} }

func (r *memTripRepo) FindByID(_ context.Context, id uuid.UUID) (*trip.Trip, error) {
	t, ok := r.trips[id]
	if !ok {
		return nil, shared.ErrNotFound
	}
	return t, nil
}

func (r *memTripRepo) FindAll(_ context.Context, _ shared.Filter) (*shared.Paginated[*trip.Trip], error) {
	var out []*trip.Trip
	for _, t := range r.trips {
		out = append(out, t)
	}
	page := shared.NewPaginated(out, int64(len(out)), 1, 20)
	return &page, nil
}

func (r *memTripRepo) Save(_ context.Context, t *trip.Trip) error {
	r.trips[t.ID] = t
	return nil
}

type memAllocationRepo struct {
	allocations map[uuid.UUID]*trip.Allocation
}

func newMemAllocationRepo() *memAllocationRepo {
	return &memAllocationRepo{allocations: make(map[uuid.UUID]*trip.Allocation)}
}

func (r *memAllocationRepo) FindByID(_ context.Context, id uuid.UUID) (*trip.Allocation, error) {
	a, ok := r.allocations[id]
	if !ok {
		return nil, shared.ErrNotFound
	}
	return a, nil
}

func (r *memAllocationRepo) FindByTrip(_ context.Context, tripID uuid.UUID) ([]*trip.Allocation, error) {
	var out []*trip.Allocation
	for _, a := range r.allocations {
		if a.TripID == tripID {
			out = append(out, a)
		}
	}
	return out, nil
}

func (r *memAllocationRepo) FindByTripAndProduct(_ context.Context, tripID, productID uuid.UUID) ([]*trip.Allocation, error) {
	var out []*trip.Allocation
	for _, a := range r.allocations {
		if a.TripID == tripID && a.ProductID == productID {
			out = append(out, a)
		}
	}
	return out, nil
}

func (r *memAllocationRepo) Save(_ context.Context, a *trip.Allocation) error {
	r.allocations[a.ID] = a
	return nil
}

func (r *memAllocationRepo) Delete(_ context.Context, id uuid.UUID) error {
	delete(r.allocations, id)
	return nil
}

type checkoutFixture struct {
	svc         *CheckoutService
	saleRepo    *memSaleRepo
	returnRepo  *memReturnRepo
	batchRepo   *memBatchRepo
	productRepo *memProductRepo
	tripRepo    *memTripRepo
	allocRepo   *memAllocationRepo
}

func newCheckoutFixture(t *testing.T) *checkoutFixture {
	t.Helper()
	f := &checkoutFixture{
		saleRepo:    newMemSaleRepo(),
		returnRepo:  newMemReturnRepo(),
		batchRepo:   newMemBatchRepo(),
		productRepo: newMemProductRepo(),
		tripRepo:    newMemTripRepo(),
		allocRepo:   newMemAllocationRepo(),
	}
	tripScope := apptrip.NewNoOpTransactionScope(f.tripRepo, f.allocRepo, f.batchRepo, f.productRepo)
	recon := apptrip.NewReconciliationService(tripScope, f.allocRepo, f.saleRepo, f.returnRepo)
	scope := NewNoOpTransactionScope(f.saleRepo, f.returnRepo, f.batchRepo, f.productRepo)
	f.svc = NewCheckoutService(scope, recon)
	return f
}

func (f *checkoutFixture) addProduct(t *testing.T, name string, qty int, expiry time.Time) *catalog.Product {
	t.Helper()
	ctx := context.Background()
	product, err := catalog.NewProduct(name, decimal.NewFromInt(240), 12, 14, 150)
	require.NoError(t, err)
	require.NoError(t, f.productRepo.Save(ctx, product))
	if qty > 0 {
		batch, err := inventory.NewStockBatch(product.Snapshot(), qty, expiry)
		require.NoError(t, err)
		require.NoError(t, f.batchRepo.Save(ctx, batch))
	}
	return product
}

func TestCheckout(t *testing.T) {
	ctx := context.Background()
	expiry := time.Date(2026, 9, 10, 0, 0, 0, 0, time.UTC)

	t.Run("warehouse sale depletes stock and captures per piece price", func(t *testing.T) {
		f := newCheckoutFixture(t)
		product := f.addProduct(t, "Yogurt 150ml", 50, expiry)

		sale, err := f.svc.Checkout(ctx, CheckoutInput{
			CustomerName:  "Mama Njeri Shop",
			Lines:         []CheckoutLine{{ProductID: product.ID, Quantity: 12}},
			PaymentMethod: sales.PaymentCash,
			SoldBy:        "agent-1",
		})
		require.NoError(t, err)
		assert.Equal(t, sales.SaleStatusCompleted, sale.Status)
		assert.True(t, sale.Total().Equal(decimal.NewFromInt(240)))

		left, err := f.batchRepo.SumQuantityByProduct(ctx, product.ID)
		require.NoError(t, err)
		assert.Equal(t, 38, left)
	})

	t.Run("warehouse sale fails cleanly on insufficient stock", func(t *testing.T) {
		f := newCheckoutFixture(t)
		product := f.addProduct(t, "Yogurt 150ml", 10, expiry)

		_, err := f.svc.Checkout(ctx, CheckoutInput{
			Lines:         []CheckoutLine{{ProductID: product.ID, Quantity: 25}},
			PaymentMethod: sales.PaymentCash,
			SoldBy:        "agent-1",
		})
		var insufficient *inventory.InsufficientStockError
		require.ErrorAs(t, err, &insufficient)
		assert.Empty(t, f.saleRepo.sales)
	})

	t.Run("trip sale leaves the warehouse ledger alone", func(t *testing.T) {
		f := newCheckoutFixture(t)
		product := f.addProduct(t, "Yogurt 150ml", 50, expiry)

		tr, err := trip.NewTrip("John Kamau", "", "")
		require.NoError(t, err)
		require.NoError(t, f.tripRepo.Save(ctx, tr))
		alloc, err := trip.NewAllocation(tr.ID, product.Snapshot(), 20, expiry, "manager")
		require.NoError(t, err)
		require.NoError(t, f.allocRepo.Save(ctx, alloc))

		_, err = f.svc.Checkout(ctx, CheckoutInput{
			TripID:        &tr.ID,
			Lines:         []CheckoutLine{{ProductID: product.ID, Quantity: 15}},
			PaymentMethod: sales.PaymentTillNumber,
			SoldBy:        "agent-1",
		})
		require.NoError(t, err)

		left, err := f.batchRepo.SumQuantityByProduct(ctx, product.ID)
		require.NoError(t, err)
		assert.Equal(t, 50, left)
	})

	t.Run("trip sale beyond remaining position is rejected", func(t *testing.T) {
		f := newCheckoutFixture(t)
		product := f.addProduct(t, "Yogurt 150ml", 50, expiry)

		tr, err := trip.NewTrip("John Kamau", "", "")
		require.NoError(t, err)
		require.NoError(t, f.tripRepo.Save(ctx, tr))
		alloc, err := trip.NewAllocation(tr.ID, product.Snapshot(), 10, expiry, "manager")
		require.NoError(t, err)
		require.NoError(t, f.allocRepo.Save(ctx, alloc))

		_, err = f.svc.Checkout(ctx, CheckoutInput{
			TripID:        &tr.ID,
			Lines:         []CheckoutLine{{ProductID: product.ID, Quantity: 11}},
			PaymentMethod: sales.PaymentCash,
			SoldBy:        "agent-1",
		})
		assert.ErrorIs(t, err, shared.ErrInvalidQuantity)
	})

	t.Run("trip sale of an unallocated product is rejected", func(t *testing.T) {
		f := newCheckoutFixture(t)
		product := f.addProduct(t, "Yogurt 150ml", 50, expiry)

		tr, err := trip.NewTrip("John Kamau", "", "")
		require.NoError(t, err)
		require.NoError(t, f.tripRepo.Save(ctx, tr))

		_, err = f.svc.Checkout(ctx, CheckoutInput{
			TripID:        &tr.ID,
			Lines:         []CheckoutLine{{ProductID: product.ID, Quantity: 1}},
			PaymentMethod: sales.PaymentCash,
			SoldBy:        "agent-1",
		})
		assert.ErrorIs(t, err, trip.ErrAllocationNotFound)
	})
}
