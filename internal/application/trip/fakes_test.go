package trip

import (
	"context"
	"sort"
	"time"

	"github.com/fieldsales/backend/internal/domain/catalog"
	"github.com/fieldsales/backend/internal/domain/inventory"
	"github.com/fieldsales/backend/internal/domain/sales"
	"github.com/fieldsales/backend/internal/domain/shared"
	"github.com/fieldsales/backend/internal/domain/trip"
	"github.com/google/uuid"
)

type memTripRepo struct {
	trips map[uuid.UUID]*trip.Trip
}

func newMemTripRepo() *memTripRepo {
	return &memTripRepo{trips: make(map[uuid.UUID]*trip.Trip)}
}

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
	sort.Slice(out, func(i, j int) bool { return out[i].AllocatedAt.Before(out[j].AllocatedAt) })
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

func (r *memProductRepo) Count(_ context.Context) (int64, error) {
	return int64(len(r.products)), nil
}

type memSaleRepo struct {
	sales map[uuid.UUID]*sales.Sale
}

func newMemSaleRepo() *memSaleRepo {
	return &memSaleRepo{sales: make(map[uuid.UUID]*sales.Sale)}
}

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
