package inventory

import (
	"sort"
	"time"

	"github.com/fieldsales/backend/internal/domain/shared"
)

// BatchDeduction records how much of a depletion request one batch absorbs
type BatchDeduction struct {
	Batch    *StockBatch
	Quantity int
}

// DepletionPlan is the result of planning a stock reduction across the
// batches of a single product. Deductions are ordered soonest expiry first
// and UsedExpiryDates lists each touched batch's expiry in that order.
type DepletionPlan struct {
	Deductions      []BatchDeduction
	UsedExpiryDates []time.Time
}

// Apply executes the planned deductions against the batches
func (p *DepletionPlan) Apply() {
	for _, d := range p.Deductions {
		d.Batch.Deduct(d.Quantity)
	}
}

// PlanDepletion distributes a requested quantity across a product's batches
// in first-expiry-first-out order. Batches are not mutated; callers apply
// the plan after it succeeds. If the total available quantity is short of
// the request, an InsufficientStockError is returned and no plan is made.
func PlanDepletion(batches []*StockBatch, quantity int) (*DepletionPlan, error) {
	if quantity <= 0 {
		return nil, shared.ErrInvalidQuantity
	}

	ordered := make([]*StockBatch, 0, len(batches))
	available := 0
	for _, b := range batches {
		if b.HasStock() {
			ordered = append(ordered, b)
			available += b.Quantity
		}
	}
	sort.SliceStable(ordered, func(i, j int) bool {
		return ordered[i].ExpiryDate.Before(ordered[j].ExpiryDate)
	})

	if available < quantity {
		err := &InsufficientStockError{Requested: quantity, Available: available}
		if len(batches) > 0 {
			err.ProductID = batches[0].ProductID
			err.ProductName = batches[0].Product.Name
		}
		return nil, err
	}

	plan := &DepletionPlan{}
	remaining := quantity
	for _, b := range ordered {
		if remaining == 0 {
			break
		}
		take := remaining
		if take > b.Quantity {
			take = b.Quantity
		}
		plan.Deductions = append(plan.Deductions, BatchDeduction{Batch: b, Quantity: take})
		plan.UsedExpiryDates = append(plan.UsedExpiryDates, b.ExpiryDate)
		remaining -= take
	}
	return plan, nil
}

// TotalAvailable sums the quantity across batches
func TotalAvailable(batches []*StockBatch) int {
	total := 0
	for _, b := range batches {
		total += b.Quantity
	}
	return total
}
