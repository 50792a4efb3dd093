package trip

import (
	"sort"
	"time"

	"github.com/fieldsales/backend/internal/domain/catalog"
	"github.com/fieldsales/backend/internal/domain/sales"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// StockPosition is the reconciled state of one product on a trip: what was
// loaded, what completed sales consumed, what came back, and what should
// still be on the vehicle.
type StockPosition struct {
	ProductID    uuid.UUID
	Product      catalog.ProductSnapshot
	Allocated    int
	Sold         int
	Returned     int
	Remaining    int
	ExpiryDate   time.Time
	SalesValue   decimal.Decimal
	UnsoldValue  decimal.Decimal
	ReturnsValue decimal.Decimal // replacement returns, kept apart from UnsoldValue
}

// RemainingValue prices the remaining quantity at the allocation snapshot's
// per-piece price.
func (p *StockPosition) RemainingValue() decimal.Decimal {
	return p.Product.PricePerPiece().Mul(decimal.NewFromInt(int64(p.Remaining)))
}

// AllocatedValue prices the loaded quantity at the snapshot per-piece price
func (p *StockPosition) AllocatedValue() decimal.Decimal {
	return p.Product.PricePerPiece().Mul(decimal.NewFromInt(int64(p.Allocated)))
}

// BuildPositions reconciles a trip's allocations against its sales and
// returns. Positions are seeded from allocations; only completed sales
// subtract from remaining. Unsold returns add back to remaining while
// every other reason replaces trip stock and subtracts. Sale or return
// lines for products with no allocation on the trip are skipped.
func BuildPositions(allocations []*Allocation, tripSales []*sales.Sale, tripReturns []*sales.ReturnRecord) []*StockPosition {
	byProduct := make(map[uuid.UUID]*StockPosition)
	order := make([]uuid.UUID, 0, len(allocations))

	for _, alloc := range allocations {
		pos, ok := byProduct[alloc.ProductID]
		if !ok {
			pos = &StockPosition{
				ProductID:  alloc.ProductID,
				Product:    alloc.Product,
				ExpiryDate: alloc.SourceExpiryDate,
			}
			byProduct[alloc.ProductID] = pos
			order = append(order, alloc.ProductID)
		}
		pos.Allocated += alloc.Quantity
		pos.Remaining += alloc.Quantity
	}

	for _, sale := range tripSales {
		if sale.Status != sales.SaleStatusCompleted {
			continue
		}
		for _, item := range sale.Items {
			pos, ok := byProduct[item.ProductID]
			if !ok {
				continue
			}
			pos.Sold += item.Quantity
			pos.Remaining -= item.Quantity
			pos.SalesValue = pos.SalesValue.Add(item.LineTotal())
		}
	}

	for _, ret := range tripReturns {
		pos, ok := byProduct[ret.ProductID]
		if !ok {
			continue
		}
		pos.Returned += ret.Quantity
		if ret.Reason.Effect() == sales.StockEffectIncrease {
			pos.Remaining += ret.Quantity
			pos.UnsoldValue = pos.UnsoldValue.Add(ret.Value())
		} else {
			pos.Remaining -= ret.Quantity
			pos.ReturnsValue = pos.ReturnsValue.Add(ret.Value())
		}
	}

	positions := make([]*StockPosition, 0, len(order))
	for _, id := range order {
		positions = append(positions, byProduct[id])
	}
	sort.SliceStable(positions, func(i, j int) bool {
		return positions[i].Product.Name < positions[j].Product.Name
	})
	return positions
}

// SellableItems filters positions down to those with stock still on the
// vehicle. This is the list a trip sale can draw from.
func SellableItems(positions []*StockPosition) []*StockPosition {
	items := make([]*StockPosition, 0, len(positions))
	for _, pos := range positions {
		if pos.Remaining > 0 {
			items = append(items, pos)
		}
	}
	return items
}

// UnsoldReturnsValue totals the value of unsold returns across positions
func UnsoldReturnsValue(positions []*StockPosition) decimal.Decimal {
	total := decimal.Zero
	for _, pos := range positions {
		total = total.Add(pos.UnsoldValue)
	}
	return total
}

// ReplacementReturnsValue totals the value of replacement returns across
// positions.
func ReplacementReturnsValue(positions []*StockPosition) decimal.Decimal {
	total := decimal.Zero
	for _, pos := range positions {
		total = total.Add(pos.ReturnsValue)
	}
	return total
}

// InitialStockValue totals the allocated value across positions
func InitialStockValue(positions []*StockPosition) decimal.Decimal {
	total := decimal.Zero
	for _, pos := range positions {
		total = total.Add(pos.AllocatedValue())
	}
	return total
}
