package sales

import (
	"time"

	"github.com/fieldsales/backend/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// ReturnReason classifies why product came back
type ReturnReason string

const (
	ReturnUnsold    ReturnReason = "UNSOLD"
	ReturnExpired   ReturnReason = "EXPIRED"
	ReturnDamaged   ReturnReason = "DAMAGED"
	ReturnSpoilt    ReturnReason = "SPOILT"
	ReturnWrongItem ReturnReason = "WRONG_ITEM"
	ReturnOther     ReturnReason = "OTHER"
)

// StockEffect is what a return does to sellable stock
type StockEffect int

const (
	// StockEffectIncrease puts product back into sellable stock (unsold)
	StockEffectIncrease StockEffect = iota
	// StockEffectDecrease replaces product from stock without a sale
	// (expired, damaged, spoilt, wrong item, other)
	StockEffectDecrease
)

// Effect returns the stock effect of the reason. Every reason other than
// UNSOLD is a replacement and consumes stock.
func (r ReturnReason) Effect() StockEffect {
	if r == ReturnUnsold {
		return StockEffectIncrease
	}
	return StockEffectDecrease
}

// Valid reports whether r is a known return reason
func (r ReturnReason) Valid() bool {
	switch r {
	case ReturnUnsold, ReturnExpired, ReturnDamaged, ReturnSpoilt, ReturnWrongItem, ReturnOther:
		return true
	}
	return false
}

// ReturnRecord is a returned-product event. Trip returns (TripID set) only
// affect the trip reconciliation; warehouse returns move warehouse stock
// according to the reason's effect.
type ReturnRecord struct {
	shared.BaseEntity
	TripID      *uuid.UUID
	ProductID   uuid.UUID
	ProductName string
	Quantity    int
	Reason      ReturnReason
	UnitPrice   decimal.Decimal // per-piece price captured at return time
	ExpiryDate  *time.Time
	Notes       string
	RecordedBy  string
	RecordedAt  time.Time
}

// NewReturnRecord validates and builds a return record
func NewReturnRecord(tripID *uuid.UUID, productID uuid.UUID, productName string, quantity int, reason ReturnReason, unitPrice decimal.Decimal, expiryDate *time.Time, notes, recordedBy string) (*ReturnRecord, error) {
	if quantity <= 0 {
		return nil, shared.ErrInvalidQuantity
	}
	if !reason.Valid() {
		return nil, shared.NewDomainError("INVALID_RETURN_REASON", "unknown return reason")
	}
	var expiry *time.Time
	if expiryDate != nil {
		d := shared.DateOnly(*expiryDate)
		expiry = &d
	}
	return &ReturnRecord{
		BaseEntity:  shared.NewBaseEntity(),
		TripID:      tripID,
		ProductID:   productID,
		ProductName: productName,
		Quantity:    quantity,
		Reason:      reason,
		UnitPrice:   unitPrice,
		ExpiryDate:  expiry,
		Notes:       notes,
		RecordedBy:  recordedBy,
		RecordedAt:  time.Now(),
	}, nil
}

// Value returns quantity times the captured per-piece price
func (r *ReturnRecord) Value() decimal.Decimal {
	return r.UnitPrice.Mul(decimal.NewFromInt(int64(r.Quantity)))
}

// IsTripReturn reports whether the return belongs to a trip
func (r *ReturnRecord) IsTripReturn() bool {
	return r.TripID != nil
}
