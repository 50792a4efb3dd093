package sales

import (
	"time"

	"github.com/fieldsales/backend/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// SaleStatus is the lifecycle state of a sale
type SaleStatus string

const (
	SaleStatusPending   SaleStatus = "PENDING"
	SaleStatusCompleted SaleStatus = "COMPLETED"
	SaleStatusCancelled SaleStatus = "CANCELLED"
)

// PaymentMethod is how a sale was paid. The three mobile-money methods
// are grouped together in settlement totals.
type PaymentMethod string

const (
	PaymentCash         PaymentMethod = "CASH"
	PaymentMpesaDeposit PaymentMethod = "MPESA_DEPOSIT"
	PaymentTillNumber   PaymentMethod = "TILL_NUMBER"
	PaymentSendMoney    PaymentMethod = "SEND_MONEY"
)

// IsMobileMoney reports whether the method counts toward the mobile total
func (m PaymentMethod) IsMobileMoney() bool {
	switch m {
	case PaymentMpesaDeposit, PaymentTillNumber, PaymentSendMoney:
		return true
	}
	return false
}

// ValidPaymentMethod reports whether m is a known payment method
func ValidPaymentMethod(m PaymentMethod) bool {
	switch m {
	case PaymentCash, PaymentMpesaDeposit, PaymentTillNumber, PaymentSendMoney:
		return true
	}
	return false
}

// SaleItem is one product line on a sale. UnitPrice is the per-piece price
// captured at sale time.
type SaleItem struct {
	ProductID   uuid.UUID
	ProductName string
	Quantity    int
	UnitPrice   decimal.Decimal
}

// LineTotal returns quantity times the captured per-piece price
func (i SaleItem) LineTotal() decimal.Decimal {
	return i.UnitPrice.Mul(decimal.NewFromInt(int64(i.Quantity)))
}

// Sale is a customer sale, either from the warehouse or from a trip's
// allocated stock. TripID is nil for warehouse sales.
type Sale struct {
	shared.BaseEntity
	TripID        *uuid.UUID
	CustomerName  string
	Items         []SaleItem
	PaymentMethod PaymentMethod
	Status        SaleStatus
	SoldBy        string
	SoldAt        time.Time
}

// NewSale builds a pending sale after validating its lines
func NewSale(tripID *uuid.UUID, customerName string, items []SaleItem, method PaymentMethod, soldBy string) (*Sale, error) {
	if len(items) == 0 {
		return nil, shared.NewDomainError("EMPTY_SALE", "sale must have at least one item")
	}
	for _, item := range items {
		if item.Quantity <= 0 {
			return nil, shared.ErrInvalidQuantity
		}
		if item.UnitPrice.IsNegative() {
			return nil, shared.NewDomainError("INVALID_PRICE", "item price cannot be negative")
		}
	}
	if !ValidPaymentMethod(method) {
		return nil, shared.NewDomainError("INVALID_PAYMENT_METHOD", "unknown payment method")
	}
	return &Sale{
		BaseEntity:    shared.NewBaseEntity(),
		TripID:        tripID,
		CustomerName:  customerName,
		Items:         items,
		PaymentMethod: method,
		Status:        SaleStatusPending,
		SoldBy:        soldBy,
		SoldAt:        time.Now(),
	}, nil
}

// Total returns the sale value across all lines
func (s *Sale) Total() decimal.Decimal {
	total := decimal.Zero
	for _, item := range s.Items {
		total = total.Add(item.LineTotal())
	}
	return total
}

// Complete marks the sale as completed. Only completed sales count toward
// trip stock reconciliation and settlement.
func (s *Sale) Complete() error {
	if s.Status != SaleStatusPending {
		return shared.ErrInvalidState
	}
	s.Status = SaleStatusCompleted
	s.UpdatedAt = time.Now()
	return nil
}

// Cancel voids a pending sale
func (s *Sale) Cancel() error {
	if s.Status != SaleStatusPending {
		return shared.ErrInvalidState
	}
	s.Status = SaleStatusCancelled
	s.UpdatedAt = time.Now()
	return nil
}

// IsTripSale reports whether the sale draws on trip-allocated stock
func (s *Sale) IsTripSale() bool {
	return s.TripID != nil
}
