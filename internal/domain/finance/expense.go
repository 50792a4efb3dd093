package finance

import (
	"time"

	"github.com/fieldsales/backend/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// ExpenseReason is what the money was spent on
type ExpenseReason string

const (
	ExpenseFuel        ExpenseReason = "FUEL"
	ExpenseMeals       ExpenseReason = "MEALS"
	ExpenseMaintenance ExpenseReason = "MAINTENANCE"
	ExpenseStationery  ExpenseReason = "STATIONERY"
	ExpenseOther       ExpenseReason = "OTHER"
)

// Valid reports whether r is a known expense reason
func (r ExpenseReason) Valid() bool {
	switch r {
	case ExpenseFuel, ExpenseMeals, ExpenseMaintenance, ExpenseStationery, ExpenseOther:
		return true
	}
	return false
}

// ExpenseType determines who bears the expense in settlement. Company
// expenses reduce the expected submission; personal expenses additionally
// reduce the distributor's commission.
type ExpenseType string

const (
	ExpenseTypeCompany  ExpenseType = "COMPANY"
	ExpenseTypePersonal ExpenseType = "PERSONAL"
)

// ExpensePayment is how the expense was paid out
type ExpensePayment string

const (
	ExpensePaidCash  ExpensePayment = "CASH"
	ExpensePaidMpesa ExpensePayment = "MPESA"
)

// ExpenseStatus is the approval state of an expense
type ExpenseStatus string

const (
	ExpenseStatusPending  ExpenseStatus = "PENDING"
	ExpenseStatusApproved ExpenseStatus = "APPROVED"
	ExpenseStatusRejected ExpenseStatus = "REJECTED"
)

// Expense is money spent during a trip. Type may be set explicitly;
// otherwise it is derived from the reason at settlement time.
type Expense struct {
	shared.BaseEntity
	TripID        uuid.UUID
	Reason        ExpenseReason
	Type          ExpenseType // empty means derive from Reason
	Amount        decimal.Decimal
	PaymentMethod ExpensePayment
	Status        ExpenseStatus
	Description   string
	RecordedBy    string
	RecordedAt    time.Time
}

// NewExpense validates and builds a pending expense
func NewExpense(tripID uuid.UUID, reason ExpenseReason, amount decimal.Decimal, method ExpensePayment, description, recordedBy string) (*Expense, error) {
	if !reason.Valid() {
		return nil, shared.NewDomainError("INVALID_EXPENSE_REASON", "unknown expense reason")
	}
	if !amount.IsPositive() {
		return nil, shared.NewDomainError("INVALID_AMOUNT", "expense amount must be positive")
	}
	if method != ExpensePaidCash && method != ExpensePaidMpesa {
		return nil, shared.NewDomainError("INVALID_PAYMENT_METHOD", "unknown expense payment method")
	}
	return &Expense{
		BaseEntity:    shared.NewBaseEntity(),
		TripID:        tripID,
		Reason:        reason,
		Amount:        amount,
		PaymentMethod: method,
		Status:        ExpenseStatusPending,
		Description:   description,
		RecordedBy:    recordedBy,
		RecordedAt:    time.Now(),
	}, nil
}

// EffectiveType resolves who bears the expense. An explicitly set type
// wins; otherwise fuel, maintenance and stationery are company costs,
// meals are personal, and anything else defaults to company.
func (e *Expense) EffectiveType() ExpenseType {
	if e.Type != "" {
		return e.Type
	}
	switch e.Reason {
	case ExpenseMeals:
		return ExpenseTypePersonal
	default:
		return ExpenseTypeCompany
	}
}

// CountsTowardSettlement reports whether the expense enters settlement
// totals. Rejected expenses are excluded; pending ones still count so the
// summary reflects money already spent.
func (e *Expense) CountsTowardSettlement() bool {
	return e.Status != ExpenseStatusRejected
}

// Approve marks a pending expense approved
func (e *Expense) Approve() error {
	if e.Status != ExpenseStatusPending {
		return shared.ErrInvalidState
	}
	e.Status = ExpenseStatusApproved
	e.UpdatedAt = time.Now()
	return nil
}

// Reject marks a pending expense rejected
func (e *Expense) Reject() error {
	if e.Status != ExpenseStatusPending {
		return shared.ErrInvalidState
	}
	e.Status = ExpenseStatusRejected
	e.UpdatedAt = time.Now()
	return nil
}
