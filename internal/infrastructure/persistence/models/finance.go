package models

import (
	"time"

	"github.com/fieldsales/backend/internal/domain/finance"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// ExpenseModel is the persistence model for trip expenses
type ExpenseModel struct {
	BaseModel
	TripID        uuid.UUID `gorm:"type:uuid;not null;index"`
	Reason        string    `gorm:"not null"`
	Type          string
	Amount        decimal.Decimal `gorm:"type:decimal(18,4);not null"`
	PaymentMethod string          `gorm:"not null"`
	Status        string          `gorm:"not null;index"`
	Description   string
	RecordedBy    string
	RecordedAt    time.Time `gorm:"not null"`
}

// TableName returns the table name for GORM
func (ExpenseModel) TableName() string {
	return "trip_expenses"
}

// ToDomain converts the persistence model to a domain Expense
func (m *ExpenseModel) ToDomain() *finance.Expense {
	return &finance.Expense{
		BaseEntity:    m.BaseModel.ToDomain(),
		TripID:        m.TripID,
		Reason:        finance.ExpenseReason(m.Reason),
		Type:          finance.ExpenseType(m.Type),
		Amount:        m.Amount,
		PaymentMethod: finance.ExpensePayment(m.PaymentMethod),
		Status:        finance.ExpenseStatus(m.Status),
		Description:   m.Description,
		RecordedBy:    m.RecordedBy,
		RecordedAt:    m.RecordedAt,
	}
}

// FromDomain populates the persistence model from a domain Expense
func (m *ExpenseModel) FromDomain(e *finance.Expense) {
	m.BaseModel.FromDomain(e.BaseEntity)
	m.TripID = e.TripID
	m.Reason = string(e.Reason)
	m.Type = string(e.Type)
	m.Amount = e.Amount
	m.PaymentMethod = string(e.PaymentMethod)
	m.Status = string(e.Status)
	m.Description = e.Description
	m.RecordedBy = e.RecordedBy
	m.RecordedAt = e.RecordedAt
}
