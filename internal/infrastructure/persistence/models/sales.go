package models

import (
	"time"

	"github.com/fieldsales/backend/internal/domain/sales"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// SaleModel is the persistence model for sales
type SaleModel struct {
	BaseModel
	TripID        *uuid.UUID `gorm:"type:uuid;index"`
	CustomerName  string
	PaymentMethod string `gorm:"not null"`
	Status        string `gorm:"not null;index"`
	SoldBy        string
	SoldAt        time.Time `gorm:"not null"`
	// Associations
	Items []SaleItemModel `gorm:"foreignKey:SaleID;references:ID;constraint:OnDelete:CASCADE"`
}

// TableName returns the table name for GORM
func (SaleModel) TableName() string {
	return "sales"
}

// SaleItemModel is one product line of a sale
type SaleItemModel struct {
	BaseModel
	SaleID      uuid.UUID `gorm:"type:uuid;not null;index"`
	ProductID   uuid.UUID `gorm:"type:uuid;not null"`
	ProductName string
	Quantity    int             `gorm:"not null"`
	UnitPrice   decimal.Decimal `gorm:"type:decimal(18,4);not null"`
}

// TableName returns the table name for GORM
func (SaleItemModel) TableName() string {
	return "sale_items"
}

// ToDomain converts the persistence model to a domain Sale
func (m *SaleModel) ToDomain() *sales.Sale {
	items := make([]sales.SaleItem, len(m.Items))
	for i, item := range m.Items {
		items[i] = sales.SaleItem{
			ProductID:   item.ProductID,
			ProductName: item.ProductName,
			Quantity:    item.Quantity,
			UnitPrice:   item.UnitPrice,
		}
	}
	return &sales.Sale{
		BaseEntity:    m.BaseModel.ToDomain(),
		TripID:        m.TripID,
		CustomerName:  m.CustomerName,
		Items:         items,
		PaymentMethod: sales.PaymentMethod(m.PaymentMethod),
		Status:        sales.SaleStatus(m.Status),
		SoldBy:        m.SoldBy,
		SoldAt:        m.SoldAt,
	}
}

// FromDomain populates the persistence model from a domain Sale
func (m *SaleModel) FromDomain(s *sales.Sale) {
	m.BaseModel.FromDomain(s.BaseEntity)
	m.TripID = s.TripID
	m.CustomerName = s.CustomerName
	m.PaymentMethod = string(s.PaymentMethod)
	m.Status = string(s.Status)
	m.SoldBy = s.SoldBy
	m.SoldAt = s.SoldAt
	m.Items = make([]SaleItemModel, len(s.Items))
	for i, item := range s.Items {
		m.Items[i] = SaleItemModel{
			SaleID:      s.ID,
			ProductID:   item.ProductID,
			ProductName: item.ProductName,
			Quantity:    item.Quantity,
			UnitPrice:   item.UnitPrice,
		}
	}
}

// ReturnRecordModel is the persistence model for return records
type ReturnRecordModel struct {
	BaseModel
	TripID      *uuid.UUID `gorm:"type:uuid;index"`
	ProductID   uuid.UUID  `gorm:"type:uuid;not null;index"`
	ProductName string
	Quantity    int             `gorm:"not null"`
	Reason      string          `gorm:"not null"`
	UnitPrice   decimal.Decimal `gorm:"type:decimal(18,4);not null"`
	ExpiryDate  *time.Time
	Notes       string
	RecordedBy  string
	RecordedAt  time.Time `gorm:"not null"`
}

// TableName returns the table name for GORM
func (ReturnRecordModel) TableName() string {
	return "return_records"
}

// ToDomain converts the persistence model to a domain ReturnRecord
func (m *ReturnRecordModel) ToDomain() *sales.ReturnRecord {
	var expiry *time.Time
	if m.ExpiryDate != nil {
		d := m.ExpiryDate.UTC()
		expiry = &d
	}
	return &sales.ReturnRecord{
		BaseEntity:  m.BaseModel.ToDomain(),
		TripID:      m.TripID,
		ProductID:   m.ProductID,
		ProductName: m.ProductName,
		Quantity:    m.Quantity,
		Reason:      sales.ReturnReason(m.Reason),
		UnitPrice:   m.UnitPrice,
		ExpiryDate:  expiry,
		Notes:       m.Notes,
		RecordedBy:  m.RecordedBy,
		RecordedAt:  m.RecordedAt,
	}
}

// FromDomain populates the persistence model from a domain ReturnRecord
func (m *ReturnRecordModel) FromDomain(r *sales.ReturnRecord) {
	m.BaseModel.FromDomain(r.BaseEntity)
	m.TripID = r.TripID
	m.ProductID = r.ProductID
	m.ProductName = r.ProductName
	m.Quantity = r.Quantity
	m.Reason = string(r.Reason)
	m.UnitPrice = r.UnitPrice
	m.ExpiryDate = r.ExpiryDate
	m.Notes = r.Notes
	m.RecordedBy = r.RecordedBy
	m.RecordedAt = r.RecordedAt
}
