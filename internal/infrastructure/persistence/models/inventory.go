package models

import (
	"time"

	"github.com/fieldsales/backend/internal/domain/inventory"
	"github.com/google/uuid"
)

// StockBatchModel is the persistence model for warehouse stock batches.
// One row exists per (product, expiry date); drained rows stay with
// quantity zero.
type StockBatchModel struct {
	BaseModel
	ProductID       uuid.UUID       `gorm:"type:uuid;not null;uniqueIndex:idx_stock_batch_product_expiry,priority:1"`
	Snapshot        SnapshotColumns `gorm:"embedded"`
	Quantity        int             `gorm:"not null;default:0"`
	ExpiryDate      time.Time       `gorm:"not null;uniqueIndex:idx_stock_batch_product_expiry,priority:2"`
	ManufactureDate time.Time       `gorm:"not null"`
}

// TableName returns the table name for GORM
func (StockBatchModel) TableName() string {
	return "stock_batches"
}

// ToDomain converts the persistence model to a domain StockBatch
func (m *StockBatchModel) ToDomain() *inventory.StockBatch {
	return &inventory.StockBatch{
		BaseEntity:      m.BaseModel.ToDomain(),
		ProductID:       m.ProductID,
		Product:         m.Snapshot.ToSnapshot(m.ProductID),
		Quantity:        m.Quantity,
		ExpiryDate:      m.ExpiryDate.UTC(),
		ManufactureDate: m.ManufactureDate.UTC(),
	}
}

// FromDomain populates the persistence model from a domain StockBatch
func (m *StockBatchModel) FromDomain(b *inventory.StockBatch) {
	m.BaseModel.FromDomain(b.BaseEntity)
	m.ProductID = b.ProductID
	m.Snapshot = SnapshotColumnsFromDomain(b.Product)
	m.Quantity = b.Quantity
	m.ExpiryDate = b.ExpiryDate
	m.ManufactureDate = b.ManufactureDate
}
