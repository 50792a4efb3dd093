package models

import (
	"github.com/fieldsales/backend/internal/domain/catalog"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// ProductModel is the persistence model for catalog products
type ProductModel struct {
	BaseModel
	Name            string          `gorm:"not null;index"`
	UnitPrice       decimal.Decimal `gorm:"type:decimal(18,4);not null"`
	PiecesPerPacket int             `gorm:"not null;default:1"`
	ShelfLifeDays   int             `gorm:"not null;default:0"`
	WeightGrams     int             `gorm:"not null;default:0"`
	Disabled        bool            `gorm:"not null;default:false"`
}

// TableName returns the table name for GORM
func (ProductModel) TableName() string {
	return "products"
}

// ToDomain converts the persistence model to a domain Product
func (m *ProductModel) ToDomain() *catalog.Product {
	return &catalog.Product{
		BaseEntity:      m.BaseModel.ToDomain(),
		Name:            m.Name,
		UnitPrice:       m.UnitPrice,
		PiecesPerPacket: m.PiecesPerPacket,
		ShelfLifeDays:   m.ShelfLifeDays,
		WeightGrams:     m.WeightGrams,
		Disabled:        m.Disabled,
	}
}

// FromDomain populates the persistence model from a domain Product
func (m *ProductModel) FromDomain(p *catalog.Product) {
	m.BaseModel.FromDomain(p.BaseEntity)
	m.Name = p.Name
	m.UnitPrice = p.UnitPrice
	m.PiecesPerPacket = p.PiecesPerPacket
	m.ShelfLifeDays = p.ShelfLifeDays
	m.WeightGrams = p.WeightGrams
	m.Disabled = p.Disabled
}

// SnapshotColumns holds the denormalized product snapshot embedded in
// stock batches, allocations and other referencing rows.
type SnapshotColumns struct {
	ProductName     string          `gorm:"not null"`
	UnitPrice       decimal.Decimal `gorm:"type:decimal(18,4);not null"`
	PiecesPerPacket int             `gorm:"not null;default:1"`
	ShelfLifeDays   int             `gorm:"not null;default:0"`
}

// ToSnapshot rebuilds the domain snapshot for the given product id
func (c SnapshotColumns) ToSnapshot(productID uuid.UUID) catalog.ProductSnapshot {
	return catalog.ProductSnapshot{
		ProductID:       productID,
		Name:            c.ProductName,
		UnitPrice:       c.UnitPrice,
		PiecesPerPacket: c.PiecesPerPacket,
		ShelfLifeDays:   c.ShelfLifeDays,
	}
}

// SnapshotColumnsFromDomain captures a domain snapshot into columns
func SnapshotColumnsFromDomain(s catalog.ProductSnapshot) SnapshotColumns {
	return SnapshotColumns{
		ProductName:     s.Name,
		UnitPrice:       s.UnitPrice,
		PiecesPerPacket: s.PiecesPerPacket,
		ShelfLifeDays:   s.ShelfLifeDays,
	}
}
