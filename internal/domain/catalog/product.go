package catalog

import (
	"github.com/fieldsales/backend/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Product is the catalog aggregate. The ledger and settlement code never
// read the live catalog row during computation; they work from the
// ProductSnapshot captured when the referencing record was written.
type Product struct {
	shared.BaseEntity
	Name            string
	UnitPrice       decimal.Decimal // price per packet
	PiecesPerPacket int
	ShelfLifeDays   int
	WeightGrams     int
	Disabled        bool
}

// NewProduct creates a new catalog product
func NewProduct(name string, unitPrice decimal.Decimal, piecesPerPacket, shelfLifeDays, weightGrams int) (*Product, error) {
	if name == "" {
		return nil, shared.NewDomainError("INVALID_PRODUCT", "Product name is required")
	}
	if unitPrice.IsNegative() {
		return nil, shared.NewDomainError("INVALID_PRODUCT", "Unit price cannot be negative")
	}
	if piecesPerPacket < 1 {
		piecesPerPacket = 1
	}
	return &Product{
		BaseEntity:      shared.NewBaseEntity(),
		Name:            name,
		UnitPrice:       unitPrice,
		PiecesPerPacket: piecesPerPacket,
		ShelfLifeDays:   shelfLifeDays,
		WeightGrams:     weightGrams,
	}, nil
}

// Snapshot captures the product state for denormalized embedding.
// Settlement must use the price at allocation/sale time, so referencing
// records carry this value object instead of a foreign key.
func (p *Product) Snapshot() ProductSnapshot {
	return ProductSnapshot{
		ProductID:       p.ID,
		Name:            p.Name,
		UnitPrice:       p.UnitPrice,
		PiecesPerPacket: p.PiecesPerPacket,
		ShelfLifeDays:   p.ShelfLifeDays,
	}
}

// ProductSnapshot is an immutable denormalized copy of a product, embedded
// at write time into stock batches, allocations, sale items and returns.
type ProductSnapshot struct {
	ProductID       uuid.UUID
	Name            string
	UnitPrice       decimal.Decimal
	PiecesPerPacket int
	ShelfLifeDays   int
}

// PricePerPiece returns the canonical per-piece price
// (unitPrice / piecesPerPacket). A packet size below 1 counts as 1.
func (s ProductSnapshot) PricePerPiece() decimal.Decimal {
	pieces := s.PiecesPerPacket
	if pieces < 1 {
		pieces = 1
	}
	return s.UnitPrice.Div(decimal.NewFromInt(int64(pieces)))
}

// IsZero reports whether the snapshot is unset
func (s ProductSnapshot) IsZero() bool {
	return s.ProductID == uuid.Nil
}
