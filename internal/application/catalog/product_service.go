package catalog

import (
	"context"
	"fmt"

	"github.com/fieldsales/backend/internal/domain/catalog"
	"github.com/fieldsales/backend/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// ProductInput carries the fields needed to create or update a product.
type ProductInput struct {
	Name            string
	UnitPrice       decimal.Decimal
	PiecesPerPacket int
	ShelfLifeDays   int
	WeightGrams     int
}

// ProductService handles catalog operations
type ProductService struct {
	productRepo catalog.ProductRepository
}

// NewProductService creates a new ProductService
func NewProductService(productRepo catalog.ProductRepository) *ProductService {
	return &ProductService{productRepo: productRepo}
}

// Create registers a new product in the catalog
func (s *ProductService) Create(ctx context.Context, input ProductInput) (*catalog.Product, error) {
	product, err := catalog.NewProduct(input.Name, input.UnitPrice, input.PiecesPerPacket, input.ShelfLifeDays, input.WeightGrams)
	if err != nil {
		return nil, err
	}
	if err := s.productRepo.Save(ctx, product); err != nil {
		return nil, fmt.Errorf("save product: %w", err)
	}
	return product, nil
}

// Update replaces the mutable fields of a product. Price changes affect
// future snapshots only; records already written keep the price they
// captured.
func (s *ProductService) Update(ctx context.Context, productID uuid.UUID, input ProductInput) (*catalog.Product, error) {
	product, err := s.productRepo.FindByID(ctx, productID)
	if err != nil {
		return nil, err
	}
	if input.Name == "" {
		return nil, shared.NewDomainError("INVALID_PRODUCT", "Product name is required")
	}
	if input.UnitPrice.IsNegative() {
		return nil, shared.NewDomainError("INVALID_PRODUCT", "Unit price cannot be negative")
	}
	product.Name = input.Name
	product.UnitPrice = input.UnitPrice
	if input.PiecesPerPacket >= 1 {
		product.PiecesPerPacket = input.PiecesPerPacket
	}
	product.ShelfLifeDays = input.ShelfLifeDays
	product.WeightGrams = input.WeightGrams
	if err := s.productRepo.Save(ctx, product); err != nil {
		return nil, fmt.Errorf("save product: %w", err)
	}
	return product, nil
}

// Disable hides a product from new intake and sales without touching
// existing batches or history.
func (s *ProductService) Disable(ctx context.Context, productID uuid.UUID) (*catalog.Product, error) {
	product, err := s.productRepo.FindByID(ctx, productID)
	if err != nil {
		return nil, err
	}
	product.Disabled = true
	if err := s.productRepo.Save(ctx, product); err != nil {
		return nil, fmt.Errorf("save product: %w", err)
	}
	return product, nil
}

// Get returns a product by ID
func (s *ProductService) Get(ctx context.Context, productID uuid.UUID) (*catalog.Product, error) {
	return s.productRepo.FindByID(ctx, productID)
}

// List returns a page of products
func (s *ProductService) List(ctx context.Context, filter shared.Filter) (*shared.Paginated[*catalog.Product], error) {
	return s.productRepo.FindAll(ctx, filter)
}
