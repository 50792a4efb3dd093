package persistence

import (
	"context"

	appinv "github.com/fieldsales/backend/internal/application/inventory"
	appsales "github.com/fieldsales/backend/internal/application/sales"
	apptrip "github.com/fieldsales/backend/internal/application/trip"
	"github.com/fieldsales/backend/internal/domain/catalog"
	"github.com/fieldsales/backend/internal/domain/inventory"
	"github.com/fieldsales/backend/internal/domain/sales"
	"github.com/fieldsales/backend/internal/domain/trip"
	"gorm.io/gorm"
)

// gormRepositories hands out repositories bound to one *gorm.DB, which is
// a live transaction inside Execute. It satisfies the transactional
// repository interface of every application context.
type gormRepositories struct {
	tx *gorm.DB
}

func (r *gormRepositories) BatchRepo() inventory.StockBatchRepository {
	return NewGormStockBatchRepository(r.tx)
}

func (r *gormRepositories) ProductRepo() catalog.ProductRepository {
	return NewGormProductRepository(r.tx)
}

func (r *gormRepositories) TripRepo() trip.TripRepository {
	return NewGormTripRepository(r.tx)
}

func (r *gormRepositories) AllocationRepo() trip.AllocationRepository {
	return NewGormAllocationRepository(r.tx)
}

func (r *gormRepositories) SaleRepo() sales.SaleRepository {
	return NewGormSaleRepository(r.tx)
}

func (r *gormRepositories) ReturnRepo() sales.ReturnRepository {
	return NewGormReturnRepository(r.tx)
}

// GormInventoryTransactionScope implements the stock ledger transaction
// scope using GORM transactions.
type GormInventoryTransactionScope struct {
	db *gorm.DB
}

// NewGormInventoryTransactionScope creates a new GormInventoryTransactionScope
func NewGormInventoryTransactionScope(db *gorm.DB) *GormInventoryTransactionScope {
	return &GormInventoryTransactionScope{db: db}
}

// Execute runs the function within a database transaction. An error rolls
// the transaction back; success commits it.
func (s *GormInventoryTransactionScope) Execute(ctx context.Context, fn func(repos appinv.TransactionalRepositories) error) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(&gormRepositories{tx: tx})
	})
}

// GormTripTransactionScope implements the trip transaction scope using
// GORM transactions.
type GormTripTransactionScope struct {
	db *gorm.DB
}

// NewGormTripTransactionScope creates a new GormTripTransactionScope
func NewGormTripTransactionScope(db *gorm.DB) *GormTripTransactionScope {
	return &GormTripTransactionScope{db: db}
}

// Execute runs the function within a database transaction
func (s *GormTripTransactionScope) Execute(ctx context.Context, fn func(repos apptrip.TransactionalRepositories) error) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(&gormRepositories{tx: tx})
	})
}

// GormSalesTransactionScope implements the sales transaction scope using
// GORM transactions.
type GormSalesTransactionScope struct {
	db *gorm.DB
}

// NewGormSalesTransactionScope creates a new GormSalesTransactionScope
func NewGormSalesTransactionScope(db *gorm.DB) *GormSalesTransactionScope {
	return &GormSalesTransactionScope{db: db}
}

// Execute runs the function within a database transaction
func (s *GormSalesTransactionScope) Execute(ctx context.Context, fn func(repos appsales.TransactionalRepositories) error) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(&gormRepositories{tx: tx})
	})
}

var _ appinv.TransactionScope = (*GormInventoryTransactionScope)(nil)
var _ apptrip.TransactionScope = (*GormTripTransactionScope)(nil)
var _ appsales.TransactionScope = (*GormSalesTransactionScope)(nil)
var _ appinv.TransactionalRepositories = (*gormRepositories)(nil)
var _ apptrip.TransactionalRepositories = (*gormRepositories)(nil)
var _ appsales.TransactionalRepositories = (*gormRepositories)(nil)
