package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	catalogapp "github.com/fieldsales/backend/internal/application/catalog"
	inventoryapp "github.com/fieldsales/backend/internal/application/inventory"
	salesapp "github.com/fieldsales/backend/internal/application/sales"
	tripapp "github.com/fieldsales/backend/internal/application/trip"
	"github.com/fieldsales/backend/internal/infrastructure/config"
	"github.com/fieldsales/backend/internal/infrastructure/logger"
	"github.com/fieldsales/backend/internal/infrastructure/persistence"
	"github.com/fieldsales/backend/internal/interfaces/http/handler"
	"github.com/fieldsales/backend/internal/interfaces/http/router"
	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("Failed to load configuration: " + err.Error())
	}

	log, err := logger.New(&logger.Config{
		Level:  cfg.Log.Level,
		Format: cfg.Log.Format,
		Output: cfg.Log.Output,
	})
	if err != nil {
		panic("Failed to initialize logger: " + err.Error())
	}
	defer func() {
		_ = logger.Sync(log)
	}()

	log.Info("Starting Field Sales Backend",
		zap.String("app", cfg.App.Name),
		zap.String("env", cfg.App.Env),
		zap.String("port", cfg.App.Port),
	)

	// GORM logger backed by zap
	gormLog := logger.NewGormLogger(log, logger.MapGormLogLevel(cfg.Log.Level))

	db, err := persistence.NewDatabaseWithCustomLogger(&cfg.Database, gormLog)
	if err != nil {
		log.Fatal("Failed to connect to database", zap.Error(err))
	}
	defer func() {
		if err := db.Close(); err != nil {
			log.Error("Error closing database", zap.Error(err))
		}
	}()
	log.Info("Database connected successfully")

	// Postgres schemas are managed with the migrate CLI. SQLite is a dev
	// convenience and gets its schema created in-process.
	if cfg.Database.Driver == "sqlite" {
		if err := db.AutoMigrate(); err != nil {
			log.Fatal("Failed to migrate schema", zap.Error(err))
		}
		log.Info("Schema migrated (sqlite)")
	}

	// Repositories
	productRepo := persistence.NewGormProductRepository(db.DB)
	stockBatchRepo := persistence.NewGormStockBatchRepository(db.DB)
	tripRepo := persistence.NewGormTripRepository(db.DB)
	allocationRepo := persistence.NewGormAllocationRepository(db.DB)
	saleRepo := persistence.NewGormSaleRepository(db.DB)
	returnRepo := persistence.NewGormReturnRepository(db.DB)
	expenseRepo := persistence.NewGormExpenseRepository(db.DB)

	// Transaction scopes
	inventoryScope := persistence.NewGormInventoryTransactionScope(db.DB)
	tripScope := persistence.NewGormTripTransactionScope(db.DB)
	salesScope := persistence.NewGormSalesTransactionScope(db.DB)

	// Application services
	productService := catalogapp.NewProductService(productRepo)
	stockLedgerService := inventoryapp.NewStockLedgerService(inventoryScope, stockBatchRepo, productRepo)
	tripService := tripapp.NewTripService(tripRepo)
	allocationService := tripapp.NewAllocationService(tripScope, allocationRepo)
	reconciliationService := tripapp.NewReconciliationService(tripScope, allocationRepo, saleRepo, returnRepo)
	commissionRate := decimal.NewFromFloat(cfg.Settlement.CommissionRatePercent)
	settlementService := tripapp.NewSettlementService(tripRepo, reconciliationService, saleRepo, expenseRepo, commissionRate)
	checkoutService := salesapp.NewCheckoutService(salesScope, reconciliationService)
	returnsService := salesapp.NewReturnsService(salesScope)
	expenseService := salesapp.NewExpenseService(expenseRepo)

	// HTTP handlers
	handlers := router.Handlers{
		Products:    handler.NewProductHandler(productService),
		Stock:       handler.NewStockHandler(stockLedgerService),
		Trips:       handler.NewTripHandler(tripService),
		Allocations: handler.NewAllocationHandler(allocationService),
		TripStock:   handler.NewTripStockHandler(reconciliationService),
		Settlement:  handler.NewSettlementHandler(settlementService),
		Sales:       handler.NewSalesHandler(checkoutService),
		Returns:     handler.NewReturnsHandler(returnsService),
		Expenses:    handler.NewExpenseHandler(expenseService),
		System:      handler.NewSystemHandler(db),
	}

	if cfg.App.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	engine := router.New(log, handlers, router.DefaultConfig())

	if len(cfg.HTTP.TrustedProxies) > 0 {
		if err := engine.SetTrustedProxies(cfg.HTTP.TrustedProxies); err != nil {
			log.Warn("Failed to set trusted proxies", zap.Error(err))
		}
	}

	srv := &http.Server{
		Addr:           ":" + cfg.App.Port,
		Handler:        engine,
		ReadTimeout:    cfg.HTTP.ReadTimeout,
		WriteTimeout:   cfg.HTTP.WriteTimeout,
		IdleTimeout:    cfg.HTTP.IdleTimeout,
		MaxHeaderBytes: cfg.HTTP.MaxHeaderBytes,
	}

	go func() {
		log.Info("Server starting", zap.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal("Failed to start server", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Fatal("Server forced to shutdown", zap.Error(err))
	}

	log.Info("Server exited gracefully")
}
