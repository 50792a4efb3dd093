package router

import (
	"github.com/fieldsales/backend/internal/interfaces/http/handler"
	"github.com/fieldsales/backend/internal/interfaces/http/middleware"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	applogger "github.com/fieldsales/backend/internal/infrastructure/logger"
)

// Handlers bundles every HTTP handler the router wires up
type Handlers struct {
	Products    *handler.ProductHandler
	Stock       *handler.StockHandler
	Trips       *handler.TripHandler
	Allocations *handler.AllocationHandler
	TripStock   *handler.TripStockHandler
	Settlement  *handler.SettlementHandler
	Sales       *handler.SalesHandler
	Returns     *handler.ReturnsHandler
	Expenses    *handler.ExpenseHandler
	System      *handler.SystemHandler
}

// Config holds router configuration
type Config struct {
	CORS middleware.CORSConfig
}

// DefaultConfig returns the default router configuration
func DefaultConfig() Config {
	return Config{CORS: middleware.DefaultCORSConfig()}
}

// New builds the gin engine with middleware and all API routes
func New(logger *zap.Logger, handlers Handlers, cfg Config) *gin.Engine {
	engine := gin.New()

	middleware.SetupValidator()

	engine.Use(middleware.RequestID())
	engine.Use(applogger.GinMiddleware(logger))
	engine.Use(applogger.Recovery(logger))
	engine.Use(middleware.CORSWithConfig(cfg.CORS))

	registerRoutes(engine, handlers)
	return engine
}

func registerRoutes(engine *gin.Engine, h Handlers) {
	engine.GET("/health", h.System.Health)
	engine.GET("/health/ready", h.System.Ready)

	api := engine.Group("/api/v1")

	api.GET("/system/info", h.System.GetSystemInfo)

	products := api.Group("/products")
	{
		products.POST("", h.Products.Create)
		products.GET("", h.Products.List)
		products.GET("/:id", h.Products.Get)
		products.PUT("/:id", h.Products.Update)
		products.POST("/:id/disable", h.Products.Disable)
		products.GET("/:id/batches", h.Stock.Batches)
		products.GET("/:id/availability", h.Stock.Availability)
	}

	stock := api.Group("/stock")
	{
		stock.GET("", h.Stock.Available)
		stock.POST("/intake", h.Stock.Intake)
		stock.POST("/reduce", h.Stock.Reduce)
	}

	trips := api.Group("/trips")
	{
		trips.POST("", h.Trips.Create)
		trips.GET("", h.Trips.List)
		trips.GET("/:id", h.Trips.Get)
		trips.POST("/:id/start", h.Trips.Start)
		trips.POST("/:id/end", h.Trips.End)
		trips.POST("/:id/cash-submission", h.Trips.RecordCashSubmission)

		trips.POST("/:id/allocations", h.Allocations.Allocate)
		trips.GET("/:id/allocations", h.Allocations.List)

		trips.GET("/:id/stock", h.TripStock.Positions)
		trips.GET("/:id/stock/sellable", h.TripStock.SellableItems)
		trips.POST("/:id/stock/return", h.TripStock.ReturnToWarehouse)

		trips.GET("/:id/settlement", h.Settlement.Summary)
		trips.GET("/:id/sales", h.Sales.ListForTrip)
		trips.GET("/:id/returns", h.Returns.ListForTrip)
		trips.GET("/:id/expenses", h.Expenses.ListForTrip)
	}

	api.DELETE("/allocations/:id", h.Allocations.Reverse)

	saleRoutes := api.Group("/sales")
	{
		saleRoutes.POST("", h.Sales.Checkout)
		saleRoutes.GET("/:id", h.Sales.Get)
		saleRoutes.POST("/:id/cancel", h.Sales.Cancel)
	}

	returns := api.Group("/returns")
	{
		returns.POST("", h.Returns.Record)
		returns.DELETE("/:id", h.Returns.Delete)
	}

	expenses := api.Group("/expenses")
	{
		expenses.POST("", h.Expenses.Record)
		expenses.POST("/:id/approve", h.Expenses.Approve)
		expenses.POST("/:id/reject", h.Expenses.Reject)
	}
}
