package handler

import (
	inventoryapp "github.com/fieldsales/backend/internal/application/inventory"
	"github.com/fieldsales/backend/internal/domain/inventory"
	"github.com/fieldsales/backend/internal/interfaces/http/middleware"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// StockHandler handles warehouse stock ledger endpoints
type StockHandler struct {
	BaseHandler
	ledger *inventoryapp.StockLedgerService
}

// NewStockHandler creates a new StockHandler
func NewStockHandler(ledger *inventoryapp.StockLedgerService) *StockHandler {
	return &StockHandler{ledger: ledger}
}

// IntakeRequest records stock arriving at the warehouse
type IntakeRequest struct {
	ProductID  string `json:"product_id" binding:"required,uuid"`
	Quantity   int    `json:"quantity" binding:"required,gt=0"`
	ExpiryDate string `json:"expiry_date" binding:"required"`
}

// ReduceStockRequest depletes warehouse stock outside of a sale, such as
// a manual write-off.
type ReduceStockRequest struct {
	ProductID string `json:"product_id" binding:"required,uuid"`
	Quantity  int    `json:"quantity" binding:"required,gt=0"`
}

// StockBatchResponse represents one expiry-dated batch
type StockBatchResponse struct {
	ID              string `json:"id"`
	ProductID       string `json:"product_id"`
	ProductName     string `json:"product_name"`
	Quantity        int    `json:"quantity"`
	ExpiryDate      string `json:"expiry_date"`
	ManufactureDate string `json:"manufacture_date"`
	Value           string `json:"value"`
}

// AvailabilityResponse reports whether a quantity can be covered
type AvailabilityResponse struct {
	ProductID string `json:"product_id"`
	Requested int    `json:"requested"`
	Available int    `json:"available"`
	Covered   bool   `json:"covered"`
}

// DepletionResponse lists the expiry dates a depletion drew from,
// earliest first.
type DepletionResponse struct {
	ProductID       string   `json:"product_id"`
	Quantity        int      `json:"quantity"`
	UsedExpiryDates []string `json:"used_expiry_dates"`
}

func toStockBatchResponse(b *inventory.StockBatch) StockBatchResponse {
	return StockBatchResponse{
		ID:              b.ID.String(),
		ProductID:       b.ProductID.String(),
		ProductName:     b.Product.Name,
		Quantity:        b.Quantity,
		ExpiryDate:      b.ExpiryDate.Format(dateFormat),
		ManufactureDate: b.ManufactureDate.Format(dateFormat),
		Value:           b.Value().String(),
	}
}

// Intake handles POST /stock/intake
func (h *StockHandler) Intake(c *gin.Context) {
	var req IntakeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		middleware.HandleValidationError(c, err)
		return
	}
	productID, err := uuid.Parse(req.ProductID)
	if err != nil {
		h.BadRequest(c, "Invalid product_id")
		return
	}
	expiry, err := parseDate(req.ExpiryDate)
	if err != nil {
		h.BadRequest(c, "Invalid expiry_date, expected YYYY-MM-DD")
		return
	}

	if err := h.ledger.IncreaseStock(c.Request.Context(), productID, req.Quantity, expiry); err != nil {
		h.HandleError(c, err)
		return
	}

	batches, err := h.ledger.ProductBatches(c.Request.Context(), productID)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	items := make([]StockBatchResponse, 0, len(batches))
	for _, b := range batches {
		items = append(items, toStockBatchResponse(b))
	}
	h.Created(c, items)
}

// Reduce handles POST /stock/reduce
func (h *StockHandler) Reduce(c *gin.Context) {
	var req ReduceStockRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		middleware.HandleValidationError(c, err)
		return
	}
	productID, err := uuid.Parse(req.ProductID)
	if err != nil {
		h.BadRequest(c, "Invalid product_id")
		return
	}

	used, err := h.ledger.ReduceStock(c.Request.Context(), productID, req.Quantity)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	dates := make([]string, 0, len(used))
	for _, d := range used {
		dates = append(dates, d.Format(dateFormat))
	}
	h.Success(c, DepletionResponse{
		ProductID:       req.ProductID,
		Quantity:        req.Quantity,
		UsedExpiryDates: dates,
	})
}

// Batches handles GET /products/:id/batches
func (h *StockHandler) Batches(c *gin.Context) {
	productID, ok := h.parseID(c)
	if !ok {
		return
	}
	batches, err := h.ledger.ProductBatches(c.Request.Context(), productID)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	items := make([]StockBatchResponse, 0, len(batches))
	for _, b := range batches {
		items = append(items, toStockBatchResponse(b))
	}
	h.Success(c, items)
}

// Availability handles GET /products/:id/availability?quantity=N
func (h *StockHandler) Availability(c *gin.Context) {
	productID, ok := h.parseID(c)
	if !ok {
		return
	}
	var query struct {
		Quantity int `form:"quantity" binding:"required,gt=0"`
	}
	if err := c.ShouldBindQuery(&query); err != nil {
		middleware.HandleValidationError(c, err)
		return
	}

	covered, available, err := h.ledger.CheckAvailability(c.Request.Context(), productID, query.Quantity)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, AvailabilityResponse{
		ProductID: productID.String(),
		Requested: query.Quantity,
		Available: available,
		Covered:   covered,
	})
}

// Available handles GET /stock, listing every batch with stock on hand
func (h *StockHandler) Available(c *gin.Context) {
	batches, err := h.ledger.AvailableStock(c.Request.Context())
	if err != nil {
		h.HandleError(c, err)
		return
	}
	items := make([]StockBatchResponse, 0, len(batches))
	for _, b := range batches {
		items = append(items, toStockBatchResponse(b))
	}
	h.Success(c, items)
}
