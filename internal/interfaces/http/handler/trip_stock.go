package handler

import (
	tripapp "github.com/fieldsales/backend/internal/application/trip"
	"github.com/fieldsales/backend/internal/domain/trip"
	"github.com/gin-gonic/gin"
)

// TripStockHandler handles trip stock reconciliation endpoints
type TripStockHandler struct {
	BaseHandler
	reconciliation *tripapp.ReconciliationService
}

// NewTripStockHandler creates a new TripStockHandler
func NewTripStockHandler(reconciliation *tripapp.ReconciliationService) *TripStockHandler {
	return &TripStockHandler{reconciliation: reconciliation}
}

// StockPositionResponse is one product's reconciled position on a trip
type StockPositionResponse struct {
	ProductID      string `json:"product_id"`
	ProductName    string `json:"product_name"`
	Allocated      int    `json:"allocated"`
	Sold           int    `json:"sold"`
	Returned       int    `json:"returned"`
	Remaining      int    `json:"remaining"`
	ExpiryDate     string `json:"expiry_date"`
	SalesValue     string `json:"sales_value"`
	UnsoldValue    string `json:"unsold_value"`
	ReturnsValue   string `json:"returns_value"`
	RemainingValue string `json:"remaining_value"`
}

func toStockPositionResponse(p *trip.StockPosition) StockPositionResponse {
	return StockPositionResponse{
		ProductID:      p.ProductID.String(),
		ProductName:    p.Product.Name,
		Allocated:      p.Allocated,
		Sold:           p.Sold,
		Returned:       p.Returned,
		Remaining:      p.Remaining,
		ExpiryDate:     p.ExpiryDate.Format(dateFormat),
		SalesValue:     p.SalesValue.String(),
		UnsoldValue:    p.UnsoldValue.String(),
		ReturnsValue:   p.ReturnsValue.String(),
		RemainingValue: p.RemainingValue().String(),
	}
}

// Positions handles GET /trips/:id/stock
func (h *TripStockHandler) Positions(c *gin.Context) {
	tripID, ok := h.parseID(c)
	if !ok {
		return
	}
	positions, err := h.reconciliation.Positions(c.Request.Context(), tripID)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	items := make([]StockPositionResponse, 0, len(positions))
	for _, p := range positions {
		items = append(items, toStockPositionResponse(p))
	}
	h.Success(c, items)
}

// SellableItems handles GET /trips/:id/stock/sellable
func (h *TripStockHandler) SellableItems(c *gin.Context) {
	tripID, ok := h.parseID(c)
	if !ok {
		return
	}
	positions, err := h.reconciliation.SellableItems(c.Request.Context(), tripID)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	items := make([]StockPositionResponse, 0, len(positions))
	for _, p := range positions {
		items = append(items, toStockPositionResponse(p))
	}
	h.Success(c, items)
}

// ReturnToWarehouse handles POST /trips/:id/stock/return. The trip must
// have ended; every remaining position goes back into warehouse stock at
// its source expiry date.
func (h *TripStockHandler) ReturnToWarehouse(c *gin.Context) {
	tripID, ok := h.parseID(c)
	if !ok {
		return
	}
	if err := h.reconciliation.ReturnToWarehouse(c.Request.Context(), tripID); err != nil {
		h.HandleError(c, err)
		return
	}
	h.NoContent(c)
}
