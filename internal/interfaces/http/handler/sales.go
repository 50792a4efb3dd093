package handler

import (
	salesapp "github.com/fieldsales/backend/internal/application/sales"
	"github.com/fieldsales/backend/internal/domain/sales"
	"github.com/fieldsales/backend/internal/interfaces/http/middleware"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// SalesHandler handles checkout endpoints for warehouse and trip sales
type SalesHandler struct {
	BaseHandler
	checkoutService *salesapp.CheckoutService
}

// NewSalesHandler creates a new SalesHandler
func NewSalesHandler(checkoutService *salesapp.CheckoutService) *SalesHandler {
	return &SalesHandler{checkoutService: checkoutService}
}

// CheckoutLineRequest is one product line of a checkout
type CheckoutLineRequest struct {
	ProductID string `json:"product_id" binding:"required,uuid"`
	Quantity  int    `json:"quantity" binding:"required,gt=0"`
}

// CheckoutRequest records a sale. trip_id present means a trip sale
// validated against the trip's remaining stock; absent means a warehouse
// sale that depletes the warehouse ledger.
type CheckoutRequest struct {
	TripID        string                `json:"trip_id" binding:"omitempty,uuid"`
	CustomerName  string                `json:"customer_name"`
	Lines         []CheckoutLineRequest `json:"lines" binding:"required,min=1,dive"`
	PaymentMethod string                `json:"payment_method" binding:"required"`
	SoldBy        string                `json:"sold_by"`
}

// SaleItemResponse is one line of a sale
type SaleItemResponse struct {
	ProductID   string `json:"product_id"`
	ProductName string `json:"product_name"`
	Quantity    int    `json:"quantity"`
	UnitPrice   string `json:"unit_price"`
	LineTotal   string `json:"line_total"`
}

// SaleResponse represents a sale in API responses
type SaleResponse struct {
	ID            string             `json:"id"`
	TripID        string             `json:"trip_id,omitempty"`
	CustomerName  string             `json:"customer_name,omitempty"`
	Items         []SaleItemResponse `json:"items"`
	PaymentMethod string             `json:"payment_method"`
	Status        string             `json:"status"`
	Total         string             `json:"total"`
	SoldBy        string             `json:"sold_by,omitempty"`
	SoldAt        string             `json:"sold_at"`
}

func toSaleResponse(s *sales.Sale) SaleResponse {
	items := make([]SaleItemResponse, 0, len(s.Items))
	for _, item := range s.Items {
		items = append(items, SaleItemResponse{
			ProductID:   item.ProductID.String(),
			ProductName: item.ProductName,
			Quantity:    item.Quantity,
			UnitPrice:   item.UnitPrice.String(),
			LineTotal:   item.LineTotal().String(),
		})
	}
	resp := SaleResponse{
		ID:            s.ID.String(),
		CustomerName:  s.CustomerName,
		Items:         items,
		PaymentMethod: string(s.PaymentMethod),
		Status:        string(s.Status),
		Total:         s.Total().String(),
		SoldBy:        s.SoldBy,
		SoldAt:        s.SoldAt.Format(timeFormat),
	}
	if s.TripID != nil {
		resp.TripID = s.TripID.String()
	}
	return resp
}

// Checkout handles POST /sales
func (h *SalesHandler) Checkout(c *gin.Context) {
	var req CheckoutRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		middleware.HandleValidationError(c, err)
		return
	}

	input := salesapp.CheckoutInput{
		CustomerName:  req.CustomerName,
		PaymentMethod: sales.PaymentMethod(req.PaymentMethod),
		SoldBy:        req.SoldBy,
	}
	if req.TripID != "" {
		tripID, err := uuid.Parse(req.TripID)
		if err != nil {
			h.BadRequest(c, "Invalid trip_id")
			return
		}
		input.TripID = &tripID
	}
	for _, l := range req.Lines {
		productID, err := uuid.Parse(l.ProductID)
		if err != nil {
			h.BadRequest(c, "Invalid product_id")
			return
		}
		input.Lines = append(input.Lines, salesapp.CheckoutLine{ProductID: productID, Quantity: l.Quantity})
	}

	sale, err := h.checkoutService.Checkout(c.Request.Context(), input)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, toSaleResponse(sale))
}

// Get handles GET /sales/:id
func (h *SalesHandler) Get(c *gin.Context) {
	id, ok := h.parseID(c)
	if !ok {
		return
	}
	sale, err := h.checkoutService.Get(c.Request.Context(), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, toSaleResponse(sale))
}

// Cancel handles POST /sales/:id/cancel
func (h *SalesHandler) Cancel(c *gin.Context) {
	id, ok := h.parseID(c)
	if !ok {
		return
	}
	sale, err := h.checkoutService.Cancel(c.Request.Context(), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, toSaleResponse(sale))
}

// ListForTrip handles GET /trips/:id/sales
func (h *SalesHandler) ListForTrip(c *gin.Context) {
	tripID, ok := h.parseID(c)
	if !ok {
		return
	}
	tripSales, err := h.checkoutService.ForTrip(c.Request.Context(), tripID)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	items := make([]SaleResponse, 0, len(tripSales))
	for _, s := range tripSales {
		items = append(items, toSaleResponse(s))
	}
	h.Success(c, items)
}
