package handler

import (
	salesapp "github.com/fieldsales/backend/internal/application/sales"
	"github.com/fieldsales/backend/internal/domain/sales"
	"github.com/fieldsales/backend/internal/interfaces/http/middleware"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// ReturnsHandler handles product return endpoints
type ReturnsHandler struct {
	BaseHandler
	returnsService *salesapp.ReturnsService
}

// NewReturnsHandler creates a new ReturnsHandler
func NewReturnsHandler(returnsService *salesapp.ReturnsService) *ReturnsHandler {
	return &ReturnsHandler{returnsService: returnsService}
}

// ReturnRequest records a product return. trip_id present means a trip
// return that only enters reconciliation; absent means a warehouse
// return that moves warehouse stock per the reason.
type ReturnRequest struct {
	TripID     string `json:"trip_id" binding:"omitempty,uuid"`
	ProductID  string `json:"product_id" binding:"required,uuid"`
	Quantity   int    `json:"quantity" binding:"required,gt=0"`
	Reason     string `json:"reason" binding:"required"`
	ExpiryDate string `json:"expiry_date"`
	Notes      string `json:"notes"`
	RecordedBy string `json:"recorded_by"`
}

// ReturnResponse represents a return record in API responses
type ReturnResponse struct {
	ID          string `json:"id"`
	TripID      string `json:"trip_id,omitempty"`
	ProductID   string `json:"product_id"`
	ProductName string `json:"product_name"`
	Quantity    int    `json:"quantity"`
	Reason      string `json:"reason"`
	UnitPrice   string `json:"unit_price"`
	Value       string `json:"value"`
	ExpiryDate  string `json:"expiry_date,omitempty"`
	Notes       string `json:"notes,omitempty"`
	RecordedBy  string `json:"recorded_by,omitempty"`
	RecordedAt  string `json:"recorded_at"`
}

func toReturnResponse(r *sales.ReturnRecord) ReturnResponse {
	resp := ReturnResponse{
		ID:          r.ID.String(),
		ProductID:   r.ProductID.String(),
		ProductName: r.ProductName,
		Quantity:    r.Quantity,
		Reason:      string(r.Reason),
		UnitPrice:   r.UnitPrice.String(),
		Value:       r.Value().String(),
		Notes:       r.Notes,
		RecordedBy:  r.RecordedBy,
		RecordedAt:  r.RecordedAt.Format(timeFormat),
	}
	if r.TripID != nil {
		resp.TripID = r.TripID.String()
	}
	if r.ExpiryDate != nil {
		resp.ExpiryDate = r.ExpiryDate.Format(dateFormat)
	}
	return resp
}

// Record handles POST /returns
func (h *ReturnsHandler) Record(c *gin.Context) {
	var req ReturnRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		middleware.HandleValidationError(c, err)
		return
	}

	productID, err := uuid.Parse(req.ProductID)
	if err != nil {
		h.BadRequest(c, "Invalid product_id")
		return
	}
	input := salesapp.ReturnInput{
		ProductID:  productID,
		Quantity:   req.Quantity,
		Reason:     sales.ReturnReason(req.Reason),
		Notes:      req.Notes,
		RecordedBy: req.RecordedBy,
	}
	if req.TripID != "" {
		tripID, err := uuid.Parse(req.TripID)
		if err != nil {
			h.BadRequest(c, "Invalid trip_id")
			return
		}
		input.TripID = &tripID
	}
	if req.ExpiryDate != "" {
		expiry, err := parseDate(req.ExpiryDate)
		if err != nil {
			h.BadRequest(c, "Invalid expiry_date, expected YYYY-MM-DD")
			return
		}
		input.ExpiryDate = &expiry
	}

	record, err := h.returnsService.Record(c.Request.Context(), input)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, toReturnResponse(record))
}

// Delete handles DELETE /returns/:id
func (h *ReturnsHandler) Delete(c *gin.Context) {
	id, ok := h.parseID(c)
	if !ok {
		return
	}
	if err := h.returnsService.Delete(c.Request.Context(), id); err != nil {
		h.HandleError(c, err)
		return
	}
	h.NoContent(c)
}

// ListForTrip handles GET /trips/:id/returns
func (h *ReturnsHandler) ListForTrip(c *gin.Context) {
	tripID, ok := h.parseID(c)
	if !ok {
		return
	}
	records, err := h.returnsService.ForTrip(c.Request.Context(), tripID)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	items := make([]ReturnResponse, 0, len(records))
	for _, r := range records {
		items = append(items, toReturnResponse(r))
	}
	h.Success(c, items)
}
