package handler

import (
	tripapp "github.com/fieldsales/backend/internal/application/trip"
	"github.com/fieldsales/backend/internal/domain/trip"
	"github.com/fieldsales/backend/internal/interfaces/http/middleware"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// AllocationHandler handles trip stock allocation endpoints
type AllocationHandler struct {
	BaseHandler
	allocationService *tripapp.AllocationService
}

// NewAllocationHandler creates a new AllocationHandler
func NewAllocationHandler(allocationService *tripapp.AllocationService) *AllocationHandler {
	return &AllocationHandler{allocationService: allocationService}
}

// AllocationLineRequest is one product line of an allocation request
type AllocationLineRequest struct {
	ProductID string `json:"product_id" binding:"required,uuid"`
	Quantity  int    `json:"quantity" binding:"required,gt=0"`
}

// AllocateRequest loads stock onto a trip. The whole request succeeds or
// fails together.
type AllocateRequest struct {
	Lines       []AllocationLineRequest `json:"lines" binding:"required,min=1,dive"`
	AllocatedBy string                  `json:"allocated_by"`
}

// AllocationResponse represents one allocation in API responses
type AllocationResponse struct {
	ID               string `json:"id"`
	TripID           string `json:"trip_id"`
	ProductID        string `json:"product_id"`
	ProductName      string `json:"product_name"`
	Quantity         int    `json:"quantity"`
	SourceExpiryDate string `json:"source_expiry_date"`
	AllocatedBy      string `json:"allocated_by,omitempty"`
	AllocatedAt      string `json:"allocated_at"`
}

func toAllocationResponse(a *trip.Allocation) AllocationResponse {
	return AllocationResponse{
		ID:               a.ID.String(),
		TripID:           a.TripID.String(),
		ProductID:        a.ProductID.String(),
		ProductName:      a.Product.Name,
		Quantity:         a.Quantity,
		SourceExpiryDate: a.SourceExpiryDate.Format(dateFormat),
		AllocatedBy:      a.AllocatedBy,
		AllocatedAt:      a.AllocatedAt.Format(timeFormat),
	}
}

// Allocate handles POST /trips/:id/allocations
func (h *AllocationHandler) Allocate(c *gin.Context) {
	tripID, ok := h.parseID(c)
	if !ok {
		return
	}
	var req AllocateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		middleware.HandleValidationError(c, err)
		return
	}

	lines := make([]tripapp.AllocationLine, 0, len(req.Lines))
	for _, l := range req.Lines {
		productID, err := uuid.Parse(l.ProductID)
		if err != nil {
			h.BadRequest(c, "Invalid product_id")
			return
		}
		lines = append(lines, tripapp.AllocationLine{ProductID: productID, Quantity: l.Quantity})
	}

	allocations, err := h.allocationService.Allocate(c.Request.Context(), tripID, lines, req.AllocatedBy)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	items := make([]AllocationResponse, 0, len(allocations))
	for _, a := range allocations {
		items = append(items, toAllocationResponse(a))
	}
	h.Created(c, items)
}

// List handles GET /trips/:id/allocations
func (h *AllocationHandler) List(c *gin.Context) {
	tripID, ok := h.parseID(c)
	if !ok {
		return
	}
	allocations, err := h.allocationService.ForTrip(c.Request.Context(), tripID)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	items := make([]AllocationResponse, 0, len(allocations))
	for _, a := range allocations {
		items = append(items, toAllocationResponse(a))
	}
	h.Success(c, items)
}

// Reverse handles DELETE /allocations/:id. Only allocations on trips
// that have not started can be reversed.
func (h *AllocationHandler) Reverse(c *gin.Context) {
	id, ok := h.parseID(c)
	if !ok {
		return
	}
	if err := h.allocationService.Reverse(c.Request.Context(), id); err != nil {
		h.HandleError(c, err)
		return
	}
	h.NoContent(c)
}
