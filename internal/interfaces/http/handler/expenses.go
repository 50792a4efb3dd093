package handler

import (
	salesapp "github.com/fieldsales/backend/internal/application/sales"
	"github.com/fieldsales/backend/internal/domain/finance"
	"github.com/fieldsales/backend/internal/interfaces/http/middleware"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// ExpenseHandler handles trip expense endpoints
type ExpenseHandler struct {
	BaseHandler
	expenseService *salesapp.ExpenseService
}

// NewExpenseHandler creates a new ExpenseHandler
func NewExpenseHandler(expenseService *salesapp.ExpenseService) *ExpenseHandler {
	return &ExpenseHandler{expenseService: expenseService}
}

// ExpenseRequest records an expense against a trip. Type is optional
// and overrides the reason-based company/personal classification.
type ExpenseRequest struct {
	TripID        string  `json:"trip_id" binding:"required,uuid"`
	Reason        string  `json:"reason" binding:"required"`
	Type          string  `json:"type" binding:"omitempty,oneof=COMPANY PERSONAL"`
	Amount        float64 `json:"amount" binding:"required,gt=0"`
	PaymentMethod string  `json:"payment_method" binding:"required,oneof=CASH MPESA"`
	Description   string  `json:"description"`
	RecordedBy    string  `json:"recorded_by"`
}

// ExpenseResponse represents an expense in API responses
type ExpenseResponse struct {
	ID            string `json:"id"`
	TripID        string `json:"trip_id"`
	Reason        string `json:"reason"`
	Type          string `json:"type,omitempty"`
	EffectiveType string `json:"effective_type"`
	Amount        string `json:"amount"`
	PaymentMethod string `json:"payment_method"`
	Status        string `json:"status"`
	Description   string `json:"description,omitempty"`
	RecordedBy    string `json:"recorded_by,omitempty"`
	RecordedAt    string `json:"recorded_at"`
}

func toExpenseResponse(e *finance.Expense) ExpenseResponse {
	return ExpenseResponse{
		ID:            e.ID.String(),
		TripID:        e.TripID.String(),
		Reason:        string(e.Reason),
		Type:          string(e.Type),
		EffectiveType: string(e.EffectiveType()),
		Amount:        e.Amount.String(),
		PaymentMethod: string(e.PaymentMethod),
		Status:        string(e.Status),
		Description:   e.Description,
		RecordedBy:    e.RecordedBy,
		RecordedAt:    e.RecordedAt.Format(timeFormat),
	}
}

// Record handles POST /expenses
func (h *ExpenseHandler) Record(c *gin.Context) {
	var req ExpenseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		middleware.HandleValidationError(c, err)
		return
	}
	tripID, err := uuid.Parse(req.TripID)
	if err != nil {
		h.BadRequest(c, "Invalid trip_id")
		return
	}

	expense, err := h.expenseService.Record(c.Request.Context(), salesapp.ExpenseInput{
		TripID:        tripID,
		Reason:        finance.ExpenseReason(req.Reason),
		Type:          finance.ExpenseType(req.Type),
		Amount:        decimal.NewFromFloat(req.Amount),
		PaymentMethod: finance.ExpensePayment(req.PaymentMethod),
		Description:   req.Description,
		RecordedBy:    req.RecordedBy,
	})
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, toExpenseResponse(expense))
}

// Approve handles POST /expenses/:id/approve
func (h *ExpenseHandler) Approve(c *gin.Context) {
	id, ok := h.parseID(c)
	if !ok {
		return
	}
	expense, err := h.expenseService.Approve(c.Request.Context(), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, toExpenseResponse(expense))
}

// Reject handles POST /expenses/:id/reject
func (h *ExpenseHandler) Reject(c *gin.Context) {
	id, ok := h.parseID(c)
	if !ok {
		return
	}
	expense, err := h.expenseService.Reject(c.Request.Context(), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, toExpenseResponse(expense))
}

// ListForTrip handles GET /trips/:id/expenses
func (h *ExpenseHandler) ListForTrip(c *gin.Context) {
	tripID, ok := h.parseID(c)
	if !ok {
		return
	}
	expenses, err := h.expenseService.ForTrip(c.Request.Context(), tripID)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	items := make([]ExpenseResponse, 0, len(expenses))
	for _, e := range expenses {
		items = append(items, toExpenseResponse(e))
	}
	h.Success(c, items)
}
