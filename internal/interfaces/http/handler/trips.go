package handler

import (
	tripapp "github.com/fieldsales/backend/internal/application/trip"
	"github.com/fieldsales/backend/internal/domain/shared"
	"github.com/fieldsales/backend/internal/domain/trip"
	"github.com/fieldsales/backend/internal/interfaces/http/dto"
	"github.com/fieldsales/backend/internal/interfaces/http/middleware"
	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
)

// TripHandler handles trip lifecycle endpoints
type TripHandler struct {
	BaseHandler
	tripService *tripapp.TripService
}

// NewTripHandler creates a new TripHandler
func NewTripHandler(tripService *tripapp.TripService) *TripHandler {
	return &TripHandler{tripService: tripService}
}

// CreateTripRequest is the request body for creating a trip
type CreateTripRequest struct {
	DistributorName string `json:"distributor_name" binding:"required"`
	VehicleReg      string `json:"vehicle_reg"`
	Route           string `json:"route"`
}

// StartTripRequest records the odometer at departure
type StartTripRequest struct {
	StartOdometer int `json:"start_odometer" binding:"gte=0"`
}

// EndTripRequest records the odometer at return
type EndTripRequest struct {
	EndOdometer int `json:"end_odometer" binding:"required,gt=0"`
}

// CashSubmissionRequest records the money handed in after the trip
type CashSubmissionRequest struct {
	Amount float64 `json:"amount" binding:"gte=0"`
}

// TripResponse represents a trip in API responses
type TripResponse struct {
	ID                   string `json:"id"`
	DistributorName      string `json:"distributor_name"`
	VehicleReg           string `json:"vehicle_reg"`
	Route                string `json:"route"`
	Status               string `json:"status"`
	StartOdometer        int    `json:"start_odometer"`
	EndOdometer          int    `json:"end_odometer"`
	TotalKm              int    `json:"total_km"`
	StartedAt            string `json:"started_at,omitempty"`
	EndedAt              string `json:"ended_at,omitempty"`
	DurationMinutes      int    `json:"duration_minutes"`
	ActualCashSubmission string `json:"actual_cash_submission,omitempty"`
	Notes                string `json:"notes,omitempty"`
	CreatedAt            string `json:"created_at"`
}

func toTripResponse(t *trip.Trip) TripResponse {
	resp := TripResponse{
		ID:              t.ID.String(),
		DistributorName: t.DistributorName,
		VehicleReg:      t.VehicleReg,
		Route:           t.Route,
		Status:          string(t.Status),
		StartOdometer:   t.StartOdometer,
		EndOdometer:     t.EndOdometer,
		TotalKm:         t.TotalKm,
		StartedAt:       formatTimePtr(t.StartedAt),
		EndedAt:         formatTimePtr(t.EndedAt),
		DurationMinutes: t.DurationMinutes,
		Notes:           t.Notes,
		CreatedAt:       t.CreatedAt.Format(timeFormat),
	}
	if t.ActualCashSubmission != nil {
		resp.ActualCashSubmission = t.ActualCashSubmission.String()
	}
	return resp
}

// Create handles POST /trips
func (h *TripHandler) Create(c *gin.Context) {
	var req CreateTripRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		middleware.HandleValidationError(c, err)
		return
	}
	t, err := h.tripService.Create(c.Request.Context(), req.DistributorName, req.VehicleReg, req.Route)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, toTripResponse(t))
}

// Start handles POST /trips/:id/start
func (h *TripHandler) Start(c *gin.Context) {
	id, ok := h.parseID(c)
	if !ok {
		return
	}
	var req StartTripRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		middleware.HandleValidationError(c, err)
		return
	}
	t, err := h.tripService.Start(c.Request.Context(), id, req.StartOdometer)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, toTripResponse(t))
}

// End handles POST /trips/:id/end
func (h *TripHandler) End(c *gin.Context) {
	id, ok := h.parseID(c)
	if !ok {
		return
	}
	var req EndTripRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		middleware.HandleValidationError(c, err)
		return
	}
	t, err := h.tripService.End(c.Request.Context(), id, req.EndOdometer)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, toTripResponse(t))
}

// RecordCashSubmission handles POST /trips/:id/cash-submission
func (h *TripHandler) RecordCashSubmission(c *gin.Context) {
	id, ok := h.parseID(c)
	if !ok {
		return
	}
	var req CashSubmissionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		middleware.HandleValidationError(c, err)
		return
	}
	t, err := h.tripService.RecordCashSubmission(c.Request.Context(), id, decimal.NewFromFloat(req.Amount))
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, toTripResponse(t))
}

// Get handles GET /trips/:id
func (h *TripHandler) Get(c *gin.Context) {
	id, ok := h.parseID(c)
	if !ok {
		return
	}
	t, err := h.tripService.Get(c.Request.Context(), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, toTripResponse(t))
}

// List handles GET /trips with optional ?status= filter
func (h *TripHandler) List(c *gin.Context) {
	req := dto.DefaultListRequest()
	if err := c.ShouldBindQuery(&req); err != nil {
		middleware.HandleValidationError(c, err)
		return
	}
	filter := shared.Filter{
		Page:     req.Page,
		PageSize: req.PageSize,
		OrderBy:  req.OrderBy,
		OrderDir: req.OrderDir,
		Filters:  map[string]interface{}{},
	}
	if status := c.Query("status"); status != "" {
		filter.Filters["status"] = status
	}

	page, err := h.tripService.List(c.Request.Context(), filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	items := make([]TripResponse, 0, len(page.Items))
	for _, t := range page.Items {
		items = append(items, toTripResponse(t))
	}
	h.SuccessWithMeta(c, items, page.Total, page.Page, page.PageSize)
}
