package handler

import (
	catalogapp "github.com/fieldsales/backend/internal/application/catalog"
	"github.com/fieldsales/backend/internal/domain/catalog"
	"github.com/fieldsales/backend/internal/domain/shared"
	"github.com/fieldsales/backend/internal/interfaces/http/dto"
	"github.com/fieldsales/backend/internal/interfaces/http/middleware"
	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
)

// ProductHandler handles catalog API endpoints
type ProductHandler struct {
	BaseHandler
	productService *catalogapp.ProductService
}

// NewProductHandler creates a new ProductHandler
func NewProductHandler(productService *catalogapp.ProductService) *ProductHandler {
	return &ProductHandler{productService: productService}
}

// ProductRequest is the request body for creating or updating a product
type ProductRequest struct {
	Name            string  `json:"name" binding:"required"`
	UnitPrice       float64 `json:"unit_price" binding:"gte=0"`
	PiecesPerPacket int     `json:"pieces_per_packet" binding:"omitempty,min=1"`
	ShelfLifeDays   int     `json:"shelf_life_days" binding:"gte=0"`
	WeightGrams     int     `json:"weight_grams" binding:"gte=0"`
}

// ProductResponse represents a product in API responses
type ProductResponse struct {
	ID              string `json:"id"`
	Name            string `json:"name"`
	UnitPrice       string `json:"unit_price"`
	PricePerPiece   string `json:"price_per_piece"`
	PiecesPerPacket int    `json:"pieces_per_packet"`
	ShelfLifeDays   int    `json:"shelf_life_days"`
	WeightGrams     int    `json:"weight_grams"`
	Disabled        bool   `json:"disabled"`
	CreatedAt       string `json:"created_at"`
	UpdatedAt       string `json:"updated_at"`
}

func toProductResponse(p *catalog.Product) ProductResponse {
	return ProductResponse{
		ID:              p.ID.String(),
		Name:            p.Name,
		UnitPrice:       p.UnitPrice.String(),
		PricePerPiece:   p.Snapshot().PricePerPiece().String(),
		PiecesPerPacket: p.PiecesPerPacket,
		ShelfLifeDays:   p.ShelfLifeDays,
		WeightGrams:     p.WeightGrams,
		Disabled:        p.Disabled,
		CreatedAt:       p.CreatedAt.Format(timeFormat),
		UpdatedAt:       p.UpdatedAt.Format(timeFormat),
	}
}

func (r ProductRequest) toInput() catalogapp.ProductInput {
	return catalogapp.ProductInput{
		Name:            r.Name,
		UnitPrice:       decimal.NewFromFloat(r.UnitPrice),
		PiecesPerPacket: r.PiecesPerPacket,
		ShelfLifeDays:   r.ShelfLifeDays,
		WeightGrams:     r.WeightGrams,
	}
}

// Create handles POST /products
func (h *ProductHandler) Create(c *gin.Context) {
	var req ProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		middleware.HandleValidationError(c, err)
		return
	}

	product, err := h.productService.Create(c.Request.Context(), req.toInput())
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, toProductResponse(product))
}

// Update handles PUT /products/:id
func (h *ProductHandler) Update(c *gin.Context) {
	id, ok := h.parseID(c)
	if !ok {
		return
	}
	var req ProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		middleware.HandleValidationError(c, err)
		return
	}

	product, err := h.productService.Update(c.Request.Context(), id, req.toInput())
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, toProductResponse(product))
}

// Disable handles POST /products/:id/disable
func (h *ProductHandler) Disable(c *gin.Context) {
	id, ok := h.parseID(c)
	if !ok {
		return
	}
	product, err := h.productService.Disable(c.Request.Context(), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, toProductResponse(product))
}

// Get handles GET /products/:id
func (h *ProductHandler) Get(c *gin.Context) {
	id, ok := h.parseID(c)
	if !ok {
		return
	}
	product, err := h.productService.Get(c.Request.Context(), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, toProductResponse(product))
}

// List handles GET /products
func (h *ProductHandler) List(c *gin.Context) {
	req := dto.DefaultListRequest()
	if err := c.ShouldBindQuery(&req); err != nil {
		middleware.HandleValidationError(c, err)
		return
	}

	page, err := h.productService.List(c.Request.Context(), shared.Filter{
		Page:     req.Page,
		PageSize: req.PageSize,
		OrderBy:  req.OrderBy,
		OrderDir: req.OrderDir,
	})
	if err != nil {
		h.HandleError(c, err)
		return
	}

	items := make([]ProductResponse, 0, len(page.Items))
	for _, p := range page.Items {
		items = append(items, toProductResponse(p))
	}
	h.SuccessWithMeta(c, items, page.Total, page.Page, page.PageSize)
}
