package handler

import (
	"github.com/editora/backend/internal/application/trade"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// SaleHandler handles sale lifecycle endpoints
type SaleHandler struct {
	BaseHandler
	saleService *trade.SaleService
}

// NewSaleHandler creates a new sale handler
func NewSaleHandler(saleService *trade.SaleService, logger *zap.Logger) *SaleHandler {
	return &SaleHandler{
		BaseHandler: NewBaseHandler(logger),
		saleService: saleService,
	}
}

// CancelSaleRequest carries the cancellation reason
type CancelSaleRequest struct {
	Reason string `json:"reason" binding:"required,min=1,max=500"`
}

// Create registers a new sale
// POST /api/v1/sales
func (h *SaleHandler) Create(c *gin.Context) {
	tenantID, ok := h.tenantID(c)
	if !ok {
		return
	}

	var req trade.CreateSaleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err)
		return
	}

	sale, err := h.saleService.Create(c.Request.Context(), tenantID, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, sale)
}

// Get returns a sale with its installments
// GET /api/v1/sales/:id
func (h *SaleHandler) Get(c *gin.Context) {
	tenantID, ok := h.tenantID(c)
	if !ok {
		return
	}
	saleID, ok := h.pathID(c, "id")
	if !ok {
		return
	}

	sale, err := h.saleService.GetByID(c.Request.Context(), tenantID, saleID)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, sale)
}

// List returns the tenant's sales
// GET /api/v1/sales
func (h *SaleHandler) List(c *gin.Context) {
	tenantID, ok := h.tenantID(c)
	if !ok {
		return
	}
	page, ok := h.pagination(c)
	if !ok {
		return
	}

	sales, total, err := h.saleService.List(c.Request.Context(), tenantID, page.Page, page.PageSize)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.SuccessWithMeta(c, sales, total, page.Page, page.PageSize)
}

// ConfirmPayment confirms a sale's payment and triggers commission allocation
// POST /api/v1/sales/:id/confirm
func (h *SaleHandler) ConfirmPayment(c *gin.Context) {
	tenantID, ok := h.tenantID(c)
	if !ok {
		return
	}
	saleID, ok := h.pathID(c, "id")
	if !ok {
		return
	}

	var req trade.ConfirmPaymentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err)
		return
	}

	sale, err := h.saleService.ConfirmPayment(c.Request.Context(), tenantID, saleID, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, sale)
}

// Cancel cancels a sale
// POST /api/v1/sales/:id/cancel
func (h *SaleHandler) Cancel(c *gin.Context) {
	tenantID, ok := h.tenantID(c)
	if !ok {
		return
	}
	saleID, ok := h.pathID(c, "id")
	if !ok {
		return
	}

	var req CancelSaleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err)
		return
	}

	sale, err := h.saleService.Cancel(c.Request.Context(), tenantID, saleID, req.Reason)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, sale)
}
