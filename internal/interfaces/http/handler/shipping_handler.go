package handler

import (
	"github.com/editora/backend/internal/application/shipping"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// ShippingHandler handles shipment packing endpoints
type ShippingHandler struct {
	BaseHandler
	quoteService *shipping.QuoteService
}

// NewShippingHandler creates a new shipping handler
func NewShippingHandler(quoteService *shipping.QuoteService, logger *zap.Logger) *ShippingHandler {
	return &ShippingHandler{
		BaseHandler:  NewBaseHandler(logger),
		quoteService: quoteService,
	}
}

// Quote computes the box decomposition for a shipment
// POST /api/v1/shipping/quote
func (h *ShippingHandler) Quote(c *gin.Context) {
	var req shipping.QuoteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err)
		return
	}

	quote, err := h.quoteService.Quote(req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, quote)
}
