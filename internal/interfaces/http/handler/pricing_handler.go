package handler

import (
	"github.com/editora/backend/internal/application/pricing"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// PricingHandler handles price quote and discount tier endpoints
type PricingHandler struct {
	BaseHandler
	quoteService *pricing.QuoteService
	tierService  *pricing.TierService
}

// NewPricingHandler creates a new pricing handler
func NewPricingHandler(quoteService *pricing.QuoteService, tierService *pricing.TierService, logger *zap.Logger) *PricingHandler {
	return &PricingHandler{
		BaseHandler:  NewBaseHandler(logger),
		quoteService: quoteService,
		tierService:  tierService,
	}
}

// Quote prices a customer's cart
// POST /api/v1/pricing/quote
func (h *PricingHandler) Quote(c *gin.Context) {
	tenantID, ok := h.tenantID(c)
	if !ok {
		return
	}

	var req pricing.QuoteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err)
		return
	}

	quote, err := h.quoteService.Quote(c.Request.Context(), tenantID, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, quote)
}

// ListTiers returns the tenant's reseller discount ladder
// GET /api/v1/pricing/tiers
func (h *PricingHandler) ListTiers(c *gin.Context) {
	tenantID, ok := h.tenantID(c)
	if !ok {
		return
	}

	tiers, err := h.tierService.List(c.Request.Context(), tenantID)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, tiers)
}

// CreateTier adds a rung to the discount ladder
// POST /api/v1/pricing/tiers
func (h *PricingHandler) CreateTier(c *gin.Context) {
	tenantID, ok := h.tenantID(c)
	if !ok {
		return
	}

	var req pricing.CreateTierRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err)
		return
	}

	tier, err := h.tierService.Create(c.Request.Context(), tenantID, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, tier)
}

// UpdateTier modifies a discount tier
// PUT /api/v1/pricing/tiers/:id
func (h *PricingHandler) UpdateTier(c *gin.Context) {
	tenantID, ok := h.tenantID(c)
	if !ok {
		return
	}
	tierID, ok := h.pathID(c, "id")
	if !ok {
		return
	}

	var req pricing.UpdateTierRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err)
		return
	}

	tier, err := h.tierService.Update(c.Request.Context(), tenantID, tierID, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, tier)
}

// DeleteTier removes a discount tier
// DELETE /api/v1/pricing/tiers/:id
func (h *PricingHandler) DeleteTier(c *gin.Context) {
	tenantID, ok := h.tenantID(c)
	if !ok {
		return
	}
	tierID, ok := h.pathID(c, "id")
	if !ok {
		return
	}

	if err := h.tierService.Delete(c.Request.Context(), tenantID, tierID); err != nil {
		h.HandleError(c, err)
		return
	}
	h.NoContent(c)
}

// InitializeTiers seeds the default reseller ladder for the tenant
// POST /api/v1/pricing/tiers/initialize
func (h *PricingHandler) InitializeTiers(c *gin.Context) {
	tenantID, ok := h.tenantID(c)
	if !ok {
		return
	}

	if err := h.tierService.InitializeDefaults(c.Request.Context(), tenantID); err != nil {
		h.HandleError(c, err)
		return
	}

	tiers, err := h.tierService.List(c.Request.Context(), tenantID)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, tiers)
}
