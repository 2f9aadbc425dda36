package handler

import (
	"github.com/editora/backend/internal/application/partner"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// VendorHandler handles vendor and manager endpoints
type VendorHandler struct {
	BaseHandler
	vendorService *partner.VendorService
}

// NewVendorHandler creates a new vendor handler
func NewVendorHandler(vendorService *partner.VendorService, logger *zap.Logger) *VendorHandler {
	return &VendorHandler{
		BaseHandler:   NewBaseHandler(logger),
		vendorService: vendorService,
	}
}

// Create registers a new vendor or manager
// POST /api/v1/vendors
func (h *VendorHandler) Create(c *gin.Context) {
	tenantID, ok := h.tenantID(c)
	if !ok {
		return
	}

	var req partner.CreateVendorRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err)
		return
	}

	vendor, err := h.vendorService.Create(c.Request.Context(), tenantID, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, vendor)
}

// Get returns a vendor by ID
// GET /api/v1/vendors/:id
func (h *VendorHandler) Get(c *gin.Context) {
	tenantID, ok := h.tenantID(c)
	if !ok {
		return
	}
	vendorID, ok := h.pathID(c, "id")
	if !ok {
		return
	}

	vendor, err := h.vendorService.GetByID(c.Request.Context(), tenantID, vendorID)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, vendor)
}

// List returns the tenant's vendors
// GET /api/v1/vendors
func (h *VendorHandler) List(c *gin.Context) {
	tenantID, ok := h.tenantID(c)
	if !ok {
		return
	}
	page, ok := h.pagination(c)
	if !ok {
		return
	}

	vendors, total, err := h.vendorService.List(c.Request.Context(), tenantID, page.Page, page.PageSize)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.SuccessWithMeta(c, vendors, total, page.Page, page.PageSize)
}

// AssignManager links a vendor to its direct manager
// PUT /api/v1/vendors/:id/manager
func (h *VendorHandler) AssignManager(c *gin.Context) {
	tenantID, ok := h.tenantID(c)
	if !ok {
		return
	}
	vendorID, ok := h.pathID(c, "id")
	if !ok {
		return
	}

	var req partner.AssignManagerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err)
		return
	}

	vendor, err := h.vendorService.AssignManager(c.Request.Context(), tenantID, vendorID, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, vendor)
}

// RemoveManager detaches a vendor from its manager
// DELETE /api/v1/vendors/:id/manager
func (h *VendorHandler) RemoveManager(c *gin.Context) {
	tenantID, ok := h.tenantID(c)
	if !ok {
		return
	}
	vendorID, ok := h.pathID(c, "id")
	if !ok {
		return
	}

	vendor, err := h.vendorService.RemoveManager(c.Request.Context(), tenantID, vendorID)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, vendor)
}

// SetCommission sets a manager's override commission percentage
// PUT /api/v1/vendors/:id/commission
func (h *VendorHandler) SetCommission(c *gin.Context) {
	tenantID, ok := h.tenantID(c)
	if !ok {
		return
	}
	vendorID, ok := h.pathID(c, "id")
	if !ok {
		return
	}

	var req partner.SetCommissionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err)
		return
	}

	vendor, err := h.vendorService.SetCommission(c.Request.Context(), tenantID, vendorID, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, vendor)
}
