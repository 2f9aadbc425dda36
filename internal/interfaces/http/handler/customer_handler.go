package handler

import (
	"github.com/editora/backend/internal/application/partner"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// CustomerHandler handles customer account endpoints
type CustomerHandler struct {
	BaseHandler
	customerService *partner.CustomerService
}

// NewCustomerHandler creates a new customer handler
func NewCustomerHandler(customerService *partner.CustomerService, logger *zap.Logger) *CustomerHandler {
	return &CustomerHandler{
		BaseHandler:     NewBaseHandler(logger),
		customerService: customerService,
	}
}

// Create registers a new customer account
// POST /api/v1/customers
func (h *CustomerHandler) Create(c *gin.Context) {
	tenantID, ok := h.tenantID(c)
	if !ok {
		return
	}

	var req partner.CreateCustomerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err)
		return
	}

	customer, err := h.customerService.Create(c.Request.Context(), tenantID, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, customer)
}

// Get returns a customer by ID
// GET /api/v1/customers/:id
func (h *CustomerHandler) Get(c *gin.Context) {
	tenantID, ok := h.tenantID(c)
	if !ok {
		return
	}
	customerID, ok := h.pathID(c, "id")
	if !ok {
		return
	}

	customer, err := h.customerService.GetByID(c.Request.Context(), tenantID, customerID)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, customer)
}

// List returns the tenant's customers
// GET /api/v1/customers
func (h *CustomerHandler) List(c *gin.Context) {
	tenantID, ok := h.tenantID(c)
	if !ok {
		return
	}
	page, ok := h.pagination(c)
	if !ok {
		return
	}

	customers, total, err := h.customerService.List(c.Request.Context(), tenantID, page.Page, page.PageSize)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.SuccessWithMeta(c, customers, total, page.Page, page.PageSize)
}

// Update modifies a customer's contact data and discount eligibility
// PUT /api/v1/customers/:id
func (h *CustomerHandler) Update(c *gin.Context) {
	tenantID, ok := h.tenantID(c)
	if !ok {
		return
	}
	customerID, ok := h.pathID(c, "id")
	if !ok {
		return
	}

	var req partner.UpdateCustomerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err)
		return
	}

	customer, err := h.customerService.Update(c.Request.Context(), tenantID, customerID, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, customer)
}

// SetCategoryRate sets one representative category percentage
// PUT /api/v1/customers/:id/category-rates
func (h *CustomerHandler) SetCategoryRate(c *gin.Context) {
	tenantID, ok := h.tenantID(c)
	if !ok {
		return
	}
	customerID, ok := h.pathID(c, "id")
	if !ok {
		return
	}

	var req partner.SetCategoryRateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err)
		return
	}

	customer, err := h.customerService.SetCategoryRate(c.Request.Context(), tenantID, customerID, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, customer)
}

// Activate re-enables a customer account
// POST /api/v1/customers/:id/activate
func (h *CustomerHandler) Activate(c *gin.Context) {
	tenantID, ok := h.tenantID(c)
	if !ok {
		return
	}
	customerID, ok := h.pathID(c, "id")
	if !ok {
		return
	}

	customer, err := h.customerService.Activate(c.Request.Context(), tenantID, customerID)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, customer)
}

// Deactivate disables a customer account
// POST /api/v1/customers/:id/deactivate
func (h *CustomerHandler) Deactivate(c *gin.Context) {
	tenantID, ok := h.tenantID(c)
	if !ok {
		return
	}
	customerID, ok := h.pathID(c, "id")
	if !ok {
		return
	}

	customer, err := h.customerService.Deactivate(c.Request.Context(), tenantID, customerID)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, customer)
}
