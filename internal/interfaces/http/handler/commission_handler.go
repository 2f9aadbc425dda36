package handler

import (
	"time"

	"github.com/editora/backend/internal/application/commission"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// CommissionHandler handles commission configuration, allocation and payout endpoints
type CommissionHandler struct {
	BaseHandler
	allocationService *commission.AllocationService
	backfillService   *commission.BackfillService
	configService     *commission.ConfigService
	payoutService     *commission.PayoutService
}

// NewCommissionHandler creates a new commission handler
func NewCommissionHandler(
	allocationService *commission.AllocationService,
	backfillService *commission.BackfillService,
	configService *commission.ConfigService,
	payoutService *commission.PayoutService,
	logger *zap.Logger,
) *CommissionHandler {
	return &CommissionHandler{
		BaseHandler:       NewBaseHandler(logger),
		allocationService: allocationService,
		backfillService:   backfillService,
		configService:     configService,
		payoutService:     payoutService,
	}
}

// BackfillRequest bounds a reconciliation sweep
type BackfillRequest struct {
	From time.Time `json:"from" binding:"required"`
	To   time.Time `json:"to" binding:"required,gtfield=From"`
}

// ListRecordsRequest filters the commission record listing
type ListRecordsRequest struct {
	BeneficiaryType string `form:"beneficiary_type" binding:"omitempty,oneof=VENDOR MANAGER ADMIN"`
	BeneficiaryID   string `form:"beneficiary_id" binding:"omitempty,uuid"`
	Page            int    `form:"page" binding:"omitempty,min=1"`
	PageSize        int    `form:"page_size" binding:"omitempty,min=1,max=100"`
}

// CancelRecordRequest carries the cancellation reason
type CancelRecordRequest struct {
	Reason string `json:"reason" binding:"required,min=1,max=500"`
}

// GetConfig returns the active admin commission configuration
// GET /api/v1/commissions/config
func (h *CommissionHandler) GetConfig(c *gin.Context) {
	tenantID, ok := h.tenantID(c)
	if !ok {
		return
	}

	config, err := h.configService.Get(c.Request.Context(), tenantID)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, config)
}

// UpsertConfig sets the admin commission percentage
// PUT /api/v1/commissions/config
func (h *CommissionHandler) UpsertConfig(c *gin.Context) {
	tenantID, ok := h.tenantID(c)
	if !ok {
		return
	}

	var req commission.UpsertAdminConfigRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err)
		return
	}

	config, err := h.configService.Upsert(c.Request.Context(), tenantID, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, config)
}

// DeactivateConfig disables the admin commission configuration.
// Allocation refuses to run until a new configuration is activated.
// DELETE /api/v1/commissions/config
func (h *CommissionHandler) DeactivateConfig(c *gin.Context) {
	tenantID, ok := h.tenantID(c)
	if !ok {
		return
	}

	if err := h.configService.Deactivate(c.Request.Context(), tenantID); err != nil {
		h.HandleError(c, err)
		return
	}
	h.NoContent(c)
}

// AllocateSale allocates commissions for a confirmed sale
// POST /api/v1/commissions/allocate/:saleId
func (h *CommissionHandler) AllocateSale(c *gin.Context) {
	tenantID, ok := h.tenantID(c)
	if !ok {
		return
	}
	saleID, ok := h.pathID(c, "saleId")
	if !ok {
		return
	}

	result, err := h.allocationService.AllocateForSale(c.Request.Context(), tenantID, saleID)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, result)
}

// RunBackfill sweeps confirmed sales in a date range and fills
// missing commission records
// POST /api/v1/commissions/backfill
func (h *CommissionHandler) RunBackfill(c *gin.Context) {
	tenantID, ok := h.tenantID(c)
	if !ok {
		return
	}

	var req BackfillRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err)
		return
	}

	result, err := h.backfillService.Run(c.Request.Context(), tenantID, req.From, req.To)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, result)
}

// ListRecords returns commission records for a beneficiary
// GET /api/v1/commissions/records
func (h *CommissionHandler) ListRecords(c *gin.Context) {
	tenantID, ok := h.tenantID(c)
	if !ok {
		return
	}

	var req ListRecordsRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		h.BadRequest(c, err)
		return
	}
	if req.Page < 1 {
		req.Page = 1
	}
	if req.PageSize < 1 {
		req.PageSize = 20
	}

	beneficiaryID := uuid.Nil
	if req.BeneficiaryID != "" {
		beneficiaryID = uuid.MustParse(req.BeneficiaryID)
	}

	records, total, err := h.payoutService.ListRecords(
		c.Request.Context(), tenantID, req.BeneficiaryType, beneficiaryID, req.Page, req.PageSize)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.SuccessWithMeta(c, records, total, req.Page, req.PageSize)
}

// ReleaseDue releases every pending record whose holding period has elapsed
// POST /api/v1/commissions/release-due
func (h *CommissionHandler) ReleaseDue(c *gin.Context) {
	tenantID, ok := h.tenantID(c)
	if !ok {
		return
	}

	asOf := time.Now()
	if raw := c.Query("as_of"); raw != "" {
		parsed, err := time.Parse(time.RFC3339, raw)
		if err != nil {
			h.BadRequest(c, err)
			return
		}
		asOf = parsed
	}

	released, err := h.payoutService.ReleaseDue(c.Request.Context(), tenantID, asOf)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, gin.H{"released": released})
}

// ReleaseRecord releases a single pending commission record
// POST /api/v1/commissions/records/:id/release
func (h *CommissionHandler) ReleaseRecord(c *gin.Context) {
	tenantID, ok := h.tenantID(c)
	if !ok {
		return
	}
	recordID, ok := h.pathID(c, "id")
	if !ok {
		return
	}

	record, err := h.payoutService.Release(c.Request.Context(), tenantID, recordID)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, record)
}

// CancelRecord cancels a commission record after a sale reversal
// POST /api/v1/commissions/records/:id/cancel
func (h *CommissionHandler) CancelRecord(c *gin.Context) {
	tenantID, ok := h.tenantID(c)
	if !ok {
		return
	}
	recordID, ok := h.pathID(c, "id")
	if !ok {
		return
	}

	var req CancelRecordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err)
		return
	}

	record, err := h.payoutService.Cancel(c.Request.Context(), tenantID, recordID, req.Reason)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, record)
}

// CreateBatch groups released records into a payout batch
// POST /api/v1/commissions/batches
func (h *CommissionHandler) CreateBatch(c *gin.Context) {
	tenantID, ok := h.tenantID(c)
	if !ok {
		return
	}

	var req commission.CreateBatchRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err)
		return
	}

	batch, err := h.payoutService.CreateBatch(c.Request.Context(), tenantID, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, batch)
}

// GetBatch returns a payout batch
// GET /api/v1/commissions/batches/:id
func (h *CommissionHandler) GetBatch(c *gin.Context) {
	tenantID, ok := h.tenantID(c)
	if !ok {
		return
	}
	batchID, ok := h.pathID(c, "id")
	if !ok {
		return
	}

	batch, err := h.payoutService.GetBatch(c.Request.Context(), tenantID, batchID)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, batch)
}

// SettleBatch marks a payout batch and its records as paid
// POST /api/v1/commissions/batches/:id/settle
func (h *CommissionHandler) SettleBatch(c *gin.Context) {
	tenantID, ok := h.tenantID(c)
	if !ok {
		return
	}
	batchID, ok := h.pathID(c, "id")
	if !ok {
		return
	}

	batch, err := h.payoutService.SettleBatch(c.Request.Context(), tenantID, batchID)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, batch)
}
