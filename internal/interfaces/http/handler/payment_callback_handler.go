package handler

import (
	"errors"
	"net/http"
	"time"

	"github.com/editora/backend/internal/application/trade"
	"github.com/editora/backend/internal/domain/shared"
	"github.com/editora/backend/internal/interfaces/http/dto"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// callbackDedupeTTL bounds how long a processed gateway event is remembered.
// Gateways retry for at most a few days.
const callbackDedupeTTL = 72 * time.Hour

// PaymentCallbackRequest is the payload posted by the payment gateway
type PaymentCallbackRequest struct {
	EventID       string    `json:"event_id" binding:"required,min=1,max=100"`
	TenantID      uuid.UUID `json:"tenant_id" binding:"required"`
	SaleID        uuid.UUID `json:"sale_id" binding:"required"`
	Status        string    `json:"status" binding:"required,oneof=PAID FAILED EXPIRED"`
	PaymentMethod string    `json:"payment_method" binding:"required,oneof=PIX BOLETO CREDIT_CARD"`
}

// PaymentCallbackHandler processes asynchronous payment gateway notifications.
// Gateways deliver at-least-once, so events are deduplicated by event ID
// before the sale is confirmed.
type PaymentCallbackHandler struct {
	BaseHandler
	saleService *trade.SaleService
	idempotency shared.IdempotencyStore
}

// NewPaymentCallbackHandler creates a new payment callback handler
func NewPaymentCallbackHandler(saleService *trade.SaleService, idempotency shared.IdempotencyStore, logger *zap.Logger) *PaymentCallbackHandler {
	return &PaymentCallbackHandler{
		BaseHandler: NewBaseHandler(logger),
		saleService: saleService,
		idempotency: idempotency,
	}
}

// Handle processes one gateway notification
// POST /api/v1/payment/callback
func (h *PaymentCallbackHandler) Handle(c *gin.Context) {
	var req PaymentCallbackRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err)
		return
	}

	ctx := c.Request.Context()

	if req.Status != "PAID" {
		// Failed and expired charges are acknowledged without side effects;
		// the sale stays pending until the customer retries.
		h.logger.Info("Ignoring non-payment callback",
			zap.String("event_id", req.EventID),
			zap.String("status", req.Status),
			zap.String("sale_id", req.SaleID.String()),
		)
		h.Success(c, gin.H{"event_id": req.EventID, "processed": false})
		return
	}

	firstTime, err := h.idempotency.MarkProcessed(ctx, req.EventID, callbackDedupeTTL)
	if err != nil {
		h.logger.Error("Failed to check callback idempotency",
			zap.String("event_id", req.EventID),
			zap.Error(err))
		c.JSON(http.StatusServiceUnavailable,
			dto.NewErrorResponse(dto.ErrCodeInternal, "Callback processing temporarily unavailable"))
		return
	}
	if !firstTime {
		h.logger.Info("Duplicate payment callback",
			zap.String("event_id", req.EventID),
			zap.String("sale_id", req.SaleID.String()))
		h.Success(c, gin.H{"event_id": req.EventID, "processed": false, "duplicate": true})
		return
	}

	sale, err := h.saleService.ConfirmPayment(ctx, req.TenantID, req.SaleID, trade.ConfirmPaymentRequest{
		PaymentMethod: req.PaymentMethod,
	})
	if err != nil {
		// Confirming an already-confirmed sale is a benign gateway retry
		// that slipped past the dedupe window.
		var domainErr *shared.DomainError
		if errors.As(err, &domainErr) && domainErr.Code == "INVALID_STATE" {
			h.Success(c, gin.H{"event_id": req.EventID, "processed": false, "duplicate": true})
			return
		}

		// Release the key so the gateway's retry can succeed
		if forgetErr := h.idempotency.Forget(ctx, req.EventID); forgetErr != nil {
			h.logger.Error("Failed to release callback idempotency key",
				zap.String("event_id", req.EventID),
				zap.Error(forgetErr))
		}
		h.HandleError(c, err)
		return
	}

	h.logger.Info("Payment callback processed",
		zap.String("event_id", req.EventID),
		zap.String("sale_id", req.SaleID.String()),
		zap.String("payment_method", req.PaymentMethod),
	)
	h.Success(c, gin.H{"event_id": req.EventID, "processed": true, "sale": sale})
}
