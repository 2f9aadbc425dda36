package commission

import (
	"time"

	"github.com/editora/backend/internal/domain/commission"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// =============================================================================
// Commission record DTOs
// =============================================================================

// RecordResponse represents a commission record
type RecordResponse struct {
	ID              uuid.UUID       `json:"id"`
	BeneficiaryType string          `json:"beneficiary_type"`
	BeneficiaryID   uuid.UUID       `json:"beneficiary_id"`
	VendorID        uuid.UUID       `json:"vendor_id"`
	SaleID          uuid.UUID       `json:"sale_id"`
	InstallmentID   uuid.UUID       `json:"installment_id"`
	SaleAmount      decimal.Decimal `json:"sale_amount"`
	Percent         decimal.Decimal `json:"percent"`
	Amount          decimal.Decimal `json:"amount"`
	DueDate         time.Time       `json:"due_date"`
	Status          string          `json:"status"`
	BatchID         *uuid.UUID      `json:"batch_id,omitempty"`
	ReleasedAt      *time.Time      `json:"released_at,omitempty"`
	PaidAt          *time.Time      `json:"paid_at,omitempty"`
}

// ToRecordResponse converts a commission record to a response DTO
func ToRecordResponse(record *commission.Record) RecordResponse {
	return RecordResponse{
		ID:              record.ID,
		BeneficiaryType: string(record.BeneficiaryType),
		BeneficiaryID:   record.BeneficiaryID,
		VendorID:        record.VendorID,
		SaleID:          record.SaleID,
		InstallmentID:   record.InstallmentID,
		SaleAmount:      record.SaleAmount,
		Percent:         record.Percent,
		Amount:          record.Amount,
		DueDate:         record.DueDate,
		Status:          string(record.Status),
		BatchID:         record.BatchID,
		ReleasedAt:      record.ReleasedAt,
		PaidAt:          record.PaidAt,
	}
}

// ToRecordResponses converts a list of records to response DTOs
func ToRecordResponses(records []*commission.Record) []RecordResponse {
	out := make([]RecordResponse, len(records))
	for i, record := range records {
		out[i] = ToRecordResponse(record)
	}
	return out
}

// AllocationResult summarizes one allocation run over a sale
type AllocationResult struct {
	SaleID  uuid.UUID        `json:"sale_id"`
	Created int              `json:"created"`
	Skipped int              `json:"skipped"`
	Records []RecordResponse `json:"records"`
}

// BackfillResult summarizes a reconciliation sweep over a date range
type BackfillResult struct {
	SalesProcessed int `json:"sales_processed"`
	RecordsCreated int `json:"records_created"`
	RecordsSkipped int `json:"records_skipped"`
	SalesFailed    int `json:"sales_failed"`
}

// =============================================================================
// Admin configuration DTOs
// =============================================================================

// UpsertAdminConfigRequest sets the global admin commission percentage
type UpsertAdminConfigRequest struct {
	AdminID uuid.UUID       `json:"admin_id" binding:"required"`
	Percent decimal.Decimal `json:"percent" binding:"required"`
}

// AdminConfigResponse represents the admin commission configuration
type AdminConfigResponse struct {
	ID       uuid.UUID       `json:"id"`
	AdminID  uuid.UUID       `json:"admin_id"`
	Percent  decimal.Decimal `json:"percent"`
	IsActive bool            `json:"is_active"`
}

// ToAdminConfigResponse converts the configuration to a response DTO
func ToAdminConfigResponse(config *commission.AdminConfig) AdminConfigResponse {
	return AdminConfigResponse{
		ID:       config.ID,
		AdminID:  config.AdminID,
		Percent:  config.Percent,
		IsActive: config.IsActive,
	}
}

// =============================================================================
// Payout DTOs
// =============================================================================

// CreateBatchRequest opens a payout batch for a beneficiary and period
type CreateBatchRequest struct {
	BeneficiaryType string    `json:"beneficiary_type" binding:"required,oneof=VENDOR MANAGER ADMIN"`
	BeneficiaryID   uuid.UUID `json:"beneficiary_id" binding:"required"`
	PeriodStart     time.Time `json:"period_start" binding:"required"`
	PeriodEnd       time.Time `json:"period_end" binding:"required"`
}

// BatchResponse represents a payment batch
type BatchResponse struct {
	ID              uuid.UUID       `json:"id"`
	BeneficiaryType string          `json:"beneficiary_type"`
	BeneficiaryID   uuid.UUID       `json:"beneficiary_id"`
	PeriodStart     time.Time       `json:"period_start"`
	PeriodEnd       time.Time       `json:"period_end"`
	TotalAmount     decimal.Decimal `json:"total_amount"`
	RecordCount     int             `json:"record_count"`
	Status          string          `json:"status"`
	SettledAt       *time.Time      `json:"settled_at,omitempty"`
}

// ToBatchResponse converts a payment batch to a response DTO
func ToBatchResponse(batch *commission.PaymentBatch) BatchResponse {
	return BatchResponse{
		ID:              batch.ID,
		BeneficiaryType: string(batch.BeneficiaryType),
		BeneficiaryID:   batch.BeneficiaryID,
		PeriodStart:     batch.PeriodStart,
		PeriodEnd:       batch.PeriodEnd,
		TotalAmount:     batch.TotalAmount.Amount(),
		RecordCount:     batch.RecordCount,
		Status:          string(batch.Status),
		SettledAt:       batch.SettledAt,
	}
}
