package commission

import (
	"time"

	"github.com/editora/backend/internal/domain/shared"
	"github.com/editora/backend/internal/domain/shared/valueobject"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Event types for the commission domain
const (
	EventTypeRecordAllocated     = "commission.record.allocated"
	EventTypeRecordReleased      = "commission.record.released"
	EventTypePaymentBatchSettled = "commission.payment_batch.settled"
)

// RecordAllocatedEvent is published when a commission record is created
// for a sale installment.
type RecordAllocatedEvent struct {
	shared.BaseDomainEvent
	BeneficiaryType BeneficiaryType `json:"beneficiary_type"`
	BeneficiaryID   uuid.UUID       `json:"beneficiary_id"`
	SaleID          uuid.UUID       `json:"sale_id"`
	InstallmentID   uuid.UUID       `json:"installment_id"`
	Amount          decimal.Decimal `json:"amount"`
}

// NewRecordAllocatedEvent creates a new RecordAllocatedEvent
func NewRecordAllocatedEvent(record *Record) *RecordAllocatedEvent {
	return &RecordAllocatedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeRecordAllocated, "CommissionRecord", record.ID, record.TenantID),
		BeneficiaryType: record.BeneficiaryType,
		BeneficiaryID:   record.BeneficiaryID,
		SaleID:          record.SaleID,
		InstallmentID:   record.InstallmentID,
		Amount:          record.Amount,
	}
}

// RecordReleasedEvent is published when a pending record becomes payable
type RecordReleasedEvent struct {
	shared.BaseDomainEvent
	BeneficiaryType BeneficiaryType `json:"beneficiary_type"`
	BeneficiaryID   uuid.UUID       `json:"beneficiary_id"`
	Amount          decimal.Decimal `json:"amount"`
}

// NewRecordReleasedEvent creates a new RecordReleasedEvent
func NewRecordReleasedEvent(record *Record) *RecordReleasedEvent {
	return &RecordReleasedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeRecordReleased, "CommissionRecord", record.ID, record.TenantID),
		BeneficiaryType: record.BeneficiaryType,
		BeneficiaryID:   record.BeneficiaryID,
		Amount:          record.Amount,
	}
}

// PaymentBatchSettledEvent is published when a payment batch is settled
type PaymentBatchSettledEvent struct {
	shared.BaseDomainEvent
	BeneficiaryType BeneficiaryType   `json:"beneficiary_type"`
	BeneficiaryID   uuid.UUID         `json:"beneficiary_id"`
	TotalAmount     valueobject.Money `json:"total_amount"`
	RecordCount     int               `json:"record_count"`
	SettledAt       time.Time         `json:"settled_at"`
}

// NewPaymentBatchSettledEvent creates a new PaymentBatchSettledEvent
func NewPaymentBatchSettledEvent(batch *PaymentBatch, settledAt time.Time) *PaymentBatchSettledEvent {
	return &PaymentBatchSettledEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypePaymentBatchSettled, "PaymentBatch", batch.ID, batch.TenantID),
		BeneficiaryType: batch.BeneficiaryType,
		BeneficiaryID:   batch.BeneficiaryID,
		TotalAmount:     batch.TotalAmount,
		RecordCount:     batch.RecordCount,
		SettledAt:       settledAt,
	}
}
