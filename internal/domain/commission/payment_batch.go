package commission

import (
	"time"

	"github.com/editora/backend/internal/domain/shared"
	"github.com/editora/backend/internal/domain/shared/valueobject"
	"github.com/google/uuid"
)

// BatchStatus represents the lifecycle state of a payment batch
type BatchStatus string

const (
	BatchStatusOpen    BatchStatus = "OPEN"
	BatchStatusSettled BatchStatus = "SETTLED"
)

// PaymentBatch groups released commission records for one beneficiary
// into a single payout. Settling the batch marks every attached record
// as paid.
type PaymentBatch struct {
	shared.TenantAggregateRoot
	BeneficiaryType BeneficiaryType
	BeneficiaryID   uuid.UUID
	PeriodStart     time.Time
	PeriodEnd       time.Time
	TotalAmount     valueobject.Money
	RecordCount     int
	Status          BatchStatus
	SettledAt       *time.Time
}

// NewPaymentBatch opens an empty payment batch for a beneficiary and period
func NewPaymentBatch(
	tenantID uuid.UUID,
	beneficiaryType BeneficiaryType,
	beneficiaryID uuid.UUID,
	periodStart, periodEnd time.Time,
) (*PaymentBatch, error) {
	if !beneficiaryType.IsValid() {
		return nil, shared.NewDomainError("INVALID_BENEFICIARY", "Unknown beneficiary type")
	}
	if beneficiaryID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_BENEFICIARY", "Beneficiary ID cannot be empty")
	}
	if !periodEnd.After(periodStart) {
		return nil, shared.NewDomainError("INVALID_PERIOD", "Period end must be after period start")
	}
	return &PaymentBatch{
		TenantAggregateRoot: shared.NewTenantAggregateRoot(tenantID),
		BeneficiaryType:     beneficiaryType,
		BeneficiaryID:       beneficiaryID,
		PeriodStart:         periodStart,
		PeriodEnd:           periodEnd,
		TotalAmount:         valueobject.ZeroBRL(),
		Status:              BatchStatusOpen,
	}, nil
}

// Attach adds a released record to an open batch and accumulates its amount
func (b *PaymentBatch) Attach(record *Record) error {
	if b.Status != BatchStatusOpen {
		return shared.ErrInvalidState
	}
	if record.BeneficiaryType != b.BeneficiaryType || record.BeneficiaryID != b.BeneficiaryID {
		return shared.NewDomainError("BENEFICIARY_MISMATCH", "Record belongs to a different beneficiary")
	}
	if err := record.AssignToBatch(b.ID); err != nil {
		return err
	}
	b.TotalAmount = b.TotalAmount.MustAdd(valueobject.NewMoneyBRL(record.Amount))
	b.RecordCount++
	b.UpdatedAt = time.Now()
	return nil
}

// Settle closes the batch. The caller is responsible for marking the
// attached records as paid in the same transaction.
func (b *PaymentBatch) Settle(at time.Time) error {
	if b.Status != BatchStatusOpen {
		return shared.ErrInvalidState
	}
	if b.RecordCount == 0 {
		return shared.NewDomainError("EMPTY_BATCH", "Cannot settle a batch with no records")
	}
	b.Status = BatchStatusSettled
	b.SettledAt = &at
	b.UpdatedAt = time.Now()
	b.AddDomainEvent(NewPaymentBatchSettledEvent(b, at))
	return nil
}
