package commission

import (
	"time"

	"github.com/editora/backend/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// BeneficiaryType identifies who earns a commission record
type BeneficiaryType string

const (
	BeneficiaryVendor  BeneficiaryType = "VENDOR"
	BeneficiaryManager BeneficiaryType = "MANAGER"
	BeneficiaryAdmin   BeneficiaryType = "ADMIN"
)

// IsValid checks if the type is a known BeneficiaryType
func (b BeneficiaryType) IsValid() bool {
	switch b {
	case BeneficiaryVendor, BeneficiaryManager, BeneficiaryAdmin:
		return true
	}
	return false
}

// Status represents the lifecycle state of a commission record.
// Records are never deleted; cancellation is a terminal status.
type Status string

const (
	StatusPending   Status = "PENDING"
	StatusReleased  Status = "RELEASED"
	StatusPaid      Status = "PAID"
	StatusCancelled Status = "CANCELLED"
)

// IsValid checks if the status is a valid Status
func (s Status) IsValid() bool {
	switch s {
	case StatusPending, StatusReleased, StatusPaid, StatusCancelled:
		return true
	}
	return false
}

// CanTransitionTo checks if the status can transition to the target status
func (s Status) CanTransitionTo(target Status) bool {
	switch s {
	case StatusPending:
		return target == StatusReleased || target == StatusCancelled
	case StatusReleased:
		return target == StatusPaid || target == StatusCancelled
	case StatusPaid, StatusCancelled:
		return false // Terminal states
	}
	return false
}

var hundred = decimal.NewFromInt(100)

// AmountFor computes the commission owed on a sale amount at the given
// percentage: round(saleAmount * percent / 100, 2), standard
// half-away-from-zero rounding.
func AmountFor(saleAmount, percent decimal.Decimal) decimal.Decimal {
	return saleAmount.Mul(percent).Div(hundred).Round(2)
}

// Record is one commission owed to one beneficiary for one sale
// installment. At most one record may exist per (installment,
// beneficiary type); the persistence layer enforces this with a unique
// index so concurrent allocation attempts cannot double-insert.
type Record struct {
	shared.TenantAggregateRoot
	BeneficiaryType BeneficiaryType
	BeneficiaryID   uuid.UUID
	VendorID        uuid.UUID // originating vendor of the sale
	SaleID          uuid.UUID
	InstallmentID   uuid.UUID
	SaleAmount      decimal.Decimal
	Percent         decimal.Decimal
	Amount          decimal.Decimal
	DueDate         time.Time
	Status          Status
	BatchID         *uuid.UUID
	ReleasedAt      *time.Time
	PaidAt          *time.Time
	CancelledAt     *time.Time
	CancelReason    string
}

// NewRecord creates a pending commission record for an installment
func NewRecord(
	tenantID uuid.UUID,
	beneficiaryType BeneficiaryType,
	beneficiaryID, vendorID, saleID, installmentID uuid.UUID,
	saleAmount, percent decimal.Decimal,
	dueDate time.Time,
) (*Record, error) {
	if !beneficiaryType.IsValid() {
		return nil, shared.NewDomainError("INVALID_BENEFICIARY", "Unknown beneficiary type")
	}
	if beneficiaryID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_BENEFICIARY", "Beneficiary ID cannot be empty")
	}
	if saleID == uuid.Nil || installmentID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_SALE_REF", "Sale and installment references cannot be empty")
	}
	if saleAmount.IsNegative() {
		return nil, shared.NewDomainError("INVALID_AMOUNT", "Sale amount cannot be negative")
	}
	if percent.LessThanOrEqual(decimal.Zero) || percent.GreaterThan(hundred) {
		return nil, shared.NewDomainError("INVALID_PERCENT", "Commission percent must be between 0 and 100")
	}

	record := &Record{
		TenantAggregateRoot: shared.NewTenantAggregateRoot(tenantID),
		BeneficiaryType:     beneficiaryType,
		BeneficiaryID:       beneficiaryID,
		VendorID:            vendorID,
		SaleID:              saleID,
		InstallmentID:       installmentID,
		SaleAmount:          saleAmount,
		Percent:             percent,
		Amount:              AmountFor(saleAmount, percent),
		DueDate:             dueDate,
		Status:              StatusPending,
	}
	record.AddDomainEvent(NewRecordAllocatedEvent(record))
	return record, nil
}

// Release promotes a pending record once the holding period elapsed or
// an admin releases it explicitly.
func (r *Record) Release(at time.Time) error {
	if !r.Status.CanTransitionTo(StatusReleased) {
		return shared.ErrInvalidState
	}
	r.Status = StatusReleased
	r.ReleasedAt = &at
	r.UpdatedAt = time.Now()
	r.AddDomainEvent(NewRecordReleasedEvent(r))
	return nil
}

// AssignToBatch attaches a released record to a payment batch
func (r *Record) AssignToBatch(batchID uuid.UUID) error {
	if r.Status != StatusReleased {
		return shared.ErrInvalidState
	}
	if r.BatchID != nil {
		return shared.NewDomainError("ALREADY_BATCHED", "Record is already assigned to a payment batch")
	}
	if batchID == uuid.Nil {
		return shared.NewDomainError("INVALID_BATCH", "Batch ID cannot be empty")
	}
	r.BatchID = &batchID
	r.UpdatedAt = time.Now()
	return nil
}

// MarkPaid settles a released, batched record
func (r *Record) MarkPaid(at time.Time) error {
	if !r.Status.CanTransitionTo(StatusPaid) {
		return shared.ErrInvalidState
	}
	if r.BatchID == nil {
		return shared.NewDomainError("NOT_BATCHED", "Record must belong to a payment batch before settlement")
	}
	r.Status = StatusPaid
	r.PaidAt = &at
	r.UpdatedAt = time.Now()
	return nil
}

// Cancel voids a record that has not been paid yet.
// Cancellation is a status transition, never a deletion. A record that
// already belongs to a payment batch cannot be cancelled: the batch
// total was accumulated from its amount, so cancelling it underneath
// the batch would overstate the payout at settlement.
func (r *Record) Cancel(reason string) error {
	if !r.Status.CanTransitionTo(StatusCancelled) {
		return shared.ErrInvalidState
	}
	if r.BatchID != nil {
		return shared.NewDomainError("ALREADY_BATCHED", "Cannot cancel a record that belongs to a payment batch")
	}
	now := time.Now()
	r.Status = StatusCancelled
	r.CancelledAt = &now
	r.CancelReason = reason
	r.UpdatedAt = now
	return nil
}
