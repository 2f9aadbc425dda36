package commission

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// RecordRepository defines the interface for commission record persistence
type RecordRepository interface {
	// CreateIfAbsent inserts the record unless one already exists for the
	// same (installment, beneficiary type). It returns false without an
	// error when the row was already there, so allocation retries and
	// concurrent callbacks are harmless.
	CreateIfAbsent(ctx context.Context, record *Record) (bool, error)

	// FindByID finds a record by ID within a tenant
	FindByID(ctx context.Context, tenantID, id uuid.UUID) (*Record, error)

	// FindByInstallment lists all records allocated for one installment
	FindByInstallment(ctx context.Context, tenantID, installmentID uuid.UUID) ([]*Record, error)

	// FindBySale lists all records allocated for a sale's installments
	FindBySale(ctx context.Context, tenantID, saleID uuid.UUID) ([]*Record, error)

	// FindPendingDueBefore lists pending records whose due date passed the
	// cutoff. The release sweep promotes them to RELEASED.
	FindPendingDueBefore(ctx context.Context, tenantID uuid.UUID, cutoff time.Time) ([]*Record, error)

	// FindReleasedForBeneficiary lists released, unbatched records for a
	// beneficiary inside a payout period.
	FindReleasedForBeneficiary(ctx context.Context, tenantID uuid.UUID, beneficiaryType BeneficiaryType, beneficiaryID uuid.UUID, from, to time.Time) ([]*Record, error)

	// FindByBatch lists all records attached to a payment batch
	FindByBatch(ctx context.Context, tenantID, batchID uuid.UUID) ([]*Record, error)

	// FindForBeneficiary lists a beneficiary's records, newest first
	FindForBeneficiary(ctx context.Context, tenantID uuid.UUID, beneficiaryType BeneficiaryType, beneficiaryID uuid.UUID, page, pageSize int) ([]*Record, int64, error)

	// Save updates an existing record (status transitions, batch assignment)
	Save(ctx context.Context, record *Record) error
}

// AdminConfigRepository defines the interface for admin commission
// configuration persistence.
type AdminConfigRepository interface {
	// FindActiveForTenant returns the tenant's active admin configuration,
	// or shared.ErrNotFound when none exists.
	FindActiveForTenant(ctx context.Context, tenantID uuid.UUID) (*AdminConfig, error)

	// Save creates or updates the configuration
	Save(ctx context.Context, config *AdminConfig) error
}

// PaymentBatchRepository defines the interface for payment batch persistence
type PaymentBatchRepository interface {
	// FindByID finds a batch by ID within a tenant
	FindByID(ctx context.Context, tenantID, id uuid.UUID) (*PaymentBatch, error)

	// FindForBeneficiary lists a beneficiary's batches, newest first
	FindForBeneficiary(ctx context.Context, tenantID uuid.UUID, beneficiaryType BeneficiaryType, beneficiaryID uuid.UUID, page, pageSize int) ([]*PaymentBatch, int64, error)

	// Save creates or updates a batch
	Save(ctx context.Context, batch *PaymentBatch) error
}
