package commission

import (
	"time"

	"github.com/editora/backend/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// AllocationInput carries everything the allocator needs about one sale
// installment. The application layer assembles it from the sale, the
// vendor hierarchy and the admin configuration.
type AllocationInput struct {
	TenantID      uuid.UUID
	SaleID        uuid.UUID
	InstallmentID uuid.UUID
	SaleAmount    decimal.Decimal // installment amount the percentages apply to
	DueDate       time.Time
}

// ManagerShare describes the vendor's manager cut, when the vendor has one
type ManagerShare struct {
	ManagerID uuid.UUID
	Percent   decimal.Decimal
}

// Allocator is the domain service that splits a confirmed sale
// installment into commission records. It is pure: persistence and the
// insert-or-skip idempotency guard live in the repository.
type Allocator struct{}

// NewAllocator creates a commission allocator
func NewAllocator() *Allocator {
	return &Allocator{}
}

// Allocate produces the commission records for one installment: one
// for the vendor's manager when the vendor has one, and always one for
// the admin. A missing or inactive admin configuration aborts the whole
// allocation; no partial set is returned.
func (a *Allocator) Allocate(
	input AllocationInput,
	vendorID uuid.UUID,
	manager *ManagerShare,
	adminConfig *AdminConfig,
) ([]*Record, error) {
	if !adminConfig.IsUsable() {
		return nil, shared.ErrConfigurationMissing
	}

	records := make([]*Record, 0, 2)

	// Vendors without a manager simply yield no manager record
	if manager != nil && manager.Percent.IsPositive() {
		record, err := NewRecord(
			input.TenantID, BeneficiaryManager,
			manager.ManagerID, vendorID, input.SaleID, input.InstallmentID,
			input.SaleAmount, manager.Percent, input.DueDate,
		)
		if err != nil {
			return nil, err
		}
		records = append(records, record)
	}

	adminRecord, err := NewRecord(
		input.TenantID, BeneficiaryAdmin,
		adminConfig.AdminID, vendorID, input.SaleID, input.InstallmentID,
		input.SaleAmount, adminConfig.Percent, input.DueDate,
	)
	if err != nil {
		return nil, err
	}
	records = append(records, adminRecord)

	return records, nil
}
