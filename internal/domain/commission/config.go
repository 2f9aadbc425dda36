package commission

import (
	"time"

	"github.com/editora/backend/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// AdminConfig is the single global (per tenant) admin commission
// percentage applied to every confirmed sale installment, independent of
// the vendor/manager hierarchy.
type AdminConfig struct {
	ID        uuid.UUID
	TenantID  uuid.UUID
	AdminID   uuid.UUID // beneficiary identity for the admin share
	Percent   decimal.Decimal
	IsActive  bool
	CreatedAt time.Time
	UpdatedAt time.Time
}

// NewAdminConfig creates an active admin commission configuration
func NewAdminConfig(tenantID, adminID uuid.UUID, percent decimal.Decimal) (*AdminConfig, error) {
	if adminID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_ADMIN", "Admin ID cannot be empty")
	}
	if percent.LessThanOrEqual(decimal.Zero) || percent.GreaterThan(hundred) {
		return nil, shared.NewDomainError("INVALID_PERCENT", "Admin commission percent must be between 0 and 100")
	}
	now := time.Now()
	return &AdminConfig{
		ID:        uuid.New(),
		TenantID:  tenantID,
		AdminID:   adminID,
		Percent:   percent,
		IsActive:  true,
		CreatedAt: now,
		UpdatedAt: now,
	}, nil
}

// IsUsable reports whether allocation may rely on this configuration
func (c *AdminConfig) IsUsable() bool {
	return c != nil && c.IsActive && c.Percent.IsPositive() && c.Percent.LessThanOrEqual(hundred)
}

// Deactivate disables the configuration; allocation will fail fast
// until it is activated again.
func (c *AdminConfig) Deactivate() {
	c.IsActive = false
	c.UpdatedAt = time.Now()
}

// UpdatePercent changes the admin percentage
func (c *AdminConfig) UpdatePercent(percent decimal.Decimal) error {
	if percent.LessThanOrEqual(decimal.Zero) || percent.GreaterThan(hundred) {
		return shared.NewDomainError("INVALID_PERCENT", "Admin commission percent must be between 0 and 100")
	}
	c.Percent = percent
	c.UpdatedAt = time.Now()
	return nil
}
