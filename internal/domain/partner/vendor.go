package partner

import (
	"time"

	"github.com/editora/backend/internal/domain/shared"
	"github.com/editora/backend/internal/domain/shared/valueobject"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// VendorRole distinguishes plain vendors from managers in the
// two-level reporting hierarchy (vendor -> manager; admin commission
// configuration lives outside the hierarchy as a global setting).
type VendorRole string

const (
	VendorRoleVendor  VendorRole = "VENDOR"
	VendorRoleManager VendorRole = "MANAGER"
)

// IsValid checks if the role is a known VendorRole
func (r VendorRole) IsValid() bool {
	return r == VendorRoleVendor || r == VendorRoleManager
}

// Vendor represents a salesperson or sales manager.
// A vendor may report to exactly one manager; managers carry the
// commission percentage they earn on their vendors' sales.
type Vendor struct {
	shared.TenantAggregateRoot
	Name              string
	Email             string
	CPF               valueobject.CPF
	Role              VendorRole
	ManagerID         *uuid.UUID
	CommissionPercent decimal.Decimal // earned by a manager on each reporting vendor's sale
	IsActive          bool
}

// NewVendor creates a new vendor
func NewVendor(tenantID uuid.UUID, name string, role VendorRole) (*Vendor, error) {
	if name == "" {
		return nil, shared.NewDomainError("INVALID_NAME", "Vendor name cannot be empty")
	}
	if !role.IsValid() {
		return nil, shared.NewDomainError("INVALID_ROLE", "Unknown vendor role")
	}
	return &Vendor{
		TenantAggregateRoot: shared.NewTenantAggregateRoot(tenantID),
		Name:                name,
		Role:                role,
		CommissionPercent:   decimal.Zero,
		IsActive:            true,
	}, nil
}

// IsManager returns true for manager-role vendors
func (v *Vendor) IsManager() bool {
	return v.Role == VendorRoleManager
}

// AssignManager points this vendor at its direct manager.
// Managers themselves report to no one; the admin share is a global
// configuration, not a node in the hierarchy.
func (v *Vendor) AssignManager(managerID uuid.UUID) error {
	if v.IsManager() {
		return shared.NewDomainError("INVALID_HIERARCHY", "A manager cannot report to another manager")
	}
	if managerID == uuid.Nil {
		return shared.NewDomainError("INVALID_MANAGER", "Manager ID cannot be empty")
	}
	if managerID == v.ID {
		return shared.NewDomainError("INVALID_HIERARCHY", "A vendor cannot be their own manager")
	}
	v.ManagerID = &managerID
	v.UpdatedAt = time.Now()
	return nil
}

// RemoveManager detaches the vendor from its manager
func (v *Vendor) RemoveManager() {
	v.ManagerID = nil
	v.UpdatedAt = time.Now()
}

// SetCommissionPercent sets the percentage a manager earns on each sale
// closed by a vendor reporting to them
func (v *Vendor) SetCommissionPercent(percent decimal.Decimal) error {
	if percent.IsNegative() || percent.GreaterThan(maxPercent) {
		return shared.NewDomainError("INVALID_PERCENT", "Commission percent must be between 0 and 100")
	}
	v.CommissionPercent = percent
	v.UpdatedAt = time.Now()
	return nil
}

// SetCPF sets the vendor's registry document
func (v *Vendor) SetCPF(cpf valueobject.CPF) {
	v.CPF = cpf
	v.UpdatedAt = time.Now()
}

// Deactivate disables the vendor without deleting it
func (v *Vendor) Deactivate() {
	v.IsActive = false
	v.UpdatedAt = time.Now()
}
