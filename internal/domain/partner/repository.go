package partner

import (
	"context"

	"github.com/google/uuid"
)

// CustomerRepository defines the interface for customer persistence
type CustomerRepository interface {
	// FindByID finds a customer by ID within a tenant
	FindByID(ctx context.Context, tenantID, id uuid.UUID) (*Customer, error)

	// FindAllForTenant lists customers for a tenant
	FindAllForTenant(ctx context.Context, tenantID uuid.UUID, page, pageSize int) ([]*Customer, int64, error)

	// Save creates or updates a customer
	Save(ctx context.Context, customer *Customer) error
}

// VendorRepository defines the interface for vendor persistence
type VendorRepository interface {
	// FindByID finds a vendor by ID within a tenant
	FindByID(ctx context.Context, tenantID, id uuid.UUID) (*Vendor, error)

	// FindManagerOf resolves the direct manager of a vendor.
	// Returns shared.ErrNotFound when the vendor has no manager.
	FindManagerOf(ctx context.Context, tenantID, vendorID uuid.UUID) (*Vendor, error)

	// FindAllForTenant lists vendors for a tenant
	FindAllForTenant(ctx context.Context, tenantID uuid.UUID, page, pageSize int) ([]*Vendor, int64, error)

	// Save creates or updates a vendor
	Save(ctx context.Context, vendor *Vendor) error
}
