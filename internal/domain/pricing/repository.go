package pricing

import (
	"context"

	"github.com/google/uuid"
)

// DiscountTierRepository defines the interface for discount tier persistence
type DiscountTierRepository interface {
	// FindByID finds a tier by its ID
	FindByID(ctx context.Context, id uuid.UUID) (*DiscountTierRecord, error)

	// FindByCode finds a tier by its code within a tenant
	FindByCode(ctx context.Context, tenantID uuid.UUID, code string) (*DiscountTierRecord, error)

	// FindAllForTenant finds all tiers for a tenant (sorted by threshold)
	FindAllForTenant(ctx context.Context, tenantID uuid.UUID) ([]*DiscountTierRecord, error)

	// FindActiveForTenant finds all active tiers for a tenant (sorted by threshold)
	FindActiveForTenant(ctx context.Context, tenantID uuid.UUID) ([]*DiscountTierRecord, error)

	// Save creates or updates a tier
	Save(ctx context.Context, record *DiscountTierRecord) error

	// DeleteForTenant deletes a tier within a tenant
	DeleteForTenant(ctx context.Context, tenantID, id uuid.UUID) error

	// InitializeDefaultTiers creates the default tier ladder for a new tenant
	InitializeDefaultTiers(ctx context.Context, tenantID uuid.UUID) error
}
