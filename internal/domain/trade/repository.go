package trade

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// SaleRepository defines the interface for sale persistence
type SaleRepository interface {
	// FindByID finds a sale with its installments by ID within a tenant
	FindByID(ctx context.Context, tenantID, id uuid.UUID) (*Sale, error)

	// FindBySaleNumber finds a sale by its business number within a tenant
	FindBySaleNumber(ctx context.Context, tenantID uuid.UUID, saleNumber string) (*Sale, error)

	// FindConfirmedInRange lists confirmed sales whose confirmation time
	// falls inside [from, to). Used by the reconciliation backfill sweep.
	FindConfirmedInRange(ctx context.Context, tenantID uuid.UUID, from, to time.Time) ([]*Sale, error)

	// FindAllForTenant lists sales for a tenant
	FindAllForTenant(ctx context.Context, tenantID uuid.UUID, page, pageSize int) ([]*Sale, int64, error)

	// Save creates or updates a sale and its installments
	Save(ctx context.Context, sale *Sale) error
}
