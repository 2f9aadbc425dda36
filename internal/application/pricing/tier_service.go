package pricing

import (
	"context"
	"errors"
	"sort"

	"github.com/editora/backend/internal/domain/pricing"
	"github.com/editora/backend/internal/domain/shared"
	"github.com/google/uuid"
)

// TierService manages the per-tenant reseller tier ladder
type TierService struct {
	tierRepo pricing.DiscountTierRepository
}

// NewTierService creates a new TierService
func NewTierService(tierRepo pricing.DiscountTierRepository) *TierService {
	return &TierService{tierRepo: tierRepo}
}

// List returns all tiers for a tenant, sorted by threshold
func (s *TierService) List(ctx context.Context, tenantID uuid.UUID) ([]TierResponse, error) {
	records, err := s.tierRepo.FindAllForTenant(ctx, tenantID)
	if err != nil {
		return nil, err
	}
	return ToTierResponses(records), nil
}

// Create adds a tier to the tenant's ladder. The new ladder must remain
// strictly ascending in both threshold and percentage.
func (s *TierService) Create(ctx context.Context, tenantID uuid.UUID, req CreateTierRequest) (*TierResponse, error) {
	if _, err := s.tierRepo.FindByCode(ctx, tenantID, req.Code); err == nil {
		return nil, shared.NewDomainError("ALREADY_EXISTS", "Tier with this code already exists")
	} else if !errors.Is(err, shared.ErrNotFound) {
		return nil, err
	}

	tier, err := pricing.NewTier(req.Code, req.Name, req.Threshold, req.Percent)
	if err != nil {
		return nil, err
	}
	record := pricing.NewDiscountTierRecord(tenantID, tier, req.SortOrder)

	if err := s.validateLadderWith(ctx, tenantID, record); err != nil {
		return nil, err
	}

	if err := s.tierRepo.Save(ctx, record); err != nil {
		return nil, err
	}

	response := ToTierResponse(record)
	return &response, nil
}

// Update changes an existing tier
func (s *TierService) Update(ctx context.Context, tenantID, tierID uuid.UUID, req UpdateTierRequest) (*TierResponse, error) {
	record, err := s.tierRepo.FindByID(ctx, tierID)
	if err != nil {
		return nil, err
	}
	if record.TenantID != tenantID {
		return nil, shared.ErrNotFound
	}

	if req.Name != nil {
		record.Name = *req.Name
	}
	if req.Threshold != nil {
		record.Threshold = *req.Threshold
	}
	if req.Percent != nil {
		record.Percent = *req.Percent
	}
	if req.IsActive != nil {
		record.IsActive = *req.IsActive
	}

	// Reject edits that would break the ladder ordering
	if _, err := record.ToTier(); err != nil {
		return nil, err
	}
	if err := s.validateLadderWith(ctx, tenantID, record); err != nil {
		return nil, err
	}

	if err := s.tierRepo.Save(ctx, record); err != nil {
		return nil, err
	}

	response := ToTierResponse(record)
	return &response, nil
}

// Delete removes a tier from the ladder
func (s *TierService) Delete(ctx context.Context, tenantID, tierID uuid.UUID) error {
	return s.tierRepo.DeleteForTenant(ctx, tenantID, tierID)
}

// InitializeDefaults seeds the standard Bronze/Prata/Ouro ladder for a
// new tenant.
func (s *TierService) InitializeDefaults(ctx context.Context, tenantID uuid.UUID) error {
	return s.tierRepo.InitializeDefaultTiers(ctx, tenantID)
}

// validateLadderWith checks that the active ladder including the given
// record still forms a valid strictly-ascending tier table.
func (s *TierService) validateLadderWith(ctx context.Context, tenantID uuid.UUID, record *pricing.DiscountTierRecord) error {
	existing, err := s.tierRepo.FindActiveForTenant(ctx, tenantID)
	if err != nil && !errors.Is(err, shared.ErrNotFound) {
		return err
	}

	merged := make([]*pricing.DiscountTierRecord, 0, len(existing)+1)
	for _, r := range existing {
		if r.ID != record.ID {
			merged = append(merged, r)
		}
	}
	if record.IsActive {
		merged = append(merged, record)
	}
	sort.Slice(merged, func(i, j int) bool {
		return merged[i].Threshold.LessThan(merged[j].Threshold)
	})

	_, err = pricing.TableFromRecords(merged)
	return err
}
