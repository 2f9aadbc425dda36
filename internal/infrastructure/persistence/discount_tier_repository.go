package persistence

import (
	"context"
	"errors"

	"github.com/editora/backend/internal/domain/pricing"
	"github.com/editora/backend/internal/domain/shared"
	"github.com/editora/backend/internal/infrastructure/persistence/models"
	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// GormDiscountTierRepository implements DiscountTierRepository using GORM
type GormDiscountTierRepository struct {
	db *gorm.DB
}

// NewGormDiscountTierRepository creates a new GormDiscountTierRepository
func NewGormDiscountTierRepository(db *gorm.DB) *GormDiscountTierRepository {
	return &GormDiscountTierRepository{db: db}
}

// FindByID finds a tier by its ID
func (r *GormDiscountTierRepository) FindByID(ctx context.Context, id uuid.UUID) (*pricing.DiscountTierRecord, error) {
	var model models.DiscountTierModel
	if err := r.db.WithContext(ctx).
		First(&model, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindByCode finds a tier by its code within a tenant
func (r *GormDiscountTierRepository) FindByCode(ctx context.Context, tenantID uuid.UUID, code string) (*pricing.DiscountTierRecord, error) {
	var model models.DiscountTierModel
	if err := r.db.WithContext(ctx).
		Where("tenant_id = ? AND code = ?", tenantID, code).
		First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindAllForTenant finds all tiers for a tenant, sorted by threshold
func (r *GormDiscountTierRepository) FindAllForTenant(ctx context.Context, tenantID uuid.UUID) ([]*pricing.DiscountTierRecord, error) {
	var tierModels []models.DiscountTierModel
	if err := r.db.WithContext(ctx).
		Where("tenant_id = ?", tenantID).
		Order("threshold ASC").
		Find(&tierModels).Error; err != nil {
		return nil, err
	}
	return toDomainTiers(tierModels), nil
}

// FindActiveForTenant finds all active tiers for a tenant, sorted by threshold
func (r *GormDiscountTierRepository) FindActiveForTenant(ctx context.Context, tenantID uuid.UUID) ([]*pricing.DiscountTierRecord, error) {
	var tierModels []models.DiscountTierModel
	if err := r.db.WithContext(ctx).
		Where("tenant_id = ? AND is_active = ?", tenantID, true).
		Order("threshold ASC").
		Find(&tierModels).Error; err != nil {
		return nil, err
	}
	return toDomainTiers(tierModels), nil
}

// Save creates or updates a tier
func (r *GormDiscountTierRepository) Save(ctx context.Context, record *pricing.DiscountTierRecord) error {
	model := models.DiscountTierModelFromDomain(record)
	return r.db.WithContext(ctx).Save(model).Error
}

// DeleteForTenant deletes a tier within a tenant
func (r *GormDiscountTierRepository) DeleteForTenant(ctx context.Context, tenantID, id uuid.UUID) error {
	result := r.db.WithContext(ctx).
		Where("tenant_id = ? AND id = ?", tenantID, id).
		Delete(&models.DiscountTierModel{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrNotFound
	}
	return nil
}

// InitializeDefaultTiers creates the default tier ladder for a new
// tenant. Existing codes are left untouched, so the call is safe to
// repeat during tenant provisioning.
func (r *GormDiscountTierRepository) InitializeDefaultTiers(ctx context.Context, tenantID uuid.UUID) error {
	records := pricing.DefaultDiscountTierRecords(tenantID)
	tierModels := make([]models.DiscountTierModel, len(records))
	for i, record := range records {
		tierModels[i] = *models.DiscountTierModelFromDomain(record)
	}
	return r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "tenant_id"}, {Name: "code"}},
			DoNothing: true,
		}).
		Create(&tierModels).Error
}

func toDomainTiers(tierModels []models.DiscountTierModel) []*pricing.DiscountTierRecord {
	records := make([]*pricing.DiscountTierRecord, len(tierModels))
	for i, model := range tierModels {
		records[i] = model.ToDomain()
	}
	return records
}

// Ensure GormDiscountTierRepository implements DiscountTierRepository
var _ pricing.DiscountTierRepository = (*GormDiscountTierRepository)(nil)
