package persistence

import (
	"context"
	"errors"

	"github.com/editora/backend/internal/domain/commission"
	"github.com/editora/backend/internal/domain/shared"
	"github.com/editora/backend/internal/infrastructure/persistence/models"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GormAdminConfigRepository implements AdminConfigRepository using GORM
type GormAdminConfigRepository struct {
	db *gorm.DB
}

// NewGormAdminConfigRepository creates a new GormAdminConfigRepository
func NewGormAdminConfigRepository(db *gorm.DB) *GormAdminConfigRepository {
	return &GormAdminConfigRepository{db: db}
}

// FindActiveForTenant returns the tenant's active admin configuration
func (r *GormAdminConfigRepository) FindActiveForTenant(ctx context.Context, tenantID uuid.UUID) (*commission.AdminConfig, error) {
	var model models.CommissionConfigModel
	if err := r.db.WithContext(ctx).
		Where("tenant_id = ? AND is_active = ?", tenantID, true).
		Order("updated_at DESC").
		First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// Save creates or updates the configuration. Saving an active config
// deactivates any other active config for the tenant so only one row
// drives allocation at a time.
func (r *GormAdminConfigRepository) Save(ctx context.Context, config *commission.AdminConfig) error {
	model := models.CommissionConfigModelFromDomain(config)
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if config.IsActive {
			if err := tx.Model(&models.CommissionConfigModel{}).
				Where("tenant_id = ? AND id <> ? AND is_active = ?", config.TenantID, config.ID, true).
				Update("is_active", false).Error; err != nil {
				return err
			}
		}
		return tx.Save(model).Error
	})
}

// Ensure GormAdminConfigRepository implements AdminConfigRepository
var _ commission.AdminConfigRepository = (*GormAdminConfigRepository)(nil)
