package persistence

import (
	"context"
	"errors"

	"github.com/editora/backend/internal/domain/partner"
	"github.com/editora/backend/internal/domain/shared"
	"github.com/editora/backend/internal/infrastructure/persistence/models"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GormVendorRepository implements VendorRepository using GORM
type GormVendorRepository struct {
	db *gorm.DB
}

// NewGormVendorRepository creates a new GormVendorRepository
func NewGormVendorRepository(db *gorm.DB) *GormVendorRepository {
	return &GormVendorRepository{db: db}
}

// FindByID finds a vendor by ID within a tenant
func (r *GormVendorRepository) FindByID(ctx context.Context, tenantID, id uuid.UUID) (*partner.Vendor, error) {
	var model models.VendorModel
	if err := r.db.WithContext(ctx).
		Where("tenant_id = ? AND id = ?", tenantID, id).
		First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindManagerOf resolves the direct manager of a vendor.
// Returns shared.ErrNotFound when the vendor has no manager assigned.
func (r *GormVendorRepository) FindManagerOf(ctx context.Context, tenantID, vendorID uuid.UUID) (*partner.Vendor, error) {
	vendor, err := r.FindByID(ctx, tenantID, vendorID)
	if err != nil {
		return nil, err
	}
	if vendor.ManagerID == nil {
		return nil, shared.ErrNotFound
	}
	return r.FindByID(ctx, tenantID, *vendor.ManagerID)
}

// FindAllForTenant lists vendors for a tenant, paginated
func (r *GormVendorRepository) FindAllForTenant(ctx context.Context, tenantID uuid.UUID, page, pageSize int) ([]*partner.Vendor, int64, error) {
	var count int64
	if err := r.db.WithContext(ctx).
		Model(&models.VendorModel{}).
		Where("tenant_id = ?", tenantID).
		Count(&count).Error; err != nil {
		return nil, 0, err
	}

	var vendorModels []models.VendorModel
	if err := r.db.WithContext(ctx).
		Where("tenant_id = ?", tenantID).
		Order("name ASC").
		Offset((page - 1) * pageSize).
		Limit(pageSize).
		Find(&vendorModels).Error; err != nil {
		return nil, 0, err
	}

	vendors := make([]*partner.Vendor, len(vendorModels))
	for i, model := range vendorModels {
		vendors[i] = model.ToDomain()
	}
	return vendors, count, nil
}

// Save creates or updates a vendor
func (r *GormVendorRepository) Save(ctx context.Context, vendor *partner.Vendor) error {
	model := models.VendorModelFromDomain(vendor)
	return r.db.WithContext(ctx).Save(model).Error
}

// Ensure GormVendorRepository implements VendorRepository
var _ partner.VendorRepository = (*GormVendorRepository)(nil)
