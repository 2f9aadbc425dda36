package persistence

import (
	"context"
	"errors"
	"time"

	"github.com/editora/backend/internal/domain/shared"
	"github.com/editora/backend/internal/domain/trade"
	"github.com/editora/backend/internal/infrastructure/persistence/models"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GormSaleRepository implements SaleRepository using GORM
type GormSaleRepository struct {
	db *gorm.DB
}

// NewGormSaleRepository creates a new GormSaleRepository
func NewGormSaleRepository(db *gorm.DB) *GormSaleRepository {
	return &GormSaleRepository{db: db}
}

// FindByID finds a sale with its installments by ID within a tenant
func (r *GormSaleRepository) FindByID(ctx context.Context, tenantID, id uuid.UUID) (*trade.Sale, error) {
	var model models.SaleModel
	if err := r.db.WithContext(ctx).
		Preload("Installments", func(db *gorm.DB) *gorm.DB {
			return db.Order("number ASC")
		}).
		Where("tenant_id = ? AND id = ?", tenantID, id).
		First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindBySaleNumber finds a sale by its business number within a tenant
func (r *GormSaleRepository) FindBySaleNumber(ctx context.Context, tenantID uuid.UUID, saleNumber string) (*trade.Sale, error) {
	var model models.SaleModel
	if err := r.db.WithContext(ctx).
		Preload("Installments", func(db *gorm.DB) *gorm.DB {
			return db.Order("number ASC")
		}).
		Where("tenant_id = ? AND sale_number = ?", tenantID, saleNumber).
		First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindConfirmedInRange lists confirmed sales whose confirmation time falls inside [from, to)
func (r *GormSaleRepository) FindConfirmedInRange(ctx context.Context, tenantID uuid.UUID, from, to time.Time) ([]*trade.Sale, error) {
	var saleModels []models.SaleModel
	if err := r.db.WithContext(ctx).
		Preload("Installments", func(db *gorm.DB) *gorm.DB {
			return db.Order("number ASC")
		}).
		Where("tenant_id = ? AND status = ? AND confirmed_at >= ? AND confirmed_at < ?",
			tenantID, trade.SaleStatusConfirmed, from, to).
		Order("confirmed_at ASC").
		Find(&saleModels).Error; err != nil {
		return nil, err
	}

	sales := make([]*trade.Sale, len(saleModels))
	for i, model := range saleModels {
		sales[i] = model.ToDomain()
	}
	return sales, nil
}

// FindAllForTenant lists sales for a tenant, paginated, newest first
func (r *GormSaleRepository) FindAllForTenant(ctx context.Context, tenantID uuid.UUID, page, pageSize int) ([]*trade.Sale, int64, error) {
	var count int64
	if err := r.db.WithContext(ctx).
		Model(&models.SaleModel{}).
		Where("tenant_id = ?", tenantID).
		Count(&count).Error; err != nil {
		return nil, 0, err
	}

	var saleModels []models.SaleModel
	if err := r.db.WithContext(ctx).
		Preload("Installments", func(db *gorm.DB) *gorm.DB {
			return db.Order("number ASC")
		}).
		Where("tenant_id = ?", tenantID).
		Order("created_at DESC").
		Offset((page - 1) * pageSize).
		Limit(pageSize).
		Find(&saleModels).Error; err != nil {
		return nil, 0, err
	}

	sales := make([]*trade.Sale, len(saleModels))
	for i, model := range saleModels {
		sales[i] = model.ToDomain()
	}
	return sales, count, nil
}

// Save creates or updates a sale and its installments
func (r *GormSaleRepository) Save(ctx context.Context, sale *trade.Sale) error {
	model := models.SaleModelFromDomain(sale)
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Omit("Installments").Save(model).Error; err != nil {
			return err
		}

		// Reconcile installments: delete rows dropped from the aggregate,
		// then upsert the current set.
		currentIDs := make([]uuid.UUID, len(model.Installments))
		for i, installment := range model.Installments {
			currentIDs[i] = installment.ID
		}
		if len(currentIDs) > 0 {
			if err := tx.Where("sale_id = ? AND id NOT IN ?", model.ID, currentIDs).
				Delete(&models.InstallmentModel{}).Error; err != nil {
				return err
			}
		} else {
			if err := tx.Where("sale_id = ?", model.ID).
				Delete(&models.InstallmentModel{}).Error; err != nil {
				return err
			}
		}
		for i := range model.Installments {
			if err := tx.Save(&model.Installments[i]).Error; err != nil {
				return err
			}
		}
		return nil
	})
}

// TenantIDs returns the distinct tenants that have sales. Used by the
// periodic backfill sweep, which runs tenant by tenant.
func (r *GormSaleRepository) TenantIDs(ctx context.Context) ([]uuid.UUID, error) {
	var ids []uuid.UUID
	if err := r.db.WithContext(ctx).
		Model(&models.SaleModel{}).
		Distinct("tenant_id").
		Pluck("tenant_id", &ids).Error; err != nil {
		return nil, err
	}
	return ids, nil
}

// Ensure GormSaleRepository implements SaleRepository
var _ trade.SaleRepository = (*GormSaleRepository)(nil)
