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

// GormPaymentBatchRepository implements PaymentBatchRepository using GORM
type GormPaymentBatchRepository struct {
	db *gorm.DB
}

// NewGormPaymentBatchRepository creates a new GormPaymentBatchRepository
func NewGormPaymentBatchRepository(db *gorm.DB) *GormPaymentBatchRepository {
	return &GormPaymentBatchRepository{db: db}
}

// FindByID finds a batch by ID within a tenant
func (r *GormPaymentBatchRepository) FindByID(ctx context.Context, tenantID, id uuid.UUID) (*commission.PaymentBatch, error) {
	var model models.PaymentBatchModel
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

// FindForBeneficiary lists a beneficiary's batches, newest first
func (r *GormPaymentBatchRepository) FindForBeneficiary(ctx context.Context, tenantID uuid.UUID, beneficiaryType commission.BeneficiaryType, beneficiaryID uuid.UUID, page, pageSize int) ([]*commission.PaymentBatch, int64, error) {
	var count int64
	if err := r.db.WithContext(ctx).
		Model(&models.PaymentBatchModel{}).
		Where("tenant_id = ? AND beneficiary_type = ? AND beneficiary_id = ?",
			tenantID, beneficiaryType, beneficiaryID).
		Count(&count).Error; err != nil {
		return nil, 0, err
	}

	var batchModels []models.PaymentBatchModel
	if err := r.db.WithContext(ctx).
		Where("tenant_id = ? AND beneficiary_type = ? AND beneficiary_id = ?",
			tenantID, beneficiaryType, beneficiaryID).
		Order("created_at DESC").
		Offset((page - 1) * pageSize).
		Limit(pageSize).
		Find(&batchModels).Error; err != nil {
		return nil, 0, err
	}

	batches := make([]*commission.PaymentBatch, len(batchModels))
	for i, model := range batchModels {
		batches[i] = model.ToDomain()
	}
	return batches, count, nil
}

// Save creates or updates a batch
func (r *GormPaymentBatchRepository) Save(ctx context.Context, batch *commission.PaymentBatch) error {
	model := models.PaymentBatchModelFromDomain(batch)
	return r.db.WithContext(ctx).Save(model).Error
}

// Ensure GormPaymentBatchRepository implements PaymentBatchRepository
var _ commission.PaymentBatchRepository = (*GormPaymentBatchRepository)(nil)
