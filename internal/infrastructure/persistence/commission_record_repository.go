package persistence

import (
	"context"
	"errors"
	"time"

	"github.com/editora/backend/internal/domain/commission"
	"github.com/editora/backend/internal/domain/shared"
	"github.com/editora/backend/internal/infrastructure/persistence/models"
	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// GormCommissionRecordRepository implements RecordRepository using GORM
type GormCommissionRecordRepository struct {
	db *gorm.DB
}

// NewGormCommissionRecordRepository creates a new GormCommissionRecordRepository
func NewGormCommissionRecordRepository(db *gorm.DB) *GormCommissionRecordRepository {
	return &GormCommissionRecordRepository{db: db}
}

// CreateIfAbsent inserts the record unless one already exists for the
// same (installment, beneficiary type). The unique index on those two
// columns makes the insert race-safe; ON CONFLICT DO NOTHING turns the
// duplicate into a no-op instead of an error.
func (r *GormCommissionRecordRepository) CreateIfAbsent(ctx context.Context, record *commission.Record) (bool, error) {
	model := models.CommissionRecordModelFromDomain(record)
	result := r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "installment_id"}, {Name: "beneficiary_type"}},
			DoNothing: true,
		}).
		Create(model)
	if result.Error != nil {
		return false, result.Error
	}
	return result.RowsAffected == 1, nil
}

// FindByID finds a record by ID within a tenant
func (r *GormCommissionRecordRepository) FindByID(ctx context.Context, tenantID, id uuid.UUID) (*commission.Record, error) {
	var model models.CommissionRecordModel
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

// FindByInstallment lists all records allocated for one installment
func (r *GormCommissionRecordRepository) FindByInstallment(ctx context.Context, tenantID, installmentID uuid.UUID) ([]*commission.Record, error) {
	var recordModels []models.CommissionRecordModel
	if err := r.db.WithContext(ctx).
		Where("tenant_id = ? AND installment_id = ?", tenantID, installmentID).
		Order("beneficiary_type ASC").
		Find(&recordModels).Error; err != nil {
		return nil, err
	}
	return toDomainRecords(recordModels), nil
}

// FindBySale lists all records allocated for a sale's installments
func (r *GormCommissionRecordRepository) FindBySale(ctx context.Context, tenantID, saleID uuid.UUID) ([]*commission.Record, error) {
	var recordModels []models.CommissionRecordModel
	if err := r.db.WithContext(ctx).
		Where("tenant_id = ? AND sale_id = ?", tenantID, saleID).
		Order("due_date ASC, beneficiary_type ASC").
		Find(&recordModels).Error; err != nil {
		return nil, err
	}
	return toDomainRecords(recordModels), nil
}

// FindPendingDueBefore lists pending records whose due date passed the cutoff
func (r *GormCommissionRecordRepository) FindPendingDueBefore(ctx context.Context, tenantID uuid.UUID, cutoff time.Time) ([]*commission.Record, error) {
	var recordModels []models.CommissionRecordModel
	if err := r.db.WithContext(ctx).
		Where("tenant_id = ? AND status = ? AND due_date <= ?",
			tenantID, commission.StatusPending, cutoff).
		Order("due_date ASC").
		Find(&recordModels).Error; err != nil {
		return nil, err
	}
	return toDomainRecords(recordModels), nil
}

// FindReleasedForBeneficiary lists released, unbatched records for a
// beneficiary inside a payout period.
func (r *GormCommissionRecordRepository) FindReleasedForBeneficiary(ctx context.Context, tenantID uuid.UUID, beneficiaryType commission.BeneficiaryType, beneficiaryID uuid.UUID, from, to time.Time) ([]*commission.Record, error) {
	var recordModels []models.CommissionRecordModel
	if err := r.db.WithContext(ctx).
		Where("tenant_id = ? AND beneficiary_type = ? AND beneficiary_id = ? AND status = ? AND batch_id IS NULL AND due_date >= ? AND due_date < ?",
			tenantID, beneficiaryType, beneficiaryID, commission.StatusReleased, from, to).
		Order("due_date ASC").
		Find(&recordModels).Error; err != nil {
		return nil, err
	}
	return toDomainRecords(recordModels), nil
}

// FindByBatch lists all records attached to a payment batch
func (r *GormCommissionRecordRepository) FindByBatch(ctx context.Context, tenantID, batchID uuid.UUID) ([]*commission.Record, error) {
	var recordModels []models.CommissionRecordModel
	if err := r.db.WithContext(ctx).
		Where("tenant_id = ? AND batch_id = ?", tenantID, batchID).
		Order("due_date ASC").
		Find(&recordModels).Error; err != nil {
		return nil, err
	}
	return toDomainRecords(recordModels), nil
}

// FindForBeneficiary lists a beneficiary's records, newest first
func (r *GormCommissionRecordRepository) FindForBeneficiary(ctx context.Context, tenantID uuid.UUID, beneficiaryType commission.BeneficiaryType, beneficiaryID uuid.UUID, page, pageSize int) ([]*commission.Record, int64, error) {
	query := r.db.WithContext(ctx).
		Model(&models.CommissionRecordModel{}).
		Where("tenant_id = ? AND beneficiary_type = ? AND beneficiary_id = ?",
			tenantID, beneficiaryType, beneficiaryID)

	var count int64
	if err := query.Count(&count).Error; err != nil {
		return nil, 0, err
	}

	var recordModels []models.CommissionRecordModel
	if err := r.db.WithContext(ctx).
		Where("tenant_id = ? AND beneficiary_type = ? AND beneficiary_id = ?",
			tenantID, beneficiaryType, beneficiaryID).
		Order("created_at DESC").
		Offset((page - 1) * pageSize).
		Limit(pageSize).
		Find(&recordModels).Error; err != nil {
		return nil, 0, err
	}
	return toDomainRecords(recordModels), count, nil
}

// Save updates an existing record
func (r *GormCommissionRecordRepository) Save(ctx context.Context, record *commission.Record) error {
	model := models.CommissionRecordModelFromDomain(record)
	return r.db.WithContext(ctx).Save(model).Error
}

func toDomainRecords(recordModels []models.CommissionRecordModel) []*commission.Record {
	records := make([]*commission.Record, len(recordModels))
	for i, model := range recordModels {
		records[i] = model.ToDomain()
	}
	return records
}

// Ensure GormCommissionRecordRepository implements RecordRepository
var _ commission.RecordRepository = (*GormCommissionRecordRepository)(nil)
