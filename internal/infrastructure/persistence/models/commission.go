package models

import (
	"time"

	"github.com/editora/backend/internal/domain/commission"
	"github.com/editora/backend/internal/domain/shared/valueobject"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// CommissionRecordModel is the persistence model for the commission
// Record aggregate root. The unique index over (installment_id,
// beneficiary_type) is what makes allocation idempotent: a second
// insert for the same pair is rejected by the database regardless of
// how many allocator instances race.
type CommissionRecordModel struct {
	TenantAggregateModel
	BeneficiaryType commission.BeneficiaryType `gorm:"type:varchar(20);not null;uniqueIndex:uq_commissions_installment_beneficiary,priority:2"`
	BeneficiaryID   uuid.UUID                  `gorm:"type:uuid;not null;index"`
	VendorID        uuid.UUID                  `gorm:"type:uuid;not null;index"`
	SaleID          uuid.UUID                  `gorm:"type:uuid;not null;index"`
	InstallmentID   uuid.UUID                  `gorm:"type:uuid;not null;uniqueIndex:uq_commissions_installment_beneficiary,priority:1"`
	SaleAmount      decimal.Decimal            `gorm:"type:decimal(18,2);not null"`
	Percent         decimal.Decimal            `gorm:"type:decimal(5,2);not null"`
	Amount          decimal.Decimal            `gorm:"type:decimal(18,2);not null"`
	DueDate         time.Time                  `gorm:"not null;index"`
	Status          commission.Status          `gorm:"type:varchar(20);not null;default:'PENDING';index"`
	BatchID         *uuid.UUID                 `gorm:"type:uuid;index"`
	ReleasedAt      *time.Time
	PaidAt          *time.Time
	CancelledAt     *time.Time
	CancelReason    string `gorm:"type:varchar(500)"`
}

// TableName returns the table name for GORM
func (CommissionRecordModel) TableName() string {
	return "commission_records"
}

// ToDomain converts the persistence model to a domain Record entity.
func (m *CommissionRecordModel) ToDomain() *commission.Record {
	return &commission.Record{
		TenantAggregateRoot: m.tenantAggregateRoot(),
		BeneficiaryType:     m.BeneficiaryType,
		BeneficiaryID:       m.BeneficiaryID,
		VendorID:            m.VendorID,
		SaleID:              m.SaleID,
		InstallmentID:       m.InstallmentID,
		SaleAmount:          m.SaleAmount,
		Percent:             m.Percent,
		Amount:              m.Amount,
		DueDate:             m.DueDate,
		Status:              m.Status,
		BatchID:             m.BatchID,
		ReleasedAt:          m.ReleasedAt,
		PaidAt:              m.PaidAt,
		CancelledAt:         m.CancelledAt,
		CancelReason:        m.CancelReason,
	}
}

// FromDomain populates the persistence model from a domain Record entity.
func (m *CommissionRecordModel) FromDomain(r *commission.Record) {
	m.FromDomainTenantAggregateRoot(r.TenantAggregateRoot)
	m.BeneficiaryType = r.BeneficiaryType
	m.BeneficiaryID = r.BeneficiaryID
	m.VendorID = r.VendorID
	m.SaleID = r.SaleID
	m.InstallmentID = r.InstallmentID
	m.SaleAmount = r.SaleAmount
	m.Percent = r.Percent
	m.Amount = r.Amount
	m.DueDate = r.DueDate
	m.Status = r.Status
	m.BatchID = r.BatchID
	m.ReleasedAt = r.ReleasedAt
	m.PaidAt = r.PaidAt
	m.CancelledAt = r.CancelledAt
	m.CancelReason = r.CancelReason
}

// CommissionRecordModelFromDomain creates a new persistence model from a domain Record entity.
func CommissionRecordModelFromDomain(r *commission.Record) *CommissionRecordModel {
	m := &CommissionRecordModel{}
	m.FromDomain(r)
	return m
}

// CommissionConfigModel is the persistence model for the admin
// commission configuration. One active row per tenant.
type CommissionConfigModel struct {
	ID        uuid.UUID       `gorm:"type:uuid;primary_key"`
	TenantID  uuid.UUID       `gorm:"type:uuid;not null;index"`
	AdminID   uuid.UUID       `gorm:"type:uuid;not null"`
	Percent   decimal.Decimal `gorm:"type:decimal(5,2);not null"`
	IsActive  bool            `gorm:"not null;default:true;index"`
	CreatedAt time.Time       `gorm:"not null"`
	UpdatedAt time.Time       `gorm:"not null"`
}

// TableName returns the table name for GORM
func (CommissionConfigModel) TableName() string {
	return "commission_configs"
}

// ToDomain converts the persistence model to a domain AdminConfig.
func (m *CommissionConfigModel) ToDomain() *commission.AdminConfig {
	return &commission.AdminConfig{
		ID:        m.ID,
		TenantID:  m.TenantID,
		AdminID:   m.AdminID,
		Percent:   m.Percent,
		IsActive:  m.IsActive,
		CreatedAt: m.CreatedAt,
		UpdatedAt: m.UpdatedAt,
	}
}

// FromDomain populates the persistence model from a domain AdminConfig.
func (m *CommissionConfigModel) FromDomain(c *commission.AdminConfig) {
	m.ID = c.ID
	m.TenantID = c.TenantID
	m.AdminID = c.AdminID
	m.Percent = c.Percent
	m.IsActive = c.IsActive
	m.CreatedAt = c.CreatedAt
	m.UpdatedAt = c.UpdatedAt
}

// CommissionConfigModelFromDomain creates a new persistence model from a domain AdminConfig.
func CommissionConfigModelFromDomain(c *commission.AdminConfig) *CommissionConfigModel {
	m := &CommissionConfigModel{}
	m.FromDomain(c)
	return m
}

// PaymentBatchModel is the persistence model for the PaymentBatch aggregate root.
type PaymentBatchModel struct {
	TenantAggregateModel
	BeneficiaryType commission.BeneficiaryType `gorm:"type:varchar(20);not null;index"`
	BeneficiaryID   uuid.UUID                  `gorm:"type:uuid;not null;index"`
	PeriodStart     time.Time                  `gorm:"not null"`
	PeriodEnd       time.Time                  `gorm:"not null"`
	TotalAmount     decimal.Decimal            `gorm:"type:decimal(18,2);not null;default:0"`
	RecordCount     int                        `gorm:"not null;default:0"`
	Status          commission.BatchStatus     `gorm:"type:varchar(20);not null;default:'OPEN'"`
	SettledAt       *time.Time
}

// TableName returns the table name for GORM
func (PaymentBatchModel) TableName() string {
	return "commission_payment_batches"
}

// ToDomain converts the persistence model to a domain PaymentBatch entity.
func (m *PaymentBatchModel) ToDomain() *commission.PaymentBatch {
	return &commission.PaymentBatch{
		TenantAggregateRoot: m.tenantAggregateRoot(),
		BeneficiaryType:     m.BeneficiaryType,
		BeneficiaryID:       m.BeneficiaryID,
		PeriodStart:         m.PeriodStart,
		PeriodEnd:           m.PeriodEnd,
		TotalAmount:         valueobject.NewMoneyBRL(m.TotalAmount),
		RecordCount:         m.RecordCount,
		Status:              m.Status,
		SettledAt:           m.SettledAt,
	}
}

// FromDomain populates the persistence model from a domain PaymentBatch entity.
func (m *PaymentBatchModel) FromDomain(b *commission.PaymentBatch) {
	m.FromDomainTenantAggregateRoot(b.TenantAggregateRoot)
	m.BeneficiaryType = b.BeneficiaryType
	m.BeneficiaryID = b.BeneficiaryID
	m.PeriodStart = b.PeriodStart
	m.PeriodEnd = b.PeriodEnd
	m.TotalAmount = b.TotalAmount.Amount()
	m.RecordCount = b.RecordCount
	m.Status = b.Status
	m.SettledAt = b.SettledAt
}

// PaymentBatchModelFromDomain creates a new persistence model from a domain PaymentBatch entity.
func PaymentBatchModelFromDomain(b *commission.PaymentBatch) *PaymentBatchModel {
	m := &PaymentBatchModel{}
	m.FromDomain(b)
	return m
}
