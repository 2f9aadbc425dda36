package models

import (
	"time"

	"github.com/editora/backend/internal/domain/pricing"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// DiscountTierModel is the persistence model for a reseller discount tier row.
type DiscountTierModel struct {
	ID        uuid.UUID       `gorm:"type:uuid;primary_key"`
	TenantID  uuid.UUID       `gorm:"type:uuid;not null;index;uniqueIndex:idx_discount_tier_tenant_code,priority:1"`
	Code      string          `gorm:"type:varchar(50);not null;uniqueIndex:idx_discount_tier_tenant_code,priority:2"`
	Name      string          `gorm:"type:varchar(100);not null"`
	Threshold decimal.Decimal `gorm:"type:decimal(18,2);not null"`
	Percent   decimal.Decimal `gorm:"type:decimal(5,2);not null"`
	SortOrder int             `gorm:"not null;default:0"`
	IsActive  bool            `gorm:"not null;default:true"`
	CreatedAt time.Time       `gorm:"not null"`
	UpdatedAt time.Time       `gorm:"not null"`
}

// TableName returns the table name for GORM
func (DiscountTierModel) TableName() string {
	return "discount_tiers"
}

// ToDomain converts the persistence model to a domain DiscountTierRecord.
func (m *DiscountTierModel) ToDomain() *pricing.DiscountTierRecord {
	return &pricing.DiscountTierRecord{
		ID:        m.ID,
		TenantID:  m.TenantID,
		Code:      m.Code,
		Name:      m.Name,
		Threshold: m.Threshold,
		Percent:   m.Percent,
		SortOrder: m.SortOrder,
		IsActive:  m.IsActive,
		CreatedAt: m.CreatedAt,
		UpdatedAt: m.UpdatedAt,
	}
}

// FromDomain populates the persistence model from a domain DiscountTierRecord.
func (m *DiscountTierModel) FromDomain(r *pricing.DiscountTierRecord) {
	m.ID = r.ID
	m.TenantID = r.TenantID
	m.Code = r.Code
	m.Name = r.Name
	m.Threshold = r.Threshold
	m.Percent = r.Percent
	m.SortOrder = r.SortOrder
	m.IsActive = r.IsActive
	m.CreatedAt = r.CreatedAt
	m.UpdatedAt = r.UpdatedAt
}

// DiscountTierModelFromDomain creates a new persistence model from a domain DiscountTierRecord.
func DiscountTierModelFromDomain(r *pricing.DiscountTierRecord) *DiscountTierModel {
	m := &DiscountTierModel{}
	m.FromDomain(r)
	return m
}
