package models

import (
	"time"

	"github.com/editora/backend/internal/domain/partner"
	"github.com/editora/backend/internal/domain/shared/valueobject"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// CustomerModel is the persistence model for the Customer domain entity.
type CustomerModel struct {
	TenantAggregateModel
	Name                   string                     `gorm:"type:varchar(200);not null"`
	Email                  string                     `gorm:"type:varchar(200);index"`
	Phone                  string                     `gorm:"type:varchar(50)"`
	CNPJ                   valueobject.CNPJ           `gorm:"type:varchar(14)"`
	CPF                    valueobject.CPF            `gorm:"type:varchar(11)"`
	Channel                partner.Channel            `gorm:"type:varchar(20);not null;default:'DIRECT'"`
	VendorID               *uuid.UUID                 `gorm:"type:uuid;index"`
	SpecialDiscountPercent decimal.Decimal            `gorm:"type:decimal(5,2);not null;default:0"`
	B2BBracketPercent      decimal.Decimal            `gorm:"type:decimal(5,2);not null;default:0"`
	PromotionalEligible    bool                       `gorm:"not null;default:false"`
	CategoryRates          map[string]decimal.Decimal `gorm:"type:jsonb;serializer:json"`
	CumulativeSpend        decimal.Decimal            `gorm:"type:decimal(18,2);not null;default:0"`
	IsActive               bool                       `gorm:"not null;default:true"`
	LastPurchaseAt         *time.Time
}

// TableName returns the table name for GORM
func (CustomerModel) TableName() string {
	return "customers"
}

// ToDomain converts the persistence model to a domain Customer entity.
func (m *CustomerModel) ToDomain() *partner.Customer {
	return &partner.Customer{
		TenantAggregateRoot:    m.tenantAggregateRoot(),
		Name:                   m.Name,
		Email:                  m.Email,
		Phone:                  m.Phone,
		CNPJ:                   m.CNPJ,
		CPF:                    m.CPF,
		Channel:                m.Channel,
		VendorID:               m.VendorID,
		SpecialDiscountPercent: m.SpecialDiscountPercent,
		B2BBracketPercent:      m.B2BBracketPercent,
		PromotionalEligible:    m.PromotionalEligible,
		CategoryRates:          m.CategoryRates,
		CumulativeSpend:        m.CumulativeSpend,
		IsActive:               m.IsActive,
		LastPurchaseAt:         m.LastPurchaseAt,
	}
}

// FromDomain populates the persistence model from a domain Customer entity.
func (m *CustomerModel) FromDomain(c *partner.Customer) {
	m.FromDomainTenantAggregateRoot(c.TenantAggregateRoot)
	m.Name = c.Name
	m.Email = c.Email
	m.Phone = c.Phone
	m.CNPJ = c.CNPJ
	m.CPF = c.CPF
	m.Channel = c.Channel
	m.VendorID = c.VendorID
	m.SpecialDiscountPercent = c.SpecialDiscountPercent
	m.B2BBracketPercent = c.B2BBracketPercent
	m.PromotionalEligible = c.PromotionalEligible
	m.CategoryRates = c.CategoryRates
	m.CumulativeSpend = c.CumulativeSpend
	m.IsActive = c.IsActive
	m.LastPurchaseAt = c.LastPurchaseAt
}

// CustomerModelFromDomain creates a new persistence model from a domain Customer entity.
func CustomerModelFromDomain(c *partner.Customer) *CustomerModel {
	m := &CustomerModel{}
	m.FromDomain(c)
	return m
}

// VendorModel is the persistence model for the Vendor domain entity.
type VendorModel struct {
	TenantAggregateModel
	Name              string             `gorm:"type:varchar(200);not null"`
	Email             string             `gorm:"type:varchar(200);index"`
	CPF               valueobject.CPF    `gorm:"type:varchar(11)"`
	Role              partner.VendorRole `gorm:"type:varchar(20);not null;default:'VENDOR'"`
	ManagerID         *uuid.UUID         `gorm:"type:uuid;index"`
	CommissionPercent decimal.Decimal    `gorm:"type:decimal(5,2);not null;default:0"`
	IsActive          bool               `gorm:"not null;default:true"`
}

// TableName returns the table name for GORM
func (VendorModel) TableName() string {
	return "vendors"
}

// ToDomain converts the persistence model to a domain Vendor entity.
func (m *VendorModel) ToDomain() *partner.Vendor {
	return &partner.Vendor{
		TenantAggregateRoot: m.tenantAggregateRoot(),
		Name:                m.Name,
		Email:               m.Email,
		CPF:                 m.CPF,
		Role:                m.Role,
		ManagerID:           m.ManagerID,
		CommissionPercent:   m.CommissionPercent,
		IsActive:            m.IsActive,
	}
}

// FromDomain populates the persistence model from a domain Vendor entity.
func (m *VendorModel) FromDomain(v *partner.Vendor) {
	m.FromDomainTenantAggregateRoot(v.TenantAggregateRoot)
	m.Name = v.Name
	m.Email = v.Email
	m.CPF = v.CPF
	m.Role = v.Role
	m.ManagerID = v.ManagerID
	m.CommissionPercent = v.CommissionPercent
	m.IsActive = v.IsActive
}

// VendorModelFromDomain creates a new persistence model from a domain Vendor entity.
func VendorModelFromDomain(v *partner.Vendor) *VendorModel {
	m := &VendorModel{}
	m.FromDomain(v)
	return m
}
