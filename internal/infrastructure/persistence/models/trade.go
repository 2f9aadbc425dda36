package models

import (
	"time"

	"github.com/editora/backend/internal/domain/trade"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// SaleModel is the persistence model for the Sale aggregate root.
type SaleModel struct {
	TenantAggregateModel
	SaleNumber      string              `gorm:"type:varchar(50);not null;uniqueIndex:idx_sale_tenant_number,priority:2"`
	CustomerID      uuid.UUID           `gorm:"type:uuid;not null;index"`
	VendorID        uuid.UUID           `gorm:"type:uuid;not null;index"`
	TotalAmount     decimal.Decimal     `gorm:"type:decimal(18,2);not null;default:0"`
	DiscountType    string              `gorm:"type:varchar(30)"`
	DiscountPercent decimal.Decimal     `gorm:"type:decimal(5,2);not null;default:0"`
	DiscountAmount  decimal.Decimal     `gorm:"type:decimal(18,2);not null;default:0"`
	PayableAmount   decimal.Decimal     `gorm:"type:decimal(18,2);not null;default:0"`
	PaymentMethod   trade.PaymentMethod `gorm:"type:varchar(20)"`
	Status          trade.SaleStatus    `gorm:"type:varchar(20);not null;default:'PENDING'"`
	Installments    []InstallmentModel  `gorm:"foreignKey:SaleID;references:ID"`
	ConfirmedAt     *time.Time          `gorm:"index"`
	CancelledAt     *time.Time
	CancelReason    string `gorm:"type:varchar(500)"`
}

// TableName returns the table name for GORM
func (SaleModel) TableName() string {
	return "sales"
}

// ToDomain converts the persistence model to a domain Sale entity.
func (m *SaleModel) ToDomain() *trade.Sale {
	sale := &trade.Sale{
		TenantAggregateRoot: m.tenantAggregateRoot(),
		SaleNumber:          m.SaleNumber,
		CustomerID:          m.CustomerID,
		VendorID:            m.VendorID,
		TotalAmount:         m.TotalAmount,
		DiscountType:        m.DiscountType,
		DiscountPercent:     m.DiscountPercent,
		DiscountAmount:      m.DiscountAmount,
		PayableAmount:       m.PayableAmount,
		PaymentMethod:       m.PaymentMethod,
		Status:              m.Status,
		ConfirmedAt:         m.ConfirmedAt,
		CancelledAt:         m.CancelledAt,
		CancelReason:        m.CancelReason,
		Installments:        make([]trade.Installment, len(m.Installments)),
	}
	for i, installment := range m.Installments {
		sale.Installments[i] = *installment.ToDomain()
	}
	return sale
}

// FromDomain populates the persistence model from a domain Sale entity.
func (m *SaleModel) FromDomain(s *trade.Sale) {
	m.FromDomainTenantAggregateRoot(s.TenantAggregateRoot)
	m.SaleNumber = s.SaleNumber
	m.CustomerID = s.CustomerID
	m.VendorID = s.VendorID
	m.TotalAmount = s.TotalAmount
	m.DiscountType = s.DiscountType
	m.DiscountPercent = s.DiscountPercent
	m.DiscountAmount = s.DiscountAmount
	m.PayableAmount = s.PayableAmount
	m.PaymentMethod = s.PaymentMethod
	m.Status = s.Status
	m.ConfirmedAt = s.ConfirmedAt
	m.CancelledAt = s.CancelledAt
	m.CancelReason = s.CancelReason
	m.Installments = make([]InstallmentModel, len(s.Installments))
	for i, installment := range s.Installments {
		m.Installments[i] = *InstallmentModelFromDomain(&installment)
	}
}

// SaleModelFromDomain creates a new persistence model from a domain Sale entity.
func SaleModelFromDomain(s *trade.Sale) *SaleModel {
	m := &SaleModel{}
	m.FromDomain(s)
	return m
}

// InstallmentModel is the persistence model for the Installment entity.
type InstallmentModel struct {
	ID        uuid.UUID               `gorm:"type:uuid;primary_key"`
	SaleID    uuid.UUID               `gorm:"type:uuid;not null;index"`
	Number    int                     `gorm:"not null"`
	Amount    decimal.Decimal         `gorm:"type:decimal(18,2);not null"`
	DueDate   time.Time               `gorm:"not null;index"`
	Status    trade.InstallmentStatus `gorm:"type:varchar(20);not null;default:'OPEN'"`
	PaidAt    *time.Time
	CreatedAt time.Time `gorm:"not null"`
	UpdatedAt time.Time `gorm:"not null"`
}

// TableName returns the table name for GORM
func (InstallmentModel) TableName() string {
	return "installments"
}

// ToDomain converts the persistence model to a domain Installment entity.
func (m *InstallmentModel) ToDomain() *trade.Installment {
	return &trade.Installment{
		ID:        m.ID,
		SaleID:    m.SaleID,
		Number:    m.Number,
		Amount:    m.Amount,
		DueDate:   m.DueDate,
		Status:    m.Status,
		PaidAt:    m.PaidAt,
		CreatedAt: m.CreatedAt,
		UpdatedAt: m.UpdatedAt,
	}
}

// FromDomain populates the persistence model from a domain Installment entity.
func (m *InstallmentModel) FromDomain(i *trade.Installment) {
	m.ID = i.ID
	m.SaleID = i.SaleID
	m.Number = i.Number
	m.Amount = i.Amount
	m.DueDate = i.DueDate
	m.Status = i.Status
	m.PaidAt = i.PaidAt
	m.CreatedAt = i.CreatedAt
	m.UpdatedAt = i.UpdatedAt
}

// InstallmentModelFromDomain creates a new persistence model from a domain Installment entity.
func InstallmentModelFromDomain(i *trade.Installment) *InstallmentModel {
	m := &InstallmentModel{}
	m.FromDomain(i)
	return m
}
