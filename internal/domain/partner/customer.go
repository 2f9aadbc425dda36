package partner

import (
	"time"

	"github.com/editora/backend/internal/domain/shared"
	"github.com/editora/backend/internal/domain/shared/valueobject"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Channel identifies the sales channel a customer account belongs to
type Channel string

const (
	ChannelDirect         Channel = "DIRECT"
	ChannelReseller       Channel = "RESELLER"
	ChannelRepresentative Channel = "REPRESENTATIVE"
)

// IsValid checks if the channel is a known Channel
func (c Channel) IsValid() bool {
	switch c {
	case ChannelDirect, ChannelReseller, ChannelRepresentative:
		return true
	}
	return false
}

var maxPercent = decimal.NewFromInt(100)

// Customer represents a church or reseller account.
// It owns the discount-eligibility fields consumed by the pricing engine:
// the special vendor-assigned percentage, the B2B revenue-bracket
// percentage, promotional campaign eligibility and the cumulative spend
// used for reseller tier reporting.
type Customer struct {
	shared.TenantAggregateRoot
	Name                   string
	Email                  string
	Phone                  string
	CNPJ                   valueobject.CNPJ // church/company registry, optional
	CPF                    valueobject.CPF  // responsible person, optional
	Channel                Channel
	VendorID               *uuid.UUID // originating vendor, when sold through the rep network
	SpecialDiscountPercent decimal.Decimal
	B2BBracketPercent      decimal.Decimal
	PromotionalEligible    bool
	CategoryRates          map[string]decimal.Decimal // representative per-category percentages
	CumulativeSpend        decimal.Decimal
	IsActive               bool
	LastPurchaseAt         *time.Time
}

// NewCustomer creates a new customer account
func NewCustomer(tenantID uuid.UUID, name string, channel Channel) (*Customer, error) {
	if name == "" {
		return nil, shared.NewDomainError("INVALID_NAME", "Customer name cannot be empty")
	}
	if len(name) > 200 {
		return nil, shared.NewDomainError("INVALID_NAME", "Customer name cannot exceed 200 characters")
	}
	if !channel.IsValid() {
		return nil, shared.NewDomainError("INVALID_CHANNEL", "Unknown sales channel")
	}

	customer := &Customer{
		TenantAggregateRoot:    shared.NewTenantAggregateRoot(tenantID),
		Name:                   name,
		Channel:                channel,
		SpecialDiscountPercent: decimal.Zero,
		B2BBracketPercent:      decimal.Zero,
		CumulativeSpend:        decimal.Zero,
		IsActive:               true,
	}
	customer.AddDomainEvent(NewCustomerCreatedEvent(customer))
	return customer, nil
}

// SetDocuments sets the registry documents for the account
func (c *Customer) SetDocuments(cnpj valueobject.CNPJ, cpf valueobject.CPF) {
	c.CNPJ = cnpj
	c.CPF = cpf
	c.UpdatedAt = time.Now()
}

// SetContact updates the account contact information
func (c *Customer) SetContact(email, phone string) {
	c.Email = email
	c.Phone = phone
	c.UpdatedAt = time.Now()
}

// AssignVendor links the account to its originating vendor
func (c *Customer) AssignVendor(vendorID uuid.UUID) error {
	if vendorID == uuid.Nil {
		return shared.NewDomainError("INVALID_VENDOR", "Vendor ID cannot be empty")
	}
	c.VendorID = &vendorID
	c.UpdatedAt = time.Now()
	return nil
}

// SetSpecialDiscount sets the vendor-assigned flat percentage.
// Zero clears the special discount.
func (c *Customer) SetSpecialDiscount(percent decimal.Decimal) error {
	if percent.IsNegative() || percent.GreaterThan(maxPercent) {
		return shared.NewDomainError("INVALID_PERCENT", "Special discount must be between 0 and 100")
	}
	c.SpecialDiscountPercent = percent
	c.UpdatedAt = time.Now()
	return nil
}

// SetB2BBracket sets the percentage derived from the declared revenue bracket
func (c *Customer) SetB2BBracket(percent decimal.Decimal) error {
	if percent.IsNegative() || percent.GreaterThan(maxPercent) {
		return shared.NewDomainError("INVALID_PERCENT", "B2B bracket must be between 0 and 100")
	}
	c.B2BBracketPercent = percent
	c.UpdatedAt = time.Now()
	return nil
}

// SetCategoryRate sets the representative channel percentage for one
// product category. Zero removes the category from the blend.
func (c *Customer) SetCategoryRate(category string, percent decimal.Decimal) error {
	if category == "" {
		return shared.NewDomainError("INVALID_CATEGORY", "Category cannot be empty")
	}
	if percent.IsNegative() || percent.GreaterThan(maxPercent) {
		return shared.NewDomainError("INVALID_PERCENT", "Category rate must be between 0 and 100")
	}
	if percent.IsZero() {
		delete(c.CategoryRates, category)
	} else {
		if c.CategoryRates == nil {
			c.CategoryRates = make(map[string]decimal.Decimal)
		}
		c.CategoryRates[category] = percent
	}
	c.UpdatedAt = time.Now()
	return nil
}

// GrantPromotionalEligibility marks the account for promotional campaigns
func (c *Customer) GrantPromotionalEligibility() {
	c.PromotionalEligible = true
	c.UpdatedAt = time.Now()
}

// RevokePromotionalEligibility removes promotional campaign eligibility
func (c *Customer) RevokePromotionalEligibility() {
	c.PromotionalEligible = false
	c.UpdatedAt = time.Now()
}

// RegisterPurchase accumulates a confirmed purchase into the account's
// cumulative spend, which drives reseller tier reporting.
func (c *Customer) RegisterPurchase(amount decimal.Decimal) error {
	if amount.IsNegative() {
		return shared.NewDomainError("INVALID_AMOUNT", "Purchase amount cannot be negative")
	}
	c.CumulativeSpend = c.CumulativeSpend.Add(amount)
	now := time.Now()
	c.LastPurchaseAt = &now
	c.UpdatedAt = now
	return nil
}

// Deactivate disables the account without deleting it
func (c *Customer) Deactivate() {
	c.IsActive = false
	c.UpdatedAt = time.Now()
}

// Activate re-enables the account
func (c *Customer) Activate() {
	c.IsActive = true
	c.UpdatedAt = time.Now()
}
