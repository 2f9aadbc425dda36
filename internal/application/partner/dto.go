package partner

import (
	"time"

	"github.com/editora/backend/internal/domain/partner"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// =============================================================================
// Customer DTOs
// =============================================================================

// CreateCustomerRequest represents a request to create a customer account
type CreateCustomerRequest struct {
	Name     string     `json:"name" binding:"required,min=1,max=200"`
	Email    string     `json:"email" binding:"omitempty,email,max=200"`
	Phone    string     `json:"phone" binding:"max=50"`
	CNPJ     string     `json:"cnpj" binding:"max=18"`
	CPF      string     `json:"cpf" binding:"max=14"`
	Channel  string     `json:"channel" binding:"required,oneof=DIRECT RESELLER REPRESENTATIVE"`
	VendorID *uuid.UUID `json:"vendor_id"`
}

// UpdateCustomerRequest represents a request to update a customer account
type UpdateCustomerRequest struct {
	Email                  *string          `json:"email" binding:"omitempty,email,max=200"`
	Phone                  *string          `json:"phone" binding:"omitempty,max=50"`
	SpecialDiscountPercent *decimal.Decimal `json:"special_discount_percent"`
	B2BBracketPercent      *decimal.Decimal `json:"b2b_bracket_percent"`
	PromotionalEligible    *bool            `json:"promotional_eligible"`
}

// SetCategoryRateRequest sets one representative category percentage
type SetCategoryRateRequest struct {
	Category string          `json:"category" binding:"required,min=1,max=100"`
	Percent  decimal.Decimal `json:"percent"`
}

// CustomerResponse represents a customer account
type CustomerResponse struct {
	ID                     uuid.UUID                  `json:"id"`
	Name                   string                     `json:"name"`
	Email                  string                     `json:"email,omitempty"`
	Phone                  string                     `json:"phone,omitempty"`
	CNPJ                   string                     `json:"cnpj,omitempty"`
	CPF                    string                     `json:"cpf,omitempty"`
	Channel                string                     `json:"channel"`
	VendorID               *uuid.UUID                 `json:"vendor_id,omitempty"`
	SpecialDiscountPercent decimal.Decimal            `json:"special_discount_percent"`
	B2BBracketPercent      decimal.Decimal            `json:"b2b_bracket_percent"`
	PromotionalEligible    bool                       `json:"promotional_eligible"`
	CategoryRates          map[string]decimal.Decimal `json:"category_rates,omitempty"`
	CumulativeSpend        decimal.Decimal            `json:"cumulative_spend"`
	IsActive               bool                       `json:"is_active"`
	LastPurchaseAt         *time.Time                 `json:"last_purchase_at,omitempty"`
	CreatedAt              time.Time                  `json:"created_at"`
}

// ToCustomerResponse converts a customer aggregate to a response DTO
func ToCustomerResponse(customer *partner.Customer) CustomerResponse {
	return CustomerResponse{
		ID:                     customer.ID,
		Name:                   customer.Name,
		Email:                  customer.Email,
		Phone:                  customer.Phone,
		CNPJ:                   customer.CNPJ.String(),
		CPF:                    customer.CPF.String(),
		Channel:                string(customer.Channel),
		VendorID:               customer.VendorID,
		SpecialDiscountPercent: customer.SpecialDiscountPercent,
		B2BBracketPercent:      customer.B2BBracketPercent,
		PromotionalEligible:    customer.PromotionalEligible,
		CategoryRates:          customer.CategoryRates,
		CumulativeSpend:        customer.CumulativeSpend,
		IsActive:               customer.IsActive,
		LastPurchaseAt:         customer.LastPurchaseAt,
		CreatedAt:              customer.CreatedAt,
	}
}

// ToCustomerResponses converts a list of customers to response DTOs
func ToCustomerResponses(customers []*partner.Customer) []CustomerResponse {
	out := make([]CustomerResponse, len(customers))
	for i, customer := range customers {
		out[i] = ToCustomerResponse(customer)
	}
	return out
}

// =============================================================================
// Vendor DTOs
// =============================================================================

// CreateVendorRequest represents a request to create a vendor
type CreateVendorRequest struct {
	Name  string `json:"name" binding:"required,min=1,max=200"`
	Email string `json:"email" binding:"omitempty,email,max=200"`
	CPF   string `json:"cpf" binding:"max=14"`
	Role  string `json:"role" binding:"required,oneof=VENDOR MANAGER"`
}

// AssignManagerRequest links a vendor to its direct manager
type AssignManagerRequest struct {
	ManagerID uuid.UUID `json:"manager_id" binding:"required"`
}

// SetCommissionRequest sets a manager's commission percentage
type SetCommissionRequest struct {
	Percent decimal.Decimal `json:"percent" binding:"required"`
}

// VendorResponse represents a vendor
type VendorResponse struct {
	ID                uuid.UUID       `json:"id"`
	Name              string          `json:"name"`
	Email             string          `json:"email,omitempty"`
	CPF               string          `json:"cpf,omitempty"`
	Role              string          `json:"role"`
	ManagerID         *uuid.UUID      `json:"manager_id,omitempty"`
	CommissionPercent decimal.Decimal `json:"commission_percent"`
	IsActive          bool            `json:"is_active"`
	CreatedAt         time.Time       `json:"created_at"`
}

// ToVendorResponse converts a vendor aggregate to a response DTO
func ToVendorResponse(vendor *partner.Vendor) VendorResponse {
	return VendorResponse{
		ID:                vendor.ID,
		Name:              vendor.Name,
		Email:             vendor.Email,
		CPF:               vendor.CPF.String(),
		Role:              string(vendor.Role),
		ManagerID:         vendor.ManagerID,
		CommissionPercent: vendor.CommissionPercent,
		IsActive:          vendor.IsActive,
		CreatedAt:         vendor.CreatedAt,
	}
}

// ToVendorResponses converts a list of vendors to response DTOs
func ToVendorResponses(vendors []*partner.Vendor) []VendorResponse {
	out := make([]VendorResponse, len(vendors))
	for i, vendor := range vendors {
		out[i] = ToVendorResponse(vendor)
	}
	return out
}
