package partner

import (
	"context"

	"github.com/editora/backend/internal/domain/partner"
	"github.com/editora/backend/internal/domain/shared/valueobject"
	"github.com/google/uuid"
)

// CustomerService handles customer account operations
type CustomerService struct {
	customerRepo partner.CustomerRepository
	vendorRepo   partner.VendorRepository
}

// NewCustomerService creates a new CustomerService
func NewCustomerService(customerRepo partner.CustomerRepository, vendorRepo partner.VendorRepository) *CustomerService {
	return &CustomerService{
		customerRepo: customerRepo,
		vendorRepo:   vendorRepo,
	}
}

// Create creates a new customer account
func (s *CustomerService) Create(ctx context.Context, tenantID uuid.UUID, req CreateCustomerRequest) (*CustomerResponse, error) {
	customer, err := partner.NewCustomer(tenantID, req.Name, partner.Channel(req.Channel))
	if err != nil {
		return nil, err
	}

	// Documents are validated here so malformed tax IDs never reach storage
	cnpj, err := valueobject.NewCNPJ(req.CNPJ)
	if err != nil {
		return nil, err
	}
	cpf, err := valueobject.NewCPF(req.CPF)
	if err != nil {
		return nil, err
	}
	customer.SetDocuments(cnpj, cpf)

	if req.Email != "" || req.Phone != "" {
		customer.SetContact(req.Email, req.Phone)
	}

	if req.VendorID != nil {
		// The originating vendor must exist in this tenant
		if _, err := s.vendorRepo.FindByID(ctx, tenantID, *req.VendorID); err != nil {
			return nil, err
		}
		if err := customer.AssignVendor(*req.VendorID); err != nil {
			return nil, err
		}
	}

	if err := s.customerRepo.Save(ctx, customer); err != nil {
		return nil, err
	}

	response := ToCustomerResponse(customer)
	return &response, nil
}

// GetByID retrieves a customer by ID
func (s *CustomerService) GetByID(ctx context.Context, tenantID, customerID uuid.UUID) (*CustomerResponse, error) {
	customer, err := s.customerRepo.FindByID(ctx, tenantID, customerID)
	if err != nil {
		return nil, err
	}

	response := ToCustomerResponse(customer)
	return &response, nil
}

// List retrieves customers for a tenant with pagination
func (s *CustomerService) List(ctx context.Context, tenantID uuid.UUID, page, pageSize int) ([]CustomerResponse, int64, error) {
	if page <= 0 {
		page = 1
	}
	if pageSize <= 0 {
		pageSize = 20
	}

	customers, total, err := s.customerRepo.FindAllForTenant(ctx, tenantID, page, pageSize)
	if err != nil {
		return nil, 0, err
	}

	return ToCustomerResponses(customers), total, nil
}

// Update updates a customer's contact and discount-eligibility fields
func (s *CustomerService) Update(ctx context.Context, tenantID, customerID uuid.UUID, req UpdateCustomerRequest) (*CustomerResponse, error) {
	customer, err := s.customerRepo.FindByID(ctx, tenantID, customerID)
	if err != nil {
		return nil, err
	}

	if req.Email != nil || req.Phone != nil {
		email := customer.Email
		phone := customer.Phone
		if req.Email != nil {
			email = *req.Email
		}
		if req.Phone != nil {
			phone = *req.Phone
		}
		customer.SetContact(email, phone)
	}

	if req.SpecialDiscountPercent != nil {
		if err := customer.SetSpecialDiscount(*req.SpecialDiscountPercent); err != nil {
			return nil, err
		}
	}

	if req.B2BBracketPercent != nil {
		if err := customer.SetB2BBracket(*req.B2BBracketPercent); err != nil {
			return nil, err
		}
	}

	if req.PromotionalEligible != nil {
		if *req.PromotionalEligible {
			customer.GrantPromotionalEligibility()
		} else {
			customer.RevokePromotionalEligibility()
		}
	}

	if err := s.customerRepo.Save(ctx, customer); err != nil {
		return nil, err
	}

	response := ToCustomerResponse(customer)
	return &response, nil
}

// SetCategoryRate sets one representative category percentage
func (s *CustomerService) SetCategoryRate(ctx context.Context, tenantID, customerID uuid.UUID, req SetCategoryRateRequest) (*CustomerResponse, error) {
	customer, err := s.customerRepo.FindByID(ctx, tenantID, customerID)
	if err != nil {
		return nil, err
	}

	if err := customer.SetCategoryRate(req.Category, req.Percent); err != nil {
		return nil, err
	}

	if err := s.customerRepo.Save(ctx, customer); err != nil {
		return nil, err
	}

	response := ToCustomerResponse(customer)
	return &response, nil
}

// Activate re-enables a customer account
func (s *CustomerService) Activate(ctx context.Context, tenantID, customerID uuid.UUID) (*CustomerResponse, error) {
	customer, err := s.customerRepo.FindByID(ctx, tenantID, customerID)
	if err != nil {
		return nil, err
	}

	customer.Activate()

	if err := s.customerRepo.Save(ctx, customer); err != nil {
		return nil, err
	}

	response := ToCustomerResponse(customer)
	return &response, nil
}

// Deactivate disables a customer account
func (s *CustomerService) Deactivate(ctx context.Context, tenantID, customerID uuid.UUID) (*CustomerResponse, error) {
	customer, err := s.customerRepo.FindByID(ctx, tenantID, customerID)
	if err != nil {
		return nil, err
	}

	customer.Deactivate()

	if err := s.customerRepo.Save(ctx, customer); err != nil {
		return nil, err
	}

	response := ToCustomerResponse(customer)
	return &response, nil
}
