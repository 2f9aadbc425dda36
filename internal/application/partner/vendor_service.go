package partner

import (
	"context"

	"github.com/editora/backend/internal/domain/partner"
	"github.com/editora/backend/internal/domain/shared"
	"github.com/editora/backend/internal/domain/shared/valueobject"
	"github.com/google/uuid"
)

// VendorService handles vendor and manager hierarchy operations
type VendorService struct {
	vendorRepo partner.VendorRepository
}

// NewVendorService creates a new VendorService
func NewVendorService(vendorRepo partner.VendorRepository) *VendorService {
	return &VendorService{vendorRepo: vendorRepo}
}

// Create creates a new vendor or manager
func (s *VendorService) Create(ctx context.Context, tenantID uuid.UUID, req CreateVendorRequest) (*VendorResponse, error) {
	vendor, err := partner.NewVendor(tenantID, req.Name, partner.VendorRole(req.Role))
	if err != nil {
		return nil, err
	}

	cpf, err := valueobject.NewCPF(req.CPF)
	if err != nil {
		return nil, err
	}
	vendor.SetCPF(cpf)
	vendor.Email = req.Email

	if err := s.vendorRepo.Save(ctx, vendor); err != nil {
		return nil, err
	}

	response := ToVendorResponse(vendor)
	return &response, nil
}

// GetByID retrieves a vendor by ID
func (s *VendorService) GetByID(ctx context.Context, tenantID, vendorID uuid.UUID) (*VendorResponse, error) {
	vendor, err := s.vendorRepo.FindByID(ctx, tenantID, vendorID)
	if err != nil {
		return nil, err
	}

	response := ToVendorResponse(vendor)
	return &response, nil
}

// List retrieves vendors for a tenant with pagination
func (s *VendorService) List(ctx context.Context, tenantID uuid.UUID, page, pageSize int) ([]VendorResponse, int64, error) {
	if page <= 0 {
		page = 1
	}
	if pageSize <= 0 {
		pageSize = 20
	}

	vendors, total, err := s.vendorRepo.FindAllForTenant(ctx, tenantID, page, pageSize)
	if err != nil {
		return nil, 0, err
	}

	return ToVendorResponses(vendors), total, nil
}

// AssignManager links a vendor to a manager-role vendor
func (s *VendorService) AssignManager(ctx context.Context, tenantID, vendorID uuid.UUID, req AssignManagerRequest) (*VendorResponse, error) {
	vendor, err := s.vendorRepo.FindByID(ctx, tenantID, vendorID)
	if err != nil {
		return nil, err
	}

	manager, err := s.vendorRepo.FindByID(ctx, tenantID, req.ManagerID)
	if err != nil {
		return nil, err
	}
	if !manager.IsManager() {
		return nil, shared.NewDomainError("INVALID_MANAGER", "Target vendor is not a manager")
	}
	if !manager.IsActive {
		return nil, shared.NewDomainError("INVALID_MANAGER", "Cannot assign an inactive manager")
	}

	if err := vendor.AssignManager(manager.ID); err != nil {
		return nil, err
	}

	if err := s.vendorRepo.Save(ctx, vendor); err != nil {
		return nil, err
	}

	response := ToVendorResponse(vendor)
	return &response, nil
}

// RemoveManager detaches a vendor from its manager
func (s *VendorService) RemoveManager(ctx context.Context, tenantID, vendorID uuid.UUID) (*VendorResponse, error) {
	vendor, err := s.vendorRepo.FindByID(ctx, tenantID, vendorID)
	if err != nil {
		return nil, err
	}

	vendor.RemoveManager()

	if err := s.vendorRepo.Save(ctx, vendor); err != nil {
		return nil, err
	}

	response := ToVendorResponse(vendor)
	return &response, nil
}

// SetCommission sets the percentage a manager earns on their vendors' sales
func (s *VendorService) SetCommission(ctx context.Context, tenantID, vendorID uuid.UUID, req SetCommissionRequest) (*VendorResponse, error) {
	vendor, err := s.vendorRepo.FindByID(ctx, tenantID, vendorID)
	if err != nil {
		return nil, err
	}
	if !vendor.IsManager() {
		return nil, shared.NewDomainError("INVALID_ROLE", "Commission percentages are configured on managers")
	}

	if err := vendor.SetCommissionPercent(req.Percent); err != nil {
		return nil, err
	}

	if err := s.vendorRepo.Save(ctx, vendor); err != nil {
		return nil, err
	}

	response := ToVendorResponse(vendor)
	return &response, nil
}
