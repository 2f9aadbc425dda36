package commission

import (
	"context"
	"errors"

	"github.com/editora/backend/internal/domain/commission"
	"github.com/editora/backend/internal/domain/partner"
	"github.com/editora/backend/internal/domain/shared"
	"github.com/editora/backend/internal/domain/trade"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// AllocationService splits confirmed sale installments into commission
// records. It is safe to run repeatedly over the same sale: the
// repository's insert-or-skip guard keeps re-runs from double-inserting.
type AllocationService struct {
	saleRepo   trade.SaleRepository
	vendorRepo partner.VendorRepository
	recordRepo commission.RecordRepository
	configRepo commission.AdminConfigRepository
	allocator  *commission.Allocator
	logger     *zap.Logger
}

// NewAllocationService creates a new AllocationService
func NewAllocationService(
	saleRepo trade.SaleRepository,
	vendorRepo partner.VendorRepository,
	recordRepo commission.RecordRepository,
	configRepo commission.AdminConfigRepository,
	logger *zap.Logger,
) *AllocationService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &AllocationService{
		saleRepo:   saleRepo,
		vendorRepo: vendorRepo,
		recordRepo: recordRepo,
		configRepo: configRepo,
		allocator:  commission.NewAllocator(),
		logger:     logger,
	}
}

// AllocateForSale allocates commissions for every installment of a
// confirmed sale. Already-allocated installments are skipped and
// counted, so callbacks and reconciliation can both call this.
func (s *AllocationService) AllocateForSale(ctx context.Context, tenantID, saleID uuid.UUID) (*AllocationResult, error) {
	sale, err := s.saleRepo.FindByID(ctx, tenantID, saleID)
	if err != nil {
		return nil, err
	}
	return s.AllocateSale(ctx, sale)
}

// AllocateSale allocates commissions for an already-loaded sale
func (s *AllocationService) AllocateSale(ctx context.Context, sale *trade.Sale) (*AllocationResult, error) {
	if sale.Status != trade.SaleStatusConfirmed {
		return nil, shared.NewDomainError("SALE_NOT_CONFIRMED", "Commissions are allocated for confirmed sales only")
	}

	adminConfig, err := s.configRepo.FindActiveForTenant(ctx, sale.TenantID)
	if err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			return nil, shared.ErrConfigurationMissing
		}
		return nil, err
	}

	manager, err := s.managerShareFor(ctx, sale.TenantID, sale.VendorID)
	if err != nil {
		return nil, err
	}

	result := &AllocationResult{SaleID: sale.ID}
	for _, installment := range sale.Installments {
		records, err := s.allocator.Allocate(commission.AllocationInput{
			TenantID:      sale.TenantID,
			SaleID:        sale.ID,
			InstallmentID: installment.ID,
			SaleAmount:    installment.Amount,
			DueDate:       installment.DueDate,
		}, sale.VendorID, manager, adminConfig)
		if err != nil {
			return nil, err
		}

		for _, record := range records {
			created, err := s.recordRepo.CreateIfAbsent(ctx, record)
			if err != nil {
				return nil, err
			}
			if !created {
				result.Skipped++
				continue
			}
			result.Created++
			result.Records = append(result.Records, ToRecordResponse(record))
		}
	}

	s.logger.Info("Commission allocation completed",
		zap.String("sale_id", sale.ID.String()),
		zap.Int("created", result.Created),
		zap.Int("skipped", result.Skipped))

	return result, nil
}

// managerShareFor resolves the vendor's direct manager. Vendors without
// a manager are not an error; they simply earn no manager record.
func (s *AllocationService) managerShareFor(ctx context.Context, tenantID, vendorID uuid.UUID) (*commission.ManagerShare, error) {
	manager, err := s.vendorRepo.FindManagerOf(ctx, tenantID, vendorID)
	if err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &commission.ManagerShare{
		ManagerID: manager.ID,
		Percent:   manager.CommissionPercent,
	}, nil
}
