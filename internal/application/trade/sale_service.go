package trade

import (
	"context"
	"time"

	commissionapp "github.com/editora/backend/internal/application/commission"
	pricingapp "github.com/editora/backend/internal/application/pricing"
	"github.com/editora/backend/internal/domain/partner"
	"github.com/editora/backend/internal/domain/trade"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// SaleService registers sales, folds the resolved discount into their
// totals and drives the payment-confirmation hook that triggers
// commission allocation.
type SaleService struct {
	saleRepo      trade.SaleRepository
	customerRepo  partner.CustomerRepository
	quoteSvc      *pricingapp.QuoteService
	allocationSvc *commissionapp.AllocationService
	logger        *zap.Logger
}

// NewSaleService creates a new SaleService
func NewSaleService(
	saleRepo trade.SaleRepository,
	customerRepo partner.CustomerRepository,
	quoteSvc *pricingapp.QuoteService,
	allocationSvc *commissionapp.AllocationService,
	logger *zap.Logger,
) *SaleService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &SaleService{
		saleRepo:      saleRepo,
		customerRepo:  customerRepo,
		quoteSvc:      quoteSvc,
		allocationSvc: allocationSvc,
		logger:        logger,
	}
}

// Create registers a pending sale. The cart is priced through the
// discount engine and the result is frozen into the sale totals.
func (s *SaleService) Create(ctx context.Context, tenantID uuid.UUID, req CreateSaleRequest) (*SaleResponse, error) {
	quoteItems := make([]pricingapp.QuoteItemRequest, len(req.Items))
	for i, item := range req.Items {
		quoteItems[i] = pricingapp.QuoteItemRequest{
			ProductID:   item.ProductID,
			ProductName: item.ProductName,
			UnitPrice:   item.UnitPrice,
			Quantity:    item.Quantity,
			Category:    item.Category,
			Promotional: item.Promotional,
		}
	}
	quote, err := s.quoteSvc.Quote(ctx, tenantID, pricingapp.QuoteRequest{
		CustomerID: req.CustomerID,
		Items:      quoteItems,
	})
	if err != nil {
		return nil, err
	}

	sale, err := trade.NewSale(tenantID, req.SaleNumber, req.CustomerID, req.VendorID, quote.Subtotal)
	if err != nil {
		return nil, err
	}
	if quote.DiscountAmount.IsPositive() {
		if err := sale.ApplyDiscount(quote.DiscountType, quote.DiscountPercent, quote.DiscountAmount); err != nil {
			return nil, err
		}
	}

	if req.Installments > 1 {
		firstDue := time.Now()
		if req.FirstDueDate != nil {
			firstDue = *req.FirstDueDate
		}
		if err := sale.SplitIntoInstallments(req.Installments, firstDue); err != nil {
			return nil, err
		}
	}

	if err := s.saleRepo.Save(ctx, sale); err != nil {
		return nil, err
	}

	response := ToSaleResponse(sale)
	return &response, nil
}

// GetByID retrieves a sale by ID
func (s *SaleService) GetByID(ctx context.Context, tenantID, saleID uuid.UUID) (*SaleResponse, error) {
	sale, err := s.saleRepo.FindByID(ctx, tenantID, saleID)
	if err != nil {
		return nil, err
	}

	response := ToSaleResponse(sale)
	return &response, nil
}

// List retrieves sales for a tenant with pagination
func (s *SaleService) List(ctx context.Context, tenantID uuid.UUID, page, pageSize int) ([]SaleResponse, int64, error) {
	if page <= 0 {
		page = 1
	}
	if pageSize <= 0 {
		pageSize = 20
	}

	sales, total, err := s.saleRepo.FindAllForTenant(ctx, tenantID, page, pageSize)
	if err != nil {
		return nil, 0, err
	}

	return ToSaleResponses(sales), total, nil
}

// ConfirmPayment confirms a sale and allocates its commissions.
// Allocation failures do not roll the confirmation back: the sale is
// paid whatever happens to commissions, and the backfill sweep picks up
// anything missed here.
func (s *SaleService) ConfirmPayment(ctx context.Context, tenantID, saleID uuid.UUID, req ConfirmPaymentRequest) (*SaleResponse, error) {
	sale, err := s.saleRepo.FindByID(ctx, tenantID, saleID)
	if err != nil {
		return nil, err
	}

	if err := sale.ConfirmPayment(trade.PaymentMethod(req.PaymentMethod), time.Now()); err != nil {
		return nil, err
	}
	if err := s.saleRepo.Save(ctx, sale); err != nil {
		return nil, err
	}

	if err := s.registerPurchase(ctx, sale); err != nil {
		s.logger.Warn("Failed to register purchase on customer account",
			zap.String("sale_id", sale.ID.String()),
			zap.Error(err))
	}

	if _, err := s.allocationSvc.AllocateSale(ctx, sale); err != nil {
		s.logger.Error("Commission allocation failed after confirmation",
			zap.String("sale_id", sale.ID.String()),
			zap.Error(err))
	}

	response := ToSaleResponse(sale)
	return &response, nil
}

// Cancel cancels a pending sale
func (s *SaleService) Cancel(ctx context.Context, tenantID, saleID uuid.UUID, reason string) (*SaleResponse, error) {
	sale, err := s.saleRepo.FindByID(ctx, tenantID, saleID)
	if err != nil {
		return nil, err
	}

	if err := sale.Cancel(reason); err != nil {
		return nil, err
	}
	if err := s.saleRepo.Save(ctx, sale); err != nil {
		return nil, err
	}

	response := ToSaleResponse(sale)
	return &response, nil
}

// registerPurchase accumulates the confirmed sale into the customer's
// cumulative spend.
func (s *SaleService) registerPurchase(ctx context.Context, sale *trade.Sale) error {
	customer, err := s.customerRepo.FindByID(ctx, sale.TenantID, sale.CustomerID)
	if err != nil {
		return err
	}
	if err := customer.RegisterPurchase(sale.PayableAmount); err != nil {
		return err
	}
	return s.customerRepo.Save(ctx, customer)
}
