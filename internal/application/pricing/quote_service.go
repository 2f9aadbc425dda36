package pricing

import (
	"context"
	"errors"

	"github.com/editora/backend/internal/domain/partner"
	"github.com/editora/backend/internal/domain/pricing"
	"github.com/editora/backend/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// QuoteService prices carts against the discount precedence chain
type QuoteService struct {
	customerRepo       partner.CustomerRepository
	tierRepo           pricing.DiscountTierRepository
	resolver           *pricing.DiscountResolver
	promotionalPercent decimal.Decimal
}

// NewQuoteService creates a new QuoteService.
// promotionalPercent is the campaign percentage applied to flagged SKUs
// for eligible accounts; it comes from tenant configuration.
func NewQuoteService(
	customerRepo partner.CustomerRepository,
	tierRepo pricing.DiscountTierRepository,
	promotionalPercent decimal.Decimal,
) *QuoteService {
	return &QuoteService{
		customerRepo:       customerRepo,
		tierRepo:           tierRepo,
		resolver:           pricing.NewDiscountResolver(),
		promotionalPercent: promotionalPercent,
	}
}

// Quote resolves the discount for a customer's cart and returns the
// priced result. Nothing is persisted; quotes are pure reads.
func (s *QuoteService) Quote(ctx context.Context, tenantID uuid.UUID, req QuoteRequest) (*QuoteResponse, error) {
	customer, err := s.customerRepo.FindByID(ctx, tenantID, req.CustomerID)
	if err != nil {
		return nil, err
	}
	if !customer.IsActive {
		return nil, shared.NewDomainError("CUSTOMER_INACTIVE", "Cannot quote for an inactive customer")
	}

	cart, err := buildCart(req.Items)
	if err != nil {
		return nil, err
	}

	tiers, err := s.tierTableFor(ctx, tenantID, customer)
	if err != nil {
		return nil, err
	}

	discount, err := s.resolver.Resolve(s.profileFor(customer), cart, tiers)
	if err != nil {
		return nil, err
	}

	response := ToQuoteResponse(customer.ID, cart.Subtotal(), discount)
	return &response, nil
}

// tierTableFor loads the tenant's tier ladder. Reseller tiers apply to
// reseller channel accounts only; other channels get an empty table so
// the precedence chain falls through to their own discount sources.
func (s *QuoteService) tierTableFor(ctx context.Context, tenantID uuid.UUID, customer *partner.Customer) (pricing.TierTable, error) {
	if customer.Channel != partner.ChannelReseller {
		return pricing.TierTable{}, nil
	}

	records, err := s.tierRepo.FindActiveForTenant(ctx, tenantID)
	if err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			return pricing.DefaultTierTable(), nil
		}
		return pricing.TierTable{}, err
	}
	if len(records) == 0 {
		return pricing.DefaultTierTable(), nil
	}
	return pricing.TableFromRecords(records)
}

// profileFor maps the customer aggregate onto the resolver's read model
func (s *QuoteService) profileFor(customer *partner.Customer) pricing.CustomerProfile {
	return pricing.CustomerProfile{
		CustomerID:             customer.ID,
		Channel:                pricing.ChannelType(customer.Channel),
		SpecialDiscountPercent: customer.SpecialDiscountPercent,
		B2BBracketPercent:      customer.B2BBracketPercent,
		PromotionalEligible:    customer.PromotionalEligible,
		PromotionalPercent:     s.promotionalPercent,
		CategoryRates:          customer.CategoryRates,
	}
}

func buildCart(items []QuoteItemRequest) (pricing.Cart, error) {
	cart := make(pricing.Cart, 0, len(items))
	for _, item := range items {
		line, err := pricing.NewCartLineItem(item.ProductID, item.ProductName, item.UnitPrice, item.Quantity)
		if err != nil {
			return nil, err
		}
		line.Category = item.Category
		line.Promotional = item.Promotional
		cart = append(cart, line)
	}
	return cart, nil
}
