package pricing

import (
	"github.com/editora/backend/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// ChannelType identifies the sales channel a customer account belongs to
type ChannelType string

const (
	ChannelDirect         ChannelType = "DIRECT"
	ChannelReseller       ChannelType = "RESELLER"
	ChannelRepresentative ChannelType = "REPRESENTATIVE"
)

// CustomerProfile carries the discount-eligibility fields of an account.
// It is read from the CRM store and is read-only to the resolver.
type CustomerProfile struct {
	CustomerID             uuid.UUID
	Channel                ChannelType
	SpecialDiscountPercent decimal.Decimal // vendor-assigned flat percentage, zero when absent
	B2BBracketPercent      decimal.Decimal // derived from declared revenue bracket, zero when absent
	PromotionalEligible    bool            // e.g. ADVEC campaign eligibility
	PromotionalPercent     decimal.Decimal // percentage applied to flagged SKUs
	CategoryRates          map[string]decimal.Decimal
}

var hundred = decimal.NewFromInt(100)

// percentOf returns amount * percent / 100 rounded to cents using
// standard half-away-from-zero rounding.
func percentOf(amount, percent decimal.Decimal) decimal.Decimal {
	return amount.Mul(percent).Div(hundred).Round(2)
}

// validPercent reports whether a configured percentage is usable
func validPercent(p decimal.Decimal) bool {
	return p.IsPositive() && p.LessThanOrEqual(hundred)
}

// DiscountResolver computes the single applicable discount for a cart.
// It is stateless: configuration (tier table, profile percentages) is
// passed in on every call so the resolver stays pure and testable.
type DiscountResolver struct{}

// NewDiscountResolver creates a new DiscountResolver
func NewDiscountResolver() *DiscountResolver {
	return &DiscountResolver{}
}

// Resolve evaluates the discount precedence chain and returns exactly
// one CalculatedDiscount. The order is fixed and mutually exclusive:
//
//  1. promotional eligibility on flagged SKUs
//  2. reseller tier by cart subtotal
//  3. special per-account vendor percentage
//  4. B2B revenue-bracket percentage
//  5. representative per-category blend
//
// A cart subtotal exactly on a tier threshold takes the higher tier.
// Zero-value carts always resolve to no discount.
func (r *DiscountResolver) Resolve(profile CustomerProfile, cart Cart, tiers TierTable) (CalculatedDiscount, error) {
	subtotal := cart.Subtotal()
	if subtotal.IsNegative() {
		return CalculatedDiscount{}, shared.NewDomainError("INVALID_CART", "Cart subtotal cannot be negative")
	}
	if subtotal.IsZero() {
		return NoDiscount(), nil
	}

	if d, ok := r.resolvePromotional(profile, cart); ok {
		return r.bounded(d, subtotal), nil
	}
	if d, ok := r.resolveResellerTier(subtotal, tiers); ok {
		return r.bounded(d, subtotal), nil
	}
	if validPercent(profile.SpecialDiscountPercent) {
		return r.bounded(CalculatedDiscount{
			Type:    DiscountTypeSpecialVendor,
			Percent: profile.SpecialDiscountPercent,
			Amount:  percentOf(subtotal, profile.SpecialDiscountPercent),
		}, subtotal), nil
	}
	if validPercent(profile.B2BBracketPercent) {
		return r.bounded(CalculatedDiscount{
			Type:    DiscountTypeB2BBracket,
			Percent: profile.B2BBracketPercent,
			Amount:  percentOf(subtotal, profile.B2BBracketPercent),
		}, subtotal), nil
	}
	if d, ok := r.resolveCategoryBlend(profile, cart, subtotal); ok {
		return r.bounded(d, subtotal), nil
	}

	return NoDiscount(), nil
}

// resolvePromotional applies the promotional percentage to flagged line
// items only, not cart-wide.
func (r *DiscountResolver) resolvePromotional(profile CustomerProfile, cart Cart) (CalculatedDiscount, bool) {
	if !profile.PromotionalEligible || !validPercent(profile.PromotionalPercent) {
		return CalculatedDiscount{}, false
	}

	amount := decimal.Zero
	matched := false
	for _, item := range cart {
		if !item.Promotional {
			continue
		}
		matched = true
		amount = amount.Add(percentOf(item.Amount(), profile.PromotionalPercent))
	}
	if !matched {
		return CalculatedDiscount{}, false
	}

	return CalculatedDiscount{
		Type:    DiscountTypePromotional,
		Percent: profile.PromotionalPercent,
		Amount:  amount,
	}, true
}

// resolveResellerTier maps the cart subtotal onto the tier ladder
func (r *DiscountResolver) resolveResellerTier(subtotal decimal.Decimal, tiers TierTable) (CalculatedDiscount, bool) {
	tier, ok := tiers.TierFor(subtotal)
	if !ok {
		return CalculatedDiscount{}, false
	}
	return CalculatedDiscount{
		Type:     DiscountTypeResellerTier,
		TierCode: tier.Code(),
		Percent:  tier.Percent(),
		Amount:   percentOf(subtotal, tier.Percent()),
	}, true
}

// resolveCategoryBlend gives each line its own category percentage.
// The aggregate percentage is a weighted average and is informational
// only; the amount is the sum of the per-item discounts.
func (r *DiscountResolver) resolveCategoryBlend(profile CustomerProfile, cart Cart, subtotal decimal.Decimal) (CalculatedDiscount, bool) {
	if profile.Channel != ChannelRepresentative || len(profile.CategoryRates) == 0 {
		return CalculatedDiscount{}, false
	}

	amount := decimal.Zero
	items := make([]ItemDiscount, 0, len(cart))
	for _, item := range cart {
		percent, ok := profile.CategoryRates[item.Category]
		if !ok || !validPercent(percent) {
			continue
		}
		itemAmount := percentOf(item.Amount(), percent)
		amount = amount.Add(itemAmount)
		items = append(items, ItemDiscount{
			ProductID: item.ProductID,
			Category:  item.Category,
			Percent:   percent,
			Amount:    itemAmount,
		})
	}
	if len(items) == 0 {
		return CalculatedDiscount{}, false
	}

	weightedAverage := amount.Div(subtotal).Mul(hundred).Round(2)
	return CalculatedDiscount{
		Type:    DiscountTypeCategoryBlend,
		Percent: weightedAverage,
		Amount:  amount,
		Items:   items,
	}, true
}

// bounded enforces the output guarantees: the monetary discount never
// exceeds the cart subtotal and the percentage stays within [0, 100].
func (r *DiscountResolver) bounded(d CalculatedDiscount, subtotal decimal.Decimal) CalculatedDiscount {
	if d.Amount.GreaterThan(subtotal) {
		d.Amount = subtotal
	}
	if d.Amount.IsNegative() {
		d.Amount = decimal.Zero
	}
	if d.Percent.GreaterThan(hundred) {
		d.Percent = hundred
	}
	if d.Percent.IsNegative() {
		d.Percent = decimal.Zero
	}
	return d
}
