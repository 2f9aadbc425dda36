package pricing

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// DiscountType identifies which discount category was applied to a cart.
// Exactly one type is ever applied per quote; discounts never combine.
type DiscountType string

const (
	DiscountTypeNone          DiscountType = "NONE"
	DiscountTypePromotional   DiscountType = "PROMOTIONAL"
	DiscountTypeResellerTier  DiscountType = "RESELLER_TIER"
	DiscountTypeSpecialVendor DiscountType = "SPECIAL_VENDOR"
	DiscountTypeB2BBracket    DiscountType = "B2B_BRACKET"
	DiscountTypeCategoryBlend DiscountType = "CATEGORY_BLEND"
)

// IsValid checks if the type is a known DiscountType
func (t DiscountType) IsValid() bool {
	switch t {
	case DiscountTypeNone, DiscountTypePromotional, DiscountTypeResellerTier,
		DiscountTypeSpecialVendor, DiscountTypeB2BBracket, DiscountTypeCategoryBlend:
		return true
	}
	return false
}

// String returns the string representation of DiscountType
func (t DiscountType) String() string {
	return string(t)
}

// ItemDiscount is one entry of a category-blend breakdown
type ItemDiscount struct {
	ProductID uuid.UUID       `json:"product_id"`
	Category  string          `json:"category"`
	Percent   decimal.Decimal `json:"percent"`
	Amount    decimal.Decimal `json:"amount"`
}

// CalculatedDiscount is the result of resolving a cart against a
// customer profile. It is a pure computation output and is folded into
// the order total at checkout; it is never persisted on its own.
//
// For category-blend discounts the Percent field is informational (a
// weighted average): the monetary amount is the sum of the per-item
// entries in Items and must not be recomputed from Percent.
type CalculatedDiscount struct {
	Type     DiscountType    `json:"type"`
	TierCode string          `json:"tier_code,omitempty"`
	Percent  decimal.Decimal `json:"percent"`
	Amount   decimal.Decimal `json:"amount"`
	Items    []ItemDiscount  `json:"items,omitempty"`
}

// NoDiscount returns the zero-value result for carts that earn nothing
func NoDiscount() CalculatedDiscount {
	return CalculatedDiscount{
		Type:    DiscountTypeNone,
		Percent: decimal.Zero,
		Amount:  decimal.Zero,
	}
}

// HasDiscount returns true when any monetary reduction was granted
func (d CalculatedDiscount) HasDiscount() bool {
	return d.Type != DiscountTypeNone && d.Amount.IsPositive()
}

// ApplyTo returns the payable total after subtracting the discount
func (d CalculatedDiscount) ApplyTo(subtotal decimal.Decimal) decimal.Decimal {
	return subtotal.Sub(d.Amount)
}
