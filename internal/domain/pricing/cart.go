package pricing

import (
	"github.com/editora/backend/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// CartLineItem represents one priced line of a checkout cart.
// It is transient: it exists only for the duration of a quote.
type CartLineItem struct {
	ProductID   uuid.UUID
	ProductName string
	ProductCode string
	UnitPrice   decimal.Decimal
	Quantity    decimal.Decimal
	Category    string // category tag used by representative channel pricing
	Promotional bool   // SKU flagged for promotional campaigns
}

// NewCartLineItem creates a validated cart line item
func NewCartLineItem(productID uuid.UUID, productName string, unitPrice, quantity decimal.Decimal) (CartLineItem, error) {
	if productID == uuid.Nil {
		return CartLineItem{}, shared.NewDomainError("INVALID_PRODUCT", "Product ID cannot be empty")
	}
	if unitPrice.IsNegative() {
		return CartLineItem{}, shared.NewDomainError("INVALID_PRICE", "Unit price cannot be negative")
	}
	if quantity.LessThanOrEqual(decimal.Zero) {
		return CartLineItem{}, shared.NewDomainError("INVALID_QUANTITY", "Quantity must be positive")
	}
	return CartLineItem{
		ProductID:   productID,
		ProductName: productName,
		UnitPrice:   unitPrice,
		Quantity:    quantity,
	}, nil
}

// Amount returns the line total (quantity * unit price)
func (i CartLineItem) Amount() decimal.Decimal {
	return i.Quantity.Mul(i.UnitPrice)
}

// Cart is an ordered collection of line items
type Cart []CartLineItem

// Subtotal returns the sum of all line amounts before any discount
func (c Cart) Subtotal() decimal.Decimal {
	total := decimal.Zero
	for _, item := range c {
		total = total.Add(item.Amount())
	}
	return total
}

// IsEmpty returns true when the cart has no lines
func (c Cart) IsEmpty() bool {
	return len(c) == 0
}
