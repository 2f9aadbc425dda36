package pricing

import (
	"github.com/editora/backend/internal/domain/pricing"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// =============================================================================
// Quote DTOs
// =============================================================================

// QuoteItemRequest is one cart line submitted for a price quote
type QuoteItemRequest struct {
	ProductID   uuid.UUID       `json:"product_id" binding:"required"`
	ProductName string          `json:"product_name" binding:"max=200"`
	UnitPrice   decimal.Decimal `json:"unit_price" binding:"required"`
	Quantity    decimal.Decimal `json:"quantity" binding:"required"`
	Category    string          `json:"category" binding:"max=100"`
	Promotional bool            `json:"promotional"`
}

// QuoteRequest represents a request to price a customer's cart
type QuoteRequest struct {
	CustomerID uuid.UUID          `json:"customer_id" binding:"required"`
	Items      []QuoteItemRequest `json:"items" binding:"required,dive"`
}

// ItemDiscountResponse is one entry of a category-blend breakdown
type ItemDiscountResponse struct {
	ProductID uuid.UUID       `json:"product_id"`
	Category  string          `json:"category"`
	Percent   decimal.Decimal `json:"percent"`
	Amount    decimal.Decimal `json:"amount"`
}

// QuoteResponse represents a priced cart
type QuoteResponse struct {
	CustomerID      uuid.UUID              `json:"customer_id"`
	Subtotal        decimal.Decimal        `json:"subtotal"`
	DiscountType    string                 `json:"discount_type"`
	TierCode        string                 `json:"tier_code,omitempty"`
	DiscountPercent decimal.Decimal        `json:"discount_percent"`
	DiscountAmount  decimal.Decimal        `json:"discount_amount"`
	PayableAmount   decimal.Decimal        `json:"payable_amount"`
	Items           []ItemDiscountResponse `json:"items,omitempty"`
}

// ToQuoteResponse maps a resolved discount onto the response shape
func ToQuoteResponse(customerID uuid.UUID, subtotal decimal.Decimal, discount pricing.CalculatedDiscount) QuoteResponse {
	response := QuoteResponse{
		CustomerID:      customerID,
		Subtotal:        subtotal,
		DiscountType:    discount.Type.String(),
		TierCode:        discount.TierCode,
		DiscountPercent: discount.Percent,
		DiscountAmount:  discount.Amount,
		PayableAmount:   discount.ApplyTo(subtotal),
	}
	for _, item := range discount.Items {
		response.Items = append(response.Items, ItemDiscountResponse{
			ProductID: item.ProductID,
			Category:  item.Category,
			Percent:   item.Percent,
			Amount:    item.Amount,
		})
	}
	return response
}

// =============================================================================
// Discount tier DTOs
// =============================================================================

// CreateTierRequest represents a request to create a discount tier
type CreateTierRequest struct {
	Code      string          `json:"code" binding:"required,min=1,max=50"`
	Name      string          `json:"name" binding:"required,min=1,max=100"`
	Threshold decimal.Decimal `json:"threshold" binding:"required"`
	Percent   decimal.Decimal `json:"percent" binding:"required"`
	SortOrder int             `json:"sort_order"`
}

// UpdateTierRequest represents a request to update a discount tier
type UpdateTierRequest struct {
	Name      *string          `json:"name" binding:"omitempty,min=1,max=100"`
	Threshold *decimal.Decimal `json:"threshold"`
	Percent   *decimal.Decimal `json:"percent"`
	IsActive  *bool            `json:"is_active"`
}

// TierResponse represents a discount tier
type TierResponse struct {
	ID        uuid.UUID       `json:"id"`
	Code      string          `json:"code"`
	Name      string          `json:"name"`
	Threshold decimal.Decimal `json:"threshold"`
	Percent   decimal.Decimal `json:"percent"`
	SortOrder int             `json:"sort_order"`
	IsActive  bool            `json:"is_active"`
}

// ToTierResponse converts a tier record to a response DTO
func ToTierResponse(record *pricing.DiscountTierRecord) TierResponse {
	return TierResponse{
		ID:        record.ID,
		Code:      record.Code,
		Name:      record.Name,
		Threshold: record.Threshold,
		Percent:   record.Percent,
		SortOrder: record.SortOrder,
		IsActive:  record.IsActive,
	}
}

// ToTierResponses converts a list of tier records to response DTOs
func ToTierResponses(records []*pricing.DiscountTierRecord) []TierResponse {
	out := make([]TierResponse, len(records))
	for i, record := range records {
		out[i] = ToTierResponse(record)
	}
	return out
}
