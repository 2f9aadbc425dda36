package trade

import (
	"time"

	"github.com/editora/backend/internal/domain/trade"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// SaleItemRequest is one cart line of a sale
type SaleItemRequest struct {
	ProductID   uuid.UUID       `json:"product_id" binding:"required"`
	ProductName string          `json:"product_name" binding:"max=200"`
	UnitPrice   decimal.Decimal `json:"unit_price" binding:"required"`
	Quantity    decimal.Decimal `json:"quantity" binding:"required"`
	Category    string          `json:"category" binding:"max=100"`
	Promotional bool            `json:"promotional"`
}

// CreateSaleRequest represents a request to register a sale
type CreateSaleRequest struct {
	SaleNumber   string            `json:"sale_number" binding:"required,min=1,max=50"`
	CustomerID   uuid.UUID         `json:"customer_id" binding:"required"`
	VendorID     uuid.UUID         `json:"vendor_id" binding:"required"`
	Items        []SaleItemRequest `json:"items" binding:"required,min=1,dive"`
	Installments int               `json:"installments" binding:"omitempty,min=1,max=12"`
	FirstDueDate *time.Time        `json:"first_due_date"`
}

// ConfirmPaymentRequest confirms a sale's payment
type ConfirmPaymentRequest struct {
	PaymentMethod string `json:"payment_method" binding:"required,oneof=PIX BOLETO CREDIT_CARD"`
}

// InstallmentResponse represents one parcel of a sale
type InstallmentResponse struct {
	ID      uuid.UUID       `json:"id"`
	Number  int             `json:"number"`
	Amount  decimal.Decimal `json:"amount"`
	DueDate time.Time       `json:"due_date"`
	Status  string          `json:"status"`
	PaidAt  *time.Time      `json:"paid_at,omitempty"`
}

// SaleResponse represents a sale with its installments
type SaleResponse struct {
	ID              uuid.UUID             `json:"id"`
	SaleNumber      string                `json:"sale_number"`
	CustomerID      uuid.UUID             `json:"customer_id"`
	VendorID        uuid.UUID             `json:"vendor_id"`
	TotalAmount     decimal.Decimal       `json:"total_amount"`
	DiscountType    string                `json:"discount_type,omitempty"`
	DiscountPercent decimal.Decimal       `json:"discount_percent"`
	DiscountAmount  decimal.Decimal       `json:"discount_amount"`
	PayableAmount   decimal.Decimal       `json:"payable_amount"`
	PaymentMethod   string                `json:"payment_method,omitempty"`
	Status          string                `json:"status"`
	Installments    []InstallmentResponse `json:"installments,omitempty"`
	ConfirmedAt     *time.Time            `json:"confirmed_at,omitempty"`
	CreatedAt       time.Time             `json:"created_at"`
}

// ToSaleResponse converts a sale aggregate to a response DTO
func ToSaleResponse(sale *trade.Sale) SaleResponse {
	response := SaleResponse{
		ID:              sale.ID,
		SaleNumber:      sale.SaleNumber,
		CustomerID:      sale.CustomerID,
		VendorID:        sale.VendorID,
		TotalAmount:     sale.TotalAmount,
		DiscountType:    sale.DiscountType,
		DiscountPercent: sale.DiscountPercent,
		DiscountAmount:  sale.DiscountAmount,
		PayableAmount:   sale.PayableAmount,
		PaymentMethod:   string(sale.PaymentMethod),
		Status:          string(sale.Status),
		ConfirmedAt:     sale.ConfirmedAt,
		CreatedAt:       sale.CreatedAt,
	}
	for _, installment := range sale.Installments {
		response.Installments = append(response.Installments, InstallmentResponse{
			ID:      installment.ID,
			Number:  installment.Number,
			Amount:  installment.Amount,
			DueDate: installment.DueDate,
			Status:  string(installment.Status),
			PaidAt:  installment.PaidAt,
		})
	}
	return response
}

// ToSaleResponses converts a list of sales to response DTOs
func ToSaleResponses(sales []*trade.Sale) []SaleResponse {
	out := make([]SaleResponse, len(sales))
	for i, sale := range sales {
		out[i] = ToSaleResponse(sale)
	}
	return out
}
