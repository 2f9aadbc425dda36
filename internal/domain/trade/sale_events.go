package trade

import (
	"github.com/editora/backend/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Event types for the trade domain
const (
	EventTypeSaleConfirmed = "trade.sale.confirmed"
)

// SaleConfirmedEvent is published when a sale's payment is confirmed.
// Commission allocation subscribes to this event.
type SaleConfirmedEvent struct {
	shared.BaseDomainEvent
	SaleNumber    string          `json:"sale_number"`
	VendorID      uuid.UUID       `json:"vendor_id"`
	CustomerID    uuid.UUID       `json:"customer_id"`
	PayableAmount decimal.Decimal `json:"payable_amount"`
	Installments  int             `json:"installments"`
}

// NewSaleConfirmedEvent creates a new SaleConfirmedEvent
func NewSaleConfirmedEvent(sale *Sale) *SaleConfirmedEvent {
	return &SaleConfirmedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeSaleConfirmed, "Sale", sale.ID, sale.TenantID),
		SaleNumber:      sale.SaleNumber,
		VendorID:        sale.VendorID,
		CustomerID:      sale.CustomerID,
		PayableAmount:   sale.PayableAmount,
		Installments:    len(sale.Installments),
	}
}
