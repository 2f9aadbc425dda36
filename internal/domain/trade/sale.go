package trade

import (
	"time"

	"github.com/editora/backend/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// SaleStatus represents the lifecycle state of a sale
type SaleStatus string

const (
	SaleStatusPending   SaleStatus = "PENDING"
	SaleStatusConfirmed SaleStatus = "CONFIRMED"
	SaleStatusCancelled SaleStatus = "CANCELLED"
)

// IsValid checks if the status is a valid SaleStatus
func (s SaleStatus) IsValid() bool {
	switch s {
	case SaleStatusPending, SaleStatusConfirmed, SaleStatusCancelled:
		return true
	}
	return false
}

// CanTransitionTo checks if the status can transition to the target status
func (s SaleStatus) CanTransitionTo(target SaleStatus) bool {
	switch s {
	case SaleStatusPending:
		return target == SaleStatusConfirmed || target == SaleStatusCancelled
	case SaleStatusConfirmed, SaleStatusCancelled:
		return false // Terminal states
	}
	return false
}

// PaymentMethod identifies how a sale was paid
type PaymentMethod string

const (
	PaymentMethodPix        PaymentMethod = "PIX"
	PaymentMethodBoleto     PaymentMethod = "BOLETO"
	PaymentMethodCreditCard PaymentMethod = "CREDIT_CARD"
)

// InstallmentStatus represents the payment state of one parcel
type InstallmentStatus string

const (
	InstallmentStatusOpen InstallmentStatus = "OPEN"
	InstallmentStatusPaid InstallmentStatus = "PAID"
)

// Installment is one parcel of a sale. Commission allocation runs once
// per installment, keyed by its ID, so that split payments each carry
// their own due date.
type Installment struct {
	ID        uuid.UUID
	SaleID    uuid.UUID
	Number    int
	Amount    decimal.Decimal
	DueDate   time.Time
	Status    InstallmentStatus
	PaidAt    *time.Time
	CreatedAt time.Time
	UpdatedAt time.Time
}

// MarkPaid records the payment of this parcel
func (i *Installment) MarkPaid(at time.Time) error {
	if i.Status == InstallmentStatusPaid {
		return shared.ErrInvalidState
	}
	i.Status = InstallmentStatusPaid
	i.PaidAt = &at
	i.UpdatedAt = time.Now()
	return nil
}

// Sale represents a confirmed transaction with a customer, originated by
// a vendor. Once confirmed a sale is immutable except for status
// transitions on itself and its installments.
type Sale struct {
	shared.TenantAggregateRoot
	SaleNumber      string
	CustomerID      uuid.UUID
	VendorID        uuid.UUID
	TotalAmount     decimal.Decimal // cart subtotal before discount
	DiscountType    string
	DiscountPercent decimal.Decimal
	DiscountAmount  decimal.Decimal
	PayableAmount   decimal.Decimal // TotalAmount - DiscountAmount
	PaymentMethod   PaymentMethod
	Status          SaleStatus
	Installments    []Installment
	ConfirmedAt     *time.Time
	CancelledAt     *time.Time
	CancelReason    string
}

// NewSale creates a pending sale for a customer and originating vendor
func NewSale(tenantID uuid.UUID, saleNumber string, customerID, vendorID uuid.UUID, totalAmount decimal.Decimal) (*Sale, error) {
	if saleNumber == "" {
		return nil, shared.NewDomainError("INVALID_SALE_NUMBER", "Sale number cannot be empty")
	}
	if len(saleNumber) > 50 {
		return nil, shared.NewDomainError("INVALID_SALE_NUMBER", "Sale number cannot exceed 50 characters")
	}
	if customerID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_CUSTOMER", "Customer ID cannot be empty")
	}
	if vendorID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_VENDOR", "Vendor ID cannot be empty")
	}
	if totalAmount.IsNegative() {
		return nil, shared.NewDomainError("INVALID_AMOUNT", "Sale total cannot be negative")
	}

	return &Sale{
		TenantAggregateRoot: shared.NewTenantAggregateRoot(tenantID),
		SaleNumber:          saleNumber,
		CustomerID:          customerID,
		VendorID:            vendorID,
		TotalAmount:         totalAmount,
		DiscountPercent:     decimal.Zero,
		DiscountAmount:      decimal.Zero,
		PayableAmount:       totalAmount,
		Status:              SaleStatusPending,
	}, nil
}

// ApplyDiscount folds a resolved discount into the sale totals.
// Only allowed while the sale is still pending.
func (s *Sale) ApplyDiscount(discountType string, percent, amount decimal.Decimal) error {
	if s.Status != SaleStatusPending {
		return shared.ErrInvalidState
	}
	if amount.IsNegative() || amount.GreaterThan(s.TotalAmount) {
		return shared.NewDomainError("INVALID_DISCOUNT", "Discount amount must be between 0 and the sale total")
	}
	s.DiscountType = discountType
	s.DiscountPercent = percent
	s.DiscountAmount = amount
	s.PayableAmount = s.TotalAmount.Sub(amount)
	s.UpdatedAt = time.Now()
	return nil
}

// SplitIntoInstallments divides the payable amount into count parcels
// due monthly starting at firstDueDate. Remainder cents go to the first
// parcels so the parts always sum to the payable amount.
func (s *Sale) SplitIntoInstallments(count int, firstDueDate time.Time) error {
	if s.Status != SaleStatusPending {
		return shared.ErrInvalidState
	}
	if count <= 0 {
		return shared.NewDomainError("INVALID_INSTALLMENTS", "Installment count must be positive")
	}
	if len(s.Installments) > 0 {
		return shared.NewDomainError("INVALID_INSTALLMENTS", "Sale is already split into installments")
	}

	base := s.PayableAmount.Div(decimal.NewFromInt(int64(count))).Truncate(2)
	remainder := s.PayableAmount.Sub(base.Mul(decimal.NewFromInt(int64(count))))
	remainderCents := remainder.Mul(decimal.NewFromInt(100)).IntPart()

	now := time.Now()
	cent := decimal.NewFromFloat(0.01)
	s.Installments = make([]Installment, count)
	for i := range count {
		amount := base
		if int64(i) < remainderCents {
			amount = amount.Add(cent)
		}
		s.Installments[i] = Installment{
			ID:        uuid.New(),
			SaleID:    s.ID,
			Number:    i + 1,
			Amount:    amount,
			DueDate:   firstDueDate.AddDate(0, i, 0),
			Status:    InstallmentStatusOpen,
			CreatedAt: now,
			UpdatedAt: now,
		}
	}
	s.UpdatedAt = now
	return nil
}

// ConfirmPayment transitions the sale to confirmed once the gateway
// reports payment. Sales without an explicit split get one implicit
// installment due immediately so allocation always has a parcel to key on.
func (s *Sale) ConfirmPayment(method PaymentMethod, at time.Time) error {
	if !s.Status.CanTransitionTo(SaleStatusConfirmed) {
		return shared.ErrInvalidState
	}
	if len(s.Installments) == 0 {
		if err := s.SplitIntoInstallments(1, at); err != nil {
			return err
		}
	}
	s.PaymentMethod = method
	s.Status = SaleStatusConfirmed
	s.ConfirmedAt = &at
	s.UpdatedAt = time.Now()
	s.AddDomainEvent(NewSaleConfirmedEvent(s))
	return nil
}

// Cancel transitions the sale to cancelled
func (s *Sale) Cancel(reason string) error {
	if !s.Status.CanTransitionTo(SaleStatusCancelled) {
		return shared.ErrInvalidState
	}
	now := time.Now()
	s.Status = SaleStatusCancelled
	s.CancelledAt = &now
	s.CancelReason = reason
	s.UpdatedAt = now
	return nil
}

// InstallmentByID returns the installment with the given ID, if any
func (s *Sale) InstallmentByID(id uuid.UUID) (*Installment, bool) {
	for i := range s.Installments {
		if s.Installments[i].ID == id {
			return &s.Installments[i], true
		}
	}
	return nil, false
}
