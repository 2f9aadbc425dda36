package trade

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestSale(t *testing.T, total float64) *Sale {
	t.Helper()
	sale, err := NewSale(uuid.New(), "VD-2024-0001", uuid.New(), uuid.New(), decimal.NewFromFloat(total))
	require.NoError(t, err)
	return sale
}

func TestNewSale(t *testing.T) {
	t.Run("creates pending sale", func(t *testing.T) {
		sale := newTestSale(t, 1000)

		assert.Equal(t, SaleStatusPending, sale.Status)
		assert.True(t, sale.PayableAmount.Equal(sale.TotalAmount))
		assert.Empty(t, sale.Installments)
	})

	t.Run("fails with empty sale number", func(t *testing.T) {
		_, err := NewSale(uuid.New(), "", uuid.New(), uuid.New(), decimal.NewFromInt(100))

		assert.Error(t, err)
	})

	t.Run("fails with negative total", func(t *testing.T) {
		_, err := NewSale(uuid.New(), "VD-1", uuid.New(), uuid.New(), decimal.NewFromInt(-1))

		assert.Error(t, err)
	})
}

func TestSaleApplyDiscount(t *testing.T) {
	t.Run("folds discount into payable amount", func(t *testing.T) {
		sale := newTestSale(t, 650)

		err := sale.ApplyDiscount("RESELLER_TIER", decimal.NewFromInt(25), decimal.NewFromFloat(162.50))

		require.NoError(t, err)
		assert.True(t, sale.PayableAmount.Equal(decimal.NewFromFloat(487.50)))
	})

	t.Run("rejects discount above the total", func(t *testing.T) {
		sale := newTestSale(t, 100)

		err := sale.ApplyDiscount("SPECIAL_VENDOR", decimal.NewFromInt(50), decimal.NewFromInt(101))

		assert.Error(t, err)
	})

	t.Run("rejected after confirmation", func(t *testing.T) {
		sale := newTestSale(t, 100)
		require.NoError(t, sale.ConfirmPayment(PaymentMethodPix, time.Now()))

		err := sale.ApplyDiscount("SPECIAL_VENDOR", decimal.NewFromInt(10), decimal.NewFromInt(10))

		assert.Error(t, err)
	})
}

func TestSaleSplitIntoInstallments(t *testing.T) {
	t.Run("parcels sum to the payable amount", func(t *testing.T) {
		sale := newTestSale(t, 100)
		firstDue := time.Date(2024, 3, 10, 0, 0, 0, 0, time.UTC)

		require.NoError(t, sale.SplitIntoInstallments(3, firstDue))

		require.Len(t, sale.Installments, 3)
		sum := decimal.Zero
		for _, inst := range sale.Installments {
			sum = sum.Add(inst.Amount)
		}
		assert.True(t, sum.Equal(sale.PayableAmount))
		// 100 / 3 = 33.33 with one leftover cent on the first parcel
		assert.True(t, sale.Installments[0].Amount.Equal(decimal.NewFromFloat(33.34)))
		assert.True(t, sale.Installments[2].Amount.Equal(decimal.NewFromFloat(33.33)))
	})

	t.Run("due dates advance monthly", func(t *testing.T) {
		sale := newTestSale(t, 300)
		firstDue := time.Date(2024, 1, 15, 0, 0, 0, 0, time.UTC)

		require.NoError(t, sale.SplitIntoInstallments(3, firstDue))

		assert.Equal(t, time.Date(2024, 2, 15, 0, 0, 0, 0, time.UTC), sale.Installments[1].DueDate)
		assert.Equal(t, time.Date(2024, 3, 15, 0, 0, 0, 0, time.UTC), sale.Installments[2].DueDate)
	})

	t.Run("rejects double split", func(t *testing.T) {
		sale := newTestSale(t, 300)
		require.NoError(t, sale.SplitIntoInstallments(2, time.Now()))

		assert.Error(t, sale.SplitIntoInstallments(2, time.Now()))
	})
}

func TestSaleConfirmPayment(t *testing.T) {
	t.Run("confirms and records event", func(t *testing.T) {
		sale := newTestSale(t, 500)

		require.NoError(t, sale.ConfirmPayment(PaymentMethodBoleto, time.Now()))

		assert.Equal(t, SaleStatusConfirmed, sale.Status)
		events := sale.GetDomainEvents()
		require.Len(t, events, 1)
		assert.Equal(t, EventTypeSaleConfirmed, events[0].EventType())
	})

	t.Run("creates implicit single installment when never split", func(t *testing.T) {
		sale := newTestSale(t, 500)

		require.NoError(t, sale.ConfirmPayment(PaymentMethodPix, time.Now()))

		require.Len(t, sale.Installments, 1)
		assert.True(t, sale.Installments[0].Amount.Equal(sale.PayableAmount))
	})

	t.Run("cannot confirm twice", func(t *testing.T) {
		sale := newTestSale(t, 500)
		require.NoError(t, sale.ConfirmPayment(PaymentMethodPix, time.Now()))

		assert.Error(t, sale.ConfirmPayment(PaymentMethodPix, time.Now()))
	})

	t.Run("cannot confirm a cancelled sale", func(t *testing.T) {
		sale := newTestSale(t, 500)
		require.NoError(t, sale.Cancel("customer gave up"))

		assert.Error(t, sale.ConfirmPayment(PaymentMethodPix, time.Now()))
	})
}

func TestInstallmentMarkPaid(t *testing.T) {
	t.Run("marks open parcel as paid", func(t *testing.T) {
		sale := newTestSale(t, 200)
		require.NoError(t, sale.SplitIntoInstallments(2, time.Now()))

		inst := &sale.Installments[0]
		require.NoError(t, inst.MarkPaid(time.Now()))

		assert.Equal(t, InstallmentStatusPaid, inst.Status)
		assert.NotNil(t, inst.PaidAt)
	})

	t.Run("cannot pay twice", func(t *testing.T) {
		sale := newTestSale(t, 200)
		require.NoError(t, sale.SplitIntoInstallments(1, time.Now()))

		inst := &sale.Installments[0]
		require.NoError(t, inst.MarkPaid(time.Now()))

		assert.Error(t, inst.MarkPaid(time.Now()))
	})
}
