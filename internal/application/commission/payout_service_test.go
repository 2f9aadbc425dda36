package commission

import (
	"context"
	"testing"
	"time"

	"github.com/editora/backend/internal/domain/commission"
	"github.com/editora/backend/internal/domain/shared/valueobject"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// MockPaymentBatchRepository is a mock implementation of commission.PaymentBatchRepository
type MockPaymentBatchRepository struct {
	mock.Mock
}

func (m *MockPaymentBatchRepository) FindByID(ctx context.Context, tenantID, id uuid.UUID) (*commission.PaymentBatch, error) {
	args := m.Called(ctx, tenantID, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*commission.PaymentBatch), args.Error(1)
}

func (m *MockPaymentBatchRepository) FindForBeneficiary(ctx context.Context, tenantID uuid.UUID, beneficiaryType commission.BeneficiaryType, beneficiaryID uuid.UUID, page, pageSize int) ([]*commission.PaymentBatch, int64, error) {
	args := m.Called(ctx, tenantID, beneficiaryType, beneficiaryID, page, pageSize)
	return args.Get(0).([]*commission.PaymentBatch), args.Get(1).(int64), args.Error(2)
}

func (m *MockPaymentBatchRepository) Save(ctx context.Context, batch *commission.PaymentBatch) error {
	args := m.Called(ctx, batch)
	return args.Error(0)
}

func newPendingRecord(t *testing.T, tenantID uuid.UUID, beneficiaryID uuid.UUID, dueDate time.Time) *commission.Record {
	t.Helper()
	record, err := commission.NewRecord(
		tenantID, commission.BeneficiaryManager,
		beneficiaryID, uuid.New(), uuid.New(), uuid.New(),
		decimal.NewFromInt(1000), decimal.NewFromInt(10), dueDate,
	)
	require.NoError(t, err)
	return record
}

func TestPayoutServiceReleaseDue(t *testing.T) {
	tenantID := uuid.New()
	asOf := time.Date(2024, 5, 15, 0, 0, 0, 0, time.UTC)

	t.Run("releases records past the holding period", func(t *testing.T) {
		recordRepo := new(MockRecordRepository)
		batchRepo := new(MockPaymentBatchRepository)
		service := NewPayoutService(recordRepo, batchRepo, 30, nil)

		due := newPendingRecord(t, tenantID, uuid.New(), asOf.AddDate(0, 0, -45))
		cutoff := asOf.AddDate(0, 0, -30)
		recordRepo.On("FindPendingDueBefore", mock.Anything, tenantID, cutoff).Return([]*commission.Record{due}, nil)
		recordRepo.On("Save", mock.Anything, due).Return(nil)

		released, err := service.ReleaseDue(context.Background(), tenantID, asOf)

		require.NoError(t, err)
		assert.Equal(t, 1, released)
		assert.Equal(t, commission.StatusReleased, due.Status)
	})

	t.Run("nothing due releases nothing", func(t *testing.T) {
		recordRepo := new(MockRecordRepository)
		batchRepo := new(MockPaymentBatchRepository)
		service := NewPayoutService(recordRepo, batchRepo, 30, nil)

		recordRepo.On("FindPendingDueBefore", mock.Anything, tenantID, mock.Anything).Return([]*commission.Record{}, nil)

		released, err := service.ReleaseDue(context.Background(), tenantID, asOf)

		require.NoError(t, err)
		assert.Zero(t, released)
	})
}

func TestPayoutServiceCreateBatch(t *testing.T) {
	tenantID := uuid.New()
	beneficiaryID := uuid.New()
	periodStart := time.Date(2024, 4, 1, 0, 0, 0, 0, time.UTC)
	periodEnd := time.Date(2024, 5, 1, 0, 0, 0, 0, time.UTC)

	request := CreateBatchRequest{
		BeneficiaryType: "MANAGER",
		BeneficiaryID:   beneficiaryID,
		PeriodStart:     periodStart,
		PeriodEnd:       periodEnd,
	}

	t.Run("groups released records into a batch", func(t *testing.T) {
		recordRepo := new(MockRecordRepository)
		batchRepo := new(MockPaymentBatchRepository)
		service := NewPayoutService(recordRepo, batchRepo, 30, nil)

		first := newPendingRecord(t, tenantID, beneficiaryID, periodStart)
		second := newPendingRecord(t, tenantID, beneficiaryID, periodStart)
		require.NoError(t, first.Release(periodStart))
		require.NoError(t, second.Release(periodStart))

		recordRepo.On("FindReleasedForBeneficiary", mock.Anything, tenantID, commission.BeneficiaryManager, beneficiaryID, periodStart, periodEnd).
			Return([]*commission.Record{first, second}, nil)
		batchRepo.On("Save", mock.Anything, mock.AnythingOfType("*commission.PaymentBatch")).Return(nil)
		recordRepo.On("Save", mock.Anything, mock.AnythingOfType("*commission.Record")).Return(nil)

		response, err := service.CreateBatch(context.Background(), tenantID, request)

		require.NoError(t, err)
		assert.Equal(t, 2, response.RecordCount)
		assert.True(t, response.TotalAmount.Equal(decimal.NewFromInt(200)))
		assert.Equal(t, "OPEN", response.Status)
		assert.NotNil(t, first.BatchID)
	})

	t.Run("rejects an empty period", func(t *testing.T) {
		recordRepo := new(MockRecordRepository)
		batchRepo := new(MockPaymentBatchRepository)
		service := NewPayoutService(recordRepo, batchRepo, 30, nil)

		recordRepo.On("FindReleasedForBeneficiary", mock.Anything, tenantID, commission.BeneficiaryManager, beneficiaryID, periodStart, periodEnd).
			Return([]*commission.Record{}, nil)

		_, err := service.CreateBatch(context.Background(), tenantID, request)

		assert.Error(t, err)
		batchRepo.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
	})
}

func TestPayoutServiceSettleBatch(t *testing.T) {
	tenantID := uuid.New()
	beneficiaryID := uuid.New()

	t.Run("settles the batch and pays its records", func(t *testing.T) {
		recordRepo := new(MockRecordRepository)
		batchRepo := new(MockPaymentBatchRepository)
		service := NewPayoutService(recordRepo, batchRepo, 30, nil)

		batch, err := commission.NewPaymentBatch(
			tenantID, commission.BeneficiaryManager, beneficiaryID,
			time.Date(2024, 4, 1, 0, 0, 0, 0, time.UTC),
			time.Date(2024, 5, 1, 0, 0, 0, 0, time.UTC),
		)
		require.NoError(t, err)

		record := newPendingRecord(t, tenantID, beneficiaryID, time.Now())
		require.NoError(t, record.Release(time.Now()))
		require.NoError(t, batch.Attach(record))

		batchRepo.On("FindByID", mock.Anything, tenantID, batch.ID).Return(batch, nil)
		recordRepo.On("FindByBatch", mock.Anything, tenantID, batch.ID).Return([]*commission.Record{record}, nil)
		recordRepo.On("Save", mock.Anything, record).Return(nil)
		batchRepo.On("Save", mock.Anything, batch).Return(nil)

		response, err := service.SettleBatch(context.Background(), tenantID, batch.ID)

		require.NoError(t, err)
		assert.Equal(t, "SETTLED", response.Status)
		assert.Equal(t, commission.StatusPaid, record.Status)
	})
}

func TestPayoutServiceCancel(t *testing.T) {
	tenantID := uuid.New()

	t.Run("refuses to cancel a batched record", func(t *testing.T) {
		recordRepo := new(MockRecordRepository)
		batchRepo := new(MockPaymentBatchRepository)
		service := NewPayoutService(recordRepo, batchRepo, 30, nil)

		beneficiaryID := uuid.New()
		batch, err := commission.NewPaymentBatch(
			tenantID, commission.BeneficiaryManager, beneficiaryID,
			time.Date(2024, 4, 1, 0, 0, 0, 0, time.UTC),
			time.Date(2024, 5, 1, 0, 0, 0, 0, time.UTC),
		)
		require.NoError(t, err)

		record := newPendingRecord(t, tenantID, beneficiaryID, time.Now())
		require.NoError(t, record.Release(time.Now()))
		require.NoError(t, batch.Attach(record))

		recordRepo.On("FindByID", mock.Anything, tenantID, record.ID).Return(record, nil)

		_, err = service.Cancel(context.Background(), tenantID, record.ID, "sale refunded")

		// The record stays in the batch, so the batch total still
		// matches what will be paid at settlement.
		assert.Error(t, err)
		assert.Equal(t, commission.StatusReleased, record.Status)
		assert.True(t, batch.TotalAmount.Equals(valueobject.NewMoneyBRL(record.Amount)))
		recordRepo.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
	})
}
