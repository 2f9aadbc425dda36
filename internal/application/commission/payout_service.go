package commission

import (
	"context"
	"time"

	"github.com/editora/backend/internal/domain/commission"
	"github.com/editora/backend/internal/domain/shared"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// PayoutService moves commission records through the payout side of
// their lifecycle: releasing pending records once the holding period
// elapsed, grouping released records into batches and settling batches.
type PayoutService struct {
	recordRepo        commission.RecordRepository
	batchRepo         commission.PaymentBatchRepository
	holdingPeriodDays int
	logger            *zap.Logger
}

// NewPayoutService creates a new PayoutService.
// holdingPeriodDays is how long after the installment due date a
// pending record is held before it becomes releasable.
func NewPayoutService(
	recordRepo commission.RecordRepository,
	batchRepo commission.PaymentBatchRepository,
	holdingPeriodDays int,
	logger *zap.Logger,
) *PayoutService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &PayoutService{
		recordRepo:        recordRepo,
		batchRepo:         batchRepo,
		holdingPeriodDays: holdingPeriodDays,
		logger:            logger,
	}
}

// ReleaseDue promotes every pending record whose due date plus the
// holding period has passed. Returns the number of records released.
func (s *PayoutService) ReleaseDue(ctx context.Context, tenantID uuid.UUID, asOf time.Time) (int, error) {
	cutoff := asOf.AddDate(0, 0, -s.holdingPeriodDays)
	records, err := s.recordRepo.FindPendingDueBefore(ctx, tenantID, cutoff)
	if err != nil {
		return 0, err
	}

	released := 0
	for _, record := range records {
		if err := record.Release(asOf); err != nil {
			return released, err
		}
		if err := s.recordRepo.Save(ctx, record); err != nil {
			return released, err
		}
		released++
	}

	s.logger.Info("Pending commissions released",
		zap.Time("as_of", asOf),
		zap.Int("released", released))

	return released, nil
}

// Release promotes a single pending record, bypassing the holding
// period. Used by admins for manual early release.
func (s *PayoutService) Release(ctx context.Context, tenantID, recordID uuid.UUID) (*RecordResponse, error) {
	record, err := s.recordRepo.FindByID(ctx, tenantID, recordID)
	if err != nil {
		return nil, err
	}
	if err := record.Release(time.Now()); err != nil {
		return nil, err
	}
	if err := s.recordRepo.Save(ctx, record); err != nil {
		return nil, err
	}
	response := ToRecordResponse(record)
	return &response, nil
}

// Cancel voids a record that has not been paid, e.g. after a refund
func (s *PayoutService) Cancel(ctx context.Context, tenantID, recordID uuid.UUID, reason string) (*RecordResponse, error) {
	record, err := s.recordRepo.FindByID(ctx, tenantID, recordID)
	if err != nil {
		return nil, err
	}
	if err := record.Cancel(reason); err != nil {
		return nil, err
	}
	if err := s.recordRepo.Save(ctx, record); err != nil {
		return nil, err
	}
	response := ToRecordResponse(record)
	return &response, nil
}

// CreateBatch groups a beneficiary's released records inside a period
// into a new payout batch.
func (s *PayoutService) CreateBatch(ctx context.Context, tenantID uuid.UUID, req CreateBatchRequest) (*BatchResponse, error) {
	beneficiaryType := commission.BeneficiaryType(req.BeneficiaryType)
	records, err := s.recordRepo.FindReleasedForBeneficiary(
		ctx, tenantID, beneficiaryType, req.BeneficiaryID, req.PeriodStart, req.PeriodEnd)
	if err != nil {
		return nil, err
	}
	if len(records) == 0 {
		return nil, shared.NewDomainError("NOTHING_TO_PAY", "No released commissions in the requested period")
	}

	batch, err := commission.NewPaymentBatch(tenantID, beneficiaryType, req.BeneficiaryID, req.PeriodStart, req.PeriodEnd)
	if err != nil {
		return nil, err
	}
	for _, record := range records {
		if err := batch.Attach(record); err != nil {
			return nil, err
		}
	}

	if err := s.batchRepo.Save(ctx, batch); err != nil {
		return nil, err
	}
	for _, record := range records {
		if err := s.recordRepo.Save(ctx, record); err != nil {
			return nil, err
		}
	}

	s.logger.Info("Payout batch created",
		zap.String("batch_id", batch.ID.String()),
		zap.String("beneficiary_type", req.BeneficiaryType),
		zap.Int("records", batch.RecordCount),
		zap.String("total", batch.TotalAmount.String()))

	response := ToBatchResponse(batch)
	return &response, nil
}

// SettleBatch marks a batch and all of its records as paid
func (s *PayoutService) SettleBatch(ctx context.Context, tenantID, batchID uuid.UUID) (*BatchResponse, error) {
	batch, err := s.batchRepo.FindByID(ctx, tenantID, batchID)
	if err != nil {
		return nil, err
	}

	records, err := s.recordRepo.FindByBatch(ctx, tenantID, batchID)
	if err != nil {
		return nil, err
	}

	settledAt := time.Now()
	if err := batch.Settle(settledAt); err != nil {
		return nil, err
	}
	for _, record := range records {
		// Batched records cannot be cancelled, so every record here is
		// still RELEASED and the batch total matches what gets paid.
		if err := record.MarkPaid(settledAt); err != nil {
			return nil, err
		}
		if err := s.recordRepo.Save(ctx, record); err != nil {
			return nil, err
		}
	}

	if err := s.batchRepo.Save(ctx, batch); err != nil {
		return nil, err
	}

	s.logger.Info("Payout batch settled",
		zap.String("batch_id", batch.ID.String()),
		zap.String("total", batch.TotalAmount.String()))

	response := ToBatchResponse(batch)
	return &response, nil
}

// GetBatch returns one payment batch
func (s *PayoutService) GetBatch(ctx context.Context, tenantID, batchID uuid.UUID) (*BatchResponse, error) {
	batch, err := s.batchRepo.FindByID(ctx, tenantID, batchID)
	if err != nil {
		return nil, err
	}
	response := ToBatchResponse(batch)
	return &response, nil
}

// ListRecords returns a beneficiary's commission statement
func (s *PayoutService) ListRecords(ctx context.Context, tenantID uuid.UUID, beneficiaryType string, beneficiaryID uuid.UUID, page, pageSize int) ([]RecordResponse, int64, error) {
	if page <= 0 {
		page = 1
	}
	if pageSize <= 0 {
		pageSize = 20
	}
	records, total, err := s.recordRepo.FindForBeneficiary(
		ctx, tenantID, commission.BeneficiaryType(beneficiaryType), beneficiaryID, page, pageSize)
	if err != nil {
		return nil, 0, err
	}
	return ToRecordResponses(records), total, nil
}
