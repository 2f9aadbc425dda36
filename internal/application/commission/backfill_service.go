package commission

import (
	"context"
	"time"

	"github.com/editora/backend/internal/domain/trade"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// BackfillService re-runs commission allocation over a range of
// confirmed sales. It exists for reconciliation: sales whose callback
// was missed, or records wiped by an operational incident, are
// re-allocated; everything already in place is skipped by the
// idempotency guard.
type BackfillService struct {
	saleRepo      trade.SaleRepository
	allocationSvc *AllocationService
	logger        *zap.Logger
}

// NewBackfillService creates a new BackfillService
func NewBackfillService(saleRepo trade.SaleRepository, allocationSvc *AllocationService, logger *zap.Logger) *BackfillService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &BackfillService{
		saleRepo:      saleRepo,
		allocationSvc: allocationSvc,
		logger:        logger,
	}
}

// Run sweeps confirmed sales in [from, to) and allocates missing
// commission records. A failure on one sale is logged and counted but
// never halts the sweep; the remaining sales are still processed.
func (s *BackfillService) Run(ctx context.Context, tenantID uuid.UUID, from, to time.Time) (*BackfillResult, error) {
	sales, err := s.saleRepo.FindConfirmedInRange(ctx, tenantID, from, to)
	if err != nil {
		return nil, err
	}

	result := &BackfillResult{}
	for _, sale := range sales {
		if err := ctx.Err(); err != nil {
			return result, err
		}

		allocation, err := s.allocationSvc.AllocateSale(ctx, sale)
		if err != nil {
			result.SalesFailed++
			s.logger.Warn("Backfill allocation failed for sale",
				zap.String("sale_id", sale.ID.String()),
				zap.Error(err))
			continue
		}

		result.SalesProcessed++
		result.RecordsCreated += allocation.Created
		result.RecordsSkipped += allocation.Skipped
	}

	s.logger.Info("Backfill sweep completed",
		zap.Time("from", from),
		zap.Time("to", to),
		zap.Int("sales_processed", result.SalesProcessed),
		zap.Int("records_created", result.RecordsCreated),
		zap.Int("records_skipped", result.RecordsSkipped),
		zap.Int("sales_failed", result.SalesFailed))

	return result, nil
}
