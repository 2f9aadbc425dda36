package persistence

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/editora/backend/internal/domain/commission"
	"github.com/editora/backend/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

// newMockRecordRepository creates a GormCommissionRecordRepository with a mocked SQL connection
func newMockRecordRepository(t *testing.T) (*GormCommissionRecordRepository, sqlmock.Sqlmock, *sql.DB) {
	mockDB, mock, err := sqlmock.New()
	require.NoError(t, err)

	dialector := postgres.New(postgres.Config{
		Conn:       mockDB,
		DriverName: "postgres",
	})

	gormDB, err := gorm.Open(dialector, &gorm.Config{
		SkipDefaultTransaction: true,
	})
	require.NoError(t, err)

	return NewGormCommissionRecordRepository(gormDB), mock, mockDB
}

func testRecord(t *testing.T) *commission.Record {
	t.Helper()
	record, err := commission.NewRecord(
		uuid.New(),
		commission.BeneficiaryAdmin,
		uuid.New(), uuid.New(), uuid.New(), uuid.New(),
		decimal.NewFromInt(1000),
		decimal.NewFromInt(5),
		time.Now().AddDate(0, 0, 30),
	)
	require.NoError(t, err)
	return record
}

func TestGormCommissionRecordRepository_CreateIfAbsent(t *testing.T) {
	t.Run("inserts new record and reports created", func(t *testing.T) {
		repo, mock, mockDB := newMockRecordRepository(t)
		defer mockDB.Close()

		record := testRecord(t)

		mock.ExpectExec(`INSERT INTO "commission_records" .* ON CONFLICT \("installment_id","beneficiary_type"\) DO NOTHING`).
			WillReturnResult(sqlmock.NewResult(0, 1))

		created, err := repo.CreateIfAbsent(context.Background(), record)

		assert.NoError(t, err)
		assert.True(t, created)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("swallows duplicate and reports not created", func(t *testing.T) {
		repo, mock, mockDB := newMockRecordRepository(t)
		defer mockDB.Close()

		record := testRecord(t)

		mock.ExpectExec(`INSERT INTO "commission_records" .* ON CONFLICT \("installment_id","beneficiary_type"\) DO NOTHING`).
			WillReturnResult(sqlmock.NewResult(0, 0))

		created, err := repo.CreateIfAbsent(context.Background(), record)

		assert.NoError(t, err)
		assert.False(t, created)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("propagates database error", func(t *testing.T) {
		repo, mock, mockDB := newMockRecordRepository(t)
		defer mockDB.Close()

		record := testRecord(t)

		mock.ExpectExec(`INSERT INTO "commission_records"`).
			WillReturnError(assert.AnError)

		created, err := repo.CreateIfAbsent(context.Background(), record)

		assert.Error(t, err)
		assert.False(t, created)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestGormCommissionRecordRepository_FindByID(t *testing.T) {
	t.Run("returns not found for missing record", func(t *testing.T) {
		repo, mock, mockDB := newMockRecordRepository(t)
		defer mockDB.Close()

		tenantID := uuid.New()
		recordID := uuid.New()

		mock.ExpectQuery(`SELECT \* FROM "commission_records" WHERE tenant_id = \$1 AND id = \$2 ORDER BY .* LIMIT .*`).
			WithArgs(tenantID, recordID, 1).
			WillReturnError(gorm.ErrRecordNotFound)

		record, err := repo.FindByID(context.Background(), tenantID, recordID)

		assert.Error(t, err)
		assert.Nil(t, record)
		assert.Equal(t, shared.ErrNotFound, err)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestGormCommissionRecordRepository_FindPendingDueBefore(t *testing.T) {
	t.Run("filters by status and cutoff", func(t *testing.T) {
		repo, mock, mockDB := newMockRecordRepository(t)
		defer mockDB.Close()

		tenantID := uuid.New()
		recordID := uuid.New()
		cutoff := time.Now()

		rows := sqlmock.NewRows([]string{"id", "tenant_id", "beneficiary_type", "status", "sale_amount", "percent", "amount"}).
			AddRow(recordID, tenantID, "ADMIN", "PENDING", decimal.NewFromInt(1000), decimal.NewFromInt(5), decimal.NewFromInt(50))

		mock.ExpectQuery(`SELECT \* FROM "commission_records" WHERE tenant_id = \$1 AND status = \$2 AND due_date <= \$3 ORDER BY due_date ASC`).
			WithArgs(tenantID, commission.StatusPending, cutoff).
			WillReturnRows(rows)

		records, err := repo.FindPendingDueBefore(context.Background(), tenantID, cutoff)

		assert.NoError(t, err)
		require.Len(t, records, 1)
		assert.Equal(t, recordID, records[0].ID)
		assert.Equal(t, commission.StatusPending, records[0].Status)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestGormCommissionRecordRepository_FindReleasedForBeneficiary(t *testing.T) {
	t.Run("excludes batched records", func(t *testing.T) {
		repo, mock, mockDB := newMockRecordRepository(t)
		defer mockDB.Close()

		tenantID := uuid.New()
		beneficiaryID := uuid.New()
		from := time.Now().AddDate(0, -1, 0)
		to := time.Now()

		rows := sqlmock.NewRows([]string{"id", "tenant_id", "beneficiary_type", "beneficiary_id", "status"}).
			AddRow(uuid.New(), tenantID, "MANAGER", beneficiaryID, "RELEASED")

		mock.ExpectQuery(`SELECT \* FROM "commission_records" WHERE tenant_id = \$1 AND beneficiary_type = \$2 AND beneficiary_id = \$3 AND status = \$4 AND batch_id IS NULL AND due_date >= \$5 AND due_date < \$6 ORDER BY due_date ASC`).
			WithArgs(tenantID, commission.BeneficiaryManager, beneficiaryID, commission.StatusReleased, from, to).
			WillReturnRows(rows)

		records, err := repo.FindReleasedForBeneficiary(
			context.Background(), tenantID, commission.BeneficiaryManager, beneficiaryID, from, to)

		assert.NoError(t, err)
		require.Len(t, records, 1)
		assert.Equal(t, commission.StatusReleased, records[0].Status)
		assert.Nil(t, records[0].BatchID)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestGormCommissionRecordRepository_FindForBeneficiary(t *testing.T) {
	t.Run("paginates newest first", func(t *testing.T) {
		repo, mock, mockDB := newMockRecordRepository(t)
		defer mockDB.Close()

		tenantID := uuid.New()
		beneficiaryID := uuid.New()

		mock.ExpectQuery(`SELECT count\(\*\) FROM "commission_records" WHERE tenant_id = \$1 AND beneficiary_type = \$2 AND beneficiary_id = \$3`).
			WithArgs(tenantID, commission.BeneficiaryAdmin, beneficiaryID).
			WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(3))

		rows := sqlmock.NewRows([]string{"id", "tenant_id", "beneficiary_type", "beneficiary_id"}).
			AddRow(uuid.New(), tenantID, "ADMIN", beneficiaryID).
			AddRow(uuid.New(), tenantID, "ADMIN", beneficiaryID)

		mock.ExpectQuery(`SELECT \* FROM "commission_records" WHERE tenant_id = \$1 AND beneficiary_type = \$2 AND beneficiary_id = \$3 ORDER BY created_at DESC LIMIT .*`).
			WithArgs(tenantID, commission.BeneficiaryAdmin, beneficiaryID, 2).
			WillReturnRows(rows)

		records, total, err := repo.FindForBeneficiary(
			context.Background(), tenantID, commission.BeneficiaryAdmin, beneficiaryID, 1, 2)

		assert.NoError(t, err)
		assert.Equal(t, int64(3), total)
		assert.Len(t, records, 2)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}
