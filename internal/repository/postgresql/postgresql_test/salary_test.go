package postgresql_test

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/nexora-hq/nexora-backend-go/internal/domain/salary"
	"github.com/nexora-hq/nexora-backend-go/internal/repository/postgresql"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestRecord(companyID string) salary.Record {
	return salary.Record{
		ID:           uuid.NewString(),
		CompanyID:    companyID,
		EmployeeID:   uuid.NewString(),
		PeriodStart:  time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC),
		PeriodEnd:    time.Date(2024, 1, 31, 0, 0, 0, 0, time.UTC),
		TotalHours:   decimal.NewFromInt(160),
		TotalPay:     decimal.NewFromInt(5000),
		Bonus:        decimal.NewFromInt(200),
		TaxDeduction: decimal.NewFromInt(300),
		OtherDeductions: []salary.DeductionLine{
			{Description: "insurance", Amount: decimal.NewFromInt(120)},
		},
		NetPay: decimal.NewFromInt(4700),
		Status: salary.StatusDraft,
	}
}

func TestSalaryRepository_CreateAndGet(t *testing.T) {
	db := requireTestDB(t)
	ctx := context.Background()
	truncateTables(t, ctx, "salaries")

	repo := postgresql.NewSalaryRepository(db)
	companyID := uuid.NewString()

	created, err := repo.Create(ctx, newTestRecord(companyID))
	require.NoError(t, err)
	assert.Equal(t, int64(1), created.Version)

	got, err := repo.GetByID(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, created.ID, got.ID)
	assert.Equal(t, companyID, got.CompanyID)
	assert.True(t, got.TotalPay.Equal(decimal.NewFromInt(5000)))
	require.Len(t, got.OtherDeductions, 1)
	assert.Equal(t, "insurance", got.OtherDeductions[0].Description)
	assert.True(t, got.OtherDeductions[0].Amount.Equal(decimal.NewFromInt(120)))
}

func TestSalaryRepository_GetByID_NotFound(t *testing.T) {
	db := requireTestDB(t)
	ctx := context.Background()

	repo := postgresql.NewSalaryRepository(db)
	_, err := repo.GetByID(ctx, uuid.NewString())
	assert.ErrorIs(t, err, salary.ErrSalaryNotFound)
}

func TestSalaryRepository_UpdateVersioned_Success(t *testing.T) {
	db := requireTestDB(t)
	ctx := context.Background()
	truncateTables(t, ctx, "salaries")

	repo := postgresql.NewSalaryRepository(db)
	created, err := repo.Create(ctx, newTestRecord(uuid.NewString()))
	require.NoError(t, err)

	created.Bonus = decimal.NewFromInt(350)
	created.TotalPay = decimal.NewFromInt(5150)
	created.NetPay = decimal.NewFromInt(4850)

	updated, err := repo.UpdateVersioned(ctx, created, 1)
	require.NoError(t, err)
	assert.Equal(t, int64(2), updated.Version)
	assert.True(t, updated.TotalPay.Equal(decimal.NewFromInt(5150)))
}

func TestSalaryRepository_UpdateVersioned_StaleVersionConflicts(t *testing.T) {
	db := requireTestDB(t)
	ctx := context.Background()
	truncateTables(t, ctx, "salaries")

	repo := postgresql.NewSalaryRepository(db)
	created, err := repo.Create(ctx, newTestRecord(uuid.NewString()))
	require.NoError(t, err)

	// First writer wins
	_, err = repo.UpdateVersioned(ctx, created, 1)
	require.NoError(t, err)

	// Second writer holds the old version
	_, err = repo.UpdateVersioned(ctx, created, 1)
	assert.ErrorIs(t, err, salary.ErrVersionConflict)
}

func TestSalaryRepository_UpdateVersioned_MissingRecord(t *testing.T) {
	db := requireTestDB(t)
	ctx := context.Background()
	truncateTables(t, ctx, "salaries")

	repo := postgresql.NewSalaryRepository(db)
	rec := newTestRecord(uuid.NewString())

	_, err := repo.UpdateVersioned(ctx, rec, 1)
	assert.ErrorIs(t, err, salary.ErrSalaryNotFound)
}

func TestSalaryRepository_Delete_WrongCompany(t *testing.T) {
	db := requireTestDB(t)
	ctx := context.Background()
	truncateTables(t, ctx, "salaries")

	repo := postgresql.NewSalaryRepository(db)
	created, err := repo.Create(ctx, newTestRecord(uuid.NewString()))
	require.NoError(t, err)

	err = repo.Delete(ctx, created.ID, uuid.NewString())
	assert.ErrorIs(t, err, salary.ErrSalaryNotFound)

	// Record untouched
	_, err = repo.GetByID(ctx, created.ID)
	assert.NoError(t, err)
}

func TestSalaryRepository_ListByCompany_Filters(t *testing.T) {
	db := requireTestDB(t)
	ctx := context.Background()
	truncateTables(t, ctx, "salaries")

	repo := postgresql.NewSalaryRepository(db)
	companyID := uuid.NewString()

	paid := newTestRecord(companyID)
	paid.Status = salary.StatusPaid
	_, err := repo.Create(ctx, paid)
	require.NoError(t, err)

	draft := newTestRecord(companyID)
	_, err = repo.Create(ctx, draft)
	require.NoError(t, err)

	other := newTestRecord(uuid.NewString())
	_, err = repo.Create(ctx, other)
	require.NoError(t, err)

	records, total, err := repo.ListByCompany(ctx, companyID, salary.Filter{Page: 1, Limit: 20})
	require.NoError(t, err)
	assert.Equal(t, int64(2), total)
	assert.Len(t, records, 2)

	status := salary.StatusPaid
	records, total, err = repo.ListByCompany(ctx, companyID, salary.Filter{Status: &status, Page: 1, Limit: 20})
	require.NoError(t, err)
	assert.Equal(t, int64(1), total)
	require.Len(t, records, 1)
	assert.Equal(t, salary.StatusPaid, records[0].Status)
}
