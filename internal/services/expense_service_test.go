package services

import (
	"context"
	"testing"
	"time"

	"github.com/finlog/expense-ledger/internal/model"
	"github.com/finlog/expense-ledger/internal/repository"
	"github.com/finlog/expense-ledger/test/fixtures"
	"github.com/finlog/expense-ledger/test/helpers"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func seedLedger(t *testing.T, repo *repository.TransactionRepository, userID int64) {
	t.Helper()
	ctx := context.Background()

	seed := []struct {
		amount   model.Cents
		date     time.Time
		isIncome bool
	}{
		{model.Cents(1000), fixtures.Date(2024, time.January, 5), false},
		{model.Cents(2550), fixtures.Date(2024, time.January, 20), false},
		{model.Cents(500), fixtures.Date(2024, time.February, 1), true},
	}
	for _, s := range seed {
		_, err := repo.Create(ctx, fixtures.NewTestTransaction(userID, s.amount, s.date, s.isIncome))
		require.NoError(t, err)
	}
}

func TestExpenseService_TotalByPeriod(t *testing.T) {
	db := helpers.SetupTestDB(t)
	repo := repository.NewTransactionRepository(db)
	svc := NewExpenseService(repo)
	ctx := context.Background()

	userID := int64(1)
	seedLedger(t, repo, userID)
	f := fixtures.TransactionFilterByUser(userID)

	t.Run("sums the bounded period exactly", func(t *testing.T) {
		total, err := svc.TotalByPeriod(ctx, f,
			fixtures.Date(2024, time.January, 1), fixtures.Date(2024, time.January, 31))
		require.NoError(t, err)
		assert.Equal(t, model.Cents(3550), total)
		assert.Equal(t, "35.50", total.String())
	})

	t.Run("empty period sums to zero", func(t *testing.T) {
		total, err := svc.TotalByPeriod(ctx, f,
			fixtures.Date(2030, time.January, 1), fixtures.Date(2030, time.January, 31))
		require.NoError(t, err)
		assert.Equal(t, model.Cents(0), total)
	})

	t.Run("inverted bounds match nothing", func(t *testing.T) {
		total, err := svc.TotalByPeriod(ctx, f,
			fixtures.Date(2024, time.January, 31), fixtures.Date(2024, time.January, 1))
		require.NoError(t, err)
		assert.Equal(t, model.Cents(0), total)
	})

	t.Run("deleted rows never count", func(t *testing.T) {
		txn, err := repo.Create(ctx, fixtures.NewTestTransaction(userID, model.Cents(99999), fixtures.Date(2024, time.January, 10), false))
		require.NoError(t, err)
		require.NoError(t, repo.SoftDelete(ctx, txn.ID))

		total, err := svc.TotalByPeriod(ctx, f,
			fixtures.Date(2024, time.January, 1), fixtures.Date(2024, time.January, 31))
		require.NoError(t, err)
		assert.Equal(t, model.Cents(3550), total)
	})
}

func TestExpenseService_CompareMonths(t *testing.T) {
	db := helpers.SetupTestDB(t)
	repo := repository.NewTransactionRepository(db)
	svc := NewExpenseService(repo)
	ctx := context.Background()

	userID := int64(1)
	seedLedger(t, repo, userID)
	f := fixtures.TransactionFilterByUser(userID)

	t.Run("reports totals and percent change", func(t *testing.T) {
		cmp, err := svc.CompareMonths(ctx, f,
			fixtures.Date(2024, time.January, 1), fixtures.Date(2024, time.February, 1))
		require.NoError(t, err)

		assert.Equal(t, "2024-01", cmp.Month1)
		assert.Equal(t, model.Cents(3550), cmp.Month1Total)
		assert.Equal(t, "2024-02", cmp.Month2)
		assert.Equal(t, model.Cents(500), cmp.Month2Total)
		require.NotNil(t, cmp.PercentChange)
		assert.InDelta(t, -85.915, *cmp.PercentChange, 0.001)
	})

	t.Run("zero baseline leaves percent change undefined", func(t *testing.T) {
		cmp, err := svc.CompareMonths(ctx, f,
			fixtures.Date(2023, time.June, 1), fixtures.Date(2024, time.January, 1))
		require.NoError(t, err)

		assert.Equal(t, model.Cents(0), cmp.Month1Total)
		assert.Equal(t, model.Cents(3550), cmp.Month2Total)
		assert.Nil(t, cmp.PercentChange)
	})

	t.Run("mid-month arguments snap to whole months", func(t *testing.T) {
		cmp, err := svc.CompareMonths(ctx, f,
			fixtures.Date(2024, time.January, 17), fixtures.Date(2024, time.February, 28))
		require.NoError(t, err)
		assert.Equal(t, model.Cents(3550), cmp.Month1Total)
		assert.Equal(t, model.Cents(500), cmp.Month2Total)
	})
}

func TestExpenseService_KeyIndicators(t *testing.T) {
	db := helpers.SetupTestDB(t)
	repo := repository.NewTransactionRepository(db)
	svc := NewExpenseService(repo)
	ctx := context.Background()

	userID := int64(1)
	seedLedger(t, repo, userID)
	f := fixtures.TransactionFilterByUser(userID)

	t.Run("average max and min over the period", func(t *testing.T) {
		ind, err := svc.KeyIndicators(ctx, f,
			fixtures.Date(2024, time.January, 1), fixtures.Date(2024, time.January, 31))
		require.NoError(t, err)

		assert.Equal(t, model.Cents(2550), ind.Max)
		assert.Equal(t, model.Cents(1000), ind.Min)
		assert.InDelta(t, 35.50/31.0, ind.AveragePerDay, 1e-9)
	})

	t.Run("single day period divides by one", func(t *testing.T) {
		ind, err := svc.KeyIndicators(ctx, f,
			fixtures.Date(2024, time.January, 20), fixtures.Date(2024, time.January, 20))
		require.NoError(t, err)
		assert.InDelta(t, 25.50, ind.AveragePerDay, 1e-9)
		assert.Equal(t, model.Cents(2550), ind.Max)
		assert.Equal(t, model.Cents(2550), ind.Min)
	})

	t.Run("empty set yields explicit zeros", func(t *testing.T) {
		ind, err := svc.KeyIndicators(ctx, f,
			fixtures.Date(2030, time.January, 1), fixtures.Date(2030, time.January, 31))
		require.NoError(t, err)
		assert.Zero(t, ind.AveragePerDay)
		assert.Equal(t, model.Cents(0), ind.Max)
		assert.Equal(t, model.Cents(0), ind.Min)
	})
}
