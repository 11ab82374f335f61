package repository

import (
	"context"
	"testing"
	"time"

	"github.com/finlog/expense-ledger/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func day(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func createTxn(t *testing.T, repo *TransactionRepository, userID int64, amount model.Cents, date time.Time, isIncome bool) *model.Transaction {
	t.Helper()
	txn, err := repo.Create(context.Background(), &model.Transaction{
		UserID:   userID,
		Amount:   amount,
		Date:     date,
		Method:   "card",
		IsIncome: isIncome,
	})
	require.NoError(t, err)
	return txn
}

func TestTransactionRepository_Create(t *testing.T) {
	db := setupTestDB(t)
	repo := NewTransactionRepository(db)
	ctx := context.Background()

	t.Run("create transaction successfully", func(t *testing.T) {
		txn := &model.Transaction{
			UserID:      1,
			Amount:      model.Cents(1234),
			Date:        day(2024, time.March, 10),
			Description: "groceries",
			Method:      "card",
		}

		created, err := repo.Create(ctx, txn)
		require.NoError(t, err)
		assert.NotZero(t, created.ID)
		assert.Equal(t, model.Cents(1234), created.Amount)
		assert.False(t, created.Deleted)
	})

	t.Run("deleted flag is forced off on create", func(t *testing.T) {
		created, err := repo.Create(ctx, &model.Transaction{
			UserID:  1,
			Amount:  model.Cents(100),
			Date:    day(2024, time.March, 11),
			Deleted: true,
		})
		require.NoError(t, err)
		assert.False(t, created.Deleted)

		got, err := repo.GetByID(ctx, created.ID, false)
		require.NoError(t, err)
		assert.False(t, got.Deleted)
	})
}

func TestTransactionRepository_GetByID(t *testing.T) {
	db := setupTestDB(t)
	repo := NewTransactionRepository(db)
	ctx := context.Background()

	txn := createTxn(t, repo, 1, model.Cents(500), day(2024, time.January, 5), false)

	t.Run("found", func(t *testing.T) {
		got, err := repo.GetByID(ctx, txn.ID, false)
		require.NoError(t, err)
		assert.Equal(t, txn.ID, got.ID)
	})

	t.Run("missing id", func(t *testing.T) {
		_, err := repo.GetByID(ctx, 99999, false)
		assert.ErrorIs(t, err, ErrNotFound)
	})

	t.Run("deleted row hidden unless asked for", func(t *testing.T) {
		require.NoError(t, repo.SoftDelete(ctx, txn.ID))

		_, err := repo.GetByID(ctx, txn.ID, false)
		assert.ErrorIs(t, err, ErrNotFound)

		got, err := repo.GetByID(ctx, txn.ID, true)
		require.NoError(t, err)
		assert.True(t, got.Deleted)
	})
}

func TestTransactionRepository_List(t *testing.T) {
	db := setupTestDB(t)
	repo := NewTransactionRepository(db)
	ctx := context.Background()

	userID := int64(100)
	otherUser := int64(200)

	a := createTxn(t, repo, userID, model.Cents(1000), day(2024, time.January, 5), false)
	b := createTxn(t, repo, userID, model.Cents(2550), day(2024, time.January, 20), false)
	c := createTxn(t, repo, userID, model.Cents(500), day(2024, time.February, 1), true)
	d := createTxn(t, repo, userID, model.Cents(300), day(2024, time.January, 20), false) // same day as b
	createTxn(t, repo, otherUser, model.Cents(9999), day(2024, time.January, 10), false)

	t.Run("orders by date desc then id desc", func(t *testing.T) {
		items, total, err := repo.List(ctx, model.TransactionFilter{UserID: &userID})
		require.NoError(t, err)
		assert.Equal(t, int64(4), total)
		require.Len(t, items, 4)
		assert.Equal(t, c.ID, items[0].ID)
		assert.Equal(t, d.ID, items[1].ID) // higher id wins the same-day tie
		assert.Equal(t, b.ID, items[2].ID)
		assert.Equal(t, a.ID, items[3].ID)
	})

	t.Run("date range is inclusive on both ends", func(t *testing.T) {
		start := day(2024, time.January, 5)
		end := day(2024, time.January, 20)
		items, total, err := repo.List(ctx, model.TransactionFilter{
			UserID:    &userID,
			StartDate: &start,
			EndDate:   &end,
		})
		require.NoError(t, err)
		assert.Equal(t, int64(3), total)
		assert.Len(t, items, 3)
	})

	t.Run("is_income filter", func(t *testing.T) {
		isIncome := true
		items, total, err := repo.List(ctx, model.TransactionFilter{UserID: &userID, IsIncome: &isIncome})
		require.NoError(t, err)
		assert.Equal(t, int64(1), total)
		require.Len(t, items, 1)
		assert.Equal(t, c.ID, items[0].ID)
	})

	t.Run("pagination windows do not overlap", func(t *testing.T) {
		page1, total, err := repo.List(ctx, model.TransactionFilter{UserID: &userID, Page: 1, PerPage: 2})
		require.NoError(t, err)
		assert.Equal(t, int64(4), total)
		require.Len(t, page1, 2)

		page2, _, err := repo.List(ctx, model.TransactionFilter{UserID: &userID, Page: 2, PerPage: 2})
		require.NoError(t, err)
		require.Len(t, page2, 2)

		assert.NotEqual(t, page1[0].ID, page2[0].ID)
		assert.NotEqual(t, page1[1].ID, page2[1].ID)
	})

	t.Run("page below one is clamped to first page", func(t *testing.T) {
		clamped, _, err := repo.List(ctx, model.TransactionFilter{UserID: &userID, Page: -3, PerPage: 2})
		require.NoError(t, err)
		first, _, err := repo.List(ctx, model.TransactionFilter{UserID: &userID, Page: 1, PerPage: 2})
		require.NoError(t, err)
		assert.Equal(t, first[0].ID, clamped[0].ID)
	})

	t.Run("per_page zero falls back to default", func(t *testing.T) {
		items, _, err := repo.List(ctx, model.TransactionFilter{UserID: &userID, PerPage: 0})
		require.NoError(t, err)
		assert.Len(t, items, 4) // fewer rows than the default window
	})

	t.Run("page past the end is empty not an error", func(t *testing.T) {
		items, total, err := repo.List(ctx, model.TransactionFilter{UserID: &userID, Page: 50, PerPage: 20})
		require.NoError(t, err)
		assert.Equal(t, int64(4), total)
		assert.Empty(t, items)
	})

	t.Run("deleted rows are excluded by default", func(t *testing.T) {
		require.NoError(t, repo.SoftDelete(ctx, a.ID))

		items, total, err := repo.List(ctx, model.TransactionFilter{UserID: &userID})
		require.NoError(t, err)
		assert.Equal(t, int64(3), total)
		for _, it := range items {
			assert.NotEqual(t, a.ID, it.ID)
		}

		items, total, err = repo.List(ctx, model.TransactionFilter{UserID: &userID, IncludeDeleted: true})
		require.NoError(t, err)
		assert.Equal(t, int64(4), total)
		assert.Len(t, items, 4)
	})
}

func TestTransactionRepository_PerPageCap(t *testing.T) {
	db := setupTestDB(t)
	repo := NewTransactionRepository(db)
	ctx := context.Background()

	userID := int64(7)
	for i := 0; i < 105; i++ {
		createTxn(t, repo, userID, model.Cents(100), day(2024, time.January, 1).AddDate(0, 0, i%28), false)
	}

	items, total, err := repo.List(ctx, model.TransactionFilter{UserID: &userID, PerPage: 1000})
	require.NoError(t, err)
	assert.Equal(t, int64(105), total)
	assert.Len(t, items, 100)
}

func TestTransactionRepository_Update(t *testing.T) {
	db := setupTestDB(t)
	repo := NewTransactionRepository(db)
	ctx := context.Background()

	t.Run("partial update leaves other fields alone", func(t *testing.T) {
		txn := createTxn(t, repo, 1, model.Cents(1000), day(2024, time.May, 1), false)

		amount := model.Cents(2000)
		updated, err := repo.Update(ctx, txn.ID, model.TransactionUpdate{Amount: &amount})
		require.NoError(t, err)
		assert.Equal(t, model.Cents(2000), updated.Amount)
		assert.Equal(t, txn.Date, updated.Date)
		assert.Equal(t, txn.Method, updated.Method)
	})

	t.Run("clearing the category reference", func(t *testing.T) {
		catRepo := NewCategoryRepository(db)
		cat, err := catRepo.Create(ctx, &model.Category{Name: "food"})
		require.NoError(t, err)

		txn, err := repo.Create(ctx, &model.Transaction{
			UserID:     1,
			Amount:     model.Cents(100),
			Date:       day(2024, time.May, 2),
			CategoryID: &cat.ID,
		})
		require.NoError(t, err)
		require.NotNil(t, txn.CategoryID)

		var cleared *int64
		updated, err := repo.Update(ctx, txn.ID, model.TransactionUpdate{CategoryID: &cleared})
		require.NoError(t, err)
		assert.Nil(t, updated.CategoryID)
	})

	t.Run("soft-deleted rows stay editable", func(t *testing.T) {
		txn := createTxn(t, repo, 1, model.Cents(100), day(2024, time.May, 3), false)
		require.NoError(t, repo.SoftDelete(ctx, txn.ID))

		desc := "edited while deleted"
		updated, err := repo.Update(ctx, txn.ID, model.TransactionUpdate{Description: &desc})
		require.NoError(t, err)
		assert.Equal(t, desc, updated.Description)
		assert.True(t, updated.Deleted)
	})

	t.Run("missing id", func(t *testing.T) {
		desc := "x"
		_, err := repo.Update(ctx, 99999, model.TransactionUpdate{Description: &desc})
		assert.ErrorIs(t, err, ErrNotFound)
	})
}

func TestTransactionRepository_SoftDeleteLifecycle(t *testing.T) {
	db := setupTestDB(t)
	repo := NewTransactionRepository(db)
	ctx := context.Background()

	txn := createTxn(t, repo, 1, model.Cents(1000), day(2024, time.June, 1), false)

	t.Run("delete then delete again", func(t *testing.T) {
		require.NoError(t, repo.SoftDelete(ctx, txn.ID))
		assert.ErrorIs(t, repo.SoftDelete(ctx, txn.ID), ErrAlreadyDeleted)

		got, err := repo.GetByID(ctx, txn.ID, true)
		require.NoError(t, err)
		assert.True(t, got.Deleted)
	})

	t.Run("restore then restore again", func(t *testing.T) {
		restored, err := repo.Restore(ctx, txn.ID)
		require.NoError(t, err)
		assert.False(t, restored.Deleted)

		_, err = repo.Restore(ctx, txn.ID)
		assert.ErrorIs(t, err, ErrNotDeleted)
	})

	t.Run("lifecycle ops on a missing id", func(t *testing.T) {
		assert.ErrorIs(t, repo.SoftDelete(ctx, 99999), ErrNotFound)
		_, err := repo.Restore(ctx, 99999)
		assert.ErrorIs(t, err, ErrNotFound)
	})
}

func TestTransactionRepository_HardDelete(t *testing.T) {
	db := setupTestDB(t)
	repo := NewTransactionRepository(db)
	ctx := context.Background()

	t.Run("removes an active row permanently", func(t *testing.T) {
		txn := createTxn(t, repo, 1, model.Cents(100), day(2024, time.July, 1), false)
		require.NoError(t, repo.HardDelete(ctx, txn.ID))

		_, err := repo.GetByID(ctx, txn.ID, true)
		assert.ErrorIs(t, err, ErrNotFound)
	})

	t.Run("removes a soft-deleted row too", func(t *testing.T) {
		txn := createTxn(t, repo, 1, model.Cents(100), day(2024, time.July, 2), false)
		require.NoError(t, repo.SoftDelete(ctx, txn.ID))
		require.NoError(t, repo.HardDelete(ctx, txn.ID))

		_, err := repo.GetByID(ctx, txn.ID, true)
		assert.ErrorIs(t, err, ErrNotFound)
	})

	t.Run("missing id", func(t *testing.T) {
		assert.ErrorIs(t, repo.HardDelete(ctx, 99999), ErrNotFound)
	})
}

func TestTransactionRepository_TotalsByCategory(t *testing.T) {
	db := setupTestDB(t)
	repo := NewTransactionRepository(db)
	catRepo := NewCategoryRepository(db)
	ctx := context.Background()

	userID := int64(42)
	food, err := catRepo.Create(ctx, &model.Category{Name: "food"})
	require.NoError(t, err)
	rent, err := catRepo.Create(ctx, &model.Category{Name: "rent"})
	require.NoError(t, err)

	mk := func(amount model.Cents, catID *int64) *model.Transaction {
		txn, err := repo.Create(ctx, &model.Transaction{
			UserID:     userID,
			Amount:     amount,
			Date:       day(2024, time.August, 1),
			CategoryID: catID,
		})
		require.NoError(t, err)
		return txn
	}

	mk(model.Cents(1000), &food.ID)
	mk(model.Cents(250), &food.ID)
	mk(model.Cents(50000), &rent.ID)
	mk(model.Cents(700), nil)
	deleted := mk(model.Cents(100000), &rent.ID)
	require.NoError(t, repo.SoftDelete(ctx, deleted.ID))

	totals, err := repo.TotalsByCategory(ctx, userID)
	require.NoError(t, err)
	require.Len(t, totals, 3)

	byName := map[string]model.Cents{}
	for _, ct := range totals {
		byName[ct.Name] = ct.Total
	}
	assert.Equal(t, model.Cents(1250), byName["food"])
	assert.Equal(t, model.Cents(50000), byName["rent"])
	assert.Equal(t, model.Cents(700), byName["uncategorized"])
}
