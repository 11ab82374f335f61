package repository

import (
	"context"
	"errors"

	"github.com/finlog/expense-ledger/internal/model"
	"github.com/finlog/expense-ledger/pkg/pg"
	"gorm.io/gorm"
)

var (
	// ErrNotFound is returned when an id does not resolve to a visible row.
	ErrNotFound = errors.New("transaction not found")
	// ErrAlreadyDeleted signals a soft-delete applied to an already deleted row.
	ErrAlreadyDeleted = errors.New("transaction already deleted")
	// ErrNotDeleted signals a restore applied to a row that is not deleted.
	ErrNotDeleted = errors.New("transaction is not deleted")
)

const (
	defaultPerPage = 20
	maxPerPage     = 100
)

type TransactionRepository struct {
	*pg.DB
}

func NewTransactionRepository(db *pg.DB) *TransactionRepository {
	return &TransactionRepository{
		db,
	}
}

func (r *TransactionRepository) Create(ctx context.Context, txn *model.Transaction) (*model.Transaction, error) {
	entity := toTransactionEntity(txn)
	entity.Deleted = false // rows always start out active

	if err := r.Write(ctx).WithContext(ctx).Create(entity).Error; err != nil {
		return nil, err
	}

	return toTransactionModel(entity), nil
}

func (r *TransactionRepository) GetByID(ctx context.Context, id int64, includeDeleted bool) (*model.Transaction, error) {
	q := r.Read(ctx).WithContext(ctx).Where("id = ?", id)
	if !includeDeleted {
		q = q.Where("deleted = ?", false)
	}

	var entity TransactionEntity
	if err := q.First(&entity).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return toTransactionModel(&entity), nil
}

// List resolves a filter specification into one ordered query. Filters are
// conjunctive; ordering is date descending with id descending as tie-break
// so pagination stays deterministic for same-day rows.
func (r *TransactionRepository) List(ctx context.Context, f model.TransactionFilter) ([]*model.Transaction, int64, error) {
	q := r.applyFilter(ctx, f)

	// Count before pagination
	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	q = q.Order("date DESC, id DESC")

	if !f.Unpaginated {
		page := f.Page
		if page < 1 {
			page = 1
		}
		perPage := f.PerPage
		if perPage <= 0 {
			perPage = defaultPerPage
		}
		if perPage > maxPerPage {
			perPage = maxPerPage
		}
		q = q.Limit(perPage).Offset((page - 1) * perPage)
	}

	var entities []*TransactionEntity
	if err := q.Find(&entities).Error; err != nil {
		return nil, 0, err
	}

	return toTransactionModels(entities), total, nil
}

func (r *TransactionRepository) applyFilter(ctx context.Context, f model.TransactionFilter) *gorm.DB {
	q := r.Read(ctx).WithContext(ctx).Model(&TransactionEntity{})

	if !f.IncludeDeleted {
		q = q.Where("deleted = ?", false)
	}
	if f.UserID != nil {
		q = q.Where("user_id = ?", *f.UserID)
	}
	if f.StartDate != nil {
		q = q.Where("date >= ?", model.Day(*f.StartDate))
	}
	if f.EndDate != nil {
		q = q.Where("date <= ?", model.Day(*f.EndDate))
	}
	if f.IsIncome != nil {
		q = q.Where("is_income = ?", *f.IsIncome)
	}
	if f.CategoryID != nil {
		q = q.Where("category_id = ?", *f.CategoryID)
	}
	return q
}

// Update applies a partial update restricted to the allow-listed fields.
// Soft-deleted rows may be edited without a restore first; the deleted flag
// itself is only reachable through the lifecycle transitions below.
func (r *TransactionRepository) Update(ctx context.Context, id int64, u model.TransactionUpdate) (*model.Transaction, error) {
	if _, err := r.GetByID(ctx, id, true); err != nil {
		return nil, err
	}

	values := map[string]interface{}{}
	if u.Amount != nil {
		values["amount"] = int64(*u.Amount)
	}
	if u.Date != nil {
		values["date"] = model.Day(*u.Date)
	}
	if u.Description != nil {
		values["description"] = *u.Description
	}
	if u.Method != nil {
		values["method"] = *u.Method
	}
	if u.IsIncome != nil {
		values["is_income"] = *u.IsIncome
	}
	if u.CategoryID != nil {
		values["category_id"] = *u.CategoryID
	}

	if len(values) > 0 {
		err := r.Write(ctx).WithContext(ctx).
			Model(&TransactionEntity{}).
			Where("id = ?", id).
			Updates(values).Error
		if err != nil {
			return nil, err
		}
	}

	return r.GetByID(ctx, id, true)
}

// SoftDelete marks an active row deleted. Already deleted rows keep their
// state but the caller gets ErrAlreadyDeleted as a no-op signal.
func (r *TransactionRepository) SoftDelete(ctx context.Context, id int64) error {
	result := r.Write(ctx).WithContext(ctx).
		Model(&TransactionEntity{}).
		Where("id = ? AND deleted = ?", id, false).
		Update("deleted", true)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		if _, err := r.GetByID(ctx, id, true); err != nil {
			return err
		}
		return ErrAlreadyDeleted
	}
	return nil
}

// Restore flips a deleted row back to active and returns it. Active rows
// yield ErrNotDeleted.
func (r *TransactionRepository) Restore(ctx context.Context, id int64) (*model.Transaction, error) {
	result := r.Write(ctx).WithContext(ctx).
		Model(&TransactionEntity{}).
		Where("id = ? AND deleted = ?", id, true).
		Update("deleted", false)
	if result.Error != nil {
		return nil, result.Error
	}
	if result.RowsAffected == 0 {
		if _, err := r.GetByID(ctx, id, true); err != nil {
			return nil, err
		}
		return nil, ErrNotDeleted
	}
	return r.GetByID(ctx, id, false)
}

// HardDelete removes the row entirely, regardless of the deleted flag.
func (r *TransactionRepository) HardDelete(ctx context.Context, id int64) error {
	result := r.Write(ctx).WithContext(ctx).
		Where("id = ?", id).
		Delete(&TransactionEntity{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

// TotalsByCategory sums non-deleted amounts per category for one user.
// Rows without a category land in the "uncategorized" bucket. Results are
// ordered by name so chart output is stable.
func (r *TransactionRepository) TotalsByCategory(ctx context.Context, userID int64) ([]model.CategoryTotal, error) {
	type row struct {
		Name  string `gorm:"column:name"`
		Total int64  `gorm:"column:total"`
	}

	var rows []row
	err := r.Read(ctx).WithContext(ctx).
		Table("transactions AS t").
		Select("COALESCE(c.name, 'uncategorized') AS name, SUM(t.amount) AS total").
		Joins("LEFT JOIN categories AS c ON c.id = t.category_id").
		Where("t.user_id = ? AND t.deleted = ?", userID, false).
		Group("c.name").
		Order("name ASC").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}

	totals := make([]model.CategoryTotal, len(rows))
	for i, r := range rows {
		totals[i] = model.CategoryTotal{Name: r.Name, Total: model.Cents(r.Total)}
	}
	return totals, nil
}
