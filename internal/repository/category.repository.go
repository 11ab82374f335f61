package repository

import (
	"context"
	"errors"

	"github.com/finlog/expense-ledger/internal/model"
	"github.com/finlog/expense-ledger/pkg/pg"
	"gorm.io/gorm"
)

var ErrCategoryNotFound = errors.New("category not found")

type CategoryRepository struct {
	*pg.DB
}

func NewCategoryRepository(db *pg.DB) *CategoryRepository {
	return &CategoryRepository{
		db,
	}
}

func (r *CategoryRepository) Create(ctx context.Context, cat *model.Category) (*model.Category, error) {
	entity := toCategoryEntity(cat)

	if err := r.Write(ctx).WithContext(ctx).Create(entity).Error; err != nil {
		return nil, err
	}

	return toCategoryModel(entity), nil
}

func (r *CategoryRepository) GetByID(ctx context.Context, id int64) (*model.Category, error) {
	var entity CategoryEntity
	err := r.Read(ctx).WithContext(ctx).Where("id = ?", id).First(&entity).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrCategoryNotFound
		}
		return nil, err
	}
	return toCategoryModel(&entity), nil
}

func (r *CategoryRepository) GetByName(ctx context.Context, name string) (*model.Category, error) {
	var entity CategoryEntity
	err := r.Read(ctx).WithContext(ctx).Where("name = ?", name).First(&entity).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrCategoryNotFound
		}
		return nil, err
	}
	return toCategoryModel(&entity), nil
}

func (r *CategoryRepository) List(ctx context.Context, f model.CategoryFilter) ([]*model.Category, error) {
	q := r.Read(ctx).WithContext(ctx).Model(&CategoryEntity{})

	if f.FavoritesOnly {
		q = q.Where("is_favorite = ?", true)
	}
	if f.RecurringOnly {
		q = q.Where("is_recurring = ?", true)
	}

	var entities []*CategoryEntity
	if err := q.Order("name ASC").Find(&entities).Error; err != nil {
		return nil, err
	}
	return toCategoryModels(entities), nil
}

// Update applies the allow-listed field changes. Flag toggles are
// last-write-wins; there is no version token.
func (r *CategoryRepository) Update(ctx context.Context, id int64, u model.CategoryUpdate) (*model.Category, error) {
	if _, err := r.GetByID(ctx, id); err != nil {
		return nil, err
	}

	values := map[string]interface{}{}
	if u.Name != nil {
		values["name"] = *u.Name
	}
	if u.IsFavorite != nil {
		values["is_favorite"] = *u.IsFavorite
	}
	if u.IsRecurring != nil {
		values["is_recurring"] = *u.IsRecurring
	}

	if len(values) > 0 {
		err := r.Write(ctx).WithContext(ctx).
			Model(&CategoryEntity{}).
			Where("id = ?", id).
			Updates(values).Error
		if err != nil {
			return nil, err
		}
	}

	return r.GetByID(ctx, id)
}

// Delete removes the category and clears the weak reference on every
// transaction pointing at it, in one transaction. Transactions themselves
// are never cascaded.
func (r *CategoryRepository) Delete(ctx context.Context, id int64) error {
	return r.WithinTransaction(ctx, func(ctx context.Context) error {
		err := r.Write(ctx).WithContext(ctx).
			Model(&TransactionEntity{}).
			Where("category_id = ?", id).
			Update("category_id", nil).Error
		if err != nil {
			return err
		}

		result := r.Write(ctx).WithContext(ctx).
			Where("id = ?", id).
			Delete(&CategoryEntity{})
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return ErrCategoryNotFound
		}
		return nil
	})
}
