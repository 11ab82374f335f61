package repository

import (
	"github.com/finlog/expense-ledger/internal/model"
)

type CategoryEntity struct {
	ID          int64  `db:"id"           gorm:"primaryKey;autoIncrement;column:id"`
	Name        string `db:"name"         gorm:"column:name;not null"`
	IsFavorite  bool   `db:"is_favorite"  gorm:"column:is_favorite;not null;default:false"`
	IsRecurring bool   `db:"is_recurring" gorm:"column:is_recurring;not null;default:false"`
}

func (CategoryEntity) TableName() string {
	return "categories"
}

func toCategoryEntity(m *model.Category) *CategoryEntity {
	if m == nil {
		return nil
	}
	return &CategoryEntity{
		ID:          m.ID,
		Name:        m.Name,
		IsFavorite:  m.IsFavorite,
		IsRecurring: m.IsRecurring,
	}
}

func toCategoryModel(e *CategoryEntity) *model.Category {
	if e == nil {
		return nil
	}
	return &model.Category{
		ID:          e.ID,
		Name:        e.Name,
		IsFavorite:  e.IsFavorite,
		IsRecurring: e.IsRecurring,
	}
}

func toCategoryModels(entities []*CategoryEntity) []*model.Category {
	models := make([]*model.Category, len(entities))
	for i, e := range entities {
		models[i] = toCategoryModel(e)
	}
	return models
}
