package model

import "errors"

type Category struct {
	ID          int64  `json:"id"           db:"id"           gorm:"primaryKey;autoIncrement;column:id"`
	Name        string `json:"name"         db:"name"         gorm:"column:name;not null"`
	IsFavorite  bool   `json:"is_favorite"  db:"is_favorite"  gorm:"column:is_favorite;not null;default:false"`
	IsRecurring bool   `json:"is_recurring" db:"is_recurring" gorm:"column:is_recurring;not null;default:false"`
}

func (Category) TableName() string { return "categories" }

type CategoryCreateRequest struct {
	Name        string
	IsFavorite  bool
	IsRecurring bool
}

func (p CategoryCreateRequest) Validate() error {
	if p.Name == "" {
		return errors.New("name is required")
	}
	return nil
}

// CategoryUpdate is the allow-list of mutable category fields.
type CategoryUpdate struct {
	Name        *string
	IsFavorite  *bool
	IsRecurring *bool
}

func (u CategoryUpdate) IsEmpty() bool {
	return u.Name == nil && u.IsFavorite == nil && u.IsRecurring == nil
}

// CategoryFilter narrows category listings.
type CategoryFilter struct {
	FavoritesOnly bool
	RecurringOnly bool
}
