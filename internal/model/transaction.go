package model

import (
	"errors"
	"time"
)

type Transaction struct {
	ID          int64     `json:"id"          db:"id"          gorm:"primaryKey;autoIncrement;column:id"`
	UserID      int64     `json:"user_id"     db:"user_id"     gorm:"column:user_id;not null;index"`
	User        *User     `json:"-"                            gorm:"foreignKey:UserID;references:ID"`
	CategoryID  *int64    `json:"category_id" db:"category_id" gorm:"column:category_id;index"` // nullable (ON DELETE SET NULL)
	Category    *Category `json:"-"                            gorm:"foreignKey:CategoryID;references:ID;constraint:OnDelete:SET NULL"`
	Amount      Cents     `json:"amount"      db:"amount"      gorm:"column:amount;not null"`
	Date        time.Time `json:"date"        db:"date"        gorm:"column:date;not null;index"` // date only, UTC midnight
	Description string    `json:"description" db:"description" gorm:"column:description"`
	Method      string    `json:"method"      db:"method"      gorm:"column:method"`
	IsIncome    bool      `json:"is_income"   db:"is_income"   gorm:"column:is_income;not null;default:false"`
	Deleted     bool      `json:"deleted"     db:"deleted"     gorm:"column:deleted;not null;default:false"`
}

func (Transaction) TableName() string { return "transactions" }

// TransactionCreateRequest is the input for creating a transaction.
// Created rows always start out active (deleted = false).
type TransactionCreateRequest struct {
	UserID      int64
	Amount      Cents
	Date        time.Time
	Description string
	Method      string
	IsIncome    bool
	CategoryID  *int64
}

func (p TransactionCreateRequest) Validate() error {
	if p.UserID == 0 {
		return errors.New("user_id is required")
	}
	if p.Amount < 0 {
		return ErrInvalidAmount
	}
	if p.Date.IsZero() {
		return errors.New("date is required")
	}
	return nil
}

// TransactionUpdate enumerates the only fields a partial update may touch.
// A nil pointer leaves the field unchanged; anything outside this set is
// rejected at the boundary instead of being silently applied.
type TransactionUpdate struct {
	Amount      *Cents
	Date        *time.Time
	Description *string
	Method      *string
	IsIncome    *bool
	CategoryID  **int64 // outer nil = unchanged, inner nil = clear the reference
}

func (u TransactionUpdate) IsEmpty() bool {
	return u.Amount == nil && u.Date == nil && u.Description == nil &&
		u.Method == nil && u.IsIncome == nil && u.CategoryID == nil
}

// TransactionFilter controls List and every aggregation query. Filters are
// conjunctive; a nil pointer means unconstrained. Deleted rows are excluded
// unless IncludeDeleted is set.
type TransactionFilter struct {
	UserID         *int64
	StartDate      *time.Time // inclusive
	EndDate        *time.Time // inclusive
	IsIncome       *bool
	CategoryID     *int64
	IncludeDeleted bool
	Page           int // clamped to >= 1
	PerPage        int // clamped to [1, 100], default 20
	Unpaginated    bool
}

// Day truncates t to its calendar date at UTC midnight, the canonical
// representation of transaction dates.
func Day(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}
