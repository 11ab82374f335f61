package repository

import (
	"time"

	"github.com/finlog/expense-ledger/internal/model"
)

type TransactionEntity struct {
	ID          int64     `db:"id"          gorm:"primaryKey;autoIncrement;column:id"`
	UserID      int64     `db:"user_id"     gorm:"column:user_id;not null;index"`
	CategoryID  *int64    `db:"category_id" gorm:"column:category_id;index"`
	Amount      int64     `db:"amount"      gorm:"column:amount;not null"` // cents
	Date        time.Time `db:"date"        gorm:"column:date;not null;index"`
	Description string    `db:"description" gorm:"column:description"`
	Method      string    `db:"method"      gorm:"column:method"`
	IsIncome    bool      `db:"is_income"   gorm:"column:is_income;not null;default:false"`
	Deleted     bool      `db:"deleted"     gorm:"column:deleted;not null;default:false;index"`
}

func (TransactionEntity) TableName() string {
	return "transactions"
}

func toTransactionEntity(m *model.Transaction) *TransactionEntity {
	if m == nil {
		return nil
	}
	return &TransactionEntity{
		ID:          m.ID,
		UserID:      m.UserID,
		CategoryID:  m.CategoryID,
		Amount:      int64(m.Amount),
		Date:        model.Day(m.Date),
		Description: m.Description,
		Method:      m.Method,
		IsIncome:    m.IsIncome,
		Deleted:     m.Deleted,
	}
}

func toTransactionModel(e *TransactionEntity) *model.Transaction {
	if e == nil {
		return nil
	}
	return &model.Transaction{
		ID:          e.ID,
		UserID:      e.UserID,
		CategoryID:  e.CategoryID,
		Amount:      model.Cents(e.Amount),
		Date:        model.Day(e.Date),
		Description: e.Description,
		Method:      e.Method,
		IsIncome:    e.IsIncome,
		Deleted:     e.Deleted,
	}
}

func toTransactionModels(entities []*TransactionEntity) []*model.Transaction {
	models := make([]*model.Transaction, len(entities))
	for i, e := range entities {
		models[i] = toTransactionModel(e)
	}
	return models
}
