package fixtures

import (
	"time"

	"github.com/finlog/expense-ledger/internal/model"
)

func Date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func NewTestTransaction(userID int64, amount model.Cents, date time.Time, isIncome bool) *model.Transaction {
	return &model.Transaction{
		UserID:   userID,
		Amount:   amount,
		Date:     model.Day(date),
		Method:   "card",
		IsIncome: isIncome,
	}
}

func NewTestTransactionCreateRequest(userID int64, amount model.Cents, date time.Time) model.TransactionCreateRequest {
	return model.TransactionCreateRequest{
		UserID: userID,
		Amount: amount,
		Date:   date,
		Method: "card",
	}
}

func TransactionFilterByUser(userID int64) model.TransactionFilter {
	return model.TransactionFilter{
		UserID: &userID,
	}
}

func TransactionFilterWithPagination(userID int64, page, perPage int) model.TransactionFilter {
	return model.TransactionFilter{
		UserID:  &userID,
		Page:    page,
		PerPage: perPage,
	}
}
