package export

import (
	"encoding/csv"
	"io"
	"strconv"

	"github.com/finlog/expense-ledger/internal/model"
)

var csvHeader = []string{"amount", "date", "description", "method", "is_income", "category_id", "deleted"}

// WriteTransactionsCSV streams transactions as CSV rows to w. Amounts keep
// their two fraction digits; dates are ISO calendar dates.
func WriteTransactionsCSV(w io.Writer, transactions []*model.Transaction) error {
	cw := csv.NewWriter(w)

	if err := cw.Write(csvHeader); err != nil {
		return err
	}

	for _, txn := range transactions {
		categoryID := ""
		if txn.CategoryID != nil {
			categoryID = strconv.FormatInt(*txn.CategoryID, 10)
		}
		record := []string{
			txn.Amount.String(),
			txn.Date.Format("2006-01-02"),
			txn.Description,
			txn.Method,
			strconv.FormatBool(txn.IsIncome),
			categoryID,
			strconv.FormatBool(txn.Deleted),
		}
		if err := cw.Write(record); err != nil {
			return err
		}
	}

	cw.Flush()
	return cw.Error()
}
