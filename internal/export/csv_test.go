package export

import (
	"bytes"
	"encoding/csv"
	"testing"
	"time"

	"github.com/finlog/expense-ledger/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWriteTransactionsCSV(t *testing.T) {
	catID := int64(3)
	transactions := []*model.Transaction{
		{
			ID:          1,
			UserID:      1,
			Amount:      model.Cents(1234),
			Date:        time.Date(2024, time.January, 5, 0, 0, 0, 0, time.UTC),
			Description: "groceries, weekly",
			Method:      "card",
			CategoryID:  &catID,
		},
		{
			ID:       2,
			UserID:   1,
			Amount:   model.Cents(50),
			Date:     time.Date(2024, time.February, 1, 0, 0, 0, 0, time.UTC),
			IsIncome: true,
		},
	}

	var buf bytes.Buffer
	require.NoError(t, WriteTransactionsCSV(&buf, transactions))

	records, err := csv.NewReader(&buf).ReadAll()
	require.NoError(t, err)
	require.Len(t, records, 3)

	assert.Equal(t, []string{"amount", "date", "description", "method", "is_income", "category_id", "deleted"}, records[0])
	assert.Equal(t, []string{"12.34", "2024-01-05", "groceries, weekly", "card", "false", "3", "false"}, records[1])
	assert.Equal(t, []string{"0.50", "2024-02-01", "", "", "true", "", "false"}, records[2])
}

func TestWriteTransactionsCSV_EmptySet(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteTransactionsCSV(&buf, nil))

	records, err := csv.NewReader(&buf).ReadAll()
	require.NoError(t, err)
	require.Len(t, records, 1) // header only
}
