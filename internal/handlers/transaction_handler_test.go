package handlers

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/valyala/fasthttp"
)

func listCtx(query string) *fasthttp.RequestCtx {
	var ctx fasthttp.RequestCtx
	ctx.Request.SetRequestURI("/api/v1/transactions?" + query)
	return &ctx
}

func TestParseTransactionFilter(t *testing.T) {
	t.Run("valid values populate the filter", func(t *testing.T) {
		f, err := parseTransactionFilter(listCtx("user_id=7&start_date=2024-01-01&end_date=2024-01-31&is_income=true&category_id=3&page=2&per_page=50"))
		require.NoError(t, err)

		require.NotNil(t, f.UserID)
		assert.Equal(t, int64(7), *f.UserID)
		require.NotNil(t, f.StartDate)
		assert.Equal(t, "2024-01-01", f.StartDate.Format("2006-01-02"))
		require.NotNil(t, f.EndDate)
		require.NotNil(t, f.IsIncome)
		assert.True(t, *f.IsIncome)
		require.NotNil(t, f.CategoryID)
		assert.Equal(t, int64(3), *f.CategoryID)
		assert.Equal(t, 2, f.Page)
		assert.Equal(t, 50, f.PerPage)
	})

	t.Run("absent values leave the filter unconstrained", func(t *testing.T) {
		f, err := parseTransactionFilter(listCtx(""))
		require.NoError(t, err)

		assert.Nil(t, f.UserID)
		assert.Nil(t, f.StartDate)
		assert.Nil(t, f.EndDate)
		assert.Nil(t, f.IsIncome)
		assert.Nil(t, f.CategoryID)
		assert.Zero(t, f.Page)
		assert.Zero(t, f.PerPage)
	})

	t.Run("malformed values are rejected not dropped", func(t *testing.T) {
		for _, query := range []string{
			"start_date=garbage",
			"end_date=2024-13-99",
			"user_id=notanint",
			"category_id=x",
			"is_income=maybe",
			"page=one",
			"per_page=many",
			"start_date=garbage&user_id=notanint",
		} {
			_, err := parseTransactionFilter(listCtx(query))
			assert.Error(t, err, "query %q", query)
		}
	})
}
