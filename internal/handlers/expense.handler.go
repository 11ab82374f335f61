package handlers

import (
	"context"
	"time"

	"github.com/fasthttp/router"
	"github.com/finlog/expense-ledger/internal/model"
	xhttp "github.com/finlog/expense-ledger/pkg/http"
)

type ExpenseService interface {
	TotalByPeriod(ctx context.Context, f model.TransactionFilter, start, end time.Time) (model.Cents, error)
	CompareMonths(ctx context.Context, f model.TransactionFilter, month1, month2 time.Time) (*model.MonthComparison, error)
	KeyIndicators(ctx context.Context, f model.TransactionFilter, start, end time.Time) (*model.KeyIndicators, error)
}

type ExpenseHandler struct {
	svc ExpenseService
}

func NewExpenseHandler(svc ExpenseService) *ExpenseHandler {
	return &ExpenseHandler{svc: svc}
}

func RegisterExpenseRoutes(e *router.Group, h *ExpenseHandler) {
	e.GET("/expenses/total", h.TotalByPeriod)
	e.GET("/expenses/compare", h.CompareMonths)
	e.GET("/expenses/indicators", h.KeyIndicators)
}

type totalByPeriodResponse struct {
	StartDate string      `json:"start_date"`
	EndDate   string      `json:"end_date"`
	Total     model.Cents `json:"total"`
}

type keyIndicatorsResponse struct {
	StartDate     string      `json:"start_date"`
	EndDate       string      `json:"end_date"`
	AveragePerDay float64     `json:"average_per_day"`
	Max           model.Cents `json:"max"`
	Min           model.Cents `json:"min"`
}

func (h *ExpenseHandler) TotalByPeriod(ctx *xhttp.RequestCtx) {
	start, end, ok := periodParams(ctx)
	if !ok {
		return
	}
	f, err := parseTransactionFilter(ctx)
	if err != nil {
		writeError(ctx, 400, err.Error())
		return
	}

	total, err := h.svc.TotalByPeriod(ctx, f, start, end)
	if err != nil {
		writeError(ctx, 500, err.Error())
		return
	}
	writeJSON(ctx, 200, totalByPeriodResponse{
		StartDate: start.Format("2006-01-02"),
		EndDate:   end.Format("2006-01-02"),
		Total:     total,
	})
}

func (h *ExpenseHandler) CompareMonths(ctx *xhttp.RequestCtx) {
	month1, err := parseMonth(query(ctx, "month1"))
	if err != nil {
		writeError(ctx, 400, "invalid month1, want YYYY-MM")
		return
	}
	month2, err := parseMonth(query(ctx, "month2"))
	if err != nil {
		writeError(ctx, 400, "invalid month2, want YYYY-MM")
		return
	}
	f, err := parseTransactionFilter(ctx)
	if err != nil {
		writeError(ctx, 400, err.Error())
		return
	}

	cmp, err := h.svc.CompareMonths(ctx, f, month1, month2)
	if err != nil {
		writeError(ctx, 500, err.Error())
		return
	}
	writeJSON(ctx, 200, cmp)
}

func (h *ExpenseHandler) KeyIndicators(ctx *xhttp.RequestCtx) {
	start, end, ok := periodParams(ctx)
	if !ok {
		return
	}
	f, err := parseTransactionFilter(ctx)
	if err != nil {
		writeError(ctx, 400, err.Error())
		return
	}

	ind, err := h.svc.KeyIndicators(ctx, f, start, end)
	if err != nil {
		writeError(ctx, 500, err.Error())
		return
	}
	writeJSON(ctx, 200, keyIndicatorsResponse{
		StartDate:     start.Format("2006-01-02"),
		EndDate:       end.Format("2006-01-02"),
		AveragePerDay: ind.AveragePerDay,
		Max:           ind.Max,
		Min:           ind.Min,
	})
}

func periodParams(ctx *xhttp.RequestCtx) (start, end time.Time, ok bool) {
	start, err := parseDate(query(ctx, "start_date"))
	if err != nil {
		writeError(ctx, 400, "invalid start_date, want YYYY-MM-DD")
		return start, end, false
	}
	end, err = parseDate(query(ctx, "end_date"))
	if err != nil {
		writeError(ctx, 400, "invalid end_date, want YYYY-MM-DD")
		return start, end, false
	}
	return start, end, true
}
