package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strconv"
	"time"

	"github.com/fasthttp/router"
	"github.com/finlog/expense-ledger/internal/model"
	"github.com/finlog/expense-ledger/internal/services"
	xhttp "github.com/finlog/expense-ledger/pkg/http"
)

type TransactionService interface {
	Create(ctx context.Context, p model.TransactionCreateRequest) (*model.Transaction, error)
	Get(ctx context.Context, id int64, includeDeleted bool) (*model.Transaction, error)
	List(ctx context.Context, f model.TransactionFilter) ([]*model.Transaction, int64, error)
	Update(ctx context.Context, id int64, u model.TransactionUpdate) (*model.Transaction, error)
	SoftDelete(ctx context.Context, id int64) error
	Restore(ctx context.Context, id int64) (*model.Transaction, error)
	HardDelete(ctx context.Context, id int64) error
	ExportCSV(ctx context.Context, f model.TransactionFilter, w io.Writer) error
}

type ChartService interface {
	Generate(ctx context.Context, userID int64) (string, error)
	Retrieve(key string) ([]byte, error)
}

type TransactionHandler struct {
	svc    TransactionService
	charts ChartService
}

func NewTransactionHandler(svc TransactionService, charts ChartService) *TransactionHandler {
	return &TransactionHandler{
		svc:    svc,
		charts: charts,
	}
}

func RegisterTransactionRoutes(e *router.Group, h *TransactionHandler) {
	e.POST("/transactions", h.CreateTransaction)
	e.GET("/transactions", h.ListTransactions)
	e.GET("/transactions/export", h.ExportTransactions)
	e.GET("/transactions/{id}", h.GetTransaction)
	e.PUT("/transactions/{id}", h.UpdateTransaction)
	e.DELETE("/transactions/{id}", h.DeleteTransaction)
	e.PATCH("/transactions/{id}/restore", h.RestoreTransaction)
	e.GET("/users/{user_id}/chart", h.GenerateChart)
	e.GET("/charts/{key}", h.ServeChart)
}

type createTransactionRequest struct {
	UserID      int64  `json:"user_id"`
	Amount      string `json:"amount"` // decimal string, e.g. "12.34"
	Date        string `json:"date"`   // YYYY-MM-DD
	Description string `json:"description"`
	Method      string `json:"method"`
	IsIncome    bool   `json:"is_income"`
	CategoryID  *int64 `json:"category_id"`
}

type updateTransactionRequest struct {
	Amount      *string `json:"amount"`
	Date        *string `json:"date"`
	Description *string `json:"description"`
	Method      *string `json:"method"`
	IsIncome    *bool   `json:"is_income"`
	CategoryID  *int64  `json:"category_id"`
	// ClearCategory distinguishes "set category_id to null" from "leave it".
	ClearCategory bool `json:"clear_category"`
}

type listTransactionsResponse struct {
	Items []*model.Transaction `json:"items"`
	Total int64                `json:"total"`
}

/* --------------------------------- Routes ----------------------------------- */

func (h *TransactionHandler) CreateTransaction(ctx *xhttp.RequestCtx) {
	var req createTransactionRequest
	if err := readJSON(ctx, &req); err != nil {
		writeError(ctx, 400, "invalid JSON: "+err.Error())
		return
	}

	amount, err := model.ParseCents(req.Amount)
	if err != nil {
		writeError(ctx, 400, "invalid amount: "+req.Amount)
		return
	}
	date, err := parseDate(req.Date)
	if err != nil {
		writeError(ctx, 400, "invalid date: "+req.Date)
		return
	}

	p := model.TransactionCreateRequest{
		UserID:      req.UserID,
		Amount:      amount,
		Date:        date,
		Description: req.Description,
		Method:      req.Method,
		IsIncome:    req.IsIncome,
		CategoryID:  req.CategoryID,
	}
	txn, err := h.svc.Create(ctx, p)
	if err != nil {
		writeError(ctx, 400, err.Error())
		return
	}
	writeJSON(ctx, 201, txn)
}

func (h *TransactionHandler) GetTransaction(ctx *xhttp.RequestCtx) {
	id, err := pathInt64(ctx, "id")
	if err != nil {
		writeError(ctx, 400, "invalid id")
		return
	}
	includeDeleted := query(ctx, "include_deleted") == "true"

	txn, err := h.svc.Get(ctx, id, includeDeleted)
	if err != nil {
		if errors.Is(err, services.ErrNotFound) {
			writeError(ctx, 404, err.Error())
			return
		}
		writeError(ctx, 500, err.Error())
		return
	}
	writeJSON(ctx, 200, txn)
}

func (h *TransactionHandler) ListTransactions(ctx *xhttp.RequestCtx) {
	f, err := parseTransactionFilter(ctx)
	if err != nil {
		writeError(ctx, 400, err.Error())
		return
	}

	items, total, err := h.svc.List(ctx, f)
	if err != nil {
		writeError(ctx, 400, err.Error())
		return
	}
	writeJSON(ctx, 200, listTransactionsResponse{Items: items, Total: total})
}

func (h *TransactionHandler) UpdateTransaction(ctx *xhttp.RequestCtx) {
	id, err := pathInt64(ctx, "id")
	if err != nil {
		writeError(ctx, 400, "invalid id")
		return
	}

	var req updateTransactionRequest
	if err := readJSON(ctx, &req); err != nil {
		writeError(ctx, 400, "invalid JSON: "+err.Error())
		return
	}

	var u model.TransactionUpdate
	if req.Amount != nil {
		amount, err := model.ParseCents(*req.Amount)
		if err != nil {
			writeError(ctx, 400, "invalid amount: "+*req.Amount)
			return
		}
		u.Amount = &amount
	}
	if req.Date != nil {
		date, err := parseDate(*req.Date)
		if err != nil {
			writeError(ctx, 400, "invalid date: "+*req.Date)
			return
		}
		u.Date = &date
	}
	u.Description = req.Description
	u.Method = req.Method
	u.IsIncome = req.IsIncome
	if req.ClearCategory {
		var cleared *int64
		u.CategoryID = &cleared
	} else if req.CategoryID != nil {
		u.CategoryID = &req.CategoryID
	}

	txn, err := h.svc.Update(ctx, id, u)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrNotFound):
			writeError(ctx, 404, err.Error())
		case errors.Is(err, services.ErrEmptyUpdate), errors.Is(err, services.ErrCategoryMissing), errors.Is(err, model.ErrInvalidAmount):
			writeError(ctx, 400, err.Error())
		default:
			writeError(ctx, 500, err.Error())
		}
		return
	}
	writeJSON(ctx, 200, txn)
}

// DeleteTransaction soft-deletes by default; ?hard=true removes the row
// permanently, bypassing the flag.
func (h *TransactionHandler) DeleteTransaction(ctx *xhttp.RequestCtx) {
	id, err := pathInt64(ctx, "id")
	if err != nil {
		writeError(ctx, 400, "invalid id")
		return
	}

	if query(ctx, "hard") == "true" {
		if err := h.svc.HardDelete(ctx, id); err != nil {
			if errors.Is(err, services.ErrNotFound) {
				writeError(ctx, 404, err.Error())
				return
			}
			writeError(ctx, 500, err.Error())
			return
		}
		writeJSON(ctx, 200, map[string]string{"status": "removed"})
		return
	}

	err = h.svc.SoftDelete(ctx, id)
	switch {
	case err == nil:
		writeJSON(ctx, 200, map[string]string{"status": "deleted"})
	case errors.Is(err, services.ErrAlreadyDeleted):
		writeJSON(ctx, 200, map[string]string{"status": "already_deleted"})
	case errors.Is(err, services.ErrNotFound):
		writeError(ctx, 404, err.Error())
	default:
		writeError(ctx, 500, err.Error())
	}
}

func (h *TransactionHandler) RestoreTransaction(ctx *xhttp.RequestCtx) {
	id, err := pathInt64(ctx, "id")
	if err != nil {
		writeError(ctx, 400, "invalid id")
		return
	}

	txn, err := h.svc.Restore(ctx, id)
	switch {
	case err == nil:
		writeJSON(ctx, 200, txn)
	case errors.Is(err, services.ErrNotDeleted):
		writeError(ctx, 409, err.Error())
	case errors.Is(err, services.ErrNotFound):
		writeError(ctx, 404, err.Error())
	default:
		writeError(ctx, 500, err.Error())
	}
}

func (h *TransactionHandler) ExportTransactions(ctx *xhttp.RequestCtx) {
	f, err := parseTransactionFilter(ctx)
	if err != nil {
		writeError(ctx, 400, err.Error())
		return
	}

	ctx.Response.Header.Set("Content-Type", "text/csv; charset=utf-8")
	ctx.Response.Header.Set("Content-Disposition", "attachment; filename=transactions.csv")
	if err := h.svc.ExportCSV(ctx, f, ctx.Response.BodyWriter()); err != nil {
		ctx.Response.Reset()
		writeError(ctx, 500, err.Error())
	}
}

func (h *TransactionHandler) GenerateChart(ctx *xhttp.RequestCtx) {
	userID, err := pathInt64(ctx, "user_id")
	if err != nil {
		writeError(ctx, 400, "invalid user_id")
		return
	}

	key, err := h.charts.Generate(ctx, userID)
	if err != nil {
		if errors.Is(err, services.ErrEmptyData) {
			writeError(ctx, 404, err.Error())
			return
		}
		writeError(ctx, 500, err.Error())
		return
	}
	writeJSON(ctx, 200, map[string]string{"chart_key": key})
}

func (h *TransactionHandler) ServeChart(ctx *xhttp.RequestCtx) {
	key := pathString(ctx, "key")

	blob, err := h.charts.Retrieve(key)
	if err != nil {
		if errors.Is(err, services.ErrChartNotFound) {
			writeError(ctx, 404, err.Error())
			return
		}
		writeError(ctx, 500, err.Error())
		return
	}
	ctx.Response.Header.Set("Content-Type", "image/png")
	ctx.Response.SetStatusCode(200)
	ctx.Response.SetBodyRaw(blob)
}

/* --------------------------------- Helpers ----------------------------------- */

// parseTransactionFilter validates every filter parameter before anything
// touches the store. A malformed value is an error, never a silently
// unconstrained filter.
func parseTransactionFilter(ctx *xhttp.RequestCtx) (model.TransactionFilter, error) {
	var f model.TransactionFilter

	if v := query(ctx, "user_id"); v != "" {
		id, err := strconv.ParseInt(v, 10, 64)
		if err != nil {
			return f, fmt.Errorf("invalid user_id: %q", v)
		}
		f.UserID = &id
	}
	if v := query(ctx, "start_date"); v != "" {
		t, err := parseDate(v)
		if err != nil {
			return f, fmt.Errorf("invalid start_date: %q, want YYYY-MM-DD", v)
		}
		f.StartDate = &t
	}
	if v := query(ctx, "end_date"); v != "" {
		t, err := parseDate(v)
		if err != nil {
			return f, fmt.Errorf("invalid end_date: %q, want YYYY-MM-DD", v)
		}
		f.EndDate = &t
	}
	if v := query(ctx, "is_income"); v != "" {
		isIncome, err := strconv.ParseBool(v)
		if err != nil {
			return f, fmt.Errorf("invalid is_income: %q", v)
		}
		f.IsIncome = &isIncome
	}
	if v := query(ctx, "category_id"); v != "" {
		id, err := strconv.ParseInt(v, 10, 64)
		if err != nil {
			return f, fmt.Errorf("invalid category_id: %q", v)
		}
		f.CategoryID = &id
	}
	if v := query(ctx, "page"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return f, fmt.Errorf("invalid page: %q", v)
		}
		f.Page = n
	}
	if v := query(ctx, "per_page"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return f, fmt.Errorf("invalid per_page: %q", v)
		}
		f.PerPage = n
	}
	return f, nil
}

func readJSON(ctx *xhttp.RequestCtx, dst any) error {
	return json.Unmarshal(ctx.PostBody(), dst)
}

func writeJSON(ctx *xhttp.RequestCtx, status int, v any) {
	b, _ := json.Marshal(v)
	ctx.Response.Header.Set("Content-Type", "application/json; charset=utf-8")
	ctx.Response.SetStatusCode(status)
	ctx.Response.SetBodyRaw(b)
}

func writeError(ctx *xhttp.RequestCtx, status int, msg string) {
	writeJSON(ctx, status, map[string]string{"error": msg})
}

func pathInt64(ctx *xhttp.RequestCtx, name string) (int64, error) {
	s, _ := ctx.UserValue(name).(string)
	return strconv.ParseInt(s, 10, 64)
}

func pathString(ctx *xhttp.RequestCtx, name string) string {
	s, _ := ctx.UserValue(name).(string)
	return s
}

func query(ctx *xhttp.RequestCtx, key string) string {
	return string(ctx.QueryArgs().Peek(key))
}

func parseDate(s string) (time.Time, error) {
	return time.Parse("2006-01-02", s)
}

func parseMonth(s string) (time.Time, error) {
	return time.Parse("2006-01", s)
}
