package handlers

import (
	"context"
	"errors"

	"github.com/fasthttp/router"
	"github.com/finlog/expense-ledger/internal/model"
	"github.com/finlog/expense-ledger/internal/repository"
	"github.com/finlog/expense-ledger/internal/services"
	xhttp "github.com/finlog/expense-ledger/pkg/http"
)

type CategoryService interface {
	Create(ctx context.Context, p model.CategoryCreateRequest) (*model.Category, error)
	Get(ctx context.Context, id int64) (*model.Category, error)
	List(ctx context.Context, f model.CategoryFilter) ([]*model.Category, error)
	Update(ctx context.Context, id int64, u model.CategoryUpdate) (*model.Category, error)
	Delete(ctx context.Context, id int64) error
}

type CategoryHandler struct {
	svc CategoryService
}

func NewCategoryHandler(svc CategoryService) *CategoryHandler {
	return &CategoryHandler{svc: svc}
}

func RegisterCategoryRoutes(e *router.Group, h *CategoryHandler) {
	e.POST("/categories", h.CreateCategory)
	e.GET("/categories", h.ListCategories)
	e.GET("/categories/{id}", h.GetCategory)
	e.PUT("/categories/{id}", h.UpdateCategory)
	e.DELETE("/categories/{id}", h.DeleteCategory)
}

type createCategoryRequest struct {
	Name        string `json:"name"`
	IsFavorite  bool   `json:"is_favorite"`
	IsRecurring bool   `json:"is_recurring"`
}

type updateCategoryRequest struct {
	Name        *string `json:"name"`
	IsFavorite  *bool   `json:"is_favorite"`
	IsRecurring *bool   `json:"is_recurring"`
}

func (h *CategoryHandler) CreateCategory(ctx *xhttp.RequestCtx) {
	var req createCategoryRequest
	if err := readJSON(ctx, &req); err != nil {
		writeError(ctx, 400, "invalid JSON: "+err.Error())
		return
	}

	cat, err := h.svc.Create(ctx, model.CategoryCreateRequest{
		Name:        req.Name,
		IsFavorite:  req.IsFavorite,
		IsRecurring: req.IsRecurring,
	})
	if err != nil {
		writeError(ctx, 400, err.Error())
		return
	}
	writeJSON(ctx, 201, cat)
}

func (h *CategoryHandler) GetCategory(ctx *xhttp.RequestCtx) {
	id, err := pathInt64(ctx, "id")
	if err != nil {
		writeError(ctx, 400, "invalid id")
		return
	}

	cat, err := h.svc.Get(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrCategoryNotFound) {
			writeError(ctx, 404, err.Error())
			return
		}
		writeError(ctx, 500, err.Error())
		return
	}
	writeJSON(ctx, 200, cat)
}

func (h *CategoryHandler) ListCategories(ctx *xhttp.RequestCtx) {
	f := model.CategoryFilter{
		FavoritesOnly: query(ctx, "favorites") == "true",
		RecurringOnly: query(ctx, "recurring") == "true",
	}

	cats, err := h.svc.List(ctx, f)
	if err != nil {
		writeError(ctx, 500, err.Error())
		return
	}
	writeJSON(ctx, 200, cats)
}

func (h *CategoryHandler) UpdateCategory(ctx *xhttp.RequestCtx) {
	id, err := pathInt64(ctx, "id")
	if err != nil {
		writeError(ctx, 400, "invalid id")
		return
	}

	var req updateCategoryRequest
	if err := readJSON(ctx, &req); err != nil {
		writeError(ctx, 400, "invalid JSON: "+err.Error())
		return
	}

	cat, err := h.svc.Update(ctx, id, model.CategoryUpdate{
		Name:        req.Name,
		IsFavorite:  req.IsFavorite,
		IsRecurring: req.IsRecurring,
	})
	if err != nil {
		switch {
		case errors.Is(err, repository.ErrCategoryNotFound):
			writeError(ctx, 404, err.Error())
		case errors.Is(err, services.ErrEmptyUpdate):
			writeError(ctx, 400, err.Error())
		default:
			writeError(ctx, 500, err.Error())
		}
		return
	}
	writeJSON(ctx, 200, cat)
}

func (h *CategoryHandler) DeleteCategory(ctx *xhttp.RequestCtx) {
	id, err := pathInt64(ctx, "id")
	if err != nil {
		writeError(ctx, 400, "invalid id")
		return
	}

	if err := h.svc.Delete(ctx, id); err != nil {
		if errors.Is(err, repository.ErrCategoryNotFound) {
			writeError(ctx, 404, err.Error())
			return
		}
		writeError(ctx, 500, err.Error())
		return
	}
	writeJSON(ctx, 200, map[string]string{"status": "removed"})
}
