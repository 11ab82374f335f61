package services

import (
	"context"

	"github.com/finlog/expense-ledger/internal/model"
)

type CategoryRepository interface {
	Create(ctx context.Context, cat *model.Category) (*model.Category, error)
	GetByID(ctx context.Context, id int64) (*model.Category, error)
	GetByName(ctx context.Context, name string) (*model.Category, error)
	List(ctx context.Context, f model.CategoryFilter) ([]*model.Category, error)
	Update(ctx context.Context, id int64, u model.CategoryUpdate) (*model.Category, error)
	Delete(ctx context.Context, id int64) error
}

type CategoryService struct {
	repo CategoryRepository
}

func NewCategoryService(repo CategoryRepository) *CategoryService {
	return &CategoryService{repo: repo}
}

func (s *CategoryService) Create(ctx context.Context, p model.CategoryCreateRequest) (*model.Category, error) {
	if err := p.Validate(); err != nil {
		return nil, err
	}
	cat := &model.Category{
		Name:        p.Name,
		IsFavorite:  p.IsFavorite,
		IsRecurring: p.IsRecurring,
	}
	return s.repo.Create(ctx, cat)
}

func (s *CategoryService) Get(ctx context.Context, id int64) (*model.Category, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *CategoryService) List(ctx context.Context, f model.CategoryFilter) ([]*model.Category, error) {
	return s.repo.List(ctx, f)
}

func (s *CategoryService) Update(ctx context.Context, id int64, u model.CategoryUpdate) (*model.Category, error) {
	if u.IsEmpty() {
		return nil, ErrEmptyUpdate
	}
	return s.repo.Update(ctx, id, u)
}

// Delete removes the category. Transactions referencing it survive with
// their category reference cleared; nothing cascades.
func (s *CategoryService) Delete(ctx context.Context, id int64) error {
	return s.repo.Delete(ctx, id)
}
