package services

import (
	"context"
	"errors"
	"io"

	"github.com/finlog/expense-ledger/internal/export"
	"github.com/finlog/expense-ledger/internal/model"
	"github.com/finlog/expense-ledger/internal/repository"
	"github.com/finlog/expense-ledger/pkg/prom"
)

var (
	ErrNotFound        = repository.ErrNotFound
	ErrAlreadyDeleted  = repository.ErrAlreadyDeleted
	ErrNotDeleted      = repository.ErrNotDeleted
	ErrCategoryMissing = errors.New("category does not exist")
	ErrEmptyUpdate     = errors.New("no updatable fields supplied")
)

type TransactionRepository interface {
	Create(ctx context.Context, txn *model.Transaction) (*model.Transaction, error)
	GetByID(ctx context.Context, id int64, includeDeleted bool) (*model.Transaction, error)
	List(ctx context.Context, f model.TransactionFilter) ([]*model.Transaction, int64, error)
	Update(ctx context.Context, id int64, u model.TransactionUpdate) (*model.Transaction, error)
	SoftDelete(ctx context.Context, id int64) error
	Restore(ctx context.Context, id int64) (*model.Transaction, error)
	HardDelete(ctx context.Context, id int64) error
}

type CategoryLookup interface {
	GetByID(ctx context.Context, id int64) (*model.Category, error)
}

type TransactionService struct {
	repo       TransactionRepository
	categories CategoryLookup
}

func NewTransactionService(repo TransactionRepository, categories CategoryLookup) *TransactionService {
	return &TransactionService{
		repo:       repo,
		categories: categories,
	}
}

// Create validates the request shape before any write. A category_id, when
// present, must reference an existing category at write time; it may later
// become absent if the category is removed.
func (s *TransactionService) Create(ctx context.Context, p model.TransactionCreateRequest) (*model.Transaction, error) {
	if err := p.Validate(); err != nil {
		return nil, err
	}

	if p.CategoryID != nil {
		if _, err := s.categories.GetByID(ctx, *p.CategoryID); err != nil {
			return nil, ErrCategoryMissing
		}
	}

	txn := &model.Transaction{
		UserID:      p.UserID,
		CategoryID:  p.CategoryID,
		Amount:      p.Amount,
		Date:        model.Day(p.Date),
		Description: p.Description,
		Method:      p.Method,
		IsIncome:    p.IsIncome,
	}

	created, err := s.repo.Create(ctx, txn)
	if err != nil {
		return nil, err
	}
	prom.IncCounter(prom.SystemLedger, prom.MetricTransactionsCreated)
	return created, nil
}

func (s *TransactionService) Get(ctx context.Context, id int64, includeDeleted bool) (*model.Transaction, error) {
	return s.repo.GetByID(ctx, id, includeDeleted)
}

func (s *TransactionService) List(ctx context.Context, f model.TransactionFilter) ([]*model.Transaction, int64, error) {
	return s.repo.List(ctx, f)
}

// Update applies a partial update restricted to the allow-listed fields.
// Editing a soft-deleted row is permitted without restoring it first.
func (s *TransactionService) Update(ctx context.Context, id int64, u model.TransactionUpdate) (*model.Transaction, error) {
	if u.IsEmpty() {
		return nil, ErrEmptyUpdate
	}
	if u.Amount != nil && *u.Amount < 0 {
		return nil, model.ErrInvalidAmount
	}
	if u.CategoryID != nil && *u.CategoryID != nil {
		if _, err := s.categories.GetByID(ctx, **u.CategoryID); err != nil {
			return nil, ErrCategoryMissing
		}
	}
	return s.repo.Update(ctx, id, u)
}

// SoftDelete marks the row deleted. Re-applying it leaves the row deleted
// and reports ErrAlreadyDeleted so the caller can surface the no-op.
func (s *TransactionService) SoftDelete(ctx context.Context, id int64) error {
	return s.repo.SoftDelete(ctx, id)
}

// Restore returns a deleted row to the active state.
func (s *TransactionService) Restore(ctx context.Context, id int64) (*model.Transaction, error) {
	return s.repo.Restore(ctx, id)
}

// HardDelete permanently removes the row, bypassing the soft-delete flag.
func (s *TransactionService) HardDelete(ctx context.Context, id int64) error {
	return s.repo.HardDelete(ctx, id)
}

// ExportCSV streams the filtered, deleted-excluded, unpaginated set to w.
func (s *TransactionService) ExportCSV(ctx context.Context, f model.TransactionFilter, w io.Writer) error {
	f.Unpaginated = true
	f.IncludeDeleted = false

	transactions, _, err := s.repo.List(ctx, f)
	if err != nil {
		return err
	}
	return export.WriteTransactionsCSV(w, transactions)
}
