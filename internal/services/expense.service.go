package services

import (
	"context"
	"time"

	"github.com/finlog/expense-ledger/internal/model"
	"github.com/finlog/expense-ledger/pkg/prom"
)

// ExpenseService computes aggregates over the filtered ledger. Every
// operation runs the same filter semantics as listing, unpaginated, with
// deleted rows always excluded. Sums stay in integer cents; only the
// inherently fractional indicators are reported as floats.
type ExpenseService struct {
	repo TransactionRepository
}

func NewExpenseService(repo TransactionRepository) *ExpenseService {
	return &ExpenseService{repo: repo}
}

// TotalByPeriod sums amounts over the filtered, date-bounded set. An empty
// set sums to zero. The result is exact: no binary-float rounding ever
// enters the accumulation.
func (s *ExpenseService) TotalByPeriod(ctx context.Context, f model.TransactionFilter, start, end time.Time) (model.Cents, error) {
	defer s.observe("total_by_period", time.Now())

	transactions, err := s.periodSet(ctx, f, start, end)
	if err != nil {
		return 0, err
	}

	var total model.Cents
	for _, txn := range transactions {
		total += txn.Amount
	}
	return total, nil
}

// CompareMonths totals two calendar months and reports the percent change
// between them. Each month argument is normalized to its first and last
// day regardless of month length. When the first month's total is zero the
// percent change is undefined and reported as nil, never a division error.
func (s *ExpenseService) CompareMonths(ctx context.Context, f model.TransactionFilter, month1, month2 time.Time) (*model.MonthComparison, error) {
	defer s.observe("compare_months", time.Now())

	s1, e1 := model.MonthRange(month1)
	s2, e2 := model.MonthRange(month2)

	total1, err := s.TotalByPeriod(ctx, f, s1, e1)
	if err != nil {
		return nil, err
	}
	total2, err := s.TotalByPeriod(ctx, f, s2, e2)
	if err != nil {
		return nil, err
	}

	cmp := &model.MonthComparison{
		Month1:      month1.Format("2006-01"),
		Month1Total: total1,
		Month2:      month2.Format("2006-01"),
		Month2Total: total2,
	}
	if total1 != 0 {
		pct := (float64(total2) - float64(total1)) / float64(total1) * 100
		cmp.PercentChange = &pct
	}
	return cmp, nil
}

// KeyIndicators reports the daily average over the inclusive [start, end]
// span plus the largest and smallest single amount in the filtered set.
// An empty set yields explicit zeros, which callers must not read as
// "no data": zero is also a valid amount.
func (s *ExpenseService) KeyIndicators(ctx context.Context, f model.TransactionFilter, start, end time.Time) (*model.KeyIndicators, error) {
	defer s.observe("key_indicators", time.Now())

	transactions, err := s.periodSet(ctx, f, start, end)
	if err != nil {
		return nil, err
	}

	ind := &model.KeyIndicators{}
	if len(transactions) == 0 {
		return ind, nil
	}

	var sum model.Cents
	ind.Max = transactions[0].Amount
	ind.Min = transactions[0].Amount
	for _, txn := range transactions {
		sum += txn.Amount
		if txn.Amount > ind.Max {
			ind.Max = txn.Amount
		}
		if txn.Amount < ind.Min {
			ind.Min = txn.Amount
		}
	}

	days := int(model.Day(end).Sub(model.Day(start)).Hours()/24) + 1
	if days > 0 {
		ind.AveragePerDay = sum.Float() / float64(days)
	}
	return ind, nil
}

func (s *ExpenseService) periodSet(ctx context.Context, f model.TransactionFilter, start, end time.Time) ([]*model.Transaction, error) {
	day1, day2 := model.Day(start), model.Day(end)
	f.StartDate = &day1
	f.EndDate = &day2
	f.Unpaginated = true
	f.IncludeDeleted = false

	transactions, _, err := s.repo.List(ctx, f)
	return transactions, err
}

func (s *ExpenseService) observe(operation string, start time.Time) {
	prom.AddHistogramVec(prom.SystemLedger, prom.MetricAggregationDuration, time.Since(start).Seconds(), operation)
}
