package services

import (
	"context"
	"errors"
	"time"

	"github.com/finlog/expense-ledger/internal/artifact"
	"github.com/finlog/expense-ledger/internal/chart"
	"github.com/finlog/expense-ledger/internal/model"
	"github.com/finlog/expense-ledger/pkg/prom"
)

var (
	// ErrEmptyData is returned when a chart is requested for an owner with
	// no aggregable transactions.
	ErrEmptyData = errors.New("no data to chart")
	// ErrChartNotFound is returned when a chart key is missing or expired.
	ErrChartNotFound = errors.New("chart not found")
)

type CategoryTotalsRepository interface {
	TotalsByCategory(ctx context.Context, userID int64) ([]model.CategoryTotal, error)
}

// ChartService aggregates per-category totals, hands them to the renderer
// and parks the resulting blob in the artifact cache. The returned key is
// the only handle to the artifact; once the ttl elapses the key is gone.
type ChartService struct {
	repo     CategoryTotalsRepository
	renderer chart.Renderer
	cache    *artifact.Cache
}

func NewChartService(repo CategoryTotalsRepository, renderer chart.Renderer, cache *artifact.Cache) *ChartService {
	return &ChartService{
		repo:     repo,
		renderer: renderer,
		cache:    cache,
	}
}

// Generate renders the per-category totals of a user and caches the image.
// Returns the freshly minted cache key for later retrieval.
func (s *ChartService) Generate(ctx context.Context, userID int64) (string, error) {
	totals, err := s.repo.TotalsByCategory(ctx, userID)
	if err != nil {
		return "", err
	}
	if len(totals) == 0 {
		return "", ErrEmptyData
	}

	labels := make([]string, len(totals))
	amounts := make([]float64, len(totals))
	for i, ct := range totals {
		labels[i] = ct.Name
		amounts[i] = ct.Total.Float()
	}

	start := time.Now()
	blob, err := s.renderer.Render(labels, amounts)
	if err != nil {
		return "", err
	}
	prom.AddHistogram(prom.SystemChart, prom.MetricChartRenderDuration, time.Since(start).Seconds())

	key := s.cache.MintKey(userID)
	if err := s.cache.Put(key, blob); err != nil {
		return "", err
	}
	return key, nil
}

// Retrieve fetches a previously generated chart. An expired or unknown key
// yields ErrChartNotFound; only a cache outage surfaces as another error.
func (s *ChartService) Retrieve(key string) ([]byte, error) {
	blob, ok, err := s.cache.Get(key)
	if err != nil {
		return nil, err
	}
	if !ok {
		prom.IncCounterVec(prom.SystemChart, prom.MetricChartCacheRetrievals, "miss")
		return nil, ErrChartNotFound
	}
	prom.IncCounterVec(prom.SystemChart, prom.MetricChartCacheRetrievals, "hit")
	return blob, nil
}
