package report

import (
	"context"

	"github.com/aakashkavuru101/Product-Marketing-portfolio/source/logger"
	"github.com/aakashkavuru101/Product-Marketing-portfolio/source/schemas"
)

type Store interface {
	CountCaseStudies(ctx context.Context, companyType string) (int64, error)
	AverageSuccessRate(ctx context.Context) (float64, error)
}

type StatsCache interface {
	Get(ctx context.Context) (schemas.DashboardStats, bool, error)
	Set(ctx context.Context, stats schemas.DashboardStats) error
}

type Handler struct {
	store Store
	cache StatsCache
	log   *logger.Logger
}

// NewHandler accepts a nil cache.
func NewHandler(store Store, cache StatsCache, log *logger.Logger) *Handler {
	if log == nil {
		log = logger.Nop()
	}
	return &Handler{store: store, cache: cache, log: log.With("entity", "report")}
}
