package report

import (
	"context"
	"fmt"
	"math"
	"strconv"

	"github.com/aakashkavuru101/Product-Marketing-portfolio/source/schemas"

	"golang.org/x/sync/errgroup"
)

// NewDashboardStats rounds the average to one decimal place.
func NewDashboardStats(total, startups, mncs int64, averageSuccessRate float64) schemas.DashboardStats {
	return schemas.DashboardStats{
		TotalCaseStudies:   total,
		StartupStudies:     startups,
		MNCStudies:         mncs,
		AverageSuccessRate: roundOneDecimal(averageSuccessRate),
	}
}

func roundOneDecimal(v float64) float64 {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return 0
	}
	// Round the exact binary value, ties to even.
	rounded, err := strconv.ParseFloat(strconv.FormatFloat(v, 'f', 1, 64), 64)
	if err != nil {
		return 0
	}
	return rounded
}

// ComputeDashboardStats runs the four store reads concurrently. The first
// failure cancels the rest and is returned.
func ComputeDashboardStats(ctx context.Context, store Store) (schemas.DashboardStats, error) {
	var total, startups, mncs int64
	var avg float64

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() (err error) {
		total, err = store.CountCaseStudies(ctx, "")
		return wrap("count case studies", err)
	})
	g.Go(func() (err error) {
		startups, err = store.CountCaseStudies(ctx, schemas.COMPANY_TYPE_STARTUP)
		return wrap("count startup case studies", err)
	})
	g.Go(func() (err error) {
		mncs, err = store.CountCaseStudies(ctx, schemas.COMPANY_TYPE_MNC)
		return wrap("count mnc case studies", err)
	})
	g.Go(func() (err error) {
		avg, err = store.AverageSuccessRate(ctx)
		return wrap("average success rate", err)
	})

	if err := g.Wait(); err != nil {
		return schemas.DashboardStats{}, err
	}

	return NewDashboardStats(total, startups, mncs, avg), nil
}

func wrap(op string, err error) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("%s: %w", op, err)
}
