package database

import (
	"context"
	"errors"
	"fmt"

	"github.com/aakashkavuru101/Product-Marketing-portfolio/source/schemas"
	"github.com/aakashkavuru101/Product-Marketing-portfolio/source/utils"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

var ErrNotFound = errors.New("not found")

// SeedData is the full content written by a seed run.
type SeedData struct {
	CaseStudies []schemas.CaseStudy
	Frameworks  []schemas.GTMFramework
	Metrics     []schemas.Metric
}

// Store is implemented by MongoStore and MySQLStore.
type Store interface {
	FindCaseStudies(ctx context.Context) ([]schemas.CaseStudy, error)
	FindCaseStudy(ctx context.Context, id string) (schemas.CaseStudy, error)
	FindFrameworks(ctx context.Context) ([]schemas.GTMFramework, error)
	FindMetricsByCaseStudy(ctx context.Context, caseStudyID string) ([]schemas.Metric, error)
	CountCaseStudies(ctx context.Context, companyType string) (int64, error)
	AverageSuccessRate(ctx context.Context) (float64, error)
	Seed(ctx context.Context, data SeedData) error
	Ping(ctx context.Context) error
	Close(ctx context.Context) error
}

// Open connects the store selected by cfg.StoreDriver.
func Open(ctx context.Context, cfg utils.Config) (Store, error) {
	switch cfg.StoreDriver {
	case utils.STORE_DRIVER_MYSQL:
		return ConnectMySQL(ctx, cfg.MySQLURI)
	case utils.STORE_DRIVER_MONGODB, "":
		dbName, err := GetDB(cfg.Env, cfg.MongoDatabase)
		if err != nil {
			return nil, err
		}
		return ConnectMongo(ctx, cfg.MongoURI, dbName)
	}
	return nil, fmt.Errorf("unknown store driver %q", cfg.StoreDriver)
}

var tracer = otel.Tracer("github.com/aakashkavuru101/Product-Marketing-portfolio/source/database")

func startSpan(ctx context.Context, name string) (context.Context, trace.Span) {
	return tracer.Start(ctx, name)
}

func recordError(span trace.Span, err error) error {
	span.RecordError(err)
	span.SetStatus(codes.Error, err.Error())
	return err
}
