package database

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/aakashkavuru101/Product-Marketing-portfolio/source/schemas"

	"github.com/go-sql-driver/mysql"
)

const (
	MYSQL_CONN_MAX_LIFETIME = 5 * time.Minute
	MYSQL_MAX_OPEN_CONNS    = 10
	MYSQL_MAX_IDLE_CONNS    = 10
)

const caseStudyColumns = `id, company_name, company_type, industry, product_category, challenge,
	solution_overview, market_research, competitive_analysis, pricing_strategy, channel_strategy,
	execution_timeline, key_metrics, success_rate, revenue_impact, created_at, updated_at`

const frameworkColumns = `id, name, description, phases, success_rate, use_cases, created_at`

const metricColumns = `id, case_study_id, metric_name, metric_value, metric_unit, time_period, category`

var mysqlSchema = []string{
	`CREATE TABLE IF NOT EXISTS case_studies (
		id VARCHAR(64) NOT NULL PRIMARY KEY,
		position INT NOT NULL,
		company_name VARCHAR(255) NOT NULL,
		company_type VARCHAR(32) NOT NULL,
		industry VARCHAR(255) NOT NULL,
		product_category VARCHAR(255) NOT NULL,
		challenge TEXT NOT NULL,
		solution_overview TEXT NOT NULL,
		market_research JSON NULL,
		competitive_analysis JSON NULL,
		pricing_strategy JSON NULL,
		channel_strategy JSON NULL,
		execution_timeline JSON NULL,
		key_metrics JSON NULL,
		success_rate DOUBLE NOT NULL,
		revenue_impact VARCHAR(255) NOT NULL,
		created_at DATETIME(6) NOT NULL,
		updated_at DATETIME(6) NOT NULL,
		KEY idx_case_studies_company_type (company_type)
	)`,
	`CREATE TABLE IF NOT EXISTS frameworks (
		id VARCHAR(64) NOT NULL PRIMARY KEY,
		position INT NOT NULL,
		name VARCHAR(255) NOT NULL,
		description TEXT NOT NULL,
		phases JSON NULL,
		success_rate DOUBLE NOT NULL,
		use_cases JSON NULL,
		created_at DATETIME(6) NOT NULL
	)`,
	`CREATE TABLE IF NOT EXISTS metrics (
		id VARCHAR(64) NOT NULL PRIMARY KEY,
		position INT NOT NULL,
		case_study_id VARCHAR(64) NOT NULL,
		metric_name VARCHAR(255) NOT NULL,
		metric_value DOUBLE NOT NULL,
		metric_unit VARCHAR(64) NOT NULL,
		time_period VARCHAR(64) NOT NULL,
		category VARCHAR(32) NOT NULL,
		KEY idx_metrics_case_study_id (case_study_id)
	)`,
}

type rowScanner interface {
	Scan(dest ...any) error
}

// MySQLStore keeps the three collections as tables. Free-form trees are JSON
// columns.
type MySQLStore struct {
	db *sql.DB
}

func ConnectMySQL(ctx context.Context, dsn string) (*MySQLStore, error) {
	cfg, err := mysql.ParseDSN(dsn)
	if err != nil {
		return nil, fmt.Errorf("[MySQL] invalid DSN: %w", err)
	}
	cfg.ParseTime = true
	if cfg.Loc == nil {
		cfg.Loc = time.UTC
	}

	connector, err := mysql.NewConnector(cfg)
	if err != nil {
		return nil, fmt.Errorf("[MySQL] connector: %w", err)
	}

	db := sql.OpenDB(connector)
	db.SetConnMaxLifetime(MYSQL_CONN_MAX_LIFETIME)
	db.SetMaxOpenConns(MYSQL_MAX_OPEN_CONNS)
	db.SetMaxIdleConns(MYSQL_MAX_IDLE_CONNS)

	store := NewMySQLStore(db)
	if err := store.Ping(ctx); err != nil {
		db.Close()
		return nil, err
	}
	return store, nil
}

func NewMySQLStore(db *sql.DB) *MySQLStore {
	return &MySQLStore{db: db}
}

func (s *MySQLStore) Ping(ctx context.Context) error {
	if err := s.db.PingContext(ctx); err != nil {
		return fmt.Errorf("[MySQL] ping: %w", err)
	}
	return nil
}

func (s *MySQLStore) Close(context.Context) error {
	return s.db.Close()
}

func (s *MySQLStore) FindCaseStudies(ctx context.Context) ([]schemas.CaseStudy, error) {
	ctx, span := startSpan(ctx, "store.FindCaseStudies")
	defer span.End()

	rows, err := s.db.QueryContext(ctx, "SELECT "+caseStudyColumns+" FROM case_studies ORDER BY position")
	if err != nil {
		return nil, recordError(span, fmt.Errorf("failed to query case studies: %w", err))
	}
	defer rows.Close()

	caseStudies := []schemas.CaseStudy{}
	for rows.Next() {
		caseStudy, err := scanCaseStudy(rows)
		if err != nil {
			return nil, recordError(span, err)
		}
		caseStudies = append(caseStudies, caseStudy)
	}

	if err := rows.Err(); err != nil {
		return nil, recordError(span, fmt.Errorf("error iterating case study rows: %w", err))
	}
	return caseStudies, nil
}

func (s *MySQLStore) FindCaseStudy(ctx context.Context, id string) (schemas.CaseStudy, error) {
	ctx, span := startSpan(ctx, "store.FindCaseStudy")
	defer span.End()

	row := s.db.QueryRowContext(ctx, "SELECT "+caseStudyColumns+" FROM case_studies WHERE id = ?", id)
	caseStudy, err := scanCaseStudy(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return schemas.CaseStudy{}, ErrNotFound
		}
		return schemas.CaseStudy{}, recordError(span, err)
	}
	return caseStudy, nil
}

func (s *MySQLStore) FindFrameworks(ctx context.Context) ([]schemas.GTMFramework, error) {
	ctx, span := startSpan(ctx, "store.FindFrameworks")
	defer span.End()

	rows, err := s.db.QueryContext(ctx, "SELECT "+frameworkColumns+" FROM frameworks ORDER BY position")
	if err != nil {
		return nil, recordError(span, fmt.Errorf("failed to query frameworks: %w", err))
	}
	defer rows.Close()

	frameworks := []schemas.GTMFramework{}
	for rows.Next() {
		framework := schemas.GTMFramework{}
		var phases, useCases []byte
		err := rows.Scan(
			&framework.ID,
			&framework.Name,
			&framework.Description,
			&phases,
			&framework.SuccessRate,
			&useCases,
			&framework.CreatedAt,
		)
		if err != nil {
			return nil, recordError(span, fmt.Errorf("failed to scan framework row: %w", err))
		}
		if err := decodeJSONColumns(map[string]jsonColumn{
			"phases":    {phases, &framework.Phases},
			"use_cases": {useCases, &framework.UseCases},
		}); err != nil {
			return nil, recordError(span, err)
		}
		frameworks = append(frameworks, framework)
	}

	if err := rows.Err(); err != nil {
		return nil, recordError(span, fmt.Errorf("error iterating framework rows: %w", err))
	}
	return frameworks, nil
}

func (s *MySQLStore) FindMetricsByCaseStudy(ctx context.Context, caseStudyID string) ([]schemas.Metric, error) {
	ctx, span := startSpan(ctx, "store.FindMetricsByCaseStudy")
	defer span.End()

	rows, err := s.db.QueryContext(ctx,
		"SELECT "+metricColumns+" FROM metrics WHERE case_study_id = ? ORDER BY position", caseStudyID)
	if err != nil {
		return nil, recordError(span, fmt.Errorf("failed to query metrics: %w", err))
	}
	defer rows.Close()

	metrics := []schemas.Metric{}
	for rows.Next() {
		metric := schemas.Metric{}
		err := rows.Scan(
			&metric.ID,
			&metric.CaseStudyID,
			&metric.MetricName,
			&metric.MetricValue,
			&metric.MetricUnit,
			&metric.TimePeriod,
			&metric.Category,
		)
		if err != nil {
			return nil, recordError(span, fmt.Errorf("failed to scan metric row: %w", err))
		}
		metrics = append(metrics, metric)
	}

	if err := rows.Err(); err != nil {
		return nil, recordError(span, fmt.Errorf("error iterating metric rows: %w", err))
	}
	return metrics, nil
}

func (s *MySQLStore) CountCaseStudies(ctx context.Context, companyType string) (int64, error) {
	ctx, span := startSpan(ctx, "store.CountCaseStudies")
	defer span.End()

	query := "SELECT COUNT(*) FROM case_studies"
	args := []any{}
	if companyType != "" {
		query += " WHERE company_type = ?"
		args = append(args, companyType)
	}

	var count int64
	if err := s.db.QueryRowContext(ctx, query, args...).Scan(&count); err != nil {
		return 0, recordError(span, fmt.Errorf("failed to count case studies: %w", err))
	}
	return count, nil
}

func (s *MySQLStore) AverageSuccessRate(ctx context.Context) (float64, error) {
	ctx, span := startSpan(ctx, "store.AverageSuccessRate")
	defer span.End()

	var avg sql.NullFloat64
	if err := s.db.QueryRowContext(ctx, "SELECT AVG(success_rate) FROM case_studies").Scan(&avg); err != nil {
		return 0, recordError(span, fmt.Errorf("failed to average success rate: %w", err))
	}
	if !avg.Valid {
		return 0, nil
	}
	return avg.Float64, nil
}

func (s *MySQLStore) Seed(ctx context.Context, data SeedData) (err error) {
	for _, ddl := range mysqlSchema {
		if _, err := s.db.ExecContext(ctx, ddl); err != nil {
			return fmt.Errorf("failed to create schema: %w", err)
		}
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin seed transaction: %w", err)
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback()
		}
	}()

	for _, table := range []string{"metrics", "frameworks", "case_studies"} {
		if _, err := tx.ExecContext(ctx, "DELETE FROM "+table); err != nil {
			return fmt.Errorf("failed to clear %s: %w", table, err)
		}
	}

	for i, cs := range data.CaseStudies {
		trees, err := encodeJSONColumns(cs.MarketResearch, cs.CompetitiveAnalysis, cs.PricingStrategy,
			cs.ChannelStrategy, cs.ExecutionTimeline, cs.KeyMetrics)
		if err != nil {
			return fmt.Errorf("failed to encode case study %s: %w", cs.ID, err)
		}
		_, err = tx.ExecContext(ctx,
			"INSERT INTO case_studies (position, "+caseStudyColumns+") VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)",
			i, cs.ID, cs.CompanyName, cs.CompanyType, cs.Industry, cs.ProductCategory, cs.Challenge,
			cs.SolutionOverview, trees[0], trees[1], trees[2], trees[3], trees[4], trees[5],
			cs.SuccessRate, cs.RevenueImpact, cs.CreatedAt.UTC(), cs.UpdatedAt.UTC(),
		)
		if err != nil {
			return fmt.Errorf("failed to insert case study %s: %w", cs.ID, err)
		}
	}

	for i, fw := range data.Frameworks {
		trees, err := encodeJSONColumns(fw.Phases, fw.UseCases)
		if err != nil {
			return fmt.Errorf("failed to encode framework %s: %w", fw.ID, err)
		}
		_, err = tx.ExecContext(ctx,
			"INSERT INTO frameworks (position, "+frameworkColumns+") VALUES (?, ?, ?, ?, ?, ?, ?, ?)",
			i, fw.ID, fw.Name, fw.Description, trees[0], fw.SuccessRate, trees[1], fw.CreatedAt.UTC(),
		)
		if err != nil {
			return fmt.Errorf("failed to insert framework %s: %w", fw.ID, err)
		}
	}

	for i, m := range data.Metrics {
		_, err = tx.ExecContext(ctx,
			"INSERT INTO metrics (position, "+metricColumns+") VALUES (?, ?, ?, ?, ?, ?, ?, ?)",
			i, m.ID, m.CaseStudyID, m.MetricName, m.MetricValue, m.MetricUnit, m.TimePeriod, m.Category,
		)
		if err != nil {
			return fmt.Errorf("failed to insert metric %s: %w", m.ID, err)
		}
	}

	if err = tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit seed transaction: %w", err)
	}
	return nil
}

func scanCaseStudy(row rowScanner) (schemas.CaseStudy, error) {
	cs := schemas.CaseStudy{}
	var marketResearch, competitiveAnalysis, pricingStrategy, channelStrategy, executionTimeline, keyMetrics []byte

	err := row.Scan(
		&cs.ID,
		&cs.CompanyName,
		&cs.CompanyType,
		&cs.Industry,
		&cs.ProductCategory,
		&cs.Challenge,
		&cs.SolutionOverview,
		&marketResearch,
		&competitiveAnalysis,
		&pricingStrategy,
		&channelStrategy,
		&executionTimeline,
		&keyMetrics,
		&cs.SuccessRate,
		&cs.RevenueImpact,
		&cs.CreatedAt,
		&cs.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return cs, err
		}
		return cs, fmt.Errorf("failed to scan case study row: %w", err)
	}

	err = decodeJSONColumns(map[string]jsonColumn{
		"market_research":      {marketResearch, &cs.MarketResearch},
		"competitive_analysis": {competitiveAnalysis, &cs.CompetitiveAnalysis},
		"pricing_strategy":     {pricingStrategy, &cs.PricingStrategy},
		"channel_strategy":     {channelStrategy, &cs.ChannelStrategy},
		"execution_timeline":   {executionTimeline, &cs.ExecutionTimeline},
		"key_metrics":          {keyMetrics, &cs.KeyMetrics},
	})
	return cs, err
}

type jsonColumn struct {
	raw []byte
	dst any
}

func decodeJSONColumns(columns map[string]jsonColumn) error {
	for name, col := range columns {
		if len(col.raw) == 0 {
			continue
		}
		if err := json.Unmarshal(col.raw, col.dst); err != nil {
			return fmt.Errorf("failed to decode column %s: %w", name, err)
		}
	}
	return nil
}

// encodeJSONColumns turns nil trees into SQL NULL.
func encodeJSONColumns(values ...any) ([]any, error) {
	out := make([]any, len(values))
	for i, v := range values {
		raw, err := json.Marshal(v)
		if err != nil {
			return nil, err
		}
		if string(raw) == "null" {
			out[i] = nil
			continue
		}
		out[i] = string(raw)
	}
	return out, nil
}
