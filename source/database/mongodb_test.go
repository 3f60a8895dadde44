package database

import (
	"context"
	"errors"
	"os"
	"testing"
	"time"

	"github.com/aakashkavuru101/Product-Marketing-portfolio/source/schemas"
	"github.com/aakashkavuru101/Product-Marketing-portfolio/source/utils"

	"go.mongodb.org/mongo-driver/v2/bson"
)

func TestGetDB(t *testing.T) {
	cases := []struct {
		env, override, want string
		wantErr             bool
	}{
		{env: utils.ENV_RELEASE, want: "gtm_portfolio_db"},
		{env: utils.ENV_HOMOLOG, want: "gtm_portfolio_db_homolog"},
		{env: utils.ENV_DEVELOPMENT, want: "gtm_portfolio_db_development"},
		{env: utils.ENV_DEVELOPMENT, override: "custom", want: "custom"},
		{env: "staging", wantErr: true},
	}

	for _, tc := range cases {
		got, err := GetDB(tc.env, tc.override)
		if tc.wantErr {
			if err == nil {
				t.Fatalf("GetDB(%q): expected error", tc.env)
			}
			continue
		}
		if err != nil || got != tc.want {
			t.Fatalf("GetDB(%q, %q) = %q, %v; want %q", tc.env, tc.override, got, err, tc.want)
		}
	}
}

func TestAverageSuccessRatePipelineGroupsEverything(t *testing.T) {
	pipeline := averageSuccessRatePipeline()
	if len(pipeline) != 1 {
		t.Fatalf("stages=%d want 1", len(pipeline))
	}
	stage := pipeline[0]
	if stage[0].Key != "$group" {
		t.Fatalf("stage=%s want $group", stage[0].Key)
	}
	group := stage[0].Value.(bson.D)
	if group[0].Key != "_id" || group[0].Value != nil {
		t.Fatalf("group _id = %v, want nil", group[0])
	}
	avg := group[1].Value.(bson.D)
	if avg[0].Key != "$avg" || avg[0].Value != "$success_rate" {
		t.Fatalf("unexpected accumulator: %v", avg)
	}
}

func TestMongoStoreRoundTrip(t *testing.T) {
	uri := os.Getenv("MONGODB_TEST_URI")
	if uri == "" {
		t.Skip("MONGODB_TEST_URI not set")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	store, err := ConnectMongo(ctx, uri, "gtm_portfolio_test")
	if err != nil {
		t.Fatalf("connect: %v", err)
	}
	defer store.Close(context.Background())

	exerciseStore(t, ctx, store)
}

// exerciseStore checks the read contract shared by every Store.
func exerciseStore(t *testing.T, ctx context.Context, store Store) {
	t.Helper()

	if err := store.Seed(ctx, SeedData{}); err != nil {
		t.Fatalf("seed empty: %v", err)
	}
	avg, err := store.AverageSuccessRate(ctx)
	if err != nil || avg != 0 {
		t.Fatalf("empty average = %v, %v; want 0", avg, err)
	}

	now := time.Now().UTC().Truncate(time.Millisecond)
	data := SeedData{
		CaseStudies: []schemas.CaseStudy{
			testCaseStudy("cs-1", schemas.COMPANY_TYPE_STARTUP, 94.2, now),
			testCaseStudy("cs-2", schemas.COMPANY_TYPE_STARTUP, 96.7, now),
			testCaseStudy("cs-3", schemas.COMPANY_TYPE_MNC, 91.8, now),
		},
		Frameworks: []schemas.GTMFramework{{
			ID:          "fw-1",
			Name:        "High-Velocity GTM Framework",
			Phases:      []schemas.Document{{"phase_name": "Scale", "activities": []any{"a", "b"}}},
			SuccessRate: 94.2,
			UseCases:    []string{"B2B SaaS launches"},
			CreatedAt:   now,
		}},
		Metrics: []schemas.Metric{
			{ID: "m-1", CaseStudyID: "cs-1", MetricName: "CAC", MetricValue: 2847, Category: "market"},
			{ID: "m-2", CaseStudyID: "missing", MetricName: "MRR", MetricValue: 1, Category: "revenue"},
		},
	}
	if err := store.Seed(ctx, data); err != nil {
		t.Fatalf("seed: %v", err)
	}

	all, err := store.FindCaseStudies(ctx)
	if err != nil || len(all) != 3 {
		t.Fatalf("FindCaseStudies = %d, %v; want 3", len(all), err)
	}

	one, err := store.FindCaseStudy(ctx, "cs-1")
	if err != nil {
		t.Fatalf("FindCaseStudy: %v", err)
	}
	research := one.MarketResearch["key_insights"].([]any)
	if len(research) != 2 || research[1] != "insight b" {
		t.Fatalf("nested array lost: %#v", one.MarketResearch)
	}
	competitor := one.CompetitiveAnalysis["direct_competitors"].([]any)[0].(map[string]any)
	if competitor["name"] != "Rival" {
		t.Fatalf("nested tree lost: %#v", one.CompetitiveAnalysis)
	}
	if len(one.ExecutionTimeline) != 1 || one.ExecutionTimeline[0]["phase"] != "Launch" {
		t.Fatalf("timeline lost: %#v", one.ExecutionTimeline)
	}

	if _, err := store.FindCaseStudy(ctx, "invalid-case-id-12345"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("missing id err = %v, want ErrNotFound", err)
	}

	metrics, err := store.FindMetricsByCaseStudy(ctx, "cs-2")
	if err != nil || len(metrics) != 0 {
		t.Fatalf("metrics for cs-2 = %d, %v; want empty", len(metrics), err)
	}
	metrics, err = store.FindMetricsByCaseStudy(ctx, "missing")
	if err != nil || len(metrics) != 1 {
		t.Fatalf("dangling metrics = %d, %v; want 1", len(metrics), err)
	}

	total, _ := store.CountCaseStudies(ctx, "")
	startups, _ := store.CountCaseStudies(ctx, schemas.COMPANY_TYPE_STARTUP)
	mncs, _ := store.CountCaseStudies(ctx, schemas.COMPANY_TYPE_MNC)
	if total != 3 || startups != 2 || mncs != 1 {
		t.Fatalf("counts = %d/%d/%d, want 3/2/1", total, startups, mncs)
	}

	avg, err = store.AverageSuccessRate(ctx)
	if err != nil || avg < 94.23 || avg > 94.24 {
		t.Fatalf("average = %v, %v; want ~94.233", avg, err)
	}
}

func testCaseStudy(id, companyType string, successRate float64, now time.Time) schemas.CaseStudy {
	return schemas.CaseStudy{
		ID:          id,
		CompanyName: "Company " + id,
		CompanyType: companyType,
		MarketResearch: schemas.Document{
			"total_addressable_market": "$47.2B",
			"key_insights":             []any{"insight a", "insight b"},
		},
		CompetitiveAnalysis: schemas.Document{
			"direct_competitors": []any{map[string]any{"name": "Rival", "market_share": "34%"}},
		},
		PricingStrategy:   schemas.Document{"model": "Tiered"},
		ChannelStrategy:   schemas.Document{"conversion_rates": map[string]any{"MQL to SQL": "28%"}},
		ExecutionTimeline: []schemas.Document{{"phase": "Launch", "duration": "3 months"}},
		KeyMetrics:        schemas.Document{"ltv_cac_ratio": "10.0x"},
		SuccessRate:       successRate,
		RevenueImpact:     "$18.7M ARR in 18 months",
		CreatedAt:         now,
		UpdatedAt:         now,
	}
}

func TestNormalizeValueFlattensDriverTypes(t *testing.T) {
	in := schemas.Document{
		"m": bson.M{"inner": bson.A{bson.D{{Key: "k", Value: "v"}}, int32(3)}},
		"s": "plain",
	}

	out := normalizeDocument(in)

	inner, ok := out["m"].(map[string]any)
	if !ok {
		t.Fatalf("bson.M not converted: %T", out["m"])
	}
	list, ok := inner["inner"].([]any)
	if !ok || len(list) != 2 {
		t.Fatalf("bson.A not converted: %T", inner["inner"])
	}
	doc, ok := list[0].(map[string]any)
	if !ok || doc["k"] != "v" {
		t.Fatalf("bson.D not converted: %#v", list[0])
	}
	if list[1] != int32(3) || out["s"] != "plain" {
		t.Fatalf("scalars changed: %#v", out)
	}
}
