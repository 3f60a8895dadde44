package apicheck

import (
	"bytes"
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/aakashkavuru101/Product-Marketing-portfolio/source/database"
	casestudies "github.com/aakashkavuru101/Product-Marketing-portfolio/source/entities/case_studies"
	"github.com/aakashkavuru101/Product-Marketing-portfolio/source/entities/frameworks"
	"github.com/aakashkavuru101/Product-Marketing-portfolio/source/entities/health"
	"github.com/aakashkavuru101/Product-Marketing-portfolio/source/entities/metrics"
	"github.com/aakashkavuru101/Product-Marketing-portfolio/source/entities/report"
	"github.com/aakashkavuru101/Product-Marketing-portfolio/source/schemas"
	"github.com/aakashkavuru101/Product-Marketing-portfolio/source/seed"

	"github.com/google/uuid"
)

type seededStore struct {
	data database.SeedData
}

func (s *seededStore) FindCaseStudies(ctx context.Context) ([]schemas.CaseStudy, error) {
	return s.data.CaseStudies, nil
}

func (s *seededStore) FindCaseStudy(ctx context.Context, id string) (schemas.CaseStudy, error) {
	for _, cs := range s.data.CaseStudies {
		if cs.ID == id {
			return cs, nil
		}
	}
	return schemas.CaseStudy{}, database.ErrNotFound
}

func (s *seededStore) FindFrameworks(ctx context.Context) ([]schemas.GTMFramework, error) {
	return s.data.Frameworks, nil
}

func (s *seededStore) FindMetricsByCaseStudy(ctx context.Context, caseStudyID string) ([]schemas.Metric, error) {
	out := []schemas.Metric{}
	for _, m := range s.data.Metrics {
		if m.CaseStudyID == caseStudyID {
			out = append(out, m)
		}
	}
	return out, nil
}

func (s *seededStore) CountCaseStudies(ctx context.Context, companyType string) (int64, error) {
	var n int64
	for _, cs := range s.data.CaseStudies {
		if companyType == "" || cs.CompanyType == companyType {
			n++
		}
	}
	return n, nil
}

func (s *seededStore) AverageSuccessRate(ctx context.Context) (float64, error) {
	if len(s.data.CaseStudies) == 0 {
		return 0, nil
	}
	sum := 0.0
	for _, cs := range s.data.CaseStudies {
		sum += cs.SuccessRate
	}
	return sum / float64(len(s.data.CaseStudies)), nil
}

func newServer(t *testing.T, data database.SeedData) *httptest.Server {
	t.Helper()
	store := &seededStore{data: data}

	caseStudies := casestudies.NewHandler(store, nil)
	mux := http.NewServeMux()
	mux.HandleFunc("GET /{$}", health.GetRoot)
	mux.HandleFunc("GET /api/case-studies", caseStudies.GetAll)
	mux.HandleFunc("GET /api/case-studies/{id}", caseStudies.GetOne)
	mux.HandleFunc("GET /api/frameworks", frameworks.NewHandler(store, nil).GetAll)
	mux.HandleFunc("GET /api/metrics/{id}", metrics.NewHandler(store, nil).GetAllByCaseStudy)
	mux.HandleFunc("GET /api/dashboard-stats", report.NewHandler(store, nil, nil).GetDashboardStats)
	mux.HandleFunc(health.FALLBACK_PATTERN, health.Fallback(mux))

	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)
	return srv
}

func TestRunAgainstSeededServer(t *testing.T) {
	data, err := seed.Load(time.Now().UTC(), uuid.NewString)
	if err != nil {
		t.Fatalf("load fixtures: %v", err)
	}
	srv := newServer(t, data)

	rep := New(srv.URL, srv.Client(), DefaultExpectations()).Run(context.Background())

	for _, res := range rep.Failed() {
		t.Errorf("%s: %s", res.Name, res.Message)
	}
	// health, dashboard, list, 3 details, 404 probe, frameworks, 3 metrics, 3 timings
	if len(rep.Results) != 14 {
		t.Fatalf("got %d results, want 14", len(rep.Results))
	}
	if !rep.OK() || rep.SuccessRate() != 100 {
		t.Fatalf("report not OK: %.1f%%", rep.SuccessRate())
	}

	out := &bytes.Buffer{}
	rep.Write(out)
	if !strings.Contains(out.String(), "Failed: 0") {
		t.Fatalf("report output:\n%s", out.String())
	}
}

func TestRunEscapesCaseStudyIDs(t *testing.T) {
	data, err := seed.Load(time.Now().UTC(), uuid.NewString)
	if err != nil {
		t.Fatalf("load fixtures: %v", err)
	}

	suffixes := []string{"/extra", "?x=1", "#frag"}
	renamed := map[string]string{}
	for i := range data.CaseStudies {
		id := data.CaseStudies[i].ID + suffixes[i%len(suffixes)]
		renamed[data.CaseStudies[i].ID] = id
		data.CaseStudies[i].ID = id
	}
	for i := range data.Metrics {
		data.Metrics[i].CaseStudyID = renamed[data.Metrics[i].CaseStudyID]
	}
	srv := newServer(t, data)

	rep := New(srv.URL, srv.Client(), DefaultExpectations()).Run(context.Background())
	for _, res := range rep.Failed() {
		t.Errorf("%s: %s", res.Name, res.Message)
	}
}

func TestRunAgainstEmptyServer(t *testing.T) {
	srv := newServer(t, database.SeedData{})

	rep := New(srv.URL, srv.Client(), DefaultExpectations()).Run(context.Background())
	if rep.OK() {
		t.Fatalf("expected failures against an empty server")
	}

	failed := map[string]bool{}
	for _, res := range rep.Failed() {
		failed[res.Name] = true
	}
	for _, name := range []string{"Dashboard Stats API", "Case Studies List API", "Case Study Detail API", "Frameworks API", "Metrics API"} {
		if !failed[name] {
			t.Fatalf("%q should have failed, failures: %v", name, failed)
		}
	}
}

func TestRunStopsWhenServerIsDown(t *testing.T) {
	srv := newServer(t, database.SeedData{})
	url := srv.URL
	srv.Close()

	rep := New(url, nil, DefaultExpectations()).Run(context.Background())
	if len(rep.Results) != 1 || rep.Results[0].Passed {
		t.Fatalf("results = %+v", rep.Results)
	}
}

func TestResourcePaths(t *testing.T) {
	if got := caseStudyPath("a/b?c"); got != "/api/case-studies/a%2Fb%3Fc" {
		t.Fatalf("caseStudyPath = %s", got)
	}
	if got := metricsPath("a b"); got != "/api/metrics/a%20b" {
		t.Fatalf("metricsPath = %s", got)
	}
}

func TestParseHelpers(t *testing.T) {
	revenue := map[string]float64{
		"$18.7M ARR in 18 months":                           18.7,
		"$142M ARR with 67% market share in target segment": 142,
		"no figures here":                                   0,
	}
	for in, want := range revenue {
		if got := parseRevenueMillions(in); got != want {
			t.Fatalf("parseRevenueMillions(%q) = %v, want %v", in, got, want)
		}
	}

	if r, ok := parseRatio("18.8x"); !ok || r != 18.8 {
		t.Fatalf("parseRatio(18.8x) = %v, %v", r, ok)
	}
	if _, ok := parseRatio("n/a"); ok {
		t.Fatalf("parseRatio(n/a) should not parse")
	}
}
