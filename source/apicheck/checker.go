package apicheck

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/aakashkavuru101/Product-Marketing-portfolio/source/utils"
)

const INVALID_CASE_ID = "invalid-case-id-12345"

func caseStudyPath(id string) string {
	return "/api/case-studies/" + url.PathEscape(id)
}

func metricsPath(caseStudyID string) string {
	return "/api/metrics/" + url.PathEscape(caseStudyID)
}

var revenuePattern = regexp.MustCompile(`\$(\d+(?:\.\d+)?)M`)

// Expectations describe the data set the target server is expected to hold.
// The defaults match the bundled seed fixtures.
type Expectations struct {
	TotalCaseStudies   int64
	StartupStudies     int64
	MNCStudies         int64
	MinSuccessRate     float64
	MinRevenueMillions float64
	MinLTVCAC          float64
	MaxLTVCAC          float64
	FrameworkName      string
	MaxResponseTime    time.Duration
}

func DefaultExpectations() Expectations {
	return Expectations{
		TotalCaseStudies:   3,
		StartupStudies:     2,
		MNCStudies:         1,
		MinSuccessRate:     90,
		MinRevenueMillions: 150,
		MinLTVCAC:          9.8,
		MaxLTVCAC:          18.8,
		FrameworkName:      "High-Velocity",
		MaxResponseTime:    5 * time.Second,
	}
}

type Checker struct {
	baseURL string
	client  *http.Client
	expect  Expectations
	report  *Report
}

func New(baseURL string, client *http.Client, expect Expectations) *Checker {
	if client == nil {
		client = &http.Client{Timeout: 10 * time.Second}
	}
	return &Checker{
		baseURL: strings.TrimRight(baseURL, "/"),
		client:  client,
		expect:  expect,
	}
}

// Run executes every check in order. A failed health check stops the run.
func (c *Checker) Run(ctx context.Context) *Report {
	c.report = &Report{}

	if !c.checkHealth(ctx) {
		return c.report
	}

	c.checkDashboardStats(ctx)
	caseStudies := c.checkCaseStudies(ctx)
	c.checkCaseStudyDetails(ctx, caseStudies)
	c.checkFrameworks(ctx)
	c.checkMetrics(ctx, caseStudies)
	c.checkPerformance(ctx)

	return c.report
}

func (c *Checker) pass(name, format string, args ...any) {
	c.report.add(Result{Name: name, Passed: true, Message: fmt.Sprintf(format, args...)})
}

func (c *Checker) fail(name, format string, args ...any) {
	c.report.add(Result{Name: name, Passed: false, Message: fmt.Sprintf(format, args...)})
}

func (c *Checker) get(ctx context.Context, path string) (int, []byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path, nil)
	if err != nil {
		return 0, nil, err
	}
	resp, err := c.client.Do(req)
	if err != nil {
		return 0, nil, err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return resp.StatusCode, nil, err
	}
	return resp.StatusCode, body, nil
}

// getJSON decodes a 200 response into out. Numbers stay json.Number so
// integer fields can be told apart from floats.
func (c *Checker) getJSON(ctx context.Context, path string, out any) error {
	status, body, err := c.get(ctx, path)
	if err != nil {
		return fmt.Errorf("request failed: %w", err)
	}
	if status != http.StatusOK {
		return fmt.Errorf("HTTP %d: %s", status, bytes.TrimSpace(body))
	}

	dec := json.NewDecoder(bytes.NewReader(body))
	dec.UseNumber()
	if err := dec.Decode(out); err != nil {
		return fmt.Errorf("invalid JSON response: %w", err)
	}
	return nil
}

func (c *Checker) checkHealth(ctx context.Context) bool {
	const name = "Server Health Check"

	status, _, err := c.get(ctx, "/")
	if err != nil {
		c.fail(name, "server not accessible: %v", err)
		return false
	}
	if status != http.StatusOK {
		c.fail(name, "server returned status %d", status)
		return false
	}
	c.pass(name, "server is running and accessible")
	return true
}

func (c *Checker) checkDashboardStats(ctx context.Context) {
	const name = "Dashboard Stats API"

	data := map[string]any{}
	if err := c.getJSON(ctx, "/api/dashboard-stats", &data); err != nil {
		c.fail(name, "%v", err)
		return
	}

	if missing := missingFields(data, "total_case_studies", "startup_studies", "mnc_studies", "average_success_rate"); len(missing) > 0 {
		c.fail(name, "missing fields: %v", missing)
		return
	}

	counts := map[string]int64{}
	for _, field := range []string{"total_case_studies", "startup_studies", "mnc_studies"} {
		n, ok := asInt(data[field])
		if !ok || n < 0 {
			c.fail(name, "invalid %s value: %v", field, data[field])
			return
		}
		counts[field] = n
	}

	rate, ok := asFloat(data["average_success_rate"])
	if !ok || rate < c.expect.MinSuccessRate || rate > 100 {
		c.fail(name, "success rate %v%% not in required range %v-100%%", data["average_success_rate"], c.expect.MinSuccessRate)
		return
	}

	if counts["startup_studies"]+counts["mnc_studies"] != counts["total_case_studies"] {
		c.fail(name, "startup + MNC studies don't equal total studies")
		return
	}

	for field, want := range map[string]int64{
		"total_case_studies": c.expect.TotalCaseStudies,
		"startup_studies":    c.expect.StartupStudies,
		"mnc_studies":        c.expect.MNCStudies,
	} {
		if counts[field] != want {
			c.fail(name, "expected %d %s, got %d", want, field, counts[field])
			return
		}
	}

	c.pass(name, "all validations passed, success rate: %v%%", rate)
}

func (c *Checker) checkCaseStudies(ctx context.Context) []map[string]any {
	const name = "Case Studies List API"

	data := struct {
		CaseStudies []map[string]any `json:"case_studies"`
	}{}
	if err := c.getJSON(ctx, "/api/case-studies", &data); err != nil {
		c.fail(name, "%v", err)
		return nil
	}
	if data.CaseStudies == nil {
		c.fail(name, "missing 'case_studies' list in response")
		return nil
	}

	studies := data.CaseStudies
	if int64(len(studies)) != c.expect.TotalCaseStudies {
		c.fail(name, "expected %d case studies, got %d", c.expect.TotalCaseStudies, len(studies))
		return nil
	}

	var startups, mncs int64
	totalRevenue := 0.0
	for i, study := range studies {
		if missing := missingFields(study, "id", "company_name", "company_type", "industry", "success_rate", "revenue_impact", "key_metrics"); len(missing) > 0 {
			c.fail(name, "case study %d missing fields: %v", i, missing)
			return nil
		}

		switch study["company_type"] {
		case "startup":
			startups++
		case "mnc":
			mncs++
		default:
			c.fail(name, "invalid company_type: %v", study["company_type"])
			return nil
		}

		rate, ok := asFloat(study["success_rate"])
		if !ok || rate < c.expect.MinSuccessRate || rate > 100 {
			c.fail(name, "invalid success rate for %v: %v%%", study["company_name"], study["success_rate"])
			return nil
		}

		if revenue, ok := study["revenue_impact"].(string); ok {
			totalRevenue += parseRevenueMillions(revenue)
		}
	}

	if startups != c.expect.StartupStudies {
		c.fail(name, "expected %d startups, got %d", c.expect.StartupStudies, startups)
		return nil
	}
	if mncs != c.expect.MNCStudies {
		c.fail(name, "expected %d MNC, got %d", c.expect.MNCStudies, mncs)
		return nil
	}
	if totalRevenue < c.expect.MinRevenueMillions {
		c.fail(name, "total revenue impact $%vM below required $%vM", totalRevenue, c.expect.MinRevenueMillions)
		return nil
	}

	c.pass(name, "all validations passed, total revenue: $%vM", totalRevenue)
	return studies
}

func (c *Checker) checkCaseStudyDetails(ctx context.Context, studies []map[string]any) {
	if len(studies) == 0 {
		c.fail("Case Study Detail API", "no case studies available for testing")
		return
	}

	for _, study := range studies {
		id := fmt.Sprint(study["id"])
		name := fmt.Sprintf("Case Study Detail API (%s)", id)

		data := map[string]any{}
		if err := c.getJSON(ctx, caseStudyPath(id), &data); err != nil {
			c.fail(name, "%v", err)
			continue
		}

		if missing := missingFields(data, "market_research", "competitive_analysis", "pricing_strategy", "channel_strategy", "execution_timeline"); len(missing) > 0 {
			c.fail(name, "missing detailed fields: %v", missing)
			continue
		}

		if createdAt, ok := data["created_at"].(string); ok && !utils.IsValidDate(createdAt) {
			c.fail(name, "created_at %q is not a timestamp", createdAt)
			continue
		}

		if keyMetrics, ok := data["key_metrics"].(map[string]any); ok {
			if ratio, ok := parseRatio(keyMetrics["ltv_cac_ratio"]); ok && (ratio < c.expect.MinLTVCAC || ratio > c.expect.MaxLTVCAC) {
				c.fail(name, "LTV:CAC ratio %v outside expected range %vx-%vx", keyMetrics["ltv_cac_ratio"], c.expect.MinLTVCAC, c.expect.MaxLTVCAC)
				continue
			}
		}

		c.pass(name, "detailed data validated for %v", data["company_name"])
	}

	const notFound = "Case Study Detail API (404 Test)"
	status, _, err := c.get(ctx, caseStudyPath(INVALID_CASE_ID))
	switch {
	case err != nil:
		c.fail(notFound, "error testing 404: %v", err)
	case status != http.StatusNotFound:
		c.fail(notFound, "expected 404, got %d", status)
	default:
		c.pass(notFound, "correctly returns 404 for invalid case ID")
	}
}

func (c *Checker) checkFrameworks(ctx context.Context) {
	const name = "Frameworks API"

	data := struct {
		Frameworks []map[string]any `json:"frameworks"`
	}{}
	if err := c.getJSON(ctx, "/api/frameworks", &data); err != nil {
		c.fail(name, "%v", err)
		return
	}
	if len(data.Frameworks) == 0 {
		c.fail(name, "no frameworks found")
		return
	}

	found := false
	for _, fw := range data.Frameworks {
		if missing := missingFields(fw, "id", "name", "phases", "success_rate", "use_cases"); len(missing) > 0 {
			c.fail(name, "framework missing fields: %v", missing)
			return
		}

		fwName, _ := fw["name"].(string)
		if !strings.Contains(fwName, c.expect.FrameworkName) {
			continue
		}
		found = true

		rate, ok := asFloat(fw["success_rate"])
		if !ok || rate < c.expect.MinSuccessRate || rate > 100 {
			c.fail(name, "framework success rate %v%% not in range %v-100%%", fw["success_rate"], c.expect.MinSuccessRate)
			return
		}
	}

	if !found {
		c.fail(name, "%s framework not found", c.expect.FrameworkName)
		return
	}

	c.pass(name, "all validations passed, found %d framework(s)", len(data.Frameworks))
}

func (c *Checker) checkMetrics(ctx context.Context, studies []map[string]any) {
	if len(studies) == 0 {
		c.fail("Metrics API", "no case studies available for testing")
		return
	}

	for _, study := range studies {
		id := fmt.Sprint(study["id"])
		name := fmt.Sprintf("Metrics API (%s)", id)

		data := map[string]any{}
		if err := c.getJSON(ctx, metricsPath(id), &data); err != nil {
			c.fail(name, "%v", err)
			continue
		}

		metrics, ok := data["metrics"].([]any)
		if !ok {
			c.fail(name, "missing 'metrics' list in response")
			continue
		}

		if problem := metricsProblem(metrics, id); problem != "" {
			c.fail(name, "%s", problem)
			continue
		}

		c.pass(name, "metrics data validated for %v", study["company_name"])
	}
}

func metricsProblem(metrics []any, caseStudyID string) string {
	for _, raw := range metrics {
		metric, ok := raw.(map[string]any)
		if !ok {
			return fmt.Sprintf("metric is not an object: %v", raw)
		}
		if missing := missingFields(metric, "id", "case_study_id", "metric_name", "metric_value", "category"); len(missing) > 0 {
			return fmt.Sprintf("metric missing fields: %v", missing)
		}
		if metric["case_study_id"] != caseStudyID {
			return fmt.Sprintf("metric case_study_id mismatch: %v != %s", metric["case_study_id"], caseStudyID)
		}
	}
	return ""
}

func (c *Checker) checkPerformance(ctx context.Context) {
	for _, path := range []string{"/api/dashboard-stats", "/api/case-studies", "/api/frameworks"} {
		name := "Performance Test " + path

		start := time.Now()
		status, _, err := c.get(ctx, path)
		elapsed := time.Since(start)

		switch {
		case err != nil:
			c.fail(name, "error: %v", err)
		case status != http.StatusOK || elapsed >= c.expect.MaxResponseTime:
			c.fail(name, "slow response: %s or HTTP %d", elapsed, status)
		default:
			c.pass(name, "response time: %.2fms", float64(elapsed.Microseconds())/1000)
		}
	}
}

func missingFields(doc map[string]any, fields ...string) []string {
	missing := []string{}
	for _, f := range fields {
		if _, ok := doc[f]; !ok {
			missing = append(missing, f)
		}
	}
	return missing
}

func asInt(v any) (int64, bool) {
	n, ok := v.(json.Number)
	if !ok {
		return 0, false
	}
	i, err := n.Int64()
	return i, err == nil
}

func asFloat(v any) (float64, bool) {
	n, ok := v.(json.Number)
	if !ok {
		return 0, false
	}
	f, err := n.Float64()
	return f, err == nil
}

// parseRevenueMillions reads the first "$<n>M" amount, 0 when there is none.
func parseRevenueMillions(s string) float64 {
	m := revenuePattern.FindStringSubmatch(s)
	if m == nil {
		return 0
	}
	v, err := strconv.ParseFloat(m[1], 64)
	if err != nil {
		return 0
	}
	return v
}

// parseRatio accepts "10.0x" strings as well as bare numbers. Unparseable
// values are skipped rather than failed.
func parseRatio(v any) (float64, bool) {
	switch r := v.(type) {
	case json.Number:
		f, err := r.Float64()
		return f, err == nil
	case string:
		f, err := strconv.ParseFloat(strings.TrimSpace(strings.ReplaceAll(r, "x", "")), 64)
		return f, err == nil
	}
	return 0, false
}
