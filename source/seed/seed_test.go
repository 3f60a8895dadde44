package seed

import (
	"fmt"
	"testing"
	"time"

	"github.com/aakashkavuru101/Product-Marketing-portfolio/source/schemas"
)

func sequentialIDs() func() string {
	n := 0
	return func() string {
		n++
		return fmt.Sprintf("id-%d", n)
	}
}

func TestLoad(t *testing.T) {
	now := time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)

	data, err := Load(now, sequentialIDs())
	if err != nil {
		t.Fatalf("load: %v", err)
	}

	if len(data.CaseStudies) != 3 || len(data.Frameworks) != 1 || len(data.Metrics) != 3 {
		t.Fatalf("got %d case studies, %d frameworks, %d metrics",
			len(data.CaseStudies), len(data.Frameworks), len(data.Metrics))
	}

	startups, mncs := 0, 0
	for _, cs := range data.CaseStudies {
		switch cs.CompanyType {
		case schemas.COMPANY_TYPE_STARTUP:
			startups++
		case schemas.COMPANY_TYPE_MNC:
			mncs++
		}
		if !cs.CreatedAt.Equal(now) || !cs.UpdatedAt.Equal(now) {
			t.Fatalf("%s: timestamps not stamped", cs.CompanyName)
		}
		if cs.KeyMetrics["ltv_cac_ratio"] == nil || len(cs.ExecutionTimeline) != 4 {
			t.Fatalf("%s: nested data missing", cs.CompanyName)
		}
	}
	if startups != 2 || mncs != 1 {
		t.Fatalf("startups=%d mncs=%d", startups, mncs)
	}

	cloudSync := data.CaseStudies[0]
	if cloudSync.CompanyName != "CloudSync Pro" || cloudSync.ID != "id-1" {
		t.Fatalf("first case study = %s/%s", cloudSync.CompanyName, cloudSync.ID)
	}
	competitors, ok := cloudSync.CompetitiveAnalysis["direct_competitors"].([]any)
	if !ok || len(competitors) != 3 {
		t.Fatalf("direct_competitors = %#v", cloudSync.CompetitiveAnalysis["direct_competitors"])
	}
	if _, ok := competitors[0].(map[string]any); !ok {
		t.Fatalf("competitor entry is %T, want map[string]any", competitors[0])
	}

	for _, m := range data.Metrics {
		if m.CaseStudyID != cloudSync.ID {
			t.Fatalf("metric %s linked to %s, want %s", m.MetricName, m.CaseStudyID, cloudSync.ID)
		}
	}

	fw := data.Frameworks[0]
	if fw.Name != "High-Velocity GTM Framework" || fw.SuccessRate != 94.2 || len(fw.Phases) != 4 || len(fw.UseCases) != 3 {
		t.Fatalf("framework = %+v", fw)
	}
}

func TestParseUnknownCaseStudy(t *testing.T) {
	raw := []byte(`
case_studies:
  - company_name: "Acme"
    company_type: "startup"
    success_rate: 90
metrics:
  - case_study: "Nobody"
    metric_name: "Churn"
    metric_value: 1.5
`)
	if _, err := Parse(raw, time.Now(), sequentialIDs()); err == nil {
		t.Fatalf("expected error for unknown case study reference")
	}
}
