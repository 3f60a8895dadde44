package seed

import (
	_ "embed"
	"fmt"
	"time"

	"github.com/aakashkavuru101/Product-Marketing-portfolio/source/database"
	"github.com/aakashkavuru101/Product-Marketing-portfolio/source/schemas"

	"gopkg.in/yaml.v3"
)

//go:embed fixtures.yaml
var fixturesYAML []byte

type metricFixture struct {
	schemas.Metric `yaml:",inline"`
	CaseStudy      string `yaml:"case_study"`
}

type fixtures struct {
	CaseStudies []schemas.CaseStudy    `yaml:"case_studies"`
	Frameworks  []schemas.GTMFramework `yaml:"frameworks"`
	Metrics     []metricFixture        `yaml:"metrics"`
}

// Load parses the embedded portfolio fixtures.
func Load(now time.Time, newID func() string) (database.SeedData, error) {
	return Parse(fixturesYAML, now, newID)
}

// Parse stamps every record with a fresh id and now, and links each metric to
// the case study named by its case_study field.
func Parse(raw []byte, now time.Time, newID func() string) (database.SeedData, error) {
	f := fixtures{}
	if err := yaml.Unmarshal(raw, &f); err != nil {
		return database.SeedData{}, fmt.Errorf("parse fixtures: %w", err)
	}

	data := database.SeedData{
		CaseStudies: make([]schemas.CaseStudy, 0, len(f.CaseStudies)),
		Frameworks:  make([]schemas.GTMFramework, 0, len(f.Frameworks)),
		Metrics:     make([]schemas.Metric, 0, len(f.Metrics)),
	}

	idsByCompany := map[string]string{}
	for _, cs := range f.CaseStudies {
		if _, dup := idsByCompany[cs.CompanyName]; dup {
			return database.SeedData{}, fmt.Errorf("duplicate case study %q", cs.CompanyName)
		}
		cs.ID = newID()
		cs.CreatedAt = now
		cs.UpdatedAt = now
		idsByCompany[cs.CompanyName] = cs.ID
		data.CaseStudies = append(data.CaseStudies, cs)
	}

	for _, fw := range f.Frameworks {
		fw.ID = newID()
		fw.CreatedAt = now
		data.Frameworks = append(data.Frameworks, fw)
	}

	for _, m := range f.Metrics {
		caseStudyID, ok := idsByCompany[m.CaseStudy]
		if !ok {
			return database.SeedData{}, fmt.Errorf("metric %q references unknown case study %q", m.MetricName, m.CaseStudy)
		}
		metric := m.Metric
		metric.ID = newID()
		metric.CaseStudyID = caseStudyID
		data.Metrics = append(data.Metrics, metric)
	}

	return data, nil
}
