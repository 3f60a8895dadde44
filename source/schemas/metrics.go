package schemas

const (
	METRIC_CATEGORY_MARKET  = "market"
	METRIC_CATEGORY_PRICING = "pricing"
	METRIC_CATEGORY_CHANNEL = "channel"
	METRIC_CATEGORY_REVENUE = "revenue"
)

// Metric.CaseStudyID is a weak reference: it is not checked against the
// case_studies collection.
type Metric struct {
	ID          string  `json:"id" bson:"id" yaml:"id"`
	CaseStudyID string  `json:"case_study_id" bson:"case_study_id" yaml:"case_study_id"`
	MetricName  string  `json:"metric_name" bson:"metric_name" yaml:"metric_name"`
	MetricValue float64 `json:"metric_value" bson:"metric_value" yaml:"metric_value"`
	MetricUnit  string  `json:"metric_unit" bson:"metric_unit" yaml:"metric_unit"`
	TimePeriod  string  `json:"time_period" bson:"time_period" yaml:"time_period"`
	Category    string  `json:"category" bson:"category" yaml:"category"`
}
