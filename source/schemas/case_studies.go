package schemas

import "time"

const (
	COMPANY_TYPE_STARTUP = "startup"
	COMPANY_TYPE_MNC     = "mnc"
)

// Document is a free-form JSON-compatible tree. Its keys vary per record and
// the API never looks inside it.
type Document = map[string]any

type CaseStudy struct {
	ID                  string     `json:"id" bson:"id" yaml:"id"`
	CompanyName         string     `json:"company_name" bson:"company_name" yaml:"company_name"`
	CompanyType         string     `json:"company_type" bson:"company_type" yaml:"company_type"`
	Industry            string     `json:"industry" bson:"industry" yaml:"industry"`
	ProductCategory     string     `json:"product_category" bson:"product_category" yaml:"product_category"`
	Challenge           string     `json:"challenge" bson:"challenge" yaml:"challenge"`
	SolutionOverview    string     `json:"solution_overview" bson:"solution_overview" yaml:"solution_overview"`
	MarketResearch      Document   `json:"market_research" bson:"market_research" yaml:"market_research"`
	CompetitiveAnalysis Document   `json:"competitive_analysis" bson:"competitive_analysis" yaml:"competitive_analysis"`
	PricingStrategy     Document   `json:"pricing_strategy" bson:"pricing_strategy" yaml:"pricing_strategy"`
	ChannelStrategy     Document   `json:"channel_strategy" bson:"channel_strategy" yaml:"channel_strategy"`
	ExecutionTimeline   []Document `json:"execution_timeline" bson:"execution_timeline" yaml:"execution_timeline"`
	KeyMetrics          Document   `json:"key_metrics" bson:"key_metrics" yaml:"key_metrics"`
	SuccessRate         float64    `json:"success_rate" bson:"success_rate" yaml:"success_rate"`
	RevenueImpact       string     `json:"revenue_impact" bson:"revenue_impact" yaml:"revenue_impact"`
	CreatedAt           time.Time  `json:"created_at" bson:"created_at" yaml:"-"`
	UpdatedAt           time.Time  `json:"updated_at" bson:"updated_at" yaml:"-"`
}
