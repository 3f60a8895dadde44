package schemas

type DashboardStats struct {
	TotalCaseStudies   int64   `json:"total_case_studies"`
	StartupStudies     int64   `json:"startup_studies"`
	MNCStudies         int64   `json:"mnc_studies"`
	AverageSuccessRate float64 `json:"average_success_rate"`
}
