package schemas

type MessageResponse struct {
	Message string `json:"message"`
}

type ErrorResponse struct {
	Detail string `json:"detail"`
}

type CaseStudiesResponse struct {
	CaseStudies []CaseStudy `json:"case_studies"`
}

type FrameworksResponse struct {
	Frameworks []GTMFramework `json:"frameworks"`
}

type MetricsResponse struct {
	Metrics []Metric `json:"metrics"`
}
