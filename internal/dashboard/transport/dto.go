// Package transport defines response DTOs for the dashboard API.
package transport

// SourceShare is one entry of the top-sources ranking.
type SourceShare struct {
	Source string `json:"source"`
	Count  int    `json:"count"`
}

// MetricsResponse is the dashboard overview payload.
type MetricsResponse struct {
	TotalLeads          int           `json:"totalLeads"`
	HotLeads            int           `json:"hotLeads"`
	WarmLeads           int           `json:"warmLeads"`
	ColdLeads           int           `json:"coldLeads"`
	ConversionRate      float64       `json:"conversionRate"`
	PipelineValue       float64       `json:"pipelineValue"`
	AverageScore        float64       `json:"averageScore"`
	ActivitiesCompleted int           `json:"activitiesCompleted"`
	MonthlyGrowth       float64       `json:"monthlyGrowth"`
	TopSources          []SourceShare `json:"topSources"`
}

// StatsResponse is the lead distribution payload.
type StatsResponse struct {
	Total          int            `json:"total"`
	ByStatus       map[string]int `json:"byStatus"`
	ByBusinessType map[string]int `json:"byBusinessType"`
	ByCategory     map[string]int `json:"byCategory"`
}
