// Package transport defines request and response DTOs for the scraper API.
package transport

import "github.com/google/uuid"

// StartRequest launches a scraper by registry name.
type StartRequest struct {
	Scraper string `json:"scraper" validate:"required"`
}

// StartResponse acknowledges a started run.
type StartResponse struct {
	RunID     uuid.UUID `json:"runId"`
	Scraper   string    `json:"scraper"`
	PID       int       `json:"pid"`
	StartTime string    `json:"startTime"`
	Mode      string    `json:"mode"`
	Message   string    `json:"message"`
}

// StopRequest stops a running scraper by name.
type StopRequest struct {
	Scraper string `json:"scraper" validate:"required"`
}

// RunStatus describes one tracked scraper run.
type RunStatus struct {
	RunID     uuid.UUID `json:"runId"`
	Name      string    `json:"name"`
	PID       int       `json:"pid"`
	Status    string    `json:"status"`
	IsRunning bool      `json:"isRunning"`
	StartTime string    `json:"startTime"`
	EndTime   string    `json:"endTime,omitempty"`
	Output    string    `json:"output"`
}

// StatusResponse lists all tracked runs.
type StatusResponse struct {
	ActiveScrapers []RunStatus `json:"activeScrapers"`
}

// ScraperResult aggregates integrated leads per scraper.
type ScraperResult struct {
	Scraper   string `json:"scraper"`
	SourceTag string `json:"sourceTag"`
	Leads     int    `json:"leads"`
	LastRun   string `json:"lastRun,omitempty"`
}

// ResultsResponse summarizes what each scraper has contributed to the
// lead store.
type ResultsResponse struct {
	TotalLeads int             `json:"totalLeads"`
	Results    []ScraperResult `json:"results"`
}
