// Package domain holds the lead aggregate and its value types.
package domain

import (
	"time"

	"github.com/google/uuid"
)

// Status is the sales pipeline status of a lead.
type Status string

const (
	StatusNew         Status = "new"
	StatusContacted   Status = "contacted"
	StatusQualified   Status = "qualified"
	StatusProposal    Status = "proposal"
	StatusNegotiation Status = "negotiation"
	StatusConverted   Status = "converted"
	StatusLost        Status = "lost"
	StatusNurturing   Status = "nurturing"
)

// Valid reports whether the status is one of the known pipeline statuses.
func (s Status) Valid() bool {
	switch s {
	case StatusNew, StatusContacted, StatusQualified, StatusProposal,
		StatusNegotiation, StatusConverted, StatusLost, StatusNurturing:
		return true
	}
	return false
}

// Lead is a prospective customer record with contact and business metadata.
// Optional numeric fields use the zero value as "absent": the scoring engine
// only credits values that are strictly positive, and a zero CreatedAt means
// the record's age is unknown.
type Lead struct {
	ID              uuid.UUID
	Name            string
	BusinessType    string
	Email           string
	Phone           string
	Website         string
	Location        string
	Status          Status
	Notes           string
	Verified        bool
	QualityScore    float64
	AIScore         float64
	RevenueEstimate float64
	Source          string
	AutoIntegrated  bool
	CreatedAt       time.Time
	UpdatedAt       time.Time
}
