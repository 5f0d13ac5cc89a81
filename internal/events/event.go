// Package events provides domain event definitions for decoupled,
// event-driven communication between modules.
// Infrastructure (Bus, Handler) is in platform/events.
package events

import (
	"leadpilot_backend/platform/events"

	"github.com/google/uuid"
)

// Re-export platform types for convenience
type (
	Event       = events.Event
	Bus         = events.Bus
	Handler     = events.Handler
	HandlerFunc = events.HandlerFunc
	BaseEvent   = events.BaseEvent
)

// Re-export platform functions
var NewBaseEvent = events.NewBaseEvent

// =============================================================================
// Leads Domain Events
// =============================================================================

// LeadCreated is published when a new lead is created.
type LeadCreated struct {
	BaseEvent
	LeadID         uuid.UUID `json:"leadId"`
	Name           string    `json:"name"`
	BusinessType   string    `json:"businessType"`
	Source         string    `json:"source,omitempty"`
	AutoIntegrated bool      `json:"autoIntegrated"`
}

func (e LeadCreated) EventName() string { return "leads.lead.created" }

// LeadUpdated is published when lead data changes.
type LeadUpdated struct {
	BaseEvent
	LeadID uuid.UUID `json:"leadId"`
}

func (e LeadUpdated) EventName() string { return "leads.lead.updated" }

// LeadDeleted is published when one or more leads are removed.
type LeadDeleted struct {
	BaseEvent
	LeadIDs []uuid.UUID `json:"leadIds"`
}

func (e LeadDeleted) EventName() string { return "leads.lead.deleted" }

// =============================================================================
// Scraper Domain Events
// =============================================================================

// ScraperRunCompleted is published when a simulated scraper run finishes
// and its leads have been integrated.
type ScraperRunCompleted struct {
	BaseEvent
	RunID      uuid.UUID `json:"runId"`
	Scraper    string    `json:"scraper"`
	LeadsFound int       `json:"leadsFound"`
}

func (e ScraperRunCompleted) EventName() string { return "scrapers.run.completed" }
