// Package transport defines request and response DTOs for the leads API.
package transport

import (
	"github.com/google/uuid"

	"leadpilot_backend/internal/leads/scoring"
)

// CreateLeadRequest is the payload for creating a lead.
type CreateLeadRequest struct {
	Name            string  `json:"name" validate:"required,min=1,max=255"`
	BusinessType    string  `json:"businessType" validate:"required,min=1,max=120"`
	Email           string  `json:"email" validate:"omitempty,email"`
	Phone           string  `json:"phone" validate:"omitempty,max=40"`
	Website         string  `json:"website" validate:"omitempty,max=255"`
	Location        string  `json:"location" validate:"omitempty,max=255"`
	Status          string  `json:"status" validate:"omitempty,oneof=new contacted qualified proposal negotiation converted lost nurturing"`
	Notes           string  `json:"notes" validate:"omitempty,max=5000"`
	Verified        bool    `json:"verified"`
	QualityScore    float64 `json:"qualityScore" validate:"omitempty,min=0,max=100"`
	AIScore         float64 `json:"aiScore" validate:"omitempty,min=0"`
	RevenueEstimate float64 `json:"revenueEstimate" validate:"omitempty,min=0"`
	Source          string  `json:"source" validate:"omitempty,max=120"`
	AutoIntegrated  bool    `json:"autoIntegrated"`
}

// UpdateLeadRequest is the payload for a partial lead update. Omitted
// fields are left untouched.
type UpdateLeadRequest struct {
	Name            *string  `json:"name" validate:"omitempty,min=1,max=255"`
	BusinessType    *string  `json:"businessType" validate:"omitempty,min=1,max=120"`
	Email           *string  `json:"email" validate:"omitempty,email|eq="`
	Phone           *string  `json:"phone" validate:"omitempty,max=40"`
	Website         *string  `json:"website" validate:"omitempty,max=255"`
	Location        *string  `json:"location" validate:"omitempty,max=255"`
	Status          *string  `json:"status" validate:"omitempty,oneof=new contacted qualified proposal negotiation converted lost nurturing"`
	Notes           *string  `json:"notes" validate:"omitempty,max=5000"`
	Verified        *bool    `json:"verified"`
	QualityScore    *float64 `json:"qualityScore" validate:"omitempty,min=0,max=100"`
	AIScore         *float64 `json:"aiScore" validate:"omitempty,min=0"`
	RevenueEstimate *float64 `json:"revenueEstimate" validate:"omitempty,min=0"`
	Source          *string  `json:"source" validate:"omitempty,max=120"`
}

// ListLeadsRequest carries the list filters and pagination.
type ListLeadsRequest struct {
	Search       string `form:"search" validate:"omitempty,max=255"`
	BusinessType string `form:"business_type" validate:"omitempty,max=120"`
	Status       string `form:"status" validate:"omitempty,oneof=new contacted qualified proposal negotiation converted lost nurturing"`
	Source       string `form:"source" validate:"omitempty,max=120"`
	Page         int    `form:"page" validate:"omitempty,min=1"`
	PageSize     int    `form:"page_size" validate:"omitempty,min=1,max=200"`
}

// Bulk actions.
const (
	BulkActionDelete       = "delete"
	BulkActionUpdateStatus = "update_status"
)

// BulkLeadsRequest is the payload for bulk delete or bulk status update.
type BulkLeadsRequest struct {
	Action string      `json:"action" validate:"required,oneof=delete update_status"`
	IDs    []uuid.UUID `json:"ids" validate:"required,min=1,max=500"`
	Status string      `json:"status" validate:"omitempty,oneof=new contacted qualified proposal negotiation converted lost nurturing"`
}

// LeadResponse is a lead with its computed score and category. Scores
// are derived on every read, never stored.
type LeadResponse struct {
	ID              uuid.UUID `json:"id"`
	Name            string    `json:"name"`
	BusinessType    string    `json:"businessType"`
	Email           string    `json:"email,omitempty"`
	Phone           string    `json:"phone,omitempty"`
	Website         string    `json:"website,omitempty"`
	Location        string    `json:"location,omitempty"`
	Status          string    `json:"status"`
	Notes           string    `json:"notes,omitempty"`
	Verified        bool      `json:"verified"`
	QualityScore    float64   `json:"qualityScore,omitempty"`
	AIScore         float64   `json:"aiScore,omitempty"`
	RevenueEstimate float64   `json:"revenueEstimate,omitempty"`
	Source          string    `json:"source,omitempty"`
	AutoIntegrated  bool      `json:"autoIntegrated"`
	CreatedAt       string    `json:"createdAt"`
	UpdatedAt       string    `json:"updatedAt"`

	Score    int              `json:"score"`
	Category scoring.Category `json:"category"`
	Factors  scoring.Factors  `json:"factors"`
}

// LeadListResponse is a paginated list of leads.
type LeadListResponse struct {
	Items    []LeadResponse `json:"items"`
	Total    int            `json:"total"`
	Page     int            `json:"page"`
	PageSize int            `json:"pageSize"`
}

// BulkLeadsResponse reports how many leads a bulk action touched.
type BulkLeadsResponse struct {
	Action   string `json:"action"`
	Affected int    `json:"affected"`
}

// ScoreResponse is the full scoring analysis for one lead.
type ScoreResponse struct {
	LeadID   uuid.UUID        `json:"leadId"`
	Analysis scoring.Analysis `json:"analysis"`
}
