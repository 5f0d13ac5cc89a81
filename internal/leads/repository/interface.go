package repository

import (
	"context"

	"github.com/google/uuid"

	"leadpilot_backend/internal/leads/domain"
)

// CreateParams contains data for creating a lead.
type CreateParams struct {
	Name            string
	BusinessType    string
	Email           string
	Phone           string
	Website         string
	Location        string
	Status          domain.Status
	Notes           string
	Verified        bool
	QualityScore    float64
	AIScore         float64
	RevenueEstimate float64
	Source          string
	AutoIntegrated  bool
}

// UpdateParams contains data for a partial lead update. Nil fields are
// left untouched.
type UpdateParams struct {
	ID              uuid.UUID
	Name            *string
	BusinessType    *string
	Email           *string
	Phone           *string
	Website         *string
	Location        *string
	Status          *domain.Status
	Notes           *string
	Verified        *bool
	QualityScore    *float64
	AIScore         *float64
	RevenueEstimate *float64
	Source          *string
}

// ListParams defines filters for listing leads. A Limit of zero or less
// means no limit.
type ListParams struct {
	Search       string
	BusinessType string
	Status       domain.Status
	Source       string
	Limit        int
	Offset       int
}

// SourceCount aggregates leads per acquisition source.
type SourceCount struct {
	Source    string
	Count     int
	LastAdded string
}

// Repository is the persistence port for leads.
type Repository interface {
	Create(ctx context.Context, params CreateParams) (domain.Lead, error)
	Get(ctx context.Context, id uuid.UUID) (domain.Lead, error)
	List(ctx context.Context, params ListParams) ([]domain.Lead, int, error)
	ListAll(ctx context.Context) ([]domain.Lead, error)
	Update(ctx context.Context, params UpdateParams) (domain.Lead, error)
	Delete(ctx context.Context, id uuid.UUID) error
	DeleteMany(ctx context.Context, ids []uuid.UUID) (int, error)
	UpdateStatusMany(ctx context.Context, ids []uuid.UUID, status domain.Status) (int, error)
	CountBySource(ctx context.Context) ([]SourceCount, error)
}
