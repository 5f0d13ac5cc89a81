// Package service provides business logic for the leads bounded context.
package service

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"

	"leadpilot_backend/internal/events"
	"leadpilot_backend/internal/leads/domain"
	"leadpilot_backend/internal/leads/repository"
	"leadpilot_backend/internal/leads/scoring"
	"leadpilot_backend/internal/leads/transport"
	"leadpilot_backend/platform/apperr"
	"leadpilot_backend/platform/logger"
	"leadpilot_backend/platform/phone"
	"leadpilot_backend/platform/sanitize"
)

const defaultSource = "manual"

// Service provides business logic for leads.
type Service struct {
	repo repository.Repository
	bus  events.Bus
	log  *logger.Logger
}

// New creates a new leads service.
func New(repo repository.Repository, bus events.Bus, log *logger.Logger) *Service {
	return &Service{repo: repo, bus: bus, log: log}
}

// Repository exposes the lead store to sibling modules (dashboard,
// scraper results).
func (s *Service) Repository() repository.Repository {
	return s.repo
}

func toLeadResponse(lead domain.Lead, now time.Time) transport.LeadResponse {
	score := scoring.CalculateLeadScoreAt(lead, now)
	return transport.LeadResponse{
		ID:              lead.ID,
		Name:            lead.Name,
		BusinessType:    lead.BusinessType,
		Email:           lead.Email,
		Phone:           lead.Phone,
		Website:         lead.Website,
		Location:        lead.Location,
		Status:          string(lead.Status),
		Notes:           lead.Notes,
		Verified:        lead.Verified,
		QualityScore:    lead.QualityScore,
		AIScore:         lead.AIScore,
		RevenueEstimate: lead.RevenueEstimate,
		Source:          lead.Source,
		AutoIntegrated:  lead.AutoIntegrated,
		CreatedAt:       lead.CreatedAt.Format(time.RFC3339),
		UpdatedAt:       lead.UpdatedAt.Format(time.RFC3339),
		Score:           score,
		Category:        scoring.CategorizeLeadByScore(score),
		Factors:         scoring.AnalyzeFactorsAt(lead, now),
	}
}

// Create stores a new lead. Free text is sanitized and the phone number
// normalized to E.164 before persisting.
func (s *Service) Create(ctx context.Context, req transport.CreateLeadRequest) (transport.LeadResponse, error) {
	status := domain.StatusNew
	if req.Status != "" {
		status = domain.Status(req.Status)
	}
	if !status.Valid() {
		return transport.LeadResponse{}, apperr.Validation("invalid lead status")
	}

	source := strings.TrimSpace(req.Source)
	if source == "" {
		source = defaultSource
	}

	lead, err := s.repo.Create(ctx, repository.CreateParams{
		Name:            sanitize.Text(req.Name),
		BusinessType:    sanitize.Text(req.BusinessType),
		Email:           strings.TrimSpace(strings.ToLower(req.Email)),
		Phone:           phone.NormalizeE164(req.Phone),
		Website:         strings.TrimSpace(req.Website),
		Location:        sanitize.Text(req.Location),
		Status:          status,
		Notes:           sanitize.Text(req.Notes),
		Verified:        req.Verified,
		QualityScore:    req.QualityScore,
		AIScore:         req.AIScore,
		RevenueEstimate: req.RevenueEstimate,
		Source:          source,
		AutoIntegrated:  req.AutoIntegrated,
	})
	if err != nil {
		return transport.LeadResponse{}, err
	}

	s.log.Info("lead created", "id", lead.ID, "name", lead.Name, "source", lead.Source)
	s.bus.Publish(ctx, events.LeadCreated{
		BaseEvent:      events.NewBaseEvent(),
		LeadID:         lead.ID,
		Name:           lead.Name,
		BusinessType:   lead.BusinessType,
		Source:         lead.Source,
		AutoIntegrated: lead.AutoIntegrated,
	})

	return toLeadResponse(lead, time.Now()), nil
}

// Get retrieves a single lead with its computed score.
func (s *Service) Get(ctx context.Context, id uuid.UUID) (transport.LeadResponse, error) {
	lead, err := s.repo.Get(ctx, id)
	if err != nil {
		return transport.LeadResponse{}, err
	}
	return toLeadResponse(lead, time.Now()), nil
}

// List retrieves leads with filters and pagination. Scores are computed
// with a single clock snapshot so one response is internally consistent.
func (s *Service) List(ctx context.Context, req transport.ListLeadsRequest) (transport.LeadListResponse, error) {
	page := req.Page
	pageSize := req.PageSize
	if page < 1 {
		page = 1
	}
	if pageSize < 1 {
		pageSize = 50
	}

	items, total, err := s.repo.List(ctx, repository.ListParams{
		Search:       strings.TrimSpace(req.Search),
		BusinessType: strings.TrimSpace(req.BusinessType),
		Status:       domain.Status(req.Status),
		Source:       strings.TrimSpace(req.Source),
		Limit:        pageSize,
		Offset:       (page - 1) * pageSize,
	})
	if err != nil {
		return transport.LeadListResponse{}, err
	}

	now := time.Now()
	responses := make([]transport.LeadResponse, 0, len(items))
	for _, lead := range items {
		responses = append(responses, toLeadResponse(lead, now))
	}

	return transport.LeadListResponse{
		Items:    responses,
		Total:    total,
		Page:     page,
		PageSize: pageSize,
	}, nil
}

// Update applies a partial update to a lead.
func (s *Service) Update(ctx context.Context, id uuid.UUID, req transport.UpdateLeadRequest) (transport.LeadResponse, error) {
	params := repository.UpdateParams{
		ID:              id,
		Verified:        req.Verified,
		QualityScore:    req.QualityScore,
		AIScore:         req.AIScore,
		RevenueEstimate: req.RevenueEstimate,
	}

	if req.Name != nil {
		params.Name = textPtr(*req.Name)
	}
	if req.BusinessType != nil {
		params.BusinessType = textPtr(*req.BusinessType)
	}
	if req.Email != nil {
		email := strings.TrimSpace(strings.ToLower(*req.Email))
		params.Email = &email
	}
	if req.Phone != nil {
		normalized := phone.NormalizeE164(*req.Phone)
		params.Phone = &normalized
	}
	if req.Website != nil {
		website := strings.TrimSpace(*req.Website)
		params.Website = &website
	}
	if req.Location != nil {
		params.Location = textPtr(*req.Location)
	}
	if req.Status != nil {
		status := domain.Status(*req.Status)
		if !status.Valid() {
			return transport.LeadResponse{}, apperr.Validation("invalid lead status")
		}
		params.Status = &status
	}
	if req.Notes != nil {
		params.Notes = textPtr(*req.Notes)
	}
	if req.Source != nil {
		source := strings.TrimSpace(*req.Source)
		params.Source = &source
	}

	lead, err := s.repo.Update(ctx, params)
	if err != nil {
		return transport.LeadResponse{}, err
	}

	s.bus.Publish(ctx, events.LeadUpdated{
		BaseEvent: events.NewBaseEvent(),
		LeadID:    lead.ID,
	})

	return toLeadResponse(lead, time.Now()), nil
}

// Delete removes a lead.
func (s *Service) Delete(ctx context.Context, id uuid.UUID) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}

	s.log.Info("lead deleted", "id", id)
	s.bus.Publish(ctx, events.LeadDeleted{
		BaseEvent: events.NewBaseEvent(),
		LeadIDs:   []uuid.UUID{id},
	})
	return nil
}

// Bulk performs a bulk delete or bulk status update.
func (s *Service) Bulk(ctx context.Context, req transport.BulkLeadsRequest) (transport.BulkLeadsResponse, error) {
	switch req.Action {
	case transport.BulkActionDelete:
		affected, err := s.repo.DeleteMany(ctx, req.IDs)
		if err != nil {
			return transport.BulkLeadsResponse{}, err
		}
		s.log.Info("leads bulk deleted", "requested", len(req.IDs), "deleted", affected)
		s.bus.Publish(ctx, events.LeadDeleted{
			BaseEvent: events.NewBaseEvent(),
			LeadIDs:   req.IDs,
		})
		return transport.BulkLeadsResponse{Action: req.Action, Affected: affected}, nil

	case transport.BulkActionUpdateStatus:
		status := domain.Status(req.Status)
		if !status.Valid() {
			return transport.BulkLeadsResponse{}, apperr.Validation("bulk status update requires a valid status")
		}
		affected, err := s.repo.UpdateStatusMany(ctx, req.IDs, status)
		if err != nil {
			return transport.BulkLeadsResponse{}, err
		}
		s.log.Info("leads bulk status update", "status", status, "updated", affected)
		for _, id := range req.IDs {
			s.bus.Publish(ctx, events.LeadUpdated{BaseEvent: events.NewBaseEvent(), LeadID: id})
		}
		return transport.BulkLeadsResponse{Action: req.Action, Affected: affected}, nil

	default:
		return transport.BulkLeadsResponse{}, apperr.BadRequest("unknown bulk action")
	}
}

// Score returns the full scoring analysis for a lead.
func (s *Service) Score(ctx context.Context, id uuid.UUID) (transport.ScoreResponse, error) {
	lead, err := s.repo.Get(ctx, id)
	if err != nil {
		return transport.ScoreResponse{}, err
	}

	return transport.ScoreResponse{
		LeadID:   lead.ID,
		Analysis: scoring.CreateScoringAnalysis(lead),
	}, nil
}

func textPtr(s string) *string {
	cleaned := sanitize.Text(s)
	return &cleaned
}
