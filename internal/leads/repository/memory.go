package repository

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"leadpilot_backend/internal/leads/domain"
	"leadpilot_backend/platform/apperr"
)

// Memory is an in-memory leads repository for development and tests.
// Filter semantics mirror the PostgreSQL implementation.
type Memory struct {
	mu    sync.RWMutex
	leads map[uuid.UUID]domain.Lead
	now   func() time.Time
}

// NewMemory creates an empty in-memory repository.
func NewMemory() *Memory {
	return &Memory{
		leads: make(map[uuid.UUID]domain.Lead),
		now:   time.Now,
	}
}

// NewMemoryWithClock creates an in-memory repository with a custom clock.
func NewMemoryWithClock(now func() time.Time) *Memory {
	return &Memory{
		leads: make(map[uuid.UUID]domain.Lead),
		now:   now,
	}
}

var _ Repository = (*Memory)(nil)

func (m *Memory) Create(_ context.Context, params CreateParams) (domain.Lead, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	now := m.now()
	lead := domain.Lead{
		ID:              uuid.New(),
		Name:            params.Name,
		BusinessType:    params.BusinessType,
		Email:           params.Email,
		Phone:           params.Phone,
		Website:         params.Website,
		Location:        params.Location,
		Status:          params.Status,
		Notes:           params.Notes,
		Verified:        params.Verified,
		QualityScore:    params.QualityScore,
		AIScore:         params.AIScore,
		RevenueEstimate: params.RevenueEstimate,
		Source:          params.Source,
		AutoIntegrated:  params.AutoIntegrated,
		CreatedAt:       now,
		UpdatedAt:       now,
	}
	m.leads[lead.ID] = lead
	return lead, nil
}

func (m *Memory) Get(_ context.Context, id uuid.UUID) (domain.Lead, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	lead, ok := m.leads[id]
	if !ok {
		return domain.Lead{}, apperr.NotFound(leadNotFoundMessage)
	}
	return lead, nil
}

func matches(lead domain.Lead, params ListParams) bool {
	if params.Search != "" {
		needle := strings.ToLower(params.Search)
		if !strings.Contains(strings.ToLower(lead.Name), needle) &&
			!strings.Contains(strings.ToLower(lead.Email), needle) &&
			!strings.Contains(strings.ToLower(lead.Location), needle) {
			return false
		}
	}
	if params.BusinessType != "" &&
		!strings.Contains(strings.ToLower(lead.BusinessType), strings.ToLower(params.BusinessType)) {
		return false
	}
	if params.Status != "" && lead.Status != params.Status {
		return false
	}
	if params.Source != "" && lead.Source != params.Source {
		return false
	}
	return true
}

func (m *Memory) List(_ context.Context, params ListParams) ([]domain.Lead, int, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	items := make([]domain.Lead, 0, len(m.leads))
	for _, lead := range m.leads {
		if matches(lead, params) {
			items = append(items, lead)
		}
	}

	sort.Slice(items, func(i, j int) bool {
		if !items[i].CreatedAt.Equal(items[j].CreatedAt) {
			return items[i].CreatedAt.After(items[j].CreatedAt)
		}
		return items[i].ID.String() > items[j].ID.String()
	})

	total := len(items)
	if params.Limit > 0 {
		start := params.Offset
		if start > total {
			start = total
		}
		end := start + params.Limit
		if end > total {
			end = total
		}
		items = items[start:end]
	}

	return items, total, nil
}

func (m *Memory) ListAll(ctx context.Context) ([]domain.Lead, error) {
	items, _, err := m.List(ctx, ListParams{})
	return items, err
}

func (m *Memory) Update(_ context.Context, params UpdateParams) (domain.Lead, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	lead, ok := m.leads[params.ID]
	if !ok {
		return domain.Lead{}, apperr.NotFound(leadNotFoundMessage)
	}

	if params.Name != nil {
		lead.Name = *params.Name
	}
	if params.BusinessType != nil {
		lead.BusinessType = *params.BusinessType
	}
	if params.Email != nil {
		lead.Email = *params.Email
	}
	if params.Phone != nil {
		lead.Phone = *params.Phone
	}
	if params.Website != nil {
		lead.Website = *params.Website
	}
	if params.Location != nil {
		lead.Location = *params.Location
	}
	if params.Status != nil {
		lead.Status = *params.Status
	}
	if params.Notes != nil {
		lead.Notes = *params.Notes
	}
	if params.Verified != nil {
		lead.Verified = *params.Verified
	}
	if params.QualityScore != nil {
		lead.QualityScore = *params.QualityScore
	}
	if params.AIScore != nil {
		lead.AIScore = *params.AIScore
	}
	if params.RevenueEstimate != nil {
		lead.RevenueEstimate = *params.RevenueEstimate
	}
	if params.Source != nil {
		lead.Source = *params.Source
	}
	lead.UpdatedAt = m.now()

	m.leads[params.ID] = lead
	return lead, nil
}

func (m *Memory) Delete(_ context.Context, id uuid.UUID) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, ok := m.leads[id]; !ok {
		return apperr.NotFound(leadNotFoundMessage)
	}
	delete(m.leads, id)
	return nil
}

func (m *Memory) DeleteMany(_ context.Context, ids []uuid.UUID) (int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	deleted := 0
	for _, id := range ids {
		if _, ok := m.leads[id]; ok {
			delete(m.leads, id)
			deleted++
		}
	}
	return deleted, nil
}

func (m *Memory) UpdateStatusMany(_ context.Context, ids []uuid.UUID, status domain.Status) (int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	updated := 0
	for _, id := range ids {
		lead, ok := m.leads[id]
		if !ok {
			continue
		}
		lead.Status = status
		lead.UpdatedAt = m.now()
		m.leads[id] = lead
		updated++
	}
	return updated, nil
}

func (m *Memory) CountBySource(_ context.Context) ([]SourceCount, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	bySource := map[string]*SourceCount{}
	lastAdded := map[string]time.Time{}
	for _, lead := range m.leads {
		entry, ok := bySource[lead.Source]
		if !ok {
			entry = &SourceCount{Source: lead.Source}
			bySource[lead.Source] = entry
		}
		entry.Count++
		if lead.CreatedAt.After(lastAdded[lead.Source]) {
			lastAdded[lead.Source] = lead.CreatedAt
		}
	}

	counts := make([]SourceCount, 0, len(bySource))
	for source, entry := range bySource {
		entry.LastAdded = lastAdded[source].Format(time.RFC3339)
		counts = append(counts, *entry)
	}
	sort.Slice(counts, func(i, j int) bool {
		if counts[i].Count != counts[j].Count {
			return counts[i].Count > counts[j].Count
		}
		return counts[i].Source < counts[j].Source
	})

	return counts, nil
}
