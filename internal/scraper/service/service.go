// Package service manages simulated scraper runs.
package service

import (
	"context"
	"fmt"
	"math/rand"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	"leadpilot_backend/internal/events"
	leadsservice "leadpilot_backend/internal/leads/service"
	leadstransport "leadpilot_backend/internal/leads/transport"
	"leadpilot_backend/internal/scheduler"
	"leadpilot_backend/internal/scraper/registry"
	"leadpilot_backend/internal/scraper/transport"
	"leadpilot_backend/platform/apperr"
	"leadpilot_backend/platform/config"
	"leadpilot_backend/platform/logger"
)

const (
	// A run still marked running after this age no longer blocks a restart.
	runExpiry = 2 * time.Minute
	// Runs disappear from status output after this age.
	purgeAfter = 5 * time.Minute

	runStatusRunning   = "running"
	runStatusCompleted = "completed"
	runStatusStopped   = "stopped"
)

// Run tracks one simulated scraper process.
type Run struct {
	ID        uuid.UUID
	Def       registry.Definition
	PID       int
	Status    string
	StartTime time.Time
	EndTime   time.Time
	Output    string
}

// Service tracks scraper runs in memory and schedules their simulated
// completion through the task queue.
type Service struct {
	mu    sync.Mutex
	runs  map[string]*Run
	leads *leadsservice.Service
	sched scheduler.CompletionScheduler
	bus   events.Bus
	cfg   config.ScraperConfig
	log   *logger.Logger
	now   func() time.Time
	rand  *rand.Rand
}

// New creates a new scraper service.
func New(leads *leadsservice.Service, sched scheduler.CompletionScheduler, bus events.Bus, cfg config.ScraperConfig, log *logger.Logger) *Service {
	return &Service{
		runs:  make(map[string]*Run),
		leads: leads,
		sched: sched,
		bus:   bus,
		cfg:   cfg,
		log:   log,
		now:   time.Now,
		rand:  rand.New(rand.NewSource(time.Now().UnixNano())),
	}
}

// purgeExpiredLocked drops runs older than the purge window. Callers hold mu.
func (s *Service) purgeExpiredLocked() {
	now := s.now()
	for name, run := range s.runs {
		if now.Sub(run.StartTime) > purgeAfter {
			delete(s.runs, name)
		}
	}
}

// Start launches a simulated scraper run. A scraper that is already
// running and younger than the expiry window conflicts.
func (s *Service) Start(ctx context.Context, req transport.StartRequest) (transport.StartResponse, error) {
	def, ok := registry.Lookup(req.Scraper)
	if !ok {
		return transport.StartResponse{}, apperr.BadRequest("invalid scraper name")
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.purgeExpiredLocked()

	if existing, ok := s.runs[def.Name]; ok && existing.Status == runStatusRunning {
		if s.now().Sub(existing.StartTime) < runExpiry {
			return transport.StartResponse{}, apperr.Conflict("scraper is already running")
		}
		delete(s.runs, def.Name)
	}

	run := &Run{
		ID:        uuid.New(),
		Def:       def,
		PID:       s.rand.Intn(10_000) + 1000,
		Status:    runStatusRunning,
		StartTime: s.now(),
		Output:    fmt.Sprintf("Starting %s...\n", def.Name),
	}

	minRun := s.cfg.GetScraperMinRunTime()
	maxRun := s.cfg.GetScraperMaxRunTime()
	delay := minRun
	if maxRun > minRun {
		delay += time.Duration(s.rand.Int63n(int64(maxRun - minRun)))
	}

	payload := scheduler.ScraperRunCompletePayload{
		RunID:   run.ID.String(),
		Scraper: def.Name,
	}
	if err := s.sched.ScheduleScraperCompletion(ctx, payload, run.StartTime.Add(delay)); err != nil {
		return transport.StartResponse{}, apperr.Wrap(apperr.KindInternal, "could not schedule scraper completion", err)
	}

	s.runs[def.Name] = run
	s.log.ScraperEvent("run started", def.Name, run.ID.String())

	return transport.StartResponse{
		RunID:     run.ID,
		Scraper:   def.Name,
		PID:       run.PID,
		StartTime: run.StartTime.Format(time.RFC3339),
		Mode:      "simulation",
		Message:   fmt.Sprintf("%s started successfully (simulation mode)", def.Name),
	}, nil
}

// Stop cancels a tracked run.
func (s *Service) Stop(_ context.Context, req transport.StopRequest) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	run, ok := s.runs[req.Scraper]
	if !ok {
		return apperr.NotFound("scraper is not running")
	}

	run.Status = runStatusStopped
	run.Output += "\nScraper stopped by user."
	delete(s.runs, req.Scraper)

	s.log.ScraperEvent("run stopped", req.Scraper, run.ID.String())
	return nil
}

// Status reports all tracked runs. reset clears them first.
func (s *Service) Status(_ context.Context, reset bool) transport.StatusResponse {
	s.mu.Lock()
	defer s.mu.Unlock()

	if reset {
		s.runs = make(map[string]*Run)
		return transport.StatusResponse{ActiveScrapers: []transport.RunStatus{}}
	}

	s.purgeExpiredLocked()

	statuses := make([]transport.RunStatus, 0, len(s.runs))
	for _, run := range s.runs {
		status := transport.RunStatus{
			RunID:     run.ID,
			Name:      run.Def.Name,
			PID:       run.PID,
			Status:    run.Status,
			IsRunning: run.Status == runStatusRunning,
			StartTime: run.StartTime.Format(time.RFC3339),
			Output:    tail(run.Output, 1000),
		}
		if !run.EndTime.IsZero() {
			status.EndTime = run.EndTime.Format(time.RFC3339)
		}
		statuses = append(statuses, status)
	}
	sort.Slice(statuses, func(i, j int) bool {
		return statuses[i].Name < statuses[j].Name
	})

	return transport.StatusResponse{ActiveScrapers: statuses}
}

// CompleteRun finishes a run: integrates a batch of simulated leads into
// the lead store and publishes the completion event. Stale or unknown
// run IDs are ignored so replayed tasks stay harmless.
func (s *Service) CompleteRun(ctx context.Context, runID uuid.UUID, scraperName string) error {
	s.mu.Lock()
	run, ok := s.runs[scraperName]
	if !ok || run.ID != runID || run.Status != runStatusRunning {
		s.mu.Unlock()
		return nil
	}

	batchSize := s.cfg.GetScraperBatchSize()
	if batchSize < 1 {
		batchSize = 10
	}
	count := s.rand.Intn(batchSize) + 1

	requests := make([]leadstransport.CreateLeadRequest, 0, count)
	for i := 0; i < count; i++ {
		requests = append(requests, simulatedLead(s.rand, run.Def, i))
	}
	s.mu.Unlock()

	integrated := 0
	for _, req := range requests {
		if _, err := s.leads.Create(ctx, req); err != nil {
			s.log.Error("scraper lead integration failed", "scraper", scraperName, "error", err)
			continue
		}
		integrated++
	}

	s.mu.Lock()
	run.Status = runStatusCompleted
	run.EndTime = s.now()
	run.Output += fmt.Sprintf("\nScraper completed successfully!\nFound %d new leads.", integrated)
	s.mu.Unlock()

	s.log.ScraperEvent("run completed", scraperName, runID.String())
	s.bus.Publish(ctx, events.ScraperRunCompleted{
		BaseEvent:  events.NewBaseEvent(),
		RunID:      runID,
		Scraper:    scraperName,
		LeadsFound: integrated,
	})

	return nil
}

// Results summarizes integrated leads per scraper from the lead store.
func (s *Service) Results(ctx context.Context) (transport.ResultsResponse, error) {
	counts, err := s.leads.Repository().CountBySource(ctx)
	if err != nil {
		return transport.ResultsResponse{}, err
	}

	bySource := make(map[string]struct {
		count   int
		lastRun string
	}, len(counts))
	for _, count := range counts {
		bySource[count.Source] = struct {
			count   int
			lastRun string
		}{count.Count, count.LastAdded}
	}

	response := transport.ResultsResponse{Results: make([]transport.ScraperResult, 0, len(registry.All))}
	for _, def := range registry.All {
		entry := bySource[def.SourceTag]
		response.Results = append(response.Results, transport.ScraperResult{
			Scraper:   def.Name,
			SourceTag: def.SourceTag,
			Leads:     entry.count,
			LastRun:   entry.lastRun,
		})
		response.TotalLeads += entry.count
	}

	return response, nil
}

func tail(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[len(s)-n:]
}
