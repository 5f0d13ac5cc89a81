package service

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"

	domainevents "leadpilot_backend/internal/events"
	leadsrepo "leadpilot_backend/internal/leads/repository"
	leadsservice "leadpilot_backend/internal/leads/service"
	"leadpilot_backend/internal/scheduler"
	"leadpilot_backend/internal/scraper/transport"
	"leadpilot_backend/platform/apperr"
	"leadpilot_backend/platform/events"
	"leadpilot_backend/platform/logger"
)

type stubScheduler struct {
	payloads []scheduler.ScraperRunCompletePayload
	runAts   []time.Time
}

func (s *stubScheduler) ScheduleScraperCompletion(_ context.Context, payload scheduler.ScraperRunCompletePayload, runAt time.Time) error {
	s.payloads = append(s.payloads, payload)
	s.runAts = append(s.runAts, runAt)
	return nil
}

type stubConfig struct {
	min, max  time.Duration
	batchSize int
}

func (c stubConfig) GetScraperMinRunTime() time.Duration { return c.min }
func (c stubConfig) GetScraperMaxRunTime() time.Duration { return c.max }
func (c stubConfig) GetScraperBatchSize() int            { return c.batchSize }

func newTestService() (*Service, *leadsrepo.Memory, *stubScheduler, *events.InMemoryBus) {
	log := logger.New("test")
	repo := leadsrepo.NewMemory()
	bus := events.NewInMemoryBus(log)
	leads := leadsservice.New(repo, bus, log)
	sched := &stubScheduler{}
	cfg := stubConfig{min: 10 * time.Second, max: 30 * time.Second, batchSize: 5}
	return New(leads, sched, bus, cfg, log), repo, sched, bus
}

func TestStartTracksRunAndSchedulesCompletion(t *testing.T) {
	svc, _, sched, _ := newTestService()
	ctx := context.Background()

	resp, err := svc.Start(ctx, transport.StartRequest{Scraper: "Google Maps Scraper"})
	if err != nil {
		t.Fatalf("start: %v", err)
	}
	if resp.Mode != "simulation" || resp.PID < 1000 {
		t.Fatalf("unexpected start response: %+v", resp)
	}

	if len(sched.payloads) != 1 {
		t.Fatalf("scheduled %d completions, want 1", len(sched.payloads))
	}
	if sched.payloads[0].Scraper != "Google Maps Scraper" || sched.payloads[0].RunID != resp.RunID.String() {
		t.Fatalf("completion payload mismatch: %+v", sched.payloads[0])
	}
	delay := time.Until(sched.runAts[0])
	if delay < 9*time.Second || delay > 30*time.Second {
		t.Fatalf("completion delay %v outside configured window", delay)
	}

	status := svc.Status(ctx, false)
	if len(status.ActiveScrapers) != 1 || !status.ActiveScrapers[0].IsRunning {
		t.Fatalf("status = %+v, want one running scraper", status.ActiveScrapers)
	}
}

func TestStartUnknownScraper(t *testing.T) {
	svc, _, _, _ := newTestService()

	_, err := svc.Start(context.Background(), transport.StartRequest{Scraper: "Quantum Scraper"})
	if apperr.GetKind(err) != apperr.KindBadRequest {
		t.Fatalf("err = %v, want bad request", err)
	}
}

func TestDuplicateStartConflicts(t *testing.T) {
	svc, _, _, _ := newTestService()
	ctx := context.Background()

	if _, err := svc.Start(ctx, transport.StartRequest{Scraper: "Playwright Scraper"}); err != nil {
		t.Fatalf("start: %v", err)
	}

	_, err := svc.Start(ctx, transport.StartRequest{Scraper: "Playwright Scraper"})
	if apperr.GetKind(err) != apperr.KindConflict {
		t.Fatalf("err = %v, want conflict", err)
	}
}

func TestExpiredRunAllowsRestart(t *testing.T) {
	svc, _, _, _ := newTestService()
	ctx := context.Background()

	if _, err := svc.Start(ctx, transport.StartRequest{Scraper: "KI Automation"}); err != nil {
		t.Fatalf("start: %v", err)
	}

	// Move the clock past the run expiry but inside the purge window.
	svc.now = func() time.Time { return time.Now().Add(3 * time.Minute) }

	if _, err := svc.Start(ctx, transport.StartRequest{Scraper: "KI Automation"}); err != nil {
		t.Fatalf("restart after expiry: %v", err)
	}
}

func TestPurgeDropsOldRuns(t *testing.T) {
	svc, _, _, _ := newTestService()
	ctx := context.Background()

	if _, err := svc.Start(ctx, transport.StartRequest{Scraper: "Crawl4AI Analyzer"}); err != nil {
		t.Fatalf("start: %v", err)
	}

	svc.now = func() time.Time { return time.Now().Add(6 * time.Minute) }

	status := svc.Status(ctx, false)
	if len(status.ActiveScrapers) != 0 {
		t.Fatalf("status after purge window = %+v, want empty", status.ActiveScrapers)
	}
}

func TestCompleteRunIntegratesLeads(t *testing.T) {
	svc, repo, sched, bus := newTestService()
	ctx := context.Background()

	completed := make(chan domainevents.ScraperRunCompleted, 1)
	bus.Subscribe(domainevents.ScraperRunCompleted{}.EventName(), events.HandlerFunc(
		func(_ context.Context, event events.Event) error {
			completed <- event.(domainevents.ScraperRunCompleted)
			return nil
		}))

	resp, err := svc.Start(ctx, transport.StartRequest{Scraper: "Working Lead Scraper"})
	if err != nil {
		t.Fatalf("start: %v", err)
	}

	if err := svc.CompleteRun(ctx, resp.RunID, "Working Lead Scraper"); err != nil {
		t.Fatalf("complete: %v", err)
	}

	leads, _, err := repo.List(ctx, leadsrepo.ListParams{Source: "working_lead_scraper"})
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(leads) == 0 {
		t.Fatal("completion integrated no leads")
	}
	for _, lead := range leads {
		if !lead.AutoIntegrated {
			t.Fatalf("integrated lead not flagged auto-integrated: %+v", lead)
		}
		if lead.Source != "working_lead_scraper" {
			t.Fatalf("integrated lead source = %q", lead.Source)
		}
	}

	select {
	case event := <-completed:
		if event.Scraper != "Working Lead Scraper" || event.LeadsFound != len(leads) {
			t.Fatalf("completion event mismatch: %+v (have %d leads)", event, len(leads))
		}
	case <-time.After(time.Second):
		t.Fatal("completion event never arrived")
	}

	status := svc.Status(ctx, false)
	if len(status.ActiveScrapers) != 1 || status.ActiveScrapers[0].Status != "completed" {
		t.Fatalf("status after completion = %+v", status.ActiveScrapers)
	}
	_ = sched
}

// The queued payload must complete the run on the service that started
// it: after a start, feeding the scheduled payload through the task
// codec and back into the same service finishes the run and integrates
// its leads.
func TestScheduledPayloadCompletesOriginatingRun(t *testing.T) {
	svc, repo, sched, _ := newTestService()
	ctx := context.Background()

	if _, err := svc.Start(ctx, transport.StartRequest{Scraper: "Crawl4AI Analyzer"}); err != nil {
		t.Fatalf("start: %v", err)
	}
	if len(sched.payloads) != 1 {
		t.Fatalf("scheduled %d completions, want 1", len(sched.payloads))
	}

	task, err := scheduler.NewScraperRunCompleteTask(sched.payloads[0])
	if err != nil {
		t.Fatalf("build task: %v", err)
	}
	payload, err := scheduler.ParseScraperRunCompletePayload(task)
	if err != nil {
		t.Fatalf("parse task: %v", err)
	}
	runID, err := uuid.Parse(payload.RunID)
	if err != nil {
		t.Fatalf("parse run id: %v", err)
	}

	if err := svc.CompleteRun(ctx, runID, payload.Scraper); err != nil {
		t.Fatalf("complete: %v", err)
	}

	status := svc.Status(ctx, false)
	if len(status.ActiveScrapers) != 1 || status.ActiveScrapers[0].Status != "completed" {
		t.Fatalf("status after queued completion = %+v", status.ActiveScrapers)
	}
	leads, _, err := repo.List(ctx, leadsrepo.ListParams{Source: "crawl4ai"})
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(leads) == 0 {
		t.Fatal("queued completion integrated no leads")
	}
}

func TestStaleCompletionIsIgnored(t *testing.T) {
	svc, repo, _, _ := newTestService()
	ctx := context.Background()

	if _, err := svc.Start(ctx, transport.StartRequest{Scraper: "Working Lead Scraper"}); err != nil {
		t.Fatalf("start: %v", err)
	}

	// A completion task for a run ID that is no longer current.
	if err := svc.CompleteRun(ctx, uuid.New(), "Working Lead Scraper"); err != nil {
		t.Fatalf("stale complete: %v", err)
	}

	leads, err := repo.ListAll(ctx)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(leads) != 0 {
		t.Fatalf("stale completion integrated %d leads", len(leads))
	}
}

func TestStopRun(t *testing.T) {
	svc, _, _, _ := newTestService()
	ctx := context.Background()

	if err := svc.Stop(ctx, transport.StopRequest{Scraper: "Playwright Scraper"}); apperr.GetKind(err) != apperr.KindNotFound {
		t.Fatalf("stop idle scraper: %v, want not found", err)
	}

	if _, err := svc.Start(ctx, transport.StartRequest{Scraper: "Playwright Scraper"}); err != nil {
		t.Fatalf("start: %v", err)
	}
	if err := svc.Stop(ctx, transport.StopRequest{Scraper: "Playwright Scraper"}); err != nil {
		t.Fatalf("stop: %v", err)
	}

	status := svc.Status(ctx, false)
	if len(status.ActiveScrapers) != 0 {
		t.Fatalf("status after stop = %+v, want empty", status.ActiveScrapers)
	}
}

func TestResultsAggregateBySourceTag(t *testing.T) {
	svc, repo, _, _ := newTestService()
	ctx := context.Background()

	for i := 0; i < 3; i++ {
		if _, err := repo.Create(ctx, leadsrepo.CreateParams{
			Name: "x", Status: "new", Source: "google_maps", AutoIntegrated: true,
		}); err != nil {
			t.Fatalf("seed: %v", err)
		}
	}
	if _, err := repo.Create(ctx, leadsrepo.CreateParams{Name: "y", Status: "new", Source: "manual"}); err != nil {
		t.Fatalf("seed: %v", err)
	}

	results, err := svc.Results(ctx)
	if err != nil {
		t.Fatalf("results: %v", err)
	}

	if len(results.Results) != 5 {
		t.Fatalf("got %d scrapers, want all 5 registry entries", len(results.Results))
	}
	// Manual leads do not count toward scraper results.
	if results.TotalLeads != 3 {
		t.Fatalf("total = %d, want 3", results.TotalLeads)
	}
	for _, result := range results.Results {
		if result.SourceTag == "google_maps" {
			if result.Leads != 3 || result.LastRun == "" {
				t.Fatalf("google_maps result = %+v", result)
			}
		}
	}
}
