package scheduler

import (
	"context"
	"fmt"

	"leadpilot_backend/platform/config"
	"leadpilot_backend/platform/logger"

	"github.com/google/uuid"
	"github.com/hibiken/asynq"
)

// ScraperCompleter finishes a scraper run and integrates its leads.
type ScraperCompleter interface {
	CompleteRun(ctx context.Context, runID uuid.UUID, scraper string) error
}

// Worker processes queued tasks.
type Worker struct {
	server    *asynq.Server
	mux       *asynq.ServeMux
	completer ScraperCompleter
	log       *logger.Logger
}

// NewWorker creates an asynq worker bound to the scraper completer.
func NewWorker(cfg config.SchedulerConfig, completer ScraperCompleter, log *logger.Logger) (*Worker, error) {
	redisURL := cfg.GetRedisURL()
	if redisURL == "" {
		return nil, fmt.Errorf("redis url not configured")
	}

	opt, err := redisClientOpt(redisURL)
	if err != nil {
		return nil, err
	}

	queue := cfg.GetAsynqQueueName()
	if queue == "" {
		queue = "default"
	}

	concurrency := cfg.GetAsynqConcurrency()
	if concurrency < 1 {
		concurrency = 10
	}

	server := asynq.NewServer(opt, asynq.Config{
		Concurrency: concurrency,
		Queues: map[string]int{
			queue: 1,
		},
	})

	mux := asynq.NewServeMux()
	w := &Worker{
		server:    server,
		mux:       mux,
		completer: completer,
		log:       log,
	}

	mux.HandleFunc(TaskScraperRunComplete, w.handleScraperRunComplete)

	return w, nil
}

func (w *Worker) handleScraperRunComplete(ctx context.Context, task *asynq.Task) error {
	payload, err := ParseScraperRunCompletePayload(task)
	if err != nil {
		return err
	}

	runID, err := uuid.Parse(payload.RunID)
	if err != nil {
		return err
	}

	w.log.ScraperEvent("run completion due", payload.Scraper, payload.RunID)
	return w.completer.CompleteRun(ctx, runID, payload.Scraper)
}

// Run serves tasks until the context is cancelled.
func (w *Worker) Run(ctx context.Context) {
	if w == nil || w.server == nil {
		return
	}

	go func() {
		<-ctx.Done()
		w.server.Shutdown()
	}()

	if err := w.server.Run(w.mux); err != nil {
		w.log.Error("scheduler worker stopped", "error", err)
	}
}
