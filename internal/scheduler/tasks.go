package scheduler

import (
	"encoding/json"

	"github.com/hibiken/asynq"
)

const TaskScraperRunComplete = "scrapers.run.complete"

// ScraperRunCompletePayload identifies the run that should finish.
type ScraperRunCompletePayload struct {
	RunID   string `json:"runId"`
	Scraper string `json:"scraper"`
}

func NewScraperRunCompleteTask(payload ScraperRunCompletePayload) (*asynq.Task, error) {
	data, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}
	return asynq.NewTask(TaskScraperRunComplete, data), nil
}

func ParseScraperRunCompletePayload(task *asynq.Task) (ScraperRunCompletePayload, error) {
	var payload ScraperRunCompletePayload
	if err := json.Unmarshal(task.Payload(), &payload); err != nil {
		return ScraperRunCompletePayload{}, err
	}
	return payload, nil
}
