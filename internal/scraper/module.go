// Package scraper provides the scraper bounded context module.
package scraper

import (
	"leadpilot_backend/internal/events"
	apphttp "leadpilot_backend/internal/http"
	leadsservice "leadpilot_backend/internal/leads/service"
	"leadpilot_backend/internal/scheduler"
	"leadpilot_backend/internal/scraper/handler"
	"leadpilot_backend/internal/scraper/service"
	"leadpilot_backend/platform/config"
	"leadpilot_backend/platform/logger"
	"leadpilot_backend/platform/validator"
)

// Module is the scraper bounded context module implementing http.Module.
type Module struct {
	handler *handler.Handler
	service *service.Service
}

// NewModule creates and initializes the scraper module.
func NewModule(leads *leadsservice.Service, sched scheduler.CompletionScheduler, bus events.Bus, cfg config.ScraperConfig, val *validator.Validator, log *logger.Logger) *Module {
	svc := service.New(leads, sched, bus, cfg, log)

	return &Module{
		handler: handler.New(svc, val),
		service: svc,
	}
}

// Name returns the module identifier.
func (m *Module) Name() string {
	return "scrapers"
}

// Service returns the service layer, which also acts as the worker's
// run completer.
func (m *Module) Service() *service.Service {
	return m.service
}

// RegisterRoutes mounts scraper routes on the provided router context.
func (m *Module) RegisterRoutes(ctx *apphttp.RouterContext) {
	group := ctx.V1.Group("/scrapers")
	group.POST("/start", m.handler.Start)
	group.POST("/stop", m.handler.Stop)
	group.GET("/status", m.handler.Status)
	group.GET("/results", m.handler.Results)
}
