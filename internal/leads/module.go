// Package leads provides the leads bounded context module.
package leads

import (
	"leadpilot_backend/internal/events"
	apphttp "leadpilot_backend/internal/http"
	"leadpilot_backend/internal/leads/handler"
	"leadpilot_backend/internal/leads/repository"
	"leadpilot_backend/internal/leads/service"
	"leadpilot_backend/platform/logger"
	"leadpilot_backend/platform/validator"
)

// Module is the leads bounded context module implementing http.Module.
type Module struct {
	handler *handler.Handler
	service *service.Service
	repo    repository.Repository
}

// NewModule creates and initializes the leads module.
func NewModule(repo repository.Repository, bus events.Bus, val *validator.Validator, log *logger.Logger) *Module {
	svc := service.New(repo, bus, log)
	h := handler.New(svc, val)

	return &Module{
		handler: h,
		service: svc,
		repo:    repo,
	}
}

// Name returns the module identifier.
func (m *Module) Name() string {
	return "leads"
}

// Service returns the service layer for sibling modules.
func (m *Module) Service() *service.Service {
	return m.service
}

// Repository returns the lead store for read-side aggregation.
func (m *Module) Repository() repository.Repository {
	return m.repo
}

// RegisterRoutes mounts lead routes on the provided router context.
func (m *Module) RegisterRoutes(ctx *apphttp.RouterContext) {
	group := ctx.V1.Group("/leads")
	group.GET("", m.handler.List)
	group.POST("", m.handler.Create)
	group.POST("/bulk", m.handler.Bulk)
	group.GET("/:id", m.handler.Get)
	group.PUT("/:id", m.handler.Update)
	group.DELETE("/:id", m.handler.Delete)
	group.GET("/:id/score", m.handler.Score)
}
