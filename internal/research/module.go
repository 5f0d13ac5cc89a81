// Package research provides the deep-research bounded context module.
package research

import (
	apphttp "leadpilot_backend/internal/http"
	"leadpilot_backend/internal/leads/repository"
	"leadpilot_backend/internal/research/handler"
	"leadpilot_backend/internal/research/service"
	"leadpilot_backend/platform/logger"
)

// Module is the research bounded context module implementing http.Module.
type Module struct {
	handler *handler.Handler
	service *service.Service
}

// NewModule creates and initializes the research module.
func NewModule(repo repository.Repository, log *logger.Logger) *Module {
	svc := service.New(repo, log)

	return &Module{
		handler: handler.New(svc),
		service: svc,
	}
}

// Name returns the module identifier.
func (m *Module) Name() string {
	return "research"
}

// RegisterRoutes mounts research routes on the provided router context.
func (m *Module) RegisterRoutes(ctx *apphttp.RouterContext) {
	group := ctx.V1.Group("/research")
	group.POST("/analyze/:id", m.handler.Analyze)
	group.GET("/documents/:id/:kind", m.handler.Document)
}
