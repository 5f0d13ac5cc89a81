// Package dashboard provides the dashboard bounded context module.
package dashboard

import (
	"context"
	"time"

	"github.com/redis/go-redis/v9"

	"leadpilot_backend/internal/dashboard/handler"
	"leadpilot_backend/internal/dashboard/service"
	"leadpilot_backend/internal/events"
	apphttp "leadpilot_backend/internal/http"
	"leadpilot_backend/internal/leads/repository"
	"leadpilot_backend/platform/logger"
)

// Module is the dashboard bounded context module implementing http.Module.
type Module struct {
	handler *handler.Handler
	service *service.Service
}

// NewModule creates the dashboard module and subscribes its cache
// invalidation to lead events. cache may be nil to disable caching.
func NewModule(repo repository.Repository, cache *redis.Client, ttl time.Duration, bus events.Bus, log *logger.Logger) *Module {
	svc := service.New(repo, cache, ttl, log)

	invalidate := events.HandlerFunc(func(ctx context.Context, _ events.Event) error {
		svc.Invalidate(ctx)
		return nil
	})
	bus.Subscribe(events.LeadCreated{}.EventName(), invalidate)
	bus.Subscribe(events.LeadUpdated{}.EventName(), invalidate)
	bus.Subscribe(events.LeadDeleted{}.EventName(), invalidate)

	return &Module{
		handler: handler.New(svc),
		service: svc,
	}
}

// Name returns the module identifier.
func (m *Module) Name() string {
	return "dashboard"
}

// RegisterRoutes mounts dashboard routes on the provided router context.
func (m *Module) RegisterRoutes(ctx *apphttp.RouterContext) {
	ctx.V1.GET("/dashboard", m.handler.Metrics)
	ctx.V1.GET("/stats", m.handler.Stats)
}
