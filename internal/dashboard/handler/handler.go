// Package handler provides HTTP handlers for the dashboard API.
package handler

import (
	"github.com/gin-gonic/gin"

	"leadpilot_backend/internal/dashboard/service"
	"leadpilot_backend/platform/httpkit"
)

// Handler handles HTTP requests for dashboard metrics.
type Handler struct {
	svc *service.Service
}

// New creates a new dashboard handler.
func New(svc *service.Service) *Handler {
	return &Handler{svc: svc}
}

// Metrics returns the dashboard overview.
// GET /api/v1/dashboard
func (h *Handler) Metrics(c *gin.Context) {
	result, err := h.svc.Metrics(c.Request.Context())
	if httpkit.HandleError(c, err) {
		return
	}
	httpkit.OK(c, result)
}

// Stats returns lead distributions.
// GET /api/v1/stats
func (h *Handler) Stats(c *gin.Context) {
	result, err := h.svc.Stats(c.Request.Context())
	if httpkit.HandleError(c, err) {
		return
	}
	httpkit.OK(c, result)
}
