// Package handler provides HTTP handlers for the research API.
package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"leadpilot_backend/internal/research/service"
	"leadpilot_backend/platform/httpkit"
)

const msgInvalidID = "invalid lead id"

// Handler handles HTTP requests for deep research.
type Handler struct {
	svc *service.Service
}

// New creates a new research handler.
func New(svc *service.Service) *Handler {
	return &Handler{svc: svc}
}

// Analyze produces the deep-research report for a lead.
// POST /api/v1/research/analyze/:id
func (h *Handler) Analyze(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgInvalidID, nil)
		return
	}

	result, err := h.svc.Analyze(c.Request.Context(), id)
	if httpkit.HandleError(c, err) {
		return
	}
	httpkit.OK(c, result)
}

// Document returns one generated collateral document for a lead.
// GET /api/v1/research/documents/:id/:kind
func (h *Handler) Document(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgInvalidID, nil)
		return
	}

	result, err := h.svc.Document(c.Request.Context(), id, c.Param("kind"))
	if httpkit.HandleError(c, err) {
		return
	}
	httpkit.OK(c, result)
}
