// Package handler provides HTTP handlers for the scraper API.
package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"leadpilot_backend/internal/scraper/service"
	"leadpilot_backend/internal/scraper/transport"
	"leadpilot_backend/platform/httpkit"
	"leadpilot_backend/platform/validator"
)

const (
	msgInvalidRequest   = "invalid request"
	msgValidationFailed = "validation failed"
)

// Handler handles HTTP requests for scrapers.
type Handler struct {
	svc *service.Service
	val *validator.Validator
}

// New creates a new scraper handler.
func New(svc *service.Service, val *validator.Validator) *Handler {
	return &Handler{svc: svc, val: val}
}

// Start launches a scraper.
// POST /api/v1/scrapers/start
func (h *Handler) Start(c *gin.Context) {
	var req transport.StartRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgInvalidRequest, nil)
		return
	}
	if err := h.val.Struct(req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgValidationFailed, err.Error())
		return
	}

	result, err := h.svc.Start(c.Request.Context(), req)
	if httpkit.HandleError(c, err) {
		return
	}
	httpkit.JSON(c, http.StatusAccepted, result)
}

// Stop cancels a running scraper.
// POST /api/v1/scrapers/stop
func (h *Handler) Stop(c *gin.Context) {
	var req transport.StopRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgInvalidRequest, nil)
		return
	}
	if err := h.val.Struct(req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgValidationFailed, err.Error())
		return
	}

	if httpkit.HandleError(c, h.svc.Stop(c.Request.Context(), req)) {
		return
	}
	httpkit.OK(c, gin.H{"message": req.Scraper + " stopped successfully (simulation mode)"})
}

// Status lists tracked scraper runs. ?reset=true clears them.
// GET /api/v1/scrapers/status
func (h *Handler) Status(c *gin.Context) {
	reset := c.Query("reset") == "true"
	httpkit.OK(c, h.svc.Status(c.Request.Context(), reset))
}

// Results summarizes integrated leads per scraper.
// GET /api/v1/scrapers/results
func (h *Handler) Results(c *gin.Context) {
	result, err := h.svc.Results(c.Request.Context())
	if httpkit.HandleError(c, err) {
		return
	}
	httpkit.OK(c, result)
}
