package handlers

import (
	"net/http"
	"strconv"

	"github.com/biznexus-ai/backend/internal/service"
	"github.com/gin-gonic/gin"
)

const defaultWindowDays = 365

type DashboardHandler struct {
	service *service.DashboardService
}

func NewDashboardHandler(service *service.DashboardService) *DashboardHandler {
	return &DashboardHandler{service: service}
}

// GetDashboard serves the full analytics payload. The days query parameter
// bounds the sales window; anything unparseable falls back to a year.
func (h *DashboardHandler) GetDashboard(c *gin.Context) {
	days := defaultWindowDays
	if raw := c.Query("days"); raw != "" {
		if parsed, err := strconv.Atoi(raw); err == nil && parsed > 0 {
			days = parsed
		}
	}

	resp := h.service.GetDashboard(c.Request.Context(), days)
	c.JSON(http.StatusOK, resp)
}
