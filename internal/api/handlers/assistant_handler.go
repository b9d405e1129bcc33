package handlers

import (
	"net/http"
	"strings"

	"github.com/biznexus-ai/backend/internal/domain"
	"github.com/biznexus-ai/backend/internal/service"
	"github.com/gin-gonic/gin"
)

type AssistantHandler struct {
	service *service.AssistantService
}

func NewAssistantHandler(service *service.AssistantService) *AssistantHandler {
	return &AssistantHandler{service: service}
}

func (h *AssistantHandler) Analyze(c *gin.Context) {
	var req domain.QueryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}
	if strings.TrimSpace(req.Query) == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "query is required"})
		return
	}

	resp := h.service.Analyze(c.Request.Context(), req)
	c.JSON(http.StatusOK, resp)
}

func (h *AssistantHandler) WhatIf(c *gin.Context) {
	var req domain.ScenarioRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	resp := h.service.WhatIf(c.Request.Context(), req)
	c.JSON(http.StatusOK, resp)
}
