package handlers

import (
	"net/http"
	"strings"

	"github.com/biznexus-ai/backend/internal/calendar"
	"github.com/biznexus-ai/backend/internal/domain"
	"github.com/gin-gonic/gin"
)

type CalendarHandler struct {
	store *calendar.Store
}

func NewCalendarHandler(store *calendar.Store) *CalendarHandler {
	return &CalendarHandler{store: store}
}

func (h *CalendarHandler) List(c *gin.Context) {
	c.JSON(http.StatusOK, h.store.List())
}

func (h *CalendarHandler) Add(c *gin.Context) {
	var event domain.Event
	if err := c.ShouldBindJSON(&event); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid event body"})
		return
	}
	if strings.TrimSpace(event.Title) == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "title is required"})
		return
	}

	saved, err := h.store.Add(event)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "could not save event"})
		return
	}
	c.JSON(http.StatusOK, saved)
}

func (h *CalendarHandler) Delete(c *gin.Context) {
	if err := h.store.Delete(c.Param("id")); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "could not delete event"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "deleted"})
}
