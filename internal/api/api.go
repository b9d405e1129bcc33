package api

import (
	"net/http"
	"strings"
	"time"

	"github.com/biznexus-ai/backend/internal/api/handlers"
	"github.com/biznexus-ai/backend/internal/api/middleware"
	"github.com/biznexus-ai/backend/internal/calendar"
	"github.com/biznexus-ai/backend/internal/service"
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

type Services struct {
	Dashboard *service.DashboardService
	Assistant *service.AssistantService
	Upload    *service.UploadService
	Context   *handlers.ContextProvider
	Events    *calendar.Store
}

func NewRouter(services *Services, allowedOrigins []string) *gin.Engine {
	router := gin.New()

	router.Use(middleware.Logger())
	router.Use(middleware.Recovery())

	defaultOrigins := []string{"http://localhost:3000", "http://127.0.0.1:3000"}
	corsConfig := cors.Config{
		AllowOrigins:     defaultOrigins,
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "Authorization"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}
	if len(allowedOrigins) > 0 {
		normalizedOrigins, allowAll := normalizeAllowedOrigins(allowedOrigins)
		if allowAll {
			corsConfig.AllowOrigins = nil
			corsConfig.AllowOriginFunc = func(origin string) bool { return true }
		} else if len(normalizedOrigins) > 0 {
			corsConfig.AllowOrigins = normalizedOrigins
		}
	}
	router.Use(cors.New(corsConfig))

	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	apiGroup := router.Group("/api")

	if services != nil {
		if services.Dashboard != nil {
			dashboardHandler := handlers.NewDashboardHandler(services.Dashboard)
			apiGroup.GET("/dashboard", dashboardHandler.GetDashboard)
		}

		if services.Assistant != nil {
			assistantHandler := handlers.NewAssistantHandler(services.Assistant)
			apiGroup.POST("/analyze", assistantHandler.Analyze)
			apiGroup.POST("/whatif", assistantHandler.WhatIf)
		}

		if services.Upload != nil {
			uploadHandler := handlers.NewUploadHandler(services.Upload)
			apiGroup.POST("/upload", uploadHandler.Upload)
		}

		if services.Context != nil {
			apiGroup.GET("/context", services.Context.GetContext)
		}

		if services.Events != nil {
			calendarHandler := handlers.NewCalendarHandler(services.Events)
			eventsGroup := apiGroup.Group("/events")
			{
				eventsGroup.GET("", calendarHandler.List)
				eventsGroup.POST("", calendarHandler.Add)
				eventsGroup.DELETE("/:id", calendarHandler.Delete)
			}
		}
	}

	return router
}

func normalizeAllowedOrigins(origins []string) ([]string, bool) {
	var (
		parsed   []string
		allowAll bool
	)
	for _, origin := range origins {
		parts := strings.Split(origin, ",")
		for _, part := range parts {
			trimmed := strings.TrimSpace(part)
			if trimmed == "" {
				continue
			}
			if trimmed == "*" {
				allowAll = true
				continue
			}
			parsed = append(parsed, trimmed)
		}
	}
	return parsed, allowAll
}
