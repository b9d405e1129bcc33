package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/biznexus-ai/backend/internal/agent"
	"github.com/biznexus-ai/backend/internal/api"
	"github.com/biznexus-ai/backend/internal/api/handlers"
	"github.com/biznexus-ai/backend/internal/cache"
	"github.com/biznexus-ai/backend/internal/calendar"
	"github.com/biznexus-ai/backend/internal/config"
	"github.com/biznexus-ai/backend/internal/llm"
	"github.com/biznexus-ai/backend/internal/service"
	"github.com/biznexus-ai/backend/internal/sqlstore"
	"github.com/biznexus-ai/backend/internal/storage"
	"github.com/biznexus-ai/backend/pkg/logger"
	"github.com/gin-gonic/gin"
)

func main() {
	cfg := config.Load()

	logger.SetLevel(cfg.Server.Mode)
	if cfg.Server.Mode == "debug" {
		gin.SetMode(gin.DebugMode)
	} else {
		gin.SetMode(gin.ReleaseMode)
	}

	store, err := sqlstore.Open(cfg.Store)
	if err != nil {
		logger.Log.Fatal().Err(err).Msg("Failed to open SQL store")
	}
	defer store.Close()

	responseCache, err := cache.NewResponseCache(cfg.Cache)
	if err != nil {
		logger.Log.Warn().Err(err).Msg("Redis unavailable, falling back to in-memory cache")
		responseCache = cache.NewMemoryResponseCache(time.Duration(cfg.Cache.ResponseTTLSeconds) * time.Second)
	}

	var archive storage.ObjectStorage
	if cfg.Archive.Enabled {
		minioArchive, err := storage.NewMinioArchive(cfg.Archive)
		if err != nil {
			logger.Log.Warn().Err(err).Msg("Archive storage disabled")
		} else {
			archive = minioArchive
		}
	}

	llmClient := llm.NewClient(
		cfg.LLM.BaseURL,
		cfg.LLM.Model,
		cfg.LLM.APIKeys,
		time.Duration(cfg.LLM.TimeoutSeconds)*time.Second,
	)
	if len(cfg.LLM.APIKeys) == 0 {
		logger.Log.Warn().Msg("No LLM API keys configured, chat responses will fail")
	}

	dataDir := cfg.Data.DataDir
	events := calendar.NewStore(cfg.Data.EventsDir)
	local := storage.NewLocalStore(dataDir)

	prediction := agent.NewPredictionAgent(dataDir)
	router := agent.NewRouter(
		agent.NewSchedulerAgent(events),
		prediction,
		agent.NewInventoryAgent(dataDir),
		agent.NewSalesAgent(dataDir),
		agent.NewMarketingAgent(dataDir),
		agent.NewGeneralAgent(dataDir, store),
	)
	runner := agent.NewRunner(llmClient)

	services := &api.Services{
		Dashboard: service.NewDashboardService(dataDir),
		Assistant: service.NewAssistantService(router, runner, prediction, responseCache),
		Upload:    service.NewUploadService(local, store, archive),
		Context:   handlers.NewContextProvider(local, store),
		Events:    events,
	}

	srv := &http.Server{
		Addr:         ":" + cfg.Server.Port,
		Handler:      api.NewRouter(services, cfg.Server.AllowedOrigins),
		ReadTimeout:  time.Duration(cfg.Server.ReadTimeout) * time.Second,
		WriteTimeout: time.Duration(cfg.Server.WriteTimeout) * time.Second,
	}

	go func() {
		logger.Log.Info().Str("port", cfg.Server.Port).Msg("Starting server")
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Log.Fatal().Err(err).Msg("Failed to start server")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Log.Info().Msg("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		logger.Log.Fatal().Err(err).Msg("Server forced to shutdown")
	}

	logger.Log.Info().Msg("Server exiting")
}
