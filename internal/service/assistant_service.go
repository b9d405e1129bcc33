package service

import (
	"context"

	"github.com/biznexus-ai/backend/internal/agent"
	"github.com/biznexus-ai/backend/internal/cache"
	"github.com/biznexus-ai/backend/internal/domain"
	"github.com/rs/zerolog/log"
)

// AssistantService routes chat queries to the right agent and caches
// identical queries for a short window.
type AssistantService struct {
	router     *agent.Router
	runner     *agent.Runner
	prediction agent.Agent
	cache      cache.ResponseCache
}

func NewAssistantService(router *agent.Router, runner *agent.Runner, prediction agent.Agent, responseCache cache.ResponseCache) *AssistantService {
	return &AssistantService{
		router:     router,
		runner:     runner,
		prediction: prediction,
		cache:      responseCache,
	}
}

// Analyze answers one chat query. Responses for queries with history are
// never cached since the same question can mean something different
// mid-conversation.
func (s *AssistantService) Analyze(ctx context.Context, req domain.QueryRequest) domain.QueryResponse {
	cacheable := len(req.History) == 0

	if cacheable {
		if cached, ok, err := s.cache.Get(ctx, req.Query); err != nil {
			log.Warn().Err(err).Msg("response cache read failed")
		} else if ok {
			log.Debug().Str("query", req.Query).Msg("response cache hit")
			return *cached
		}
	}

	a := s.router.Route(req.Query)
	resp := s.runner.Analyze(ctx, a, req.Query, req.History)

	if cacheable && resp.Agent == a.Name() {
		if err := s.cache.Set(ctx, req.Query, &resp); err != nil {
			log.Warn().Err(err).Msg("response cache write failed")
		}
	}
	return resp
}

// WhatIf runs a structured scenario through the prediction agent.
func (s *AssistantService) WhatIf(ctx context.Context, req domain.ScenarioRequest) domain.QueryResponse {
	return s.runner.Analyze(ctx, s.prediction, agent.ScenarioQuery(req), nil)
}
