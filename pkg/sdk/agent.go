package searchmcp

import (
	"context"
	"time"

	agentuc "github.com/kailas-cloud/searchmcp/internal/usecase/agent"
)

// AgentService runs searches through a short-lived hosted agent.
type AgentService struct {
	svc *agentuc.Service
	obs *observer
}

// SearchIndex asks an agent equipped with the index search tool.
// A failed run comes back as "Search failed: <reason>" with a nil error.
func (s *AgentService) SearchIndex(ctx context.Context, query string, top int) (out string, err error) {
	start := time.Now()
	defer func() { s.obs.observe("agent_search_index", start, err, "bytes", len(out)) }()

	if s.svc == nil {
		return "", notConfigured("agent")
	}
	return s.svc.SearchIndex(ctx, query, top)
}

// WebSearch asks an agent equipped with Bing grounding.
// A failed run comes back as "Web search failed: <reason>" with a nil error.
func (s *AgentService) WebSearch(ctx context.Context, query string) (out string, err error) {
	start := time.Now()
	defer func() { s.obs.observe("agent_web_search", start, err, "bytes", len(out)) }()

	if s.svc == nil {
		return "", notConfigured("agent")
	}
	return s.svc.WebSearch(ctx, query)
}
