package agent

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/kailas-cloud/searchmcp/internal/domain"
	domagent "github.com/kailas-cloud/searchmcp/internal/domain/agent"
	"github.com/kailas-cloud/searchmcp/internal/domain/search/request"
	logpkg "github.com/kailas-cloud/searchmcp/internal/logger"
)

// Agent names registered on the platform.
const (
	SearchAgentName = "search-agent"
	WebAgentName    = "web-search-agent"
)

// Failure prefixes for runs that ended in the failed state.
const (
	searchFailedPrefix = "Search failed"
	webFailedPrefix    = "Web search failed"
)

// Config holds the orchestration settings.
type Config struct {
	Model                string
	SearchConnectionName string
	BingConnectionName   string
	IndexName            string
	PollInterval         time.Duration
	// RunTimeout bounds waiting for a terminal run status; zero waits indefinitely.
	RunTimeout time.Duration
	// DeleteThreads also removes the per-call thread. Threads are kept by default.
	DeleteThreads bool
}

// Service runs one short-lived agent per call against the platform.
type Service struct {
	platform Platform
	cfg      Config
}

// New creates an orchestration service.
func New(platform Platform, cfg Config) *Service {
	if cfg.PollInterval <= 0 {
		cfg.PollInterval = time.Second
	}
	return &Service{platform: platform, cfg: cfg}
}

// SearchIndex answers query from the configured index through the Azure AI Search tool.
// A failed run is returned as "Search failed: <reason>" with a nil error.
func (s *Service) SearchIndex(ctx context.Context, query string, top int) (string, error) {
	if strings.TrimSpace(query) == "" {
		return "", fmt.Errorf("%w: query is required", domain.ErrInvalidRequest)
	}
	if top <= 0 {
		top = request.DefaultTop
	}

	conn, err := s.platform.GetConnection(ctx, s.cfg.SearchConnectionName)
	if err != nil {
		return "", err
	}

	spec := domagent.Spec{
		Model:        s.cfg.Model,
		Name:         SearchAgentName,
		Instructions: searchInstructions(query, top),
		Tools:        []domagent.Tool{domagent.NewAzureAISearchTool(conn.ID, s.cfg.IndexName)},
	}
	return s.converse(ctx, spec, query, searchFailedPrefix)
}

// WebSearch answers query from the web through the Bing grounding tool.
// A failed run is returned as "Web search failed: <reason>" with a nil error.
func (s *Service) WebSearch(ctx context.Context, query string) (string, error) {
	if strings.TrimSpace(query) == "" {
		return "", fmt.Errorf("%w: query is required", domain.ErrInvalidRequest)
	}

	conn, err := s.platform.GetConnection(ctx, s.cfg.BingConnectionName)
	if err != nil {
		return "", err
	}

	spec := domagent.Spec{
		Model:        s.cfg.Model,
		Name:         WebAgentName,
		Instructions: webInstructions(query),
		Tools:        []domagent.Tool{domagent.NewBingGroundingTool(conn.ID)},
	}
	return s.converse(ctx, spec, query, webFailedPrefix)
}

// converse creates the agent, runs it on a fresh thread and renders the reply.
// The agent is deleted on every return path once it exists.
func (s *Service) converse(ctx context.Context, spec domagent.Spec, query, failPrefix string) (string, error) {
	agentID, err := s.platform.CreateAgent(ctx, spec)
	if err != nil {
		return "", err
	}
	ctx, _ = logpkg.With(ctx, zap.String("agent", spec.Name), zap.String("agent_id", agentID))
	defer s.deleteAgent(ctx, agentID)

	threadID, err := s.platform.CreateThread(ctx)
	if err != nil {
		return "", err
	}
	ctx, log := logpkg.With(ctx, zap.String("thread_id", threadID))
	if s.cfg.DeleteThreads {
		defer s.deleteThread(ctx, threadID)
	}

	if err := s.platform.CreateMessage(ctx, threadID, query); err != nil {
		return "", err
	}

	run, err := s.platform.CreateRun(ctx, threadID, agentID)
	if err != nil {
		return "", err
	}
	run, err = s.waitForRun(ctx, run)
	if err != nil {
		return "", err
	}

	if run.Failed() {
		log.Warn("agent run failed",
			zap.String("run_id", run.ID),
			zap.String("last_error", run.LastError),
		)
		return fmt.Sprintf("%s: %s", failPrefix, run.LastError), nil
	}

	msg, err := s.platform.LatestAgentMessage(ctx, threadID)
	if err != nil {
		return "", err
	}

	log.Debug("agent run finished",
		zap.String("run_id", run.ID),
		zap.String("status", string(run.Status)),
	)
	return msg.Markdown(), nil
}

// waitForRun polls until the run reaches a terminal status.
func (s *Service) waitForRun(ctx context.Context, run domagent.Run) (domagent.Run, error) {
	if s.cfg.RunTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeoutCause(ctx, s.cfg.RunTimeout, domain.ErrRunTimeout)
		defer cancel()
	}

	ticker := time.NewTicker(s.cfg.PollInterval)
	defer ticker.Stop()

	for !run.Status.IsTerminal() {
		select {
		case <-ctx.Done():
			if cause := context.Cause(ctx); errors.Is(cause, domain.ErrRunTimeout) {
				return run, fmt.Errorf("run %s still %s after %s: %w",
					run.ID, run.Status, s.cfg.RunTimeout, domain.ErrRunTimeout)
			}
			return run, ctx.Err()
		case <-ticker.C:
		}

		var err error
		run, err = s.platform.GetRun(ctx, run.ThreadID, run.ID)
		if err != nil {
			return run, err
		}
	}
	return run, nil
}

func (s *Service) deleteAgent(ctx context.Context, agentID string) {
	if err := s.platform.DeleteAgent(context.WithoutCancel(ctx), agentID); err != nil {
		logpkg.FromContext(ctx).Warn("failed to delete agent", zap.Error(err))
	}
}

func (s *Service) deleteThread(ctx context.Context, threadID string) {
	if err := s.platform.DeleteThread(context.WithoutCancel(ctx), threadID); err != nil {
		logpkg.FromContext(ctx).Warn("failed to delete thread", zap.Error(err))
	}
}

func searchInstructions(query string, top int) string {
	return fmt.Sprintf("You are an Azure AI Search expert. Use the Azure AI Search Tool to find the most "+
		"relevant information for: '%s'. Return only the top %d most relevant results. For each result, "+
		"provide a title, content excerpt, and relevance score if available. Format your response as "+
		"Markdown with each result clearly separated.", query, top)
}

func webInstructions(query string) string {
	return fmt.Sprintf("You are a helpful web search assistant. Use the Bing Web Grounding Tool to find "+
		"the most current and accurate information for: '%s'. Provide a comprehensive answer with "+
		"citations to sources. Format your response as Markdown.", query)
}
