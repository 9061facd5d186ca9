package searchmcp

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/kailas-cloud/searchmcp/internal/domain"
	domagent "github.com/kailas-cloud/searchmcp/internal/domain/agent"
	"github.com/kailas-cloud/searchmcp/internal/domain/search/request"
	"github.com/kailas-cloud/searchmcp/internal/transport/agents"
	"github.com/kailas-cloud/searchmcp/internal/transport/azsearch"
	"github.com/kailas-cloud/searchmcp/internal/transport/mcpserver"
	agentuc "github.com/kailas-cloud/searchmcp/internal/usecase/agent"
	searchuc "github.com/kailas-cloud/searchmcp/internal/usecase/search"
)

const defaultAgentAPIVersion = "2024-12-01-preview"

// Client is the searchmcp SDK entry point.
type Client struct {
	index       *azsearch.Client
	searchSvc   *searchuc.Service
	vectorField string

	agents   *agents.Client
	agentSvc *agentuc.Service

	obs *observer
}

// New creates a Client. At least one of WithAzureSearch or WithAgentProject is required.
func New(opts ...Option) (*Client, error) {
	cfg := &clientConfig{vectorField: request.DefaultVectorField}
	for _, o := range opts {
		o.apply(cfg)
	}

	if cfg.searchEndpoint == "" && cfg.connectionString == "" {
		return nil, errors.New("searchmcp: nothing to configure (use WithAzureSearch or WithAgentProject)")
	}

	obs, err := newObserver(cfg.logger, cfg.metricsReg)
	if err != nil {
		return nil, err
	}
	c := &Client{vectorField: cfg.vectorField, obs: obs}

	if cfg.searchEndpoint != "" {
		if err := c.wireSearch(cfg); err != nil {
			return nil, err
		}
	}
	if cfg.connectionString != "" {
		if err := c.wireAgent(cfg); err != nil {
			return nil, err
		}
	}
	return c, nil
}

func (c *Client) wireSearch(cfg *clientConfig) error {
	index, err := azsearch.NewClient(&azsearch.Config{
		Endpoint:   cfg.searchEndpoint,
		APIKey:     cfg.searchAPIKey,
		IndexName:  cfg.searchIndex,
		HTTPClient: cfg.httpClient,
	})
	if err != nil {
		return fmt.Errorf("searchmcp: azure search: %w", err)
	}

	var embed searchuc.Embedder
	if cfg.embedder != nil {
		embed = &embedderAdapter{inner: cfg.embedder}
	}
	c.index = index
	c.searchSvc = searchuc.New(index, embed)
	return nil
}

func (c *Client) wireAgent(cfg *clientConfig) error {
	if cfg.credential == nil {
		return errors.New("searchmcp: agent project requires a credential")
	}
	if cfg.model == "" {
		return errors.New("searchmcp: agent project requires a model deployment name")
	}
	if cfg.searchConnection == "" || cfg.bingConnection == "" || cfg.agentIndex == "" {
		return errors.New("searchmcp: agent project requires tool connections and an index name (use WithAgentTools)")
	}
	project, err := domagent.ParseConnectionString(cfg.connectionString)
	if err != nil {
		return fmt.Errorf("searchmcp: %w", err)
	}

	client, err := agents.NewClient(&agents.Config{
		BaseURL:    project.BaseURL(),
		APIVersion: defaultAgentAPIVersion,
		Credential: cfg.credential,
		HTTPClient: cfg.httpClient,
	})
	if err != nil {
		return fmt.Errorf("searchmcp: agent service: %w", err)
	}

	c.agents = client
	c.agentSvc = agentuc.New(client, agentuc.Config{
		Model:                cfg.model,
		SearchConnectionName: cfg.searchConnection,
		BingConnectionName:   cfg.bingConnection,
		IndexName:            cfg.agentIndex,
		PollInterval:         cfg.pollInterval,
		RunTimeout:           cfg.runTimeout,
		DeleteThreads:        cfg.deleteThreads,
	})
	return nil
}

// Ping checks every configured remote service.
func (c *Client) Ping(ctx context.Context) (err error) {
	start := time.Now()
	defer func() { c.obs.observe("ping", start, err) }()

	if c.index != nil {
		if err := c.index.HealthCheck(ctx); err != nil {
			return fmt.Errorf("ping search: %w", err)
		}
	}
	if c.agents != nil {
		if err := c.agents.HealthCheck(ctx); err != nil {
			return fmt.Errorf("ping agent service: %w", err)
		}
	}
	return nil
}

// Search returns the direct index query service.
func (c *Client) Search() *SearchService {
	return &SearchService{svc: c.searchSvc, vectorField: c.vectorField, obs: c.obs}
}

// Agent returns the agent-backed search service.
func (c *Client) Agent() *AgentService {
	return &AgentService{svc: c.agentSvc, obs: c.obs}
}

// SearchServer builds an MCP server exposing keyword_search, vector_search
// and hybrid_search. Tools report "not initialized" when search is not configured.
func (c *Client) SearchServer() *mcp.Server {
	deps := mcpserver.SearchDeps{VectorField: c.vectorField}
	if c.searchSvc != nil {
		deps.Search = c.searchSvc
	}
	return mcpserver.NewSearchServer(deps)
}

// AgentServer builds an MCP server exposing search_index and web_search.
func (c *Client) AgentServer() *mcp.Server {
	var deps mcpserver.AgentDeps
	if c.agentSvc != nil {
		deps.Agent = c.agentSvc
	}
	return mcpserver.NewAgentServer(deps)
}

func notConfigured(what string) error {
	return fmt.Errorf("searchmcp: %s: %w", what, domain.ErrNotConfigured)
}
