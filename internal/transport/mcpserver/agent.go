package mcpserver

import (
	"context"

	"github.com/modelcontextprotocol/go-sdk/mcp"
	"go.uber.org/zap"

	"github.com/kailas-cloud/searchmcp/internal/render"
	"github.com/kailas-cloud/searchmcp/internal/version"
)

// AgentServerName is the MCP implementation name of the agent server.
const AgentServerName = "azure-ai-agent"

// Answerer runs agent-backed searches.
type Answerer interface {
	SearchIndex(ctx context.Context, query string, top int) (string, error)
	WebSearch(ctx context.Context, query string) (string, error)
}

// AgentDeps is everything the agent server needs. A nil Agent means the
// project client could not be configured.
type AgentDeps struct {
	Agent  Answerer
	Logger *zap.Logger
}

type agentTools struct {
	dispatcher
	agent Answerer
}

// NewAgentServer registers search_index and web_search.
func NewAgentServer(deps AgentDeps) *mcp.Server {
	log := deps.Logger
	if log == nil {
		log = zap.NewNop()
	}
	h := &agentTools{dispatcher: dispatcher{logger: log}, agent: deps.Agent}

	server := mcp.NewServer(&mcp.Implementation{
		Name:    AgentServerName,
		Version: version.Version,
	}, &mcp.ServerOptions{
		Instructions: "MCP server for Azure AI Agent Service integration with AzureAISearch and Bing Web Grounding tools",
	})

	openWorld := true
	mcp.AddTool(server, &mcp.Tool{
		Name:        "search_index",
		Description: "Search your Azure AI Search index using the optimal retrieval method.",
		Annotations: &mcp.ToolAnnotations{Title: "Azure AI Search", ReadOnlyHint: true},
	}, h.searchIndex)
	mcp.AddTool(server, &mcp.Tool{
		Name:        "web_search",
		Description: "Search the web using Bing Web Grounding to find the most current information.",
		Annotations: &mcp.ToolAnnotations{Title: "Bing Web Search", ReadOnlyHint: true, OpenWorldHint: &openWorld},
	}, h.webSearch)

	return server
}

func (h *agentTools) searchIndex(
	ctx context.Context, _ *mcp.CallToolRequest, in TopQueryInput,
) (*mcp.CallToolResult, any, error) {
	res := h.call(ctx, "search_index", "index search", h.agent != nil, AgentNotInitialized,
		func(ctx context.Context) (string, error) {
			body, err := h.agent.SearchIndex(ctx, in.Query, in.Top)
			if err != nil {
				return "", err
			}
			return render.Agent(render.IndexSearchHeading, body), nil
		})
	return res, nil, nil
}

func (h *agentTools) webSearch(
	ctx context.Context, _ *mcp.CallToolRequest, in QueryInput,
) (*mcp.CallToolResult, any, error) {
	res := h.call(ctx, "web_search", "web search", h.agent != nil, AgentNotInitialized,
		func(ctx context.Context) (string, error) {
			body, err := h.agent.WebSearch(ctx, in.Query)
			if err != nil {
				return "", err
			}
			return render.Agent(render.WebSearchHeading, body), nil
		})
	return res, nil, nil
}
