package mcpserver

import (
	"context"
	"strings"

	"github.com/modelcontextprotocol/go-sdk/mcp"
	"go.uber.org/zap"

	"github.com/kailas-cloud/searchmcp/internal/domain/search/mode"
	"github.com/kailas-cloud/searchmcp/internal/domain/search/request"
	"github.com/kailas-cloud/searchmcp/internal/domain/search/result"
	"github.com/kailas-cloud/searchmcp/internal/render"
	"github.com/kailas-cloud/searchmcp/internal/version"
)

// SearchServerName is the MCP implementation name of the search server.
const SearchServerName = "azure-search"

// Searcher runs one index query.
type Searcher interface {
	Search(ctx context.Context, req *request.Request) ([]result.Result, error)
}

// SearchDeps is everything the search server needs. A nil Search means the
// index client could not be configured; tools then report it instead of running.
type SearchDeps struct {
	Search      Searcher
	VectorField string
	Logger      *zap.Logger
}

type searchTools struct {
	dispatcher
	search      Searcher
	vectorField string
}

// NewSearchServer registers keyword_search, vector_search and hybrid_search.
func NewSearchServer(deps SearchDeps) *mcp.Server {
	log := deps.Logger
	if log == nil {
		log = zap.NewNop()
	}
	h := &searchTools{
		dispatcher:  dispatcher{logger: log},
		search:      deps.Search,
		vectorField: deps.VectorField,
	}

	server := mcp.NewServer(&mcp.Implementation{
		Name:    SearchServerName,
		Version: version.Version,
	}, &mcp.ServerOptions{
		Instructions: "MCP server for Azure AI Search integration",
	})

	mcp.AddTool(server, &mcp.Tool{
		Name:        "keyword_search",
		Description: "Perform a keyword-based search on the Azure AI Search index.",
		Annotations: &mcp.ToolAnnotations{Title: "Keyword Search", ReadOnlyHint: true},
	}, h.handler(mode.Keyword, "keyword_search"))
	mcp.AddTool(server, &mcp.Tool{
		Name:        "vector_search",
		Description: "Perform a vector similarity search on the Azure AI Search index.",
		Annotations: &mcp.ToolAnnotations{Title: "Vector Search", ReadOnlyHint: true},
	}, h.handler(mode.Vector, "vector_search"))
	mcp.AddTool(server, &mcp.Tool{
		Name:        "hybrid_search",
		Description: "Perform a hybrid search (keyword + vector) on the Azure AI Search index.",
		Annotations: &mcp.ToolAnnotations{Title: "Hybrid Search", ReadOnlyHint: true},
	}, h.handler(mode.Hybrid, "hybrid_search"))

	return server
}

func (h *searchTools) handler(
	m mode.Mode, tool string,
) func(context.Context, *mcp.CallToolRequest, TopQueryInput) (*mcp.CallToolResult, any, error) {
	op := strings.ToLower(m.Title())
	return func(ctx context.Context, _ *mcp.CallToolRequest, in TopQueryInput) (*mcp.CallToolResult, any, error) {
		res := h.call(ctx, tool, op, h.search != nil, SearchNotInitialized, func(ctx context.Context) (string, error) {
			req, err := request.New(in.Query, m, in.Top, h.vectorField)
			if err != nil {
				return "", err
			}
			results, err := h.search.Search(ctx, &req)
			if err != nil {
				return "", err
			}
			return render.Records(m, results), nil
		})
		return res, nil, nil
	}
}
