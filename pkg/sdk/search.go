package searchmcp

import (
	"context"
	"fmt"
	"time"

	"github.com/kailas-cloud/searchmcp/internal/domain/search/mode"
	"github.com/kailas-cloud/searchmcp/internal/domain/search/request"
	"github.com/kailas-cloud/searchmcp/internal/domain/search/result"
	"github.com/kailas-cloud/searchmcp/internal/render"
	searchuc "github.com/kailas-cloud/searchmcp/internal/usecase/search"
)

// SearchMode selects lexical, vector or combined matching.
type SearchMode string

// Search modes.
const (
	ModeKeyword SearchMode = SearchMode(mode.Keyword)
	ModeVector  SearchMode = SearchMode(mode.Vector)
	ModeHybrid  SearchMode = SearchMode(mode.Hybrid)
)

// SearchOptions configures a query. A nil value means hybrid, top 5.
type SearchOptions struct {
	Mode SearchMode
	Top  int
}

// SearchResult is one ranked index hit.
type SearchResult struct {
	Title   string
	Content string
	Score   float64
}

// SearchService runs queries directly against the index.
type SearchService struct {
	svc         *searchuc.Service
	vectorField string
	obs         *observer
}

// Query returns hits in the index's relevance order, at most opts.Top of them.
func (s *SearchService) Query(
	ctx context.Context, query string, opts *SearchOptions,
) (out []SearchResult, err error) {
	start := time.Now()
	defer func() { s.obs.observe("search", start, err, "results", len(out)) }()

	_, results, err := s.run(ctx, query, opts)
	if err != nil {
		return nil, err
	}
	return fromResults(results), nil
}

// Markdown runs the query and renders it exactly as the MCP tools do.
func (s *SearchService) Markdown(
	ctx context.Context, query string, opts *SearchOptions,
) (out string, err error) {
	start := time.Now()
	defer func() { s.obs.observe("search_markdown", start, err, "bytes", len(out)) }()

	m, results, err := s.run(ctx, query, opts)
	if err != nil {
		return "", err
	}
	return render.Records(m, results), nil
}

func (s *SearchService) run(
	ctx context.Context, query string, opts *SearchOptions,
) (mode.Mode, []result.Result, error) {
	if s.svc == nil {
		return "", nil, notConfigured("search")
	}
	if opts == nil {
		opts = &SearchOptions{}
	}
	m := mode.Mode(opts.Mode)
	if m == "" {
		m = mode.Hybrid
	}

	req, err := request.New(query, m, opts.Top, s.vectorField)
	if err != nil {
		return "", nil, fmt.Errorf("query: %w", err)
	}
	results, err := s.svc.Search(ctx, &req)
	if err != nil {
		return "", nil, fmt.Errorf("query: %w", err)
	}
	return m, results, nil
}

func fromResults(results []result.Result) []SearchResult {
	out := make([]SearchResult, len(results))
	for i := range results {
		r := &results[i]
		out[i] = SearchResult{Title: r.Title(), Content: r.Content(), Score: r.Score()}
	}
	return out
}
