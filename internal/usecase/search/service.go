package search

import (
	"context"
	"fmt"

	"github.com/kailas-cloud/searchmcp/internal/domain"
	"github.com/kailas-cloud/searchmcp/internal/domain/search/mode"
	"github.com/kailas-cloud/searchmcp/internal/domain/search/query"
	"github.com/kailas-cloud/searchmcp/internal/domain/search/request"
	"github.com/kailas-cloud/searchmcp/internal/domain/search/result"
)

// Service handles document search across keyword, vector, and hybrid modes.
// Ranking and fusion happen remotely; the service only builds the query and
// caps the hit list.
type Service struct {
	index Index
	embed Embedder
}

// New creates a search service. embed may be nil, in which case vector
// queries are sent as text for the index to vectorize.
func New(index Index, embed Embedder) *Service {
	return &Service{index: index, embed: embed}
}

// Search dispatches on the request mode.
func (s *Service) Search(ctx context.Context, req *request.Request) ([]result.Result, error) {
	switch req.Mode() {
	case mode.Keyword:
		return s.Keyword(ctx, req)
	case mode.Vector:
		return s.Vector(ctx, req)
	case mode.Hybrid:
		return s.Hybrid(ctx, req)
	default:
		return nil, fmt.Errorf("unsupported search mode: %s", req.Mode())
	}
}

// Keyword runs a lexical-only search.
func (s *Service) Keyword(ctx context.Context, req *request.Request) ([]result.Result, error) {
	return s.run(ctx, query.Query{Text: req.Query(), Top: req.Top()}, req.Top())
}

// Vector runs a nearest-neighbor search. The index is asked for
// request.KNearestNeighbors candidates; Top caps the final list.
func (s *Service) Vector(ctx context.Context, req *request.Request) ([]result.Result, error) {
	vq, err := s.vectorQuery(ctx, req)
	if err != nil {
		return nil, err
	}
	return s.run(ctx, query.Query{Vector: vq, Top: req.Top()}, req.Top())
}

// Hybrid sends lexical text and the vector criterion in one call.
func (s *Service) Hybrid(ctx context.Context, req *request.Request) ([]result.Result, error) {
	vq, err := s.vectorQuery(ctx, req)
	if err != nil {
		return nil, err
	}
	return s.run(ctx, query.Query{Text: req.Query(), Vector: vq, Top: req.Top()}, req.Top())
}

func (s *Service) vectorQuery(ctx context.Context, req *request.Request) (*query.VectorQuery, error) {
	vq := &query.VectorQuery{
		K:     request.KNearestNeighbors,
		Field: req.VectorField(),
	}
	if s.embed == nil {
		vq.Text = req.Query()
		return vq, nil
	}

	emb, err := s.embed.Embed(ctx, req.Query())
	if err != nil {
		return nil, fmt.Errorf("vectorize query: %w", err)
	}
	domain.UsageFromContext(ctx).Record(emb)
	vq.Vector = emb.Embedding
	return vq, nil
}

func (s *Service) run(ctx context.Context, q query.Query, top int) ([]result.Result, error) {
	results, err := s.index.Search(ctx, q)
	if err != nil {
		return nil, fmt.Errorf("search index: %w", err)
	}
	if len(results) > top {
		results = results[:top]
	}
	return results, nil
}
