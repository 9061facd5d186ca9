package search

import (
	"context"

	"github.com/kailas-cloud/searchmcp/internal/domain"
	"github.com/kailas-cloud/searchmcp/internal/domain/search/query"
	"github.com/kailas-cloud/searchmcp/internal/domain/search/result"
)

// Index runs one remote search call against the configured index.
type Index interface {
	Search(ctx context.Context, q query.Query) ([]result.Result, error)
}

// Embedder vectorizes query text when the index has no integrated vectorizer.
type Embedder interface {
	Embed(ctx context.Context, text string) (domain.EmbeddingResult, error)
}
