package searchmcp

import "github.com/kailas-cloud/searchmcp/internal/domain"

// Sentinel errors re-exported from the domain layer.
// Use errors.Is() to check.
var (
	ErrNotConfigured          = domain.ErrNotConfigured
	ErrInvalidRequest         = domain.ErrInvalidRequest
	ErrConnectionNotFound     = domain.ErrConnectionNotFound
	ErrRemoteService          = domain.ErrRemoteService
	ErrEmbeddingProviderError = domain.ErrEmbeddingProviderError
	ErrRunTimeout             = domain.ErrRunTimeout
)
