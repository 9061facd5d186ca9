package health

import "context"

// Checker is any remote dependency that can report its availability:
// the search index, the agent service, the embedding provider.
type Checker interface {
	HealthCheck(ctx context.Context) error
}

// RemoteChecker checks the remote service a server fronts.
type RemoteChecker = Checker

// EmbeddingChecker checks the optional query embedding provider.
type EmbeddingChecker = Checker
