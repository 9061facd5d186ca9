package health

import (
	"context"
	"sync"
	"time"
)

// Status represents the aggregated health status.
type Status string

const (
	// Healthy indicates all components are operational.
	Healthy Status = "ok"
	// Degraded indicates the remote is up but the query embedder is not.
	Degraded Status = "degraded"
	// Unhealthy indicates the server cannot serve any tool call: the remote
	// is unreachable or was never configured.
	Unhealthy Status = "error"
)

// CheckResult represents an individual component health check outcome.
type CheckResult string

const (
	// CheckOK indicates a passing health check.
	CheckOK CheckResult = "ok"
	// CheckError indicates a failing health check.
	CheckError CheckResult = "error"
	// CheckNotConfigured indicates the client was never built.
	CheckNotConfigured CheckResult = "not_configured"
)

// DefaultCheckTimeout bounds each component check.
const DefaultCheckTimeout = 5 * time.Second

// Report aggregates health check results.
type Report struct {
	Status Status
	Checks map[string]CheckResult
}

// Service coordinates health checks.
type Service struct {
	name      string
	remote    Checker
	embedding Checker
	timeout   time.Duration
}

// New creates a Service for the remote component called name.
// remote is nil when the server started without its client; embedding can be nil.
func New(name string, remote RemoteChecker, embedding EmbeddingChecker) *Service {
	return &Service{name: name, remote: remote, embedding: embedding, timeout: DefaultCheckTimeout}
}

// Check probes every configured component in parallel.
func (s *Service) Check(ctx context.Context) Report {
	if s.remote == nil {
		return Report{Status: Unhealthy, Checks: map[string]CheckResult{s.name: CheckNotConfigured}}
	}

	components := map[string]Checker{s.name: s.remote}
	if s.embedding != nil {
		components["embedding"] = s.embedding
	}

	var (
		mu     sync.Mutex
		wg     sync.WaitGroup
		checks = make(map[string]CheckResult, len(components))
	)
	for name, c := range components {
		wg.Add(1)
		go func() {
			defer wg.Done()
			res := s.probe(ctx, c)
			mu.Lock()
			checks[name] = res
			mu.Unlock()
		}()
	}
	wg.Wait()

	// Every tool depends on the remote; the embedder only on vector queries.
	status := Healthy
	switch {
	case checks[s.name] == CheckError:
		status = Unhealthy
	case checks["embedding"] == CheckError:
		status = Degraded
	}
	return Report{Status: status, Checks: checks}
}

func (s *Service) probe(ctx context.Context, c Checker) CheckResult {
	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()
	if err := c.HealthCheck(ctx); err != nil {
		return CheckError
	}
	return CheckOK
}
